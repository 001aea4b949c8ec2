package domain

import "testing"

func TestParseStage(t *testing.T) {
	valid := []string{
		"Submitted", "AI_Processing", "SEO_Review", "Client_Review",
		"MLR_Review", "Revision_Requested", "Published", "Rejected",
	}
	for _, s := range valid {
		got, err := ParseStage(s)
		if err != nil {
			t.Errorf("ParseStage(%q): %v", s, err)
		}
		if string(got) != s {
			t.Errorf("ParseStage(%q) = %q", s, got)
		}
	}

	// Lowercase drift from the legacy pages is rejected, not coerced.
	for _, s := range []string{"seo_review", "client_review", "draft", "completed", ""} {
		if _, err := ParseStage(s); err == nil {
			t.Errorf("ParseStage(%q) should fail", s)
		}
	}
}

func TestStageTerminal(t *testing.T) {
	if !StagePublished.Terminal() || !StageRejected.Terminal() {
		t.Error("Published and Rejected are terminal")
	}
	for _, s := range []Stage{StageSubmitted, StageAIProcessing, StageSEOReview, StageClientReview, StageMLRReview, StageRevisionRequested} {
		if s.Terminal() {
			t.Errorf("%s should not be terminal", s)
		}
	}
}
