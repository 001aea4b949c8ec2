package workflow

import (
	"reflect"
	"testing"

	"pharma-content-review/backend/internal/submission/domain"
)

func completeMLRChecklist() MLRChecklist {
	return MLRChecklist{
		MedicalAccuracy:   true,
		FairBalance:       true,
		SafetyInfo:        true,
		FDAGuidelines:     true,
		OffLabelPromotion: true,
		Disclaimers:       true,
	}
}

func TestValidateSEOAdvance(t *testing.T) {
	complete := SEOReviewPayload{
		TitleApproved:           true,
		MetaDescriptionApproved: true,
		KeywordsApproved:        true,
		HeadingTagsApproved:     true,
	}
	if missing := Validate(domain.StageSEOReview, OutcomeAdvance, complete); len(missing) != 0 {
		t.Errorf("complete SEO payload: missing = %v, want none", missing)
	}

	partial := complete
	partial.KeywordsApproved = false
	partial.HeadingTagsApproved = false
	missing := Validate(domain.StageSEOReview, OutcomeAdvance, partial)
	want := []string{"seo.keywords_approved", "seo.heading_tags_approved"}
	if !reflect.DeepEqual(missing, want) {
		t.Errorf("missing = %v, want %v", missing, want)
	}
}

func TestValidateSEORevisionRequiresNotes(t *testing.T) {
	if missing := Validate(domain.StageSEOReview, OutcomeRequestRevision, SEOReviewPayload{}); len(missing) != 1 || missing[0] != "seo.notes" {
		t.Errorf("missing = %v, want [seo.notes]", missing)
	}
	if missing := Validate(domain.StageSEOReview, OutcomeRequestRevision, SEOReviewPayload{Notes: "meta too long"}); len(missing) != 0 {
		t.Errorf("revision with notes: missing = %v, want none", missing)
	}
}

func TestValidateSEORejectHasNoGate(t *testing.T) {
	if missing := Validate(domain.StageSEOReview, OutcomeReject, SEOReviewPayload{}); len(missing) != 0 {
		t.Errorf("reject: missing = %v, want none", missing)
	}
}

func TestValidateClientAdvance(t *testing.T) {
	complete := ClientReviewPayload{
		BrandAlignment: "perfectly-aligned",
		TargetAudience: "perfectly-targeted",
		ROIConfidence:  "high",
	}
	if missing := Validate(domain.StageClientReview, OutcomeAdvance, complete); len(missing) != 0 {
		t.Errorf("complete client payload: missing = %v, want none", missing)
	}

	missing := Validate(domain.StageClientReview, OutcomeAdvance, ClientReviewPayload{BrandAlignment: "aligned"})
	want := []string{"client.target_audience", "client.roi_confidence"}
	if !reflect.DeepEqual(missing, want) {
		t.Errorf("missing = %v, want %v", missing, want)
	}
}

func TestValidateMLRAdvance(t *testing.T) {
	complete := MLRReviewPayload{Checklist: completeMLRChecklist(), RiskAssessment: "low"}
	if missing := Validate(domain.StageMLRReview, OutcomeAdvance, complete); len(missing) != 0 {
		t.Errorf("complete MLR payload: missing = %v, want none", missing)
	}

	noRisk := MLRReviewPayload{Checklist: completeMLRChecklist()}
	if missing := Validate(domain.StageMLRReview, OutcomeAdvance, noRisk); len(missing) != 1 || missing[0] != "mlr.risk_assessment" {
		t.Errorf("missing = %v, want [mlr.risk_assessment]", missing)
	}

	oneUnchecked := complete
	oneUnchecked.Checklist.FairBalance = false
	missing := Validate(domain.StageMLRReview, OutcomeAdvance, oneUnchecked)
	if len(missing) != 1 || missing[0] != "mlr.checklist.fair_balance" {
		t.Errorf("missing = %v, want [mlr.checklist.fair_balance]", missing)
	}
}

func TestValidateMLRRevisionNotes(t *testing.T) {
	incomplete := MLRReviewPayload{}
	if missing := Validate(domain.StageMLRReview, OutcomeRequestRevision, incomplete); len(missing) != 1 || missing[0] != "mlr.notes" {
		t.Errorf("incomplete checklist without notes: missing = %v, want [mlr.notes]", missing)
	}
	withNotes := MLRReviewPayload{Notes: "off-label claim in paragraph 2"}
	if missing := Validate(domain.StageMLRReview, OutcomeRequestRevision, withNotes); len(missing) != 0 {
		t.Errorf("revision with notes: missing = %v, want none", missing)
	}
	// Complete checklist needs no notes to send back.
	completeNoNotes := MLRReviewPayload{Checklist: completeMLRChecklist()}
	if missing := Validate(domain.StageMLRReview, OutcomeRequestRevision, completeNoNotes); len(missing) != 0 {
		t.Errorf("complete checklist without notes: missing = %v, want none", missing)
	}
}

func TestValidateAutomaticStages(t *testing.T) {
	for _, stage := range []domain.Stage{domain.StageSubmitted, domain.StageAIProcessing, domain.StageRevisionRequested} {
		if missing := Validate(stage, OutcomeAdvance, EmptyPayload{}); len(missing) != 0 {
			t.Errorf("%s: missing = %v, want none", stage, missing)
		}
	}
}

func TestDecodePayloadByStage(t *testing.T) {
	raw := []byte(`{"title_approved":true,"meta_description_approved":true,"keywords_approved":true,"heading_tags_approved":true}`)
	p, err := DecodePayload(domain.StageSEOReview, raw)
	if err != nil {
		t.Fatalf("DecodePayload: %v", err)
	}
	seo, ok := p.(SEOReviewPayload)
	if !ok {
		t.Fatalf("payload type = %T, want SEOReviewPayload", p)
	}
	if !seo.TitleApproved || !seo.HeadingTagsApproved {
		t.Errorf("decoded flags = %+v, want all true", seo)
	}

	if _, err := DecodePayload(domain.StageMLRReview, []byte(`{bad`)); err == nil {
		t.Error("malformed JSON should fail to decode")
	}

	empty, err := DecodePayload(domain.StageSubmitted, nil)
	if err != nil {
		t.Fatalf("DecodePayload empty: %v", err)
	}
	if _, ok := empty.(EmptyPayload); !ok {
		t.Errorf("payload type = %T, want EmptyPayload", empty)
	}
}
