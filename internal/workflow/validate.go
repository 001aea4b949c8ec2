package workflow

import (
	"pharma-content-review/backend/internal/submission/domain"
)

// Validate checks the stage-specific completeness gate for the decision
// payload. It returns the list of missing-field identifiers; an empty list
// means the gate passes. Validation never mutates state and never touches
// the store.
func Validate(stage domain.Stage, outcome Outcome, payload StagePayload) []string {
	switch stage {
	case domain.StageSEOReview:
		p, ok := payload.(SEOReviewPayload)
		if !ok {
			return []string{"seo"}
		}
		return validateSEOReview(outcome, p)
	case domain.StageClientReview:
		p, ok := payload.(ClientReviewPayload)
		if !ok {
			return []string{"client"}
		}
		return validateClientReview(outcome, p)
	case domain.StageMLRReview:
		p, ok := payload.(MLRReviewPayload)
		if !ok {
			return []string{"mlr"}
		}
		return validateMLRReview(outcome, p)
	default:
		// Automatic stages have no payload requirements.
		return nil
	}
}

func validateSEOReview(outcome Outcome, p SEOReviewPayload) []string {
	var missing []string
	switch outcome {
	case OutcomeAdvance:
		if !p.TitleApproved {
			missing = append(missing, "seo.title_approved")
		}
		if !p.MetaDescriptionApproved {
			missing = append(missing, "seo.meta_description_approved")
		}
		if !p.KeywordsApproved {
			missing = append(missing, "seo.keywords_approved")
		}
		if !p.HeadingTagsApproved {
			missing = append(missing, "seo.heading_tags_approved")
		}
	case OutcomeRequestRevision:
		if p.Notes == "" {
			missing = append(missing, "seo.notes")
		}
	}
	return missing
}

func validateClientReview(outcome Outcome, p ClientReviewPayload) []string {
	if outcome != OutcomeAdvance {
		return nil
	}
	var missing []string
	if p.BrandAlignment == "" {
		missing = append(missing, "client.brand_alignment")
	}
	if p.TargetAudience == "" {
		missing = append(missing, "client.target_audience")
	}
	if p.ROIConfidence == "" {
		missing = append(missing, "client.roi_confidence")
	}
	return missing
}

func validateMLRReview(outcome Outcome, p MLRReviewPayload) []string {
	var missing []string
	switch outcome {
	case OutcomeAdvance:
		c := p.Checklist
		if !c.MedicalAccuracy {
			missing = append(missing, "mlr.checklist.medical_accuracy")
		}
		if !c.FairBalance {
			missing = append(missing, "mlr.checklist.fair_balance")
		}
		if !c.SafetyInfo {
			missing = append(missing, "mlr.checklist.safety_info")
		}
		if !c.FDAGuidelines {
			missing = append(missing, "mlr.checklist.fda_guidelines")
		}
		if !c.OffLabelPromotion {
			missing = append(missing, "mlr.checklist.off_label_promotion")
		}
		if !c.Disclaimers {
			missing = append(missing, "mlr.checklist.disclaimers")
		}
		if p.RiskAssessment == "" {
			missing = append(missing, "mlr.risk_assessment")
		}
	case OutcomeRequestRevision:
		// Notes are required when sending back with an incomplete checklist.
		if !p.Checklist.Complete() && p.Notes == "" {
			missing = append(missing, "mlr.notes")
		}
	}
	return missing
}
