package model

import "time"

// Warning is a non-fatal condition attached to a score result
type Warning string

const (
	// WarnScoreOutOfDomain means the raw score fell outside the declared range
	// table and was clamped to the nearest boundary band
	WarnScoreOutOfDomain Warning = "score_out_of_domain"
)

// ResolvedInterpretation is the interpretation attached to a score result
type ResolvedInterpretation struct {
	TitleID       string   `json:"titleId" bson:"titleId"`
	DescriptionID string   `json:"descriptionId" bson:"descriptionId"`
	Severity      Severity `json:"severity" bson:"severity"`
}

// ScoreResult is the engine's output for one scored attempt
type ScoreResult struct {
	RawScore             int                    `json:"rawScore" bson:"rawScore"`
	MatchedRange         ScoreRange             `json:"matchedRange" bson:"matchedRange"`
	Interpretation       ResolvedInterpretation `json:"interpretation" bson:"interpretation"`
	CrisisFlag           bool                   `json:"crisisFlag" bson:"crisisFlag"`
	CrisisID             string                 `json:"crisisId,omitempty" bson:"crisisId,omitempty"`
	Recommendations      []string               `json:"recommendations" bson:"recommendations"`
	ProfessionalReferral bool                   `json:"professionalReferral" bson:"professionalReferral"`
	Warnings             []Warning              `json:"warnings,omitempty" bson:"warnings,omitempty"`
}

// AssessmentResult is the persisted record of a completed attempt, kept for
// longitudinal tracking and clinician visibility.
type AssessmentResult struct {
	ID                string      `json:"id" bson:"_id,omitempty"`
	UserID            string      `json:"userId" bson:"userId"`
	AssessmentID      string      `json:"assessmentId" bson:"assessmentId"`
	AssessmentVersion int         `json:"assessmentVersion" bson:"assessmentVersion"`
	AttemptID         string      `json:"attemptId" bson:"attemptId"`
	Responses         ResponseSet `json:"responses" bson:"responses"`
	Result            ScoreResult `json:"result" bson:"result"`
	CompletedAt       time.Time   `json:"completedAt" bson:"completedAt"`
}
