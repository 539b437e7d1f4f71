package model

import "time"

// CrisisAlert is pushed to the clinician escalation surface whenever a scored
// attempt comes back crisis-flagged. Triggered exclusively by the flag, never
// by the raw score.
type CrisisAlert struct {
	AttemptID    string    `json:"attemptId"`
	UserID       string    `json:"userId"`
	AssessmentID string    `json:"assessmentId"`
	CrisisID     string    `json:"crisisId"`
	Severity     Severity  `json:"severity"`
	RawScore     int       `json:"rawScore"`
	OccurredAt   time.Time `json:"occurredAt"`
}
