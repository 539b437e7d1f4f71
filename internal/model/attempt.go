package model

import "time"

type AttemptStatus string

const (
	AttemptInProgress    AttemptStatus = "in_progress"
	AttemptCompleted     AttemptStatus = "completed"
	AttemptCrisisFlagged AttemptStatus = "crisis_flagged"
)

// Attempt is one user's pass through one assessment. Answers accumulate in any
// order while in_progress; submit runs the synchronous score→interpret→crisis
// pipeline and lands the attempt in a terminal status.
type Attempt struct {
	ID                string        `json:"id" bson:"_id,omitempty"`
	UserID            string        `json:"userId" bson:"userId"`
	AssessmentID      string        `json:"assessmentId" bson:"assessmentId"`
	AssessmentVersion int           `json:"assessmentVersion" bson:"assessmentVersion"`
	Status            AttemptStatus `json:"status" bson:"status"`
	Responses         ResponseSet   `json:"responses" bson:"responses"`
	StartedAt         time.Time     `json:"startedAt" bson:"startedAt"`
	CompletedAt       *time.Time    `json:"completedAt,omitempty" bson:"completedAt,omitempty"`
}

// Terminal reports whether the attempt has been scored
func (a *Attempt) Terminal() bool {
	return a.Status == AttemptCompleted || a.Status == AttemptCrisisFlagged
}
