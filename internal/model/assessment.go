package model

import "encoding/json"

// Category groups assessments for browsing
type Category string

const (
	CategoryAnxiety    Category = "anxiety"
	CategoryDepression Category = "depression"
	CategoryStress     Category = "stress"
	CategoryTrauma     Category = "trauma"
	CategoryWellbeing  Category = "wellbeing"
)

// ScoringSystem selects how answers are aggregated into a raw score
type ScoringSystem string

const (
	ScoringSum     ScoringSystem = "sum"     // Σ of scored answers
	ScoringAverage ScoringSystem = "average" // Σ / scored question count, round half up
	ScoringComplex ScoringSystem = "complex" // multi-section composite, aggregates like sum
)

// Severity is the ordered classification attached to an interpretation band
type Severity string

const (
	SeverityLow      Severity = "low"
	SeverityModerate Severity = "moderate"
	SeverityHigh     Severity = "high"
	SeveritySevere   Severity = "severe"
)

var severityRank = map[Severity]int{
	SeverityLow:      0,
	SeverityModerate: 1,
	SeverityHigh:     2,
	SeveritySevere:   3,
}

// Rank returns the position of s on the ordered severity scale, -1 if unknown
func (s Severity) Rank() int {
	if r, ok := severityRank[s]; ok {
		return r
	}
	return -1
}

// Valid reports whether s is one of the four defined tiers
func (s Severity) Valid() bool {
	_, ok := severityRank[s]
	return ok
}

// AssessmentDefinition is one published screening instrument. Definitions are
// immutable after catalog load; new content ships as a new version.
type AssessmentDefinition struct {
	ID              string         `json:"id"`
	Version         int            `json:"version"`
	NameID          string         `json:"nameId"`
	Category        Category       `json:"category"`
	Questions       []Question     `json:"questions"`
	Scoring         ScoringSystem  `json:"scoring"`
	Ranges          []ScoreRange   `json:"ranges"`
	Interpretations []Interpretation `json:"interpretations"`
	Recommendations []string       `json:"recommendations"`
	ProfessionalReferral bool      `json:"professionalReferral"`
	CrisisRules     []CrisisOverrideRule `json:"crisisRules,omitempty"`
}

// MaxPossibleScore is the sum of every question's maximum contribution
func (d *AssessmentDefinition) MaxPossibleScore() int {
	total := 0
	for _, q := range d.Questions {
		total += q.Answer.MaxContribution()
	}
	return total
}

// QuestionByID returns the question with the given id, or nil
func (d *AssessmentDefinition) QuestionByID(id string) *Question {
	for i := range d.Questions {
		if d.Questions[i].ID == id {
			return &d.Questions[i]
		}
	}
	return nil
}

// ScoredQuestionCount counts questions that contribute to the raw score
func (d *AssessmentDefinition) ScoredQuestionCount() int {
	n := 0
	for _, q := range d.Questions {
		if q.Answer.Scored() {
			n++
		}
	}
	return n
}

// Question is one item in an instrument. The Answer field carries exactly one
// shape variant; a question cannot be both a scale and a choice list.
type Question struct {
	ID       string     `json:"id"`
	PromptID string     `json:"promptId"`
	Required bool       `json:"required"`
	Section  string     `json:"section,omitempty"`
	Answer   AnswerSpec `json:"answer"`
}

// MarshalJSON tags the answer variant with its kind so the presentation layer
// can pick the right input widget
func (q Question) MarshalJSON() ([]byte, error) {
	out := struct {
		ID       string     `json:"id"`
		PromptID string     `json:"promptId"`
		Required bool       `json:"required"`
		Section  string     `json:"section,omitempty"`
		Type     AnswerKind `json:"type"`
		Answer   AnswerSpec `json:"answer"`
	}{q.ID, q.PromptID, q.Required, q.Section, "", q.Answer}
	if q.Answer != nil {
		out.Type = q.Answer.Kind()
	}
	return json.Marshal(out)
}

// AnswerKind discriminates the answer shape variants
type AnswerKind string

const (
	KindMultipleChoice AnswerKind = "multiple_choice"
	KindScale          AnswerKind = "scale"
	KindYesNo          AnswerKind = "yes_no"
	KindFreeText       AnswerKind = "free_text"
)

// AnswerSpec is the closed set of answer shapes a question can declare.
type AnswerSpec interface {
	Kind() AnswerKind
	// Scored reports whether answers contribute to the raw score
	Scored() bool
	// MaxContribution is the largest value a valid answer can add to the score
	MaxContribution() int
	// MinValue is the smallest value inside the answer domain
	MinValue() int
	// InDomain reports whether a submitted numeric value is valid
	InDomain(v int) bool
}

// MultipleChoice scores by ordinal position: the first option is worth 0,
// the last is worth len(OptionIDs)-1.
type MultipleChoice struct {
	OptionIDs []string `json:"optionIds"`
}

func (m MultipleChoice) Kind() AnswerKind     { return KindMultipleChoice }
func (m MultipleChoice) Scored() bool         { return true }
func (m MultipleChoice) MaxContribution() int { return len(m.OptionIDs) - 1 }
func (m MultipleChoice) MinValue() int        { return 0 }
func (m MultipleChoice) InDomain(v int) bool  { return v >= 0 && v < len(m.OptionIDs) }

// Scale is an integer domain [Min,Max] with a label per step
type Scale struct {
	Min          int      `json:"min"`
	Max          int      `json:"max"`
	StepLabelIDs []string `json:"stepLabelIds,omitempty"`
}

func (s Scale) Kind() AnswerKind     { return KindScale }
func (s Scale) Scored() bool         { return true }
func (s Scale) MaxContribution() int { return s.Max }
func (s Scale) MinValue() int        { return s.Min }
func (s Scale) InDomain(v int) bool  { return v >= s.Min && v <= s.Max }

// YesNo is an implicit binary domain: no=0, yes=1
type YesNo struct{}

func (y YesNo) Kind() AnswerKind     { return KindYesNo }
func (y YesNo) Scored() bool         { return true }
func (y YesNo) MaxContribution() int { return 1 }
func (y YesNo) MinValue() int        { return 0 }
func (y YesNo) InDomain(v int) bool  { return v == 0 || v == 1 }

// FreeText is captured for qualitative review only and never scored
type FreeText struct{}

func (f FreeText) Kind() AnswerKind     { return KindFreeText }
func (f FreeText) Scored() bool         { return false }
func (f FreeText) MaxContribution() int { return 0 }
func (f FreeText) MinValue() int        { return 0 }
func (f FreeText) InDomain(v int) bool  { return true }

// ScoreRange is one inclusive band of the raw-score domain
type ScoreRange struct {
	Min           int    `json:"min"`
	Max           int    `json:"max"`
	Level         string `json:"level"`
	DescriptionID string `json:"descriptionId"`
}

// Contains reports whether score falls inside the inclusive band
func (r ScoreRange) Contains(score int) bool {
	return score >= r.Min && score <= r.Max
}

// Interpretation is a (possibly coarser) band mapping scores to a severity
// tier and display identifiers. Content resolution is external; the engine
// only deals in stable IDs.
type Interpretation struct {
	Min           int      `json:"min"`
	Max           int      `json:"max"`
	TitleID       string   `json:"titleId"`
	DescriptionID string   `json:"descriptionId"`
	Severity      Severity `json:"severity"`
}

// Contains reports whether score falls inside the inclusive band
func (i Interpretation) Contains(score int) bool {
	return score >= i.Min && score <= i.Max
}

// CrisisOverrideRule forces maximum severity when a single critical item
// meets its threshold, independent of the aggregate score.
type CrisisOverrideRule struct {
	QuestionIDs []string `json:"questionIds"`
	Threshold   int      `json:"threshold"`
	CrisisID    string   `json:"crisisId"`
}
