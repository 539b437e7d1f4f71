package catalog

import (
	"fmt"

	"mindhaven/internal/model"
)

// Validate enforces the publishing invariants on a definition. It returns a
// *IntegrityError listing every violation, or nil when the definition is
// publishable. Runtime code can rely on these invariants holding for any
// definition reachable through a Catalog.
func Validate(def *model.AssessmentDefinition) error {
	var problems []string

	if def.ID == "" {
		problems = append(problems, "missing id")
	}
	if len(def.Questions) == 0 {
		problems = append(problems, "no questions")
	}

	seen := make(map[string]bool, len(def.Questions))
	for _, q := range def.Questions {
		if q.ID == "" {
			problems = append(problems, "question with empty id")
			continue
		}
		if seen[q.ID] {
			problems = append(problems, fmt.Sprintf("duplicate question id %q", q.ID))
		}
		seen[q.ID] = true
		problems = append(problems, validateQuestion(q)...)
	}

	switch def.Scoring {
	case model.ScoringSum, model.ScoringAverage, model.ScoringComplex:
	default:
		problems = append(problems, fmt.Sprintf("unknown scoring system %q", def.Scoring))
	}

	maxScore := def.MaxPossibleScore()
	problems = append(problems, validateRanges(def.Ranges, maxScore)...)
	problems = append(problems, validateInterpretations(def.Interpretations, maxScore)...)
	problems = append(problems, validateCrisisRules(def)...)

	if len(problems) > 0 {
		return &IntegrityError{DefinitionID: def.ID, Problems: problems}
	}
	return nil
}

func validateQuestion(q model.Question) []string {
	var problems []string
	if q.Answer == nil {
		return append(problems, fmt.Sprintf("question %s: missing answer shape", q.ID))
	}
	switch a := q.Answer.(type) {
	case model.MultipleChoice:
		if len(a.OptionIDs) < 2 {
			problems = append(problems, fmt.Sprintf("question %s: multiple choice needs at least 2 options", q.ID))
		}
	case model.Scale:
		if a.Min >= a.Max {
			problems = append(problems, fmt.Sprintf("question %s: scale min %d must be below max %d", q.ID, a.Min, a.Max))
		}
		if a.Min < 0 {
			problems = append(problems, fmt.Sprintf("question %s: scale min %d below zero", q.ID, a.Min))
		}
		if n := len(a.StepLabelIDs); n > 0 && n != a.Max-a.Min+1 {
			problems = append(problems, fmt.Sprintf("question %s: %d step labels for %d steps", q.ID, n, a.Max-a.Min+1))
		}
	}
	return problems
}

// validateRanges checks that the score ranges partition [0,maxScore]:
// sorted ascending, contiguous, no overlap, no gap.
func validateRanges(ranges []model.ScoreRange, maxScore int) []string {
	var problems []string
	if len(ranges) == 0 {
		return append(problems, "no score ranges")
	}
	if ranges[0].Min != 0 {
		problems = append(problems, fmt.Sprintf("first score range starts at %d, want 0", ranges[0].Min))
	}
	for i, r := range ranges {
		if r.Min > r.Max {
			problems = append(problems, fmt.Sprintf("score range %d: min %d above max %d", i, r.Min, r.Max))
		}
		if i > 0 {
			prev := ranges[i-1]
			if r.Min != prev.Max+1 {
				problems = append(problems, fmt.Sprintf("score ranges %d and %d: [%d,%d] then [%d,%d] leaves a gap or overlap",
					i-1, i, prev.Min, prev.Max, r.Min, r.Max))
			}
		}
	}
	if last := ranges[len(ranges)-1]; last.Max != maxScore {
		problems = append(problems, fmt.Sprintf("score ranges end at %d but max possible score is %d", last.Max, maxScore))
	}
	return problems
}

// validateInterpretations checks that interpretation bands cover the full
// score domain and that severity never decreases as bands ascend.
func validateInterpretations(bands []model.Interpretation, maxScore int) []string {
	var problems []string
	if len(bands) == 0 {
		return append(problems, "no interpretations")
	}
	if bands[0].Min != 0 {
		problems = append(problems, fmt.Sprintf("first interpretation starts at %d, want 0", bands[0].Min))
	}
	prevRank := -1
	for i, b := range bands {
		if b.Min > b.Max {
			problems = append(problems, fmt.Sprintf("interpretation %d: min %d above max %d", i, b.Min, b.Max))
		}
		if !b.Severity.Valid() {
			problems = append(problems, fmt.Sprintf("interpretation %d: unknown severity %q", i, b.Severity))
			continue
		}
		if r := b.Severity.Rank(); r < prevRank {
			problems = append(problems, fmt.Sprintf("interpretation %d: severity %q decreases", i, b.Severity))
		} else {
			prevRank = r
		}
		if i > 0 && b.Min != bands[i-1].Max+1 {
			problems = append(problems, fmt.Sprintf("interpretations %d and %d are not contiguous", i-1, i))
		}
	}
	if last := bands[len(bands)-1]; last.Max != maxScore {
		problems = append(problems, fmt.Sprintf("interpretations end at %d but max possible score is %d", last.Max, maxScore))
	}
	return problems
}

func validateCrisisRules(def *model.AssessmentDefinition) []string {
	var problems []string
	for i, rule := range def.CrisisRules {
		if rule.CrisisID == "" {
			problems = append(problems, fmt.Sprintf("crisis rule %d: missing crisis id", i))
		}
		if len(rule.QuestionIDs) == 0 {
			problems = append(problems, fmt.Sprintf("crisis rule %d: no question ids", i))
		}
		for _, qid := range rule.QuestionIDs {
			q := def.QuestionByID(qid)
			if q == nil {
				problems = append(problems, fmt.Sprintf("crisis rule %d: unknown question %q", i, qid))
				continue
			}
			if !q.Answer.Scored() {
				problems = append(problems, fmt.Sprintf("crisis rule %d: question %q is unscored", i, qid))
				continue
			}
			if !q.Answer.InDomain(rule.Threshold) {
				problems = append(problems, fmt.Sprintf("crisis rule %d: threshold %d outside domain of question %q",
					i, rule.Threshold, qid))
			}
		}
	}
	return problems
}
