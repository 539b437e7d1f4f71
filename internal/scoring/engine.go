package scoring

import (
	"math"

	"mindhaven/internal/model"
)

// Score turns a response set into a severity-ranked result for one assessment.
// It is a pure function of its two inputs: no shared state, safe to call
// concurrently for independent attempts. The response set must be a stable
// snapshot; callers that keep accumulating answers should pass a clone.
//
// Returns *IncompleteResponseError if any required question is unanswered and
// *InvalidAnswerError if a value falls outside its question's domain.
func Score(def *model.AssessmentDefinition, responses model.ResponseSet) (*model.ScoreResult, error) {
	var missing []string
	for _, q := range def.Questions {
		if q.Required {
			if _, ok := responses.Get(q.ID); !ok {
				missing = append(missing, q.ID)
			}
		}
	}
	if len(missing) > 0 {
		return nil, &IncompleteResponseError{MissingQuestionIDs: missing}
	}

	total := 0
	for _, q := range def.Questions {
		ans, ok := responses.Get(q.ID)
		if !ok {
			continue
		}
		if !q.Answer.Scored() {
			continue
		}
		if !q.Answer.InDomain(ans.Value) {
			return nil, &InvalidAnswerError{QuestionID: q.ID, Value: ans.Value}
		}
		total += ans.Value
	}

	raw := total
	switch def.Scoring {
	case model.ScoringAverage:
		if n := def.ScoredQuestionCount(); n > 0 {
			raw = roundHalfUp(float64(total) / float64(n))
		}
	case model.ScoringSum, model.ScoringComplex:
		// Complex aggregates like sum; sections group questions for
		// presentation and carry no weights.
	}

	result := resolveInterpretation(def, raw)
	applyCrisisOverrides(def, responses, result)
	return result, nil
}

// roundHalfUp keeps averaged scores comparable against integer score ranges
func roundHalfUp(v float64) int {
	return int(math.Floor(v + 0.5))
}
