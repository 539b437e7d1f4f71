package scoring

import "mindhaven/internal/model"

// applyCrisisOverrides escalates the result when any critical item meets its
// rule threshold, regardless of the aggregate score. Aggregate thresholds can
// mask a single acute risk indicator, so screening instruments need a
// per-item safety net independent of the sum.
//
// The override is total and idempotent: it never partially applies, and
// several firing rules have the same effect as one (the first in declaration
// order supplies the crisis identifier).
func applyCrisisOverrides(def *model.AssessmentDefinition, responses model.ResponseSet, result *model.ScoreResult) {
	for _, rule := range def.CrisisRules {
		for _, qid := range rule.QuestionIDs {
			ans, ok := responses.Get(qid)
			if !ok || ans.Value < rule.Threshold {
				continue
			}
			result.CrisisFlag = true
			result.CrisisID = rule.CrisisID
			result.Interpretation = model.ResolvedInterpretation{
				TitleID:       rule.CrisisID + ".title",
				DescriptionID: rule.CrisisID + ".description",
				Severity:      model.SeveritySevere,
			}
			return
		}
	}
}
