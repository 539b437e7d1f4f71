package scoring

import "mindhaven/internal/model"

// resolveInterpretation maps a raw score onto the definition's range and
// interpretation tables. A score outside the declared domain is clamped to the
// nearest boundary band with a non-fatal warning: assessments are advisory and
// must always produce some answer, even if a revised definition slipped past
// re-validation.
func resolveInterpretation(def *model.AssessmentDefinition, raw int) *model.ScoreResult {
	result := &model.ScoreResult{
		RawScore:             raw,
		Recommendations:      def.Recommendations,
		ProfessionalReferral: def.ProfessionalReferral,
	}

	matched, clamped := locateRange(def.Ranges, raw)
	result.MatchedRange = matched
	if clamped {
		result.Warnings = append(result.Warnings, model.WarnScoreOutOfDomain)
	}

	interp := locateInterpretation(def.Interpretations, raw)
	result.Interpretation = model.ResolvedInterpretation{
		TitleID:       interp.TitleID,
		DescriptionID: interp.DescriptionID,
		Severity:      interp.Severity,
	}
	return result
}

// locateRange finds the unique band containing raw, clamping to the first or
// last band when the score escapes the declared domain.
func locateRange(ranges []model.ScoreRange, raw int) (model.ScoreRange, bool) {
	if len(ranges) == 0 {
		return model.ScoreRange{}, true
	}
	if raw < ranges[0].Min {
		return ranges[0], true
	}
	if raw > ranges[len(ranges)-1].Max {
		return ranges[len(ranges)-1], true
	}
	for _, r := range ranges {
		if r.Contains(raw) {
			return r, false
		}
	}
	// unreachable for a validated definition: ranges are contiguous
	return ranges[len(ranges)-1], true
}

func locateInterpretation(bands []model.Interpretation, raw int) model.Interpretation {
	if len(bands) == 0 {
		return model.Interpretation{}
	}
	if raw < bands[0].Min {
		return bands[0]
	}
	for _, b := range bands {
		if b.Contains(raw) {
			return b
		}
	}
	return bands[len(bands)-1]
}
