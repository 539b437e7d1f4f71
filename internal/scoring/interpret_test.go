package scoring

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"mindhaven/internal/model"
)

func TestResolveInterpretation_ClampsOutOfDomainScores(t *testing.T) {
	// A definition revised to fewer items without re-running validation can
	// leave stale ranges; resolution must still produce an answer.
	def := sevenItemDef()

	t.Run("above the declared ceiling", func(t *testing.T) {
		result := resolveInterpretation(def, 25)
		assert.Equal(t, 25, result.RawScore)
		assert.Equal(t, "severe", result.MatchedRange.Level)
		assert.Contains(t, result.Warnings, model.WarnScoreOutOfDomain)
		assert.Equal(t, model.SeveritySevere, result.Interpretation.Severity)
	})

	t.Run("below the floor", func(t *testing.T) {
		result := resolveInterpretation(def, -2)
		assert.Equal(t, "minimal", result.MatchedRange.Level)
		assert.Contains(t, result.Warnings, model.WarnScoreOutOfDomain)
		assert.Equal(t, model.SeverityLow, result.Interpretation.Severity)
	})

	t.Run("in-domain score carries no warning", func(t *testing.T) {
		result := resolveInterpretation(def, 12)
		assert.Empty(t, result.Warnings)
		assert.Equal(t, "moderate", result.MatchedRange.Level)
	})
}

func TestResolveInterpretation_CoarserBands(t *testing.T) {
	// Interpretation bands may be coarser than the range table
	def := sevenItemDef()
	def.Interpretations = []model.Interpretation{
		{Min: 0, Max: 9, TitleID: "interp.ok", Severity: model.SeverityLow},
		{Min: 10, Max: 21, TitleID: "interp.elevated", Severity: model.SeverityHigh},
	}

	result := resolveInterpretation(def, 7)
	assert.Equal(t, "mild", result.MatchedRange.Level)
	assert.Equal(t, "interp.ok", result.Interpretation.TitleID)
	assert.Equal(t, model.SeverityLow, result.Interpretation.Severity)
}

func TestLocateRange_BoundaryInclusive(t *testing.T) {
	ranges := sevenItemDef().Ranges

	for _, tc := range []struct {
		score int
		level string
	}{
		{0, "minimal"}, {4, "minimal"}, {5, "mild"}, {9, "mild"},
		{10, "moderate"}, {14, "moderate"}, {15, "severe"}, {21, "severe"},
	} {
		matched, clamped := locateRange(ranges, tc.score)
		assert.False(t, clamped, "score %d", tc.score)
		assert.Equal(t, tc.level, matched.Level, "score %d", tc.score)
	}
}
