package scoring

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mindhaven/internal/model"
)

func TestCrisisOverride_ThresholdBoundary(t *testing.T) {
	def := nineItemDef()

	t.Run("below threshold does not fire", func(t *testing.T) {
		rs := answerAll(def, 0)
		rs.Record("q9", model.AnswerValue{Value: 1})

		result, err := Score(def, rs)
		require.NoError(t, err)
		assert.False(t, result.CrisisFlag)
		assert.Empty(t, result.CrisisID)
		assert.Equal(t, model.SeverityLow, result.Interpretation.Severity)
	})

	t.Run("exactly at threshold fires", func(t *testing.T) {
		rs := answerAll(def, 0)
		rs.Record("q9", model.AnswerValue{Value: 2})

		result, err := Score(def, rs)
		require.NoError(t, err)
		assert.True(t, result.CrisisFlag)
		assert.Equal(t, model.SeveritySevere, result.Interpretation.Severity)
	})
}

func TestCrisisOverride_MultipleFiringRulesActAsOne(t *testing.T) {
	def := nineItemDef()
	def.CrisisRules = append(def.CrisisRules, model.CrisisOverrideRule{
		QuestionIDs: []string{"q8"}, Threshold: 2, CrisisID: "crisis.other",
	})

	rs := answerAll(def, 0)
	rs.Record("q8", model.AnswerValue{Value: 3})
	rs.Record("q9", model.AnswerValue{Value: 3})

	result, err := Score(def, rs)
	require.NoError(t, err)
	assert.True(t, result.CrisisFlag)
	assert.Equal(t, "crisis.self_harm", result.CrisisID, "first declared rule supplies the identifier")
	assert.Equal(t, model.SeveritySevere, result.Interpretation.Severity)
}

func TestCrisisOverride_Idempotent(t *testing.T) {
	def := nineItemDef()
	rs := answerAll(def, 0)
	rs.Record("q9", model.AnswerValue{Value: 3})

	result, err := Score(def, rs)
	require.NoError(t, err)

	before := *result
	applyCrisisOverrides(def, rs, result)
	assert.Equal(t, before, *result)
}

func TestCrisisOverride_UnansweredCriticalItemDoesNotFire(t *testing.T) {
	def := nineItemDef()
	def.Questions[8].Required = false

	rs := answerAll(def, 1)
	delete(rs, "q9")

	result, err := Score(def, rs)
	require.NoError(t, err)
	assert.False(t, result.CrisisFlag)
}

func TestCrisisOverride_HighAggregateWithoutCriticalItemStaysUnflagged(t *testing.T) {
	def := nineItemDef()
	rs := answerAll(def, 3)
	rs.Record("q9", model.AnswerValue{Value: 0})

	result, err := Score(def, rs)
	require.NoError(t, err)
	assert.Equal(t, 24, result.RawScore)
	assert.Equal(t, model.SeveritySevere, result.Interpretation.Severity, "aggregate alone reaches severe")
	assert.False(t, result.CrisisFlag, "crisis flag tracks the critical item, not the sum")
}
