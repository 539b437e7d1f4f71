package scoring

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mindhaven/internal/model"
)

func scaleQuestion(id string, min, max int) model.Question {
	return model.Question{
		ID:       id,
		PromptID: "prompt." + id,
		Required: true,
		Answer:   model.Scale{Min: min, Max: max},
	}
}

// sevenItemDef mirrors a GAD-7 shaped instrument: seven 0-3 items, summed
func sevenItemDef() *model.AssessmentDefinition {
	def := &model.AssessmentDefinition{
		ID:      "anxiety_screen",
		Version: 1,
		Scoring: model.ScoringSum,
		Ranges: []model.ScoreRange{
			{Min: 0, Max: 4, Level: "minimal"},
			{Min: 5, Max: 9, Level: "mild"},
			{Min: 10, Max: 14, Level: "moderate"},
			{Min: 15, Max: 21, Level: "severe"},
		},
		Interpretations: []model.Interpretation{
			{Min: 0, Max: 4, TitleID: "interp.minimal", Severity: model.SeverityLow},
			{Min: 5, Max: 9, TitleID: "interp.mild", Severity: model.SeverityModerate},
			{Min: 10, Max: 14, TitleID: "interp.moderate", Severity: model.SeverityHigh},
			{Min: 15, Max: 21, TitleID: "interp.severe", Severity: model.SeveritySevere},
		},
		Recommendations:      []string{"rec.breathing"},
		ProfessionalReferral: true,
	}
	for i := 1; i <= 7; i++ {
		def.Questions = append(def.Questions, scaleQuestion(q(i), 0, 3))
	}
	return def
}

// nineItemDef mirrors a PHQ-9 shaped instrument with a crisis rule on item 9
func nineItemDef() *model.AssessmentDefinition {
	def := &model.AssessmentDefinition{
		ID:      "depression_screen",
		Version: 1,
		Scoring: model.ScoringSum,
		Ranges: []model.ScoreRange{
			{Min: 0, Max: 4, Level: "minimal"},
			{Min: 5, Max: 14, Level: "moderate"},
			{Min: 15, Max: 27, Level: "severe"},
		},
		Interpretations: []model.Interpretation{
			{Min: 0, Max: 4, TitleID: "interp.minimal", Severity: model.SeverityLow},
			{Min: 5, Max: 14, TitleID: "interp.moderate", Severity: model.SeverityModerate},
			{Min: 15, Max: 27, TitleID: "interp.severe", Severity: model.SeveritySevere},
		},
		CrisisRules: []model.CrisisOverrideRule{
			{QuestionIDs: []string{"q9"}, Threshold: 2, CrisisID: "crisis.self_harm"},
		},
	}
	for i := 1; i <= 9; i++ {
		def.Questions = append(def.Questions, scaleQuestion(q(i), 0, 3))
	}
	return def
}

func q(i int) string {
	return "q" + string(rune('0'+i))
}

func answerAll(def *model.AssessmentDefinition, value int) model.ResponseSet {
	rs := make(model.ResponseSet)
	for _, question := range def.Questions {
		rs.Record(question.ID, model.AnswerValue{Value: value})
	}
	return rs
}

func TestScore_SevenItemAllOnes(t *testing.T) {
	def := sevenItemDef()
	result, err := Score(def, answerAll(def, 1))
	require.NoError(t, err)

	assert.Equal(t, 7, result.RawScore)
	assert.Equal(t, "mild", result.MatchedRange.Level)
	assert.Equal(t, "interp.mild", result.Interpretation.TitleID)
	assert.Equal(t, model.SeverityModerate, result.Interpretation.Severity)
	assert.False(t, result.CrisisFlag)
	assert.Empty(t, result.Warnings)
	assert.Equal(t, []string{"rec.breathing"}, result.Recommendations)
	assert.True(t, result.ProfessionalReferral)
}

func TestScore_DomainExtremes(t *testing.T) {
	def := sevenItemDef()

	t.Run("all minimum lands in lowest band", func(t *testing.T) {
		result, err := Score(def, answerAll(def, 0))
		require.NoError(t, err)
		assert.Equal(t, 0, result.RawScore)
		assert.Equal(t, def.Ranges[0].Min, result.MatchedRange.Min)
		assert.Equal(t, model.SeverityLow, result.Interpretation.Severity)
	})

	t.Run("all maximum lands at max possible score", func(t *testing.T) {
		result, err := Score(def, answerAll(def, 3))
		require.NoError(t, err)
		assert.Equal(t, def.MaxPossibleScore(), result.RawScore)
		assert.Equal(t, 21, result.RawScore)
		assert.Equal(t, model.SeveritySevere, result.Interpretation.Severity)
	})
}

func TestScore_CrisisItemOverridesLowAggregate(t *testing.T) {
	def := nineItemDef()
	rs := answerAll(def, 0)
	rs.Record("q9", model.AnswerValue{Value: 3})

	result, err := Score(def, rs)
	require.NoError(t, err)

	assert.Equal(t, 3, result.RawScore, "aggregate stays in the lowest band")
	assert.Equal(t, "minimal", result.MatchedRange.Level)
	assert.True(t, result.CrisisFlag)
	assert.Equal(t, "crisis.self_harm", result.CrisisID)
	assert.Equal(t, model.SeveritySevere, result.Interpretation.Severity)
	assert.Equal(t, "crisis.self_harm.title", result.Interpretation.TitleID)
}

func TestScore_MissingRequiredQuestion(t *testing.T) {
	def := sevenItemDef()
	rs := answerAll(def, 1)
	delete(rs, "q4")

	result, err := Score(def, rs)
	assert.Nil(t, result)

	var incomplete *IncompleteResponseError
	require.ErrorAs(t, err, &incomplete)
	assert.Equal(t, []string{"q4"}, incomplete.MissingQuestionIDs)
}

func TestScore_ValueOutsideDomain(t *testing.T) {
	def := sevenItemDef()

	for _, bad := range []int{-1, 4} {
		rs := answerAll(def, 1)
		rs.Record("q2", model.AnswerValue{Value: bad})

		result, err := Score(def, rs)
		assert.Nil(t, result)

		var invalid *InvalidAnswerError
		require.ErrorAs(t, err, &invalid)
		assert.Equal(t, "q2", invalid.QuestionID)
		assert.Equal(t, bad, invalid.Value)
	}
}

func TestScore_Idempotent(t *testing.T) {
	def := nineItemDef()
	rs := answerAll(def, 2)

	first, err := Score(def, rs)
	require.NoError(t, err)
	second, err := Score(def, rs)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestScore_AverageRoundsHalfUp(t *testing.T) {
	def := &model.AssessmentDefinition{
		ID:      "stress_screen",
		Scoring: model.ScoringAverage,
		Questions: []model.Question{
			scaleQuestion("q1", 0, 4),
			scaleQuestion("q2", 0, 4),
		},
		Ranges: []model.ScoreRange{
			{Min: 0, Max: 1, Level: "low"},
			{Min: 2, Max: 8, Level: "high"},
		},
		Interpretations: []model.Interpretation{
			{Min: 0, Max: 1, Severity: model.SeverityLow},
			{Min: 2, Max: 8, Severity: model.SeverityHigh},
		},
	}

	// 1 + 2 = 3 over two questions: 1.5 rounds up to 2
	rs := make(model.ResponseSet)
	rs.Record("q1", model.AnswerValue{Value: 1})
	rs.Record("q2", model.AnswerValue{Value: 2})

	result, err := Score(def, rs)
	require.NoError(t, err)
	assert.Equal(t, 2, result.RawScore)
	assert.Equal(t, "high", result.MatchedRange.Level)

	// 1 + 0 = 1 over two questions: 0.5 rounds up to 1
	rs.Record("q2", model.AnswerValue{Value: 0})
	result, err = Score(def, rs)
	require.NoError(t, err)
	assert.Equal(t, 1, result.RawScore)
	assert.Equal(t, "low", result.MatchedRange.Level)
}

func TestScore_FreeTextContributesNothing(t *testing.T) {
	def := sevenItemDef()
	def.Questions = append(def.Questions, model.Question{
		ID:       "notes",
		PromptID: "prompt.notes",
		Answer:   model.FreeText{},
	})

	rs := answerAll(def, 1)
	rs.Record("notes", model.AnswerValue{Text: "long qualitative answer"})

	result, err := Score(def, rs)
	require.NoError(t, err)
	assert.Equal(t, 7, result.RawScore)
}

func TestScore_ComplexAggregatesLikeSum(t *testing.T) {
	def := &model.AssessmentDefinition{
		ID:      "composite",
		Scoring: model.ScoringComplex,
		Questions: []model.Question{
			{ID: "a1", Required: true, Section: "childhood", Answer: model.YesNo{}},
			{ID: "a2", Required: true, Section: "childhood", Answer: model.YesNo{}},
			{ID: "b1", Required: true, Section: "current", Answer: model.Scale{Min: 0, Max: 4}},
		},
		Ranges: []model.ScoreRange{
			{Min: 0, Max: 2, Level: "low"},
			{Min: 3, Max: 6, Level: "elevated"},
		},
		Interpretations: []model.Interpretation{
			{Min: 0, Max: 2, Severity: model.SeverityLow},
			{Min: 3, Max: 6, Severity: model.SeverityModerate},
		},
	}

	rs := make(model.ResponseSet)
	rs.Record("a1", model.AnswerValue{Value: 1})
	rs.Record("a2", model.AnswerValue{Value: 1})
	rs.Record("b1", model.AnswerValue{Value: 2})

	result, err := Score(def, rs)
	require.NoError(t, err)
	assert.Equal(t, 4, result.RawScore, "sections carry no weights")
	assert.Equal(t, "elevated", result.MatchedRange.Level)
}

func TestScore_MultipleChoiceScoresByOrdinal(t *testing.T) {
	def := &model.AssessmentDefinition{
		ID:      "choice_screen",
		Scoring: model.ScoringSum,
		Questions: []model.Question{
			{ID: "q1", Required: true, Answer: model.MultipleChoice{OptionIDs: []string{"opt.a", "opt.b", "opt.c", "opt.d"}}},
		},
		Ranges: []model.ScoreRange{
			{Min: 0, Max: 3, Level: "only"},
		},
		Interpretations: []model.Interpretation{
			{Min: 0, Max: 3, Severity: model.SeverityLow},
		},
	}

	rs := make(model.ResponseSet)
	rs.Record("q1", model.AnswerValue{Value: 2})

	result, err := Score(def, rs)
	require.NoError(t, err)
	assert.Equal(t, 2, result.RawScore)

	rs.Record("q1", model.AnswerValue{Value: 4})
	_, err = Score(def, rs)
	var invalid *InvalidAnswerError
	require.ErrorAs(t, err, &invalid)
}

func TestScore_ReAnswerOverwrites(t *testing.T) {
	def := sevenItemDef()
	rs := answerAll(def, 1)
	rs.Record("q1", model.AnswerValue{Value: 3})

	result, err := Score(def, rs)
	require.NoError(t, err)
	assert.Equal(t, 9, result.RawScore)
}
