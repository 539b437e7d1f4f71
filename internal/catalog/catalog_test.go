package catalog

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mindhaven/internal/model"
	"mindhaven/internal/scoring"
)

func TestLoadBuiltin(t *testing.T) {
	cat, err := LoadBuiltin()
	require.NoError(t, err)
	require.Equal(t, 5, cat.Len())

	for _, id := range []string{"gad7", "phq9", "pss4", "trauma_composite", "sleep_check"} {
		_, ok := cat.Get(id)
		assert.True(t, ok, "missing builtin definition %s", id)
	}
	_, ok := cat.Get("nope")
	assert.False(t, ok)
}

func TestCatalog_ListByCategory(t *testing.T) {
	cat, err := LoadBuiltin()
	require.NoError(t, err)

	anxiety := cat.ListByCategory(model.CategoryAnxiety)
	require.Len(t, anxiety, 1)
	assert.Equal(t, "gad7", anxiety[0].ID)

	assert.Empty(t, cat.ListByCategory(model.Category("cooking")))
	assert.Len(t, cat.List(), cat.Len())
}

func TestCatalog_RejectsDuplicateID(t *testing.T) {
	def := validDef()
	_, err := New(def, def)
	requireIntegrityProblem(t, err, "duplicate definition id")
}

// Every shipped instrument must score cleanly at both extremes of its answer
// domain. This catches content drift without hand-writing a case per file.
func TestBuiltinDefinitions_ScoreAtExtremes(t *testing.T) {
	cat, err := LoadBuiltin()
	require.NoError(t, err)

	for _, def := range cat.List() {
		def := def
		t.Run(def.ID, func(t *testing.T) {
			lowest := make(model.ResponseSet)
			highest := make(model.ResponseSet)
			for _, q := range def.Questions {
				lowest.Record(q.ID, model.AnswerValue{Value: q.Answer.MinValue()})
				if q.Answer.Scored() {
					highest.Record(q.ID, model.AnswerValue{Value: q.Answer.MaxContribution()})
				} else {
					highest.Record(q.ID, model.AnswerValue{Text: "noted"})
				}
			}

			low, err := scoring.Score(def, lowest)
			require.NoError(t, err)
			assert.Equal(t, def.Ranges[0].Level, low.MatchedRange.Level)
			assert.Equal(t, def.Interpretations[0].Severity, low.Interpretation.Severity)
			assert.False(t, low.CrisisFlag)

			high, err := scoring.Score(def, highest)
			require.NoError(t, err)
			assert.Empty(t, high.Warnings, "extreme in-domain answers must not warn")
			last := def.Interpretations[len(def.Interpretations)-1]
			if !high.CrisisFlag {
				assert.Equal(t, last.Severity, high.Interpretation.Severity)
			}
		})
	}
}

func TestParseDefinition_DeclaredCeilingMismatch(t *testing.T) {
	data := []byte(`
id: drift
version: 1
nameId: assessment.drift.name
category: stress
scoring: sum
maxScore: 115
questions:
  - id: q1
    promptId: p1
    required: true
    type: scale
    min: 0
    max: 3
ranges:
  - { min: 0, max: 3, level: low }
interpretations:
  - { min: 0, max: 3, titleId: t1, severity: low }
`)
	_, err := ParseDefinition(data)
	requireIntegrityProblem(t, err, "declared max score 115 does not match computed 3")
}

func TestParseDefinition_ContradictoryShapes(t *testing.T) {
	t.Run("scale with option list", func(t *testing.T) {
		data := []byte(`
id: bad
questions:
  - id: q1
    type: scale
    min: 0
    max: 3
    optionIds: [a, b]
`)
		_, err := ParseDefinition(data)
		requireIntegrityProblem(t, err, "scale with option list")
	})

	t.Run("multiple choice with scale bounds", func(t *testing.T) {
		data := []byte(`
id: bad
questions:
  - id: q1
    type: multiple_choice
    optionIds: [a, b, c]
    max: 3
`)
		_, err := ParseDefinition(data)
		requireIntegrityProblem(t, err, "multiple choice with scale bounds")
	})

	t.Run("unknown answer type", func(t *testing.T) {
		data := []byte(`
id: bad
questions:
  - id: q1
    type: slider
`)
		_, err := ParseDefinition(data)
		requireIntegrityProblem(t, err, `unknown answer type "slider"`)
	})
}

func TestLoad_ExtraDirectory(t *testing.T) {
	dir := t.TempDir()
	extra := []byte(`
id: mood_pulse
version: 1
nameId: assessment.mood_pulse.name
category: wellbeing
scoring: sum
maxScore: 2
questions:
  - id: q1
    promptId: assessment.mood_pulse.q1
    required: true
    type: scale
    min: 0
    max: 2
ranges:
  - { min: 0, max: 2, level: low }
interpretations:
  - { min: 0, max: 2, titleId: assessment.mood_pulse.band1, severity: low }
`)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "mood_pulse.yaml"), extra, 0o644))

	cat, err := Load(dir)
	require.NoError(t, err)
	assert.Equal(t, 6, cat.Len())
	_, ok := cat.Get("mood_pulse")
	assert.True(t, ok)
}

func TestLoad_ExtraDirectoryRejectsBrokenFile(t *testing.T) {
	dir := t.TempDir()
	broken := []byte(`
id: broken
questions:
  - id: q1
    type: scale
    min: 0
    max: 3
ranges:
  - { min: 1, max: 3, level: low }
interpretations:
  - { min: 0, max: 3, titleId: t1, severity: low }
`)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "broken.yaml"), broken, 0o644))

	_, err := Load(dir)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "want 0")
}
