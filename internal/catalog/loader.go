package catalog

import (
	"embed"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"mindhaven/internal/model"
)

//go:embed definitions/*.yaml
var builtinFS embed.FS

// definitionFile is the YAML authoring shape. It is deliberately looser than
// the runtime model; decode converts it into the closed question variants and
// rejects contradictory field combinations.
type definitionFile struct {
	ID                   string               `yaml:"id"`
	Version              int                  `yaml:"version"`
	NameID               string               `yaml:"nameId"`
	Category             string               `yaml:"category"`
	Scoring              string               `yaml:"scoring"`
	MaxScore             int                  `yaml:"maxScore"`
	Questions            []questionFile       `yaml:"questions"`
	Ranges               []rangeFile          `yaml:"ranges"`
	Interpretations      []interpretationFile `yaml:"interpretations"`
	Recommendations      []string             `yaml:"recommendations"`
	ProfessionalReferral bool                 `yaml:"professionalReferral"`
	CrisisRules          []crisisRuleFile     `yaml:"crisisRules"`
}

type questionFile struct {
	ID           string   `yaml:"id"`
	PromptID     string   `yaml:"promptId"`
	Required     bool     `yaml:"required"`
	Section      string   `yaml:"section"`
	Type         string   `yaml:"type"`
	OptionIDs    []string `yaml:"optionIds"`
	Min          int      `yaml:"min"`
	Max          int      `yaml:"max"`
	StepLabelIDs []string `yaml:"stepLabelIds"`
}

type rangeFile struct {
	Min           int    `yaml:"min"`
	Max           int    `yaml:"max"`
	Level         string `yaml:"level"`
	DescriptionID string `yaml:"descriptionId"`
}

type interpretationFile struct {
	Min           int    `yaml:"min"`
	Max           int    `yaml:"max"`
	TitleID       string `yaml:"titleId"`
	DescriptionID string `yaml:"descriptionId"`
	Severity      string `yaml:"severity"`
}

type crisisRuleFile struct {
	QuestionIDs []string `yaml:"questionIds"`
	Threshold   int      `yaml:"threshold"`
	CrisisID    string   `yaml:"crisisId"`
}

// ParseDefinition decodes and validates one authored definition. The returned
// error is a *IntegrityError for authoring problems.
func ParseDefinition(data []byte) (*model.AssessmentDefinition, error) {
	var file definitionFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("decode definition: %w", err)
	}

	def, problems := file.toModel()
	if len(problems) > 0 {
		return nil, &IntegrityError{DefinitionID: file.ID, Problems: problems}
	}
	if err := Validate(def); err != nil {
		return nil, err
	}
	// The authored ceiling is advisory; the computed one is authoritative.
	// A mismatch means the author and the items disagree, so block publish
	// rather than silently trusting either number.
	if file.MaxScore != 0 && file.MaxScore != def.MaxPossibleScore() {
		return nil, &IntegrityError{
			DefinitionID: def.ID,
			Problems: []string{fmt.Sprintf("declared max score %d does not match computed %d",
				file.MaxScore, def.MaxPossibleScore())},
		}
	}
	return def, nil
}

func (f *definitionFile) toModel() (*model.AssessmentDefinition, []string) {
	var problems []string

	def := &model.AssessmentDefinition{
		ID:                   f.ID,
		Version:              f.Version,
		NameID:               f.NameID,
		Category:             model.Category(f.Category),
		Scoring:              model.ScoringSystem(f.Scoring),
		Recommendations:      f.Recommendations,
		ProfessionalReferral: f.ProfessionalReferral,
	}

	for _, q := range f.Questions {
		spec, errs := q.answerSpec()
		problems = append(problems, errs...)
		def.Questions = append(def.Questions, model.Question{
			ID:       q.ID,
			PromptID: q.PromptID,
			Required: q.Required,
			Section:  q.Section,
			Answer:   spec,
		})
	}
	for _, r := range f.Ranges {
		def.Ranges = append(def.Ranges, model.ScoreRange{
			Min: r.Min, Max: r.Max, Level: r.Level, DescriptionID: r.DescriptionID,
		})
	}
	for _, b := range f.Interpretations {
		def.Interpretations = append(def.Interpretations, model.Interpretation{
			Min: b.Min, Max: b.Max, TitleID: b.TitleID,
			DescriptionID: b.DescriptionID, Severity: model.Severity(b.Severity),
		})
	}
	for _, cr := range f.CrisisRules {
		def.CrisisRules = append(def.CrisisRules, model.CrisisOverrideRule{
			QuestionIDs: cr.QuestionIDs, Threshold: cr.Threshold, CrisisID: cr.CrisisID,
		})
	}
	return def, problems
}

func (q *questionFile) answerSpec() (model.AnswerSpec, []string) {
	var problems []string
	switch q.Type {
	case "multiple_choice":
		if q.Min != 0 || q.Max != 0 {
			problems = append(problems, fmt.Sprintf("question %s: multiple choice with scale bounds", q.ID))
		}
		return model.MultipleChoice{OptionIDs: q.OptionIDs}, problems
	case "scale":
		if len(q.OptionIDs) > 0 {
			problems = append(problems, fmt.Sprintf("question %s: scale with option list", q.ID))
		}
		return model.Scale{Min: q.Min, Max: q.Max, StepLabelIDs: q.StepLabelIDs}, problems
	case "yes_no":
		return model.YesNo{}, problems
	case "free_text":
		return model.FreeText{}, problems
	default:
		return nil, append(problems, fmt.Sprintf("question %s: unknown answer type %q", q.ID, q.Type))
	}
}

// LoadBuiltin loads the definitions compiled into the binary
func LoadBuiltin() (*Catalog, error) {
	return loadBuiltinPlus(nil)
}

// Load loads the built-in definitions plus, when extraDir is non-empty, every
// *.yaml file in that directory. Extra files are the deployment hook for
// instruments authored after the binary shipped.
func Load(extraDir string) (*Catalog, error) {
	if extraDir == "" {
		return LoadBuiltin()
	}
	extra, err := readDir(extraDir)
	if err != nil {
		return nil, err
	}
	return loadBuiltinPlus(extra)
}

func loadBuiltinPlus(extra []*model.AssessmentDefinition) (*Catalog, error) {
	entries, err := builtinFS.ReadDir("definitions")
	if err != nil {
		return nil, fmt.Errorf("read embedded definitions: %w", err)
	}
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		names = append(names, e.Name())
	}
	sort.Strings(names)

	var defs []*model.AssessmentDefinition
	for _, name := range names {
		data, err := builtinFS.ReadFile("definitions/" + name)
		if err != nil {
			return nil, fmt.Errorf("read embedded definition %s: %w", name, err)
		}
		def, err := ParseDefinition(data)
		if err != nil {
			return nil, fmt.Errorf("definition %s: %w", name, err)
		}
		defs = append(defs, def)
	}
	defs = append(defs, extra...)
	return New(defs...)
}

func readDir(dir string) ([]*model.AssessmentDefinition, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read catalog dir %s: %w", dir, err)
	}
	var defs []*model.AssessmentDefinition
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".yaml") {
			continue
		}
		path := filepath.Join(dir, e.Name())
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", path, err)
		}
		def, err := ParseDefinition(data)
		if err != nil {
			return nil, fmt.Errorf("definition %s: %w", path, err)
		}
		defs = append(defs, def)
	}
	return defs, nil
}
