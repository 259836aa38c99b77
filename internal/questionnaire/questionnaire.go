// Package questionnaire loads and validates the question bank used by an
// assessment. The reference bank is embedded in the binary.
package questionnaire

import (
	_ "embed"
	"errors"
	"fmt"
	"os"

	"github.com/alexanderramin/lifestyle/internal/domain"
	"gopkg.in/yaml.v3"
)

//go:embed questions.yaml
var referenceYAML []byte

// ErrInvalid indicates a question bank that fails validation.
var ErrInvalid = errors.New("invalid questionnaire")

// Questionnaire is an immutable question bank with its shared option scale.
type Questionnaire struct {
	Title     string            `yaml:"title"`
	Questions []domain.Question `yaml:"questions"`
	Options   []domain.Option   `yaml:"options"`
}

// Default returns the embedded reference questionnaire. It panics if the
// embedded data is malformed, which only a broken build can cause.
func Default() *Questionnaire {
	q, err := Parse(referenceYAML)
	if err != nil {
		panic(fmt.Sprintf("embedded questionnaire: %v", err))
	}
	return q
}

// Load reads a questionnaire from a YAML file. An empty path returns the
// embedded reference bank.
func Load(path string) (*Questionnaire, error) {
	if path == "" {
		return Default(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading questionnaire: %w", err)
	}
	return Parse(data)
}

// Parse decodes and validates questionnaire YAML. When the document omits
// options the default four-point scale is used.
func Parse(data []byte) (*Questionnaire, error) {
	var q Questionnaire
	if err := yaml.Unmarshal(data, &q); err != nil {
		return nil, fmt.Errorf("decoding questionnaire: %w", err)
	}
	if len(q.Options) == 0 {
		q.Options = append([]domain.Option(nil), domain.DefaultOptions...)
	}
	if err := q.Validate(); err != nil {
		return nil, err
	}
	return &q, nil
}

// Validate checks ids, text, domains and the option scale.
func (q *Questionnaire) Validate() error {
	if len(q.Questions) == 0 {
		return fmt.Errorf("%w: no questions", ErrInvalid)
	}
	seen := make(map[int]bool, len(q.Questions))
	for i, item := range q.Questions {
		if item.ID <= 0 {
			return fmt.Errorf("%w: question %d has non-positive id %d", ErrInvalid, i+1, item.ID)
		}
		if seen[item.ID] {
			return fmt.Errorf("%w: duplicate question id %d", ErrInvalid, item.ID)
		}
		seen[item.ID] = true
		if item.Text == "" {
			return fmt.Errorf("%w: question %d has no text", ErrInvalid, item.ID)
		}
		if item.Domain == "" {
			return fmt.Errorf("%w: question %d has no domain", ErrInvalid, item.ID)
		}
	}

	if len(q.Options) != len(domain.DefaultOptions) {
		return fmt.Errorf("%w: expected %d options, got %d", ErrInvalid, len(domain.DefaultOptions), len(q.Options))
	}
	values := make(map[int]bool, len(q.Options))
	for _, opt := range q.Options {
		if opt.Value < domain.ValueNever || opt.Value > domain.ValueRoutinely {
			return fmt.Errorf("%w: option %q has value %d outside 1-4", ErrInvalid, opt.Label, opt.Value)
		}
		if values[opt.Value] {
			return fmt.Errorf("%w: duplicate option value %d", ErrInvalid, opt.Value)
		}
		values[opt.Value] = true
		if opt.Label == "" {
			return fmt.Errorf("%w: option %d has no label", ErrInvalid, opt.Value)
		}
	}
	return nil
}

// Question returns the question with the given id.
func (q *Questionnaire) Question(id int) (domain.Question, bool) {
	for _, item := range q.Questions {
		if item.ID == id {
			return item, true
		}
	}
	return domain.Question{}, false
}

// ValidValue reports whether v is one of the option values.
func (q *Questionnaire) ValidValue(v int) bool {
	for _, opt := range q.Options {
		if opt.Value == v {
			return true
		}
	}
	return false
}

// Label returns the option label for v, or "" when v is not an option.
func (q *Questionnaire) Label(v int) string {
	for _, opt := range q.Options {
		if opt.Value == v {
			return opt.Label
		}
	}
	return ""
}

// MaxScore is the highest reachable total score.
func (q *Questionnaire) MaxScore() int {
	top := 0
	for _, opt := range q.Options {
		if opt.Value > top {
			top = opt.Value
		}
	}
	return top * len(q.Questions)
}

// Len returns the number of questions.
func (q *Questionnaire) Len() int { return len(q.Questions) }
