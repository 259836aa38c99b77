package domain

// Question is a single questionnaire item. Domain names the lifestyle area
// the question probes.
type Question struct {
	ID     int    `yaml:"id"`
	Text   string `yaml:"text"`
	Domain string `yaml:"domain"`
}

// Option is one of the answer choices shared by every question.
type Option struct {
	Label string `yaml:"label"`
	Value int    `yaml:"value"`
}

const (
	ValueNever     = 1
	ValueSometimes = 2
	ValueOften     = 3
	ValueRoutinely = 4
)

// DefaultOptions is the canonical four-point frequency scale.
var DefaultOptions = []Option{
	{Label: "Never", Value: ValueNever},
	{Label: "Sometimes", Value: ValueSometimes},
	{Label: "Often", Value: ValueOften},
	{Label: "Routinely", Value: ValueRoutinely},
}

// ResponseMap maps a question ID to the selected option value.
type ResponseMap map[int]int

// Clone returns an independent copy of m.
func (m ResponseMap) Clone() ResponseMap {
	out := make(ResponseMap, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

// CompleteFor reports whether every question has an answer in m.
func (m ResponseMap) CompleteFor(questions []Question) bool {
	for _, q := range questions {
		if _, ok := m[q.ID]; !ok {
			return false
		}
	}
	return true
}
