//nolint:revive // types is a standard Go package name pattern
package types

// Example illustrates how a recommendation improves a STAR sentence. Two pair
// shapes appear in the wire format: content/explanation (sample data and
// older responses) and example_1/example_2 (the deployed service). Both are
// carried; consumers use whichever is populated.
type Example struct {
	Content     string `json:"content,omitempty"`
	Explanation string `json:"explanation,omitempty"`
	Example1    string `json:"example_1,omitempty"`
	Example2    string `json:"example_2,omitempty"`
}

// Recommendation is one AI-authored improvement suggestion for a STAR section.
type Recommendation struct {
	Title           string    `json:"title"`
	Subtitle        string    `json:"subtitle,omitempty"`
	OriginalContent string    `json:"original_content,omitempty"`
	Examples        []Example `json:"examples"`
}

// Recommendations maps each STAR section to its ordered suggestion list.
// Note the service keys the action and result sections in the singular.
type Recommendations struct {
	Situation []Recommendation `json:"situation"`
	Task      []Recommendation `json:"task"`
	Action    []Recommendation `json:"action"`
	Result    []Recommendation `json:"result"`
}

// Normalize replaces nil section slices with empty ones. Section arrays
// default to empty, never absent.
func (r *Recommendations) Normalize() {
	if r.Situation == nil {
		r.Situation = []Recommendation{}
	}
	if r.Task == nil {
		r.Task = []Recommendation{}
	}
	if r.Action == nil {
		r.Action = []Recommendation{}
	}
	if r.Result == nil {
		r.Result = []Recommendation{}
	}
}

// Empty reports whether no section holds any recommendation.
func (r Recommendations) Empty() bool {
	return len(r.Situation) == 0 && len(r.Task) == 0 && len(r.Action) == 0 && len(r.Result) == 0
}
