package harness

// CaseResult is the outcome of one scenario case.
type CaseResult struct {
	Input string `json:"input"`

	// Expect is the canonical expected span, or "" for an unresolved case.
	Expect string `json:"expect,omitempty"`

	// Got is the resolved span, or "" when nothing matched.
	Got string `json:"got,omitempty"`

	// Rule is the rule that matched.
	Rule string `json:"rule,omitempty"`

	Pass bool `json:"pass"`

	// Message explains a failure.
	Message string `json:"message,omitempty"`
}

// Result is the outcome of a scenario.
type Result struct {
	Scenario string       `json:"scenario"`
	Language string       `json:"language"`
	Pass     bool         `json:"pass"`
	Passed   int          `json:"passed"`
	Failed   int          `json:"failed"`
	Cases    []CaseResult `json:"cases"`
}

// NewResult creates an empty passing result.
func NewResult(scenario, language string) *Result {
	return &Result{
		Scenario: scenario,
		Language: language,
		Pass:     true,
		Cases:    []CaseResult{},
	}
}

// Add records a case outcome.
func (r *Result) Add(c CaseResult) {
	r.Cases = append(r.Cases, c)
	if c.Pass {
		r.Passed++
		return
	}
	r.Failed++
	r.Pass = false
}

// Failures returns the failed cases.
func (r *Result) Failures() []CaseResult {
	var failed []CaseResult
	for _, c := range r.Cases {
		if !c.Pass {
			failed = append(failed, c)
		}
	}
	return failed
}
