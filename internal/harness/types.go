package harness

// StepResult records the outcome of one flow step.
type StepResult struct {
	Step   int      `json:"step"`
	Op     string   `json:"op"`
	Output []string `json:"output,omitempty"`
	Error  string   `json:"error,omitempty"`
}

// Result is the outcome of a scenario execution.
type Result struct {
	// Pass is true if every expect clause matched.
	Pass bool `json:"pass"`

	// Trace contains one entry per flow step, in order.
	Trace []StepResult `json:"trace"`

	// Errors contains expectation failures. Empty if Pass is true.
	Errors []string `json:"errors,omitempty"`
}

// NewResult creates a new passing result.
func NewResult() *Result {
	return &Result{
		Pass:   true,
		Trace:  []StepResult{},
		Errors: []string{},
	}
}

// AddError adds a failure message and marks the result as failed.
func (r *Result) AddError(err string) {
	r.Errors = append(r.Errors, err)
	r.Pass = false
}
