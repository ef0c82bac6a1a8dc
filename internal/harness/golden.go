package harness

import "encoding/json"

// TraceSnapshot is the golden-file form of a scenario run.
type TraceSnapshot struct {
	ScenarioName string       `json:"scenario_name"`
	Trace        []StepResult `json:"trace"`
}

// MarshalSnapshot renders a trace as indented JSON with a trailing newline.
func MarshalSnapshot(name string, result *Result) ([]byte, error) {
	data, err := json.MarshalIndent(TraceSnapshot{ScenarioName: name, Trace: result.Trace}, "", "  ")
	if err != nil {
		return nil, err
	}
	return append(data, '\n'), nil
}
