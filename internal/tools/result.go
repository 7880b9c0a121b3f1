// Package tools implements the fixed set of data operations exposed to LLM
// callers: per-entity lookups, driver comparison, id listing, and reload.
package tools

import "encoding/json"

// Result is the single tagged outcome type every operation returns:
// success-with-payload or failure-with-message. A failed lookup carries the
// valid identifiers so an automated caller can self-correct.
type Result struct {
	Data      any
	ErrMsg    string
	Available []string
}

// Ok wraps a success payload.
func Ok(data any) Result { return Result{Data: data} }

// NotFound wraps a recoverable lookup failure with the valid identifiers.
func NotFound(msg string, available []string) Result {
	return Result{ErrMsg: msg, Available: available}
}

// Failed reports whether the result is a failure.
func (r Result) Failed() bool { return r.ErrMsg != "" }

// MarshalJSON renders a success as its payload and a failure as
// {"error": ..., "available": [...]}.
func (r Result) MarshalJSON() ([]byte, error) {
	if r.Failed() {
		payload := map[string]any{"error": r.ErrMsg}
		if r.Available != nil {
			payload["available"] = r.Available
		}
		return json.Marshal(payload)
	}
	return json.Marshal(r.Data)
}
