package cli

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/slrename/slrename/internal/report"
)

var jsonOutput bool

// Response is the envelope every command emits in --json mode. Scripted
// callers branch on ok and read data; warnings carry the per-file codes
// that did not stop the run.
type Response struct {
	OK       bool        `json:"ok"`
	Data     interface{} `json:"data,omitempty"`
	Error    *ErrorInfo  `json:"error,omitempty"`
	Warnings []Warning   `json:"warnings,omitempty"`
	Meta     *Meta       `json:"meta,omitempty"`
}

// ErrorInfo is the stable error shape: code for machines, message for
// humans, details for structured context such as ambiguity candidates.
type ErrorInfo struct {
	Code       string      `json:"code"`
	Message    string      `json:"message"`
	Details    interface{} `json:"details,omitempty"`
	Suggestion string      `json:"suggestion,omitempty"`
}

// Warning is a non-fatal finding attached to an otherwise successful run.
type Warning struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Ref     string `json:"ref,omitempty"`
}

// Meta carries response metadata such as list sizes and timing.
type Meta struct {
	Count     int   `json:"count,omitempty"`
	ElapsedMs int64 `json:"elapsed_ms,omitempty"`
}

func isJSONOutput() bool {
	return jsonOutput
}

func emit(resp Response) {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	_ = enc.Encode(resp)
}

func outputSuccess(data interface{}, meta *Meta) {
	outputSuccessWithWarnings(data, nil, meta)
}

func outputSuccessWithWarnings(data interface{}, warnings []Warning, meta *Meta) {
	emit(Response{OK: true, Data: data, Warnings: warnings, Meta: meta})
}

func outputError(code, message string, details interface{}, suggestion string) {
	emit(Response{OK: false, Error: &ErrorInfo{
		Code:       code,
		Message:    message,
		Details:    details,
		Suggestion: suggestion,
	}})
}

// convertWarnings maps run warnings into the response envelope.
func convertWarnings(warnings []report.Warning) []Warning {
	if len(warnings) == 0 {
		return nil
	}
	out := make([]Warning, 0, len(warnings))
	for _, w := range warnings {
		out = append(out, Warning{Code: w.Code, Message: w.Message, Ref: w.Path})
	}
	return out
}

// handleError reports err in the active output mode: as a JSON error
// envelope, or returned for cobra to print. Returning nil after the
// envelope keeps cobra from printing the error a second time.
func handleError(code string, err error, suggestion string) error {
	if jsonOutput {
		outputError(code, err.Error(), nil, suggestion)
		return nil
	}
	return err
}

func handleErrorMsg(code, message, suggestion string) error {
	if jsonOutput {
		outputError(code, message, nil, suggestion)
		return nil
	}
	return fmt.Errorf("%s", message)
}

func handleErrorWithDetails(code, message, suggestion string, details interface{}) error {
	if jsonOutput {
		outputError(code, message, details, suggestion)
		return nil
	}
	return fmt.Errorf("%s", message)
}
