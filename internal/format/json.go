package format

import (
	"encoding/json"

	"github.com/mvp-joe/distill/internal/compress"
	"github.com/mvp-joe/distill/internal/distill"
)

// jsonFormatter renders results as strict JSON, for machine consumers
// that want the result model verbatim.
type jsonFormatter struct{}

// NewJSONFormatter creates the JSON formatter.
func NewJSONFormatter() Formatter {
	return &jsonFormatter{}
}

// combinedPayload is the shape of FormatCombined output.
type combinedPayload struct {
	Distillation *distill.Result  `json:"distillation,omitempty"`
	Compression  *compress.Result `json:"compression,omitempty"`
}

func (f *jsonFormatter) FormatDistillation(result *distill.Result, opts Options) (string, error) {
	return marshalIndent(f.view(result, opts))
}

func (f *jsonFormatter) FormatCompression(result *compress.Result, opts Options) (string, error) {
	return marshalIndent(result)
}

func (f *jsonFormatter) FormatCombined(compression *compress.Result, distillation *distill.Result, opts Options) (string, error) {
	return marshalIndent(combinedPayload{
		Distillation: f.view(distillation, opts),
		Compression:  compression,
	})
}

// view produces the filtered copy that gets serialized. Metadata is
// always kept: the JSON variant is the verbatim rendering of the result
// model. The caller's result is never mutated.
func (f *jsonFormatter) view(result *distill.Result, opts Options) *distill.Result {
	if result == nil {
		return nil
	}
	out := *result
	out.APIs = filterAPIs(result.APIs, opts)
	return &out
}

func marshalIndent(v any) (string, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return "", err
	}
	return string(data), nil
}
