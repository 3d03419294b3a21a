package analysis

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/santhosh-tekuri/jsonschema/v5"

	"github.com/joseph-ayodele/mpstats/constants"
	"github.com/joseph-ayodele/mpstats/internal/common"
)

// Request is one analysis run: which folder, which files, which metric and
// optional specification limits. A nil limit falls back to the observed
// extreme (see stats.DefaultLimits).
type Request struct {
	Folder string           `json:"folder"`
	Filter string           `json:"filter,omitempty"`
	Metric constants.Metric `json:"metric"`
	USL    *float64         `json:"usl,omitempty"`
	LSL    *float64         `json:"lsl,omitempty"`
}

// Validate checks the request before any filesystem access.
func (r Request) Validate() error {
	return common.NewValidator().
		Field("folder", r.Folder, common.Required).
		Field("metric", string(r.Metric), common.OneOf(constants.AsStringSlice()...)).
		Field("usl", r.USL, common.Finite).
		Field("lsl", r.LSL, common.Finite).
		Err()
}

// RequestJSONSchema describes the JSON form of Request accepted over the API.
func RequestJSONSchema() map[string]any {
	return map[string]any{
		"type":                 "object",
		"additionalProperties": false,
		"properties": map[string]any{
			"folder": map[string]any{"type": "string", "minLength": 1},
			"filter": map[string]any{"type": "string"},
			"metric": map[string]any{"type": "string", "enum": constants.AsStringSlice()},
			"usl":    map[string]any{"type": "number"},
			"lsl":    map[string]any{"type": "number"},
		},
		"required": []string{"folder", "metric"},
	}
}

var requestSchema = func() *jsonschema.Schema {
	s, err := compileSchema(RequestJSONSchema())
	if err != nil {
		panic(err)
	}
	return s
}()

func compileSchema(schemaMap map[string]any) (*jsonschema.Schema, error) {
	b, err := json.Marshal(schemaMap)
	if err != nil {
		return nil, fmt.Errorf("marshal schema: %w", err)
	}
	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource("request.json", bytes.NewReader(b)); err != nil {
		return nil, fmt.Errorf("add schema: %w", err)
	}
	schema, err := compiler.Compile("request.json")
	if err != nil {
		return nil, fmt.Errorf("compile schema: %w", err)
	}
	return schema, nil
}

// DecodeRequest validates data against RequestJSONSchema and decodes it.
// On the wire the metric must be a canonical label such as "X-Maximum".
func DecodeRequest(data []byte) (Request, error) {
	var v any
	if err := json.Unmarshal(data, &v); err != nil {
		return Request{}, common.NewAppError("INVALID_ARGUMENT", "request is not valid JSON", fmt.Errorf("%w: %v", common.ErrInvalidInput, err))
	}
	if err := requestSchema.Validate(v); err != nil {
		return Request{}, common.NewAppError("INVALID_ARGUMENT", "request does not match schema", fmt.Errorf("%w: %v", common.ErrInvalidInput, err))
	}

	var req Request
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&req); err != nil {
		return Request{}, common.NewAppError("INVALID_ARGUMENT", "decode request", fmt.Errorf("%w: %v", common.ErrInvalidInput, err))
	}
	req.Folder = strings.TrimSpace(req.Folder)
	return req, req.Validate()
}
