package predict

import (
	"context"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/getkin/kin-openapi/openapi3"

	"github.com/goliatone/go-cardioform/pkg/model"
)

//go:embed openapi.yaml
var embeddedContract []byte

const (
	predictPath   = "/predict"
	successStatus = "200"
)

// Contract is the prediction API description. It pins the request properties
// the form must collect and the shape of a successful response.
type Contract struct {
	spec     *openapi3.T
	request  *openapi3.Schema
	response *openapi3.Schema
}

// DefaultContract loads the embedded OpenAPI document.
func DefaultContract(ctx context.Context) (*Contract, error) {
	return LoadContract(ctx, embeddedContract)
}

// LoadContract parses and validates an OpenAPI 3 document that declares
// POST /predict with a JSON request body and a 200 JSON response.
func LoadContract(ctx context.Context, raw []byte) (*Contract, error) {
	if len(raw) == 0 {
		return nil, errors.New("predict contract: document payload is empty")
	}

	loader := &openapi3.Loader{Context: ctx}
	spec, err := loader.LoadFromData(raw)
	if err != nil {
		return nil, fmt.Errorf("predict contract: load document: %w", err)
	}
	if err := spec.Validate(ctx, openapi3.DisableExamplesValidation()); err != nil {
		return nil, fmt.Errorf("predict contract: validate: %w", err)
	}

	if spec.Paths == nil {
		return nil, errors.New("predict contract: document does not contain any paths")
	}
	item := spec.Paths.Map()[predictPath]
	if item == nil || item.Post == nil {
		return nil, fmt.Errorf("predict contract: POST %s is not declared", predictPath)
	}

	request, err := requestSchema(item.Post.RequestBody)
	if err != nil {
		return nil, err
	}
	response, err := responseSchema(item.Post.Responses)
	if err != nil {
		return nil, err
	}

	return &Contract{spec: spec, request: request, response: response}, nil
}

func requestSchema(body *openapi3.RequestBodyRef) (*openapi3.Schema, error) {
	if body == nil || body.Value == nil {
		return nil, errors.New("predict contract: request body is not declared")
	}
	mt, ok := body.Value.Content["application/json"]
	if !ok || mt.Schema == nil || mt.Schema.Value == nil {
		return nil, errors.New("predict contract: request body has no application/json schema")
	}
	return mt.Schema.Value, nil
}

func responseSchema(responses *openapi3.Responses) (*openapi3.Schema, error) {
	if responses == nil {
		return nil, errors.New("predict contract: responses are not declared")
	}
	ref := responses.Map()[successStatus]
	if ref == nil || ref.Value == nil {
		return nil, fmt.Errorf("predict contract: %s response is not declared", successStatus)
	}
	mt, ok := ref.Value.Content["application/json"]
	if !ok || mt.Schema == nil || mt.Schema.Value == nil {
		return nil, errors.New("predict contract: success response has no application/json schema")
	}
	return mt.Schema.Value, nil
}

// Title reports the API title declared by the document.
func (c *Contract) Title() string {
	if c == nil || c.spec == nil || c.spec.Info == nil {
		return ""
	}
	return c.spec.Info.Title
}

// RequestProperties returns the sorted request body property names.
func (c *Contract) RequestProperties() []string {
	if c == nil || c.request == nil {
		return nil
	}
	names := make([]string, 0, len(c.request.Properties))
	for name := range c.request.Properties {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// CheckFields reports an error unless the field set names exactly the request
// body properties.
func (c *Contract) CheckFields(fields model.FieldSet) error {
	if c == nil {
		return nil
	}
	declared := make(map[string]struct{}, len(c.request.Properties))
	for name := range c.request.Properties {
		declared[name] = struct{}{}
	}

	var extra []string
	for _, id := range fields.IDs() {
		if _, ok := declared[id]; !ok {
			extra = append(extra, id)
			continue
		}
		delete(declared, id)
	}

	var missing []string
	for name := range declared {
		missing = append(missing, name)
	}
	sort.Strings(missing)

	var problems []string
	if len(extra) > 0 {
		problems = append(problems, "not in request schema: "+strings.Join(extra, ", "))
	}
	if len(missing) > 0 {
		problems = append(problems, "not collected by the form: "+strings.Join(missing, ", "))
	}
	if len(problems) > 0 {
		return fmt.Errorf("predict contract: field mismatch (%s)", strings.Join(problems, "; "))
	}
	return nil
}

// ValidateResult checks a raw success body against the response schema.
func (c *Contract) ValidateResult(body []byte) error {
	if c == nil || c.response == nil {
		return nil
	}
	var decoded any
	if err := json.Unmarshal(body, &decoded); err != nil {
		return fmt.Errorf("predict contract: decode response: %w", err)
	}
	if err := c.response.VisitJSON(decoded); err != nil {
		return fmt.Errorf("predict contract: response does not match schema: %w", err)
	}
	return nil
}
