package model

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"
)

// Feature identifiers double as input ids on every surface and as JSON keys
// in the prediction request body.
const (
	FeatureAge           = "age"
	FeatureSex           = "sex"
	FeatureChestPain     = "chest_pain"
	FeatureBloodPressure = "blood_pressure"
	FeatureCholesterol   = "cholesterol"
	FeatureMaxHR         = "max_hr"
	FeatureSTDepression  = "st_depression"
)

// FeatureIDs lists the feature identifiers in request order.
var FeatureIDs = []string{
	FeatureAge,
	FeatureSex,
	FeatureChestPain,
	FeatureBloodPressure,
	FeatureCholesterol,
	FeatureMaxHR,
	FeatureSTDepression,
}

const defaultColumns = 2

//go:embed fields.yaml
var embeddedFields []byte

// FieldDefinition describes one labeled numeric input.
type FieldDefinition struct {
	ID          string `json:"id" yaml:"id"`
	Label       string `json:"label" yaml:"label"`
	Placeholder string `json:"placeholder" yaml:"placeholder"`
	Helper      string `json:"helper" yaml:"helper"`
}

// FieldSet is the ordered, immutable collection of field definitions plus the
// grid hint renderers use to lay them out.
type FieldSet struct {
	fields  []FieldDefinition
	columns int
}

type fieldsFile struct {
	Layout struct {
		Columns int `json:"columns" yaml:"columns"`
	} `json:"layout" yaml:"layout"`
	Fields []FieldDefinition `json:"fields" yaml:"fields"`
}

var (
	defaultOnce sync.Once
	defaultSet  FieldSet
	defaultErr  error
)

// DefaultFields returns the built-in seven feature definitions.
func DefaultFields() FieldSet {
	defaultOnce.Do(func() {
		defaultSet, defaultErr = ParseFields(embeddedFields, "fields.yaml")
	})
	if defaultErr != nil {
		// The embedded document is part of the binary; failing here is a build defect.
		panic(defaultErr)
	}
	return defaultSet
}

// LoadFieldsFile reads field definitions from a JSON or YAML file on disk.
func LoadFieldsFile(path string) (FieldSet, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return FieldSet{}, fmt.Errorf("model: read fields %s: %w", path, err)
	}
	return ParseFields(data, path)
}

// ParseFields decodes a fields document and checks that it names each
// feature exactly once. Definition order is preserved as written.
func ParseFields(data []byte, source string) (FieldSet, error) {
	if len(strings.TrimSpace(string(data))) == 0 {
		return FieldSet{}, fmt.Errorf("model: fields document %s is empty", source)
	}

	var doc fieldsFile
	if err := json.Unmarshal(data, &doc); err != nil {
		doc = fieldsFile{}
		if err := yaml.Unmarshal(data, &doc); err != nil {
			return FieldSet{}, fmt.Errorf("model: parse %s: invalid JSON or YAML", source)
		}
	}

	return NewFieldSet(doc.Fields, doc.Layout.Columns, source)
}

// NewFieldSet validates and freezes a list of definitions. A non-positive
// column count falls back to the two-column layout.
func NewFieldSet(fields []FieldDefinition, columns int, source string) (FieldSet, error) {
	known := make(map[string]struct{}, len(FeatureIDs))
	for _, id := range FeatureIDs {
		known[id] = struct{}{}
	}

	seen := make(map[string]struct{}, len(fields))
	out := make([]FieldDefinition, 0, len(fields))
	for idx, field := range fields {
		field.ID = strings.TrimSpace(field.ID)
		if field.ID == "" {
			return FieldSet{}, fmt.Errorf("model: %s field %d has an empty id", source, idx)
		}
		if _, ok := known[field.ID]; !ok {
			return FieldSet{}, fmt.Errorf("model: %s field %q is not a known feature", source, field.ID)
		}
		if _, dup := seen[field.ID]; dup {
			return FieldSet{}, fmt.Errorf("model: %s field %q defined twice", source, field.ID)
		}
		seen[field.ID] = struct{}{}
		if strings.TrimSpace(field.Label) == "" {
			field.Label = field.ID
		}
		out = append(out, field)
	}

	var missing []string
	for _, id := range FeatureIDs {
		if _, ok := seen[id]; !ok {
			missing = append(missing, id)
		}
	}
	if len(missing) > 0 {
		return FieldSet{}, fmt.Errorf("model: %s is missing features: %s", source, strings.Join(missing, ", "))
	}

	if columns <= 0 {
		columns = defaultColumns
	}
	return FieldSet{fields: out, columns: columns}, nil
}

// Fields returns a copy of the definitions in display order.
func (s FieldSet) Fields() []FieldDefinition {
	return append([]FieldDefinition(nil), s.fields...)
}

// Len reports the number of definitions.
func (s FieldSet) Len() int {
	return len(s.fields)
}

// Columns reports the grid column hint.
func (s FieldSet) Columns() int {
	if s.columns <= 0 {
		return defaultColumns
	}
	return s.columns
}

// Lookup returns the definition for id.
func (s FieldSet) Lookup(id string) (FieldDefinition, bool) {
	for _, field := range s.fields {
		if field.ID == id {
			return field, true
		}
	}
	return FieldDefinition{}, false
}

// IDs returns the field ids in display order.
func (s FieldSet) IDs() []string {
	ids := make([]string, 0, len(s.fields))
	for _, field := range s.fields {
		ids = append(ids, field.ID)
	}
	return ids
}
