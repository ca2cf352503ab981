package model

import (
	"bytes"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Payload is the prediction request body. A nil pointer marks a missing
// value and encodes as JSON null.
type Payload struct {
	Age           *float64
	Sex           *float64
	ChestPain     *float64
	BloodPressure *float64
	Cholesterol   *float64
	MaxHR         *float64
	STDepression  *float64
}

// ParseValue converts raw input text into a payload value. Surrounding
// whitespace is ignored and an empty string reports missing. Text that is not
// a number is kept as NaN rather than rejected; it is forwarded as null.
func ParseValue(raw string) (value *float64, missing bool) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return nil, true
	}
	parsed, err := strconv.ParseFloat(trimmed, 64)
	if err != nil {
		parsed = math.NaN()
	}
	return &parsed, false
}

// Float returns a pointer to v, handy for building payloads in code.
func Float(v float64) *float64 {
	return &v
}

func (p *Payload) slot(id string) (**float64, bool) {
	switch id {
	case FeatureAge:
		return &p.Age, true
	case FeatureSex:
		return &p.Sex, true
	case FeatureChestPain:
		return &p.ChestPain, true
	case FeatureBloodPressure:
		return &p.BloodPressure, true
	case FeatureCholesterol:
		return &p.Cholesterol, true
	case FeatureMaxHR:
		return &p.MaxHR, true
	case FeatureSTDepression:
		return &p.STDepression, true
	default:
		return nil, false
	}
}

// Set assigns the value for a feature id.
func (p *Payload) Set(id string, value *float64) error {
	slot, ok := p.slot(id)
	if !ok {
		return fmt.Errorf("model: unknown feature %q", id)
	}
	*slot = value
	return nil
}

// Value returns the value stored for a feature id. The boolean is false for
// unknown ids.
func (p Payload) Value(id string) (*float64, bool) {
	slot, ok := p.slot(id)
	if !ok {
		return nil, false
	}
	return *slot, true
}

// Missing lists the feature ids without a value, in request order.
func (p Payload) Missing() []string {
	var out []string
	for _, id := range FeatureIDs {
		if v, _ := p.Value(id); v == nil {
			out = append(out, id)
		}
	}
	return out
}

// Values returns the payload as a list ordered like FeatureIDs.
func (p Payload) Values() []*float64 {
	out := make([]*float64, 0, len(FeatureIDs))
	for _, id := range FeatureIDs {
		v, _ := p.Value(id)
		out = append(out, v)
	}
	return out
}

// MarshalJSON writes exactly the seven feature keys in request order.
// Non-finite numbers have no JSON form and are written as null.
func (p Payload) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for idx, id := range FeatureIDs {
		if idx > 0 {
			buf.WriteByte(',')
		}
		buf.WriteString(strconv.Quote(id))
		buf.WriteByte(':')
		v, _ := p.Value(id)
		if v == nil || math.IsNaN(*v) || math.IsInf(*v, 0) {
			buf.WriteString("null")
			continue
		}
		buf.WriteString(strconv.FormatFloat(*v, 'g', -1, 64))
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}
