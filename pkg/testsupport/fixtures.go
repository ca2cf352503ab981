package testsupport

import (
	"bytes"
	"context"
	"io"
	"testing"

	"github.com/goliatone/go-cardioform/pkg/model"
)

// Context returns a background context for tests.
func Context() context.Context {
	return context.Background()
}

// FilledInputs returns raw input values for every default feature.
func FilledInputs() map[string]string {
	return map[string]string{
		model.FeatureAge:           "54",
		model.FeatureSex:           "1",
		model.FeatureChestPain:     "2",
		model.FeatureBloodPressure: "130",
		model.FeatureCholesterol:   "245",
		model.FeatureMaxHR:         "160",
		model.FeatureSTDepression:  "1.4",
	}
}

// FilledPayload is the payload FilledInputs collects into.
func FilledPayload() model.Payload {
	return model.Payload{
		Age:           model.Float(54),
		Sex:           model.Float(1),
		ChestPain:     model.Float(2),
		BloodPressure: model.Float(130),
		Cholesterol:   model.Float(245),
		MaxHR:         model.Float(160),
		STDepression:  model.Float(1.4),
	}
}

// CaptureTemplateOutput executes a render function that writes to an io.Writer,
// returning both the string result and the writer contents.
func CaptureTemplateOutput(t *testing.T, render func(io.Writer) (string, error)) (string, string) {
	t.Helper()

	var buf bytes.Buffer
	out, err := render(&buf)
	if err != nil {
		t.Fatalf("render template: %v", err)
	}

	return out, buf.String()
}
