package render_test

import (
	"context"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-cardioform/pkg/controller"
	"github.com/goliatone/go-cardioform/pkg/model"
	"github.com/goliatone/go-cardioform/pkg/render"
	"github.com/goliatone/go-cardioform/pkg/testsupport"
)

type cannedPredictor struct {
	result model.PredictionResult
}

func (c cannedPredictor) Predict(context.Context, model.Payload) (model.PredictionResult, error) {
	return c.result, nil
}

func TestPageActsAsControllerPorts(t *testing.T) {
	page := render.NewPage("Heart check", testsupport.FilledInputs())

	ctrl, err := controller.New(model.DefaultFields(),
		cannedPredictor{result: model.PredictionResult{Prediction: 1, Probability: 0.8734, RiskLevel: "High Risk"}},
		page.Ports(),
	)
	if err != nil {
		t.Fatalf("new controller: %v", err)
	}
	if err := ctrl.Build(); err != nil {
		t.Fatalf("build: %v", err)
	}

	if len(page.Fields) != len(model.FeatureIDs) || page.Columns != 2 {
		t.Fatalf("unexpected built page: %d fields, %d columns", len(page.Fields), page.Columns)
	}
	if page.Fields[6].Value != "1.4" {
		t.Fatalf("expected submitted value to prefill input, got %q", page.Fields[6].Value)
	}

	page.Banner.Show("Error", "stale")
	if outcome, err := ctrl.Submit(context.Background()); err != nil || outcome != controller.OutcomeRendered {
		t.Fatalf("submit: %v %v", outcome, err)
	}
	if diff := cmp.Diff(render.Banner{}, page.Banner); diff != "" {
		t.Fatalf("banner not cleared (-want +got):\n%s", diff)
	}
	if page.Result.Summary == nil || page.Result.Summary.Probability != "87.34%" {
		t.Fatalf("expected result summary on page, got %+v", page.Result.Summary)
	}
}

func TestNewPageCopiesValues(t *testing.T) {
	values := map[string]string{"age": "40"}
	page := render.NewPage("", values)
	values["age"] = "99"
	if page.Value("age") != "40" {
		t.Fatalf("page should not alias caller values")
	}
}
