package tui

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-cardioform/pkg/controller"
	"github.com/goliatone/go-cardioform/pkg/model"
	"github.com/goliatone/go-cardioform/pkg/testsupport"
)

type stubDriver struct {
	inputs       []string
	confirm      []bool
	inputConfigs []InputConfig
	inputErr     error
	inputPos     int
	confirmPos   int
}

func (s *stubDriver) Input(_ context.Context, cfg InputConfig) (string, error) {
	if s.inputErr != nil {
		return "", s.inputErr
	}
	if s.inputPos >= len(s.inputs) {
		return "", errors.New("no input scripted")
	}
	s.inputConfigs = append(s.inputConfigs, cfg)
	val := s.inputs[s.inputPos]
	s.inputPos++
	return val, nil
}

func (s *stubDriver) Confirm(_ context.Context, _ ConfirmConfig) (bool, error) {
	if s.confirmPos >= len(s.confirm) {
		return false, errors.New("no confirm scripted")
	}
	val := s.confirm[s.confirmPos]
	s.confirmPos++
	return val, nil
}

type fakePredictor struct {
	result   model.PredictionResult
	err      error
	payloads []model.Payload
}

func (f *fakePredictor) Predict(_ context.Context, payload model.Payload) (model.PredictionResult, error) {
	f.payloads = append(f.payloads, payload)
	return f.result, f.err
}

func filledAnswers() []string {
	inputs := testsupport.FilledInputs()
	answers := make([]string, 0, len(model.FeatureIDs))
	for _, id := range model.FeatureIDs {
		answers = append(answers, inputs[id])
	}
	return answers
}

func newSessionController(t *testing.T, session *Session, predictor *fakePredictor) *controller.Controller {
	t.Helper()
	ctrl, err := controller.New(model.DefaultFields(), predictor, session.Ports())
	if err != nil {
		t.Fatalf("new controller: %v", err)
	}
	return ctrl
}

func TestSession_RunRendersResult(t *testing.T) {
	driver := &stubDriver{inputs: filledAnswers()}
	var out bytes.Buffer
	session := NewSession(WithPromptDriver(driver), WithOutput(&out), WithSingleRun())
	predictor := &fakePredictor{result: model.PredictionResult{Prediction: 1, Probability: 0.8734, RiskLevel: "Low Risk"}}

	if err := session.Run(testsupport.Context(), newSessionController(t, session, predictor)); err != nil {
		t.Fatalf("run: %v", err)
	}

	if len(predictor.payloads) != 1 {
		t.Fatalf("expected one prediction, got %d", len(predictor.payloads))
	}
	if diff := cmp.Diff(testsupport.FilledPayload(), predictor.payloads[0]); diff != "" {
		t.Fatalf("payload mismatch (-want +got):\n%s", diff)
	}

	output := out.String()
	for _, fragment := range []string{model.StatusPositive, "Risk classification: Low Risk", "87.34%", model.InterpretationLead} {
		if !strings.Contains(output, fragment) {
			t.Fatalf("expected output to contain %q\n%s", fragment, output)
		}
	}

	if len(driver.inputConfigs) != len(model.FeatureIDs) {
		t.Fatalf("expected %d prompts, got %d", len(model.FeatureIDs), len(driver.inputConfigs))
	}
	if got := driver.inputConfigs[0].Message; got != "Age:" {
		t.Fatalf("unexpected first prompt %q", got)
	}
	if got := driver.inputConfigs[0].Help; got != "Age in years (e.g. 54)" {
		t.Fatalf("unexpected help %q", got)
	}
}

func TestSession_BlankAnswerShowsMissingMessage(t *testing.T) {
	answers := filledAnswers()
	answers[3] = "  "
	driver := &stubDriver{inputs: answers}
	var out bytes.Buffer
	session := NewSession(WithPromptDriver(driver), WithOutput(&out), WithSingleRun())
	predictor := &fakePredictor{}

	if err := session.Run(testsupport.Context(), newSessionController(t, session, predictor)); err != nil {
		t.Fatalf("run: %v", err)
	}

	if len(predictor.payloads) != 0 {
		t.Fatalf("expected no prediction request")
	}
	want := controller.ErrorLabel + " · " + controller.MessageMissingValues
	if !strings.Contains(out.String(), want) {
		t.Fatalf("expected banner %q, got %q", want, out.String())
	}
}

func TestSession_ResubmitClearsPrintedBanner(t *testing.T) {
	blank := filledAnswers()
	blank[0] = ""
	driver := &stubDriver{
		inputs:  append(blank, filledAnswers()...),
		confirm: []bool{true, false},
	}
	var out bytes.Buffer
	session := NewSession(WithPromptDriver(driver), WithOutput(&out))
	predictor := &fakePredictor{result: model.PredictionResult{Prediction: 0, Probability: 0.2, RiskLevel: "Low Risk"}}

	if err := session.Run(testsupport.Context(), newSessionController(t, session, predictor)); err != nil {
		t.Fatalf("run: %v", err)
	}

	output := out.String()
	banner := strings.Index(output, controller.MessageMissingValues)
	cleared := strings.Index(output, ClearedNotice)
	result := strings.Index(output, model.StatusNegative)
	if banner < 0 || cleared < banner || result < cleared {
		t.Fatalf("expected banner, cleared notice, then result in order:\n%s", output)
	}
	if strings.Count(output, ClearedNotice) != 1 {
		t.Fatalf("expected a single cleared notice:\n%s", output)
	}
}

func TestSession_RepeatsWithPreviousAnswersAsDefaults(t *testing.T) {
	answers := filledAnswers()
	driver := &stubDriver{
		inputs:  append(append([]string{}, answers...), answers...),
		confirm: []bool{true, false},
	}
	session := NewSession(WithPromptDriver(driver), WithOutput(&bytes.Buffer{}))
	predictor := &fakePredictor{result: model.PredictionResult{Probability: 0.2, RiskLevel: "Low Risk"}}

	if err := session.Run(testsupport.Context(), newSessionController(t, session, predictor)); err != nil {
		t.Fatalf("run: %v", err)
	}

	if len(predictor.payloads) != 2 {
		t.Fatalf("expected two predictions, got %d", len(predictor.payloads))
	}
	second := driver.inputConfigs[len(model.FeatureIDs)]
	if second.Default != "54" {
		t.Fatalf("expected previous answer as default, got %q", second.Default)
	}
}

func TestSession_AbortStopsRun(t *testing.T) {
	driver := &stubDriver{inputErr: ErrAborted}
	session := NewSession(WithPromptDriver(driver), WithOutput(&bytes.Buffer{}))
	predictor := &fakePredictor{}

	err := session.Run(testsupport.Context(), newSessionController(t, session, predictor))
	if !errors.Is(err, ErrAborted) {
		t.Fatalf("expected ErrAborted, got %v", err)
	}
	if len(predictor.payloads) != 0 {
		t.Fatalf("expected no prediction request")
	}
}

func TestSession_PrefillSeedsDefaults(t *testing.T) {
	driver := &stubDriver{inputs: filledAnswers()}
	session := NewSession(
		WithPromptDriver(driver),
		WithOutput(&bytes.Buffer{}),
		WithPrefill(map[string]string{model.FeatureAge: "61"}),
		WithSingleRun(),
	)
	predictor := &fakePredictor{result: model.PredictionResult{RiskLevel: "High Risk", Probability: 0.9}}

	if err := session.Run(testsupport.Context(), newSessionController(t, session, predictor)); err != nil {
		t.Fatalf("run: %v", err)
	}
	if got := driver.inputConfigs[0].Default; got != "61" {
		t.Fatalf("expected prefilled default, got %q", got)
	}
	if got := session.Answers()[model.FeatureAge]; got != "54" {
		t.Fatalf("expected answer to replace prefill, got %q", got)
	}
}

func TestValidateNumber(t *testing.T) {
	for _, input := range []string{"", "  ", "54", "1.4", "-2", "1e3"} {
		if err := validateNumber(input); err != nil {
			t.Fatalf("expected %q to be accepted: %v", input, err)
		}
	}
	for _, input := range []string{"abc", "12a"} {
		if err := validateNumber(input); err == nil {
			t.Fatalf("expected %q to be rejected", input)
		}
	}
}

func TestPromptHelpStripsMarkup(t *testing.T) {
	got := promptHelp(model.FieldDefinition{Helper: "Age in <em>years</em>", Placeholder: "e.g. 54"})
	if got != "Age in years (e.g. 54)" {
		t.Fatalf("unexpected help %q", got)
	}
}
