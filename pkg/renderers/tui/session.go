package tui

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/goliatone/go-cardioform/pkg/controller"
	"github.com/goliatone/go-cardioform/pkg/model"
)

// Submitter is the slice of controller.Controller a session drives.
type Submitter interface {
	Build() error
	Submit(ctx context.Context) (controller.Outcome, error)
}

// SessionOption configures a Session.
type SessionOption func(*Session)

// WithPromptDriver overrides the prompt driver used by the session.
func WithPromptDriver(driver PromptDriver) SessionOption {
	return func(s *Session) {
		if driver != nil {
			s.driver = driver
		}
	}
}

// WithOutput redirects banner and result output.
func WithOutput(out io.Writer) SessionOption {
	return func(s *Session) {
		if out != nil {
			s.out = out
		}
	}
}

// WithSessionStyles overrides the default styles.
func WithSessionStyles(styles Styles) SessionOption {
	return func(s *Session) {
		s.styles = styles
	}
}

// WithPrefill seeds the prompt defaults, keyed by field id.
func WithPrefill(values map[string]string) SessionOption {
	return func(s *Session) {
		for key, value := range values {
			s.answers[key] = value
		}
	}
}

// WithSingleRun stops after one submission instead of offering another run.
func WithSingleRun() SessionOption {
	return func(s *Session) {
		s.single = true
	}
}

// Session collects feature values in a terminal. It implements the
// controller ports: fields arrive through Form, answers are served through
// Inputs, and banners and results are printed to the output.
type Session struct {
	driver  PromptDriver
	out     io.Writer
	styles  Styles
	single  bool
	fields  []model.FieldDefinition
	answers map[string]string
	// bannerShown is set while the last printed banner is current.
	bannerShown bool
}

// NewSession constructs a session using survey prompts by default.
func NewSession(options ...SessionOption) *Session {
	s := &Session{
		driver:  newSurveyDriver(),
		out:     os.Stdout,
		styles:  NewStyles(nil),
		answers: make(map[string]string),
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(s)
	}
	return s
}

// Ports exposes the session as controller ports.
func (s *Session) Ports() controller.Ports {
	return controller.Ports{
		Form:   s,
		Inputs: s,
		Errors: bannerPort{s},
		Result: resultPort{s},
	}
}

// SetLayout implements controller.Form. Terminals prompt one field at a time.
func (s *Session) SetLayout(int) {}

// AddField implements controller.Form.
func (s *Session) AddField(field model.FieldDefinition) {
	s.fields = append(s.fields, field)
}

// Value implements controller.Inputs.
func (s *Session) Value(id string) string {
	return s.answers[id]
}

// ClearedNotice marks that a printed error no longer applies.
const ClearedNotice = "Previous error cleared."

type bannerPort struct{ s *Session }

func (p bannerPort) Show(label, message string) {
	fmt.Fprintln(p.s.out, FormatBanner(p.s.styles, label, message))
	p.s.bannerShown = true
}

// Clear cannot take printed lines back, so it prints a notice when a banner
// is current.
func (p bannerPort) Clear() {
	if !p.s.bannerShown {
		return
	}
	fmt.Fprintln(p.s.out, p.s.styles.Muted.Render(ClearedNotice))
	p.s.bannerShown = false
}

type resultPort struct{ s *Session }

func (p resultPort) Show(summary model.Summary) {
	fmt.Fprintln(p.s.out, FormatSummary(p.s.styles, summary))
}

// Answers returns a copy of the collected raw values.
func (s *Session) Answers() map[string]string {
	out := make(map[string]string, len(s.answers))
	for key, value := range s.answers {
		out[key] = value
	}
	return out
}

// Run builds the form, prompts for every field and submits, repeating while
// the user asks for another analysis.
func (s *Session) Run(ctx context.Context, submitter Submitter) error {
	if submitter == nil {
		return errors.New("tui: submitter is required")
	}
	if s.driver == nil {
		return errors.New("tui: prompt driver is nil")
	}
	if len(s.fields) == 0 {
		if err := submitter.Build(); err != nil {
			return fmt.Errorf("tui: build form: %w", err)
		}
	}

	for {
		if err := s.Prompt(ctx); err != nil {
			return err
		}
		if _, err := submitter.Submit(ctx); err != nil && errors.Is(err, context.Canceled) {
			return err
		}
		if s.single {
			return nil
		}
		again, err := s.driver.Confirm(ctx, ConfirmConfig{Message: "Run another analysis?"})
		if err != nil {
			return err
		}
		if !again {
			return nil
		}
	}
}

// Prompt asks for each field in definition order, offering the previous
// answer as the default.
func (s *Session) Prompt(ctx context.Context) error {
	for _, field := range s.fields {
		answer, err := s.driver.Input(ctx, InputConfig{
			Message:   field.Label + ":",
			Default:   s.answers[field.ID],
			Help:      promptHelp(field),
			Validator: validateNumber,
		})
		if err != nil {
			return err
		}
		s.answers[field.ID] = answer
	}
	return nil
}

func promptHelp(field model.FieldDefinition) string {
	parts := make([]string, 0, 2)
	if helper := plainText(field.Helper); helper != "" {
		parts = append(parts, helper)
	}
	if field.Placeholder != "" {
		parts = append(parts, "("+field.Placeholder+")")
	}
	return strings.Join(parts, " ")
}

// validateNumber accepts blanks so the missing-value message still applies.
func validateNumber(text string) error {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return nil
	}
	if _, err := strconv.ParseFloat(trimmed, 64); err != nil {
		return fmt.Errorf("%q is not a number", trimmed)
	}
	return nil
}
