package controller

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/goliatone/go-cardioform/pkg/model"
	"github.com/goliatone/go-cardioform/pkg/predict"
)

const (
	// ErrorLabel prefixes every banner message.
	ErrorLabel = "Error"
	// MessageMissingValues is shown when a field is blank at submit time.
	MessageMissingValues = "Please provide a value for each feature before running the analysis."
	// MessageUnreachable is shown when the request could not complete.
	MessageUnreachable = "Unable to reach the prediction API. Please confirm that the backend is running."

	statusMessageFormat = "The server responded with status %d. Details: %s"
)

var (
	// ErrMissingValues is returned by Submit when validation stops the flow.
	ErrMissingValues = errors.New("controller: missing feature values")
	// ErrBusy is returned by Submit while another submission is pending.
	ErrBusy = errors.New("controller: submission already in progress")
)

// Outcome classifies how a Submit call ended.
type Outcome int

const (
	OutcomeRendered Outcome = iota
	OutcomeInvalid
	OutcomeServerError
	OutcomeUnreachable
	OutcomeBusy
)

func (o Outcome) String() string {
	switch o {
	case OutcomeRendered:
		return "rendered"
	case OutcomeInvalid:
		return "invalid"
	case OutcomeServerError:
		return "server_error"
	case OutcomeUnreachable:
		return "unreachable"
	case OutcomeBusy:
		return "busy"
	default:
		return fmt.Sprintf("outcome(%d)", int(o))
	}
}

// StatusMessage formats the banner text for a non-2xx response.
func StatusMessage(status int, body string) string {
	return fmt.Sprintf(statusMessageFormat, status, body)
}

// Option configures a Controller.
type Option func(*Controller)

// WithGuard replaces the per-controller submission guard.
func WithGuard(guard Guard) Option {
	return func(c *Controller) {
		if guard != nil {
			c.guard = guard
		}
	}
}

// WithLogger attaches a structured logger.
func WithLogger(logger *zap.Logger) Option {
	return func(c *Controller) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// Controller owns the field definitions and drives one form surface.
type Controller struct {
	fields    model.FieldSet
	predictor predict.Predictor
	ports     Ports
	guard     Guard
	logger    *zap.Logger
}

// New wires a controller. Inputs, Errors and Result ports are required; Form
// is only needed by Build.
func New(fields model.FieldSet, predictor predict.Predictor, ports Ports, options ...Option) (*Controller, error) {
	if fields.Len() == 0 {
		return nil, errors.New("controller: field set is empty")
	}
	if predictor == nil {
		return nil, errors.New("controller: predictor is required")
	}
	if ports.Inputs == nil || ports.Errors == nil || ports.Result == nil {
		return nil, errors.New("controller: inputs, error banner and result ports are required")
	}

	c := &Controller{
		fields:    fields,
		predictor: predictor,
		ports:     ports,
		guard:     NewGuard(),
		logger:    zap.NewNop(),
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(c)
	}
	return c, nil
}

// Fields returns the controller's field set.
func (c *Controller) Fields() model.FieldSet {
	return c.fields
}

// Build adds one labeled input per definition to the form port.
func (c *Controller) Build() error {
	if c.ports.Form == nil {
		return errors.New("controller: form port is required to build")
	}
	c.ports.Form.SetLayout(c.fields.Columns())
	for _, field := range c.fields.Fields() {
		c.ports.Form.AddField(field)
	}
	return nil
}

// Collect reads every input. missing is true when any value is blank.
func (c *Controller) Collect() (payload model.Payload, missing bool) {
	for _, field := range c.fields.Fields() {
		value, blank := model.ParseValue(c.ports.Inputs.Value(field.ID))
		if blank {
			missing = true
		}
		// ids were checked against the feature list when the set was built
		_ = payload.Set(field.ID, value)
	}
	return payload, missing
}

// Submit runs one submission. The returned error explains non-rendered
// outcomes for logging; the user-facing message is already on the banner.
func (c *Controller) Submit(ctx context.Context) (Outcome, error) {
	release, ok := c.guard.TryAcquire()
	if !ok {
		c.logger.Debug("submission ignored while pending")
		return OutcomeBusy, ErrBusy
	}
	defer release()

	c.ports.Errors.Clear()

	payload, missing := c.Collect()
	if missing {
		c.RenderError(MessageMissingValues)
		c.logger.Info("submission rejected", zap.Strings("missing", payload.Missing()))
		return OutcomeInvalid, ErrMissingValues
	}

	result, err := c.predictor.Predict(ctx, payload)
	if err != nil {
		var statusErr *predict.StatusError
		if errors.As(err, &statusErr) {
			c.RenderError(StatusMessage(statusErr.StatusCode, statusErr.Details()))
			c.logger.Warn("prediction API returned an error", zap.Int("status", statusErr.StatusCode))
			return OutcomeServerError, err
		}
		c.RenderError(MessageUnreachable)
		c.logger.Warn("prediction API unreachable", zap.Error(err))
		return OutcomeUnreachable, err
	}

	c.RenderResult(result)
	c.logger.Info("prediction rendered",
		zap.Float64("prediction", result.Prediction),
		zap.Float64("probability", result.Probability),
		zap.String("risk_level", result.RiskLevel),
	)
	return OutcomeRendered, nil
}

// RenderError shows message on the error banner.
func (c *Controller) RenderError(message string) {
	c.ports.Errors.Show(ErrorLabel, message)
}

// RenderResult replaces the result panel with the summary of result.
func (c *Controller) RenderResult(result model.PredictionResult) {
	c.ports.Result.Show(model.Summarize(result))
}
