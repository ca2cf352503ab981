package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/goliatone/go-cardioform/pkg/controller"
	"github.com/goliatone/go-cardioform/pkg/model"
	"github.com/goliatone/go-cardioform/pkg/predict"
	"github.com/goliatone/go-cardioform/pkg/render"
	"github.com/goliatone/go-cardioform/pkg/renderers/tui"
)

// featureFlags maps flag names to feature ids.
var featureFlags = []struct {
	flag string
	id   string
}{
	{"age", model.FeatureAge},
	{"sex", model.FeatureSex},
	{"chest-pain", model.FeatureChestPain},
	{"blood-pressure", model.FeatureBloodPressure},
	{"cholesterol", model.FeatureCholesterol},
	{"max-hr", model.FeatureMaxHR},
	{"st-depression", model.FeatureSTDepression},
}

type recordingPredictor struct {
	inner predict.Predictor
	last  model.PredictionResult
}

func (r *recordingPredictor) Predict(ctx context.Context, payload model.Payload) (model.PredictionResult, error) {
	result, err := r.inner.Predict(ctx, payload)
	if err == nil {
		r.last = result
	}
	return result, err
}

func newPredictCmd(root *rootOptions) *cobra.Command {
	values := make(map[string]*string, len(featureFlags))

	cmd := &cobra.Command{
		Use:   "predict",
		Short: "Run a single prediction from flags",
		Long: `Run a single prediction using the configured prediction API.
Features: age, sex, chest_pain, blood_pressure, cholesterol, max_hr, st_depression.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := newApp(cmd.Context(), root.cfg, root.logger)
			if err != nil {
				return err
			}

			inputs := make(map[string]string, len(values))
			for id, value := range values {
				inputs[id] = *value
			}
			page := render.NewPage(root.cfg.Form.Title, inputs)

			recorder := &recordingPredictor{inner: a.predictor}
			ctrl, err := controller.New(a.fields, recorder, page.Ports(),
				controller.WithLogger(root.logger.Named("controller")),
			)
			if err != nil {
				return err
			}

			outcome, err := ctrl.Submit(cmd.Context())
			if outcome != controller.OutcomeRendered {
				if page.Banner.Visible {
					fmt.Fprintln(cmd.ErrOrStderr(), page.Banner.Label+": "+page.Banner.Message)
				}
				if err == nil {
					err = errors.New("prediction failed")
				}
				return fmt.Errorf("predict: %s: %w", outcome, err)
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Predicted label: %g\n", recorder.last.Prediction)
			fmt.Fprintf(out, "Positive class probability: %.4f\n", recorder.last.Probability)
			if page.Result.Summary != nil {
				fmt.Fprintln(out)
				fmt.Fprintln(out, tui.FormatSummary(tui.NewStyles(a.theme.Tokens), *page.Result.Summary))
			}
			return nil
		},
	}

	for _, feature := range featureFlags {
		value := new(string)
		values[feature.id] = value
		cmd.Flags().StringVar(value, feature.flag, "", "value for "+feature.id)
		_ = cmd.MarkFlagRequired(feature.flag)
	}
	return cmd
}
