package main

import (
	"errors"

	"github.com/spf13/cobra"

	"github.com/goliatone/go-cardioform/pkg/controller"
	"github.com/goliatone/go-cardioform/pkg/renderers/tui"
)

func newPromptCmd(root *rootOptions) *cobra.Command {
	var once bool

	cmd := &cobra.Command{
		Use:   "prompt",
		Short: "Fill in the form interactively in the terminal",
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := newApp(cmd.Context(), root.cfg, root.logger)
			if err != nil {
				return err
			}

			options := []tui.SessionOption{
				tui.WithOutput(cmd.OutOrStdout()),
				tui.WithSessionStyles(tui.NewStyles(a.theme.Tokens)),
			}
			if once {
				options = append(options, tui.WithSingleRun())
			}
			session := tui.NewSession(options...)

			ctrl, err := controller.New(a.fields, a.predictor, session.Ports(),
				controller.WithLogger(root.logger.Named("controller")),
			)
			if err != nil {
				return err
			}

			if err := session.Run(cmd.Context(), ctrl); err != nil {
				if errors.Is(err, tui.ErrAborted) {
					return nil
				}
				return err
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&once, "once", false, "exit after one analysis")
	return cmd
}
