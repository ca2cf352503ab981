package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/goliatone/go-cardioform/pkg/controller"
	"github.com/goliatone/go-cardioform/pkg/render"
	"github.com/goliatone/go-cardioform/pkg/renderers/jsonview"
	"github.com/goliatone/go-cardioform/pkg/renderers/tui"
	"github.com/goliatone/go-cardioform/pkg/renderers/vanilla"
)

func newRenderCmd(root *rootOptions) *cobra.Command {
	var (
		rendererName string
		output       string
	)

	cmd := &cobra.Command{
		Use:   "render",
		Short: "Render the empty form page to stdout or a file",
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := newApp(cmd.Context(), root.cfg, root.logger)
			if err != nil {
				return err
			}

			var htmlOptions []vanilla.Option
			if root.cfg.Form.TemplatesDir != "" {
				htmlOptions = append(htmlOptions, vanilla.WithTemplatesDir(root.cfg.Form.TemplatesDir))
			}
			html, err := vanilla.New(htmlOptions...)
			if err != nil {
				return err
			}
			registry := render.NewRegistry()
			registry.MustRegister(html)
			registry.MustRegister(tui.New())
			registry.MustRegister(jsonview.New())

			renderer, err := registry.Get(rendererName)
			if err != nil {
				return err
			}

			page := render.NewPage(root.cfg.Form.Title, nil)
			ctrl, err := controller.New(a.fields, a.predictor, page.Ports())
			if err != nil {
				return err
			}
			if err := ctrl.Build(); err != nil {
				return err
			}

			out, err := renderer.Render(cmd.Context(), page, render.RenderOptions{
				Action: "/analyze",
				Theme:  a.theme,
			})
			if err != nil {
				return err
			}

			if output == "" {
				_, err := cmd.OutOrStdout().Write(out)
				return err
			}
			if err := os.WriteFile(output, out, 0o644); err != nil {
				return fmt.Errorf("write output: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Form written to %s\n", output)
			return nil
		},
	}

	cmd.Flags().StringVar(&rendererName, "renderer", "vanilla", "renderer to use (vanilla, tui or json)")
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (stdout if empty)")
	return cmd
}
