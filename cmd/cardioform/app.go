package main

import (
	"context"

	theme "github.com/goliatone/go-theme"
	"go.uber.org/zap"

	"github.com/goliatone/go-cardioform/internal/config"
	"github.com/goliatone/go-cardioform/pkg/model"
	"github.com/goliatone/go-cardioform/pkg/predict"
	"github.com/goliatone/go-cardioform/pkg/themes"
)

// app holds the pieces every command shares.
type app struct {
	fields    model.FieldSet
	predictor *predict.Client
	theme     *theme.RendererConfig
}

func newApp(ctx context.Context, cfg config.Config, logger *zap.Logger) (*app, error) {
	fields := model.DefaultFields()
	if cfg.Form.FieldsFile != "" {
		loaded, err := model.LoadFieldsFile(cfg.Form.FieldsFile)
		if err != nil {
			return nil, err
		}
		fields = loaded
	}

	contract, err := predict.DefaultContract(ctx)
	if err != nil {
		return nil, err
	}
	if err := contract.CheckFields(fields); err != nil {
		logger.Warn("form fields disagree with the API contract", zap.Error(err))
	}

	client, err := predict.New(cfg.API.BaseURL,
		predict.WithPath(cfg.API.Path),
		predict.WithTimeout(cfg.API.Timeout),
		predict.WithContract(contract),
		predict.WithLogger(logger.Named("predict")),
		predict.WithUserAgent("cardioform"),
	)
	if err != nil {
		return nil, err
	}

	selector, err := themes.NewSelector(cfg.Theme.Name, cfg.Theme.Variant)
	if err != nil {
		return nil, err
	}
	selection, err := selector.Select("", "")
	if err != nil {
		return nil, err
	}

	return &app{
		fields:    fields,
		predictor: client,
		theme:     themes.RendererConfig(selection),
	}, nil
}
