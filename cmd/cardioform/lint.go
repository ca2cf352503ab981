package main

import (
	"errors"
	"fmt"
	"os"
	"sort"

	"github.com/spf13/cobra"

	"github.com/goliatone/go-cardioform/pkg/model"
	"github.com/goliatone/go-cardioform/pkg/predict"
)

type violation struct {
	file    string
	message string
}

func newLintCmd() *cobra.Command {
	var contractPath string

	cmd := &cobra.Command{
		Use:   "lint [fields files...]",
		Short: "Check field definition files against the prediction API contract",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, paths []string) error {
			contract, err := loadContract(cmd, contractPath)
			if err != nil {
				return err
			}

			var violations []violation
			for _, path := range paths {
				fields, err := model.LoadFieldsFile(path)
				if err != nil {
					violations = append(violations, violation{file: path, message: err.Error()})
					continue
				}
				if err := contract.CheckFields(fields); err != nil {
					violations = append(violations, violation{file: path, message: err.Error()})
				}
			}

			if len(violations) == 0 {
				return nil
			}
			sort.Slice(violations, func(i, j int) bool {
				if violations[i].file == violations[j].file {
					return violations[i].message < violations[j].message
				}
				return violations[i].file < violations[j].file
			})
			for _, v := range violations {
				fmt.Fprintf(cmd.ErrOrStderr(), "%s: %s\n", v.file, v.message)
			}
			return errors.New("lint: field definitions do not match the contract")
		},
	}

	cmd.Flags().StringVar(&contractPath, "contract", "", "OpenAPI document describing the prediction API (built-in when empty)")
	return cmd
}

func loadContract(cmd *cobra.Command, path string) (*predict.Contract, error) {
	if path == "" {
		return predict.DefaultContract(cmd.Context())
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read contract: %w", err)
	}
	return predict.LoadContract(cmd.Context(), raw)
}
