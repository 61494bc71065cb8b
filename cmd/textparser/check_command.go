package main

import (
	"errors"

	"github.com/spf13/cobra"

	"textparser/internal/preflight"
)

func newCheckCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "check",
		Short: "Verify corpus, data, report, and vocabulary paths",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			results := preflight.RunAll(cfg)
			rows := make([][]string, 0, len(results))
			for _, result := range results {
				rows = append(rows, []string{result.Name, checkStatus(result), result.Detail})
			}
			writeRows(cmd.OutOrStdout(), []string{"Check", "Status", "Detail"}, rows, nil)
			if len(preflight.Blocking(results)) > 0 {
				return errors.New("preflight checks failed")
			}
			return nil
		},
	}
}

func checkStatus(result preflight.Result) string {
	switch {
	case result.Passed:
		return "OK"
	case result.Fatal:
		return "FAIL"
	default:
		return "WARN"
	}
}
