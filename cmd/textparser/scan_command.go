package main

import (
	"errors"
	"fmt"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"textparser/internal/config"
	"textparser/internal/frequency"
	"textparser/internal/preflight"
	"textparser/internal/scan"
	"textparser/internal/scanerr"
)

func newScanCommand(ctx *commandContext) *cobra.Command {
	var (
		rootFlag   string
		reportFlag string
		everyFlag  int
		topFlag    int
		jsonOutput bool
	)

	cmd := &cobra.Command{
		Use:   "scan",
		Short: "Scan a corpus and append unknown-word reports",
		RunE: func(cmd *cobra.Command, args []string) error {
			base, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			cfg := *base
			if strings.TrimSpace(rootFlag) != "" {
				root, err := config.ExpandPath(rootFlag)
				if err != nil {
					return fmt.Errorf("resolve root: %w", err)
				}
				cfg.Paths.CorpusDir = root
			}
			if strings.TrimSpace(reportFlag) != "" {
				report, err := config.ExpandPath(reportFlag)
				if err != nil {
					return fmt.Errorf("resolve report file: %w", err)
				}
				cfg.Paths.ReportFile = report
			}
			if cmd.Flags().Changed("every") {
				cfg.Report.Every = everyFlag
			}
			if cmd.Flags().Changed("top") {
				cfg.Report.TopN = topFlag
			}
			if err := cfg.Validate(); err != nil {
				return err
			}
			if err := checkScanReady(&cfg); err != nil {
				return err
			}

			logger := ctx.loggerFor(&cfg)
			words := ctx.loadVocabulary(&cfg)

			ledger, err := ctx.openStore()
			if err != nil {
				return err
			}
			defer ledger.Close()

			sink, err := frequency.OpenSink(cfg.Paths.ReportFile)
			if err != nil {
				return err
			}
			defer sink.Close()

			scanner, err := scan.New(scan.OptionsFromConfig(&cfg), words, ledger, sink, logger)
			if err != nil {
				return err
			}

			runCtx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			summary, runErr := scanner.Run(runCtx, cfg.Paths.CorpusDir)
			if errors.Is(runErr, scan.ErrLocked) {
				return runErr
			}
			if summary.RunID != "" {
				if jsonOutput {
					if err := writeJSON(cmd, summary); err != nil {
						return err
					}
				} else {
					out := cmd.OutOrStdout()
					fmt.Fprintf(out, "Run %s\n", summary.RunID)
					fmt.Fprintln(out, summary.String())
					fmt.Fprintf(out, "Report file: %s\n", cfg.Paths.ReportFile)
				}
			}
			return runErr
		},
	}

	cmd.Flags().StringVar(&rootFlag, "root", "", "Corpus root directory (defaults to paths.corpus_dir)")
	cmd.Flags().StringVar(&reportFlag, "report", "", "Report file to append to (defaults to paths.report_file)")
	cmd.Flags().IntVar(&everyFlag, "every", 0, "Report after every K-th processed document (0 disables periodic reports)")
	cmd.Flags().IntVar(&topFlag, "top", 0, "Number of unknown words per report")
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Print the run summary as JSON")
	return cmd
}

// checkScanReady runs the blocking preflight checks. A corpus failure is
// reported as a missing root; anything else is a configuration problem.
func checkScanReady(cfg *config.Config) error {
	if strings.TrimSpace(cfg.Paths.CorpusDir) == "" {
		return scanerr.Wrap(scanerr.ErrRootMissing, "scan", "resolve root", "set --root or paths.corpus_dir", nil)
	}
	blocking := preflight.Blocking(preflight.RunAll(cfg))
	if len(blocking) == 0 {
		return nil
	}
	for _, result := range blocking {
		if result.Name == preflight.CorpusCheck {
			return scanerr.Wrap(scanerr.ErrRootMissing, "scan", "preflight", result.Detail, nil)
		}
	}
	first := blocking[0]
	return scanerr.Wrap(scanerr.ErrConfiguration, "scan", "preflight", first.Name+": "+first.Detail, nil)
}
