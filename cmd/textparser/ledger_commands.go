package main

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"textparser/internal/store"
)

func newTopCommand(ctx *commandContext) *cobra.Command {
	var (
		runID string
		limit int
	)

	cmd := &cobra.Command{
		Use:   "top",
		Short: "Show the latest unknown-word snapshot of a run",
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := ctx.openStore()
			if err != nil {
				return err
			}
			defer st.Close()

			run, err := resolveRun(cmd.Context(), st, runID)
			if err != nil {
				return err
			}
			entries, err := st.Snapshot(cmd.Context(), run.ID, limit)
			if err != nil {
				return err
			}
			if len(entries) == 0 {
				fmt.Fprintf(cmd.OutOrStdout(), "Run %s has no frequency snapshot\n", run.ID)
				return nil
			}
			rows := make([][]string, 0, len(entries))
			for i, entry := range entries {
				rows = append(rows, []string{strconv.Itoa(i + 1), entry.Word, humanize.Comma(int64(entry.Count))})
			}
			writeRows(cmd.OutOrStdout(), []string{"Rank", "Word", "Count"}, rows, []columnAlignment{alignRight, alignLeft, alignRight})
			return nil
		},
	}

	cmd.Flags().StringVar(&runID, "run", "", "Run ID (defaults to the latest run)")
	cmd.Flags().IntVarP(&limit, "limit", "n", 20, "Maximum words to show (0 shows the whole snapshot)")
	return cmd
}

func newChunksCommand(ctx *commandContext) *cobra.Command {
	var (
		runID    string
		document string
		limit    int
	)

	cmd := &cobra.Command{
		Use:   "chunks",
		Short: "List recorded chunks of a run",
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := ctx.openStore()
			if err != nil {
				return err
			}
			defer st.Close()

			run, err := resolveRun(cmd.Context(), st, runID)
			if err != nil {
				return err
			}
			chunks, err := st.Chunks(cmd.Context(), store.ChunkQuery{RunID: run.ID, RelPath: document, Limit: limit})
			if err != nil {
				return err
			}
			rows := make([][]string, 0, len(chunks))
			for _, c := range chunks {
				rows = append(rows, []string{c.RelPath, strconv.Itoa(c.Start), strconv.Itoa(c.End), c.Text})
			}
			writeRows(cmd.OutOrStdout(), []string{"Document", "Start", "End", "Chunk"}, rows,
				[]columnAlignment{alignLeft, alignRight, alignRight, alignLeft})
			return nil
		},
	}

	cmd.Flags().StringVar(&runID, "run", "", "Run ID (defaults to the latest run)")
	cmd.Flags().StringVar(&document, "document", "", "Only show chunks of this corpus-relative path")
	cmd.Flags().IntVarP(&limit, "limit", "n", 50, "Maximum chunks to show (0 shows all)")
	return cmd
}

func newRunsCommand(ctx *commandContext) *cobra.Command {
	var (
		limit      int
		jsonOutput bool
	)

	cmd := &cobra.Command{
		Use:   "runs",
		Short: "List recorded scan runs",
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := ctx.openStore()
			if err != nil {
				return err
			}
			defer st.Close()

			runs, err := st.ListRuns(cmd.Context(), limit)
			if err != nil {
				return err
			}
			if jsonOutput {
				return writeJSON(cmd, runs)
			}
			if len(runs) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No runs recorded")
				return nil
			}
			rows := make([][]string, 0, len(runs))
			for _, run := range runs {
				rows = append(rows, []string{
					run.ID,
					string(run.Status),
					humanize.Time(run.StartedAt),
					runDuration(run),
					humanize.Comma(int64(run.DocumentsProcessed)),
					humanize.Comma(int64(run.DocumentsFailed)),
					humanize.Comma(int64(run.Chunks)),
					humanize.Comma(int64(run.UnknownWords)),
					strconv.Itoa(run.Reports),
				})
			}
			writeRows(cmd.OutOrStdout(),
				[]string{"Run", "Status", "Started", "Duration", "Docs", "Failed", "Chunks", "Unknown", "Reports"},
				rows,
				[]columnAlignment{alignLeft, alignLeft, alignLeft, alignRight, alignRight, alignRight, alignRight, alignRight, alignRight},
			)
			return nil
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", 20, "Maximum runs to show (0 shows all)")
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output as JSON")
	return cmd
}

// resolveRun returns the run with id, or the latest run when id is empty.
func resolveRun(ctx context.Context, st *store.Store, id string) (*store.Run, error) {
	var (
		run *store.Run
		err error
	)
	if id == "" {
		run, err = st.LatestRun(ctx)
	} else {
		run, err = st.GetRun(ctx, id)
	}
	if err != nil {
		return nil, err
	}
	if run == nil {
		if id == "" {
			return nil, errors.New("no runs recorded; run `textparser scan` first")
		}
		return nil, fmt.Errorf("run %s not found", id)
	}
	return run, nil
}

func runDuration(run *store.Run) string {
	if run.FinishedAt == nil {
		return "-"
	}
	return run.FinishedAt.Sub(run.StartedAt).Round(time.Millisecond).String()
}
