package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"textparser/internal/chunk"
	"textparser/internal/config"
	"textparser/internal/corpus"
	"textparser/internal/frequency"
	"textparser/internal/tokenize"
)

func newTokenizeCommand(ctx *commandContext) *cobra.Command {
	var (
		showChunks   bool
		encodingFlag string
	)

	cmd := &cobra.Command{
		Use:   "tokenize <file>",
		Short: "Print the tokens or chunks of a single document",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			path, err := config.ExpandPath(args[0])
			if err != nil {
				return fmt.Errorf("resolve path: %w", err)
			}
			encoding := cfg.Scan.Encoding
			if encodingFlag != "" {
				encoding = encodingFlag
			}
			doc, err := corpus.ReadDocument(path, encoding)
			if err != nil {
				return err
			}
			tokens := tokenize.Tokenize(doc.Text)
			out := cmd.OutOrStdout()

			if !showChunks {
				rows := make([][]string, 0, len(tokens))
				for _, tok := range tokens {
					rows = append(rows, []string{tok.Word, strconv.Itoa(tok.Start), strconv.Itoa(tok.End)})
				}
				writeRows(out, []string{"Word", "Start", "End"}, rows, []columnAlignment{alignLeft, alignRight, alignRight})
				return nil
			}

			words := ctx.loadVocabulary(cfg)
			counter := frequency.NewCounter()
			chunks := chunk.SegmentMin(tokens, words, counter, cfg.Scan.MinChunkSize)
			rows := make([][]string, 0, len(chunks))
			for _, c := range chunks {
				rows = append(rows, []string{strconv.Itoa(c.Start), strconv.Itoa(c.End), c.Text})
			}
			writeRows(out, []string{"Start", "End", "Chunk"}, rows, []columnAlignment{alignRight, alignRight, alignLeft})
			fmt.Fprintf(cmd.ErrOrStderr(), "%d tokens, %d chunks, %d unknown words\n", len(tokens), len(chunks), counter.Len())
			return nil
		},
	}

	cmd.Flags().BoolVar(&showChunks, "chunks", false, "Segment the document into known-word chunks")
	cmd.Flags().StringVar(&encodingFlag, "encoding", "", "Document encoding (defaults to scan.encoding)")
	return cmd
}
