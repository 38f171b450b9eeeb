package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/dshills/gochunk/internal/pipeline"
)

// newSegmentCommand returns the command that chunks a sequence
func newSegmentCommand(v *viper.Viper) *cobra.Command {
	var pretty bool

	cmd := &cobra.Command{
		Use:   "segment [file|-]",
		Short: "Segment a sequence and print the chunks as JSON",
		Long: `Read numbers separated by whitespace or commas from a file (or stdin when
no file or "-" is given), segment them with the configured policy, compose
the chunks when --mode is set, and print the result as JSON.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(v)
			if err != nil {
				return err
			}
			log, err := newLogger(cfg)
			if err != nil {
				return err
			}
			defer func() { _ = log.Sync() }()

			seq, err := readSequence(cmd, args)
			if err != nil {
				return err
			}

			p, err := pipeline.New(cfg, pipeline.WithLogger(log))
			if err != nil {
				return err
			}

			res, err := p.Run(cmd.Context(), seq)
			if err != nil {
				return err
			}
			return writeJSON(cmd.OutOrStdout(), res, pretty)
		},
	}

	cmd.Flags().BoolVar(&pretty, "pretty", false, "indent JSON output")
	return cmd
}

// newReduceCommand returns the command that folds a sequence
func newReduceCommand(v *viper.Viper) *cobra.Command {
	var op string

	cmd := &cobra.Command{
		Use:   "reduce [file|-]",
		Short: "Segment a sequence and fold it concurrently chunk by chunk",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			reduceOp, err := pipeline.ParseOp(op)
			if err != nil {
				return err
			}

			cfg, err := loadConfig(v)
			if err != nil {
				return err
			}
			log, err := newLogger(cfg)
			if err != nil {
				return err
			}
			defer func() { _ = log.Sync() }()

			seq, err := readSequence(cmd, args)
			if err != nil {
				return err
			}

			p, err := pipeline.New(cfg, pipeline.WithLogger(log))
			if err != nil {
				return err
			}

			res, err := p.Reduce(cmd.Context(), seq, reduceOp)
			if err != nil {
				return err
			}
			_, err = fmt.Fprintf(cmd.OutOrStdout(), "%g\n", res.Value)
			return err
		},
	}

	cmd.Flags().StringVar(&op, "op", string(pipeline.OpSum), "reduction: sum, product, min, max")
	return cmd
}

// readSequence reads from the named file, or from the command input
func readSequence(cmd *cobra.Command, args []string) ([]float64, error) {
	var r io.Reader = cmd.InOrStdin()
	if len(args) == 1 && args[0] != "-" {
		f, err := os.Open(args[0])
		if err != nil {
			return nil, fmt.Errorf("failed to open input: %w", err)
		}
		defer func() { _ = f.Close() }()
		r = f
	}
	return pipeline.ParseSequence(r)
}

func writeJSON(w io.Writer, v any, pretty bool) error {
	enc := json.NewEncoder(w)
	if pretty {
		enc.SetIndent("", "  ")
	}
	return enc.Encode(v)
}
