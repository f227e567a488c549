package main

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/forgo/guild/api/internal/composition"
)

// Output formats
const (
	formatJSON = "json"
	formatYAML = "yaml"
)

// =============================================================================
// ROOT COMMAND
// =============================================================================

func newRootCmd(registry *composition.Registry) *cobra.Command {
	var format string

	root := &cobra.Command{
		Use:   "guildmotion",
		Short: "Inspect Guild motion compositions",
		Long: `Lists the built-in marketing compositions and evaluates them
frame by frame, printing each layer's computed properties.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if format != formatJSON && format != formatYAML {
				return fmt.Errorf("unknown format %q (want %s or %s)", format, formatJSON, formatYAML)
			}
			return nil
		},
	}
	root.PersistentFlags().StringVarP(&format, "format", "f", formatJSON, "output format: json or yaml")

	root.AddCommand(
		newListCmd(registry, &format),
		newShowCmd(registry, &format),
		newFramesCmd(registry, &format),
	)
	return root
}

// =============================================================================
// LIST / SHOW
// =============================================================================

func newListCmd(registry *composition.Registry, format *string) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List registered compositions",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			list := registry.List()
			out := make([]composition.Metadata, 0, len(list))
			for _, c := range list {
				out = append(out, c.Metadata())
			}
			return write(cmd.OutOrStdout(), *format, out)
		},
	}
}

func newShowCmd(registry *composition.Registry, format *string) *cobra.Command {
	return &cobra.Command{
		Use:   "show <id>",
		Short: "Show a composition's metadata and scenes",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := registry.Get(args[0])
			if err != nil {
				return err
			}
			return write(cmd.OutOrStdout(), *format, c.Metadata())
		},
	}
}

// =============================================================================
// FRAMES
// =============================================================================

func newFramesCmd(registry *composition.Registry, format *string) *cobra.Command {
	var from, to, step int

	cmd := &cobra.Command{
		Use:   "frames <id>",
		Short: "Evaluate a composition over a frame range",
		Long: `Evaluates frames from --from to --to inclusive, every --step frames.
--to defaults to the last frame of the composition.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := registry.Get(args[0])
			if err != nil {
				return err
			}
			if !cmd.Flags().Changed("to") {
				to = c.DurationInFrames - 1
			}
			if step <= 0 {
				return fmt.Errorf("--step must be positive, got %d", step)
			}
			if from > to {
				return fmt.Errorf("--from %d is after --to %d", from, to)
			}

			var frames []*composition.FrameState
			for n := from; n <= to; n += step {
				state, err := c.Frame(n)
				if err != nil {
					return err
				}
				frames = append(frames, state)
			}
			return write(cmd.OutOrStdout(), *format, frames)
		},
	}
	cmd.Flags().IntVar(&from, "from", 0, "first frame")
	cmd.Flags().IntVar(&to, "to", 0, "last frame, inclusive (default: last frame of the composition)")
	cmd.Flags().IntVar(&step, "step", 1, "frames between samples")
	return cmd
}

func write(w io.Writer, format string, v any) error {
	if format == formatYAML {
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return err
		}
		return enc.Close()
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
