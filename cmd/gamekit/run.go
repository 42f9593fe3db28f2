package main

import (
	"bufio"
	"fmt"
	"log/slog"
	"text/tabwriter"

	"github.com/spf13/cobra"

	gkerrors "github.com/gamekit-dev/gamekit/internal/errors"
	"github.com/gamekit-dev/gamekit/internal/examples"
)

func runCmd(g *globalOptions) *cobra.Command {
	var (
		all         bool
		keep        bool
		interactive bool
	)

	cmd := &cobra.Command{
		Use:   "run [example...]",
		Short: "Run narrated examples",
		Long: `Run one or more narrated examples.

Examples that save data work in a folder of their own inside the
configured storage and remove it when they finish.

Examples:
  gamekit run bindable
  gamekit run storage --keep
  gamekit run --all --interactive`,
		RunE: func(cmd *cobra.Command, args []string) error {
			var selected []examples.Example
			switch {
			case all && len(args) > 0:
				return gkerrors.Newf(gkerrors.CategoryCLI, "--all cannot be combined with example names")
			case all:
				selected = examples.All()
			case len(args) == 0:
				return gkerrors.New("E150").
					WithDetail("no example given").
					WithSuggestion("Run \"gamekit list\" to see the examples, or pass --all")
			default:
				for _, name := range args {
					e, err := examples.Lookup(name)
					if err != nil {
						return err
					}
					selected = append(selected, e)
				}
			}

			cfg, err := g.config()
			if err != nil {
				return err
			}
			store, err := openStorage(cmd.Context(), cfg)
			if err != nil {
				return err
			}

			env := &examples.Env{
				Out:     cmd.OutOrStdout(),
				Storage: store,
				Keep:    keep,
			}
			if interactive {
				in := bufio.NewReader(cmd.InOrStdin())
				env.Pause = func() {
					_, _ = in.ReadString('\n')
				}
			}

			u := newUI(cmd.OutOrStdout())
			for _, e := range selected {
				slog.Debug("running example", "example", e.Name)
				if err := e.Run(cmd.Context(), env); err != nil {
					return fmt.Errorf("example %s: %w", e.Name, err)
				}
				u.success("%s finished", e.Name)
			}
			return nil
		},
	}

	cmd.Flags().BoolVarP(&all, "all", "a", false, "Run every example")
	cmd.Flags().BoolVarP(&keep, "keep", "k", false, "Keep the files examples create")
	cmd.Flags().BoolVarP(&interactive, "interactive", "i", false, "Wait for enter at each checkpoint")

	return cmd
}

func listCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List the narrated examples",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			for _, e := range examples.All() {
				fmt.Fprintf(tw, "  %s\t%s\n", e.Name, e.Summary)
			}
			return tw.Flush()
		},
	}
}
