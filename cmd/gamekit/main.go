package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/muesli/termenv"
	"github.com/spf13/cobra"

	"github.com/gamekit-dev/gamekit/internal/config"
	gkerrors "github.com/gamekit-dev/gamekit/internal/errors"
)

// Version information set at build time.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

const banner = `
  ┌─┐┌─┐┌┬┐┌─┐┬┌─┬┌┬┐
  │ ┬├─┤│││├┤ ├┴┐│ │
  └─┘┴ ┴┴ ┴└─┘┴ ┴┴ ┴
`

func main() {
	ctx := context.Background()
	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		printError(os.Stderr, err)
		os.Exit(1)
	}
}

// globalOptions holds the persistent flags and the config they select.
type globalOptions struct {
	dir     string
	verbose bool

	cfg *config.Config
}

// config loads gamekit.json from the project directory, falling back to
// defaults when there is none.
func (g *globalOptions) config() (*config.Config, error) {
	if g.cfg != nil {
		return g.cfg, nil
	}
	cfg, err := config.LoadOrDefault(g.dir)
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	g.cfg = cfg
	return cfg, nil
}

func newRootCmd() *cobra.Command {
	g := &globalOptions{}

	rootCmd := &cobra.Command{
		Use:   "gamekit",
		Short: "Observable game state, settings and storage for Go",
		Long: `gamekit is a toolkit for game state in Go.

It bundles the pieces most games end up writing themselves:

  • Bindables: observable values kept in sync across bindings
  • Settings saved to YAML, TOML or JSON and bound to bindables
  • Storage on local disk or S3
  • A live view server to inspect and edit settings while a game runs

Run "gamekit list" to see the narrated examples.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			setupLogging(cmd.ErrOrStderr(), g)
			return nil
		},
	}

	rootCmd.PersistentFlags().StringVarP(&g.dir, "dir", "C", ".", "Project directory (searched upwards for gamekit.json)")
	rootCmd.PersistentFlags().BoolVarP(&g.verbose, "verbose", "v", false, "Enable debug logging")

	rootCmd.AddCommand(
		runCmd(g),
		listCmd(),
		serveCmd(g),
		versionCmd(),
	)

	return rootCmd
}

// setupLogging installs the default slog logger. The level comes from
// --verbose or gamekit.json. A broken config is reported later by the
// command that needs it.
func setupLogging(w io.Writer, g *globalOptions) {
	level := slog.LevelInfo
	if cfg, err := g.config(); err == nil {
		level = cfg.LogLevel()
	}
	if g.verbose {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level})))
}

// printError prints err, using the long format for coded errors.
func printError(w io.Writer, err error) {
	gkerrors.Fprint(w, err)
}

// ui prints user facing status lines.
type ui struct {
	out *termenv.Output
}

func newUI(w io.Writer) *ui {
	return &ui{out: termenv.NewOutput(w)}
}

func (u *ui) printBanner() {
	fmt.Fprint(u.out, banner)
}

// success prints a success message.
func (u *ui) success(format string, args ...any) {
	mark := u.out.String("✓").Foreground(u.out.Color("2"))
	fmt.Fprintf(u.out, "%s %s\n", mark, fmt.Sprintf(format, args...))
}

// info prints an info message.
func (u *ui) info(format string, args ...any) {
	fmt.Fprintf(u.out, "  %s\n", fmt.Sprintf(format, args...))
}

// warn prints a warning message.
func (u *ui) warn(format string, args ...any) {
	mark := u.out.String("⚠").Foreground(u.out.Color("3"))
	fmt.Fprintf(u.out, "%s %s\n", mark, fmt.Sprintf(format, args...))
}
