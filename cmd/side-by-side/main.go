// Package main provides the side-by-side terminal viewer.
package main

import (
	"fmt"
	"os"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/treykane/side-by-side/internal/app"
	"github.com/treykane/side-by-side/internal/config"
)

// Build information set via ldflags
var version = "dev"

type options struct {
	configPath      string
	dividerWidth    int
	dividerHeight   int
	doubleTapWindow time.Duration
	minPaneWidth    int
	glamourStyle    string
}

// runFunc starts the viewer with the final configuration.
type runFunc func(cfg config.Config, left, right string) error

func newRootCmd(run runFunc) *cobra.Command {
	var opts options

	cmd := &cobra.Command{
		Use:           "side-by-side [LEFT] [RIGHT]",
		Short:         "View two files next to each other in the terminal",
		Long:          `Show two files in resizable panes. Drag the divider with the mouse to resize, double-click it to restore an even split. Markdown files are rendered.`,
		Version:       version,
		Args:          cobra.RangeArgs(0, 2),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(opts.configPath)
			if err != nil {
				return err
			}
			applyFlags(cmd, opts, &cfg)
			if err := cfg.Validate(); err != nil {
				return err
			}

			var left, right string
			if len(args) > 0 {
				left = args[0]
			}
			if len(args) > 1 {
				right = args[1]
			}
			return run(cfg, left, right)
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&opts.configPath, "config", "", "config file (default ~/.side-by-side/config.toml)")
	flags.IntVar(&opts.dividerWidth, "divider-width", config.DefaultDividerWidth, "divider width in columns")
	flags.IntVar(&opts.dividerHeight, "divider-height", config.DefaultDividerHeight, "divider handle height in rows")
	flags.DurationVar(&opts.doubleTapWindow, "double-tap-window", config.DefaultDoubleTapWindowMS*time.Millisecond, "max gap between clicks that resets the split")
	flags.IntVar(&opts.minPaneWidth, "min-pane-width", config.DefaultMinPaneWidth, "narrowest a pane can be dragged, 0 to allow collapsing")
	flags.StringVar(&opts.glamourStyle, "glamour-style", config.DefaultGlamourStyle, "markdown style: dark, light, notty or auto")
	return cmd
}

// applyFlags copies explicitly set flags over the loaded configuration.
func applyFlags(cmd *cobra.Command, opts options, cfg *config.Config) {
	flags := cmd.Flags()
	if flags.Changed("divider-width") {
		cfg.Divider.Width = opts.dividerWidth
	}
	if flags.Changed("divider-height") {
		cfg.Divider.Height = opts.dividerHeight
	}
	if flags.Changed("double-tap-window") {
		cfg.DoubleTapWindowMS = int(opts.doubleTapWindow.Milliseconds())
	}
	if flags.Changed("min-pane-width") {
		cfg.MinPaneWidth = opts.minPaneWidth
	}
	if flags.Changed("glamour-style") {
		cfg.GlamourStyle = strings.ToLower(strings.TrimSpace(opts.glamourStyle))
	}
}

func runViewer(cfg config.Config, left, right string) error {
	m, err := app.New(cfg, left, right)
	if err != nil {
		return err
	}
	defer func() { _ = m.Close() }()

	throttle := app.NewMouseThrottle()
	p := tea.NewProgram(m,
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
		tea.WithFilter(throttle.Filter),
	)
	_, err = p.Run()
	return err
}

func main() {
	if err := newRootCmd(runViewer).Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}
