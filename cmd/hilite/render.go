package main

import (
	"fmt"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"github.com/spf13/cobra"

	"hilite/internal/diagfmt"
	"hilite/internal/driver"
)

var renderCmd = &cobra.Command{
	Use:   "render [flags] <file>",
	Short: "Print a file with syntax colours",
	Args:  cobra.ExactArgs(1),
	RunE:  runRender,
}

func init() {
	renderCmd.Flags().String("lang", "", "force a language instead of guessing from the extension")
}

func runRender(cmd *cobra.Command, args []string) error {
	target := args[0]
	sess, err := loadSession(cmd, target)
	if err != nil {
		return err
	}
	opts, err := sess.driverOptions(cmd)
	if err != nil {
		return err
	}
	fileSet, res, err := driver.Decorate(cmd.Context(), target, opts)
	if err != nil {
		return fmt.Errorf("decoration failed: %w", err)
	}

	if res.Bag.HasErrors() || res.Bag.HasWarnings() {
		errColor, colorErr := colorEnabled(cmd, os.Stderr)
		if colorErr != nil {
			return colorErr
		}
		pathMode, pmErr := pathModeFlag(cmd)
		if pmErr != nil {
			return pmErr
		}
		diagfmt.Pretty(cmd.ErrOrStderr(), res.Bag, fileSet, diagfmt.PrettyOpts{
			Color:     errColor,
			Context:   1,
			PathMode:  pathMode,
			ShowNotes: true,
		})
	}

	out := cmd.OutOrStdout()
	useColor, err := colorEnabled(cmd, os.Stdout)
	if err != nil {
		return err
	}
	renderer := lipgloss.NewRenderer(out)
	if useColor {
		// --color=on в пайпе: профиль не определится сам
		if renderer.ColorProfile() == termenv.Ascii {
			renderer.SetColorProfile(termenv.ANSI)
		}
	} else {
		renderer.SetColorProfile(termenv.Ascii)
	}
	if err := diagfmt.Render(out, res.Unit, diagfmt.NewTheme(renderer)); err != nil {
		return err
	}

	if opts.Timer != nil && !quiet(cmd) {
		printTimings(cmd.ErrOrStderr(), opts.Timer)
	}
	return nil
}
