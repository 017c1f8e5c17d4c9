package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"hilite/internal/diagfmt"
	"hilite/internal/driver"
	"hilite/internal/source"
)

var decorateCmd = &cobra.Command{
	Use:   "decorate [flags] <file|dir>",
	Short: "List the decorated regions of source files",
	Long: `Decorate splits each file into comments, strings, keywords, functions and
preprocessor regions. A directory is walked recursively; files whose
extension maps to no language are skipped.`,
	Args: cobra.ExactArgs(1),
	RunE: runDecorate,
}

func init() {
	decorateCmd.Flags().String("format", "pretty", "output format (pretty|json)")
	decorateCmd.Flags().String("lang", "", "force a language instead of guessing from the extension")
	decorateCmd.Flags().Int("jobs", 0, "max parallel workers (0=auto)")
	decorateCmd.Flags().String("ui", "auto", "progress UI for directories (auto|on|off)")
	decorateCmd.Flags().Bool("text", false, "include the text of every region")
}

func runDecorate(cmd *cobra.Command, args []string) error {
	target := args[0]

	format, err := cmd.Flags().GetString("format")
	if err != nil {
		return fmt.Errorf("failed to get format flag: %w", err)
	}
	if format != "pretty" && format != "json" {
		return fmt.Errorf("unknown format: %s", format)
	}
	uiValue, err := cmd.Flags().GetString("ui")
	if err != nil {
		return fmt.Errorf("failed to get ui flag: %w", err)
	}
	mode, err := readUIMode(uiValue)
	if err != nil {
		return err
	}
	withText, err := cmd.Flags().GetBool("text")
	if err != nil {
		return fmt.Errorf("failed to get text flag: %w", err)
	}
	pathMode, err := pathModeFlag(cmd)
	if err != nil {
		return err
	}

	info, err := os.Stat(target)
	if err != nil {
		return fmt.Errorf("failed to stat %q: %w", target, err)
	}
	sess, err := loadSession(cmd, target)
	if err != nil {
		return err
	}
	opts, err := sess.driverOptions(cmd)
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	var (
		fileSet *source.FileSet
		results []driver.Result
	)
	if info.IsDir() {
		if format == "pretty" && shouldUseTUI(mode) {
			files, listErr := driver.ListSourceFiles(target, &opts)
			if listErr != nil {
				return listErr
			}
			fileSet = source.NewFileSetWithBase(target)
			results, err = runDecorateWithUI(ctx, "decorating "+target, fileSet, files, opts)
		} else {
			fileSet, results, err = driver.DecorateDir(ctx, target, opts)
		}
	} else {
		var res *driver.Result
		fileSet, res, err = driver.Decorate(ctx, target, opts)
		if res != nil {
			results = []driver.Result{*res}
		}
	}
	if err != nil {
		return fmt.Errorf("decoration failed: %w", err)
	}

	useColor, err := colorEnabled(cmd, os.Stderr)
	if err != nil {
		return err
	}
	printDiagnostics(cmd.ErrOrStderr(), results, fileSet, format, diagfmt.PrettyOpts{
		Color:     useColor,
		Context:   1,
		PathMode:  pathMode,
		ShowNotes: true,
	})

	nodeOpts := diagfmt.NodeOpts{PathMode: pathMode, Text: withText}
	out := cmd.OutOrStdout()
	switch format {
	case "json":
		err = writeResultsJSON(out, results, fileSet, nodeOpts, !info.IsDir())
	default:
		err = writeResultsPretty(out, results, fileSet, nodeOpts, info.IsDir())
	}
	if err != nil {
		return err
	}

	if opts.Timer != nil && !quiet(cmd) {
		printTimings(cmd.ErrOrStderr(), opts.Timer)
	}
	return nil
}

// printDiagnostics выводит диагностику в stderr. В JSON формате диагностики
// декорированных файлов уже входят в вывод, печатаем только ошибки загрузки.
func printDiagnostics(w io.Writer, results []driver.Result, fileSet *source.FileSet, format string, opts diagfmt.PrettyOpts) {
	for i := range results {
		res := &results[i]
		if res.Bag == nil || (!res.Bag.HasErrors() && !res.Bag.HasWarnings()) {
			continue
		}
		if format == "json" && res.File != nil {
			continue
		}
		if res.File == nil {
			// у незагруженного файла нет позиций
			for _, d := range res.Bag.Items() {
				fmt.Fprintf(w, "%s: %s %s: %s\n", res.Path, d.Severity, d.Code.ID(), d.Message)
			}
			continue
		}
		diagfmt.Pretty(w, res.Bag, fileSet, opts)
	}
}

func writeResultsPretty(w io.Writer, results []driver.Result, fileSet *source.FileSet, opts diagfmt.NodeOpts, headers bool) error {
	for i := range results {
		res := &results[i]
		if res.File == nil {
			continue
		}
		if headers {
			note := ""
			if res.Cached {
				note = ", cached"
			}
			if _, err := fmt.Fprintf(w, "== %s (%s%s) ==\n", res.Path, res.Language, note); err != nil {
				return err
			}
		}
		if err := diagfmt.FormatNodesPretty(w, res.Unit, fileSet, opts); err != nil {
			return err
		}
	}
	return nil
}

// writeResultsJSON пишет один объект для файла и массив для каталога
func writeResultsJSON(w io.Writer, results []driver.Result, fileSet *source.FileSet, opts diagfmt.NodeOpts, single bool) error {
	if single && len(results) == 1 && results[0].File != nil {
		return diagfmt.FormatNodesJSON(w, results[0].Unit, results[0].Language, fileSet, opts)
	}
	units := make([]diagfmt.UnitOutput, 0, len(results))
	for i := range results {
		res := &results[i]
		if res.File == nil {
			continue
		}
		units = append(units, diagfmt.BuildUnitOutput(res.Unit, res.Language, fileSet, opts))
	}
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(units)
}
