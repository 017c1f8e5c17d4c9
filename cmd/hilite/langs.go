package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var langsCmd = &cobra.Command{
	Use:   "langs",
	Short: "List the known languages and their extensions",
	Args:  cobra.NoArgs,
	RunE:  runLangs,
}

func init() {
	langsCmd.Flags().String("format", "pretty", "output format (pretty|json)")
}

type languageInfo struct {
	Name       string   `json:"name"`
	Aliases    []string `json:"aliases,omitempty"`
	Extensions []string `json:"extensions"`
}

func runLangs(cmd *cobra.Command, _ []string) error {
	format, err := cmd.Flags().GetString("format")
	if err != nil {
		return fmt.Errorf("failed to get format flag: %w", err)
	}
	sess, err := loadSession(cmd, ".")
	if err != nil {
		return err
	}

	names := sess.registry.Names()
	infos := make([]languageInfo, 0, len(names))
	for _, name := range names {
		def, err := sess.registry.Lookup(name)
		if err != nil {
			return err
		}
		exts := sess.registry.Extensions(name)
		if exts == nil {
			exts = []string{}
		}
		infos = append(infos, languageInfo{Name: def.Name, Aliases: def.Aliases, Extensions: exts})
	}

	out := cmd.OutOrStdout()
	switch format {
	case "json":
		encoder := json.NewEncoder(out)
		encoder.SetIndent("", "  ")
		return encoder.Encode(infos)
	case "pretty":
		useColor, err := colorEnabled(cmd, os.Stdout)
		if err != nil {
			return err
		}
		nameColor := color.New(color.FgCyan, color.Bold)
		if useColor {
			nameColor.EnableColor()
		} else {
			nameColor.DisableColor()
		}
		for _, info := range infos {
			// выравниваем до покраски: escape-коды ломают %-Ns
			name := fmt.Sprintf("%-12s", info.Name)
			line := nameColor.Sprint(name) + " " + strings.Join(info.Extensions, " ")
			if len(info.Aliases) > 0 {
				line += "  (aka " + strings.Join(info.Aliases, ", ") + ")"
			}
			if _, err := fmt.Fprintln(out, line); err != nil {
				return err
			}
		}
		return nil
	default:
		return fmt.Errorf("unknown format: %s", format)
	}
}
