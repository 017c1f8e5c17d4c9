package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"hilite/internal/driver"
	"hilite/internal/source"
	"hilite/internal/ui"
)

type uiMode string

const (
	uiModeAuto uiMode = "auto"
	uiModeOn   uiMode = "on"
	uiModeOff  uiMode = "off"
)

func readUIMode(value string) (uiMode, error) {
	switch strings.TrimSpace(strings.ToLower(value)) {
	case "", "auto":
		return uiModeAuto, nil
	case "on":
		return uiModeOn, nil
	case "off":
		return uiModeOff, nil
	default:
		return "", fmt.Errorf("invalid --ui value %q (expected auto|on|off)", value)
	}
}

// shouldUseTUI: прогресс рисуется в stderr, stdout остаётся под листинг
func shouldUseTUI(mode uiMode) bool {
	switch mode {
	case uiModeOn:
		return true
	case uiModeOff:
		return false
	default:
		return isTerminal(os.Stderr)
	}
}

type decorateOutcome struct {
	results []driver.Result
	err     error
}

func runDecorateWithUI(ctx context.Context, title string, fileSet *source.FileSet, files []string, opts driver.Options) ([]driver.Result, error) {
	if len(files) == 0 {
		return nil, nil
	}
	events := make(chan driver.Event, 256)
	outcomeCh := make(chan decorateOutcome, 1)

	go func() {
		opts.Progress = driver.ChannelSink(events)
		res, err := driver.DecorateFiles(ctx, fileSet, files, opts)
		outcomeCh <- decorateOutcome{results: res, err: err}
		close(events)
	}()

	model := ui.NewProgressModel(title, files, events)
	program := tea.NewProgram(model, tea.WithOutput(os.Stderr))
	_, uiErr := program.Run()
	if uiErr != nil {
		// UI упал раньше воркеров: не даём им заблокироваться на канале
		go func() {
			for range events {
			}
		}()
	}
	outcome := <-outcomeCh
	if uiErr != nil {
		return outcome.results, uiErr
	}
	return outcome.results, outcome.err
}
