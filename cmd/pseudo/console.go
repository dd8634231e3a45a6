package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/peterh/liner"
)

// consoleSource feeds INPUT from an interactive terminal with line editing and
// history for the duration of one run.
type consoleSource struct {
	state  *liner.State
	prompt string
}

func newConsoleSource(prompt string) *consoleSource {
	state := liner.NewLiner()
	state.SetCtrlCAborts(true)
	return &consoleSource{state: state, prompt: prompt}
}

func (c *consoleSource) ReadLine() (string, error) {
	line, err := c.state.Prompt(c.prompt)
	if errors.Is(err, liner.ErrPromptAborted) {
		return "", fmt.Errorf("input aborted: %w", context.Canceled)
	}
	if err != nil {
		return "", err
	}
	if line != "" {
		c.state.AppendHistory(line)
	}
	return line, nil
}

func (c *consoleSource) Close() error {
	return c.state.Close()
}
