package main

import (
	"errors"
	"os"
	"strings"

	"github.com/danswartzendruber/liner"
)

// promptReader reads lines from a terminal, with line editing and a history
// that may be kept in a file between sessions.
type promptReader struct {
	state   *liner.State
	prompt  string
	history string
}

func newPromptReader(prompt, history string) *promptReader {
	pr := &promptReader{
		state:   liner.NewLiner(),
		prompt:  prompt,
		history: history,
	}
	pr.state.SetMultiLineMode(false)
	if history != "" {
		if f, err := os.Open(history); err == nil {
			pr.state.ReadHistory(f)
			f.Close()
		}
	}
	return pr
}

// ReadLine returns the next line entered, or io.EOF once input is closed. An
// aborted line is discarded and prompted for again.
func (pr *promptReader) ReadLine() (string, error) {
	for {
		line, err := pr.state.Prompt(pr.prompt)
		if errors.Is(err, liner.ErrPromptAborted) {
			continue
		}
		if err != nil {
			return "", err
		}
		if strings.TrimSpace(line) != "" {
			pr.state.AppendHistory(line)
		}
		return line, nil
	}
}

// Close saves the history, if it has a file, and restores the terminal.
func (pr *promptReader) Close() (err error) {
	if pr.history != "" {
		err = pr.saveHistory()
	}
	if cerr := pr.state.Close(); err == nil {
		err = cerr
	}
	return err
}

func (pr *promptReader) saveHistory() error {
	f, err := os.Create(pr.history)
	if err != nil {
		return err
	}
	_, err = pr.state.WriteHistory(f)
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	return err
}

// echoReader writes each line read to a display before returning it, so that
// a markup transcript shows the input alongside its output.
type echoReader struct {
	LineReader
	display Display
}

func (er echoReader) ReadLine() (string, error) {
	line, err := er.LineReader.ReadLine()
	if err == nil {
		err = er.display.WriteText(line)
	}
	return line, err
}
