package session

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/peterh/liner"
)

// ErrAborted is returned by a LineReader when the user abandons the line
// being edited (Ctrl-C). The session discards it and reads the next line.
var ErrAborted = errors.New("line aborted")

// LineReader supplies input lines without their trailing newline. ReadLine
// returns io.EOF when input is exhausted. A non-empty prompt is shown to
// the user before reading.
type LineReader interface {
	ReadLine(prompt string) (string, error)
	Close() error
}

// ScannerReader reads lines of any length from an io.Reader. Prompts are
// written to out. A trailing "\r\n" or "\n" is removed from each line.
type ScannerReader struct {
	br  *bufio.Reader
	out io.Writer
}

// NewScannerReader returns a LineReader over in that writes prompts to out.
func NewScannerReader(in io.Reader, out io.Writer) *ScannerReader {
	return &ScannerReader{br: bufio.NewReader(in), out: out}
}

func (r *ScannerReader) ReadLine(prompt string) (string, error) {
	if prompt != "" {
		if _, err := io.WriteString(r.out, prompt); err != nil {
			return "", err
		}
	}
	line, err := r.br.ReadString('\n')
	if err != nil && (err != io.EOF || line == "") {
		return "", err
	}
	line = strings.TrimSuffix(line, "\n")
	return strings.TrimSuffix(line, "\r"), nil
}

func (r *ScannerReader) Close() error {
	return nil
}

// LinerReader reads lines from the terminal with line editing and a
// persistent history file.
type LinerReader struct {
	state       *liner.State
	historyPath string
}

// NewLinerReader puts the terminal into raw mode and loads the history
// stored at historyPath, if any. An empty historyPath disables history
// persistence.
func NewLinerReader(historyPath string) (*LinerReader, error) {
	state := liner.NewLiner()
	state.SetCtrlCAborts(true)

	if historyPath != "" {
		f, err := os.Open(historyPath)
		switch {
		case err == nil:
			_, rerr := state.ReadHistory(f)
			f.Close()
			if rerr != nil {
				state.Close()
				return nil, fmt.Errorf("read history: %w", rerr)
			}
		case !os.IsNotExist(err):
			state.Close()
			return nil, fmt.Errorf("open history: %w", err)
		}
	}
	return &LinerReader{state: state, historyPath: historyPath}, nil
}

func (r *LinerReader) ReadLine(prompt string) (string, error) {
	line, err := r.state.Prompt(prompt)
	switch {
	case err == nil:
		if line != "" {
			r.state.AppendHistory(line)
		}
		return line, nil
	case errors.Is(err, liner.ErrPromptAborted):
		return "", ErrAborted
	default:
		return "", err
	}
}

// Close saves the history and restores the terminal.
func (r *LinerReader) Close() error {
	var werr error
	if r.historyPath != "" {
		werr = r.writeHistory()
	}
	if err := r.state.Close(); err != nil {
		return err
	}
	return werr
}

func (r *LinerReader) writeHistory() error {
	f, err := os.Create(r.historyPath)
	if err != nil {
		return fmt.Errorf("create history: %w", err)
	}
	if _, err := r.state.WriteHistory(f); err != nil {
		f.Close()
		return fmt.Errorf("write history: %w", err)
	}
	return f.Close()
}
