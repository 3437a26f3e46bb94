package shell

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/chzyer/readline"
)

// ErrInterrupted is returned by a LineReader when the user presses Ctrl+C.
var ErrInterrupted = errors.New("interrupted")

// LineReader reads one line of user input after showing a prompt.
// Readline returns io.EOF at end of input.
type LineReader interface {
	SetPrompt(prompt string)
	Readline() (string, error)
}

var (
	_ LineReader = (*Terminal)(nil)
	_ LineReader = (*StreamReader)(nil)
)

// Terminal is a LineReader backed by readline, with line editing and optional history.
type Terminal struct {
	rl *readline.Instance
}

// NewTerminal creates a readline terminal. An empty historyFile disables history.
func NewTerminal(prompt, historyFile string) (*Terminal, error) {
	rl, err := readline.NewEx(&readline.Config{
		Prompt:            prompt,
		HistoryFile:       historyFile,
		InterruptPrompt:   "^C",
		EOFPrompt:         "exit",
		HistorySearchFold: true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to initialize readline: %w", err)
	}
	return &Terminal{rl: rl}, nil
}

func (t *Terminal) SetPrompt(prompt string) {
	t.rl.SetPrompt(prompt)
}

func (t *Terminal) Readline() (string, error) {
	line, err := t.rl.Readline()
	if errors.Is(err, readline.ErrInterrupt) {
		return "", ErrInterrupted
	}
	return line, err
}

// Close restores the terminal state.
func (t *Terminal) Close() error {
	return t.rl.Close()
}

// StreamReader reads lines from a plain reader, such as piped stdin or a test script.
// The prompt is written to out before each line is read. Lines have no length limit.
type StreamReader struct {
	in     *bufio.Reader
	out    io.Writer
	prompt string
}

func NewStreamReader(in io.Reader, out io.Writer) *StreamReader {
	return &StreamReader{
		in:  bufio.NewReader(in),
		out: out,
	}
}

func (r *StreamReader) SetPrompt(prompt string) {
	r.prompt = prompt
}

// Readline returns the next line without its line ending. A last line without a
// newline is returned as is, and io.EOF follows on the next call.
func (r *StreamReader) Readline() (string, error) {
	fmt.Fprint(r.out, r.prompt)
	line, err := r.in.ReadString('\n')
	if err != nil && (!errors.Is(err, io.EOF) || line == "") {
		if errors.Is(err, io.EOF) {
			return "", io.EOF
		}
		return "", fmt.Errorf("failed to read input: %w", err)
	}
	return strings.TrimRight(line, "\r\n"), nil
}
