// Package cli provides a line based prompt for trying completions by hand.
//
// Each line is looked up as typed. Two prefixes change the action:
//
//	=4663      exact matches only
//	+hood 12   add a word with an optional frequency
package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/bastiangx/keyserve/internal/utils"
	"github.com/bastiangx/keyserve/pkg/suggest"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
)

// InputHandler reads input lines and prints ranked suggestions.
type InputHandler struct {
	completer       suggest.ICompleter
	minPrefixLength int
	maxPrefixLength int
	suggestLimit    int
	requestCount    int

	out        io.Writer
	wordStyle  lipgloss.Style
	freqStyle  lipgloss.Style
	titleStyle lipgloss.Style
	noteStyle  lipgloss.Style
}

// NewInputHandler creates a handler writing to stdout.
func NewInputHandler(completer suggest.ICompleter, minLength, maxLength, limit int) *InputHandler {
	return NewInputHandlerWithOutput(completer, minLength, maxLength, limit, os.Stdout)
}

// NewInputHandlerWithOutput creates a handler writing to w. Colors are
// only emitted when w is a terminal.
func NewInputHandlerWithOutput(completer suggest.ICompleter, minLength, maxLength, limit int, w io.Writer) *InputHandler {
	r := lipgloss.NewRenderer(w)
	return &InputHandler{
		completer:       completer,
		minPrefixLength: minLength,
		maxPrefixLength: maxLength,
		suggestLimit:    limit,
		out:             w,
		wordStyle:       r.NewStyle().Foreground(lipgloss.ANSIColor(75)).Width(24),
		freqStyle:       r.NewStyle().Faint(true),
		titleStyle:      r.NewStyle().Bold(true),
		noteStyle:       r.NewStyle().Italic(true).Foreground(lipgloss.AdaptiveColor{Light: "#907aa9", Dark: "#c4a7e7"}),
	}
}

// Start reads lines from stdin until it is closed.
func (h *InputHandler) Start() error {
	return h.Run(os.Stdin)
}

// Run reads lines from r until EOF, which ends the loop without error.
func (h *InputHandler) Run(r io.Reader) error {
	fmt.Fprintln(h.out, h.titleStyle.Render(fmt.Sprintf("keyserve CLI [%s mode]", h.completer.Mode())))
	fmt.Fprintln(h.out, h.noteStyle.Render("type something and press Enter (=input for exact matches, +word [freq] to add, Ctrl+D to exit)"))

	reader := bufio.NewReader(r)
	for {
		fmt.Fprint(h.out, "> ")
		line, err := reader.ReadString('\n')
		if line = strings.TrimSpace(line); line != "" {
			h.handleLine(line)
		}
		if err != nil {
			if errors.Is(err, io.EOF) {
				fmt.Fprintln(h.out)
				return nil
			}
			return err
		}
	}
}

func (h *InputHandler) handleLine(line string) {
	h.requestCount++
	switch {
	case strings.HasPrefix(line, "+"):
		h.handleAdd(strings.Fields(line[1:]))
	case strings.HasPrefix(line, "="):
		h.handleInput(strings.TrimSpace(line[1:]), true)
	default:
		h.handleInput(line, false)
	}
}

func (h *InputHandler) handleAdd(fields []string) {
	if len(fields) == 0 || len(fields) > 2 {
		h.note("usage: +word [frequency]")
		return
	}
	freq := 1
	if len(fields) == 2 {
		n, err := strconv.Atoi(fields[1])
		if err != nil {
			h.note(fmt.Sprintf("bad frequency %q", fields[1]))
			return
		}
		freq = n
	}
	if err := h.completer.AddWord(fields[0], freq); err != nil {
		log.Errorf("Adding word: %v", err)
		h.note(fmt.Sprintf("not added: %v", err))
		return
	}
	h.note(fmt.Sprintf("added '%s' (+%s)", fields[0], utils.FormatWithCommas(freq)))
}

// handleInput validates input and prints its suggestions.
func (h *InputHandler) handleInput(input string, exactOnly bool) {
	n := utf8.RuneCountInString(input)
	if n < h.minPrefixLength {
		h.note(fmt.Sprintf("input too short: %s", input))
		return
	}
	if n > h.maxPrefixLength {
		h.note(fmt.Sprintf("input too long: %s", input))
		return
	}
	valid := utils.IsValidInput(input)
	if h.completer.Mode() == suggest.ModeKeypad {
		valid = utils.IsKeypadInput(input)
	}
	if !valid {
		h.note(fmt.Sprintf("no suggestions for '%s' (filtered out)", input))
		return
	}

	start := time.Now()
	var suggestions []suggest.Suggestion
	if exactOnly {
		suggestions = h.completer.Match(input)
		if h.suggestLimit > 0 && len(suggestions) > h.suggestLimit {
			suggestions = suggestions[:h.suggestLimit]
		}
	} else {
		suggestions = h.completer.Complete(input, h.suggestLimit)
	}
	log.Debugf("Took [ %v ] for input '%s'", time.Since(start), input)

	if len(suggestions) == 0 {
		h.note(fmt.Sprintf("no suggestions for '%s'", input))
		return
	}
	fmt.Fprintf(h.out, "%d suggestions for '%s':\n", len(suggestions), input)
	for i, s := range suggestions {
		mark := " "
		if s.Exact {
			mark = "*"
		}
		fmt.Fprintf(h.out, "%2d.%s %s %s\n", i+1, mark, h.wordStyle.Render(s.Word),
			h.freqStyle.Render("freq: "+utils.FormatWithCommas(s.Frequency)))
	}
}

func (h *InputHandler) note(msg string) {
	fmt.Fprintln(h.out, h.noteStyle.Render(msg))
}
