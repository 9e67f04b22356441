// Package input turns raw terminal key presses into dashboard actions and
// manages the terminal's raw mode.
package input

import (
	"context"
	"errors"
	"io"
)

// Action is a dashboard command bound to a key.
type Action int

const (
	ActionNone Action = iota
	ActionPrevAtBat
	ActionNextAtBat
	ActionLive
	ActionNextPanel
	ActionPrevPanel
	ActionCursorUp
	ActionCursorDown
	ActionSelect
	ActionToggle
	ActionRefresh
	ActionQuit
)

func (a Action) String() string {
	switch a {
	case ActionPrevAtBat:
		return "prev-at-bat"
	case ActionNextAtBat:
		return "next-at-bat"
	case ActionLive:
		return "live"
	case ActionNextPanel:
		return "next-panel"
	case ActionPrevPanel:
		return "prev-panel"
	case ActionCursorUp:
		return "cursor-up"
	case ActionCursorDown:
		return "cursor-down"
	case ActionSelect:
		return "select"
	case ActionToggle:
		return "toggle"
	case ActionRefresh:
		return "refresh"
	case ActionQuit:
		return "quit"
	default:
		return "none"
	}
}

const (
	keyCtrlC = 0x03
	keyTab   = '\t'
	keyEnter = '\r'
	keyEsc   = 0x1b
)

var keyBindings = map[byte]Action{
	'h':      ActionPrevAtBat,
	'l':      ActionNextAtBat,
	'g':      ActionLive,
	'j':      ActionCursorDown,
	'k':      ActionCursorUp,
	't':      ActionToggle,
	'r':      ActionRefresh,
	'q':      ActionQuit,
	keyCtrlC: ActionQuit,
	keyTab:   ActionNextPanel,
	keyEnter: ActionSelect,
	'\n':     ActionSelect,
}

// final bytes of CSI and SS3 sequences
var escapeBindings = map[byte]Action{
	'A': ActionCursorUp,
	'B': ActionCursorDown,
	'C': ActionNextAtBat,
	'D': ActionPrevAtBat,
	'Z': ActionPrevPanel,
}

// Decode maps a chunk of terminal input to actions. Unbound keys are skipped.
// An escape sequence cut off at the end of the chunk is dropped.
func Decode(buf []byte) []Action {
	var actions []Action
	for i := 0; i < len(buf); i++ {
		c := buf[i]
		if c != keyEsc {
			if a, ok := keyBindings[c]; ok {
				actions = append(actions, a)
			}
			continue
		}

		// ESC [ params final, or ESC O final
		if i+1 >= len(buf) || (buf[i+1] != '[' && buf[i+1] != 'O') {
			continue
		}
		j := i + 2
		for j < len(buf) && buf[j] >= 0x30 && buf[j] <= 0x3f {
			j++
		}
		if j >= len(buf) {
			return actions
		}
		if a, ok := escapeBindings[buf[j]]; ok {
			actions = append(actions, a)
		}
		i = j
	}
	return actions
}

// Reader decodes key presses from a terminal
type Reader struct {
	r io.Reader
}

// NewReader creates a Reader over r, normally a raw-mode stdin
func NewReader(r io.Reader) *Reader {
	return &Reader{r: r}
}

// Run reads input and sends decoded actions to out until the input ends or
// ctx is canceled. A blocked read is only noticed after it returns.
func (r *Reader) Run(ctx context.Context, out chan<- Action) error {
	buf := make([]byte, 64)
	for {
		n, err := r.r.Read(buf)
		for _, a := range Decode(buf[:n]) {
			select {
			case out <- a:
			case <-ctx.Done():
				return ctx.Err()
			}
		}
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return err
		}
		if ctx.Err() != nil {
			return ctx.Err()
		}
	}
}
