package app

import (
	"unicode"

	"github.com/gdamore/tcell/v2"

	"github.com/dshills/textcore/internal/engine/edit"
	"github.com/dshills/textcore/internal/engine/movement"
)

// Action identifies what a key press does.
type Action uint8

const (
	// ActionNone means the key is unbound.
	ActionNone Action = iota
	// ActionEdit applies Command.Op.
	ActionEdit
	// ActionMove applies Command.Movement.
	ActionMove
	// ActionCopy copies the selected text.
	ActionCopy
	// ActionCut copies the selected text and deletes it.
	ActionCut
	// ActionPaste inserts the clipboard text at every region.
	ActionPaste
	// ActionQuit exits the editor.
	ActionQuit
)

// String returns the action name.
func (a Action) String() string {
	switch a {
	case ActionNone:
		return "none"
	case ActionEdit:
		return "edit"
	case ActionMove:
		return "move"
	case ActionCopy:
		return "copy"
	case ActionCut:
		return "cut"
	case ActionPaste:
		return "paste"
	case ActionQuit:
		return "quit"
	default:
		return "unknown"
	}
}

// Command is the resolved meaning of a key press.
type Command struct {
	Action   Action
	Op       edit.Op
	Movement movement.Movement
	// Modify extends the selection instead of moving carets.
	Modify bool
}

// String returns a short description for logging.
func (c Command) String() string {
	switch c.Action {
	case ActionEdit:
		return c.Op.String()
	case ActionMove:
		if c.Modify {
			return "Extend" + c.Movement.String()
		}
		return c.Movement.String()
	default:
		return c.Action.String()
	}
}

var moveKeys = map[tcell.Key]movement.Movement{
	tcell.KeyLeft:  movement.Left,
	tcell.KeyRight: movement.Right,
	tcell.KeyUp:    movement.Up,
	tcell.KeyDown:  movement.Down,
}

var ctrlRunes = map[rune]Action{
	'c': ActionCopy,
	'x': ActionCut,
	'v': ActionPaste,
	'q': ActionQuit,
}

// Lookup maps a key event to a command. Printable runes insert themselves,
// Enter and Tab insert a newline and a tab, Backspace deletes backward and
// the arrows move, extending the selection when Shift is held.
func Lookup(ev *tcell.EventKey) (Command, bool) {
	if m, ok := moveKeys[ev.Key()]; ok {
		return Command{
			Action:   ActionMove,
			Movement: m,
			Modify:   ev.Modifiers()&tcell.ModShift != 0,
		}, true
	}

	switch ev.Key() {
	case tcell.KeyRune:
		mods := ev.Modifiers()
		if mods&tcell.ModCtrl != 0 && mods&(tcell.ModAlt|tcell.ModMeta) == 0 {
			// Some terminals report Ctrl+letter as the letter.
			a, ok := ctrlRunes[unicode.ToLower(ev.Rune())]
			return Command{Action: a}, ok
		}
		if mods&(tcell.ModCtrl|tcell.ModAlt|tcell.ModMeta) != 0 {
			return Command{}, false
		}
		return Command{Action: ActionEdit, Op: edit.Insert{Text: string(ev.Rune())}}, true
	case tcell.KeyEnter:
		return Command{Action: ActionEdit, Op: edit.Insert{Text: "\n"}}, true
	case tcell.KeyTab:
		return Command{Action: ActionEdit, Op: edit.Insert{Text: "\t"}}, true
	case tcell.KeyBackspace, tcell.KeyBackspace2:
		return Command{Action: ActionEdit, Op: edit.DeleteBackward{}}, true
	case tcell.KeyCtrlC:
		return Command{Action: ActionCopy}, true
	case tcell.KeyCtrlX:
		return Command{Action: ActionCut}, true
	case tcell.KeyCtrlV:
		return Command{Action: ActionPaste}, true
	case tcell.KeyCtrlQ:
		return Command{Action: ActionQuit}, true
	}
	return Command{}, false
}
