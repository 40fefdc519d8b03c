package pong

import (
	"fmt"
	"strings"
)

// Action is a logical control, independent of any keyboard layout.
type Action int

const (
	ActionNone Action = iota
	ActionStart
	ActionLeftUp
	ActionLeftDown
	ActionRightUp
	ActionRightDown
	ActionQuit
)

var actionNames = map[Action]string{
	ActionStart:     "start",
	ActionLeftUp:    "left_up",
	ActionLeftDown:  "left_down",
	ActionRightUp:   "right_up",
	ActionRightDown: "right_down",
	ActionQuit:      "quit",
}

// Actions lists every bindable action in a stable order.
func Actions() []Action {
	return []Action{ActionStart, ActionLeftUp, ActionLeftDown, ActionRightUp, ActionRightDown, ActionQuit}
}

func (a Action) String() string {
	if name, ok := actionNames[a]; ok {
		return name
	}
	return fmt.Sprintf("Action(%d)", int(a))
}

// ParseAction is the inverse of Action.String.
func ParseAction(s string) (Action, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	for a, name := range actionNames {
		if name == s {
			return a, nil
		}
	}
	return ActionNone, fmt.Errorf("unknown action %q", s)
}

// paddleAction maps an up/down action to its paddle and direction sign.
func paddleAction(a Action) (Side, float64, bool) {
	switch a {
	case ActionLeftUp:
		return Left, 1, true
	case ActionLeftDown:
		return Left, -1, true
	case ActionRightUp:
		return Right, 1, true
	case ActionRightDown:
		return Right, -1, true
	}
	return Left, 0, false
}

// KeyEvent is a press or release of an action.
type KeyEvent struct {
	Action  Action
	Pressed bool
}

// Bindings maps each action to the key names that trigger it. Key names
// follow ebiten's spelling ("W", "ArrowUp", "Enter"); each frontend
// translates them to its own key codes.
type Bindings map[Action][]string

// DefaultBindings: Enter starts, W/S drive the left paddle, the arrow keys
// drive the right one and Escape or Q quits.
func DefaultBindings() Bindings {
	return Bindings{
		ActionStart:     {"Enter"},
		ActionLeftUp:    {"W"},
		ActionLeftDown:  {"S"},
		ActionRightUp:   {"ArrowUp"},
		ActionRightDown: {"ArrowDown"},
		ActionQuit:      {"Escape", "Q"},
	}
}

// Lookup builds a key name to action index. Names are matched case-insensitively.
func (b Bindings) Lookup() map[string]Action {
	index := make(map[string]Action)
	for _, a := range Actions() {
		for _, key := range b[a] {
			index[strings.ToLower(key)] = a
		}
	}
	return index
}

// Validate rejects unknown key names and keys bound to more than one action.
func (b Bindings) Validate() error {
	owner := make(map[string]Action)
	for _, a := range Actions() {
		for _, key := range b[a] {
			if _, ok := CanonicalKey(key); !ok {
				return fmt.Errorf("unknown key %q for %s", key, a)
			}
			k := strings.ToLower(key)
			if prev, ok := owner[k]; ok && prev != a {
				return fmt.Errorf("key %q bound to both %s and %s", key, prev, a)
			}
			owner[k] = a
		}
	}
	return nil
}
