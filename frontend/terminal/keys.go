package terminal

import (
	"fmt"
	"strings"
	"time"
	"unicode"

	"github.com/gdamore/tcell"

	"github.com/plus3/pong/pong"
)

// termKey identifies a key as tcell reports it. Printable keys are KeyRune
// with a lower-case rune.
type termKey struct {
	key  tcell.Key
	char rune
}

var specialKeys = map[string]tcell.Key{
	"Enter":      tcell.KeyEnter,
	"Escape":     tcell.KeyEscape,
	"Tab":        tcell.KeyTab,
	"Backspace":  tcell.KeyBackspace2,
	"ArrowUp":    tcell.KeyUp,
	"ArrowDown":  tcell.KeyDown,
	"ArrowLeft":  tcell.KeyLeft,
	"ArrowRight": tcell.KeyRight,
}

func toTermKey(canonical string) (termKey, bool) {
	if k, ok := specialKeys[canonical]; ok {
		return termKey{key: k}, true
	}
	switch {
	case canonical == "Space":
		return termKey{key: tcell.KeyRune, char: ' '}, true
	case strings.HasPrefix(canonical, "Digit"):
		return termKey{key: tcell.KeyRune, char: rune(canonical[len("Digit")])}, true
	case len(canonical) == 1:
		return termKey{key: tcell.KeyRune, char: unicode.ToLower(rune(canonical[0]))}, true
	}
	return termKey{}, false
}

// keymap resolves bindings to tcell keys.
func keymap(b pong.Bindings) (map[termKey]pong.Action, error) {
	out := make(map[termKey]pong.Action)
	for _, action := range pong.Actions() {
		for _, name := range b[action] {
			canonical, ok := pong.CanonicalKey(name)
			if !ok {
				return nil, fmt.Errorf("unknown key %q for %s", name, action)
			}
			k, ok := toTermKey(canonical)
			if !ok {
				return nil, fmt.Errorf("key %q has no terminal equivalent", name)
			}
			out[k] = action
		}
	}
	return out, nil
}

func eventKey(ev *tcell.EventKey) termKey {
	if ev.Key() == tcell.KeyRune {
		return termKey{key: tcell.KeyRune, char: unicode.ToLower(ev.Rune())}
	}
	return termKey{key: ev.Key()}
}

// holdTracker turns the press-only key stream of a terminal into press and
// release pairs: a paddle key counts as held until hold has passed without
// a repeat.
type holdTracker struct {
	hold     time.Duration
	deadline map[pong.Action]time.Time
}

func newHoldTracker(hold time.Duration) *holdTracker {
	return &holdTracker{hold: hold, deadline: make(map[pong.Action]time.Time)}
}

// press records a press at now. It reports whether the action was not
// already held, which is when the session should see a press.
func (h *holdTracker) press(a pong.Action, now time.Time) bool {
	_, held := h.deadline[a]
	h.deadline[a] = now.Add(h.hold)
	if opposite, ok := oppositeOf[a]; ok {
		delete(h.deadline, opposite)
	}
	return !held
}

// expired removes and returns the actions whose hold ran out by now, in
// action order.
func (h *holdTracker) expired(now time.Time) []pong.Action {
	var out []pong.Action
	for _, a := range pong.Actions() {
		if d, ok := h.deadline[a]; ok && !now.Before(d) {
			delete(h.deadline, a)
			out = append(out, a)
		}
	}
	return out
}

// Pressing a direction drops the opposite hold without releasing it: a
// release stops the paddle.
var oppositeOf = map[pong.Action]pong.Action{
	pong.ActionLeftUp:    pong.ActionLeftDown,
	pong.ActionLeftDown:  pong.ActionLeftUp,
	pong.ActionRightUp:   pong.ActionRightDown,
	pong.ActionRightDown: pong.ActionRightUp,
}
