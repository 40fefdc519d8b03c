package window

import (
	"fmt"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/plus3/pong/pong"
)

type keyBinding struct {
	key    ebiten.Key
	action pong.Action
}

// resolveBindings maps key names to ebiten keys, in action order.
func resolveBindings(b pong.Bindings) ([]keyBinding, error) {
	var out []keyBinding
	for _, action := range pong.Actions() {
		for _, name := range b[action] {
			canonical, ok := pong.CanonicalKey(name)
			if !ok {
				return nil, fmt.Errorf("unknown key %q for %s", name, action)
			}
			var key ebiten.Key
			if err := key.UnmarshalText([]byte(canonical)); err != nil {
				return nil, fmt.Errorf("key %q for %s: %w", name, action, err)
			}
			out = append(out, keyBinding{key: key, action: action})
		}
	}
	return out, nil
}

// keyEdges lists the binding transitions of this tick.
type keyEdges struct {
	pressed  []pong.Action
	released []pong.Action
}

func pollKeys(bindings []keyBinding) keyEdges {
	var e keyEdges
	for _, b := range bindings {
		if inpututil.IsKeyJustPressed(b.key) {
			e.pressed = append(e.pressed, b.action)
		}
		if inpututil.IsKeyJustReleased(b.key) {
			e.released = append(e.released, b.action)
		}
	}
	return e
}
