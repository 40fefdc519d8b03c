package pong

import (
	"sort"
	"strings"
)

// keyNames indexes the supported key names by their lower-case form. The
// canonical spelling is ebiten's: "A", "Digit1", "ArrowUp", "Enter".
var keyNames = func() map[string]string {
	names := []string{
		"Enter", "Space", "Escape", "Tab", "Backspace",
		"ArrowUp", "ArrowDown", "ArrowLeft", "ArrowRight",
	}
	for c := 'A'; c <= 'Z'; c++ {
		names = append(names, string(c))
	}
	for c := '0'; c <= '9'; c++ {
		names = append(names, "Digit"+string(c))
	}

	index := make(map[string]string, len(names))
	for _, n := range names {
		index[strings.ToLower(n)] = n
	}
	return index
}()

// CanonicalKey returns the canonical spelling of a supported key name.
func CanonicalKey(name string) (string, bool) {
	key, ok := keyNames[strings.ToLower(strings.TrimSpace(name))]
	return key, ok
}

// KeyNames lists every supported key name, sorted.
func KeyNames() []string {
	names := make([]string, 0, len(keyNames))
	for _, n := range keyNames {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}
