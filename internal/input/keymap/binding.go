package keymap

import (
	"fmt"
	"unicode/utf8"

	"github.com/dshills/riv/internal/input/action"
	"github.com/dshills/riv/internal/input/key"
)

// Binding maps one key to an action name, as written in the config file.
//
// Keys is a single character ("j", "?") matched against text input, or a
// key name ("Home", "PageUp") matched against unmodified key presses.
// Action is anything action.Parse accepts, such as "next" or "pan(left)".
// Description and Category only feed the help overlay.
type Binding struct {
	Keys        string
	Action      string
	Description string
	Category    string
}

// NewBinding returns an undocumented binding.
func NewBinding(keys, actionName string) Binding {
	return Binding{Keys: keys, Action: actionName}
}

// IsText reports whether b matches a typed character.
func (b Binding) IsText() bool {
	return utf8.RuneCountInString(b.Keys) == 1
}

// ParsedBinding is a Binding with Keys and Action resolved. Exactly one
// of Rune and Key is set.
type ParsedBinding struct {
	Binding
	Rune   rune
	Key    key.Key
	Target action.Action
}

// Parse resolves b. Digits 1-9 and the digit action belong to count entry
// and cannot be bound.
func (b Binding) Parse() (ParsedBinding, error) {
	pb := ParsedBinding{Binding: b}
	if b.Keys == "" {
		return pb, ErrEmptyKeys
	}

	if b.IsText() {
		pb.Rune, _ = utf8.DecodeRuneInString(b.Keys)
		if '1' <= pb.Rune && pb.Rune <= '9' {
			return pb, fmt.Errorf("%w: %q", ErrReservedKey, b.Keys)
		}
	} else if pb.Key = key.KeyFromName(b.Keys); pb.Key == key.KeyNone {
		return pb, fmt.Errorf("%w: %q", ErrUnknownKey, b.Keys)
	}

	target, err := action.Parse(b.Action)
	switch {
	case err != nil:
		return pb, err
	case target.Kind == action.KindDigit:
		return pb, fmt.Errorf("%w: %q", ErrReservedAction, b.Action)
	}
	pb.Target = target
	return pb, nil
}

// BindingCategory is one section of the help overlay.
type BindingCategory struct {
	Name     string
	Bindings []Binding
}

// GroupByCategory splits bindings into sections in order of first
// appearance. Uncategorized bindings go under "Other".
func GroupByCategory(bindings []Binding) []BindingCategory {
	var groups []BindingCategory
	index := map[string]int{}
	for _, b := range bindings {
		name := b.Category
		if name == "" {
			name = "Other"
		}
		i, ok := index[name]
		if !ok {
			i = len(groups)
			index[name] = i
			groups = append(groups, BindingCategory{Name: name})
		}
		groups[i].Bindings = append(groups[i].Bindings, b)
	}
	return groups
}
