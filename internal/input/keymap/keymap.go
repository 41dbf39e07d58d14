package keymap

import (
	"fmt"

	"github.com/dshills/riv/internal/input/action"
	"github.com/dshills/riv/internal/input/key"
)

// Keymap holds a named set of key bindings.
type Keymap struct {
	// Name is the keymap identifier.
	Name string

	// Bindings are the key-to-action mappings.
	Bindings []Binding

	// Source indicates where this keymap was defined.
	// Examples: "default", "config"
	Source string
}

// NewKeymap creates a new keymap with the given name.
func NewKeymap(name string) *Keymap {
	return &Keymap{
		Name:     name,
		Bindings: make([]Binding, 0),
	}
}

// WithSource sets the source for this keymap.
func (k *Keymap) WithSource(source string) *Keymap {
	k.Source = source
	return k
}

// Add adds a binding to the keymap.
func (k *Keymap) Add(keys, actionName string) *Keymap {
	k.Bindings = append(k.Bindings, NewBinding(keys, actionName))
	return k
}

// AddBinding adds a complete binding to the keymap.
func (k *Keymap) AddBinding(binding Binding) *Keymap {
	k.Bindings = append(k.Bindings, binding)
	return k
}

// Validate checks that all bindings in the keymap are valid.
func (k *Keymap) Validate() error {
	for i, b := range k.Bindings {
		if _, err := b.Parse(); err != nil {
			return fmt.Errorf("binding %d (%s): %w", i, b.Keys, err)
		}
	}
	return nil
}

// Table is the lookup structure built from one or more keymaps.
type Table struct {
	text     map[rune]action.Action
	keys     map[key.Key]action.Action
	bindings []Binding
}

// Build merges the keymaps in order into a lookup table. A later keymap
// replaces any binding an earlier one made for the same keys; its
// description and category are kept from the earlier binding when the
// later one leaves them empty.
func Build(keymaps ...*Keymap) (*Table, error) {
	t := &Table{
		text: make(map[rune]action.Action),
		keys: make(map[key.Key]action.Action),
	}
	index := make(map[string]int)

	for _, km := range keymaps {
		if km == nil {
			continue
		}
		for _, b := range km.Bindings {
			pb, err := b.Parse()
			if err != nil {
				return nil, fmt.Errorf("keymap %s: %s: %w", km.Name, b.Keys, err)
			}
			if pb.Key != key.KeyNone {
				t.keys[pb.Key] = pb.Target
			} else {
				t.text[pb.Rune] = pb.Target
			}

			id := b.Keys
			if pb.Key != key.KeyNone {
				id = pb.Key.String()
			}
			if i, ok := index[id]; ok {
				prev := t.bindings[i]
				if b.Description == "" && prev.Action == b.Action {
					b.Description = prev.Description
				}
				if b.Category == "" {
					b.Category = prev.Category
				}
				t.bindings[i] = b
				continue
			}
			index[id] = len(t.bindings)
			t.bindings = append(t.bindings, b)
		}
	}
	return t, nil
}

// LookupText returns the action bound to the character r.
func (t *Table) LookupText(r rune) (action.Action, bool) {
	a, ok := t.text[r]
	return a, ok
}

// LookupKey returns the action bound to the key k.
func (t *Table) LookupKey(k key.Key) (action.Action, bool) {
	a, ok := t.keys[k]
	return a, ok
}

// Bindings returns the effective bindings in definition order.
func (t *Table) Bindings() []Binding {
	out := make([]Binding, len(t.bindings))
	copy(out, t.bindings)
	return out
}

// Len returns the number of effective bindings.
func (t *Table) Len() int {
	return len(t.bindings)
}
