package keymap

import "strings"

// Resolver maps key strings to actions.
type Resolver struct {
	bindings map[string]Action   // key -> action
	byAction map[Action][]string // action -> keys (for help)
	describe map[Action]string
}

// NewResolver creates a resolver from bindings.
func NewResolver(bindings []Binding) *Resolver {
	r := &Resolver{
		bindings: make(map[string]Action),
		byAction: make(map[Action][]string),
		describe: make(map[Action]string),
	}
	for _, b := range bindings {
		for _, key := range b.Keys {
			r.bindings[key] = b.Action
		}
		r.byAction[b.Action] = append(r.byAction[b.Action], b.Keys...)
		if _, ok := r.describe[b.Action]; !ok {
			r.describe[b.Action] = b.Description
		}
	}
	for action, keys := range r.byAction {
		r.byAction[action] = dedupe(keys)
	}
	return r
}

// Resolve returns the action for a key, or empty string if not bound.
func (r *Resolver) Resolve(key string) Action {
	return r.bindings[key]
}

// KeysFor returns the keys bound to an action.
func (r *Resolver) KeysFor(action Action) []string {
	return r.byAction[action]
}

// Hint returns a short "keys description" line for the status bar,
// e.g. "space play/pause all stems". Empty for unbound actions.
func (r *Resolver) Hint(action Action) string {
	keys := r.byAction[action]
	if len(keys) == 0 {
		return ""
	}
	shown := make([]string, 0, len(keys))
	for _, k := range keys {
		if k == " " {
			continue
		}
		shown = append(shown, k)
	}
	if len(shown) == 0 {
		shown = []string{"space"}
	}
	return strings.Join(shown, "/") + " " + strings.ToLower(r.describe[action])
}

func dedupe(s []string) []string {
	seen := make(map[string]bool)
	result := make([]string, 0, len(s))
	for _, v := range s {
		if !seen[v] {
			seen[v] = true
			result = append(result, v)
		}
	}
	return result
}
