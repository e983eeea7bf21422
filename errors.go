package keyboardist

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/agnivade/levenshtein"
)

// Configuration errors.
var (
	ErrEmptyDescriptor  = errors.New("empty key descriptor")
	ErrEmptyKey         = errors.New("missing primary key")
	ErrUnknownModifier  = errors.New("unknown modifier")
	ErrUnknownKey       = errors.New("unknown key")
	ErrDuplicateBinding = errors.New("duplicate binding")
	ErrNilCallback      = errors.New("nil callback")
	ErrUnknownEvent     = errors.New("unknown event name")
	ErrNilSurface       = errors.New("nil input surface")
	ErrNilBindings      = errors.New("nil bindings map")
)

// DescriptorError reports a descriptor that cannot be bound.
type DescriptorError struct {
	Descriptor string
	// Token is the offending part of the descriptor, if any.
	Token string
	// Suggestion is the closest known name to Token.
	Suggestion string
	Err        error
}

func (e *DescriptorError) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "descriptor %q: %v", e.Descriptor, e.Err)
	if e.Token != "" {
		fmt.Fprintf(&b, " %q", e.Token)
	}
	if e.Suggestion != "" {
		fmt.Fprintf(&b, " (did you mean %q?)", e.Suggestion)
	}
	return b.String()
}

func (e *DescriptorError) Unwrap() error {
	return e.Err
}

// suggestionDistance is the largest edit distance worth suggesting.
const suggestionDistance = 2

// Suggest returns the candidate closest to input, or "" when nothing is
// close enough to be a plausible typo.
func Suggest(input string, candidates []string) string {
	input = strings.ToLower(input)
	best := ""
	bestDistance := suggestionDistance + 1
	for _, candidate := range candidates {
		d := levenshtein.ComputeDistance(input, strings.ToLower(candidate))
		if d < bestDistance || (d == bestDistance && candidate < best) {
			best = candidate
			bestDistance = d
		}
	}
	if bestDistance > suggestionDistance {
		return ""
	}
	return best
}

func modifierCandidates() []string {
	names := make([]string, 0, len(modifierAliases))
	for name := range modifierAliases {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func keyCandidates() []string {
	seen := make(map[string]struct{}, len(keyAliases))
	names := make([]string, 0, len(keyAliases))
	for _, name := range keyAliases {
		if _, ok := seen[name]; ok {
			continue
		}
		seen[name] = struct{}{}
		names = append(names, name)
	}
	for alias := range keyAliases {
		if _, ok := seen[alias]; ok {
			continue
		}
		seen[alias] = struct{}{}
		names = append(names, alias)
	}
	sort.Strings(names)
	return names
}
