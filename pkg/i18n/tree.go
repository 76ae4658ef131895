package i18n

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Tree is a nested translation structure for one language. Keys map either
// to a leaf string or to a sub-tree. Trees come from static JSON resources,
// so they contain no cycles.
type Tree map[string]any

// Resolve walks the tree along a dotted key path and returns the leaf string.
// Resolution fails if any segment is missing, if an intermediate node is not
// a mapping, or if the final node is still a sub-tree rather than a leaf.
// It has no side effects; a miss is reported through the bool, not an error.
func (t Tree) Resolve(key string) (string, bool) {
	if len(t) == 0 || key == "" {
		return "", false
	}

	var node any = map[string]any(t)
	for seg := range strings.SplitSeq(key, ".") {
		m, ok := asMap(node)
		if !ok {
			return "", false
		}
		node, ok = m[seg]
		if !ok {
			return "", false
		}
	}

	s, ok := node.(string)
	return s, ok
}

// asMap normalizes the two mapping shapes a Tree can hold: Tree itself at the
// root and map[string]any below it (the shape json.Unmarshal produces).
func asMap(node any) (map[string]any, bool) {
	switch m := node.(type) {
	case Tree:
		return m, true
	case map[string]any:
		return m, true
	default:
		return nil, false
	}
}

// LastSegment returns the final dot-segment of a key, the terminal fallback
// shown when no tier resolves. Returns the key unchanged when it has no
// usable segment, so the result is always displayable.
func LastSegment(key string) string {
	if i := strings.LastIndexByte(key, '.'); i >= 0 && i+1 < len(key) {
		return key[i+1:]
	}
	return key
}

// ParseTree decodes a JSON translation resource into a Tree.
func ParseTree(data []byte) (Tree, error) {
	var raw map[string]any
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("%w: %s", ErrInvalidResource, err)
	}
	return Tree(raw), nil
}
