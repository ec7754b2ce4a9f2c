package frames

import (
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/log"
)

// Sentinel errors.
var (
	// ErrDuplicateKey is returned by ValidateTree when two siblings share a
	// key, which makes ancestry paths ambiguous.
	ErrDuplicateKey = errors.New("duplicate sibling key")

	// ErrInvalidScript is returned when a test script cannot be used.
	ErrInvalidScript = errors.New("invalid test script")
)

const (
	debugMaxTreeDepth  = 32
	debugMaxChildCount = 1000
)

// ValidateTree checks that no two siblings in tree share a non-empty key.
// The returned error wraps ErrDuplicateKey and names the parent path.
func ValidateTree(tree *Frame) error {
	return validate(tree, nil)
}

func validate(f *Frame, path []string) error {
	if f == nil {
		return nil
	}
	if f.Key != "" {
		path = append(path[:len(path):len(path)], f.Key)
	}
	seen := make(map[string]struct{}, len(f.Children))
	for _, c := range f.Children {
		if c == nil || c.Key == "" {
			continue
		}
		if _, dup := seen[c.Key]; dup {
			return fmt.Errorf("key %q under /%s: %w", c.Key, strings.Join(path, "/"), ErrDuplicateKey)
		}
		seen[c.Key] = struct{}{}
	}
	for _, c := range f.Children {
		if err := validate(c, path); err != nil {
			return err
		}
	}
	return nil
}

// TreeStats summarizes the shape of a frame tree.
type TreeStats struct {
	Frames    int
	Clickable int
	Keyed     int
	MaxDepth  int
	MaxFanout int
}

// Stats walks tree and returns its TreeStats.
func Stats(tree *Frame) TreeStats {
	var st TreeStats
	tree.Walk(func(n *Frame, depth int) bool {
		st.Frames++
		if n.Clickable() {
			st.Clickable++
		}
		if n.Key != "" {
			st.Keyed++
		}
		if depth > st.MaxDepth {
			st.MaxDepth = depth
		}
		if len(n.Children) > st.MaxFanout {
			st.MaxFanout = len(n.Children)
		}
		return true
	})
	return st
}

// debugCheckTree logs a warning when a tree is deep or wide enough to make
// per-event hit searches expensive.
func debugCheckTree(logger *log.Logger, tree *Frame) {
	st := Stats(tree)
	if st.MaxDepth > debugMaxTreeDepth {
		logger.Warn("frame tree is deep", "depth", st.MaxDepth, "threshold", debugMaxTreeDepth)
	}
	if st.MaxFanout > debugMaxChildCount {
		logger.Warn("frame has many children", "children", st.MaxFanout, "threshold", debugMaxChildCount)
	}
	logger.Debug("snapshot accepted", "frames", st.Frames, "clickable", st.Clickable, "keyed", st.Keyed)
}
