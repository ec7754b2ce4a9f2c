package frames

// Frame is a node of a frame tree. A tree emitted by the application is a
// snapshot: consumers never modify a Frame they received, and the helpers
// in this package return modified copies instead.
type Frame struct {
	// Type is a free-form tag for the application ("circle", "window", ...).
	Type string

	// Key identifies the frame among its siblings. Keys feed the ancestry
	// path reported by hit searches; an empty Key means unkeyed.
	Key string

	// World maps local coordinates to world (search-root) coordinates.
	// Frames without a World are non-positioned containers and can never be
	// hit.
	World *Matrix

	// Region is the clickable area in local coordinates, or nil.
	Region Region

	// Data is application payload, untouched by this package.
	Data any

	Children []*Frame
}

// NewContainer creates a non-positioned frame holding children.
func NewContainer(typ string, children ...*Frame) *Frame {
	return &Frame{Type: typ, Children: children}
}

// NewFrame creates a positioned frame.
func NewFrame(typ, key string, world Matrix, region Region, children ...*Frame) *Frame {
	return &Frame{Type: typ, Key: key, World: &world, Region: region, Children: children}
}

// Clickable reports whether f can ever be hit: it needs both a world
// matrix and a region.
func (f *Frame) Clickable() bool {
	return f != nil && f.World != nil && f.Region != nil
}

// Matrix returns the world matrix, or Identity for non-positioned frames.
func (f *Frame) Matrix() Matrix {
	return worldOf(f)
}

// ChildByKey returns the first child with the given key, or nil.
func (f *Frame) ChildByKey(key string) *Frame {
	if f == nil {
		return nil
	}
	for _, c := range f.Children {
		if c != nil && c.Key == key {
			return c
		}
	}
	return nil
}

// Find follows a key path down from f. An empty path returns f.
func (f *Frame) Find(keys ...string) *Frame {
	n := f
	for _, k := range keys {
		n = n.ChildByKey(k)
		if n == nil {
			return nil
		}
	}
	return n
}

// Walk visits f and its descendants depth-first in pre-order. Returning
// false from fn skips the node's children.
func (f *Frame) Walk(fn func(n *Frame, depth int) bool) {
	walk(f, 0, fn)
}

func walk(f *Frame, depth int, fn func(*Frame, int) bool) {
	if f == nil || !fn(f, depth) {
		return
	}
	for _, c := range f.Children {
		walk(c, depth+1, fn)
	}
}

// WithChildren returns a shallow copy of f with children replaced.
func (f *Frame) WithChildren(children ...*Frame) *Frame {
	out := *f
	out.Children = children
	return &out
}

// WithWorld returns a shallow copy of f with a new world matrix. Children
// are shared and keep their own matrices.
func (f *Frame) WithWorld(m Matrix) *Frame {
	out := *f
	out.World = &m
	return &out
}

// UpdateChild returns a copy of f in which the first child keyed key is
// replaced by update(child). f is returned unchanged when no child has the
// key.
func (f *Frame) UpdateChild(key string, update func(*Frame) *Frame) *Frame {
	for i, c := range f.Children {
		if c == nil || c.Key != key {
			continue
		}
		children := make([]*Frame, len(f.Children))
		copy(children, f.Children)
		children[i] = update(c)
		return f.WithChildren(children...)
	}
	return f
}
