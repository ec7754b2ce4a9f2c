package frames

// HitResult is the outcome of a hit search.
type HitResult struct {
	// Frame is the matched frame, or nil.
	Frame *Frame
	// TreeKeys holds the keys of the keyed frames from the search root down
	// to and including the match. Unkeyed frames are skipped.
	TreeKeys []string
}

// IsOver reports whether p, given in world coordinates, lies inside f's
// region. Frames without a world matrix or a region, and frames whose
// matrix is singular, are never hit.
func IsOver(p Vec2, f *Frame) bool {
	if !f.Clickable() || f.World.Singular() {
		return false
	}
	return f.Region.Contains(PointInFrame(p, nil, f))
}

// RelativeMousePosition returns the event position in the target's own
// pixel coordinates, independent of how the target is scaled on screen.
// Events that belong to a drag are measured against the element that
// received the gesture's mousedown.
func RelativeMousePosition(e *Event) Vec2 {
	target := e.Target
	if e.IsDrag != nil && e.IsDrag.Target != nil {
		target = e.IsDrag.Target
	}
	if target == nil {
		return Vec2{e.ClientX, e.ClientY}
	}
	rect := target.BoundingClientRect()
	return Vec2{
		X: (e.ClientX - rect.Left) / rect.Width() * float64(target.Width()),
		Y: (e.ClientY - rect.Top) / rect.Height() * float64(target.Height()),
	}
}

// GetOver runs HitAt at the event's position relative to its target.
func GetOver(e *Event, tree *Frame, deep bool) HitResult {
	return HitAt(RelativeMousePosition(e), tree, deep)
}

// HitAt searches tree depth-first in pre-order for the first frame whose
// region contains p (world coordinates). Siblings are tried in order, so
// the earliest one wins a tie.
//
// With deep set, the search continues inside the matched frame's subtree,
// ignoring the frame's own region, and settles on the deepest match. A
// container whose children all miss is returned itself.
func HitAt(p Vec2, tree *Frame, deep bool) HitResult {
	frame, keys := search(p, tree, false, nil)
	if frame == nil {
		return HitResult{TreeKeys: []string{}}
	}
	for deep && len(frame.Children) > 0 {
		// keys already ends with frame's own key; the inner search extends it.
		inner, innerKeys := search(p, frame, true, keys[:len(keys):len(keys)])
		if inner == nil {
			break
		}
		frame, keys = inner, innerKeys
	}
	if keys == nil {
		keys = []string{}
	}
	return HitResult{Frame: frame, TreeKeys: keys}
}

// search returns the first frame under p in f's subtree along with the
// ancestry keys. skipSelf excludes f's own region without excluding its
// key, which already sits at the end of keys.
func search(p Vec2, f *Frame, skipSelf bool, keys []string) (*Frame, []string) {
	if f == nil {
		return nil, nil
	}
	if !skipSelf {
		if f.Key != "" {
			keys = append(keys, f.Key)
		}
		if IsOver(p, f) {
			return f, keys
		}
	}
	for _, c := range f.Children {
		// Full slice expression so siblings never share a backing array.
		if hit, k := search(p, c, false, keys[:len(keys):len(keys)]); hit != nil {
			return hit, k
		}
	}
	return nil, nil
}
