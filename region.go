package frames

// Region is the clickable area of a frame, in the frame's local
// coordinates. It is one of Box, Boxes, Disk or Disks; a nil Region means
// the frame has no clickable area.
type Region interface {
	// Contains reports whether p lies inside the region. Bounds are
	// inclusive.
	Contains(p Vec2) bool
	region()
}

// Box is an axis-aligned rectangle [MinX, MinY, MaxX, MaxY].
type Box struct {
	MinX, MinY, MaxX, MaxY float64
}

// Contains reports whether p lies inside the box or on its edge.
func (b Box) Contains(p Vec2) bool {
	return p.X >= b.MinX && p.X <= b.MaxX &&
		p.Y >= b.MinY && p.Y <= b.MaxY
}

func (Box) region() {}

// Boxes is the union of several boxes.
type Boxes []Box

// Contains reports whether p lies inside any of the boxes.
func (bs Boxes) Contains(p Vec2) bool {
	for _, b := range bs {
		if b.Contains(p) {
			return true
		}
	}
	return false
}

func (Boxes) region() {}

// Disk is a circle centered at (CX, CY) with radius R.
type Disk struct {
	CX, CY, R float64
}

// Contains reports whether p lies inside or on the circle.
func (d Disk) Contains(p Vec2) bool {
	dx := p.X - d.CX
	dy := p.Y - d.CY
	return dx*dx+dy*dy <= d.R*d.R
}

func (Disk) region() {}

// Disks is the union of several disks.
type Disks []Disk

// Contains reports whether p lies inside any of the disks.
func (ds Disks) Contains(p Vec2) bool {
	for _, d := range ds {
		if d.Contains(p) {
			return true
		}
	}
	return false
}

func (Disks) region() {}
