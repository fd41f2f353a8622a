package animation

// Point is a position in whole pixels.
type Point struct {
	X int `json:"x" yaml:"x"`
	Y int `json:"y" yaml:"y"`
}

// Size is an extent in whole pixels.
type Size struct {
	Width  int `json:"width" yaml:"width"`
	Height int `json:"height" yaml:"height"`
}

// Rectangle is the bounds of an on-screen object.
type Rectangle struct {
	Left   int `json:"left" yaml:"left"`
	Top    int `json:"top" yaml:"top"`
	Width  int `json:"width" yaml:"width"`
	Height int `json:"height" yaml:"height"`
}

// Location returns the top-left corner of r.
func (r Rectangle) Location() Point {
	return Point{X: r.Left, Y: r.Top}
}

// Size returns the extent of r.
func (r Rectangle) Size() Size {
	return Size{Width: r.Width, Height: r.Height}
}
