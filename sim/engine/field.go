package engine

// Field describes the rectangular grid the cars drive on. Positions range
// over 0 <= x < Width and 0 <= y < Height, with (0,0) the south-west
// corner. A Field is immutable after construction.
type Field struct {
	Width  int `json:"width"`
	Height int `json:"height"`
}

// NewField returns a field with the given dimensions. Dimensions are
// assumed positive; callers validate before construction.
func NewField(width, height int) Field {
	return Field{Width: width, Height: height}
}

// InBounds reports whether (x, y) lies on the field.
func (f Field) InBounds(x, y int) bool {
	return x >= 0 && x < f.Width && y >= 0 && y < f.Height
}

// Contains reports whether the position lies on the field.
func (f Field) Contains(p Position) bool {
	return f.InBounds(p.X, p.Y)
}
