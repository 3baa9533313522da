package raster

// CompareFunc selects the arithmetic relation used by the depth test,
// comparing the triangle's interpolated z against the framebuffer's stored
// depth at that pixel. Values are stable: they are shared with the external
// render-state surface and the hardware command protocol.
type CompareFunc int

const (
	CompareNever    CompareFunc = 0
	CompareLess     CompareFunc = 1 // baseline policy: z < stored
	CompareEqual    CompareFunc = 2
	CompareLEqual   CompareFunc = 3
	CompareGreater  CompareFunc = 4
	CompareNotEqual CompareFunc = 5
	CompareGEqual   CompareFunc = 6
	CompareAlways   CompareFunc = 7
)

// Passes reports whether z passes the depth test against stored, for the
// given comparison function.
func (f CompareFunc) Passes(z, stored float32) bool {
	switch f {
	case CompareNever:
		return false
	case CompareLess:
		return z < stored
	case CompareEqual:
		return z == stored
	case CompareLEqual:
		return z <= stored
	case CompareGreater:
		return z > stored
	case CompareNotEqual:
		return z != stored
	case CompareGEqual:
		return z >= stored
	case CompareAlways:
		return true
	default:
		return false
	}
}
