package fixed

import (
	"math"
	"testing"

	"github.com/deadcast2/celery3d/pkg/raster"
)

func TestToFixedFromFixedRoundTrip(t *testing.T) {
	cases := []float64{0, 1, -1, 3.5, -3.5, 1.0 / 16, 100.25}
	for _, v := range cases {
		got := RoundTrip(v)
		if math.Abs(got-v) > 1.0/scale {
			t.Errorf("RoundTrip(%v) = %v, error exceeds one fixed-point unit", v, got)
		}
	}
}

func TestToFixedClampsOutOfRange(t *testing.T) {
	if ToFixed(1e12) != math.MaxInt32 {
		t.Errorf("huge positive value should clamp to MaxInt32, got %d", ToFixed(1e12))
	}
	if ToFixed(-1e12) != math.MinInt32 {
		t.Errorf("huge negative value should clamp to MinInt32, got %d", ToFixed(-1e12))
	}
}

func TestEncodeDecodeTriangleRoundTrips(t *testing.T) {
	tri := raster.Triangle{
		{X: 1, Y: 2, Z: 0.5, W: 1, U: 0.25, V: 0.75, R: 1, G: 0.5, B: 0, A: 1},
		{X: 3, Y: 4, Z: 0.25, W: 1, U: 1, V: 0, R: 0, G: 1, B: 0.5, A: 1},
		{X: -1, Y: -2, Z: 0.75, W: 1, U: 0, V: 1, R: 0.5, G: 0, B: 1, A: 1},
	}

	buf := EncodeTriangle(tri)
	if len(buf) != CommandSize {
		t.Fatalf("encoded command length = %d, want %d", len(buf), CommandSize)
	}
	if buf[0] != TriangleOpcode {
		t.Fatalf("opcode = 0x%02x, want 0x%02x", buf[0], TriangleOpcode)
	}

	decoded, err := DecodeTriangle(buf)
	if err != nil {
		t.Fatalf("DecodeTriangle: %v", err)
	}
	for i := range tri {
		if math.Abs(decoded[i].X-tri[i].X) > 1.0/scale {
			t.Errorf("vertex %d X: got %v, want %v", i, decoded[i].X, tri[i].X)
		}
		if math.Abs(decoded[i].U-tri[i].U) > 1.0/scale {
			t.Errorf("vertex %d U: got %v, want %v", i, decoded[i].U, tri[i].U)
		}
	}
}

func TestDecodeTriangleRejectsWrongSize(t *testing.T) {
	if _, err := DecodeTriangle(make([]byte, 10)); err == nil {
		t.Error("expected error for wrong-size buffer")
	}
}

func TestDecodeTriangleRejectsWrongOpcode(t *testing.T) {
	buf := make([]byte, CommandSize)
	buf[0] = 0x99
	if _, err := DecodeTriangle(buf); err == nil {
		t.Error("expected error for wrong opcode")
	}
}
