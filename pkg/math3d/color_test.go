package math3d

import "testing"

func TestPackUnpackRGB565RoundTrip(t *testing.T) {
	cases := []struct{ r, g, b uint8 }{
		{0, 0, 0},
		{255, 255, 255},
		{8, 4, 8},
		{0xF8, 0xFC, 0xF8},
		{200, 100, 50},
	}
	for _, c := range cases {
		packed := PackRGB565Bytes(c.r, c.g, c.b)
		r, g, b := UnpackRGB565(packed)
		if r != c.r&0xF8 || g != c.g&0xFC || b != c.b&0xF8 {
			t.Errorf("round trip (%d,%d,%d): got (%d,%d,%d), want (%d,%d,%d)",
				c.r, c.g, c.b, r, g, b, c.r&0xF8, c.g&0xFC, c.b&0xF8)
		}
	}
}

func TestUnpackRGB565Idempotent(t *testing.T) {
	for v := 0; v < 0x10000; v += 997 {
		c := uint16(v)
		r, g, b := UnpackRGB565(c)
		rePacked := PackRGB565Bytes(r, g, b)
		r2, g2, b2 := UnpackRGB565(rePacked)
		if r != r2 || g != g2 || b != b2 {
			t.Fatalf("unpack not idempotent for 0x%04x", c)
		}
	}
}

func TestPackRGB565FloatMatchesByteDomain(t *testing.T) {
	// r=8/255 is the smallest value whose floor(r/255*31) would disagree
	// with the byte-truncation contract; this pins the resolution down.
	packed := PackRGB565(8.0/255.0, 0, 0)
	r, _, _ := UnpackRGB565(packed)
	if r != 8 {
		t.Errorf("PackRGB565(8/255,...) unpacked r = %d, want 8", r)
	}
}

func TestPackRGB565Clamps(t *testing.T) {
	packed := PackRGB565(-1, 2, 0.5)
	r, g, b := UnpackRGB565(packed)
	if r != 0 {
		t.Errorf("negative r should clamp to 0, got %d", r)
	}
	if g != 0xFC {
		t.Errorf("overflow g should clamp to max, got %d", g)
	}
	_ = b
}

func TestPackUnpackRGBA4444RoundTrip(t *testing.T) {
	cases := []struct{ r, g, b, a uint8 }{
		{0, 0, 0, 0},
		{255, 255, 255, 255},
		{0x10, 0x20, 0x30, 0x40},
	}
	for _, c := range cases {
		packed := PackRGBA4444Bytes(c.r, c.g, c.b, c.a)
		r, g, b, a := UnpackRGBA4444(packed)
		if r != c.r&0xF0 || g != c.g&0xF0 || b != c.b&0xF0 || a != c.a&0xF0 {
			t.Errorf("round trip (%d,%d,%d,%d): got (%d,%d,%d,%d)", c.r, c.g, c.b, c.a, r, g, b, a)
		}
	}
}
