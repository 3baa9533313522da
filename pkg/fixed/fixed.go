// Package fixed implements the S15.16 fixed-point conversions used at the
// hardware-bridge boundary: pure data conversion between the rasterizer's
// floating-point vertices and the 32-bit signed fixed-point fields the
// hardware command protocol carries. The UART byte-level transaction layer
// itself is out of scope; this package stops at producing and consuming the
// 120-byte command payload.
package fixed

import (
	"encoding/binary"
	"fmt"
	"math"

	"github.com/deadcast2/celery3d/pkg/raster"
)

// fracBits is the number of fractional bits in the S15.16 format.
const fracBits = 16

// scale is 2^16, the conversion factor between a float and its fixed-point
// representation.
const scale = 1 << fracBits

// TriangleOpcode prefixes a packed triangle command on the wire.
const TriangleOpcode byte = 0x03

// fieldsPerVertex is the number of S15.16 fields the command layout carries
// per vertex: X, Y, Z, W, U, V, R, G, B, A.
const fieldsPerVertex = 10

// FieldCount is the number of S15.16 fields in one triangle command (three
// vertices of fieldsPerVertex each).
const FieldCount = 3 * fieldsPerVertex

// CommandSize is the on-wire size of one triangle command: one opcode byte
// followed by FieldCount little-endian 32-bit fixed-point fields.
const CommandSize = 1 + FieldCount*4

// ToFixed quantizes a float64 into a 32-bit signed S15.16 fixed-point value.
// Values outside the representable range are clamped rather than wrapped,
// since the hardware bridge has no defined behavior for overflow.
func ToFixed(v float64) int32 {
	const maxF = float64(math.MaxInt32) / scale
	const minF = float64(math.MinInt32) / scale
	if v > maxF {
		v = maxF
	}
	if v < minF {
		v = minF
	}
	scaled := v * scale
	if scaled >= 0 {
		return int32(scaled + 0.5)
	}
	return int32(scaled - 0.5)
}

// FromFixed converts a 32-bit signed S15.16 fixed-point value back to
// float64.
func FromFixed(v int32) float64 {
	return float64(v) / scale
}

// RoundTrip quantizes v through ToFixed and back, for bounding the
// software-vs-hardware quantization error a parity test allows.
func RoundTrip(v float64) float64 {
	return FromFixed(ToFixed(v))
}

// vertexFields returns a vertex's ten fields in on-wire order.
func vertexFields(v raster.Vertex) [fieldsPerVertex]float64 {
	return [fieldsPerVertex]float64{v.X, v.Y, v.Z, v.W, v.U, v.V, v.R, v.G, v.B, v.A}
}

// EncodeTriangle packs tri into the opcode-prefixed, 120-byte, little-endian
// S15.16 command layout the hardware bridge consumes.
func EncodeTriangle(tri raster.Triangle) []byte {
	buf := make([]byte, CommandSize)
	buf[0] = TriangleOpcode
	offset := 1
	for _, v := range tri {
		for _, f := range vertexFields(v) {
			binary.LittleEndian.PutUint32(buf[offset:offset+4], uint32(ToFixed(f)))
			offset += 4
		}
	}
	return buf
}

// DecodeTriangle unpacks a command previously produced by EncodeTriangle. It
// returns an error if buf is not exactly CommandSize bytes or does not begin
// with TriangleOpcode.
func DecodeTriangle(buf []byte) (raster.Triangle, error) {
	var tri raster.Triangle
	if len(buf) != CommandSize {
		return tri, fmt.Errorf("fixed: triangle command must be %d bytes, got %d", CommandSize, len(buf))
	}
	if buf[0] != TriangleOpcode {
		return tri, fmt.Errorf("fixed: triangle command opcode 0x%02x, want 0x%02x", buf[0], TriangleOpcode)
	}
	offset := 1
	for i := range tri {
		fields := make([]float64, fieldsPerVertex)
		for j := range fields {
			raw := int32(binary.LittleEndian.Uint32(buf[offset : offset+4]))
			fields[j] = FromFixed(raw)
			offset += 4
		}
		tri[i] = raster.Vertex{
			X: fields[0], Y: fields[1], Z: fields[2], W: fields[3],
			U: fields[4], V: fields[5],
			R: fields[6], G: fields[7], B: fields[8], A: fields[9],
		}
	}
	return tri, nil
}
