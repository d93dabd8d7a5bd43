package extract

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPathScannerStrokes(t *testing.T) {
	stream := `
0.5 w
10 100 m
60 100 l
S
`
	segs, rects := newPathScanner(strings.NewReader(stream)).scan()
	require.Len(t, segs, 1)
	assert.Empty(t, rects)
	assert.Equal(t, 10.0, segs[0].P0.X)
	assert.Equal(t, 60.0, segs[0].P1.X)
	assert.Equal(t, 100.0, segs[0].P0.Y)
}

func TestPathScannerPolyline(t *testing.T) {
	stream := `0 0 m 10 0 l 10 10 l S`
	segs, _ := newPathScanner(strings.NewReader(stream)).scan()
	require.Len(t, segs, 2)
	assert.Equal(t, 10.0, segs[1].P0.X, "polyline continues from previous point")
}

func TestPathScannerRectangles(t *testing.T) {
	stream := `20 50 80 1.5 re f`
	_, rects := newPathScanner(strings.NewReader(stream)).scan()
	require.Len(t, rects, 1)
	assert.Equal(t, 20.0, rects[0].X)
	assert.Equal(t, 50.0, rects[0].Y)
	assert.Equal(t, 80.0, rects[0].Width)
	assert.Equal(t, 1.5, rects[0].Height)
}

func TestPathScannerSkipsStringsAndNames(t *testing.T) {
	// Numbers inside strings, hex strings, and names must not leak into
	// the operand stack.
	stream := `BT /F1 12 Tf (10 20 m 30 40 l) Tj <48656c6c6f> Tj ET
5 5 m 15 5 l S`
	segs, _ := newPathScanner(strings.NewReader(stream)).scan()
	require.Len(t, segs, 1)
	assert.Equal(t, 5.0, segs[0].P0.X)
	assert.Equal(t, 15.0, segs[0].P1.X)
}

func TestPathScannerEscapedString(t *testing.T) {
	stream := `(paren \) inside) Tj 1 2 m 3 2 l S`
	segs, _ := newPathScanner(strings.NewReader(stream)).scan()
	require.Len(t, segs, 1)
}

func TestPathScannerNegativeAndDecimalNumbers(t *testing.T) {
	stream := `-4.5 -2 m 12.25 -2 l S`
	segs, _ := newPathScanner(strings.NewReader(stream)).scan()
	require.Len(t, segs, 1)
	assert.Equal(t, -4.5, segs[0].P0.X)
	assert.Equal(t, -2.0, segs[0].P0.Y)
	assert.Equal(t, 12.25, segs[0].P1.X)
}
