package extract

import (
	"bufio"
	"io"
	"strconv"

	"github.com/ledongthuc/pdf"

	"github.com/dsotools/signcheck/internal/geom"
)

// pathScanner tokenizes a decoded content stream just far enough to recover
// path construction operators. Text-showing and state operators are skipped;
// only the numeric operand stack and the m/l/re operators matter here.
type pathScanner struct {
	reader   *bufio.Reader
	operands []float64
	current  geom.Point
	haveCur  bool

	segments []geom.Segment
	rects    []geom.BBox
}

func newPathScanner(r io.Reader) *pathScanner {
	return &pathScanner{reader: bufio.NewReader(r)}
}

// scan consumes the stream and returns collected strokes and rectangles.
func (s *pathScanner) scan() ([]geom.Segment, []geom.BBox) {
	for {
		b, err := s.reader.ReadByte()
		if err != nil {
			break
		}

		switch {
		case isWhitespace(b):
			continue
		case b == '%':
			s.skipLine()
		case b == '(':
			s.skipString()
		case b == '<':
			s.skipAngle()
		case b == '/':
			s.skipName()
		case b == '[' || b == ']' || b == '{' || b == '}':
			s.operands = s.operands[:0]
		case b == '+' || b == '-' || b == '.' || (b >= '0' && b <= '9'):
			s.readNumber(b)
		default:
			s.readOperator(b)
		}
	}
	return s.segments, s.rects
}

func (s *pathScanner) skipLine() {
	for {
		b, err := s.reader.ReadByte()
		if err != nil || b == '\n' || b == '\r' {
			return
		}
	}
}

// skipString consumes a balanced literal string, honoring escapes.
func (s *pathScanner) skipString() {
	depth := 1
	for depth > 0 {
		b, err := s.reader.ReadByte()
		if err != nil {
			return
		}
		switch b {
		case '\\':
			if _, err := s.reader.ReadByte(); err != nil {
				return
			}
		case '(':
			depth++
		case ')':
			depth--
		}
	}
}

// skipAngle consumes a hex string or a dictionary opener/closer.
func (s *pathScanner) skipAngle() {
	next, err := s.reader.ReadByte()
	if err != nil {
		return
	}
	if next == '<' {
		// Dictionary start; operands cannot survive across it.
		s.operands = s.operands[:0]
		return
	}
	for next != '>' {
		next, err = s.reader.ReadByte()
		if err != nil {
			return
		}
	}
}

func (s *pathScanner) skipName() {
	for {
		b, err := s.reader.ReadByte()
		if err != nil {
			return
		}
		if isWhitespace(b) || isDelimiter(b) {
			_ = s.reader.UnreadByte()
			return
		}
	}
}

func (s *pathScanner) readNumber(first byte) {
	buf := []byte{first}
	for {
		b, err := s.reader.ReadByte()
		if err != nil {
			break
		}
		if (b >= '0' && b <= '9') || b == '.' || b == '+' || b == '-' {
			buf = append(buf, b)
			continue
		}
		_ = s.reader.UnreadByte()
		break
	}

	v, err := strconv.ParseFloat(string(buf), 64)
	if err != nil {
		return
	}
	s.operands = append(s.operands, v)
}

func (s *pathScanner) readOperator(first byte) {
	buf := []byte{first}
	for {
		b, err := s.reader.ReadByte()
		if err != nil {
			break
		}
		if isWhitespace(b) || isDelimiter(b) {
			_ = s.reader.UnreadByte()
			break
		}
		buf = append(buf, b)
	}

	s.applyOperator(string(buf))
	s.operands = s.operands[:0]
}

func (s *pathScanner) applyOperator(op string) {
	n := len(s.operands)
	switch op {
	case "m":
		if n >= 2 {
			s.current = geom.Point{X: s.operands[n-2], Y: s.operands[n-1]}
			s.haveCur = true
		}
	case "l":
		if n >= 2 && s.haveCur {
			to := geom.Point{X: s.operands[n-2], Y: s.operands[n-1]}
			s.segments = append(s.segments, geom.Segment{P0: s.current, P1: to})
			s.current = to
		}
	case "re":
		if n >= 4 {
			s.rects = append(s.rects, geom.BBox{
				X:      s.operands[n-4],
				Y:      s.operands[n-3],
				Width:  s.operands[n-2],
				Height: s.operands[n-1],
			})
		}
	case "c", "v", "y":
		// Curves move the current point to their final operand pair.
		if n >= 2 {
			s.current = geom.Point{X: s.operands[n-2], Y: s.operands[n-1]}
		}
	}
}

func isWhitespace(b byte) bool {
	switch b {
	case 0x00, 0x09, 0x0A, 0x0C, 0x0D, 0x20:
		return true
	}
	return false
}

func isDelimiter(b byte) bool {
	switch b {
	case '(', ')', '<', '>', '[', ']', '{', '}', '/', '%':
		return true
	}
	return false
}

// pagePathPrimitives scans a page's content streams for strokes and
// rectangles. Decoding failures yield empty results; underline
// reconstruction is best-effort by design.
func pagePathPrimitives(p pdf.Page) (segments []geom.Segment, rects []geom.BBox) {
	defer func() {
		if recover() != nil {
			segments, rects = nil, nil
		}
	}()

	contents := p.V.Key("Contents")
	if contents.IsNull() {
		return nil, nil
	}

	var readers []io.Reader
	switch contents.Kind() {
	case pdf.Stream:
		readers = append(readers, contents.Reader())
	case pdf.Array:
		for i := 0; i < contents.Len(); i++ {
			part := contents.Index(i)
			if part.Kind() == pdf.Stream {
				readers = append(readers, part.Reader())
			}
		}
	}
	if len(readers) == 0 {
		return nil, nil
	}

	return newPathScanner(io.MultiReader(readers...)).scan()
}
