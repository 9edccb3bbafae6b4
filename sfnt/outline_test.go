package sfnt

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"
)

// pathRecorder collects emitted path commands for inspection.
type pathRecorder struct {
	cmds []string
}

func (p *pathRecorder) MoveTo(x, y float32) {
	p.cmds = append(p.cmds, fmt.Sprintf("move %g %g", x, y))
}

func (p *pathRecorder) LineTo(x, y float32) {
	p.cmds = append(p.cmds, fmt.Sprintf("line %g %g", x, y))
}

func (p *pathRecorder) QuadTo(cx, cy, x, y float32) {
	p.cmds = append(p.cmds, fmt.Sprintf("quad %g %g %g %g", cx, cy, x, y))
}

// verbs returns just the command kinds, e.g. "move line line".
func (p *pathRecorder) verbs() string {
	kinds := make([]string, len(p.cmds))
	for i, c := range p.cmds {
		kinds[i] = strings.Fields(c)[0]
	}
	return strings.Join(kinds, " ")
}

// glyphPoint describes one point for buildSimpleGlyph.
type glyphPoint struct {
	x, y int
	on   bool
}

// buildSimpleGlyph encodes contours as a simple glyph description with
// delta-compressed coordinates (short vectors where deltas fit a byte).
func buildSimpleGlyph(t *testing.T, contours [][]glyphPoint) []byte {
	t.Helper()
	var flags, xs, ys []byte
	encode := func(delta int, shortFlag, sameOrPositiveFlag byte, region *[]byte) byte {
		switch {
		case delta == 0:
			return sameOrPositiveFlag
		case delta > -256 && delta < 256:
			if delta > 0 {
				*region = append(*region, byte(delta))
				return shortFlag | sameOrPositiveFlag
			}
			*region = append(*region, byte(-delta))
			return shortFlag
		default:
			d := uint16(int16(delta))
			*region = append(*region, byte(d>>8), byte(d))
			return 0
		}
	}
	prevX, prevY := 0, 0
	for _, contour := range contours {
		for _, p := range contour {
			flag := byte(0)
			if p.on {
				flag |= flagOnCurvePoint
			}
			flag |= encode(p.x-prevX, flagXShortVector, flagXIsSameOrPositive, &xs)
			flag |= encode(p.y-prevY, flagYShortVector, flagYIsSameOrPositive, &ys)
			flags = append(flags, flag)
			prevX, prevY = p.x, p.y
		}
	}
	n := len(contours)
	b := make([]byte, 10+2*n+2)
	putU16(b, 0, uint16(int16(n)))
	end := -1
	for i, contour := range contours {
		end += len(contour)
		putU16(b, 10+2*i, uint16(end))
	}
	b = append(b, flags...)
	b = append(b, xs...)
	b = append(b, ys...)
	return b
}

func TestOutlineTriangle(t *testing.T) {
	glyph := buildSimpleGlyph(t, [][]glyphPoint{
		{{0, 0, true}, {100, 0, true}, {50, 80, true}},
	})
	sink := &pathRecorder{}
	if err := outlineGlyph(glyph, sink); err != nil {
		t.Fatal(err)
	}
	// the closing straight segment back to the start is implicit
	want := []string{"move 0 0", "line 100 0", "line 50 80"}
	if len(sink.cmds) != len(want) {
		t.Fatalf("expected %v, got %v", want, sink.cmds)
	}
	for i := range want {
		if sink.cmds[i] != want[i] {
			t.Errorf("command %d: expected %q, got %q", i, want[i], sink.cmds[i])
		}
	}
}

func TestOutlineContourOrdering(t *testing.T) {
	glyph := buildSimpleGlyph(t, [][]glyphPoint{
		{{0, 0, true}, {100, 0, true}, {50, 80, true}},
		{{10, 10, true}, {20, 20, false}},
	})
	sink := &pathRecorder{}
	if err := outlineGlyph(glyph, sink); err != nil {
		t.Fatal(err)
	}
	if got := sink.verbs(); got != "move line line move quad" {
		t.Errorf("expected 'move line line move quad', got %q", got)
	}
	if last := sink.cmds[len(sink.cmds)-1]; last != "quad 20 20 10 10" {
		t.Errorf("trailing off-curve point should close onto the start, got %q", last)
	}
}

func TestOutlineImpliedOnCurvePoints(t *testing.T) {
	glyph := buildSimpleGlyph(t, [][]glyphPoint{
		{{0, 0, true}, {10, 10, false}, {20, 10, false}},
	})
	sink := &pathRecorder{}
	if err := outlineGlyph(glyph, sink); err != nil {
		t.Fatal(err)
	}
	want := []string{
		"move 0 0",
		"quad 10 10 15 10", // implied on-curve midpoint between the two off points
		"quad 20 10 0 0",
	}
	for i := range want {
		if i >= len(sink.cmds) || sink.cmds[i] != want[i] {
			t.Fatalf("expected %v, got %v", want, sink.cmds)
		}
	}
}

func TestOutlineStartsOffCurve(t *testing.T) {
	t.Run("FollowedByOnCurve", func(t *testing.T) {
		glyph := buildSimpleGlyph(t, [][]glyphPoint{
			{{0, 10, false}, {10, 0, true}, {20, 10, true}},
		})
		sink := &pathRecorder{}
		if err := outlineGlyph(glyph, sink); err != nil {
			t.Fatal(err)
		}
		want := []string{"move 10 0", "line 20 10", "quad 0 10 10 0"}
		for i := range want {
			if i >= len(sink.cmds) || sink.cmds[i] != want[i] {
				t.Fatalf("expected %v, got %v", want, sink.cmds)
			}
		}
	})
	t.Run("AllOffCurve", func(t *testing.T) {
		glyph := buildSimpleGlyph(t, [][]glyphPoint{
			{{0, 0, false}, {10, 0, false}, {10, 10, false}, {0, 10, false}},
		})
		sink := &pathRecorder{}
		if err := outlineGlyph(glyph, sink); err != nil {
			t.Fatal(err)
		}
		if got := sink.verbs(); got != "move quad quad quad quad" {
			t.Errorf("expected a fully curved contour, got %q", got)
		}
		if sink.cmds[0] != "move 5 0" {
			t.Errorf("contour should start at the midpoint of the leading off points, got %q", sink.cmds[0])
		}
	})
}

func TestOutlineRepeatFlags(t *testing.T) {
	// staircase of four identical point flags, compressed with the repeat flag
	flag := byte(flagOnCurvePoint | flagXShortVector | flagXIsSameOrPositive |
		flagYShortVector | flagYIsSameOrPositive)
	b := make([]byte, 14)
	putU16(b, 0, 1)   // numberOfContours
	putU16(b, 10, 3)  // endPtsOfContours[0]
	putU16(b, 12, 0)  // instructionLength
	b = append(b, flag|flagRepeat, 3)
	b = append(b, 10, 10, 10, 10) // x deltas
	b = append(b, 10, 10, 10, 10) // y deltas
	sink := &pathRecorder{}
	if err := outlineGlyph(b, sink); err != nil {
		t.Fatal(err)
	}
	want := []string{"move 10 10", "line 20 20", "line 30 30", "line 40 40"}
	for i := range want {
		if i >= len(sink.cmds) || sink.cmds[i] != want[i] {
			t.Fatalf("expected %v, got %v", want, sink.cmds)
		}
	}
}

func TestOutlineComposite(t *testing.T) {
	b := make([]byte, 20)
	putU16(b, 0, 0xffff) // numberOfContours = -1
	sink := &pathRecorder{}
	err := outlineGlyph(b, sink)
	if err == nil || !strings.Contains(err.Error(), "composite") {
		t.Fatalf("expected composite glyph error, got %v", err)
	}
	if len(sink.cmds) != 0 {
		t.Errorf("composite glyph must not emit commands, got %v", sink.cmds)
	}
}

func TestOutlineZeroContours(t *testing.T) {
	sink := &pathRecorder{}
	if err := outlineGlyph(make([]byte, 10), sink); err != nil {
		t.Fatal(err)
	}
	if len(sink.cmds) != 0 {
		t.Errorf("expected no commands, got %v", sink.cmds)
	}
}

func TestOutlineTruncated(t *testing.T) {
	glyph := buildSimpleGlyph(t, [][]glyphPoint{
		{{0, 0, true}, {100, 0, true}, {50, 80, true}},
		{{10, 10, true}, {20, 20, false}},
	})
	// every proper prefix is missing bytes the walk needs; it must stop
	// with an error and never panic
	for cut := 0; cut < len(glyph); cut++ {
		sink := &pathRecorder{}
		if err := outlineGlyph(glyph[:cut], sink); err == nil {
			t.Errorf("prefix of %d bytes: expected an error", cut)
		}
	}
}

func TestOutlineNonIncreasingEndPoints(t *testing.T) {
	glyph := buildSimpleGlyph(t, [][]glyphPoint{
		{{0, 0, true}, {100, 0, true}, {50, 80, true}},
		{{10, 10, true}, {20, 20, false}},
	})
	putU16(glyph, 10, 4) // first contour now claims all five points
	putU16(glyph, 12, 4) // second contour no longer advances
	sink := &pathRecorder{}
	if err := outlineGlyph(glyph, sink); !errors.Is(err, ErrMalformed) {
		t.Fatalf("expected ErrMalformed, got %v", err)
	}
}

func TestFontOutline(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "font.sfntview")
	defer teardown()
	//
	glyph := buildSimpleGlyph(t, [][]glyphPoint{
		{{0, 0, true}, {100, 0, true}, {50, 80, true}},
	})
	if len(glyph)%2 != 0 {
		glyph = append(glyph, 0) // short loca offsets are halved
	}
	loca := make([]byte, 6)
	putU16(loca, 0, 0) // glyph 0: empty range
	putU16(loca, 2, 0)
	putU16(loca, 4, uint16(len(glyph)/2))
	bin := buildFont(t, map[string][]byte{
		"head": buildHeadTable(0),
		"maxp": buildMaxPTable(2),
		"loca": loca,
		"glyf": glyph,
	})
	otf, err := Parse(bin)
	if err != nil {
		t.Fatal(err)
	}
	sink := &pathRecorder{}
	if err := otf.Outline(0, sink); err != nil {
		t.Fatalf("empty glyph should succeed: %v", err)
	}
	if len(sink.cmds) != 0 {
		t.Errorf("empty glyph must not emit commands, got %v", sink.cmds)
	}
	if err := otf.Outline(1, sink); err != nil {
		t.Fatal(err)
	}
	if got := sink.verbs(); got != "move line line" {
		t.Errorf("expected 'move line line', got %q", got)
	}
	if err := otf.Outline(7, sink); !errors.Is(err, ErrBounds) {
		t.Errorf("expected ErrBounds for glyph index past loca, got %v", err)
	}
	if err := otf.Outline(1, nil); err == nil {
		t.Error("expected an error for a nil sink")
	}
	noGlyf := &Font{}
	if err := noGlyf.Outline(0, sink); !errors.Is(err, ErrMissingTable) {
		t.Errorf("expected ErrMissingTable, got %v", err)
	}
}
