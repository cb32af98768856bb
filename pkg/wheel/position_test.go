package wheel

import (
	"math"
	"testing"
)

func laidOut(width, ticks, rotations int) *Position {
	p := NewPosition()
	p.SetGeometry(width, 40, ticks, rotations)
	return p
}

func TestPositionGeometry(t *testing.T) {
	tests := []struct {
		width, ticks, rotations int
	}{
		{300, 18, 2},
		{1, 1, 1},
		{1080, 25, 3},
		{77, 7, 5},
	}
	for _, tt := range tests {
		p := laidOut(tt.width, tt.ticks, tt.rotations)
		if p.MinOffset() != -p.MaxOffset() {
			t.Errorf("%+v: expected symmetric bounds, got %d and %d", tt, p.MinOffset(), p.MaxOffset())
		}
		if p.MaxOffset() != tt.width*tt.rotations {
			t.Errorf("%+v: expected max %d, got %d", tt, tt.width*tt.rotations, p.MaxOffset())
		}
	}
}

func TestPositionScenario(t *testing.T) {
	p := laidOut(300, 18, 2)
	if math.Abs(p.TickSpacing()-16.67) > 0.01 {
		t.Errorf("expected tick spacing 16.67, got %v", p.TickSpacing())
	}
	if p.MaxOffset() != 600 || p.MinOffset() != -600 {
		t.Errorf("expected bounds ±600, got %d, %d", p.MinOffset(), p.MaxOffset())
	}
	if !p.SetValue(0.5) {
		t.Fatal("expected SetValue(0.5) to apply")
	}
	if p.Offset() != 300 {
		t.Errorf("expected offset 300, got %d", p.Offset())
	}
	if math.Abs(p.Value()-0.5) > 1e-9 {
		t.Errorf("expected value 0.5, got %v", p.Value())
	}
	if p.TickIndex() != 18 {
		t.Errorf("expected tick 18, got %d", p.TickIndex())
	}
	if p.CurrentPage() != 1 {
		t.Errorf("expected page 1, got %d", p.CurrentPage())
	}
}

func TestPositionSetValueRoundTrip(t *testing.T) {
	p := laidOut(300, 18, 2)
	step := 1.0 / float64(p.MaxOffset())
	for v := -1.0; v <= 1.0; v += 0.037 {
		if !p.SetValue(v) {
			t.Fatalf("expected SetValue(%v) to apply", v)
		}
		if d := math.Abs(p.Value() - v); d > step {
			t.Errorf("SetValue(%v): value %v is more than one pixel away", v, p.Value())
		}
	}
}

func TestPositionSetValueOutOfRange(t *testing.T) {
	p := laidOut(300, 18, 2)
	p.SetOffset(123)
	for _, v := range []float64{-1.0001, 1.0001, 5, math.Inf(1), math.NaN()} {
		if p.SetValue(v) {
			t.Errorf("expected SetValue(%v) to be ignored", v)
		}
		if p.Offset() != 123 {
			t.Errorf("SetValue(%v): expected offset unchanged, got %d", v, p.Offset())
		}
	}
}

func TestPositionZeroGeometry(t *testing.T) {
	p := NewPosition()
	if p.SetGeometry(0, 40, 18, 2) {
		t.Error("expected zero width to be rejected")
	}
	if p.SetGeometry(300, 40, 0, 2) || p.SetGeometry(300, 40, 18, 0) {
		t.Error("expected non-positive tick count and rotation factor to be rejected")
	}
	p.SetOffset(50)
	if p.Value() != 0 || p.TickIndex() != 0 || p.TotalTicksVisible() != 0 || p.CurrentPage() != 0 {
		t.Errorf("expected zero reads before layout, got value %v tick %d span %d page %d",
			p.Value(), p.TickIndex(), p.TotalTicksVisible(), p.CurrentPage())
	}
	if p.SetValue(0.5) {
		t.Error("expected SetValue before layout to be ignored")
	}
}

func TestPositionTickIndexNegative(t *testing.T) {
	p := laidOut(300, 18, 2)
	tests := []struct {
		offset, tick, page int
	}{
		{0, 0, 0},
		{16, 0, 0},
		{17, 1, 0},
		{-1, -1, -1},
		{-17, -2, -1},
		{-300, -18, -1},
		{-301, -19, -2},
		{599, 35, 1},
	}
	for _, tt := range tests {
		p.SetOffset(tt.offset)
		if got := p.TickIndex(); got != tt.tick {
			t.Errorf("offset %d: expected tick %d, got %d", tt.offset, tt.tick, got)
		}
		if got := p.CurrentPage(); got != tt.page {
			t.Errorf("offset %d: expected page %d, got %d", tt.offset, tt.page, got)
		}
	}
}

func TestPositionGridNeighborsStayInTick(t *testing.T) {
	for _, geom := range [][2]int{{300, 18}, {300, 7}, {250, 40}, {97, 13}} {
		p := laidOut(geom[0], geom[1], 2)
		for offset := -2 * geom[0]; offset <= 2*geom[0]; offset++ {
			p.SetOffset(offset)
			tick := p.TickIndex()
			lower, upper := p.gridNeighbors()
			if lower > offset || upper <= offset {
				t.Fatalf("%v offset %d: expected %d <= offset < %d", geom, offset, lower, upper)
			}
			p.SetOffset(lower)
			if got := p.TickIndex(); got != tick {
				t.Errorf("%v offset %d: expected tick %d at lower %d, got %d", geom, offset, tick, lower, got)
			}
			p.SetOffset(lower - 1)
			if got := p.TickIndex(); got != tick-1 {
				t.Errorf("%v offset %d: expected tick %d below lower %d, got %d", geom, offset, tick-1, lower, got)
			}
			p.SetOffset(upper)
			if got := p.TickIndex(); got != tick+1 {
				t.Errorf("%v offset %d: expected tick %d at upper %d, got %d", geom, offset, tick+1, upper, got)
			}
		}
	}
}

func TestPositionTotalTicksVisible(t *testing.T) {
	p := laidOut(300, 18, 2)
	if got := p.TotalTicksVisible(); got != 72 {
		t.Errorf("expected 72 at rest, got %d", got)
	}
	p.SetOffset(40)
	// floor(2*18 + 40/16.67) * 2 = 38 * 2
	if got := p.TotalTicksVisible(); got != 76 {
		t.Errorf("expected 76 at offset 40, got %d", got)
	}
}

func TestFloorHelpers(t *testing.T) {
	tests := []struct{ a, b, div, mod int }{
		{7, 3, 2, 1},
		{-7, 3, -3, 2},
		{-6, 3, -2, 0},
		{6, 3, 2, 0},
	}
	for _, tt := range tests {
		if got := floorDiv(tt.a, tt.b); got != tt.div {
			t.Errorf("floorDiv(%d, %d): expected %d, got %d", tt.a, tt.b, tt.div, got)
		}
		if got := floorMod(tt.a, tt.b); got != tt.mod {
			t.Errorf("floorMod(%d, %d): expected %d, got %d", tt.a, tt.b, tt.mod, got)
		}
	}
}
