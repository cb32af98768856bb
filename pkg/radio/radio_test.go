package radio

import (
	"math"
	"testing"

	"github.com/go-drift/wheel/pkg/engine"
	"github.com/go-drift/wheel/pkg/rendering"
	"github.com/go-drift/wheel/pkg/wheel"
)

func TestDefaults(t *testing.T) {
	r := New(Options{})
	small, big := r.Ticks()
	if small != DefaultSmallTicks-1 || big != DefaultBigTicks-1 {
		t.Errorf("expected ticks %d/%d, got %d/%d", DefaultSmallTicks-1, DefaultBigTicks-1, small, big)
	}
	if r.Value() != 0 {
		t.Errorf("expected value 0, got %v", r.Value())
	}

	r = New(Options{SmallTicks: 11, BigTicks: 3})
	if small, big := r.Ticks(); small != 10 || big != 2 {
		t.Errorf("expected ticks 10/2, got %d/%d", small, big)
	}
}

func TestSetValueClamps(t *testing.T) {
	redraws := 0
	r := New(Options{OnRedraw: func() { redraws++ }})
	tests := []struct {
		in, want float64
	}{
		{0.5, 0.5},
		{2, 1},
		{-3, -1},
		{math.Inf(1), 1},
		{math.NaN(), 1},
	}
	for _, tt := range tests {
		r.SetValue(tt.in)
		if r.Value() != tt.want {
			t.Errorf("SetValue(%v): expected %v, got %v", tt.in, tt.want, r.Value())
		}
	}
	if redraws != 4 {
		t.Errorf("expected 4 redraws, got %d", redraws)
	}
}

func TestLayoutFrame(t *testing.T) {
	r := New(Options{})
	r.Layout(320, 30)
	f := r.Frame()

	if len(f.Small) != 23 || f.Small[0] != 13 || f.Small[22] != 299 {
		t.Errorf("expected 23 small ticks from 13 to 299, got %v", f.Small)
	}
	wantBig := []float64{9, 84, 159, 234, 309}
	if len(f.Big) != len(wantBig) {
		t.Fatalf("expected big ticks %v, got %v", wantBig, f.Big)
	}
	for i, x := range wantBig {
		if f.Big[i] != x {
			t.Errorf("big tick %d: expected %v, got %v", i, x, f.Big[i])
		}
	}
	if f.Indicator != 159 {
		t.Errorf("expected indicator at 159, got %v", f.Indicator)
	}
}

func TestIndicatorTracksValue(t *testing.T) {
	r := New(Options{})
	r.Layout(320, 30)
	tests := []struct {
		value, want float64
	}{
		{-1, 9},
		{0, 159},
		{0.5, 234},
		{1, 309},
	}
	for _, tt := range tests {
		r.SetValue(tt.value)
		if got := r.Frame().Indicator; got != tt.want {
			t.Errorf("value %v: expected indicator %v, got %v", tt.value, tt.want, got)
		}
	}
}

func TestCorrection(t *testing.T) {
	r := New(Options{})
	r.Layout(321, 30)
	// 301/4 = 75.25, so a quarter pixel per interval is dropped.
	if r.correction != 1 {
		t.Errorf("expected correction 1, got %v", r.correction)
	}
	if got := r.IndicatorX(); got != 150 {
		t.Errorf("expected centered bar at 150, got %v", got)
	}

	r.SetTicks(24, 3)
	r.Layout(120, 30)
	if math.Abs(r.correction-1) > 1e-9 {
		t.Errorf("expected correction ≈1, got %v", r.correction)
	}
}

func TestLayoutSkipsUnchanged(t *testing.T) {
	r := New(Options{})
	r.Layout(320, 30)
	r.smallStep = -1
	r.Layout(320, 30)
	if r.smallStep != -1 {
		t.Error("expected unchanged size to skip layout")
	}
	r.SetTicks(24, 4)
	if r.smallStep != 13 {
		t.Errorf("expected SetTicks to force layout, got step %v", r.smallStep)
	}
}

func TestSetTicksFloor(t *testing.T) {
	r := New(Options{})
	r.SetTicks(0, -1)
	if small, big := r.Ticks(); small != 1 || big != 1 {
		t.Errorf("expected 1/1, got %d/%d", small, big)
	}
}

func TestDraw(t *testing.T) {
	r := New(Options{})
	rec := rendering.NewRecorder(rendering.Size{Width: 320, Height: 30})
	r.Draw(rec)
	if len(rec.Ops) != 0 {
		t.Errorf("expected nothing drawn before layout, got %d ops", len(rec.Ops))
	}

	r.Layout(320, 30)
	r.Draw(rec)
	if got := rec.Count(rendering.OpRect); got != 29 {
		t.Fatalf("expected 29 rects, got %d", got)
	}
	small := rec.Ops[0]
	if small.Rect.Top != 10 || small.Rect.Bottom != 20 || small.Rect.Width() != SmallLineWidth {
		t.Errorf("unexpected small tick %+v", small.Rect)
	}
	big := rec.Ops[23]
	if big.Rect.Top != 6 || big.Rect.Bottom != 24 || big.Color != DefaultStyle().Big {
		t.Errorf("unexpected big tick %+v", big)
	}
	bar := rec.Ops[len(rec.Ops)-1]
	if bar.Rect.Left != 159 || bar.Rect.Height() != 30 || bar.Color != DefaultStyle().Value {
		t.Errorf("unexpected value bar %+v", bar)
	}
}

func TestBind(t *testing.T) {
	var finished []float64
	layouts := 0
	w := wheel.New(wheel.Options{
		Loop: engine.NewLoop(nil),
		Listener: wheel.ListenerFuncs{
			Finished: func(v float64, _ int) { finished = append(finished, v) },
		},
		LayoutListener: wheel.LayoutFunc(func(*wheel.Wheel) { layouts++ }),
	})
	r := New(Options{})
	Bind(r, w)

	w.Layout(300, 40)
	if small, big := r.Ticks(); small != 36 || big != 2 {
		t.Errorf("expected ticks 36/2, got %d/%d", small, big)
	}
	if layouts != 1 {
		t.Errorf("expected previous layout listener to run, got %d", layouts)
	}

	w.Down()
	w.Drag(-20, 0)
	if r.Value() != w.Value() || r.Value() != 0.02 {
		t.Errorf("expected radio value 0.02, got %v", r.Value())
	}

	w.SetValue(0.5, true)
	if r.Value() != 0.5 || len(finished) != 1 {
		t.Errorf("expected radio 0.5 and forwarded event, got %v %v", r.Value(), finished)
	}

	w.SetRotationFactor(3)
	if small, big := r.Ticks(); small != 54 || big != 3 {
		t.Errorf("expected ticks 54/3, got %d/%d", small, big)
	}
}

func TestBindAfterLayout(t *testing.T) {
	w := wheel.New(wheel.Options{Loop: engine.NewLoop(nil)})
	w.Layout(300, 40)
	w.SetValue(-0.5, false)

	r := New(Options{})
	Bind(r, w)
	if small, big := r.Ticks(); small != 36 || big != 2 {
		t.Errorf("expected ticks 36/2, got %d/%d", small, big)
	}
	if r.Value() != -0.5 {
		t.Errorf("expected -0.5, got %v", r.Value())
	}
}
