package cmd

import (
	"bytes"
	"image/png"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/go-drift/wheel/pkg/config"
	"github.com/go-drift/wheel/pkg/wheel"
)

// capture redirects command output and the --config path for one test.
func capture(t *testing.T) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	oldOut, oldPath := stdout, configPath
	stdout = &buf
	t.Cleanup(func() {
		stdout, configPath = oldOut, oldPath
	})
	return &buf
}

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), config.FileName)
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestRunHelp(t *testing.T) {
	out := capture(t)
	if err := run(nil); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for _, name := range []string{"demo", "snapshot", "follow", "version", "--config"} {
		if !strings.Contains(out.String(), name) {
			t.Errorf("expected help to mention %q, got:\n%s", name, out.String())
		}
	}
}

func TestRunVersion(t *testing.T) {
	out := capture(t)
	if err := run([]string{"version"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.HasPrefix(out.String(), "wheel version "+Version) {
		t.Errorf("unexpected version output %q", out.String())
	}
}

func TestRunUnknownCommand(t *testing.T) {
	capture(t)
	err := run([]string{"spin"})
	if err == nil || !strings.Contains(err.Error(), "unknown command") {
		t.Fatalf("expected unknown command error, got %v", err)
	}
}

func TestRunConfigFlagRequiresPath(t *testing.T) {
	capture(t)
	if err := run([]string{"--config"}); err == nil {
		t.Fatal("expected error for --config without a path")
	}
}

func TestCommandHelp(t *testing.T) {
	out := capture(t)
	if err := run([]string{"snapshot", "--help"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(out.String(), "wheel snapshot") {
		t.Errorf("expected snapshot usage, got %q", out.String())
	}
}

func TestSnapshotWritesPNG(t *testing.T) {
	out := capture(t)
	cfg := writeConfig(t, "wheel:\n  ticks: 10\n")
	dest := filepath.Join(t.TempDir(), "wheel.png")

	err := run([]string{"--config", cfg, "snapshot", "--value", "0.5", "--width", "200", "--height", "40", "-o", dest})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(out.String(), "wrote "+dest) {
		t.Errorf("unexpected output %q", out.String())
	}

	f, err := os.Open(dest)
	if err != nil {
		t.Fatalf("open snapshot: %v", err)
	}
	defer f.Close()
	img, err := png.Decode(f)
	if err != nil {
		t.Fatalf("decode snapshot: %v", err)
	}
	if b := img.Bounds(); b.Dx() != 200 || b.Dy() != 40 {
		t.Errorf("expected 200x40, got %dx%d", b.Dx(), b.Dy())
	}
}

func TestSnapshotToStdout(t *testing.T) {
	out := capture(t)
	configPath = writeConfig(t, "")
	if err := run([]string{"snapshot", "--width", "64", "--height", "16", "-o", "-"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	img, err := png.Decode(out)
	if err != nil {
		t.Fatalf("decode snapshot: %v", err)
	}
	if b := img.Bounds(); b.Dx() != 64 || b.Dy() != 16 {
		t.Errorf("expected 64x16, got %dx%d", b.Dx(), b.Dy())
	}
}

func TestSnapshotRejectsBadFlags(t *testing.T) {
	tests := [][]string{
		{"snapshot", "--value", "1.5"},
		{"snapshot", "--width", "0"},
		{"snapshot", "--bogus"},
	}
	for _, args := range tests {
		capture(t)
		if err := run(args); err == nil {
			t.Errorf("expected error for %v", args)
		}
	}
}

func TestFollowURL(t *testing.T) {
	cfg := config.Default()
	if _, err := followURL(&cfg, nil); err == nil {
		t.Error("expected error without URL or mirror.addr")
	}

	cfg.Mirror.Addr = ":8080"
	got, err := followURL(&cfg, nil)
	if err != nil || got != "ws://localhost:8080/wheel" {
		t.Errorf("expected ws://localhost:8080/wheel, got %q (%v)", got, err)
	}

	cfg.Mirror.Addr = "10.0.0.2:9000"
	got, _ = followURL(&cfg, nil)
	if got != "ws://10.0.0.2:9000/wheel" {
		t.Errorf("expected ws://10.0.0.2:9000/wheel, got %q", got)
	}

	got, _ = followURL(&cfg, []string{"ws://other/x"})
	if got != "ws://other/x" {
		t.Errorf("expected explicit URL, got %q", got)
	}
	if _, err := followURL(&cfg, []string{"a", "b"}); err == nil {
		t.Error("expected error for two URLs")
	}
}

func TestHapticOutput(t *testing.T) {
	out, closeOut, err := hapticOutput("none", nil)
	if err != nil || out != nil {
		t.Fatalf("expected no output, got %v (%v)", out, err)
	}
	closeOut()
	if _, _, err := hapticOutput("buzz", nil); err == nil {
		t.Error("expected error for unknown haptics")
	}
}

func newSimScreen(t *testing.T, cols, rows int) tcell.SimulationScreen {
	t.Helper()
	screen := tcell.NewSimulationScreen("UTF-8")
	if err := screen.Init(); err != nil {
		t.Fatalf("init screen: %v", err)
	}
	screen.SetSize(cols, rows)
	t.Cleanup(screen.Fini)
	return screen
}

func newTestDemo(t *testing.T) *demoView {
	t.Helper()
	return newDemoOn(t, newSimScreen(t, 80, 24))
}

func newDemoOn(t *testing.T, screen tcell.Screen) *demoView {
	t.Helper()
	cfg := config.Default()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return newDemoView(screen, &cfg, nil, logger)
}

func rowText(screen tcell.Screen, row, from, n int) string {
	var sb strings.Builder
	for x := from; x < from+n; x++ {
		r, _, _, _ := screen.GetContent(x, row)
		sb.WriteRune(r)
	}
	return sb.String()
}

func TestDemoLayout(t *testing.T) {
	screen := newSimScreen(t, 80, 24)
	v := newDemoOn(t, screen)
	if got := v.wheel.Position().Width(); got != 76*pxPerCol {
		t.Errorf("expected wheel width %d, got %d", 76*pxPerCol, got)
	}
	if v.wheel.VibrationEnabled() {
		t.Error("expected vibration off without a haptic output")
	}

	screen.SetSize(40, 20)
	v.handle(tcell.NewEventResize(40, 20))
	if got := v.wheel.Position().Width(); got != 36*pxPerCol {
		t.Errorf("expected wheel width %d after resize, got %d", 36*pxPerCol, got)
	}
}

func TestDemoPaint(t *testing.T) {
	v := newTestDemo(t)
	v.loop.RequestFrame()
	v.loop.StepFrame(time.Now())

	if got := rowText(v.screen, 0, 2, 5); got != "wheel" {
		t.Errorf("expected title, got %q", got)
	}
	if got := rowText(v.screen, 1, 2, 5); got != "value" {
		t.Errorf("expected status line, got %q", got)
	}
}

func TestDemoMouseDrag(t *testing.T) {
	v := newTestDemo(t)
	v.handle(tcell.NewEventMouse(40, 4, tcell.Button1, tcell.ModNone))
	v.handle(tcell.NewEventMouse(30, 4, tcell.Button1, tcell.ModNone))

	// 10 columns of 8px less the touch slop.
	if got := v.wheel.Offset(); got != -72 {
		t.Errorf("expected offset -72, got %d", got)
	}
	if !v.rec.Active() {
		t.Error("expected gesture in progress")
	}
}

func TestDemoArrowFlingStartsBeforeScrolling(t *testing.T) {
	var events []wheel.Event
	record := func(e wheel.Event) func(float64, int) {
		return func(float64, int) { events = append(events, e) }
	}
	cfg := config.Default()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	v := newDemoView(newSimScreen(t, 80, 24), &cfg, nil, logger, wheel.ListenerFuncs{
		Started:   record(wheel.EventStarted),
		Scrolling: record(wheel.EventScrolling),
		Finished:  record(wheel.EventFinished),
	})

	v.handle(tcell.NewEventKey(tcell.KeyLeft, 0, tcell.ModNone))
	now := time.Now()
	for i := 0; i < 400 && !v.wheel.Animator().IsFinished(); i++ {
		now = now.Add(16 * time.Millisecond)
		v.loop.StepFrame(now)
	}

	if len(events) == 0 || events[0] != wheel.EventStarted {
		t.Fatalf("expected started first, got %v", events)
	}
}

func TestDemoPressOutsideWheel(t *testing.T) {
	v := newTestDemo(t)
	v.handle(tcell.NewEventMouse(40, 20, tcell.Button1, tcell.ModNone))
	if v.rec.Active() {
		t.Error("expected press outside the wheel to be ignored")
	}
}

func TestDemoKeys(t *testing.T) {
	v := newTestDemo(t)
	v.wheel.SetValue(0.5, false)
	if !v.handle(tcell.NewEventKey(tcell.KeyRune, ' ', tcell.ModNone)) {
		t.Fatal("space should not quit")
	}
	if got := v.wheel.Value(); got != 0 {
		t.Errorf("expected space to recenter, got %v", got)
	}

	v.handle(tcell.NewEventKey(tcell.KeyRight, 0, tcell.ModNone))
	if v.wheel.Animator().IsFinished() {
		t.Error("expected arrow key to start a fling")
	}

	if v.handle(tcell.NewEventKey(tcell.KeyRune, 'q', tcell.ModNone)) {
		t.Error("expected q to quit")
	}
	if v.handle(tcell.NewEventKey(tcell.KeyEscape, 0, tcell.ModNone)) {
		t.Error("expected escape to quit")
	}
}

func TestStatusLine(t *testing.T) {
	redraws := 0
	s := &statusLine{redraw: func() { redraws++ }}
	if got := s.text(false); got != "value +0.000  tick    0  haptics off" {
		t.Errorf("unexpected idle status %q", got)
	}
	s.OnScrollFinished(0.25, 9)
	if got := s.text(true); got != "value +0.250  tick    9  haptics on  (finished)" {
		t.Errorf("unexpected status %q", got)
	}
	if redraws != 1 {
		t.Errorf("expected 1 redraw, got %d", redraws)
	}
}

func TestFollowViewApply(t *testing.T) {
	cfg := config.Default()
	v := newFollowView(newSimScreen(t, 80, 10), &cfg, "ws://localhost:8080/wheel")
	v.loop.StepFrame(time.Now())
	if got := rowText(v.screen, 1, 2, 7); got != "waiting" {
		t.Errorf("expected waiting status, got %q", got)
	}
}
