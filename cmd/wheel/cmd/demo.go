package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/go-drift/wheel/cmd/wheel/internal/term"
	"github.com/go-drift/wheel/pkg/config"
	"github.com/go-drift/wheel/pkg/engine"
	werrors "github.com/go-drift/wheel/pkg/errors"
	"github.com/go-drift/wheel/pkg/haptics"
	"github.com/go-drift/wheel/pkg/mirror"
	"github.com/go-drift/wheel/pkg/radio"
	"github.com/go-drift/wheel/pkg/wheel"
)

// keyFlingVelocity is the release velocity, in px/s, of an arrow key.
const keyFlingVelocity = 1500

func init() {
	RegisterCommand(&Command{
		Name:  "demo",
		Short: "Scroll a wheel in the terminal",
		Long: `Run an interactive wheel with its companion radio.

Drag the wheel with the left mouse button and release quickly to fling.
Arrow keys fling, space recenters, v toggles haptics, q quits.

Haptic pulses ring the terminal bell by default. --haptics click plays a
short tone on the default audio device instead.

With --mirror, scroll events are also served as JSON frames over a
websocket at ws://ADDR/wheel (see "wheel follow").`,
		Usage: "wheel demo [--haptics bell|click|none] [--mirror ADDR] [--log-file FILE]",
		Run:   runDemo,
	})
}

func runDemo(args []string) error {
	fs := newFlagSet("demo")
	hapticKind := fs.String("haptics", "bell", "haptic output: bell, click or none")
	mirrorAddr := fs.String("mirror", "", "serve scroll events on this address")
	logFile := fs.String("log-file", "", "write logs to this file")
	if err := fs.Parse(args); err != nil {
		return err
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if *mirrorAddr != "" {
		cfg.Mirror.Addr = *mirrorAddr
		if err := cfg.Validate(); err != nil {
			return err
		}
	}

	logger, closeLog, err := openLog(&cfg, *logFile)
	if err != nil {
		return err
	}
	defer closeLog()
	werrors.SetHandler(&werrors.LogHandler{Logger: logger})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	screen, err := openScreen()
	if err != nil {
		return fmt.Errorf("open terminal: %w", err)
	}
	defer screen.Fini()

	out, closeOut, err := hapticOutput(*hapticKind, screen)
	if err != nil {
		return err
	}
	defer closeOut()

	var extra []wheel.Listener
	var note string
	if cfg.Mirror.Addr != "" {
		hub := mirror.NewHub(logger, mirror.HubConfig{})
		ml := mirror.NewListener(hub, logger)
		extra = append(extra, ml)

		mux := http.NewServeMux()
		mirror.NewServer(hub, ml, logger).Register(mux, cfg.Mirror.Path)
		go hub.Run(ctx)

		serveCtx, cancel := context.WithCancel(ctx)
		serveErr := make(chan error, 1)
		go func() {
			serveErr <- serveMirror(serveCtx, cfg.Mirror.Addr, mux, logger)
		}()
		defer func() {
			cancel()
			<-serveErr
		}()
		note = fmt.Sprintf("mirror ws://%s%s", cfg.Mirror.Addr, cfg.Mirror.Path)
	}

	v := newDemoView(screen, &cfg, out, logger, extra...)
	v.note = note
	runScreen(ctx, screen, v.loop, v.handle)
	return nil
}

// openLog returns the configured logger writing to path. Logs are
// discarded without a path since the terminal is in use.
func openLog(cfg *config.Config, path string) (*slog.Logger, func(), error) {
	if path == "" {
		return cfg.Logger(io.Discard), func() {}, nil
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("open log file: %w", err)
	}
	return cfg.Logger(f), func() { f.Close() }, nil
}

// hapticOutput returns the output for kind. A nil output disables haptics.
func hapticOutput(kind string, screen tcell.Screen) (haptics.Output, func(), error) {
	switch kind {
	case "bell":
		return haptics.Bell{Device: screen}, func() {}, nil
	case "click":
		click := haptics.NewClick(0.5)
		if err := click.Init(); err != nil {
			return nil, nil, fmt.Errorf("open audio device: %w", err)
		}
		return click, click.Close, nil
	case "none", "":
		return nil, func() {}, nil
	default:
		return nil, nil, fmt.Errorf("unknown haptics %q (want bell, click or none)", kind)
	}
}

// serveMirror runs the mirror endpoint until ctx is canceled.
func serveMirror(ctx context.Context, addr string, handler http.Handler, logger *slog.Logger) error {
	logger.Info("mirror listening", "addr", addr)
	srv := &http.Server{Addr: addr, Handler: handler}

	errCh := make(chan error, 1)
	go func() {
		// ListenAndServe returns http.ErrServerClosed on Shutdown.
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- fmt.Errorf("mirror server: %w", err)
			return
		}
		errCh <- nil
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("mirror server shutdown: %w", err)
		}
		<-errCh
		return nil
	case err := <-errCh:
		if err != nil {
			werrors.Report(&werrors.WheelError{Op: "mirror.Serve", Kind: werrors.KindTransport, Err: err})
		}
		return err
	}
}

// demoView lays out and paints the wheel, the radio and a status line, and
// feeds terminal input to the wheel.
type demoView struct {
	screen tcell.Screen
	loop   *engine.Loop
	wheel  *wheel.Wheel
	radio  *radio.Radio
	rec    *term.Recognizer
	status *statusLine
	svc    *haptics.Service

	wheelCanvas *term.Canvas
	radioCanvas *term.Canvas
	note        string
}

// newDemoView builds the view. Scroll events go to the status line and then
// to each of extra.
func newDemoView(screen tcell.Screen, cfg *config.Config, out haptics.Output, logger *slog.Logger, extra ...wheel.Listener) *demoView {
	v := &demoView{screen: screen, loop: engine.NewLoop(nil)}
	v.status = &statusLine{redraw: v.loop.RequestFrame}

	opts := cfg.WheelOptions(logger)
	opts.Loop = v.loop
	opts.Listener = append(wheel.Listeners{v.status}, extra...)
	if out != nil {
		v.svc = haptics.NewService(out, cfg.HapticsOptions(logger))
		opts.Haptics = v.svc
	}
	v.wheel = wheel.New(opts)
	v.wheel.SetVibrationEnabled(v.svc != nil && cfg.Wheel.Vibration)

	ropts := cfg.RadioOptions(logger)
	ropts.OnRedraw = v.loop.RequestFrame
	v.radio = radio.New(ropts)
	radio.Bind(v.radio, v.wheel)

	v.rec = term.NewRecognizer(v.wheel)
	v.layout()
	v.loop.OnFrame(func(time.Time) { v.paint() })
	return v
}

func (v *demoView) layout() {
	cols, rows := v.screen.Size()
	width := max(cols-4, 1)
	wheelRegion := term.Region{X: 2, Y: 3, Cols: width, Rows: 3}
	radioRegion := term.Region{X: 2, Y: 8, Cols: width, Rows: 2}
	if rows < 12 {
		radioRegion.Y = wheelRegion.Y + wheelRegion.Rows + 1
	}
	v.wheelCanvas = term.NewCanvas(v.screen, wheelRegion, pxPerCol, pxPerRow)
	v.radioCanvas = term.NewCanvas(v.screen, radioRegion, pxPerCol, pxPerRow)

	ws, rs := v.wheelCanvas.Size(), v.radioCanvas.Size()
	v.wheel.Layout(int(ws.Width), int(ws.Height))
	v.radio.Layout(int(rs.Width), int(rs.Height))
	v.loop.RequestFrame()
}

func (v *demoView) paint() {
	v.screen.Clear()
	_, rows := v.screen.Size()
	plain := tcell.StyleDefault
	dim := plain.Foreground(tcell.ColorGray)

	term.DrawText(v.screen, 2, 0, "wheel", plain.Bold(true))
	term.DrawText(v.screen, 2, 1, v.status.text(v.wheel.VibrationEnabled()), plain)
	v.wheel.Draw(v.wheelCanvas)
	v.radio.Draw(v.radioCanvas)
	if v.note != "" {
		term.DrawText(v.screen, 2, rows-2, v.note, dim)
	}
	term.DrawText(v.screen, 2, rows-1, "drag/fling: mouse  arrows: fling  space: center  v: haptics  q: quit", dim)
	v.screen.Show()
}

// handle processes one terminal event. It returns false to quit.
func (v *demoView) handle(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventResize:
		v.layout()
		v.screen.Sync()
	case *tcell.EventKey:
		return v.key(ev)
	case *tcell.EventMouse:
		v.mouse(ev)
	}
	return true
}

func (v *demoView) key(ev *tcell.EventKey) bool {
	switch ev.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return false
	case tcell.KeyLeft:
		v.fling(-keyFlingVelocity)
	case tcell.KeyRight:
		v.fling(keyFlingVelocity)
	case tcell.KeyRune:
		switch ev.Rune() {
		case 'q':
			return false
		case ' ':
			v.wheel.SetValue(0, true)
		case 'v':
			v.wheel.SetVibrationEnabled(v.svc != nil && !v.wheel.VibrationEnabled())
			v.loop.RequestFrame()
		}
	}
	return true
}

func (v *demoView) mouse(ev *tcell.EventMouse) {
	col, row := ev.Position()
	x, at := v.wheelCanvas.ColumnAt(col), ev.When()
	switch {
	case ev.Buttons()&tcell.Button1 != 0:
		if v.rec.Active() {
			v.rec.Move(x, at)
		} else if v.wheelCanvas.Region().Contains(col, row) {
			v.rec.Press(x, at)
		}
	case v.rec.Active():
		v.rec.Release(x, at)
	case ev.Buttons()&tcell.WheelLeft != 0:
		v.fling(-keyFlingVelocity / 2)
	case ev.Buttons()&tcell.WheelRight != 0:
		v.fling(keyFlingVelocity / 2)
	}
}

// fling runs a press, fling and release, as a quick swipe would.
func (v *demoView) fling(velocity float64) {
	v.wheel.Down()
	v.wheel.Fling(velocity, 0)
	v.wheel.Up()
}

// statusLine remembers the last scroll event for display.
type statusLine struct {
	redraw func()
	event  wheel.Event
	value  float64
	tick   int
	seen   bool
}

func (s *statusLine) OnScrollStarted(value float64, tick int) {
	s.set(wheel.EventStarted, value, tick)
}

func (s *statusLine) OnScroll(value float64, tick int) {
	s.set(wheel.EventScrolling, value, tick)
}

func (s *statusLine) OnScrollFinished(value float64, tick int) {
	s.set(wheel.EventFinished, value, tick)
}

func (s *statusLine) set(e wheel.Event, value float64, tick int) {
	s.event, s.value, s.tick, s.seen = e, value, tick, true
	if s.redraw != nil {
		s.redraw()
	}
}

func (s *statusLine) text(vibration bool) string {
	haptic := "off"
	if vibration {
		haptic = "on"
	}
	if !s.seen {
		return fmt.Sprintf("value %+.3f  tick %4d  haptics %s", 0.0, 0, haptic)
	}
	return fmt.Sprintf("value %+.3f  tick %4d  haptics %s  (%s)", s.value, s.tick, haptic, s.event)
}
