package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/go-drift/wheel/cmd/wheel/internal/term"
	"github.com/go-drift/wheel/pkg/config"
	"github.com/go-drift/wheel/pkg/engine"
	werrors "github.com/go-drift/wheel/pkg/errors"
	"github.com/go-drift/wheel/pkg/mirror"
	"github.com/go-drift/wheel/pkg/radio"
)

func init() {
	RegisterCommand(&Command{
		Name:  "follow",
		Short: "Show a remote wheel's radio",
		Long: `Connect to a wheel served with "wheel demo --mirror" and show its radio.

The URL defaults to ws://localhost<mirror.addr><mirror.path> from the
configuration. Press q to quit.`,
		Usage: "wheel follow [--log-file FILE] [URL]",
		Run:   runFollow,
	})
}

func runFollow(args []string) error {
	fs := newFlagSet("follow")
	logFile := fs.String("log-file", "", "write logs to this file")
	if err := fs.Parse(args); err != nil {
		return err
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	url, err := followURL(&cfg, fs.Args())
	if err != nil {
		return err
	}

	logger, closeLog, err := openLog(&cfg, *logFile)
	if err != nil {
		return err
	}
	defer closeLog()
	werrors.SetHandler(&werrors.LogHandler{Logger: logger})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	screen, err := openScreen()
	if err != nil {
		return fmt.Errorf("open terminal: %w", err)
	}
	defer screen.Fini()

	v := newFollowView(screen, &cfg, url)

	followErr := make(chan error, 1)
	go func() {
		err := mirror.Follow(ctx, url, func(msg mirror.Message) {
			v.loop.Post(func() { v.apply(msg) })
		}, logger)
		followErr <- err
		cancel()
	}()

	runScreen(ctx, screen, v.loop, v.handle)
	cancel()
	return <-followErr
}

// followURL picks the endpoint from the arguments or the mirror section.
func followURL(cfg *config.Config, args []string) (string, error) {
	switch {
	case len(args) > 1:
		return "", fmt.Errorf("follow takes at most one URL")
	case len(args) == 1:
		return args[0], nil
	case cfg.Mirror.Addr != "":
		addr := cfg.Mirror.Addr
		if addr[0] == ':' {
			addr = "localhost" + addr
		}
		return "ws://" + addr + cfg.Mirror.Path, nil
	default:
		return "", fmt.Errorf("no URL given and mirror.addr is not configured")
	}
}

// followView paints the radio of a remote wheel.
type followView struct {
	screen tcell.Screen
	loop   *engine.Loop
	radio  *radio.Radio
	canvas *term.Canvas
	url    string
	last   mirror.Message
	frames int
}

func newFollowView(screen tcell.Screen, cfg *config.Config, url string) *followView {
	v := &followView{screen: screen, loop: engine.NewLoop(nil), url: url}
	opts := cfg.RadioOptions(nil)
	opts.OnRedraw = v.loop.RequestFrame
	v.radio = radio.New(opts)
	v.layout()
	v.loop.OnFrame(func(time.Time) { v.paint() })
	return v
}

// apply shows one frame. It runs on the loop.
func (v *followView) apply(msg mirror.Message) {
	v.last = msg
	v.frames++
	v.radio.SetValue(msg.State.Value)
	v.loop.RequestFrame()
}

func (v *followView) layout() {
	cols, _ := v.screen.Size()
	v.canvas = term.NewCanvas(v.screen, term.Region{X: 2, Y: 3, Cols: max(cols-4, 1), Rows: 2}, pxPerCol, pxPerRow)
	size := v.canvas.Size()
	v.radio.Layout(int(size.Width), int(size.Height))
	v.loop.RequestFrame()
}

func (v *followView) paint() {
	v.screen.Clear()
	_, rows := v.screen.Size()
	plain := tcell.StyleDefault
	term.DrawText(v.screen, 2, 0, v.url, plain.Bold(true))
	status := "waiting for frames"
	if v.frames > 0 {
		status = fmt.Sprintf("value %+.3f  tick %4d  (%s)", v.last.State.Value, v.last.State.Tick, v.last.Type)
	}
	term.DrawText(v.screen, 2, 1, status, plain)
	v.radio.Draw(v.canvas)
	term.DrawText(v.screen, 2, rows-1, "q: quit", plain.Foreground(tcell.ColorGray))
	v.screen.Show()
}

func (v *followView) handle(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventResize:
		v.layout()
		v.screen.Sync()
	case *tcell.EventKey:
		if ev.Key() == tcell.KeyEscape || ev.Key() == tcell.KeyCtrlC || (ev.Key() == tcell.KeyRune && ev.Rune() == 'q') {
			return false
		}
	}
	return true
}
