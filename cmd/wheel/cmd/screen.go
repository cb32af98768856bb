package cmd

import (
	"context"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/go-drift/wheel/pkg/engine"
)

// Each terminal cell stands for a pxPerCol by pxPerRow block of wheel
// pixels.
const (
	pxPerCol = 8
	pxPerRow = 16

	frameInterval = 16 * time.Millisecond
)

// newScreen is replaced in tests with a simulation screen.
var newScreen = tcell.NewScreen

func openScreen() (tcell.Screen, error) {
	screen, err := newScreen()
	if err != nil {
		return nil, err
	}
	if err := screen.Init(); err != nil {
		return nil, err
	}
	screen.EnableMouse()
	screen.HideCursor()
	screen.Clear()
	return screen, nil
}

// runScreen delivers terminal events to handle and steps loop every frame
// interval, both on the calling goroutine. It returns when handle returns
// false or ctx is done.
func runScreen(ctx context.Context, screen tcell.Screen, loop *engine.Loop, handle func(tcell.Event) bool) {
	events := make(chan tcell.Event, 16)
	done := make(chan struct{})
	defer close(done)

	// Input loop
	go func() {
		for {
			ev := screen.PollEvent()
			if ev == nil {
				return
			}
			select {
			case events <- ev:
			case <-done:
				return
			}
		}
	}()

	ticker := time.NewTicker(frameInterval)
	defer ticker.Stop()

	loop.RequestFrame()
	for {
		select {
		case <-ctx.Done():
			return
		case ev := <-events:
			if !handle(ev) {
				return
			}
		case <-ticker.C:
			if loop.NeedsFrame() {
				loop.StepFrame(time.Now())
			}
		}
	}
}
