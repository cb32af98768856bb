package mirror

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/go-drift/wheel/pkg/errors"
	"github.com/gorilla/websocket"
)

// Follow connects to a mirror endpoint and calls fn with each frame until
// ctx is canceled or the connection fails. It returns nil when ctx ends
// the session. Frames that fail to decode are skipped.
func Follow(ctx context.Context, url string, fn func(Message), logger *slog.Logger) error {
	if logger == nil {
		logger = slog.Default()
	}
	conn, _, err := websocket.DefaultDialer.DialContext(ctx, url, nil)
	if err != nil {
		return &errors.WheelError{Op: "mirror.Follow", Kind: errors.KindTransport, Err: fmt.Errorf("dial %s: %w", url, err)}
	}
	defer conn.Close()

	stop := context.AfterFunc(ctx, func() {
		_ = conn.WriteMessage(websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
		_ = conn.Close()
	})
	defer stop()

	logger.Debug("mirror following", "url", url)
	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			if ctx.Err() != nil {
				return nil
			}
			return &errors.WheelError{Op: "mirror.Follow", Kind: errors.KindTransport, Err: err}
		}
		msg, err := Decode(data)
		if err != nil {
			logger.Debug("mirror frame skipped", "error", err)
			continue
		}
		fn(msg)
	}
}
