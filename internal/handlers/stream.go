package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"khata/internal/live"
	"khata/internal/logger"
	"khata/internal/metrics"
)

// StreamKeepAlive is how often an idle stream gets a comment line.
var StreamKeepAlive = 25 * time.Second

// snapshotEvent is the SSE event name carrying a rendered snapshot.
const snapshotEvent = "snapshot"

type subscribeFunc[T any] func(ctx context.Context, fn func(T)) (func(), error)

// streamSnapshots serves a server-sent event stream for one feed. Each
// snapshot from subscribe is rendered and pushed; a slow client only ever
// sees the newest pending snapshot. The subscription ends when the client
// goes away.
func streamSnapshots[T any](c *gin.Context, feed string, subscribe subscribeFunc[T], render func(T) (any, error)) {
	ctx := c.Request.Context()
	mailbox := live.NewMailbox[T]()

	unsubscribe, err := subscribe(ctx, mailbox.Put)
	if err != nil {
		respondWithError(c, err)
		return
	}
	defer unsubscribe()

	gauge := metrics.StreamSubscribers.WithLabelValues(feed)
	gauge.Inc()
	defer gauge.Dec()

	c.Header("Content-Type", "text/event-stream")
	c.Header("Cache-Control", "no-cache")
	c.Header("Connection", "keep-alive")
	c.Header("X-Accel-Buffering", "no")
	c.Status(http.StatusOK)
	c.Writer.Flush()

	keepAlive := time.NewTicker(StreamKeepAlive)
	defer keepAlive.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case snapshot := <-mailbox.C():
			payload, err := render(snapshot)
			if err != nil {
				logger.Get().Errorw("failed to render stream snapshot", "feed", feed, "error", err)
				continue
			}
			c.SSEvent(snapshotEvent, payload)
			c.Writer.Flush()
		case <-keepAlive.C:
			if _, err := c.Writer.WriteString(": keepalive\n\n"); err != nil {
				return
			}
			c.Writer.Flush()
		}
	}
}
