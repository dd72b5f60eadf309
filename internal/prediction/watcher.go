package prediction

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/fibroview/fibroview/internal/logger"
)

// Update is one discrete prediction event consumed by the render loop. Each
// update carries the full new state; there is no delta path.
type Update struct {
	Stiffness float32
	Risk      string
	Lesions   []Lesion
}

// Watcher polls the prediction service on a fixed interval and publishes the
// latest result. The channel keeps only the most recent update: the render
// loop drains it once per frame and a newer prediction always supersedes an
// unconsumed older one.
type Watcher struct {
	client   *Client
	interval time.Duration
	updates  chan Update
}

// NewWatcher creates a watcher polling the given client.
func NewWatcher(client *Client, interval time.Duration) *Watcher {
	return &Watcher{
		client:   client,
		interval: interval,
		updates:  make(chan Update, 1),
	}
}

// Updates returns the channel the render loop drains each frame.
func (w *Watcher) Updates() <-chan Update {
	return w.updates
}

// Run polls until the context is canceled. Failed polls are logged and
// retried on the next tick; the viewer keeps rendering the last good field.
func (w *Watcher) Run(ctx context.Context) {
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	w.poll(ctx)
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			w.poll(ctx)
		}
	}
}

func (w *Watcher) poll(ctx context.Context) {
	resp, err := w.client.Predict(ctx)
	if err != nil {
		if ctx.Err() == nil {
			logger.Warn("prediction poll failed", zap.Error(err))
		}
		return
	}

	w.publish(Update{
		Stiffness: resp.Stiffness,
		Risk:      resp.RiskLevel,
		Lesions:   resp.Lesions,
	})
}

// publish replaces any unconsumed update with the newer one.
func (w *Watcher) publish(u Update) {
	for {
		select {
		case w.updates <- u:
			return
		default:
			select {
			case <-w.updates:
			default:
			}
		}
	}
}
