package orchestration

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	apperrors "github.com/agbru/ecodash/internal/errors"
)

const tracerName = "github.com/agbru/ecodash/internal/orchestration"

// Run drives one view mount from start to finish.
//
// It mounts c at the coordinator's clock, publishes the initial snapshot
// (every value at its start), then samples c on every tick of ticker. While
// the coordinator is Animating each sampled snapshot is published; the
// snapshot that enters AllSettled is published exactly once and Run returns
// nil. Ticks that arrive during the start delay publish nothing because no
// value moves.
//
// If ctx is cancelled or pub returns an error, c is unmounted and the error is
// returned. Nothing is published after teardown. Run always stops ticker.
func Run(ctx context.Context, c *Coordinator, ticker Ticker, pub Publisher) (err error) {
	ctx, span := otel.Tracer(tracerName).Start(ctx, "dashboard.run",
		trace.WithAttributes(
			attribute.String("coordinator.id", c.ID()),
			attribute.Int("coordinator.targets", c.Len()),
			attribute.Int64("coordinator.start_delay_ms", c.StartDelay().Milliseconds()),
		))
	defer func() {
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		}
		span.End()
	}()
	defer ticker.Stop()

	if err := c.publish(ctx, pub, c.Mount(c.clock())); err != nil {
		return err
	}
	span.AddEvent("mounted")

	for {
		select {
		case <-ctx.Done():
			c.Unmount()
			return ctx.Err()
		case now := <-ticker.C():
			if ctx.Err() != nil {
				c.Unmount()
				return ctx.Err()
			}
			before := c.Phase()
			snap, ok := c.Sample(now)
			if !ok {
				return nil
			}
			switch {
			case snap.Phase == Animating:
				if before == Pending {
					span.AddEvent("animating")
				}
				if err := c.publish(ctx, pub, snap); err != nil {
					return err
				}
			case snap.Phase == AllSettled && before != AllSettled:
				if err := c.publish(ctx, pub, snap); err != nil {
					return err
				}
				span.AddEvent("settled")
				return nil
			}
		}
	}
}

func (c *Coordinator) publish(ctx context.Context, pub Publisher, snap Snapshot) error {
	if err := pub.Publish(ctx, snap); err != nil {
		c.Unmount()
		if apperrors.IsContextError(err) {
			return err
		}
		return apperrors.WrapError(err, "publish %s snapshot", snap.Phase)
	}
	c.recorder.SnapshotPublished()
	return nil
}
