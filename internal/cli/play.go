package cli

import (
	"context"
	"io"
	"time"

	"github.com/briandowns/spinner"

	"github.com/agbru/ecodash/internal/config"
	apperrors "github.com/agbru/ecodash/internal/errors"
	"github.com/agbru/ecodash/internal/logging"
	"github.com/agbru/ecodash/internal/metrics"
	"github.com/agbru/ecodash/internal/orchestration"
	"github.com/agbru/ecodash/internal/portfolio"
)

// Play runs board once to completion in the terminal and prints the settled
// values. The run is bounded by cfg.Timeout.
func Play(ctx context.Context, board portfolio.Board, cfg config.AppConfig, logger logging.Logger, recorder *metrics.Recorder, out io.Writer) error {
	coord, err := orchestration.NewCoordinator(board.Targets(),
		orchestration.WithStartDelay(cfg.StartDelay),
		orchestration.WithLogger(logger),
		orchestration.WithRecorder(recorder),
	)
	if err != nil {
		return err
	}
	defer coord.Unmount()

	ctx, cancel := context.WithTimeout(ctx, cfg.Timeout)
	defer cancel()

	DisplayPlayConfig(out, board, coord, cfg.FrameInterval)

	s := newSpinner(spinner.WithWriter(out))
	pub := NewSpinnerPublisher(s, coord)

	start := time.Now()
	s.Start()
	err = orchestration.Run(ctx, coord, orchestration.NewFrameTicker(cfg.FrameInterval), pub)
	s.Stop()
	if err != nil {
		return apperrors.WrapError(err, "play %q", board.Title)
	}

	DisplayBoard(out, board, pub.Last(), time.Since(start))
	return nil
}
