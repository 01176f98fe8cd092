package inference

import (
	"context"
	"time"

	"github.com/dfsentinel/sentinel-web/internal/models"
)

// Gate runs classify in the background and returns its outcome only
// after minDelay has also elapsed. Fast backends would otherwise flash
// the result panel before the scanning animation registers. This is a
// join on both events, not a race: a slow response is returned as soon
// as it lands, an instant one waits out the timer. Context cancellation
// is the only early exit.
func Gate(ctx context.Context, minDelay time.Duration, classify func() (*models.Prediction, error)) (*models.Prediction, error) {
	type outcome struct {
		pred *models.Prediction
		err  error
	}

	done := make(chan outcome, 1)
	go func() {
		pred, err := classify()
		done <- outcome{pred: pred, err: err}
	}()

	timer := time.NewTimer(minDelay)
	defer timer.Stop()

	var (
		result  *outcome
		elapsed bool
	)

	doneC := done
	timerC := timer.C
	for result == nil || !elapsed {
		select {
		case out := <-doneC:
			result = &out
			doneC = nil
		case <-timerC:
			elapsed = true
			timerC = nil
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}

	return result.pred, result.err
}
