package simulation

import (
	"context"
	"fmt"
	"math"

	"github.com/dustin/go-humanize"
	"github.com/tochemey/goakt/v3/actor"
	"github.com/tochemey/goakt/v3/log"
)

// SampleSink receives the summaries produced by RunBatch.
type SampleSink interface {
	Record(ctx context.Context, s Summary) error
}

// RunBatch advances the world steps ticks in chunks of every, handing the
// summary after each chunk to sink. The last chunk is shorter when steps is
// not a multiple of every. sink may be nil. On error the last summary
// received is returned along with it.
func RunBatch(ctx context.Context, pid *actor.PID, steps, every int, sink SampleSink, logger log.Logger) (Summary, error) {
	if steps < 0 {
		return Summary{}, fmt.Errorf("steps must not be negative, got %d", steps)
	}
	if every < 1 {
		return Summary{}, fmt.Errorf("every must be at least 1, got %d", every)
	}
	if err := ctx.Err(); err != nil {
		return Summary{}, err
	}
	every = int(min(uint64(every), math.MaxUint32))

	last, err := QuerySummary(ctx, pid)
	if err != nil {
		return Summary{}, err
	}
	if sink != nil {
		if err := sink.Record(ctx, last); err != nil {
			return last, fmt.Errorf("failed to record tick %d: %w", last.Tick, err)
		}
	}

	for done := 0; done < steps; {
		if err := ctx.Err(); err != nil {
			return last, err
		}
		chunk := min(every, steps-done)
		next, err := Advance(ctx, pid, uint32(chunk))
		if err != nil {
			return last, err
		}
		last = next
		done += chunk

		if sink != nil {
			if err := sink.Record(ctx, last); err != nil {
				return last, fmt.Errorf("failed to record tick %d: %w", last.Tick, err)
			}
		}
		if logger != nil {
			logger.Debugf("batch: %s/%s ticks, order %.3f",
				humanize.Comma(int64(done)), humanize.Comma(int64(steps)), last.OrderParameter)
		}
	}
	return last, nil
}
