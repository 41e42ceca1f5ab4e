package simulation

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/tochemey/goakt/v3/actor"
	"google.golang.org/protobuf/proto"
	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/structpb"
	"google.golang.org/protobuf/types/known/wrapperspb"

	"github.com/SebastianHodge/Vicsek-Simulation-of-Collective-Motion-of-Populations-of-Organisms/pkg/vicsek"
)

const askTimeout = 30 * time.Second

// ErrRejected wraps every request the world refused.
var ErrRejected = errors.New("world rejected request")

// ask sends msg to the world and waits for the reply. A context that is
// already done never reaches the actor system.
func ask(ctx context.Context, pid *actor.PID, msg proto.Message) (proto.Message, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return actor.Ask(ctx, pid, msg, askTimeout)
}

// Configure sends a partial parameter update. Only the fields present in
// update are changed; the world keeps its previous parameters on rejection.
func Configure(ctx context.Context, pid *actor.PID, update *structpb.Struct) error {
	reply, err := ask(ctx, pid, update)
	if err != nil {
		return fmt.Errorf("configure: %w", err)
	}
	return ackOrReject(reply)
}

// ConfigureParams sends a full parameter bundle.
func ConfigureParams(ctx context.Context, pid *actor.PID, p vicsek.Params) error {
	s, err := ParamsToStruct(p)
	if err != nil {
		return fmt.Errorf("configure: %w", err)
	}
	return Configure(ctx, pid, s)
}

// Reset discards the agents and seeds n fresh ones.
func Reset(ctx context.Context, pid *actor.PID, n int) error {
	reply, err := ask(ctx, pid, wrapperspb.Int32(int32(n)))
	if err != nil {
		return fmt.Errorf("reset: %w", err)
	}
	return ackOrReject(reply)
}

// Advance runs ticks steps (at least one) and returns the resulting summary.
func Advance(ctx context.Context, pid *actor.PID, ticks uint32) (Summary, error) {
	reply, err := ask(ctx, pid, wrapperspb.UInt32(ticks))
	if err != nil {
		return Summary{}, fmt.Errorf("advance: %w", err)
	}
	return summaryReply(reply)
}

// QuerySummary reads the current summary without stepping.
func QuerySummary(ctx context.Context, pid *actor.PID) (Summary, error) {
	reply, err := ask(ctx, pid, &emptypb.Empty{})
	if err != nil {
		return Summary{}, fmt.Errorf("summary: %w", err)
	}
	return summaryReply(reply)
}

func ackOrReject(reply proto.Message) error {
	switch r := reply.(type) {
	case *emptypb.Empty:
		return nil
	case *wrapperspb.StringValue:
		return fmt.Errorf("%w: %s", ErrRejected, r.GetValue())
	default:
		return fmt.Errorf("unexpected reply %T", reply)
	}
}

func summaryReply(reply proto.Message) (Summary, error) {
	switch r := reply.(type) {
	case *structpb.Struct:
		return SummaryFromStruct(r)
	case *wrapperspb.StringValue:
		return Summary{}, fmt.Errorf("%w: %s", ErrRejected, r.GetValue())
	default:
		return Summary{}, fmt.Errorf("unexpected reply %T", reply)
	}
}
