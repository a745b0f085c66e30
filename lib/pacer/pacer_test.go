package pacer

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestFixedDelayWaits(t *testing.T) {
	p := FixedDelay{Delay: 30 * time.Millisecond}

	start := time.Now()
	p.Pace(context.Background())
	require.GreaterOrEqual(t, time.Since(start), 30*time.Millisecond)
}

func TestFixedDelayZero(t *testing.T) {
	p := FixedDelay{}

	start := time.Now()
	p.Pace(context.Background())
	require.Less(t, time.Since(start), 10*time.Millisecond)
}

func TestFixedDelayCancelled(t *testing.T) {
	p := FixedDelay{Delay: 10 * time.Second}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	start := time.Now()
	p.Pace(ctx)
	require.Less(t, time.Since(start), time.Second)
}

func TestLimiterSpacesCalls(t *testing.T) {
	p := NewLimiter(25*time.Millisecond, 1)

	start := time.Now()
	p.Pace(context.Background())
	p.Pace(context.Background())
	require.GreaterOrEqual(t, time.Since(start), 25*time.Millisecond)
}

func TestLimiterBurst(t *testing.T) {
	p := NewLimiter(time.Minute, 3)

	start := time.Now()
	for i := 0; i < 3; i++ {
		p.Pace(context.Background())
	}
	require.Less(t, time.Since(start), time.Second)
}

func TestNoop(t *testing.T) {
	start := time.Now()
	Noop{}.Pace(context.Background())
	require.Less(t, time.Since(start), 10*time.Millisecond)
}
