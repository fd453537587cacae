package audit

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"daybound/pkg/platform/middleware/metadata"
	"daybound/pkg/requestcontext"
)

func TestPublisherEmitAndWorkerDelivery(t *testing.T) {
	pub := NewPublisher(16, nil)
	sink := NewMemorySink()
	worker := NewWorker(pub, nil, sink)

	done := make(chan error, 1)
	go func() { done <- worker.Run(context.Background()) }()

	ctx := context.Background()
	pub.Emit(ctx, Event{TenantID: "t1", Action: ActionDateRangeResolved, Detail: "2026-01-01..2026-01-31"})
	pub.Emit(ctx, Event{TenantID: "t2", Action: ActionTenantCreated})
	pub.Emit(ctx, Event{TenantID: "t1", Action: ActionTimezoneChanged})
	pub.Close()

	require.NoError(t, <-done)

	assert.Equal(t, 3, sink.Len())
	got := sink.ListByTenant(ctx, "t1")
	require.Len(t, got, 2)
	assert.Equal(t, ActionDateRangeResolved, got[0].Action)
	assert.Equal(t, ActionTimezoneChanged, got[1].Action)
}

func TestPublisherFillsTimestampFromRequestClock(t *testing.T) {
	now := time.Date(2026, 1, 30, 9, 0, 0, 0, time.UTC)
	ctx := requestcontext.WithTime(context.Background(), now)

	pub := NewPublisher(1, nil)
	pub.Emit(ctx, Event{TenantID: "t1", Action: ActionAPIKeyCreated})

	e := <-pub.Events()
	assert.Equal(t, now, e.Timestamp)
}

func TestPublisherEnrichesFromRequestMetadata(t *testing.T) {
	const chromeUA = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"
	ctx := metadata.WithClientMetadata(context.Background(), "203.0.113.7", chromeUA)

	pub := NewPublisher(1, nil)
	pub.Emit(ctx, Event{TenantID: "t1", Action: ActionDateRangeResolved})

	e := <-pub.Events()
	assert.Equal(t, "203.0.113.7", e.ClientIP)
	assert.Contains(t, e.UserAgent, "Chrome")
}

func TestPublisherDropsWhenBufferFull(t *testing.T) {
	pub := NewPublisher(1, nil)
	ctx := context.Background()

	pub.Emit(ctx, Event{TenantID: "t1", Action: ActionTenantCreated})
	// No worker running, so this one has nowhere to go.
	pub.Emit(ctx, Event{TenantID: "t1", Action: ActionTenantCreated})

	assert.Len(t, pub.Events(), 1)
}

type failingSink struct {
	mu    sync.Mutex
	calls int
}

func (s *failingSink) Append(context.Context, Event) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls++
	return errors.New("sink down")
}

func TestWorkerSurvivesSinkFailure(t *testing.T) {
	pub := NewPublisher(4, nil)
	failing := &failingSink{}
	healthy := NewMemorySink()
	worker := NewWorker(pub, nil, failing, healthy)

	done := make(chan error, 1)
	go func() { done <- worker.Run(context.Background()) }()

	ctx := context.Background()
	pub.Emit(ctx, Event{TenantID: "t1", Action: ActionTenantCreated})
	pub.Emit(ctx, Event{TenantID: "t1", Action: ActionTenantDeactivated})
	pub.Close()

	require.NoError(t, <-done)
	assert.Equal(t, 2, failing.calls)
	assert.Equal(t, 2, healthy.Len())
}

func TestWorkerDrainsBufferOnCancel(t *testing.T) {
	pub := NewPublisher(8, nil)
	sink := NewMemorySink()
	worker := NewWorker(pub, nil, sink)

	ctx := context.Background()
	pub.Emit(ctx, Event{TenantID: "t1", Action: ActionTenantCreated})
	pub.Emit(ctx, Event{TenantID: "t1", Action: ActionTenantReactivated})

	cancelled, cancel := context.WithCancel(context.Background())
	cancel()
	err := worker.Run(cancelled)
	require.ErrorIs(t, err, context.Canceled)

	assert.Equal(t, 2, sink.Len())
}
