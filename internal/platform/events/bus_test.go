package events_test

import (
	"context"
	"testing"
	"time"

	"github.com/lifeline-hq/ledger/internal/core/domain"
	"github.com/lifeline-hq/ledger/internal/platform/events"
	"github.com/stretchr/testify/assert"
)

func TestBusDispatchesByEventName(t *testing.T) {
	bus := events.NewBus()

	var posted []domain.LedgerEntryPosted
	bus.Subscribe(domain.LedgerEntryPosted{}.EventName(), func(_ context.Context, e domain.Event) {
		posted = append(posted, e.(domain.LedgerEntryPosted))
	})

	var seenAll int
	bus.SubscribeAll(func(_ context.Context, _ domain.Event) { seenAll++ })

	bus.Publish(context.Background(), domain.LedgerEntryPosted{EntryID: "e1", OccurredAt: time.Now()})
	bus.Publish(context.Background(), domain.ReconciliationConfirmed{ReconciliationID: "r1"})

	assert.Len(t, posted, 1)
	assert.Equal(t, "e1", posted[0].EntryID)
	assert.Equal(t, 2, seenAll, "catch-all handler should see every event")
}

func TestBusWithoutSubscribersIsSilent(t *testing.T) {
	bus := events.NewBus()
	assert.NotPanics(t, func() {
		bus.Publish(context.Background(), domain.ReconciliationConfirmed{})
	})
}
