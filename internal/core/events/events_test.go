package events_test

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"sync"
	"testing"

	"github.com/frahmantamala/restaurant-ledger/internal/core/events"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

func TestEvents(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Events Suite")
}

var _ = Describe("EventBus", func() {
	var (
		bus  *events.EventBus
		logs *bytes.Buffer
	)

	BeforeEach(func() {
		logs = &bytes.Buffer{}
		bus = events.NewEventBus(slog.New(slog.NewJSONHandler(logs, nil)))
	})

	It("should deliver to typed and wildcard handlers", func() {
		var (
			mu   sync.Mutex
			seen []string
		)
		record := func(tag string) events.Handler {
			return func(_ context.Context, e events.Event) error {
				mu.Lock()
				defer mu.Unlock()
				seen = append(seen, tag+":"+e.EventType())
				return nil
			}
		}
		bus.Subscribe("income.created", record("typed"))
		bus.Subscribe(events.Wildcard, record("all"))

		Expect(bus.Publish(context.Background(), events.RecordChanged("income", events.ActionCreated, 1, nil))).To(Succeed())
		Expect(bus.Publish(context.Background(), events.RecordChanged("expense", events.ActionDeleted, 2, nil))).To(Succeed())
		bus.Wait()

		Expect(seen).To(ConsistOf("typed:income.created", "all:income.created", "all:expense.deleted"))
	})

	It("should run handlers after the request context ends", func() {
		ctx, cancel := context.WithCancel(context.Background())
		var handlerErr error
		bus.Subscribe(events.Wildcard, func(ctx context.Context, _ events.Event) error {
			handlerErr = ctx.Err()
			return nil
		})

		cancel()
		Expect(bus.Publish(ctx, events.RecordChanged("purchase", events.ActionUpdated, 3, nil))).To(Succeed())
		bus.Wait()
		Expect(handlerErr).NotTo(HaveOccurred())
	})

	It("should stop PublishSync at the first failing handler", func() {
		calls := 0
		bus.Subscribe("income.updated", func(context.Context, events.Event) error {
			calls++
			return errors.New("handler down")
		})
		bus.Subscribe("income.updated", func(context.Context, events.Event) error {
			calls++
			return nil
		})

		err := bus.PublishSync(context.Background(), events.RecordChanged("income", events.ActionUpdated, 4, nil))
		Expect(err).To(MatchError(ContainSubstring("handler down")))
		Expect(calls).To(Equal(1))
	})

	It("should log audit lines for every mutation", func() {
		bus.Subscribe(events.Wildcard, events.AuditLogger(slog.New(slog.NewJSONHandler(logs, nil))))

		Expect(bus.PublishSync(context.Background(), events.RecordChanged("expense", events.ActionCreated, 9, map[string]interface{}{
			"category": "Produce",
		}))).To(Succeed())

		Expect(logs.String()).To(ContainSubstring(`"msg":"record changed"`))
		Expect(logs.String()).To(ContainSubstring(`"event_type":"expense.created"`))
		Expect(logs.String()).To(ContainSubstring(`"record_id":9`))
	})
})

var _ = Describe("RecordChanged", func() {
	It("should type the event entity.action and carry the record id", func() {
		e := events.RecordChanged("purchase", events.ActionDeleted, 12, map[string]interface{}{"expense_id": int64(3)})

		Expect(e.EventType()).To(Equal("purchase.deleted"))
		Expect(e.EventID()).NotTo(BeEmpty())
		Expect(e.OccurredAt()).NotTo(BeZero())
		Expect(e.Data).To(HaveKeyWithValue("record_id", int64(12)))
		Expect(e.Data).To(HaveKeyWithValue("expense_id", int64(3)))
	})
})

type failingPublisher struct{}

func (failingPublisher) Publish(context.Context, events.Event) error {
	return errors.New("bus closed")
}

var _ = Describe("Notify", func() {
	It("should do nothing without a publisher", func() {
		Expect(func() {
			events.Notify(context.Background(), nil, nil, events.RecordChanged("income", events.ActionCreated, 1, nil))
		}).NotTo(Panic())
	})

	It("should log a publish failure instead of returning it", func() {
		var logs bytes.Buffer
		events.Notify(context.Background(), failingPublisher{}, slog.New(slog.NewJSONHandler(&logs, nil)),
			events.RecordChanged("income", events.ActionCreated, 1, nil))

		Expect(logs.String()).To(ContainSubstring("failed to publish record event"))
	})
})
