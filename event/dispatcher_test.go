package event

import (
	"context"
	"errors"
	"testing"

	"github.com/hearthstack/hearth/logging"
)

func TestFactoryEventNames(t *testing.T) {
	f := NewFactory()

	cases := map[string]Event{
		KernelBooted:     f.KernelBooted(),
		BeforeKernelRun:  f.BeforeKernelRun(),
		KernelTerminated: f.KernelTerminated(),
	}
	for want, e := range cases {
		if e.Name != want {
			t.Errorf("Expected event name %s, got %s", want, e.Name)
		}
		if e.OccurredAt.IsZero() {
			t.Errorf("Event %s should carry a timestamp", want)
		}
	}

	a, b := f.KernelBooted(), f.KernelBooted()
	if a.ID == b.ID {
		t.Error("Events should have distinct identities")
	}
}

func TestDispatchOrder(t *testing.T) {
	bus := NewBus(logging.NewNop())

	var order []int
	bus.Subscribe(KernelBooted, func(ctx context.Context, e Event) error {
		order = append(order, 1)
		return nil
	})
	bus.Subscribe(KernelBooted, func(ctx context.Context, e Event) error {
		order = append(order, 2)
		return nil
	})

	if err := bus.Dispatch(context.Background(), NewFactory().KernelBooted()); err != nil {
		t.Fatalf("Dispatch failed: %v", err)
	}
	if len(order) != 2 || order[0] != 1 || order[1] != 2 {
		t.Errorf("Expected handlers in subscription order, got %v", order)
	}
}

func TestDispatchStopsOnError(t *testing.T) {
	bus := NewBus(nil)
	boom := errors.New("boom")

	ran := false
	bus.Subscribe(KernelTerminated, func(ctx context.Context, e Event) error { return boom })
	bus.Subscribe(KernelTerminated, func(ctx context.Context, e Event) error {
		ran = true
		return nil
	})

	err := bus.Dispatch(context.Background(), NewFactory().KernelTerminated())
	if !errors.Is(err, boom) {
		t.Errorf("Expected handler error, got %v", err)
	}
	if ran {
		t.Error("Delivery should stop at the first handler error")
	}
}

func TestDispatchNoHandlers(t *testing.T) {
	bus := NewBus(nil)
	if err := bus.Dispatch(context.Background(), NewFactory().BeforeKernelRun()); err != nil {
		t.Errorf("Dispatch without handlers should succeed, got %v", err)
	}
}
