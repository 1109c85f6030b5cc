package replica

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestFuture_Resolve(t *testing.T) {
	f := NewFuture()
	if f.State() != Pending {
		t.Fatalf("State() = %s, want pending", f.State())
	}

	if !f.Resolve(1) {
		t.Error("first Resolve should settle")
	}
	if f.Resolve(2) || f.Reject("x") {
		t.Error("later settlements should be ignored")
	}

	v, err := f.Await(context.Background())
	if err != nil || v != 1 {
		t.Errorf("Await() = %v, %v", v, err)
	}
	if f.State() != Fulfilled {
		t.Errorf("State() = %s, want fulfilled", f.State())
	}
}

func TestFuture_Reject(t *testing.T) {
	sentinel := errors.New("failed")
	if _, err := RejectedWith(sentinel).Await(context.Background()); !errors.Is(err, sentinel) {
		t.Errorf("Await() error = %v, want %v", err, sentinel)
	}

	_, err := RejectedWith("reason").Await(context.Background())
	var rej *RejectionError
	if !errors.As(err, &rej) || rej.Reason != "reason" {
		t.Errorf("Await() error = %v, want RejectionError", err)
	}
}

func TestFuture_ThenNeverInline(t *testing.T) {
	f := Resolved(1)
	returned := make(chan struct{})
	ran := make(chan any, 1)

	// An inline handler would block here forever.
	f.Then(func(v any) {
		<-returned
		ran <- v
	}, nil)
	close(returned)

	select {
	case v := <-ran:
		if v != 1 {
			t.Errorf("handler value = %v", v)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("handler never ran")
	}
}

func TestFuture_ThenPending(t *testing.T) {
	f := NewFuture()
	got := make(chan any, 2)
	f.Then(nil, func(r any) { got <- r })
	f.Then(nil, func(r any) { got <- r })

	f.Reject("nope")
	for i := 0; i < 2; i++ {
		select {
		case r := <-got:
			if r != "nope" {
				t.Errorf("reason = %v", r)
			}
		case <-time.After(5 * time.Second):
			t.Fatal("handler never ran")
		}
	}
}

func TestFuture_AwaitContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := NewFuture().Await(ctx); !errors.Is(err, context.Canceled) {
		t.Errorf("Await() error = %v, want context.Canceled", err)
	}
}

func TestFutureState_String(t *testing.T) {
	states := map[FutureState]string{Pending: "pending", Fulfilled: "fulfilled", Rejected: "rejected"}
	for s, want := range states {
		if s.String() != want {
			t.Errorf("String() = %q, want %q", s.String(), want)
		}
	}
}
