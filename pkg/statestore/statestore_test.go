package statestore

import (
	"context"
	"testing"
	"time"
)

func TestIssueAndRedeem(t *testing.T) {
	store := New("", "", "")

	state, err := store.Issue(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if state == "" {
		t.Fatal("expected a non-empty state")
	}

	ok, err := store.Redeem(context.Background(), state)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !ok {
		t.Error("freshly issued state must redeem")
	}
}

func TestRedeemIsSingleUse(t *testing.T) {
	store := New("", "", "")

	state, _ := store.Issue(context.Background())
	if ok, _ := store.Redeem(context.Background(), state); !ok {
		t.Fatal("first redeem must succeed")
	}
	if ok, _ := store.Redeem(context.Background(), state); ok {
		t.Error("second redeem must fail")
	}
}

func TestRedeemUnknownOrEmptyState(t *testing.T) {
	store := New("", "", "")

	if ok, _ := store.Redeem(context.Background(), "never-issued"); ok {
		t.Error("unknown state must not redeem")
	}
	if ok, _ := store.Redeem(context.Background(), ""); ok {
		t.Error("empty state must not redeem")
	}
}

func TestExpiredStateDoesNotRedeem(t *testing.T) {
	store := New("", "", "")

	state, _ := store.Issue(context.Background())
	store.mu.Lock()
	store.states[state] = time.Now().Add(-time.Second)
	store.mu.Unlock()

	if ok, _ := store.Redeem(context.Background(), state); ok {
		t.Error("expired state must not redeem")
	}
}
