package txn

import (
	"context"
	"errors"
	"testing"
)

func TestHookRunner_FiresHooksAfterSuccess(t *testing.T) {
	t.Parallel()

	runner := NewHookRunner()
	var order []string

	err := runner.Run(context.Background(), func(ctx context.Context) error {
		OnCommit(ctx, func(context.Context) { order = append(order, "first") })
		OnCommit(ctx, func(context.Context) { order = append(order, "second") })
		order = append(order, "work")
		return nil
	})
	if err != nil {
		t.Fatalf("run: %v", err)
	}

	want := []string{"work", "first", "second"}
	if len(order) != len(want) {
		t.Fatalf("unexpected call order: %v", order)
	}
	for i := range want {
		if order[i] != want[i] {
			t.Fatalf("unexpected call order: got=%v want=%v", order, want)
		}
	}
}

func TestHookRunner_DropsHooksOnFailure(t *testing.T) {
	t.Parallel()

	runner := NewHookRunner()
	wantErr := errors.New("unit failed")
	fired := false

	err := runner.Run(context.Background(), func(ctx context.Context) error {
		OnCommit(ctx, func(context.Context) { fired = true })
		return wantErr
	})
	if !errors.Is(err, wantErr) {
		t.Fatalf("expected unit error, got %v", err)
	}
	if fired {
		t.Fatal("hooks must not fire when the unit fails")
	}
}

func TestOnCommit_RunsImmediatelyOutsideTransaction(t *testing.T) {
	t.Parallel()

	fired := false
	OnCommit(context.Background(), func(context.Context) { fired = true })
	if !fired {
		t.Fatal("without an enclosing unit the callback must run immediately")
	}
}
