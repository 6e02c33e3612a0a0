package txn

import "context"

// Runner executes fn as one unit of work. Callbacks registered through
// OnCommit during fn run only after fn returns without error, so
// observers only ever see committed data and no store transaction is
// held open while they run.
type Runner interface {
	Run(ctx context.Context, fn func(ctx context.Context) error) error
}

// HookRunner is the default Runner. The repositories scope their own
// store transactions; the runner's job is to hold back OnCommit
// callbacks until the whole unit succeeded.
type HookRunner struct{}

func NewHookRunner() *HookRunner {
	return &HookRunner{}
}

func (r *HookRunner) Run(ctx context.Context, fn func(ctx context.Context) error) error {
	hookCtx, hooks := WithHooks(ctx)
	if err := fn(hookCtx); err != nil {
		return err
	}
	hooks.Fire(ctx)
	return nil
}

type hookKey struct{}

// WithHooks returns a context carrying a fresh post-commit hook list.
// Runner implementations install it around fn.
func WithHooks(ctx context.Context) (context.Context, *Hooks) {
	h := &Hooks{}
	return context.WithValue(ctx, hookKey{}, h), h
}

// Hooks collects post-commit callbacks for one transaction.
type Hooks struct {
	fns []func(context.Context)
}

func (h *Hooks) add(fn func(context.Context)) {
	h.fns = append(h.fns, fn)
}

// Fire runs the collected callbacks in registration order.
func (h *Hooks) Fire(ctx context.Context) {
	for _, fn := range h.fns {
		fn(ctx)
	}
}

// OnCommit registers fn to run after the enclosing transaction commits.
// Outside a transaction fn runs immediately; the caller is then the
// transaction boundary.
func OnCommit(ctx context.Context, fn func(context.Context)) {
	if fn == nil {
		return
	}
	if h, ok := ctx.Value(hookKey{}).(*Hooks); ok && h != nil {
		h.add(fn)
		return
	}
	fn(ctx)
}
