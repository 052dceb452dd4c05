package effects

import (
	"context"
	"sync"

	"jansctl/internal/actions"
	"jansctl/internal/store"
	"jansctl/pkg/logging"
)

// Task is the per-invocation environment of a handler.
type Task struct {
	// Ctx is cancelled when the task is superseded or the runner stops.
	Ctx context.Context

	// Auth is the auth state snapshot taken when the request was reduced.
	Auth store.AuthState

	put func(actions.Action) bool
}

// Put dispatches act unless the task has been superseded. It reports
// whether the action was reduced.
func (t *Task) Put(act actions.Action) bool {
	return t.put(act)
}

// Handler performs the side effect of one request type.
type Handler func(t *Task, act actions.Action)

type inflight struct {
	cancel context.CancelFunc
}

// Runner dispatches request actions to their handlers.
type Runner struct {
	store    *store.Store
	handlers map[actions.Type]Handler

	mu      sync.Mutex
	tasks   map[actions.Type]*inflight
	running int
	idle    chan struct{}

	ctx         context.Context
	cancel      context.CancelFunc
	unsubscribe func()
}

// NewRunner creates a runner with the handlers built from deps. Call Start
// to begin intercepting dispatched requests.
func NewRunner(st *store.Store, deps Deps) *Runner {
	ctx, cancel := context.WithCancel(context.Background())
	idle := make(chan struct{})
	close(idle)

	r := &Runner{
		store:    st,
		handlers: make(map[actions.Type]Handler),
		tasks:    make(map[actions.Type]*inflight),
		idle:     idle,
		ctx:      ctx,
		cancel:   cancel,
	}
	registerHandlers(r, deps)
	return r
}

// Handle registers h for request type typ, replacing any existing handler.
func (r *Runner) Handle(typ actions.Type, h Handler) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.handlers[typ] = h
}

// Start subscribes the runner to the store.
func (r *Runner) Start() {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.unsubscribe == nil {
		r.unsubscribe = r.store.Subscribe(r.onAction)
	}
}

// Stop unsubscribes and cancels every in-flight task.
func (r *Runner) Stop() {
	r.mu.Lock()
	unsubscribe := r.unsubscribe
	r.unsubscribe = nil
	r.mu.Unlock()

	if unsubscribe != nil {
		unsubscribe()
	}
	r.cancel()
}

// Wait blocks until no task is in flight or ctx is done. Tasks started by
// other tasks, such as the token request after a 401, are waited for too.
func (r *Runner) Wait(ctx context.Context) error {
	for {
		r.mu.Lock()
		if r.running == 0 {
			r.mu.Unlock()
			return nil
		}
		idle := r.idle
		r.mu.Unlock()

		select {
		case <-idle:
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}

// InFlight returns the number of running tasks.
func (r *Runner) InFlight() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.running
}

// onAction runs inside the store's serialized dispatch.
func (r *Runner) onAction(act actions.Action, next store.State) {
	typ := act.Type()

	r.mu.Lock()
	handler, ok := r.handlers[typ]
	if !ok {
		r.mu.Unlock()
		return
	}

	if prev, busy := r.tasks[typ]; busy {
		logging.Debug("Effects", "Superseding in-flight %s", typ)
		prev.cancel()
	}

	ctx, cancel := context.WithCancel(r.ctx)
	task := &inflight{cancel: cancel}
	r.tasks[typ] = task

	if r.running == 0 {
		r.idle = make(chan struct{})
	}
	r.running++
	r.mu.Unlock()

	t := &Task{
		Ctx:  ctx,
		Auth: next.Auth,
		put: func(a actions.Action) bool {
			return r.store.DispatchIf(func() bool {
				return ctx.Err() == nil && r.isCurrent(typ, task)
			}, a)
		},
	}

	go r.run(typ, task, t, handler, act)
}

func (r *Runner) run(typ actions.Type, task *inflight, t *Task, handler Handler, act actions.Action) {
	defer func() {
		r.mu.Lock()
		if r.tasks[typ] == task {
			delete(r.tasks, typ)
		}
		task.cancel()
		r.running--
		if r.running == 0 {
			close(r.idle)
		}
		r.mu.Unlock()
	}()

	logging.Debug("Effects", "Running %s", typ)
	handler(t, act)
}

func (r *Runner) isCurrent(typ actions.Type, task *inflight) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.tasks[typ] == task
}
