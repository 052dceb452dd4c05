// Package admin runs console operations against the store: it gates each
// operation on the session's permissions, dispatches the request action,
// waits for the effect runner and returns the response payload.
//
// Both the one-shot commands and the interactive console go through a
// Service, so permission checks and error classification are the same
// everywhere.
package admin

import (
	"context"
	"fmt"
	"sync"

	"jansctl/internal/actions"
	"jansctl/internal/api"
	"jansctl/internal/cli"
	"jansctl/internal/session"
	"jansctl/internal/store"
	"jansctl/internal/views"
	"jansctl/pkg/logging"
)

// Waiter blocks until dispatched requests have been answered.
// *effects.Runner implements it.
type Waiter interface {
	Wait(ctx context.Context) error
}

// Service performs operations on behalf of a session.
type Service struct {
	store  *store.Store
	waiter Waiter
}

// New creates a service over st. w is waited on after every dispatch.
func New(st *store.Store, w Waiter) *Service {
	return &Service{store: st, waiter: w}
}

// State returns the current store state.
func (s *Service) State() store.State {
	return s.store.State()
}

// Store returns the underlying store.
func (s *Service) Store() *store.Store {
	return s.store
}

// currentSession selects the session from the latest state.
func (s *Service) currentSession() session.Session {
	return store.Select(s.store, func(st store.State) session.Session { return st.Auth.Session })
}

func (s *Service) server() string {
	return s.currentSession().Server
}

// authorize fails when no API token is held or cap is not granted.
func (s *Service) authorize(operation string, cap session.Capability) error {
	sess := s.currentSession()
	if !sess.IsAuthenticated() {
		return &cli.AuthRequiredError{Server: sess.Server}
	}
	if cap != "" && !sess.Can(cap) {
		return &cli.PermissionDeniedError{Operation: operation, Capability: cap}
	}
	return nil
}

// request dispatches act and returns its response once the runner is idle.
// The response is captured from the notification stream, so an older error
// left in the store is never mistaken for this request's outcome.
func (s *Service) request(ctx context.Context, act actions.Action, operation string) (actions.Response, error) {
	want := act.Type().ResponseType()
	if want == "" {
		return nil, fmt.Errorf("%s is not a request", act.Type())
	}

	var (
		mu  sync.Mutex
		got actions.Response
	)
	unsubscribe := s.store.Subscribe(func(a actions.Action, _ store.State) {
		if a.Type() != want {
			return
		}
		if resp, ok := a.(actions.Response); ok {
			mu.Lock()
			got = resp
			mu.Unlock()
		}
	})
	defer unsubscribe()

	logging.Debug("Console", "Dispatching %s", act.Type())
	s.store.Dispatch(act)
	if err := s.waiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("waiting for %s: %w", operation, err)
	}

	mu.Lock()
	defer mu.Unlock()
	if got == nil {
		return nil, fmt.Errorf("%s: no response received", operation)
	}
	if err := got.Failure(); err != nil {
		return got, cli.Classify(err, s.server(), operation)
	}
	return got, nil
}

// Refresh fetches every collection the session can read.
func (s *Service) Refresh(ctx context.Context) error {
	if err := s.authorize("refresh", ""); err != nil {
		return err
	}
	for _, act := range views.RefreshActions(s.store.State()) {
		s.store.Dispatch(act)
	}
	return s.waiter.Wait(ctx)
}

// RenewToken mints a new API access token from the stored identity token.
// It is the manual step after a request was rejected with 401.
func (s *Service) RenewToken(ctx context.Context) error {
	sess := s.currentSession()
	if sess.IdentityToken.IsEmpty() {
		return &cli.AuthRequiredError{Server: sess.Server}
	}
	_, err := s.request(ctx, actions.GetAPIAccessToken{IdentityToken: sess.IdentityToken}, "renew API token")
	if err != nil {
		return &cli.AuthFailedError{Server: sess.Server, Reason: err}
	}
	return nil
}

// readOperation names the read of kind for error messages.
func readOperation(kind api.Kind) string {
	return "list " + kind.Plural()
}

// controlCapability returns the capability of the named control of kind.
func controlCapability(kind api.Kind, name string) session.Capability {
	for _, c := range views.ControlsFor(kind) {
		if c.Name == name {
			return c.Capability
		}
	}
	return ""
}
