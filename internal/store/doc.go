// Package store holds the console state and the pure reducers that evolve it.
//
// Reduce(state, action) returns the next State without mutating its input;
// action types it does not handle return the input unchanged. Store wraps
// Reduce with serialized dispatch: one reduction at a time, each followed by
// a synchronous notification of every subscriber, in subscription order.
//
// Subscribers must not call Dispatch synchronously from the notification;
// the effect runner dispatches from its task goroutines.
package store
