// Package effects runs the side effects behind request actions.
//
// A Runner subscribes to the store and owns one Handler per request type.
// When a request is reduced, the runner starts a task for it with a snapshot
// of the auth state. Tasks are latest-wins per type: a new request cancels
// the in-flight task of the same type, and anything a superseded task tries
// to dispatch afterwards is dropped before it reaches the reducers.
//
// Handlers never return errors. A failed API call becomes the rejected
// response action; when the failure is a 401 the handler additionally
// dispatches exactly one GET_API_ACCESS_TOKEN carrying the stored identity
// token. The failed request is not retried.
//
// The auth chain is:
//
//	GET_OAUTH2_ACCESS_TOKEN -> USERINFO_REQUEST -> GET_API_ACCESS_TOKEN
package effects
