// Package api is the client for the newsdigest REST backend.
//
// # Overview
//
// Client is the transport-agnostic contract used by the session store and
// the page services. HTTPClient implements it over JSON/HTTP: every request
// carries an X-Request-ID and, when a token is available, an
// "Authorization: Bearer <token>" header.
//
// # Error Handling
//
// Non-2xx responses become *Error values holding the status code and the
// server-provided detail message. They match the sentinels below with
// errors.Is:
//
//   - ErrUnauthorized      401 responses
//   - ErrAlreadyRegistered 409 responses, or a detail saying the account exists
//   - ErrNotFound          404 responses
//
// Transport failures wrap ErrUnavailable. Requests are never retried.
package api
