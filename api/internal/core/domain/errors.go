package domain

import "fmt"

// The e-courts backend reports outcomes through transport-level signals
// rather than structured error bodies: 401/403 for rejected tokens, plaintext
// JSON under HTTP 200 for "no data", and ciphertext under HTTP 200 for
// success. These four kinds are the complete taxonomy; callers must be able
// to tell them apart with errors.As.

// UnauthorizedError reports an upstream 401 or 403. Multi-step lookups must
// propagate it immediately without trying an alternate branch.
type UnauthorizedError struct {
	Body string
}

func (e *UnauthorizedError) Error() string {
	return fmt.Sprintf("request unauthorised: %s", e.Body)
}

// RequestError reports a non-200 upstream status, or a claimed-success
// response that needed fallback messaging (the cause-list retrieval window
// is the one known case).
type RequestError struct {
	Status  int
	Body    string
	Message string
}

func (e *RequestError) Error() string {
	msg := e.Message
	if msg == "" {
		msg = "upstream request failed"
	}
	return fmt.Sprintf("%s: %d: %s", msg, e.Status, e.Body)
}

// NotFoundError reports the backend's "no data" signal: a plaintext JSON
// body under HTTP 200.
type NotFoundError struct {
	Resource string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("no %s found", e.Resource)
}

// DecryptError collapses every response decode failure (IV parsing, base64,
// AES, padding, JSON) into a single kind. The wire format carries no
// self-describing error detail, so the steps are deliberately not
// distinguished.
type DecryptError struct {
	Status int
	Body   string
	Err    error
}

func (e *DecryptError) Error() string {
	return fmt.Sprintf("decryption failed: %v", e.Err)
}

func (e *DecryptError) Unwrap() error { return e.Err }
