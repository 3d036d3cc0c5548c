package domain

import "context"

type contextKey string

// TokenContextKey carries the upstream bearer token through a request's
// context once the auth middleware has resolved it.
const TokenContextKey contextKey = "upstream_token"

// EnvelopeCodec is the wire framing contract for the e-courts backend.
// Outbound values are wrapped as randomIV(16 hex) + poolIndex(1 digit) +
// base64(ciphertext); inbound responses carry their full IV literally as the
// first 32 hex characters. The two inbound formats are not interchangeable
// and must not share a decode path.
type EnvelopeCodec interface {
	EncryptParams(params map[string]string) (string, error)
	EncryptToken(token string) (string, error)
	DecryptResponse(body string) (map[string]any, error)
}

// TokenIssuer obtains a fresh upstream bearer token. The token is opaque to
// this system; it is never parsed, only re-encrypted into request headers.
type TokenIssuer interface {
	FetchToken(ctx context.Context) (string, error)
}

// CaseFinder resolves case details by CNR, including the filing-versus-
// registered branch.
type CaseFinder interface {
	DetailsByCNR(ctx context.Context, token, cnr string) (map[string]any, error)
}

// CourtDirectory exposes the court reference-data and cause-list lookups.
type CourtDirectory interface {
	States(ctx context.Context, token string) (map[string]any, error)
	Districts(ctx context.Context, token, stateCode string) (map[string]any, error)
	CourtComplex(ctx context.Context, token, stateCode, districtCode string) (map[string]any, error)
	CourtNames(ctx context.Context, token, stateCode, districtCode, courtCode string) (map[string]any, error)
	CauseList(ctx context.Context, token string, query CauseListQuery) (map[string]any, error)
}
