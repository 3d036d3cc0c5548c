package ecourts_test

import (
	"context"
	"crypto/aes"
	"crypto/cipher"
	"encoding/base64"
	"encoding/hex"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ecourts/api/internal/core/domain"
	"ecourts/api/internal/infrastructure/ecourts"
	"ecourts/api/internal/infrastructure/envelope"
)

// encryptServerResponse fabricates a backend success body: literal IV hex
// followed by base64 ciphertext under the inbound key.
func encryptServerResponse(t *testing.T, v any) string {
	t.Helper()

	plaintext, err := json.Marshal(v)
	require.NoError(t, err)

	key, err := hex.DecodeString(envelope.DecryptionKeyHex)
	require.NoError(t, err)
	ivHex := "aabbccddeeff00112233445566778899"
	iv, err := hex.DecodeString(ivHex)
	require.NoError(t, err)

	padding := aes.BlockSize - len(plaintext)%aes.BlockSize
	padded := append([]byte{}, plaintext...)
	for i := 0; i < padding; i++ {
		padded = append(padded, byte(padding))
	}

	block, err := aes.NewCipher(key)
	require.NoError(t, err)
	ct := make([]byte, len(padded))
	cipher.NewCBCEncrypter(block, iv).CryptBlocks(ct, padded)

	return ivHex + base64.StdEncoding.EncodeToString(ct)
}

func newTestClient(t *testing.T, handler http.HandlerFunc) (*ecourts.Client, *httptest.Server) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	client := ecourts.NewClient(srv.URL, "f8a73f979cf3487d", envelope.New(), logger)
	return client, srv
}

func TestClient_Do_Success(t *testing.T) {
	codec := envelope.New()

	var gotPath, gotParams, gotAuth string
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotParams = r.URL.Query().Get("params")
		gotAuth = r.Header.Get("Authorization")
		io.WriteString(w, encryptServerResponse(t, map[string]any{"state": "Uttar Pradesh"}))
	})

	data, err := client.Do(context.Background(), ecourts.Request{
		Script:   "stateWebService.php",
		Resource: "state data",
		Params:   map[string]string{"action_code": "fillState"},
		Token:    "opaque-token",
	})
	require.NoError(t, err)
	assert.Equal(t, "Uttar Pradesh", data["state"])
	assert.Equal(t, "/stateWebService.php", gotPath)

	// The params query value is a decodable outbound envelope.
	params, err := codec.DecryptParams(gotParams)
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"action_code": "fillState"}, params)

	// The bearer token is envelope-encrypted, never sent in the clear.
	require.True(t, strings.HasPrefix(gotAuth, "Bearer "))
	encToken := strings.TrimPrefix(gotAuth, "Bearer ")
	assert.NotEqual(t, "opaque-token", encToken)

	plaintext, err := codec.DecryptRequest(encToken)
	require.NoError(t, err)
	var token string
	require.NoError(t, json.Unmarshal(plaintext, &token))
	assert.Equal(t, "opaque-token", token)
}

func TestClient_Do_NoTokenOmitsAuthorization(t *testing.T) {
	var gotAuth string
	var sawHeader bool
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		_, sawHeader = r.Header["Authorization"]
		io.WriteString(w, encryptServerResponse(t, map[string]any{"token": "t"}))
	})

	_, err := client.Do(context.Background(), ecourts.Request{
		Script:   "appReleaseWebService.php",
		Resource: "token",
		Params:   map[string]string{"version": "3.0"},
	})
	require.NoError(t, err)
	assert.Empty(t, gotAuth)
	assert.False(t, sawHeader)
}

func TestClient_Do_StatusClassification(t *testing.T) {
	cases := []struct {
		name   string
		status int
		check  func(t *testing.T, err error)
	}{
		{
			name:   "401 unauthorized",
			status: http.StatusUnauthorized,
			check: func(t *testing.T, err error) {
				var ue *domain.UnauthorizedError
				require.ErrorAs(t, err, &ue)
			},
		},
		{
			name:   "403 forbidden",
			status: http.StatusForbidden,
			check: func(t *testing.T, err error) {
				var ue *domain.UnauthorizedError
				require.ErrorAs(t, err, &ue)
			},
		},
		{
			name:   "500 request failure",
			status: http.StatusInternalServerError,
			check: func(t *testing.T, err error) {
				var re *domain.RequestError
				require.ErrorAs(t, err, &re)
				assert.Equal(t, http.StatusInternalServerError, re.Status)
			},
		},
		{
			name:   "400 request failure",
			status: http.StatusBadRequest,
			check: func(t *testing.T, err error) {
				var re *domain.RequestError
				require.ErrorAs(t, err, &re)
				assert.Equal(t, http.StatusBadRequest, re.Status)
			},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tc.status)
				io.WriteString(w, "upstream says no")
			})

			_, err := client.Do(context.Background(), ecourts.Request{
				Script:   "caseHistoryWebService.php",
				Resource: "case details",
				Params:   map[string]string{"cinum": "X"},
				Token:    "tok",
			})
			require.Error(t, err)
			tc.check(t, err)
		})
	}
}

// Documented backend quirk: logical failure arrives as plaintext JSON under
// HTTP 200. Any valid-JSON body means not-found, regardless of content, and
// the decrypt path must never be attempted.
func TestClient_Do_PlaintextJSONMeansNotFound(t *testing.T) {
	bodies := []string{
		`{"error":"no data"}`,
		`{}`,
		`[]`,
		`"nothing here"`,
	}

	for _, body := range bodies {
		t.Run(body, func(t *testing.T) {
			client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				io.WriteString(w, body)
			})

			_, err := client.Do(context.Background(), ecourts.Request{
				Script:   "listOfCasesWebService.php",
				Resource: "case list",
				Params:   map[string]string{"cino": "X"},
				Token:    "tok",
			})

			var nfe *domain.NotFoundError
			require.ErrorAs(t, err, &nfe)
			assert.Equal(t, "case list", nfe.Resource)
		})
	}
}

func TestClient_Do_UndecryptableBody(t *testing.T) {
	const body = "this is neither JSON nor a valid envelope"
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, body)
	})

	_, err := client.Do(context.Background(), ecourts.Request{
		Script:   "cases_new.php",
		Resource: "cause list",
		Params:   map[string]string{"causelist_date": "01-01-2020"},
		Token:    "tok",
	})

	var de *domain.DecryptError
	require.ErrorAs(t, err, &de)
	assert.Equal(t, http.StatusOK, de.Status)
	assert.Equal(t, body, de.Body)
}

func TestClient_UID(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	client := ecourts.NewClient("http://example.invalid", "f8a73f979cf3487d", envelope.New(), logger)
	assert.Equal(t, "f8a73f979cf3487d:in.gov.ecourts.eCourtsServices", client.UID())
}
