package envelope_test

import (
	"crypto/aes"
	"crypto/cipher"
	"encoding/base64"
	"encoding/hex"
	"encoding/json"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ecourts/api/internal/infrastructure/envelope"
)

// encryptServerResponse builds a body the way the backend does: literal IV
// hex followed by base64 ciphertext under the inbound key.
func encryptServerResponse(t *testing.T, v any) string {
	t.Helper()

	plaintext, err := json.Marshal(v)
	require.NoError(t, err)

	key, err := hex.DecodeString(envelope.DecryptionKeyHex)
	require.NoError(t, err)
	ivHex := "000102030405060708090a0b0c0d0e0f"
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

func TestCodec_Params_RoundTrip(t *testing.T) {
	codec := envelope.New()
	params := map[string]string{
		"version": "3.0",
		"uid":     "ABC:pkg",
	}

	enc, err := codec.EncryptParams(params)
	require.NoError(t, err)

	got, err := codec.DecryptParams(enc)
	require.NoError(t, err)
	assert.Equal(t, params, got)
}

func TestCodec_Token_RoundTrip(t *testing.T) {
	codec := envelope.New()
	token := "eyJhbGciOiJIUzI1NiJ9.opaque.signature"

	enc, err := codec.EncryptToken(token)
	require.NoError(t, err)

	plaintext, err := codec.DecryptRequest(enc)
	require.NoError(t, err)

	var got string
	require.NoError(t, json.Unmarshal(plaintext, &got))
	assert.Equal(t, token, got)
}

func TestCodec_Envelope_Shape(t *testing.T) {
	codec := envelope.New()

	enc, err := codec.EncryptParams(map[string]string{"cino": "UPBL060021142023"})
	require.NoError(t, err)
	require.Greater(t, len(enc), 17)

	// First 16 chars: lowercase hex.
	_, err = hex.DecodeString(enc[:16])
	assert.NoError(t, err, "random IV half must be hex")

	// Single decimal digit indexing the pool.
	idx, err := strconv.Atoi(enc[16:17])
	require.NoError(t, err)
	assert.GreaterOrEqual(t, idx, 0)
	assert.Less(t, idx, len(envelope.IVPool))

	// Remainder: base64 of whole AES blocks.
	ct, err := base64.StdEncoding.DecodeString(enc[17:])
	require.NoError(t, err)
	assert.Zero(t, len(ct)%aes.BlockSize)
}

func TestCodec_FreshIVPerCall(t *testing.T) {
	codec := envelope.New()
	params := map[string]string{"state_code": "1"}

	seen := make(map[string]bool)
	for i := 0; i < 50; i++ {
		enc, err := codec.EncryptParams(params)
		require.NoError(t, err)
		if seen[enc] {
			t.Fatalf("identical envelope produced twice at iteration %d: IV was reused", i)
		}
		seen[enc] = true
	}
}

func TestCodec_DecryptResponse(t *testing.T) {
	codec := envelope.New()
	body := encryptServerResponse(t, map[string]any{
		"token":  "abc123",
		"status": "ok",
	})

	got, err := codec.DecryptResponse(body)
	require.NoError(t, err)
	assert.Equal(t, "abc123", got["token"])
	assert.Equal(t, "ok", got["status"])
}

func TestCodec_DecryptResponse_TrimsWhitespace(t *testing.T) {
	codec := envelope.New()
	body := "\n  " + encryptServerResponse(t, map[string]any{"k": "v"}) + "  \n"

	got, err := codec.DecryptResponse(body)
	require.NoError(t, err)
	assert.Equal(t, "v", got["k"])
}

// Every decode failure collapses into ErrDecrypt; the individual steps are
// not distinguishable from the wire format.
func TestCodec_DecryptResponse_UniformFailure(t *testing.T) {
	codec := envelope.New()

	cases := map[string]string{
		"too short":       "abc",
		"bad IV hex":      "zz0102030405060708090a0b0c0d0e0f" + base64.StdEncoding.EncodeToString(make([]byte, 16)),
		"bad base64":      "000102030405060708090a0b0c0d0e0f!!!not-base64!!!",
		"partial block":   "000102030405060708090a0b0c0d0e0f" + base64.StdEncoding.EncodeToString([]byte("short")),
		"random garbage":  "000102030405060708090a0b0c0d0e0f" + base64.StdEncoding.EncodeToString(make([]byte, 32)),
	}

	for name, body := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := codec.DecryptResponse(body)
			require.Error(t, err)
			assert.ErrorIs(t, err, envelope.ErrDecrypt)
		})
	}
}

// Guard against envelope/JSON format collisions: a server-encoded success
// body must never itself parse as JSON, or it would be misread as the
// plaintext "no data" signal. Boundary payloads included.
func TestServerEnvelope_NeverValidJSON(t *testing.T) {
	payloads := []any{
		map[string]any{},
		map[string]any{"error": "no data"},
		map[string]any{"token": "abc"},
		[]any{},
	}

	for _, p := range payloads {
		body := encryptServerResponse(t, p)
		assert.False(t, json.Valid([]byte(body)), "envelope for %v must not be valid JSON", p)
	}
}

func TestCodec_DecryptRequest_RejectsResponseFormat(t *testing.T) {
	// A server-encoded body must not decode through the self-decode path:
	// its 17th character is mid-IV hex, not a pool index over ciphertext.
	codec := envelope.New()
	body := encryptServerResponse(t, map[string]any{"k": "v"})

	_, err := codec.DecryptRequest(body)
	assert.ErrorIs(t, err, envelope.ErrDecrypt)
}

func TestCodec_DecryptRequest_InvalidPoolIndex(t *testing.T) {
	codec := envelope.New()

	enc, err := codec.EncryptParams(map[string]string{"k": "v"})
	require.NoError(t, err)

	// Overwrite the index digit with one past the pool.
	tampered := enc[:16] + "9" + enc[17:]
	_, err = codec.DecryptRequest(tampered)
	assert.ErrorIs(t, err, envelope.ErrDecrypt)
}
