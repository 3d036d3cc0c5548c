// Package envelope implements the AES-CBC wire framing the e-courts mobile
// backend speaks. Outbound values are encrypted under a fixed key with an IV
// assembled from a shared pool prefix plus fresh random hex; responses arrive
// under a different fixed key with their IV transmitted literally. The keys,
// the IV pool, and the framing layout are part of the wire-compatibility
// contract and must be preserved byte-for-byte.
package envelope

import (
	"crypto/aes"
	"crypto/cipher"
	crand "crypto/rand"
	"encoding/base64"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"math/rand"
	"strconv"
	"strings"
)

// Fixed key material shared with the backend. Outbound requests (and the
// bearer token) are encrypted under EncryptionKeyHex; response bodies are
// decrypted under DecryptionKeyHex.
const (
	EncryptionKeyHex = "4D6251655468576D5A7134743677397A"
	DecryptionKeyHex = "3273357638782F413F4428472B4B6250"
)

// IVPool holds the six shared IV prefixes. The single digit after the random
// half of an outbound envelope indexes this pool.
var IVPool = [6]string{
	"556A586E32723575",
	"34743777217A2543",
	"413F4428472B4B62",
	"48404D635166546A",
	"614E645267556B58",
	"655368566D597133",
}

// ErrDecrypt is the single failure condition for decoding. The format carries
// no self-describing error detail, so IV, base64, AES, padding, and JSON
// failures are deliberately not distinguished.
var ErrDecrypt = errors.New("decryption failed")

// Codec encodes requests and decodes responses. It is stateless and safe for
// concurrent use; every call draws a fresh IV.
type Codec struct {
	encKey []byte
	decKey []byte
}

func New() *Codec {
	return &Codec{
		encKey: mustHex(EncryptionKeyHex),
		decKey: mustHex(DecryptionKeyHex),
	}
}

// EncryptParams wraps a request parameter mapping into an outbound envelope.
func (c *Codec) EncryptParams(params map[string]string) (string, error) {
	return c.encrypt(params)
}

// EncryptToken wraps the bearer token string into the same envelope format
// used for parameters. The token itself is opaque and never inspected.
func (c *Codec) EncryptToken(token string) (string, error) {
	return c.encrypt(token)
}

func (c *Codec) encrypt(v any) (string, error) {
	plaintext, err := json.Marshal(v)
	if err != nil {
		return "", fmt.Errorf("envelope: encode payload: %w", err)
	}
	randomHex, err := randomIVHex()
	if err != nil {
		return "", fmt.Errorf("envelope: generate IV: %w", err)
	}
	return c.encryptWith(plaintext, rand.Intn(len(IVPool)), randomHex)
}

// encryptWith is the deterministic core of encryption: fixing the pool index
// and the random half fixes the output.
func (c *Codec) encryptWith(plaintext []byte, poolIndex int, randomHex string) (string, error) {
	iv, err := hex.DecodeString(IVPool[poolIndex] + randomHex)
	if err != nil {
		return "", fmt.Errorf("envelope: assemble IV: %w", err)
	}

	block, err := aes.NewCipher(c.encKey)
	if err != nil {
		return "", fmt.Errorf("envelope: %w", err)
	}

	padded := pkcs7Pad(plaintext, aes.BlockSize)
	ct := make([]byte, len(padded))
	cipher.NewCBCEncrypter(block, iv).CryptBlocks(ct, padded)

	return randomHex + strconv.Itoa(poolIndex) + base64.StdEncoding.EncodeToString(ct), nil
}

// DecryptResponse decodes a server-encrypted body: the first 32 characters
// are the literal IV hex, the remainder is base64 ciphertext under the
// inbound key. Every failure wraps ErrDecrypt.
func (c *Codec) DecryptResponse(body string) (map[string]any, error) {
	body = strings.TrimSpace(body)
	if len(body) < 32 {
		return nil, fmt.Errorf("%w: body shorter than IV", ErrDecrypt)
	}

	iv, err := hex.DecodeString(body[:32])
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDecrypt, err)
	}

	plaintext, err := c.decrypt(c.decKey, iv, body[32:])
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDecrypt, err)
	}

	var data map[string]any
	if err := json.Unmarshal(plaintext, &data); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDecrypt, err)
	}
	return data, nil
}

// DecryptRequest reverses EncryptParams/EncryptToken: the first 16 characters
// are the random IV half, the next digit indexes the pool, the remainder is
// base64 ciphertext under the outbound key. This self-decode mode exists for
// validating the outbound format in isolation; it is a distinct operation
// from DecryptResponse and the two must never share a path.
func (c *Codec) DecryptRequest(envelope string) ([]byte, error) {
	envelope = strings.TrimSpace(envelope)
	if len(envelope) < 17 {
		return nil, fmt.Errorf("%w: envelope shorter than IV and index", ErrDecrypt)
	}

	poolIndex, err := strconv.Atoi(envelope[16:17])
	if err != nil || poolIndex < 0 || poolIndex >= len(IVPool) {
		return nil, fmt.Errorf("%w: invalid pool index %q", ErrDecrypt, envelope[16:17])
	}

	iv, err := hex.DecodeString(IVPool[poolIndex] + envelope[:16])
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDecrypt, err)
	}

	plaintext, err := c.decrypt(c.encKey, iv, envelope[17:])
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDecrypt, err)
	}
	if !json.Valid(plaintext) {
		return nil, fmt.Errorf("%w: plaintext is not JSON", ErrDecrypt)
	}
	return plaintext, nil
}

// DecryptParams decodes a client-encrypted parameter envelope back into its
// mapping.
func (c *Codec) DecryptParams(envelope string) (map[string]string, error) {
	plaintext, err := c.DecryptRequest(envelope)
	if err != nil {
		return nil, err
	}
	var params map[string]string
	if err := json.Unmarshal(plaintext, &params); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDecrypt, err)
	}
	return params, nil
}

func (c *Codec) decrypt(key, iv []byte, ctBase64 string) ([]byte, error) {
	ct, err := base64.StdEncoding.DecodeString(ctBase64)
	if err != nil {
		return nil, err
	}
	if len(ct) == 0 || len(ct)%aes.BlockSize != 0 {
		return nil, fmt.Errorf("ciphertext length %d not a multiple of block size", len(ct))
	}

	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, err
	}

	plaintext := make([]byte, len(ct))
	cipher.NewCBCDecrypter(block, iv).CryptBlocks(plaintext, ct)

	return pkcs7Unpad(plaintext, aes.BlockSize)
}

// randomIVHex returns 16 fresh hex characters (8 random bytes). This half of
// the IV is framing, not a security boundary, but it must never be cached or
// reused across calls: IV reuse under a fixed CBC key is a hazard regardless.
func randomIVHex() (string, error) {
	b := make([]byte, 8)
	if _, err := crand.Read(b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}

func pkcs7Pad(data []byte, blockSize int) []byte {
	padding := blockSize - len(data)%blockSize
	padded := make([]byte, len(data)+padding)
	copy(padded, data)
	for i := len(data); i < len(padded); i++ {
		padded[i] = byte(padding)
	}
	return padded
}

func pkcs7Unpad(data []byte, blockSize int) ([]byte, error) {
	if len(data) == 0 {
		return nil, errors.New("empty plaintext")
	}
	padding := int(data[len(data)-1])
	if padding == 0 || padding > blockSize || padding > len(data) {
		return nil, errors.New("invalid padding")
	}
	for i := len(data) - padding; i < len(data); i++ {
		if data[i] != byte(padding) {
			return nil, errors.New("invalid padding")
		}
	}
	return data[:len(data)-padding], nil
}

func mustHex(s string) []byte {
	b, err := hex.DecodeString(s)
	if err != nil {
		panic("envelope: invalid key constant: " + err.Error())
	}
	return b
}
