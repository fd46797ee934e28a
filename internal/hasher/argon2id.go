// Package hasher implements credential digests.
//
// Digests use the PHC string format
//
//	$argon2id$v=19$m=<mem>,t=<iter>,p=<par>$<salt_b64>$<key_b64>
//
// The secret is keyed with a process-wide pepper (HMAC-SHA256) before
// stretching, and every digest carries its own random salt.
package hasher

import (
	"crypto/hmac"
	"crypto/rand"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/base64"
	"fmt"
	"strings"

	"golang.org/x/crypto/argon2"

	"github.com/dtroode/identity-server/internal/model"
)

const argon2Version = argon2.Version

var _ model.Hasher = (*Argon2id)(nil)

// Params are Argon2id cost parameters.
type Params struct {
	Time       uint32
	MemoryKiB  uint32
	Threads    uint8
	SaltLength uint32
	KeyLength  uint32
}

// DefaultParams returns parameters suitable for interactive logins.
func DefaultParams() Params {
	return Params{Time: 1, MemoryKiB: 64 * 1024, Threads: 2, SaltLength: 16, KeyLength: 32}
}

// Argon2id hashes and verifies secrets.
type Argon2id struct {
	params Params
	pepper []byte
}

// NewArgon2id creates a hasher. Zero params fall back to defaults.
func NewArgon2id(params Params, pepper string) *Argon2id {
	d := DefaultParams()
	if params.Time == 0 {
		params.Time = d.Time
	}
	if params.MemoryKiB == 0 {
		params.MemoryKiB = d.MemoryKiB
	}
	if params.Threads == 0 {
		params.Threads = d.Threads
	}
	if params.SaltLength < 8 {
		params.SaltLength = d.SaltLength
	}
	if params.KeyLength < 16 {
		params.KeyLength = d.KeyLength
	}
	return &Argon2id{params: params, pepper: []byte(pepper)}
}

// Hash returns a PHC-encoded digest of secret.
func (h *Argon2id) Hash(secret string) (string, error) {
	salt := make([]byte, h.params.SaltLength)
	if _, err := rand.Read(salt); err != nil {
		return "", fmt.Errorf("failed to generate salt: %w", err)
	}

	key := argon2.IDKey(h.peppered(secret), salt, h.params.Time, h.params.MemoryKiB, h.params.Threads, h.params.KeyLength)

	b64 := base64.RawStdEncoding
	return fmt.Sprintf("$argon2id$v=%d$m=%d,t=%d,p=%d$%s$%s",
		argon2Version,
		h.params.MemoryKiB,
		h.params.Time,
		h.params.Threads,
		b64.EncodeToString(salt),
		b64.EncodeToString(key),
	), nil
}

// Verify reports whether secret matches digest. Malformed digests never match.
func (h *Argon2id) Verify(secret, digest string) bool {
	params, salt, expected, ok := decode(digest)
	if !ok || !h.withinBounds(params) {
		return false
	}

	key := argon2.IDKey(h.peppered(secret), salt, params.Time, params.MemoryKiB, params.Threads, uint32(len(expected)))
	return subtle.ConstantTimeCompare(key, expected) == 1
}

func (h *Argon2id) peppered(secret string) []byte {
	mac := hmac.New(sha256.New, h.pepper)
	mac.Write([]byte(secret))
	return mac.Sum(nil)
}

// withinBounds refuses digests whose cost is far above the configured one.
func (h *Argon2id) withinBounds(p Params) bool {
	if uint64(p.MemoryKiB) > uint64(h.params.MemoryKiB)*2 ||
		uint64(p.Time) > uint64(h.params.Time)*2 ||
		uint32(p.Threads) > uint32(h.params.Threads)*2 {
		return false
	}
	if p.SaltLength < 8 || p.SaltLength > 64 {
		return false
	}
	return p.KeyLength >= 16 && p.KeyLength <= 128
}

func decode(encoded string) (Params, []byte, []byte, bool) {
	parts := strings.Split(encoded, "$")
	if len(parts) != 6 || parts[0] != "" || parts[1] != "argon2id" {
		return Params{}, nil, nil, false
	}
	if parts[2] != fmt.Sprintf("v=%d", argon2Version) {
		return Params{}, nil, nil, false
	}

	var mem, it, par uint32
	if _, err := fmt.Sscanf(parts[3], "m=%d,t=%d,p=%d", &mem, &it, &par); err != nil {
		return Params{}, nil, nil, false
	}
	if mem == 0 || it == 0 || par == 0 || par > 255 {
		return Params{}, nil, nil, false
	}

	b64 := base64.RawStdEncoding
	salt, err := b64.DecodeString(parts[4])
	if err != nil {
		return Params{}, nil, nil, false
	}
	key, err := b64.DecodeString(parts[5])
	if err != nil {
		return Params{}, nil, nil, false
	}

	return Params{
		Time:       it,
		MemoryKiB:  mem,
		Threads:    uint8(par),
		SaltLength: uint32(len(salt)),
		KeyLength:  uint32(len(key)),
	}, salt, key, true
}
