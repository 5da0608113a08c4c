package auth

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"encoding/binary"
	"errors"
	"strings"
	"time"
)

var ErrInvalidToken = errors.New("invalid auth token")

const tokenVersion = 1

// payload layout: version byte, user id int64, expiry unix seconds int64
const payloadLen = 1 + 8 + 8

// HMACStrategy issues and verifies compact signed tokens. A token is two
// base64url segments joined by a dot: the binary payload and its
// HMAC-SHA256 signature.
type HMACStrategy struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

// NewHMACStrategy builds HMACStrategy with provided secret and options.
func NewHMACStrategy(secret string, opts Options) *HMACStrategy {
	ttl := opts.TTL
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &HMACStrategy{secret: []byte(secret), ttl: ttl, now: time.Now}
}

// IssueToken generates a signed token carrying the user identifier.
func (s *HMACStrategy) IssueToken(userID int64) (string, error) {
	payload := encodePayload(userID, s.now().Add(s.ttl).Unix())
	return encodeSegment(payload) + "." + encodeSegment(s.sign(payload)), nil
}

// ParseToken verifies the signature and expiry and returns the user ID.
func (s *HMACStrategy) ParseToken(token string) (int64, error) {
	rawPayload, rawSig, ok := strings.Cut(token, ".")
	if !ok {
		return 0, ErrInvalidToken
	}

	payload, err := decodeSegment(rawPayload)
	if err != nil || len(payload) != payloadLen {
		return 0, ErrInvalidToken
	}
	sig, err := decodeSegment(rawSig)
	if err != nil {
		return 0, ErrInvalidToken
	}
	if !hmac.Equal(s.sign(payload), sig) {
		return 0, ErrInvalidToken
	}
	if payload[0] != tokenVersion {
		return 0, ErrInvalidToken
	}

	userID := int64(binary.BigEndian.Uint64(payload[1:9]))
	expires := int64(binary.BigEndian.Uint64(payload[9:]))
	if userID <= 0 {
		return 0, ErrInvalidToken
	}
	if time.Unix(expires, 0).Before(s.now()) {
		return 0, ErrInvalidToken
	}

	return userID, nil
}

func (s *HMACStrategy) Name() string {
	return "hmac-sha256"
}

func (s *HMACStrategy) sign(payload []byte) []byte {
	mac := hmac.New(sha256.New, s.secret)
	mac.Write(payload)
	return mac.Sum(nil)
}

func encodePayload(userID, expires int64) []byte {
	payload := make([]byte, payloadLen)
	payload[0] = tokenVersion
	binary.BigEndian.PutUint64(payload[1:9], uint64(userID))
	binary.BigEndian.PutUint64(payload[9:], uint64(expires))
	return payload
}

func encodeSegment(raw []byte) string {
	return base64.RawURLEncoding.EncodeToString(raw)
}

func decodeSegment(segment string) ([]byte, error) {
	return base64.RawURLEncoding.DecodeString(segment)
}
