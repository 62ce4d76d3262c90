// Package signing implements the vendor's request signature scheme.
//
// Every authenticated request carries a salt (the current wall-clock time
// in milliseconds) and a SHA-1 digest binding that salt to the session
// token and secret. The server rejects reused salts as replays, so salts
// issued by this process are strictly increasing.
package signing

import (
	"crypto/sha1" // #nosec G505 - SHA-1 is mandated by the vendor protocol
	"encoding/hex"
	"strconv"
	"sync/atomic"
	"time"
)

// Sign computes the request signature: lowercase hex SHA-1 of the
// concatenation salt + token + secret. Deterministic, no side effects.
func Sign(salt, token, secret string) string {
	sum := sha1.Sum([]byte(salt + token + secret))
	return hex.EncodeToString(sum[:])
}

// SaltSource issues per-request salts. Salts are millisecond timestamps,
// bumped when two calls land on the same millisecond so no two salts
// issued by one process are ever equal.
type SaltSource struct {
	last atomic.Int64
}

// Next returns a fresh salt as a decimal string.
func (s *SaltSource) Next() string {
	now := time.Now().UnixMilli()
	for {
		last := s.last.Load()
		if now <= last {
			now = last + 1
		}
		if s.last.CompareAndSwap(last, now) {
			return strconv.FormatInt(now, 10)
		}
	}
}
