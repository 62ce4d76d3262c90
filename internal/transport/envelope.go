package transport

import (
	"encoding/json"
	"fmt"
)

// Envelope is the vendor's uniform response wrapper. Err == 0 means the
// call succeeded; Dat may legitimately be null even on success.
type Envelope struct {
	Err  int             `json:"err"`
	Desc string          `json:"desc"`
	Dat  json.RawMessage `json:"dat"`
}

// OK reports whether the envelope carries a successful result.
func (e *Envelope) OK() bool {
	return e.Err == 0
}

// HasPayload reports whether Dat carries a non-null value.
func (e *Envelope) HasPayload() bool {
	return len(e.Dat) > 0 && string(e.Dat) != "null"
}

// Decode unmarshals the payload into dest.
func (e *Envelope) Decode(dest any) error {
	if !e.HasPayload() {
		return fmt.Errorf("envelope has no payload")
	}
	if err := json.Unmarshal(e.Dat, dest); err != nil {
		return fmt.Errorf("decode payload: %w", err)
	}
	return nil
}
