package api

import (
	"fmt"

	"github.com/arnoutzw/Anenji-smartess/internal/transport"
)

// validator is implemented by record types with required fields.
type validator interface {
	validate() error
}

// decodeRecord parses a success envelope's payload into a single typed
// record. A payload that does not match the expected shape fails with
// ErrDataFormat; callers never see a raw decoding error.
func decodeRecord[T any](env *transport.Envelope) (*T, error) {
	if !env.HasPayload() {
		return nil, fmt.Errorf("%w: empty payload", ErrDataFormat)
	}
	out := new(T)
	if err := env.Decode(out); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDataFormat, err)
	}
	if v, ok := any(out).(validator); ok {
		if err := v.validate(); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrDataFormat, err)
		}
	}
	return out, nil
}

// decodeList parses a success envelope's payload into a slice of typed
// records. A null payload decodes as an empty list; the vendor omits
// the payload for empty collections.
func decodeList[T any](env *transport.Envelope) ([]T, error) {
	if !env.HasPayload() {
		return nil, nil
	}
	var out []T
	if err := env.Decode(&out); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDataFormat, err)
	}
	return out, nil
}
