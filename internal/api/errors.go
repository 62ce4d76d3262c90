package api

import (
	"errors"
	"fmt"

	"github.com/arnoutzw/Anenji-smartess/internal/transport"
)

// Sentinel errors. Callers branch on these with errors.Is rather than
// on message text; no raw transport or JSON error escapes this package.
var (
	// ErrValidation indicates malformed or missing caller input,
	// detected before any network call.
	ErrValidation = errors.New("validation failed")

	// ErrNotAuthenticated indicates a session-requiring call was made
	// with no session. The caller must login first.
	ErrNotAuthenticated = errors.New("not authenticated")

	// ErrAuthentication indicates the server rejected the signature or
	// credentials. The only recovery is a full re-login.
	ErrAuthentication = errors.New("authentication rejected")

	// ErrTokenExpired indicates the session token is no longer valid.
	ErrTokenExpired = fmt.Errorf("token expired: %w", ErrAuthentication)

	// ErrInvalidCredentials indicates a bad email/password pair.
	ErrInvalidCredentials = fmt.Errorf("invalid credentials: %w", ErrAuthentication)

	// ErrLogin indicates the login call itself failed.
	ErrLogin = fmt.Errorf("login failed: %w", ErrAuthentication)

	// ErrNetwork and ErrTimeout are the transport-layer failures,
	// re-exported so callers only import this package.
	ErrNetwork = transport.ErrNetwork
	ErrTimeout = transport.ErrTimeout

	// ErrAPI indicates a non-zero vendor error code not otherwise
	// classified.
	ErrAPI = errors.New("api error")

	// ErrPlantNotFound and ErrDeviceNotFound are ErrAPI subtypes keyed
	// by known vendor error codes.
	ErrPlantNotFound  = fmt.Errorf("plant not found: %w", ErrAPI)
	ErrDeviceNotFound = fmt.Errorf("device not found: %w", ErrAPI)

	// ErrDataFormat indicates a success payload that does not match the
	// expected shape for the action. Never retried.
	ErrDataFormat = errors.New("unexpected payload shape")

	// ErrControl indicates a control/mutation action failed. Control
	// failures are never retried regardless of the retry policy.
	ErrControl = errors.New("device control failed")
)

// Known vendor error codes. The vendor does not document its code
// space; these are the codes observed to carry the given meanings.
const (
	codeInvalidCredentials = 10003
	codeTokenInvalid       = 10005
	codePlantNotFound      = 12001
	codeDeviceNotFound     = 12002
)

// APIError carries the vendor error code and description alongside the
// classified sentinel, so both errors.Is branching and diagnostics work.
type APIError struct {
	Code        int
	Description string
	kind        error
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api error %d: %s", e.Code, e.Description)
}

func (e *APIError) Unwrap() error {
	return e.kind
}

func newAPIError(code int, desc string, kind error) *APIError {
	return &APIError{Code: code, Description: desc, kind: kind}
}

// classifyCode maps a vendor error code to its sentinel. Any
// auth-rejecting code is treated as expiry; the protocol has no
// refresh mechanism.
func classifyCode(code int) error {
	switch code {
	case codeInvalidCredentials:
		return ErrInvalidCredentials
	case codeTokenInvalid:
		return ErrTokenExpired
	case codePlantNotFound:
		return ErrPlantNotFound
	case codeDeviceNotFound:
		return ErrDeviceNotFound
	default:
		return ErrAPI
	}
}
