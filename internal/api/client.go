// Package api is the client facade for the monitoring service: one
// method per remote action, typed payload decoding, and the error
// taxonomy callers branch on.
package api

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/arnoutzw/Anenji-smartess/internal/request"
	"github.com/arnoutzw/Anenji-smartess/internal/session"
	"github.com/arnoutzw/Anenji-smartess/internal/transport"
)

const (
	defaultPageSize = 100
	maxPageSize     = 1000

	dateLayout = "2006-01-02"
)

// SessionStore owns the session lifecycle. Implemented by
// *session.Store.
type SessionStore interface {
	Load() (*session.Session, error)
	Save(sess *session.Session) error
	Clear() error
	Current() *session.Session
}

// Transport executes requests against the vendor endpoint. Implemented
// by *transport.Transport.
type Transport interface {
	Execute(ctx context.Context, req *request.SignedRequest) (*transport.Envelope, error)
	Login(ctx context.Context, form url.Values) (*transport.Envelope, error)
}

// DeviceRef identifies one device: collector part number, device code,
// bus address and serial number. Every per-device action needs all four.
type DeviceRef struct {
	PN      string
	Devcode string
	Devaddr string
	SN      string
}

func (r DeviceRef) params() map[string]string {
	return map[string]string{
		"pn":      r.PN,
		"devcode": r.Devcode,
		"devaddr": r.Devaddr,
		"sn":      r.SN,
	}
}

func (r DeviceRef) validate() error {
	if err := nonEmpty("pn", r.PN); err != nil {
		return err
	}
	if err := nonEmpty("devcode", r.Devcode); err != nil {
		return err
	}
	if err := nonEmpty("devaddr", r.Devaddr); err != nil {
		return err
	}
	return nonEmpty("sn", r.SN)
}

// Client is the facade over session store, request builder and
// transport. Construct one per configuration; methods are safe for
// concurrent use, and independent reads may be issued from any number
// of goroutines.
type Client struct {
	store   SessionStore
	tr      Transport
	builder *request.Builder

	// loginMu serializes login/logout so no store read ever observes a
	// torn token/secret pair.
	loginMu sync.Mutex
}

// NewClient creates a Client with injected dependencies. lang is the
// language code for vendor responses, defaulting to "en".
func NewClient(store SessionStore, tr Transport, lang string) *Client {
	return &Client{
		store:   store,
		tr:      tr,
		builder: request.NewBuilder(store, lang),
	}
}

// IsAuthenticated reports whether a usable session is present.
func (c *Client) IsAuthenticated() bool {
	return c.store.Current().Valid()
}

// Login authenticates with email and password. On success the session
// is saved before returning; on failure the store is left untouched.
func (c *Client) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	if err := nonEmpty("email", email); err != nil {
		return nil, err
	}
	if err := nonEmpty("password", password); err != nil {
		return nil, err
	}

	c.loginMu.Lock()
	defer c.loginMu.Unlock()

	env, err := c.tr.Login(ctx, c.builder.LoginForm(email, password))
	if err != nil {
		return nil, err
	}
	if !env.OK() {
		kind := ErrLogin
		if env.Err == codeInvalidCredentials {
			kind = fmt.Errorf("%w: %w", ErrLogin, ErrInvalidCredentials)
		}
		return nil, newAPIError(env.Err, env.Desc, kind)
	}

	result, err := decodeRecord[LoginResult](env)
	if err != nil {
		return nil, err
	}

	sess := &session.Session{
		Token:    result.Token,
		Secret:   result.Secret,
		UserID:   result.UserID.String(),
		Username: result.Username,
		Role:     result.Role,
		IssuedAt: time.Now().UTC(),
	}
	if err := c.store.Save(sess); err != nil {
		return nil, err
	}

	log.Info().
		Str("user", email).
		Str("fingerprint", sess.Fingerprint()).
		Msg("logged in")

	return result, nil
}

// Logout revokes the session remotely on a best-effort basis and always
// clears the local store; local logout is never blocked by network
// failure.
func (c *Client) Logout(ctx context.Context) error {
	c.loginMu.Lock()
	defer c.loginMu.Unlock()

	req, err := c.builder.Build(request.ActionLogout, nil)
	if err == nil {
		if _, err := c.tr.Execute(ctx, req); err != nil {
			log.Warn().Err(err).Msg("remote logout failed, clearing local session anyway")
		}
	}

	return c.store.Clear()
}

// GetAccountInfo fetches the current user's account record.
func (c *Client) GetAccountInfo(ctx context.Context) (*AccountInfo, error) {
	env, err := c.call(ctx, request.ActionQueryAccountInfo, nil)
	if err != nil {
		return nil, err
	}
	return decodeRecord[AccountInfo](env)
}

// GetPlantInfo fetches one plant with its device and collector
// inventory.
func (c *Client) GetPlantInfo(ctx context.Context, plantID string) (*PlantInfo, error) {
	if err := nonEmpty("plantid", plantID); err != nil {
		return nil, err
	}
	env, err := c.call(ctx, request.ActionQueryPlantInfo, map[string]string{"plantid": plantID})
	if err != nil {
		return nil, err
	}
	return decodeRecord[PlantInfo](env)
}

// GetDeviceLastData fetches the latest telemetry for one device.
func (c *Client) GetDeviceLastData(ctx context.Context, ref DeviceRef) (*DeviceTelemetry, error) {
	if err := ref.validate(); err != nil {
		return nil, err
	}
	env, err := c.call(ctx, request.ActionQueryDeviceLastData, ref.params())
	if err != nil {
		return nil, err
	}
	return decodeRecord[DeviceTelemetry](env)
}

// GetDeviceKeyParameters lists the readable parameters of a device type.
func (c *Client) GetDeviceKeyParameters(ctx context.Context, devcode string) ([]DeviceParameter, error) {
	if err := nonEmpty("devcode", devcode); err != nil {
		return nil, err
	}
	env, err := c.call(ctx, request.ActionQueryKeyParameters, map[string]string{"devcode": devcode})
	if err != nil {
		return nil, err
	}
	return decodeList[DeviceParameter](env)
}

// GetDeviceChartFields lists the plottable fields of a device type.
func (c *Client) GetDeviceChartFields(ctx context.Context, devcode string) ([]ChartField, error) {
	if err := nonEmpty("devcode", devcode); err != nil {
		return nil, err
	}
	env, err := c.call(ctx, request.ActionQueryDeviceChartFields, map[string]string{"devcode": devcode})
	if err != nil {
		return nil, err
	}
	return decodeList[ChartField](env)
}

// GetDeviceParameterOneDay fetches one parameter's samples for one day.
// date must be formatted as YYYY-MM-DD.
func (c *Client) GetDeviceParameterOneDay(ctx context.Context, ref DeviceRef, parameter, date string) (*HistoricalSeries, error) {
	if err := ref.validate(); err != nil {
		return nil, err
	}
	if err := nonEmpty("parameter", parameter); err != nil {
		return nil, err
	}
	if _, err := time.Parse(dateLayout, date); err != nil {
		return nil, fmt.Errorf("%w: date must be YYYY-MM-DD", ErrValidation)
	}

	params := ref.params()
	params["parameter"] = parameter
	params["date"] = date

	env, err := c.call(ctx, request.ActionQueryParameterOneDay, params)
	if err != nil {
		return nil, err
	}

	series := &HistoricalSeries{
		PN:        ref.PN,
		Devcode:   ref.Devcode,
		Devaddr:   ref.Devaddr,
		SN:        ref.SN,
		Parameter: parameter,
		Date:      date,
	}
	if env.HasPayload() {
		payload, err := decodeRecord[historicalPayload](env)
		if err != nil {
			return nil, err
		}
		series.Points = payload.Data
	}
	return series, nil
}

// GetDeviceDataPaginated fetches one page of raw device records. A zero
// page or pageSize falls back to the defaults (page 1, 100 records).
func (c *Client) GetDeviceDataPaginated(ctx context.Context, ref DeviceRef, page, pageSize int) (*DeviceDataPage, error) {
	if err := ref.validate(); err != nil {
		return nil, err
	}
	if page == 0 {
		page = 1
	}
	if pageSize == 0 {
		pageSize = defaultPageSize
	}
	if page < 1 {
		return nil, fmt.Errorf("%w: page must be >= 1", ErrValidation)
	}
	if pageSize < 1 || pageSize > maxPageSize {
		return nil, fmt.Errorf("%w: pagesize must be between 1 and %d", ErrValidation, maxPageSize)
	}

	params := ref.params()
	params["page"] = strconv.Itoa(page)
	params["pagesize"] = strconv.Itoa(pageSize)

	env, err := c.call(ctx, request.ActionQueryDeviceDataPaging, params)
	if err != nil {
		return nil, err
	}
	return decodeRecord[DeviceDataPage](env)
}

// GetWebControlFields lists the writable controls of a device.
func (c *Client) GetWebControlFields(ctx context.Context, ref DeviceRef) ([]ControlField, error) {
	if err := ref.validate(); err != nil {
		return nil, err
	}
	env, err := c.call(ctx, request.ActionWebQueryDeviceCtrlField, ref.params())
	if err != nil {
		return nil, err
	}
	return decodeList[ControlField](env)
}

// GetControlValue reads the current value of one control field.
func (c *Client) GetControlValue(ctx context.Context, ref DeviceRef, fieldID string) (string, error) {
	if err := ref.validate(); err != nil {
		return "", err
	}
	if err := nonEmpty("id", fieldID); err != nil {
		return "", err
	}

	params := ref.params()
	params["id"] = fieldID

	env, err := c.call(ctx, request.ActionQueryDeviceCtrlValue, params)
	if err != nil {
		return "", err
	}
	value, err := decodeRecord[ControlValue](env)
	if err != nil {
		return "", err
	}
	return value.Value.String(), nil
}

// ControlDevice sets one control field. Control commands are never
// retried; a transport failure surfaces immediately.
func (c *Client) ControlDevice(ctx context.Context, ref DeviceRef, fieldID, value string) error {
	if err := ref.validate(); err != nil {
		return err
	}
	if err := nonEmpty("id", fieldID); err != nil {
		return err
	}

	params := ref.params()
	params["id"] = fieldID
	params["val"] = value

	if _, err := c.call(ctx, request.ActionCtrlDevice, params); err != nil {
		if errors.Is(err, ErrValidation) || errors.Is(err, ErrNotAuthenticated) {
			return err
		}
		return fmt.Errorf("%w: %w", ErrControl, err)
	}

	log.Info().
		Str("sn", ref.SN).
		Str("field", fieldID).
		Str("value", value).
		Msg("device control applied")

	return nil
}

// SendDeviceCommand sends a raw command to a device. Like all mutating
// actions it is never retried.
func (c *Client) SendDeviceCommand(ctx context.Context, ref DeviceRef, command string) error {
	if err := ref.validate(); err != nil {
		return err
	}
	if err := nonEmpty("cmd", command); err != nil {
		return err
	}

	params := ref.params()
	params["cmd"] = command

	if _, err := c.call(ctx, request.ActionSendCmdToDevice, params); err != nil {
		if errors.Is(err, ErrValidation) || errors.Is(err, ErrNotAuthenticated) {
			return err
		}
		return fmt.Errorf("%w: %w", ErrControl, err)
	}
	return nil
}

// EditDeviceAlias renames a device.
func (c *Client) EditDeviceAlias(ctx context.Context, ref DeviceRef, alias string) error {
	if err := ref.validate(); err != nil {
		return err
	}
	if err := nonEmpty("alias", alias); err != nil {
		return err
	}

	params := ref.params()
	params["alias"] = alias

	if _, err := c.call(ctx, request.ActionEditDeviceInfo, params); err != nil {
		if errors.Is(err, ErrValidation) || errors.Is(err, ErrNotAuthenticated) {
			return err
		}
		return fmt.Errorf("%w: %w", ErrControl, err)
	}
	return nil
}

// GetCurrencies lists the supported display currencies.
func (c *Client) GetCurrencies(ctx context.Context) ([]Currency, error) {
	env, err := c.call(ctx, request.ActionQueryPlantCurrenciesAll, nil)
	if err != nil {
		return nil, err
	}
	return decodeList[Currency](env)
}

// GetDomains lists the regional vendor endpoints. No session required.
func (c *Client) GetDomains(ctx context.Context) ([]Domain, error) {
	env, err := c.call(ctx, request.ActionQueryDomainListNotLogin, nil)
	if err != nil {
		return nil, err
	}
	return decodeList[Domain](env)
}

// GetCollectorProtocol fetches protocol information for a collector.
// No session required.
func (c *Client) GetCollectorProtocol(ctx context.Context, pn string) (*CollectorProtocol, error) {
	if err := nonEmpty("pn", pn); err != nil {
		return nil, err
	}
	env, err := c.call(ctx, request.ActionQueryCollectorProtocol, map[string]string{"pn": pn})
	if err != nil {
		return nil, err
	}
	return decodeRecord[CollectorProtocol](env)
}

// call builds, executes and unwraps one action, translating every
// failure into the package error taxonomy.
func (c *Client) call(ctx context.Context, action string, params map[string]string) (*transport.Envelope, error) {
	req, err := c.builder.Build(action, params)
	if err != nil {
		if errors.Is(err, request.ErrNotAuthenticated) {
			return nil, ErrNotAuthenticated
		}
		return nil, fmt.Errorf("%w: %v", ErrValidation, err)
	}

	env, err := c.tr.Execute(ctx, req)
	if err != nil {
		return nil, err
	}
	if env.OK() {
		return env, nil
	}

	kind := classifyCode(env.Err)
	if errors.Is(kind, ErrAuthentication) {
		// The server no longer honors this session; the only recovery
		// is a full re-login.
		log.Warn().Int("err", env.Err).Str("action", action).Msg("session rejected, clearing")
		if clearErr := c.store.Clear(); clearErr != nil {
			log.Warn().Err(clearErr).Msg("failed to clear rejected session")
		}
	}

	return nil, newAPIError(env.Err, env.Desc, kind)
}

func nonEmpty(name, value string) error {
	if strings.TrimSpace(value) == "" {
		return fmt.Errorf("%w: %s is required", ErrValidation, name)
	}
	return nil
}
