package api

import (
	"encoding/json"
	"fmt"
)

// FlexString decodes a JSON string or number as a string. The vendor is
// inconsistent about whether numeric identifiers arrive quoted.
type FlexString string

func (f *FlexString) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*f = ""
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*f = FlexString(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return err
	}
	*f = FlexString(n.String())
	return nil
}

func (f FlexString) String() string { return string(f) }

// LoginResult is the typed login payload. The token/secret pair it
// carries seeds all subsequent request signing.
type LoginResult struct {
	Token    string     `json:"token"`
	Secret   string     `json:"secret"`
	UserID   FlexString `json:"userid"`
	Username string     `json:"username"`
	Role     int        `json:"role"`
}

func (r *LoginResult) validate() error {
	if r.Token == "" || r.Secret == "" {
		return fmt.Errorf("login payload missing token or secret")
	}
	if r.UserID == "" {
		return fmt.Errorf("login payload missing userid")
	}
	return nil
}

// AccountInfo is the current user's account record.
type AccountInfo struct {
	UserID   FlexString `json:"uid"`
	Username string     `json:"username"`
	RealName string     `json:"realname"`
	Phone    string     `json:"phone"`
	Company  string     `json:"company"`
	Role     int        `json:"role"`
}

func (a *AccountInfo) validate() error {
	if a.Username == "" {
		return fmt.Errorf("account payload missing username")
	}
	return nil
}

// DeviceInfo identifies one device behind a collector.
type DeviceInfo struct {
	PN       string     `json:"pn"`
	Devcode  FlexString `json:"devcode"`
	Devaddr  FlexString `json:"devaddr"`
	SN       string     `json:"sn"`
	Alias    string     `json:"alias"`
	Status   FlexString `json:"status"`
	Protocol FlexString `json:"protocol"`
}

// CollectorInfo describes a vendor-side gateway aggregating devices.
type CollectorInfo struct {
	PN     string     `json:"pn"`
	Alias  string     `json:"alias"`
	Status FlexString `json:"status"`
	Signal int        `json:"signal"`
}

// PlantInfo describes one plant and its inventory.
type PlantInfo struct {
	PlantID    FlexString      `json:"plantid"`
	Name       string          `json:"plantname"`
	Alias      string          `json:"alias"`
	Location   string          `json:"location"`
	Capacity   float64         `json:"capacity"`
	Status     FlexString      `json:"status"`
	Devices    []DeviceInfo    `json:"devices"`
	Collectors []CollectorInfo `json:"collectors"`
}

func (p *PlantInfo) validate() error {
	if p.PlantID == "" {
		return fmt.Errorf("plant payload missing plantid")
	}
	return nil
}

// DeviceTelemetry is the latest reported data for one device. Values
// are kept loosely typed; the parameter set depends on the device code.
type DeviceTelemetry struct {
	PN       string         `json:"pn"`
	Devcode  FlexString     `json:"devcode"`
	Devaddr  FlexString     `json:"devaddr"`
	SN       string         `json:"sn"`
	Datatime string         `json:"datatime"`
	Values   map[string]any `json:"values"`
}

func (d *DeviceTelemetry) validate() error {
	if d.SN == "" {
		return fmt.Errorf("telemetry payload missing sn")
	}
	return nil
}

// DeviceParameter describes one readable parameter of a device type.
type DeviceParameter struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Unit string `json:"unit"`
}

// ChartField describes one plottable field of a device type.
type ChartField struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Unit string `json:"unit"`
}

// SeriesPoint is one sample in a historical series.
type SeriesPoint struct {
	Time  string     `json:"ts"`
	Value FlexString `json:"val"`
}

// HistoricalSeries is one parameter's samples for one day. The
// identifying fields echo the request; only the points come from the
// payload.
type HistoricalSeries struct {
	PN        string
	Devcode   string
	Devaddr   string
	SN        string
	Parameter string
	Date      string
	Points    []SeriesPoint
}

// historicalPayload is the wire shape of the one-day series payload.
type historicalPayload struct {
	Data []SeriesPoint `json:"data"`
}

// DeviceDataPage is one page of raw device records.
type DeviceDataPage struct {
	Total    int              `json:"total"`
	Page     int              `json:"page"`
	PageSize int              `json:"pagesize"`
	Records  []map[string]any `json:"records"`
}

func (p *DeviceDataPage) validate() error {
	if p.Total < 0 || p.Page < 0 {
		return fmt.Errorf("page payload has negative counts")
	}
	return nil
}

// ControlField describes one writable control of a device.
type ControlField struct {
	ID      string     `json:"id"`
	Name    string     `json:"name"`
	Type    FlexString `json:"type"`
	Min     *float64   `json:"min"`
	Max     *float64   `json:"max"`
	Step    *float64   `json:"step"`
	Options []string   `json:"options"`
}

// ControlValue is the current value of one control field.
type ControlValue struct {
	Value FlexString `json:"value"`
}

// Currency is one supported display currency.
type Currency struct {
	Code   string `json:"code"`
	Name   string `json:"name"`
	Symbol string `json:"symbol"`
}

// Domain is one regional vendor endpoint, listable without a session.
type Domain struct {
	ID   FlexString `json:"id"`
	Name string     `json:"name"`
	URL  string     `json:"url"`
}

// CollectorProtocol describes the wire protocol of one collector.
type CollectorProtocol struct {
	PN              string     `json:"pn"`
	ProtocolType    FlexString `json:"protocol_type"`
	ProtocolVersion FlexString `json:"protocol_version"`
}

func (c *CollectorProtocol) validate() error {
	if c.ProtocolType == "" {
		return fmt.Errorf("protocol payload missing protocol_type")
	}
	return nil
}
