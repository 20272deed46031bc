package sensor

import (
	j "github.com/goccy/go-json"
	"github.com/pkg/errors"

	"github.com/reoring/sensorcheck/document"
)

// Report is the typed form of a document that passed validation. Optional
// properties absent from the document are left at their zero value (nil for
// pointers).
type Report struct {
	Status     Status      `json:"status"`
	Location   Location    `json:"location"`
	Regul      Regulation  `json:"regul"`
	Info       Info        `json:"info"`
	Net        Net         `json:"net"`
	ReportHost ReportHost  `json:"reporthost"`
	Piscine    *Occupation `json:"piscine,omitempty"`
}

type Status struct {
	Temperature float64  `json:"temperature"`
	Light       float64  `json:"light"`
	Regul       string   `json:"regul"`
	Fire        bool     `json:"fire"`
	Heat        string   `json:"heat,omitempty"`
	Cold        string   `json:"cold,omitempty"`
	FanSpeed    *float64 `json:"fanspeed,omitempty"`
}

type Location struct {
	Room    string `json:"room"`
	GPS     GPS    `json:"gps"`
	Address string `json:"address,omitempty"`
}

type GPS struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

// Regulation holds the low and high temperature thresholds.
type Regulation struct {
	Low  float64 `json:"lt"`
	High float64 `json:"ht"`
}

// Info identifies the device, its owner and where it is installed.
type Info struct {
	Ident string `json:"ident"`
	User  string `json:"user"`
	Loc   string `json:"loc"`
}

type Net struct {
	Uptime string `json:"uptime,omitempty"`
	SSID   string `json:"ssid"`
	MAC    string `json:"mac,omitempty"`
	IP     string `json:"ip"`
}

// ReportHost is the collector the device reports to, and its sampling period.
type ReportHost struct {
	TargetIP   string  `json:"target_ip"`
	TargetPort float64 `json:"target_port"`
	SP         float64 `json:"sp"`
}

type Occupation struct {
	Occupied bool `json:"occuped"`
	Hotspot  bool `json:"hotspot"`
}

// DecodeReport converts a validated document into a Report. Undeclared
// properties are dropped.
func DecodeReport(v document.Value) (*Report, error) {
	raw, err := j.Marshal(v.Interface())
	if err != nil {
		return nil, errors.Wrap(err, "encode document")
	}
	var r Report
	if err := j.Unmarshal(raw, &r); err != nil {
		return nil, errors.Wrap(err, "decode sensor report")
	}
	return &r, nil
}
