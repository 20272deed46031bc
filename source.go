package sensorcheck

import (
	"sync"

	"github.com/reoring/sensorcheck/document"
	drvgojson "github.com/reoring/sensorcheck/source/gojson"
)

// JSONDriver turns JSON text into a document.Value. The default driver is
// backed by goccy/go-json and may be swapped with SetJSONDriver.
type JSONDriver interface {
	// Decode parses exactly one JSON value; trailing input is an error.
	Decode(data []byte) (document.Value, error)
	Name() string
}

var (
	jsonDriverMu      sync.RWMutex
	currentJSONDriver JSONDriver = drvgojson.Driver{}
)

// SetJSONDriver replaces the global JSON driver; nil values are ignored.
func SetJSONDriver(d JSONDriver) {
	if d == nil {
		return
	}
	jsonDriverMu.Lock()
	currentJSONDriver = d
	jsonDriverMu.Unlock()
}

// UseDefaultJSONDriver restores the go-json driver.
func UseDefaultJSONDriver() { SetJSONDriver(drvgojson.Driver{}) }

// CurrentJSONDriver returns the driver used by ParseBytes.
func CurrentJSONDriver() JSONDriver {
	jsonDriverMu.RLock()
	d := currentJSONDriver
	jsonDriverMu.RUnlock()
	return d
}
