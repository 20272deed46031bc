package sensor_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	sc "github.com/reoring/sensorcheck"
	"github.com/reoring/sensorcheck/sensor"
	"github.com/reoring/sensorcheck/sensor/sensortest"
)

func parse(t *testing.T, data []byte) sc.Issues {
	t.Helper()
	s, err := sensor.Schema()
	require.NoError(t, err)
	v, err := sc.ParseBytes(data, sc.ParseOpt{})
	require.NoError(t, err)
	iss, _ := sc.AsIssues(sc.Validate(context.Background(), s, v, sc.ValidateOpt{CollectAll: true}))
	return iss
}

func TestSchema_Memoized(t *testing.T) {
	a, err := sensor.Schema()
	require.NoError(t, err)
	b, err := sensor.Schema()
	require.NoError(t, err)
	assert.Same(t, a, b)
	assert.Equal(t, []string{"status", "location", "regul", "info", "net", "reporthost"}, a.Required)
}

func TestSchema_ValidFixture(t *testing.T) {
	assert.Empty(t, parse(t, []byte(sensortest.ValidJSON)))
}

func TestSchema_MinimalDocument(t *testing.T) {
	doc := sensortest.Doc()
	for _, p := range []string{"piscine", "status.heat", "status.cold", "status.fanspeed", "location.address", "net.uptime", "net.mac"} {
		sensortest.Delete(doc, p)
	}
	assert.Empty(t, parse(t, sensortest.Bytes(doc)))
}

func TestSchema_RegulIsKeyedByPath(t *testing.T) {
	// status.regul is a string while the top-level regul is an object.
	doc := sensortest.Set(sensortest.Doc(), "status.regul", map[string]any{"lt": 1, "ht": 2})
	iss := parse(t, sensortest.Bytes(doc))
	require.Len(t, iss, 1)
	assert.Equal(t, "/status/regul", iss[0].Path)
	assert.Equal(t, "'regul' expected string, got object at status", iss[0].Message)
}

func TestSchema_PiscineFieldsRequiredWhenPresent(t *testing.T) {
	doc := sensortest.Delete(sensortest.Doc(), "piscine.hotspot")
	iss := parse(t, sensortest.Bytes(doc))
	require.Len(t, iss, 1)
	assert.Equal(t, sc.CodeRequired, iss[0].Code)
	assert.Equal(t, "/piscine/hotspot", iss[0].Path)
}

func TestDecodeReport(t *testing.T) {
	v, err := sc.ParseBytes([]byte(sensortest.ValidJSON), sc.ParseOpt{})
	require.NoError(t, err)
	r, err := sensor.DecodeReport(v)
	require.NoError(t, err)

	assert.Equal(t, "ESP32-01", r.Info.Ident)
	assert.Equal(t, 21.5, r.Status.Temperature)
	assert.Equal(t, 43.62, r.Location.GPS.Lat)
	assert.Equal(t, float64(1880), r.ReportHost.TargetPort)
	require.NotNil(t, r.Status.FanSpeed)
	assert.Equal(t, float64(0), *r.Status.FanSpeed)
	require.NotNil(t, r.Piscine)
	assert.True(t, r.Piscine.Hotspot)
}

func TestDecodeReport_OptionalAbsent(t *testing.T) {
	doc := sensortest.Delete(sensortest.Delete(sensortest.Doc(), "piscine"), "status.fanspeed")
	v, err := sc.ParseBytes(sensortest.Bytes(doc), sc.ParseOpt{})
	require.NoError(t, err)
	r, err := sensor.DecodeReport(v)
	require.NoError(t, err)
	assert.Nil(t, r.Piscine)
	assert.Nil(t, r.Status.FanSpeed)
}
