// Package sensor describes the JSON report published by a sensor board: the
// schema every report must satisfy and the typed Report model of a conforming
// document.
package sensor

import (
	"sync"

	sc "github.com/reoring/sensorcheck"
	g "github.com/reoring/sensorcheck/dsl"
)

// Title names the exported JSON Schema.
const Title = "Sensor report"

// Schema returns the sensor report schema. It is built once per process and
// must not be modified.
func Schema() (*sc.Node, error) { return schemaOnce() }

var schemaOnce = sync.OnceValues(build)

func build() (*sc.Node, error) {
	status, err := g.Object().
		Field("temperature", g.Number()).Required().
		Field("light", g.Number()).Required().
		Field("regul", g.String()).Required().
		Field("fire", g.Bool()).Required().
		Field("heat", g.String()).
		Field("cold", g.String()).
		Field("fanspeed", g.Number()).
		Build()
	if err != nil {
		return nil, err
	}
	gps, err := g.Object().
		Field("lat", g.Number()).Required().
		Field("lon", g.Number()).Required().
		Build()
	if err != nil {
		return nil, err
	}
	location, err := g.Object().
		Field("room", g.String()).Required().
		Field("gps", gps).Required().
		Field("address", g.String()).
		Build()
	if err != nil {
		return nil, err
	}
	regul, err := g.Object().
		Field("lt", g.Number()).
		Field("ht", g.Number()).
		Require("lt", "ht").
		Build()
	if err != nil {
		return nil, err
	}
	info, err := g.Object().
		Field("ident", g.String()).
		Field("user", g.String()).
		Field("loc", g.String()).
		Require("ident", "user", "loc").
		Build()
	if err != nil {
		return nil, err
	}
	net, err := g.Object().
		Field("uptime", g.String()).
		Field("ssid", g.String()).Required().
		Field("mac", g.String()).
		Field("ip", g.String()).Required().
		Build()
	if err != nil {
		return nil, err
	}
	reporthost, err := g.Object().
		Field("target_ip", g.String()).
		Field("target_port", g.Number()).
		Field("sp", g.Number()).
		Require("target_ip", "target_port", "sp").
		Build()
	if err != nil {
		return nil, err
	}
	piscine, err := g.Object().
		Field("occuped", g.Bool()).
		Field("hotspot", g.Bool()).
		Require("occuped", "hotspot").
		Build()
	if err != nil {
		return nil, err
	}
	return g.Object().
		Field("status", status).
		Field("location", location).
		Field("regul", regul).
		Field("info", info).
		Field("net", net).
		Field("reporthost", reporthost).
		Field("piscine", piscine).
		Require("status", "location", "regul", "info", "net", "reporthost").
		Build()
}
