// Package sensortest provides sensor report fixtures for tests.
package sensortest

import (
	"strings"

	j "github.com/goccy/go-json"
)

// ValidJSON is a complete report as published by a sensor board.
const ValidJSON = `{
  "status": {"temperature": 21.5, "light": 300, "regul": "HEAT", "fire": false, "heat": "ON", "cold": "OFF", "fanspeed": 0},
  "location": {"room": "A101", "gps": {"lat": 43.62, "lon": 7.07}, "address": "Campus SophiaTech"},
  "regul": {"lt": 20, "ht": 23},
  "info": {"ident": "ESP32-01", "user": "team5", "loc": "A101"},
  "net": {"uptime": "42", "ssid": "lab", "mac": "AA:BB:CC:DD:EE:FF", "ip": "192.168.1.20"},
  "reporthost": {"target_ip": "192.168.1.10", "target_port": 1880, "sp": 2},
  "piscine": {"occuped": false, "hotspot": true}
}`

// Doc returns ValidJSON as a generic tree that tests can edit before calling
// Bytes.
func Doc() map[string]any {
	var m map[string]any
	if err := j.Unmarshal([]byte(ValidJSON), &m); err != nil {
		panic(err)
	}
	return m
}

// Set assigns v at the dotted path (for example "location.gps.lat"),
// creating intermediate objects as needed.
func Set(doc map[string]any, path string, v any) map[string]any {
	parts := strings.Split(path, ".")
	cur := doc
	for _, p := range parts[:len(parts)-1] {
		next, ok := cur[p].(map[string]any)
		if !ok {
			next = map[string]any{}
			cur[p] = next
		}
		cur = next
	}
	cur[parts[len(parts)-1]] = v
	return doc
}

// Delete removes the property at the dotted path if present.
func Delete(doc map[string]any, path string) map[string]any {
	parts := strings.Split(path, ".")
	cur := doc
	for _, p := range parts[:len(parts)-1] {
		next, ok := cur[p].(map[string]any)
		if !ok {
			return doc
		}
		cur = next
	}
	delete(cur, parts[len(parts)-1])
	return doc
}

// Bytes encodes doc as JSON.
func Bytes(doc map[string]any) []byte {
	b, err := j.Marshal(doc)
	if err != nil {
		panic(err)
	}
	return b
}
