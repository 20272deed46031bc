package sensorcheck_test

import (
	"errors"
	"strings"
	"testing"

	sc "github.com/reoring/sensorcheck"
	"github.com/reoring/sensorcheck/document"
	jsonsrc "github.com/reoring/sensorcheck/source/json"
)

var drivers = []sc.JSONDriver{nil, jsonsrc.Driver{}}

func withDriver(t *testing.T, d sc.JSONDriver) {
	t.Helper()
	if d == nil {
		sc.UseDefaultJSONDriver()
	} else {
		sc.SetJSONDriver(d)
	}
	t.Cleanup(sc.UseDefaultJSONDriver)
}

func TestParseBytes_Values(t *testing.T) {
	for _, d := range drivers {
		withDriver(t, d)
		v, err := sc.ParseBytes([]byte(`{"n":1.50,"i":7,"s":"x","b":true,"z":null,"a":[1,{}]}`), sc.ParseOpt{})
		if err != nil {
			t.Fatalf("%s: %v", sc.CurrentJSONDriver().Name(), err)
		}
		if n, _ := v.Get("n"); n.Kind() != document.KindNumber {
			t.Fatalf("%s: n should be a number, got %s", sc.CurrentJSONDriver().Name(), n.Kind())
		}
		if lit, _ := mustGet(t, v, "i").AsNumber(); lit != "7" {
			t.Fatalf("%s: integer literal lost: %q", sc.CurrentJSONDriver().Name(), lit)
		}
		if a, ok := mustGet(t, v, "a").AsArray(); !ok || len(a) != 2 || a[1].Kind() != document.KindObject {
			t.Fatalf("%s: bad array %v", sc.CurrentJSONDriver().Name(), a)
		}
		if mustGet(t, v, "z").Kind() != document.KindNull {
			t.Fatalf("%s: expected null", sc.CurrentJSONDriver().Name())
		}
	}
}

func mustGet(t *testing.T, v document.Value, key string) document.Value {
	t.Helper()
	m, ok := v.Get(key)
	if !ok {
		t.Fatalf("missing key %q", key)
	}
	return m
}

func TestParseBytes_SyntaxPositions(t *testing.T) {
	cases := []struct {
		in        string
		line, col int
	}{
		{`{ "status": }`, 1, 13},
		{"{\n  \"a\": 1,\n  \"b\" 2\n}", 3, 7},
		{`[1, 2`, 1, 6},
		{``, 1, 1},
		{`{} {}`, 1, 4},
	}
	for _, d := range drivers {
		withDriver(t, d)
		for _, c := range cases {
			_, err := sc.ParseBytes([]byte(c.in), sc.ParseOpt{})
			var de *sc.DecodeError
			if !errors.As(err, &de) {
				t.Fatalf("%s %q: expected DecodeError, got %v", sc.CurrentJSONDriver().Name(), c.in, err)
			}
			if de.Code != sc.CodeParseError || de.Line != c.line || de.Column != c.col {
				t.Fatalf("%s %q: got code=%s line=%d col=%d (%v)", sc.CurrentJSONDriver().Name(), c.in, de.Code, de.Line, de.Column, de)
			}
			if !strings.Contains(de.Error(), "line ") {
				t.Fatalf("message should carry the position: %q", de.Error())
			}
		}
	}
}

func TestParseBytes_RejectsMalformedLiterals(t *testing.T) {
	cases := []struct {
		in        string
		line, col int
	}{
		{`{"temperature": 21.}`, 1, 20},
		{`{"light": 0300}`, 1, 12},
		{"{\"room\": \"A1\x0101\"}", 1, 13},
		{`{"ssid": nul}`, 1, 13},
		{`0300`, 1, 2},
		{`nul`, 1, 4},
	}
	for _, d := range drivers {
		withDriver(t, d)
		for _, c := range cases {
			_, err := sc.ParseBytes([]byte(c.in), sc.ParseOpt{})
			var de *sc.DecodeError
			if !errors.As(err, &de) {
				t.Fatalf("%s %q: expected DecodeError, got %v", sc.CurrentJSONDriver().Name(), c.in, err)
			}
			if de.Line != c.line || de.Column != c.col {
				t.Fatalf("%s %q: got line=%d col=%d (%v)", sc.CurrentJSONDriver().Name(), c.in, de.Line, de.Column, de)
			}
		}
	}
}

func TestParseBytes_KeepsOutOfRangeNumbers(t *testing.T) {
	for _, d := range drivers {
		withDriver(t, d)
		v, err := sc.ParseBytes([]byte(`{"light": 1e400}`), sc.ParseOpt{})
		if err != nil {
			t.Fatalf("%s: %v", sc.CurrentJSONDriver().Name(), err)
		}
		if lit, _ := mustGet(t, v, "light").AsNumber(); lit != "1e400" {
			t.Fatalf("%s: literal lost: %q", sc.CurrentJSONDriver().Name(), lit)
		}
	}
}

func TestParseBytes_DuplicateKeys(t *testing.T) {
	in := []byte(`{"net":{"ip":"a","ip":"b"}}`)

	v, err := sc.ParseBytes(in, sc.ParseOpt{})
	if err != nil {
		t.Fatalf("ignore mode should accept duplicates: %v", err)
	}
	if ip, _ := mustGet(t, v, "net").Get("ip"); ip.Kind() != document.KindString {
		t.Fatalf("expected ip string")
	} else if s, _ := ip.AsString(); s != "b" {
		t.Fatalf("last duplicate should win, got %q", s)
	}

	var warned []sc.Issue
	opt := sc.ParseOpt{Strictness: sc.Strictness{OnDuplicateKey: sc.Warn}, OnWarning: func(it sc.Issue) { warned = append(warned, it) }}
	if _, err := sc.ParseBytes(in, opt); err != nil {
		t.Fatalf("warn mode should accept duplicates: %v", err)
	}
	if len(warned) != 1 || warned[0].Path != "/net/ip" || warned[0].Code != sc.CodeDuplicateKey {
		t.Fatalf("unexpected warnings: %v", warned)
	}

	_, err = sc.ParseBytes(in, sc.ParseOpt{Strictness: sc.Strictness{OnDuplicateKey: sc.Error}})
	var de *sc.DecodeError
	if !errors.As(err, &de) || de.Code != sc.CodeDuplicateKey || de.Path != "/net/ip" {
		t.Fatalf("expected duplicate_key DecodeError at /net/ip, got %v", err)
	}
	if de.Line != 1 {
		t.Fatalf("expected a position, got line %d", de.Line)
	}
}

func TestParseBytes_Limits(t *testing.T) {
	in := []byte(`{"location":{"gps":{"lat":1}}}`)

	_, err := sc.ParseBytes(in, sc.ParseOpt{MaxDepth: 2})
	var de *sc.DecodeError
	if !errors.As(err, &de) || de.Code != sc.CodeParseError || de.Path != "/location/gps" {
		t.Fatalf("expected depth error at /location/gps, got %v", err)
	}
	if !strings.Contains(de.Error(), "at location.gps") {
		t.Fatalf("depth message should name the path: %q", de.Error())
	}

	if _, err := sc.ParseBytes(in, sc.ParseOpt{MaxDepth: 3}); err != nil {
		t.Fatalf("depth 3 should pass: %v", err)
	}

	_, err = sc.ParseBytes(in, sc.ParseOpt{MaxBytes: 8})
	if !errors.As(err, &de) || de.Code != sc.CodeTruncated {
		t.Fatalf("expected truncated, got %v", err)
	}
}

type upperDriver struct{ sc.JSONDriver }

func (upperDriver) Name() string { return "custom" }

func TestJSONDriver_Swap(t *testing.T) {
	if got := sc.CurrentJSONDriver().Name(); got != "go-json" {
		t.Fatalf("default driver should be go-json, got %s", got)
	}
	sc.SetJSONDriver(upperDriver{jsonsrc.Driver{}})
	defer sc.UseDefaultJSONDriver()
	if sc.CurrentJSONDriver().Name() != "custom" {
		t.Fatalf("driver not swapped")
	}
	sc.SetJSONDriver(nil)
	if sc.CurrentJSONDriver().Name() != "custom" {
		t.Fatalf("nil driver must be ignored")
	}
}
