package sensorcheck_test

import (
	"bytes"
	"context"
	"strconv"
	"testing"

	sc "github.com/reoring/sensorcheck"
	js "github.com/reoring/sensorcheck/jsonschema"
	"github.com/reoring/sensorcheck/sensor"
	"github.com/reoring/sensorcheck/sensor/sensortest"
	jsonsrc "github.com/reoring/sensorcheck/source/json"
)

// ---- Helpers ----

func sensorSchema(tb testing.TB) *sc.Node {
	tb.Helper()
	s, err := sensor.Schema()
	if err != nil {
		tb.Fatalf("schema build failed: %v", err)
	}
	return s
}

// paddedReport returns the valid sensor report with extraFields undeclared
// string members added to status, as firmware with extra telemetry would send.
func paddedReport(extraFields int) []byte {
	doc := sensortest.Doc()
	for i := 0; i < extraFields; i++ {
		sensortest.Set(doc, "status.k"+strconv.Itoa(i), "v"+strconv.Itoa(i))
	}
	return sensortest.Bytes(doc)
}

var drivers = []sc.JSONDriver{nil, jsonsrc.Driver{}}

func useDriver(b *testing.B, d sc.JSONDriver) string {
	b.Helper()
	if d == nil {
		sc.UseDefaultJSONDriver()
	} else {
		sc.SetJSONDriver(d)
	}
	b.Cleanup(sc.UseDefaultJSONDriver)
	return sc.CurrentJSONDriver().Name()
}

// ---- Benchmarks ----

func BenchmarkParseBytes(b *testing.B) {
	for _, extra := range []int{0, 100, 1000} {
		data := paddedReport(extra)
		for _, d := range drivers {
			name := useDriver(b, d)
			b.Run(name+"/extra="+strconv.Itoa(extra), func(b *testing.B) {
				useDriver(b, d)
				b.SetBytes(int64(len(data)))
				b.ReportAllocs()
				for i := 0; i < b.N; i++ {
					if _, err := sc.ParseBytes(data, sc.ParseOpt{}); err != nil {
						b.Fatal(err)
					}
				}
			})
		}
	}
}

func BenchmarkParseBytes_Enforced(b *testing.B) {
	data := paddedReport(100)
	opt := sc.ParseOpt{Strictness: sc.Strictness{OnDuplicateKey: sc.Error}, MaxDepth: 8, MaxBytes: 1 << 20}
	b.SetBytes(int64(len(data)))
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		if _, err := sc.ParseBytes(data, opt); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkValidate(b *testing.B) {
	node := sensorSchema(b)
	v, err := sc.ParseBytes(paddedReport(100), sc.ParseOpt{})
	if err != nil {
		b.Fatal(err)
	}
	compiled, err := js.Compile(node)
	if err != nil {
		b.Fatal(err)
	}
	ctx := context.Background()

	b.Run("native", func(b *testing.B) {
		b.ReportAllocs()
		for i := 0; i < b.N; i++ {
			if err := sc.Validate(ctx, node, v, sc.ValidateOpt{}); err != nil {
				b.Fatal(err)
			}
		}
	})
	b.Run("jsonschema", func(b *testing.B) {
		b.ReportAllocs()
		for i := 0; i < b.N; i++ {
			if err := compiled.Validate(ctx, v, sc.ValidateOpt{}); err != nil {
				b.Fatal(err)
			}
		}
	})
}

func BenchmarkDetectDuplicateKeys(b *testing.B) {
	data := bytes.Replace(paddedReport(100), []byte(`"ip":`), []byte(`"ip":"x","ip":`), 1)
	b.SetBytes(int64(len(data)))
	for i := 0; i < b.N; i++ {
		if iss, err := sc.DetectJSONDuplicateKeysBytes(data, -1); err != nil || len(iss) != 1 {
			b.Fatalf("iss=%v err=%v", iss, err)
		}
	}
}
