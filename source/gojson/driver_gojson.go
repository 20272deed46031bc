// Package gojson provides the default JSON driver, backed by goccy/go-json.
package gojson

import (
	"bytes"
	"io"
	"strconv"

	j "github.com/goccy/go-json"
	"github.com/pkg/errors"

	"github.com/reoring/sensorcheck/document"
	eng "github.com/reoring/sensorcheck/internal/engine"
)

// Driver decodes documents with go-json and converts the generic tree into a
// document.Value.
type Driver struct{}

func (Driver) Name() string { return "go-json" }

// Decode parses exactly one JSON value from data. Input left after that value
// yields engine.ErrTrailingData.
func (Driver) Decode(data []byte) (document.Value, error) {
	dec := j.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var raw any
	if err := dec.Decode(&raw); err != nil {
		if err == io.EOF {
			return document.Value{}, io.ErrUnexpectedEOF
		}
		return document.Value{}, err
	}
	var extra any
	if err := dec.Decode(&extra); err != io.EOF {
		if err == nil {
			return document.Value{}, eng.ErrTrailingData
		}
		return document.Value{}, err
	}
	return fromAny(raw)
}

func fromAny(v any) (document.Value, error) {
	switch t := v.(type) {
	case nil:
		return document.Null(), nil
	case bool:
		return document.Bool(t), nil
	case string:
		return document.String(t), nil
	case j.Number:
		return document.Number(string(t)), nil
	case float64:
		return document.Number(strconv.FormatFloat(t, 'g', -1, 64)), nil
	case []any:
		elems := make([]document.Value, 0, len(t))
		for _, e := range t {
			ev, err := fromAny(e)
			if err != nil {
				return document.Value{}, err
			}
			elems = append(elems, ev)
		}
		return document.Array(elems...), nil
	case map[string]any:
		members := make(map[string]document.Value, len(t))
		for k, e := range t {
			mv, err := fromAny(e)
			if err != nil {
				return document.Value{}, errors.Wrapf(err, "member %q", k)
			}
			members[k] = mv
		}
		return document.Object(members), nil
	default:
		return document.Value{}, errors.Errorf("unsupported decoded type %T", v)
	}
}
