package engine

import (
	"errors"
	"io"

	"github.com/reoring/sensorcheck/document"
)

// Kind represents token kinds from a generic source.
type Kind int

const (
	KindBeginObject Kind = iota
	KindEndObject
	KindBeginArray
	KindEndArray
	KindKey
	KindString
	KindNumber
	KindBool
	KindNull
)

// Token represents a streaming token with approximate input offset.
type Token struct {
	Kind   Kind
	String string
	Number string
	Bool   bool
	Offset int64
}

// TokenSource is a minimal interface required by the engine.
type TokenSource interface {
	NextToken() (Token, error)
	Location() int64
}

// ErrTrailingData reports input left over after the first complete value.
var ErrTrailingData = errors.New("unexpected data after top-level value")

// DecodeValue builds a document.Value from exactly one value of the token
// stream. Anything but io.EOF after that value is an error.
func DecodeValue(src TokenSource) (document.Value, error) {
	tok, err := src.NextToken()
	if err != nil {
		if err == io.EOF {
			return document.Value{}, io.ErrUnexpectedEOF
		}
		return document.Value{}, err
	}
	v, err := decodeValue(src, tok)
	if err != nil {
		return document.Value{}, err
	}
	if _, err := src.NextToken(); err != io.EOF {
		if err == nil {
			return document.Value{}, ErrTrailingData
		}
		return document.Value{}, err
	}
	return v, nil
}

// Scan reads exactly one value from src without building it. Input ending
// inside the value is io.ErrUnexpectedEOF; any token after it is
// ErrTrailingData.
func Scan(src TokenSource) error {
	depth, started := 0, false
	for {
		tok, err := src.NextToken()
		if err == io.EOF {
			if !started || depth > 0 {
				return io.ErrUnexpectedEOF
			}
			return nil
		}
		if err != nil {
			return err
		}
		if started && depth == 0 {
			return ErrTrailingData
		}
		started = true
		switch tok.Kind {
		case KindBeginObject, KindBeginArray:
			depth++
		case KindEndObject, KindEndArray:
			depth--
		}
	}
}

func decodeValue(src TokenSource, tok Token) (document.Value, error) {
	switch tok.Kind {
	case KindBeginObject:
		return decodeObject(src)
	case KindBeginArray:
		return decodeArray(src)
	case KindString:
		return document.String(tok.String), nil
	case KindNumber:
		return document.Number(tok.Number), nil
	case KindBool:
		return document.Bool(tok.Bool), nil
	case KindNull:
		return document.Null(), nil
	default:
		return document.Value{}, io.ErrUnexpectedEOF
	}
}

func decodeObject(src TokenSource) (document.Value, error) {
	m := make(map[string]document.Value)
	for {
		tok, err := src.NextToken()
		if err != nil {
			return document.Value{}, unexpectedEOF(err)
		}
		if tok.Kind == KindEndObject {
			return document.Object(m), nil
		}
		if tok.Kind != KindKey {
			return document.Value{}, io.ErrUnexpectedEOF
		}
		vt, err := src.NextToken()
		if err != nil {
			return document.Value{}, unexpectedEOF(err)
		}
		v, err := decodeValue(src, vt)
		if err != nil {
			return document.Value{}, err
		}
		// last occurrence wins, as with encoding/json
		m[tok.String] = v
	}
}

func decodeArray(src TokenSource) (document.Value, error) {
	arr := []document.Value{}
	for {
		tok, err := src.NextToken()
		if err != nil {
			return document.Value{}, unexpectedEOF(err)
		}
		if tok.Kind == KindEndArray {
			return document.Array(arr...), nil
		}
		v, err := decodeValue(src, tok)
		if err != nil {
			return document.Value{}, err
		}
		arr = append(arr, v)
	}
}

func unexpectedEOF(err error) error {
	if err == io.EOF {
		return io.ErrUnexpectedEOF
	}
	return err
}
