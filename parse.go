package sensorcheck

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/reoring/sensorcheck/document"
	"github.com/reoring/sensorcheck/i18n"
	eng "github.com/reoring/sensorcheck/internal/engine"
	jsonsrc "github.com/reoring/sensorcheck/source/json"
)

// DecodeError reports input that could not be turned into a document: broken
// JSON text, trailing data, or a violated ParseOpt limit.
type DecodeError struct {
	Code   string // CodeParseError, CodeDuplicateKey or CodeTruncated
	Path   string // JSON Pointer for limit violations; empty for syntax errors
	Msg    string
	Offset int64 // index of the offending byte; -1 when unknown
	Line   int   // 1-based; 0 when unknown
	Column int   // 1-based; 0 when unknown
	Cause  error
}

func (e *DecodeError) Error() string {
	var b strings.Builder
	b.WriteString(e.Msg)
	if e.Line > 0 {
		fmt.Fprintf(&b, ": line %d column %d (char %d)", e.Line, e.Column, e.Offset)
	}
	return b.String()
}

func (e *DecodeError) Unwrap() error { return e.Cause }

// ParseBytes decodes data into a document.Value using the current JSON driver.
// The input is first checked by the strict encoding/json tokenizer, which also
// applies the duplicate-key, depth and size limits of opt. Every failure is a
// *DecodeError.
func ParseBytes(data []byte, opt ParseOpt) (document.Value, error) {
	if err := scan(data, opt); err != nil {
		return document.Value{}, err
	}
	v, err := CurrentJSONDriver().Decode(data)
	if err != nil {
		// data is well-formed here; a driver that rejects it (go-json on an
		// out-of-range number) is replaced by the tokenizer, which keeps literals.
		if v, err = (jsonsrc.Driver{}).Decode(data); err != nil {
			return document.Value{}, syntaxError(data, err)
		}
	}
	return v, nil
}

func scan(data []byte, opt ParseOpt) error {
	eo := eng.EnforceOptions{
		OnDuplicate: toEngineDup(opt.Strictness.OnDuplicateKey),
		MaxDepth:    opt.MaxDepth,
		MaxBytes:    opt.MaxBytes,
	}
	if opt.MaxBytes > 0 && int64(len(data)) > opt.MaxBytes {
		return &DecodeError{Code: CodeTruncated, Path: "/", Msg: fmt.Sprintf("document is %d bytes, limit is %d", len(data), opt.MaxBytes), Offset: -1}
	}
	if opt.OnWarning != nil {
		eo.IssueSink = func(si eng.SimpleIssue) {
			if si.Code == CodeDuplicateKey && eo.OnDuplicate == eng.DupWarn {
				opt.OnWarning(Issue{Path: si.Path, Code: si.Code, Message: limitMessage(si)})
			}
		}
	}
	src := jsonsrc.NewBytes(data)
	if eo.Enabled() {
		src = eng.WrapWithEnforcement(src, eo)
	}
	err := eng.Scan(src)
	if err == nil {
		return nil
	}
	var ie eng.IssueError
	if errors.As(err, &ie) {
		de := &DecodeError{Code: ie.Code, Path: ie.Path, Msg: limitMessage(ie.SimpleIssue), Offset: src.Location(), Cause: err}
		de.Line, de.Column = position(data, de.Offset)
		return de
	}
	return syntaxError(data, err)
}

func limitMessage(si eng.SimpleIssue) string {
	switch {
	case si.Code == CodeDuplicateKey:
		return i18n.T(CodeDuplicateKey, placement(si.Path))
	case si.Path == "/" || si.Path == "":
		return si.Message
	default:
		return si.Message + " at " + DottedPath(si.Path)
	}
}

// syntaxError converts a driver error into a DecodeError. The position comes
// from encoding/json, so it is the same whichever driver failed.
func syntaxError(data []byte, err error) *DecodeError {
	de := &DecodeError{Code: CodeParseError, Msg: strings.TrimPrefix(err.Error(), "json: "), Offset: -1, Cause: err}
	switch {
	case errors.Is(err, io.ErrUnexpectedEOF):
		de.Msg = "unexpected end of JSON input"
		de.Offset = int64(len(data))
	case errors.Is(err, eng.ErrTrailingData):
		de.Offset = trailingOffset(data)
	default:
		de.Offset = unmarshalOffset(data)
	}
	de.Line, de.Column = position(data, de.Offset)
	return de
}

// unmarshalOffset returns the index of the byte json.Unmarshal rejects, or
// len(data) when the input ends early. Decoder.Token reports offsets one byte
// earlier than Unmarshal, so the position always comes from Unmarshal.
func unmarshalOffset(data []byte) int64 {
	var se *json.SyntaxError
	var discard any
	if err := json.Unmarshal(data, &discard); !errors.As(err, &se) {
		return -1
	}
	if strings.Contains(se.Error(), "unexpected end") {
		return int64(len(data))
	}
	return max(se.Offset-1, 0)
}

// trailingOffset returns the index of the first byte after the leading JSON
// value and its trailing whitespace.
func trailingOffset(data []byte) int64 {
	dec := json.NewDecoder(bytes.NewReader(data))
	var discard json.RawMessage
	if err := dec.Decode(&discard); err != nil {
		return -1
	}
	off := dec.InputOffset()
	for off < int64(len(data)) && isSpace(data[off]) {
		off++
	}
	return off
}

func isSpace(c byte) bool { return c == ' ' || c == '\t' || c == '\r' || c == '\n' }

// position maps a byte index to a 1-based line and column.
func position(data []byte, off int64) (line, col int) {
	if off < 0 {
		return 0, 0
	}
	idx := int(min(off, int64(len(data))))
	before := data[:idx]
	line = 1 + bytes.Count(before, []byte{'\n'})
	col = idx - bytes.LastIndexByte(before, '\n')
	return line, col
}
