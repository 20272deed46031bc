package validator

import (
	"strconv"

	j "github.com/goccy/go-json"
	"github.com/pkg/errors"

	sc "github.com/reoring/sensorcheck"
	"github.com/reoring/sensorcheck/i18n"
	"github.com/reoring/sensorcheck/sensor"
)

// Kind is the category of an Outcome. The set is closed.
type Kind int

const (
	Valid Kind = iota
	FileNotFound
	ParseError
	SchemaError
	ValidationError
	UnexpectedError
)

func (k Kind) String() string {
	switch k {
	case Valid:
		return "valid"
	case FileNotFound:
		return "file_not_found"
	case ParseError:
		return "parse_error"
	case SchemaError:
		return "schema_error"
	case ValidationError:
		return "validation_error"
	case UnexpectedError:
		return "unexpected_error"
	default:
		return "Kind(" + strconv.Itoa(int(k)) + ")"
	}
}

// Outcome is the result of validating one file.
type Outcome struct {
	Kind Kind
	File string
	// Detail is the human readable cause; empty for Valid and FileNotFound.
	Detail string
	// Path is the dotted location of the first issue (ValidationError) or of
	// a violated parse limit (ParseError).
	Path string
	// Line and Column locate a ParseError in the input; 0 when unknown.
	Line, Column int
	// Issues lists validation issues; more than one only with CollectAll.
	Issues sc.Issues
	// Report is the decoded document of a Valid outcome, nil if it could not
	// be decoded.
	Report *sensor.Report
	// Err is the underlying error, if any.
	Err error
}

// OK reports whether the file is valid.
func (o Outcome) OK() bool { return o.Kind == Valid }

// Message renders the one-line verdict in the current i18n language.
func (o Outcome) Message() string {
	data := map[string]string{"file": o.File, "detail": o.Detail}
	switch o.Kind {
	case Valid:
		return i18n.T("outcome.valid", data)
	case FileNotFound:
		return i18n.T("outcome.file_not_found", data)
	case ParseError:
		return i18n.T("outcome.parse_error", data)
	case SchemaError:
		return i18n.T("outcome.schema_error", data)
	case ValidationError:
		if n := len(o.Issues) - 1; n > 0 {
			data["detail"] += " " + i18n.T("more_issues", map[string]string{"n": strconv.Itoa(n)})
		}
		return i18n.T("outcome.validation_error", data)
	default:
		return i18n.T("outcome.unexpected_error", data)
	}
}

type wireIssue struct {
	Path    string         `json:"path"`
	Code    string         `json:"code"`
	Message string         `json:"message"`
	Params  map[string]any `json:"params,omitempty"`
}

type wireOutcome struct {
	File    string         `json:"file"`
	Outcome string         `json:"outcome"`
	Valid   bool           `json:"valid"`
	Message string         `json:"message"`
	Detail  string         `json:"detail,omitempty"`
	Path    string         `json:"path,omitempty"`
	Line    int            `json:"line,omitempty"`
	Column  int            `json:"column,omitempty"`
	Issues  []wireIssue    `json:"issues,omitempty"`
	Report  *sensor.Report `json:"report,omitempty"`
}

// MarshalJSON renders the outcome as a single JSON object.
func (o Outcome) MarshalJSON() ([]byte, error) {
	w := wireOutcome{
		File:    o.File,
		Outcome: o.Kind.String(),
		Valid:   o.OK(),
		Message: o.Message(),
		Detail:  o.Detail,
		Path:    o.Path,
		Line:    o.Line,
		Column:  o.Column,
		Report:  o.Report,
	}
	for _, it := range o.Issues {
		w.Issues = append(w.Issues, wireIssue{Path: it.Path, Code: it.Code, Message: it.Message, Params: it.Params})
	}
	b, err := j.Marshal(w)
	if err != nil {
		return nil, errors.Wrap(err, "marshal outcome")
	}
	return b, nil
}
