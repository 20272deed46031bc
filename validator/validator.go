// Package validator checks sensor report files and classifies the result
// into an Outcome.
package validator

import (
	"context"
	"io/fs"
	"os"
	"unicode/utf8"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"

	sc "github.com/reoring/sensorcheck"
	"github.com/reoring/sensorcheck/document"
	"github.com/reoring/sensorcheck/jsonschema"
	"github.com/reoring/sensorcheck/sensor"
)

// Engine selects how a parsed document is checked against the schema.
type Engine string

const (
	// EngineNative walks the schema tree directly.
	EngineNative Engine = "native"
	// EngineJSONSchema exports the schema tree as JSON Schema and validates
	// with a compiled JSON Schema validator.
	EngineJSONSchema Engine = "jsonschema"
)

// ParseEngine converts a flag value into an Engine.
func ParseEngine(s string) (Engine, error) {
	switch e := Engine(s); e {
	case EngineNative, EngineJSONSchema:
		return e, nil
	default:
		return "", errors.Errorf("unknown engine %q (want %s or %s)", s, EngineNative, EngineJSONSchema)
	}
}

// Options configures a Validator.
type Options struct {
	Engine     Engine
	CollectAll bool
	Parse      sc.ParseOpt
	// Schema overrides the sensor schema; nil means sensor.Schema().
	Schema *sc.Node
	// SchemaFile, when set and Schema is nil, names a JSON Schema document
	// (JSON or YAML) to import instead of the sensor schema.
	SchemaFile string
	Logger     zerolog.Logger
}

// DefaultOptions returns the native engine, first-failure reporting, no parse
// limits and a disabled logger.
func DefaultOptions() Options {
	return Options{
		Engine: EngineNative,
		Logger: zerolog.Nop(),
	}
}

// Validator checks files against one schema. It holds no per-file state and
// may be reused.
type Validator struct {
	opts      Options
	schema    *sc.Node
	compiled  *jsonschema.Validator
	schemaErr error
	sensor    bool // schema is the sensor report schema
}

// New prepares a Validator. Schema problems are not returned here; they are
// reported as a SchemaError outcome by every ValidateFile call whose file was
// read and parsed.
func New(opts Options) *Validator {
	if opts.Engine == "" {
		opts.Engine = EngineNative
	}
	v := &Validator{opts: opts, schema: opts.Schema}
	switch {
	case v.schema != nil:
		v.schemaErr = v.schema.Check()
	case opts.SchemaFile != "":
		var diag *jsonschema.Diag
		v.schema, diag, v.schemaErr = jsonschema.ImportFile(opts.SchemaFile)
		for _, w := range diag.Warnings() {
			opts.Logger.Warn().Str("schema", opts.SchemaFile).Msg(w)
		}
	default:
		v.schema, v.schemaErr = sensor.Schema()
		v.sensor = true
	}
	if v.schemaErr == nil {
		switch opts.Engine {
		case EngineNative:
		case EngineJSONSchema:
			v.compiled, v.schemaErr = jsonschema.Compile(v.schema)
		default:
			v.schemaErr = errors.Errorf("unknown engine %q", opts.Engine)
		}
	}
	return v
}

// Schema returns the schema tree used by v, or the error that prevented it
// from being built.
func (v *Validator) Schema() (*sc.Node, error) { return v.schema, v.schemaErr }

// ValidateFile reads, parses and validates the file at path. It never panics
// and never returns an error: every failure is an Outcome.
func (v *Validator) ValidateFile(ctx context.Context, path string) (out Outcome) {
	log := v.opts.Logger.With().Str("file", path).Str("engine", string(v.opts.Engine)).Logger()
	defer func() {
		if r := recover(); r != nil {
			err := errors.Errorf("panic: %v", r)
			out = Outcome{Kind: UnexpectedError, File: path, Detail: err.Error(), Err: err}
		}
		ev := log.Debug()
		if !out.OK() {
			ev = log.Info()
		}
		ev.Str("outcome", out.Kind.String()).Msg("validated")
	}()

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return Outcome{Kind: FileNotFound, File: path, Err: err}
		}
		return unexpected(path, errors.Wrap(err, "read file"))
	}
	log.Debug().Int("bytes", len(data)).Msg("read")
	if !utf8.Valid(data) {
		return unexpected(path, errors.New("file is not valid UTF-8"))
	}

	doc, err := sc.ParseBytes(data, v.parseOpt(log))
	if err != nil {
		var de *sc.DecodeError
		if errors.As(err, &de) {
			o := Outcome{Kind: ParseError, File: path, Detail: de.Error(), Line: de.Line, Column: de.Column, Err: err}
			if de.Path != "" {
				o.Path = sc.DottedPath(de.Path)
			}
			return o
		}
		return unexpected(path, err)
	}

	if v.schemaErr != nil {
		return Outcome{Kind: SchemaError, File: path, Detail: v.schemaErr.Error(), Err: v.schemaErr}
	}
	if err := v.validate(ctx, doc); err != nil {
		if iss, ok := sc.AsIssues(err); ok {
			return Outcome{Kind: ValidationError, File: path, Detail: iss[0].Message, Path: sc.DottedPath(iss[0].Path), Issues: iss, Err: err}
		}
		return unexpected(path, err)
	}

	if !v.sensor {
		return Outcome{Kind: Valid, File: path}
	}
	report, err := sensor.DecodeReport(doc)
	if err != nil {
		log.Warn().Err(err).Msg("valid document could not be decoded")
		return Outcome{Kind: Valid, File: path}
	}
	log.Debug().Str("ident", report.Info.Ident).Str("user", report.Info.User).Str("room", report.Location.Room).Msg("device")
	return Outcome{Kind: Valid, File: path, Report: report}
}

func (v *Validator) validate(ctx context.Context, doc document.Value) error {
	opt := sc.ValidateOpt{CollectAll: v.opts.CollectAll}
	if v.compiled != nil {
		return v.compiled.Validate(ctx, doc, opt)
	}
	return sc.Validate(ctx, v.schema, doc, opt)
}

func (v *Validator) parseOpt(log zerolog.Logger) sc.ParseOpt {
	opt := v.opts.Parse
	user := opt.OnWarning
	opt.OnWarning = func(it sc.Issue) {
		log.Warn().Str("path", sc.DottedPath(it.Path)).Str("code", it.Code).Msg(it.Message)
		if user != nil {
			user(it)
		}
	}
	return opt
}

func unexpected(path string, err error) Outcome {
	return Outcome{Kind: UnexpectedError, File: path, Detail: err.Error(), Err: err}
}

// ValidateFile validates path with DefaultOptions.
func ValidateFile(ctx context.Context, path string) Outcome {
	return New(DefaultOptions()).ValidateFile(ctx, path)
}
