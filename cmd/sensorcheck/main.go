// Command sensorcheck validates a sensor report file and prints a one-line
// verdict on stdout.
//
// Usage:
//
//	sensorcheck [FILE]
//
// FILE defaults to test.json. The exit status is 0 for a valid file, 1 for any
// failure and 2 for a usage error.
package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"slices"
	"strings"

	j "github.com/goccy/go-json"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	sc "github.com/reoring/sensorcheck"
	"github.com/reoring/sensorcheck/i18n"
	"github.com/reoring/sensorcheck/internal/logging"
	js "github.com/reoring/sensorcheck/jsonschema"
	"github.com/reoring/sensorcheck/sensor"
	jsonsrc "github.com/reoring/sensorcheck/source/json"
	"github.com/reoring/sensorcheck/validator"
)

// DefaultFile is validated when no argument is given.
const DefaultFile = "test.json"

const (
	exitValid   = 0
	exitInvalid = 1
	exitUsage   = 2
)

type options struct {
	engine        string
	all           bool
	output        string
	lang          string
	duplicateKeys string
	maxDepth      int
	maxBytes      int64
	printSchema   string
	schema        string
	driver        string
	log           logging.Config
}

func main() {
	os.Exit(run(context.Background(), os.Args[1:], os.Stdout, os.Stderr))
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	code := exitValid
	cmd := newCommand(stdout, &code)
	cmd.SetArgs(args)
	cmd.SetErr(stderr)
	if err := cmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintf(stderr, "Error: %v\n%s", err, cmd.UsageString())
		return exitUsage
	}
	return code
}

func newCommand(out io.Writer, code *int) *cobra.Command {
	opts := options{log: logging.DefaultConfig()}
	cmd := &cobra.Command{
		Use:           "sensorcheck [FILE]",
		Short:         "Validate a sensor report JSON file against the sensor schema.",
		Args:          cobra.MaximumNArgs(1),
		SilenceErrors: true,
		SilenceUsage:  true,
		RunE: func(cmd *cobra.Command, args []string) error {
			file := DefaultFile
			if len(args) == 1 {
				file = args[0]
			}
			return runCheck(cmd, out, code, opts, file)
		},
	}
	flags := cmd.Flags()
	flags.StringVar(&opts.engine, "engine", string(validator.EngineNative), "validation engine: native or jsonschema")
	flags.BoolVar(&opts.all, "all", false, "report every issue instead of the first one")
	flags.StringVarP(&opts.output, "output", "o", "text", "output format: text or json")
	flags.StringVar(&opts.lang, "lang", "en", "message language: "+strings.Join(i18n.Languages(), ", "))
	flags.StringVar(&opts.duplicateKeys, "duplicate-keys", "ignore", "duplicate JSON keys: ignore, warn or error")
	flags.IntVar(&opts.maxDepth, "max-depth", 0, "maximum nesting depth, 0 for unlimited")
	flags.Int64Var(&opts.maxBytes, "max-bytes", 0, "maximum document size in bytes, 0 for unlimited")
	flags.StringVar(&opts.printSchema, "print-schema", "", "print the sensor JSON Schema as json or yaml and exit")
	flags.StringVar(&opts.schema, "schema", "", "validate against this JSON Schema file (JSON or YAML) instead of the sensor schema")
	flags.StringVar(&opts.driver, "driver", "go-json", "JSON parser: go-json or encoding/json")
	flags.StringVar(&opts.log.Level, "log-level", opts.log.Level, "diagnostic log level on stderr")
	flags.StringVar(&opts.log.Format, "log-format", opts.log.Format, "diagnostic log format: console or json")
	return cmd
}

func runCheck(cmd *cobra.Command, out io.Writer, code *int, opts options, file string) error {
	logger := logging.WithComponent(logging.New(opts.log, cmd.ErrOrStderr()), "sensorcheck")

	vopts, err := validatorOptions(opts)
	if err != nil {
		return err
	}
	vopts.Logger = logger
	if opts.printSchema != "" {
		return printSchema(out, opts.printSchema, validator.New(vopts), opts.schema == "")
	}
	if !slices.Contains(i18n.Languages(), opts.lang) {
		return errors.Errorf("unknown language %q", opts.lang)
	}
	if opts.output != "text" && opts.output != "json" {
		return errors.Errorf("unknown output format %q", opts.output)
	}
	switch opts.driver {
	case "go-json":
		sc.UseDefaultJSONDriver()
	case "encoding/json":
		sc.SetJSONDriver(jsonsrc.Driver{})
	default:
		return errors.Errorf("unknown driver %q", opts.driver)
	}
	i18n.SetLanguage(opts.lang)

	outcome := validator.New(vopts).ValidateFile(cmd.Context(), file)
	if opts.output == "json" {
		b, err := j.Marshal(outcome)
		if err != nil {
			return err
		}
		fmt.Fprintln(out, string(b))
	} else {
		fmt.Fprintln(out, outcome.Message())
	}
	if !outcome.OK() {
		*code = exitInvalid
	}
	return nil
}

func validatorOptions(opts options) (validator.Options, error) {
	vopts := validator.DefaultOptions()
	engine, err := validator.ParseEngine(opts.engine)
	if err != nil {
		return vopts, err
	}
	vopts.Engine = engine
	vopts.CollectAll = opts.all
	switch opts.duplicateKeys {
	case "ignore":
		vopts.Parse.Strictness.OnDuplicateKey = sc.Ignore
	case "warn":
		vopts.Parse.Strictness.OnDuplicateKey = sc.Warn
	case "error":
		vopts.Parse.Strictness.OnDuplicateKey = sc.Error
	default:
		return vopts, errors.Errorf("unknown duplicate-keys policy %q", opts.duplicateKeys)
	}
	if opts.maxDepth < 0 || opts.maxBytes < 0 {
		return vopts, errors.New("limits must not be negative")
	}
	vopts.Parse.MaxDepth = opts.maxDepth
	vopts.Parse.MaxBytes = opts.maxBytes
	vopts.SchemaFile = opts.schema
	return vopts, nil
}

func printSchema(out io.Writer, format string, v *validator.Validator, builtin bool) error {
	node, err := v.Schema()
	if err != nil {
		return err
	}
	s := js.FromNode(node)
	if builtin {
		s.Title = sensor.Title
	}
	var b []byte
	switch format {
	case "json":
		if b, err = js.MarshalJSON(s); err == nil {
			b = append(b, '\n')
		}
	case "yaml":
		b, err = js.MarshalYAML(s)
	default:
		return errors.Errorf("unknown schema format %q", format)
	}
	if err != nil {
		return err
	}
	_, err = out.Write(b)
	return err
}
