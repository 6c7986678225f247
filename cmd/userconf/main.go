package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"

	j "github.com/goccy/go-json"

	userconfig "github.com/reoring/userconfig"
	"github.com/reoring/userconfig/internal/config"
	"github.com/reoring/userconfig/internal/logger"
	js "github.com/reoring/userconfig/jsonschema"
)

var demoInputs = []string{
	`{"id":"u1","email":"a@b.com","role":"intern"}`,
	`{"id":"u2","email":"a@b.com","role":"boss"}`,
	`{"id":123,"email":"a@b.com","role":"intern"}`,
}

func main() {
	os.Exit(run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

// run dispatches a subcommand and returns the process exit code:
// 0 on success, 1 when validation fails, 2 on usage or I/O errors.
func run(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	if len(args) < 1 {
		usage(stderr)
		return 2
	}
	switch args[0] {
	case "check":
		return checkCmd(args[1:], stdin, stdout, stderr)
	case "demo":
		return demoCmd(args[1:], stdout, stderr)
	case "schema":
		return schemaCmd(args[1:], stdout, stderr)
	default:
		usage(stderr)
		return 2
	}
}

func usage(w io.Writer) {
	fmt.Fprintln(w, "userconf\n\nUsage:\n  userconf check [-list] [-format json|yaml] [file|-]\n  userconf demo\n  userconf schema [-list]\n\nShared flags: -driver -max-depth -max-bytes -duplicate-keys -log-level (env USERCONF_*)")
}

func checkCmd(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	fs := newFlagSet("check", stderr)
	list := fs.Bool("list", false, "validate a list of users")
	format := fs.String("format", "json", "input format: json or yaml")
	cfg, log, ok := setup(fs, args, stderr)
	if !ok {
		return 2
	}
	if fs.NArg() > 1 {
		fs.Usage()
		return 2
	}

	input := fs.Arg(0)
	if input == "" {
		input = "-"
	}
	log = log.Child("input", input)

	data, err := readInput(input, stdin, cfg.MaxBytes)
	if errors.Is(err, errTooLarge) {
		log.Warn().Int64("max_bytes", cfg.MaxBytes).Msg("input rejected")
		iss := userconfig.Issue{Path: "/", Code: userconfig.CodeTruncated, Message: "Input too large"}
		if *list {
			return emit(stdout, log, userconfig.Fail[[]userconfig.User](iss))
		}
		return emit(stdout, log, userconfig.Fail[userconfig.User](iss))
	}
	if err != nil {
		log.Error().Err(err).Msg("read input")
		return 2
	}

	drv := cfg.JSONDriver()
	var src userconfig.Source
	switch *format {
	case "json":
		src = drv.NewBytes(data)
	case "yaml", "yml":
		src = userconfig.YAMLBytes(data)
	default:
		log.Error().Str("format", *format).Msg("unknown input format")
		return 2
	}
	log.Debug().Str("driver", drv.Name()).Int("bytes", len(data)).Bool("list", *list).Msg("checking")

	opt := cfg.ParseOpt()
	opt.OnWarning = func(iss userconfig.Issue) {
		log.Warn().Str("path", iss.Path).Str("code", iss.Code).Msg(iss.Message)
	}
	if *list {
		return emit(stdout, log, userconfig.ParseUsersConfigFrom(src, opt))
	}
	return emit(stdout, log, userconfig.ParseUserConfigFrom(src, opt))
}

func demoCmd(args []string, stdout, stderr io.Writer) int {
	fs := newFlagSet("demo", stderr)
	cfg, log, ok := setup(fs, args, stderr)
	if !ok {
		return 2
	}
	drv := cfg.JSONDriver()
	for _, in := range demoInputs {
		b, err := j.Marshal(userconfig.ParseUserConfigFrom(drv.NewBytes([]byte(in))))
		if err != nil {
			log.Error().Err(err).Msg("encode result")
			return 2
		}
		fmt.Fprintf(stdout, "%s\n  => %s\n", in, b)
	}
	return 0
}

func schemaCmd(args []string, stdout, stderr io.Writer) int {
	fs := newFlagSet("schema", stderr)
	list := fs.Bool("list", false, "emit the schema of a list of users")
	_, log, ok := setup(fs, args, stderr)
	if !ok {
		return 2
	}
	var get func() (*js.Schema, error)
	if *list {
		get = userconfig.UsersSchema().JSONSchema
	} else {
		get = userconfig.UserSchema().JSONSchema
	}
	s, err := get()
	if err != nil {
		log.Error().Err(err).Msg("build schema")
		return 2
	}
	b, err := j.MarshalIndent(s.AsRoot(), "", "  ")
	if err != nil {
		log.Error().Err(err).Msg("encode schema")
		return 2
	}
	fmt.Fprintln(stdout, string(b))
	return 0
}

// ---- helpers ----

var errTooLarge = errors.New("input too large")

func newFlagSet(name string, stderr io.Writer) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(stderr)
	return fs
}

// setup loads configuration and builds the logger.
func setup(fs *flag.FlagSet, args []string, stderr io.Writer) (*config.Config, *logger.Logger, bool) {
	cfg, err := config.Load(fs, args)
	if err != nil {
		if !errors.Is(err, flag.ErrHelp) {
			fmt.Fprintf(stderr, "%s: %v\n", fs.Name(), err)
		}
		return nil, nil, false
	}
	return cfg, logger.New(stderr, fs.Name(), cfg.LogLevel), true
}

func readInput(name string, stdin io.Reader, maxBytes int64) ([]byte, error) {
	r := stdin
	if name != "" && name != "-" {
		f, err := os.Open(name)
		if err != nil {
			return nil, fmt.Errorf("open input: %w", err)
		}
		defer f.Close()
		r = f
	}
	if maxBytes <= 0 {
		return io.ReadAll(r)
	}
	data, err := io.ReadAll(io.LimitReader(r, maxBytes+1))
	if err != nil {
		return nil, err
	}
	if int64(len(data)) > maxBytes {
		return nil, errTooLarge
	}
	return data, nil
}

type result interface {
	OK() bool
}

func emit(stdout io.Writer, log *logger.Logger, res result) int {
	b, err := j.Marshal(res)
	if err != nil {
		log.Error().Err(err).Msg("encode result")
		return 2
	}
	fmt.Fprintln(stdout, string(b))
	if !res.OK() {
		return 1
	}
	return 0
}
