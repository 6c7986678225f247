package userconfig

import (
	"context"
	"errors"
	"io"

	eng "github.com/reoring/userconfig/internal/engine"
)

// ParseFrom is the primary entry point. It consumes tokens from the Source,
// builds the parsed tree, and delegates validation to the Schema.
//
// Malformed input fails with a parse_error issue ("Invalid JSON" or
// "Invalid YAML") before the Schema is consulted. MaxBytes is checked against
// the source's reported offset, so it only applies to sources that track one;
// StreamParse enforces it for any reader.
func ParseFrom[T any](ctx context.Context, s Schema[T], src Source, opts ...ParseOpt) (T, error) {
	var zero T
	if s == nil || src == nil {
		return zero, singleIssue(Issue{Path: "/", Code: CodeParseError, Message: "nil schema or source"})
	}
	v, err := decodeTree(src, lastOpt(opts))
	if err != nil {
		return zero, err
	}
	return s.Parse(ctx, v)
}

// StreamParse validates JSON read from r. When MaxBytes is set it enforces
// the size cap up front, otherwise it delegates directly to ParseFrom.
func StreamParse[T any](ctx context.Context, s Schema[T], r io.Reader, opts ...ParseOpt) (T, error) {
	opt := lastOpt(opts)
	if opt.MaxBytes > 0 {
		data, err := io.ReadAll(io.LimitReader(r, opt.MaxBytes+1))
		if err != nil {
			var zero T
			return zero, singleIssue(Issue{Path: "/", Code: CodeParseError, Message: err.Error(), Cause: err})
		}
		if int64(len(data)) > opt.MaxBytes {
			var zero T
			return zero, singleIssue(Issue{Path: "/", Code: CodeTruncated, Message: "Input too large"})
		}
		return ParseFrom(ctx, s, JSONBytes(data), opts...)
	}
	return ParseFrom(ctx, s, JSONReader(r), opts...)
}

// ---- helpers (options, decode, error mapping) ----

func lastOpt(opts []ParseOpt) ParseOpt {
	if len(opts) == 0 {
		return ParseOpt{}
	}
	return opts[len(opts)-1]
}

func decodeTree(src Source, opt ParseOpt) (any, error) {
	v, err := eng.DecodeDocument(enforcedTokens(src, opt))
	if err != nil {
		return nil, toIssues(err, src.Format())
	}
	return v, nil
}

// enforcedTokens adapts src to the engine and applies the duplicate-key,
// depth and size checks requested by opt.
func enforcedTokens(src Source, opt ParseOpt) eng.TokenSource {
	ts := engineTokenSource(src)
	eo := eng.EnforceOptions{
		OnDuplicate: toEngineDup(opt.Strictness.OnDuplicateKey),
		MaxDepth:    opt.MaxDepth,
		MaxBytes:    opt.MaxBytes,
	}
	if opt.OnWarning != nil {
		eo.IssueSink = func(si eng.SimpleIssue) {
			opt.OnWarning(Issue{Path: si.Path, Code: si.Code, Message: si.Message})
		}
	}
	if eo.Enabled() {
		ts = eng.WrapWithEnforcement(ts, eo)
	}
	return ts
}

func toIssues(err error, f Format) Issues {
	var ie eng.IssueError
	if errors.As(err, &ie) {
		return singleIssue(Issue{Path: ie.Path, Code: ie.Code, Message: ie.Message, Cause: err})
	}
	iss := IssueAt(RootPath(), CodeParseError, map[string]string{"format": f.String()})
	iss.Cause = err
	return singleIssue(iss)
}

func toEngineDup(s Severity) eng.DuplicateStrictness {
	switch s {
	case Error:
		return eng.DupError
	case Warn:
		return eng.DupWarn
	default:
		return eng.DupIgnore
	}
}
