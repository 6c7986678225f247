// Package gojson provides a JSON driver backed by goccy/go-json.
//
// The go-json Decoder.Token skips ',' and ':' without checking where they
// appear, and go-json's own Valid accepts leading zeros, truncated literals,
// raw control characters in strings and trailing NUL bytes. Every document is
// therefore checked with the encoding/json scanner first and only then
// tokenized.
//
//	userconfig.SetJSONDriver(gojson.Driver())
package gojson

import (
	"bytes"
	stdjson "encoding/json"
	"errors"
	"io"
	"strconv"
	"strings"

	j "github.com/goccy/go-json"

	userconfig "github.com/reoring/userconfig"
	eng "github.com/reoring/userconfig/internal/engine"
)

// ErrInvalidJSON is returned by the first NextToken call on a malformed document.
var ErrInvalidJSON = errors.New("gojson: invalid JSON document")

// Driver returns a userconfig.JSONDriver backed by goccy/go-json.
func Driver() userconfig.JSONDriver { return driver{} }

type driver struct{}

func (driver) NewReader(r io.Reader) userconfig.Source {
	return userconfig.SourceFromEngine(NewReader(r), userconfig.FormatJSON)
}
func (driver) NewBytes(b []byte) userconfig.Source {
	return userconfig.SourceFromEngine(NewBytes(b), userconfig.FormatJSON)
}
func (driver) Name() string { return "go-json" }

// ---- engine.TokenSource implementation using go-json Decoder ----

type containerKind int

const (
	kindObject containerKind = iota
	kindArray
)

type frame struct {
	kind         containerKind
	expectingKey bool
}

type source struct {
	dec    *j.Decoder
	err    error
	stack  []frame
	offset int64
}

// NewReader reads r fully and tokenizes it. Read failures are reported by
// the first NextToken call.
func NewReader(r io.Reader) eng.TokenSource {
	b, err := io.ReadAll(r)
	if err != nil {
		return &source{err: err, offset: -1}
	}
	return NewBytes(b)
}

// NewBytes wraps a byte slice into an engine.TokenSource using go-json.
func NewBytes(b []byte) eng.TokenSource {
	if !stdjson.Valid(b) {
		return &source{err: ErrInvalidJSON, offset: -1}
	}
	dec := j.NewDecoder(bytes.NewReader(b))
	dec.UseNumber()
	return &source{dec: dec, offset: -1}
}

func (s *source) NextToken() (eng.Token, error) {
	if s.err != nil {
		return eng.Token{}, s.err
	}
	tok, err := s.dec.Token()
	if err != nil {
		return eng.Token{}, err
	}
	s.offset = s.dec.InputOffset()

	switch v := tok.(type) {
	case j.Delim:
		switch v {
		case '{':
			s.stack = append(s.stack, frame{kind: kindObject, expectingKey: true})
			return s.token(eng.KindBeginObject), nil
		case '[':
			s.stack = append(s.stack, frame{kind: kindArray})
			return s.token(eng.KindBeginArray), nil
		case '}':
			s.pop()
			return s.token(eng.KindEndObject), nil
		case ']':
			s.pop()
			return s.token(eng.KindEndArray), nil
		}
	case string:
		if n := len(s.stack); n > 0 {
			top := &s.stack[n-1]
			if top.kind == kindObject && top.expectingKey {
				top.expectingKey = false
				t := s.token(eng.KindKey)
				t.String = v
				return t, nil
			}
		}
		s.valueDone()
		t := s.token(eng.KindString)
		t.String = v
		return t, nil
	case bool:
		s.valueDone()
		t := s.token(eng.KindBool)
		t.Bool = v
		return t, nil
	case j.Number:
		s.valueDone()
		t := s.token(eng.KindNumber)
		// the decoder hands out a view into its read buffer
		t.Number = strings.Clone(string(v))
		return t, nil
	case float64:
		s.valueDone()
		t := s.token(eng.KindNumber)
		t.Number = strconv.FormatFloat(v, 'g', -1, 64)
		return t, nil
	}
	s.valueDone()
	return s.token(eng.KindNull), nil
}

func (s *source) token(k eng.Kind) eng.Token { return eng.Token{Kind: k, Offset: s.offset} }

func (s *source) pop() {
	if n := len(s.stack); n > 0 {
		s.stack = s.stack[:n-1]
	}
	s.valueDone()
}

func (s *source) valueDone() {
	if n := len(s.stack); n > 0 {
		top := &s.stack[n-1]
		if top.kind == kindObject && !top.expectingKey {
			top.expectingKey = true
		}
	}
}

func (s *source) Location() int64 { return s.offset }
