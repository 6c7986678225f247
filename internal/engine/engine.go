package engine

import (
	"encoding/json"
	"errors"
	"io"
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

var (
	// ErrUnexpectedToken reports a token that cannot appear at the current position.
	ErrUnexpectedToken = errors.New("engine: unexpected token")
	// ErrTrailingData reports input left over after the root value.
	ErrTrailingData = errors.New("engine: trailing data after root value")
	// ErrNestingTooDeep reports input nested deeper than MaxNesting.
	ErrNestingTooDeep = errors.New("engine: exceeded max nesting depth")
)

// MaxNesting bounds container nesting regardless of EnforceOptions.MaxDepth,
// matching the limit encoding/json applies when scanning.
const MaxNesting = 10000

// DecodeDocument builds the value tree for exactly one root value. The source
// must be exhausted afterwards; anything else is treated as malformed input.
func DecodeDocument(src TokenSource) (any, error) {
	v, err := DecodeAnyFromSource(src)
	if err != nil {
		return nil, err
	}
	if err := ExpectEnd(src); err != nil {
		return nil, err
	}
	return v, nil
}

// ExpectEnd reports ErrTrailingData unless src is exhausted.
func ExpectEnd(src TokenSource) error {
	_, err := src.NextToken()
	switch {
	case errors.Is(err, io.EOF):
		return nil
	case err == nil:
		return ErrTrailingData
	default:
		return err
	}
}

// DecodeAnyFromSource builds an "any" value from the streaming token source.
// Objects become map[string]any, arrays []any, numbers json.Number.
func DecodeAnyFromSource(src TokenSource) (any, error) {
	tok, err := src.NextToken()
	if err != nil {
		return nil, err
	}
	return decodeValue(src, tok, 0)
}

func decodeValue(src TokenSource, tok Token, depth int) (any, error) {
	switch tok.Kind {
	case KindBeginObject, KindBeginArray:
		if depth >= MaxNesting {
			return nil, ErrNestingTooDeep
		}
		if tok.Kind == KindBeginObject {
			return decodeObject(src, depth+1)
		}
		return decodeArray(src, depth+1)
	case KindString:
		return tok.String, nil
	case KindNumber:
		return json.Number(tok.Number), nil
	case KindBool:
		return tok.Bool, nil
	case KindNull:
		return nil, nil
	default:
		return nil, ErrUnexpectedToken
	}
}

func decodeObject(src TokenSource, depth int) (any, error) {
	m := make(map[string]any)
	for {
		tok, err := src.NextToken()
		if err != nil {
			return nil, eofAsUnexpected(err)
		}
		if tok.Kind == KindEndObject {
			return m, nil
		}
		if tok.Kind != KindKey {
			return nil, ErrUnexpectedToken
		}
		vt, err := src.NextToken()
		if err != nil {
			return nil, eofAsUnexpected(err)
		}
		v, err := decodeValue(src, vt, depth)
		if err != nil {
			return nil, err
		}
		// later duplicates overwrite earlier ones
		m[tok.String] = v
	}
}

func decodeArray(src TokenSource, depth int) (any, error) {
	arr := []any{}
	for {
		tok, err := src.NextToken()
		if err != nil {
			return nil, eofAsUnexpected(err)
		}
		if tok.Kind == KindEndArray {
			return arr, nil
		}
		v, err := decodeValue(src, tok, depth)
		if err != nil {
			return nil, err
		}
		arr = append(arr, v)
	}
}

// An EOF inside a container means the document was cut short.
func eofAsUnexpected(err error) error {
	if errors.Is(err, io.EOF) {
		return io.ErrUnexpectedEOF
	}
	return err
}
