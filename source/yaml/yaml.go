// Package yaml adapts YAML documents to the engine token stream so the same
// validators run over YAML input. Scalars keep their resolved YAML type:
// `id: 123` is a number, `id: "123"` is text.
package yaml

import (
	"bytes"
	"errors"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"

	eng "github.com/reoring/userconfig/internal/engine"
)

// maxTokens bounds alias expansion.
const maxTokens = 1 << 20

var (
	ErrEmptyDocument   = errors.New("yaml: empty document")
	ErrMultipleDocs    = errors.New("yaml: more than one document")
	ErrNonScalarKey    = errors.New("yaml: mapping key is not a scalar")
	ErrTooManyTokens   = errors.New("yaml: document expands to too many values")
	ErrTooDeep         = errors.New("yaml: document nested too deeply")
	errUnsupportedNode = errors.New("yaml: unsupported node kind")
)

type source struct {
	toks []eng.Token
	pos  int
	err  error
}

// NewBytes decodes a single YAML document into an engine.TokenSource.
// Decoding failures are reported by the first NextToken call.
func NewBytes(b []byte) eng.TokenSource {
	toks, err := tokenize(b)
	return &source{toks: toks, err: err}
}

// NewReader reads r fully and delegates to NewBytes.
func NewReader(r io.Reader) eng.TokenSource {
	b, err := io.ReadAll(r)
	if err != nil {
		return &source{err: err}
	}
	return NewBytes(b)
}

func (s *source) NextToken() (eng.Token, error) {
	if s.err != nil {
		return eng.Token{}, s.err
	}
	if s.pos >= len(s.toks) {
		return eng.Token{}, io.EOF
	}
	t := s.toks[s.pos]
	s.pos++
	return t, nil
}

func (s *source) Location() int64 { return -1 }

func tokenize(b []byte) ([]eng.Token, error) {
	dec := yaml.NewDecoder(bytes.NewReader(b))
	var doc yaml.Node
	if err := dec.Decode(&doc); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, ErrEmptyDocument
		}
		return nil, err
	}
	var extra yaml.Node
	if err := dec.Decode(&extra); !errors.Is(err, io.EOF) {
		if err == nil {
			return nil, ErrMultipleDocs
		}
		return nil, err
	}
	w := &walker{}
	if err := w.walk(&doc); err != nil {
		return nil, err
	}
	return w.toks, nil
}

type walker struct {
	toks  []eng.Token
	depth int
}

func (w *walker) emit(t eng.Token) error {
	if len(w.toks) >= maxTokens {
		return ErrTooManyTokens
	}
	t.Offset = -1
	w.toks = append(w.toks, t)
	return nil
}

// walk recurses through aliases too, so depth is bounded here as well as by
// the yaml.v3 parser.
func (w *walker) walk(n *yaml.Node) error {
	if w.depth >= eng.MaxNesting {
		return ErrTooDeep
	}
	w.depth++
	defer func() { w.depth-- }()

	switch n.Kind {
	case yaml.DocumentNode:
		if len(n.Content) == 0 {
			return ErrEmptyDocument
		}
		return w.walk(n.Content[0])
	case yaml.AliasNode:
		return w.walk(n.Alias)
	case yaml.MappingNode:
		if err := w.emit(eng.Token{Kind: eng.KindBeginObject}); err != nil {
			return err
		}
		for i := 0; i+1 < len(n.Content); i += 2 {
			k := n.Content[i]
			if k.Kind == yaml.AliasNode {
				k = k.Alias
			}
			if k.Kind != yaml.ScalarNode {
				return fmt.Errorf("%w (line %d)", ErrNonScalarKey, k.Line)
			}
			if err := w.emit(eng.Token{Kind: eng.KindKey, String: k.Value}); err != nil {
				return err
			}
			if err := w.walk(n.Content[i+1]); err != nil {
				return err
			}
		}
		return w.emit(eng.Token{Kind: eng.KindEndObject})
	case yaml.SequenceNode:
		if err := w.emit(eng.Token{Kind: eng.KindBeginArray}); err != nil {
			return err
		}
		for _, c := range n.Content {
			if err := w.walk(c); err != nil {
				return err
			}
		}
		return w.emit(eng.Token{Kind: eng.KindEndArray})
	case yaml.ScalarNode:
		return w.scalar(n)
	default:
		return errUnsupportedNode
	}
}

func (w *walker) scalar(n *yaml.Node) error {
	switch n.ShortTag() {
	case "!!int", "!!float":
		return w.emit(eng.Token{Kind: eng.KindNumber, Number: n.Value})
	case "!!bool":
		var b bool
		if err := n.Decode(&b); err != nil {
			return err
		}
		return w.emit(eng.Token{Kind: eng.KindBool, Bool: b})
	case "!!null":
		return w.emit(eng.Token{Kind: eng.KindNull})
	default:
		// !!str plus timestamps and binary, which stay textual
		return w.emit(eng.Token{Kind: eng.KindString, String: n.Value})
	}
}
