package userconfig

import (
	"context"
	"strconv"

	js "github.com/reoring/userconfig/jsonschema"
)

// UsersSchema returns the list validator: a JSON array whose every element
// passes UserSchema. The first failing element fails the list.
func UsersSchema() Schema[[]User] { return NewArraySchema(UserSchema(), "Users") }

// NewArraySchema returns an array schema backed by the given element schema.
// shape names the list in the "Invalid <shape> shape" message.
func NewArraySchema[E any](elem Schema[E], shape string) Schema[[]E] {
	return &arraySchema[E]{elem: elem, shape: shape}
}

type arraySchema[E any] struct {
	elem  Schema[E]
	shape string
}

func (a *arraySchema[E]) Parse(ctx context.Context, v any) ([]E, error) {
	if KindOf(v) != KindArray {
		return nil, singleIssue(IssueAt(RootPath(), CodeInvalidShape, map[string]string{"shape": a.shape}))
	}
	src := v.([]any)
	res := make([]E, 0, len(src))
	for i := range src {
		ev, err := a.elem.Parse(ctx, src[i])
		if err != nil {
			return nil, elementIssues(err, i)
		}
		res = append(res, ev)
	}
	return res, nil
}

func (a *arraySchema[E]) Validate(ctx context.Context, v any) error {
	_, err := a.Parse(ctx, v)
	return err
}

func (a *arraySchema[E]) ValidateValue(ctx context.Context, v []E) error {
	for i := range v {
		if err := a.elem.ValidateValue(ctx, v[i]); err != nil {
			return elementIssues(err, i)
		}
	}
	return nil
}

func (a *arraySchema[E]) JSONSchema() (*js.Schema, error) {
	items, err := a.elem.JSONSchema()
	if err != nil {
		return nil, err
	}
	return &js.Schema{Title: a.shape, Type: "array", Items: items}, nil
}

// elementIssues re-roots the element's first issue under /<i> and tags its
// message with the index, e.g. "Missing field: id at index 2".
func elementIssues(err error, i int) Issues {
	iss, ok := AsIssues(err)
	first, found := iss.First()
	if !ok || !found {
		first = Issue{Code: CodeInvalidShape, Message: err.Error(), Cause: err}
	}
	sub := first.Path
	if sub == "/" {
		sub = ""
	}
	first.Path = RootPath().Index(i).Pointer() + sub
	first.Message += " at index " + strconv.Itoa(i)
	params := make(map[string]any, len(first.Params)+1)
	for k, v := range first.Params {
		params[k] = v
	}
	params["index"] = i
	first.Params = params
	return singleIssue(first)
}
