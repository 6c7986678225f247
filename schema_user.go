package userconfig

import (
	"context"

	js "github.com/reoring/userconfig/jsonschema"
)

// UserSchema returns the single-record validator. Checks run in a fixed
// order (shape, id, email, role) and stop at the first violation. Unknown
// keys are ignored.
func UserSchema() Schema[User] { return userSchema{} }

type userSchema struct{}

// textFields are the plain string fields, in check order. role follows them.
var textFields = [...]string{"id", "email"}

const fieldRole = "role"

func (userSchema) Parse(ctx context.Context, v any) (User, error) {
	u, iss, ok := checkUser(v, RootPath())
	if !ok {
		return User{}, singleIssue(iss)
	}
	return u, nil
}

func (s userSchema) Validate(ctx context.Context, v any) error {
	_, err := s.Parse(ctx, v)
	return err
}

func (userSchema) ValidateValue(ctx context.Context, u User) error {
	if !u.role.Valid() {
		return singleIssue(roleIssue(RootPath()))
	}
	return nil
}

func (userSchema) JSONSchema() (*js.Schema, error) {
	roles := make([]string, 0, len(roleNames)-1)
	for _, r := range Roles() {
		roles = append(roles, r.String())
	}
	props := make(map[string]*js.Schema, len(textFields)+1)
	required := make([]string, 0, len(textFields)+1)
	for _, f := range textFields {
		props[f] = &js.Schema{Type: "string"}
		required = append(required, f)
	}
	props[fieldRole] = &js.Schema{Type: "string", Enum: roles}
	required = append(required, fieldRole)
	return &js.Schema{
		Title:                "User",
		Type:                 "object",
		Properties:           props,
		Required:             required,
		AdditionalProperties: true,
	}, nil
}

// checkUser validates v as a User located at `at`.
func checkUser(v any, at PathRef) (User, Issue, bool) {
	if KindOf(v) != KindObject {
		return User{}, IssueAt(at, CodeInvalidShape, map[string]string{"shape": "User"}), false
	}
	obj := v.(map[string]any)

	var text [len(textFields)]string
	for i, name := range textFields {
		raw, present := obj[name]
		if !present {
			return User{}, missingIssue(at, name), false
		}
		if KindOf(raw) != KindText {
			return User{}, IssueAt(at.Field(name), CodeInvalidType, map[string]string{"field": name, "expected": "string"}), false
		}
		text[i] = raw.(string)
	}

	raw, present := obj[fieldRole]
	if !present {
		return User{}, missingIssue(at, fieldRole), false
	}
	// any non-text value is reported as an invalid role, not a type error
	if KindOf(raw) != KindText {
		return User{}, roleIssue(at), false
	}
	role, ok := ParseRole(raw.(string))
	if !ok {
		return User{}, roleIssue(at), false
	}

	return User{id: text[0], email: text[1], role: role}, Issue{}, true
}

func missingIssue(at PathRef, name string) Issue {
	return IssueAt(at.Field(name), CodeRequired, map[string]string{"field": name})
}

func roleIssue(at PathRef) Issue {
	return IssueAt(at.Field(fieldRole), CodeInvalidEnum, map[string]string{"field": fieldRole, "expected": roleChoices()})
}
