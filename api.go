package userconfig

import (
	"context"

	js "github.com/reoring/userconfig/jsonschema"
)

// Schema validates a parsed value and builds the typed result.
type Schema[T any] interface {
	// Parse checks v and builds T. It stops at the first violation and
	// returns it as Issues.
	Parse(ctx context.Context, v any) (T, error)

	// Validate runs the same checks as Parse without building T.
	Validate(ctx context.Context, v any) error

	// ValidateValue verifies a value already typed as T.
	ValidateValue(ctx context.Context, v T) error

	// JSONSchema projects the schema into a JSON Schema representation.
	JSONSchema() (*js.Schema, error)
}

// SafeParse parses v into T, returning (zero, false) on validation error.
func SafeParse[T any](ctx context.Context, s Schema[T], v any) (T, bool) {
	val, err := s.Parse(ctx, v)
	if err != nil {
		var zero T
		return zero, false
	}
	return val, true
}

// Is returns true if v conforms to the schema s.
func Is[T any](ctx context.Context, s Schema[T], v any) bool {
	return s.Validate(ctx, v) == nil
}

// ParseUserConfig parses input as JSON and validates it as a single User.
// Malformed JSON yields "Invalid JSON"; valid JSON of the wrong shape (the
// literal 0, false, null, "" or an array included) yields a shape error.
func ParseUserConfig(input string) Result[User] {
	return ParseUserConfigFrom(JSONBytes([]byte(input)))
}

// ParseUsersConfig parses input as JSON and validates it as a list of Users.
// The first invalid element fails the whole call.
func ParseUsersConfig(input string) Result[[]User] {
	return ParseUsersConfigFrom(JSONBytes([]byte(input)))
}

// ParseUserConfigFrom is ParseUserConfig over any Source, with enforcement options.
func ParseUserConfigFrom(src Source, opts ...ParseOpt) Result[User] {
	return ResultOf(ParseFrom(context.Background(), UserSchema(), src, opts...))
}

// ParseUsersConfigFrom is ParseUsersConfig over any Source, with enforcement options.
func ParseUsersConfigFrom(src Source, opts ...ParseOpt) Result[[]User] {
	return ResultOf(ParseFrom(context.Background(), UsersSchema(), src, opts...))
}

// ValidateUser validates an already parsed value as a User.
func ValidateUser(v any) Result[User] {
	return ResultOf(UserSchema().Parse(context.Background(), v))
}

// ValidateUsers validates an already parsed value as a list of Users.
func ValidateUsers(v any) Result[[]User] {
	return ResultOf(UsersSchema().Parse(context.Background(), v))
}
