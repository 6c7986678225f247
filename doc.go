// Package userconfig turns untrusted text into validated User records.
//
//   - Two entry points, ParseUserConfig and ParseUsersConfig, return a Result
//     instead of an error: the validated value, or one human-readable message.
//   - Errors follow a fixed priority: parse error, top-level shape, missing
//     field, wrong type, invalid role. Validation stops at the first failure.
//   - Underneath, a Source (JSON via a pluggable JSONDriver, or YAML) feeds
//     Schema[T] validators, and failures are reported as Issues.
//
// Typical usage:
//
//	res := userconfig.ParseUserConfig(`{"id":"u1","email":"a@b.com","role":"intern"}`)
//	if u, ok := res.Value(); ok {
//		fmt.Println(u.Role())
//	}
//
//	users, err := userconfig.ParseFrom(ctx, userconfig.UsersSchema(), userconfig.YAMLBytes(data))
package userconfig
