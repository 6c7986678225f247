package userconfig

import (
	"fmt"
	"strings"
)

// Role is the closed set of user roles. The zero value is not a valid role.
type Role int

const (
	RoleIntern Role = iota + 1
	RoleMentor
	RoleAdmin
)

// roleNames is the only place roles are spelled out; parsing, messages and
// the JSON Schema enum all derive from it. Order is the display order.
var roleNames = [...]string{
	RoleIntern: "intern",
	RoleMentor: "mentor",
	RoleAdmin:  "admin",
}

// Roles returns every valid role in display order.
func Roles() []Role {
	out := make([]Role, 0, len(roleNames)-1)
	for r := RoleIntern; int(r) < len(roleNames); r++ {
		out = append(out, r)
	}
	return out
}

// ParseRole maps a literal to its Role. Matching is exact and case-sensitive.
func ParseRole(s string) (Role, bool) {
	for _, r := range Roles() {
		if roleNames[r] == s {
			return r, true
		}
	}
	return 0, false
}

// Valid reports whether r is one of the declared roles.
func (r Role) Valid() bool { return r >= RoleIntern && int(r) < len(roleNames) }

func (r Role) String() string {
	if !r.Valid() {
		return fmt.Sprintf("Role(%d)", int(r))
	}
	return roleNames[r]
}

// MarshalText implements encoding.TextMarshaler.
func (r Role) MarshalText() ([]byte, error) {
	if !r.Valid() {
		return nil, fmt.Errorf("userconfig: invalid role %d", int(r))
	}
	return []byte(roleNames[r]), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (r *Role) UnmarshalText(b []byte) error {
	v, ok := ParseRole(string(b))
	if !ok {
		return fmt.Errorf("userconfig: unknown role %q", string(b))
	}
	*r = v
	return nil
}

// roleChoices renders the accepted literals as "intern|mentor|admin".
func roleChoices() string {
	names := make([]string, 0, len(roleNames)-1)
	for _, r := range Roles() {
		names = append(names, r.String())
	}
	return strings.Join(names, "|")
}
