package userconfig_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	userconfig "github.com/reoring/userconfig"
)

func TestParseRole(t *testing.T) {
	for _, r := range userconfig.Roles() {
		got, ok := userconfig.ParseRole(r.String())
		require.True(t, ok, r.String())
		assert.Equal(t, r, got)
	}
	for _, bad := range []string{"", "Intern", "ADMIN", "boss", "admin ", "intern|mentor"} {
		_, ok := userconfig.ParseRole(bad)
		assert.False(t, ok, bad)
	}
}

func TestRoles_Order(t *testing.T) {
	assert.Equal(t, []userconfig.Role{userconfig.RoleIntern, userconfig.RoleMentor, userconfig.RoleAdmin}, userconfig.Roles())
}

func TestRole_Text(t *testing.T) {
	b, err := json.Marshal(map[string]userconfig.Role{"r": userconfig.RoleMentor})
	require.NoError(t, err)
	assert.JSONEq(t, `{"r":"mentor"}`, string(b))

	var r userconfig.Role
	require.NoError(t, r.UnmarshalText([]byte("admin")))
	assert.Equal(t, userconfig.RoleAdmin, r)
	assert.Error(t, r.UnmarshalText([]byte("boss")))

	var zero userconfig.Role
	assert.False(t, zero.Valid())
	assert.Equal(t, "Role(0)", zero.String())
	_, err = zero.MarshalText()
	assert.Error(t, err)
}
