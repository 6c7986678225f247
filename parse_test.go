package userconfig_test

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	userconfig "github.com/reoring/userconfig"
)

const validUser = `{"id":"u1","email":"a@b.com","role":"intern"}`

func TestParseFrom_DuplicateKey_Error(t *testing.T) {
	opt := userconfig.ParseOpt{Strictness: userconfig.Strictness{OnDuplicateKey: userconfig.Error}}
	_, err := userconfig.ParseFrom(context.Background(), userconfig.UserSchema(),
		userconfig.JSONBytes([]byte(`{"id":"a","id":"b","email":"a@b.com","role":"intern"}`)), opt)
	require.Error(t, err)
	iss, ok := userconfig.AsIssues(err)
	require.True(t, ok)
	assert.Equal(t, userconfig.CodeDuplicateKey, iss[0].Code)
	assert.Equal(t, "/id", iss[0].Path)
	assert.Equal(t, "Duplicate key: id", iss[0].Message)
}

func TestParseFrom_DuplicateKey_NestedPath(t *testing.T) {
	opt := userconfig.ParseOpt{Strictness: userconfig.Strictness{OnDuplicateKey: userconfig.Error}}
	res := userconfig.ParseUsersConfigFrom(userconfig.JSONBytes([]byte(`[`+validUser+`,{"role":"a","role":"b"}]`)), opt)
	require.False(t, res.OK())
	iss, _ := res.Issue()
	assert.Equal(t, "/1/role", iss.Path)
}

func TestParseFrom_DuplicateKey_Warn(t *testing.T) {
	var warnings []userconfig.Issue
	opt := userconfig.ParseOpt{
		Strictness: userconfig.Strictness{OnDuplicateKey: userconfig.Warn},
		OnWarning:  func(iss userconfig.Issue) { warnings = append(warnings, iss) },
	}
	res := userconfig.ParseUserConfigFrom(userconfig.JSONBytes([]byte(`{"id":"u1","email":"a@b.com","role":"intern","role":"admin"}`)), opt)
	require.True(t, res.OK(), res.Message())
	u, _ := res.Value()
	assert.Equal(t, userconfig.RoleAdmin, u.Role())
	require.Len(t, warnings, 1)
	assert.Equal(t, "/role", warnings[0].Path)
}

func TestParseFrom_MaxDepth(t *testing.T) {
	opt := userconfig.ParseOpt{MaxDepth: 2}
	res := userconfig.ParseUserConfigFrom(userconfig.JSONBytes([]byte(`{"id":"u1","email":"a@b.com","role":"intern","x":{"y":{}}}`)), opt)
	require.False(t, res.OK())
	iss, _ := res.Issue()
	assert.Equal(t, userconfig.CodeParseError, iss.Code)
	assert.Equal(t, "/x/y", iss.Path)
	assert.Equal(t, "Maximum depth exceeded", res.Message())

	// the same document passes with room for one more level
	opt.MaxDepth = 3
	assert.True(t, userconfig.ParseUserConfigFrom(userconfig.JSONBytes([]byte(`{"id":"u1","email":"a@b.com","role":"intern","x":{"y":{}}}`)), opt).OK())
}

func TestParseFrom_MaxBytes(t *testing.T) {
	padded := `{"id":"u1","email":"a@b.com","role":"intern","pad":"` + strings.Repeat("x", 256) + `"}`
	res := userconfig.ParseUserConfigFrom(userconfig.JSONBytes([]byte(padded)), userconfig.ParseOpt{MaxBytes: 64})
	require.False(t, res.OK())
	iss, _ := res.Issue()
	assert.Equal(t, userconfig.CodeTruncated, iss.Code)
}

func TestParseFrom_NilSchema(t *testing.T) {
	_, err := userconfig.ParseFrom[userconfig.User](context.Background(), nil, userconfig.JSONBytes([]byte(validUser)))
	require.Error(t, err)
}

func TestStreamParse(t *testing.T) {
	ctx := context.Background()

	u, err := userconfig.StreamParse(ctx, userconfig.UserSchema(), strings.NewReader(validUser))
	require.NoError(t, err)
	assert.Equal(t, "u1", u.ID())

	users, err := userconfig.StreamParse(ctx, userconfig.UsersSchema(), strings.NewReader(`[`+validUser+`]`), userconfig.ParseOpt{MaxBytes: 1024})
	require.NoError(t, err)
	assert.Len(t, users, 1)

	data := append([]byte(validUser), bytes.Repeat([]byte(" "), 1024)...)
	_, err = userconfig.StreamParse(ctx, userconfig.UserSchema(), bytes.NewReader(data), userconfig.ParseOpt{MaxBytes: 64})
	iss, ok := userconfig.AsIssues(err)
	require.True(t, ok)
	assert.Equal(t, userconfig.CodeTruncated, iss[0].Code)

	_, err = userconfig.StreamParse(ctx, userconfig.UserSchema(), strings.NewReader(`{"id":`))
	assert.EqualError(t, err, "Invalid JSON")
}

func TestYAMLSource(t *testing.T) {
	doc := []byte(`
- id: u1
  email: a@b.com
  role: intern
- id: "42"
  email: c@d.com
  role: admin
  team: platform
`)
	res := userconfig.ParseUsersConfigFrom(userconfig.YAMLBytes(doc))
	require.True(t, res.OK(), res.Message())
	users, _ := res.Value()
	require.Len(t, users, 2)
	assert.Equal(t, "42", users[1].ID())
	assert.Equal(t, userconfig.RoleAdmin, users[1].Role())

	cases := []struct {
		name string
		doc  string
		want string
	}{
		{"number_id", "id: 42\nemail: a@b.com\nrole: intern\n", "Invalid type for id (expected string)"},
		{"bool_role", "id: u1\nemail: a@b.com\nrole: true\n", "Invalid role (expected intern|mentor|admin)"},
		{"missing_email", "id: u1\nrole: intern\n", "Missing field: email"},
		{"scalar_root", "hello\n", "Invalid User shape"},
		{"malformed", "id: [u1\n", "Invalid YAML"},
		{"empty", "", "Invalid YAML"},
		{"two_documents", "id: a\n---\nid: b\n", "Invalid YAML"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, userconfig.ParseUserConfigFrom(userconfig.YAMLBytes([]byte(tc.doc))).Message())
		})
	}
}

func TestYAMLSource_Aliases(t *testing.T) {
	doc := []byte(`
base: &who u1
id: *who
email: a@b.com
role: mentor
`)
	res := userconfig.ParseUserConfigFrom(userconfig.YAMLReader(bytes.NewReader(doc)))
	require.True(t, res.OK(), res.Message())
	u, _ := res.Value()
	assert.Equal(t, "u1", u.ID())
}

type recordingDriver struct {
	userconfig.JSONDriver
	calls int
}

func (d *recordingDriver) NewBytes(b []byte) userconfig.Source {
	d.calls++
	return d.JSONDriver.NewBytes(b)
}

func TestSetJSONDriver(t *testing.T) {
	t.Cleanup(userconfig.UseDefaultJSONDriver)

	d := &recordingDriver{JSONDriver: userconfig.CurrentJSONDriver()}
	userconfig.SetJSONDriver(d)
	userconfig.SetJSONDriver(nil) // ignored

	assert.True(t, userconfig.ParseUserConfig(validUser).OK())
	assert.Equal(t, 1, d.calls)

	userconfig.UseDefaultJSONDriver()
	assert.Equal(t, "encoding/json", userconfig.CurrentJSONDriver().Name())
}
