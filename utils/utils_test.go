package utils

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/bwmarrin/discordgo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"surveybot/model"
)

func TestCheckAuth(t *testing.T) {
	open := NewAuthorizer(model.Auth{})
	assert.True(t, open.CheckAuth("1", nil))

	a := NewAuthorizer(model.Auth{Developers: []string{"42"}, AdminsRoles: []string{"admin"}})
	assert.True(t, a.CheckAuth("42", nil))
	assert.True(t, a.CheckAuth("7", []string{"member", "admin"}))
	assert.False(t, a.CheckAuth("7", []string{"member"}))
}

func TestInteractionUser(t *testing.T) {
	guild := &discordgo.InteractionCreate{Interaction: &discordgo.Interaction{
		Member: &discordgo.Member{Nick: "nick", User: &discordgo.User{ID: "1", Username: "user"}, Roles: []string{"r"}},
	}}
	assert.Equal(t, "1", InteractionUser(guild).ID)
	assert.Equal(t, "nick", DisplayName(guild))
	assert.Equal(t, []string{"r"}, InteractionRoles(guild))

	dm := &discordgo.InteractionCreate{Interaction: &discordgo.Interaction{
		User: &discordgo.User{ID: "2", Username: "user", GlobalName: "Global"},
	}}
	assert.Equal(t, "2", InteractionUser(dm).ID)
	assert.Equal(t, "Global", DisplayName(dm))
	assert.Nil(t, InteractionRoles(dm))
}

func TestSnowflake(t *testing.T) {
	id, ok := ParseSnowflake("175928847299117063")
	require.True(t, ok)
	assert.Equal(t, "175928847299117063", FormatSnowflake(id))

	for _, bad := range []string{"", "abc", "-5", "0"} {
		_, ok := ParseSnowflake(bad)
		assert.False(t, ok, bad)
	}
}

func TestNewLogger(t *testing.T) {
	l, err := NewLogger("debug", true)
	require.NoError(t, err)
	assert.NotNil(t, l)

	_, err = NewLogger("loud", false)
	assert.Error(t, err)
}

func TestJSON(t *testing.T) {
	rec := httptest.NewRecorder()
	ErrorJSON(rec, http.StatusNotFound, "nope")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	assert.JSONEq(t, `{"error":"nope"}`, rec.Body.String())
}
