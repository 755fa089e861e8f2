package utils

import (
	"strconv"

	"github.com/bwmarrin/discordgo"
)

// StringPtr returns a pointer to the given string.
// This is a helper function for discordgo fields that require a *string.
func StringPtr(s string) *string {
	return &s
}

// InteractionUser returns the user behind an interaction, whether it came
// from a guild (Member set) or a direct message (User set).
func InteractionUser(i *discordgo.InteractionCreate) *discordgo.User {
	if i.Member != nil && i.Member.User != nil {
		return i.Member.User
	}
	return i.User
}

// InteractionRoles returns the member roles of a guild interaction.
func InteractionRoles(i *discordgo.InteractionCreate) []string {
	if i.Member == nil {
		return nil
	}
	return i.Member.Roles
}

// DisplayName prefers the guild nickname, then the global name, then the
// username.
func DisplayName(i *discordgo.InteractionCreate) string {
	if i.Member != nil && i.Member.Nick != "" {
		return i.Member.Nick
	}
	u := InteractionUser(i)
	if u == nil {
		return ""
	}
	if u.GlobalName != "" {
		return u.GlobalName
	}
	return u.Username
}

// ParseSnowflake converts a Discord id to the numeric participant id.
func ParseSnowflake(id string) (int64, bool) {
	n, err := strconv.ParseInt(id, 10, 64)
	if err != nil || n <= 0 {
		return 0, false
	}
	return n, true
}

// FormatSnowflake is the inverse of ParseSnowflake.
func FormatSnowflake(id int64) string {
	return strconv.FormatInt(id, 10)
}
