package discord

import (
	"encoding/json"
	"testing"
	"time"
)

func TestUserUnmarshal(t *testing.T) {
	t.Parallel()

	body := `{
		"id": "696969696969696969",
		"username": "nwunder",
		"discriminator": "0001",
		"avatar": null,
		"banner": null,
		"accent_color": null,
		"locale": "en-US",
		"mfa_enabled": true,
		"email": "n@example.com",
		"verified": true,
		"public_flags": 64
	}`
	var user User
	err := json.Unmarshal([]byte(body), &user)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	// the ID must survive as an exact 64-bit integer; it's far past what a
	// float64 can hold
	if user.ID != 696969696969696969 {
		t.Errorf("Expected ID %d, got %d", int64(696969696969696969), user.ID)
	}
	if user.Avatar != "" {
		t.Errorf("Expected a null avatar to decode as empty, got %q", user.Avatar)
	}
	if !user.MFAEnabled {
		t.Errorf("Expected mfa_enabled to be true")
	}
	if user.Email != "n@example.com" {
		t.Errorf("Expected email %q, got %q", "n@example.com", user.Email)
	}
	if got := user.String(); got != "nwunder#0001" {
		t.Errorf("Expected tag %q, got %q", "nwunder#0001", got)
	}
}

func TestGuildUnmarshal(t *testing.T) {
	t.Parallel()

	var guilds []Guild
	err := json.Unmarshal([]byte(testGuildsBody), &guilds)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if len(guilds) != 1 {
		t.Fatalf("Expected 1 guild, got %d", len(guilds))
	}
	guild := guilds[0]
	if guild.ID != 81384788765712384 {
		t.Errorf("Expected ID %d, got %d", int64(81384788765712384), guild.ID)
	}
	if guild.Name != "Discord API" {
		t.Errorf("Expected name %q, got %q", "Discord API", guild.Name)
	}
	if guild.Permissions != 104189632 {
		t.Errorf("Expected permissions %d, got %d", 104189632, guild.Permissions)
	}
	if len(guild.Features) != 1 || guild.Features[0] != "COMMUNITY" {
		t.Errorf("Expected features [COMMUNITY], got %v", guild.Features)
	}
}

func TestConnectionUnmarshal(t *testing.T) {
	t.Parallel()

	var connections []Connection
	err := json.Unmarshal([]byte(testConnectionsBody), &connections)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if len(connections) != 1 {
		t.Fatalf("Expected 1 connection, got %d", len(connections))
	}
	connection := connections[0]
	if connection.Type != "twitch" {
		t.Errorf("Expected type %q, got %q", "twitch", connection.Type)
	}
	if connection.Visibility != 1 {
		t.Errorf("Expected visibility 1, got %d", connection.Visibility)
	}
	if !connection.Verified {
		t.Errorf("Expected the connection to be verified")
	}
}

func TestSnowflakeTime(t *testing.T) {
	t.Parallel()

	// the example snowflake from Discord's developer documentation
	got := snowflakeTime(175928847299117063)
	expected := time.Date(2016, time.April, 30, 11, 18, 25, 796000000, time.UTC)
	if !got.Equal(expected) {
		t.Errorf("Expected %v, got %v", expected, got)
	}

	user := User{ID: 175928847299117063}
	if !user.CreatedAt().Equal(expected) {
		t.Errorf("Expected %v, got %v", expected, user.CreatedAt())
	}
}
