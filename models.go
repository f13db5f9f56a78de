package discord

import (
	"strconv"
	"time"
)

// discordEpoch is the first millisecond of 2015, the instant Discord
// snowflake IDs count from.
const discordEpoch = 1420070400000

// snowflakeTime recovers the creation time embedded in a snowflake ID's top
// 42 bits.
func snowflakeTime(id int64) time.Time {
	return time.UnixMilli((id >> 22) + discordEpoch)
}

// User is a Discord user, as returned by Session.Identify. Which fields are
// populated depends on the scopes granted; Email and Verified, for example,
// need the email scope.
//
// IDs are decimal strings on the wire but are snowflakes too large for an
// IEEE-754 double, so they're decoded into an int64 here. Two Users are the
// same user exactly when their IDs are equal.
type User struct {
	ID            int64  `json:"id,string"`
	Username      string `json:"username"`
	Discriminator string `json:"discriminator"`
	Avatar        string `json:"avatar"`
	Flags         int    `json:"flags"`
	PublicFlags   int    `json:"public_flags"`
	Banner        string `json:"banner"`
	AccentColor   int    `json:"accent_color"`
	Locale        string `json:"locale"`
	MFAEnabled    bool   `json:"mfa_enabled"`
	Email         string `json:"email"`
	Verified      bool   `json:"verified"`
}

// String renders the user's tag, name#discriminator.
func (u User) String() string {
	return u.Username + "#" + u.Discriminator
}

// CreatedAt returns when the account was created, from the ID's embedded
// timestamp.
func (u User) CreatedAt() time.Time {
	return snowflakeTime(u.ID)
}

// Guild is a partial guild from the authorizing user's point of view, as
// returned by Session.Guilds. Permissions are the user's in that guild.
type Guild struct {
	ID          int64    `json:"id,string"`
	Name        string   `json:"name"`
	Icon        string   `json:"icon"`
	Owner       bool     `json:"owner"`
	Permissions int64    `json:"permissions,string"`
	Features    []string `json:"features"`
}

// String renders the guild as its name and ID.
func (g Guild) String() string {
	return g.Name + " (" + strconv.FormatInt(g.ID, 10) + ")"
}

// CreatedAt returns when the guild was created, from the ID's embedded
// timestamp.
func (g Guild) CreatedAt() time.Time {
	return snowflakeTime(g.ID)
}

// Connection is a third-party account linked to the user's Discord account,
// as returned by Session.Connections. Its ID is the ID on the third-party
// service, an opaque string rather than a snowflake.
type Connection struct {
	ID           string `json:"id"`
	Type         string `json:"type"`
	Name         string `json:"name"`
	Visibility   int    `json:"visibility"`
	FriendSync   bool   `json:"friend_sync"`
	ShowActivity bool   `json:"show_activity"`
	Verified     bool   `json:"verified"`
}
