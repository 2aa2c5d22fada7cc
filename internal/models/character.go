package models

// Character represents one playable member of the session roster
type Character struct {
	// ID is the stable identifier assigned at seed time
	ID string `json:"id"`

	// Name is the display name shown on the TV and in the feed
	Name string `json:"name"`

	// RoleTag is the character's prom role (DJ, Football Star, ...)
	RoleTag string `json:"roleTag"`

	// Bio is the short flavor text shown on the character card
	Bio string `json:"bio"`

	// AvatarGlyph is the emoji used as the character's avatar
	AvatarGlyph string `json:"avatarGlyph"`

	// Alive is false once the GM has marked the character dead
	Alive bool `json:"alive"`

	// SuspicionScore counts accusations received, reset on death
	SuspicionScore int `json:"suspicionScore"`

	// Balance is the character's wallet balance in prom bucks
	Balance int `json:"balance"`

	// LoginCode is the code a player types to claim this character.
	// Matching is case-insensitive. Public views must strip it.
	LoginCode string `json:"loginCode"`

	// Seq is the seed-time ordering used by the TV roster view
	Seq int `json:"seq"`
}
