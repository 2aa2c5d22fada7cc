package jukebox

import "errors"

// Define errors
var (
	ErrSongNotFound   = errors.New("song not in catalog")
	ErrThemeReserved  = errors.New("theme track can only be queued by force-play")
	ErrDuplicateEntry = errors.New("song is already queued or playing")
)
