package entities

import "errors"

var (
	ErrorPlaylistEmpty = errors.New("playlist is empty")
	ErrorSessionClosed = errors.New("session is closed")
)
