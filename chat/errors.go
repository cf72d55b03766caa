package chat

import "errors"

var (
	// ErrStreamerRequired is returned when a chat streamer is not provided.
	ErrStreamerRequired = errors.New("chat streamer required")

	// ErrEmptyMessage is returned when a message is empty after trimming.
	ErrEmptyMessage = errors.New("message is empty")

	// ErrSendInFlight is returned when a send is attempted while another
	// send is still streaming.
	ErrSendInFlight = errors.New("a send is already in flight")
)
