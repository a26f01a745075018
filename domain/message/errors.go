package message

import "errors"

var (
	ErrPayloadEncoding = errors.New("payload encoding")
	ErrNoSender        = errors.New("message has no sender")
)
