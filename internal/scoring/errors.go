package scoring

import "fmt"

// RequestError is a transport-level failure: the endpoint could not be
// reached or its body could not be read.
type RequestError struct {
	Err error
}

func (e *RequestError) Error() string {
	return fmt.Sprintf("scoring request: %v", e.Err)
}

func (e *RequestError) Unwrap() error {
	return e.Err
}

// DecodeError means the payload matched neither the player list nor the
// error envelope.
type DecodeError struct {
	Err error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("scoring decode: %v", e.Err)
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}

// ApplicationError carries the message the endpoint returned in its error
// envelope. The message is meant for users.
type ApplicationError struct {
	Message    string
	StatusCode int
}

func (e *ApplicationError) Error() string {
	return e.Message
}
