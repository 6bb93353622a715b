package errorx

import "fmt"

type Error struct {
	Code    Code
	Message string
}

func New(code Code, msg string, a ...any) Error {
	return Error{Code: code, Message: fmt.Sprintf(msg, a...)}
}

func (e Error) Error() string {
	return e.Message
}
