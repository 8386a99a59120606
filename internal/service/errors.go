package service

import (
	"errors"
	"fmt"
)

var errNotObject = errors.New("message body is not a JSON object")

// DeserializationError тело сообщения не разбирается в событие топика.
// Не обрабатывается внутри handler: сообщение не подтверждается.
type DeserializationError struct {
	Topic string
	Event string
	Err   error
}

func (e *DeserializationError) Error() string {
	return fmt.Sprintf("failed to deserialize %s from topic %s: %v", e.Event, e.Topic, e.Err)
}

func (e *DeserializationError) Unwrap() error {
	return e.Err
}
