package models

import (
	"errors"
	"fmt"
)

// Сообщения, которые видит пользователь
const (
	MsgEmptyQuery     = "Please enter a city name."
	MsgCityNotFound   = "City not found."
	MsgFetchFailed    = "Failed to fetch weather data."
	MsgSomethingWrong = "Something went wrong."
)

// ValidationError пустой запрос, до провайдера дело не доходит
type ValidationError struct{}

func (ValidationError) Error() string { return MsgEmptyQuery }

// NotFoundError провайдер не знает такого города
type NotFoundError struct {
	City string
}

func (e *NotFoundError) Error() string {
	return MsgCityNotFound
}

// TransportError любой другой неуспешный ответ, сетевая ошибка
// или ответ неожиданной формы.
type TransportError struct {
	StatusCode int    // 0 если ответа не было
	Message    string // текст для пользователя
	Err        error
}

func NewTransportError(status int, err error) *TransportError {
	return &TransportError{StatusCode: status, Message: MsgFetchFailed, Err: err}
}

func (e *TransportError) Error() string {
	if e.Err == nil {
		return e.Message
	}
	return fmt.Sprintf("%s: %v", e.Message, e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// UserMessage превращает ошибку в одну строку для экрана.
// Причина TransportError в текст не попадает: в ней может быть URL с ключом.
func UserMessage(err error) string {
	if err == nil {
		return ""
	}

	var validation ValidationError
	if errors.As(err, &validation) {
		return MsgEmptyQuery
	}

	var notFound *NotFoundError
	if errors.As(err, &notFound) {
		return MsgCityNotFound
	}

	var transport *TransportError
	if errors.As(err, &transport) {
		if transport.Message != "" {
			return transport.Message
		}
		return MsgFetchFailed
	}

	if msg := err.Error(); msg != "" {
		return msg
	}
	return MsgSomethingWrong
}
