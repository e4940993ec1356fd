// Package screen описывает экран поиска погоды как неизменяемое состояние
// и переходы по событиям. Отрисовка (терминал, HTTP) живет в других пакетах.
package screen

import (
	"strings"

	"weather-lookup/models"
)

// State состояние экрана. Меняется только через Reduce.
type State struct {
	Query        string
	Summary      *models.WeatherSummary
	Loading      bool
	Err          string
	Seq          uint64 // номер последнего принятого поиска
	InputFocused bool
}

// Initial начальное состояние: пустой ввод в фокусе
func Initial() State {
	return State{InputFocused: true}
}

// Event событие, которое меняет состояние
type Event interface {
	isEvent()
}

// QueryChanged пользователь отредактировал текст запроса
type QueryChanged struct {
	Query string
}

// Submitted нажата кнопка поиска
type Submitted struct{}

// ValidationFailed запрос пустой
type ValidationFailed struct{}

// Succeeded провайдер вернул погоду для поиска Seq
type Succeeded struct {
	Seq     uint64
	Summary models.WeatherSummary
}

// Failed поиск Seq завершился ошибкой
type Failed struct {
	Seq uint64
	Err error
}

func (QueryChanged) isEvent()     {}
func (Submitted) isEvent()        {}
func (ValidationFailed) isEvent() {}
func (Succeeded) isEvent()        {}
func (Failed) isEvent()           {}

// Request единственный исходящий запрос, который нужно выполнить
type Request struct {
	Seq   uint64
	Query string
}

// Reduce применяет событие к состоянию. Если нужно идти к провайдеру,
// возвращает Request.
func Reduce(s State, e Event) (State, *Request) {
	switch e := e.(type) {
	case QueryChanged:
		s.Query = e.Query
		s.InputFocused = true
		return s, nil

	case Submitted:
		// пока идет запрос, кнопка неактивна
		if s.Loading {
			return s, nil
		}
		if strings.TrimSpace(s.Query) == "" {
			return Reduce(s, ValidationFailed{})
		}
		s.Loading = true
		s.Err = ""
		s.Summary = nil
		s.Seq++
		return s, &Request{Seq: s.Seq, Query: s.Query}

	case ValidationFailed:
		s.Err = models.MsgEmptyQuery
		s.Summary = nil
		return s, nil

	case Succeeded:
		if !s.current(e.Seq) {
			return s, nil
		}
		summary := e.Summary
		s.Summary = &summary
		s.Err = ""
		s.Loading = false
		s.InputFocused = false
		return s, nil

	case Failed:
		if !s.current(e.Seq) {
			return s, nil
		}
		s.Err = models.UserMessage(e.Err)
		if s.Err == "" {
			s.Err = models.MsgSomethingWrong
		}
		s.Summary = nil
		s.Loading = false
		return s, nil
	}

	return s, nil
}

// current проверяет, что ответ относится к последнему поиску
func (s State) current(seq uint64) bool {
	return s.Loading && seq == s.Seq
}
