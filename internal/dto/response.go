package dto

import "encoding/json"

type Status string

const (
	StatusSuccess Status = "success"
	StatusError   Status = "error"
)

// Envelope is the uniform shape of every API response body:
//
//	{"status": "success" | "error", "message": "...", "data": ...}
//
// Fields are only set by the constructors below; an Envelope is a value and
// never changes after it is built.
type Envelope[T any] struct {
	status  Status
	message string
	data    T
}

// Success wraps data in an envelope with status "success".
func Success[T any](message string, data T) Envelope[T] {
	return Envelope[T]{status: StatusSuccess, message: message, data: data}
}

// SuccessMessage is Success without a payload.
func SuccessMessage(message string) Envelope[any] {
	return Success[any](message, nil)
}

// Error wraps data in an envelope with status "error".
func Error[T any](message string, data T) Envelope[T] {
	return Envelope[T]{status: StatusError, message: message, data: data}
}

// ErrorMessage is Error without a payload.
func ErrorMessage(message string) Envelope[any] {
	return Error[any](message, nil)
}

func (e Envelope[T]) Status() Status  { return e.status }
func (e Envelope[T]) Message() string { return e.message }
func (e Envelope[T]) Data() T         { return e.data }
func (e Envelope[T]) OK() bool        { return e.status == StatusSuccess }

type wireEnvelope[T any] struct {
	Status  Status `json:"status"`
	Message string `json:"message"`
	Data    T      `json:"data"`
}

func (e Envelope[T]) MarshalJSON() ([]byte, error) {
	return json.Marshal(wireEnvelope[T]{Status: e.status, Message: e.message, Data: e.data})
}

// UnmarshalJSON lets API clients decode a response body back into an envelope.
func (e *Envelope[T]) UnmarshalJSON(b []byte) error {
	var w wireEnvelope[T]
	if err := json.Unmarshal(b, &w); err != nil {
		return err
	}
	*e = Envelope[T]{status: w.Status, message: w.Message, data: w.Data}
	return nil
}
