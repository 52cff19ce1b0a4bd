package book_slots

import (
	"time"

	"github.com/google/uuid"
)

// Request запрос на бронирование набора слотов
type Request struct {
	RegistrationID uuid.UUID
	TimeslotIDs    []uuid.UUID // дубликаты допустимы
}

// Response результат успешного бронирования
type Response struct {
	Success   bool
	BookedIDs []uuid.UUID
}

// Options параметры повторов при временных ошибках хранилища
type Options struct {
	MaxAttempts  int
	RetryBackoff time.Duration
}

const (
	defaultMaxAttempts  = 3
	defaultRetryBackoff = 50 * time.Millisecond
)

func (o Options) withDefaults() Options {
	if o.MaxAttempts < 1 {
		o.MaxAttempts = defaultMaxAttempts
	}
	if o.RetryBackoff < 0 {
		o.RetryBackoff = defaultRetryBackoff
	}
	return o
}
