package errs

import "errors"

// Доменные ошибки, которые хендлеры переводят в HTTP-статусы.
var (
	ErrTicketNotFound = errors.New("ticket not found")

	// ErrConstraint — нарушение ограничения БД (NOT NULL, UNIQUE ticket_id).
	ErrConstraint = errors.New("constraint violation")
)
