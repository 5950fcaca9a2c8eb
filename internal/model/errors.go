package model

import "errors"

var (
	// ErrInvalidPool - кейс настроен неверно, повтор не поможет
	ErrInvalidPool = errors.New("invalid pool")
	// ErrPoolMisconfigured - кейс дал пустую или невалидную таблицу вероятностей во время открытия
	ErrPoolMisconfigured = errors.New("pool misconfigured")
	ErrInsufficientFunds = errors.New("insufficient funds")
	// ErrRateLimited - превышен лимит, можно повторить после окна
	ErrRateLimited     = errors.New("rate limited")
	ErrPoolUnavailable = errors.New("pool unavailable")
	ErrUserBlocked     = errors.New("user blocked")
	// ErrPersistenceFailure - ошибка хранилища, транзакция откатывается целиком
	ErrPersistenceFailure = errors.New("persistence failure")
	// ErrMalformedInput - входные данные проверки не разобрать
	ErrMalformedInput = errors.New("malformed input")
	ErrNotFound       = errors.New("not found")
)

// RateLimitError - нарушение лимита, отметка о котором еще не сохранена.
// Сохраняет ее вызывающий, когда транзакция уже завершена
type RateLimitError struct {
	Reason string
}

func (e *RateLimitError) Error() string {
	return ErrRateLimited.Error() + ": " + e.Reason
}

func (e *RateLimitError) Unwrap() error {
	return ErrRateLimited
}
