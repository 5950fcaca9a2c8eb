package api

import (
	"errors"
	"lootbox_backend/internal/model"
	"lootbox_backend/pkg/resp"
	"net/http"

	"github.com/google/logger"
)

// statuses - коды ответа для доменных ошибок, порядок важен
var statuses = []struct {
	err    error
	status int
}{
	{model.ErrMalformedInput, http.StatusBadRequest},
	{model.ErrRateLimited, http.StatusTooManyRequests},
	{model.ErrInsufficientFunds, http.StatusPaymentRequired},
	{model.ErrUserBlocked, http.StatusForbidden},
	{model.ErrPoolUnavailable, http.StatusConflict},
	{model.ErrPoolMisconfigured, http.StatusInternalServerError},
	{model.ErrInvalidPool, http.StatusUnprocessableEntity},
	{model.ErrNotFound, http.StatusNotFound},
}

// StatusOf - HTTP код для ошибки сервиса
func StatusOf(err error) int {
	for _, s := range statuses {
		if errors.Is(err, s.err) {
			return s.status
		}
	}
	return http.StatusInternalServerError
}

// WriteError пишет ошибку сервиса. Внутренние детали наружу не отдаются
func WriteError(w http.ResponseWriter, err error) {
	status := StatusOf(err)
	if status == http.StatusInternalServerError {
		logger.Errorf("internal error: %v", err)
		resp.WriteError(w, status, "internal error")
		return
	}
	resp.WriteError(w, status, err.Error())
}
