package notify

import (
	"context"
	"lootbox_backend/internal/service"

	"github.com/google/logger"
)

type serv struct{}

// NewNotifyService - уведомления оператору через лог
func NewNotifyService() service.NotifyService {
	return &serv{}
}

func (s *serv) NotifyOperator(_ context.Context, message string) error {
	logger.Warningf("[OPERATOR] %s", message)
	return nil
}
