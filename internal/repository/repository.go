package repository

import (
	"context"
	"lootbox_backend/internal/model"
	"time"
)

// UserRepository - баланс (леджер) и статус пользователя.
// Все методы работают внутри транзакции из контекста, если она есть
type UserRepository interface {
	GetUser(ctx context.Context, id int) (*model.User, error)

	// GetBalance блокирует строку пользователя до конца транзакции
	GetBalance(ctx context.Context, id int) (int, error)
	Debit(ctx context.Context, id int, amount int) error
	Credit(ctx context.Context, id int, amount int) error

	IsBlocked(ctx context.Context, id int) (bool, error)
	SetBlocked(ctx context.Context, id int, blocked bool) error

	AddExperience(ctx context.Context, id int, xp int) error
	NextDrawNonce(ctx context.Context, id int) (uint64, error)
}

type CaseRepository interface {
	GetCase(ctx context.Context, id int) (*model.Pool, error)
}

type InventoryRepository interface {
	AddItem(ctx context.Context, userID int, itemID string, drawID string) error
}

type DrawRepository interface {
	AppendDrawRecord(ctx context.Context, rec *model.DrawRecord) error
	GetDrawRecord(ctx context.Context, id string) (*model.DrawRecord, error)
	ListDrawRecords(ctx context.Context, userID int, limit uint64) ([]model.DrawRecord, error)
}

type AbuseRepository interface {
	AppendAbuseFlag(ctx context.Context, flag *model.AbuseFlag) error
	CountAbuseFlags(ctx context.Context, userID int) (int, error)
}

// AbuseWindowRepository - скользящие окна антиабуза.
// Проверка и запись события выполняются атомарно: событие записывается только если лимит не превышен
type AbuseWindowRepository interface {
	TryDraw(ctx context.Context, userID int, at time.Time, window time.Duration, limit int) (bool, error)
	TryCredit(ctx context.Context, userID int, amount int, at time.Time, window time.Duration, limit int) (bool, error)
}
