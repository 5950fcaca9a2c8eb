package service

import (
	"context"
	"lootbox_backend/internal/model"
	"lootbox_backend/pkg/fairness"
)

type OpeningService interface {
	Open(ctx context.Context, userID, caseID int) (*model.OpenResult, error)
	Odds(ctx context.Context, caseID int) ([]model.Odds, error)
	GetDraw(ctx context.Context, userID int, drawID string) (*model.DrawRecord, error)
	ListDraws(ctx context.Context, userID int, limit uint64) ([]model.DrawRecord, error)
}

type VerificationService interface {
	Verify(req model.VerifyRequest) (*model.VerifyResult, error)
}

type DistributionService interface {
	Compute(items []model.Item) (fairness.Table, error)
}

type AbuseGate interface {
	// CheckDraw сам сохраняет отметку о нарушении, вызывается вне транзакций
	CheckDraw(ctx context.Context, userID int) error
	// CheckCredit ничего не сохраняет, нарушение - *model.RateLimitError
	CheckCredit(ctx context.Context, userID int, amount int) error
	Flag(ctx context.Context, userID int, reason string)
}

type WalletService interface {
	Deposit(ctx context.Context, userID int, amount int) (*model.User, error)
	GetWallet(ctx context.Context, userID int) (*model.User, error)
}

type NotifyService interface {
	NotifyOperator(ctx context.Context, message string) error
}
