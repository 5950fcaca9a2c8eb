package wallet

import (
	"lootbox_backend/internal/repository"
	"lootbox_backend/internal/service"

	"github.com/avito-tech/go-transaction-manager/trm/v2"
)

type serv struct {
	userRepo  repository.UserRepository
	gate      service.AbuseGate
	txManager trm.Manager
}

func NewWalletService(
	userRepo repository.UserRepository,
	gate service.AbuseGate,
	txManager trm.Manager,
) service.WalletService {
	return &serv{
		userRepo:  userRepo,
		gate:      gate,
		txManager: txManager,
	}
}
