package opening

import (
	"lootbox_backend/internal/config"
	"lootbox_backend/internal/repository"
	"lootbox_backend/internal/service"
	"time"

	"github.com/avito-tech/go-transaction-manager/trm/v2"
)

// Deps - зависимости сервиса открытия кейсов
type Deps struct {
	Cfg           config.DrawConfig
	UserRepo      repository.UserRepository
	CaseRepo      repository.CaseRepository
	InventoryRepo repository.InventoryRepository
	DrawRepo      repository.DrawRepository
	Gate          service.AbuseGate
	Distribution  service.DistributionService
	TxManager     trm.Manager
	// Now - часы, по умолчанию time.Now
	Now func() time.Time
}

type serv struct {
	cfg           config.DrawConfig
	userRepo      repository.UserRepository
	caseRepo      repository.CaseRepository
	inventoryRepo repository.InventoryRepository
	drawRepo      repository.DrawRepository
	gate          service.AbuseGate
	distribution  service.DistributionService
	txManager     trm.Manager
	now           func() time.Time
}

// NewOpeningService - координатор открытия кейса
func NewOpeningService(deps Deps) service.OpeningService {
	now := deps.Now
	if now == nil {
		now = time.Now
	}
	return &serv{
		cfg:           deps.Cfg,
		userRepo:      deps.UserRepo,
		caseRepo:      deps.CaseRepo,
		inventoryRepo: deps.InventoryRepo,
		drawRepo:      deps.DrawRepo,
		gate:          deps.Gate,
		distribution:  deps.Distribution,
		txManager:     deps.TxManager,
		now:           now,
	}
}
