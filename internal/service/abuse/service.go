package abuse

import (
	"lootbox_backend/internal/config"
	"lootbox_backend/internal/repository"
	"lootbox_backend/internal/service"
	"time"
)

type serv struct {
	cfg        config.AbuseConfig
	windowRepo repository.AbuseWindowRepository
	abuseRepo  repository.AbuseRepository
	userRepo   repository.UserRepository
	notifier   service.NotifyService
	now        func() time.Time
}

// NewAbuseGate - проверка лимитов перед открытием кейса
func NewAbuseGate(
	cfg config.AbuseConfig,
	windowRepo repository.AbuseWindowRepository,
	abuseRepo repository.AbuseRepository,
	userRepo repository.UserRepository,
	notifier service.NotifyService,
) service.AbuseGate {
	return newGate(cfg, windowRepo, abuseRepo, userRepo, notifier, time.Now)
}

func newGate(
	cfg config.AbuseConfig,
	windowRepo repository.AbuseWindowRepository,
	abuseRepo repository.AbuseRepository,
	userRepo repository.UserRepository,
	notifier service.NotifyService,
	now func() time.Time,
) *serv {
	return &serv{
		cfg:        cfg,
		windowRepo: windowRepo,
		abuseRepo:  abuseRepo,
		userRepo:   userRepo,
		notifier:   notifier,
		now:        now,
	}
}
