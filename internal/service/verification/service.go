package verification

import (
	"lootbox_backend/internal/service"
)

type serv struct {
	distribution service.DistributionService
}

// NewVerificationService - независимая проверка розыгрыша по раскрытым сидам
func NewVerificationService(distribution service.DistributionService) service.VerificationService {
	return &serv{
		distribution: distribution,
	}
}
