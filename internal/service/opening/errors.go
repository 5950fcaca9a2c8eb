package opening

import (
	"errors"
	"fmt"
	"lootbox_backend/internal/model"
)

// domainErrors не оборачиваются в ErrPersistenceFailure
var domainErrors = []error{
	model.ErrNotFound,
	model.ErrInsufficientFunds,
	model.ErrRateLimited,
	model.ErrPoolUnavailable,
	model.ErrUserBlocked,
	model.ErrInvalidPool,
	model.ErrPoolMisconfigured,
	model.ErrPersistenceFailure,
}

// persistence оборачивает ошибку хранилища
func persistence(op string, err error) error {
	for _, target := range domainErrors {
		if errors.Is(err, target) {
			return err
		}
	}
	return fmt.Errorf("%w: %s: %w", model.ErrPersistenceFailure, op, err)
}
