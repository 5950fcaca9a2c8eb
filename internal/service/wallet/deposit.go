package wallet

import (
	"context"
	"errors"
	"fmt"
	"lootbox_backend/internal/model"

	"github.com/google/logger"
)

// Deposit зачисляет средства на баланс. Пополнения учитываются в лимите зачислений
func (s *serv) Deposit(ctx context.Context, userID int, amount int) (*model.User, error) {
	if amount <= 0 {
		return nil, fmt.Errorf("%w: deposit amount must be positive", model.ErrMalformedInput)
	}

	var user *model.User

	err := s.txManager.Do(ctx, func(txCtx context.Context) error {
		blocked, err := s.userRepo.IsBlocked(txCtx, userID)
		if err != nil {
			return storage("get user status", err)
		}
		if blocked {
			return model.ErrUserBlocked
		}

		if err := s.gate.CheckCredit(txCtx, userID, amount); err != nil {
			return err
		}

		if err := s.userRepo.Credit(txCtx, userID, amount); err != nil {
			return storage("credit", err)
		}

		user, err = s.userRepo.GetUser(txCtx, userID)
		if err != nil {
			return storage("get user", err)
		}
		return nil
	})
	if err != nil {
		logger.Warningf("deposit rejected: user %d amount %d: %v", userID, amount, err)

		var violation *model.RateLimitError
		if errors.As(err, &violation) {
			s.gate.Flag(ctx, userID, violation.Reason)
		}
		return nil, err
	}

	return user, nil
}

// GetWallet - баланс и статус пользователя
func (s *serv) GetWallet(ctx context.Context, userID int) (*model.User, error) {
	user, err := s.userRepo.GetUser(ctx, userID)
	if err != nil {
		return nil, storage("get user", err)
	}
	return user, nil
}

func storage(op string, err error) error {
	if errors.Is(err, model.ErrNotFound) {
		return err
	}
	return fmt.Errorf("%w: %s: %w", model.ErrPersistenceFailure, op, err)
}
