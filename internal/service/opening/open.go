package opening

import (
	"context"
	"errors"
	"fmt"
	"lootbox_backend/internal/config"
	"lootbox_backend/internal/model"
	"lootbox_backend/pkg/fairness"

	"github.com/google/logger"
	"github.com/google/uuid"
)

// fixedNonce - номер розыгрыша в режиме fixed
const fixedNonce uint64 = 1

// Open открывает кейс: проверка лимитов, проверка баланса, списание, розыгрыш,
// запись о розыгрыше и зачисление предмета. Все изменения в одной транзакции:
// любая ошибка после списания откатывает и списание
func (s *serv) Open(ctx context.Context, userID, caseID int) (*model.OpenResult, error) {
	// Лимиты проверяются до транзакции, при нарушении ничего не меняется
	if err := s.gate.CheckDraw(ctx, userID); err != nil {
		return nil, err
	}

	var res *model.OpenResult

	err := s.txManager.Do(ctx, func(txCtx context.Context) error {
		pool, err := s.availableCase(txCtx, userID, caseID)
		if err != nil {
			return err
		}

		// Проверка баланса. Строка пользователя блокируется до конца транзакции
		balance, err := s.userRepo.GetBalance(txCtx, userID)
		if err != nil {
			return persistence("get balance", err)
		}
		if balance < pool.Price {
			return model.ErrInsufficientFunds
		}

		// Списание
		if err := s.userRepo.Debit(txCtx, userID, pool.Price); err != nil {
			return persistence("debit", err)
		}
		balance -= pool.Price

		// Свежее чтение: кейс могли выключить, а пользователя заблокировать параллельно
		pool, err = s.availableCase(txCtx, userID, caseID)
		if err != nil {
			return err
		}

		// Розыгрыш
		table, err := s.distribution.Compute(pool.Items())
		if err != nil {
			return fmt.Errorf("%w: case %d: %w", model.ErrPoolMisconfigured, caseID, err)
		}

		seeds, err := fairness.NewSeeds(userID, s.now())
		if err != nil {
			return err
		}

		nonce, err := s.nextNonce(txCtx, userID)
		if err != nil {
			return err
		}

		itemID, ok := fairness.Select(seeds.Secret, seeds.Public, nonce, table)
		if !ok {
			return fmt.Errorf("%w: case %d has an empty probability table", model.ErrPoolMisconfigured, caseID)
		}
		item, ok := pool.Item(itemID)
		if !ok {
			return fmt.Errorf("%w: case %d: drawn item %q is not in the case", model.ErrPoolMisconfigured, caseID, itemID)
		}

		// Лимит на сумму зачислений. Отметка о нарушении пишется после отката
		if err := s.gate.CheckCredit(txCtx, userID, item.Value); err != nil {
			return err
		}

		// Запись о розыгрыше и зачисление предмета
		rec := &model.DrawRecord{
			ID:     uuid.NewString(),
			UserID: userID,
			CaseID: caseID,
			ItemID: item.ID,
			Seeds: model.SeedPair{
				SecretSeed:           seeds.SecretHex(),
				SecretSeedCommitment: seeds.Commitment,
				PublicSeed:           seeds.Public,
			},
			Nonce:     nonce,
			CreatedAt: s.now().UTC(),
		}

		if err := s.drawRepo.AppendDrawRecord(txCtx, rec); err != nil {
			return persistence("append draw record", err)
		}
		if err := s.inventoryRepo.AddItem(txCtx, userID, item.ID, rec.ID); err != nil {
			return persistence("add item", err)
		}

		res = &model.OpenResult{
			DrawID:  rec.ID,
			Item:    item,
			Seeds:   rec.Seeds,
			Nonce:   nonce,
			Balance: balance,
		}
		return nil
	})
	if err != nil {
		s.logAbort(userID, caseID, err)

		// Строка пользователя уже отпущена
		var violation *model.RateLimitError
		if errors.As(err, &violation) {
			s.gate.Flag(ctx, userID, violation.Reason)
		}
		return nil, err
	}

	// Опыт за открытие - вне транзакции, ошибка не влияет на результат
	if xp := s.cfg.ExperiencePerDraw(); xp > 0 {
		if err := s.userRepo.AddExperience(ctx, userID, xp); err != nil {
			logger.Warningf("failed to award experience to user %d: %v", userID, err)
		}
	}

	return res, nil
}

// availableCase читает кейс и статус пользователя
func (s *serv) availableCase(ctx context.Context, userID, caseID int) (*model.Pool, error) {
	pool, err := s.caseRepo.GetCase(ctx, caseID)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return nil, fmt.Errorf("%w: case %d not found", model.ErrPoolUnavailable, caseID)
		}
		return nil, persistence("get case", err)
	}
	if !pool.Enabled {
		return nil, fmt.Errorf("%w: case %d is disabled", model.ErrPoolUnavailable, caseID)
	}

	blocked, err := s.userRepo.IsBlocked(ctx, userID)
	if err != nil {
		return nil, persistence("get user status", err)
	}
	if blocked {
		return nil, model.ErrUserBlocked
	}
	return pool, nil
}

// nextNonce - номер розыгрыша.
// В режиме fixed всегда 1: защиту от повторного использования секретного сида дает только свежий сид
func (s *serv) nextNonce(ctx context.Context, userID int) (uint64, error) {
	if s.cfg.SequenceMode() != config.SequenceIncremental {
		return fixedNonce, nil
	}
	nonce, err := s.userRepo.NextDrawNonce(ctx, userID)
	if err != nil {
		return 0, persistence("next draw nonce", err)
	}
	return nonce, nil
}

func (s *serv) logAbort(userID, caseID int, err error) {
	switch {
	case errors.Is(err, model.ErrPersistenceFailure), errors.Is(err, model.ErrPoolMisconfigured):
		logger.Errorf("draw aborted: user %d case %d: %v", userID, caseID, err)
	default:
		logger.Warningf("draw aborted: user %d case %d: %v", userID, caseID, err)
	}
}
