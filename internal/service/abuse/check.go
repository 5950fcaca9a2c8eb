package abuse

import (
	"context"
	"fmt"
	"lootbox_backend/internal/model"

	"github.com/google/logger"
)

// CheckDraw - счетчик частоты открытий. Открытие учитывается в окне, только если проходит лимит
func (s *serv) CheckDraw(ctx context.Context, userID int) error {
	ok, err := s.windowRepo.TryDraw(ctx, userID, s.now(), s.cfg.Window(), s.cfg.MaxDraws())
	if err != nil {
		return fmt.Errorf("%w: %w", model.ErrPersistenceFailure, err)
	}
	if ok {
		return nil
	}

	reason := fmt.Sprintf("more than %d draws within %s", s.cfg.MaxDraws(), s.cfg.Window())
	s.flag(ctx, userID, reason)
	return fmt.Errorf("%w: %s", model.ErrRateLimited, reason)
}

// CheckCredit - счетчик суммы зачислений в окне.
// Вызывается внутри транзакции, которая держит строку пользователя, поэтому
// в хранилище ничего не пишет: нарушение возвращается как *model.RateLimitError,
// а отметку после отката сохраняет вызывающий через Flag
func (s *serv) CheckCredit(ctx context.Context, userID int, amount int) error {
	ok, err := s.windowRepo.TryCredit(ctx, userID, amount, s.now(), s.cfg.Window(), s.cfg.MaxCredit())
	if err != nil {
		return fmt.Errorf("%w: %w", model.ErrPersistenceFailure, err)
	}
	if ok {
		return nil
	}

	return &model.RateLimitError{
		Reason: fmt.Sprintf("credited more than %d within %s", s.cfg.MaxCredit(), s.cfg.Window()),
	}
}

// Flag сохраняет отметку о нарушении, которое вернул CheckCredit
func (s *serv) Flag(ctx context.Context, userID int, reason string) {
	s.flag(ctx, userID, reason)
}

// flag сохраняет отметку о нарушении и блокирует пользователя по достижении порога.
// Ошибки хранилища только логируются: запрос все равно отклоняется
func (s *serv) flag(ctx context.Context, userID int, reason string) {
	logger.Warningf("abuse flag for user %d: %s", userID, reason)

	err := s.abuseRepo.AppendAbuseFlag(ctx, &model.AbuseFlag{
		UserID:    userID,
		Reason:    reason,
		CreatedAt: s.now(),
	})
	if err != nil {
		logger.Errorf("failed to save abuse flag for user %d: %v", userID, err)
		return
	}

	count, err := s.abuseRepo.CountAbuseFlags(ctx, userID)
	if err != nil {
		logger.Errorf("failed to count abuse flags for user %d: %v", userID, err)
		return
	}
	if count < s.cfg.FlagsToBlock() {
		return
	}

	if err := s.userRepo.SetBlocked(ctx, userID, true); err != nil {
		logger.Errorf("failed to block user %d: %v", userID, err)
		return
	}
	logger.Warningf("user %d blocked after %d abuse flags", userID, count)

	msg := fmt.Sprintf("user %d blocked after %d abuse flags, last: %s", userID, count, reason)
	if err := s.notifier.NotifyOperator(ctx, msg); err != nil {
		logger.Warningf("operator notification failed: %v", err)
	}
}
