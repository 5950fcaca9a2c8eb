package verification

import (
	"errors"
	"fmt"
	"lootbox_backend/internal/model"
	"lootbox_backend/pkg/fairness"
	"strings"
)

// Verify пересчитывает таблицу вероятностей и выбор предмета по раскрытым данным.
// Несовпадение - это результат (Matches=false), а не ошибка.
// Ошибка ErrMalformedInput означает, что входные данные не разобрать
func (s *serv) Verify(req model.VerifyRequest) (*model.VerifyResult, error) {
	secret, err := fairness.DecodeSecret(req.SecretSeed)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", model.ErrMalformedInput, err)
	}
	if req.PublicSeed == "" {
		return nil, fmt.Errorf("%w: empty public seed", model.ErrMalformedInput)
	}
	if req.ClaimedItemID == "" {
		return nil, fmt.Errorf("%w: empty claimed item", model.ErrMalformedInput)
	}

	res := &model.VerifyResult{}

	// Хэш секретного сида, если передан
	if req.Commitment != "" {
		commitment := strings.ToLower(req.Commitment)
		if !fairness.ValidCommitment(commitment) {
			return nil, fmt.Errorf("%w: commitment is not a sha-256 hex digest", model.ErrMalformedInput)
		}
		res.CommitmentChecked = true
		res.CommitmentMatches = fairness.Commit(secret) == commitment
	}

	table, err := s.distribution.Compute(req.Items)
	if err != nil {
		if errors.Is(err, model.ErrInvalidPool) {
			return nil, fmt.Errorf("%w: %w", model.ErrMalformedInput, err)
		}
		return nil, err
	}

	itemID, ok := fairness.Select(secret, req.PublicSeed, req.Nonce, table)
	if !ok {
		return nil, fmt.Errorf("%w: empty probability table", model.ErrMalformedInput)
	}

	res.RecomputedItemID = itemID
	res.Matches = itemID == req.ClaimedItemID
	return res, nil
}
