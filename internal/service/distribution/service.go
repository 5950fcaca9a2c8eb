package distribution

import (
	"fmt"
	"lootbox_backend/internal/config"
	"lootbox_backend/internal/model"
	"lootbox_backend/internal/service"
	"lootbox_backend/pkg/fairness"
)

type serv struct {
	tierWeights map[model.Rarity]float64
}

// NewDistributionService - калькулятор вероятностей по базовым весам редкостей
func NewDistributionService(cfg config.DrawConfig) service.DistributionService {
	return &serv{
		tierWeights: cfg.TierWeights(),
	}
}

// Compute строит таблицу вероятностей кейса.
// Вес каждой присутствующей редкости нормируется по сумме весов только присутствующих редкостей,
// затем делится поровну между предметами этой редкости
func (s *serv) Compute(items []model.Item) (fairness.Table, error) {
	if len(items) == 0 {
		return nil, fmt.Errorf("%w: pool is empty", model.ErrInvalidPool)
	}

	// Разбиваем предметы по редкостям
	byTier := make(map[model.Rarity][]string)
	seen := make(map[string]struct{}, len(items))
	for _, item := range items {
		if item.ID == "" {
			return nil, fmt.Errorf("%w: item without id", model.ErrInvalidPool)
		}
		if _, dup := seen[item.ID]; dup {
			return nil, fmt.Errorf("%w: duplicate item %q", model.ErrInvalidPool, item.ID)
		}
		seen[item.ID] = struct{}{}

		if _, ok := s.tierWeights[item.Rarity]; !ok {
			return nil, fmt.Errorf("%w: item %q has unknown rarity %q", model.ErrInvalidPool, item.ID, item.Rarity)
		}
		byTier[item.Rarity] = append(byTier[item.Rarity], item.ID)
	}

	// Сумма базовых весов присутствующих редкостей.
	// Порядок сложения фиксирован, иначе результат мог бы отличаться в последнем бите
	var present float64
	for _, tier := range model.Rarities {
		if _, ok := byTier[tier]; ok {
			present += s.tierWeights[tier]
		}
	}
	if present <= 0 {
		return nil, fmt.Errorf("%w: tiers have no weight", model.ErrInvalidPool)
	}

	probs := make(map[string]float64, len(items))
	for tier, ids := range byTier {
		tierProb := s.tierWeights[tier] / present
		for _, id := range ids {
			probs[id] = tierProb / float64(len(ids))
		}
	}

	table := fairness.NewTable(probs)
	if !table.Valid() {
		return nil, fmt.Errorf("%w: probabilities do not sum to 1 (%.6f)", model.ErrInvalidPool, table.Sum())
	}
	return table, nil
}
