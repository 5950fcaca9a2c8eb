package opening

import (
	"context"
	"errors"
	"fmt"
	"lootbox_backend/internal/model"
)

// Odds - таблица вероятностей кейса в том виде, в котором ее использует розыгрыш
func (s *serv) Odds(ctx context.Context, caseID int) ([]model.Odds, error) {
	pool, err := s.caseRepo.GetCase(ctx, caseID)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return nil, fmt.Errorf("%w: case %d", model.ErrNotFound, caseID)
		}
		return nil, persistence("get case", err)
	}

	table, err := s.distribution.Compute(pool.Items())
	if err != nil {
		return nil, err
	}

	odds := make([]model.Odds, 0, len(table))
	for _, e := range table {
		item, _ := pool.Item(e.ItemID)
		odds = append(odds, model.Odds{Item: item, Probability: e.Probability})
	}
	return odds, nil
}
