package opening

import (
	"context"
	"fmt"
	"lootbox_backend/internal/model"
)

const maxListLimit = 100

// GetDraw - запись о розыгрыше пользователя. Чужие записи не отдаются
func (s *serv) GetDraw(ctx context.Context, userID int, drawID string) (*model.DrawRecord, error) {
	rec, err := s.drawRepo.GetDrawRecord(ctx, drawID)
	if err != nil {
		return nil, persistence("get draw record", err)
	}
	if rec.UserID != userID {
		return nil, fmt.Errorf("%w: draw %s", model.ErrNotFound, drawID)
	}
	return rec, nil
}

// ListDraws - последние розыгрыши пользователя
func (s *serv) ListDraws(ctx context.Context, userID int, limit uint64) ([]model.DrawRecord, error) {
	if limit == 0 || limit > maxListLimit {
		limit = maxListLimit
	}
	records, err := s.drawRepo.ListDrawRecords(ctx, userID, limit)
	if err != nil {
		return nil, persistence("list draw records", err)
	}
	return records, nil
}
