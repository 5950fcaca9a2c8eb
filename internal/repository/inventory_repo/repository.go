package inventory_repo

import (
	"context"
	"lootbox_backend/internal/repository"

	sq "github.com/Masterminds/squirrel"
	trmpgx "github.com/avito-tech/go-transaction-manager/drivers/pgxv5/v2"
	"github.com/jackc/pgx/v5/pgxpool"
)

const (
	table     = "inventory"
	colUserID = "user_id"
	colItemID = "item_id"
	colDrawID = "draw_id"
)

type repo struct {
	dbc    *pgxpool.Pool
	getter *trmpgx.CtxGetter
}

func NewInventoryRepository(dbc *pgxpool.Pool) repository.InventoryRepository {
	return &repo{
		dbc:    dbc,
		getter: trmpgx.DefaultCtxGetter,
	}
}

// AddItem - кладет выпавший предмет в инвентарь пользователя
func (r *repo) AddItem(ctx context.Context, userID int, itemID string, drawID string) error {
	query := sq.Insert(table).
		Columns(colUserID, colItemID, colDrawID).
		Values(userID, itemID, drawID).
		PlaceholderFormat(sq.Dollar)

	sqlStr, args, err := query.ToSql()
	if err != nil {
		return err
	}

	_, err = r.getter.DefaultTrOrDB(ctx, r.dbc).Exec(ctx, sqlStr, args...)
	return err
}
