package case_repo

import (
	"context"
	"errors"
	"lootbox_backend/internal/model"
	"lootbox_backend/internal/repository"

	sq "github.com/Masterminds/squirrel"
	trmpgx "github.com/avito-tech/go-transaction-manager/drivers/pgxv5/v2"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const (
	casesTable     = "cases"
	caseItemsTable = "case_items"
	itemsTable     = "items"
)

type repo struct {
	dbc    *pgxpool.Pool
	getter *trmpgx.CtxGetter
}

func NewCaseRepository(dbc *pgxpool.Pool) repository.CaseRepository {
	return &repo{
		dbc:    dbc,
		getter: trmpgx.DefaultCtxGetter,
	}
}

// GetCase - возвращает кейс вместе с предметами в порядке каталога
func (r *repo) GetCase(ctx context.Context, id int) (*model.Pool, error) {
	conn := r.getter.DefaultTrOrDB(ctx, r.dbc)

	query := sq.Select("id", "name", "price", "enabled").
		From(casesTable).
		Where(sq.Eq{"id": id}).
		PlaceholderFormat(sq.Dollar)

	sqlStr, args, err := query.ToSql()
	if err != nil {
		return nil, err
	}

	var (
		pool  model.Pool
		price int64
	)
	err = conn.QueryRow(ctx, sqlStr, args...).Scan(&pool.ID, &pool.Name, &price, &pool.Enabled)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, model.ErrNotFound
		}
		return nil, err
	}
	pool.Price = int(price)

	// Предметы кейса
	itemsQuery := sq.Select("i.id", "i.name", "i.rarity", "i.value", "ci.weight").
		From(caseItemsTable + " ci").
		Join(itemsTable + " i ON i.id = ci.item_id").
		Where(sq.Eq{"ci.case_id": id}).
		OrderBy("ci.position", "i.id").
		PlaceholderFormat(sq.Dollar)

	sqlStr, args, err = itemsQuery.ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := conn.Query(ctx, sqlStr, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var (
			entry  model.PoolEntry
			rarity string
			value  int64
		)
		if err := rows.Scan(&entry.Item.ID, &entry.Item.Name, &rarity, &value, &entry.Weight); err != nil {
			return nil, err
		}
		entry.Item.Rarity = model.Rarity(rarity)
		entry.Item.Value = int(value)
		pool.Entries = append(pool.Entries, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return &pool, nil
}
