package abuse_repo

import (
	"context"
	"lootbox_backend/internal/model"
	"lootbox_backend/internal/repository"

	sq "github.com/Masterminds/squirrel"
	trmpgx "github.com/avito-tech/go-transaction-manager/drivers/pgxv5/v2"
	"github.com/jackc/pgx/v5/pgxpool"
)

const (
	table        = "abuse_flags"
	colID        = "id"
	colUserID    = "user_id"
	colReason    = "reason"
	colCreatedAt = "created_at"
)

type repo struct {
	dbc    *pgxpool.Pool
	getter *trmpgx.CtxGetter
}

func NewAbuseRepository(dbc *pgxpool.Pool) repository.AbuseRepository {
	return &repo{
		dbc:    dbc,
		getter: trmpgx.DefaultCtxGetter,
	}
}

// AppendAbuseFlag - сохраняет отметку о нарушении, заполняет ID
func (r *repo) AppendAbuseFlag(ctx context.Context, flag *model.AbuseFlag) error {
	query := sq.Insert(table).
		Columns(colUserID, colReason, colCreatedAt).
		Values(flag.UserID, flag.Reason, flag.CreatedAt).
		Suffix("RETURNING " + colID).
		PlaceholderFormat(sq.Dollar)

	sqlStr, args, err := query.ToSql()
	if err != nil {
		return err
	}

	return r.getter.DefaultTrOrDB(ctx, r.dbc).QueryRow(ctx, sqlStr, args...).Scan(&flag.ID)
}

// CountAbuseFlags - сколько всего отметок у пользователя
func (r *repo) CountAbuseFlags(ctx context.Context, userID int) (int, error) {
	query := sq.Select("COUNT(*)").
		From(table).
		Where(sq.Eq{colUserID: userID}).
		PlaceholderFormat(sq.Dollar)

	sqlStr, args, err := query.ToSql()
	if err != nil {
		return 0, err
	}

	var count int
	err = r.getter.DefaultTrOrDB(ctx, r.dbc).QueryRow(ctx, sqlStr, args...).Scan(&count)
	return count, err
}
