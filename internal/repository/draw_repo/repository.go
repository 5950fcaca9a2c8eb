package draw_repo

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

// Имена колонок - часть формата проверки, менять нельзя
const (
	table             = "draw_records"
	colID             = "id"
	colUserID         = "user_id"
	colCaseID         = "case_id"
	colItemID         = "item_id"
	colSecretSeed     = "secret_seed"
	colSecretSeedHash = "secret_seed_hash"
	colPublicSeed     = "public_seed"
	colNonce          = "nonce"
	colCreatedAt      = "created_at"
)

var columns = []string{colID, colUserID, colCaseID, colItemID, colSecretSeed, colSecretSeedHash, colPublicSeed, colNonce, colCreatedAt}

type repo struct {
	dbc    *pgxpool.Pool
	getter *trmpgx.CtxGetter
}

func NewDrawRepository(dbc *pgxpool.Pool) repository.DrawRepository {
	return &repo{
		dbc:    dbc,
		getter: trmpgx.DefaultCtxGetter,
	}
}

// AppendDrawRecord - добавляет запись о розыгрыше
func (r *repo) AppendDrawRecord(ctx context.Context, rec *model.DrawRecord) error {
	query := sq.Insert(table).
		Columns(columns...).
		Values(rec.ID, rec.UserID, rec.CaseID, rec.ItemID,
			rec.Seeds.SecretSeed, rec.Seeds.SecretSeedCommitment, rec.Seeds.PublicSeed,
			int64(rec.Nonce), rec.CreatedAt).
		PlaceholderFormat(sq.Dollar)

	sqlStr, args, err := query.ToSql()
	if err != nil {
		return err
	}

	_, err = r.getter.DefaultTrOrDB(ctx, r.dbc).Exec(ctx, sqlStr, args...)
	return err
}

// GetDrawRecord - запись о розыгрыше по ID
func (r *repo) GetDrawRecord(ctx context.Context, id string) (*model.DrawRecord, error) {
	query := sq.Select(columns...).
		From(table).
		Where(sq.Eq{colID: id}).
		PlaceholderFormat(sq.Dollar)

	sqlStr, args, err := query.ToSql()
	if err != nil {
		return nil, err
	}

	rec, err := scanRecord(r.getter.DefaultTrOrDB(ctx, r.dbc).QueryRow(ctx, sqlStr, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, model.ErrNotFound
		}
		return nil, err
	}
	return rec, nil
}

// ListDrawRecords - последние розыгрыши пользователя, новые первыми
func (r *repo) ListDrawRecords(ctx context.Context, userID int, limit uint64) ([]model.DrawRecord, error) {
	query := sq.Select(columns...).
		From(table).
		Where(sq.Eq{colUserID: userID}).
		OrderBy(colCreatedAt + " DESC").
		Limit(limit).
		PlaceholderFormat(sq.Dollar)

	sqlStr, args, err := query.ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := r.getter.DefaultTrOrDB(ctx, r.dbc).Query(ctx, sqlStr, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []model.DrawRecord
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, *rec)
	}
	return records, rows.Err()
}

func scanRecord(row pgx.Row) (*model.DrawRecord, error) {
	var (
		rec   model.DrawRecord
		nonce int64
	)
	err := row.Scan(&rec.ID, &rec.UserID, &rec.CaseID, &rec.ItemID,
		&rec.Seeds.SecretSeed, &rec.Seeds.SecretSeedCommitment, &rec.Seeds.PublicSeed,
		&nonce, &rec.CreatedAt)
	if err != nil {
		return nil, err
	}
	rec.Nonce = uint64(nonce)
	return &rec, nil
}
