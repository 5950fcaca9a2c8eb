package user_repo

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
	table         = "users"
	colID         = "id"
	colBalance    = "balance"
	colBlocked    = "blocked"
	colExperience = "experience"
	colDrawNonce  = "draw_nonce"
)

type repo struct {
	dbc    *pgxpool.Pool
	getter *trmpgx.CtxGetter
}

func NewUserRepository(dbc *pgxpool.Pool) repository.UserRepository {
	return &repo{
		dbc:    dbc,
		getter: trmpgx.DefaultCtxGetter,
	}
}

// conn - транзакция из контекста или пул
func (r *repo) conn(ctx context.Context) trmpgx.Tr {
	return r.getter.DefaultTrOrDB(ctx, r.dbc)
}

// GetUser - возвращает пользователя по ID
func (r *repo) GetUser(ctx context.Context, id int) (*model.User, error) {
	query := sq.Select(colID, colBalance, colBlocked, colExperience, colDrawNonce).
		From(table).
		Where(sq.Eq{colID: id}).
		PlaceholderFormat(sq.Dollar)

	sqlStr, args, err := query.ToSql()
	if err != nil {
		return nil, err
	}

	var (
		user    model.User
		balance int64
		nonce   int64
	)
	err = r.conn(ctx).QueryRow(ctx, sqlStr, args...).Scan(&user.ID, &balance, &user.Blocked, &user.Experience, &nonce)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, model.ErrNotFound
		}
		return nil, err
	}

	user.Balance = int(balance)
	user.DrawNonce = uint64(nonce)
	return &user, nil
}

// GetBalance - получение баланса пользователя по его ID.
// Строка блокируется (FOR UPDATE), поэтому параллельные открытия одного пользователя идут по очереди
func (r *repo) GetBalance(ctx context.Context, id int) (int, error) {
	query := sq.Select(colBalance).
		From(table).
		Where(sq.Eq{colID: id}).
		Suffix("FOR UPDATE").
		PlaceholderFormat(sq.Dollar)

	sqlStr, args, err := query.ToSql()
	if err != nil {
		return 0, err
	}

	var balance int64
	err = r.conn(ctx).QueryRow(ctx, sqlStr, args...).Scan(&balance)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, model.ErrNotFound
		}
		return 0, err
	}

	return int(balance), nil
}

// Debit - списание. Баланс не может уйти в минус
func (r *repo) Debit(ctx context.Context, id int, amount int) error {
	query := sq.Update(table).
		Set(colBalance, sq.Expr(colBalance+" - ?", int64(amount))).
		Where(sq.Eq{colID: id}).
		Where(sq.GtOrEq{colBalance: int64(amount)}).
		PlaceholderFormat(sq.Dollar)

	sqlStr, args, err := query.ToSql()
	if err != nil {
		return err
	}

	res, err := r.conn(ctx).Exec(ctx, sqlStr, args...)
	if err != nil {
		return err
	}
	if res.RowsAffected() == 0 {
		return model.ErrInsufficientFunds
	}

	return nil
}

// Credit - зачисление на баланс
func (r *repo) Credit(ctx context.Context, id int, amount int) error {
	query := sq.Update(table).
		Set(colBalance, sq.Expr(colBalance+" + ?", int64(amount))).
		Where(sq.Eq{colID: id}).
		PlaceholderFormat(sq.Dollar)

	sqlStr, args, err := query.ToSql()
	if err != nil {
		return err
	}

	res, err := r.conn(ctx).Exec(ctx, sqlStr, args...)
	if err != nil {
		return err
	}
	if res.RowsAffected() == 0 {
		return model.ErrNotFound
	}

	return nil
}

// IsBlocked - заблокирован ли пользователь
func (r *repo) IsBlocked(ctx context.Context, id int) (bool, error) {
	query := sq.Select(colBlocked).
		From(table).
		Where(sq.Eq{colID: id}).
		PlaceholderFormat(sq.Dollar)

	sqlStr, args, err := query.ToSql()
	if err != nil {
		return false, err
	}

	var blocked bool
	err = r.conn(ctx).QueryRow(ctx, sqlStr, args...).Scan(&blocked)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return false, model.ErrNotFound
		}
		return false, err
	}

	return blocked, nil
}

// SetBlocked - блокировка/разблокировка пользователя
func (r *repo) SetBlocked(ctx context.Context, id int, blocked bool) error {
	query := sq.Update(table).
		Set(colBlocked, blocked).
		Where(sq.Eq{colID: id}).
		PlaceholderFormat(sq.Dollar)

	sqlStr, args, err := query.ToSql()
	if err != nil {
		return err
	}

	_, err = r.conn(ctx).Exec(ctx, sqlStr, args...)
	return err
}

// AddExperience - начисление опыта
func (r *repo) AddExperience(ctx context.Context, id int, xp int) error {
	query := sq.Update(table).
		Set(colExperience, sq.Expr(colExperience+" + ?", xp)).
		Where(sq.Eq{colID: id}).
		PlaceholderFormat(sq.Dollar)

	sqlStr, args, err := query.ToSql()
	if err != nil {
		return err
	}

	_, err = r.conn(ctx).Exec(ctx, sqlStr, args...)
	return err
}

// NextDrawNonce - увеличивает счетчик розыгрышей пользователя и возвращает новое значение
func (r *repo) NextDrawNonce(ctx context.Context, id int) (uint64, error) {
	query := sq.Update(table).
		Set(colDrawNonce, sq.Expr(colDrawNonce+" + 1")).
		Where(sq.Eq{colID: id}).
		Suffix("RETURNING " + colDrawNonce).
		PlaceholderFormat(sq.Dollar)

	sqlStr, args, err := query.ToSql()
	if err != nil {
		return 0, err
	}

	var nonce int64
	err = r.conn(ctx).QueryRow(ctx, sqlStr, args...).Scan(&nonce)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, model.ErrNotFound
		}
		return 0, err
	}

	return uint64(nonce), nil
}
