package fake

import (
	"context"
	"errors"
	"fmt"
	"lootbox_backend/internal/model"
	"lootbox_backend/internal/repository"
	"sort"
	"sync"
	"time"
)

// ErrLockTimeout - строка пользователя занята транзакцией дольше LockTimeout
var ErrLockTimeout = errors.New("lock wait timeout")

// rowLock - блокировка строки пользователя до конца транзакции,
// как SELECT ... FOR UPDATE и UPDATE в postgres
type rowLock struct {
	holder   *tx
	released chan struct{}
}

// InventoryItem - предмет в инвентаре
type InventoryItem struct {
	UserID int
	ItemID string
	DrawID string
}

// Store реализует все репозитории хранилища в памяти
type Store struct {
	mu        sync.Mutex
	users     map[int]*model.User
	cases     map[int]*model.Pool
	inventory []InventoryItem
	draws     []model.DrawRecord
	flags     []model.AbuseFlag
	failures  map[string]error
	rows      map[int]*rowLock

	// LockTimeout - сколько запись ждет строку, занятую транзакцией
	LockTimeout time.Duration

	// AfterDebit вызывается после успешного списания, вне блокировки
	AfterDebit func()
}

var (
	_ repository.UserRepository      = (*Store)(nil)
	_ repository.CaseRepository      = (*Store)(nil)
	_ repository.InventoryRepository = (*Store)(nil)
	_ repository.DrawRepository      = (*Store)(nil)
	_ repository.AbuseRepository     = (*Store)(nil)
)

func NewStore() *Store {
	return &Store{
		users:    make(map[int]*model.User),
		cases:    make(map[int]*model.Pool),
		failures:    make(map[string]error),
		rows:        make(map[int]*rowLock),
		LockTimeout: time.Second,
	}
}

// PutUser добавляет или заменяет пользователя
func (s *Store) PutUser(u model.User) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.users[u.ID] = &u
}

// PutCase добавляет или заменяет кейс
func (s *Store) PutCase(p model.Pool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cases[p.ID] = &p
}

// SetCaseEnabled меняет доступность кейса
func (s *Store) SetCaseEnabled(id int, enabled bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if p, ok := s.cases[id]; ok {
		p.Enabled = enabled
	}
}

// SetUserBlocked меняет статус пользователя в обход блокировок строк,
// как изменение, зафиксированное до захвата строки транзакцией
func (s *Store) SetUserBlocked(id int, blocked bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if u, ok := s.users[id]; ok {
		u.Blocked = blocked
	}
}

// Fail заставляет метод возвращать err, nil снимает ошибку
func (s *Store) Fail(method string, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err == nil {
		delete(s.failures, method)
		return
	}
	s.failures[method] = err
}

// User - копия пользователя
func (s *Store) User(id int) model.User {
	s.mu.Lock()
	defer s.mu.Unlock()
	if u, ok := s.users[id]; ok {
		return *u
	}
	return model.User{}
}

func (s *Store) Inventory(userID int) []InventoryItem {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []InventoryItem
	for _, it := range s.inventory {
		if it.UserID == userID {
			out = append(out, it)
		}
	}
	return out
}

func (s *Store) Draws() []model.DrawRecord {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]model.DrawRecord(nil), s.draws...)
}

func (s *Store) Flags() []model.AbuseFlag {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]model.AbuseFlag(nil), s.flags...)
}

// onRollback регистрирует откат изменения, если вызов внутри транзакции
func (s *Store) onRollback(ctx context.Context, undo func()) {
	if t := txFrom(ctx); t != nil {
		t.undo = append(t.undo, func() {
			s.mu.Lock()
			defer s.mu.Unlock()
			undo()
		})
	}
}

// lockRow ждет строку пользователя, а внутри транзакции захватывает ее до конца транзакции.
// Вызывается под s.mu, на время ожидания отпускает его
func (s *Store) lockRow(ctx context.Context, id int) error {
	t := txFrom(ctx)
	for {
		l, ok := s.rows[id]
		if !ok {
			break
		}
		if t != nil && l.holder == t {
			return nil
		}

		s.mu.Unlock()
		timer := time.NewTimer(s.LockTimeout)
		select {
		case <-l.released:
			timer.Stop()
			s.mu.Lock()
		case <-timer.C:
			s.mu.Lock()
			return fmt.Errorf("%w: user %d", ErrLockTimeout, id)
		case <-ctx.Done():
			timer.Stop()
			s.mu.Lock()
			return ctx.Err()
		}
	}
	if t == nil {
		return nil
	}

	l := &rowLock{holder: t, released: make(chan struct{})}
	s.rows[id] = l
	t.done = append(t.done, func() {
		s.mu.Lock()
		delete(s.rows, id)
		s.mu.Unlock()
		close(l.released)
	})
	return nil
}

func (s *Store) user(id int) (*model.User, error) {
	u, ok := s.users[id]
	if !ok {
		return nil, model.ErrNotFound
	}
	return u, nil
}

func (s *Store) GetUser(_ context.Context, id int) (*model.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.failures["GetUser"]; err != nil {
		return nil, err
	}
	u, err := s.user(id)
	if err != nil {
		return nil, err
	}
	cp := *u
	return &cp, nil
}

func (s *Store) GetBalance(ctx context.Context, id int) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.failures["GetBalance"]; err != nil {
		return 0, err
	}
	if err := s.lockRow(ctx, id); err != nil {
		return 0, err
	}
	u, err := s.user(id)
	if err != nil {
		return 0, err
	}
	return u.Balance, nil
}

func (s *Store) Debit(ctx context.Context, id int, amount int) error {
	s.mu.Lock()
	if err := s.failures["Debit"]; err != nil {
		s.mu.Unlock()
		return err
	}
	if err := s.lockRow(ctx, id); err != nil {
		s.mu.Unlock()
		return err
	}
	u, err := s.user(id)
	if err != nil {
		s.mu.Unlock()
		return err
	}
	if u.Balance < amount {
		s.mu.Unlock()
		return model.ErrInsufficientFunds
	}
	u.Balance -= amount
	s.onRollback(ctx, func() { u.Balance += amount })
	s.mu.Unlock()

	if s.AfterDebit != nil {
		s.AfterDebit()
	}
	return nil
}

func (s *Store) Credit(ctx context.Context, id int, amount int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.failures["Credit"]; err != nil {
		return err
	}
	if err := s.lockRow(ctx, id); err != nil {
		return err
	}
	u, err := s.user(id)
	if err != nil {
		return err
	}
	u.Balance += amount
	s.onRollback(ctx, func() { u.Balance -= amount })
	return nil
}

func (s *Store) IsBlocked(_ context.Context, id int) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.failures["IsBlocked"]; err != nil {
		return false, err
	}
	u, err := s.user(id)
	if err != nil {
		return false, err
	}
	return u.Blocked, nil
}

func (s *Store) SetBlocked(ctx context.Context, id int, blocked bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.failures["SetBlocked"]; err != nil {
		return err
	}
	if err := s.lockRow(ctx, id); err != nil {
		return err
	}
	u, err := s.user(id)
	if err != nil {
		return err
	}
	prev := u.Blocked
	u.Blocked = blocked
	s.onRollback(ctx, func() { u.Blocked = prev })
	return nil
}

func (s *Store) AddExperience(ctx context.Context, id int, xp int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.failures["AddExperience"]; err != nil {
		return err
	}
	if err := s.lockRow(ctx, id); err != nil {
		return err
	}
	u, err := s.user(id)
	if err != nil {
		return err
	}
	u.Experience += xp
	s.onRollback(ctx, func() { u.Experience -= xp })
	return nil
}

func (s *Store) NextDrawNonce(ctx context.Context, id int) (uint64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.failures["NextDrawNonce"]; err != nil {
		return 0, err
	}
	if err := s.lockRow(ctx, id); err != nil {
		return 0, err
	}
	u, err := s.user(id)
	if err != nil {
		return 0, err
	}
	u.DrawNonce++
	s.onRollback(ctx, func() { u.DrawNonce-- })
	return u.DrawNonce, nil
}

func (s *Store) GetCase(_ context.Context, id int) (*model.Pool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.failures["GetCase"]; err != nil {
		return nil, err
	}
	p, ok := s.cases[id]
	if !ok {
		return nil, model.ErrNotFound
	}
	cp := *p
	cp.Entries = append([]model.PoolEntry(nil), p.Entries...)
	return &cp, nil
}

func (s *Store) AddItem(ctx context.Context, userID int, itemID string, drawID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.failures["AddItem"]; err != nil {
		return err
	}
	s.inventory = append(s.inventory, InventoryItem{UserID: userID, ItemID: itemID, DrawID: drawID})
	n := len(s.inventory)
	s.onRollback(ctx, func() { s.inventory = s.inventory[:n-1] })
	return nil
}

func (s *Store) AppendDrawRecord(ctx context.Context, rec *model.DrawRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.failures["AppendDrawRecord"]; err != nil {
		return err
	}
	s.draws = append(s.draws, *rec)
	n := len(s.draws)
	s.onRollback(ctx, func() { s.draws = s.draws[:n-1] })
	return nil
}

func (s *Store) GetDrawRecord(_ context.Context, id string) (*model.DrawRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.failures["GetDrawRecord"]; err != nil {
		return nil, err
	}
	for _, d := range s.draws {
		if d.ID == id {
			cp := d
			return &cp, nil
		}
	}
	return nil, model.ErrNotFound
}

func (s *Store) ListDrawRecords(_ context.Context, userID int, limit uint64) ([]model.DrawRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.failures["ListDrawRecords"]; err != nil {
		return nil, err
	}
	var out []model.DrawRecord
	for _, d := range s.draws {
		if d.UserID == userID {
			out = append(out, d)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	if uint64(len(out)) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (s *Store) AppendAbuseFlag(ctx context.Context, flag *model.AbuseFlag) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.failures["AppendAbuseFlag"]; err != nil {
		return err
	}
	// строка пользователя; для abuse_flags - проверка внешнего ключа
	if err := s.lockRow(ctx, flag.UserID); err != nil {
		return err
	}
	flag.ID = int64(len(s.flags) + 1)
	s.flags = append(s.flags, *flag)
	n := len(s.flags)
	s.onRollback(ctx, func() { s.flags = s.flags[:n-1] })
	return nil
}

func (s *Store) CountAbuseFlags(_ context.Context, userID int) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.failures["CountAbuseFlags"]; err != nil {
		return 0, err
	}
	count := 0
	for _, f := range s.flags {
		if f.UserID == userID {
			count++
		}
	}
	return count, nil
}
