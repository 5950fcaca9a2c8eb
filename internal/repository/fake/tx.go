// Package fake - репозитории в памяти и менеджер транзакций для тестов сервисов.
package fake

import (
	"context"
	"sync"

	"github.com/avito-tech/go-transaction-manager/trm/v2"
)

type txKey struct{}

// tx - журнал отката изменений, сделанных внутри транзакции.
// done выполняется после фиксации или отката: так отпускаются блокировки строк
type tx struct {
	undo []func()
	done []func()
}

func txFrom(ctx context.Context) *tx {
	t, _ := ctx.Value(txKey{}).(*tx)
	return t
}

// TxManager выполняет функции по одной, как блокировка строки пользователя.
// При ошибке откатывает все изменения Store, сделанные с контекстом транзакции.
// Изменения с внешним контекстом не откатываются и ждут строки, захваченные транзакцией
type TxManager struct {
	mu        sync.Mutex
	commits   int
	rollbacks int
}

var _ trm.Manager = (*TxManager)(nil)

func NewTxManager() *TxManager {
	return &TxManager{}
}

func (m *TxManager) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	return m.DoWithSettings(ctx, nil, fn)
}

func (m *TxManager) DoWithSettings(ctx context.Context, _ trm.Settings, fn func(ctx context.Context) error) error {
	// вложенная транзакция присоединяется к внешней
	if txFrom(ctx) != nil {
		return fn(ctx)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	t := &tx{}
	defer func() {
		for _, release := range t.done {
			release()
		}
	}()

	if err := fn(context.WithValue(ctx, txKey{}, t)); err != nil {
		for i := len(t.undo) - 1; i >= 0; i-- {
			t.undo[i]()
		}
		m.rollbacks++
		return err
	}
	m.commits++
	return nil
}

func (m *TxManager) Commits() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.commits
}

func (m *TxManager) Rollbacks() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.rollbacks
}
