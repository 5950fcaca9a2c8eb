package abuse_window_redis_repo

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// Окно - sorted set, score - время события в миллисекундах.
// Проверка и добавление выполняются одним скриптом, поэтому атомарны между процессами
var tryDrawScript = redis.NewScript(`
local key = KEYS[1]
local now = tonumber(ARGV[1])
local window = tonumber(ARGV[2])
local limit = tonumber(ARGV[3])
redis.call('ZREMRANGEBYSCORE', key, '-inf', now - window)
local count = redis.call('ZCARD', key)
if count + 1 > limit then
  return 0
end
redis.call('ZADD', key, now, ARGV[4])
redis.call('PEXPIRE', key, window)
return 1
`)

// Элемент окна зачислений - "сумма:uuid"
var tryCreditScript = redis.NewScript(`
local key = KEYS[1]
local now = tonumber(ARGV[1])
local window = tonumber(ARGV[2])
local limit = tonumber(ARGV[3])
local amount = tonumber(ARGV[4])
redis.call('ZREMRANGEBYSCORE', key, '-inf', now - window)
local sum = amount
for _, m in ipairs(redis.call('ZRANGE', key, 0, -1)) do
  sum = sum + tonumber(string.match(m, '^(%-?%d+):'))
end
if sum > limit then
  return 0
end
redis.call('ZADD', key, now, ARGV[4] .. ':' .. ARGV[5])
redis.call('PEXPIRE', key, window)
return 1
`)

// WindowRepo - окна антиабуза в Redis, общие для всех процессов
type WindowRepo struct {
	client *redis.Client
}

func NewAbuseWindowRepository(client *redis.Client) *WindowRepo {
	return &WindowRepo{client: client}
}

// TryDraw - учитывает открытие, если лимит окна не превышен
func (r *WindowRepo) TryDraw(ctx context.Context, userID int, at time.Time, window time.Duration, limit int) (bool, error) {
	key := fmt.Sprintf(KeyDrawWindow, userID)

	res, err := tryDrawScript.Run(ctx, r.client, []string{key},
		at.UnixMilli(), window.Milliseconds(), limit, uuid.NewString()).Int()
	if err != nil {
		return false, fmt.Errorf("failed to check draw window: %w", err)
	}
	return res == 1, nil
}

// TryCredit - учитывает зачисление, если сумма в окне не превышает лимит
func (r *WindowRepo) TryCredit(ctx context.Context, userID int, amount int, at time.Time, window time.Duration, limit int) (bool, error) {
	key := fmt.Sprintf(KeyCreditWindow, userID)

	res, err := tryCreditScript.Run(ctx, r.client, []string{key},
		at.UnixMilli(), window.Milliseconds(), limit, amount, uuid.NewString()).Int()
	if err != nil {
		return false, fmt.Errorf("failed to check credit window: %w", err)
	}
	return res == 1, nil
}

// Clear - удаляет окна пользователя
func (r *WindowRepo) Clear(ctx context.Context, userID int) error {
	return r.client.Del(ctx, fmt.Sprintf(KeyDrawWindow, userID), fmt.Sprintf(KeyCreditWindow, userID)).Err()
}
