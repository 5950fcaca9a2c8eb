package fairness

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strconv"
	"time"

	"github.com/google/uuid"
)

// SecretSeedSize - размер секретного сида в байтах (256 бит)
const SecretSeedSize = 32

// Seeds - материал одного розыгрыша
type Seeds struct {
	Secret     []byte
	Commitment string
	Public     string
}

// SecretHex - секретный сид в том виде, в котором он хранится и раскрывается
func (s Seeds) SecretHex() string {
	return hex.EncodeToString(s.Secret)
}

// GenerateSecretSeed - криптостойкий случайный сид
func GenerateSecretSeed() ([]byte, error) {
	b := make([]byte, SecretSeedSize)
	if _, err := rand.Read(b); err != nil {
		return nil, fmt.Errorf("entropy source: %w", err)
	}
	return b, nil
}

// GeneratePublicSeed - идентификатор пользователя, время в наносекундах и свежая случайность.
// Случайная часть делает сид уникальным даже при грубых часах
func GeneratePublicSeed(userID int, now time.Time) string {
	return strconv.Itoa(userID) + "-" + strconv.FormatInt(now.UnixNano(), 10) + "-" + uuid.NewString()
}

// Commit - SHA-256 от сырого секретного сида в hex
func Commit(secret []byte) string {
	h := sha256.Sum256(secret)
	return hex.EncodeToString(h[:])
}

// NewSeeds генерирует полный набор сидов для розыгрыша
func NewSeeds(userID int, now time.Time) (Seeds, error) {
	secret, err := GenerateSecretSeed()
	if err != nil {
		return Seeds{}, err
	}
	return Seeds{
		Secret:     secret,
		Commitment: Commit(secret),
		Public:     GeneratePublicSeed(userID, now),
	}, nil
}

// DecodeSecret разбирает раскрытый секретный сид
func DecodeSecret(secretHex string) ([]byte, error) {
	if secretHex == "" {
		return nil, fmt.Errorf("empty secret seed")
	}
	b, err := hex.DecodeString(secretHex)
	if err != nil {
		return nil, fmt.Errorf("secret seed is not hex: %w", err)
	}
	return b, nil
}

// ValidCommitment проверяет формат хэша: 64 hex-символа
func ValidCommitment(commitment string) bool {
	if len(commitment) != sha256.Size*2 {
		return false
	}
	_, err := hex.DecodeString(commitment)
	return err == nil
}
