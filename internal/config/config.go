package config

import (
	"lootbox_backend/internal/model"
	"time"

	"github.com/joho/godotenv"
)

func Load(path string) error {
	err := godotenv.Load(path)
	if err != nil {
		return err
	}
	return nil
}

// Режимы номера розыгрыша
const (
	SequenceFixed       = "fixed"
	SequenceIncremental = "incremental"
)

// Хранилища окон антиабуза
const (
	AbuseStoreMemory = "memory"
	AbuseStoreRedis  = "redis"
)

type DrawConfig interface {
	TierWeights() map[model.Rarity]float64
	SequenceMode() string
	ExperiencePerDraw() int
}

type AbuseConfig interface {
	Window() time.Duration
	MaxDraws() int
	MaxCredit() int
	FlagsToBlock() int
	Store() string
}

type HTTPConfig interface {
	Address() string
}

type PGConfig interface {
	DSN() string
}

type RedisConfig interface {
	Addr() string
	Password() string
	DB() int
}

type JWTConfig interface {
	AccessTokenSecretKey() []byte
}

type LogConfig interface {
	Verbose() bool
}
