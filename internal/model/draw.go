package model

import "time"

// SeedPair - сиды розыгрыша. Секретный сид и публичный сид хранятся как непрозрачные строки
type SeedPair struct {
	SecretSeed           string
	SecretSeedCommitment string
	PublicSeed           string
}

// DrawRecord - запись о розыгрыше, по которой его можно проверить независимо.
// Только добавляется, никогда не изменяется
type DrawRecord struct {
	ID        string
	UserID    int
	CaseID    int
	ItemID    string
	Seeds     SeedPair
	Nonce     uint64
	CreatedAt time.Time
}

// OpenResult - результат открытия кейса. Секретный сид раскрыт
type OpenResult struct {
	DrawID  string
	Item    Item
	Seeds   SeedPair
	Nonce   uint64
	Balance int
}

// VerifyRequest - входные данные проверки розыгрыша.
// Commitment необязателен: если задан, дополнительно сверяется хэш секретного сида
type VerifyRequest struct {
	SecretSeed    string
	PublicSeed    string
	Nonce         uint64
	Items         []Item
	ClaimedItemID string
	Commitment    string
}

type VerifyResult struct {
	Matches           bool
	RecomputedItemID  string
	CommitmentChecked bool
	CommitmentMatches bool
}
