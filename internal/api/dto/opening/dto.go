package opening

import "time"

type Item struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Rarity string `json:"rarity"`
	Value  int    `json:"value"` // Стоимость предмета
}

type Seeds struct {
	SecretSeed           string `json:"secret_seed"`            // Раскрытый секретный сид (hex)
	SecretSeedCommitment string `json:"secret_seed_commitment"` // SHA-256 секретного сида (hex)
	PublicSeed           string `json:"public_seed"`
}

type OpenResponse struct {
	DrawID  string `json:"draw_id"`
	Item    Item   `json:"item"`
	Seeds   Seeds  `json:"seeds"`
	Nonce   uint64 `json:"nonce"`
	Balance int    `json:"balance"` // Баланс после списания
}

type Odds struct {
	Item        Item    `json:"item"`
	Probability float64 `json:"probability"`
}

type OddsResponse struct {
	CaseID int    `json:"case_id"`
	Odds   []Odds `json:"odds"` // Отсортированы по id предмета
}

type DrawResponse struct {
	ID        string    `json:"id"`
	CaseID    int       `json:"case_id"`
	ItemID    string    `json:"item_id"`
	Seeds     Seeds     `json:"seeds"`
	Nonce     uint64    `json:"nonce"`
	CreatedAt time.Time `json:"created_at"`
}

type DrawListResponse struct {
	Draws []DrawResponse `json:"draws"`
}
