package verification

type Item struct {
	ID     string `json:"id"`
	Name   string `json:"name,omitempty"`
	Rarity string `json:"rarity"`
	Value  int    `json:"value,omitempty"`
}

type VerifyRequest struct {
	SecretSeed    string `json:"secret_seed"`
	PublicSeed    string `json:"public_seed"`
	Nonce         uint64 `json:"nonce"`
	Items         []Item `json:"items"` // Состав кейса на момент розыгрыша
	ClaimedItemID string `json:"claimed_item_id"`
	Commitment    string `json:"secret_seed_commitment,omitempty"` // Необязательно
}

type VerifyResponse struct {
	Matches           bool   `json:"matches"`
	RecomputedItemID  string `json:"recomputed_item_id"`
	CommitmentChecked bool   `json:"commitment_checked"`
	CommitmentMatches bool   `json:"commitment_matches"`
}
