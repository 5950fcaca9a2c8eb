package wallet

type DepositRequest struct {
	Amount int `json:"amount"` // Сумма депозита
}

type WalletResponse struct {
	Balance    int  `json:"balance"`
	Blocked    bool `json:"blocked"`
	Experience int  `json:"experience"`
}
