package models

// RawPayment is a buyer deposit / checkout payment as returned by the marketplace API.
type RawPayment struct {
	ID            FlexString `json:"id"`
	MongoID       FlexString `json:"_id"`
	Amount        FlexNumber `json:"amount"`
	Status        FlexString `json:"status"`
	Credited      FlexBool   `json:"credited"`
	Reference     FlexString `json:"reference"`
	TransactionID FlexString `json:"transactionId"`
	CustomerEmail FlexString `json:"customerEmail"`
	UserID        FlexString `json:"userId"`
	Provider      FlexString `json:"provider"`
	CreatedAt     FlexString `json:"createdAt"`
}

// RawWithdrawal is a wallet withdrawal request.
type RawWithdrawal struct {
	ID            FlexString `json:"id"`
	MongoID       FlexString `json:"_id"`
	Amount        FlexNumber `json:"amount"`
	Status        FlexString `json:"status"`
	UserID        FlexString `json:"userId"`
	BankName      FlexString `json:"bankName"`
	AccountNumber FlexString `json:"accountNumber"`
	Reference     FlexString `json:"reference"`
	CreatedAt     FlexString `json:"createdAt"`
}
