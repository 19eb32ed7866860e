package dto

type CreatePaymentRequest struct {
	Amount     float64 `json:"amount"`
	Purpose    string  `json:"purpose"`
	Currency   string  `json:"currency"`
	Refundable string  `json:"refundable"`
	Rate       string  `json:"rate"`
	BatchID    string  `json:"batchId"`
}
