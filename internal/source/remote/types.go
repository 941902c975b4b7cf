package remote

import "encoding/json"

// Wire types for the vendor transaction endpoint. Only the fields the
// portal consumes are declared; the full entry is preserved verbatim on
// the normalized record for the detail view.

type apiResponse struct {
	Message string                     `json:"message"`
	Data    map[string]json.RawMessage `json:"data"`
}

type transactionData struct {
	Product product           `json:"product"`
	Payment payment           `json:"payment"`
	Time    transactionTime   `json:"time"`
	Detail  transactionDetail `json:"detail"`
}

type product struct {
	DeviceID string  `json:"device_id"`
	Name     string  `json:"name"`
	Location string  `json:"location"`
	SKU      string  `json:"sku"`
	Price    float64 `json:"price"`
}

type payment struct {
	Amount float64    `json:"amount"`
	Method string     `json:"method"`
	Nett   float64    `json:"nett"`
	Fee    paymentFee `json:"fee"`
}

type paymentFee struct {
	PlatformSharingRevenue float64 `json:"platform_sharing_revenue"`
	MDRQris                float64 `json:"mdr_qris"`
}

type transactionTime struct {
	Timestamp int64 `json:"timestamp"`
}

type transactionDetail struct {
	OrderID           string `json:"order_id"`
	TransactionStatus string `json:"transaction_status"`
}
