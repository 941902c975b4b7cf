package audit

import (
	"encoding/json"
	"time"

	"github.com/PutuPutra/finance-portal/internal/core"
)

// TransactionAcceptedMessage is the audit event emitted when the portal
// accepts a manually entered transaction. The portal keeps no records
// of its own, so the event carries the full accepted payload.
type TransactionAcceptedMessage struct {
	Reference   string    `json:"reference"`
	Description string    `json:"description"`
	AmountCents int64     `json:"amount_cents"`
	Type        string    `json:"type"`
	Category    string    `json:"category"`
	Status      string    `json:"status"`
	Username    string    `json:"username"`
	AcceptedAt  time.Time `json:"accepted_at"`
}

// NewTransactionAcceptedMessage builds the audit event for an accepted
// transaction submitted by the given portal user.
func NewTransactionAcceptedMessage(t core.Transaction, username string) *TransactionAcceptedMessage {
	return &TransactionAcceptedMessage{
		Reference:   t.ID,
		Description: t.Description,
		AmountCents: t.Amount.Cents,
		Type:        string(t.Type),
		Category:    t.Category,
		Status:      string(t.Status),
		Username:    username,
		AcceptedAt:  time.Now(),
	}
}

func (m *TransactionAcceptedMessage) ToJSON() ([]byte, error) {
	return json.Marshal(m)
}

func TransactionAcceptedMessageFromJSON(data []byte) (*TransactionAcceptedMessage, error) {
	var msg TransactionAcceptedMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		return nil, err
	}
	return &msg, nil
}
