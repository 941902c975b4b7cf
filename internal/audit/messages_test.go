package audit

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/PutuPutra/finance-portal/internal/core"
)

func TestNewTransactionAcceptedMessage(t *testing.T) {
	tx := core.Transaction{
		ID:          "tx-9001",
		Description: "Team lunch",
		Amount:      core.Money{Cents: -4550},
		Type:        core.TypeExpense,
		Category:    "Food & Dining",
		Status:      core.StatusCompleted,
	}

	before := time.Now()
	msg := NewTransactionAcceptedMessage(tx, "user")

	if msg.Reference != "tx-9001" {
		t.Errorf("Reference = %q, want tx-9001", msg.Reference)
	}
	if msg.AmountCents != -4550 {
		t.Errorf("AmountCents = %d, want -4550", msg.AmountCents)
	}
	if msg.Type != "Expense" || msg.Status != "Completed" {
		t.Errorf("Type/Status = %q/%q, want Expense/Completed", msg.Type, msg.Status)
	}
	if msg.Username != "user" {
		t.Errorf("Username = %q, want user", msg.Username)
	}
	if msg.AcceptedAt.Before(before) {
		t.Errorf("AcceptedAt = %v, before construction time %v", msg.AcceptedAt, before)
	}

	body, err := msg.ToJSON()
	if err != nil {
		t.Fatalf("ToJSON() error: %v", err)
	}
	var fields map[string]any
	if err := json.Unmarshal(body, &fields); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	for _, key := range []string{"reference", "description", "amount_cents", "type", "category", "status", "username", "accepted_at"} {
		if _, ok := fields[key]; !ok {
			t.Errorf("wire payload missing %q", key)
		}
	}
}

func TestNoopPublisher(t *testing.T) {
	var p Publisher = Noop{}
	if err := p.PublishTransactionAccepted(context.Background(), core.Transaction{}, "user"); err != nil {
		t.Fatalf("Noop publish error: %v", err)
	}
	if err := p.Close(); err != nil {
		t.Fatalf("Noop close error: %v", err)
	}
}
