// Package synthetic generates placeholder transaction collections for
// running the portal without a vendor endpoint. Generation is random and
// unseeded; the data is a stand-in, not the system under test.
package synthetic

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"github.com/google/uuid"

	"github.com/PutuPutra/finance-portal/internal/core"
)

var (
	transactionTypes = []core.TransactionType{
		core.TypeIncome, core.TypeExpense, core.TypeTransfer, core.TypeInvestment,
	}
	categories = []string{
		"Salary", "Rent", "Utilities", "Office Supplies",
		"Marketing", "Travel", "Consulting", "Software",
	}
	paymentMethods = []string{"qris", "cash", "bank_transfer", "e-wallet"}
	devices        = []string{"VM-001", "VM-002", "VM-003"}
)

type Source struct {
	count      int
	windowDays int
	now        func() time.Time
}

// New returns a source producing count records dated within the trailing
// windowDays days.
func New(count, windowDays int) *Source {
	return &Source{count: count, windowDays: windowDays, now: time.Now}
}

func (s *Source) Mode() string { return "synthetic" }

// Fetch generates a fresh collection. Income records get a positive
// amount in [1000, 11000) whole units, everything else a negative amount
// in (-5100, -100].
func (s *Source) Fetch(_ context.Context) ([]core.Transaction, error) {
	now := s.now()
	out := make([]core.Transaction, 0, s.count)
	for i := 0; i < s.count; i++ {
		date := now.AddDate(0, 0, -rand.Intn(s.windowDays))

		typ := transactionTypes[rand.Intn(len(transactionTypes))]
		var cents int64
		if typ == core.TypeIncome {
			cents = int64(rand.Intn(10000)+1000) * 100
		} else {
			cents = -int64(rand.Intn(5000)+100) * 100
		}

		status := core.StatusCompleted
		if rand.Float64() > 0.8 {
			status = core.StatusPending
		}

		out = append(out, core.Transaction{
			ID:            fmt.Sprintf("tr-%d", i+1),
			Date:          date,
			Description:   fmt.Sprintf("Transaction #%d", i+1),
			Amount:        core.Money{Cents: cents},
			Type:          typ,
			Category:      categories[rand.Intn(len(categories))],
			Status:        status,
			ProductName:   fmt.Sprintf("Product %c", 'A'+rand.Intn(6)),
			DeviceID:      devices[rand.Intn(len(devices))],
			PaymentMethod: paymentMethods[rand.Intn(len(paymentMethods))],
			NettAmount:    core.Money{Cents: cents},
			OrderID:       uuid.NewString(),
		})
	}
	return out, nil
}
