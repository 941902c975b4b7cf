package remote

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/PutuPutra/finance-portal/internal/core"
)

// Normalize reshapes one vendor entry into the canonical record. The
// raw entry is preserved on the record for the detail view.
//
// Status derivation from the vendor transaction_status code:
//
//	refunded, refund_pending      -> Refunded / Refund
//	cancel, timeout, expire       -> Cancelled / Sale
//	anything else                 -> Completed / Sale
func Normalize(id string, entry json.RawMessage) (core.Transaction, error) {
	var data transactionData
	if err := json.Unmarshal(entry, &data); err != nil {
		return core.Transaction{}, fmt.Errorf("decode entry %s: %w", id, err)
	}

	status, typ := deriveStatus(data.Detail.TransactionStatus)

	return core.Transaction{
		ID:            id,
		Date:          fromUnix(data.Time.Timestamp),
		Description:   data.Product.Name,
		Amount:        core.Money{Cents: core.CentsFromFloat(data.Payment.Amount)},
		Type:          typ,
		Category:      category(data.Product),
		Status:        status,
		ProductName:   data.Product.Name,
		DeviceID:      data.Product.DeviceID,
		PaymentMethod: data.Payment.Method,
		NettAmount:    core.Money{Cents: core.CentsFromFloat(data.Payment.Nett)},
		Fee:           core.Money{Cents: core.CentsFromFloat(data.Payment.Fee.PlatformSharingRevenue)},
		OrderID:       data.Detail.OrderID,
		Raw:           entry,
	}, nil
}

func deriveStatus(code string) (core.Status, core.TransactionType) {
	switch code {
	case "refunded", "refund_pending":
		return core.StatusRefunded, core.TypeRefund
	case "cancel", "timeout", "expire":
		return core.StatusCancelled, core.TypeSale
	default:
		return core.StatusCompleted, core.TypeSale
	}
}

// category labels the record for grouping. The vendor schema carries no
// category field, so the SKU family serves as one; location is the
// fallback for SKU-less entries.
func category(p product) string {
	if p.SKU != "" {
		return p.SKU
	}
	if p.Location != "" {
		return p.Location
	}
	return "Uncategorized"
}

// fromUnix interprets the vendor timestamp, which arrives in seconds or
// milliseconds depending on the gateway version.
func fromUnix(ts int64) time.Time {
	if ts > 1e12 {
		return time.UnixMilli(ts).UTC()
	}
	return time.Unix(ts, 0).UTC()
}
