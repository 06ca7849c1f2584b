// Package ledger keeps the append-only currency transaction log.
//
// Balances on the user record are authoritative; the ledger is an
// independent audit trail that must reconcile with them after every
// operation. Amounts are signed: spending is a negative credits amount and
// a reversal carries the deltas that were actually applied.
package ledger

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"velorace/internal/model"
)

var ErrUnreconciled = errors.New("ledger does not reconcile with balances")

// Append records one transaction for userID. Unknown users are ignored.
func Append(doc *model.Document, userID string, txType model.TransactionType, xp, credits int, source string, at time.Time) *model.CurrencyTransaction {
	if doc.UserByID(userID) == nil {
		return nil
	}

	doc.CurrencyTransactions = append(doc.CurrencyTransactions, model.CurrencyTransaction{
		ID:            uuid.New().String(),
		UserID:        userID,
		Type:          txType,
		XPAmount:      xp,
		CreditsAmount: credits,
		Source:        source,
		Timestamp:     at,
	})
	return &doc.CurrencyTransactions[len(doc.CurrencyTransactions)-1]
}

// Balance sums every ledger delta for userID.
func Balance(doc *model.Document, userID string) (xp, credits int) {
	for _, tx := range doc.CurrencyTransactions {
		if tx.UserID != userID {
			continue
		}
		xp += tx.XPAmount
		credits += tx.CreditsAmount
	}
	return xp, credits
}

// History returns the user's transactions, oldest first.
func History(doc *model.Document, userID string) []model.CurrencyTransaction {
	var out []model.CurrencyTransaction
	for _, tx := range doc.CurrencyTransactions {
		if tx.UserID == userID {
			out = append(out, tx)
		}
	}
	return out
}

// Reconcile checks that the ledger sums match the user's stored XP and
// Credits, and that credits == totalCreditsEarned - creditsSpent.
func Reconcile(doc *model.Document, userID string) error {
	u := doc.UserByID(userID)
	if u == nil {
		return nil
	}

	if u.Credits != u.TotalCreditsEarned-u.CreditsSpent {
		return fmt.Errorf("%w: user %s credits %d, earned %d, spent %d",
			ErrUnreconciled, userID, u.Credits, u.TotalCreditsEarned, u.CreditsSpent)
	}

	xp, credits := Balance(doc, userID)
	if xp != u.PersonalXP || credits != u.Credits {
		return fmt.Errorf("%w: user %s ledger xp %d credits %d, stored xp %d credits %d",
			ErrUnreconciled, userID, xp, credits, u.PersonalXP, u.Credits)
	}
	return nil
}

// Open writes opening balances for a user whose counters were set outside
// the ledger, so that Reconcile holds for them.
func Open(doc *model.Document, u *model.User, at time.Time) {
	if u.PersonalXP != 0 || u.TotalCreditsEarned != 0 {
		Append(doc, u.ID, model.TxBonus, u.PersonalXP, u.TotalCreditsEarned, "opening-balance", at)
	}
	if u.CreditsSpent != 0 {
		Append(doc, u.ID, model.TxSpent, 0, -u.CreditsSpent, "opening-spend", at)
	}
}
