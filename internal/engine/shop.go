package engine

import (
	"context"

	"velorace/internal/community"
	"velorace/internal/ledger"
	"velorace/internal/model"
)

// PurchaseCraving spends Credits on a shop item for the session user. A
// refusal leaves every balance and the ledger untouched.
func (e *Engine) PurchaseCraving(ctx context.Context, cravingID string) (Result, error) {
	var res Result
	err := e.mutate(ctx, "purchaseCraving", func(tx *txn) (outcome, error) {
		u := tx.doc.CurrentUser()
		if u == nil {
			res = refused("Not logged in")
			return refuse, nil
		}
		item := e.craving(cravingID)
		if item == nil {
			res = refused("Invalid item")
			return refuse, nil
		}
		if u.Credits < item.CreditsCost {
			res = refused("Need %d Credits (You have %d)", item.CreditsCost, u.Credits)
			return refuse, nil
		}

		u.Credits -= item.CreditsCost
		u.CreditsSpent += item.CreditsCost
		u.CravingsPurchased++
		tx.doc.CravingsHistory = append(tx.doc.CravingsHistory, model.CravingPurchase{
			UserID:    u.ID,
			CravingID: item.ID,
			Date:      tx.now,
			Cost:      item.CreditsCost,
		})
		ledger.Append(tx.doc, u.ID, model.TxSpent, 0, -item.CreditsCost, "craving-"+item.ID, tx.now)
		tx.touch(u.ID)

		res = ok("Purchased %s!", item.Name)
		return commit, nil
	})
	return res, err
}

// JoinEvent registers the session user for an event, charging its entry
// cost. An unknown event is a no-op.
func (e *Engine) JoinEvent(ctx context.Context, eventID string) (Result, error) {
	var res Result
	err := e.mutate(ctx, "joinEvent", func(tx *txn) (outcome, error) {
		u := tx.doc.CurrentUser()
		if u == nil {
			res = refused("Not logged in")
			return refuse, nil
		}
		ev := tx.doc.EventByID(eventID)
		if ev == nil {
			res = refused("Event not found")
			return noop, nil
		}
		if ev.HasParticipant(u.ID) {
			res = refused("Already joined %s", ev.Title)
			return refuse, nil
		}
		if ev.Status == model.EventCompleted {
			res = refused("%s has already taken place", ev.Title)
			return refuse, nil
		}
		if u.Credits < ev.CreditsCost {
			res = refused("Not enough credits to join! Need %d (You have %d)", ev.CreditsCost, u.Credits)
			return refuse, nil
		}

		if ev.CreditsCost > 0 {
			u.Credits -= ev.CreditsCost
			u.CreditsSpent += ev.CreditsCost
			ledger.Append(tx.doc, u.ID, model.TxSpent, 0, -ev.CreditsCost, "event-join-"+ev.ID, tx.now)
		}
		ev.Participants = append(ev.Participants, u.ID)
		u.EventsAttended++
		u.EventParticipations++
		tx.post(u.ID, model.EventJoined{EventID: ev.ID, EventTitle: ev.Title})
		tx.touch(u.ID)

		res = ok("Joined %s!", ev.Title)
		return commit, nil
	})
	return res, err
}

// CompletePastEvents closes upcoming events whose date has passed.
func (e *Engine) CompletePastEvents(ctx context.Context) (int, error) {
	var n int
	err := e.mutate(ctx, "completePastEvents", func(tx *txn) (outcome, error) {
		n = community.CompletePast(tx.doc, tx.now)
		if n == 0 {
			return noop, nil
		}
		return commit, nil
	})
	if err != nil {
		return 0, err
	}
	return n, nil
}
