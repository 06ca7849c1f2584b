package ledger

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"velorace/internal/model"
)

var now = time.Date(2026, 3, 1, 8, 0, 0, 0, time.UTC)

func testDoc() *model.Document {
	return &model.Document{
		Users: []*model.User{
			{ID: "u1"},
			{ID: "u2"},
		},
		Communities: map[string]*model.CommunityData{},
	}
}

func TestAppendAndBalance(t *testing.T) {
	doc := testDoc()

	tx := Append(doc, "u1", model.TxEarned, 75, 75, "activity-run", now)
	require.NotNil(t, tx)
	assert.NotEmpty(t, tx.ID)
	Append(doc, "u1", model.TxSpent, 0, -50, "craving-ice-cream", now)
	Append(doc, "u2", model.TxEarned, 10, 10, "activity-run", now)

	xp, credits := Balance(doc, "u1")
	assert.Equal(t, 75, xp)
	assert.Equal(t, 25, credits)
	assert.Len(t, History(doc, "u1"), 2)
}

func TestAppendUnknownUser(t *testing.T) {
	doc := testDoc()
	assert.Nil(t, Append(doc, "ghost", model.TxEarned, 1, 1, "x", now))
	assert.Empty(t, doc.CurrencyTransactions)
}

func TestReconcile(t *testing.T) {
	doc := testDoc()
	u := doc.UserByID("u1")
	u.PersonalXP = 75
	u.TotalCreditsEarned = 75
	u.CreditsSpent = 50
	u.Credits = 25

	err := Reconcile(doc, "u1")
	assert.True(t, errors.Is(err, ErrUnreconciled))

	Append(doc, "u1", model.TxEarned, 75, 75, "activity-run", now)
	Append(doc, "u1", model.TxSpent, 0, -50, "craving", now)
	assert.NoError(t, Reconcile(doc, "u1"))

	u.Credits = 30
	assert.ErrorIs(t, Reconcile(doc, "u1"), ErrUnreconciled)
}

func TestOpen(t *testing.T) {
	doc := testDoc()
	u := doc.UserByID("u2")
	u.PersonalXP = 2500
	u.TotalXPEarned = 2500
	u.TotalCreditsEarned = 1400
	u.CreditsSpent = 750
	u.Credits = 650

	Open(doc, u, now)
	require.Len(t, doc.CurrencyTransactions, 2)
	assert.NoError(t, Reconcile(doc, "u2"))

	Open(doc, doc.UserByID("u1"), now)
	assert.Len(t, doc.CurrencyTransactions, 2)
}
