package seed

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"velorace/internal/ledger"
)

func TestDocumentReconciles(t *testing.T) {
	doc := Document(time.Date(2026, 3, 1, 8, 0, 0, 0, time.UTC))

	require.Len(t, doc.Users, 3)
	for _, u := range doc.Users {
		assert.NoError(t, ledger.Reconcile(doc, u.ID), u.Username)
		assert.Equal(t, DemoPassword, u.Password)
	}

	assert.Equal(t, 1, doc.UserByID("u3").GlobalRank)
	assert.Equal(t, 2, doc.UserByID("u1").GlobalRank)
	assert.Equal(t, 3, doc.UserByID("u2").GlobalRank)
}

func TestDocumentEncodes(t *testing.T) {
	doc := Document(time.Now())
	clone, err := doc.Clone()
	require.NoError(t, err)
	assert.Len(t, clone.CommunityEvents, 2)
	assert.Len(t, clone.Communities, 3)
	assert.Len(t, clone.Badges, len(Badges()))
}
