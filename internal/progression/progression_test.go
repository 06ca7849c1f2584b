package progression

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"velorace/internal/model"
)

func TestPromote(t *testing.T) {
	u := &model.User{CommunityTier: model.Beginner, PersonalXP: 1999}
	_, ok := Promote(u)
	assert.False(t, ok)

	u.PersonalXP = 2065
	tier, ok := Promote(u)
	assert.True(t, ok)
	assert.Equal(t, model.Intermediate, tier)
	assert.Equal(t, model.Intermediate, u.CommunityTier)
}

func TestPromoteOneStepPerCall(t *testing.T) {
	u := &model.User{CommunityTier: model.Beginner, PersonalXP: 20000}

	tier, ok := Promote(u)
	assert.True(t, ok)
	assert.Equal(t, model.Intermediate, tier)

	tier, _ = Promote(u)
	assert.Equal(t, model.Advanced, tier)
	tier, _ = Promote(u)
	assert.Equal(t, model.Expert, tier)

	_, ok = Promote(u)
	assert.False(t, ok)
	assert.Equal(t, model.Expert, u.CommunityTier)
}

func TestRecomputeRanks(t *testing.T) {
	users := []*model.User{
		{ID: "a", Location: "Chennai", CommunityTier: model.Beginner, PersonalXP: 450},
		{ID: "b", Location: "Chennai", CommunityTier: model.Intermediate, PersonalXP: 2500},
		{ID: "c", Location: "Bangalore", CommunityTier: model.Advanced, PersonalXP: 7800},
		{ID: "d", Location: "Chennai", CommunityTier: model.Beginner, PersonalXP: 450},
		{ID: "e", Location: "Chennai", CommunityTier: model.Beginner, PersonalXP: 900},
	}
	RecomputeRanks(users)

	global := map[string]int{}
	community := map[string]int{}
	for _, u := range users {
		global[u.ID] = u.GlobalRank
		community[u.ID] = u.CommunityRank
	}
	assert.Equal(t, map[string]int{"c": 1, "b": 2, "e": 3, "a": 4, "d": 5}, global)
	assert.Equal(t, map[string]int{"c": 1, "b": 1, "e": 1, "a": 2, "d": 3}, community)

	for _, u := range users {
		for _, v := range users {
			if u.PersonalXP > v.PersonalXP {
				assert.Less(t, u.GlobalRank, v.GlobalRank)
			}
		}
	}
}
