package liveactivity

import (
	"math/rand"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mcdev12/livescores/go/internal/models"
)

func TestRegistry_AddFirstWins(t *testing.T) {
	reg := Registry{}.
		Add(TrackedGame{GameID: 1, Sport: models.SportNFL, ActivityID: "A"}).
		Add(TrackedGame{GameID: 1, Sport: models.SportNFL, ActivityID: "B"})

	require.Equal(t, 1, reg.Len())
	g, ok := reg.Get(1)
	require.True(t, ok)
	assert.Equal(t, "A", g.ActivityID)
}

func TestRegistry_AddDoesNotMutateReceiver(t *testing.T) {
	base := Registry{{GameID: 1, ActivityID: "A"}}
	grown := base.Add(TrackedGame{GameID: 2, ActivityID: "B"})

	assert.Equal(t, 1, base.Len())
	assert.Equal(t, 2, grown.Len())

	shrunk := grown.Remove(1)
	assert.Equal(t, 2, grown.Len())
	assert.Equal(t, []string{"B"}, shrunk.ActivityIDs())
}

func TestRegistry_RemoveAbsentIsNoop(t *testing.T) {
	reg := Registry{{GameID: 1, ActivityID: "A"}}
	assert.Equal(t, reg, reg.Remove(42))
}

func TestRegistry_EqualIgnoresOrder(t *testing.T) {
	a := Registry{{GameID: 1, ActivityID: "A"}, {GameID: 2, ActivityID: "B"}}
	b := Registry{{GameID: 2, ActivityID: "B"}, {GameID: 1, ActivityID: "A"}}
	c := Registry{{GameID: 2, ActivityID: "C"}, {GameID: 1, ActivityID: "A"}}

	assert.True(t, a.Equal(b))
	assert.False(t, a.Equal(c))
	assert.False(t, a.Equal(a[:1]))

	byGame := cmpopts.SortSlices(func(x, y TrackedGame) bool { return x.GameID < y.GameID })
	if diff := cmp.Diff(a, b, byGame); diff != "" {
		t.Errorf("registries differ (-a +b):\n%s", diff)
	}
}

func TestRegistry_RandomOpsKeepGameIDsUnique(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	reg := Registry{}

	for i := 0; i < 2000; i++ {
		id := rng.Intn(8)
		if rng.Intn(3) == 0 {
			reg = reg.Remove(id)
			assert.False(t, reg.Contains(id))
			continue
		}
		before, had := reg.Get(id)
		reg = reg.Add(TrackedGame{GameID: id, ActivityID: string(rune('a' + i%26))})
		if had {
			after, _ := reg.Get(id)
			assert.Equal(t, before, after)
		}

		seen := make(map[int]bool)
		for _, g := range reg {
			require.False(t, seen[g.GameID], "duplicate game %d", g.GameID)
			seen[g.GameID] = true
		}
	}
}
