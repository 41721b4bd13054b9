package match

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/driveline-group/showroom-cli/internal/catalog"
)

func outcomeWithScore(id string, score float64) Outcome {
	v := vehicleFixture(id)
	return Outcome{Vehicle: v, Score: score}
}

func TestRank_SortsDescendingAndTruncates(t *testing.T) {
	outcomes := []Outcome{
		outcomeWithScore("a", 10),
		outcomeWithScore("b", 45),
		outcomeWithScore("c", -5),
		outcomeWithScore("d", 30),
		outcomeWithScore("e", 20),
	}

	ranked := Rank(outcomes, 3)
	require.Len(t, ranked, 3)
	assert.Equal(t, "b", ranked[0].Vehicle.ID)
	assert.Equal(t, "d", ranked[1].Vehicle.ID)
	assert.Equal(t, "e", ranked[2].Vehicle.ID)
}

func TestRank_DropsExcluded(t *testing.T) {
	outcomes := []Outcome{
		{Vehicle: vehicleFixture("x"), Excluded: true, Reasons: []string{"Not a Trucks"}},
		outcomeWithScore("y", 5),
	}

	ranked := Rank(outcomes, 10)
	require.Len(t, ranked, 1)
	assert.Equal(t, "y", ranked[0].Vehicle.ID)
	for _, o := range ranked {
		assert.False(t, o.Excluded)
	}
}

func TestRank_TieBreakIsFirstSeen(t *testing.T) {
	outcomes := []Outcome{
		outcomeWithScore("first", 20),
		outcomeWithScore("second", 20),
		outcomeWithScore("third", 20),
	}

	ranked := Rank(outcomes, 3)
	require.Len(t, ranked, 3)
	assert.Equal(t, "first", ranked[0].Vehicle.ID)
	assert.Equal(t, "second", ranked[1].Vehicle.ID)
	assert.Equal(t, "third", ranked[2].Vehicle.ID)
}

func TestRank_EmptyAfterFilteringIsValid(t *testing.T) {
	outcomes := []Outcome{
		{Vehicle: vehicleFixture("x"), Excluded: true},
	}

	ranked := Rank(outcomes, 3)
	assert.Empty(t, ranked)
}

func TestRank_DefaultTopN(t *testing.T) {
	var outcomes []Outcome
	for i := 0; i < 10; i++ {
		outcomes = append(outcomes, outcomeWithScore("v", float64(i)))
	}

	ranked := Rank(outcomes, 0)
	assert.Len(t, ranked, DefaultConfig().TopN)
}

func TestRun_DoesNotReorderCallerSlice(t *testing.T) {
	vehicles := []catalog.Vehicle{*vehicleFixture("a"), *vehicleFixture("b"), *vehicleFixture("c")}
	vehicles[0].Price.BaseMSRP = 50000
	vehicles[1].Price.BaseMSRP = 30000
	vehicles[2].Price.BaseMSRP = 29000

	cfg := DefaultConfig()
	ranked := Run(vehicles, Preference{Type: Any, Budget: ptr(30000.0)}, cfg)

	require.NotEmpty(t, ranked)
	assert.Equal(t, "a", vehicles[0].ID)
	assert.Equal(t, "b", vehicles[1].ID)
	assert.Equal(t, "c", vehicles[2].ID)
}

func TestSuggestByAffordability_AscendingGap(t *testing.T) {
	vehicles := []catalog.Vehicle{*vehicleFixture("cheap"), *vehicleFixture("exact"), *vehicleFixture("over")}
	vehicles[0].Price.BaseMSRP = 22000
	vehicles[1].Price.BaseMSRP = 30000
	vehicles[2].Price.BaseMSRP = 34000

	suggestions := SuggestByAffordability(vehicles, 30000, 5)
	require.Len(t, suggestions, 3)

	assert.Equal(t, "cheap", suggestions[0].Vehicle.ID)
	assert.Equal(t, "exact", suggestions[1].Vehicle.ID)
	assert.Equal(t, "over", suggestions[2].Vehicle.ID)

	assert.InDelta(t, -8000, suggestions[0].AffordabilityGap, 0.001)
	assert.InDelta(t, 0, suggestions[1].AffordabilityGap, 0.001)
	assert.InDelta(t, 4000, suggestions[2].AffordabilityGap, 0.001)

	assert.Contains(t, suggestions[2].Reasons[0], "Over your budget")
}

func TestSuggestByAffordability_Truncates(t *testing.T) {
	var vehicles []catalog.Vehicle
	for i := 0; i < 8; i++ {
		v := *vehicleFixture("v")
		v.Price.BaseMSRP = float64(20000 + i*1000)
		vehicles = append(vehicles, v)
	}

	suggestions := SuggestByAffordability(vehicles, 25000, 5)
	assert.Len(t, suggestions, 5)
}
