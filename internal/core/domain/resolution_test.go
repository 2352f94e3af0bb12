package domain

import (
	"fmt"
	"math/rand"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var base = time.Date(2026, 10, 18, 9, 0, 0, 0, time.UTC)

func option(name string, minPlayers, maxPlayers int) Option {
	return Option{
		ID:         uuid.New(),
		TurfName:   name,
		StartTime:  "18:00",
		EndTime:    "19:00",
		MinPlayers: minPlayers,
		MaxPlayers: maxPlayers,
	}
}

func voteAt(voter string, opt Option, minute int) Vote {
	return Vote{
		VoterID:  voter,
		Name:     voter,
		OptionID: opt.ID,
		VotedAt:  base.Add(time.Duration(minute) * time.Minute),
		Channel:  ChannelWeb,
	}
}

func TestResolve_Scenarios(t *testing.T) {
	a := option("A", 2, 2)
	b := option("B", 2, 3)

	tests := []struct {
		name           string
		options        []Option
		votes          []Vote
		wantOption     uuid.UUID
		wantConfirmed  []string
		wantWaitlisted []string
		wantDeclined   []string
	}{
		{
			name:           "capacity overflow goes to waitlist",
			options:        []Option{a, b},
			votes:          []Vote{voteAt("v1", a, 1), voteAt("v2", b, 2), voteAt("v3", b, 3), voteAt("v4", b, 4)},
			wantOption:     b.ID,
			wantConfirmed:  []string{"v2", "v3"},
			wantWaitlisted: []string{"v4"},
			wantDeclined:   []string{"v1"},
		},
		{
			name:           "no votes picks the first option",
			options:        []Option{a, b},
			votes:          nil,
			wantOption:     a.ID,
			wantConfirmed:  []string{},
			wantWaitlisted: []string{},
			wantDeclined:   []string{},
		},
		{
			name:           "tie goes to the lower index",
			options:        []Option{a, b},
			votes:          []Vote{voteAt("v1", b, 1), voteAt("v2", a, 2)},
			wantOption:     a.ID,
			wantConfirmed:  []string{"v2"},
			wantWaitlisted: []string{},
			wantDeclined:   []string{"v1"},
		},
		{
			name:           "confirmed order follows vote time not input order",
			options:        []Option{a, b},
			votes:          []Vote{voteAt("late", a, 9), voteAt("early", a, 1), voteAt("middle", a, 5)},
			wantOption:     a.ID,
			wantConfirmed:  []string{"early", "middle"},
			wantWaitlisted: []string{"late"},
			wantDeclined:   []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := Resolve(tt.options, tt.votes)
			require.NoError(t, err)

			assert.Equal(t, tt.wantOption, res.OptionID)
			assert.Equal(t, tt.wantConfirmed, res.ConfirmedNames())
			assert.Equal(t, tt.wantWaitlisted, names(res.Waitlisted))
			assert.ElementsMatch(t, tt.wantDeclined, names(res.Declined))
		})
	}
}

func TestResolve_EqualTimestampsKeepInputOrder(t *testing.T) {
	a := option("A", 1, 1)
	votes := []Vote{voteAt("first", a, 0), voteAt("second", a, 0)}

	res, err := Resolve([]Option{a}, votes)
	require.NoError(t, err)

	assert.Equal(t, []string{"first"}, res.ConfirmedNames())
	assert.Equal(t, []string{"second"}, names(res.Waitlisted))
}

func TestResolve_Preconditions(t *testing.T) {
	_, err := Resolve(nil, nil)
	assert.ErrorIs(t, err, ErrNoOptions)

	a := option("A", 1, 2)
	stray := option("stray", 1, 2)
	_, err = Resolve([]Option{a}, []Vote{voteAt("v1", stray, 1)})
	assert.ErrorIs(t, err, ErrOptionNotFound)
}

func TestResolve_DoesNotMutateInput(t *testing.T) {
	a := option("A", 1, 5)
	votes := []Vote{voteAt("b", a, 2), voteAt("a", a, 1)}

	_, err := Resolve([]Option{a}, votes)
	require.NoError(t, err)

	assert.Equal(t, "b", votes[0].VoterID)
	assert.Equal(t, "a", votes[1].VoterID)
}

// TestResolve_Properties checks the partition invariants on random polls.
func TestResolve_Properties(t *testing.T) {
	rng := rand.New(rand.NewSource(42))

	for round := 0; round < 200; round++ {
		n := 1 + rng.Intn(4)
		options := make([]Option, n)
		for i := range options {
			minPlayers := 1 + rng.Intn(4)
			options[i] = option(fmt.Sprintf("opt-%d", i), minPlayers, minPlayers+rng.Intn(4))
		}

		votes := make([]Vote, rng.Intn(25))
		for i := range votes {
			votes[i] = voteAt(fmt.Sprintf("v%d", i), options[rng.Intn(n)], rng.Intn(60))
		}

		res, err := Resolve(options, votes)
		require.NoError(t, err)

		counts := map[uuid.UUID]int{}
		for _, v := range votes {
			counts[v.OptionID]++
		}
		var chosen Option
		chosenIndex := -1
		for i, opt := range options {
			if opt.ID == res.OptionID {
				chosen, chosenIndex = opt, i
			}
		}
		require.NotEqual(t, -1, chosenIndex, "winner must be one of the options")

		for i, opt := range options {
			assert.GreaterOrEqual(t, counts[chosen.ID], counts[opt.ID])
			if i < chosenIndex {
				assert.Less(t, counts[opt.ID], counts[chosen.ID], "an earlier option with an equal count must win")
			}
		}

		assert.LessOrEqual(t, len(res.Confirmed), chosen.MaxPlayers)
		assert.Equal(t, counts[chosen.ID]-len(res.Confirmed), len(res.Waitlisted))
		assert.Equal(t, len(votes)-counts[chosen.ID], len(res.Declined))

		again, err := Resolve(options, votes)
		require.NoError(t, err)
		assert.Equal(t, res, again)
	}
}

func TestTally(t *testing.T) {
	a := option("A", 2, 2)
	b := option("B", 1, 3)
	c := option("C", 1, 3)
	votes := []Vote{voteAt("v3", a, 3), voteAt("v1", a, 1), voteAt("v2", a, 2), voteAt("v4", b, 4)}

	tallies := Tally([]Option{a, b, c}, votes)
	require.Len(t, tallies, 3)

	assert.Equal(t, 3, tallies[0].Count)
	assert.Equal(t, []string{"v1", "v2", "v3"}, tallies[0].Voters)
	assert.True(t, tallies[0].MeetsMinimum)
	assert.Equal(t, 1, tallies[0].OverCapacityBy)
	assert.InDelta(t, 75.0, tallies[0].Percentage, 0.01)
	assert.Equal(t, base.Add(3*time.Minute), tallies[0].LastVoteAt)

	assert.Equal(t, 1, tallies[1].Count)
	assert.True(t, tallies[1].MeetsMinimum)
	assert.Equal(t, 0, tallies[1].OverCapacityBy)

	assert.Equal(t, 0, tallies[2].Count)
	assert.False(t, tallies[2].MeetsMinimum)
	assert.Equal(t, []string{}, tallies[2].Voters)
	assert.Zero(t, tallies[2].Percentage)
}

func TestRanked_MatchesResolveWinner(t *testing.T) {
	a := option("A", 1, 3)
	b := option("B", 1, 3)
	c := option("C", 1, 3)
	votes := []Vote{voteAt("v1", c, 1), voteAt("v2", b, 2), voteAt("v3", c, 3), voteAt("v4", b, 4)}

	ranked := Ranked(Tally([]Option{a, b, c}, votes))
	res, err := Resolve([]Option{a, b, c}, votes)
	require.NoError(t, err)

	assert.Equal(t, b.ID, ranked[0].Option.ID)
	assert.Equal(t, res.OptionID, ranked[0].Option.ID)
	assert.Equal(t, a.ID, ranked[2].Option.ID)
}

func TestLeading(t *testing.T) {
	a := option("A", 1, 2)
	b := option("B", 1, 2)

	_, ok := Leading(Tally([]Option{a, b}, nil))
	assert.False(t, ok)

	votes := []Vote{voteAt("v1", b, 1), voteAt("v2", b, 2), voteAt("v3", b, 3), voteAt("v4", a, 4)}
	preview, ok := Leading(Tally([]Option{a, b}, votes))
	require.True(t, ok)

	res, err := Resolve([]Option{a, b}, votes)
	require.NoError(t, err)
	assert.Equal(t, res.OptionID, preview.OptionID)
	assert.Equal(t, 3, preview.Votes)
	assert.Equal(t, len(res.Confirmed), preview.Confirmed)
	assert.Equal(t, len(res.Waitlisted), preview.Waitlisted)
	assert.Equal(t, len(res.Declined), preview.Declined)
}
