package domain

import (
	"cmp"
	"slices"
	"time"

	"github.com/google/uuid"
)

// DeclineReason is attached to decline notifications. Waitlisted voters are
// told their slot was full; everyone else that another slot was chosen.
type DeclineReason string

const (
	DeclineDifferentTime DeclineReason = "different-time"
	DeclineFull          DeclineReason = "full"
)

type Placement struct {
	VoterID string `json:"voter_id"`
	Name    string `json:"name"`
}

type Resolution struct {
	OptionID   uuid.UUID   `json:"option_id"`
	Confirmed  []Placement `json:"confirmed"`
	Waitlisted []Placement `json:"waitlisted"`
	Declined   []Placement `json:"declined"`
	ClosedAt   time.Time   `json:"closed_at"`
}

func (r Resolution) ConfirmedNames() []string { return names(r.Confirmed) }

func names(ps []Placement) []string {
	out := make([]string, 0, len(ps))
	for _, p := range ps {
		out = append(out, p.Name)
	}
	return out
}

// Resolve picks the winning option and partitions voters.
//
// The winner is the option with the highest vote count; on a tie the option
// that comes first in options wins. Votes for the winner are admitted in
// VotedAt order up to its MaxPlayers, the rest are waitlisted. Votes for any
// other option are declined. With no votes at all the first option wins and
// every list is empty.
func Resolve(options []Option, votes []Vote) (Resolution, error) {
	if len(options) == 0 {
		return Resolution{}, ErrNoOptions
	}

	index := make(map[uuid.UUID]int, len(options))
	for i, opt := range options {
		index[opt.ID] = i
	}
	counts := make([]int, len(options))
	for _, v := range votes {
		i, ok := index[v.OptionID]
		if !ok {
			return Resolution{}, ErrOptionNotFound
		}
		counts[i]++
	}

	winner := 0
	for i := 1; i < len(counts); i++ {
		if counts[i] > counts[winner] {
			winner = i
		}
	}
	chosen := options[winner]

	ordered := slices.Clone(votes)
	slices.SortStableFunc(ordered, func(a, b Vote) int {
		return a.VotedAt.Compare(b.VotedAt)
	})

	res := Resolution{
		OptionID:   chosen.ID,
		Confirmed:  make([]Placement, 0, min(counts[winner], chosen.MaxPlayers)),
		Waitlisted: []Placement{},
		Declined:   make([]Placement, 0, len(votes)-counts[winner]),
	}
	for _, v := range ordered {
		p := Placement{VoterID: v.VoterID, Name: v.Name}
		switch {
		case v.OptionID != chosen.ID:
			res.Declined = append(res.Declined, p)
		case len(res.Confirmed) < chosen.MaxPlayers:
			res.Confirmed = append(res.Confirmed, p)
		default:
			res.Waitlisted = append(res.Waitlisted, p)
		}
	}
	return res, nil
}

// OptionTally is the live per-option view shown while a poll is open.
type OptionTally struct {
	Option         Option    `json:"option"`
	Count          int       `json:"count"`
	Percentage     float64   `json:"percentage"`
	Voters         []string  `json:"voters"`
	MeetsMinimum   bool      `json:"meets_minimum"`
	OverCapacityBy int       `json:"over_capacity_by"`
	LastVoteAt     time.Time `json:"last_vote_at,omitzero"`
}

// Tally counts votes per option, preserving option order. Voter names are
// listed in VotedAt order. Votes for unknown options are ignored.
func Tally(options []Option, votes []Vote) []OptionTally {
	ordered := slices.Clone(votes)
	slices.SortStableFunc(ordered, func(a, b Vote) int {
		return a.VotedAt.Compare(b.VotedAt)
	})

	out := make([]OptionTally, len(options))
	index := make(map[uuid.UUID]int, len(options))
	for i, opt := range options {
		index[opt.ID] = i
		out[i] = OptionTally{Option: opt, Voters: []string{}}
	}

	total := 0
	for _, v := range ordered {
		i, ok := index[v.OptionID]
		if !ok {
			continue
		}
		total++
		out[i].Count++
		out[i].Voters = append(out[i].Voters, v.Name)
		out[i].LastVoteAt = v.VotedAt
	}

	for i := range out {
		t := &out[i]
		if total > 0 {
			t.Percentage = float64(t.Count) / float64(total) * 100
		}
		t.MeetsMinimum = t.Count >= t.Option.MinPlayers
		t.OverCapacityBy = max(0, t.Count-t.Option.MaxPlayers)
	}
	return out
}

// compareCount orders tallies by count descending, keeping option order on ties.
func compareCount(a, b OptionTally) int {
	return cmp.Compare(b.Count, a.Count)
}

// Ranked returns the tallies sorted by count, ties kept in option order.
// The first element is the option Resolve would choose.
func Ranked(tallies []OptionTally) []OptionTally {
	out := slices.Clone(tallies)
	slices.SortStableFunc(out, compareCount)
	return out
}

// ClosePreview is the outcome closing the poll now would produce.
type ClosePreview struct {
	OptionID   uuid.UUID `json:"option_id"`
	TurfName   string    `json:"turf_name"`
	StartTime  string    `json:"start_time"`
	EndTime    string    `json:"end_time"`
	Votes      int       `json:"votes"`
	Confirmed  int       `json:"confirmed"`
	Waitlisted int       `json:"waitlisted"`
	Declined   int       `json:"declined"`
}

// Leading returns the preview for the top ranked option. It reports false
// when no votes were cast.
func Leading(tallies []OptionTally) (ClosePreview, bool) {
	ranked := Ranked(tallies)
	if len(ranked) == 0 || ranked[0].Count == 0 {
		return ClosePreview{}, false
	}
	total := 0
	for _, t := range tallies {
		total += t.Count
	}
	top := ranked[0]
	confirmed := min(top.Count, top.Option.MaxPlayers)
	return ClosePreview{
		OptionID:   top.Option.ID,
		TurfName:   top.Option.TurfName,
		StartTime:  top.Option.StartTime,
		EndTime:    top.Option.EndTime,
		Votes:      top.Count,
		Confirmed:  confirmed,
		Waitlisted: top.Count - confirmed,
		Declined:   total - top.Count,
	}, true
}
