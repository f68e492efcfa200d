package seed

import (
	"fmt"

	"github.com/okian/podium/internal/domain/model"
	"github.com/okian/podium/internal/domain/ranking"
)

// verifyLeaderboard checks the server ranking against the ranking invariants
// and against a local computation over the posted roster.
func verifyLeaderboard(posted []model.Student, policy model.TieBreaker, leaderboard []model.RankedStudent) error {
	if err := ranking.Verify(leaderboard, policy); err != nil {
		return fmt.Errorf("server ranking: %w", err)
	}
	if len(leaderboard) > len(posted) {
		return fmt.Errorf("%w: leaderboard has %d entries, posted %d", ErrMismatch, len(leaderboard), len(posted))
	}

	// The leaderboard may be capped below the roster size.
	local := ranking.Compute(posted, policy)
	for i := range leaderboard {
		got, want := leaderboard[i], local[i]
		if got.Points != want.Points || got.Rank != want.Rank {
			return fmt.Errorf("%w: position %d is %s (%d pts, rank %d), want %d pts rank %d",
				ErrMismatch, i+1, got.FullName, got.Points, got.Rank, want.Points, want.Rank)
		}
	}
	return nil
}

// verifyLookups checks that per-id lookups agree with the leaderboard. Ids
// beyond a capped leaderboard are not checked.
func verifyLookups(leaderboard, lookups []model.RankedStudent) error {
	ranks := make(map[string]int, len(leaderboard))
	for _, e := range leaderboard {
		ranks[e.ID] = e.Rank
	}
	for _, e := range lookups {
		if e.ID == "" {
			continue
		}
		if want, ok := ranks[e.ID]; ok && want != e.Rank {
			return fmt.Errorf("%w: lookup of %s gave rank %d, leaderboard %d", ErrMismatch, e.ID, e.Rank, want)
		}
	}
	return nil
}
