package ranking

import (
	"fmt"

	"github.com/okian/podium/internal/domain/model"
)

// Verify checks that ranked is a well-formed result for policy: points never
// increase, ranks start at 1, and each rank follows from its predecessor.
// It does not check the family name order of ties.
func Verify(ranked []model.RankedStudent, policy model.TieBreaker) error {
	policy = policy.Normalize()
	for i, r := range ranked {
		if r.Rank < 1 {
			return fmt.Errorf("%w: position %d has rank %d", ErrInvalidRanking, i, r.Rank)
		}
		if i == 0 {
			if r.Rank != 1 {
				return fmt.Errorf("%w: first rank is %d", ErrInvalidRanking, r.Rank)
			}
			continue
		}

		prev := ranked[i-1]
		switch {
		case r.Points > prev.Points:
			return fmt.Errorf("%w: position %d has %d points after %d", ErrInvalidRanking, i, r.Points, prev.Points)
		case r.Points < prev.Points || policy == model.TieStable:
			if r.Rank != i+1 {
				return fmt.Errorf("%w: position %d has rank %d, want %d", ErrInvalidRanking, i, r.Rank, i+1)
			}
		default:
			if r.Rank != prev.Rank {
				return fmt.Errorf("%w: tied position %d has rank %d, want %d", ErrInvalidRanking, i, r.Rank, prev.Rank)
			}
		}
	}
	return nil
}
