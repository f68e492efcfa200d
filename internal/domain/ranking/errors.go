package ranking

import "errors"

// ErrInvalidRanking reports a ranked list that breaks the ranking rules.
var ErrInvalidRanking = errors.New("invalid ranking")
