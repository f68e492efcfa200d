// Package ranking orders students by points and assigns 1-based ranks.
//
// Records are sorted by points descending; equal points are ordered by family
// name using locale collation, and records that still compare equal keep their
// input order. Ranks are assigned by comparing each record to its immediate
// predecessor:
//
//   - the first record gets rank 1;
//   - a record with fewer points than its predecessor gets its position (i+1);
//   - a record tied with its predecessor inherits the predecessor's rank under
//     TieShared and takes its position under TieStable.
//
// Compute never mutates its input and never fails.
package ranking

import (
	"sort"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/okian/podium/internal/domain/model"
)

// Ranker computes ranks using a fixed collation locale.
type Ranker struct {
	locale language.Tag
}

// Option configures a Ranker.
type Option func(*Ranker)

// WithLocale sets the collation locale for family name comparison.
func WithLocale(tag language.Tag) Option {
	return func(r *Ranker) {
		if tag != language.Und {
			r.locale = tag
		}
	}
}

// NewRanker returns a Ranker. The default locale is Ukrainian.
func NewRanker(opts ...Option) *Ranker {
	r := &Ranker{locale: language.Ukrainian}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Locale reports the collation locale.
func (r *Ranker) Locale() language.Tag {
	return r.locale
}

var defaultRanker = NewRanker() //nolint:gochecknoglobals // immutable

// Compute ranks records with the default Ukrainian collation.
func Compute(records []model.Student, policy model.TieBreaker) []model.RankedStudent {
	return defaultRanker.Compute(records, policy)
}

// Compute returns records in ranked order with ranks assigned under policy.
// Unknown policies are treated as TieShared.
func (r *Ranker) Compute(records []model.Student, policy model.TieBreaker) []model.RankedStudent {
	out := make([]model.RankedStudent, len(records))
	for i, s := range records {
		out[i] = model.RankedStudent{Student: s}
	}
	if len(out) == 0 {
		return out
	}

	// A collator keeps scratch buffers, so each call gets its own.
	col := collate.New(r.locale)
	sortStudents(out, col)
	assignRanks(out, policy.Normalize())
	return out
}

func sortStudents(entries []model.RankedStudent, col *collate.Collator) {
	sort.SliceStable(entries, func(i, j int) bool {
		if entries[i].Points != entries[j].Points {
			return entries[i].Points > entries[j].Points
		}
		return col.CompareString(entries[i].LastName, entries[j].LastName) < 0
	})
}

func assignRanks(entries []model.RankedStudent, policy model.TieBreaker) {
	entries[0].Rank = 1
	for i := 1; i < len(entries); i++ {
		if entries[i].Points < entries[i-1].Points || policy == model.TieStable {
			entries[i].Rank = i + 1
			continue
		}
		entries[i].Rank = entries[i-1].Rank
	}
}
