package ranking_test

import (
	"errors"
	"fmt"
	"testing"

	. "github.com/smartystreets/goconvey/convey"
	"golang.org/x/text/language"

	"github.com/okian/podium/internal/domain/model"
	"github.com/okian/podium/internal/domain/ranking"
)

func student(id, last string, points int) model.Student {
	return model.Student{ID: id, LastName: last, FullName: last, Points: points}
}

func ranks(ranked []model.RankedStudent) []int {
	out := make([]int, len(ranked))
	for i, r := range ranked {
		out[i] = r.Rank
	}
	return out
}

func ids(ranked []model.RankedStudent) []string {
	out := make([]string, len(ranked))
	for i, r := range ranked {
		out[i] = r.ID
	}
	return out
}

func TestComputeTies(t *testing.T) {
	Convey("Given two students tied at the top and one behind", t, func() {
		records := []model.Student{
			student("c", "C", 140),
			student("b", "B", 150),
			student("a", "A", 150),
		}

		Convey("When ranked with the shared policy", func() {
			ranked := ranking.Compute(records, model.TieShared)

			Convey("Then the tied pair shares rank 1 and the next rank skips", func() {
				So(ids(ranked), ShouldResemble, []string{"a", "b", "c"})
				So(ranks(ranked), ShouldResemble, []int{1, 1, 3})
				So(ranking.Verify(ranked, model.TieShared), ShouldBeNil)
			})
		})

		Convey("When ranked with the stable policy", func() {
			ranked := ranking.Compute(records, model.TieStable)

			Convey("Then ranks follow sort position with ties ordered by family name", func() {
				So(ids(ranked), ShouldResemble, []string{"a", "b", "c"})
				So(ranks(ranked), ShouldResemble, []int{1, 2, 3})
				So(ranking.Verify(ranked, model.TieStable), ShouldBeNil)
			})
		})

		Convey("When ranked with an unknown policy", func() {
			ranked := ranking.Compute(records, model.TieBreaker("whatever"))

			Convey("Then it behaves like shared", func() {
				So(ranks(ranked), ShouldResemble, []int{1, 1, 3})
			})
		})
	})

	Convey("Given two tied pairs", t, func() {
		records := []model.Student{
			student("1", "A", 150), student("2", "B", 150),
			student("3", "C", 140), student("4", "D", 140),
		}

		Convey("Then the shared policy compares each record with its predecessor", func() {
			So(ranks(ranking.Compute(records, model.TieShared)), ShouldResemble, []int{1, 1, 3, 3})
			So(ranks(ranking.Compute(records, model.TieStable)), ShouldResemble, []int{1, 2, 3, 4})
		})
	})
}

func TestComputeOrdering(t *testing.T) {
	Convey("Given ten students with strictly decreasing points", t, func() {
		records := make([]model.Student, 0, 10)
		for i := 9; i >= 0; i-- {
			records = append(records, student(fmt.Sprint(i), fmt.Sprint("S", i), 100-i*5))
		}

		Convey("Then both policies yield ranks 1 through 10", func() {
			want := []int{1, 2, 3, 4, 5, 6, 7, 8, 9, 10}
			So(ranks(ranking.Compute(records, model.TieShared)), ShouldResemble, want)
			So(ranks(ranking.Compute(records, model.TieStable)), ShouldResemble, want)
		})
	})

	Convey("Given tied Ukrainian family names", t, func() {
		records := []model.Student{
			student("sh", "Шевченко", 100),
			student("ye", "Євтушенко", 100),
			student("g", "Ґудзь", 100),
			student("b", "Бойко", 100),
		}

		Convey("When ranked with the stable policy", func() {
			ranked := ranking.Compute(records, model.TieStable)

			Convey("Then ties follow the Ukrainian alphabet, not code points", func() {
				So(ids(ranked), ShouldResemble, []string{"b", "g", "ye", "sh"})
			})
		})
	})

	Convey("Given tied students with the same family name", t, func() {
		records := []model.Student{
			student("first", "Коваль", 90),
			student("second", "Коваль", 90),
			student("third", "Коваль", 90),
		}

		Convey("Then input order is kept", func() {
			So(ids(ranking.Compute(records, model.TieStable)), ShouldResemble, []string{"first", "second", "third"})
		})
	})

	Convey("Given zero and negative points", t, func() {
		records := []model.Student{
			student("neg", "A", -5),
			student("zero", "B", 0),
			student("pos", "C", 3),
		}

		Convey("Then they are ranked normally", func() {
			ranked := ranking.Compute(records, model.TieShared)
			So(ids(ranked), ShouldResemble, []string{"pos", "zero", "neg"})
			So(ranks(ranked), ShouldResemble, []int{1, 2, 3})
		})
	})

	Convey("Given students without family names", t, func() {
		records := []model.Student{{ID: "x", Points: 1}, {ID: "y", Points: 1}}

		Convey("Then ranking degrades to comparing empty strings", func() {
			So(func() { ranking.Compute(records, model.TieStable) }, ShouldNotPanic)
			So(ids(ranking.Compute(records, model.TieStable)), ShouldResemble, []string{"x", "y"})
		})
	})

	Convey("Given duplicate identifiers", t, func() {
		records := []model.Student{student("dup", "A", 5), student("dup", "B", 4)}

		Convey("Then each record is ranked independently", func() {
			So(ranks(ranking.Compute(records, model.TieShared)), ShouldResemble, []int{1, 2})
		})
	})
}

func TestComputePurity(t *testing.T) {
	Convey("Given an empty roster", t, func() {
		ranked := ranking.Compute(nil, model.TieShared)

		Convey("Then the result is empty but not nil", func() {
			So(ranked, ShouldNotBeNil)
			So(ranked, ShouldBeEmpty)
		})
	})

	Convey("Given a roster", t, func() {
		records := []model.Student{
			student("c", "C", 1), student("a", "A", 3), student("b", "B", 3),
		}
		original := append([]model.Student(nil), records...)

		Convey("When ranked twice", func() {
			first := ranking.Compute(records, model.TieShared)
			second := ranking.Compute(records, model.TieShared)

			Convey("Then the input is untouched and output is deterministic", func() {
				So(records, ShouldResemble, original)
				So(first, ShouldResemble, second)
			})

			Convey("Then re-ranking the output changes nothing", func() {
				again := make([]model.Student, len(first))
				for i, r := range first {
					again[i] = r.Student
				}
				So(ranking.Compute(again, model.TieShared), ShouldResemble, first)
			})
		})
	})
}

func TestRankerLocale(t *testing.T) {
	Convey("Given a ranker with an explicit locale", t, func() {
		r := ranking.NewRanker(ranking.WithLocale(language.English))

		Convey("Then the locale is kept", func() {
			So(r.Locale(), ShouldEqual, language.English)
		})

		Convey("Then Latin names sort alphabetically", func() {
			ranked := r.Compute([]model.Student{student("z", "Zed", 1), student("a", "Abel", 1)}, model.TieStable)
			So(ids(ranked), ShouldResemble, []string{"a", "z"})
		})
	})

	Convey("Given an undetermined locale", t, func() {
		r := ranking.NewRanker(ranking.WithLocale(language.Und))

		Convey("Then the Ukrainian default stays", func() {
			So(r.Locale(), ShouldEqual, language.Ukrainian)
		})
	})
}

func TestVerify(t *testing.T) {
	Convey("Given hand-built ranked lists", t, func() {
		mk := func(points, rks []int) []model.RankedStudent {
			out := make([]model.RankedStudent, len(points))
			for i := range points {
				out[i] = model.RankedStudent{Student: model.Student{Points: points[i]}, Rank: rks[i]}
			}
			return out
		}

		Convey("Then an empty list is valid", func() {
			So(ranking.Verify(nil, model.TieShared), ShouldBeNil)
		})

		Convey("Then a list not starting at 1 is rejected", func() {
			err := ranking.Verify(mk([]int{5}, []int{2}), model.TieShared)
			So(errors.Is(err, ranking.ErrInvalidRanking), ShouldBeTrue)
		})

		Convey("Then increasing points are rejected", func() {
			So(ranking.Verify(mk([]int{1, 5}, []int{1, 2}), model.TieShared), ShouldNotBeNil)
		})

		Convey("Then a shared rank under the stable policy is rejected", func() {
			So(ranking.Verify(mk([]int{5, 5}, []int{1, 1}), model.TieStable), ShouldNotBeNil)
			So(ranking.Verify(mk([]int{5, 5}, []int{1, 1}), model.TieShared), ShouldBeNil)
		})

		Convey("Then a rank that does not skip past ties is rejected", func() {
			So(ranking.Verify(mk([]int{5, 5, 4}, []int{1, 1, 2}), model.TieShared), ShouldNotBeNil)
		})
	})
}
