package model_test

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/okian/podium/internal/domain/model"
	"github.com/smartystreets/goconvey/convey"
)

func TestStudentNormalize(t *testing.T) {
	convey.Convey("Given students with partial names", t, func() {
		convey.Convey("When only name parts are set", func() {
			s := model.Student{FirstName: "Іван", LastName: "Бойко"}.Normalize()

			convey.Convey("Then the full name is composed family-first", func() {
				convey.So(s.FullName, convey.ShouldEqual, "Бойко Іван")
			})
		})

		convey.Convey("When only the full name is set", func() {
			s := model.Student{FullName: "  Шевченко Тарас Григорович "}.Normalize()

			convey.Convey("Then the first token becomes the family name", func() {
				convey.So(s.LastName, convey.ShouldEqual, "Шевченко")
				convey.So(s.FirstName, convey.ShouldEqual, "Тарас Григорович")
				convey.So(s.FullName, convey.ShouldEqual, "Шевченко Тарас Григорович")
			})
		})

		convey.Convey("When every name form is set", func() {
			in := model.Student{FirstName: "A", LastName: "B", FullName: "Custom", ClassLabel: " 5-А "}
			s := in.Normalize()

			convey.Convey("Then nothing is rewritten and the class label is opaque", func() {
				convey.So(s.FullName, convey.ShouldEqual, "Custom")
				convey.So(s.ClassLabel, convey.ShouldEqual, " 5-А ")
			})
		})

		convey.Convey("When no name is set at all", func() {
			s := model.Student{ID: "x"}.Normalize()

			convey.Convey("Then names stay empty", func() {
				convey.So(s.FullName, convey.ShouldEqual, "")
				convey.So(s.LastName, convey.ShouldEqual, "")
			})
		})
	})
}

func TestStudentJSON(t *testing.T) {
	convey.Convey("Given a stored student blob with a legacy rank field", t, func() {
		raw := `{"id":"1","firstName":"Іван","lastName":"Бойко","fullName":"Бойко Іван","points":150,"classLabel":"5А","rank":7}`

		convey.Convey("When decoding it", func() {
			var s model.Student
			err := json.Unmarshal([]byte(raw), &s)

			convey.Convey("Then the rank is ignored", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(s.Points, convey.ShouldEqual, 150)
				convey.So(s.Diff, convey.ShouldBeNil)
			})
		})

		convey.Convey("When encoding a ranked student", func() {
			out, err := json.Marshal(model.RankedStudent{Student: model.Student{ID: "1", Points: 3}, Rank: 2})

			convey.Convey("Then the fields are flat", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(string(out), convey.ShouldContainSubstring, `"rank":2`)
				convey.So(string(out), convey.ShouldContainSubstring, `"points":3`)
				convey.So(string(out), convey.ShouldNotContainSubstring, `"diff"`)
			})
		})
	})
}

func TestSettings(t *testing.T) {
	convey.Convey("Given default settings", t, func() {
		s := model.DefaultSettings()

		convey.Convey("Then the defaults match the presentation", func() {
			convey.So(s.SlideDuration, convey.ShouldEqual, 10)
			convey.So(s.TieBreaker, convey.ShouldEqual, model.TieShared)
			convey.So(s.TitleTop, convey.ShouldEqual, model.DefaultTitleTop)
			convey.So(s.SlideDurationValue(), convey.ShouldEqual, 10*time.Second)
		})

		convey.Convey("When a patch is applied", func() {
			d := 2.5
			tb := model.TieBreaker("STABLE")
			patched := model.SettingsPatch{SlideDuration: &d, TieBreaker: &tb}.Apply(s)

			convey.Convey("Then only the named fields change", func() {
				convey.So(patched.SlideDurationValue(), convey.ShouldEqual, 2500*time.Millisecond)
				convey.So(patched.TieBreaker, convey.ShouldEqual, model.TieStable)
				convey.So(patched.TitleBottom, convey.ShouldEqual, model.DefaultTitleBottom)
			})
		})

		convey.Convey("When an unknown tie breaker is set", func() {
			tb := model.TieBreaker("random")
			patched := model.SettingsPatch{TieBreaker: &tb}.Apply(s)

			convey.Convey("Then it falls back to shared", func() {
				convey.So(patched.TieBreaker, convey.ShouldEqual, model.TieShared)
			})
		})

		convey.Convey("Then an empty patch reports itself", func() {
			convey.So(model.SettingsPatch{}.Empty(), convey.ShouldBeTrue)
		})
	})
}

func TestDisplayModeCycle(t *testing.T) {
	convey.Convey("Given the display mode cycle", t, func() {
		convey.Convey("Then every mode advances to the next and wraps", func() {
			convey.So(model.ModeIntro.Next(), convey.ShouldEqual, model.ModeTop3)
			convey.So(model.ModeTop3.Next(), convey.ShouldEqual, model.ModeRanks4_7)
			convey.So(model.ModeRanks4_7.Next(), convey.ShouldEqual, model.ModeRanks8_10)
			convey.So(model.ModeRanks8_10.Next(), convey.ShouldEqual, model.ModeIntro)
			convey.So(model.DisplayMode("bogus").Next(), convey.ShouldEqual, model.ModeIntro)
		})

		convey.Convey("Then mode names follow the cycle order", func() {
			convey.So(model.ModeNames(), convey.ShouldResemble, []string{"INTRO", "TOP3", "RANKS_4_7", "RANKS_8_10"})
		})
	})
}
