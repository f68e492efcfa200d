package client_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	. "github.com/smartystreets/goconvey/convey"

	"github.com/okian/podium/internal/adapters/http/api"
	"github.com/okian/podium/internal/adapters/http/client"
	service "github.com/okian/podium/internal/app"
	"github.com/okian/podium/internal/domain/importer"
	"github.com/okian/podium/internal/domain/model"
	"github.com/okian/podium/pkg/logger"
)

func init() {
	_ = logger.Init()
	_ = logger.SetLevelString("error")
}

type rejectingStore struct{}

func (rejectingStore) Load(context.Context) (model.Roster, error) {
	return model.Roster{Settings: model.DefaultSettings()}, nil
}
func (rejectingStore) Save(context.Context, model.Roster) error { return errors.New("read-only") }
func (rejectingStore) Backend() string                          { return "rejecting" }

func newServer(opts ...service.Option) *httptest.Server {
	svc := service.New(append([]service.Option{service.WithFrameInterval(0)}, opts...)...)
	mux := http.NewServeMux()
	api.NewServer(svc, api.WithMaxLeaderboardLimit(5)).Register(context.Background(), mux)
	return httptest.NewServer(mux)
}

func TestClientRoundTrip(t *testing.T) {
	Convey("Given a client against a live server", t, func() {
		srv := newServer()
		defer srv.Close()
		c := client.New(srv.URL+"/", client.WithTimeout(5*time.Second))
		ctx := context.Background()

		So(c.BaseURL(), ShouldEqual, srv.URL)
		So(c.Health(ctx), ShouldBeNil)

		Convey("When a roster is saved", func() {
			students := []model.Student{
				{ID: "s1", LastName: "Стус", FirstName: "Василь", Points: 110},
				{ID: "s2", LastName: "Бойко", FirstName: "Іван", Points: 150},
			}
			stable := model.TieStable
			So(c.Save(ctx, students, &model.SettingsPatch{TieBreaker: &stable}), ShouldBeNil)

			Convey("Then Load returns it ranked", func() {
				got, err := c.Load(ctx)
				So(err, ShouldBeNil)
				So(got.Students, ShouldHaveLength, 2)
				So(got.Students[0].ID, ShouldEqual, "s2")
				So(got.Settings.TieBreaker, ShouldEqual, model.TieStable)
				So(got.Roster().Students[1].LastName, ShouldEqual, "Стус")
			})

			Convey("Then Leaderboard and Rank agree", func() {
				top, err := c.Leaderboard(ctx, 1)
				So(err, ShouldBeNil)
				So(top, ShouldHaveLength, 1)
				entry, err := c.Rank(ctx, "s1")
				So(err, ShouldBeNil)
				So(entry.Rank, ShouldEqual, 2)
			})

			Convey("Then a nil roster keeps the students", func() {
				title := "ФІНАЛ"
				So(c.Save(ctx, nil, &model.SettingsPatch{TitleTop: &title}), ShouldBeNil)
				got, err := c.Load(ctx)
				So(err, ShouldBeNil)
				So(got.Students, ShouldHaveLength, 2)
				So(got.Settings.TitleTop, ShouldEqual, "ФІНАЛ")
			})
		})

		Convey("When settings are patched", func() {
			d := 3.0
			got, err := c.UpdateSettings(ctx, model.SettingsPatch{SlideDuration: &d})
			So(err, ShouldBeNil)
			So(got.SlideDuration, ShouldEqual, 3)
		})

		Convey("When an unknown id is requested", func() {
			_, err := c.Rank(ctx, "missing")

			Convey("Then the error matches ErrNotFound", func() {
				So(errors.Is(err, client.ErrNotFound), ShouldBeTrue)
				var se *client.StatusError
				So(errors.As(err, &se), ShouldBeTrue)
				So(se.Status, ShouldEqual, http.StatusNotFound)
			})
		})

		Convey("When the limit exceeds the server maximum", func() {
			_, err := c.Leaderboard(ctx, 6)
			So(errors.Is(err, client.ErrUnexpected), ShouldBeTrue)
		})

		Convey("When text is imported", func() {
			res, err := c.Import(ctx, "1. Бойко Іван - 150 - 5А")
			So(err, ShouldBeNil)
			So(res.Students, ShouldHaveLength, 1)

			_, err = c.Import(ctx, "abc")
			So(errors.Is(err, importer.ErrTextTooShort), ShouldBeTrue)
		})
	})

	Convey("Given a server that cannot persist", t, func() {
		srv := newServer(service.WithStore(rejectingStore{}))
		defer srv.Close()
		c := client.New(srv.URL)

		Convey("When saving", func() {
			err := c.Save(context.Background(), []model.Student{{LastName: "Бойко", Points: 1}}, nil)

			Convey("Then the error matches ErrNotPersisted", func() {
				So(errors.Is(err, client.ErrNotPersisted), ShouldBeTrue)
			})
		})
	})

	Convey("Given no server", t, func() {
		c := client.New("http://127.0.0.1:1", client.WithTimeout(200*time.Millisecond))

		Convey("Then requests fail with ErrRequest", func() {
			_, err := c.Load(context.Background())
			So(errors.Is(err, client.ErrRequest), ShouldBeTrue)
		})
	})
}
