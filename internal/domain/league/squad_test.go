package league_test

import (
	"errors"
	"testing"

	"github.com/okian/leaguegen/internal/domain/league"
	"github.com/okian/leaguegen/internal/domain/model"
	. "github.com/smartystreets/goconvey/convey"
)

func TestDerivePositionedSquad(t *testing.T) {
	quota := league.DefaultQuota()

	Convey("Given typical squad sizes", t, func() {
		cases := []struct {
			size int
			want model.PositionCounts
		}{
			{11, model.PositionCounts{Goalkeepers: 1, Defenders: 4, Midfielders: 4, Forwards: 2}},
			{18, model.PositionCounts{Goalkeepers: 2, Defenders: 6, Midfielders: 6, Forwards: 4}},
			{25, model.PositionCounts{Goalkeepers: 2, Defenders: 9, Midfielders: 9, Forwards: 5}},
			{32, model.PositionCounts{Goalkeepers: 3, Defenders: 11, Midfielders: 11, Forwards: 7}},
		}
		for _, tc := range cases {
			got, err := league.DerivePositionedSquad(tc.size, quota)
			So(err, ShouldBeNil)
			So(got, ShouldResemble, tc.want)
		}
	})

	Convey("Given every fieldable size up to sixty", t, func() {
		Convey("Then each split has a goalkeeper, every line, and adds up", func() {
			for size := 11; size <= 60; size++ {
				got, err := league.DerivePositionedSquad(size, quota)
				So(err, ShouldBeNil)
				So(got.Total(), ShouldEqual, size)
				So(got.Goalkeepers, ShouldBeBetweenOrEqual, 1, 3)
				So(got.Defenders, ShouldBeGreaterThan, 0)
				So(got.Midfielders, ShouldBeGreaterThan, 0)
				So(got.Forwards, ShouldBeGreaterThan, 0)
			}
		})
	})

	Convey("Given a squad below the floor", t, func() {
		_, err := league.DerivePositionedSquad(10, quota)

		Convey("Then a DataError is returned rather than a padded squad", func() {
			var dataErr *league.DataError
			So(errors.As(err, &dataErr), ShouldBeTrue)
			So(dataErr.Value, ShouldEqual, 10)
			So(errors.Is(err, league.ErrSquadBelowFloor), ShouldBeTrue)
		})
	})

	Convey("Given a policy with a lower floor", t, func() {
		p := league.DefaultPolicy()
		p.MinSquadSize = 4

		Convey("Then even tiny squads keep a goalkeeper and a forward", func() {
			for size := 4; size <= 10; size++ {
				got, err := p.DerivePositionedSquad(size, quota)
				So(err, ShouldBeNil)
				So(got.Total(), ShouldEqual, size)
				So(got.Goalkeepers, ShouldBeGreaterThanOrEqualTo, 1)
				So(got.Forwards, ShouldBeGreaterThanOrEqualTo, 1)
			}
		})
	})
}

func TestCheckTeam(t *testing.T) {
	p := league.DefaultPolicy()

	Convey("Given a team without a goalkeeper", t, func() {
		team := model.Team{ID: "t", Index: 3, SquadSize: 20, Positions: model.PositionCounts{Defenders: 8, Midfielders: 8, Forwards: 4}}
		err := p.CheckTeam(team)

		So(errors.Is(err, league.ErrNoGoalkeeper), ShouldBeTrue)
		var dataErr *league.DataError
		So(errors.As(err, &dataErr), ShouldBeTrue)
		So(dataErr.Index, ShouldEqual, 3)
		So(dataErr.Error(), ShouldContainSubstring, "no goalkeeper")
	})

	Convey("Given a short squad", t, func() {
		team := model.Team{SquadSize: 9, Positions: model.PositionCounts{Goalkeepers: 1, Defenders: 8}}
		So(errors.Is(p.CheckTeam(team), league.ErrSquadBelowFloor), ShouldBeTrue)
	})

	Convey("Given a complete squad", t, func() {
		team := model.Team{SquadSize: 11, Positions: model.PositionCounts{Goalkeepers: 1, Defenders: 4, Midfielders: 4, Forwards: 2}}
		So(p.CheckTeam(team), ShouldBeNil)
	})
}

func TestPolicyValidate(t *testing.T) {
	Convey("Given the default policy, quota and profile", t, func() {
		So(league.DefaultPolicy().Validate(), ShouldBeNil)
		So(league.DefaultQuota().Validate(), ShouldBeNil)
		So(league.DefaultPlayerProfile().Validate(), ShouldBeNil)
	})

	Convey("Given broken settings", t, func() {
		p := league.DefaultPolicy()
		p.MinSquadSize = 2
		So(errors.Is(p.Validate(), league.ErrInvalidPolicy), ShouldBeTrue)

		p = league.DefaultPolicy()
		p.BalanceThreshold = 1.2
		So(errors.Is(p.Validate(), league.ErrInvalidPolicy), ShouldBeTrue)

		q := league.DefaultQuota()
		q.DefenderShare = 0.7
		So(errors.Is(q.Validate(), league.ErrInvalidPolicy), ShouldBeTrue)

		pp := league.DefaultPlayerProfile()
		pp.MinAge = 40
		So(errors.Is(pp.Validate(), league.ErrInvalidPolicy), ShouldBeTrue)
	})
}
