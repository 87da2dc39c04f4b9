package plan_test

import (
	"errors"
	"testing"

	herd "github.com/okian/paddock/internal/domain/herd"
	"github.com/okian/paddock/internal/domain/model"
	plan "github.com/okian/paddock/internal/domain/plan"
	"github.com/okian/paddock/internal/domain/ranking"
	. "github.com/smartystreets/goconvey/convey"
)

var breedingZones = []herd.ZoneSpec{
	{Name: "stable", Slots: []string{"A", "B", "C"}},
	{Name: "foals", Slots: []string{"D", "E"}},
}

func breedingHerd() []model.Horse {
	return []model.Horse{
		{ID: "K", Stats: map[string]float64{"speed": 0.95, "jump": 0.93}, Zone: "stable", Slot: "A"},
		{ID: "M", Stats: map[string]float64{"speed": 0.80, "jump": 0.80}, Zone: "stable", Slot: "B"},
		{ID: "N", Stats: map[string]float64{"speed": 0.70, "jump": 0.60}, Zone: "stable", Slot: "C"},
		{ID: "U", Stats: map[string]float64{"speed": 0.97, "jump": 0.96}, Zone: "foals", Slot: "D"},
		{ID: "V", Stats: map[string]float64{"speed": 0.50, "jump": 0.50}, Zone: "foals", Slot: "E"},
	}
}

func TestConsolidate(t *testing.T) {
	primary := model.StatSelection{"speed", "jump"}

	Convey("Given the post-breeding scenario with target capacity 3", t, func() {
		horses := breedingHerd()
		a, err := herd.NewAssignment(horses, breedingZones)
		So(err, ShouldBeNil)
		entries := ranking.Rank(horses, primary)

		Convey("When consolidating foals into the stable", func() {
			instructions, err := plan.Consolidate(entries, a, "stable", "foals", 3)
			So(err, ShouldBeNil)

			Convey("Then N and V die, worst-ranked first", func() {
				So(instructions[0], ShouldResemble, model.Kill("V"))
				So(instructions[1], ShouldResemble, model.Kill("N"))
			})

			Convey("And U moves into the slot vacated by N while K and M stay", func() {
				So(instructions, ShouldHaveLength, 3)
				So(instructions[2], ShouldResemble, model.Move("U", "foals", "D", "stable", "C"))
			})

			Convey("And population is preserved: survivors plus kills", func() {
				kills := 0
				for _, in := range instructions {
					if in.Op == model.OpKill {
						kills++
					}
				}
				So(kills+3, ShouldEqual, len(horses))
			})
		})
	})

	Convey("Given an under-occupied target zone", t, func() {
		horses := []model.Horse{
			{ID: "K", Stats: map[string]float64{"speed": 0.60}, Zone: "stable", Slot: "B"},
			{ID: "U", Stats: map[string]float64{"speed": 0.90}, Zone: "foals", Slot: "D"},
			{ID: "V", Stats: map[string]float64{"speed": 0.80}, Zone: "foals", Slot: "E"},
		}
		a, err := herd.NewAssignment(horses, breedingZones)
		So(err, ShouldBeNil)
		entries := ranking.Rank(horses, model.StatSelection{"speed"})

		Convey("When consolidating at full target capacity", func() {
			instructions, err := plan.Consolidate(entries, a, "stable", "foals", 3)
			So(err, ShouldBeNil)

			Convey("Then nobody dies and movers fill free slots in declared order", func() {
				So(instructions, ShouldResemble, []model.Instruction{
					model.Move("U", "foals", "D", "stable", "A"),
					model.Move("V", "foals", "E", "stable", "C"),
				})
			})
		})
	})

	Convey("Given an already consolidated world", t, func() {
		horses := []model.Horse{
			{ID: "K", Stats: map[string]float64{"speed": 0.9}, Zone: "stable", Slot: "A"},
			{ID: "M", Stats: map[string]float64{"speed": 0.8}, Zone: "stable", Slot: "B"},
		}
		a, err := herd.NewAssignment(horses, breedingZones)
		So(err, ShouldBeNil)
		entries := ranking.Rank(horses, model.StatSelection{"speed"})

		Convey("When consolidating", func() {
			instructions, err := plan.Consolidate(entries, a, "stable", "foals", 3)
			So(err, ShouldBeNil)

			Convey("Then no instructions are emitted", func() {
				So(instructions, ShouldBeEmpty)
			})
		})
	})

	Convey("Given a target capacity beyond the zone's slots", t, func() {
		horses := breedingHerd()
		a, err := herd.NewAssignment(horses, breedingZones)
		So(err, ShouldBeNil)
		entries := ranking.Rank(horses, primary)

		Convey("When consolidating", func() {
			_, err := plan.Consolidate(entries, a, "stable", "foals", 4)

			Convey("Then it fails with a capacity error and emits nothing", func() {
				So(errors.Is(err, herd.ErrCapacity), ShouldBeTrue)
				var cerr *herd.CapacityError
				So(errors.As(err, &cerr), ShouldBeTrue)
				So(cerr.Zone, ShouldEqual, "stable")
				So(cerr.Requested, ShouldEqual, 4)
			})
		})
	})

	Convey("Given an unknown zone name", t, func() {
		horses := breedingHerd()
		a, err := herd.NewAssignment(horses, breedingZones)
		So(err, ShouldBeNil)
		entries := ranking.Rank(horses, primary)

		Convey("When consolidating into it", func() {
			_, err := plan.Consolidate(entries, a, "meadow", "foals", 3)
			So(errors.Is(err, herd.ErrValidation), ShouldBeTrue)
		})
	})
}
