package merge

import (
	"testing"

	"github.com/rsu-logistica/shift-board/backend/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type item struct {
	id  string
	val string
}

func key(i item) string { return i.id }

func ids(items []item) []string {
	out := make([]string, 0, len(items))
	for _, i := range items {
		out = append(out, i.id)
	}
	return out
}

func TestByID(t *testing.T) {
	master := []item{{"a", "m"}, {"b", "m"}, {"c", "m"}, {"d", "m"}}

	t.Run("no overrides keeps master", func(t *testing.T) {
		assert.Equal(t, master, ByID(master, nil, key))
	})

	t.Run("overrides replace and customs append", func(t *testing.T) {
		overrides := []item{{"x", "o"}, {"c", "o"}, {"y", "o"}, {"a", "o"}}
		got := ByID(master, overrides, key)

		assert.Equal(t, []string{"a", "b", "c", "d", "x", "y"}, ids(got))
		assert.Equal(t, "o", got[0].val)
		assert.Equal(t, "m", got[1].val)
		assert.Equal(t, "o", got[2].val)
		assert.Equal(t, "m", got[3].val)
	})

	t.Run("stale partial overrides never drop master entries", func(t *testing.T) {
		got := ByID(master, []item{{"b", "o"}}, key)
		assert.Equal(t, []string{"a", "b", "c", "d"}, ids(got))
	})

	t.Run("duplicate override ids keep the first", func(t *testing.T) {
		got := ByID(master, []item{{"z", "1"}, {"z", "2"}, {"a", "1"}, {"a", "2"}}, key)
		assert.Equal(t, []string{"a", "b", "c", "d", "z"}, ids(got))
		assert.Equal(t, "1", got[0].val)
		assert.Equal(t, "1", got[4].val)
	})

	t.Run("empty master", func(t *testing.T) {
		got := ByID(nil, []item{{"q", "o"}, {"p", "o"}}, key)
		assert.Equal(t, []string{"q", "p"}, ids(got))
	})
}

func TestRoutesScenario(t *testing.T) {
	master := []domain.RouteRecordDTO{
		{ID: "m-1", Zone: "RN 1", Shift: domain.ShiftMorning},
		{ID: "m-2", Zone: "RN 2", Shift: domain.ShiftMorning},
	}
	overrides := []domain.RouteRecordDTO{
		{ID: "m-1", Zone: "RN 1", InternalID: "999", Shift: domain.ShiftMorning},
	}

	got := Routes(master, overrides)
	require.Len(t, got, 2)
	assert.Equal(t, "m-1", got[0].ID)
	assert.Equal(t, "999", got[0].InternalID)
	assert.Equal(t, master[1], got[1])
}

func TestStaff(t *testing.T) {
	baseline := []domain.StaffMember{
		{ID: "E-1", Name: "EXTRA UNO", Status: domain.StaffReserve},
		{ID: "E-2", Name: "EXTRA DOS", Status: domain.StaffReserve},
	}
	persisted := []domain.StaffMember{
		{ID: "100", Name: "PEREZ", Status: domain.StaffPresent},
		{ID: "E-2", Name: "EXTRA DOS", Status: domain.StaffAbsent},
	}

	got := Staff(baseline, persisted)
	require.Len(t, got, 3)
	assert.Equal(t, baseline[0], got[0])
	assert.Equal(t, domain.StaffAbsent, got[1].Status)
	assert.Equal(t, persisted[0], got[2])
}

func TestDay(t *testing.T) {
	master := &domain.DayData{
		Routes:    []domain.RouteRecordDTO{{ID: "m-1"}},
		Transfers: []domain.TransferRecordDTO{{ID: domain.TransferID(domain.ShiftMorning)}},
		Managers: []domain.ShiftMetadata{
			domain.NewShiftMetadata(domain.ShiftMorning),
			domain.NewShiftMetadata(domain.ShiftNight),
		},
	}

	assert.Same(t, master, Day(master, nil))

	over := &domain.DayData{
		Routes:   []domain.RouteRecordDTO{{ID: "custom"}},
		Managers: []domain.ShiftMetadata{{Shift: domain.ShiftNight, Supervisor: "ACOSTA"}},
	}
	got := Day(master, over)
	assert.Len(t, got.Routes, 2)
	assert.Len(t, got.Transfers, 1)
	require.Len(t, got.Managers, 2)
	assert.Equal(t, "ACOSTA", got.Managers[1].Supervisor)

	assert.NotNil(t, Day(nil, nil))
}
