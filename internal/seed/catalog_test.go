package seed

import (
	"testing"

	"github.com/rsu-logistica/shift-board/backend/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadCatalog(t *testing.T) {
	c, err := LoadCatalog()
	require.NoError(t, err)
	require.NotEmpty(t, c.Routes)
	require.NotEmpty(t, c.ExtraStaff)

	ids := make(map[string]bool)
	for _, r := range c.Routes {
		assert.False(t, ids[r.ID], "duplicate route id %s", r.ID)
		ids[r.ID] = true
		assert.True(t, r.Shift.Valid())
	}

	first := c.Routes[0]
	assert.Equal(t, "m-1", first.ID)
	assert.Equal(t, "RN 1", first.Zone)
	assert.Equal(t, domain.ShiftMorning, first.Shift)
	assert.Equal(t, 0, first.Order)
}

func TestMasterTemplate(t *testing.T) {
	c, err := LoadCatalog()
	require.NoError(t, err)

	day := c.MasterTemplate()
	assert.Len(t, day.Routes, len(c.Routes))
	require.Len(t, day.Transfers, 3)
	require.Len(t, day.Managers, 3)

	for i, shift := range domain.Shifts {
		assert.Equal(t, domain.TransferID(shift), day.Transfers[i].ID)
		assert.Equal(t, shift, day.Managers[i].Shift)
	}
	for _, r := range day.Routes {
		assert.Equal(t, domain.ZonePending, r.ZoneStatus)
		assert.Nil(t, r.Driver)
	}
}

func TestParseCatalogErrors(t *testing.T) {
	_, err := ParseCatalog([]byte("shifts:\n  - shift: DOMINGO\n    routes: []\n"))
	assert.Error(t, err)

	_, err = ParseCatalog([]byte("shifts:\n  - shift: TARDE\n    routes:\n      - {id: a}\n      - {id: a}\n"))
	assert.Error(t, err)

	_, err = ParseCatalog([]byte("shifts:\n  - shift: TARDE\n    routes:\n      - {zone: X}\n"))
	assert.Error(t, err)

	c, err := ParseCatalog([]byte("extraStaff:\n  - {id: E-9, name: X}\n"))
	require.NoError(t, err)
	assert.Equal(t, domain.StaffReserve, c.ExtraStaff[0].Status)
}
