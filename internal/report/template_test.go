package report

import (
	"bytes"
	"testing"

	"github.com/rsu-logistica/shift-board/backend/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDayReportTemplate(t *testing.T) {
	tmpl, err := DayReportTemplate()
	require.NoError(t, err)

	data := domain.DayReportMailData{
		Date:   "2024-05-01",
		Device: "board",
		Shifts: []domain.ShiftReport{
			{Shift: domain.ShiftMorning, Supervisor: "ACOSTA", Routes: 6, Complete: 4, RouteTonnage: 51.25},
			{Shift: domain.ShiftNight},
		},
	}

	var buf bytes.Buffer
	require.NoError(t, tmpl.Execute(&buf, data))

	html := buf.String()
	assert.Contains(t, html, "Parte diario de recolección - 2024-05-01")
	assert.Contains(t, html, "Turno MAÑANA")
	assert.Contains(t, html, "Supervisor: ACOSTA")
	assert.Contains(t, html, "51.25")
	assert.Contains(t, html, "Turno NOCHE")
	assert.Contains(t, html, "Supervisor: -")
}
