package board

import (
	"context"
	"fmt"
	"testing"

	"github.com/rsu-logistica/shift-board/backend/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAutoFill(t *testing.T) {
	b, _ := loadedBoard(t)
	ctx := context.Background()

	for i := 0; i < 8; i++ {
		_, err := b.AddStaff(ctx, domain.StaffMember{ID: fmt.Sprintf("A%d", i), Name: "AUX", Role: domain.RoleAuxiliary})
		require.NoError(t, err)
	}
	_, err := b.AddStaff(ctx, domain.StaffMember{ID: "D1", Name: "CHOFER", Role: domain.RoleDriver})
	require.NoError(t, err)

	// 已经在转运站的人员不会被安排到线路上
	require.NoError(t, b.AssignTransfer(domain.ShiftMorning, "unit1", "E-1"))
	// 登记了缺勤的人员也不会
	meta := b.ShiftMetadata(domain.ShiftMorning)
	meta.Absences = append(meta.Absences, domain.ShiftAbsence{StaffID: "A7"})
	require.NoError(t, b.SetShiftMetadata(meta))

	assignments, err := b.AutoFill(domain.ShiftMorning, nil)
	require.NoError(t, err)
	require.Len(t, assignments, 8)

	used := make(map[string]bool)
	for _, r := range b.Routes(domain.ShiftMorning) {
		for _, id := range r.StaffIDs() {
			assert.False(t, used[id], "staff %s placed twice", id)
			used[id] = true
		}
	}
	assert.True(t, used["D1"])
	assert.False(t, used["E-1"])
	assert.False(t, used["A7"])

	// TARDE 的线路不受影响
	afternoon := b.Routes(domain.ShiftAfternoon)
	require.Len(t, afternoon, 1)
	assert.Empty(t, afternoon[0].StaffIDs())

	// 第二次运行已经没有空闲人员
	assignments, err = b.AutoFill(domain.ShiftMorning, nil)
	require.NoError(t, err)
	assert.Empty(t, assignments)
}

func TestAutoFillRequiresLoad(t *testing.T) {
	b := newTestBoard(t, newTestStore(t))
	_, err := b.AutoFill(domain.ShiftMorning, nil)
	assert.ErrorIs(t, err, ErrNotLoaded)
}
