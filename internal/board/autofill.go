package board

import (
	"fmt"
	"slices"

	"github.com/rsu-logistica/shift-board/backend/internal/domain"
	"github.com/rsu-logistica/shift-board/backend/internal/scheduler"
)

// busyStaff 返回当天已经有位置的人员，以及在班次中登记了缺勤的人员
func (b *Board) busyStaff(shift domain.Shift) map[string]bool {
	busy := make(map[string]bool)
	for i := range b.routes {
		for _, id := range b.routes[i].StaffIDs() {
			busy[id] = true
		}
	}
	for i := range b.transfers {
		for _, id := range b.transfers[i].StaffIDs() {
			busy[id] = true
		}
	}
	for _, a := range b.ShiftMetadata(shift).Absences {
		busy[a.StaffID] = true
	}
	return busy
}

// AutoFill 为班次中空着的司机和辅助员槽位安排空闲人员，不会修改已有的安排。
// 任意一项安排失败时整个班次保持原样。
func (b *Board) AutoFill(shift domain.Shift, params *scheduler.Parameters) ([]scheduler.Assignment, error) {
	if b.date == "" {
		return nil, ErrNotLoaded
	}
	if !shift.Valid() {
		return nil, fmt.Errorf("%w: %q", ErrInvalidShift, shift)
	}

	s, err := scheduler.New(params, shift, b.routes, b.staff, b.busyStaff(shift))
	if err != nil {
		return nil, err
	}
	assignments, err := s.Schedule()
	if err != nil {
		return nil, err
	}

	backup := slices.Clone(b.routes)
	for _, a := range assignments {
		slot := Slot{Kind: SlotAuxiliary, Index: a.AuxIndex}
		if a.Driver {
			slot = Slot{Kind: SlotDriver}
		}
		if err := b.Assign(a.RouteID, slot, a.StaffID); err != nil {
			b.routes = backup
			return nil, err
		}
	}

	return assignments, nil
}
