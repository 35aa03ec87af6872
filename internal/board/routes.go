package board

import (
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/rsu-logistica/shift-board/backend/internal/domain"
	"github.com/rsu-logistica/shift-board/backend/internal/utils"
)

type SlotKind int

const (
	SlotDriver SlotKind = iota
	SlotAuxiliary
	SlotReplacementDriver
	SlotReplacementAuxiliary
)

// Slot 是线路中的一个人员槽位，Index 只对辅助员槽位有效（从 0 开始）
type Slot struct {
	Kind  SlotKind
	Index int
}

func (s Slot) String() string {
	switch s.Kind {
	case SlotDriver:
		return "driver"
	case SlotReplacementDriver:
		return "replacement-driver"
	case SlotAuxiliary:
		return "aux" + strconv.Itoa(s.Index+1)
	case SlotReplacementAuxiliary:
		return "replacement" + strconv.Itoa(s.Index+1)
	}
	return "unknown"
}

// ParseSlot 解析 driver、replacement-driver、aux1..aux4、replacement1..replacement2
func ParseSlot(name string) (Slot, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	switch name {
	case "driver":
		return Slot{Kind: SlotDriver}, nil
	case "replacement-driver":
		return Slot{Kind: SlotReplacementDriver}, nil
	}

	if n, ok := strings.CutPrefix(name, "aux"); ok {
		if i, err := strconv.Atoi(n); err == nil && i >= 1 && i <= domain.AuxiliarySlots {
			return Slot{Kind: SlotAuxiliary, Index: i - 1}, nil
		}
	}
	if n, ok := strings.CutPrefix(name, "replacement"); ok {
		if i, err := strconv.Atoi(n); err == nil && i >= 1 && i <= domain.ReplacementAuxiliarySlots {
			return Slot{Kind: SlotReplacementAuxiliary, Index: i - 1}, nil
		}
	}

	return Slot{}, fmt.Errorf("未知的槽位 %q", name)
}

func (b *Board) routeIndex(id string) int {
	for i := range b.routes {
		if b.routes[i].ID == id {
			return i
		}
	}
	return -1
}

// Route 返回线路的拷贝
func (b *Board) Route(id string) (domain.RouteRecord, error) {
	i := b.routeIndex(id)
	if i < 0 {
		return domain.RouteRecord{}, fmt.Errorf("%w: %s", ErrRouteNotFound, id)
	}
	return b.routes[i], nil
}

// Routes 返回某个班次的线路，按 Order 排序
func (b *Board) Routes(shift domain.Shift) []domain.RouteRecord {
	out := make([]domain.RouteRecord, 0)
	for _, r := range b.routes {
		if r.Shift == shift {
			out = append(out, r)
		}
	}
	slices.SortStableFunc(out, func(a, c domain.RouteRecord) int {
		return a.Order - c.Order
	})
	return out
}

// AllRoutes 按加载顺序返回所有线路
func (b *Board) AllRoutes() []domain.RouteRecord {
	return slices.Clone(b.routes)
}

// NewRoute 在班次末尾添加一条临时线路
func (b *Board) NewRoute(shift domain.Shift, zone string, category domain.RouteCategory) (domain.RouteRecord, error) {
	if b.date == "" {
		return domain.RouteRecord{}, ErrNotLoaded
	}
	if !shift.Valid() {
		return domain.RouteRecord{}, fmt.Errorf("%w: %q", ErrInvalidShift, shift)
	}

	order := 0
	for _, r := range b.routes {
		if r.Shift == shift && r.Order >= order {
			order = r.Order + 1
		}
	}

	rec := domain.NewRouteRecord(domain.RouteDefinition{
		ID:       uuid.NewString(),
		Zone:     zone,
		Category: category,
		Shift:    shift,
		Order:    order,
	})
	b.routes = append(b.routes, rec)

	return rec, nil
}

func (b *Board) DeleteRoute(id string) error {
	i := b.routeIndex(id)
	if i < 0 {
		return fmt.Errorf("%w: %s", ErrRouteNotFound, id)
	}
	b.routes = slices.Delete(b.routes, i, i+1)
	return nil
}

// UpdateRoute 整体替换一条线路，替换前检查替补规则
func (b *Board) UpdateRoute(rec domain.RouteRecord) error {
	i := b.routeIndex(rec.ID)
	if i < 0 {
		return fmt.Errorf("%w: %s", ErrRouteNotFound, rec.ID)
	}
	if err := utils.ValidateRouteStaffing(&rec); err != nil {
		return err
	}
	b.routes[i] = rec
	return nil
}

// Assign 把人员放进线路的槽位，staffID 为空表示清空该槽位。
// 替补辅助员只能填写当前可用的槽位，替补司机只能在正式司机缺勤时安排；
// 修改正式人员后如果整条线路违反替补规则，修改不会生效。
func (b *Board) Assign(routeID string, slot Slot, staffID string) error {
	i := b.routeIndex(routeID)
	if i < 0 {
		return fmt.Errorf("%w: %s", ErrRouteNotFound, routeID)
	}

	var member *domain.StaffMember
	if staffID != "" {
		m, ok := b.StaffByID(staffID)
		if !ok {
			return fmt.Errorf("%w: %s", ErrStaffNotFound, staffID)
		}
		member = m
	}

	rec := b.routes[i]
	switch slot.Kind {
	case SlotDriver:
		rec.Driver = member
	case SlotAuxiliary:
		if slot.Index < 0 || slot.Index >= domain.AuxiliarySlots {
			return fmt.Errorf("未知的槽位 %s", slot)
		}
		rec.Auxiliaries[slot.Index] = member
	case SlotReplacementDriver:
		if member != nil && !utils.ReplacementDriverAssignable(rec.Driver) {
			return fmt.Errorf("线路 %s: %w", rec.Zone, utils.ErrDriverNotAbsent)
		}
		rec.ReplacementDriver = member
	case SlotReplacementAuxiliary:
		if slot.Index < 0 || slot.Index >= domain.ReplacementAuxiliarySlots {
			return fmt.Errorf("未知的槽位 %s", slot)
		}
		enabled := utils.EnabledReplacementSlots(rec.Auxiliaries, rec.ReplacementAuxiliaries)
		if member != nil && !enabled[slot.Index] {
			return fmt.Errorf("线路 %s: %w", rec.Zone, utils.ErrReplacementQuotaExhausted)
		}
		rec.ReplacementAuxiliaries[slot.Index] = member
	default:
		return fmt.Errorf("未知的槽位 %s", slot)
	}

	// 清空替补槽位总是允许的
	clearing := member == nil && (slot.Kind == SlotReplacementDriver || slot.Kind == SlotReplacementAuxiliary)
	if !clearing {
		if err := utils.ValidateRouteStaffing(&rec); err != nil {
			return err
		}
	}

	b.routes[i] = rec
	return nil
}
