package board

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/rsu-logistica/shift-board/backend/internal/domain"
	"github.com/rsu-logistica/shift-board/backend/internal/utils"
)

// Staff 返回人员名册的拷贝
func (b *Board) Staff() []domain.StaffMember {
	return append([]domain.StaffMember{}, b.staff...)
}

// StaffByID 按 ID 精确查找，返回拷贝
func (b *Board) StaffByID(id string) (*domain.StaffMember, bool) {
	i := b.staffIndex(id)
	if i < 0 {
		return nil, false
	}
	return b.staff[i].Clone(), true
}

func (b *Board) staffIndex(id string) int {
	for i := range b.staff {
		if b.staff[i].ID == id {
			return i
		}
	}
	return -1
}

// AddStaff 添加人员并保存名册，ID 为空时自动生成
func (b *Board) AddStaff(ctx context.Context, member domain.StaffMember) (domain.StaffMember, error) {
	if member.ID == "" {
		member.ID = uuid.NewString()
	}
	if member.Status == "" {
		member.Status = domain.StaffPresent
	}
	if err := b.validate.Struct(member); err != nil {
		return domain.StaffMember{}, err
	}
	if b.staffIndex(member.ID) >= 0 {
		return domain.StaffMember{}, fmt.Errorf("%w: %s", ErrStaffExists, member.ID)
	}

	b.staff = append(b.staff, member)
	if err := b.store.SaveStaff(ctx, b.staff); err != nil {
		return domain.StaffMember{}, fmt.Errorf("无法保存人员名册: %w", err)
	}

	return member, nil
}

// UpdateStaff 更新名册中的人员，并把新的信息同步到所有嵌入了该人员的线路和转运槽位，
// 返回被同步的槽位数量
func (b *Board) UpdateStaff(ctx context.Context, member domain.StaffMember) (int, error) {
	i := b.staffIndex(member.ID)
	if i < 0 {
		return 0, fmt.Errorf("%w: %s", ErrStaffNotFound, member.ID)
	}
	if err := b.validate.Struct(member); err != nil {
		return 0, err
	}

	b.staff[i] = member
	n := b.propagateStaff(member)

	if err := b.store.SaveStaff(ctx, b.staff); err != nil {
		return n, fmt.Errorf("无法保存人员名册: %w", err)
	}

	return n, nil
}

// propagateStaff 把人员的新信息同步到所有槽位，返回被同步的槽位数量。
// 正式人员恢复在岗后不再允许的替补会被释放
func (b *Board) propagateStaff(member domain.StaffMember) int {
	n := 0
	for j := range b.routes {
		replaced := b.routes[j].ReplaceStaff(member)
		if replaced == 0 {
			continue
		}
		n += replaced
		if released := utils.ReleaseSurplusReplacements(&b.routes[j]); released > 0 {
			slog.Info("替补已释放", "route", b.routes[j].ID, "staff", member.ID, "released", released)
		}
	}
	for j := range b.transfers {
		n += b.transfers[j].ReplaceStaff(member)
	}
	return n
}

// RemoveStaff 从名册中删除人员，已经引用该人员的槽位在下次加载时会变成空。
// 额外人员基线每次加载都会合并回名册，所以不能删除，只能修改状态
func (b *Board) RemoveStaff(ctx context.Context, id string) error {
	i := b.staffIndex(id)
	if i < 0 {
		return fmt.Errorf("%w: %s", ErrStaffNotFound, id)
	}
	for _, e := range b.catalog.ExtraStaff {
		if e.ID == id {
			return fmt.Errorf("%w: %s", ErrBaselineStaff, id)
		}
	}

	b.staff = append(b.staff[:i], b.staff[i+1:]...)
	if err := b.store.SaveStaff(ctx, b.staff); err != nil {
		return fmt.Errorf("无法保存人员名册: %w", err)
	}
	return nil
}

// ImportStaff 按 ID 合并一批人员（例如从表格导入），已存在的人员会被更新并同步到槽位，
// 返回新增和更新的数量
func (b *Board) ImportStaff(ctx context.Context, members []domain.StaffMember) (added int, updated int, err error) {
	for _, m := range members {
		if err := b.validate.Struct(m); err != nil {
			return 0, 0, fmt.Errorf("人员 %s: %w", m.ID, err)
		}
	}

	for _, m := range members {
		if i := b.staffIndex(m.ID); i >= 0 {
			b.staff[i] = m
			b.propagateStaff(m)
			updated++
			continue
		}
		b.staff = append(b.staff, m)
		added++
	}

	if err := b.store.SaveStaff(ctx, b.staff); err != nil {
		return added, updated, fmt.Errorf("无法保存人员名册: %w", err)
	}
	return added, updated, nil
}
