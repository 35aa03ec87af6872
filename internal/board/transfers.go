package board

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/rsu-logistica/shift-board/backend/internal/domain"
)

// Transfer 返回某个班次的转运记录拷贝
func (b *Board) Transfer(shift domain.Shift) (domain.TransferRecord, error) {
	for _, t := range b.transfers {
		if t.Shift == shift {
			return t, nil
		}
	}
	return domain.TransferRecord{}, fmt.Errorf("%w: %s", ErrTransferNotFound, shift)
}

func (b *Board) Transfers() []domain.TransferRecord {
	return append([]domain.TransferRecord{}, b.transfers...)
}

// transferSlot 返回转运记录中名为 name 的槽位，支持
// maquinista、encargado、lonero、lonero-backup、unit1..3、tolva1..3、transfer1..2、balancero1..2
func transferSlot(t *domain.TransferRecord, name string) (**domain.StaffMember, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	switch name {
	case "maquinista":
		return &t.Maquinista, nil
	case "encargado":
		return &t.Encargado, nil
	case "lonero":
		return &t.Lonero, nil
	case "lonero-backup":
		return &t.LoneroBackup, nil
	}

	indexed := []struct {
		prefix string
		n      int
		slot   func(i int) **domain.StaffMember
	}{
		{"unit", len(t.Units), func(i int) **domain.StaffMember { return &t.Units[i].Driver }},
		{"tolva", len(t.TolvaAuxiliaries), func(i int) **domain.StaffMember { return &t.TolvaAuxiliaries[i] }},
		{"transfer", len(t.TransferAuxiliaries), func(i int) **domain.StaffMember { return &t.TransferAuxiliaries[i] }},
		{"balancero", len(t.Balanceros), func(i int) **domain.StaffMember { return &t.Balanceros[i] }},
	}
	for _, s := range indexed {
		if n, ok := strings.CutPrefix(name, s.prefix); ok {
			if i, err := strconv.Atoi(n); err == nil && i >= 1 && i <= s.n {
				return s.slot(i - 1), nil
			}
		}
	}

	return nil, fmt.Errorf("未知的转运槽位 %q", name)
}

// AssignTransfer 把人员放进某个班次转运记录的槽位，staffID 为空表示清空
func (b *Board) AssignTransfer(shift domain.Shift, slot string, staffID string) error {
	idx := -1
	for i := range b.transfers {
		if b.transfers[i].Shift == shift {
			idx = i
			break
		}
	}
	if idx < 0 {
		return fmt.Errorf("%w: %s", ErrTransferNotFound, shift)
	}

	var member *domain.StaffMember
	if staffID != "" {
		m, ok := b.StaffByID(staffID)
		if !ok {
			return fmt.Errorf("%w: %s", ErrStaffNotFound, staffID)
		}
		member = m
	}

	p, err := transferSlot(&b.transfers[idx], slot)
	if err != nil {
		return err
	}
	*p = member
	return nil
}
