package board

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/rsu-logistica/shift-board/backend/internal/domain"
	"github.com/rsu-logistica/shift-board/backend/internal/utils"
)

// Snapshot 返回当前完整状态，人员以嵌入形式保存
func (b *Board) Snapshot() domain.Snapshot {
	return domain.Snapshot{
		Date:       b.date,
		ExportedAt: time.Now().UTC(),
		Records:    b.AllRoutes(),
		Transfers:  b.Transfers(),
		Staff:      b.Staff(),
		Managers:   b.Managers(),
	}
}

// Export 把当前状态写成 JSON 快照
func (b *Board) Export(w io.Writer) error {
	if b.date == "" {
		return ErrNotLoaded
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(b.Snapshot())
}

// Import 读取 JSON 快照，校验通过后整体替换当前状态并保存名册和当日数据
func (b *Board) Import(ctx context.Context, r io.Reader) error {
	var snap domain.Snapshot
	if err := json.NewDecoder(r).Decode(&snap); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidSnapshot, err)
	}
	if err := b.validate.Struct(snap); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidSnapshot, err)
	}
	routeIDs := make(map[string]bool, len(snap.Records))
	for i := range snap.Records {
		rec := &snap.Records[i]
		if routeIDs[rec.ID] {
			return fmt.Errorf("%w: 线路 id %q 重复", ErrInvalidSnapshot, rec.ID)
		}
		routeIDs[rec.ID] = true
		if !rec.Shift.Valid() {
			return fmt.Errorf("%w: 线路 %s 的班次 %q 无效", ErrInvalidSnapshot, rec.ID, rec.Shift)
		}
		if err := utils.ValidateRouteStaffing(rec); err != nil {
			return fmt.Errorf("%w: %v", ErrInvalidSnapshot, err)
		}
	}

	transferIDs := make(map[string]bool, len(snap.Transfers))
	for _, t := range snap.Transfers {
		if transferIDs[t.ID] {
			return fmt.Errorf("%w: 转运记录 id %q 重复", ErrInvalidSnapshot, t.ID)
		}
		transferIDs[t.ID] = true
	}

	b.date = snap.Date
	b.staff = nonNil(snap.Staff)
	b.routes = nonNil(snap.Records)
	b.transfers = nonNil(snap.Transfers)
	b.managers = nonNil(snap.Managers)

	if err := b.store.SaveStaff(ctx, b.staff); err != nil {
		return fmt.Errorf("无法保存人员名册: %w", err)
	}
	return b.Save(ctx)
}

func nonNil[T any](s []T) []T {
	if s == nil {
		return make([]T, 0)
	}
	return s
}
