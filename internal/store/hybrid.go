package store

import (
	"context"
	"log/slog"

	"github.com/rsu-logistica/shift-board/backend/internal/domain"
)

// HybridStore 组合本地与远端存储：
//   - 读取时优先远端，远端有数据就顺便写入本地缓存并返回，否则读取本地；
//   - 写入时先同步写本地（失败直接返回错误），再尽力写远端，远端失败不重试也不报错。
//
// 本地写入一定在远端写入之前完成，因此同一设备上随后的读取不会只在远端看到这次保存。
// 多设备之间没有冲突检测，远端副本以最后一次写入为准。
type HybridStore struct {
	local  Store
	remote Store
}

// NewHybridStore 在 remote 为 nil 时退化为只使用本地存储
func NewHybridStore(local Store, remote Store) *HybridStore {
	if remote == nil {
		remote = noopStore{}
	}
	return &HybridStore{
		local:  local,
		remote: remote,
	}
}

func (h *HybridStore) LoadStaff(ctx context.Context) ([]domain.StaffMember, error) {
	if staff, err := h.remote.LoadStaff(ctx); err == nil && len(staff) > 0 {
		if err := h.local.SaveStaff(ctx, staff); err != nil {
			slog.Warn("无法缓存远端人员名册", "error", err)
		}
		return staff, nil
	}

	return h.local.LoadStaff(ctx)
}

func (h *HybridStore) SaveStaff(ctx context.Context, staff []domain.StaffMember) error {
	if err := h.local.SaveStaff(ctx, staff); err != nil {
		return err
	}

	_ = h.remote.SaveStaff(ctx, staff)
	return nil
}

func (h *HybridStore) LoadDay(ctx context.Context, date string) (*domain.DayData, error) {
	if day, err := h.remote.LoadDay(ctx, date); err == nil && !day.IsEmpty() {
		if err := h.local.SaveDay(ctx, date, day); err != nil {
			slog.Warn("无法缓存远端当日数据", "date", date, "error", err)
		}
		return day, nil
	}

	return h.local.LoadDay(ctx, date)
}

func (h *HybridStore) SaveDay(ctx context.Context, date string, day *domain.DayData) error {
	if err := h.local.SaveDay(ctx, date, day); err != nil {
		return err
	}

	_ = h.remote.SaveDay(ctx, date, day)
	return nil
}

func (h *HybridStore) LoadMaster(ctx context.Context) (*domain.DayData, error) {
	if master, err := h.remote.LoadMaster(ctx); err == nil && !master.IsEmpty() {
		if err := h.local.SaveMaster(ctx, master); err != nil {
			slog.Warn("无法缓存远端主模板", "error", err)
		}
		return master, nil
	}

	return h.local.LoadMaster(ctx)
}

func (h *HybridStore) SaveMaster(ctx context.Context, master *domain.DayData) error {
	if err := h.local.SaveMaster(ctx, master); err != nil {
		return err
	}

	_ = h.remote.SaveMaster(ctx, master)
	return nil
}
