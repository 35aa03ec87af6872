package store

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/rsu-logistica/shift-board/backend/internal/domain"
)

// LocalStore 把数据以 JSON 形式保存在带命名空间前缀的键下。
// 修改数据结构时只需要更换前缀，旧数据保持不动。
type LocalStore struct {
	kv     KV
	prefix string
}

func NewLocalStore(kv KV, prefix string) *LocalStore {
	return &LocalStore{
		kv:     kv,
		prefix: prefix,
	}
}

// read 读取并反序列化一个值。键不存在或 JSON 无法解析时都视为没有数据，
// 解析失败时不会返回解析了一半的值
func read[T any](ctx context.Context, s *LocalStore, key string) (T, bool, error) {
	var v T

	raw, ok, err := s.kv.Get(ctx, s.prefix+key)
	if err != nil {
		return v, false, fmt.Errorf("读取 %s 失败: %w", key, err)
	}
	if !ok {
		return v, false, nil
	}

	var decoded T
	if err := json.Unmarshal(raw, &decoded); err != nil {
		slog.Warn("本地数据无法解析，按空值处理", "key", s.prefix+key, "error", err)
		return v, false, nil
	}

	return decoded, true, nil
}

func (s *LocalStore) write(ctx context.Context, key string, v any) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return err
	}

	if err := s.kv.Put(ctx, s.prefix+key, raw); err != nil {
		return fmt.Errorf("写入 %s 失败: %w", key, err)
	}

	return nil
}

func (s *LocalStore) LoadStaff(ctx context.Context) ([]domain.StaffMember, error) {
	staff, found, err := read[[]domain.StaffMember](ctx, s, keyStaff)
	if err != nil {
		return nil, err
	}
	if !found || staff == nil {
		return make([]domain.StaffMember, 0), nil
	}

	return staff, nil
}

func (s *LocalStore) SaveStaff(ctx context.Context, staff []domain.StaffMember) error {
	if staff == nil {
		staff = make([]domain.StaffMember, 0)
	}
	return s.write(ctx, keyStaff, staff)
}

// loadParts 读取由三个独立键组成的一份数据，三个键都不存在时返回 nil
func (s *LocalStore) loadParts(ctx context.Context, base string) (*domain.DayData, error) {
	routes, foundRoutes, err := read[[]domain.RouteRecordDTO](ctx, s, base+":routes")
	if err != nil {
		return nil, err
	}
	transfers, foundTransfers, err := read[[]domain.TransferRecordDTO](ctx, s, base+":transfers")
	if err != nil {
		return nil, err
	}
	managers, foundManagers, err := read[[]domain.ShiftMetadata](ctx, s, base+":managers")
	if err != nil {
		return nil, err
	}

	if !foundRoutes && !foundTransfers && !foundManagers {
		return nil, nil
	}

	day := &domain.DayData{
		Routes:    routes,
		Transfers: transfers,
		Managers:  managers,
	}

	// 缺失或解析失败的部分，以及保存为 null 的部分
	if day.Routes == nil {
		day.Routes = make([]domain.RouteRecordDTO, 0)
	}
	if day.Transfers == nil {
		day.Transfers = make([]domain.TransferRecordDTO, 0)
	}
	if day.Managers == nil {
		day.Managers = make([]domain.ShiftMetadata, 0)
	}

	return day, nil
}

// saveParts 依次写入三个键，不是原子操作：中途崩溃可能导致三部分不一致
func (s *LocalStore) saveParts(ctx context.Context, base string, day *domain.DayData) error {
	if day == nil {
		day = &domain.DayData{}
	}

	routes := day.Routes
	if routes == nil {
		routes = make([]domain.RouteRecordDTO, 0)
	}
	transfers := day.Transfers
	if transfers == nil {
		transfers = make([]domain.TransferRecordDTO, 0)
	}
	managers := day.Managers
	if managers == nil {
		managers = make([]domain.ShiftMetadata, 0)
	}

	if err := s.write(ctx, base+":routes", routes); err != nil {
		return err
	}
	if err := s.write(ctx, base+":transfers", transfers); err != nil {
		return err
	}
	if err := s.write(ctx, base+":managers", managers); err != nil {
		return err
	}

	return nil
}

func (s *LocalStore) LoadDay(ctx context.Context, date string) (*domain.DayData, error) {
	return s.loadParts(ctx, dayKey(date))
}

func (s *LocalStore) SaveDay(ctx context.Context, date string, day *domain.DayData) error {
	return s.saveParts(ctx, dayKey(date), day)
}

func (s *LocalStore) LoadMaster(ctx context.Context) (*domain.DayData, error) {
	return s.loadParts(ctx, keyMaster)
}

func (s *LocalStore) SaveMaster(ctx context.Context, master *domain.DayData) error {
	return s.saveParts(ctx, keyMaster, master)
}
