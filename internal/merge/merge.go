// Package merge 实现主模板（ADN）与持久化覆盖数据之间的合并
package merge

import "github.com/rsu-logistica/shift-board/backend/internal/domain"

// ByID 按 key 合并两个列表：
//   - 主模板中的每一项，如果覆盖列表中存在相同 key 的项，则整体替换，否则保持原样；
//   - 覆盖列表中 key 不在主模板中的项按原有相对顺序追加在最后。
//
// 这样主模板中的项不会因为覆盖数据过期或不完整而消失。
func ByID[T any](master, overrides []T, key func(T) string) []T {
	index := make(map[string]int, len(overrides))
	for i, o := range overrides {
		if _, exists := index[key(o)]; !exists {
			index[key(o)] = i
		}
	}

	out := make([]T, 0, len(master)+len(overrides))
	used := make(map[string]bool, len(master))
	for _, m := range master {
		k := key(m)
		used[k] = true
		if i, ok := index[k]; ok {
			out = append(out, overrides[i])
			continue
		}
		out = append(out, m)
	}

	for _, o := range overrides {
		k := key(o)
		if used[k] {
			continue
		}
		// 覆盖列表中重复的 key 只保留第一项
		used[k] = true
		out = append(out, o)
	}

	return out
}

func Routes(master, overrides []domain.RouteRecordDTO) []domain.RouteRecordDTO {
	return ByID(master, overrides, func(r domain.RouteRecordDTO) string { return r.ID })
}

func Transfers(master, overrides []domain.TransferRecordDTO) []domain.TransferRecordDTO {
	return ByID(master, overrides, func(t domain.TransferRecordDTO) string { return t.ID })
}

func Managers(master, overrides []domain.ShiftMetadata) []domain.ShiftMetadata {
	return ByID(master, overrides, func(m domain.ShiftMetadata) string { return string(m.Shift) })
}

// Staff 合并固定的额外人员基线和持久化的名册，不在基线中的人员原样保留
func Staff(baseline, persisted []domain.StaffMember) []domain.StaffMember {
	return ByID(baseline, persisted, func(s domain.StaffMember) string { return s.ID })
}

// Day 合并整份数据，overrides 为 nil 时返回 master 本身
func Day(master, overrides *domain.DayData) *domain.DayData {
	if master == nil {
		master = &domain.DayData{}
	}
	if overrides == nil {
		return master
	}

	return &domain.DayData{
		Routes:    Routes(master.Routes, overrides.Routes),
		Transfers: Transfers(master.Transfers, overrides.Transfers),
		Managers:  Managers(master.Managers, overrides.Managers),
	}
}
