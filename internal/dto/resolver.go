// Package dto 负责内存实体（嵌入完整人员信息）与持久化 DTO（只保存人员 ID）之间的转换
package dto

import (
	"strings"

	"github.com/rsu-logistica/shift-board/backend/internal/domain"
	"golang.org/x/text/cases"
)

var folder = cases.Fold()

func normalize(ref string) string {
	return folder.String(strings.TrimSpace(ref))
}

// Resolver 根据引用查找人员
// 非严格模式下，ID 找不到时会退回到姓名的子串匹配，用于兼容早期只保存了姓名的数据。
// 这种匹配可能误中：例如引用 "1" 会匹配到任何姓名中含有 "1" 的人员。
type Resolver struct {
	Strict bool
}

// Resolve 返回匹配人员的拷贝，找不到时返回 nil
func (r Resolver) Resolve(ref string, staff []domain.StaffMember) *domain.StaffMember {
	key := normalize(ref)
	if key == "" {
		return nil
	}

	for i := range staff {
		if normalize(staff[i].ID) == key {
			return staff[i].Clone()
		}
	}

	if r.Strict {
		return nil
	}

	for i := range staff {
		if strings.Contains(normalize(staff[i].Name), key) {
			return staff[i].Clone()
		}
	}

	return nil
}

// ResolveStaff 使用默认（非严格）模式查找人员
func ResolveStaff(ref string, staff []domain.StaffMember) *domain.StaffMember {
	return Resolver{}.Resolve(ref, staff)
}
