package utils

import (
	"errors"
	"fmt"
	"time"

	"github.com/rsu-logistica/shift-board/backend/internal/domain"
)

var (
	ErrReplacementQuotaExhausted = errors.New("替补名额已用完")
	ErrDriverNotAbsent           = errors.New("正式司机未缺勤，不能安排替补司机")
	ErrInvalidDate               = errors.New("日期格式错误，应为 YYYY-MM-DD")
)

// ActiveTitulars 统计正式辅助员中占用名额（非缺勤）的人数
func ActiveTitulars(titulars [domain.AuxiliarySlots]*domain.StaffMember) int {
	n := 0
	for _, s := range titulars {
		if s.IsActive() {
			n++
		}
	}
	return n
}

// EnabledReplacementSlots 计算两个替补辅助员槽位中哪些可以填写。
// 正式辅助员中在岗的人数加上已填写的替补人数不能超过 4：
// 已经有值的槽位始终可用（允许修改或清空），空槽位按顺序占用剩余名额。
func EnabledReplacementSlots(titulars [domain.AuxiliarySlots]*domain.StaffMember, replacements [domain.ReplacementAuxiliarySlots]*domain.StaffMember) [domain.ReplacementAuxiliarySlots]bool {
	remaining := domain.AuxiliarySlots - ActiveTitulars(titulars)
	for _, r := range replacements {
		if r != nil {
			remaining--
		}
	}

	var enabled [domain.ReplacementAuxiliarySlots]bool
	for i, r := range replacements {
		if r != nil {
			enabled[i] = true
			continue
		}
		if remaining > 0 {
			enabled[i] = true
			remaining--
		}
	}

	return enabled
}

// ReplacementDriverAssignable 只有正式司机缺勤时才能安排替补司机
func ReplacementDriverAssignable(driver *domain.StaffMember) bool {
	return driver != nil && driver.Status == domain.StaffAbsent
}

// ValidateRouteStaffing 检查线路记录是否满足替补规则
func ValidateRouteStaffing(rec *domain.RouteRecord) error {
	used := ActiveTitulars(rec.Auxiliaries)
	for _, r := range rec.ReplacementAuxiliaries {
		if r != nil {
			used++
		}
	}
	if used > domain.AuxiliarySlots {
		return fmt.Errorf("线路 %s: %w", rec.Zone, ErrReplacementQuotaExhausted)
	}

	if rec.ReplacementDriver != nil && !ReplacementDriverAssignable(rec.Driver) {
		return fmt.Errorf("线路 %s: %w", rec.Zone, ErrDriverNotAbsent)
	}

	return nil
}

// ReleaseSurplusReplacements 在正式人员恢复在岗后释放不再允许的替补：
// 正式司机不再缺勤时清空替补司机；替补辅助员超出名额时从最后一个槽位开始清空。
// 返回被清空的槽位数量，清空后的线路满足 ValidateRouteStaffing
func ReleaseSurplusReplacements(rec *domain.RouteRecord) int {
	released := 0

	if rec.ReplacementDriver != nil && !ReplacementDriverAssignable(rec.Driver) {
		rec.ReplacementDriver = nil
		released++
	}

	used := ActiveTitulars(rec.Auxiliaries)
	for _, r := range rec.ReplacementAuxiliaries {
		if r != nil {
			used++
		}
	}
	for i := len(rec.ReplacementAuxiliaries) - 1; i >= 0 && used > domain.AuxiliarySlots; i-- {
		if rec.ReplacementAuxiliaries[i] != nil {
			rec.ReplacementAuxiliaries[i] = nil
			used--
			released++
		}
	}

	return released
}

// ValidateDate 检查日期是否为 YYYY-MM-DD 格式
func ValidateDate(date string) error {
	if _, err := time.Parse(time.DateOnly, date); err != nil {
		return ErrInvalidDate
	}
	return nil
}
