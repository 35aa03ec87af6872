// Package report 汇总一天中每个班次的线路完成情况、吨数和缺勤
package report

import (
	"github.com/rsu-logistica/shift-board/backend/internal/domain"
	"github.com/rsu-logistica/shift-board/backend/internal/dto"
)

// Summarize 按 domain.Shifts 的顺序为每个班次生成一份汇总，没有线路的班次也会出现
func Summarize(routes []domain.RouteRecord, transfers []domain.TransferRecord, managers []domain.ShiftMetadata) []domain.ShiftReport {
	reports := make([]domain.ShiftReport, 0, len(domain.Shifts))

	for _, shift := range domain.Shifts {
		r := domain.ShiftReport{Shift: shift}
		absent := make(map[string]bool)

		for _, m := range managers {
			if m.Shift != shift {
				continue
			}
			r.Supervisor = m.Supervisor
			r.SubSupervisor = m.SubSupervisor
			for _, a := range m.Absences {
				absent[a.StaffID] = true
			}
		}

		for i := range routes {
			rec := &routes[i]
			if rec.Shift != shift {
				continue
			}

			r.Routes++
			switch rec.ZoneStatus {
			case domain.ZoneComplete:
				r.Complete++
			case domain.ZoneIncomplete:
				r.Incomplete++
			default:
				r.Pending++
			}
			r.RouteTonnage += rec.Tonnage

			if rec.Driver != nil && rec.Driver.Status == domain.StaffAbsent {
				absent[rec.Driver.ID] = true
			}
			for _, a := range rec.Auxiliaries {
				if a != nil && a.Status == domain.StaffAbsent {
					absent[a.ID] = true
				}
			}

			if rec.ReplacementDriver != nil {
				r.ReplacementsInUse++
			}
			for _, a := range rec.ReplacementAuxiliaries {
				if a != nil {
					r.ReplacementsInUse++
				}
			}
		}

		for _, t := range transfers {
			if t.Shift != shift {
				continue
			}
			for _, u := range t.Units {
				for _, trip := range u.Trips {
					r.TransferTonnage += trip.Tonnage
				}
			}
		}

		r.Absences = len(absent)
		reports = append(reports, r)
	}

	return reports
}

// SummarizeDay 先把 DTO 形式的数据按名册还原，再进行汇总
func SummarizeDay(day *domain.DayData, staff []domain.StaffMember) []domain.ShiftReport {
	if day == nil {
		day = &domain.DayData{}
	}

	var r dto.Resolver
	return Summarize(r.RoutesFromDTO(day.Routes, staff), r.TransfersFromDTO(day.Transfers, staff), day.Managers)
}
