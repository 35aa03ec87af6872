// Package sheets 负责表格文件：导出每日报表（XLSX），从 XLSX 或 CSV 导入人员名册
package sheets

import (
	"fmt"
	"io"
	"slices"
	"strings"

	"github.com/rsu-logistica/shift-board/backend/internal/domain"
	"github.com/xuri/excelize/v2"
)

var routeHeader = []string{"#", "ZONA", "CATEGORÍA", "INTERNO", "DOMINIO", "CHOFER", "AUXILIARES", "REEMPLAZOS", "ESTADO", "TONELADAS", "SALIDA", "LLEGADA", "REPORTE"}

func staffName(s *domain.StaffMember) string {
	if s == nil {
		return ""
	}
	if s.Status == domain.StaffAbsent {
		return s.Name + " (AUSENTE)"
	}
	return s.Name
}

func joinStaff(members ...*domain.StaffMember) string {
	names := make([]string, 0, len(members))
	for _, m := range members {
		if m != nil {
			names = append(names, staffName(m))
		}
	}
	return strings.Join(names, ", ")
}

func cell(col, row int) string {
	name, _ := excelize.CoordinatesToCellName(col, row)
	return name
}

// WriteDayReport 写出每日报表，每个班次一个工作表：线路明细在上，班次汇总在下
func WriteDayReport(w io.Writer, date string, routes []domain.RouteRecord, reports []domain.ShiftReport) error {
	f := excelize.NewFile()
	defer f.Close()

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 11, Color: "#FFFFFF"},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"#2F7D32"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})
	if err != nil {
		return fmt.Errorf("无法创建表头样式: %w", err)
	}

	for i, shift := range domain.Shifts {
		sheet := string(shift)
		if i == 0 {
			if err := f.SetSheetName("Sheet1", sheet); err != nil {
				return err
			}
		} else if _, err := f.NewSheet(sheet); err != nil {
			return err
		}

		_ = f.SetCellValue(sheet, "A1", fmt.Sprintf("RSU %s - TURNO %s", date, shift))
		_ = f.MergeCell(sheet, "A1", cell(len(routeHeader), 1))
		_ = f.SetCellStyle(sheet, "A1", "A1", headerStyle)

		for c, h := range routeHeader {
			_ = f.SetCellValue(sheet, cell(c+1, 3), h)
		}
		_ = f.SetCellStyle(sheet, cell(1, 3), cell(len(routeHeader), 3), headerStyle)
		_ = f.SetColWidth(sheet, "B", "B", 20)
		_ = f.SetColWidth(sheet, "F", "H", 32)
		_ = f.SetColWidth(sheet, "M", "M", 40)

		shiftRoutes := make([]domain.RouteRecord, 0)
		for _, r := range routes {
			if r.Shift == shift {
				shiftRoutes = append(shiftRoutes, r)
			}
		}
		slices.SortStableFunc(shiftRoutes, func(a, b domain.RouteRecord) int { return a.Order - b.Order })

		row := 4
		for n, r := range shiftRoutes {
			driver := staffName(r.Driver)
			if r.ReplacementDriver != nil {
				driver += " / " + staffName(r.ReplacementDriver)
			}
			values := []any{
				n + 1,
				r.Zone,
				string(r.Category),
				r.InternalID,
				r.Domain,
				driver,
				joinStaff(r.Auxiliaries[:]...),
				joinStaff(r.ReplacementAuxiliaries[:]...),
				string(r.ZoneStatus),
				r.Tonnage,
				r.DepartureTime,
				r.ArrivalTime,
				r.SupervisionReport,
			}
			if err := f.SetSheetRow(sheet, cell(1, row), &values); err != nil {
				return fmt.Errorf("无法写入线路 %s: %w", r.ID, err)
			}
			row++
		}

		for _, rep := range reports {
			if rep.Shift != shift {
				continue
			}
			row++
			summary := [][]any{
				{"SUPERVISOR", rep.Supervisor},
				{"SUBSUPERVISOR", rep.SubSupervisor},
				{"RUTAS", rep.Routes},
				{"COMPLETAS", rep.Complete},
				{"INCOMPLETAS", rep.Incomplete},
				{"PENDIENTES", rep.Pending},
				{"TONELADAS RUTAS", rep.RouteTonnage},
				{"TONELADAS TRANSFERENCIA", rep.TransferTonnage},
				{"AUSENTES", rep.Absences},
				{"REEMPLAZOS", rep.ReplacementsInUse},
			}
			for _, s := range summary {
				if err := f.SetSheetRow(sheet, cell(2, row), &s); err != nil {
					return err
				}
				row++
			}
		}
	}

	f.SetActiveSheet(0)
	if _, err := f.WriteTo(w); err != nil {
		return fmt.Errorf("无法写出报表: %w", err)
	}
	return nil
}
