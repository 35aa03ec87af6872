package sheets

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/rsu-logistica/shift-board/backend/internal/domain"
	"github.com/xuri/excelize/v2"
)

const maxImportRows = 2000

var (
	ErrImportNoData      = errors.New("表格没有数据行（第一行为表头）")
	ErrImportTooManyRows = fmt.Errorf("数据行数超过上限 %d 行", maxImportRows)
	ErrImportBadHeader   = errors.New("表头缺少必要列（LEGAJO/NOMBRE）")
	ErrUnknownFormat     = errors.New("只支持 .xlsx 和 .csv 文件")
)

// ReadStaffFile 根据扩展名选择 XLSX 或 CSV 解析
func ReadStaffFile(path string) ([]domain.StaffMember, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	switch strings.ToLower(filepath.Ext(path)) {
	case ".xlsx":
		return ReadStaffXLSX(file)
	case ".csv":
		return ReadStaffCSV(file)
	}
	return nil, ErrUnknownFormat
}

// ReadStaffXLSX 读取第一个工作表
func ReadStaffXLSX(r io.Reader) ([]domain.StaffMember, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("无法解析 Excel 文件: %w", err)
	}
	defer f.Close()

	rows, err := f.GetRows(f.GetSheetName(0))
	if err != nil {
		return nil, fmt.Errorf("读取工作表失败: %w", err)
	}
	return parseStaffRows(rows)
}

// ReadStaffCSV 接受逗号或分号分隔的文件
func ReadStaffCSV(r io.Reader) ([]domain.StaffMember, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}

	reader := csv.NewReader(bytes.NewReader(data))
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true
	// 本地化的 Excel 导出 CSV 时常用分号
	if first, _, _ := bytes.Cut(data, []byte("\n")); bytes.Count(first, []byte(";")) > bytes.Count(first, []byte(",")) {
		reader.Comma = ';'
	}

	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("无法解析 CSV 文件: %w", err)
	}
	return parseStaffRows(rows)
}

type column int

const (
	colID column = iota
	colName
	colStatus
	colRole
	colGender
	colShift
	colZone
	colCount
)

// parseHeaderIndex 支持西班牙语和英语列名，列的顺序不限
func parseHeaderIndex(header []string) [colCount]int {
	idx := [colCount]int{-1, -1, -1, -1, -1, -1, -1}
	for i, h := range header {
		switch strings.ToLower(strings.TrimSpace(strings.TrimPrefix(h, "\ufeff"))) {
		case "legajo", "id":
			idx[colID] = i
		case "nombre", "name", "apellido y nombre":
			idx[colName] = i
		case "estado", "status":
			idx[colStatus] = i
		case "rol", "role", "puesto":
			idx[colRole] = i
		case "genero", "género", "gender":
			idx[colGender] = i
		case "turno", "shift":
			idx[colShift] = i
		case "zona", "zone":
			idx[colZone] = i
		}
	}
	return idx
}

func parseStatus(s string) domain.StaffStatus {
	switch strings.ToUpper(s) {
	case "ABSENT", "AUSENTE":
		return domain.StaffAbsent
	case "RESERVA", "RESERVE":
		return domain.StaffReserve
	}
	return domain.StaffPresent
}

func parseStaffRows(rows [][]string) ([]domain.StaffMember, error) {
	if len(rows) < 2 {
		return nil, ErrImportNoData
	}

	idx := parseHeaderIndex(rows[0])
	if idx[colID] < 0 || idx[colName] < 0 {
		return nil, ErrImportBadHeader
	}

	get := func(row []string, c column) string {
		if i := idx[c]; i >= 0 && i < len(row) {
			return strings.TrimSpace(row[i])
		}
		return ""
	}

	staff := make([]domain.StaffMember, 0, len(rows)-1)
	seen := make(map[string]int)
	for n, row := range rows[1:] {
		id, name := get(row, colID), get(row, colName)
		if id == "" && name == "" {
			continue
		}
		if id == "" || name == "" {
			return nil, fmt.Errorf("第 %d 行缺少 LEGAJO 或 NOMBRE", n+2)
		}
		if prev, ok := seen[id]; ok {
			return nil, fmt.Errorf("第 %d 行的 LEGAJO %s 与第 %d 行重复", n+2, id, prev)
		}
		seen[id] = n + 2

		staff = append(staff, domain.StaffMember{
			ID:             id,
			Name:           strings.ToUpper(name),
			Status:         parseStatus(get(row, colStatus)),
			Role:           domain.StaffRole(strings.ToUpper(get(row, colRole))),
			Gender:         get(row, colGender),
			PreferredShift: domain.Shift(strings.ToUpper(get(row, colShift))),
			AssignedZone:   get(row, colZone),
		})
	}

	if len(staff) == 0 {
		return nil, ErrImportNoData
	}
	if len(staff) > maxImportRows {
		return nil, ErrImportTooManyRows
	}

	return staff, nil
}
