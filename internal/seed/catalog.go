package seed

import (
	_ "embed"
	"fmt"

	"github.com/rsu-logistica/shift-board/backend/internal/domain"
	"github.com/rsu-logistica/shift-board/backend/internal/dto"
	"gopkg.in/yaml.v3"
)

//go:embed data/routes.yaml
var defaultCatalog []byte

type catalogFile struct {
	Shifts []struct {
		Shift  domain.Shift             `yaml:"shift"`
		Routes []domain.RouteDefinition `yaml:"routes"`
	} `yaml:"shifts"`
	ExtraStaff []struct {
		ID     string             `yaml:"id"`
		Name   string             `yaml:"name"`
		Role   domain.StaffRole   `yaml:"role"`
		Status domain.StaffStatus `yaml:"status"`
	} `yaml:"extraStaff"`
}

// Catalog 是静态的线路和额外人员定义
type Catalog struct {
	Routes     []domain.RouteDefinition
	ExtraStaff []domain.StaffMember
}

// LoadCatalog 读取内置的线路定义
func LoadCatalog() (*Catalog, error) {
	return ParseCatalog(defaultCatalog)
}

func ParseCatalog(data []byte) (*Catalog, error) {
	var f catalogFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("无法解析线路定义: %w", err)
	}

	c := &Catalog{
		Routes:     make([]domain.RouteDefinition, 0),
		ExtraStaff: make([]domain.StaffMember, 0, len(f.ExtraStaff)),
	}
	seen := make(map[string]bool)

	for _, s := range f.Shifts {
		if !s.Shift.Valid() {
			return nil, fmt.Errorf("未知的班次 %q", s.Shift)
		}
		for i, def := range s.Routes {
			if def.ID == "" {
				return nil, fmt.Errorf("班次 %s 的第 %d 条线路缺少 id", s.Shift, i+1)
			}
			if seen[def.ID] {
				return nil, fmt.Errorf("线路 id %q 重复", def.ID)
			}
			seen[def.ID] = true

			def.Shift = s.Shift
			def.Order = i
			c.Routes = append(c.Routes, def)
		}
	}

	for _, e := range f.ExtraStaff {
		if seen[e.ID] {
			return nil, fmt.Errorf("人员 id %q 重复", e.ID)
		}
		seen[e.ID] = true

		status := e.Status
		if status == "" {
			status = domain.StaffReserve
		}
		c.ExtraStaff = append(c.ExtraStaff, domain.StaffMember{
			ID:     e.ID,
			Name:   e.Name,
			Role:   e.Role,
			Status: status,
		})
	}

	return c, nil
}

// MasterTemplate 生成主模板：每条线路一条默认记录，每个班次一条转运记录和一份班次信息
func (c *Catalog) MasterTemplate() *domain.DayData {
	day := &domain.DayData{
		Routes:    make([]domain.RouteRecordDTO, 0, len(c.Routes)),
		Transfers: make([]domain.TransferRecordDTO, 0, len(domain.Shifts)),
		Managers:  make([]domain.ShiftMetadata, 0, len(domain.Shifts)),
	}

	for _, def := range c.Routes {
		day.Routes = append(day.Routes, dto.RouteToDTO(domain.NewRouteRecord(def)))
	}
	for _, shift := range domain.Shifts {
		day.Transfers = append(day.Transfers, dto.TransferToDTO(domain.NewTransferRecord(shift)))
		day.Managers = append(day.Managers, domain.NewShiftMetadata(shift))
	}

	return day
}

// BaselineStaff 返回额外人员基线的拷贝
func (c *Catalog) BaselineStaff() []domain.StaffMember {
	return append([]domain.StaffMember{}, c.ExtraStaff...)
}
