package dto

import "github.com/rsu-logistica/shift-board/backend/internal/domain"

func ref(s *domain.StaffMember) *string {
	if s == nil {
		return nil
	}
	id := s.ID
	return &id
}

func (r Resolver) member(id *string, staff []domain.StaffMember) *domain.StaffMember {
	if id == nil {
		return nil
	}
	return r.Resolve(*id, staff)
}

func RouteToDTO(rec domain.RouteRecord) domain.RouteRecordDTO {
	d := domain.RouteRecordDTO{
		ID:                rec.ID,
		Zone:              rec.Zone,
		Category:          rec.Category,
		InternalID:        rec.InternalID,
		Domain:            rec.Domain,
		Shift:             rec.Shift,
		Driver:            ref(rec.Driver),
		ReplacementDriver: ref(rec.ReplacementDriver),
		ZoneStatus:        rec.ZoneStatus,
		Tonnage:           rec.Tonnage,
		DepartureTime:     rec.DepartureTime,
		ArrivalTime:       rec.ArrivalTime,
		Order:             rec.Order,
		SupervisionReport: rec.SupervisionReport,
	}
	for i, s := range rec.Auxiliaries {
		d.Auxiliaries[i] = ref(s)
	}
	for i, s := range rec.ReplacementAuxiliaries {
		d.ReplacementAuxiliaries[i] = ref(s)
	}
	return d
}

// RouteFromDTO 把 ID 还原成人员，名册中已不存在的 ID 直接变成 nil
func (r Resolver) RouteFromDTO(d domain.RouteRecordDTO, staff []domain.StaffMember) domain.RouteRecord {
	rec := domain.RouteRecord{
		ID:                d.ID,
		Zone:              d.Zone,
		Category:          d.Category,
		InternalID:        d.InternalID,
		Domain:            d.Domain,
		Shift:             d.Shift,
		Driver:            r.member(d.Driver, staff),
		ReplacementDriver: r.member(d.ReplacementDriver, staff),
		ZoneStatus:        d.ZoneStatus,
		Tonnage:           d.Tonnage,
		DepartureTime:     d.DepartureTime,
		ArrivalTime:       d.ArrivalTime,
		Order:             d.Order,
		SupervisionReport: d.SupervisionReport,
	}
	for i, id := range d.Auxiliaries {
		rec.Auxiliaries[i] = r.member(id, staff)
	}
	for i, id := range d.ReplacementAuxiliaries {
		rec.ReplacementAuxiliaries[i] = r.member(id, staff)
	}
	return rec
}

func UnitToDTO(u domain.TransferUnit) domain.TransferUnitDTO {
	return domain.TransferUnitDTO{
		Driver:  ref(u.Driver),
		Domains: u.Domains,
		Trips:   u.Trips,
	}
}

func (r Resolver) UnitFromDTO(d domain.TransferUnitDTO, staff []domain.StaffMember) domain.TransferUnit {
	return domain.TransferUnit{
		Driver:  r.member(d.Driver, staff),
		Domains: d.Domains,
		Trips:   d.Trips,
	}
}

func TransferToDTO(t domain.TransferRecord) domain.TransferRecordDTO {
	d := domain.TransferRecordDTO{
		ID:           t.ID,
		Shift:        t.Shift,
		Maquinista:   ref(t.Maquinista),
		Encargado:    ref(t.Encargado),
		Lonero:       ref(t.Lonero),
		LoneroBackup: ref(t.LoneroBackup),
	}
	for i, u := range t.Units {
		d.Units[i] = UnitToDTO(u)
	}
	for i, s := range t.TolvaAuxiliaries {
		d.TolvaAuxiliaries[i] = ref(s)
	}
	for i, s := range t.TransferAuxiliaries {
		d.TransferAuxiliaries[i] = ref(s)
	}
	for i, s := range t.Balanceros {
		d.Balanceros[i] = ref(s)
	}
	return d
}

func (r Resolver) TransferFromDTO(d domain.TransferRecordDTO, staff []domain.StaffMember) domain.TransferRecord {
	t := domain.TransferRecord{
		ID:           d.ID,
		Shift:        d.Shift,
		Maquinista:   r.member(d.Maquinista, staff),
		Encargado:    r.member(d.Encargado, staff),
		Lonero:       r.member(d.Lonero, staff),
		LoneroBackup: r.member(d.LoneroBackup, staff),
	}
	for i, u := range d.Units {
		t.Units[i] = r.UnitFromDTO(u, staff)
	}
	for i, id := range d.TolvaAuxiliaries {
		t.TolvaAuxiliaries[i] = r.member(id, staff)
	}
	for i, id := range d.TransferAuxiliaries {
		t.TransferAuxiliaries[i] = r.member(id, staff)
	}
	for i, id := range d.Balanceros {
		t.Balanceros[i] = r.member(id, staff)
	}
	return t
}

func RoutesToDTO(recs []domain.RouteRecord) []domain.RouteRecordDTO {
	out := make([]domain.RouteRecordDTO, 0, len(recs))
	for _, rec := range recs {
		out = append(out, RouteToDTO(rec))
	}
	return out
}

func (r Resolver) RoutesFromDTO(ds []domain.RouteRecordDTO, staff []domain.StaffMember) []domain.RouteRecord {
	out := make([]domain.RouteRecord, 0, len(ds))
	for _, d := range ds {
		out = append(out, r.RouteFromDTO(d, staff))
	}
	return out
}

func TransfersToDTO(ts []domain.TransferRecord) []domain.TransferRecordDTO {
	out := make([]domain.TransferRecordDTO, 0, len(ts))
	for _, t := range ts {
		out = append(out, TransferToDTO(t))
	}
	return out
}

func (r Resolver) TransfersFromDTO(ds []domain.TransferRecordDTO, staff []domain.StaffMember) []domain.TransferRecord {
	out := make([]domain.TransferRecord, 0, len(ds))
	for _, d := range ds {
		out = append(out, r.TransferFromDTO(d, staff))
	}
	return out
}

// 包级函数使用默认的 Resolver

func RouteFromDTO(d domain.RouteRecordDTO, staff []domain.StaffMember) domain.RouteRecord {
	return Resolver{}.RouteFromDTO(d, staff)
}

func TransferFromDTO(d domain.TransferRecordDTO, staff []domain.StaffMember) domain.TransferRecord {
	return Resolver{}.TransferFromDTO(d, staff)
}

func UnitFromDTO(d domain.TransferUnitDTO, staff []domain.StaffMember) domain.TransferUnit {
	return Resolver{}.UnitFromDTO(d, staff)
}
