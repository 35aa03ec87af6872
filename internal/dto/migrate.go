package dto

import "github.com/rsu-logistica/shift-board/backend/internal/domain"

// MigrateLegacyRefs 把只保存了姓名的旧引用一次性改写成人员 ID，返回改写的数量。
// 改写后的数据可以用 Resolver{Strict: true} 读取。
func MigrateLegacyRefs(day *domain.DayData, staff []domain.StaffMember) int {
	if day == nil {
		return 0
	}

	strict := Resolver{Strict: true}
	lax := Resolver{}
	n := 0

	fix := func(p **string) {
		if *p == nil {
			return
		}
		if strict.Resolve(**p, staff) != nil {
			return
		}
		if m := lax.Resolve(**p, staff); m != nil {
			id := m.ID
			*p = &id
			n++
		}
	}

	for i := range day.Routes {
		for _, p := range routeRefs(&day.Routes[i]) {
			fix(p)
		}
	}
	for i := range day.Transfers {
		for _, p := range transferRefs(&day.Transfers[i]) {
			fix(p)
		}
	}

	return n
}

func routeRefs(d *domain.RouteRecordDTO) []**string {
	refs := []**string{&d.Driver, &d.ReplacementDriver}
	for i := range d.Auxiliaries {
		refs = append(refs, &d.Auxiliaries[i])
	}
	for i := range d.ReplacementAuxiliaries {
		refs = append(refs, &d.ReplacementAuxiliaries[i])
	}
	return refs
}

func transferRefs(d *domain.TransferRecordDTO) []**string {
	refs := []**string{&d.Maquinista, &d.Encargado, &d.Lonero, &d.LoneroBackup}
	for i := range d.Units {
		refs = append(refs, &d.Units[i].Driver)
	}
	for i := range d.TolvaAuxiliaries {
		refs = append(refs, &d.TolvaAuxiliaries[i])
	}
	for i := range d.TransferAuxiliaries {
		refs = append(refs, &d.TransferAuxiliaries[i])
	}
	for i := range d.Balanceros {
		refs = append(refs, &d.Balanceros[i])
	}
	return refs
}
