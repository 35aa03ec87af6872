package domain

type RouteCategory string

const (
	CategoryCollection  RouteCategory = "RECOLECCIÓN"
	CategorySideSweep   RouteCategory = "REPASO_LATERAL"
	CategoryEnvironment RouteCategory = "AMBIENTE"
	CategorySideLoading RouteCategory = "CARGA LATERAL"
)

type ZoneStatus string

const (
	ZonePending    ZoneStatus = "PENDIENTE"
	ZoneComplete   ZoneStatus = "COMPLETA"
	ZoneIncomplete ZoneStatus = "INCOMPLETA"
)

const (
	AuxiliarySlots            = 4
	ReplacementAuxiliarySlots = 2
)

// RouteRecord 是某个班次中的一条线路，人员字段嵌入完整的人员信息
type RouteRecord struct {
	ID                     string                                  `json:"id" validate:"required"`
	Zone                   string                                  `json:"zone"`
	Category               RouteCategory                           `json:"category"`
	InternalID             string                                  `json:"internalId"`
	Domain                 string                                  `json:"domain"`
	Shift                  Shift                                   `json:"shift"`
	Driver                 *StaffMember                            `json:"driver"`
	Auxiliaries            [AuxiliarySlots]*StaffMember            `json:"auxiliaries"`
	ReplacementDriver      *StaffMember                            `json:"replacementDriver"`
	ReplacementAuxiliaries [ReplacementAuxiliarySlots]*StaffMember `json:"replacementAuxiliaries"`
	ZoneStatus             ZoneStatus                              `json:"zoneStatus"`
	Tonnage                float64                                 `json:"tonnage"`
	DepartureTime          string                                  `json:"departureTime"`
	ArrivalTime            string                                  `json:"arrivalTime"`
	Order                  int                                     `json:"order"`
	SupervisionReport      string                                  `json:"supervisionReport"`
}

// RouteDefinition 是静态线路定义，主模板由它生成
type RouteDefinition struct {
	ID         string        `json:"id" yaml:"id"`
	Zone       string        `json:"zone" yaml:"zone"`
	Category   RouteCategory `json:"category" yaml:"category"`
	InternalID string        `json:"internalId" yaml:"internalId"`
	Domain     string        `json:"domain" yaml:"domain"`
	Shift      Shift         `json:"shift" yaml:"shift"`
	Order      int           `json:"order" yaml:"-"`
}

// NewRouteRecord 根据线路定义生成默认值的线路记录
func NewRouteRecord(def RouteDefinition) RouteRecord {
	category := def.Category
	if category == "" {
		category = CategoryCollection
	}

	return RouteRecord{
		ID:         def.ID,
		Zone:       def.Zone,
		Category:   category,
		InternalID: def.InternalID,
		Domain:     def.Domain,
		Shift:      def.Shift,
		ZoneStatus: ZonePending,
		Order:      def.Order,
	}
}

// StaffIDs 返回记录中所有非空人员槽位的 ID
func (r *RouteRecord) StaffIDs() []string {
	ids := make([]string, 0, 1+AuxiliarySlots+1+ReplacementAuxiliarySlots)
	for _, s := range r.slots() {
		if *s != nil {
			ids = append(ids, (*s).ID)
		}
	}
	return ids
}

// ReplaceStaff 用新的人员快照替换所有嵌入了该 ID 的槽位，返回被替换的数量
func (r *RouteRecord) ReplaceStaff(member StaffMember) int {
	n := 0
	for _, s := range r.slots() {
		if *s != nil && (*s).ID == member.ID {
			*s = member.Clone()
			n++
		}
	}
	return n
}

func (r *RouteRecord) slots() []**StaffMember {
	slots := []**StaffMember{&r.Driver, &r.ReplacementDriver}
	for i := range r.Auxiliaries {
		slots = append(slots, &r.Auxiliaries[i])
	}
	for i := range r.ReplacementAuxiliaries {
		slots = append(slots, &r.ReplacementAuxiliaries[i])
	}
	return slots
}
