package domain

// 以下 DTO 是持久化和网络传输时使用的形式，人员字段只保存 ID

type RouteRecordDTO struct {
	ID                     string                             `json:"id" validate:"required"`
	Zone                   string                             `json:"zone"`
	Category               RouteCategory                      `json:"category"`
	InternalID             string                             `json:"internalId"`
	Domain                 string                             `json:"domain"`
	Shift                  Shift                              `json:"shift" validate:"required,oneof=MAÑANA TARDE NOCHE"`
	Driver                 *string                            `json:"driver"`
	Auxiliaries            [AuxiliarySlots]*string            `json:"auxiliaries"`
	ReplacementDriver      *string                            `json:"replacementDriver"`
	ReplacementAuxiliaries [ReplacementAuxiliarySlots]*string `json:"replacementAuxiliaries"`
	ZoneStatus             ZoneStatus                         `json:"zoneStatus"`
	Tonnage                float64                            `json:"tonnage"`
	DepartureTime          string                             `json:"departureTime"`
	ArrivalTime            string                             `json:"arrivalTime"`
	Order                  int                                `json:"order"`
	SupervisionReport      string                             `json:"supervisionReport"`
}

type TransferUnitDTO struct {
	Driver  *string                         `json:"driver"`
	Domains [2]string                       `json:"domains"`
	Trips   [TransferTripCount]TransferTrip `json:"trips"`
}

type TransferRecordDTO struct {
	ID                  string                             `json:"id" validate:"required"`
	Shift               Shift                              `json:"shift" validate:"required,oneof=MAÑANA TARDE NOCHE"`
	Units               [TransferUnitCount]TransferUnitDTO `json:"units"`
	Maquinista          *string                            `json:"maquinista"`
	TolvaAuxiliaries    [3]*string                         `json:"tolvaAuxiliaries"`
	TransferAuxiliaries [2]*string                         `json:"transferAuxiliaries"`
	Encargado           *string                            `json:"encargado"`
	Balanceros          [2]*string                         `json:"balanceros"`
	Lonero              *string                            `json:"lonero"`
	LoneroBackup        *string                            `json:"loneroBackup"`
}

// DayData 既是某一天的覆盖数据，也是主模板（ADN）的形式
type DayData struct {
	Routes    []RouteRecordDTO    `json:"routes" validate:"dive"`
	Transfers []TransferRecordDTO `json:"transfers" validate:"dive"`
	Managers  []ShiftMetadata     `json:"managers" validate:"dive"`
}

func (d *DayData) IsEmpty() bool {
	return d == nil || (len(d.Routes) == 0 && len(d.Transfers) == 0 && len(d.Managers) == 0)
}
