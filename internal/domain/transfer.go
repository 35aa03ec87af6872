package domain

const (
	TransferUnitCount = 3
	TransferTripCount = 3
)

type TransferTrip struct {
	Time    string  `json:"time"`
	Tonnage float64 `json:"tonnage"`
}

// TransferUnit 是转运站的一台车组，车次固定为 3 个
type TransferUnit struct {
	Driver  *StaffMember                    `json:"driver"`
	Domains [2]string                       `json:"domains"`
	Trips   [TransferTripCount]TransferTrip `json:"trips"`
}

// TransferRecord 每个班次一条，车组数量固定为 3 个
type TransferRecord struct {
	ID                  string                          `json:"id" validate:"required"`
	Shift               Shift                           `json:"shift"`
	Units               [TransferUnitCount]TransferUnit `json:"units"`
	Maquinista          *StaffMember                    `json:"maquinista"`
	TolvaAuxiliaries    [3]*StaffMember                 `json:"tolvaAuxiliaries"`
	TransferAuxiliaries [2]*StaffMember                 `json:"transferAuxiliaries"`
	Encargado           *StaffMember                    `json:"encargado"`
	Balanceros          [2]*StaffMember                 `json:"balanceros"`
	Lonero              *StaffMember                    `json:"lonero"`
	LoneroBackup        *StaffMember                    `json:"loneroBackup"`
}

func TransferID(shift Shift) string {
	return "transfer-" + string(shift)
}

// NewTransferRecord 生成某个班次的默认转运记录
func NewTransferRecord(shift Shift) TransferRecord {
	return TransferRecord{
		ID:    TransferID(shift),
		Shift: shift,
	}
}

func (t *TransferRecord) StaffIDs() []string {
	ids := make([]string, 0)
	for _, s := range t.slots() {
		if *s != nil {
			ids = append(ids, (*s).ID)
		}
	}
	return ids
}

func (t *TransferRecord) ReplaceStaff(member StaffMember) int {
	n := 0
	for _, s := range t.slots() {
		if *s != nil && (*s).ID == member.ID {
			*s = member.Clone()
			n++
		}
	}
	return n
}

func (t *TransferRecord) slots() []**StaffMember {
	slots := []**StaffMember{&t.Maquinista, &t.Encargado, &t.Lonero, &t.LoneroBackup}
	for i := range t.Units {
		slots = append(slots, &t.Units[i].Driver)
	}
	for i := range t.TolvaAuxiliaries {
		slots = append(slots, &t.TolvaAuxiliaries[i])
	}
	for i := range t.TransferAuxiliaries {
		slots = append(slots, &t.TransferAuxiliaries[i])
	}
	for i := range t.Balanceros {
		slots = append(slots, &t.Balanceros[i])
	}
	return slots
}
