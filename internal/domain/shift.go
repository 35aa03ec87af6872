package domain

type Shift string

const (
	ShiftMorning   Shift = "MAÑANA"
	ShiftAfternoon Shift = "TARDE"
	ShiftNight     Shift = "NOCHE"
)

// Shifts 按一天中的先后顺序排列
var Shifts = []Shift{ShiftMorning, ShiftAfternoon, ShiftNight}

func (s Shift) Valid() bool {
	switch s {
	case ShiftMorning, ShiftAfternoon, ShiftNight:
		return true
	}
	return false
}

type ShiftAbsence struct {
	StaffID string `json:"staffId" validate:"required"`
	Reason  string `json:"reason,omitempty"`
}

// ShiftMetadata 每个班次一份
type ShiftMetadata struct {
	Shift         Shift          `json:"shift" validate:"required,oneof=MAÑANA TARDE NOCHE"`
	Supervisor    string         `json:"supervisor"`
	SubSupervisor string         `json:"subSupervisor"`
	Absences      []ShiftAbsence `json:"absences" validate:"dive"`
}

func NewShiftMetadata(shift Shift) ShiftMetadata {
	return ShiftMetadata{
		Shift:    shift,
		Absences: make([]ShiftAbsence, 0),
	}
}
