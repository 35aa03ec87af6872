package domain

type StaffStatus string

const (
	StaffPresent StaffStatus = "PRESENT"
	StaffAbsent  StaffStatus = "ABSENT"
	StaffReserve StaffStatus = "RESERVA"
)

type StaffRole string

const (
	RoleDriver     StaffRole = "CHOFER"
	RoleAuxiliary  StaffRole = "AUXILIAR"
	RoleSupervisor StaffRole = "SUPERVISOR"
	RolePlant      StaffRole = "PLANTA"
)

// StaffMember 以 ID 作为唯一稳定标识，姓名匹配只用于兼容旧数据
type StaffMember struct {
	ID                  string      `json:"id" validate:"required"`
	Name                string      `json:"name" validate:"required"`
	Status              StaffStatus `json:"status" validate:"required,oneof=PRESENT ABSENT RESERVA"`
	Role                StaffRole   `json:"role,omitempty"`
	Gender              string      `json:"gender,omitempty"`
	PreferredShift      Shift       `json:"preferredShift,omitempty"`
	AssignedZone        string      `json:"assignedZone,omitempty"`
	Address             string      `json:"address,omitempty"`                                       // 缺勤原因代码
	AbsenceStartDate    string      `json:"absenceStartDate,omitempty"`
	AbsenceReturnDate   string      `json:"absenceReturnDate,omitempty"`
	IsIndefiniteAbsence bool        `json:"isIndefiniteAbsence,omitempty"`
}

// IsActive 表示该人员可以占用一个名额（在场或后备都算）
func (s *StaffMember) IsActive() bool {
	return s != nil && s.Status != StaffAbsent
}

// Clone 返回一份独立的拷贝，记录中嵌入的人员信息不能和名册共享指针
func (s *StaffMember) Clone() *StaffMember {
	if s == nil {
		return nil
	}
	c := *s
	return &c
}
