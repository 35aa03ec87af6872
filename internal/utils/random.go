package utils

import (
	"fmt"
	"math/rand"

	"github.com/rsu-logistica/shift-board/backend/internal/domain"
)

var commonSurnames = []string{
	"GONZALEZ", "RODRIGUEZ", "GOMEZ", "FERNANDEZ", "LOPEZ", "DIAZ", "MARTINEZ", "PEREZ", "GARCIA", "SANCHEZ",
	"ROMERO", "SOSA", "ALVAREZ", "TORRES", "RUIZ", "RAMIREZ", "FLORES", "ACOSTA", "BENITEZ", "MEDINA",
}
var commonGivenNames = []string{
	"JUAN", "CARLOS", "JOSE", "LUIS", "JORGE", "MIGUEL", "DANIEL", "OSCAR", "RAUL", "WALTER",
	"MARIA", "ANA", "SILVIA", "LAURA", "CLAUDIA", "NORMA", "SERGIO", "RAMON", "HUGO", "PABLO",
}

func GenerateRandomName() string {
	return commonSurnames[rand.Intn(len(commonSurnames))] + " " + commonGivenNames[rand.Intn(len(commonGivenNames))]
}

var roles = []domain.StaffRole{
	domain.RoleDriver,
	domain.RoleAuxiliary,
	domain.RoleAuxiliary,
	domain.RoleAuxiliary,
	domain.RolePlant,
}

func GenerateRandomRole() domain.StaffRole {
	return roles[rand.Intn(len(roles))]
}

var absenceReasons = []string{"ART", "VAC", "LIC", "ENF"}

// GenerateRandomStaff 生成一名随机人员，大约十分之一处于缺勤状态
func GenerateRandomStaff(legajo int) domain.StaffMember {
	s := domain.StaffMember{
		ID:             fmt.Sprintf("%d", legajo),
		Name:           GenerateRandomName(),
		Status:         domain.StaffPresent,
		Role:           GenerateRandomRole(),
		PreferredShift: domain.Shifts[rand.Intn(len(domain.Shifts))],
	}

	if rand.Intn(10) == 0 {
		s.Status = domain.StaffAbsent
		s.Address = absenceReasons[rand.Intn(len(absenceReasons))]
		s.IsIndefiniteAbsence = rand.Intn(2) == 0
	}

	return s
}

func GenerateRandomRoster(firstLegajo int, n int) []domain.StaffMember {
	staff := make([]domain.StaffMember, 0, n)
	for i := 0; i < n; i++ {
		staff = append(staff, GenerateRandomStaff(firstLegajo+i))
	}
	return staff
}
