package scheduler

import (
	"fmt"
	"testing"

	"github.com/rsu-logistica/shift-board/backend/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func member(id string, role domain.StaffRole, status domain.StaffStatus) domain.StaffMember {
	return domain.StaffMember{ID: id, Name: "N" + id, Role: role, Status: status}
}

func route(id, zone string, shift domain.Shift) domain.RouteRecord {
	return domain.NewRouteRecord(domain.RouteDefinition{ID: id, Zone: zone, Shift: shift})
}

func assertUnique(t *testing.T, result []Assignment) {
	t.Helper()
	seen := make(map[string]bool)
	for _, a := range result {
		assert.False(t, seen[a.StaffID], "staff %s assigned twice", a.StaffID)
		seen[a.StaffID] = true
	}
}

func TestScheduleFillsEmptySlots(t *testing.T) {
	routes := []domain.RouteRecord{
		route("r-1", "RN 1", domain.ShiftMorning),
		route("r-2", "RN 2", domain.ShiftMorning),
		route("t-1", "CENTRO", domain.ShiftAfternoon),
	}
	staff := []domain.StaffMember{
		member("D1", domain.RoleDriver, domain.StaffPresent),
		member("D2", domain.RoleDriver, domain.StaffReserve),
		member("D3", domain.RoleDriver, domain.StaffAbsent),
	}
	for i := 0; i < 10; i++ {
		staff = append(staff, member(fmt.Sprintf("A%d", i), domain.RoleAuxiliary, domain.StaffPresent))
	}

	s, err := New(nil, domain.ShiftMorning, routes, staff, nil)
	require.NoError(t, err)

	result, err := s.Schedule()
	require.NoError(t, err)
	assertUnique(t, result)

	drivers, aux := 0, 0
	for _, a := range result {
		assert.NotEqual(t, "t-1", a.RouteID)
		assert.NotEqual(t, "D3", a.StaffID)
		if a.Driver {
			drivers++
		} else {
			aux++
		}
	}
	assert.Equal(t, 2, drivers)
	assert.Equal(t, 8, aux)
}

func TestScheduleRespectsExistingStaff(t *testing.T) {
	absent := member("X1", domain.RoleAuxiliary, domain.StaffAbsent)
	replacement := member("X2", domain.RoleAuxiliary, domain.StaffPresent)
	driver := member("X3", domain.RoleDriver, domain.StaffAbsent)
	replacementDriver := member("X4", domain.RoleDriver, domain.StaffPresent)

	r := route("r-1", "RN 1", domain.ShiftMorning)
	r.Driver = &driver
	r.ReplacementDriver = &replacementDriver
	r.Auxiliaries[0] = &absent
	r.ReplacementAuxiliaries[0] = &replacement

	staff := []domain.StaffMember{
		member("D1", domain.RoleDriver, domain.StaffPresent),
		member("A1", domain.RoleAuxiliary, domain.StaffPresent),
		member("A2", domain.RoleAuxiliary, domain.StaffPresent),
		member("A3", domain.RoleAuxiliary, domain.StaffPresent),
		member("A4", domain.RoleAuxiliary, domain.StaffPresent),
	}

	s, err := New(nil, domain.ShiftMorning, []domain.RouteRecord{r}, staff, map[string]bool{"A4": true})
	require.NoError(t, err)

	result, err := s.Schedule()
	require.NoError(t, err)
	assertUnique(t, result)

	// 一个替补已经占用名额，只剩三个空槽位
	require.Len(t, result, 3)
	for _, a := range result {
		assert.False(t, a.Driver)
		assert.NotEqual(t, 0, a.AuxIndex)
		assert.NotEqual(t, "A4", a.StaffID)
	}
}

func TestScheduleNothingToDo(t *testing.T) {
	s, err := New(nil, domain.ShiftNight, []domain.RouteRecord{route("n-1", "RN 1", domain.ShiftNight)}, nil, nil)
	require.NoError(t, err)

	result, err := s.Schedule()
	require.NoError(t, err)
	assert.Empty(t, result)
}

func TestNewRejectsBadParameters(t *testing.T) {
	_, err := New(&Parameters{PopulationSize: 2, EliteCount: 3}, domain.ShiftMorning, nil, nil, nil)
	assert.Error(t, err)

	_, err = New(nil, domain.Shift("MADRUGADA"), nil, nil, nil)
	assert.Error(t, err)
}

func TestFitnessPrefersZoneAndShift(t *testing.T) {
	near := member("A1", domain.RoleAuxiliary, domain.StaffPresent)
	near.AssignedZone = "RN 1"
	near.PreferredShift = domain.ShiftMorning
	far := member("A2", domain.RoleAuxiliary, domain.StaffPresent)

	s, err := New(nil, domain.ShiftMorning, nil, []domain.StaffMember{near, far}, nil)
	require.NoError(t, err)

	gene := func(id string) *Chromosome {
		return &Chromosome{genes: []*Gene{{routeID: "r-1", zone: "rn 1", auxSlots: []int{0}, auxIDs: []string{id}}}}
	}
	a, b := gene("A1"), gene("A2")
	s.calcFitness(a)
	s.calcFitness(b)
	assert.Greater(t, a.fitness, b.fitness)

	dup := &Chromosome{genes: []*Gene{{routeID: "r-1", auxSlots: []int{0, 1}, auxIDs: []string{"A2", "A2"}}}}
	s.calcFitness(dup)
	assert.Less(t, dup.fitness, b.fitness)
}

func TestRepairRemovesDuplicates(t *testing.T) {
	staff := []domain.StaffMember{
		member("A1", domain.RoleAuxiliary, domain.StaffPresent),
		member("A2", domain.RoleAuxiliary, domain.StaffPresent),
	}
	s, err := New(nil, domain.ShiftMorning, nil, staff, nil)
	require.NoError(t, err)

	ch := &Chromosome{genes: []*Gene{
		{routeID: "r-1", auxSlots: []int{0}, auxIDs: []string{"A1"}},
		{routeID: "r-2", auxSlots: []int{0}, auxIDs: []string{"A1"}},
	}}
	s.repair(ch)

	assert.Equal(t, "A1", ch.genes[0].auxIDs[0])
	assert.Equal(t, "A2", ch.genes[1].auxIDs[0])
}
