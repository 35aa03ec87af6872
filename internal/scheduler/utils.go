package scheduler

import "github.com/rsu-logistica/shift-board/backend/internal/domain"

func isAvailable(s *domain.StaffMember) bool {
	return s.Status == domain.StaffPresent || s.Status == domain.StaffReserve
}

func canDrive(s *domain.StaffMember) bool {
	return s.Role == domain.RoleDriver
}

// 没有登记角色的人员也可以当辅助员
func canAssist(s *domain.StaffMember) bool {
	return s.Role == domain.RoleAuxiliary || s.Role == ""
}

func clonePtr(p *string) *string {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}

func cloneGene(g *Gene) *Gene {
	c := *g
	c.driverID = clonePtr(g.driverID)
	c.auxIDs = append([]string(nil), g.auxIDs...)
	return &c
}

func cloneChromosome(ch *Chromosome) *Chromosome {
	genes := make([]*Gene, len(ch.genes))
	for i, g := range ch.genes {
		genes[i] = cloneGene(g)
	}
	return &Chromosome{genes: genes, fitness: ch.fitness}
}
