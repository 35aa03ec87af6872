// Package scheduler 用遗传算法为一个班次的空槽位挑选人员
package scheduler

import (
	"fmt"
	"math"
	"math/rand"
	"sort"
	"strings"

	"github.com/rsu-logistica/shift-board/backend/internal/domain"
)

type Scheduler struct {
	parameters *Parameters
	shift      domain.Shift
	routes     []domain.RouteRecord
	staff      map[string]*domain.StaffMember
	drivers    []string                       // 可以当司机的候选人 ID
	assistants []string                       // 可以当辅助员的候选人 ID
}

// New 只会为空槽位安排人员，occupied 中的人员（已经在当天的其它位置上）不会被选中
func New(parameters *Parameters, shift domain.Shift, routes []domain.RouteRecord, staff []domain.StaffMember, occupied map[string]bool) (*Scheduler, error) {
	if parameters == nil {
		parameters = DefaultParameters()
	}
	if parameters.PopulationSize <= 0 || parameters.EliteCount < 0 || parameters.EliteCount > parameters.PopulationSize {
		return nil, fmt.Errorf("非法的算法参数: 种群大小 %d, 精英数量 %d", parameters.PopulationSize, parameters.EliteCount)
	}
	if !shift.Valid() {
		return nil, fmt.Errorf("未知的班次 %q", shift)
	}

	s := &Scheduler{
		parameters: parameters,
		shift:      shift,
		routes:     make([]domain.RouteRecord, 0),
		staff:      make(map[string]*domain.StaffMember),
		drivers:    make([]string, 0),
		assistants: make([]string, 0),
	}

	for _, r := range routes {
		if r.Shift == shift {
			s.routes = append(s.routes, r)
		}
	}

	for i := range staff {
		m := &staff[i]
		if occupied[m.ID] || !isAvailable(m) {
			continue
		}
		if _, exists := s.staff[m.ID]; exists {
			continue
		}
		s.staff[m.ID] = m

		if canDrive(m) {
			s.drivers = append(s.drivers, m.ID)
		}
		if canAssist(m) {
			s.assistants = append(s.assistants, m.ID)
		}
	}

	return s, nil
}

// freeAuxSlots 返回这条线路上可以安排辅助员的空槽位，
// 在岗的正式辅助员和已安排的替补加起来不能超过 4 个
func freeAuxSlots(r *domain.RouteRecord) []int {
	used := 0
	for _, a := range r.Auxiliaries {
		if a.IsActive() {
			used++
		}
	}
	for _, a := range r.ReplacementAuxiliaries {
		if a != nil {
			used++
		}
	}

	free := make([]int, 0)
	for i, a := range r.Auxiliaries {
		if len(free) >= domain.AuxiliarySlots-used {
			break
		}
		if a == nil {
			free = append(free, i)
		}
	}
	return free
}

func (s *Scheduler) Schedule() ([]Assignment, error) {
	template := s.emptyChromosome()
	if len(template.genes) == 0 {
		return []Assignment{}, nil
	}

	// 生成初始种群
	pop := make([]*Chromosome, s.parameters.PopulationSize)
	for i := range pop {
		pop[i] = s.randomInitChromosome(template)
		s.calcFitness(pop[i])
	}

	// 迭代
	bestChromosomeEver := &Chromosome{
		genes:   nil,
		fitness: -math.MaxFloat64,
	}

	for gen := 0; gen < s.parameters.MaxGenerations; gen++ {
		// 找到本代最佳样本
		sort.Slice(pop, func(i, j int) bool {
			return pop[i].fitness > pop[j].fitness
		})
		if pop[0].fitness > bestChromosomeEver.fitness {
			// 深拷贝，防止后续繁殖时修改到最佳样本
			bestChromosomeEver = cloneChromosome(pop[0])
		}

		// 繁殖，保留精英
		newPop := make([]*Chromosome, 0, s.parameters.PopulationSize)
		for i := 0; i < s.parameters.EliteCount; i++ {
			newPop = append(newPop, cloneChromosome(pop[i]))
		}

		// 在剩余的染色体中进行交叉和变异
		for len(newPop) < s.parameters.PopulationSize {
			p1 := cloneChromosome(s.selectByRoulette(pop))
			p2 := cloneChromosome(s.selectByRoulette(pop))

			if rand.Float64() < s.parameters.CrossoverRate {
				s.singlePointCrossover(p1, p2)
			}

			s.mutate(p1)
			s.mutate(p2)

			newPop = append(newPop, p1)
			if len(newPop) < s.parameters.PopulationSize {
				newPop = append(newPop, p2)
			}
		}

		for i := range pop {
			pop[i] = newPop[i]
			s.calcFitness(pop[i])
		}
	}

	for _, ch := range pop {
		if ch.fitness > bestChromosomeEver.fitness {
			bestChromosomeEver = ch
		}
	}

	// 交叉会产生重复的人员，去重后再用剩余的候选人补齐空位
	s.repair(bestChromosomeEver)

	result := make([]Assignment, 0)
	for _, g := range bestChromosomeEver.genes {
		if g.driverID != nil {
			result = append(result, Assignment{RouteID: g.routeID, Driver: true, StaffID: *g.driverID})
		}
		for i, id := range g.auxIDs {
			if id != "" {
				result = append(result, Assignment{RouteID: g.routeID, AuxIndex: g.auxSlots[i], StaffID: id})
			}
		}
	}

	// 再检查一遍同一人员没有被安排两次
	seen := make(map[string]bool, len(result))
	for _, a := range result {
		if seen[a.StaffID] {
			return nil, fmt.Errorf("人员 %s 被重复安排", a.StaffID)
		}
		seen[a.StaffID] = true
	}

	return result, nil
}

// repair 只保留每个人员第一次出现的位置
func (s *Scheduler) repair(ch *Chromosome) {
	used := make(map[string]bool)
	for _, g := range ch.genes {
		if g.driverID != nil {
			if used[*g.driverID] {
				g.driverID = nil
			} else {
				used[*g.driverID] = true
			}
		}
		for i, id := range g.auxIDs {
			if id == "" {
				continue
			}
			if used[id] {
				g.auxIDs[i] = ""
			} else {
				used[id] = true
			}
		}
	}

	for _, g := range ch.genes {
		if g.hasDriver && g.driverID == nil {
			if id, ok := s.bestUnused(s.drivers, used, g.zone); ok {
				g.driverID = &id
				used[id] = true
			}
		}
		for i := range g.auxIDs {
			if g.auxIDs[i] != "" {
				continue
			}
			if id, ok := s.bestUnused(s.assistants, used, g.zone); ok {
				g.auxIDs[i] = id
				used[id] = true
			}
		}
	}
}

func (s *Scheduler) bestUnused(pool []string, used map[string]bool, zone string) (string, bool) {
	best, bestScore := "", -1.0
	for _, id := range pool {
		if used[id] {
			continue
		}
		if score := s.score(id, zone); score > bestScore {
			best, bestScore = id, score
		}
	}
	return best, best != ""
}

// score 是一个人员被安排到某个区域时的得分
func (s *Scheduler) score(id string, zone string) float64 {
	m := s.staff[id]
	score := 1.0
	if m.AssignedZone != "" && strings.EqualFold(m.AssignedZone, zone) {
		score += s.parameters.ZoneWeight
	}
	if m.PreferredShift == s.shift {
		score += s.parameters.ShiftWeight
	}
	return score
}
