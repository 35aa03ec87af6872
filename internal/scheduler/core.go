package scheduler

import (
	"math/rand"
)

// emptyChromosome 为每条有空位的线路生成一个没有安排任何人的基因
func (s *Scheduler) emptyChromosome() *Chromosome {
	genes := make([]*Gene, 0, len(s.routes))

	for i := range s.routes {
		r := &s.routes[i]

		// 已经安排了替补司机的线路不能再填正式司机
		hasDriver := r.Driver == nil && r.ReplacementDriver == nil && len(s.drivers) > 0
		auxSlots := []int{}
		if len(s.assistants) > 0 {
			auxSlots = freeAuxSlots(r)
		}
		if !hasDriver && len(auxSlots) == 0 {
			continue
		}

		genes = append(genes, &Gene{
			routeID:   r.ID,
			zone:      r.Zone,
			hasDriver: hasDriver,
			auxSlots:  auxSlots,
			auxIDs:    make([]string, len(auxSlots)),
		})
	}

	return &Chromosome{
		genes: genes,
	}
}

// randomInitChromosome 随机初始化一个染色体，同一个染色体内不会重复使用候选人
func (s *Scheduler) randomInitChromosome(template *Chromosome) *Chromosome {
	ch := cloneChromosome(template)

	drivers := append([]string(nil), s.drivers...)
	rand.Shuffle(len(drivers), func(i, j int) {
		drivers[i], drivers[j] = drivers[j], drivers[i]
	})
	assistants := append([]string(nil), s.assistants...)
	rand.Shuffle(len(assistants), func(i, j int) {
		assistants[i], assistants[j] = assistants[j], assistants[i]
	})

	// 既能开车又能当辅助员的人员只会被用一次
	used := make(map[string]bool)
	next := func(pool []string) string {
		for _, id := range pool {
			if !used[id] {
				used[id] = true
				return id
			}
		}
		return ""
	}

	for _, g := range ch.genes {
		if g.hasDriver {
			if id := next(drivers); id != "" {
				g.driverID = &id
			}
		}
		for i := range g.auxIDs {
			g.auxIDs[i] = next(assistants)
		}
	}

	return ch
}

/**
 * 计算染色体的适应度
 * fitness = sum(score) - DuplicatePenalty * duplicates
 * 其中:
 * 		1. score 为每个被安排的人员的得分（安排本身得 1 分，区域和班次一致时另有奖励）
 * 		2. duplicates 为同一人员多出来的安排次数（交叉之后可能出现）
 */
func (s *Scheduler) calcFitness(ch *Chromosome) {
	count := make(map[string]int)
	fitness := 0.0

	for _, g := range ch.genes {
		if g.driverID != nil {
			count[*g.driverID]++
			fitness += s.score(*g.driverID, g.zone)
		}
		for _, id := range g.auxIDs {
			if id == "" {
				continue
			}
			count[id]++
			fitness += s.score(id, g.zone)
		}
	}

	for _, n := range count {
		if n > 1 {
			fitness -= s.parameters.DuplicatePenalty * float64(n-1)
		}
	}

	ch.fitness = fitness
}

// 使用轮盘赌来进行选择，适应度先平移到非负数
func (s *Scheduler) selectByRoulette(pop []*Chromosome) *Chromosome {
	minFit := pop[0].fitness
	for _, ch := range pop {
		minFit = min(minFit, ch.fitness)
	}

	sumFit := 0.0
	for _, ch := range pop {
		sumFit += ch.fitness - minFit
	}
	if sumFit == 0 {
		return pop[rand.Intn(len(pop))]
	}

	pick := rand.Float64() * sumFit
	partial := 0.0
	for _, ch := range pop {
		partial += ch.fitness - minFit
		if partial >= pick {
			return ch
		}
	}

	// 理论上不会运行到这个地方
	return pop[len(pop)-1]
}

// 单点交叉
func (s *Scheduler) singlePointCrossover(ch1 *Chromosome, ch2 *Chromosome) {
	if len(ch1.genes) != len(ch2.genes) || len(ch1.genes) == 0 {
		return
	}

	// 交换两个染色体在 point 位置之后的基因
	point := rand.Intn(len(ch1.genes))
	for i := point; i < len(ch1.genes); i++ {
		ch1.genes[i], ch2.genes[i] = ch2.genes[i], ch1.genes[i]
	}
}

// 变异
// 随机换成一个当前染色体中没有用到的候选人
func (s *Scheduler) mutate(ch *Chromosome) {
	used := make(map[string]bool)
	for _, g := range ch.genes {
		if g.driverID != nil {
			used[*g.driverID] = true
		}
		for _, id := range g.auxIDs {
			used[id] = true
		}
	}

	pick := func(pool []string) string {
		candidates := make([]string, 0, len(pool))
		for _, id := range pool {
			if !used[id] {
				candidates = append(candidates, id)
			}
		}
		if len(candidates) == 0 {
			return ""
		}
		return candidates[rand.Intn(len(candidates))]
	}

	for _, g := range ch.genes {
		if g.hasDriver && rand.Float64() < s.parameters.MutationRate {
			if id := pick(s.drivers); id != "" {
				if g.driverID != nil {
					delete(used, *g.driverID)
				}
				g.driverID = &id
				used[id] = true
			}
		}

		// 每个辅助员都有一定概率被替换
		for i := range g.auxIDs {
			if rand.Float64() > s.parameters.MutationRate {
				continue
			}
			if id := pick(s.assistants); id != "" {
				delete(used, g.auxIDs[i])
				g.auxIDs[i] = id
				used[id] = true
			}
		}
	}
}
