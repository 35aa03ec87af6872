package scheduler

// Gene: 表示对某条线路空槽位的排班决策
type Gene struct {
	routeID   string
	zone      string
	auxSlots  []int
	driverID  *string  // 为 nil 表示不需要（或无法）安排司机
	auxIDs    []string // 每一项对应 auxSlots 中的一个空槽位，空字符串表示没有安排
	hasDriver bool     // 这条线路的司机槽位是否需要安排
}

// Chromosome: 整个班次的安排
type Chromosome struct {
	genes   []*Gene
	fitness float64
}

// 遗传算法参数
type Parameters struct {
	PopulationSize   int     // 种群大小
	MaxGenerations   int     // 最大迭代次数
	CrossoverRate    float64 // 交叉概率
	MutationRate     float64 // 变异概率
	EliteCount       int     // 精英数量
	ZoneWeight       float64 // 人员固定区域与线路一致时的奖励
	ShiftWeight      float64 // 人员偏好班次与当前班次一致时的奖励
	DuplicatePenalty float64 // 同一人员被安排多次时的惩罚
}

func DefaultParameters() *Parameters {
	return &Parameters{
		PopulationSize:   40,
		MaxGenerations:   80,
		CrossoverRate:    0.8,
		MutationRate:     0.05,
		EliteCount:       2,
		ZoneWeight:       2,
		ShiftWeight:      1,
		DuplicatePenalty: 10,
	}
}

// Assignment 是一次建议的安排，AuxIndex 只在 Driver 为 false 时有效
type Assignment struct {
	RouteID  string
	Driver   bool
	AuxIndex int
	StaffID  string
}
