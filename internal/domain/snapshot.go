package domain

import "time"

// Snapshot 是手动导出/导入使用的完整内存状态，人员以嵌入形式保存
type Snapshot struct {
	Date       string           `json:"date" validate:"required,datetime=2006-01-02"`
	ExportedAt time.Time        `json:"exportedAt"`
	Records    []RouteRecord    `json:"records" validate:"dive"`
	Transfers  []TransferRecord `json:"transfers" validate:"dive"`
	Staff      []StaffMember    `json:"staff" validate:"dive"`
	Managers   []ShiftMetadata  `json:"managers" validate:"dive"`
}
