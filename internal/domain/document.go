package domain

import (
	"encoding/json"
	"time"
)

// 同步服务保存的文档键
const (
	DocumentStaff  = "staff"
	DocumentMaster = "master"
)

func DayDocument(date string) string {
	return "day:" + date
}

// Document 是同步服务中的一份 JSON 文档，后写入的覆盖先写入的
type Document struct {
	Key       string          `json:"key"`
	Payload   json.RawMessage `json:"payload"`
	Version   int64           `json:"version"`
	UpdatedBy string          `json:"updatedBy"`
	UpdatedAt time.Time       `json:"updatedAt"`
}

// Device 是允许访问同步服务的看板终端
type Device struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	KeyHash   string    `json:"-"`
	IsActive  bool      `json:"isActive"`
	CreatedAt time.Time `json:"createdAt"`
}
