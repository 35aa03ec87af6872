// Package store 实现本地优先的持久化：本地 SQLite 存储、远端 HTTP 镜像以及两者组合的混合存储
package store

import (
	"context"

	"github.com/rsu-logistica/shift-board/backend/internal/domain"
)

// Store 覆盖三类数据：人员名册、某一天的数据、主模板
type Store interface {
	LoadStaff(ctx context.Context) ([]domain.StaffMember, error)
	SaveStaff(ctx context.Context, staff []domain.StaffMember) error
	LoadDay(ctx context.Context, date string) (*domain.DayData, error)
	SaveDay(ctx context.Context, date string, day *domain.DayData) error
	LoadMaster(ctx context.Context) (*domain.DayData, error)
	SaveMaster(ctx context.Context, master *domain.DayData) error
}

// 逻辑键，实际存储时会加上命名空间前缀
const (
	keyStaff  = "staff"
	keyMaster = "master-template"
)

func dayKey(date string) string {
	return "day:" + date
}

// noopStore 在没有配置远端时代替 RemoteStore
type noopStore struct{}

func (noopStore) LoadStaff(context.Context) ([]domain.StaffMember, error) { return nil, nil }
func (noopStore) SaveStaff(context.Context, []domain.StaffMember) error { return nil }
func (noopStore) LoadDay(context.Context, string) (*domain.DayData, error) { return nil, nil }
func (noopStore) SaveDay(context.Context, string, *domain.DayData) error { return nil }
func (noopStore) LoadMaster(context.Context) (*domain.DayData, error) { return nil, nil }
func (noopStore) SaveMaster(context.Context, *domain.DayData) error { return nil }
