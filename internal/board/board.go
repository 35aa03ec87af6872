// Package board 是排班看板的应用层：加载并合并数据、编辑人员和线路、保存以及快照导入导出
package board

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"

	"github.com/go-playground/validator/v10"
	"github.com/rsu-logistica/shift-board/backend/internal/domain"
	"github.com/rsu-logistica/shift-board/backend/internal/dto"
	"github.com/rsu-logistica/shift-board/backend/internal/merge"
	"github.com/rsu-logistica/shift-board/backend/internal/seed"
	"github.com/rsu-logistica/shift-board/backend/internal/store"
	"github.com/rsu-logistica/shift-board/backend/internal/utils"
	"golang.org/x/sync/errgroup"
)

var (
	ErrNotLoaded        = errors.New("尚未加载任何日期的数据")
	ErrStaffNotFound    = errors.New("人员不存在")
	ErrStaffExists      = errors.New("人员 ID 已存在")
	ErrRouteNotFound    = errors.New("线路不存在")
	ErrTransferNotFound = errors.New("转运记录不存在")
	ErrInvalidShift     = errors.New("未知的班次")
	ErrInvalidSnapshot  = errors.New("快照数据无效")
	ErrBaselineStaff    = errors.New("额外人员不能删除")
)

// Board 持有当前加载日期的内存状态，不做并发保护，只能顺序使用
type Board struct {
	store    store.Store
	catalog  *seed.Catalog
	resolver dto.Resolver
	validate *validator.Validate

	date      string
	staff     []domain.StaffMember
	routes    []domain.RouteRecord
	transfers []domain.TransferRecord
	managers  []domain.ShiftMetadata
}

type Option func(*Board)

// WithStrictIdentity 只按 ID 解析人员引用，需要先执行 MigrateLegacyRefs
func WithStrictIdentity(strict bool) Option {
	return func(b *Board) {
		b.resolver.Strict = strict
	}
}

func New(st store.Store, catalog *seed.Catalog, opts ...Option) *Board {
	b := &Board{
		store:    st,
		catalog:  catalog,
		validate: validator.New(validator.WithRequiredStructEnabled()),
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Load 加载某一天的数据：生成的主模板 <- 持久化的主模板 <- 当日覆盖数据；
// 人员名册为额外人员基线 <- 持久化名册
func (b *Board) Load(ctx context.Context, date string) error {
	if err := utils.ValidateDate(date); err != nil {
		return err
	}

	var (
		persistedStaff []domain.StaffMember
		master         *domain.DayData
		override       *domain.DayData
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		persistedStaff, err = b.store.LoadStaff(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		master, err = b.store.LoadMaster(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		override, err = b.store.LoadDay(gctx, date)
		return err
	})
	if err := g.Wait(); err != nil {
		return fmt.Errorf("无法加载 %s 的数据: %w", date, err)
	}

	staff := merge.Staff(b.catalog.BaselineStaff(), persistedStaff)
	day := merge.Day(merge.Day(b.catalog.MasterTemplate(), master), override)

	b.date = date
	b.staff = staff
	b.routes = b.resolver.RoutesFromDTO(day.Routes, staff)
	// 保存之后名册可能已经变化，例如缺勤的司机已经回来
	for i := range b.routes {
		if released := utils.ReleaseSurplusReplacements(&b.routes[i]); released > 0 {
			slog.Info("替补已释放", "route", b.routes[i].ID, "released", released)
		}
	}
	b.transfers = b.resolver.TransfersFromDTO(day.Transfers, staff)
	b.managers = append([]domain.ShiftMetadata{}, day.Managers...)

	slog.Debug("已加载看板数据", "date", date, "staff", len(staff), "routes", len(b.routes))

	return nil
}

func (b *Board) Date() string {
	return b.date
}

// Day 返回当前状态的 DTO 形式
func (b *Board) Day() *domain.DayData {
	return &domain.DayData{
		Routes:    dto.RoutesToDTO(b.routes),
		Transfers: dto.TransfersToDTO(b.transfers),
		Managers:  append([]domain.ShiftMetadata{}, b.managers...),
	}
}

// Save 把当前状态保存为当日覆盖数据
func (b *Board) Save(ctx context.Context) error {
	if b.date == "" {
		return ErrNotLoaded
	}
	if err := b.store.SaveDay(ctx, b.date, b.Day()); err != nil {
		return fmt.Errorf("无法保存 %s 的数据: %w", b.date, err)
	}
	return nil
}

// SaveMaster 把当前状态保存为主模板，之后新的日期都从它开始
func (b *Board) SaveMaster(ctx context.Context) error {
	if b.date == "" {
		return ErrNotLoaded
	}
	if err := b.store.SaveMaster(ctx, b.Day()); err != nil {
		return fmt.Errorf("无法保存主模板: %w", err)
	}
	return nil
}

// MigrateLegacyRefs 把当前日期和主模板中按姓名保存的旧引用改写成 ID 并保存，返回改写数量
func (b *Board) MigrateLegacyRefs(ctx context.Context) (int, error) {
	if b.date == "" {
		return 0, ErrNotLoaded
	}

	day, err := b.store.LoadDay(ctx, b.date)
	if err != nil {
		return 0, err
	}
	master, err := b.store.LoadMaster(ctx)
	if err != nil {
		return 0, err
	}

	total := 0
	if n := dto.MigrateLegacyRefs(day, b.staff); n > 0 {
		if err := b.store.SaveDay(ctx, b.date, day); err != nil {
			return 0, err
		}
		total += n
	}
	if n := dto.MigrateLegacyRefs(master, b.staff); n > 0 {
		if err := b.store.SaveMaster(ctx, master); err != nil {
			return total, err
		}
		total += n
	}

	slog.Info("旧引用迁移完成", "date", b.date, "migrated", total)

	return total, nil
}

// Managers 返回各班次的负责人和缺勤信息
func (b *Board) Managers() []domain.ShiftMetadata {
	return slices.Clone(b.managers)
}

// ShiftMetadata 返回某个班次的信息，不存在时返回空的默认值
func (b *Board) ShiftMetadata(shift domain.Shift) domain.ShiftMetadata {
	for _, m := range b.managers {
		if m.Shift == shift {
			return m
		}
	}
	return domain.NewShiftMetadata(shift)
}

func (b *Board) SetShiftMetadata(meta domain.ShiftMetadata) error {
	if !meta.Shift.Valid() {
		return fmt.Errorf("%w: %q", ErrInvalidShift, meta.Shift)
	}
	if meta.Absences == nil {
		meta.Absences = make([]domain.ShiftAbsence, 0)
	}
	if err := b.validate.Struct(meta); err != nil {
		return err
	}

	for i := range b.managers {
		if b.managers[i].Shift == meta.Shift {
			b.managers[i] = meta
			return nil
		}
	}
	b.managers = append(b.managers, meta)
	return nil
}
