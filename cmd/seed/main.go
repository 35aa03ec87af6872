package main

import (
	"context"
	"database/sql"
	"flag"
	"log/slog"
	"os"
	"time"

	"github.com/rsu-logistica/shift-board/backend/internal/config"
	"github.com/rsu-logistica/shift-board/backend/internal/repository"
	"github.com/rsu-logistica/shift-board/backend/internal/seed"

	_ "github.com/jackc/pgx/v5/stdlib"
)

func main() {
	var op int
	var n int
	var file string

	flag.IntVar(&op, "op", 0, "要执行的操作 (1: 写入主模板, 2: 写入随机人员名册, 3: 注册设备, 4: 从文件导入人员名册)")
	flag.IntVar(&n, "n", 0, "随机人员数量，为 0 时使用 SEED_STAFF_COUNT")
	flag.StringVar(&file, "file", "", "人员名册文件 (.xlsx 或 .csv)")
	flag.Parse()

	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	// 读取配置文件
	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Error("无法读取配置文件", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// 创建数据库连接池
	dbpool, err := sql.Open("pgx", cfg.Database.DSN)
	if err != nil {
		logger.Error("无法创建数据库连接池", "error", err)
		return
	}
	defer dbpool.Close()

	dbpool.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	dbpool.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	dbpool.SetConnMaxIdleTime(time.Duration(cfg.Database.MaxIdleTime) * time.Second)

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.Database.ConnectTimeout)*time.Second)
	defer cancel()

	// sql.Open 只是创建数据库连接池对象，并不会立即连接到数据库，因此需要显式地 ping 一下
	if err := dbpool.PingContext(ctx); err != nil {
		logger.Error("无法连接到数据库", "error", err)
		return
	}

	if err := repository.RunMigrations(dbpool); err != nil {
		logger.Error("无法执行数据库迁移", "error", err)
		return
	}

	// 种子数据不经过缓存，api 服务读取时会在缓存过期后拿到新数据
	repo := repository.NewRepository(cfg, dbpool, nil)

	catalog, err := seed.LoadCatalog()
	if err != nil {
		logger.Error("无法读取线路定义", slog.String("error", err.Error()))
		return
	}

	// 执行操作
	switch op {
	case 0:
		slog.Error("未指定操作")
	case 1:
		if err := seed.SeedMaster(repo, catalog); err != nil {
			slog.Error("写入主模板失败", slog.String("error", err.Error()))
		}
	case 2:
		if n <= 0 {
			n = cfg.Seed.Staff.Count
		}
		if _, err := seed.SeedRandomStaff(repo, catalog, n); err != nil {
			slog.Error("写入随机人员失败", slog.String("error", err.Error()))
		}
	case 3:
		if cfg.Seed.Device.Key == "" {
			slog.Error("请通过 SEED_DEVICE_KEY 指定设备密钥")
			return
		}
		if _, err := seed.RegisterDevice(repo, cfg.Seed.Device.ID, cfg.Seed.Device.Name, cfg.Seed.Device.Key); err != nil {
			slog.Error("注册设备失败", slog.String("error", err.Error()))
		}
	case 4:
		if file == "" {
			slog.Error("请通过 -file 指定人员名册文件")
			return
		}
		if _, err := seed.SeedStaffFile(repo, catalog, file); err != nil {
			slog.Error("导入人员名册失败", slog.String("error", err.Error()))
		}
	default:
		slog.Error("指定的操作非法")
	}
}
