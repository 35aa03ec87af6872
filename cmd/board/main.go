package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/rsu-logistica/shift-board/backend/internal/board"
	"github.com/rsu-logistica/shift-board/backend/internal/config"
	"github.com/rsu-logistica/shift-board/backend/internal/seed"
	"github.com/rsu-logistica/shift-board/backend/internal/store"
	"github.com/spf13/cobra"
)

const dateLayout = "2006-01-02"

var (
	date    string
	verbose bool

	// 由 rootCmd 的 PersistentPreRunE 创建
	b       *board.Board
	cleanup []func()
)

var rootCmd = &cobra.Command{
	Use:   "board",
	Short: "RSU staffing board",
	Long: `Operate the daily staffing board of the waste-collection service.

State is kept in a local SQLite file (BOARD_LOCAL_PATH) and, when
BOARD_REMOTE_BASE_URL is set, mirrored to the sync service.`,
	SilenceUsage:       true,
	PersistentPreRunE:  openBoard,
	PersistentPostRunE: closeBoard,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&date, "date", "d", time.Now().Format(dateLayout), "Working date (YYYY-MM-DD)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")
}

func openBoard(cmd *cobra.Command, _ []string) error {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)

	cfg, err := config.LoadClientConfig()
	if err != nil {
		return fmt.Errorf("无法加载配置: %w", err)
	}

	/****** 本地存储 ******/
	kv, err := store.OpenSQLite(cfg.Local.Path)
	if err != nil {
		return err
	}
	cleanup = append(cleanup, func() { _ = kv.Close() })
	local := store.NewLocalStore(kv, cfg.Local.Namespace)

	/****** 远端存储 ******/
	var remote store.Store
	if cfg.Remote.BaseURL != "" {
		rs := store.NewRemoteStore(
			cfg.Remote.BaseURL,
			store.WithTimeout(time.Duration(cfg.Remote.Timeout)*time.Millisecond),
			store.WithDevice(cfg.Remote.DeviceID, cfg.Remote.DeviceKey),
		)
		cleanup = append(cleanup, rs.Close)
		remote = rs
		slog.Debug("已启用远端同步", "url", cfg.Remote.BaseURL)
	}

	catalog, err := seed.LoadCatalog()
	if err != nil {
		return err
	}

	b = board.New(store.NewHybridStore(local, remote), catalog, board.WithStrictIdentity(cfg.StrictIdentity))
	if err := b.Load(cmd.Context(), date); err != nil {
		return err
	}

	slog.Debug("已加载", "date", b.Date(), "routes", len(b.AllRoutes()), "staff", len(b.Staff()))
	return nil
}

func closeBoard(*cobra.Command, []string) error {
	for i := len(cleanup) - 1; i >= 0; i-- {
		cleanup[i]()
	}
	cleanup = nil
	return nil
}

func main() {
	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		// PersistentPostRunE 在出错时不会执行
		_ = closeBoard(nil, nil)
		os.Exit(1)
	}
}
