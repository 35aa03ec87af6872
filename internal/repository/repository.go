package repository

import (
	"database/sql"

	"github.com/redis/go-redis/v9"
	"github.com/rsu-logistica/shift-board/backend/internal/config"
)

type Repository struct {
	cfg    *config.Config
	dbpool *sql.DB
	rdb    *redis.Client  // 为 nil 时不使用缓存
}

func NewRepository(cfg *config.Config, dbpool *sql.DB, rdb *redis.Client) *Repository {
	return &Repository{
		cfg:    cfg,
		dbpool: dbpool,
		rdb:    rdb,
	}
}
