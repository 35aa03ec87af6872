package repository

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rsu-logistica/shift-board/backend/internal/domain"
)

func cacheKey(key string) string {
	return "sync_doc_" + key
}

// GetDocument 先读 redis 缓存，未命中时读数据库并回填缓存；文档不存在时返回 sql.ErrNoRows
func (r *Repository) GetDocument(key string) (*domain.Document, error) {
	if doc := r.getCachedDocument(key); doc != nil {
		return doc, nil
	}

	query := `
		SELECT payload, version, updated_by, updated_at
		FROM sync_documents WHERE key = $1
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	doc := &domain.Document{
		Key: key,
	}

	var payload []byte
	dst := []any{&payload, &doc.Version, &doc.UpdatedBy, &doc.UpdatedAt}
	if err := r.dbpool.QueryRowContext(ctx, query, key).Scan(dst...); err != nil {
		return nil, err
	}
	doc.Payload = payload

	r.cacheDocument(doc)

	return doc, nil
}

// PutDocument 插入或覆盖文档，版本号每次写入加一
func (r *Repository) PutDocument(doc *domain.Document) error {
	query := `
		INSERT INTO sync_documents (key, payload, updated_by)
		VALUES ($1, $2, $3)
		ON CONFLICT (key) DO UPDATE
		SET
			payload = EXCLUDED.payload,
			updated_by = EXCLUDED.updated_by,
			updated_at = NOW(),
			version = sync_documents.version + 1
		RETURNING version, updated_at
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	args := []any{doc.Key, []byte(doc.Payload), doc.UpdatedBy}
	dst := []any{&doc.Version, &doc.UpdatedAt}
	if err := r.dbpool.QueryRowContext(ctx, query, args...).Scan(dst...); err != nil {
		return err
	}

	// 写入后直接刷新缓存，避免读到旧版本
	r.cacheDocument(doc)

	return nil
}

func (r *Repository) getCachedDocument(key string) *domain.Document {
	if r.rdb == nil {
		return nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Redis.OperationTimeout)*time.Second)
	defer cancel()

	data, err := r.rdb.Get(ctx, cacheKey(key)).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			slog.Warn("无法读取文档缓存", "key", key, "error", err)
		}
		return nil
	}

	doc := &domain.Document{}
	if err := json.Unmarshal(data, doc); err != nil {
		slog.Warn("文档缓存无法解析", "key", key, "error", err)
		return nil
	}
	return doc
}

func (r *Repository) cacheDocument(doc *domain.Document) {
	if r.rdb == nil {
		return
	}

	data, err := json.Marshal(doc)
	if err != nil {
		slog.Warn("无法序列化文档", "key", doc.Key, "error", err)
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Redis.OperationTimeout)*time.Second)
	defer cancel()

	expiration := time.Duration(r.cfg.Redis.CacheExpiration) * time.Second
	if err := r.rdb.Set(ctx, cacheKey(doc.Key), data, expiration).Err(); err != nil {
		slog.Warn("无法写入文档缓存", "key", doc.Key, "error", err)
	}
}
