package repository

import (
	"context"
	"time"

	"github.com/rsu-logistica/shift-board/backend/internal/domain"
)

func (r *Repository) GetDeviceByID(id string) (*domain.Device, error) {
	query := `
		SELECT name, key_hash, is_active, created_at
		FROM sync_devices WHERE id = $1
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	device := &domain.Device{
		ID: id,
	}

	dst := []any{&device.Name, &device.KeyHash, &device.IsActive, &device.CreatedAt}
	if err := r.dbpool.QueryRowContext(ctx, query, id).Scan(dst...); err != nil {
		return nil, err
	}

	return device, nil
}

// UpsertDevice 注册设备，已存在时更新名称和密钥
func (r *Repository) UpsertDevice(device *domain.Device) error {
	query := `
		INSERT INTO sync_devices (id, name, key_hash, is_active)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (id) DO UPDATE
		SET name = EXCLUDED.name, key_hash = EXCLUDED.key_hash, is_active = EXCLUDED.is_active
		RETURNING created_at
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	args := []any{device.ID, device.Name, device.KeyHash, device.IsActive}
	if err := r.dbpool.QueryRowContext(ctx, query, args...).Scan(&device.CreatedAt); err != nil {
		return err
	}

	return nil
}
