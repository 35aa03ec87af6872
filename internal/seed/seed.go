package seed

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"github.com/rsu-logistica/shift-board/backend/internal/domain"
	"github.com/rsu-logistica/shift-board/backend/internal/merge"
	"github.com/rsu-logistica/shift-board/backend/internal/sheets"
	"github.com/rsu-logistica/shift-board/backend/internal/utils"
	"golang.org/x/crypto/bcrypt"
)

// Writer 由 *repository.Repository 实现
type Writer interface {
	PutDocument(doc *domain.Document) error
	UpsertDevice(device *domain.Device) error
}

const seedUpdatedBy = "seed"

// 随机生成的人员从这个编号开始
const firstRandomLegajo = 1000

func putJSON(w Writer, key string, v any) (*domain.Document, error) {
	payload, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}

	doc := &domain.Document{
		Key:       key,
		Payload:   payload,
		UpdatedBy: seedUpdatedBy,
	}
	if err := w.PutDocument(doc); err != nil {
		return nil, err
	}
	return doc, nil
}

// SeedMaster 把内置线路定义生成的主模板写入同步服务
func SeedMaster(w Writer, c *Catalog) error {
	doc, err := putJSON(w, domain.DocumentMaster, c.MasterTemplate())
	if err != nil {
		return fmt.Errorf("无法写入主模板: %w", err)
	}

	slog.Info("主模板已写入", "routes", len(c.Routes), "version", doc.Version)
	return nil
}

// SeedRandomStaff 写入额外人员基线和 n 个随机人员，会覆盖已有的名册
func SeedRandomStaff(w Writer, c *Catalog, n int) ([]domain.StaffMember, error) {
	if n < 0 {
		return nil, fmt.Errorf("人员数量不能为负数: %d", n)
	}

	staff := merge.Staff(c.BaselineStaff(), utils.GenerateRandomRoster(firstRandomLegajo, n))
	if _, err := putJSON(w, domain.DocumentStaff, staff); err != nil {
		return nil, fmt.Errorf("无法写入人员名册: %w", err)
	}

	slog.Info("随机人员名册已写入", "count", len(staff))
	return staff, nil
}

// SeedStaffFile 从 XLSX 或 CSV 文件导入真实名册，额外人员基线会保留
func SeedStaffFile(w Writer, c *Catalog, path string) ([]domain.StaffMember, error) {
	imported, err := sheets.ReadStaffFile(path)
	if err != nil {
		return nil, fmt.Errorf("无法读取人员文件 %s: %w", path, err)
	}

	staff := merge.Staff(c.BaselineStaff(), imported)
	if _, err := putJSON(w, domain.DocumentStaff, staff); err != nil {
		return nil, fmt.Errorf("无法写入人员名册: %w", err)
	}

	slog.Info("人员名册已导入", "file", path, "count", len(staff))
	return staff, nil
}

// RegisterDevice 用 bcrypt 保存设备密钥的哈希
func RegisterDevice(w Writer, id, name, key string) (*domain.Device, error) {
	if id == "" || key == "" {
		return nil, errors.New("设备 ID 和密钥不能为空")
	}

	keyHash, err := bcrypt.GenerateFromPassword([]byte(key), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("无法生成设备密钥哈希: %w", err)
	}

	device := &domain.Device{
		ID:       id,
		Name:     name,
		KeyHash:  string(keyHash),
		IsActive: true,
	}
	if err := w.UpsertDevice(device); err != nil {
		return nil, fmt.Errorf("无法注册设备: %w", err)
	}

	slog.Info("设备已注册", "id", id)
	return device, nil
}
