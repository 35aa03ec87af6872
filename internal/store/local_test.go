package store

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/rsu-logistica/shift-board/backend/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestKV(t *testing.T) *SQLiteKV {
	t.Helper()
	kv, err := OpenSQLite(filepath.Join(t.TempDir(), "data", "board.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = kv.Close() })
	return kv
}

func sampleDay() *domain.DayData {
	driver := "100"
	return &domain.DayData{
		Routes: []domain.RouteRecordDTO{
			{ID: "m-1", Zone: "RN 1", Shift: domain.ShiftMorning, Driver: &driver, ZoneStatus: domain.ZoneComplete},
			{ID: "custom-1", Zone: "EXTRA", Shift: domain.ShiftNight, ZoneStatus: domain.ZonePending, Order: 9},
		},
		Transfers: []domain.TransferRecordDTO{
			{ID: domain.TransferID(domain.ShiftMorning), Shift: domain.ShiftMorning},
		},
		Managers: []domain.ShiftMetadata{
			{Shift: domain.ShiftMorning, Supervisor: "ACOSTA", Absences: []domain.ShiftAbsence{{StaffID: "101", Reason: "ART"}}},
		},
	}
}

func TestLocalStoreMissingKeys(t *testing.T) {
	ctx := context.Background()
	s := NewLocalStore(openTestKV(t), "test_v1_")

	staff, err := s.LoadStaff(ctx)
	require.NoError(t, err)
	assert.NotNil(t, staff)
	assert.Empty(t, staff)

	day, err := s.LoadDay(ctx, "2024-05-01")
	require.NoError(t, err)
	assert.Nil(t, day)

	master, err := s.LoadMaster(ctx)
	require.NoError(t, err)
	assert.Nil(t, master)
}

func TestLocalStoreRoundTrip(t *testing.T) {
	ctx := context.Background()
	s := NewLocalStore(openTestKV(t), "test_v1_")

	staff := []domain.StaffMember{
		{ID: "100", Name: "PEREZ", Status: domain.StaffPresent},
		{ID: "101", Name: "GOMEZ", Status: domain.StaffAbsent, Address: "ART", IsIndefiniteAbsence: true},
	}
	require.NoError(t, s.SaveStaff(ctx, staff))
	got, err := s.LoadStaff(ctx)
	require.NoError(t, err)
	assert.Equal(t, staff, got)

	day := sampleDay()
	require.NoError(t, s.SaveDay(ctx, "2024-05-01", day))
	gotDay, err := s.LoadDay(ctx, "2024-05-01")
	require.NoError(t, err)
	assert.Equal(t, day, gotDay)

	// 其他日期不受影响
	other, err := s.LoadDay(ctx, "2024-05-02")
	require.NoError(t, err)
	assert.Nil(t, other)

	require.NoError(t, s.SaveMaster(ctx, day))
	gotMaster, err := s.LoadMaster(ctx)
	require.NoError(t, err)
	assert.Equal(t, day, gotMaster)
}

func TestLocalStoreOverwrite(t *testing.T) {
	ctx := context.Background()
	s := NewLocalStore(openTestKV(t), "test_v1_")

	require.NoError(t, s.SaveDay(ctx, "2024-05-01", sampleDay()))
	require.NoError(t, s.SaveDay(ctx, "2024-05-01", &domain.DayData{}))

	got, err := s.LoadDay(ctx, "2024-05-01")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Empty(t, got.Routes)
	assert.Empty(t, got.Transfers)
	assert.Empty(t, got.Managers)
}

func TestLocalStoreCorruptValue(t *testing.T) {
	ctx := context.Background()
	kv := openTestKV(t)
	s := NewLocalStore(kv, "test_v1_")

	require.NoError(t, kv.Put(ctx, "test_v1_staff", []byte("{not json")))
	staff, err := s.LoadStaff(ctx)
	require.NoError(t, err)
	assert.Empty(t, staff)

	require.NoError(t, kv.Put(ctx, "test_v1_day:2024-05-01:routes", []byte("[[[")))
	day, err := s.LoadDay(ctx, "2024-05-01")
	require.NoError(t, err)
	assert.Nil(t, day)

	// 只有一部分损坏时其余部分照常读取
	require.NoError(t, kv.Put(ctx, "test_v1_day:2024-05-01:managers", []byte(`[{"shift":"TARDE","supervisor":"SOSA"}]`)))
	day, err = s.LoadDay(ctx, "2024-05-01")
	require.NoError(t, err)
	require.NotNil(t, day)
	assert.Empty(t, day.Routes)
	require.Len(t, day.Managers, 1)
	assert.Equal(t, "SOSA", day.Managers[0].Supervisor)
}

func TestLocalStoreTypeMismatchIsAbsent(t *testing.T) {
	ctx := context.Background()
	kv := openTestKV(t)
	s := NewLocalStore(kv, "test_v1_")

	require.NoError(t, s.SaveDay(ctx, "2024-05-01", sampleDay()))

	// JSON 合法但字段类型不对，解析到一半的线路不能被返回
	require.NoError(t, kv.Put(ctx, "test_v1_day:2024-05-01:routes", []byte(`[{"id":"a","order":"x"},{"id":"b"}]`)))
	day, err := s.LoadDay(ctx, "2024-05-01")
	require.NoError(t, err)
	require.NotNil(t, day)
	assert.Empty(t, day.Routes)
	assert.Equal(t, sampleDay().Transfers, day.Transfers)
	assert.Equal(t, sampleDay().Managers, day.Managers)

	require.NoError(t, kv.Put(ctx, "test_v1_staff", []byte(`[{"id":"100","name":"PEREZ"},{"id":7}]`)))
	staff, err := s.LoadStaff(ctx)
	require.NoError(t, err)
	assert.Empty(t, staff)
}

func TestLocalStoreNamespaces(t *testing.T) {
	ctx := context.Background()
	kv := openTestKV(t)
	v1 := NewLocalStore(kv, "rsu_v1_")
	v2 := NewLocalStore(kv, "rsu_v2_")

	require.NoError(t, v1.SaveStaff(ctx, []domain.StaffMember{{ID: "1", Name: "A", Status: domain.StaffPresent}}))

	staff, err := v2.LoadStaff(ctx)
	require.NoError(t, err)
	assert.Empty(t, staff)

	staff, err = v1.LoadStaff(ctx)
	require.NoError(t, err)
	assert.Len(t, staff, 1)
}
