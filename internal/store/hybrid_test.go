package store

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/rsu-logistica/shift-board/backend/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// memStore 是内存中的 Store，可以模拟写入失败
type memStore struct {
	staff   []domain.StaffMember
	days    map[string]*domain.DayData
	master  *domain.DayData
	failErr error
	saves   int
}

func newMemStore() *memStore {
	return &memStore{days: make(map[string]*domain.DayData)}
}

func (m *memStore) LoadStaff(context.Context) ([]domain.StaffMember, error) {
	return m.staff, nil
}

func (m *memStore) SaveStaff(_ context.Context, staff []domain.StaffMember) error {
	m.saves++
	if m.failErr != nil {
		return m.failErr
	}
	m.staff = staff
	return nil
}

func (m *memStore) LoadDay(_ context.Context, date string) (*domain.DayData, error) {
	return m.days[date], nil
}

func (m *memStore) SaveDay(_ context.Context, date string, day *domain.DayData) error {
	m.saves++
	if m.failErr != nil {
		return m.failErr
	}
	m.days[date] = day
	return nil
}

func (m *memStore) LoadMaster(context.Context) (*domain.DayData, error) {
	return m.master, nil
}

func (m *memStore) SaveMaster(_ context.Context, master *domain.DayData) error {
	m.saves++
	if m.failErr != nil {
		return m.failErr
	}
	m.master = master
	return nil
}

func TestHybridSaveThenLoadWithFailingRemote(t *testing.T) {
	ctx := context.Background()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "down", http.StatusBadGateway)
	}))
	defer srv.Close()

	remote := NewRemoteStore(srv.URL)
	defer remote.Close()

	h := NewHybridStore(NewLocalStore(openTestKV(t), "test_v1_"), remote)

	day := sampleDay()
	require.NoError(t, h.SaveDay(ctx, "2024-05-01", day))
	got, err := h.LoadDay(ctx, "2024-05-01")
	require.NoError(t, err)
	assert.Equal(t, day, got)

	staff := []domain.StaffMember{{ID: "100", Name: "PEREZ", Status: domain.StaffPresent}}
	require.NoError(t, h.SaveStaff(ctx, staff))
	gotStaff, err := h.LoadStaff(ctx)
	require.NoError(t, err)
	assert.Equal(t, staff, gotStaff)

	require.NoError(t, h.SaveMaster(ctx, day))
	gotMaster, err := h.LoadMaster(ctx)
	require.NoError(t, err)
	assert.Equal(t, day, gotMaster)
}

func TestHybridPrefersRemoteAndWarmsLocal(t *testing.T) {
	ctx := context.Background()
	local := NewLocalStore(openTestKV(t), "test_v1_")
	remote := newMemStore()

	remote.days["2024-05-01"] = sampleDay()
	remote.staff = []domain.StaffMember{{ID: "7", Name: "REMOTO", Status: domain.StaffPresent}}
	require.NoError(t, local.SaveStaff(ctx, []domain.StaffMember{{ID: "1", Name: "LOCAL", Status: domain.StaffPresent}}))

	h := NewHybridStore(local, remote)

	day, err := h.LoadDay(ctx, "2024-05-01")
	require.NoError(t, err)
	assert.Equal(t, remote.days["2024-05-01"], day)

	staff, err := h.LoadStaff(ctx)
	require.NoError(t, err)
	assert.Equal(t, "REMOTO", staff[0].Name)

	// 本地缓存已被远端数据刷新
	cached, err := local.LoadDay(ctx, "2024-05-01")
	require.NoError(t, err)
	assert.Equal(t, remote.days["2024-05-01"], cached)

	cachedStaff, err := local.LoadStaff(ctx)
	require.NoError(t, err)
	assert.Equal(t, "REMOTO", cachedStaff[0].Name)
}

func TestHybridFallsBackToLocalWhenRemoteEmpty(t *testing.T) {
	ctx := context.Background()
	local := NewLocalStore(openTestKV(t), "test_v1_")
	remote := newMemStore()
	remote.master = &domain.DayData{}

	require.NoError(t, local.SaveMaster(ctx, sampleDay()))

	h := NewHybridStore(local, remote)
	master, err := h.LoadMaster(ctx)
	require.NoError(t, err)
	assert.Equal(t, sampleDay(), master)

	day, err := h.LoadDay(ctx, "2030-01-01")
	require.NoError(t, err)
	assert.Nil(t, day)
}

func TestHybridLocalFailureSkipsRemote(t *testing.T) {
	ctx := context.Background()
	local := newMemStore()
	local.failErr = errors.New("disk full")
	remote := newMemStore()

	h := NewHybridStore(local, remote)

	err := h.SaveDay(ctx, "2024-05-01", sampleDay())
	assert.ErrorIs(t, err, local.failErr)
	assert.Equal(t, 0, remote.saves)
}

func TestHybridRemoteWriteFailureIsSwallowed(t *testing.T) {
	ctx := context.Background()
	local := newMemStore()
	remote := newMemStore()
	remote.failErr = errors.New("offline")

	h := NewHybridStore(local, remote)

	require.NoError(t, h.SaveStaff(ctx, []domain.StaffMember{{ID: "1"}}))
	assert.Equal(t, 1, remote.saves)
	assert.Len(t, local.staff, 1)
}

func TestHybridLocalOnly(t *testing.T) {
	ctx := context.Background()
	h := NewHybridStore(NewLocalStore(openTestKV(t), "test_v1_"), nil)

	require.NoError(t, h.SaveDay(ctx, "2024-05-01", sampleDay()))
	day, err := h.LoadDay(ctx, "2024-05-01")
	require.NoError(t, err)
	assert.Equal(t, sampleDay(), day)
}
