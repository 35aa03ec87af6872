package handler

import (
	"context"
	"net/http/httptest"
	"testing"

	"github.com/rsu-logistica/shift-board/backend/internal/domain"
	"github.com/rsu-logistica/shift-board/backend/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// 客户端 RemoteStore 与同步服务之间的完整往返
func TestRemoteStoreAgainstSyncService(t *testing.T) {
	env := newTestEnv(t)
	srv := httptest.NewServer(env.handler.Mux)
	defer srv.Close()

	ctx := context.Background()
	remote := store.NewRemoteStore(srv.URL, store.WithDevice("board", "secret"))
	defer remote.Close()

	staff := []domain.StaffMember{{ID: "100", Name: "PEREZ JUAN", Status: domain.StaffPresent}}
	require.NoError(t, remote.SaveStaff(ctx, staff))
	gotStaff, err := remote.LoadStaff(ctx)
	require.NoError(t, err)
	assert.Equal(t, staff, gotStaff)

	driver := "100"
	day := &domain.DayData{
		Routes: []domain.RouteRecordDTO{{ID: "m-1", Zone: "RN 1", Shift: domain.ShiftMorning, Driver: &driver}},
	}
	require.NoError(t, remote.SaveDay(ctx, "2024-05-01", day))
	gotDay, err := remote.LoadDay(ctx, "2024-05-01")
	require.NoError(t, err)
	assert.Equal(t, day, gotDay)

	missing, err := remote.LoadDay(ctx, "2024-05-02")
	require.NoError(t, err)
	assert.Nil(t, missing)

	require.NoError(t, remote.SaveMaster(ctx, day))
	gotMaster, err := remote.LoadMaster(ctx)
	require.NoError(t, err)
	assert.Equal(t, day, gotMaster)

	assert.Equal(t, "board", env.repo.docs[domain.DayDocument("2024-05-01")].UpdatedBy)
}

func TestRemoteStoreWrongDeviceKey(t *testing.T) {
	env := newTestEnv(t)
	srv := httptest.NewServer(env.handler.Mux)
	defer srv.Close()

	ctx := context.Background()
	remote := store.NewRemoteStore(srv.URL, store.WithDevice("board", "wrong"))
	defer remote.Close()

	require.NoError(t, remote.SaveStaff(ctx, []domain.StaffMember{{ID: "1", Name: "X", Status: domain.StaffPresent}}))
	assert.NotContains(t, env.repo.docs, domain.DocumentStaff)

	staff, err := remote.LoadStaff(ctx)
	require.NoError(t, err)
	assert.Nil(t, staff)
}
