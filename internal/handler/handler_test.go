package handler

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/rsu-logistica/shift-board/backend/internal/config"
	"github.com/rsu-logistica/shift-board/backend/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

type fakeRepository struct {
	mu      sync.Mutex
	docs    map[string]*domain.Document
	devices map[string]*domain.Device
}

func newFakeRepository(t *testing.T) *fakeRepository {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte("secret"), bcrypt.MinCost)
	require.NoError(t, err)

	return &fakeRepository{
		docs: make(map[string]*domain.Document),
		devices: map[string]*domain.Device{
			"board":   {ID: "board", KeyHash: string(hash), IsActive: true},
			"retired": {ID: "retired", KeyHash: string(hash), IsActive: false},
		},
	}
}

func (f *fakeRepository) GetDocument(key string) (*domain.Document, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	doc, ok := f.docs[key]
	if !ok {
		return nil, sql.ErrNoRows
	}
	c := *doc
	return &c, nil
}

func (f *fakeRepository) PutDocument(doc *domain.Document) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if prev, ok := f.docs[doc.Key]; ok {
		doc.Version = prev.Version + 1
	} else {
		doc.Version = 1
	}
	doc.UpdatedAt = time.Now()
	c := *doc
	f.docs[doc.Key] = &c
	return nil
}

func (f *fakeRepository) GetDeviceByID(id string) (*domain.Device, error) {
	d, ok := f.devices[id]
	if !ok {
		return nil, sql.ErrNoRows
	}
	return d, nil
}

type fakePublisher struct {
	mu       sync.Mutex
	err      error
	keys     []string
	messages []domain.MailMessage
}

func (p *fakePublisher) PublishWithContext(_ context.Context, _, key string, _, _ bool, msg amqp.Publishing) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.err != nil {
		return p.err
	}
	var m domain.MailMessage
	if err := json.Unmarshal(msg.Body, &m); err != nil {
		return err
	}
	p.keys = append(p.keys, key)
	p.messages = append(p.messages, m)
	return nil
}

type testEnv struct {
	handler *Handler
	repo    *fakeRepository
	pub     *fakePublisher
	cfg     *config.Config
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	cfg := &config.Config{}
	cfg.JWT.Secret = "test-secret"
	cfg.JWT.Expiration = 1
	cfg.Server.MaxBodyBytes = 1 << 20
	cfg.RabbitMQ.Queue = "report_queue"
	cfg.RabbitMQ.PublishTimeout = 1
	cfg.Report.Recipients = []string{"operaciones@example.com"}

	repo := newFakeRepository(t)
	pub := &fakePublisher{}

	h, err := NewHandler(cfg, repo, pub)
	require.NoError(t, err)
	h.RegisterRoutes()

	return &testEnv{handler: h, repo: repo, pub: pub, cfg: cfg}
}

type testResponse struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

func (e *testEnv) do(t *testing.T, method, path, token string, body any) (int, testResponse) {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	rec := httptest.NewRecorder()
	e.handler.Mux.ServeHTTP(rec, req)

	var resp testResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	return rec.Code, resp
}

func (e *testEnv) token(t *testing.T) string {
	t.Helper()

	_, resp := e.do(t, http.MethodPost, "/auth/token", "", map[string]string{"deviceId": "board", "key": "secret"})
	require.True(t, resp.Success, resp.Message)

	var data struct {
		Token     string    `json:"token"`
		ExpiresAt time.Time `json:"expiresAt"`
	}
	require.NoError(t, json.Unmarshal(resp.Data, &data))
	require.NotEmpty(t, data.Token)
	assert.True(t, data.ExpiresAt.After(time.Now()))
	return data.Token
}

func TestIssueDeviceToken(t *testing.T) {
	env := newTestEnv(t)
	env.token(t)

	tests := []struct {
		name string
		body map[string]string
	}{
		{"wrong key", map[string]string{"deviceId": "board", "key": "nope"}},
		{"unknown device", map[string]string{"deviceId": "ghost", "key": "secret"}},
		{"inactive device", map[string]string{"deviceId": "retired", "key": "secret"}},
		{"missing key", map[string]string{"deviceId": "board"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			code, resp := env.do(t, http.MethodPost, "/auth/token", "", tt.body)
			assert.Equal(t, http.StatusOK, code)
			assert.False(t, resp.Success)
			assert.NotEmpty(t, resp.Message)
		})
	}
}

func TestAuthRequired(t *testing.T) {
	env := newTestEnv(t)

	code, resp := env.do(t, http.MethodGet, "/staff", "", nil)
	assert.Equal(t, http.StatusUnauthorized, code)
	assert.False(t, resp.Success)

	code, _ = env.do(t, http.MethodGet, "/staff", "not-a-token", nil)
	assert.Equal(t, http.StatusUnauthorized, code)

	code, resp = env.do(t, http.MethodGet, "/staff", env.token(t), nil)
	assert.Equal(t, http.StatusOK, code)
	assert.True(t, resp.Success)
	assert.Equal(t, "null", string(resp.Data))
}

func TestAuthDisabled(t *testing.T) {
	env := newTestEnv(t)
	env.cfg.Auth.Disabled = true

	code, resp := env.do(t, http.MethodPost, "/staff", "", []domain.StaffMember{{ID: "1", Name: "PEREZ", Status: domain.StaffPresent}})
	assert.Equal(t, http.StatusOK, code)
	assert.True(t, resp.Success)
	assert.Equal(t, "anonymous", env.repo.docs[domain.DocumentStaff].UpdatedBy)
}

func TestStaffDocument(t *testing.T) {
	env := newTestEnv(t)
	token := env.token(t)

	staff := []domain.StaffMember{{ID: "100", Name: "PEREZ JUAN", Status: domain.StaffPresent}}
	_, resp := env.do(t, http.MethodPost, "/staff", token, staff)
	require.True(t, resp.Success, resp.Message)
	assert.JSONEq(t, `{"version":1}`, string(resp.Data))

	_, resp = env.do(t, http.MethodGet, "/staff", token, nil)
	require.True(t, resp.Success)
	var got []domain.StaffMember
	require.NoError(t, json.Unmarshal(resp.Data, &got))
	assert.Equal(t, staff, got)
	assert.Equal(t, "board", env.repo.docs[domain.DocumentStaff].UpdatedBy)

	_, resp = env.do(t, http.MethodPost, "/staff", token, []domain.StaffMember{{ID: "1", Status: "VACACIONES"}})
	assert.False(t, resp.Success)
}

func TestDayDocument(t *testing.T) {
	env := newTestEnv(t)
	token := env.token(t)

	_, resp := env.do(t, http.MethodGet, "/day/01-05-2024", token, nil)
	assert.False(t, resp.Success)

	driver := "100"
	day := domain.DayData{
		Routes: []domain.RouteRecordDTO{
			{ID: "m-1", Zone: "RN 1", Shift: domain.ShiftMorning, Driver: &driver, ZoneStatus: domain.ZoneComplete, Tonnage: 11},
		},
		Managers: []domain.ShiftMetadata{{Shift: domain.ShiftMorning, Supervisor: "ACOSTA", Absences: []domain.ShiftAbsence{}}},
	}
	_, resp = env.do(t, http.MethodPost, "/day/2024-05-01", token, day)
	require.True(t, resp.Success, resp.Message)

	_, resp = env.do(t, http.MethodGet, "/day/2024-05-01", token, nil)
	require.True(t, resp.Success)
	var got domain.DayData
	require.NoError(t, json.Unmarshal(resp.Data, &got))
	assert.Equal(t, day, got)

	_, resp = env.do(t, http.MethodGet, "/day/2024-05-02", token, nil)
	assert.True(t, resp.Success)
	assert.Equal(t, "null", string(resp.Data))

	// 每次保存都会发送一份报表
	require.Len(t, env.pub.messages, 1)
	assert.Equal(t, "report_queue", env.pub.keys[0])
	assert.Equal(t, domain.MailTypeDayReport, env.pub.messages[0].Type)
	assert.Equal(t, []string{"operaciones@example.com"}, env.pub.messages[0].To)

	invalid := domain.DayData{Routes: []domain.RouteRecordDTO{{Zone: "SIN ID", Shift: domain.ShiftMorning}}}
	_, resp = env.do(t, http.MethodPost, "/day/2024-05-01", token, invalid)
	assert.False(t, resp.Success)
	assert.Len(t, env.pub.messages, 1)
}

func TestDayPublishFailureIsIgnored(t *testing.T) {
	env := newTestEnv(t)
	env.pub.err = errors.New("channel closed")
	token := env.token(t)

	_, resp := env.do(t, http.MethodPost, "/day/2024-05-01", token, domain.DayData{})
	assert.True(t, resp.Success, resp.Message)
	assert.Contains(t, env.repo.docs, domain.DayDocument("2024-05-01"))
}

func TestNoRecipientsSkipsPublish(t *testing.T) {
	env := newTestEnv(t)
	env.cfg.Report.Recipients = nil
	token := env.token(t)

	_, resp := env.do(t, http.MethodPost, "/day/2024-05-01", token, domain.DayData{})
	assert.True(t, resp.Success)
	assert.Empty(t, env.pub.messages)
}

func TestMasterDocument(t *testing.T) {
	env := newTestEnv(t)
	token := env.token(t)

	master := domain.DayData{Transfers: []domain.TransferRecordDTO{{ID: domain.TransferID(domain.ShiftNight), Shift: domain.ShiftNight}}}
	_, resp := env.do(t, http.MethodPost, "/master", token, master)
	require.True(t, resp.Success, resp.Message)
	_, resp = env.do(t, http.MethodPost, "/master", token, master)
	assert.JSONEq(t, `{"version":2}`, string(resp.Data))

	_, resp = env.do(t, http.MethodGet, "/master", token, nil)
	var got domain.DayData
	require.NoError(t, json.Unmarshal(resp.Data, &got))
	assert.Equal(t, master.Transfers, got.Transfers)
}

func TestDayReport(t *testing.T) {
	env := newTestEnv(t)
	token := env.token(t)

	_, resp := env.do(t, http.MethodGet, "/day/2024-05-01/report", token, nil)
	assert.False(t, resp.Success)

	driver := "100"
	_, resp = env.do(t, http.MethodPost, "/staff", token, []domain.StaffMember{{ID: "100", Name: "PEREZ", Status: domain.StaffAbsent}})
	require.True(t, resp.Success)
	_, resp = env.do(t, http.MethodPost, "/day/2024-05-01", token, domain.DayData{
		Routes: []domain.RouteRecordDTO{{ID: "t-1", Shift: domain.ShiftAfternoon, Driver: &driver, ZoneStatus: domain.ZoneIncomplete, Tonnage: 3}},
	})
	require.True(t, resp.Success)

	_, resp = env.do(t, http.MethodGet, "/day/2024-05-01/report", token, nil)
	require.True(t, resp.Success, resp.Message)

	var data domain.DayReportMailData
	require.NoError(t, json.Unmarshal(resp.Data, &data))
	assert.Equal(t, "2024-05-01", data.Date)
	assert.Equal(t, "board", data.Device)
	require.Len(t, data.Shifts, 3)
	assert.Equal(t, 1, data.Shifts[1].Incomplete)
	assert.Equal(t, 1, data.Shifts[1].Absences)
}

func TestRequestID(t *testing.T) {
	env := newTestEnv(t)

	req := httptest.NewRequest(http.MethodGet, "/staff", nil)
	rec := httptest.NewRecorder()
	env.handler.Mux.ServeHTTP(rec, req)
	assert.NotEmpty(t, rec.Header().Get("X-Request-ID"))

	req = httptest.NewRequest(http.MethodGet, "/staff", nil)
	req.Header.Set("X-Request-ID", "abc")
	rec = httptest.NewRecorder()
	env.handler.Mux.ServeHTTP(rec, req)
	assert.Equal(t, "abc", rec.Header().Get("X-Request-ID"))
}
