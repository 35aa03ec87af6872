package store

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/rsu-logistica/shift-board/backend/internal/domain"
)

const DefaultRemoteTimeout = 4 * time.Second

// envelope 与同步服务的响应格式一致
type envelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

type tokenResponse struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expiresAt"`
}

// RemoteStore 是同步服务的尽力而为客户端：
// 每次调用都有超时限制，超时、非 2xx 响应或网络错误时读取返回空值、写入直接忽略，不会向调用方返回错误。
type RemoteStore struct {
	baseURL   string
	timeout   time.Duration
	client    *http.Client
	deviceID  string
	deviceKey string

	mu       sync.Mutex
	token    string
	tokenExp time.Time
}

type RemoteOption func(*RemoteStore)

func WithTimeout(d time.Duration) RemoteOption {
	return func(s *RemoteStore) {
		if d > 0 {
			s.timeout = d
		}
	}
}

// WithDevice 配置设备身份，配置了 key 时会先换取访问令牌
func WithDevice(id, key string) RemoteOption {
	return func(s *RemoteStore) {
		s.deviceID = id
		s.deviceKey = key
	}
}

func WithHTTPClient(c *http.Client) RemoteOption {
	return func(s *RemoteStore) {
		s.client = c
	}
}

func NewRemoteStore(baseURL string, opts ...RemoteOption) *RemoteStore {
	s := &RemoteStore{
		baseURL: strings.TrimRight(baseURL, "/"),
		timeout: DefaultRemoteTimeout,
		client: &http.Client{
			Transport: http.DefaultTransport.(*http.Transport).Clone(),
		},
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Close 释放空闲连接
func (s *RemoteStore) Close() {
	s.client.CloseIdleConnections()
}

func (s *RemoteStore) do(ctx context.Context, method, path string, body any, auth bool) (json.RawMessage, error) {
	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return nil, err
		}
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req, err := http.NewRequestWithContext(ctx, method, s.baseURL+path, reader)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	if auth {
		token, err := s.accessToken(ctx)
		if err != nil {
			return nil, fmt.Errorf("无法获取访问令牌: %w", err)
		}
		if token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("同步服务返回状态码 %d", resp.StatusCode)
	}

	var env envelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		return nil, err
	}
	if !env.Success {
		return nil, errors.New(env.Message)
	}

	return env.Data, nil
}

// accessToken 在配置了设备密钥时返回缓存的令牌，过期前一分钟重新获取
func (s *RemoteStore) accessToken(ctx context.Context) (string, error) {
	if s.deviceKey == "" {
		return "", nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.token != "" && time.Now().Add(time.Minute).Before(s.tokenExp) {
		return s.token, nil
	}

	req := map[string]string{"deviceId": s.deviceID, "key": s.deviceKey}
	data, err := s.do(ctx, http.MethodPost, "/auth/token", req, false)
	if err != nil {
		return "", err
	}

	var tr tokenResponse
	if err := json.Unmarshal(data, &tr); err != nil {
		return "", err
	}
	if tr.Token == "" {
		return "", errors.New("同步服务返回了空令牌")
	}

	s.token = tr.Token
	s.tokenExp = tr.ExpiresAt
	return s.token, nil
}

// get 返回是否读到了非空数据
func (s *RemoteStore) get(ctx context.Context, path string, v any) bool {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	data, err := s.do(ctx, http.MethodGet, path, nil, true)
	if err != nil {
		slog.Warn("远端读取失败", "path", path, "error", err)
		return false
	}
	if len(data) == 0 || string(data) == "null" {
		return false
	}

	if err := json.Unmarshal(data, v); err != nil {
		slog.Warn("远端数据无法解析", "path", path, "error", err)
		return false
	}

	return true
}

func (s *RemoteStore) post(ctx context.Context, path string, v any) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	if _, err := s.do(ctx, http.MethodPost, path, v, true); err != nil {
		slog.Warn("远端写入失败，已忽略", "path", path, "error", err)
	}
}

func (s *RemoteStore) LoadStaff(ctx context.Context) ([]domain.StaffMember, error) {
	var staff []domain.StaffMember
	if !s.get(ctx, "/staff", &staff) {
		return nil, nil
	}
	return staff, nil
}

func (s *RemoteStore) SaveStaff(ctx context.Context, staff []domain.StaffMember) error {
	s.post(ctx, "/staff", staff)
	return nil
}

func (s *RemoteStore) LoadDay(ctx context.Context, date string) (*domain.DayData, error) {
	var day domain.DayData
	if !s.get(ctx, "/day/"+url.PathEscape(date), &day) {
		return nil, nil
	}
	return &day, nil
}

func (s *RemoteStore) SaveDay(ctx context.Context, date string, day *domain.DayData) error {
	s.post(ctx, "/day/"+url.PathEscape(date), day)
	return nil
}

func (s *RemoteStore) LoadMaster(ctx context.Context) (*domain.DayData, error) {
	var master domain.DayData
	if !s.get(ctx, "/master", &master) {
		return nil, nil
	}
	return &master, nil
}

func (s *RemoteStore) SaveMaster(ctx context.Context, master *domain.DayData) error {
	s.post(ctx, "/master", master)
	return nil
}
