package transport

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// ==================== 测试辅助 ====================

type fakeNotifier struct {
	mu        sync.Mutex
	errors    []string
	successes []string
	confirms  []string
	// autoConfirm 为 true 时 Confirm 直接触发回调，模拟用户点了确认
	autoConfirm bool
}

func (n *fakeNotifier) Error(msg string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.errors = append(n.errors, msg)
}

func (n *fakeNotifier) Success(title, content string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.successes = append(n.successes, title+":"+content)
}

func (n *fakeNotifier) Confirm(title, content string, onConfirm func()) {
	n.mu.Lock()
	n.confirms = append(n.confirms, title+":"+content)
	auto := n.autoConfirm
	n.mu.Unlock()
	if auto {
		onConfirm()
	}
}

type fakeInvalidator struct {
	count atomic.Int32
}

func (f *fakeInvalidator) Invalidate() { f.count.Add(1) }

func envelopeHandler(code int, msg string, data any) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]any{"code": code, "message": msg, "data": data})
	}
}

func newTestClient(baseURL string, notifier *fakeNotifier, session SessionInvalidator, opts Options) *Client {
	opts.BaseURL = baseURL
	c := New(opts, notifier, zap.NewNop())
	if session != nil {
		c.BindSession(session)
	}
	return c
}

// ==================== 用例 ====================

func TestDoSuccess(t *testing.T) {
	ts := httptest.NewServer(envelopeHandler(0, "ok", map[string]any{"name": "苹果树"}))
	defer ts.Close()

	c := newTestClient(ts.URL, &fakeNotifier{}, nil, Options{})
	raw, err := c.Do(context.Background(), Request{Method: MethodGet, URL: "/seeds/1"})
	require.NoError(t, err)
	require.NotNil(t, raw)

	var got struct {
		Name string `json:"name"`
	}
	require.NoError(t, json.Unmarshal(raw, &got))
	assert.Equal(t, "苹果树", got.Name)
}

func TestDoSuccessWithoutData(t *testing.T) {
	ts := httptest.NewServer(envelopeHandler(0, "ok", nil))
	defer ts.Close()

	c := newTestClient(ts.URL, &fakeNotifier{}, nil, Options{})
	raw, err := c.Do(context.Background(), Request{Method: MethodPost, URL: "/logout"})
	require.NoError(t, err)
	// 无负载的成功与作废结果必须可区分
	assert.Equal(t, json.RawMessage("null"), raw)
}

func TestDoBusinessError(t *testing.T) {
	ts := httptest.NewServer(envelopeHandler(1001, "用户名或密码错误", nil))
	defer ts.Close()

	notifier := &fakeNotifier{}
	session := &fakeInvalidator{}
	c := newTestClient(ts.URL, notifier, session, Options{})

	raw, err := c.Do(context.Background(), Request{Method: MethodPost, URL: "/login"})
	assert.Nil(t, raw)

	var bizErr *BusinessError
	require.ErrorAs(t, err, &bizErr)
	assert.Equal(t, 1001, bizErr.Code)
	assert.Equal(t, []string{"用户名或密码错误"}, notifier.errors)
	// 通用业务失败不触发会话重置
	assert.Zero(t, session.count.Load())
}

func TestDoUnauthorizedVoidsResult(t *testing.T) {
	ts := httptest.NewServer(envelopeHandler(CodeUnauthorized, "会话已失效", nil))
	defer ts.Close()

	notifier := &fakeNotifier{}
	session := &fakeInvalidator{}
	c := newTestClient(ts.URL, notifier, session, Options{})

	raw, err := c.Do(context.Background(), Request{Method: MethodGet, URL: "/profile"})
	// 作废结果：既无数据也无错误
	assert.Nil(t, raw)
	assert.NoError(t, err)
	assert.Equal(t, int32(1), session.count.Load())
	// 401 静默处理，不弹提示
	assert.Empty(t, notifier.errors)
}

func TestDoForbiddenConfirmThenReset(t *testing.T) {
	ts := httptest.NewServer(envelopeHandler(CodeForbidden, "无权限访问", nil))
	defer ts.Close()

	notifier := &fakeNotifier{autoConfirm: true}
	session := &fakeInvalidator{}
	c := newTestClient(ts.URL, notifier, session, Options{})

	raw, err := c.Do(context.Background(), Request{Method: MethodDelete, URL: "/users/1"})
	assert.Nil(t, raw)
	assert.NoError(t, err)
	require.Len(t, notifier.confirms, 1)
	// 用户确认之后才触发重置
	assert.Equal(t, int32(1), session.count.Load())
}

func TestDoForbiddenWithoutConfirm(t *testing.T) {
	ts := httptest.NewServer(envelopeHandler(CodeForbidden, "", nil))
	defer ts.Close()

	notifier := &fakeNotifier{autoConfirm: false}
	session := &fakeInvalidator{}
	c := newTestClient(ts.URL, notifier, session, Options{})

	_, err := c.Do(context.Background(), Request{Method: MethodGet, URL: "/users"})
	assert.NoError(t, err)
	// 未确认就不重置
	assert.Zero(t, session.count.Load())
}

func TestDoTransportFailure(t *testing.T) {
	notifier := &fakeNotifier{}
	// 没有监听者的地址，连接立即失败
	c := newTestClient("http://127.0.0.1:1", notifier, nil, Options{})

	raw, err := c.Do(context.Background(), Request{Method: MethodGet, URL: "/users"})
	assert.Nil(t, raw)
	assert.Error(t, err)
	assert.Equal(t, []string{"网络异常，请稍后重试"}, notifier.errors)
}

func TestDoAttachesTokenAndRequestID(t *testing.T) {
	var gotAuth, gotReqID string
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotReqID = r.Header.Get("X-Request-ID")
		envelopeHandler(0, "ok", nil)(w, r)
	}))
	defer ts.Close()

	c := newTestClient(ts.URL, &fakeNotifier{}, nil, Options{
		TokenProvider: func() string { return "tok123" },
	})
	_, err := c.Do(context.Background(), Request{Method: MethodGet, URL: "/auth/getUserInfo"})
	require.NoError(t, err)
	assert.Equal(t, "Bearer tok123", gotAuth)
	assert.NotEmpty(t, gotReqID)
}

func TestDoCredentialModeSkipsToken(t *testing.T) {
	var gotAuth string
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		envelopeHandler(0, "ok", nil)(w, r)
	}))
	defer ts.Close()

	// Cookie 模式下即使配置了 TokenProvider 也不带 Bearer 头
	c := newTestClient(ts.URL, &fakeNotifier{}, nil, Options{
		WithCredentials: true,
		TokenProvider:   func() string { return "tok123" },
	})
	_, err := c.Do(context.Background(), Request{Method: MethodGet, URL: "/profile"})
	require.NoError(t, err)
	assert.Empty(t, gotAuth)
}

func TestDoJSON(t *testing.T) {
	ts := httptest.NewServer(envelopeHandler(0, "ok", map[string]any{"id": 7}))
	defer ts.Close()

	c := newTestClient(ts.URL, &fakeNotifier{}, nil, Options{})

	type item struct {
		ID int64 `json:"id"`
	}
	got, err := DoJSON[item](context.Background(), c, Request{Method: MethodGet, URL: "/x"})
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, int64(7), got.ID)
}

func TestDoJSONVoidedResult(t *testing.T) {
	ts := httptest.NewServer(envelopeHandler(CodeUnauthorized, "会话已失效", nil))
	defer ts.Close()

	session := &fakeInvalidator{}
	c := newTestClient(ts.URL, &fakeNotifier{}, session, Options{})

	type item struct{}
	got, err := DoJSON[item](context.Background(), c, Request{Method: MethodGet, URL: "/x"})
	assert.Nil(t, got)
	assert.NoError(t, err)
}
