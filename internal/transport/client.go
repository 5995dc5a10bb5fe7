package transport

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/cookiejar"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ==================== 响应包装 ====================

// 业务状态码约定：code == 0 为成功，与 HTTP 状态码无关。
// 401/403 是两个特殊业务码，由适配器统一兜底处理。
const (
	CodeOK           = 0
	CodeUnauthorized = 401
	CodeForbidden    = 403
)

// Envelope 后端统一响应包装 {code, message, data}
type Envelope struct {
	Code    int             `json:"code"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

// BusinessError 通用业务失败（code != 0, != 401, != 403）
type BusinessError struct {
	Code    int
	Message string
}

func (e *BusinessError) Error() string {
	return fmt.Sprintf("业务错误 [%d]: %s", e.Code, e.Message)
}

// ==================== 能力端口 ====================

// Notifier 用户提示端口，由外层（UI / CLI）实现
type Notifier interface {
	// Error 弹出错误提示
	Error(msg string)
	// Success 弹出成功通知
	Success(title, content string)
	// Confirm 弹出需要确认的错误对话框，确认后回调 onConfirm
	Confirm(title, content string, onConfirm func())
}

// SessionInvalidator 会话失效端口。
// 适配器不持有会话存储本体，只拿到一个"触发重置"的能力。
type SessionInvalidator interface {
	Invalidate()
}

// ==================== 客户端 ====================

// Options 适配器构造参数
type Options struct {
	BaseURL string
	// WithCredentials 为 true 时走 Cookie 会话（管理员模式），
	// 否则走 Bearer Token（普通用户模式）。两种模式互斥。
	WithCredentials bool
	Timeout         time.Duration
	// TokenProvider 提供当前请求应携带的 token（仅 Token 模式下生效）
	TokenProvider func() string
}

// Client 请求适配器：构建请求、附加凭证、解包响应、归类业务成败。
// 所有失败都终结在适配器内部，调用方拿到统一的扁平结果。
type Client struct {
	rc       *resty.Client
	opts     Options
	notifier Notifier
	session  SessionInvalidator
	log      *zap.Logger
}

// New 创建适配器。session 端口因构造顺序需要延迟绑定，见 BindSession。
func New(opts Options, notifier Notifier, log *zap.Logger) *Client {
	if opts.Timeout == 0 {
		opts.Timeout = 30 * time.Second
	}

	rc := resty.New().
		SetBaseURL(opts.BaseURL).
		SetTimeout(opts.Timeout).
		SetHeader("Content-Type", "application/json")

	if opts.WithCredentials {
		// Cookie 会话模式：由 jar 自动携带服务端下发的会话 Cookie
		jar, _ := cookiejar.New(nil)
		rc.SetCookieJar(jar)
	}

	return &Client{
		rc:       rc,
		opts:     opts,
		notifier: notifier,
		log:      log,
	}
}

// BindSession 绑定会话失效端口。
// 会话存储构建在 API 客户端之上，而 API 客户端又依赖本适配器，
// 所以这里只能在装配完成后回头绑定。
func (c *Client) BindSession(s SessionInvalidator) {
	c.session = s
}

// Request 一次调用的描述
type Request struct {
	Method string
	URL    string
	Query  map[string]string
	Body   any
}

// Do 发送请求并解包响应。扁平结果约定：
//
//	data != nil, err == nil  业务成功，data 为解包后的 data 字段
//	data == nil, err != nil  传输失败或通用业务失败（已向用户提示）
//	data == nil, err == nil  已兜底处理的失败（401/403），本次调用作废，
//	                         调用方不应假定网络成功就一定有可用结果
func (c *Client) Do(ctx context.Context, req Request) (json.RawMessage, error) {
	r := c.rc.R().
		SetContext(ctx).
		SetHeader("X-Request-ID", uuid.NewString())

	if len(req.Query) > 0 {
		r.SetQueryParams(req.Query)
	}
	if req.Body != nil {
		r.SetBody(req.Body)
	}
	if !c.opts.WithCredentials && c.opts.TokenProvider != nil {
		if token := c.opts.TokenProvider(); token != "" {
			r.SetAuthToken(token)
		}
	}

	resp, err := r.Execute(req.Method, req.URL)
	if err != nil {
		// 传输层失败：超时、DNS、连接重置。不自动重试。
		c.log.Error("请求发送失败",
			zap.String("method", req.Method),
			zap.String("url", req.URL),
			zap.Error(err),
		)
		c.notifier.Error("网络异常，请稍后重试")
		return nil, fmt.Errorf("请求 %s %s 失败: %w", req.Method, req.URL, err)
	}

	var env Envelope
	if err := json.Unmarshal(resp.Body(), &env); err != nil {
		c.log.Error("响应解析失败",
			zap.String("url", req.URL),
			zap.Int("http_status", resp.StatusCode()),
			zap.Error(err),
		)
		c.notifier.Error("服务响应异常")
		return nil, fmt.Errorf("解析响应失败: %w", err)
	}

	if env.Code == CodeOK {
		if env.Data == nil {
			// 无负载的成功响应也要与"作废结果"区分开
			env.Data = json.RawMessage("null")
		}
		return env.Data, nil
	}

	switch env.Code {
	case CodeUnauthorized:
		// 会话失效：静默重置，不额外提示（重置本身会跳回登录页）
		c.log.Warn("会话已失效", zap.String("url", req.URL))
		if c.session != nil {
			c.session.Invalidate()
		}
		return nil, nil

	case CodeForbidden:
		msg := env.Message
		if msg == "" {
			msg = "无权限访问"
		}
		c.log.Warn("无权限访问", zap.String("url", req.URL), zap.String("message", env.Message))
		c.notifier.Confirm("错误", msg, func() {
			if c.session != nil {
				c.session.Invalidate()
			}
		})
		return nil, nil

	default:
		msg := env.Message
		if msg == "" {
			msg = "请求失败"
		}
		c.log.Warn("业务失败",
			zap.String("url", req.URL),
			zap.Int("code", env.Code),
			zap.String("message", env.Message),
		)
		c.notifier.Error(msg)
		return nil, &BusinessError{Code: env.Code, Message: env.Message}
	}
}

// DoJSON 发送请求并把解包后的 data 解码为具体类型。
// 作废结果（401/403 兜底）原样透传为 (nil, nil)。
func DoJSON[T any](ctx context.Context, c *Client, req Request) (*T, error) {
	raw, err := c.Do(ctx, req)
	if err != nil || raw == nil {
		return nil, err
	}
	out := new(T)
	if err := json.Unmarshal(raw, out); err != nil {
		return nil, fmt.Errorf("解码响应数据失败: %w", err)
	}
	return out, nil
}

// 常用方法别名，便于资源 API 书写
const (
	MethodGet    = http.MethodGet
	MethodPost   = http.MethodPost
	MethodPut    = http.MethodPut
	MethodDelete = http.MethodDelete
)
