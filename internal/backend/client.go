package backend

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	"github.com/pulsemark/clientcore/api/transport"
	"github.com/pulsemark/clientcore/domain"
	"github.com/pulsemark/clientcore/internal/config"
	"github.com/pulsemark/clientcore/pkg/logger"
	"github.com/pulsemark/clientcore/usecase/session"
)

const defaultTimeout = 10 * time.Second

// Client talks to the backend REST API. It attaches the bearer
// credential on authenticated calls and reports 401/403 responses
// through the unauthorized hook so the session store can invalidate
// itself.
type Client struct {
	http           *fasthttp.Client
	baseURL        string
	timeout        time.Duration
	logger         *zap.Logger
	onUnauthorized func(token string)
}

// Option customizes a Client.
type Option func(*Client)

// WithUnauthorizedHook registers the callback fired when an
// authenticated call is rejected with 401 or 403. The rejected token
// is passed so the receiver can ignore stale signals.
func WithUnauthorizedHook(fn func(token string)) Option {
	return func(c *Client) {
		c.onUnauthorized = fn
	}
}

// WithHTTPClient overrides the underlying fasthttp client.
func WithHTTPClient(hc *fasthttp.Client) Option {
	return func(c *Client) {
		c.http = hc
	}
}

func New(cfg config.BackendConfig, log *zap.Logger, opts ...Option) *Client {
	if log == nil {
		log = zap.NewNop()
	}
	timeout := cfg.RequestTimeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	c := &Client{
		http:    &fasthttp.Client{},
		baseURL: cfg.BaseURL,
		timeout: timeout,
		logger:  log,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Login exchanges credentials for a token and profile.
func (c *Client) Login(ctx context.Context, email, password string) (domain.Credentials, error) {
	var out transport.AuthResponse
	req := transport.LoginRequest{Email: email, Password: password}
	if err := c.do(ctx, fasthttp.MethodPost, "/api/auth/login", "", req, &out); err != nil {
		return domain.Credentials{}, err
	}
	return domain.Credentials{Token: out.Token, Identity: out.User}, nil
}

// Register creates an account; the response shape matches Login.
func (c *Client) Register(ctx context.Context, p session.RegisterParams) (domain.Credentials, error) {
	var out transport.AuthResponse
	req := transport.RegisterRequest{Name: p.Name, Email: p.Email, Password: p.Password}
	if err := c.do(ctx, fasthttp.MethodPost, "/api/auth/register", "", req, &out); err != nil {
		return domain.Credentials{}, err
	}
	return domain.Credentials{Token: out.Token, Identity: out.User}, nil
}

// Me validates the bearer credential and returns the current profile.
func (c *Client) Me(ctx context.Context, token string) (*domain.Identity, error) {
	var out domain.Identity
	if err := c.do(ctx, fasthttp.MethodGet, "/api/auth/me", token, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// ForgotPassword requests a reset email. Any 2xx is success.
func (c *Client) ForgotPassword(ctx context.Context, email string) error {
	req := transport.ForgotPasswordRequest{Email: email}
	return c.do(ctx, fasthttp.MethodPost, "/api/auth/forgot-password", "", req, nil)
}

func (c *Client) do(ctx context.Context, method, path, token string, body, out interface{}) error {
	if err := ctx.Err(); err != nil {
		return domain.WrapError(domain.ErrCodeInternal, "request aborted", err)
	}

	req := fasthttp.AcquireRequest()
	resp := fasthttp.AcquireResponse()
	defer fasthttp.ReleaseRequest(req)
	defer fasthttp.ReleaseResponse(resp)

	requestID := uuid.NewString()
	req.SetRequestURI(c.baseURL + path)
	req.Header.SetMethod(method)
	req.Header.SetContentType("application/json")
	req.Header.Set("X-Request-ID", requestID)
	if token != "" {
		req.Header.Set(fasthttp.HeaderAuthorization, "Bearer "+token)
	}
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return domain.WrapError(domain.ErrCodeInternal, "encode request", err)
		}
		req.SetBody(payload)
	}

	log := logger.WithRequestID(logger.ContextWithRequestID(ctx, requestID), c.logger)

	if err := c.http.DoTimeout(req, resp, c.timeout); err != nil {
		log.Warn("backend unreachable", zap.String("path", path), zap.Error(err))
		return domain.WrapError(domain.ErrCodeInternal, "backend request failed", err)
	}

	status := resp.StatusCode()
	switch {
	case status >= fasthttp.StatusOK && status < fasthttp.StatusMultipleChoices:
		if out == nil {
			return nil
		}
		if err := json.Unmarshal(resp.Body(), out); err != nil {
			return domain.WrapError(domain.ErrCodeInternal, "decode response", err)
		}
		return nil
	case status == fasthttp.StatusUnauthorized, status == fasthttp.StatusForbidden:
		if token != "" && c.onUnauthorized != nil {
			c.onUnauthorized(token)
		}
		log.Info("backend rejected credentials", zap.String("path", path), zap.Int("status", status))
		return domain.NewError(domain.ErrCodeUnauthorized, errorMessage(resp.Body(), "invalid email or password"))
	case status == fasthttp.StatusBadRequest:
		return domain.NewError(domain.ErrCodeInvalid, errorMessage(resp.Body(), "invalid request"))
	default:
		log.Warn("backend error", zap.String("path", path), zap.Int("status", status))
		return domain.NewError(domain.ErrCodeInternal, errorMessage(resp.Body(), "backend error"))
	}
}

// errorMessage extracts a human-readable message from an error body,
// falling back when the body is empty or not the expected shape.
func errorMessage(body []byte, fallback string) string {
	var er transport.ErrorResponse
	if err := json.Unmarshal(body, &er); err == nil {
		if er.Error != "" {
			return er.Error
		}
		if er.Message != "" {
			return er.Message
		}
	}
	return fallback
}
