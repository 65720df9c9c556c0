package adapter

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"sync"

	"github.com/MKhiriev/lumina/internal/config"
	"github.com/MKhiriev/lumina/internal/logger"
	"github.com/MKhiriev/lumina/internal/utils"
	"github.com/MKhiriev/lumina/models"
	"github.com/go-resty/resty/v2"
)

const (
	luminaAPIPrefix     = "/api/v1"
	luminaSessionHeader = "X-Session-ID"
)

// LuminaClient is the terminal client's view of the Lumina HTTP API. The
// session token returned by Signup or Login is kept by the client and sent
// on every later call.
type LuminaClient interface {
	Signup(ctx context.Context, req models.SignupRequest) (models.UserResponse, error)
	Login(ctx context.Context, req models.LoginRequest) (models.UserResponse, error)
	Logout(ctx context.Context) error

	Chat(ctx context.Context, message string) (models.Reply, error)
	ChatWithImage(ctx context.Context, message string, image models.Attachment) (models.Reply, error)
	History(ctx context.Context) ([]models.RoleMessage, error)
	ClearHistory(ctx context.Context) error

	SubmitFeedback(ctx context.Context, req models.FeedbackRequest) error
	Version(ctx context.Context) (string, error)
}

// APIError carries the message the server put into its JSON error body.
type APIError struct {
	Status  int
	Message string
	err     error
}

func (e *APIError) Error() string {
	return e.Message
}

func (e *APIError) Unwrap() error {
	return e.err
}

type httpLuminaClient struct {
	client *utils.HTTPClient
	logger *logger.Logger

	mu    sync.RWMutex
	token string
}

// NewLuminaClient returns a client for the server at cfg.ServerURL.
func NewLuminaClient(cfg config.Client, log *logger.Logger) (LuminaClient, error) {
	baseURL, err := normalizeBaseURL(cfg.ServerURL)
	if err != nil {
		return nil, fmt.Errorf("invalid server address: %w", err)
	}

	client := utils.NewHTTPClient(
		utils.WithBaseURL(baseURL+luminaAPIPrefix),
		utils.WithTimeout(cfg.Timeout),
	)

	return &httpLuminaClient{client: client, logger: log}, nil
}

func (c *httpLuminaClient) Signup(ctx context.Context, req models.SignupRequest) (models.UserResponse, error) {
	return c.authenticate(ctx, "/user/signup", req)
}

func (c *httpLuminaClient) Login(ctx context.Context, req models.LoginRequest) (models.UserResponse, error) {
	return c.authenticate(ctx, "/user/login", req)
}

func (c *httpLuminaClient) authenticate(ctx context.Context, path string, body any) (models.UserResponse, error) {
	var user models.UserResponse
	resp, err := c.client.R().
		SetContext(ctx).
		SetBody(body).
		SetResult(&user).
		Post(path)
	if err != nil {
		return models.UserResponse{}, fmt.Errorf("request %s: %w", path, err)
	}
	if err = mapAPIError(resp); err != nil {
		return models.UserResponse{}, err
	}

	token := resp.Header().Get(luminaSessionHeader)
	if token == "" {
		token = user.SessionToken
	}

	c.mu.Lock()
	c.token = token
	c.mu.Unlock()

	c.logger.Info().Str("func", "httpLuminaClient.authenticate").Str("email", user.Email).Msg("session opened")
	return user, nil
}

func (c *httpLuminaClient) Logout(ctx context.Context) error {
	req, err := c.session(ctx)
	if err != nil {
		return err
	}

	resp, err := req.Get("/user/logout")
	if err != nil {
		return fmt.Errorf("request logout: %w", err)
	}
	if err = mapAPIError(resp); err != nil {
		return err
	}

	c.mu.Lock()
	c.token = ""
	c.mu.Unlock()
	return nil
}

func (c *httpLuminaClient) Chat(ctx context.Context, message string) (models.Reply, error) {
	req, err := c.session(ctx)
	if err != nil {
		return models.Reply{}, err
	}

	var reply models.Reply
	resp, err := req.
		SetBody(models.ChatRequest{Message: message}).
		SetResult(&reply).
		Post("/chat/new")
	if err != nil {
		return models.Reply{}, fmt.Errorf("request chat: %w", err)
	}
	if err = mapAPIError(resp); err != nil {
		return models.Reply{}, err
	}
	return reply, nil
}

func (c *httpLuminaClient) ChatWithImage(ctx context.Context, message string, image models.Attachment) (models.Reply, error) {
	req, err := c.session(ctx)
	if err != nil {
		return models.Reply{}, err
	}

	var reply models.Reply
	resp, err := req.
		SetMultipartFormData(map[string]string{"message": message}).
		SetMultipartField("image", image.Filename, image.ContentType, bytes.NewReader(image.Data)).
		SetResult(&reply).
		Post("/chat/new")
	if err != nil {
		return models.Reply{}, fmt.Errorf("request chat with image: %w", err)
	}
	if err = mapAPIError(resp); err != nil {
		return models.Reply{}, err
	}
	return reply, nil
}

func (c *httpLuminaClient) History(ctx context.Context) ([]models.RoleMessage, error) {
	req, err := c.session(ctx)
	if err != nil {
		return nil, err
	}

	var chats models.ChatsResponse
	resp, err := req.SetResult(&chats).Get("/chat/all-chats")
	if err != nil {
		return nil, fmt.Errorf("request history: %w", err)
	}
	if err = mapAPIError(resp); err != nil {
		return nil, err
	}
	return chats.Chats, nil
}

func (c *httpLuminaClient) ClearHistory(ctx context.Context) error {
	req, err := c.session(ctx)
	if err != nil {
		return err
	}

	resp, err := req.Delete("/chat/delete")
	if err != nil {
		return fmt.Errorf("request clear history: %w", err)
	}
	return mapAPIError(resp)
}

func (c *httpLuminaClient) SubmitFeedback(ctx context.Context, feedback models.FeedbackRequest) error {
	req, err := c.session(ctx)
	if err != nil {
		return err
	}

	resp, err := req.SetBody(feedback).Post("/feedback/submit")
	if err != nil {
		return fmt.Errorf("request feedback: %w", err)
	}
	return mapAPIError(resp)
}

func (c *httpLuminaClient) Version(ctx context.Context) (string, error) {
	resp, err := c.client.R().SetContext(ctx).Get("/version")
	if err != nil {
		return "", fmt.Errorf("request version: %w", err)
	}
	if err = mapAPIError(resp); err != nil {
		return "", err
	}
	return resp.String(), nil
}

// session starts a request that carries the current session token.
func (c *httpLuminaClient) session(ctx context.Context) (*resty.Request, error) {
	c.mu.RLock()
	token := c.token
	c.mu.RUnlock()

	if token == "" {
		return nil, ErrNotLoggedIn
	}
	return c.client.R().SetContext(ctx).SetHeader(luminaSessionHeader, token), nil
}

// mapAPIError keeps the sentinel from mapHTTPError and replaces the raw body
// with the server's message when the body is a JSON error.
func mapAPIError(resp *resty.Response) error {
	err := mapHTTPError(resp)
	if err == nil {
		return nil
	}

	var body models.ErrorResponse
	if json.Unmarshal(resp.Body(), &body) != nil || body.Message == "" {
		return err
	}
	if resp.StatusCode() == http.StatusNotFound {
		body.Message = "endpoint not found, check the server URL"
	}
	return &APIError{Status: resp.StatusCode(), Message: body.Message, err: err}
}
