package identity

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/profilematch/backend/internal/domain"
)

// Client talks to the hosted identity provider's REST API. The provider
// owns credentials; this service only exchanges them for tokens and
// never stores password material.
type Client struct {
	baseURL    string
	anonKey    string
	serviceKey string
	httpClient *http.Client
}

func NewClient(baseURL, anonKey, serviceKey string, timeout time.Duration) *Client {
	return &Client{
		baseURL:    baseURL,
		anonKey:    anonKey,
		serviceKey: serviceKey,
		httpClient: &http.Client{Timeout: timeout},
	}
}

// User is the provider's account record.
type User struct {
	ID    uuid.UUID `json:"id"`
	Email string    `json:"email"`
}

// Session is a successful token exchange.
type Session struct {
	AccessToken  string `json:"access_token"`
	TokenType    string `json:"token_type"`
	ExpiresIn    int    `json:"expires_in"`
	RefreshToken string `json:"refresh_token"`
	User         User   `json:"user"`
}

type errorResponse struct {
	Message          string `json:"msg"`
	Error            string `json:"error"`
	ErrorDescription string `json:"error_description"`
}

func (e *errorResponse) text() string {
	switch {
	case e.Message != "":
		return e.Message
	case e.ErrorDescription != "":
		return e.ErrorDescription
	default:
		return e.Error
	}
}

// SignUp registers a new account with the provider.
func (c *Client) SignUp(ctx context.Context, email, password string) (*User, error) {
	body := map[string]string{"email": email, "password": password}

	var user User
	if err := c.post(ctx, "/auth/v1/signup", c.anonKey, body, &user, func(status int, msg string) error {
		if status == http.StatusUnprocessableEntity || status == http.StatusConflict ||
			(status == http.StatusBadRequest && msg != "") {
			return domain.ErrEmailTaken
		}
		return fmt.Errorf("identity signup: status %d: %s", status, msg)
	}); err != nil {
		return nil, err
	}
	return &user, nil
}

// SignIn exchanges credentials for a session via the password grant.
func (c *Client) SignIn(ctx context.Context, email, password string) (*Session, error) {
	body := map[string]string{"email": email, "password": password}

	var session Session
	if err := c.post(ctx, "/auth/v1/token?grant_type=password", c.anonKey, body, &session, func(status int, msg string) error {
		if status == http.StatusBadRequest || status == http.StatusUnauthorized {
			return domain.ErrUnauthorized
		}
		return fmt.Errorf("identity signin: status %d: %s", status, msg)
	}); err != nil {
		return nil, err
	}
	return &session, nil
}

// GetUser fetches an account by id with the service key.
func (c *Client) GetUser(ctx context.Context, userID uuid.UUID) (*User, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet,
		c.baseURL+"/auth/v1/admin/users/"+userID.String(), nil)
	if err != nil {
		return nil, err
	}
	c.setHeaders(req, c.serviceKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil, domain.ErrUnauthorized
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("identity get user: status %d", resp.StatusCode)
	}

	var user User
	if err := json.NewDecoder(resp.Body).Decode(&user); err != nil {
		return nil, err
	}
	return &user, nil
}

func (c *Client) post(ctx context.Context, path, key string, body interface{}, out interface{}, onError func(status int, msg string) error) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(payload))
	if err != nil {
		return err
	}
	c.setHeaders(req, key)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		var apiErr errorResponse
		_ = json.NewDecoder(resp.Body).Decode(&apiErr)
		return onError(resp.StatusCode, apiErr.text())
	}

	return json.NewDecoder(resp.Body).Decode(out)
}

func (c *Client) setHeaders(req *http.Request, key string) {
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("apikey", key)
	req.Header.Set("Authorization", "Bearer "+key)
}
