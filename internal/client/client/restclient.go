package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sethvargo/go-retry"

	"github.com/dkolesov/refind/internal/client/models"
	"github.com/dkolesov/refind/internal/logging"
)

const authScheme = "Token"

// RESTClient is the HTTP implementation of Client against the backend's
// JSON API. Idempotent GETs are retried on transient failures (network
// errors and 5xx); writes are never retried.
type RESTClient struct {
	baseURL    string
	hc         *http.Client
	token      string
	maxRetries uint64
	log        logging.Logger
}

func NewRESTClient(baseURL string, timeout time.Duration, maxRetries uint64, log logging.Logger) *RESTClient {
	return &RESTClient{
		baseURL:    strings.TrimRight(baseURL, "/"),
		hc:         &http.Client{Timeout: timeout},
		maxRetries: maxRetries,
		log:        log,
	}
}

func (c *RESTClient) Close() error {
	c.hc.CloseIdleConnections()
	return nil
}

func (c *RESTClient) SetToken(token string) { c.token = token }
func (c *RESTClient) ClearToken()           { c.token = "" }

// apiErrorBody is the error envelope the backend uses; some endpoints fill
// "error", DRF's own rejections fill "detail".
type apiErrorBody struct {
	Error  string `json:"error"`
	Detail string `json:"detail"`
}

func (c *RESTClient) do(ctx context.Context, method, path string, query url.Values, body, out any) error {
	u := c.baseURL + "/" + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	var reqBody io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encoding request body: %w", err)
		}
		reqBody = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, u, reqBody)
	if err != nil {
		return fmt.Errorf("building request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", authScheme+" "+c.token)
	}
	req.Header.Set("X-Request-ID", uuid.NewString())

	resp, err := c.hc.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}

	if resp.StatusCode >= http.StatusBadRequest {
		var eb apiErrorBody
		_ = json.Unmarshal(raw, &eb)
		msg := eb.Error
		if msg == "" {
			msg = eb.Detail
		}
		if msg == "" {
			msg = http.StatusText(resp.StatusCode)
		}
		return &APIError{StatusCode: resp.StatusCode, Message: msg}
	}

	if out == nil || len(bytes.TrimSpace(raw)) == 0 {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("decoding %s %s response: %w", method, path, err)
	}
	return nil
}

// get runs a GET with the retry policy. Backend rejections below 500 are
// permanent; everything else backs off and retries.
func (c *RESTClient) get(ctx context.Context, path string, query url.Values, out any) error {
	backoff := retry.WithMaxRetries(c.maxRetries, retry.NewFibonacci(200*time.Millisecond))
	return retry.Do(ctx, backoff, func(ctx context.Context) error {
		err := c.do(ctx, http.MethodGet, path, query, nil, out)
		if err == nil {
			return nil
		}
		var apiErr *APIError
		if errors.As(err, &apiErr) && apiErr.StatusCode < http.StatusInternalServerError {
			return err
		}
		c.log.Warn(ctx, "retrying request", "path", path, "error", err)
		return retry.RetryableError(err)
	})
}

func (c *RESTClient) post(ctx context.Context, path string, body, out any) error {
	return c.do(ctx, http.MethodPost, path, nil, body, out)
}

// ---- identity ----

func (c *RESTClient) Register(ctx context.Context, email, password string) (*RegisterResult, error) {
	// The backend treats username and email as the same value for
	// self-service registrations.
	body := map[string]string{"username": email, "email": email, "password": password}
	var res RegisterResult
	if err := c.post(ctx, "users/register/", body, &res); err != nil {
		return nil, err
	}
	return &res, nil
}

func (c *RESTClient) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	body := map[string]string{"username": email, "password": password}
	var res LoginResult
	if err := c.post(ctx, "users/login/", body, &res); err != nil {
		return nil, err
	}
	return &res, nil
}

func (c *RESTClient) VerifyEmail(ctx context.Context, token string) (*VerifyResult, error) {
	var res VerifyResult
	if err := c.post(ctx, "users/verify_email/", map[string]string{"token": token}, &res); err != nil {
		return nil, err
	}
	return &res, nil
}

func (c *RESTClient) ResendVerification(ctx context.Context, email string) (*RegisterResult, error) {
	var res RegisterResult
	if err := c.post(ctx, "users/resend_verification/", map[string]string{"email": email}, &res); err != nil {
		return nil, err
	}
	return &res, nil
}

func (c *RESTClient) UpdateUser(ctx context.Context, id int64, updates map[string]any) (*models.User, error) {
	var u models.User
	if err := c.do(ctx, http.MethodPatch, fmt.Sprintf("users/%d/", id), nil, updates, &u); err != nil {
		return nil, err
	}
	return &u, nil
}

func (c *RESTClient) ChangePassword(ctx context.Context, oldPassword, newPassword, confirmPassword string) (*PasswordResult, error) {
	body := map[string]string{
		"old_password":     oldPassword,
		"new_password":     newPassword,
		"confirm_password": confirmPassword,
	}
	var res PasswordResult
	if err := c.post(ctx, "users/change_password/", body, &res); err != nil {
		return nil, err
	}
	return &res, nil
}

func (c *RESTClient) RequestPasswordReset(ctx context.Context, email string) error {
	return c.post(ctx, "users/forgot_password/", map[string]string{"email": email}, nil)
}

func (c *RESTClient) ResetPassword(ctx context.Context, code, newPassword, confirmPassword string) (*PasswordResult, error) {
	body := map[string]string{
		"code":             code,
		"new_password":     newPassword,
		"confirm_password": confirmPassword,
	}
	var res PasswordResult
	if err := c.post(ctx, "users/reset_password/", body, &res); err != nil {
		return nil, err
	}
	return &res, nil
}

// ---- reports ----

func (c *RESTClient) LostItems(ctx context.Context) ([]models.ReportItem, error) {
	var items []models.ReportItem
	if err := c.get(ctx, "lost-items/", nil, &items); err != nil {
		return nil, err
	}
	stampKind(items, models.KindLost)
	return items, nil
}

func (c *RESTClient) FoundItems(ctx context.Context) ([]models.ReportItem, error) {
	var items []models.ReportItem
	if err := c.get(ctx, "found-items/", nil, &items); err != nil {
		return nil, err
	}
	stampKind(items, models.KindFound)
	return items, nil
}

func stampKind(items []models.ReportItem, kind models.ItemKind) {
	for i := range items {
		items[i].Kind = kind
	}
}

func (c *RESTClient) Matches(ctx context.Context) ([]models.Match, error) {
	var matches []models.Match
	if err := c.get(ctx, "matches/", nil, &matches); err != nil {
		return nil, err
	}
	for i := range matches {
		if matches[i].LostItem != nil {
			matches[i].LostItem.Kind = models.KindLost
		}
		if matches[i].FoundItem != nil {
			matches[i].FoundItem.Kind = models.KindFound
		}
	}
	return matches, nil
}

func (c *RESTClient) CreateLostItem(ctx context.Context, item *models.ReportItem) (*models.ReportItem, error) {
	var created models.ReportItem
	if err := c.post(ctx, "lost-items/", item, &created); err != nil {
		return nil, err
	}
	created.Kind = models.KindLost
	return &created, nil
}

func (c *RESTClient) CreateFoundItem(ctx context.Context, item *models.ReportItem) (*models.ReportItem, error) {
	var created models.ReportItem
	if err := c.post(ctx, "found-items/", item, &created); err != nil {
		return nil, err
	}
	created.Kind = models.KindFound
	return &created, nil
}

func (c *RESTClient) DeleteLostItem(ctx context.Context, id int64) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("lost-items/%d/", id), nil, nil, nil)
}

func (c *RESTClient) DeleteFoundItem(ctx context.Context, id int64) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("found-items/%d/", id), nil, nil, nil)
}

func (c *RESTClient) UpdateLostItemStatus(ctx context.Context, id int64, status models.ItemStatus, feedback string) error {
	body := map[string]string{"status": string(status), "feedback": feedback}
	return c.post(ctx, fmt.Sprintf("lost-items/%d/update_status/", id), body, nil)
}

func (c *RESTClient) UpdateFoundItemStatus(ctx context.Context, id int64, status models.ItemStatus, feedback string) error {
	body := map[string]string{"status": string(status), "feedback": feedback}
	return c.post(ctx, fmt.Sprintf("found-items/%d/update_status/", id), body, nil)
}

func (c *RESTClient) ConfirmLostFound(ctx context.Context, id int64) error {
	return c.post(ctx, fmt.Sprintf("lost-items/%d/confirm_found/", id), nil, nil)
}

func (c *RESTClient) ConfirmFoundReturned(ctx context.Context, id int64) error {
	return c.post(ctx, fmt.Sprintf("found-items/%d/confirm_returned/", id), nil, nil)
}

// ---- chat & feedback ----

func (c *RESTClient) ChatMessages(ctx context.Context, matchID int64) ([]models.ChatMessage, error) {
	q := url.Values{"match_id": []string{fmt.Sprint(matchID)}}
	var msgs []models.ChatMessage
	if err := c.get(ctx, "chat-messages/", q, &msgs); err != nil {
		return nil, err
	}
	return msgs, nil
}

func (c *RESTClient) SendChatMessage(ctx context.Context, matchID int64, message string) (*models.ChatMessage, error) {
	body := map[string]any{"match_id": matchID, "message": message}
	var msg models.ChatMessage
	if err := c.post(ctx, "chat-messages/", body, &msg); err != nil {
		return nil, err
	}
	return &msg, nil
}

func (c *RESTClient) Feedbacks(ctx context.Context) ([]models.Feedback, error) {
	var fbs []models.Feedback
	if err := c.get(ctx, "feedbacks/", nil, &fbs); err != nil {
		return nil, err
	}
	return fbs, nil
}

func (c *RESTClient) CreateFeedback(ctx context.Context, fb *models.Feedback) (*models.Feedback, error) {
	var created models.Feedback
	if err := c.post(ctx, "feedbacks/", fb, &created); err != nil {
		return nil, err
	}
	return &created, nil
}
