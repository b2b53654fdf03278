package workflow

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/m04kA/SMC-AdmissionService/internal/domain"
)

const (
	pendingID        = "pending"
	maxResponseBytes = 1 << 20
)

// Client клиент вебхуков workflow (создание, отмена, уведомления о переходах)
type Client struct {
	hooks        Webhooks
	secretHeader string
	secretValue  string
	httpClient   *http.Client
	log          Logger
}

// NewClient создает новый экземпляр клиента workflow
func NewClient(hooks Webhooks, secretHeader, secretValue string, timeout time.Duration, log Logger) *Client {
	return &Client{
		hooks:        hooks,
		secretHeader: secretHeader,
		secretValue:  secretValue,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		log: log,
	}
}

// Submit передаёт нормализованное бронирование в workflow.
// Пустой или не-JSON ответ с кодом 2xx считается принятым с id "pending".
func (c *Client) Submit(ctx context.Context, booking domain.BookingRequest, createdAt time.Time) (*SubmitResult, error) {
	if c.hooks.Booking == "" {
		return nil, fmt.Errorf("%w: booking webhook", ErrNotConfigured)
	}

	payload := BookingPayload{
		Name:            booking.Name,
		Email:           booking.Email,
		PhoneNumber:     booking.PhoneNumber,
		CarReg:          booking.CarReg,
		CarMake:         booking.CarMake,
		CarModel:        booking.CarModel,
		AppointmentDate: booking.AppointmentDate.Format(domain.DateFormat),
		CarNeeds:        booking.CarNeeds,
		Status:          string(domain.StatusPending),
		CreatedAt:       createdAt.UTC().Format(time.RFC3339),
	}

	body, err := c.post(ctx, c.hooks.Booking, payload, false)
	if err != nil {
		return nil, err
	}

	result := &SubmitResult{ID: pendingID, Status: string(domain.StatusPending)}
	if len(bytes.TrimSpace(body)) == 0 {
		return result, nil
	}

	var raw map[string]interface{}
	if err := json.Unmarshal(body, &raw); err != nil {
		c.log.Warn("Workflow booking webhook returned non-JSON body, treating as pending: %v", err)
		return result, nil
	}

	if id := stringify(raw["id"]); id != "" {
		result.ID = id
	}
	if status := stringify(raw["status"]); status != "" {
		result.Status = status
	}

	return result, nil
}

// NotifyTransition уведомляет workflow о новом статусе бронирования.
// Без адреса вебхука для статуса или без секрета уведомление пропускается.
func (c *Client) NotifyTransition(ctx context.Context, bookingID int64, status domain.BookingStatus) error {
	url := c.transitionHook(status)
	if url == "" || c.secretValue == "" {
		c.log.Info("Workflow transition webhook for status=%s not configured, skipping booking_id=%d", status, bookingID)
		return nil
	}

	_, err := c.post(ctx, url, transitionPayload{ID: strconv.FormatInt(bookingID, 10)}, true)
	return err
}

// Cancel передаёт запрос на отмену бронирования и возвращает ответ workflow как есть
func (c *Client) Cancel(ctx context.Context, bookingID string) (json.RawMessage, error) {
	if c.hooks.Cancel == "" {
		return nil, fmt.Errorf("%w: cancel webhook", ErrNotConfigured)
	}

	body, err := c.post(ctx, c.hooks.Cancel, cancelPayload{BookingID: bookingID}, false)
	if err != nil {
		return nil, err
	}

	if !json.Valid(body) {
		return json.RawMessage(`{}`), nil
	}
	return json.RawMessage(body), nil
}

func (c *Client) transitionHook(status domain.BookingStatus) string {
	switch status {
	case domain.StatusApproved:
		return c.hooks.Approved
	case domain.StatusDeclined:
		return c.hooks.Declined
	case domain.StatusCompleted:
		return c.hooks.Completed
	default:
		return ""
	}
}

func (c *Client) post(ctx context.Context, url string, payload interface{}, withSecret bool) ([]byte, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to marshal payload: %v", ErrInternal, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%w: failed to create request: %v", ErrInternal, err)
	}

	req.Header.Set("Content-Type", "application/json")
	if withSecret && c.secretHeader != "" {
		req.Header.Set(c.secretHeader, c.secretValue)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to execute request: %v", ErrDispatchFailed, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return nil, fmt.Errorf("%w: failed to read response: %v", ErrDispatchFailed, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("%w: unexpected status code %d: %s", ErrDispatchFailed, resp.StatusCode, string(body))
	}

	return body, nil
}

// stringify id может прийти числом или строкой
func stringify(v interface{}) string {
	switch val := v.(type) {
	case string:
		return val
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	default:
		return ""
	}
}
