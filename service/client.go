package service

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
	"go.uber.org/zap"

	"cinetix-cli/model"
)

const (
	defaultBaseURL     = "http://localhost:5002"
	defaultUserAgent   = "cinetix-cli"
	defaultTimeout     = 12 * time.Second
	defaultMaxAttempts = 1
	defaultRetryBase   = 200 * time.Millisecond
	defaultRetryCap    = 1200 * time.Millisecond
	errorSnippetLimit  = 8 << 10
)

// Client wraps HTTP access to the cinema booking API.
type Client struct {
	httpClient  *http.Client
	baseURL     string
	userAgent   string
	maxAttempts int
	retryBase   time.Duration
	retryCap    time.Duration
	log         *zap.Logger
}

type Option func(*Client)

func WithBaseURL(baseURL string) Option {
	return func(c *Client) {
		if trimmed := strings.TrimRight(strings.TrimSpace(baseURL), "/"); trimmed != "" {
			c.baseURL = trimmed
		}
	}
}

// WithMaxAttempts enables retries of read requests. Writes are never retried.
func WithMaxAttempts(n int) Option {
	return func(c *Client) {
		c.maxAttempts = n
	}
}

func WithLogger(log *zap.Logger) Option {
	return func(c *Client) {
		if log != nil {
			c.log = log
		}
	}
}

func WithUserAgent(ua string) Option {
	return func(c *Client) {
		c.userAgent = ua
	}
}

// APIError is returned when the API responds with a non-2xx status.
type APIError struct {
	StatusCode int
	Status     string
	Endpoint   string
	Message    string
	Body       string
}

func (e *APIError) Error() string {
	if e == nil {
		return "booking api error"
	}
	if e.Message != "" {
		return fmt.Sprintf("booking api error: %s: %s", e.Status, e.Message)
	}
	return fmt.Sprintf("booking api error: %s: %s", e.Status, e.Body)
}

// MessageError is a failure reported inside a 2xx response body.
type MessageError struct {
	Endpoint string
	Message  string
}

func (e *MessageError) Error() string {
	return e.Message
}

// IsNotFound reports whether the error represents a 404 from the API.
func IsNotFound(err error) bool {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.StatusCode == http.StatusNotFound
	}
	return false
}

// IsUnauthorized reports whether the API rejected the session token.
func IsUnauthorized(err error) bool {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.StatusCode == http.StatusUnauthorized || apiErr.StatusCode == http.StatusForbidden
	}
	return false
}

// UserMessage picks the text to show for a failed request: the server's
// message when there is one, otherwise fallback.
func UserMessage(err error, fallback string) string {
	var apiErr *APIError
	if errors.As(err, &apiErr) && strings.TrimSpace(apiErr.Message) != "" {
		return apiErr.Message
	}
	var msgErr *MessageError
	if errors.As(err, &msgErr) && strings.TrimSpace(msgErr.Message) != "" {
		return msgErr.Message
	}
	if fallback != "" {
		return fallback
	}
	if err != nil {
		return err.Error()
	}
	return ""
}

// NewClient creates a new API client. If httpClient is nil, a default client is used.
func NewClient(httpClient *http.Client, opts ...Option) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: defaultTimeout}
	}
	c := &Client{
		httpClient:  httpClient,
		baseURL:     defaultBaseURL,
		userAgent:   defaultUserAgent,
		maxAttempts: defaultMaxAttempts,
		retryBase:   defaultRetryBase,
		retryCap:    defaultRetryCap,
		log:         zap.NewNop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	c.log = c.log.With(zap.String("component", "api"))
	return c
}

func (c *Client) BaseURL() string {
	return c.baseURL
}

// ListMovies fetches every movie currently listed.
func (c *Client) ListMovies(ctx context.Context) ([]model.Movie, error) {
	var movies []model.Movie
	if err := c.getJSON(ctx, c.baseURL+"/api/movies", &movies); err != nil {
		return nil, err
	}
	return movies, nil
}

// GetMovie fetches a single movie with its showtimes.
func (c *Client) GetMovie(ctx context.Context, movieID string) (model.Movie, error) {
	if strings.TrimSpace(movieID) == "" {
		return model.Movie{}, errors.New("movie id is required")
	}
	endpoint := fmt.Sprintf("%s/api/movies/%s", c.baseURL, url.PathEscape(movieID))

	var movie model.Movie
	if err := c.getJSON(ctx, endpoint, &movie); err != nil {
		return model.Movie{}, err
	}
	if movie.Id == "" {
		movie.Id = movieID
	}
	return movie, nil
}

// ListCinemas fetches the cinemas offered on the booking screen.
func (c *Client) ListCinemas(ctx context.Context) ([]model.Cinema, error) {
	var cinemas []model.Cinema
	if err := c.getJSON(ctx, c.baseURL+"/api/cinemas", &cinemas); err != nil {
		return nil, err
	}
	return cinemas, nil
}

// ListCinemaDirectory fetches the cinema directory used by the search screen.
func (c *Client) ListCinemaDirectory(ctx context.Context) ([]model.Cinema, error) {
	var cinemas []model.Cinema
	if err := c.getJSON(ctx, c.baseURL+"/api/cinema", &cinemas); err != nil {
		return nil, err
	}
	return cinemas, nil
}

// GetCinema fetches a single cinema.
func (c *Client) GetCinema(ctx context.Context, cinemaID string) (model.Cinema, error) {
	if strings.TrimSpace(cinemaID) == "" {
		return model.Cinema{}, errors.New("cinema id is required")
	}
	endpoint := fmt.Sprintf("%s/api/cinemas/%s", c.baseURL, url.PathEscape(cinemaID))

	var cinema model.Cinema
	if err := c.getJSON(ctx, endpoint, &cinema); err != nil {
		return model.Cinema{}, err
	}
	return cinema, nil
}

// Login exchanges credentials for a session. A response without both token
// and user is treated as a failure.
func (c *Client) Login(ctx context.Context, req model.LoginRequest) (model.AuthResponse, error) {
	var out model.AuthResponse
	endpoint := c.baseURL + "/api/auth/login"
	if err := c.postJSON(ctx, endpoint, "", req, &out); err != nil {
		return model.AuthResponse{}, withDefaultMessage(err, "Login failed")
	}
	if out.Token == "" || out.User == nil {
		msg := strings.TrimSpace(out.Message)
		if msg == "" {
			msg = "Login failed"
		}
		return model.AuthResponse{}, &MessageError{Endpoint: endpoint, Message: msg}
	}
	return out, nil
}

// Register creates an account and returns the server's message.
func (c *Client) Register(ctx context.Context, req model.RegisterRequest) (string, error) {
	var out model.MessageResponse
	if err := c.postJSON(ctx, c.baseURL+"/api/auth/register", "", req, &out); err != nil {
		return "", withDefaultMessage(err, "Registration failed")
	}
	if out.Message == "" {
		return "Registration successful!", nil
	}
	return out.Message, nil
}

// CreateBooking submits a booking once. It is not retried: a repeated call
// may create a duplicate booking.
func (c *Client) CreateBooking(ctx context.Context, token string, req model.BookingRequest) (model.BookingConfirmation, error) {
	var out model.BookingConfirmation
	if err := c.postJSON(ctx, c.baseURL+"/api/bookings", token, req, &out); err != nil {
		return model.BookingConfirmation{}, withDefaultMessage(err, "Booking failed")
	}
	if out.OrderNumber == "" {
		out.OrderNumber = req.OrderNumber
	}
	return out, nil
}

func withDefaultMessage(err error, msg string) error {
	var apiErr *APIError
	if errors.As(err, &apiErr) && apiErr.Message == "" {
		apiErr.Message = msg
	}
	return err
}

func (c *Client) newRequest(ctx context.Context, method string, endpoint string, body io.Reader) (*http.Request, string, error) {
	req, err := http.NewRequestWithContext(ctx, method, endpoint, body)
	if err != nil {
		return nil, "", fmt.Errorf("create request: %w", err)
	}
	requestID := uuid.NewString()
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-ID", requestID)
	return req, requestID, nil
}

func (c *Client) postJSON(ctx context.Context, endpoint string, token string, in any, out any) error {
	payload, err := json.Marshal(in)
	if err != nil {
		return fmt.Errorf("encode request: %w", err)
	}
	req, requestID, err := c.newRequest(ctx, http.MethodPost, endpoint, bytes.NewReader(payload))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	log := c.log.With(zap.String("endpoint", endpoint), zap.String("request_id", requestID))
	res, err := c.httpClient.Do(req)
	if err != nil {
		log.Error("request failed", zap.Error(err))
		return fmt.Errorf("request failed: %w", err)
	}
	defer res.Body.Close()

	if res.StatusCode < http.StatusOK || res.StatusCode >= http.StatusMultipleChoices {
		apiErr := readAPIError(res, endpoint)
		log.Warn("api rejected request", zap.Int("status", res.StatusCode), zap.String("message", apiErr.Message))
		return apiErr
	}
	log.Debug("request ok", zap.Int("status", res.StatusCode))
	return decodeBody(res.Body, endpoint, out)
}

func (c *Client) getJSON(ctx context.Context, endpoint string, out any) error {
	maxAttempts := c.maxAttempts
	if maxAttempts < 1 {
		maxAttempts = 1
	}

	for attempt := 1; attempt <= maxAttempts; attempt++ {
		req, requestID, err := c.newRequest(ctx, http.MethodGet, endpoint, nil)
		if err != nil {
			return err
		}
		log := c.log.With(zap.String("endpoint", endpoint), zap.String("request_id", requestID), zap.Int("attempt", attempt))

		res, err := c.httpClient.Do(req)
		if err != nil {
			if c.shouldRetryNetworkError(err) && attempt < maxAttempts {
				log.Warn("request failed, retrying", zap.Error(err))
				if waitErr := c.waitRetry(ctx, attempt); waitErr != nil {
					return waitErr
				}
				continue
			}
			log.Error("request failed", zap.Error(err))
			return fmt.Errorf("request failed: %w", err)
		}

		if res.StatusCode < http.StatusOK || res.StatusCode >= http.StatusMultipleChoices {
			apiErr := readAPIError(res, endpoint)
			_ = res.Body.Close()

			if c.shouldRetryStatus(res.StatusCode) && attempt < maxAttempts {
				log.Warn("api error, retrying", zap.Int("status", res.StatusCode))
				if waitErr := c.waitRetry(ctx, attempt); waitErr != nil {
					return waitErr
				}
				continue
			}
			log.Warn("api error", zap.Int("status", res.StatusCode), zap.String("message", apiErr.Message))
			return apiErr
		}

		err = decodeBody(res.Body, endpoint, out)
		_ = res.Body.Close()
		if err != nil {
			log.Error("decode failed", zap.Error(err))
			return err
		}
		log.Debug("request ok", zap.Int("status", res.StatusCode))
		return nil
	}

	return errors.New("request failed after retries")
}

func readAPIError(res *http.Response, endpoint string) *APIError {
	snippet, _ := io.ReadAll(io.LimitReader(res.Body, errorSnippetLimit))
	body := strings.TrimSpace(string(snippet))

	apiErr := &APIError{
		StatusCode: res.StatusCode,
		Status:     res.Status,
		Endpoint:   endpoint,
		Body:       body,
	}
	var msg model.MessageResponse
	if json.Unmarshal(snippet, &msg) == nil {
		apiErr.Message = strings.TrimSpace(msg.Message)
	}
	return apiErr
}

func decodeBody(body io.Reader, endpoint string, out any) error {
	if out == nil {
		return nil
	}
	if err := json.NewDecoder(body).Decode(out); err != nil {
		if errors.Is(err, io.EOF) {
			return nil
		}
		return fmt.Errorf("decode response from %s: %w", endpoint, err)
	}
	return nil
}

func (c *Client) shouldRetryStatus(code int) bool {
	return code == http.StatusTooManyRequests || code >= http.StatusInternalServerError
}

func (c *Client) shouldRetryNetworkError(err error) bool {
	if err == nil {
		return false
	}
	return !errors.Is(err, context.Canceled) && !errors.Is(err, context.DeadlineExceeded)
}

func (c *Client) waitRetry(ctx context.Context, attempt int) error {
	delay := c.retryDelay(attempt)
	timer := time.NewTimer(delay)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

func (c *Client) retryDelay(attempt int) time.Duration {
	if attempt < 1 {
		attempt = 1
	}
	base := c.retryBase
	if base <= 0 {
		base = defaultRetryBase
	}
	cap := c.retryCap
	if cap <= 0 {
		cap = defaultRetryCap
	}

	delay := base
	for i := 1; i < attempt; i++ {
		if delay >= cap/2 {
			return cap
		}
		delay *= 2
	}
	if delay > cap {
		return cap
	}
	return delay
}
