package trivia

import (
	"context"
	"net/url"
	"strconv"
	"time"

	"github.com/hashicorp/go-retryablehttp"
	"go.uber.org/zap"

	"github.com/daniyarm/trivia-game-bot/internal/domain/entities"
)

// Default endpoints of the Open Trivia Database.
const (
	DefaultQuestionsURL  = "https://opentdb.com/api.php"
	DefaultCategoriesURL = "https://opentdb.com/api_category.php"
	DefaultTokenURL      = "https://opentdb.com/api_token.php"
)

const (
	minAmount       = 1
	maxAmount       = 50
	defaultTimeout  = 10 * time.Second
	defaultRetryMax = 3
	// First backoff delay for transient HTTP failures; retryablehttp
	// doubles it on every further attempt.
	defaultRetryWaitMin = 5 * time.Second
	defaultRetryWaitMax = 90 * time.Second

	defaultMaxTokenRetries = 3
)

// Config holds the client's endpoint and retry settings. Zero values fall
// back to the defaults above.
type Config struct {
	QuestionsURL  string
	CategoriesURL string
	TokenURL      string

	// Timeout bounds each individual request.
	Timeout time.Duration
	// RetryMax is the number of automatic transport-level retries on
	// HTTP 429 and 5xx responses.
	RetryMax int
	// RetryWaitMin is the first backoff delay between transport retries.
	RetryWaitMin time.Duration

	// MaxTokenRetries bounds the reset-and-retry loop FetchQuestions runs
	// when the session token is exhausted.
	MaxTokenRetries int
}

func (c *Config) applyDefaults() {
	if c.QuestionsURL == "" {
		c.QuestionsURL = DefaultQuestionsURL
	}
	if c.CategoriesURL == "" {
		c.CategoriesURL = DefaultCategoriesURL
	}
	if c.TokenURL == "" {
		c.TokenURL = DefaultTokenURL
	}
	if c.Timeout <= 0 {
		c.Timeout = defaultTimeout
	}
	if c.RetryMax < 0 {
		c.RetryMax = defaultRetryMax
	}
	if c.RetryWaitMin <= 0 {
		c.RetryWaitMin = defaultRetryWaitMin
	}
	if c.MaxTokenRetries <= 0 {
		c.MaxTokenRetries = defaultMaxTokenRetries
	}
}

// Client talks to the trivia API. It owns a session token for its whole
// lifetime; the token keeps the server from repeating questions. A Client
// is not safe for concurrent use, and Close must be called when it is no
// longer needed.
type Client struct {
	cfg    Config
	http   *retryablehttp.Client
	logger *zap.Logger
	token  string
}

// NewClient builds a client and immediately acquires a session token.
func NewClient(ctx context.Context, cfg Config, logger *zap.Logger) (*Client, error) {
	cfg.applyDefaults()
	if logger == nil {
		logger = zap.NewNop()
	}

	rc := retryablehttp.NewClient()
	rc.RetryMax = cfg.RetryMax
	rc.RetryWaitMin = cfg.RetryWaitMin
	rc.RetryWaitMax = defaultRetryWaitMax
	rc.HTTPClient.Timeout = cfg.Timeout
	rc.Logger = nil
	// Hand the last response back instead of a "giving up" error so the
	// caller sees the real HTTP status.
	rc.ErrorHandler = retryablehttp.PassthroughErrorHandler

	c := &Client{cfg: cfg, http: rc, logger: logger}

	token, err := c.RequestSessionToken(ctx)
	if err != nil {
		c.Close()
		return nil, err
	}
	c.token = token
	logger.Debug("session token acquired")

	return c, nil
}

// Close releases the underlying transport.
func (c *Client) Close() {
	c.http.HTTPClient.CloseIdleConnections()
}

// SessionToken returns the currently held session token.
func (c *Client) SessionToken() string { return c.token }

// RequestSessionToken asks the API for a fresh session token.
func (c *Client) RequestSessionToken(ctx context.Context) (string, error) {
	params := url.Values{"command": {"request"}}

	var payload tokenPayload
	if err := c.getJSON(ctx, c.cfg.TokenURL, params, true, &payload); err != nil {
		return "", err
	}

	return payload.Token, nil
}

// ResetSessionToken clears the server-side question history of the current
// token. The token value itself is preserved.
func (c *Client) ResetSessionToken(ctx context.Context) (string, error) {
	if c.token == "" {
		return "", newError(KindToken, "Cannot reset: No active session token")
	}

	params := url.Values{"command": {"reset"}, "token": {c.token}}

	var payload tokenPayload
	if err := c.getJSON(ctx, c.cfg.TokenURL, params, true, &payload); err != nil {
		return "", err
	}

	c.token = payload.Token
	return c.token, nil
}

// FetchCategories returns the category catalog as a name-to-id mapping.
// Entries missing an id or a name are dropped; an empty catalog is an error.
func (c *Client) FetchCategories(ctx context.Context) (map[string]string, error) {
	var payload categoriesPayload
	if err := c.getJSON(ctx, c.cfg.CategoriesURL, nil, false, &payload); err != nil {
		return nil, wrapError(KindCategory, err, "Failed to fetch categories: %v", err)
	}

	if len(payload.TriviaCategories) == 0 {
		return nil, newError(KindCategory, "No categories found in API response")
	}

	categories := make(map[string]string, len(payload.TriviaCategories))
	for _, raw := range payload.TriviaCategories {
		id := coerceCategoryID(raw.ID)
		if id == "" || raw.Name == "" {
			continue
		}
		categories[raw.Name] = id
	}

	return categories, nil
}

// QuestionQuery filters a question fetch. Amount is required; the string
// filters may be left empty for "any".
type QuestionQuery struct {
	Amount     int
	Category   string
	Difficulty string
	Type       string
}

// FetchQuestions retrieves a batch of decoded questions for the current
// session token. When the server reports the token has run out of questions
// it is reset and the fetch retried, up to MaxTokenRetries times; every
// other failure propagates immediately.
func (c *Client) FetchQuestions(ctx context.Context, query QuestionQuery) ([]entities.Question, error) {
	if query.Amount < minAmount || query.Amount > maxAmount {
		return nil, newError(KindInvalidParameter, "Amount must be between 1 and 50")
	}

	for attempt := 0; ; attempt++ {
		questions, err := c.fetchQuestionsOnce(ctx, query)
		if err == nil {
			return questions, nil
		}
		if !IsKind(err, KindTokenEmpty) {
			return nil, err
		}
		if attempt >= c.cfg.MaxTokenRetries {
			return nil, newError(KindToken, "Maximum retry attempts reached for token reset")
		}

		c.logger.Info("session token exhausted, resetting",
			zap.Int("attempt", attempt+1),
		)
		if _, err := c.ResetSessionToken(ctx); err != nil {
			return nil, err
		}
	}
}

func (c *Client) fetchQuestionsOnce(ctx context.Context, query QuestionQuery) ([]entities.Question, error) {
	params := url.Values{}
	params.Set("amount", strconv.Itoa(query.Amount))
	if c.token != "" {
		params.Set("token", c.token)
	}
	if query.Category != "" {
		params.Set("category", query.Category)
	}
	if query.Difficulty != "" {
		params.Set("difficulty", query.Difficulty)
	}
	if query.Type != "" {
		params.Set("type", query.Type)
	}

	var payload questionsPayload
	if err := c.getJSON(ctx, c.cfg.QuestionsURL, params, true, &payload); err != nil {
		return nil, err
	}

	questions := make([]entities.Question, 0, len(payload.Results))
	for _, raw := range payload.Results {
		question, err := formatQuestion(raw)
		if err != nil {
			return nil, err
		}
		questions = append(questions, question)
	}

	return questions, nil
}
