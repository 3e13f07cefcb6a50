package client

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"alfredoptarigan/ai-mentorship/internal/models"
)

// APIError is a failed call to the assessment API. Status is 0 when the
// server answered 2xx but the body carried an error field.
type APIError struct {
	Status  int
	Message string
	Details string
}

func (e *APIError) Error() string {
	if e.Details != "" {
		return fmt.Sprintf("%s: %s", e.Message, e.Details)
	}
	return e.Message
}

// Client calls the assessment HTTP API. It satisfies the session backend
// interface, so a terminal session can run against a remote server.
type Client struct {
	baseURL string
	timeout time.Duration
	token   string
	logger  *zap.Logger
}

func New(baseURL string, timeout time.Duration, token string, logger *zap.Logger) *Client {
	return &Client{
		baseURL: baseURL,
		timeout: timeout,
		token:   token,
		logger:  logger,
	}
}

func (c *Client) GenerateQuestions(ctx context.Context, profile models.UserProfile) ([]models.Question, error) {
	var out models.QuestionsResponse
	err := c.post(ctx, "/api/assessment", models.AssessmentRequest{
		UserProfile:          profile,
		Responses:            []models.Response{},
		CurrentQuestionIndex: 0,
	}, &out)
	if err != nil {
		return nil, err
	}

	if len(out.Questions) == 0 {
		return nil, errors.New("no valid questions received from API")
	}
	return out.Questions, nil
}

func (c *Client) NextQuestion(ctx context.Context, profile models.UserProfile, responses []models.Response, index int) (models.Question, error) {
	var out struct {
		Question *models.Question `json:"question"`
	}
	err := c.post(ctx, "/api/assessment", models.AssessmentRequest{
		UserProfile:          profile,
		Responses:            responses,
		CurrentQuestionIndex: index,
	}, &out)
	if err != nil {
		return models.Question{}, err
	}

	if out.Question == nil {
		return models.Question{}, errors.New("no question received from API")
	}
	return *out.Question, nil
}

func (c *Client) Analyze(ctx context.Context, profile models.UserProfile, responses []models.Response) (*models.AnalysisResult, error) {
	var out models.AnalysisResult
	err := c.post(ctx, "/api/assessment/analyze", models.AnalyzeRequest{
		Responses:   responses,
		UserProfile: profile,
	}, &out)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) post(ctx context.Context, path string, body, out any) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	timeout, err := c.timeoutFor(ctx)
	if err != nil {
		return err
	}

	agent := fiber.Post(c.baseURL + path)
	agent.JSON(body)
	if c.token != "" {
		agent.Set(fiber.HeaderAuthorization, "Bearer "+c.token)
	}
	if timeout > 0 {
		agent.Timeout(timeout)
	}
	if err := agent.Parse(); err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}

	start := time.Now()
	code, raw, errs := agent.Bytes()
	if len(errs) > 0 {
		return fmt.Errorf("request to %s failed: %w", path, errors.Join(errs...))
	}
	c.logger.Debug("api call", zap.String("path", path), zap.Int("status", code), zap.Duration("took", time.Since(start)))

	var failure models.ErrorResponse
	_ = json.Unmarshal(raw, &failure)

	if code < fiber.StatusOK || code >= fiber.StatusMultipleChoices {
		return &APIError{
			Status:  code,
			Message: fmt.Sprintf("HTTP error! status: %d", code),
			Details: joinNonEmpty(failure.Error, failure.Details),
		}
	}
	if failure.Error != "" {
		return &APIError{Message: failure.Error, Details: failure.Details}
	}

	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("failed to decode %s response: %w", path, err)
	}
	return nil
}

// timeoutFor picks the tighter of the client timeout and the context
// deadline. The agent has no context support of its own.
func (c *Client) timeoutFor(ctx context.Context) (time.Duration, error) {
	timeout := c.timeout
	if deadline, ok := ctx.Deadline(); ok {
		remaining := time.Until(deadline)
		if remaining <= 0 {
			return 0, context.DeadlineExceeded
		}
		if timeout <= 0 || remaining < timeout {
			timeout = remaining
		}
	}
	return timeout, nil
}

func joinNonEmpty(a, b string) string {
	switch {
	case a == "":
		return b
	case b == "":
		return a
	default:
		return a + ": " + b
	}
}
