package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"creator-quiz/internal/domain"
	"creator-quiz/internal/report"
	"creator-quiz/internal/repository"
	"creator-quiz/internal/scoring"
)

// QuizService orchestrates sessions, scoring, the response log and report tokens.
type QuizService struct {
	classifier *scoring.Classifier
	responses  repository.ResponseRepository
	limiter    SubmissionRateLimiter
	tokens     *ReportTokenService
	logger     *zap.Logger
	now        func() time.Time
	newID      func() string
}

var (
	ErrQuizNotConfigured = errors.New("quiz service not configured")
	ErrQuizInvalidInput  = errors.New("quiz invalid input")
	ErrQuizRateLimited   = errors.New("quiz submissions rate limited")
	ErrQuizNotFound      = errors.New("quiz response not found")
)

// QuizSession identifies one respondent.
type QuizSession struct {
	UserID    string    `json:"user_id"`
	StartedAt time.Time `json:"started_at"`
}

// QuestionSheet is what the client needs to render the questionnaire.
type QuestionSheet struct {
	Scale     domain.LikertScale `json:"scale"`
	Questions []domain.Question  `json:"questions"`
}

// QuizOutcome bundles a classification with its display text.
type QuizOutcome struct {
	UserID         string                `json:"user_id"`
	Classification domain.Classification `json:"classification"`
	Report         domain.ReportText     `json:"report"`
	ReportToken    string                `json:"report_token,omitempty"`
	CompletedAt    time.Time             `json:"completed_at"`
}

func NewQuizService(
	classifier *scoring.Classifier,
	responses repository.ResponseRepository,
	limiter SubmissionRateLimiter,
	tokens *ReportTokenService,
	logger *zap.Logger,
) *QuizService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &QuizService{
		classifier: classifier,
		responses:  responses,
		limiter:    limiter,
		tokens:     tokens,
		logger:     logger,
		now:        func() time.Time { return time.Now().UTC() },
		newID:      uuid.NewString,
	}
}

// Start opens a new anonymous session.
func (s *QuizService) Start() QuizSession {
	return QuizSession{UserID: s.newID(), StartedAt: s.now()}
}

// Questions returns the question table and answer scale.
func (s *QuizService) Questions() (QuestionSheet, error) {
	if s == nil || s.classifier == nil {
		return QuestionSheet{}, ErrQuizNotConfigured
	}
	cat := s.classifier.Catalog()
	return QuestionSheet{Scale: cat.Scale(), Questions: cat.Questions()}, nil
}

// Submit scores answers, appends them to the response log and returns the
// classification. clientKey feeds the submission limiter.
func (s *QuizService) Submit(ctx context.Context, clientKey, userID string, answers []int) (QuizOutcome, error) {
	if s == nil || s.classifier == nil || s.responses == nil {
		return QuizOutcome{}, ErrQuizNotConfigured
	}
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return QuizOutcome{}, fmt.Errorf("%w: user_id is required", ErrQuizInvalidInput)
	}
	if s.limiter != nil && !s.limiter.Allow(clientKey) {
		s.logger.Warn("submission rate limited", zap.String("client", clientKey))
		return QuizOutcome{}, ErrQuizRateLimited
	}

	cl, err := s.classifier.Classify(answers)
	if err != nil {
		if errors.Is(err, scoring.ErrInvalidAnswers) {
			return QuizOutcome{}, fmt.Errorf("%w: %w", ErrQuizInvalidInput, err)
		}
		return QuizOutcome{}, err
	}

	now := s.now()
	resp := domain.Response{
		ID:          s.newID(),
		UserID:      userID,
		Answers:     append([]int(nil), answers...),
		Primary:     cl.Primary,
		Secondary:   cl.Secondary,
		Scores:      cl.Vector(),
		SubmittedAt: now,
	}
	if err := s.responses.Save(ctx, resp); err != nil {
		return QuizOutcome{}, fmt.Errorf("failed to save quiz response: %w", err)
	}

	s.logger.Info("quiz submitted",
		zap.String("user_id", userID),
		zap.String("primary", string(cl.Primary)),
		zap.String("secondary", string(cl.Secondary)),
	)
	out := s.outcome(userID, cl, now)
	token, err := s.tokens.Issue(userID)
	if err != nil {
		return QuizOutcome{}, fmt.Errorf("failed to issue report token: %w", err)
	}
	out.ReportToken = token
	return out, nil
}

// Result re-scores the latest stored answers for userID. The outcome has no
// report token: downloads stay bound to the token handed out on submit.
func (s *QuizService) Result(ctx context.Context, userID string) (QuizOutcome, error) {
	if s == nil || s.classifier == nil || s.responses == nil {
		return QuizOutcome{}, ErrQuizNotConfigured
	}
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return QuizOutcome{}, fmt.Errorf("%w: user_id is required", ErrQuizInvalidInput)
	}
	resp, err := s.responses.GetByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrResponseNotFound) {
			return QuizOutcome{}, ErrQuizNotFound
		}
		return QuizOutcome{}, fmt.Errorf("failed to load quiz response: %w", err)
	}
	cl, err := s.classifier.Classify(resp.Answers)
	if err != nil {
		return QuizOutcome{}, fmt.Errorf("failed to rescore stored response %s: %w", resp.ID, err)
	}
	return s.outcome(userID, cl, resp.SubmittedAt), nil
}

// VerifyReportToken checks a download token for userID.
func (s *QuizService) VerifyReportToken(token, userID string) error {
	if s == nil {
		return ErrQuizNotConfigured
	}
	return s.tokens.Verify(token, userID)
}

// Chart returns the bar data for the latest submission of userID.
func (s *QuizService) Chart(ctx context.Context, userID string) ([]report.Bar, error) {
	out, err := s.Result(ctx, userID)
	if err != nil {
		return nil, err
	}
	return report.Bars(out.Classification, s.classifier.Catalog().DisplayMax()), nil
}

// ReportDocument checks the download token and builds the PDF model for userID.
func (s *QuizService) ReportDocument(ctx context.Context, userID, token string) (report.Report, error) {
	if err := s.VerifyReportToken(token, userID); err != nil {
		return report.Report{}, err
	}
	out, err := s.Result(ctx, userID)
	if err != nil {
		return report.Report{}, err
	}
	return report.New(out.UserID, out.Classification, out.Report, s.classifier.Catalog().DisplayMax(), s.now()), nil
}

// outcome never carries a report token; only Submit issues one.
func (s *QuizService) outcome(userID string, cl domain.Classification, completedAt time.Time) QuizOutcome {
	return QuizOutcome{
		UserID:         userID,
		Classification: cl,
		Report:         s.classifier.Report(cl),
		CompletedAt:    completedAt,
	}
}
