package http

import (
	"bytes"
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"creator-quiz/internal/report"
	"creator-quiz/internal/service"
)

// QuizHandler expone el cuestionario, las entregas y los reportes.
type QuizHandler struct {
	logger *zap.Logger
	quiz   *service.QuizService
}

// NewQuizHandler crea una instancia de QuizHandler.
func NewQuizHandler(logger *zap.Logger, quiz *service.QuizService) *QuizHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &QuizHandler{logger: logger, quiz: quiz}
}

// Health maneja GET /api/health.
func (h *QuizHandler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// Questions maneja GET /api/questions.
func (h *QuizHandler) Questions(c *gin.Context) {
	sheet, err := h.quiz.Questions()
	if err != nil {
		h.logger.Error("list questions failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not load questions"})
		return
	}
	c.JSON(http.StatusOK, sheet)
}

// Start maneja POST /api/start.
func (h *QuizHandler) Start(c *gin.Context) {
	c.JSON(http.StatusOK, h.quiz.Start())
}

// Submit maneja POST /api/submit.
func (h *QuizHandler) Submit(c *gin.Context) {
	var req struct {
		UserID  string `json:"user_id"`
		Answers []int  `json:"answers"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("invalid submit request", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	out, err := h.quiz.Submit(c.Request.Context(), c.ClientIP(), req.UserID, req.Answers)
	if err != nil {
		h.writeError(c, "submit quiz", err)
		return
	}
	c.JSON(http.StatusOK, out)
}

// Result maneja GET /api/result/:user_id.
func (h *QuizHandler) Result(c *gin.Context) {
	out, err := h.quiz.Result(c.Request.Context(), c.Param("user_id"))
	if err != nil {
		h.writeError(c, "load result", err)
		return
	}
	c.JSON(http.StatusOK, out)
}

// Chart maneja GET /api/chart/:user_id.
func (h *QuizHandler) Chart(c *gin.Context) {
	userID := c.Param("user_id")
	bars, err := h.quiz.Chart(c.Request.Context(), userID)
	if err != nil {
		h.writeError(c, "load chart", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"user_id": userID, "bars": bars})
}

// PDF maneja GET /api/pdf/:user_id?token=.
func (h *QuizHandler) PDF(c *gin.Context) {
	userID := c.Param("user_id")
	doc, err := h.quiz.ReportDocument(c.Request.Context(), userID, c.Query("token"))
	if err != nil {
		h.writeError(c, "build report", err)
		return
	}

	var buf bytes.Buffer
	if err := report.Render(&buf, doc); err != nil {
		h.logger.Error("render pdf failed", zap.String("user_id", userID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not render report"})
		return
	}

	// El middleware JSON ya fijo Content-Type; render.Data no lo pisa.
	c.Header("Content-Type", "application/pdf")
	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, report.Filename(userID)))
	c.Data(http.StatusOK, "application/pdf", buf.Bytes())
}

// writeError traduce errores del servicio a status HTTP.
func (h *QuizHandler) writeError(c *gin.Context, op string, err error) {
	switch {
	case errors.Is(err, service.ErrQuizInvalidInput):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrQuizRateLimited):
		c.JSON(http.StatusTooManyRequests, gin.H{"error": "too many submissions"})
	case errors.Is(err, service.ErrQuizNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
	case errors.Is(err, service.ErrReportTokenExpired):
		c.JSON(http.StatusUnauthorized, gin.H{"error": "report token expired"})
	case errors.Is(err, service.ErrReportTokenInvalid):
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid report token"})
	default:
		h.logger.Error(op+" failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}
