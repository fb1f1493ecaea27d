// Package server exposes the chatbot over a JSON HTTP API.
package server

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"faqbot/internal/domain"
)

// Handler serves chat and corpus-browsing endpoints backed by a Bot.
type Handler struct {
	bot     domain.Bot
	service string
	version string
}

// New creates a handler for the given bot.
func New(bot domain.Bot, service, version string) *Handler {
	return &Handler{bot: bot, service: service, version: version}
}

// BuildRouter assembles the gin engine with all routes registered.
func BuildRouter(h *Handler) *gin.Engine {
	r := gin.Default()
	r.GET("/health", h.health)

	api := r.Group("/api")
	api.POST("/chat", h.chat)
	api.GET("/categories", h.categories)
	api.GET("/category_questions", h.categoryQuestions)
	return r
}

type chatReq struct {
	Message string `json:"message"`
}

// ChatResponse is the JSON body returned by POST /api/chat.
type ChatResponse struct {
	Response   string  `json:"response"`
	Source     string  `json:"source"`
	Confidence float64 `json:"confidence"`
}

func (h *Handler) chat(c *gin.Context) {
	var req chatReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "invalid body"})
		return
	}
	if strings.TrimSpace(req.Message) == "" {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "missing message"})
		return
	}

	ans := h.bot.Answer(c.Request.Context(), req.Message)
	c.JSON(http.StatusOK, ChatResponse{
		Response:   ans.Text,
		Source:     string(ans.Source),
		Confidence: ans.Confidence,
	})
}

func (h *Handler) categories(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"categories": h.bot.Categories()})
}

func (h *Handler) categoryQuestions(c *gin.Context) {
	category := strings.TrimSpace(c.Query("category"))
	if category == "" {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "missing category"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"questions": h.bot.QuestionsInCategory(category)})
}

// HealthResponse is the JSON body returned by GET /health.
type HealthResponse struct {
	Status  string `json:"status"`
	Service string `json:"service"`
	Version string `json:"version"`
}

func (h *Handler) health(c *gin.Context) {
	c.JSON(http.StatusOK, HealthResponse{
		Status:  "healthy",
		Service: h.service,
		Version: h.version,
	})
}
