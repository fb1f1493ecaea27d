package server

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"faqbot/internal/domain"
)

type stubBot struct {
	answer domain.Answer
	asked  string
}

func (b *stubBot) Answer(_ context.Context, query string) domain.Answer {
	b.asked = query
	return b.answer
}

func (b *stubBot) Categories() []string { return []string{"Payments", "Returns"} }

func (b *stubBot) QuestionsInCategory(category string) []string {
	if category == "Returns" {
		return []string{"How do I return an item?"}
	}
	return []string{}
}

func newTestRouter(bot domain.Bot) *gin.Engine {
	gin.SetMode(gin.TestMode)
	return BuildRouter(New(bot, "faqbot", "test"))
}

func TestChat_LocalMatch(t *testing.T) {
	bot := &stubBot{answer: domain.Answer{
		Text:       "Within 30 days.",
		Source:     domain.SourceLocalMatch,
		Confidence: 0.92,
	}}
	router := newTestRouter(bot)

	body := strings.NewReader(`{"message": "How do I return an item?"}`)
	req := httptest.NewRequest(http.MethodPost, "/api/chat", body)
	req.Header.Set("Content-Type", "application/json")
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)
	var resp ChatResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.Equal(t, "Within 30 days.", resp.Response)
	assert.Equal(t, "faq", resp.Source)
	assert.InDelta(t, 0.92, resp.Confidence, 1e-9)
	assert.Equal(t, "How do I return an item?", bot.asked)
}

func TestChat_MissingMessage(t *testing.T) {
	router := newTestRouter(&stubBot{})

	for _, body := range []string{`{}`, `{"message": "   "}`} {
		req := httptest.NewRequest(http.MethodPost, "/api/chat", strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)
		assert.Equal(t, http.StatusBadRequest, rr.Code, "body %s", body)
	}
}

func TestChat_InvalidJSON(t *testing.T) {
	router := newTestRouter(&stubBot{})

	req := httptest.NewRequest(http.MethodPost, "/api/chat", strings.NewReader(`{not json`))
	req.Header.Set("Content-Type", "application/json")
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestCategories(t *testing.T) {
	router := newTestRouter(&stubBot{})

	req := httptest.NewRequest(http.MethodGet, "/api/categories", nil)
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)
	var resp struct {
		Categories []string `json:"categories"`
	}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.Equal(t, []string{"Payments", "Returns"}, resp.Categories)
}

func TestCategoryQuestions(t *testing.T) {
	router := newTestRouter(&stubBot{})

	req := httptest.NewRequest(http.MethodGet, "/api/category_questions?category=Returns", nil)
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)
	var resp struct {
		Questions []string `json:"questions"`
	}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.Equal(t, []string{"How do I return an item?"}, resp.Questions)
}

func TestCategoryQuestions_UnknownCategoryIsEmptyList(t *testing.T) {
	router := newTestRouter(&stubBot{})

	req := httptest.NewRequest(http.MethodGet, "/api/category_questions?category=Nope", nil)
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `{"questions": []}`, rr.Body.String())
}

func TestCategoryQuestions_MissingParam(t *testing.T) {
	router := newTestRouter(&stubBot{})

	req := httptest.NewRequest(http.MethodGet, "/api/category_questions", nil)
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestHealth(t *testing.T) {
	router := newTestRouter(&stubBot{})

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)
	var resp HealthResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.Equal(t, "healthy", resp.Status)
	assert.Equal(t, "faqbot", resp.Service)
}
