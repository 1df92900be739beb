package server

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/adarsh8081/adarsh-portfolio/internal/prompt"
)

// defaultSearchLimit applies when a search request omits the limit field.
const defaultSearchLimit = 5

type searchRequest struct {
	Query string `json:"query" binding:"required"`
	// Limit is a pointer so an explicit 0 is distinguishable from an
	// omitted field: omitted defaults, explicit non-positive values are
	// rejected.
	Limit *int `json:"limit"`
}

type historyTurn struct {
	User      string `json:"user"`
	Assistant string `json:"assistant"`
}

type chatRequest struct {
	Message  string        `json:"message" binding:"required"`
	History  []historyTurn `json:"history"`
	UseVoice bool          `json:"use_voice"`
}

func (s *Server) handleRoot(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"name":    "adarsh-portfolio",
		"status":  "running",
		"message": "Portfolio assistant API. See /health for capability status.",
	})
}

func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, s.svc.Health())
}

func (s *Server) handlePortfolio(c *gin.Context) {
	records := s.svc.Records()
	c.JSON(http.StatusOK, gin.H{
		"items": records,
		"count": len(records),
	})
}

func (s *Server) handleSearch(c *gin.Context) {
	var req searchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "query is required"})
		return
	}
	limit := defaultSearchLimit
	if req.Limit != nil {
		limit = *req.Limit
	}

	hits, err := s.svc.Search(c.Request.Context(), req.Query, limit)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	results := make([]gin.H, 0, len(hits))
	for _, hit := range hits {
		results = append(results, gin.H{
			"record": hit.Record,
			"score":  hit.Score,
		})
	}
	c.JSON(http.StatusOK, gin.H{
		"results": results,
		"count":   len(results),
	})
}

func (s *Server) handleChat(c *gin.Context) {
	var req chatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "message is required"})
		return
	}

	history := make([]prompt.Turn, 0, len(req.History))
	for _, turn := range req.History {
		history = append(history, prompt.Turn{User: turn.User, Assistant: turn.Assistant})
	}

	result, err := s.svc.Chat(c.Request.Context(), req.Message, history, req.UseVoice)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, result)
}

func (s *Server) handleAudio(c *gin.Context) {
	artifact, ok := s.svc.Audio(c.Param("id"))
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "audio not ready or unknown"})
		return
	}
	c.Data(http.StatusOK, "audio/mpeg", artifact.Audio)
}

func (s *Server) handleRefresh(c *gin.Context) {
	count, err := s.svc.Refresh(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"status": "refreshed",
		"count":  count,
	})
}

func (s *Server) handleStats(c *gin.Context) {
	c.JSON(http.StatusOK, s.svc.Stats())
}
