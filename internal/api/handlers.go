package api

import (
	"context"
	"net/http"
	"strconv"
	"sync"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/romangod6/sitemap-gen/internal/models"
	"github.com/romangod6/sitemap-gen/internal/sitemap"
)

// GenerateFunc builds a fresh sitemap document.
type GenerateFunc func(ctx context.Context) (*sitemap.Document, error)

type Handler struct {
	mu       sync.RWMutex
	doc      *sitemap.Document
	generate GenerateFunc
	logger   *zap.Logger
}

type ErrorResponse struct {
	Error string `json:"error"`
}

type PaginationResponse struct {
	Data       interface{} `json:"data"`
	Page       int         `json:"page"`
	Limit      int         `json:"limit"`
	TotalCount int         `json:"total_count"`
}

// URLResponse is a generated entry together with its location.
type URLResponse struct {
	Loc        string            `json:"loc"`
	Route      string            `json:"route"`
	Params     map[string]string `json:"params"`
	ChangeFreq models.ChangeFreq `json:"change_freq"`
	Priority   float64           `json:"priority"`
	AltLang    []string          `json:"alt_lang"`
}

// NewHandler serves doc. generate is used by the regenerate endpoint and may
// be nil.
func NewHandler(doc *sitemap.Document, generate GenerateFunc, logger *zap.Logger) *Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handler{doc: doc, generate: generate, logger: logger}
}

func (h *Handler) document() *sitemap.Document {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.doc
}

func (h *Handler) GetSitemap(c *gin.Context) {
	doc := h.document()
	if doc == nil {
		c.JSON(http.StatusServiceUnavailable, ErrorResponse{Error: "Sitemap not generated yet"})
		return
	}

	c.Data(http.StatusOK, "application/xml; charset=utf-8", doc.XML)
}

func (h *Handler) ListURLs(c *gin.Context) {
	doc := h.document()
	if doc == nil {
		c.JSON(http.StatusServiceUnavailable, ErrorResponse{Error: "Sitemap not generated yet"})
		return
	}

	route := c.Query("route")
	page, limit := getPaginationParams(c)

	urls := make([]URLResponse, 0, len(doc.Entries))
	for i, e := range doc.Entries {
		if route != "" && e.Route != route {
			continue
		}
		urls = append(urls, URLResponse{
			Loc:        doc.Sitemap.URLs[i].Loc,
			Route:      e.Route,
			Params:     e.Params.Map(),
			ChangeFreq: e.ChangeFreq,
			Priority:   e.Priority,
			AltLang:    e.AltLang,
		})
	}

	total := len(urls)
	offset := total
	if page-1 <= total/limit {
		offset = (page - 1) * limit
	}
	end := min(offset+limit, total)

	c.JSON(http.StatusOK, PaginationResponse{
		Data:       urls[offset:end],
		Page:       page,
		Limit:      limit,
		TotalCount: total,
	})
}

func (h *Handler) GetSummary(c *gin.Context) {
	doc := h.document()
	if doc == nil {
		c.JSON(http.StatusServiceUnavailable, ErrorResponse{Error: "Sitemap not generated yet"})
		return
	}

	summary, err := sitemap.Inspect(doc.XML)
	if err != nil {
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to inspect sitemap"})
		return
	}

	c.JSON(http.StatusOK, summary)
}

// Regenerate rebuilds the sitemap. The previous document is kept when the
// build fails.
func (h *Handler) Regenerate(c *gin.Context) {
	if h.generate == nil {
		c.JSON(http.StatusNotImplemented, ErrorResponse{Error: "Regeneration is not enabled"})
		return
	}

	doc, err := h.generate(c.Request.Context())
	if err != nil {
		h.logger.Error("failed to regenerate sitemap", zap.Error(err))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: err.Error()})
		return
	}

	h.mu.Lock()
	h.doc = doc
	h.mu.Unlock()

	c.JSON(http.StatusOK, gin.H{"status": "regenerated", "urls": len(doc.Entries)})
}

// Utility functions
func getPaginationParams(c *gin.Context) (page, limit int) {
	page, _ = strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ = strconv.Atoi(c.DefaultQuery("limit", "100"))

	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 1000 {
		limit = 100
	}

	return page, limit
}
