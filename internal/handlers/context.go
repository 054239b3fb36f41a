package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/harvestgrid/agrograph-backend/internal/platform/logger"
	"github.com/harvestgrid/agrograph-backend/internal/retrieval"
)

// ContextHandler is the thin transport over the retrieval engine: bind the
// query triple, retrieve, format, respond. All grounding logic lives below.
type ContextHandler struct {
	log   *logger.Logger
	svc   *retrieval.Service
	cache *retrieval.Cache
}

func NewContextHandler(log *logger.Logger, svc *retrieval.Service, cache *retrieval.Cache) *ContextHandler {
	return &ContextHandler{
		log:   log.With("handler", "Context"),
		svc:   svc,
		cache: cache,
	}
}

type contextRequest struct {
	Crop     string `json:"crop"`
	Region   string `json:"region"`
	SoilType string `json:"soil_type"`
}

type contextResponse struct {
	Context   string          `json:"context"`
	Available bool            `json:"available"`
	Sections  contextSections `json:"sections"`
}

type contextSections struct {
	Residues bool `json:"residues"`
	Soil     bool `json:"soil"`
	Policies bool `json:"policies"`
	Limits   bool `json:"limits"`
}

func (h *ContextHandler) GetContext(c *gin.Context) {
	var req contextRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	q := retrieval.Query{Crop: req.Crop, Region: req.Region, SoilType: req.SoilType}
	ctx := c.Request.Context()

	if text, ok := h.cache.Get(ctx, q); ok {
		c.JSON(http.StatusOK, contextResponse{Context: text, Available: true})
		return
	}

	res := h.svc.Retrieve(ctx, q)
	text := retrieval.Format(res)

	// Unavailable and empty results are not cached: the former should retry
	// the store next request, the latter is cheap enough to recompute.
	if !res.Empty() && len(res.Failures) == 0 {
		h.cache.Set(ctx, q, text)
	}

	c.JSON(http.StatusOK, contextResponse{
		Context:   text,
		Available: !res.Unavailable(),
		Sections: contextSections{
			Residues: len(res.Residues) > 0,
			Soil:     res.Soil != nil,
			Policies: len(res.Policies) > 0,
			Limits:   res.Limit != nil,
		},
	})
}
