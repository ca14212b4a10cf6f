package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/SharkFourSix/momo/internal/domain"
	"github.com/SharkFourSix/momo/internal/service"
	"github.com/SharkFourSix/momo/pkg/logger"
)

type ExtractHandler struct {
	service service.ExtractionService
	logger  *logger.Logger
}

func NewExtractHandler(service service.ExtractionService, log *logger.Logger) *ExtractHandler {
	return &ExtractHandler{
		service: service,
		logger:  log,
	}
}

type extractRequest struct {
	Provider string            `json:"provider"`
	Message  string            `json:"message"`
	Options  map[string]string `json:"options,omitempty"`
	Kind     domain.Kind       `json:"kind,omitempty"`
}

type batchRequest struct {
	Provider string   `json:"provider"`
	Messages []string `json:"messages"`
}

// Extract handles synchronous single-message extraction. "No transaction"
// is a normal outcome and comes back as 200 with matched=false; only a
// kind declared wrongly by the caller is an error response.
func (h *ExtractHandler) Extract(c echo.Context) error {
	ctx := c.Request().Context()

	var req extractRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{
			"error": "invalid request body",
		})
	}

	if req.Provider == "" || req.Message == "" {
		return c.JSON(http.StatusBadRequest, map[string]string{
			"error": "provider and message are required",
		})
	}

	if req.Kind != domain.KindAny && !domain.ValidKind(req.Kind) {
		return c.JSON(http.StatusBadRequest, map[string]string{
			"error": domain.ErrUnknownKind.Error(),
		})
	}

	tx, err := h.service.Extract(ctx, req.Provider, req.Message, req.Options, req.Kind)
	if err != nil {
		if errors.Is(err, domain.ErrKindMismatch) {
			return c.JSON(http.StatusUnprocessableEntity, map[string]string{
				"error": err.Error(),
			})
		}

		h.logger.Error(ctx, "Extraction failed",
			"provider", req.Provider,
			"error", err,
		)
		return c.JSON(http.StatusInternalServerError, map[string]string{
			"error": "extraction failed",
		})
	}

	if tx == nil {
		return c.JSON(http.StatusOK, map[string]interface{}{
			"matched": false,
		})
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"matched":     true,
		"kind":        tx.Kind(),
		"transaction": tx,
	})
}

// SubmitBatch accepts a list of messages for asynchronous extraction.
func (h *ExtractHandler) SubmitBatch(c echo.Context) error {
	ctx := c.Request().Context()

	var req batchRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{
			"error": "invalid request body",
		})
	}

	if req.Provider == "" || len(req.Messages) == 0 {
		return c.JSON(http.StatusBadRequest, map[string]string{
			"error": "provider and messages are required",
		})
	}

	batchID, err := h.service.SubmitBatch(ctx, req.Provider, req.Messages)
	if err != nil {
		h.logger.Error(ctx, "Failed to submit batch",
			"error", err,
		)
		return c.JSON(http.StatusInternalServerError, map[string]string{
			"error": "failed to submit batch",
		})
	}

	h.logger.Info(ctx, "Batch accepted",
		"batch_id", batchID,
	)

	return c.JSON(http.StatusAccepted, map[string]string{
		"batch_id": batchID,
		"status":   string(domain.BatchStatusProcessing),
	})
}

func (h *ExtractHandler) GetBatch(c echo.Context) error {
	ctx := c.Request().Context()

	batchID := c.Param("id")

	batch, err := h.service.GetBatch(ctx, batchID)
	if err != nil {
		if errors.Is(err, domain.ErrBatchNotFound) {
			return c.JSON(http.StatusNotFound, map[string]string{
				"error": "batch not found",
			})
		}

		h.logger.Error(ctx, "Failed to get batch",
			"batch_id", batchID,
			"error", err,
		)
		return c.JSON(http.StatusInternalServerError, map[string]string{
			"error": "failed to get batch",
		})
	}

	return c.JSON(http.StatusOK, batch)
}

func (h *ExtractHandler) GetResults(c echo.Context) error {
	ctx := c.Request().Context()

	batchID := c.Param("id")

	page, err := strconv.Atoi(c.QueryParam("page"))
	if err != nil || page < 1 {
		page = 1
	}

	perPage, err := strconv.Atoi(c.QueryParam("per_page"))
	if err != nil || perPage < 1 {
		perPage = 10
	}

	var kindFilter *domain.Kind
	kindParam := c.QueryParam("kind")
	if kindParam != "" {
		kind := domain.Kind(kindParam)
		if !domain.ValidKind(kind) {
			return c.JSON(http.StatusBadRequest, map[string]string{
				"error": domain.ErrUnknownKind.Error(),
			})
		}
		kindFilter = &kind
	}

	results, total, err := h.service.GetResults(ctx, batchID, page, perPage, kindFilter)
	if err != nil {
		if errors.Is(err, domain.ErrBatchNotFound) {
			return c.JSON(http.StatusNotFound, map[string]string{
				"error": "batch not found",
			})
		}

		h.logger.Error(ctx, "Failed to get results",
			"batch_id", batchID,
			"error", err,
		)
		return c.JSON(http.StatusInternalServerError, map[string]string{
			"error": "failed to get results",
		})
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"batch_id": batchID,
		"items":    results,
		"page":     page,
		"per_page": perPage,
		"total":    total,
	})
}
