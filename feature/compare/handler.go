package compare

import (
	"bytes"
	"context"
	"errors"
	"strconv"

	"dataset-reconciler/core/dataset"
	"dataset-reconciler/core/logger"
	"dataset-reconciler/core/reconcile"
	"dataset-reconciler/core/source"
	"dataset-reconciler/core/storage"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Handler handles HTTP requests for comparisons.
type Handler struct {
	service *Service
}

// NewHandler creates a new HTTP handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes registers the compare routes.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	group := app.Group("/compare")
	group.Post("/", h.HandleCompare)
	group.Get("/", h.HandleCompareQuery)
	group.Get("/inspect", h.HandleInspect)
	group.Get("/datasets", h.HandleListDatasets)
	group.Delete("/cache", h.HandleInvalidateCache)
}

// HandleCompare reconciles two datasets described by a JSON body.
// @Summary Compare Datasets
// @Description Load two datasets, prepare them and report how they differ. Differences are returned with status 200.
// @Tags compare
// @Accept json
// @Produce json
// @Produce plain
// @Param request body Request true "Dataset references and options"
// @Param format query string false "Set to 'text' for the plain transcript"
// @Success 200 {object} reconcile.Report "Reconciliation report"
// @Failure 400 {object} map[string]string "Invalid request or malformed dataset"
// @Failure 404 {object} map[string]string "Dataset not found"
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /compare [post]
func (h *Handler) HandleCompare(c *fiber.Ctx) error {
	var req Request
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "invalid request body: " + err.Error(),
		})
	}
	return h.compare(c, req)
}

// HandleCompareQuery reconciles two datasets given as query parameters.
// @Summary Compare Datasets (query)
// @Description Same as POST /compare with references and options in the query string.
// @Tags compare
// @Produce json
// @Produce plain
// @Param a query string true "Reference of dataset a"
// @Param b query string true "Reference of dataset b"
// @Param max_diffs query int false "Maximum reported cell differences"
// @Param normalize query bool false "Normalize period indices"
// @Param tolerance query number false "Absolute numeric tolerance"
// @Param header_rows query int false "CSV header rows (1 or 2)"
// @Param index_kind query string false "auto, instant, period, int or label"
// @Param freq query string false "Period frequency (D, W, M, Q, Y)"
// @Param refresh query bool false "Drop cached copies of a and b before loading"
// @Param format query string false "Set to 'text' for the plain transcript"
// @Success 200 {object} reconcile.Report "Reconciliation report"
// @Failure 400 {object} map[string]string "Invalid request or malformed dataset"
// @Failure 404 {object} map[string]string "Dataset not found"
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /compare [get]
func (h *Handler) HandleCompareQuery(c *fiber.Ctx) error {
	req := Request{A: c.Query("a"), B: c.Query("b")}

	var err error
	if req.Options.MaxReportedDiffs, err = queryInt(c, "max_diffs"); err != nil {
		return badRequest(c, err)
	}
	if req.Options.NormalizePeriods, err = queryBool(c, "normalize"); err != nil {
		return badRequest(c, err)
	}
	if v := c.Query("tolerance"); v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return badRequest(c, errors.New("tolerance must be a number"))
		}
		req.Options.Tolerance = &f
	}
	if req.Read.HeaderRows, err = queryInt(c, "header_rows"); err != nil {
		return badRequest(c, err)
	}
	req.Read.IndexKind = dataset.IndexKind(c.Query("index_kind"))
	req.Read.PeriodFreq = dataset.Freq(c.Query("freq"))
	refresh, err := queryBool(c, "refresh")
	if err != nil {
		return badRequest(c, err)
	}
	req.Refresh = refresh != nil && *refresh

	return h.compare(c, req)
}

func (h *Handler) compare(c *fiber.Ctx, req Request) error {
	l := logger.WithRayID(h.service.logger, c)

	report, err := h.service.Compare(c.UserContext(), req)
	if err != nil {
		return h.fail(c, l, "Comparison failed", err)
	}

	if c.Query("format") == "text" {
		var buf bytes.Buffer
		if err := reconcile.Render(&buf, report); err != nil {
			return h.fail(c, l, "Rendering report failed", err)
		}
		c.Set(fiber.HeaderContentType, fiber.MIMETextPlainCharsetUTF8)
		return c.Send(buf.Bytes())
	}

	return c.JSON(report)
}

// HandleInspect summarizes one dataset.
// @Summary Inspect Dataset
// @Description Load one dataset and return its shape, index kind, column types and fingerprint.
// @Tags compare
// @Produce json
// @Param ref query string true "Dataset reference"
// @Success 200 {object} Inspection "Dataset summary"
// @Failure 400 {object} map[string]string "Invalid reference or malformed dataset"
// @Failure 404 {object} map[string]string "Dataset not found"
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /compare/inspect [get]
func (h *Handler) HandleInspect(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	in, err := h.service.Inspect(c.UserContext(), c.Query("ref"), ReadOverrides{
		IndexKind:  dataset.IndexKind(c.Query("index_kind")),
		PeriodFreq: dataset.Freq(c.Query("freq")),
	})
	if err != nil {
		return h.fail(c, l, "Inspection failed", err)
	}
	return c.JSON(in)
}

// HandleListDatasets lists dataset objects in the default bucket.
// @Summary List Datasets
// @Description List .csv and .json objects under a prefix of the default bucket.
// @Tags compare
// @Produce json
// @Param prefix query string false "Key prefix"
// @Success 200 {object} map[string][]string "Dataset keys"
// @Failure 503 {object} map[string]string "Object storage not configured"
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /compare/datasets [get]
func (h *Handler) HandleListDatasets(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	keys, err := h.service.ListDatasets(c.UserContext(), c.Query("prefix"))
	if err != nil {
		return h.fail(c, l, "Listing datasets failed", err)
	}
	if keys == nil {
		keys = []string{}
	}
	return c.JSON(fiber.Map{"datasets": keys})
}

// HandleInvalidateCache drops cached datasets.
// @Summary Invalidate Dataset Cache
// @Description Drop cached copies of one dataset reference, or of every dataset when ref is omitted.
// @Tags compare
// @Param ref query string false "Dataset reference"
// @Success 204 "Cache entries dropped"
// @Failure 400 {object} map[string]string "Invalid reference"
// @Router /compare/cache [delete]
func (h *Handler) HandleInvalidateCache(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	if err := h.service.InvalidateCache(c.Query("ref")); err != nil {
		return h.fail(c, l, "Cache invalidation failed", err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

func (h *Handler) fail(c *fiber.Ctx, l *zap.Logger, msg string, err error) error {
	status := StatusFor(err)
	if status >= fiber.StatusInternalServerError {
		l.Error(msg, zap.Error(err))
	} else {
		l.Warn(msg, zap.Error(err))
	}
	return c.Status(status).JSON(fiber.Map{
		"error": err.Error(),
	})
}

// StatusFor maps a service error to an HTTP status.
func StatusFor(err error) int {
	switch {
	case errors.Is(err, reconcile.ErrInvalidInput),
		errors.Is(err, dataset.ErrMalformed),
		errors.Is(err, source.ErrInvalidRef):
		return fiber.StatusBadRequest
	case errors.Is(err, source.ErrNotFound):
		return fiber.StatusNotFound
	case errors.Is(err, storage.ErrObjectTooLarge):
		return fiber.StatusRequestEntityTooLarge
	case errors.Is(err, source.ErrUnavailable):
		return fiber.StatusServiceUnavailable
	case errors.Is(err, context.DeadlineExceeded):
		return fiber.StatusGatewayTimeout
	default:
		return fiber.StatusInternalServerError
	}
}

func badRequest(c *fiber.Ctx, err error) error {
	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
		"error": err.Error(),
	})
}

func queryInt(c *fiber.Ctx, key string) (*int, error) {
	v := c.Query(key)
	if v == "" {
		return nil, nil
	}
	i, err := strconv.Atoi(v)
	if err != nil {
		return nil, errors.New(key + " must be an integer")
	}
	return &i, nil
}

func queryBool(c *fiber.Ctx, key string) (*bool, error) {
	v := c.Query(key)
	if v == "" {
		return nil, nil
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return nil, errors.New(key + " must be a boolean")
	}
	return &b, nil
}
