package operations

import (
	"errors"

	"parking-ops/core/logger"
	"parking-ops/core/reconcile"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Handler handles HTTP requests for the operation list.
type Handler struct {
	service  *Service
	facility int64
}

// NewHandler creates a new HTTP handler. facility is used when a request
// carries no facility parameter.
func NewHandler(service *Service, facility int64) *Handler {
	return &Handler{service: service, facility: facility}
}

// ListResponse is the body of GET /operations.
type ListResponse struct {
	Facility   int64                 `json:"facility"`
	Count      int                   `json:"count"`
	Operations []reconcile.Operation `json:"operations"`
	Summary    reconcile.Summary     `json:"summary"`
}

// RegisterRoutes registers the operations routes.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	group := app.Group("/operations")
	group.Get("/", h.HandleList)
	group.Get("/audit", h.HandleAudit)
	group.Get("/:id", h.HandleGet)
}

func (h *Handler) facilityOf(c *fiber.Ctx) int64 {
	if id := int64(c.QueryInt("facility", 0)); id > 0 {
		return id
	}
	return h.facility
}

// HandleList returns the reconciled operations of a facility.
// @Summary List Operations
// @Description Reconciles reservations, occupations and payments into one operation per reservation and per walk-in, newest first.
// @Tags operations
// @Produce json
// @Param facility query int false "Facility ID"
// @Param status query string false "Comma separated final statuses"
// @Param q query string false "Search occupant, contact, plate, space or operation id"
// @Param from query string false "Lower bound of the operation date (inclusive)"
// @Param to query string false "Upper bound of the operation date (inclusive)"
// @Success 200 {object} ListResponse
// @Failure 400 {object} map[string]string "Bad Request"
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /operations [get]
func (h *Handler) HandleList(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)
	facility := h.facilityOf(c)

	filter, err := ParseFilter(c.Query("status"), c.Query("q"), c.Query("from"), c.Query("to"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	ops, summary, err := h.service.List(c.Context(), facility, filter)
	if err != nil {
		l.Error("Failed to list operations", zap.Int64("facility", facility), zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	return c.JSON(ListResponse{
		Facility:   facility,
		Count:      len(ops),
		Operations: ops,
		Summary:    summary,
	})
}

// HandleAudit returns the anomalies found while reconciling.
// @Summary Audit Reconciliation
// @Description Lists orphaned, duplicate and inconsistent records found while reconciling a facility.
// @Tags operations
// @Produce json
// @Param facility query int false "Facility ID"
// @Success 200 {object} AuditReport
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /operations/audit [get]
func (h *Handler) HandleAudit(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)
	facility := h.facilityOf(c)

	report, err := h.service.Audit(c.Context(), facility)
	if err != nil {
		l.Error("Audit failed", zap.Int64("facility", facility), zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	if len(report.Anomalies) > 0 {
		l.Warn("Reconciliation anomalies", zap.Int64("facility", facility), zap.Int("count", len(report.Anomalies)))
	}
	return c.JSON(report)
}

// HandleGet returns a single operation with its timeline.
// @Summary Get Operation
// @Description Returns one operation by id (res-N or oc-N), including its timeline.
// @Tags operations
// @Produce json
// @Param id path string true "Operation ID"
// @Param facility query int false "Facility ID"
// @Success 200 {object} reconcile.Operation
// @Failure 404 {object} map[string]string "Not Found"
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /operations/{id} [get]
func (h *Handler) HandleGet(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)
	facility := h.facilityOf(c)
	id := c.Params("id")

	op, err := h.service.Get(c.Context(), facility, id)
	if errors.Is(err, ErrOperationNotFound) {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": err.Error(), "id": id})
	}
	if err != nil {
		l.Error("Failed to get operation", zap.String("id", id), zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	return c.JSON(op)
}
