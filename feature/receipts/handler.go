package receipts

import (
	"errors"
	"strconv"

	"parking-ops/core/logger"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Handler handles HTTP requests for payment receipts.
type Handler struct {
	service  *Service
	facility int64
}

// NewHandler creates a new HTTP handler.
func NewHandler(service *Service, facility int64) *Handler {
	return &Handler{service: service, facility: facility}
}

// RegisterRoutes registers the receipt routes.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	group := app.Group("/receipts")
	group.Get("/:paymentID", h.HandleGet)
	group.Delete("/:paymentID", h.HandleDelete)
}

func (h *Handler) parse(c *fiber.Ctx) (facility, paymentID int64, err error) {
	paymentID, err = strconv.ParseInt(c.Params("paymentID"), 10, 64)
	if err != nil || paymentID <= 0 {
		return 0, 0, errors.New("invalid payment id")
	}
	facility = int64(c.QueryInt("facility", 0))
	if facility <= 0 {
		facility = h.facility
	}
	return facility, paymentID, nil
}

// HandleGet streams the receipt PDF of a completed payment.
// @Summary Get Receipt
// @Description Streams the receipt of a completed payment, rendering and storing it on first request.
// @Tags receipts
// @Produce application/pdf
// @Param paymentID path int true "Payment ID"
// @Param facility query int false "Facility ID"
// @Param refresh query boolean false "Render again even if a stored copy exists"
// @Success 200 {file} file "Receipt PDF"
// @Failure 400 {object} map[string]string "Bad Request"
// @Failure 404 {object} map[string]string "Payment Not Found"
// @Failure 409 {object} map[string]string "Payment Not Completed"
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /receipts/{paymentID} [get]
func (h *Handler) HandleGet(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	facility, paymentID, err := h.parse(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	receipt, err := h.service.Open(c.Context(), facility, paymentID, c.QueryBool("refresh", false))
	switch {
	case errors.Is(err, ErrPaymentNotFound):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": err.Error()})
	case errors.Is(err, ErrReceiptUnavailable):
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": err.Error()})
	case err != nil:
		l.Error("Failed to open receipt", zap.Int64("payment", paymentID), zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `inline; filename="receipt-`+strconv.FormatInt(paymentID, 10)+`.pdf"`)
	if receipt.Generated {
		c.Set("X-Receipt-Generated", "true")
	}
	return c.SendStream(receipt.Body, int(receipt.Size))
}

// HandleDelete removes a stored receipt.
// @Summary Delete Stored Receipt
// @Description Removes the stored copy of a receipt; the next request renders it again.
// @Tags receipts
// @Param paymentID path int true "Payment ID"
// @Param facility query int false "Facility ID"
// @Success 204 {string} string "No Content"
// @Failure 400 {object} map[string]string "Bad Request"
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /receipts/{paymentID} [delete]
func (h *Handler) HandleDelete(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	facility, paymentID, err := h.parse(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	if err := h.service.Delete(c.Context(), facility, paymentID); err != nil {
		l.Error("Failed to delete receipt", zap.Int64("payment", paymentID), zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	return c.SendStatus(fiber.StatusNoContent)
}
