package handlers

import (
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"retail-pos/internal/checkout"
	"retail-pos/internal/inventory"
	"retail-pos/internal/metrics"
	"retail-pos/internal/models"
	"retail-pos/internal/money"
	"retail-pos/internal/receipt"
	"retail-pos/internal/repository"
)

type CheckoutHandler struct {
	orchestrator *checkout.Orchestrator
	assembler    *receipt.Assembler
	transactions *repository.TransactionRepository
	metrics      *metrics.CheckoutMetrics
}

func NewCheckoutHandler(orchestrator *checkout.Orchestrator, assembler *receipt.Assembler, transactions *repository.TransactionRepository, m *metrics.CheckoutMetrics) *CheckoutHandler {
	return &CheckoutHandler{
		orchestrator: orchestrator,
		assembler:    assembler,
		transactions: transactions,
		metrics:      m,
	}
}

type checkoutItemRequest struct {
	ID       string  `json:"id" binding:"required"`
	Quantity int64   `json:"quantity" binding:"required"`
	Price    float64 `json:"price"`
}

// checkoutRequest replica el payload del POS. Subtotal, tax y total
// del cliente son solo informativos: el servidor recalcula todo con
// los precios vigentes del catálogo.
type checkoutRequest struct {
	Items          []checkoutItemRequest `json:"items" binding:"required,min=1,dive"`
	Subtotal       float64               `json:"subtotal"`
	Tax            float64               `json:"tax"`
	Discount       float64               `json:"discount"`
	Total          float64               `json:"total"`
	PaymentMethod  string                `json:"payment_method" binding:"required,oneof=cash gcash"`
	AmountReceived float64               `json:"amount_received"`
	GcashReference string                `json:"gcash_reference"`
}

// Checkout procesa POST /pos/checkout
func (h *CheckoutHandler) Checkout(c *gin.Context) {
	started := time.Now()

	var req checkoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": err.Error()})
		return
	}

	input := checkout.Request{
		Items:          make([]checkout.ItemInput, 0, len(req.Items)),
		Discount:       money.FromFloat(req.Discount),
		PaymentMethod:  models.PaymentMethod(req.PaymentMethod),
		AmountReceived: money.FromFloat(req.AmountReceived),
		GcashReference: req.GcashReference,
	}
	for _, item := range req.Items {
		input.Items = append(input.Items, checkout.ItemInput{
			ProductID: item.ID,
			Quantity:  item.Quantity,
			UnitPrice: money.FromFloat(item.Price),
		})
	}

	tx, err := h.orchestrator.Checkout(c.Request.Context(), input)
	if err != nil {
		status, message := classifyCheckoutError(err)
		if status == http.StatusInternalServerError {
			log.Printf("checkout failed: %v", err)
			h.observe("error", req.PaymentMethod, started)
		} else {
			h.observe("rejected", req.PaymentMethod, started)
		}
		c.JSON(status, gin.H{"success": false, "message": message})
		return
	}

	h.observe("completed", req.PaymentMethod, started)
	c.JSON(http.StatusOK, gin.H{
		"success":     true,
		"transaction": tx,
		"receipt":     h.assembler.Assemble(tx),
	})
}

// GetReceipt rearma el recibo de una venta ya registrada (reimpresión)
func (h *CheckoutHandler) GetReceipt(c *gin.Context) {
	reference := c.Param("reference")

	tx, err := h.transactions.FindByReference(c.Request.Context(), reference)
	if err != nil {
		if errors.Is(err, repository.ErrTransactionNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "transaction not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "failed to load transaction"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "receipt": h.assembler.Assemble(tx)})
}

func (h *CheckoutHandler) observe(outcome, paymentMethod string, started time.Time) {
	if h.metrics != nil {
		h.metrics.Observe(outcome, paymentMethod, started)
	}
}

// classifyCheckoutError separa rechazos de negocio (400, con el motivo
// exacto para que el cajero corrija) de fallas de infraestructura
// (500, mensaje genérico).
func classifyCheckoutError(err error) (int, string) {
	var stockErr *inventory.InsufficientStockError
	if errors.As(err, &stockErr) {
		return http.StatusBadRequest, stockErr.Error()
	}

	for _, known := range []error{
		checkout.ErrEmptyCart,
		checkout.ErrInvalidDiscount,
		checkout.ErrDiscountExceedsTotal,
		checkout.ErrInsufficientPayment,
		checkout.ErrMissingReference,
		checkout.ErrInvalidPaymentMethod,
		inventory.ErrInvalidQuantity,
		inventory.ErrProductNotFound,
	} {
		if errors.Is(err, known) {
			return http.StatusBadRequest, err.Error()
		}
	}

	return http.StatusInternalServerError, "checkout failed"
}
