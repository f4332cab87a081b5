package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/TwinDots/tdcardsave/internal/dto"
	"github.com/TwinDots/tdcardsave/internal/model"
	"github.com/TwinDots/tdcardsave/internal/service"
)

type PaymentHandler struct {
	svc *service.PaymentService
}

func NewPaymentHandler(svc *service.PaymentService) *PaymentHandler {
	return &PaymentHandler{svc: svc}
}

// Process handles customer checkout payments. Failure responses carry the
// generic decline message only.
func (h *PaymentHandler) Process(c *gin.Context) {
	h.process(c, false)
}

// ProcessBackOffice handles payments keyed in by back-office operators, who
// get the underlying technical detail on failure.
func (h *PaymentHandler) ProcessBackOffice(c *gin.Context) {
	h.process(c, true)
}

func (h *PaymentHandler) process(c *gin.Context, backOffice bool) {
	var req dto.ProcessPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "invalid request: " + err.Error()})
		return
	}

	order, err := h.svc.Order(c.Request.Context(), req.OrderID)
	if err != nil {
		c.Error(err)
		return
	}

	raw := model.RawPaymentInput{
		CardHolderName: req.CardHolderName,
		CardNumber:     req.CardNumber,
		StartMonth:     req.StartMonth,
		StartYear:      req.StartYear,
		ExpiryMonth:    req.ExpiryMonth,
		ExpiryYear:     req.ExpiryYear,
		CV2:            req.CV2,
		IssueNumber:    req.IssueNumber,
	}

	result, err := h.svc.ProcessPayment(c.Request.Context(), raw, order,
		c.ClientIP(), c.Request.UserAgent(), backOffice)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, dto.PaymentResponse{
		OrderID:       order.ID,
		Status:        "paid",
		AuthCode:      result.AuthCode,
		AddressCheck:  result.AddressCheck,
		PostcodeCheck: result.PostcodeCheck,
		CV2Check:      result.CV2Check,
		CardIssuer:    result.CardIssuer,
		CardType:      result.CardType,
	})
}
