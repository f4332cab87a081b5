package middleware

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/TwinDots/tdcardsave/internal/dto"
	"github.com/TwinDots/tdcardsave/internal/gateway"
	"github.com/TwinDots/tdcardsave/internal/repository"
	"github.com/TwinDots/tdcardsave/internal/service"
)

// MapPaymentError translates a classified payment failure to an HTTP status
// and response body. The body never carries more detail than the error's
// own user message allows.
func MapPaymentError(err error) (int, dto.ErrorResponse) {
	var verr *service.ValidationError
	if errors.As(err, &verr) {
		return http.StatusBadRequest, dto.ErrorResponse{
			Error:  "validation failed",
			Fields: verr.Fields,
		}
	}

	var cerr *service.ConfigurationError
	if errors.As(err, &cerr) {
		log.Error().Err(cerr).Msg("payment configuration error")
		return http.StatusInternalServerError, dto.ErrorResponse{Error: "payment service misconfigured"}
	}

	var perr *service.PaymentError
	if errors.As(err, &perr) {
		if perr.Outcome.Kind == gateway.OutcomeCommunicationFailure {
			return http.StatusBadGateway, dto.ErrorResponse{Error: perr.UserMessage()}
		}
		return http.StatusPaymentRequired, dto.ErrorResponse{Error: perr.UserMessage()}
	}

	if errors.Is(err, repository.ErrOrderNotFound) {
		return http.StatusNotFound, dto.ErrorResponse{Error: "order not found"}
	}

	log.Error().Err(err).Msg("unhandled payment error")
	return http.StatusInternalServerError, dto.ErrorResponse{Error: "internal server error"}
}

func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) > 0 {
			err := c.Errors.Last().Err
			status, resp := MapPaymentError(err)
			c.JSON(status, resp)
		}
	}
}
