package shared

import (
	"errors"

	"github.com/souqline/internal/http/response"
	"github.com/souqline/internal/logger"
	"github.com/souqline/internal/service"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// RequestLog returns a logger carrying the request_id.
func RequestLog(c *gin.Context) *zap.SugaredLogger {
	if c == nil {
		return logger.S()
	}
	if requestID, ok := c.Get("request_id"); ok {
		if id, ok := requestID.(string); ok && id != "" {
			return logger.SW("request_id", id)
		}
	}
	return logger.S()
}

// RespondError writes an error response, logging the original error when
// present.
func RespondError(c *gin.Context, code int, msg string, err error) {
	appErr := response.WrapError(code, msg, err)
	if err != nil {
		RequestLog(c).Errorw("handler_error",
			"code", appErr.Code,
			"message", appErr.Message,
			"error", err,
		)
	}
	response.Error(c, appErr.Code, appErr.Message)
}

// serviceErrorCodes maps service sentinels to business codes.
var serviceErrorCodes = []struct {
	target error
	code   int
}{
	{service.ErrOrderNotFound, response.CodeNotFound},
	{service.ErrOrderStatusInvalid, response.CodeBadRequest},
	{service.ErrOrderNotReady, response.CodeBadRequest},
	{service.ErrOrderAlreadyAssigned, response.CodeConflict},
	{service.ErrOrderReasonRequired, response.CodeUnprocessable},
	{service.ErrActorForbidden, response.CodeForbidden},
	{service.ErrPersonnelNotFound, response.CodeNotFound},
	{service.ErrPersonnelInactive, response.CodeUnprocessable},
	{service.ErrPersonnelUnavailable, response.CodeUnprocessable},
	{service.ErrPersonnelStatusInvalid, response.CodeUnprocessable},
	{service.ErrPersonnelDetailsRequired, response.CodeUnprocessable},
	{service.ErrPersonnelPhoneTaken, response.CodeUnprocessable},
	{service.ErrWalletOwnerNotFound, response.CodeNotFound},
	{service.ErrWalletInvalidAmount, response.CodeUnprocessable},
	{service.ErrWalletInsufficientBalance, response.CodeUnprocessable},
	{service.ErrWithdrawalNotFound, response.CodeNotFound},
	{service.ErrWithdrawalAmountOutOfRange, response.CodeUnprocessable},
	{service.ErrWithdrawalMethodInvalid, response.CodeUnprocessable},
	{service.ErrWithdrawalDetailsRequired, response.CodeUnprocessable},
	{service.ErrWithdrawalPendingExists, response.CodeUnprocessable},
	{service.ErrWithdrawalAlreadyProcessed, response.CodeUnprocessable},
	{service.ErrWithdrawalReasonRequired, response.CodeUnprocessable},
	{service.ErrUserNotFound, response.CodeNotFound},
	{service.ErrSellerNotFound, response.CodeNotFound},
	{service.ErrCityNotFound, response.CodeNotFound},
	{service.ErrCityNameTaken, response.CodeUnprocessable},
	{service.ErrInvalidCredentials, response.CodeUnauthorized},
	{service.ErrNotificationNotFound, response.CodeNotFound},
}

// RespondServiceError translates a service error to the response
// envelope, falling back to an internal error.
func RespondServiceError(c *gin.Context, err error) {
	for _, rule := range serviceErrorCodes {
		if errors.Is(err, rule.target) {
			response.Error(c, rule.code, rule.target.Error())
			return
		}
	}
	RespondError(c, response.CodeInternal, "internal error", err)
}
