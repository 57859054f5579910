package adaptor

import (
	"errors"
	"net/http"

	"go.uber.org/zap"

	"ticket-ledger/internal/data/entity"
	"ticket-ledger/internal/usecase"
	"ticket-ledger/pkg/utils"
)

type Handler struct {
	Venue    *VenueHandler
	Purchase *PurchaseHandler
	Token    *TokenHandler
}

func NewHandler(service *usecase.Service, log *zap.Logger) *Handler {
	return &Handler{
		Venue:    NewVenueHandler(service.Venue, log),
		Purchase: NewPurchaseHandler(service.Purchase, log),
		Token:    NewTokenHandler(service.Token, log),
	}
}

// respondServiceError maps the ledger error taxonomy onto HTTP statuses.
// Every expected failure is a sentinel the handler can branch on.
func respondServiceError(w http.ResponseWriter, log *zap.Logger, err error, operation string) {
	var fault *entity.ConsistencyFaultError

	switch {
	case errors.As(err, &fault):
		// Already logged with full detail at the service layer; the
		// client only learns that manual intervention is needed.
		log.Error("Consistency fault surfaced to client",
			zap.Error(err),
			zap.String("operation", operation))
		utils.ResponseInternalError(w, "Purchase partially failed; contact support with your transfer reference")

	case errors.Is(err, entity.ErrNotFound), errors.Is(err, entity.ErrTierNotFound):
		log.Warn(operation+" failed - not found",
			zap.Error(err),
			zap.String("operation", operation))
		utils.ResponseNotFound(w, err.Error())

	case errors.Is(err, entity.ErrAlreadyExists):
		log.Warn(operation+" failed - already exists",
			zap.Error(err),
			zap.String("operation", operation))
		utils.ResponseConflict(w, err.Error())

	case errors.Is(err, entity.ErrUnauthorized):
		log.Warn(operation+" failed - unauthorized",
			zap.Error(err),
			zap.String("operation", operation))
		utils.ResponseUnauthorized(w, err.Error())

	case errors.Is(err, entity.ErrInsufficientSupply):
		log.Warn(operation+" failed - insufficient supply",
			zap.Error(err),
			zap.String("operation", operation))
		utils.ResponseConflict(w, err.Error())

	case errors.Is(err, entity.ErrPaymentFailed):
		log.Warn(operation+" failed - payment rejected",
			zap.Error(err),
			zap.String("operation", operation))
		utils.ResponsePaymentRequired(w, err.Error())

	case errors.Is(err, entity.ErrInvalidArgument):
		log.Warn(operation+" failed - invalid argument",
			zap.Error(err),
			zap.String("operation", operation))
		utils.ResponseBadRequest(w, err.Error(), nil)

	default:
		log.Error("Failed to "+operation,
			zap.Error(err),
			zap.String("operation", operation))
		utils.ResponseInternalError(w, "Internal server error")
	}
}
