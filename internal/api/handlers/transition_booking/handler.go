package transition_booking

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-AdmissionService/internal/api/handlers"
	"github.com/m04kA/SMC-AdmissionService/internal/api/middleware"
	"github.com/m04kA/SMC-AdmissionService/internal/domain"
	transitionBooking "github.com/m04kA/SMC-AdmissionService/internal/usecase/transition_booking"
)

const (
	reasonIllegalTransition = "illegal_transition"
	reasonStatusConflict    = "status_conflict"

	msgInvalidBookingID   = "некорректный ID бронирования"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidStatus      = "некорректный статус, ожидается approved, declined или completed"
	msgUnauthenticated    = "требуется авторизация сотрудника"
	msgNotFound           = "бронирование не найдено"
	msgIllegalTransition  = "переход статуса недопустим"
	msgStatusConflict     = "статус бронирования изменился, обновите данные"
)

type Handler struct {
	useCase TransitionBookingUseCase
	logger  Logger
}

func NewHandler(useCase TransitionBookingUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/bookings/{bookingId}/transitions
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req TransitionRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /bookings/{id}/transitions - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	h.transition(w, r, domain.BookingStatus(req.Status))
}

// HandleFixed POST /api/v1/bookings/{bookingId}/approve|decline|complete
func (h *Handler) HandleFixed(target domain.BookingStatus) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		h.transition(w, r, target)
	}
}

func (h *Handler) transition(w http.ResponseWriter, r *http.Request, target domain.BookingStatus) {
	bookingID, err := strconv.ParseInt(mux.Vars(r)["bookingId"], 10, 64)
	if err != nil {
		h.logger.Warn("POST /bookings/{id}/transitions - Invalid booking ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidBookingID)
		return
	}

	caller, ok := middleware.GetIdentity(r.Context())
	if !ok {
		h.logger.Warn("POST /bookings/{id}/transitions - Missing identity: booking_id=%d", bookingID)
		handlers.RespondUnauthorized(w, msgUnauthenticated)
		return
	}

	result, err := h.useCase.Execute(r.Context(), &transitionBooking.Request{
		BookingID: bookingID,
		Target:    target,
		Caller:    caller,
	})
	if err != nil {
		var illegal *transitionBooking.IllegalTransitionError
		switch {
		case errors.As(err, &illegal):
			h.logger.Warn("POST /bookings/{id}/transitions - Illegal transition: booking_id=%d, %s -> %s",
				bookingID, illegal.Current, illegal.Requested)
			handlers.RespondJSON(w, http.StatusConflict, IllegalTransitionResponse{
				Error:           msgIllegalTransition,
				Reason:          reasonIllegalTransition,
				CurrentStatus:   string(illegal.Current),
				RequestedStatus: string(illegal.Requested),
			})

		case errors.Is(err, transitionBooking.ErrStatusConflict):
			h.logger.Warn("POST /bookings/{id}/transitions - Status conflict: booking_id=%d", bookingID)
			handlers.RespondReason(w, http.StatusConflict, msgStatusConflict, reasonStatusConflict)

		case errors.Is(err, transitionBooking.ErrUnauthenticated):
			handlers.RespondUnauthorized(w, msgUnauthenticated)

		case errors.Is(err, transitionBooking.ErrInvalidInput):
			h.logger.Warn("POST /bookings/{id}/transitions - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidStatus)

		case errors.Is(err, transitionBooking.ErrBookingNotFound):
			h.logger.Warn("POST /bookings/{id}/transitions - Booking not found: booking_id=%d", bookingID)
			handlers.RespondNotFound(w, msgNotFound)

		default:
			h.logger.Error("POST /bookings/{id}/transitions - Failed to transition booking: booking_id=%d, error=%v",
				bookingID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /bookings/{id}/transitions - Booking transitioned: booking_id=%d, status=%s, by=%s, notification=%s",
		bookingID, result.Booking.Status, caller.SubjectID, result.Notification)
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
