package create_booking

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-AdmissionService/internal/api/handlers"
	"github.com/m04kA/SMC-AdmissionService/internal/service/bookings/models"
	admitBooking "github.com/m04kA/SMC-AdmissionService/internal/usecase/admit_booking"
)

const (
	msgCreated            = "заявка на запись принята"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidDate        = "некорректный формат даты записи, ожидается YYYY-MM-DD"
	msgInvalidRequest     = "не заполнены обязательные поля или поля некорректны"
	msgDateInPast         = "нельзя записаться на прошедшую дату"
	msgDateTooSoon        = "запись возможна не раньше чем через две недели"
	msgDateTooFar         = "запись возможна не более чем на 3 месяца вперёд"
	msgWeekend            = "в выходные запись недоступна"
	msgDuplicate          = "повторная заявка, подождите перед повторной отправкой"
	msgFullyBooked        = "на выбранную дату мест нет, выберите другую дату"
	msgAlreadyExists      = "запись с такими данными уже существует"
	msgDispatchFailed     = "не удалось передать заявку, попробуйте позже"
	msgDedupUnavailable   = "сервис временно недоступен, попробуйте позже"
)

var rejectionStatus = map[admitBooking.RejectReason]struct {
	status  int
	message string
}{
	admitBooking.ReasonInvalidRequest:   {http.StatusBadRequest, msgInvalidRequest},
	admitBooking.ReasonDateInPast:       {http.StatusBadRequest, msgDateInPast},
	admitBooking.ReasonDateTooSoon:      {http.StatusBadRequest, msgDateTooSoon},
	admitBooking.ReasonDateTooFar:       {http.StatusBadRequest, msgDateTooFar},
	admitBooking.ReasonWeekend:          {http.StatusBadRequest, msgWeekend},
	admitBooking.ReasonDuplicate:        {http.StatusConflict, msgDuplicate},
	admitBooking.ReasonFullyBooked:      {http.StatusConflict, msgFullyBooked},
	admitBooking.ReasonAlreadyExists:    {http.StatusConflict, msgAlreadyExists},
	admitBooking.ReasonDispatchFailed:   {http.StatusBadGateway, msgDispatchFailed},
	admitBooking.ReasonDedupUnavailable: {http.StatusServiceUnavailable, msgDedupUnavailable},
}

type Handler struct {
	useCase AdmitBookingUseCase
	logger  Logger
}

func NewHandler(useCase AdmitBookingUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/bookings
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req CreateBookingRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /bookings - Invalid request body: %v", err)
		handlers.RespondReason(w, http.StatusBadRequest, msgInvalidRequestBody, string(admitBooking.ReasonInvalidRequest))
		return
	}

	useCaseReq, err := req.ToUseCaseRequest()
	if err != nil {
		h.logger.Warn("POST /bookings - Failed to parse appointment date: %v", err)
		handlers.RespondReason(w, http.StatusBadRequest, msgInvalidDate, string(admitBooking.ReasonInvalidRequest))
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		var rejection *admitBooking.RejectionError
		if !errors.As(err, &rejection) {
			h.logger.Error("POST /bookings - Failed to admit booking: email=%s, error=%v", req.Email, err)
			handlers.RespondInternalError(w)
			return
		}

		mapping, ok := rejectionStatus[rejection.Reason]
		if !ok {
			h.logger.Error("POST /bookings - Unmapped rejection reason=%s", rejection.Reason)
			handlers.RespondInternalError(w)
			return
		}

		if mapping.status >= http.StatusInternalServerError {
			h.logger.Error("POST /bookings - Rejected: reason=%s, error=%v", rejection.Reason, err)
		} else {
			h.logger.Warn("POST /bookings - Rejected: reason=%s, detail=%s", rejection.Reason, rejection.Detail)
		}

		handlers.RespondJSON(w, mapping.status, RejectionResponse{
			Error:           mapping.message,
			Reason:          string(rejection.Reason),
			CurrentBookings: rejection.CurrentBookings,
			ExistingBooking: models.FromDomainBooking(rejection.ExistingBooking),
		})
		return
	}

	h.logger.Info("POST /bookings - Booking admitted: booking_id=%s", result.BookingID)
	handlers.RespondJSON(w, http.StatusCreated, CreateBookingResponse{
		Message:   msgCreated,
		BookingID: result.BookingID,
		Status:    string(result.Status),
	})
}
