package bookings

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	bookingRepo "github.com/m04kA/SMC-AdmissionService/internal/infra/storage/booking"
	"github.com/m04kA/SMC-AdmissionService/internal/service/bookings/models"
)

// Service сервис для чтения и отмены бронирований
type Service struct {
	bookingRepo BookingRepository
	dispatcher  CancelDispatcher
	logger      Logger
}

// NewService создает новый экземпляр сервиса бронирований
func NewService(
	bookingRepo BookingRepository,
	dispatcher CancelDispatcher,
	logger Logger,
) *Service {
	return &Service{
		bookingRepo: bookingRepo,
		dispatcher:  dispatcher,
		logger:      logger,
	}
}

// GetByID получает бронирование по ID
func (s *Service) GetByID(ctx context.Context, id int64) (*models.BookingResponse, error) {
	s.logger.Info("GetByID: fetching booking id=%d", id)

	if id <= 0 {
		return nil, fmt.Errorf("%w: id must be positive", ErrInvalidInput)
	}

	booking, err := s.bookingRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("GetByID: booking id=%d not found", id)
			return nil, ErrBookingNotFound
		}
		s.logger.Error("GetByID: repository error for booking id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: GetByID - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainBooking(booking), nil
}

// List получает бронирования, новые первыми.
// Опционально фильтрует по дате и статусу
func (s *Service) List(ctx context.Context, req *models.GetBookingsRequest) (*models.BookingListResponse, error) {
	filter, err := req.ToDomainFilter()
	if err != nil {
		s.logger.Warn("List: invalid filter: %v", err)
		return nil, fmt.Errorf("%w: invalid filter: %v", ErrInvalidInput, err)
	}

	bookings, err := s.bookingRepo.List(ctx, filter)
	if err != nil {
		s.logger.Error("List: repository error: %v", err)
		return nil, fmt.Errorf("%w: List - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("List: successfully fetched %d bookings", len(bookings))
	return models.FromDomainBookingList(bookings), nil
}

// Cancel передаёт отмену в workflow и возвращает его ответ без изменений
func (s *Service) Cancel(ctx context.Context, req *models.CancelBookingRequest) (json.RawMessage, error) {
	bookingID := strings.TrimSpace(req.BookingID)
	if bookingID == "" {
		return nil, fmt.Errorf("%w: bookingId is required", ErrInvalidInput)
	}

	s.logger.Info("Cancel: forwarding cancellation for booking id=%s", bookingID)

	body, err := s.dispatcher.Cancel(ctx, bookingID)
	if err != nil {
		s.logger.Error("Cancel: workflow rejected cancellation for booking id=%s: %v", bookingID, err)
		return nil, fmt.Errorf("%w: %v", ErrCancelFailed, err)
	}

	s.logger.Info("Cancel: cancellation forwarded for booking id=%s", bookingID)
	return body, nil
}
