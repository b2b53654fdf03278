package cleanup_duplicates

import (
	"context"
	"fmt"

	"github.com/m04kA/SMC-AdmissionService/internal/domain"
)

// UseCase use case удаления дубликатов бронирований
type UseCase struct {
	store  BookingStore
	logger Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(store BookingStore, logger Logger) *UseCase {
	return &UseCase{
		store:  store,
		logger: logger,
	}
}

// Execute группирует бронирования по (email, госномер, дата) и оставляет в группе одну строку:
// со статусом, при равенстве самую раннюю. Остальные удаляются по одной,
// ошибка удаления строки логируется и не прерывает очистку.
func (uc *UseCase) Execute(ctx context.Context) (*Response, error) {
	bookings, err := uc.store.ListByCreation(ctx)
	if err != nil {
		uc.logger.Error("CleanupDuplicates: failed to list bookings: %v", err)
		return nil, fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}

	groups := groupByKey(bookings)
	resp := &Response{FailedIDs: make([]int64, 0)}

	for _, group := range groups {
		if len(group) < 2 {
			continue
		}
		resp.DuplicateGroups++

		keep := pickKept(group)
		for _, b := range group {
			if b.ID == keep.ID {
				continue
			}
			if err := uc.store.Delete(ctx, b.ID); err != nil {
				uc.logger.Warn("CleanupDuplicates: failed to delete booking id=%d: %v", b.ID, err)
				resp.FailedIDs = append(resp.FailedIDs, b.ID)
				continue
			}
			resp.DeletedCount++
		}
	}

	uc.logger.Info("CleanupDuplicates: deleted=%d, groups=%d, failed=%d", resp.DeletedCount, resp.DuplicateGroups, len(resp.FailedIDs))
	return resp, nil
}

// groupByKey группирует с сохранением порядка первого появления ключа
func groupByKey(bookings []*domain.Booking) [][]*domain.Booking {
	index := make(map[string]int)
	groups := make([][]*domain.Booking, 0)

	for _, b := range bookings {
		key := b.Key()
		i, ok := index[key]
		if !ok {
			i = len(groups)
			index[key] = i
			groups = append(groups, nil)
		}
		groups[i] = append(groups[i], b)
	}

	return groups
}

func pickKept(group []*domain.Booking) *domain.Booking {
	keep := group[0]
	for _, b := range group[1:] {
		switch {
		case b.HasStatus() && !keep.HasStatus():
			keep = b
		case b.HasStatus() == keep.HasStatus() && b.CreatedAt.Before(keep.CreatedAt):
			keep = b
		}
	}
	return keep
}
