package cleanup_duplicates

import (
	"fmt"

	cleanupDuplicates "github.com/m04kA/SMC-AdmissionService/internal/usecase/cleanup_duplicates"
)

// CleanupResponse HTTP response model
type CleanupResponse struct {
	Message         string  `json:"message"`
	DeletedCount    int     `json:"deletedCount"`
	DuplicateGroups int     `json:"duplicateGroups"`
	FailedIDs       []int64 `json:"failedIds,omitempty"`
}

// FromUseCaseResponse конвертирует результат use case в HTTP response
func FromUseCaseResponse(resp *cleanupDuplicates.Response) *CleanupResponse {
	return &CleanupResponse{
		Message:         fmt.Sprintf("Cleaned up %d duplicate bookings", resp.DeletedCount),
		DeletedCount:    resp.DeletedCount,
		DuplicateGroups: resp.DuplicateGroups,
		FailedIDs:       resp.FailedIDs,
	}
}
