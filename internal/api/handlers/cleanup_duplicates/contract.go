package cleanup_duplicates

import (
	"context"

	cleanupDuplicates "github.com/m04kA/SMC-AdmissionService/internal/usecase/cleanup_duplicates"
)

type CleanupUseCase interface {
	Execute(ctx context.Context) (*cleanupDuplicates.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
