package check_date

import (
	"context"

	checkDate "github.com/m04kA/SMC-AdmissionService/internal/usecase/check_date"
)

type CheckDateUseCase interface {
	Execute(ctx context.Context, req *checkDate.Request) (*checkDate.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
