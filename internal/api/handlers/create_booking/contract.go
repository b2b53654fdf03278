package create_booking

import (
	"context"

	admitBooking "github.com/m04kA/SMC-AdmissionService/internal/usecase/admit_booking"
)

type AdmitBookingUseCase interface {
	Execute(ctx context.Context, req *admitBooking.Request) (*admitBooking.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
