package get_receipt

import (
	"context"

	"github.com/google/uuid"

	"github.com/m04kA/visa-booking-service/internal/infra/storage/receipts"
)

type AppointmentService interface {
	OpenReceipt(ctx context.Context, shortID string) (*receipts.Object, error)
	OpenReceiptByID(ctx context.Context, id uuid.UUID) (*receipts.Object, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
