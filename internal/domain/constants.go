package domain

// Time format constants
const (
	DateFormat  = "2006-01-02" // YYYY-MM-DD
	MonthFormat = "2006-01"    // YYYY-MM
)

// Business validation constants
const (
	ShortIDLength          = 8
	MaxNameLength          = 100
	MaxReasonLength        = 500
	MaxNoteLength          = 1000
	MaxReceiptSizeBytes    = 5 << 20 // 5 MB
	MaxAppointmentTypeName = 100
)

// ReceiptContentTypes допустимые расширения чека об оплате и их MIME-типы
var ReceiptContentTypes = map[string]string{
	".jpg":  "image/jpeg",
	".jpeg": "image/jpeg",
	".png":  "image/png",
	".pdf":  "application/pdf",
}

// SlotHoldingStatuses статусы записей, занимающих час в расписании
var SlotHoldingStatuses = []AppointmentStatus{
	StatusPending,
	StatusApproved,
	StatusDone,
}
