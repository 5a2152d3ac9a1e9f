package receipts

import "errors"

var (
	// ErrUnsupportedType возвращается для файлов, кроме jpg, jpeg, png и pdf
	ErrUnsupportedType = errors.New("receipts.storage: unsupported receipt file type")

	// ErrReceiptNotFound возвращается, когда объекта нет в бакете
	ErrReceiptNotFound = errors.New("receipts.storage: receipt not found")

	// ErrStorage возвращается при ошибках объектного хранилища
	ErrStorage = errors.New("receipts.storage: object storage error")
)
