package admin

import "errors"

var (
	// ErrAdminNotFound возвращается, когда администратор не найден
	ErrAdminNotFound = errors.New("admin.repository: admin user not found")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("admin.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("admin.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("admin.repository: failed to scan row")
)
