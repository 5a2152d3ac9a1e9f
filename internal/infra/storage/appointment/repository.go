package appointment

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/lib/pq"

	"github.com/m04kA/visa-booking-service/internal/domain"
	"github.com/m04kA/visa-booking-service/pkg/dbmetrics"
	"github.com/m04kA/visa-booking-service/pkg/psqlbuilder"
)

// uniqueViolation код ошибки PostgreSQL при нарушении уникального индекса
const uniqueViolation = "23505"

// serializationFailure код ошибки PostgreSQL, когда SERIALIZABLE транзакция проиграла конкурентной
const serializationFailure = "40001"

// slotIndex уникальный индекс "одна действующая запись на час"
const slotIndex = "appointments_slot_uq"

var selectColumns = []string{
	"a.id",
	"a.short_id",
	"a.first_name",
	"a.last_name",
	"a.email",
	"a.phone_number",
	"a.appointment_date",
	"a.appointment_hour",
	"a.appointment_type_id",
	"t.name",
	"a.bank_account_id",
	"b.bank_name",
	"a.receipt_key",
	"a.status",
	"a.rejection_reason",
	"a.meeting_link",
	"a.admin_note",
	"a.created_at",
	"a.updated_at",
}

// Repository репозиторий записей на консультацию
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория записей
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

func baseSelect() squirrel.SelectBuilder {
	return psqlbuilder.Select(selectColumns...).
		From("appointments a").
		Join("appointment_types t ON t.id = a.appointment_type_id").
		LeftJoin("bank_accounts b ON b.id = a.bank_account_id")
}

// Create сохраняет новую запись
// Если час уже занят (уникальный индекс по дате и часу), возвращает ErrSlotTaken
func (r *Repository) Create(ctx context.Context, a *domain.Appointment) (*domain.Appointment, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("appointments").
		Columns(
			"id",
			"short_id",
			"first_name",
			"last_name",
			"email",
			"phone_number",
			"appointment_date",
			"appointment_hour",
			"appointment_type_id",
			"bank_account_id",
			"receipt_key",
			"status",
		).
		Values(
			a.ID,
			a.ShortID,
			a.FirstName,
			a.LastName,
			a.Email,
			a.PhoneNumber,
			a.Date.String(),
			int(a.Hour),
			a.AppointmentTypeID,
			a.BankAccountID,
			a.ReceiptKey,
			a.Status,
		).
		Suffix("RETURNING created_at, updated_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(&createdAt, &updatedAt)
	if IsSlotConflict(err) {
		return nil, ErrSlotTaken
	}
	if err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	a.CreatedAt = createdAt.Time
	a.UpdatedAt = updatedAt.Time

	return a, nil
}

// GetByID получает запись по ID
func (r *Repository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Appointment, error) {
	return r.getOne(ctx, "GetByID", squirrel.Eq{"a.id": id})
}

// GetByShortID получает запись по короткому коду, без учета регистра
func (r *Repository) GetByShortID(ctx context.Context, shortID string) (*domain.Appointment, error) {
	return r.getOne(ctx, "GetByShortID", squirrel.Eq{"a.short_id": strings.ToLower(shortID)})
}

func (r *Repository) getOne(ctx context.Context, method string, where squirrel.Sqlizer) (*domain.Appointment, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := baseSelect().Where(where).ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: %s - build select query: %v", ErrBuildQuery, method, err)
	}

	a, err := scanAppointment(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrAppointmentNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %s - scan appointment: %v", ErrScanRow, method, err)
	}

	return a, nil
}

// List возвращает записи по фильтру администратора
func (r *Repository) List(ctx context.Context, filter domain.AppointmentsFilter) ([]*domain.Appointment, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := listQuery(filter).ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: List - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: List - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	appointments := make([]*domain.Appointment, 0)
	for rows.Next() {
		a, err := scanAppointment(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: List - scan appointment: %v", ErrScanRow, err)
		}
		appointments = append(appointments, a)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: List - rows iteration: %v", ErrExecQuery, err)
	}

	return appointments, nil
}

func listQuery(filter domain.AppointmentsFilter) squirrel.SelectBuilder {
	builder := baseSelect()

	if filter.Status != nil {
		builder = builder.Where(squirrel.Eq{"a.status": *filter.Status})
	}

	switch {
	case filter.Date != nil:
		builder = builder.Where(squirrel.Eq{"a.appointment_date": filter.Date.String()})
	case filter.Month != nil:
		builder = builder.Where(squirrel.And{
			squirrel.GtOrEq{"a.appointment_date": filter.Month.FirstDay().String()},
			squirrel.LtOrEq{"a.appointment_date": filter.Month.LastDay().String()},
		})
	}

	if search := strings.TrimSpace(filter.Search); search != "" {
		pattern := "%" + escapeLike(search) + "%"
		builder = builder.Where(squirrel.Or{
			squirrel.ILike{"a.first_name": pattern},
			squirrel.ILike{"a.last_name": pattern},
			squirrel.ILike{"a.email": pattern},
			squirrel.ILike{"a.short_id": pattern},
		})
	}

	dir := "DESC"
	if filter.OrderAsc {
		dir = "ASC"
	}

	switch filter.OrderBy {
	case domain.OrderByDate:
		builder = builder.OrderBy("a.appointment_date "+dir, "a.appointment_hour "+dir)
	case domain.OrderByName:
		builder = builder.OrderBy("a.last_name "+dir, "a.first_name "+dir)
	case domain.OrderByStatus:
		builder = builder.OrderBy("a.status "+dir, "a.created_at DESC")
	default:
		builder = builder.OrderBy("a.created_at " + dir)
	}

	return builder
}

// GetTakenHours возвращает часы даты, занятые действующими (не отклоненными) записями
// exclude - запись, которая не учитывается (перенос записи)
func (r *Repository) GetTakenHours(ctx context.Context, date domain.Date, exclude *uuid.UUID) ([]domain.HourSlot, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	builder := psqlbuilder.Select("appointment_hour").
		From("appointments").
		Where(squirrel.Eq{"appointment_date": date.String()}).
		Where(squirrel.Eq{"status": domain.SlotHoldingStatuses}).
		OrderBy("appointment_hour")
	if exclude != nil {
		builder = builder.Where(squirrel.NotEq{"id": *exclude})
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetTakenHours - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetTakenHours - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	hours := make([]domain.HourSlot, 0)
	for rows.Next() {
		var h int
		if err := rows.Scan(&h); err != nil {
			return nil, fmt.Errorf("%w: GetTakenHours - scan hour: %v", ErrScanRow, err)
		}
		hours = append(hours, domain.HourSlot(h))
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: GetTakenHours - rows iteration: %v", ErrExecQuery, err)
	}

	return hours, nil
}

// Update сохраняет изменяемые поля записи: статус, комментарии, ссылку на встречу и слот
func (r *Repository) Update(ctx context.Context, a *domain.Appointment) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("appointments").
		Set("status", a.Status).
		Set("rejection_reason", a.RejectionReason).
		Set("meeting_link", a.MeetingLink).
		Set("admin_note", a.AdminNote).
		Set("appointment_date", a.Date.String()).
		Set("appointment_hour", int(a.Hour)).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": a.ID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: Update - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if IsSlotConflict(err) {
		return ErrSlotTaken
	}
	if err != nil {
		return fmt.Errorf("%w: Update - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: Update - get rows affected: %v", ErrExecQuery, err)
	}
	if rowsAffected == 0 {
		return ErrAppointmentNotFound
	}

	return nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanAppointment(row rowScanner) (*domain.Appointment, error) {
	var (
		a                    domain.Appointment
		date                 sql.NullTime
		hour                 int
		bankAccountID        uuid.NullUUID
		bankName             sql.NullString
		rejectionReason      sql.NullString
		meetingLink          sql.NullString
		adminNote            sql.NullString
		status               string
		createdAt, updatedAt sql.NullTime
	)

	if err := row.Scan(
		&a.ID,
		&a.ShortID,
		&a.FirstName,
		&a.LastName,
		&a.Email,
		&a.PhoneNumber,
		&date,
		&hour,
		&a.AppointmentTypeID,
		&a.AppointmentTypeName,
		&bankAccountID,
		&bankName,
		&a.ReceiptKey,
		&status,
		&rejectionReason,
		&meetingLink,
		&adminNote,
		&createdAt,
		&updatedAt,
	); err != nil {
		return nil, err
	}

	a.Date = domain.DateOf(date.Time)
	a.Hour = domain.HourSlot(hour)
	a.Status = domain.AppointmentStatus(status)
	if bankAccountID.Valid {
		a.BankAccountID = &bankAccountID.UUID
	}
	a.BankName = nullString(bankName)
	a.RejectionReason = nullString(rejectionReason)
	a.MeetingLink = nullString(meetingLink)
	a.AdminNote = nullString(adminNote)
	a.CreatedAt = createdAt.Time
	a.UpdatedAt = updatedAt.Time

	return &a, nil
}

func nullString(s sql.NullString) *string {
	if !s.Valid {
		return nil
	}
	return &s.String
}

// IsSlotConflict распознает нарушение индекса appointments_slot_uq
// и serialization_failure: в SERIALIZABLE транзакции гонка за час проявляется именно так
func IsSlotConflict(err error) bool {
	var pqErr *pq.Error
	if !errors.As(err, &pqErr) {
		return false
	}
	switch string(pqErr.Code) {
	case uniqueViolation:
		return pqErr.Constraint == slotIndex
	case serializationFailure:
		return true
	default:
		return false
	}
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}
