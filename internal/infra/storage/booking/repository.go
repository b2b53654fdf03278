package booking

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-AdmissionService/internal/domain"
	"github.com/m04kA/SMC-AdmissionService/pkg/psqlbuilder"
)

const table = "bookings"

var columns = []string{
	"id",
	"name",
	"email",
	"phone_number",
	"reg",
	"car_make",
	"car_model",
	"car_needs",
	"appointment_date",
	"status",
	"created_at",
}

// Repository репозиторий внешнего хранилища бронирований.
// Вставку строк выполняет внешний workflow, репозиторий только читает,
// меняет статус и удаляет дубликаты.
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория бронирований
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// CountByDate количество бронирований на дату.
// Считаются все строки независимо от статуса, включая declined.
func (r *Repository) CountByDate(ctx context.Context, date time.Time) (int, error) {
	query, args, err := countByDateQuery(date)
	if err != nil {
		return 0, fmt.Errorf("%w: CountByDate - build select query: %v", ErrBuildQuery, err)
	}

	var count int
	if err := r.db.QueryRowContext(ctx, query, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("%w: CountByDate - execute query: %v", ErrUnavailable, err)
	}

	return count, nil
}

// FindByKey ищет бронирование по нормализованным email, госномеру и дате независимо от статуса
func (r *Repository) FindByKey(ctx context.Context, email, reg string, date time.Time) (*domain.Booking, error) {
	query, args, err := findByKeyQuery(email, reg, date)
	if err != nil {
		return nil, fmt.Errorf("%w: FindByKey - build select query: %v", ErrBuildQuery, err)
	}

	booking, err := scanBooking(r.db.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrBookingNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: FindByKey - scan booking: %v", ErrUnavailable, err)
	}

	return booking, nil
}

// GetByID получает бронирование по ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Booking, error) {
	query, args, err := psqlbuilder.Select(columns...).
		From(table).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	booking, err := scanBooking(r.db.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrBookingNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan booking: %v", ErrUnavailable, err)
	}

	return booking, nil
}

// UpdateStatus переводит бронирование из статуса expected в target.
// Обновление условное: если статус уже изменился, возвращается ErrStatusConflict,
// если строки нет, ErrBookingNotFound.
func (r *Repository) UpdateStatus(ctx context.Context, id int64, expected, target domain.BookingStatus) (*domain.Booking, error) {
	query, args, err := updateStatusQuery(id, expected, target)
	if err != nil {
		return nil, fmt.Errorf("%w: UpdateStatus - build update query: %v", ErrBuildQuery, err)
	}

	booking, err := scanBooking(r.db.QueryRowContext(ctx, query, args...))
	if err == nil {
		return booking, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: UpdateStatus - execute update: %v", ErrUnavailable, err)
	}

	// Ни одна строка не обновилась: различаем отсутствие и гонку статусов
	if _, getErr := r.GetByID(ctx, id); getErr != nil {
		return nil, getErr
	}
	return nil, ErrStatusConflict
}

// List получает бронирования с фильтрацией, сначала новые
func (r *Repository) List(ctx context.Context, filter domain.BookingsFilter) ([]*domain.Booking, error) {
	selectBuilder := psqlbuilder.Select(columns...).From(table)

	if filter.Date != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"appointment_date": formatDate(*filter.Date)})
	}
	if filter.Status != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"status": string(*filter.Status)})
	}

	query, args, err := selectBuilder.OrderBy("created_at DESC", "id DESC").ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: List - build select query: %v", ErrBuildQuery, err)
	}

	return r.query(ctx, "List", query, args)
}

// ListByCreation получает все бронирования в порядке создания (для поиска дубликатов)
func (r *Repository) ListByCreation(ctx context.Context) ([]*domain.Booking, error) {
	query, args, err := psqlbuilder.Select(columns...).
		From(table).
		OrderBy("created_at ASC", "id ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListByCreation - build select query: %v", ErrBuildQuery, err)
	}

	return r.query(ctx, "ListByCreation", query, args)
}

// FullyBookedDates даты начиная с from, на которые уже capacity и более бронирований
func (r *Repository) FullyBookedDates(ctx context.Context, from time.Time, capacity int) ([]time.Time, error) {
	query, args, err := fullyBookedDatesQuery(from, capacity)
	if err != nil {
		return nil, fmt.Errorf("%w: FullyBookedDates - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: FullyBookedDates - execute query: %v", ErrUnavailable, err)
	}
	defer rows.Close()

	dates := make([]time.Time, 0)
	for rows.Next() {
		var d time.Time
		if err := rows.Scan(&d); err != nil {
			return nil, fmt.Errorf("%w: FullyBookedDates - scan date: %v", ErrScanRow, err)
		}
		dates = append(dates, domain.DateOnly(d))
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: FullyBookedDates - rows error: %v", ErrUnavailable, err)
	}

	return dates, nil
}

// Delete удаляет бронирование (используется только очисткой дубликатов)
func (r *Repository) Delete(ctx context.Context, id int64) error {
	query, args, err := psqlbuilder.Delete(table).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: Delete - build delete query: %v", ErrBuildQuery, err)
	}

	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: Delete - execute delete: %v", ErrUnavailable, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: Delete - get rows affected: %v", ErrUnavailable, err)
	}

	if rowsAffected == 0 {
		return ErrBookingNotFound
	}

	return nil
}

func (r *Repository) query(ctx context.Context, op, query string, args []interface{}) ([]*domain.Booking, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: %s - execute query: %v", ErrUnavailable, op, err)
	}
	defer rows.Close()

	bookings := make([]*domain.Booking, 0)
	for rows.Next() {
		booking, err := scanBooking(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: %s - scan row: %v", ErrScanRow, op, err)
		}
		bookings = append(bookings, booking)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %s - rows error: %v", ErrUnavailable, op, err)
	}

	return bookings, nil
}

func countByDateQuery(date time.Time) (string, []interface{}, error) {
	return psqlbuilder.Select("COUNT(*)").
		From(table).
		Where(squirrel.Eq{"appointment_date": formatDate(date)}).
		ToSql()
}

func findByKeyQuery(email, reg string, date time.Time) (string, []interface{}, error) {
	return psqlbuilder.Select(columns...).
		From(table).
		Where(squirrel.Eq{"email": domain.NormalizeEmail(email)}).
		Where(squirrel.Eq{"reg": domain.NormalizeReg(reg)}).
		Where(squirrel.Eq{"appointment_date": formatDate(date)}).
		OrderBy("created_at ASC").
		Limit(1).
		ToSql()
}

func updateStatusQuery(id int64, expected, target domain.BookingStatus) (string, []interface{}, error) {
	builder := psqlbuilder.Update(table).
		Set("status", string(target)).
		Where(squirrel.Eq{"id": id})

	// Строки без статуса (NULL или пустая строка) считаются pending
	if expected.Effective() == domain.StatusPending {
		builder = builder.Where(squirrel.Or{
			squirrel.Eq{"status": string(domain.StatusPending)},
			squirrel.Eq{"status": ""},
			squirrel.Eq{"status": nil},
		})
	} else {
		builder = builder.Where(squirrel.Eq{"status": string(expected)})
	}

	return builder.Suffix("RETURNING " + strings.Join(columns, ", ")).ToSql()
}

func fullyBookedDatesQuery(from time.Time, capacity int) (string, []interface{}, error) {
	return psqlbuilder.Select("appointment_date").
		From(table).
		Where(squirrel.GtOrEq{"appointment_date": formatDate(from)}).
		GroupBy("appointment_date").
		Having("COUNT(*) >= ?", capacity).
		OrderBy("appointment_date ASC").
		ToSql()
}

// rowScanner общий интерфейс *sql.Row и *sql.Rows
type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanBooking(row rowScanner) (*domain.Booking, error) {
	var booking domain.Booking
	var status sql.NullString

	err := row.Scan(
		&booking.ID,
		&booking.Name,
		&booking.Email,
		&booking.PhoneNumber,
		&booking.Reg,
		&booking.CarMake,
		&booking.CarModel,
		&booking.CarNeeds,
		&booking.AppointmentDate,
		&status,
		&booking.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	booking.AppointmentDate = domain.DateOnly(booking.AppointmentDate)
	if status.Valid {
		booking.Status = domain.BookingStatus(status.String)
	}

	return &booking, nil
}

// formatDate даты передаются строкой, чтобы сравнение с DATE не зависело от часового пояса сессии
func formatDate(t time.Time) string {
	return domain.DateOnly(t).Format(domain.DateFormat)
}
