package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"context"
	"fmt"
	"slotbook/infras/otel"
	"slotbook/infras/postgres"
	"slotbook/internal/domains/reservation/model"
	"slotbook/shared/constant"
	gDto "slotbook/shared/dto"
	"slotbook/shared/logger"
	gRepo "slotbook/shared/repository"
	"time"

	"github.com/jmoiron/sqlx"
)

// Reservation is the store behind the admission engine. Plain reads go
// through the generic repository; the Tx methods run inside the admission
// transaction so quota and overlap checks observe one consistent snapshot.
type Reservation interface {
	Insert(ctx context.Context, model model.Reservation) error
	Get(ctx context.Context, filter gDto.FilterGroup, columns ...string) (model.Reservation, error)
	GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup, columns ...string) ([]model.Reservation, error)
	Count(ctx context.Context, filter gDto.FilterGroup) (int, error)

	WithTx(ctx context.Context, fn func(ctx context.Context, tx *sqlx.Tx) error) error
	LockAdmissionTx(ctx context.Context, tx *sqlx.Tx, holder string, date time.Time) error
	SumHoursTx(ctx context.Context, tx *sqlx.Tx, holder string, from, to time.Time) (int, error)
	HasOverlapTx(ctx context.Context, tx *sqlx.Tx, date time.Time, startHour, endHour int) (bool, error)
	InsertTx(ctx context.Context, tx *sqlx.Tx, model model.Reservation) error

	DeleteByID(ctx context.Context, id string) (bool, error)
}

type repositoryImpl struct {
	gRepo.Repository[model.Reservation]
	db   *postgres.Connection
	otel otel.Otel
}

func New(db *postgres.Connection, otel otel.Otel) Reservation {
	return &repositoryImpl{
		Repository: gRepo.NewRepository[model.Reservation](model.EntityName, model.TableName, model.FieldID, db, otel),
		db:         db,
		otel:       otel,
	}
}

// WithTx runs fn inside a single transaction on the write connection,
// committing on nil and rolling back on error.
func (repo *repositoryImpl) WithTx(ctx context.Context, fn func(ctx context.Context, tx *sqlx.Tx) error) error {
	ctx, scope := repo.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".reservation.WithTx")
	defer scope.End()

	tx, err := repo.db.Write.BeginTxx(ctx, nil)
	if err != nil {
		logger.ErrorWithStack(err)
		scope.TraceError(err)

		return fmt.Errorf("failed to begin transaction (%s): %w", model.EntityName, err)
	}

	if err := fn(ctx, tx); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			logger.ErrorWithStack(rbErr)
		}

		return err
	}

	if err := tx.Commit(); err != nil {
		logger.ErrorWithStack(err)
		scope.TraceError(err)

		return fmt.Errorf("failed to commit transaction (%s): %w", model.EntityName, err)
	}

	return nil
}

// LockAdmissionTx serializes concurrent admissions that could race on the
// same invariants: one advisory lock per holder covers the quota sums, one
// per date covers the overlap scan. Both locks are transaction scoped and
// always taken in the same order, holder before date.
func (repo *repositoryImpl) LockAdmissionTx(ctx context.Context, tx *sqlx.Tx, holder string, date time.Time) error {
	ctx, scope := repo.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".reservation.LockAdmissionTx")
	defer scope.End()

	query := "SELECT pg_advisory_xact_lock(hashtext($1))"
	scope.SetAttribute(constant.OtelQueryAttributeKey, query)

	for _, key := range []string{
		"holder:" + holder,
		"date:" + date.Format(constant.SlotDateFormat),
	} {
		if _, err := tx.ExecContext(ctx, query, key); err != nil {
			logger.ErrorWithStack(err)
			scope.TraceError(err)

			return fmt.Errorf("failed to take admission lock (%s): %w", model.EntityName, err)
		}
	}

	return nil
}

// SumHoursTx returns the holder's committed hours over the inclusive date
// window [from, to]. Daily usage is a single-day window, weekly usage a
// Monday-to-Sunday one.
func (repo *repositoryImpl) SumHoursTx(ctx context.Context, tx *sqlx.Tx, holder string, from, to time.Time) (int, error) {
	ctx, scope := repo.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".reservation.SumHoursTx")
	defer scope.End()

	query := fmt.Sprintf(
		"SELECT COALESCE(SUM(%s - %s), 0) FROM %s WHERE %s = $1 AND %s BETWEEN $2 AND $3",
		model.FieldEndHour,
		model.FieldStartHour,
		model.TableName,
		model.FieldHolderName,
		model.FieldSlotDate,
	)
	scope.SetAttribute(constant.OtelQueryAttributeKey, query)

	var hours int

	err := tx.GetContext(
		ctx,
		&hours,
		query,
		holder,
		from.Format(constant.SlotDateFormat),
		to.Format(constant.SlotDateFormat),
	)
	if err != nil {
		logger.ErrorWithStack(err)
		scope.TraceError(err)

		return 0, fmt.Errorf("failed to sum reserved hours (%s): %w", model.EntityName, err)
	}

	return hours, nil
}

// HasOverlapTx reports whether any reservation on the given date intersects
// the half-open range [startHour, endHour). Adjacent ranges sharing only a
// boundary hour do not count.
func (repo *repositoryImpl) HasOverlapTx(ctx context.Context, tx *sqlx.Tx, date time.Time, startHour, endHour int) (bool, error) {
	ctx, scope := repo.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".reservation.HasOverlapTx")
	defer scope.End()

	query := fmt.Sprintf(
		"SELECT EXISTS(SELECT 1 FROM %s WHERE %s = $1 AND %s < $2 AND %s > $3)",
		model.TableName,
		model.FieldSlotDate,
		model.FieldStartHour,
		model.FieldEndHour,
	)
	scope.SetAttribute(constant.OtelQueryAttributeKey, query)

	var exists bool

	err := tx.GetContext(ctx, &exists, query, date.Format(constant.SlotDateFormat), endHour, startHour)
	if err != nil {
		logger.ErrorWithStack(err)
		scope.TraceError(err)

		return false, fmt.Errorf("failed to check slot overlap (%s): %w", model.EntityName, err)
	}

	return exists, nil
}

// DeleteByID removes a reservation and reports whether a row was removed.
func (repo *repositoryImpl) DeleteByID(ctx context.Context, id string) (bool, error) {
	ctx, scope := repo.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".reservation.DeleteByID")
	defer scope.End()

	query := fmt.Sprintf("DELETE FROM %s WHERE %s = $1", model.TableName, model.FieldID)
	scope.SetAttribute(constant.OtelQueryAttributeKey, query)

	result, err := repo.db.Write.ExecContext(ctx, query, id)
	if err != nil {
		logger.ErrorWithStack(err)
		scope.TraceError(err)

		return false, fmt.Errorf("failed to delete data (%s): %w", model.EntityName, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		logger.ErrorWithStack(err)
		scope.TraceError(err)

		return false, fmt.Errorf("failed to read affected rows (%s): %w", model.EntityName, err)
	}

	return affected > 0, nil
}
