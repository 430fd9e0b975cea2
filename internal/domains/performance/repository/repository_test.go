package repository_test

import (
	"context"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"

	"nyumbani/infras/otel/mocks"
	"nyumbani/infras/postgres"
	"nyumbani/internal/domains/performance/model"
	"nyumbani/internal/domains/performance/repository"
	gDto "nyumbani/shared/dto"
)

func newRepository(t *testing.T) (repository.Performance, sqlmock.Sqlmock) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to open sqlmock: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	conn := &postgres.Connection{
		Read:  sqlx.NewDb(db, "sqlmock"),
		Write: sqlx.NewDb(db, "sqlmock"),
	}

	return repository.New(conn, mocks.NewOtel()), mock
}

func performanceRow() model.EmployeePerformance {
	return model.EmployeePerformance{
		ID:                 "perf-1",
		AdminID:            "admin-1",
		Month:              "2026-08",
		PropertiesManaged:  6,
		BookingsReceived:   20,
		BookingsApproved:   12,
		BookingsCompleted:  10,
		ConversionRate:     12,
		ResponseTimeHours:  3,
		SatisfactionRating: 4.5,
		Revenue:            2500000,
		OccupancyRate:      80,
	}
}

func TestPerformanceRepository_Upsert(t *testing.T) {
	t.Run("writes with an on-conflict clause on the month key", func(t *testing.T) {
		repo, mock := newRepository(t)

		mock.ExpectExec(`INSERT INTO employee_performance \(.+\) VALUES \(.+\) ON CONFLICT \(admin_id, month\) DO UPDATE SET .*conversion_rate = EXCLUDED\.conversion_rate`).
			WillReturnResult(sqlmock.NewResult(0, 1))

		err := repo.Upsert(context.Background(), performanceRow())

		assert.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("conflict clause never rewrites the identity columns", func(t *testing.T) {
		repo, mock := newRepository(t)

		// The SET list starts at the first metric column and ends with the
		// modification metadata, so id, admin_id, month, created_at and
		// created_by are left untouched on conflict.
		mock.ExpectExec(`DO UPDATE SET properties_managed = EXCLUDED\.properties_managed, .*modified_by = EXCLUDED\.modified_by$`).
			WillReturnResult(sqlmock.NewResult(0, 1))

		assert.NoError(t, repo.Upsert(context.Background(), performanceRow()))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("database errors surface", func(t *testing.T) {
		repo, mock := newRepository(t)

		mock.ExpectExec(`INSERT INTO employee_performance`).
			WillReturnError(errors.New("connection reset"))

		err := repo.Upsert(context.Background(), performanceRow())

		assert.Error(t, err)
	})
}

func TestPerformanceRepository_Count(t *testing.T) {
	repo, mock := newRepository(t)

	mock.ExpectPrepare(`SELECT COUNT\(employee_performance\.id\) FROM employee_performance`).
		ExpectQuery().
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(3))

	filter := gDto.FilterGroup{
		Filters: []any{
			gDto.Filter{Field: model.FieldMonth, Value: "2026-08", Operator: gDto.FilterOperatorEq, Table: model.TableName},
		},
	}

	count, err := repo.Count(context.Background(), filter)

	assert.NoError(t, err)
	assert.Equal(t, 3, count)
	assert.NoError(t, mock.ExpectationsWereMet())
}
