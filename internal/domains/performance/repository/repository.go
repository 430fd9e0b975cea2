package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"context"
	"fmt"
	"strings"

	"nyumbani/infras/otel"
	"nyumbani/infras/postgres"
	"nyumbani/internal/domains/performance/model"
	"nyumbani/shared/constant"
	gDto "nyumbani/shared/dto"
	"nyumbani/shared/logger"
	gRepo "nyumbani/shared/repository"
)

type Performance interface {
	Get(ctx context.Context, filter gDto.FilterGroup, columns ...string) (model.EmployeePerformance, error)
	GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup, columns ...string) ([]model.EmployeePerformance, error)
	Count(ctx context.Context, filter gDto.FilterGroup) (int, error)
	Upsert(ctx context.Context, model model.EmployeePerformance) error
}

type repositoryImpl struct {
	gRepo.Repository[model.EmployeePerformance]
	db   *postgres.Connection
	otel otel.Otel
}

func New(db *postgres.Connection, otel otel.Otel) Performance {
	return &repositoryImpl{
		Repository: gRepo.NewRepository[model.EmployeePerformance](model.EntityName, model.TableName, model.FieldID, db, otel),
		db:         db,
		otel:       otel,
	}
}

// Upsert writes the row for (admin_id, month), overwriting the metric
// columns when the pair already exists. The original created_at and id are
// kept on conflict.
func (repo *repositoryImpl) Upsert(ctx context.Context, mod model.EmployeePerformance) (err error) {
	ctx, scope := repo.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".performance.Upsert")
	defer scope.End()
	defer scope.TraceIfError(err)

	placeholders := make([]string, 0, len(repo.InsertColumns))
	updates := make([]string, 0, len(repo.InsertColumns))

	for _, col := range repo.InsertColumns {
		placeholders = append(placeholders, ":"+col)

		switch col {
		case model.FieldID, model.FieldAdminID, model.FieldMonth, constant.FieldCreatedAt, constant.FieldCreatedBy:
			continue
		}

		updates = append(updates, fmt.Sprintf("%s = EXCLUDED.%s", col, col))
	}

	query := fmt.Sprintf(
		"INSERT INTO %s (%s) VALUES (%s) ON CONFLICT (%s, %s) DO UPDATE SET %s",
		model.TableName,
		strings.Join(repo.InsertColumns, ", "),
		strings.Join(placeholders, ", "),
		model.FieldAdminID,
		model.FieldMonth,
		strings.Join(updates, ", "),
	)
	scope.SetAttribute(constant.OtelQueryAttributeKey, query)

	_, err = repo.db.Write.NamedExecContext(ctx, query, mod)
	if err != nil {
		logger.ErrorWithStack(err)

		return fmt.Errorf("failed to upsert data (%s): %w", model.EntityName, err)
	}

	return nil
}
