package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"context"
	"fmt"

	"nyumbani/infras/otel"
	"nyumbani/infras/postgres"
	"nyumbani/internal/domains/property/model"
	"nyumbani/shared/constant"
	gDto "nyumbani/shared/dto"
	"nyumbani/shared/logger"
	gRepo "nyumbani/shared/repository"
	"nyumbani/shared/timezone"
)

type Property interface {
	Insert(ctx context.Context, model model.Property) error
	Get(ctx context.Context, filter gDto.FilterGroup, columns ...string) (model.Property, error)
	GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup, columns ...string) ([]model.Property, error)
	Exist(ctx context.Context, filter gDto.FilterGroup) (bool, error)
	Count(ctx context.Context, filter gDto.FilterGroup) (int, error)
	Update(ctx context.Context, req map[string]any, filter gDto.FilterGroup) error
	Delete(ctx context.Context, filter gDto.FilterGroup) error
	IncrementCounter(ctx context.Context, id, counterField string) error
	AssignAdminBulk(ctx context.Context, propertyIDs []string, adminID, user string) error
}

type repositoryImpl struct {
	gRepo.Repository[model.Property]
	db   *postgres.Connection
	otel otel.Otel
}

func New(db *postgres.Connection, otel otel.Otel) Property {
	return &repositoryImpl{
		Repository: gRepo.NewRepository[model.Property](model.EntityName, model.TableName, model.FieldID, db, otel),
		db:         db,
		otel:       otel,
	}
}

// IncrementCounter bumps one of the denormalized engagement counters
// (views, inquiries, bookings) atomically in the database.
func (repo *repositoryImpl) IncrementCounter(ctx context.Context, id, counterField string) (err error) {
	ctx, scope := repo.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".property.IncrementCounter")
	defer scope.End()
	defer scope.TraceIfError(err)

	query := fmt.Sprintf("UPDATE %s SET %s = %s + 1 WHERE %s = $1", model.TableName, counterField, counterField, model.FieldID)
	scope.SetAttribute(constant.OtelQueryAttributeKey, query)

	_, err = repo.db.Write.ExecContext(ctx, query, id)
	if err != nil {
		logger.ErrorWithStack(err)

		return fmt.Errorf("failed to increment %s (%s): %w", counterField, model.EntityName, err)
	}

	return nil
}

// AssignAdminBulk moves a set of properties under one admin in a single
// transaction. Either every property is reassigned or none is.
func (repo *repositoryImpl) AssignAdminBulk(ctx context.Context, propertyIDs []string, adminID, user string) (err error) {
	ctx, scope := repo.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".property.AssignAdminBulk")
	defer scope.End()
	defer scope.TraceIfError(err)

	tx, err := repo.BeginTx(ctx)
	if err != nil {
		return err
	}

	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	update := map[string]any{
		model.FieldAdminID:        adminID,
		constant.FieldModifiedAt:  timezone.Now(),
		constant.FieldModifiedBy:  user,
	}

	for _, id := range propertyIDs {
		filter := gDto.FilterGroup{
			Filters: []any{
				gDto.Filter{Field: model.FieldID, Value: id, Operator: gDto.FilterOperatorEq, Table: model.TableName},
			},
		}

		if err = repo.UpdateTx(ctx, tx, update, filter); err != nil {
			return err
		}
	}

	if err = tx.Commit(); err != nil {
		logger.ErrorWithStack(err)

		return fmt.Errorf("failed to commit bulk assign (%s): %w", model.EntityName, err)
	}

	return nil
}
