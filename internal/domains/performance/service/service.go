package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=./mocks/service_mock.go -package=mocks

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"

	"nyumbani/config"
	"nyumbani/infras/otel"
	"nyumbani/internal/domains/performance/model"
	"nyumbani/internal/domains/performance/model/dto"
	"nyumbani/internal/domains/performance/repository"
	"nyumbani/shared"
	"nyumbani/shared/cache"
	"nyumbani/shared/constant"
	gDto "nyumbani/shared/dto"
	"nyumbani/shared/failure"
	"nyumbani/shared/session"
)

const (
	cacheGetPerformance    = "performance:get"
	cacheGetAllPerformance = "performance:gets"
	cacheScoreboard        = "performance:scoreboard"
)

type Performance interface {
	GetByAdmin(ctx context.Context, sess session.Session, adminID string, req gDto.QueryParams) (dto.GetPerformancesResponse, error)
	GetAll(ctx context.Context, req gDto.QueryParams) (dto.GetPerformancesResponse, error)
	Upsert(ctx context.Context, sess session.Session, req dto.UpsertPerformanceRequest) error
	Scoreboard(ctx context.Context, month string) (dto.ScoreboardResponse, error)
}

type serviceImpl struct {
	repo  repository.Performance
	cfg   *config.Config
	cache cache.RedisCache
	otel  otel.Otel
}

func New(repo repository.Performance, cfg *config.Config, cache cache.RedisCache, otel otel.Otel) Performance {
	return &serviceImpl{
		repo:  repo,
		cfg:   cfg,
		cache: cache,
		otel:  otel,
	}
}

func (s *serviceImpl) GetByAdmin(ctx context.Context, sess session.Session, adminID string, req gDto.QueryParams) (res dto.GetPerformancesResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetByAdmin")
	defer scope.End()
	defer scope.TraceIfError(err)

	// Admins may only read their own record; superadmins read anyone's.
	if !sess.IsSuperAdmin() && adminID != sess.UserID {
		return res, failure.Forbidden("you can only view your own performance") //nolint:wrapcheck
	}

	filter := gDto.FilterGroup{
		Filters: []any{
			gDto.Filter{Field: model.FieldAdminID, Value: adminID, Operator: gDto.FilterOperatorEq, Table: model.TableName},
		},
	}

	return s.getAll(ctx, req, filter)
}

func (s *serviceImpl) GetAll(ctx context.Context, req gDto.QueryParams) (res dto.GetPerformancesResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetAll")
	defer scope.End()
	defer scope.TraceIfError(err)

	return s.getAll(ctx, req, gDto.FilterGroup{})
}

func (s *serviceImpl) getAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res dto.GetPerformancesResponse, err error) {
	cacheKey := shared.BuildCacheKeyWithQuery(cacheGetAllPerformance, req, filter)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for performance records")

		return res, nil
	}

	total, err := s.repo.Count(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count performance records")

		return res, fmt.Errorf("failed to count performance records: %w", err)
	}

	models, err := s.repo.GetAll(ctx, req, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get performance records")

		return res, fmt.Errorf("failed to get performance records: %w", err)
	}

	res.FromModels(models, total, req.Limit)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save performance records to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Upsert(ctx context.Context, sess session.Session, req dto.UpsertPerformanceRequest) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Upsert")
	defer scope.End()
	defer scope.TraceIfError(err)

	if !sess.IsSuperAdmin() {
		return failure.Forbidden("only superadmins can record performance") //nolint:wrapcheck
	}

	if err = s.repo.Upsert(ctx, req.ToModel(sess.UserID)); err != nil {
		log.Error().Err(err).Msg("failed to upsert performance record")

		return err
	}

	go func() {
		c := context.WithoutCancel(ctx)

		shared.InvalidateCaches(c, s.cache, cacheGetPerformance)
		shared.InvalidateCaches(c, s.cache, cacheGetAllPerformance)
		shared.InvalidateCaches(c, s.cache, cacheScoreboard)
	}()

	return nil
}

// Scoreboard ranks every admin's row for the given month and attaches
// trends against the preceding month.
func (s *serviceImpl) Scoreboard(ctx context.Context, month string) (res dto.ScoreboardResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Scoreboard")
	defer scope.End()
	defer scope.TraceIfError(err)

	cacheKey := shared.BuildCacheKey(cacheScoreboard, month)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for scoreboard")

		return res, nil
	}

	current, err := s.monthRows(ctx, month)
	if err != nil {
		return res, err
	}

	previousMonth := model.PreviousMonth(month)

	previous := map[string]model.EmployeePerformance{}
	if previousMonth != "" {
		rows, err := s.monthRows(ctx, previousMonth)
		if err != nil {
			return res, err
		}

		for _, row := range rows {
			previous[row.AdminID] = row
		}
	}

	ranked := model.Rank(current)

	res.Month = month
	res.Entries = make([]dto.ScoreboardEntry, len(ranked))

	for i, row := range ranked {
		var prevRow *model.EmployeePerformance
		if prev, ok := previous[row.AdminID]; ok {
			prevRow = &prev
		}

		entry := dto.ScoreboardEntry{
			Rank:   row.Rank,
			Trends: model.Trends(row.EmployeePerformance, prevRow),
		}
		entry.FromModel(row.EmployeePerformance)

		res.Entries[i] = entry
	}

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save scoreboard to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) monthRows(ctx context.Context, month string) ([]model.EmployeePerformance, error) {
	filter := gDto.FilterGroup{
		Filters: []any{
			gDto.Filter{Field: model.FieldMonth, Value: month, Operator: gDto.FilterOperatorEq, Table: model.TableName},
		},
	}

	rows, err := s.repo.GetAll(ctx, gDto.QueryParams{}, filter)
	if err != nil {
		log.Error().Err(err).Str("month", month).Msg("failed to load month rows")

		return nil, fmt.Errorf("failed to load performance rows for %s: %w", month, err)
	}

	return rows, nil
}
