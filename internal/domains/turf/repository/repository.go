package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"context"

	"turfbook/infras/otel"
	"turfbook/infras/postgres"
	"turfbook/internal/domains/turf/model"
	gDto "turfbook/shared/dto"
	gRepo "turfbook/shared/repository"
)

type Turf interface {
	Insert(ctx context.Context, model model.Turf) error
	Get(ctx context.Context, filter gDto.FilterGroup, columns ...string) (model.Turf, error)
	GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup, columns ...string) ([]model.Turf, error)
	Exist(ctx context.Context, filter gDto.FilterGroup) (bool, error)
	Count(ctx context.Context, filter gDto.FilterGroup) (int, error)
	Update(ctx context.Context, req map[string]any, filter gDto.FilterGroup) error
}

type repositoryImpl struct {
	gRepo.Repository[model.Turf]
	db   *postgres.Connection
	otel otel.Otel
}

func New(db *postgres.Connection, otel otel.Otel) Turf {
	return &repositoryImpl{
		Repository: gRepo.NewRepository[model.Turf](model.EntityName, model.TableName, model.FieldID, db, otel),
		db:         db,
		otel:       otel,
	}
}
