package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"context"
	"fmt"
	"time"

	"turfbook/infras/otel"
	"turfbook/infras/postgres"
	"turfbook/internal/domains/booking/model"
	slotModel "turfbook/internal/domains/slot/model"
	"turfbook/shared/constant"
	gDto "turfbook/shared/dto"
	gRepo "turfbook/shared/repository"
)

type Booking interface {
	Insert(ctx context.Context, model model.Booking) error
	Get(ctx context.Context, filter gDto.FilterGroup, columns ...string) (model.Booking, error)
	GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup, columns ...string) ([]model.Booking, error)
	Count(ctx context.Context, filter gDto.FilterGroup) (int, error)
}

// Intent stores reservation intents. Insert fails with a unique violation when
// the slot already has one.
type Intent interface {
	Insert(ctx context.Context, model model.ReservationIntent) error
	Delete(ctx context.Context, filter gDto.FilterGroup) error
	GetStale(ctx context.Context, before time.Time, limit int) ([]model.ReservationIntent, error)
}

type bookingRepositoryImpl struct {
	gRepo.Repository[model.Booking]
	db   *postgres.Connection
	otel otel.Otel
}

func New(db *postgres.Connection, otel otel.Otel) Booking {
	return &bookingRepositoryImpl{
		Repository: gRepo.NewRepository[model.Booking](model.EntityName, model.TableName, model.FieldID, db, otel),
		db:         db,
		otel:       otel,
	}
}

type intentRepositoryImpl struct {
	gRepo.Repository[model.ReservationIntent]
	db   *postgres.Connection
	otel otel.Otel
}

func NewIntent(db *postgres.Connection, otel otel.Otel) Intent {
	return &intentRepositoryImpl{
		Repository: gRepo.NewRepository[model.ReservationIntent](model.IntentEntityName, model.IntentTableName, model.IntentFieldSlotID, db, otel),
		db:         db,
		otel:       otel,
	}
}

// GetStale lists intents created before the cutoff whose slot is still VACANT, oldest first.
func (r *intentRepositoryImpl) GetStale(ctx context.Context, before time.Time, limit int) ([]model.ReservationIntent, error) {
	ctx, scope := r.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".reservation_intent.GetStale")
	defer scope.End()

	vacantSlots := fmt.Sprintf("%s.%s IN (SELECT %s FROM %s WHERE %s = '%s')",
		model.IntentTableName, model.IntentFieldSlotID,
		slotModel.FieldID, slotModel.TableName, slotModel.FieldStatus, slotModel.StatusVacant)

	filter := gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters: []any{
			gDto.Filter{
				Field:    model.IntentFieldCreatedAt,
				Value:    before,
				Operator: gDto.FilterOperatorLessEq,
				Table:    model.IntentTableName,
			},
			gDto.Filter{
				Value:    vacantSlots,
				Operator: gDto.FilterPlainQuery,
			},
		},
	}

	params := gDto.QueryParams{
		Limit:   limit,
		SortBy:  fmt.Sprintf("%s.%s", model.IntentTableName, model.IntentFieldCreatedAt),
		SortDir: gDto.SortDirAsc,
	}

	return r.GetAll(ctx, params, filter) //nolint:wrapcheck
}
