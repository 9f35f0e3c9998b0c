package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"context"
	"fmt"
	"time"

	"turfbook/infras/otel"
	"turfbook/infras/postgres"
	"turfbook/internal/domains/slot/model"
	"turfbook/shared"
	"turfbook/shared/constant"
	gDto "turfbook/shared/dto"
	gRepo "turfbook/shared/repository"
	"turfbook/shared/timezone"
)

type Slot interface {
	Get(ctx context.Context, filter gDto.FilterGroup, columns ...string) (model.Slot, error)
	GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup, columns ...string) ([]model.Slot, error)
	Exist(ctx context.Context, filter gDto.FilterGroup) (bool, error)
	InsertBulk(ctx context.Context, slots []model.Slot) error
	GetDay(ctx context.Context, turfID string, day time.Time) ([]model.Slot, error)
	DayExists(ctx context.Context, turfID string, day time.Time) (bool, error)
	MarkBooked(ctx context.Context, slotID, bookingID, user string) (bool, error)
}

type repositoryImpl struct {
	gRepo.Repository[model.Slot]
	db   *postgres.Connection
	otel otel.Otel
}

func New(db *postgres.Connection, otel otel.Otel) Slot {
	return &repositoryImpl{
		Repository: gRepo.NewRepository[model.Slot](model.EntityName, model.TableName, model.FieldID, db, otel),
		db:         db,
		otel:       otel,
	}
}

func FilterByDay(turfID string, day time.Time) gDto.FilterGroup {
	return gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters: []any{
			gDto.Filter{Field: model.FieldTurfID, Value: turfID, Operator: gDto.FilterOperatorEq, Table: model.TableName},
			gDto.Filter{Field: model.FieldSlotDate, Value: model.Day(day), Operator: gDto.FilterOperatorEq, Table: model.TableName},
		},
	}
}

// GetDay lists a turf's slots for one date ordered by start time.
func (r *repositoryImpl) GetDay(ctx context.Context, turfID string, day time.Time) ([]model.Slot, error) {
	ctx, scope := r.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".slot.GetDay")
	defer scope.End()

	params := gDto.QueryParams{
		SortBy:  fmt.Sprintf("%s.%s", model.TableName, model.FieldStartMinute),
		SortDir: gDto.SortDirAsc,
	}

	return r.GetAll(ctx, params, FilterByDay(turfID, day)) //nolint:wrapcheck
}

func (r *repositoryImpl) DayExists(ctx context.Context, turfID string, day time.Time) (bool, error) {
	ctx, scope := r.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".slot.DayExists")
	defer scope.End()

	return r.Exist(ctx, FilterByDay(turfID, day)) //nolint:wrapcheck
}

// MarkBooked moves a slot from VACANT to BOOKED. It reports false when the
// slot was not VACANT anymore, leaving it untouched.
func (r *repositoryImpl) MarkBooked(ctx context.Context, slotID, bookingID, user string) (bool, error) {
	ctx, scope := r.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".slot.MarkBooked")
	defer scope.End()

	filter := shared.FilterByID(slotID, model.FieldID, model.TableName)
	filter.Operator = gDto.FilterGroupOperatorAnd
	filter.Filters = append(filter.Filters, gDto.Filter{
		ArgName:  "current_status",
		Field:    model.FieldStatus,
		Value:    model.StatusVacant,
		Operator: gDto.FilterOperatorEq,
		Table:    model.TableName,
	})

	affected, err := r.UpdateCount(ctx, map[string]any{
		model.FieldStatus:     model.StatusBooked,
		model.FieldBookingID:  bookingID,
		model.FieldModifiedAt: timezone.Now(),
		model.FieldModifiedBy: user,
	}, filter)
	if err != nil {
		scope.TraceError(err)

		return false, err //nolint:wrapcheck
	}

	return affected == 1, nil
}
