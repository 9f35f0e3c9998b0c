package repository

import (
	"context"
	"database/sql/driver"
	"errors"
	"fmt"
	"net"
	"reflect"
	"testing"

	"turfbook/infras/otel/mocks"
	"turfbook/shared/constant"
	"turfbook/shared/dto"
	"turfbook/shared/failure"
	"turfbook/shared/model"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
)

type interval struct {
	Start int `db:"start"`
	End   int `db:"end"`
}

type row struct {
	ID        string `db:"id"`
	OwnerName string `db:"owner_name" table:"owners" column:"name"`
	Ignored   string
	interval
	model.Metadata
}

func TestIsUniqueViolation(t *testing.T) {
	unique := &pq.Error{Code: constant.PqErrorCodeUniqueViolation}

	assert.True(t, IsUniqueViolation(unique))
	assert.True(t, IsUniqueViolation(fmt.Errorf("failed to insert data (slot): %w", unique)))
	assert.False(t, IsUniqueViolation(&pq.Error{Code: constant.PqErrorCodeFkViolation}))
	assert.False(t, IsUniqueViolation(errors.New("23505")))
	assert.False(t, IsUniqueViolation(nil))
}

func TestIsUnavailable(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{name: "nil", err: nil, want: false},
		{name: "bad connection", err: fmt.Errorf("query: %w", driver.ErrBadConn), want: true},
		{name: "deadline", err: context.DeadlineExceeded, want: true},
		{name: "connection exception class", err: &pq.Error{Code: "08006"}, want: true},
		{name: "cannot connect now", err: &pq.Error{Code: "57P03"}, want: true},
		{name: "network error", err: &net.OpError{Op: "dial", Err: errors.New("refused")}, want: true},
		{name: "unique violation", err: &pq.Error{Code: constant.PqErrorCodeUniqueViolation}, want: false},
		{name: "plain error", err: errors.New("syntax error"), want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsUnavailable(tt.err))
		})
	}
}

func TestWrapUnavailable(t *testing.T) {
	down := fmt.Errorf("failed to get data (slot): %w", driver.ErrBadConn)

	wrapped := WrapUnavailable(down)
	assert.ErrorIs(t, wrapped, failure.StoreUnavailable)
	assert.ErrorIs(t, wrapped, driver.ErrBadConn)
	assert.Equal(t, 503, failure.GetCode(wrapped))
	assert.Equal(t, wrapped, WrapUnavailable(wrapped))

	plain := errors.New("syntax error")
	assert.Equal(t, plain, WrapUnavailable(plain))
	assert.Nil(t, WrapUnavailable(nil))
}

func TestGetColumns(t *testing.T) {
	columns, insertColumns := getColumns("rows", reflect.TypeOf(row{}))

	assert.Equal(t, []string{"id", "start", "end", "created_at", "modified_at", "created_by", "modified_by"}, insertColumns)
	assert.Contains(t, columns, column{name: "name", table: "owners", alias: "owner_name"})
	assert.Contains(t, columns, column{name: "start", table: "rows"})
}

func TestSelectList(t *testing.T) {
	repo := NewRepository[row]("row", "rows", "id", nil, mocks.NewOtel())

	assert.Equal(t, "rows.id, rows.start", selectList(repo.columns, "id", "start"))
	assert.Contains(t, selectList(repo.columns), "owners.name AS owner_name")
	assert.Empty(t, repo.join)
}

type joinedRow struct {
	ID       string `db:"id"`
	SlotDate string `db:"slot_date" table:"slots"`
}

func (joinedRow) GetJoinQuery() string {
	return "JOIN slots ON slots.id = joined.slot_id"
}

func TestNewRepository_Join(t *testing.T) {
	repo := NewRepository[joinedRow]("joined", "joined", "id", nil, mocks.NewOtel())

	assert.Equal(t, "JOIN slots ON slots.id = joined.slot_id", repo.join)
	assert.Equal(t, []string{"id"}, repo.InsertColumns)
	assert.Equal(t, "joined.id, slots.slot_date", selectList(repo.columns))
}

func TestNamedPlaceholders(t *testing.T) {
	assert.Equal(t, ":id, :turf_id, :slot_date", namedPlaceholders([]string{"id", "turf_id", "slot_date"}))
}

func TestBuildWhereClause(t *testing.T) {
	repo := NewRepository[row]("row", "rows", "id", nil, mocks.NewOtel())

	where, args := repo.BuildWhereClause(context.Background(), dto.FilterGroup{})
	assert.Empty(t, where)
	assert.Empty(t, args)

	where, args = repo.BuildWhereClause(context.Background(), dto.FilterGroup{
		Operator: dto.FilterGroupOperatorAnd,
		Filters: []any{
			dto.Filter{Field: "id", Value: "r-1", Operator: dto.FilterOperatorEq, Table: "rows"},
			dto.Filter{Field: "start", Value: 60, Operator: dto.FilterOperatorGreaterEq, Table: "rows"},
		},
	})
	assert.Equal(t, " WHERE (rows.id = :id AND rows.start >= :start) ", where)
	assert.Equal(t, map[string]any{"id": "r-1", "start": 60}, args)
}
