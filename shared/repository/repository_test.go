package repository

import (
	"context"
	"hotel/infras/otel/mocks"
	"hotel/shared/dto"
	"hotel/shared/model"
	"testing"

	"github.com/stretchr/testify/assert"
)

type roomRow struct {
	ID         string `db:"id"`
	RoomNumber string `db:"room_number"`
	Status     string `db:"status"`
	Scratch    string `db:"-"`
	Untagged   string
	model.Metadata
}

func newRoomRepo() Repository[roomRow] {
	return NewRepository[roomRow]("room", "rooms", "id", nil, mocks.NewOtel())
}

func TestNewRepositoryColumns(t *testing.T) {
	repo := newRoomRepo()

	assert.Equal(t, []string{"id", "room_number", "status", "created_at", "modified_at", "created_by", "modified_by"}, repo.columns)
	assert.Equal(t,
		"INSERT INTO rooms (id, room_number, status, created_at, modified_at, created_by, modified_by) "+
			"VALUES (:id, :room_number, :status, :created_at, :modified_at, :created_by, :modified_by)",
		repo.insertStmt,
	)
}

func TestSelectList(t *testing.T) {
	repo := newRoomRepo()

	assert.Equal(t, "rooms.id, rooms.status", repo.selectList([]string{"status", "id"}))
	assert.Contains(t, repo.selectList(nil), "rooms.room_number")
}

func TestSetClause(t *testing.T) {
	args := map[string]any{"status": "Available"}

	clause := setClause(map[string]any{"status": "Occupied", "modified_by": "admin"}, args)

	assert.Equal(t, "modified_by = :set_modified_by, status = :set_status", clause)
	assert.Equal(t, "Available", args["status"], "where argument is not overwritten")
	assert.Equal(t, "Occupied", args["set_status"])
	assert.Equal(t, "admin", args["set_modified_by"])
}

func TestBuildWhereClause(t *testing.T) {
	repo := newRoomRepo()
	ctx := context.Background()

	where, args := repo.BuildWhereClause(ctx, dto.FilterGroup{})
	assert.Empty(t, where)
	assert.NotNil(t, args)

	filter := dto.FilterGroup{Filters: []any{
		dto.Filter{Field: "id", Value: "r-1", Operator: dto.FilterOperatorEq, Table: "rooms"},
	}}

	where, args = repo.BuildWhereClause(ctx, filter)
	assert.Equal(t, " WHERE (rooms.id = :id)", where)
	assert.Equal(t, map[string]any{"id": "r-1"}, args)
}

func TestRequiredFilter(t *testing.T) {
	repo := newRoomRepo()
	ctx := context.Background()

	_, err := repo.Exist(ctx, dto.FilterGroup{})
	assert.ErrorIs(t, err, errRequiredFilter)

	assert.ErrorIs(t, repo.Delete(ctx, dto.FilterGroup{}), errRequiredFilter)
	assert.ErrorIs(t, repo.Update(ctx, map[string]any{"status": "Cleaning"}, dto.FilterGroup{}), errRequiredFilter)
}
