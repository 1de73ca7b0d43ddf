package helper

import (
	"context"
	"fmt"

	"hotel/config"
	"hotel/infras/otel"
	"hotel/infras/postgres"
	guestModel "hotel/internal/domains/guest/model"
	roomModel "hotel/internal/domains/room/model"
	userModel "hotel/internal/domains/user/model"
	"hotel/shared/constant"
	gDto "hotel/shared/dto"
	"hotel/shared/model"
	"hotel/shared/password"
	gRepo "hotel/shared/repository"
	"hotel/shared/timezone"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
)

type seedStore[T any] interface {
	Count(ctx context.Context, filter gDto.FilterGroup) (int, error)
	InsertBulk(ctx context.Context, models []T) error
}

// seedTable inserts rows only when the table is still empty.
func seedTable[T any](ctx context.Context, name string, store seedStore[T], rows []T) error {
	total, err := store.Count(ctx, gDto.FilterGroup{})
	if err != nil {
		return fmt.Errorf("failed to count %s: %w", name, err)
	}

	if total > 0 {
		log.Info().Str("table", name).Int("rows", total).Msg("Table already has data, skipping seed")

		return nil
	}

	if err := store.InsertBulk(ctx, rows); err != nil {
		return fmt.Errorf("failed to seed %s: %w", name, err)
	}

	log.Info().Str("table", name).Int("rows", len(rows)).Msg("Seeded table")

	return nil
}

func SeedUsers() ([]userModel.User, error) {
	accounts := []struct {
		username string
		password string
		role     string
	}{
		{"admin", "admin123", constant.RoleAdmin},
		{"reception", "reception123", constant.RoleReceptionist},
	}

	metadata := model.NewMetadata(constant.ContextSystem, timezone.Now())
	users := make([]userModel.User, 0, len(accounts))

	for _, account := range accounts {
		hash, err := password.Hash(account.password)
		if err != nil {
			return nil, fmt.Errorf("failed to hash password for %s: %w", account.username, err)
		}

		users = append(users, userModel.User{
			ID:          uuid.NewString(),
			Username:    account.username,
			Password:    hash,
			Role:        account.role,
			Permissions: userModel.NormalizePermissions(nil, account.role),
			Metadata:    metadata,
		})
	}

	return users, nil
}

func SeedRooms() []roomModel.Room {
	rooms := []struct {
		number   string
		kind     string
		capacity int
		price    int64
	}{
		{"101", "1 kishilik", 1, 150000},
		{"102", "1 kishilik", 1, 150000},
		{"201", "2 kishilik", 2, 250000},
		{"202", "2 kishilik", 2, 250000},
		{"301", "3 kishilik", 3, 350000},
		{"302", "4 kishilik", 4, 450000},
		{"401", "5 kishilik", 5, 550000},
		{"501", "VIP", 2, 750000},
		{"502", "Lux", 3, 1000000},
	}

	metadata := model.NewMetadata(constant.ContextSystem, timezone.Now())
	res := make([]roomModel.Room, 0, len(rooms))

	for _, room := range rooms {
		res = append(res, roomModel.Room{
			ID:            uuid.NewString(),
			RoomNumber:    room.number,
			RoomType:      room.kind,
			Capacity:      room.capacity,
			PricePerNight: decimal.NewFromInt(room.price),
			Status:        constant.RoomStatusAvailable,
			Metadata:      metadata,
		})
	}

	return res
}

func SeedGuests() []guestModel.Guest {
	metadata := model.NewMetadata(constant.ContextSystem, timezone.Now())

	return []guestModel.Guest{
		{
			ID:         uuid.NewString(),
			FullName:   "Alisher Karimov",
			Phone:      "+998901234567",
			IDType:     guestModel.DefaultIDType,
			PassportID: "AB1234567",
			Metadata:   metadata,
		},
		{
			ID:         uuid.NewString(),
			FullName:   "Malika Rahimova",
			Phone:      "+998907654321",
			IDType:     guestModel.DefaultIDType,
			PassportID: "AB7654321",
			Metadata:   metadata,
		},
	}
}

// Seed loads the default accounts, rooms and guests into empty tables.
func Seed(ctx context.Context, cfg *config.Config) error {
	db := postgres.New(cfg)
	defer db.Close()

	tracer := otel.New(cfg)

	users, err := SeedUsers()
	if err != nil {
		return err
	}

	userRepo := gRepo.NewRepository[userModel.User](userModel.EntityName, userModel.TableName, userModel.FieldID, db, tracer)
	if err := seedTable(ctx, userModel.TableName, &userRepo, users); err != nil {
		return err
	}

	roomRepo := gRepo.NewRepository[roomModel.Room](roomModel.EntityName, roomModel.TableName, roomModel.FieldID, db, tracer)
	if err := seedTable(ctx, roomModel.TableName, &roomRepo, SeedRooms()); err != nil {
		return err
	}

	guestRepo := gRepo.NewRepository[guestModel.Guest](guestModel.EntityName, guestModel.TableName, guestModel.FieldID, db, tracer)

	return seedTable(ctx, guestModel.TableName, &guestRepo, SeedGuests())
}
