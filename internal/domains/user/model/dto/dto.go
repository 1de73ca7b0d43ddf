package dto

import (
	"hotel/internal/domains/user/model"
	"hotel/shared"
	"hotel/shared/constant"
	gDto "hotel/shared/dto"
	gModel "hotel/shared/model"
	"hotel/shared/timezone"

	"github.com/google/uuid"
)

var SortableFields = []string{
	model.FieldUsername,
	model.FieldRole,
	constant.FieldCreatedAt,
}

type CreateUserRequest struct {
	Username    string   `json:"username"    validate:"required,min=3,max=50"`
	Password    string   `json:"password"    validate:"required,min=6,max=72"`
	Role        string   `json:"role"        validate:"required,oneof=admin accountant receptionist"`
	Permissions []string `json:"permissions" validate:"omitempty,dive,max=30"`
}

func (c *CreateUserRequest) ToModel(user, hashedPassword string) model.User {
	return model.User{
		ID:          uuid.NewString(),
		Username:    c.Username,
		Password:    hashedPassword,
		Role:        c.Role,
		Permissions: model.NormalizePermissions(c.Permissions, c.Role),
		Metadata:    gModel.NewMetadata(user, timezone.Now()),
	}
}

// UpdateUserRequest changes role, permissions or password. Permissions and password
// are handled by the service since both need transforming before they are stored.
type UpdateUserRequest struct {
	Role        *string  `db:"role" json:"role" validate:"omitempty,oneof=admin accountant receptionist"`
	Permissions []string `json:"permissions" validate:"omitempty,dive,max=30"`
	Password    *string  `json:"password"    validate:"omitempty,min=6,max=72"`
}

type UserResponse struct {
	ID          string   `json:"id"`
	Username    string   `json:"username"`
	Role        string   `json:"role"`
	Permissions []string `json:"permissions"`
	gDto.Metadata
}

func (u *UserResponse) FromModel(user model.User) {
	u.ID = user.ID
	u.Username = user.Username
	u.Role = user.Role
	u.Permissions = model.NormalizePermissions(user.Permissions, user.Role)
	u.Metadata = gDto.NewMetadata(user.Metadata)
}

type GetUsersResponse struct {
	Users     []UserResponse `json:"users"`
	TotalPage int            `json:"total_page"`
	TotalData int            `json:"total_data"`
}

func (g *GetUsersResponse) FromModels(models []model.User, totalData, limit int) {
	g.TotalData = totalData
	g.TotalPage = shared.CalculateTotalPage(totalData, limit)

	g.Users = make([]UserResponse, len(models))
	for i, mod := range models {
		g.Users[i].FromModel(mod)
	}
}
