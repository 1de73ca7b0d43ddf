package model

import "hotel/shared/model"

const (
	TableName  = "guests"
	EntityName = "guest"

	FieldID         = "id"
	FieldFullName   = "full_name"
	FieldPhone      = "phone"
	FieldIDType     = "id_type"
	FieldIDNumber   = "id_number"
	FieldPassportID = "passport_id"
)

const DefaultIDType = "passport"

type Guest struct {
	ID         string `db:"id"`
	FullName   string `db:"full_name"`
	Phone      string `db:"phone"`
	IDType     string `db:"id_type"`
	IDNumber   string `db:"id_number"`
	PassportID string `db:"passport_id"`
	BirthDate  string `db:"birth_date"`
	Nation     string `db:"nation"`
	Region     string `db:"region"`
	Street     string `db:"street"`
	model.Metadata
}
