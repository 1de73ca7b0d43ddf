package dto

import (
	"hotel/shared/constant"
	"hotel/shared/model"
	"hotel/shared/timezone"
	"time"
)

// Metadata is the audit block carried by every read model, timestamps in the hotel zone.
type Metadata struct {
	CreatedAt  string `json:"created_at"`
	ModifiedAt string `json:"modified_at"`
	CreatedBy  string `json:"created_by"`
	ModifiedBy string `json:"modified_by"`
}

func NewMetadata(m model.Metadata) Metadata {
	return Metadata{
		CreatedAt:  stamp(m.CreatedAt),
		ModifiedAt: stamp(m.ModifiedAt),
		CreatedBy:  m.CreatedBy,
		ModifiedBy: m.ModifiedBy,
	}
}

func stamp(t time.Time) string {
	if t.IsZero() {
		return constant.Empty
	}

	return timezone.Format(t, constant.DateFormat)
}
