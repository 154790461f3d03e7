package dto

import (
	"leedz/shared/constant"
	"leedz/shared/model"
	"leedz/shared/timezone"
)

type Metadata struct {
	CreatedAt string `json:"createdAt"`
	UpdatedAt string `json:"updatedAt"`
}

func (m *Metadata) FromModel(model model.Metadata) {
	m.CreatedAt = timezone.Format(model.CreatedAt, constant.DateFormat)
	m.UpdatedAt = timezone.Format(model.UpdatedAt, constant.DateFormat)
}
