package models

import "gorm.io/gorm"

type Country struct {
	ID        CountryID `json:"id" gorm:"primaryKey"`
	Name      string    `json:"name" validate:"required"`
	ISOCode   string    `json:"iso_code" gorm:"column:iso_code;index" validate:"required,len=3,alpha"`
	Region    string    `json:"region" gorm:"index" validate:"required"`
	Latitude  *float64  `json:"latitude,omitempty" validate:"omitempty,gte=-90,lte=90"`
	Longitude *float64  `json:"longitude,omitempty" validate:"omitempty,gte=-180,lte=180"`
}

func (Country) TableName() string {
	return "countries"
}

func (c *Country) BeforeCreate(tx *gorm.DB) error {
	if c.ID == "" {
		c.ID = CountryID(newID())
	}
	return nil
}
