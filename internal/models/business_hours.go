package models

import "time"

// BusinessHours holds the opening window of a barbershop for one weekday
// (0 = Sunday). Times are "HH:MM" in the barbershop timezone.
type BusinessHours struct {
	ID           uint `gorm:"primaryKey" json:"id"`
	BarbershopID uint `gorm:"uniqueIndex:idx_business_hours_day" json:"barbershop_id"`

	Weekday int `gorm:"uniqueIndex:idx_business_hours_day" json:"weekday"`

	OpenTime   string `gorm:"size:5" json:"open_time"`
	CloseTime  string `gorm:"size:5" json:"close_time"`
	LunchStart string `gorm:"size:5" json:"lunch_start"`
	LunchEnd   string `gorm:"size:5" json:"lunch_end"`
	Closed     bool   `json:"closed"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
