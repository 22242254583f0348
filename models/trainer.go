package models

import "github.com/uptrace/bun"

// Trainer represents a licensed trainer. Same shape as Driver but the two
// fill different roles on a race entry, so they stay separate tables.
type Trainer struct {
	bun.BaseModel `bun:"table:trainers,alias:tr"`

	TrainerID     int     `bun:"trainer_id,pk,autoincrement" json:"trainerID"`
	Name          string  `bun:"name,notnull" json:"name"`
	LicenseNumber *string `bun:"license_number,unique" json:"licenseNumber,omitempty"`
	BirthDate     *string `bun:"birth_date,type:date" json:"birthDate,omitempty"`
	Hometown      string  `bun:"hometown" json:"hometown,omitempty"`
	Active        bool    `bun:"active,notnull,default:true" json:"active"`
}
