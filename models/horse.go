package models

import "github.com/uptrace/bun"

// Horse represents a standardbred with its breeding and ownership details.
type Horse struct {
	bun.BaseModel `bun:"table:horses,alias:h"`

	HorseID            int     `bun:"horse_id,pk,autoincrement" json:"horseID"`
	Name               string  `bun:"name,notnull" json:"name"`
	RegistrationNumber *string `bun:"registration_number,unique" json:"registrationNumber,omitempty"`
	FoalingDate        *string `bun:"foaling_date,type:date" json:"foalingDate,omitempty"`
	Sex                string  `bun:"sex" json:"sex,omitempty"`
	Color              string  `bun:"color" json:"color,omitempty"`
	Sire               string  `bun:"sire" json:"sire,omitempty"`
	Dam                string  `bun:"dam" json:"dam,omitempty"`
	Breeder            string  `bun:"breeder" json:"breeder,omitempty"`
	Owner              string  `bun:"owner" json:"owner,omitempty"`
	Active             bool    `bun:"active,notnull,default:true" json:"active"`
}
