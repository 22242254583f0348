package models

import "github.com/uptrace/bun"

// Driver represents a licensed harness driver.
type Driver struct {
	bun.BaseModel `bun:"table:drivers,alias:d"`

	DriverID      int     `bun:"driver_id,pk,autoincrement" json:"driverID"`
	Name          string  `bun:"name,notnull" json:"name"`
	LicenseNumber *string `bun:"license_number,unique" json:"licenseNumber,omitempty"`
	BirthDate     *string `bun:"birth_date,type:date" json:"birthDate,omitempty"`
	Hometown      string  `bun:"hometown" json:"hometown,omitempty"`
	Active        bool    `bun:"active,notnull,default:true" json:"active"`
}
