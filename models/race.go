package models

import (
	"github.com/shopspring/decimal"
	"github.com/uptrace/bun"
)

// Race status values.
const (
	StatusScheduled = "scheduled"
	StatusRunning   = "running"
	StatusFinished  = "finished"
	StatusCancelled = "cancelled"
)

// Race represents one race on a track's card. (track, race_date, race_number)
// is unique.
type Race struct {
	bun.BaseModel `bun:"table:races,alias:rc"`

	RaceID         int              `bun:"race_id,pk,autoincrement" json:"raceID"`
	TrackID        int              `bun:"track_id,notnull,unique:races_no_dupes" json:"trackID"`
	RaceNumber     int              `bun:"race_number,notnull,unique:races_no_dupes" json:"raceNumber"`
	RaceDate       string           `bun:"race_date,notnull,type:date,unique:races_no_dupes" json:"raceDate"`
	PostTime       string           `bun:"post_time" json:"postTime,omitempty"`
	Distance       int              `bun:"distance" json:"distance,omitempty"`
	Purse          *decimal.Decimal `bun:"purse,type:numeric(10,2)" json:"purse,omitempty"`
	RaceType       string           `bun:"race_type" json:"raceType,omitempty"`
	Conditions     string           `bun:"conditions,type:text" json:"conditions,omitempty"`
	TrackCondition string           `bun:"track_condition" json:"trackCondition,omitempty"`
	Weather        string           `bun:"weather" json:"weather,omitempty"`
	Temperature    *float64         `bun:"temperature" json:"temperature,omitempty"`
	Status         string           `bun:"status,notnull,default:'scheduled'" json:"status"`

	Track *Track `bun:"rel:belongs-to,join:track_id=track_id" json:"-"`
}
