package models

import (
	"github.com/shopspring/decimal"
	"github.com/uptrace/bun"
)

// RaceEntry is one horse/driver/trainer combination in a race. Post position
// and program number are each unique within a race. Finish fields stay empty
// until the race is finished; earnings default to zero for unplaced entries.
type RaceEntry struct {
	bun.BaseModel `bun:"table:race_entries,alias:e"`

	ID              int             `bun:"id,pk,autoincrement" json:"id"`
	RaceID          int             `bun:"race_id,notnull,unique:entries_post_no_dupes,unique:entries_prog_no_dupes" json:"raceID"`
	HorseID         int             `bun:"horse_id,notnull" json:"horseID"`
	DriverID        int             `bun:"driver_id,notnull" json:"driverID"`
	TrainerID       int             `bun:"trainer_id,notnull" json:"trainerID"`
	PostPosition    int             `bun:"post_position,notnull,unique:entries_post_no_dupes" json:"postPosition"`
	ProgramNumber   string          `bun:"program_number,unique:entries_prog_no_dupes" json:"programNumber,omitempty"`
	MorningLineOdds string          `bun:"morning_line_odds" json:"morningLineOdds,omitempty"`
	FinalOdds       string          `bun:"final_odds" json:"finalOdds,omitempty"`
	FinishPosition  *int            `bun:"finish_position" json:"finishPosition,omitempty"`
	FinishTime      string          `bun:"finish_time" json:"finishTime,omitempty"`
	Margin          string          `bun:"margin" json:"margin,omitempty"`
	Earnings        decimal.Decimal `bun:"earnings,notnull,type:numeric(10,2),default:0" json:"earnings"`
	Scratched       bool            `bun:"scratched,notnull,default:false" json:"scratched"`
	Disqualified    bool            `bun:"disqualified,notnull,default:false" json:"disqualified"`

	Race    *Race    `bun:"rel:belongs-to,join:race_id=race_id" json:"-"`
	Horse   *Horse   `bun:"rel:belongs-to,join:horse_id=horse_id" json:"-"`
	Driver  *Driver  `bun:"rel:belongs-to,join:driver_id=driver_id" json:"-"`
	Trainer *Trainer `bun:"rel:belongs-to,join:trainer_id=trainer_id" json:"-"`
}
