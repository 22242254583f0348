package models

import (
	"time"

	"github.com/uptrace/bun"
)

// DataFetch statuses.
const (
	FetchSuccess = "success"
	FetchFailed  = "failed"
	FetchPartial = "partial"
)

// DataFetch is an audit row recording one ingestion attempt. It reports data
// freshness only; nothing computes from it.
type DataFetch struct {
	bun.BaseModel `bun:"table:data_fetches,alias:df"`

	ID               int        `bun:"id,pk,autoincrement" json:"id"`
	RunID            string     `bun:"run_id,notnull" json:"runID"`
	Source           string     `bun:"source,notnull" json:"source"`
	FetchType        string     `bun:"fetch_type,notnull" json:"fetchType"`
	FetchDate        string     `bun:"fetch_date,notnull,type:date" json:"fetchDate"`
	Status           string     `bun:"status,notnull" json:"status"`
	RecordsProcessed int        `bun:"records_processed,notnull,default:0" json:"recordsProcessed"`
	ErrorMessage     *string    `bun:"error_message,type:text" json:"errorMessage,omitempty"`
	CompletedAt      *time.Time `bun:"completed_at" json:"completedAt,omitempty"`
}
