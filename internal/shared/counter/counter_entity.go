package counter

import "time"

// Counter backs the atomic sequence upsert in the repository.
type Counter struct {
	CounterType string `gorm:"primaryKey;column:counter_type;type:varchar(50)"`
	LastValue   int64
	UpdatedAt   time.Time
}

func (Counter) TableName() string { return "counters" }
