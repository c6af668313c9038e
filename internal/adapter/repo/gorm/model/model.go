package model

import "time"

type RaidRun struct {
	RunID     string `gorm:"primaryKey;column:run_id"`
	Scenario  string
	Status    string
	Turns     int32
	Replans   int32
	PlanNanos int64
	ExecNanos int64
	Version   int64
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (RaidRun) TableName() string { return "raid_runs" }

type RunEvent struct {
	ID         int64  `gorm:"primaryKey;autoIncrement"`
	RunID      string `gorm:"column:run_id;index"`
	Type       string
	Turn       int32
	OccurredAt time.Time
	Payload    []byte `gorm:"type:jsonb"`
}

func (RunEvent) TableName() string { return "run_events" }
