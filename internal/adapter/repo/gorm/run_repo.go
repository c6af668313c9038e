package gormrepo

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"gridraid/internal/adapter/repo/gorm/model"
	"gridraid/internal/app/ports"
)

type RunRepo struct {
	db *gorm.DB
}

func NewRunRepo(db *gorm.DB) RunRepo {
	return RunRepo{db: db}
}

func (r RunRepo) GetByRunID(ctx context.Context, runID string) (ports.RunRecord, error) {
	var m model.RaidRun
	if err := getDBFromCtx(ctx, r.db).Where("run_id = ?", runID).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ports.RunRecord{}, ports.ErrNotFound
		}
		return ports.RunRecord{}, err
	}
	return ports.RunRecord{
		RunID:     m.RunID,
		Scenario:  m.Scenario,
		Status:    m.Status,
		Turns:     int(m.Turns),
		Replans:   int(m.Replans),
		PlanNanos: m.PlanNanos,
		ExecNanos: m.ExecNanos,
		Version:   m.Version,
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}, nil
}

func (r RunRepo) SaveWithVersion(ctx context.Context, record ports.RunRecord, expectedVersion int64) error {
	db := getDBFromCtx(ctx, r.db)
	if expectedVersion == 0 {
		m := model.RaidRun{
			RunID:     record.RunID,
			Scenario:  record.Scenario,
			Status:    record.Status,
			Turns:     int32(record.Turns),
			Replans:   int32(record.Replans),
			PlanNanos: record.PlanNanos,
			ExecNanos: record.ExecNanos,
			Version:   record.Version,
			CreatedAt: record.CreatedAt,
			UpdatedAt: record.UpdatedAt,
		}
		return db.Create(&m).Error
	}

	updates := map[string]any{
		"status":     record.Status,
		"turns":      int32(record.Turns),
		"replans":    int32(record.Replans),
		"plan_nanos": record.PlanNanos,
		"exec_nanos": record.ExecNanos,
		"version":    record.Version,
		"updated_at": record.UpdatedAt,
	}
	res := db.Model(&model.RaidRun{}).
		Where("run_id = ? AND version = ?", record.RunID, expectedVersion).
		Updates(updates)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ports.ErrConflict
	}
	return nil
}
