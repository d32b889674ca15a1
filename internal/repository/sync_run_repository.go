package repository

import (
	"github.com/fadilmartias/recruiting-sync/internal/model"
	"gorm.io/gorm"
)

type SyncRunRepository struct {
	db *gorm.DB
}

func NewSyncRunRepository(db *gorm.DB) *SyncRunRepository {
	return &SyncRunRepository{db}
}

func (r *SyncRunRepository) CreateRun(run *model.SyncRun) error {
	return r.db.Create(run).Error
}

func (r *SyncRunRepository) UpdateRun(run *model.SyncRun) error {
	return r.db.Save(run).Error
}

func (r *SyncRunRepository) FindRunByID(id string) (*model.SyncRun, error) {
	var run model.SyncRun
	err := r.db.First(&run, "id = ?", id).Error
	return &run, err
}

func (r *SyncRunRepository) ListRuns(limit, offset int) ([]model.SyncRun, error) {
	var runs []model.SyncRun
	err := r.db.Order("started_at desc").Limit(limit).Offset(offset).Find(&runs).Error
	return runs, err
}

func (r *SyncRunRepository) CountRuns() (int64, error) {
	var count int64
	err := r.db.Model(&model.SyncRun{}).Count(&count).Error
	return count, err
}
