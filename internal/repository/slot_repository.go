package repository

import (
	"context"
	"errors"
	"time"

	"github.com/yukikurage/volunteer-scheduling-api/internal/database"
	"github.com/yukikurage/volunteer-scheduling-api/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormSlotRepository is a GORM implementation of SlotRepository
type GormSlotRepository struct {
	db *gorm.DB
}

// NewSlotRepository creates a new SlotRepository
func NewSlotRepository(db *gorm.DB) SlotRepository {
	return &GormSlotRepository{db: db}
}

// CreateWithTask creates the slot and whatever category or task it needs
func (r *GormSlotRepository) CreateWithTask(ctx context.Context, params NewSlotParams) (*models.Task, error) {
	var task models.Task

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var categoryID *uint64
		if params.CategorySlug != "" {
			category, err := getOrCreateCategory(tx, params.CategorySlug, params.CategoryName)
			if err != nil {
				return err
			}
			categoryID = &category.ID
		}

		// Get-or-create keyed on (title, creator). An existing task is reused
		// as is, even when description or category differ.
		stored, err := getOrCreateTask(tx, params.Task, categoryID)
		if err != nil {
			return err
		}
		task = *stored

		if task.CategoryID != nil {
			var category models.Category
			if err := tx.First(&category, *task.CategoryID).Error; err != nil {
				return err
			}
			task.Category = &category
		}

		params.Slot.TaskID = task.ID
		return tx.Omit(clause.Associations).Create(params.Slot).Error
	})
	if err != nil {
		return nil, err
	}

	return &task, nil
}

func getOrCreateCategory(tx *gorm.DB, slug, name string) (*models.Category, error) {
	var category models.Category
	err := tx.Where("slug = ?", slug).First(&category).Error
	if err == nil {
		return &category, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	candidate := models.Category{Name: name, Slug: slug}
	err = tx.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "slug"}},
		DoNothing: true,
	}).Create(&candidate).Error
	if err != nil {
		return nil, err
	}

	// re-read: a concurrent request may have inserted the slug first
	var stored models.Category
	if err := tx.Where("slug = ?", slug).First(&stored).Error; err != nil {
		return nil, err
	}
	return &stored, nil
}

func getOrCreateTask(tx *gorm.DB, candidate models.Task, categoryID *uint64) (*models.Task, error) {
	var task models.Task
	find := func() error {
		return tx.
			Where("title = ? AND created_by_id = ?", candidate.Title, candidate.CreatedByID).
			First(&task).Error
	}

	err := find()
	if err == nil {
		return &task, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	candidate.CategoryID = categoryID
	err = tx.Omit(clause.Associations).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "title"}, {Name: "created_by_id"}},
		DoNothing: true,
	}).Create(&candidate).Error
	if err != nil {
		return nil, err
	}

	// re-read: a concurrent request may have created the task first
	if err := find(); err != nil {
		return nil, err
	}
	return &task, nil
}

// CreateBatch inserts slots for an existing task
func (r *GormSlotRepository) CreateBatch(ctx context.Context, slots []models.Slot) error {
	if len(slots) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Omit(clause.Associations).Create(&slots).Error
}

// FindByID finds a slot by ID with optional preloading
func (r *GormSlotRepository) FindByID(ctx context.Context, id uint64, preload ...string) (*models.Slot, error) {
	var slot models.Slot
	query := r.db.WithContext(ctx)

	for _, p := range preload {
		query = query.Preload(p)
	}

	if err := query.First(&slot, id).Error; err != nil {
		return nil, err
	}

	return &slot, nil
}

// List retrieves slots in a time window
func (r *GormSlotRepository) List(ctx context.Context, filter SlotFilter) ([]models.Slot, error) {
	var slots []models.Slot

	query := r.db.WithContext(ctx).Scopes(database.StartingBetween(filter.From, filter.To))
	if filter.Status != nil {
		query = query.Where("slots.status = ?", *filter.Status)
	}

	err := query.
		Order("slots.start_ts ASC").
		Preload("Task.Category").
		Preload("Bookings.Volunteer").
		Find(&slots).Error
	if err != nil {
		return nil, err
	}

	return slots, nil
}

func (r *GormSlotRepository) ListStartsForTask(ctx context.Context, taskID uint64, from, to time.Time) ([]time.Time, error) {
	var starts []time.Time
	err := r.db.WithContext(ctx).
		Model(&models.Slot{}).
		Where("task_id = ?", taskID).
		Scopes(database.StartingBetween(from, to)).
		Pluck("start_ts", &starts).Error
	return starts, err
}

// UpdateStatus returns gorm.ErrRecordNotFound when the slot does not exist
func (r *GormSlotRepository) UpdateStatus(ctx context.Context, id uint64, status models.SlotStatus) error {
	result := r.db.WithContext(ctx).
		Model(&models.Slot{}).
		Where("id = ?", id).
		Update("status", status)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
