package dto

import (
	"time"

	"github.com/yukikurage/volunteer-scheduling-api/internal/models"
	"github.com/yukikurage/volunteer-scheduling-api/internal/utils"
)

// CategoryDTO represents a category in API responses
type CategoryDTO struct {
	ID                     uint64 `json:"id"`
	Name                   string `json:"name"`
	Slug                   string `json:"slug"`
	Color                  string `json:"color,omitempty"`
	DefaultDurationMinutes *int   `json:"default_duration_minutes,omitempty"`
}

// TaskDTO represents a task template in API responses
type TaskDTO struct {
	ID                     uint64       `json:"id"`
	Title                  string       `json:"title"`
	Description            string       `json:"description"`
	CategoryID             *uint64      `json:"category_id"`
	Category               *CategoryDTO `json:"category,omitempty"`
	CreatedByID            *uint64      `json:"created_by_id"`
	DefaultDurationMinutes *int         `json:"default_duration_minutes"`
	DefaultCapacity        int          `json:"default_capacity"`
	RecurrenceRule         string       `json:"recurrence_rule"`
	Timezone               string       `json:"timezone"`
	IsPublic               bool         `json:"is_public"`
	Active                 bool         `json:"active"`
	CreatedAt              time.Time    `json:"created_at"`
	UpdatedAt              time.Time    `json:"updated_at"`
}

// TaskListResponse represents a paginated list of tasks
type TaskListResponse struct {
	Tasks      []TaskDTO                `json:"tasks"`
	Pagination utils.PaginationResponse `json:"pagination"`
}

// Conversion functions

// ToCategoryDTO converts a Category model to CategoryDTO
func ToCategoryDTO(category models.Category) CategoryDTO {
	return CategoryDTO{
		ID:                     category.ID,
		Name:                   category.Name,
		Slug:                   category.Slug,
		Color:                  category.Color,
		DefaultDurationMinutes: category.DefaultDurationMinutes,
	}
}

func ToCategoryDTOs(categories []models.Category) []CategoryDTO {
	items := make([]CategoryDTO, len(categories))
	for i, category := range categories {
		items[i] = ToCategoryDTO(category)
	}
	return items
}

// ToTaskDTO converts a Task model to TaskDTO
func ToTaskDTO(task models.Task) TaskDTO {
	dto := TaskDTO{
		ID:                     task.ID,
		Title:                  task.Title,
		Description:            task.Description,
		CategoryID:             task.CategoryID,
		CreatedByID:            task.CreatedByID,
		DefaultDurationMinutes: task.DefaultDurationMinutes,
		DefaultCapacity:        task.DefaultCapacity,
		RecurrenceRule:         task.RecurrenceRule,
		Timezone:               task.Timezone,
		IsPublic:               task.IsPublic,
		Active:                 task.Active,
		CreatedAt:              task.CreatedAt,
		UpdatedAt:              task.UpdatedAt,
	}

	// Include category if preloaded
	if task.Category != nil {
		category := ToCategoryDTO(*task.Category)
		dto.Category = &category
	}

	return dto
}

// ToTaskListResponse converts a page of tasks to TaskListResponse
func ToTaskListResponse(tasks []models.Task, params utils.PaginationParams, total int64) TaskListResponse {
	items := make([]TaskDTO, len(tasks))
	for i, task := range tasks {
		items[i] = ToTaskDTO(task)
	}

	return TaskListResponse{
		Tasks:      items,
		Pagination: utils.NewPaginationResponse(params, total),
	}
}
