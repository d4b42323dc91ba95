package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/teambition/rrule-go"
	"github.com/yukikurage/volunteer-scheduling-api/internal/constants"
	"github.com/yukikurage/volunteer-scheduling-api/internal/logging"
	"github.com/yukikurage/volunteer-scheduling-api/internal/metrics"
	"github.com/yukikurage/volunteer-scheduling-api/internal/models"
	"github.com/yukikurage/volunteer-scheduling-api/internal/repository"
	"github.com/yukikurage/volunteer-scheduling-api/internal/utils"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// TaskService handles task business logic
type TaskService struct {
	taskRepo repository.TaskRepository
	slotRepo repository.SlotRepository
	logger   *zap.Logger
}

// NewTaskService creates a new TaskService
func NewTaskService(taskRepo repository.TaskRepository, slotRepo repository.SlotRepository, logger *zap.Logger) *TaskService {
	return &TaskService{
		taskRepo: taskRepo,
		slotRepo: slotRepo,
		logger:   logging.OrNop(logger),
	}
}

// ListTasks lists the tasks a user created
func (s *TaskService) ListTasks(ctx context.Context, creatorID uint64, params utils.PaginationParams) ([]models.Task, int64, error) {
	tasks, total, err := s.taskRepo.ListByCreator(ctx, creatorID, params)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list tasks: %w", err)
	}
	return tasks, total, nil
}

// GetOwnedTask loads a task created by actorID. Tasks of other users are
// reported as ErrTaskNotFound.
func (s *TaskService) GetOwnedTask(ctx context.Context, taskID, actorID uint64) (*models.Task, error) {
	task, err := s.taskRepo.FindByID(ctx, taskID, "Category")
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTaskNotFound
		}
		return nil, fmt.Errorf("failed to load task: %w", err)
	}
	if task.CreatedByID == nil || *task.CreatedByID != actorID {
		return nil, ErrTaskNotFound
	}
	return task, nil
}

// UpdateTaskInput represents input for updating a task; nil leaves a field unchanged
type UpdateTaskInput struct {
	Description            *string `json:"description"`
	RecurrenceRule         *string `json:"recurrence_rule"`
	DefaultDurationMinutes *int    `json:"default_duration_minutes" validate:"omitempty,min=1,max=1440"`
	DefaultCapacity        *int    `json:"default_capacity" validate:"omitempty,min=1,max=10"`
	Timezone               *string `json:"timezone" validate:"omitempty,timezone"`
	IsPublic               *bool   `json:"is_public"`
	Active                 *bool   `json:"active"`
}

// UpdateTask edits the creator's task
func (s *TaskService) UpdateTask(ctx context.Context, taskID, actorID uint64, input UpdateTaskInput) (*models.Task, error) {
	if err := validateInput(input); err != nil {
		return nil, err
	}

	task, err := s.GetOwnedTask(ctx, taskID, actorID)
	if err != nil {
		return nil, err
	}

	if input.RecurrenceRule != nil {
		rule := strings.TrimSpace(*input.RecurrenceRule)
		if rule != "" {
			if _, err := rrule.StrToRRule(rule); err != nil {
				return nil, newValidationError(ErrInvalidInput, "recurrence_rule", "is not a valid RRULE")
			}
		}
		task.RecurrenceRule = rule
	}
	if input.Description != nil {
		task.Description = *input.Description
	}
	if input.DefaultDurationMinutes != nil {
		task.DefaultDurationMinutes = input.DefaultDurationMinutes
	}
	if input.DefaultCapacity != nil {
		task.DefaultCapacity = *input.DefaultCapacity
	}
	if input.Timezone != nil && *input.Timezone != "" {
		task.Timezone = *input.Timezone
	}
	if input.IsPublic != nil {
		task.IsPublic = *input.IsPublic
	}
	if input.Active != nil {
		task.Active = *input.Active
	}

	if err := s.taskRepo.Update(ctx, task); err != nil {
		return nil, fmt.Errorf("failed to update task: %w", err)
	}

	return task, nil
}

// GenerateSlotsInput selects the occurrences of a task's recurrence rule to materialise
type GenerateSlotsInput struct {
	TaskID  uint64
	ActorID uint64
	From    time.Time
	Until   time.Time
}

// GenerateRecurringSlots creates one open slot per occurrence of the task's
// recurrence rule in [From, Until]. Occurrences that already have a slot are
// skipped, so repeating a call is harmless. Without a DTSTART in the rule the
// occurrences take their time of day from From, read in the task's timezone.
func (s *TaskService) GenerateRecurringSlots(ctx context.Context, input GenerateSlotsInput) ([]models.Slot, error) {
	if !input.Until.After(input.From) {
		return nil, newValidationError(ErrInvalidTimeRange, "until", "must be after from")
	}

	task, err := s.GetOwnedTask(ctx, input.TaskID, input.ActorID)
	if err != nil {
		return nil, err
	}
	if task.RecurrenceRule == "" {
		return nil, newValidationError(ErrInvalidInput, "recurrence_rule", "is not set")
	}

	occurrences, err := occurrencesBetween(task, input.From, input.Until)
	if err != nil {
		return nil, err
	}

	from, until := input.From.UTC(), input.Until.UTC()
	existing, err := s.slotRepo.ListStartsForTask(ctx, task.ID, from, until)
	if err != nil {
		return nil, fmt.Errorf("failed to list existing slots: %w", err)
	}
	taken := make(map[int64]bool, len(existing))
	for _, start := range existing {
		taken[start.UTC().Unix()] = true
	}

	duration := constants.DefaultSlotDuration
	if task.DefaultDurationMinutes != nil && *task.DefaultDurationMinutes > 0 {
		duration = time.Duration(*task.DefaultDurationMinutes) * time.Minute
	}
	capacity := task.DefaultCapacity
	if capacity < constants.MinSlotCapacity || capacity > constants.MaxSlotCapacity {
		capacity = constants.MinSlotCapacity
	}

	slots := make([]models.Slot, 0, len(occurrences))
	for _, occurrence := range occurrences {
		start := occurrence.UTC()
		if taken[start.Unix()] {
			continue
		}
		slots = append(slots, models.Slot{
			TaskID:   task.ID,
			StartTS:  start,
			EndTS:    start.Add(duration),
			Capacity: capacity,
			Status:   models.SlotStatusOpen,
		})
	}

	if err := s.slotRepo.CreateBatch(ctx, slots); err != nil {
		return nil, fmt.Errorf("failed to create slots: %w", err)
	}

	metrics.RecordSlotsCreated("recurrence", len(slots))
	s.logger.Info("Recurring slots generated",
		zap.Uint64("task_id", task.ID),
		zap.Int("occurrences", len(occurrences)),
		zap.Int("created", len(slots)),
	)

	return slots, nil
}

func occurrencesBetween(task *models.Task, from, until time.Time) ([]time.Time, error) {
	loc, err := time.LoadLocation(task.Timezone)
	if err != nil {
		loc = time.UTC
	}

	rule, err := rrule.StrToRRule(task.RecurrenceRule)
	if err != nil {
		return nil, newValidationError(ErrInvalidInput, "recurrence_rule", "is not a valid RRULE")
	}
	if !strings.Contains(strings.ToUpper(task.RecurrenceRule), "DTSTART") {
		rule.DTStart(from.In(loc))
	}

	// until - from is unbounded, so occurrences are pulled one at a time
	occurrences := make([]time.Time, 0, constants.MaxGeneratedOccurrences)
	next := rule.Iterator()
	for scanned := 0; scanned < constants.MaxRecurrenceScan; scanned++ {
		occurrence, ok := next()
		if !ok || occurrence.After(until) {
			break
		}
		if occurrence.Before(from) {
			continue
		}
		occurrences = append(occurrences, occurrence)
		if len(occurrences) == constants.MaxGeneratedOccurrences {
			break
		}
	}
	return occurrences, nil
}
