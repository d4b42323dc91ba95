package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
	"github.com/yukikurage/volunteer-scheduling-api/internal/models"
	"github.com/yukikurage/volunteer-scheduling-api/internal/repository"
	"github.com/yukikurage/volunteer-scheduling-api/internal/utils"
	"gorm.io/gorm"
)

type TaskServiceTestSuite struct {
	suite.Suite
	db      *gorm.DB
	ctx     context.Context
	service *TaskService
	patient *models.User
	task    *models.Task
}

func (s *TaskServiceTestSuite) SetupTest() {
	s.db = newTestDB(s.T())
	s.ctx = context.Background()
	s.service = NewTaskService(repository.NewTaskRepository(s.db), repository.NewSlotRepository(s.db), nil)
	s.patient = createUser(s.T(), s.db, "patient", models.RolePatient)

	duration := 90
	s.task = &models.Task{
		Title:                  "Physio walk",
		CreatedByID:            &s.patient.ID,
		DefaultDurationMinutes: &duration,
		DefaultCapacity:        3,
		Timezone:               "UTC",
		IsPublic:               true,
		Active:                 true,
	}
	s.Require().NoError(s.db.Create(s.task).Error)
}

func (s *TaskServiceTestSuite) setRule(rule string) {
	_, err := s.service.UpdateTask(s.ctx, s.task.ID, s.patient.ID, UpdateTaskInput{RecurrenceRule: &rule})
	s.Require().NoError(err)
}

func (s *TaskServiceTestSuite) TestListTasks() {
	other := createUser(s.T(), s.db, "other", models.RolePatient)
	s.Require().NoError(s.db.Create(&models.Task{Title: "Not mine", CreatedByID: &other.ID, DefaultCapacity: 1, Timezone: "UTC"}).Error)

	tasks, total, err := s.service.ListTasks(s.ctx, s.patient.ID, utils.PaginationParams{Page: 1, Limit: 10})
	s.Require().NoError(err)
	s.Equal(int64(1), total)
	s.Require().Len(tasks, 1)
	s.Equal("Physio walk", tasks[0].Title)
}

func (s *TaskServiceTestSuite) TestUpdateTask_RejectsInvalidRule() {
	rule := "FREQ=SOMETIMES"
	_, err := s.service.UpdateTask(s.ctx, s.task.ID, s.patient.ID, UpdateTaskInput{RecurrenceRule: &rule})
	s.ErrorIs(err, ErrInvalidInput)
}

func (s *TaskServiceTestSuite) TestUpdateTask_OtherCreatorIsNotFound() {
	other := createUser(s.T(), s.db, "other", models.RolePatient)
	description := "hijacked"

	_, err := s.service.UpdateTask(s.ctx, s.task.ID, other.ID, UpdateTaskInput{Description: &description})
	s.ErrorIs(err, ErrTaskNotFound)
}

func (s *TaskServiceTestSuite) TestUpdateTask_PersistsFalseFlags() {
	inactive := false
	_, err := s.service.UpdateTask(s.ctx, s.task.ID, s.patient.ID, UpdateTaskInput{Active: &inactive, IsPublic: &inactive})
	s.Require().NoError(err)

	var reloaded models.Task
	s.Require().NoError(s.db.First(&reloaded, s.task.ID).Error)
	s.False(reloaded.Active)
	s.False(reloaded.IsPublic)
}

func (s *TaskServiceTestSuite) TestGenerateRecurringSlots() {
	s.setRule("FREQ=WEEKLY;BYDAY=MO,WE")

	// Monday 6 May 2030
	from := time.Date(2030, 5, 6, 9, 0, 0, 0, time.UTC)
	until := time.Date(2030, 5, 19, 23, 0, 0, 0, time.UTC)

	slots, err := s.service.GenerateRecurringSlots(s.ctx, GenerateSlotsInput{
		TaskID:  s.task.ID,
		ActorID: s.patient.ID,
		From:    from,
		Until:   until,
	})
	s.Require().NoError(err)
	s.Require().Len(slots, 4)

	expectedDays := []int{6, 8, 13, 15}
	for i, slot := range slots {
		s.Equal(expectedDays[i], slot.StartTS.Day())
		s.Equal(9, slot.StartTS.Hour())
		s.Equal(90*time.Minute, slot.EndTS.Sub(slot.StartTS))
		s.Equal(3, slot.Capacity)
		s.Equal(models.SlotStatusOpen, slot.Status)
		s.Equal(0, slot.BookingsCount)
	}

	// repeating the call does not duplicate slots
	again, err := s.service.GenerateRecurringSlots(s.ctx, GenerateSlotsInput{
		TaskID:  s.task.ID,
		ActorID: s.patient.ID,
		From:    from,
		Until:   until,
	})
	s.Require().NoError(err)
	s.Empty(again)

	var count int64
	s.Require().NoError(s.db.Model(&models.Slot{}).Where("task_id = ?", s.task.ID).Count(&count).Error)
	s.Equal(int64(4), count)
}

func (s *TaskServiceTestSuite) TestGenerateRecurringSlots_CapsOccurrences() {
	s.setRule("FREQ=DAILY")

	from := time.Date(2030, 1, 1, 10, 0, 0, 0, time.UTC)
	slots, err := s.service.GenerateRecurringSlots(s.ctx, GenerateSlotsInput{
		TaskID:  s.task.ID,
		ActorID: s.patient.ID,
		From:    from,
		Until:   from.AddDate(1, 0, 0),
	})
	s.Require().NoError(err)
	s.Len(slots, 100)
}

func (s *TaskServiceTestSuite) TestGenerateRecurringSlots_DenseRuleOverLongWindow() {
	s.setRule("FREQ=SECONDLY")

	from := time.Date(2030, 1, 1, 10, 0, 0, 0, time.UTC)
	started := time.Now()
	slots, err := s.service.GenerateRecurringSlots(s.ctx, GenerateSlotsInput{
		TaskID:  s.task.ID,
		ActorID: s.patient.ID,
		From:    from,
		Until:   from.AddDate(50, 0, 0),
	})
	s.Require().NoError(err)
	s.Require().Len(slots, 100)
	s.Equal(from, slots[0].StartTS.UTC())
	s.Equal(from.Add(99*time.Second), slots[99].StartTS.UTC())
	s.Less(time.Since(started), 5*time.Second)
}

func (s *TaskServiceTestSuite) TestGenerateRecurringSlots_Errors() {
	from := time.Date(2030, 1, 1, 10, 0, 0, 0, time.UTC)

	_, err := s.service.GenerateRecurringSlots(s.ctx, GenerateSlotsInput{TaskID: s.task.ID, ActorID: s.patient.ID, From: from, Until: from.AddDate(0, 0, 7)})
	s.ErrorIs(err, ErrInvalidInput, "rule not set")

	s.setRule("FREQ=DAILY")

	_, err = s.service.GenerateRecurringSlots(s.ctx, GenerateSlotsInput{TaskID: s.task.ID, ActorID: s.patient.ID, From: from, Until: from})
	s.ErrorIs(err, ErrInvalidTimeRange)

	other := createUser(s.T(), s.db, "other", models.RolePatient)
	_, err = s.service.GenerateRecurringSlots(s.ctx, GenerateSlotsInput{TaskID: s.task.ID, ActorID: other.ID, From: from, Until: from.AddDate(0, 0, 7)})
	s.ErrorIs(err, ErrTaskNotFound)
}

func TestTaskServiceTestSuite(t *testing.T) {
	suite.Run(t, new(TaskServiceTestSuite))
}
