package models

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/mmdatafocus/practice_backend/config"
	"github.com/mmdatafocus/practice_backend/utils"
)

// Task is a unit of staff work. Tasks generated from a compliance item carry
// the item's id in ComplianceItemId; tasks migrated from the old convention
// only carry the "compliance:<id>" tag or the raw id in their text.
type Task struct {
	ID               string       `gorm:"primaryKey;size:36" json:"id"`
	Title            string       `gorm:"size:255;not null" json:"title" binding:"required"`
	Description      string       `gorm:"type:text" json:"description"`
	AssigneeId       string       `gorm:"size:36;index" json:"assignee_id"`
	DueDate          *time.Time   `json:"due_date"`
	Status           TaskStatus   `gorm:"size:20;not null;default:'OPEN'" json:"status"`
	Priority         TaskPriority `gorm:"size:20;not null;default:'LOW'" json:"priority"`
	Tags             StringList   `gorm:"type:longtext" json:"tags"`
	ComplianceItemId string       `gorm:"size:36;index" json:"compliance_item_id"`
	CreatedAt        time.Time    `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt        time.Time    `json:"updated_at"`
}

func (t Task) RecordID() string { return t.ID }

type NewTask struct {
	Title            string       `json:"title" binding:"required"`
	Description      string       `json:"description"`
	AssigneeId       string       `json:"assignee_id"`
	DueDate          *time.Time   `json:"due_date"`
	Status           TaskStatus   `json:"status"`
	Priority         TaskPriority `json:"priority"`
	Tags             StringList   `json:"tags"`
	ComplianceItemId string       `json:"compliance_item_id"`
}

func (input *NewTask) validate() error {
	if input.Status != "" {
		if _, err := ParseTaskStatus(string(input.Status)); err != nil {
			return err
		}
	}
	if input.Priority != "" {
		if _, err := ParseTaskPriority(string(input.Priority)); err != nil {
			return err
		}
	}
	return nil
}

func CreateTask(ctx context.Context, input *NewTask) (*Task, error) {

	db := config.GetDB()
	if err := input.validate(); err != nil {
		return nil, err
	}

	status := input.Status
	if status == "" {
		status = TaskStatusOpen
	}
	priority := input.Priority
	if priority == "" {
		priority = TaskPriorityLow
	}

	task := Task{
		ID:               uuid.NewString(),
		Title:            input.Title,
		Description:      input.Description,
		AssigneeId:       input.AssigneeId,
		DueDate:          input.DueDate,
		Status:           status,
		Priority:         priority,
		Tags:             input.Tags,
		ComplianceItemId: input.ComplianceItemId,
		UpdatedAt:        time.Now().UTC(),
	}

	if err := db.WithContext(ctx).Create(&task).Error; err != nil {
		return nil, err
	}
	return &task, nil
}

func UpdateTask(ctx context.Context, id string, input *NewTask) (*Task, error) {

	if err := input.validate(); err != nil {
		return nil, err
	}

	task, err := GetTask(ctx, id)
	if err != nil {
		return nil, err
	}

	db := config.GetDB()
	err = db.WithContext(ctx).Model(&task).Updates(map[string]interface{}{
		"Title":       input.Title,
		"Description": input.Description,
		"AssigneeId":  input.AssigneeId,
		"DueDate":     input.DueDate,
		"Status":      input.Status,
		"Priority":    input.Priority,
		"Tags":        input.Tags,
		"UpdatedAt":   time.Now().UTC(),
	}).Error
	if err != nil {
		return nil, err
	}
	return task, nil
}

func DeleteTask(ctx context.Context, id string) (*Task, error) {

	result, err := GetTask(ctx, id)
	if err != nil {
		return nil, err
	}
	db := config.GetDB()
	if err := db.WithContext(ctx).Delete(&result).Error; err != nil {
		return nil, err
	}
	return result, nil
}

func GetTask(ctx context.Context, id string) (*Task, error) {

	var result Task
	db := config.GetDB()
	if err := db.WithContext(ctx).Where("id = ?", id).First(&result).Error; err != nil {
		return nil, utils.ErrorRecordNotFound
	}
	return &result, nil
}

func GetTasks(ctx context.Context, assigneeId *string, status *TaskStatus) ([]*Task, error) {

	db := config.GetDB()
	var results []*Task

	dbCtx := db.WithContext(ctx)
	if assigneeId != nil && len(*assigneeId) > 0 {
		dbCtx = dbCtx.Where("assignee_id = ?", *assigneeId)
	}
	if status != nil && len(*status) > 0 {
		dbCtx = dbCtx.Where("status = ?", *status)
	}
	if err := dbCtx.Order("created_at DESC").Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}
