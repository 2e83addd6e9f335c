package models

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/mmdatafocus/practice_backend/config"
	"github.com/mmdatafocus/practice_backend/utils"
)

// LetterTemplate stores letter template configuration (UI rendering only).
// The rendering pipeline itself is a separate service; this table only
// affects how previews are produced, never compliance or task state.
type LetterTemplate struct {
	ID string `gorm:"primaryKey;size:36" json:"id"`

	LetterType string `gorm:"not null;index;size:50" json:"letter_type"`
	Name       string `gorm:"not null;size:150" json:"name"`
	IsDefault  bool   `gorm:"not null;default:false" json:"is_default"`

	// ConfigJson is stored as JSON text to avoid requiring MySQL JSON column support.
	// The API validates that it is valid JSON.
	ConfigJson string `gorm:"type:longtext" json:"config_json"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

const (
	LetterTypeEngagement       = "engagement"
	LetterTypeDeadlineReminder = "deadline_reminder"
	LetterTypeChase            = "chase"
	LetterTypeDisengagement    = "disengagement"
)

func IsAllowedLetterTemplateType(t string) bool {
	switch t {
	case LetterTypeEngagement, LetterTypeDeadlineReminder, LetterTypeChase, LetterTypeDisengagement:
		return true
	default:
		return false
	}
}

type NewLetterTemplate struct {
	LetterType string `json:"letter_type" binding:"required"`
	Name       string `json:"name" binding:"required"`
	IsDefault  bool   `json:"is_default"`
	ConfigJson string `json:"config_json"`
}

func (input *NewLetterTemplate) validate() error {
	if !IsAllowedLetterTemplateType(input.LetterType) {
		return errors.New("invalid letter type")
	}
	if input.ConfigJson != "" && !json.Valid([]byte(input.ConfigJson)) {
		return errors.New("config_json must be valid JSON")
	}
	return nil
}

func CreateLetterTemplate(ctx context.Context, input *NewLetterTemplate) (*LetterTemplate, error) {

	db := config.GetDB()
	if err := input.validate(); err != nil {
		return nil, err
	}

	tpl := LetterTemplate{
		ID:         uuid.NewString(),
		LetterType: input.LetterType,
		Name:       input.Name,
		IsDefault:  input.IsDefault,
		ConfigJson: input.ConfigJson,
	}

	if err := db.WithContext(ctx).Create(&tpl).Error; err != nil {
		return nil, err
	}
	return &tpl, nil
}

func UpdateLetterTemplate(ctx context.Context, id string, input *NewLetterTemplate) (*LetterTemplate, error) {

	if err := input.validate(); err != nil {
		return nil, err
	}

	tpl, err := GetLetterTemplate(ctx, id)
	if err != nil {
		return nil, err
	}

	db := config.GetDB()
	err = db.WithContext(ctx).Model(&tpl).Updates(map[string]interface{}{
		"LetterType": input.LetterType,
		"Name":       input.Name,
		"IsDefault":  input.IsDefault,
		"ConfigJson": input.ConfigJson,
	}).Error
	if err != nil {
		return nil, err
	}
	return tpl, nil
}

func DeleteLetterTemplate(ctx context.Context, id string) (*LetterTemplate, error) {

	result, err := GetLetterTemplate(ctx, id)
	if err != nil {
		return nil, err
	}
	db := config.GetDB()
	if err := db.WithContext(ctx).Delete(&result).Error; err != nil {
		return nil, err
	}
	return result, nil
}

func GetLetterTemplate(ctx context.Context, id string) (*LetterTemplate, error) {

	var result LetterTemplate
	db := config.GetDB()
	if err := db.WithContext(ctx).Where("id = ?", id).First(&result).Error; err != nil {
		return nil, utils.ErrorRecordNotFound
	}
	return &result, nil
}

func GetLetterTemplates(ctx context.Context, letterType *string) ([]*LetterTemplate, error) {

	db := config.GetDB()
	var results []*LetterTemplate

	dbCtx := db.WithContext(ctx)
	if letterType != nil && len(*letterType) > 0 {
		dbCtx = dbCtx.Where("letter_type = ?", *letterType)
	}
	if err := dbCtx.Order("name").Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}
