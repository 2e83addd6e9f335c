package models

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/mmdatafocus/practice_backend/config"
	"github.com/mmdatafocus/practice_backend/utils"
	"github.com/shopspring/decimal"
)

// Service is an engagement the practice performs for a client (e.g.
// "Annual Accounts", "VAT Returns", "Payroll"). Kind is free text: the
// catalogue is operator-maintained, not an enum, and the compliance
// classifier maps it onto obligation types.
type Service struct {
	ID        string          `gorm:"primaryKey;size:36" json:"id"`
	ClientId  string          `gorm:"index;size:36;not null" json:"client_id" binding:"required"`
	Kind      string          `gorm:"size:100;not null" json:"kind" binding:"required"`
	Status    ServiceStatus   `gorm:"size:20;not null;default:'ACTIVE'" json:"status"`
	NextDue   *time.Time      `json:"next_due"`
	AnnualFee decimal.Decimal `gorm:"type:decimal(20,2);default:0" json:"annual_fee"`
	Notes     string          `gorm:"type:text" json:"notes"`
	CreatedAt time.Time       `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time       `gorm:"autoUpdateTime" json:"updated_at"`
}

type NewService struct {
	ClientId  string          `json:"client_id" binding:"required"`
	Kind      string          `json:"kind" binding:"required"`
	Status    ServiceStatus   `json:"status"`
	NextDue   *time.Time      `json:"next_due"`
	AnnualFee decimal.Decimal `json:"annual_fee"`
	Notes     string          `json:"notes"`
}

func (input *NewService) validate(ctx context.Context) error {
	if err := utils.ValidateResourceId[Client](ctx, input.ClientId); err != nil {
		return err
	}
	if input.Status != "" {
		if _, err := ParseServiceStatus(string(input.Status)); err != nil {
			return err
		}
	}
	return nil
}

func CreateService(ctx context.Context, input *NewService) (*Service, error) {

	db := config.GetDB()
	if err := input.validate(ctx); err != nil {
		return nil, err
	}

	status := input.Status
	if status == "" {
		status = ServiceStatusActive
	}

	service := Service{
		ID:        uuid.NewString(),
		ClientId:  input.ClientId,
		Kind:      input.Kind,
		Status:    status,
		NextDue:   input.NextDue,
		AnnualFee: input.AnnualFee,
		Notes:     input.Notes,
	}

	if err := db.WithContext(ctx).Create(&service).Error; err != nil {
		return nil, err
	}
	return &service, nil
}

func UpdateService(ctx context.Context, id string, input *NewService) (*Service, error) {

	if err := input.validate(ctx); err != nil {
		return nil, err
	}

	service, err := GetService(ctx, id)
	if err != nil {
		return nil, err
	}

	db := config.GetDB()
	err = db.WithContext(ctx).Model(&service).Updates(map[string]interface{}{
		"ClientId":  input.ClientId,
		"Kind":      input.Kind,
		"Status":    input.Status,
		"NextDue":   input.NextDue,
		"AnnualFee": input.AnnualFee,
		"Notes":     input.Notes,
	}).Error
	if err != nil {
		return nil, err
	}
	return service, nil
}

func DeleteService(ctx context.Context, id string) (*Service, error) {

	result, err := GetService(ctx, id)
	if err != nil {
		return nil, err
	}
	db := config.GetDB()
	if err := db.WithContext(ctx).Delete(&result).Error; err != nil {
		return nil, err
	}
	return result, nil
}

func GetService(ctx context.Context, id string) (*Service, error) {

	var result Service
	db := config.GetDB()
	if err := db.WithContext(ctx).Where("id = ?", id).First(&result).Error; err != nil {
		return nil, utils.ErrorRecordNotFound
	}
	return &result, nil
}

func GetServices(ctx context.Context, clientId *string, status *ServiceStatus) ([]*Service, error) {

	db := config.GetDB()
	var results []*Service

	dbCtx := db.WithContext(ctx)
	if clientId != nil && len(*clientId) > 0 {
		dbCtx = dbCtx.Where("client_id = ?", *clientId)
	}
	if status != nil && len(*status) > 0 {
		dbCtx = dbCtx.Where("status = ?", *status)
	}
	if err := dbCtx.Order("created_at").Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}
