package models

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/mmdatafocus/practice_backend/config"
	"github.com/mmdatafocus/practice_backend/utils"
)

type Client struct {
	ID              string       `gorm:"primaryKey;size:36" json:"id"`
	Name            string       `gorm:"size:150;not null" json:"name" binding:"required"`
	Status          ClientStatus `gorm:"size:20;not null;default:'ACTIVE'" json:"status"`
	PortfolioCode   string       `gorm:"size:20;index" json:"portfolio_code"`
	RegistrationRef string       `gorm:"size:20" json:"registration_ref"` // Companies House number
	UTR             string       `gorm:"size:20" json:"utr"`
	VATNumber       string       `gorm:"size:20" json:"vat_number"`
	Email           string       `gorm:"size:100" json:"email"`
	Phone           string       `gorm:"size:20" json:"phone"`
	Notes           string       `gorm:"type:text" json:"notes"`
	CreatedAt       time.Time    `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt       time.Time    `gorm:"autoUpdateTime" json:"updated_at"`
}

type NewClient struct {
	Name            string       `json:"name" binding:"required"`
	Status          ClientStatus `json:"status"`
	PortfolioCode   string       `json:"portfolio_code"`
	RegistrationRef string       `json:"registration_ref"`
	UTR             string       `json:"utr"`
	VATNumber       string       `json:"vat_number"`
	Email           string       `json:"email"`
	Phone           string       `json:"phone"`
	Notes           string       `json:"notes"`
}

/*
caches:
	Client:$id
	ClientList:$portfolioCode
*/

func (c Client) RemoveInstanceRedis() error {
	if err := utils.InvalidateRedis[Client](c.ID); err != nil {
		return err
	}
	return utils.InvalidateRedisList[Client](c.PortfolioCode)
}

// validate input for both create & update. (id = "" for create)
func (input *NewClient) validate(ctx context.Context, id string) error {
	// validate unique name
	if err := utils.ValidateUnique[Client](ctx, "name", input.Name, id); err != nil {
		return err
	}
	// validate registration ref
	if input.RegistrationRef != "" {
		if err := utils.ValidateUnique[Client](ctx, "registration_ref", input.RegistrationRef, id); err != nil {
			return err
		}
	}
	// validate email
	if input.Email != "" && !utils.IsValidEmail(input.Email) {
		return errors.New("invalid email")
	}
	// validate phone
	if input.Phone != "" {
		if err := utils.ValidatePhoneNumber(input.Phone, ""); err != nil {
			return err
		}
	}
	if input.Status != "" {
		if _, err := ParseClientStatus(string(input.Status)); err != nil {
			return err
		}
	}
	return nil
}

func CreateClient(ctx context.Context, input *NewClient) (*Client, error) {

	db := config.GetDB()
	if err := input.validate(ctx, ""); err != nil {
		return nil, err
	}

	status := input.Status
	if status == "" {
		status = ClientStatusActive
	}

	client := Client{
		ID:              uuid.NewString(),
		Name:            input.Name,
		Status:          status,
		PortfolioCode:   input.PortfolioCode,
		RegistrationRef: input.RegistrationRef,
		UTR:             input.UTR,
		VATNumber:       input.VATNumber,
		Email:           input.Email,
		Phone:           input.Phone,
		Notes:           input.Notes,
	}

	err := db.WithContext(ctx).Create(&client).Error
	if err != nil {
		return nil, err
	}
	_ = client.RemoveInstanceRedis()

	return &client, nil
}

func UpdateClient(ctx context.Context, id string, input *NewClient) (*Client, error) {

	if err := input.validate(ctx, id); err != nil {
		return nil, err
	}

	client, err := GetClient(ctx, id)
	if err != nil {
		return nil, err
	}

	db := config.GetDB()
	err = db.WithContext(ctx).Model(&client).Updates(map[string]interface{}{
		"Name":            input.Name,
		"Status":          input.Status,
		"PortfolioCode":   input.PortfolioCode,
		"RegistrationRef": input.RegistrationRef,
		"UTR":             input.UTR,
		"VATNumber":       input.VATNumber,
		"Email":           input.Email,
		"Phone":           input.Phone,
		"Notes":           input.Notes,
	}).Error
	if err != nil {
		return nil, err
	}
	_ = client.RemoveInstanceRedis()
	return client, nil
}

func DeleteClient(ctx context.Context, id string) (*Client, error) {

	result, err := GetClient(ctx, id)
	if err != nil {
		return nil, err
	}
	db := config.GetDB()
	err = db.WithContext(ctx).Delete(&result).Error
	if err != nil {
		return nil, err
	}
	_ = result.RemoveInstanceRedis()
	return result, nil
}

func GetClient(ctx context.Context, id string) (*Client, error) {

	var result Client
	db := config.GetDB()
	if err := db.WithContext(ctx).Where("id = ?", id).First(&result).Error; err != nil {
		return nil, utils.ErrorRecordNotFound
	}
	return &result, nil
}

func GetClients(ctx context.Context, name *string, portfolio *string, status *ClientStatus) ([]*Client, error) {

	db := config.GetDB()
	var results []*Client

	dbCtx := db.WithContext(ctx)
	if name != nil && len(*name) > 0 {
		dbCtx = dbCtx.Where("name LIKE ?", "%"+*name+"%")
	}
	if portfolio != nil && len(*portfolio) > 0 {
		dbCtx = dbCtx.Where("portfolio_code = ?", *portfolio)
	}
	if status != nil && len(*status) > 0 {
		dbCtx = dbCtx.Where("status = ?", *status)
	}
	if err := dbCtx.Order("name").Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}
