package models

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/mmdatafocus/practice_backend/config"
	"github.com/mmdatafocus/practice_backend/utils"
)

// Document is a stored file attached to a client (signed engagement letter,
// filed accounts, HMRC correspondence). The file itself lives in object
// storage; DocumentUrl resolves to it.
type Document struct {
	ID          string    `gorm:"primaryKey;size:36" json:"id"`
	ClientId    string    `gorm:"index;size:36;not null" json:"client_id" binding:"required"`
	Name        string    `gorm:"size:255;not null" json:"name" binding:"required"`
	DocumentUrl string    `gorm:"size:500;not null" json:"document_url"`
	ContentType string    `gorm:"size:100" json:"content_type"`
	CreatedAt   time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

type NewDocument struct {
	ClientId    string `json:"client_id" binding:"required"`
	Name        string `json:"name" binding:"required"`
	DocumentUrl string `json:"document_url" binding:"required"`
	ContentType string `json:"content_type"`
}

func (input *NewDocument) validate(ctx context.Context) error {
	if err := utils.ValidateResourceId[Client](ctx, input.ClientId); err != nil {
		return err
	}
	// the object must already be in the bucket (clients upload via signed URL first)
	if err := utils.CheckFileExistInGCS(input.DocumentUrl); err != nil {
		return err
	}
	return nil
}

func CreateDocument(ctx context.Context, input *NewDocument) (*Document, error) {

	db := config.GetDB()
	if err := input.validate(ctx); err != nil {
		return nil, err
	}

	doc := Document{
		ID:          uuid.NewString(),
		ClientId:    input.ClientId,
		Name:        input.Name,
		DocumentUrl: input.DocumentUrl,
		ContentType: input.ContentType,
	}

	if err := db.WithContext(ctx).Create(&doc).Error; err != nil {
		return nil, err
	}
	return &doc, nil
}

func DeleteDocument(ctx context.Context, id string) (*Document, error) {

	result, err := GetDocument(ctx, id)
	if err != nil {
		return nil, err
	}
	db := config.GetDB()
	if err := db.WithContext(ctx).Delete(&result).Error; err != nil {
		return nil, err
	}
	// delete actual file
	if key := utils.ExtractObjectKeyFromURL(result.DocumentUrl); key != "" {
		if err := utils.DeleteFileFromGCS(ctx, key); err != nil {
			return nil, err
		}
	}
	return result, nil
}

func GetDocument(ctx context.Context, id string) (*Document, error) {

	var result Document
	db := config.GetDB()
	if err := db.WithContext(ctx).Where("id = ?", id).First(&result).Error; err != nil {
		return nil, utils.ErrorRecordNotFound
	}
	return &result, nil
}

func GetDocuments(ctx context.Context, clientId *string) ([]*Document, error) {

	db := config.GetDB()
	var results []*Document

	dbCtx := db.WithContext(ctx)
	if clientId != nil && len(*clientId) > 0 {
		dbCtx = dbCtx.Where("client_id = ?", *clientId)
	}
	if err := dbCtx.Order("created_at DESC").Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}
