package handlers

import (
	"fmt"
	"net/http"
	"path"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/mmdatafocus/practice_backend/models"
	"github.com/mmdatafocus/practice_backend/utils"
)

const maxDirectUploadBytes = 10 << 20

func (h *Handler) CreateDocument(c *gin.Context) {
	var input models.NewDocument
	if err := c.ShouldBindJSON(&input); err != nil {
		respondBindError(c, err)
		return
	}
	doc, err := models.CreateDocument(c.Request.Context(), &input)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, doc)
}

func (h *Handler) DeleteDocument(c *gin.Context) {
	doc, err := models.DeleteDocument(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, doc)
}

func (h *Handler) GetDocument(c *gin.Context) {
	doc, err := models.GetDocument(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, doc)
}

func (h *Handler) ListDocuments(c *gin.Context) {
	var clientId *string
	if v := c.Query("client_id"); v != "" {
		clientId = &v
	}
	docs, err := models.GetDocuments(c.Request.Context(), clientId)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, docs)
}

// UploadDocument takes the file bytes directly, for callers that cannot do
// the two-step signed upload. The bytes go straight to the bucket and the
// document record points at the stored object.
func (h *Handler) UploadDocument(c *gin.Context) {
	clientId := c.PostForm("client_id")
	if clientId == "" {
		respondBindError(c, fmt.Errorf("client_id is required"))
		return
	}

	file, header, err := c.Request.FormFile("file")
	if err != nil {
		respondBindError(c, fmt.Errorf("file is required"))
		return
	}
	defer file.Close()
	if header.Size > maxDirectUploadBytes {
		respondBindError(c, fmt.Errorf("file exceeds %dMB limit", maxDirectUploadBytes>>20))
		return
	}

	name := c.PostForm("name")
	if name == "" {
		name = header.Filename
	}

	objectKey := utils.GenerateUniqueFilename() + path.Ext(header.Filename)
	if err := utils.UploadFileToGCS(c.Request.Context(), objectKey, file); err != nil {
		respondError(c, err)
		return
	}

	doc, err := models.CreateDocument(c.Request.Context(), &models.NewDocument{
		ClientId:    clientId,
		Name:        name,
		DocumentUrl: utils.BuildObjectAccessURL(objectKey),
		ContentType: header.Header.Get("Content-Type"),
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, doc)
}

type signUploadRequest struct {
	FileName    string `json:"file_name" binding:"required"`
	ContentType string `json:"content_type" binding:"required"`
}

// SignDocumentUpload hands the browser a short-lived signed PUT URL so file
// bytes never pass through the API. The returned access URL goes into the
// document record once the upload finishes.
func (h *Handler) SignDocumentUpload(c *gin.Context) {
	var input signUploadRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		respondBindError(c, err)
		return
	}

	objectKey := utils.GenerateUniqueFilename() + path.Ext(input.FileName)
	signed, err := utils.SignUpload(c.Request.Context(), objectKey, input.ContentType, 15*time.Minute)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, signed)
}
