package handlers

import (
	"bytes"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
)

func multipartRequest(t *testing.T, fields map[string]string, fileField string) *http.Request {
	t.Helper()
	var body bytes.Buffer
	w := multipart.NewWriter(&body)
	for k, v := range fields {
		if err := w.WriteField(k, v); err != nil {
			t.Fatalf("write field %s: %v", k, err)
		}
	}
	if fileField != "" {
		fw, err := w.CreateFormFile(fileField, "letter.pdf")
		if err != nil {
			t.Fatalf("create form file: %v", err)
		}
		if _, err := fw.Write([]byte("%PDF-1.4")); err != nil {
			t.Fatalf("write file: %v", err)
		}
	}
	if err := w.Close(); err != nil {
		t.Fatalf("close writer: %v", err)
	}

	req := httptest.NewRequest(http.MethodPost, "/documents/upload", &body)
	req.Header.Set("Content-Type", w.FormDataContentType())
	return req
}

func TestUploadDocument_RequiresClientId(t *testing.T) {
	gin.SetMode(gin.TestMode)
	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	c.Request = multipartRequest(t, nil, "file")

	New(nil).UploadDocument(c)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 without client_id, got %d", rec.Code)
	}
}

func TestUploadDocument_RequiresFile(t *testing.T) {
	gin.SetMode(gin.TestMode)
	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	c.Request = multipartRequest(t, map[string]string{"client_id": "c1"}, "")

	New(nil).UploadDocument(c)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 without a file part, got %d", rec.Code)
	}
}
