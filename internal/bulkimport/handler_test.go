package bulkimport

import (
	"bytes"
	"io"
	"mime/multipart"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"

	"github.com/karthikrajap/textile-pos-backend/internal/product"
)

func multipartBody(t *testing.T, fieldName, fileName string, content []byte) (*bytes.Buffer, string) {
	t.Helper()
	var body bytes.Buffer
	w := multipart.NewWriter(&body)
	part, err := w.CreateFormFile(fieldName, fileName)
	if err != nil {
		t.Fatalf("create form file: %v", err)
	}
	if _, err := part.Write(content); err != nil {
		t.Fatalf("write part: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("close writer: %v", err)
	}
	return &body, w.FormDataContentType()
}

func TestBulkImportEndpoint(t *testing.T) {
	app := fiber.New()
	handler := NewHandler(NewImporter(product.NewService(product.NewInMemoryRepository(nil))))
	handler.RegisterProtectedRoutes(app)

	workbook := workbookFrom(t, [][]interface{}{
		templateHeader(),
		{"Weave Traders", "", "Silk Saree", 150, 200, "Silk", "", "", 10, "5007", ""},
	})

	body, contentType := multipartBody(t, "file", "catalog.xlsx", workbook.Bytes())
	req := httptest.NewRequest("POST", "/api/products/bulk-import", body)
	req.Header.Set("Content-Type", contentType)
	res, err := app.Test(req)
	if err != nil {
		t.Fatalf("request: %v", err)
	}
	if res.StatusCode != fiber.StatusOK {
		t.Fatalf("expected 200, got %d", res.StatusCode)
	}
	b, _ := io.ReadAll(res.Body)
	if !strings.Contains(string(b), `"status":"success"`) {
		t.Fatalf("unexpected report: %s", string(b))
	}
}

func TestBulkImportEndpoint_RejectsWrongExtension(t *testing.T) {
	app := fiber.New()
	handler := NewHandler(NewImporter(product.NewService(product.NewInMemoryRepository(nil))))
	handler.RegisterProtectedRoutes(app)

	body, contentType := multipartBody(t, "file", "catalog.csv", []byte("a,b,c"))
	req := httptest.NewRequest("POST", "/api/products/bulk-import", body)
	req.Header.Set("Content-Type", contentType)
	res, err := app.Test(req)
	if err != nil {
		t.Fatalf("request: %v", err)
	}
	if res.StatusCode != fiber.StatusBadRequest {
		t.Fatalf("expected 400 for .csv upload, got %d", res.StatusCode)
	}
}

func TestBulkImportEndpoint_MissingFile(t *testing.T) {
	app := fiber.New()
	handler := NewHandler(NewImporter(product.NewService(product.NewInMemoryRepository(nil))))
	handler.RegisterProtectedRoutes(app)

	req := httptest.NewRequest("POST", "/api/products/bulk-import", nil)
	res, err := app.Test(req)
	if err != nil {
		t.Fatalf("request: %v", err)
	}
	if res.StatusCode != fiber.StatusBadRequest {
		t.Fatalf("expected 400 for missing file, got %d", res.StatusCode)
	}
}
