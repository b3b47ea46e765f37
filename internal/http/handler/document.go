package handler

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"docshare/internal/http/middleware"
	"docshare/internal/model"
	"docshare/internal/service"
)

type registerDocumentRequest struct {
	FileName         string `json:"file_name"`
	StorageReference string `json:"storage_reference"`
}

type documentListResponse struct {
	Items []model.Document `json:"items"`
	Total int              `json:"total"`
}

// caller returns the identity set by middleware.Authenticate, or the anonymous identity.
func caller(c *fiber.Ctx) model.Identity {
	id, _ := middleware.IdentityFrom(c)
	return id
}

// UploadDocument stores a PDF sent as multipart field "file", or registers an existing
// storage reference sent as JSON.
//
// @Summary Upload a document
// @Tags documents
// @Accept multipart/form-data,json
// @Produce json
// @Param file formData file false "PDF file"
// @Param body body registerDocumentRequest false "Existing storage reference"
// @Success 201 {object} model.Document
// @Failure 400 {object} errorPayload
// @Failure 401 {object} errorPayload
// @Security BearerAuth
// @Router /api/documents [post]
func UploadDocument(svc service.DocumentService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if strings.HasPrefix(c.Get(fiber.HeaderContentType), fiber.MIMEApplicationJSON) {
			var req registerDocumentRequest
			if err := c.BodyParser(&req); err != nil {
				return writeError(c, fiber.StatusBadRequest, "INVALID_BODY", "invalid JSON body")
			}
			doc, err := svc.Upload(c.UserContext(), caller(c), req.FileName, req.StorageReference)
			if err != nil {
				return writeServiceError(c, err)
			}
			return c.Status(fiber.StatusCreated).JSON(doc)
		}

		fh, err := c.FormFile("file")
		if err != nil {
			return writeError(c, fiber.StatusBadRequest, "FILE_REQUIRED", "file is required")
		}

		f, err := fh.Open()
		if err != nil {
			return writeError(c, fiber.StatusBadRequest, "FILE_OPEN_ERROR", "cannot open uploaded file")
		}
		defer f.Close()

		doc, err := svc.UploadFile(c.UserContext(), caller(c), f, fh.Filename, fh.Header.Get(fiber.HeaderContentType), fh.Size)
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.Status(fiber.StatusCreated).JSON(doc)
	}
}

// ListDocuments returns the caller's own documents, newest first.
//
// @Summary List my documents
// @Tags documents
// @Produce json
// @Success 200 {object} documentListResponse
// @Failure 401 {object} errorPayload
// @Security BearerAuth
// @Router /api/documents [get]
func ListDocuments(svc service.DocumentService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		items, err := svc.ListMine(c.UserContext(), caller(c))
		if err != nil {
			return writeServiceError(c, err)
		}
		if items == nil {
			items = []model.Document{}
		}
		return c.JSON(documentListResponse{Items: items, Total: len(items)})
	}
}
