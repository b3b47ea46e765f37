package handler

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"docshare/internal/model"
	"docshare/internal/service"
	"docshare/internal/storage"
)

type shareRequest struct {
	Emails []string `json:"emails"`
}

type shareResponse struct {
	Message string `json:"message"`
	Link    string `json:"link"`
}

// sharedDocumentView is what a link holder sees. Owner, recipients and the link itself stay hidden.
type sharedDocumentView struct {
	ID         string    `json:"id"`
	FileName   string    `json:"file_name"`
	CreatedAt  time.Time `json:"created_at"`
	ContentURL string    `json:"content_url"`
}

// ShareDocument grants recipients access and rotates the document's share link. Owner only.
//
// @Summary Share a document
// @Tags sharing
// @Accept json
// @Produce json
// @Param id path string true "Document ID"
// @Param body body shareRequest true "Recipients"
// @Success 200 {object} shareResponse
// @Failure 400 {object} errorPayload
// @Failure 403 {object} errorPayload
// @Failure 404 {object} errorPayload
// @Security BearerAuth
// @Router /api/documents/{id}/share [post]
func ShareDocument(svc service.SharingService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req shareRequest
		if err := c.BodyParser(&req); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_BODY", "invalid JSON body")
		}

		res, err := svc.Share(c.UserContext(), caller(c), c.Params("id"), req.Emails)
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.JSON(shareResponse{Message: "Document shared successfully", Link: res.Link})
	}
}

func resolve(c *fiber.Ctx, resolver service.AccessResolver) (*model.Document, error) {
	link := c.Params("link")
	if q := c.Query("link"); q != "" {
		link = q
	}
	return resolver.ResolveShared(c.UserContext(), link)
}

// GetShared resolves a share key to the document's public view. No authentication.
//
// @Summary Open a shared document
// @Tags sharing
// @Produce json
// @Param link path string true "Share key {documentId}-{token}"
// @Success 200 {object} sharedDocumentView
// @Failure 404 {object} errorPayload
// @Router /api/shared/{link} [get]
func GetShared(resolver service.AccessResolver, docs service.DocumentService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		doc, err := resolve(c, resolver)
		if err != nil {
			return writeServiceError(c, err)
		}
		url, err := docs.ContentURL(c.UserContext(), doc)
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.JSON(sharedDocumentView{
			ID:         doc.ID,
			FileName:   doc.FileName,
			CreatedAt:  doc.CreatedAt,
			ContentURL: url,
		})
	}
}

// GetSharedContent streams the PDF behind a share key, or redirects to an external reference.
//
// @Summary Download a shared document
// @Tags sharing
// @Produce application/pdf
// @Param link path string true "Share key {documentId}-{token}"
// @Success 200 {file} binary
// @Success 302
// @Failure 404 {object} errorPayload
// @Router /api/shared/{link}/content [get]
func GetSharedContent(resolver service.AccessResolver, docs service.DocumentService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		doc, err := resolve(c, resolver)
		if err != nil {
			return writeServiceError(c, err)
		}
		if service.IsExternalReference(doc.StorageReference) {
			return c.Redirect(doc.StorageReference, fiber.StatusFound)
		}

		rc, info, err := docs.OpenContent(c.UserContext(), doc)
		if err != nil {
			return writeServiceError(c, err)
		}
		c.Set(fiber.HeaderContentType, "application/pdf")
		c.Set(fiber.HeaderContentDisposition, storage.InlineDisposition(doc.FileName))
		size := -1
		if info.Size > 0 {
			size = int(info.Size)
		}
		// fasthttp closes rc once the body is written.
		return c.SendStream(rc, size)
	}
}
