package handler

import (
	"github.com/gofiber/fiber/v2"

	"docshare/internal/model"
	"docshare/internal/service"
)

type addCommentRequest struct {
	Text     string `json:"text"`
	ShareKey string `json:"share_key"`
}

type commentListResponse struct {
	Items []model.Comment `json:"items"`
	Total int             `json:"total"`
}

// AddComment appends to a document's thread. The caller must own the document, be a recipient,
// or present the current share key.
//
// @Summary Comment on a document
// @Tags comments
// @Accept json
// @Produce json
// @Param id path string true "Document ID"
// @Param body body addCommentRequest true "Comment"
// @Success 201 {object} model.Comment
// @Failure 400 {object} errorPayload
// @Failure 403 {object} errorPayload
// @Failure 404 {object} errorPayload
// @Security BearerAuth
// @Router /api/documents/{id}/comments [post]
func AddComment(svc service.CommentService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req addCommentRequest
		if err := c.BodyParser(&req); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_BODY", "invalid JSON body")
		}
		comment, err := svc.AddComment(c.UserContext(), caller(c), c.Params("id"), req.Text, req.ShareKey)
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.Status(fiber.StatusCreated).JSON(comment)
	}
}

// ListComments returns a document's thread, newest first.
//
// @Summary List comments
// @Tags comments
// @Produce json
// @Param id path string true "Document ID"
// @Param share_key query string false "Share key"
// @Success 200 {object} commentListResponse
// @Failure 403 {object} errorPayload
// @Failure 404 {object} errorPayload
// @Security BearerAuth
// @Router /api/documents/{id}/comments [get]
func ListComments(svc service.CommentService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		items, err := svc.ListComments(c.UserContext(), caller(c), c.Params("id"), c.Query("share_key"))
		if err != nil {
			return writeServiceError(c, err)
		}
		if items == nil {
			items = []model.Comment{}
		}
		return c.JSON(commentListResponse{Items: items, Total: len(items)})
	}
}
