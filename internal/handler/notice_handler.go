package handler

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/nawa-notice-api/internal/middleware"
	"github.com/noah-isme/nawa-notice-api/internal/models"
	"github.com/noah-isme/nawa-notice-api/internal/service"
	appErrors "github.com/noah-isme/nawa-notice-api/pkg/errors"
	"github.com/noah-isme/nawa-notice-api/pkg/response"
)

const (
	createdMessage = "Posted Notice Successfully"
	deletedMessage = "Notice deleted successfully"
	attachmentForm = "attachments"
)

type noticeService interface {
	ListForRole(ctx context.Context, role models.Role) ([]models.EnrichedNotice, error)
	ListPage(ctx context.Context, role models.Role, page, size int) (*service.NoticePage, error)
	Get(ctx context.Context, role models.Role, id string) (*models.EnrichedNotice, error)
	Create(ctx context.Context, adminID string, req service.CreateNoticeRequest, upload *service.Upload) (*models.Notice, error)
	Delete(ctx context.Context, id string) (*models.Notice, error)
}

// CreateNoticeResponse mirrors the body the admin form has always received.
type CreateNoticeResponse struct {
	AlertMsg string    `json:"alertMsg"`
	DateOf   time.Time `json:"dateOF"`
}

// NoticeHandler serves the notice board routes.
type NoticeHandler struct {
	service noticeService
}

// NewNoticeHandler constructs the handler.
func NewNoticeHandler(service noticeService) *NoticeHandler {
	return &NoticeHandler{service: service}
}

// ListFor returns a handler listing notices for a fixed role. Apart from the
// public listing, the caller's session role must match: no cookie answers 401,
// a cookie for another role answers 403.
//
// @Summary List notices for a fixed role
// @Tags Notices
// @Produce json
// @Success 200 {array} models.EnrichedNotice
// @Failure 401 {object} response.MessageBody
// @Failure 403 {object} response.MessageBody
// @Failure 503 {object} response.MessageBody
// @Router /notices [get]
// @Router /notices/teachers [get]
// @Router /notices/admins [get]
// @Router /notices/students [get]
func (h *NoticeHandler) ListFor(role models.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		if role != models.RolePublic {
			switch caller := middleware.RoleFromContext(c); {
			case caller == models.RolePublic:
				response.LegacyError(c, appErrors.Clone(appErrors.ErrUnauthorized, "session required"))
				return
			case caller != role:
				response.LegacyError(c, appErrors.Clone(appErrors.ErrForbidden, "notices not available for this session"))
				return
			}
		}
		h.writeListing(c, role)
	}
}

// ListForSession godoc
// @Summary List notices for the role carried by the session cookies
// @Tags Notices
// @Produce json
// @Success 200 {array} models.EnrichedNotice
// @Failure 503 {object} response.MessageBody
// @Router /get/notices [get]
func (h *NoticeHandler) ListForSession(c *gin.Context) {
	h.writeListing(c, middleware.RoleFromContext(c))
}

func (h *NoticeHandler) writeListing(c *gin.Context, role models.Role) {
	notices, err := h.service.ListForRole(c.Request.Context(), role)
	if err != nil {
		response.LegacyError(c, err)
		return
	}
	response.Legacy(c, http.StatusOK, notices)
}

// Create godoc
// @Summary Post a notice
// @Tags Admin
// @Accept multipart/form-data
// @Produce json
// @Param noticecategory formData string true "Category"
// @Param targetaudience formData string true "All, Teachers & Staffs or Students"
// @Param noticetitle formData string true "Title"
// @Param noticedes formData string true "Description"
// @Param attachments formData file false "Attachment"
// @Success 200 {object} CreateNoticeResponse
// @Failure 400 {object} response.MessageBody
// @Failure 401 {object} response.MessageBody
// @Failure 413 {object} response.MessageBody
// @Router /admin/create-notice [post]
func (h *NoticeHandler) Create(c *gin.Context) {
	claims := middleware.ClaimsFromContext(c)
	if claims == nil {
		response.LegacyError(c, appErrors.Clone(appErrors.ErrUnauthorized, "admin session required"))
		return
	}

	var req service.CreateNoticeRequest
	if err := c.ShouldBind(&req); err != nil {
		response.LegacyError(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid notice payload"))
		return
	}

	var upload *service.Upload
	fileHeader, err := c.FormFile(attachmentForm)
	switch {
	case err == nil:
		src, openErr := fileHeader.Open()
		if openErr != nil {
			response.LegacyError(c, appErrors.Wrap(openErr, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to open attachment"))
			return
		}
		defer src.Close() //nolint:errcheck
		upload = &service.Upload{Filename: fileHeader.Filename, Body: src}
	case errors.Is(err, http.ErrMissingFile), errors.Is(err, http.ErrNotMultipart):
	default:
		response.LegacyError(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid attachment"))
		return
	}

	notice, err := h.service.Create(c.Request.Context(), claims.AdminID(), req, upload)
	if err != nil {
		response.LegacyError(c, err)
		return
	}
	response.Legacy(c, http.StatusOK, CreateNoticeResponse{AlertMsg: createdMessage, DateOf: notice.Date})
}

// Delete godoc
// @Summary Delete a notice
// @Tags Admin
// @Produce json
// @Param id path string true "Notice ID"
// @Success 200 {object} response.MessageBody
// @Failure 404 {object} response.MessageBody
// @Router /admin/delete/notice/{id} [delete]
func (h *NoticeHandler) Delete(c *gin.Context) {
	if _, err := h.service.Delete(c.Request.Context(), c.Param("id")); err != nil {
		response.LegacyError(c, err)
		return
	}
	response.Message(c, http.StatusOK, deletedMessage)
}

// Page godoc
// @Summary Paged notice listing for the session role
// @Tags Notices
// @Produce json
// @Param page query int false "Page number, 1-based"
// @Param page_size query int false "Page size"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Failure 503 {object} response.Envelope
// @Router /api/v1/notices [get]
func (h *NoticeHandler) Page(c *gin.Context) {
	page, err := queryInt(c, "page", 1)
	if err != nil {
		response.Error(c, err)
		return
	}
	size, err := queryInt(c, "page_size", 0)
	if err != nil {
		response.Error(c, err)
		return
	}

	result, err := h.service.ListPage(c.Request.Context(), middleware.RoleFromContext(c), page, size)
	if err != nil {
		response.Error(c, err)
		return
	}
	middleware.SetCacheHit(c, result.CacheHit)
	response.JSON(c, http.StatusOK, result.Items, &result.Pagination, middleware.ResponseMeta(c))
}

// Get godoc
// @Summary Fetch one notice visible to the session role
// @Tags Notices
// @Produce json
// @Param id path string true "Notice ID"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Failure 503 {object} response.Envelope
// @Router /api/v1/notices/{id} [get]
func (h *NoticeHandler) Get(c *gin.Context) {
	notice, err := h.service.Get(c.Request.Context(), middleware.RoleFromContext(c), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, notice, nil, middleware.ResponseMeta(c))
}

func queryInt(c *gin.Context, key string, fallback int) (int, error) {
	raw := c.Query(key)
	if raw == "" {
		return fallback, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, appErrors.Clone(appErrors.ErrValidation, key+" must be an integer")
	}
	return v, nil
}
