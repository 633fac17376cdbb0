package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"gopherpress/internal/app"
	"gopherpress/internal/transport/http/middleware"
	"gopherpress/internal/transport/http/response"
)

type ArticleHandler struct {
	articleService *app.ArticleService
}

type ArticleCreateRequest struct {
	Name        string  `json:"name" binding:"required,min=3,max=512"`
	Description *string `json:"description" binding:"omitempty"`
	Text        string  `json:"text" binding:"required"`
}

type ArticleUpdateRequest struct {
	Name        *string `json:"name" binding:"omitempty,min=3,max=512"`
	Description *string `json:"description" binding:"omitempty"`
	Text        *string `json:"text" binding:"omitempty"`
}

type DateRangeFilter struct {
	Start string `json:"start" binding:"omitempty"`
	End   string `json:"end" binding:"omitempty"`
}

type ArticleFilterRequest struct {
	Username  string           `json:"username" binding:"omitempty"`
	CreatedAt *DateRangeFilter `json:"createdAt" binding:"omitempty"`
	Page      int              `json:"page" binding:"omitempty,min=1"`
	Limit     int              `json:"limit" binding:"omitempty,min=1"`
}

func NewArticleHandler(articleService *app.ArticleService) *ArticleHandler {
	return &ArticleHandler{articleService: articleService}
}

func (h *ArticleHandler) FindByID(c *gin.Context) {
	view, err := h.articleService.FindByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.writeError(c, err, "find article failed")
		return
	}
	response.OK(c, view)
}

func (h *ArticleHandler) FindMany(c *gin.Context) {
	var req ArticleFilterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, response.CodeBadRequest, "invalid request payload")
		return
	}

	input := app.FindManyInput{
		Username: req.Username,
		Page:     req.Page,
		Limit:    req.Limit,
	}
	if req.CreatedAt != nil {
		from, err := parseFilterDate(req.CreatedAt.Start)
		if err != nil {
			response.Error(c, http.StatusBadRequest, response.CodeBadRequest, "invalid createdAt.start date")
			return
		}
		to, err := parseFilterDate(req.CreatedAt.End)
		if err != nil {
			response.Error(c, http.StatusBadRequest, response.CodeBadRequest, "invalid createdAt.end date")
			return
		}
		input.CreatedFrom = from
		input.CreatedTo = to
	}

	page, err := h.articleService.FindMany(c.Request.Context(), input)
	if err != nil {
		h.writeError(c, err, "search articles failed")
		return
	}
	response.OK(c, page)
}

func (h *ArticleHandler) Create(c *gin.Context) {
	var req ArticleCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, response.CodeBadRequest, "invalid request payload")
		return
	}

	userID, ok := middleware.CurrentUserID(c)
	if !ok {
		response.Error(c, http.StatusUnauthorized, response.CodeUnauthorized, "user not found in token")
		return
	}

	view, err := h.articleService.Create(c.Request.Context(), app.CreateArticleInput{
		AuthorID:    userID,
		Name:        req.Name,
		Description: req.Description,
		Text:        req.Text,
	})
	if err != nil {
		h.writeError(c, err, "create article failed")
		return
	}
	response.Created(c, view)
}

func (h *ArticleHandler) Update(c *gin.Context) {
	var req ArticleUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, response.CodeBadRequest, "invalid request payload")
		return
	}

	userID, ok := middleware.CurrentUserID(c)
	if !ok {
		response.Error(c, http.StatusUnauthorized, response.CodeUnauthorized, "user not found in token")
		return
	}

	view, err := h.articleService.Update(c.Request.Context(), app.UpdateArticleInput{
		ID:          c.Param("id"),
		ActorID:     userID,
		Name:        req.Name,
		Description: req.Description,
		Text:        req.Text,
	})
	if err != nil {
		h.writeError(c, err, "update article failed")
		return
	}
	response.OK(c, view)
}

func (h *ArticleHandler) Delete(c *gin.Context) {
	userID, ok := middleware.CurrentUserID(c)
	if !ok {
		response.Error(c, http.StatusUnauthorized, response.CodeUnauthorized, "user not found in token")
		return
	}

	if err := h.articleService.Delete(c.Request.Context(), c.Param("id"), userID); err != nil {
		h.writeError(c, err, "delete article failed")
		return
	}
	response.NoContent(c)
}

func (h *ArticleHandler) writeError(c *gin.Context, err error, fallback string) {
	switch {
	case errors.Is(err, app.ErrInvalidInput):
		response.Error(c, http.StatusBadRequest, response.CodeBadRequest, err.Error())
	case errors.Is(err, app.ErrArticleNotFound):
		response.Error(c, http.StatusNotFound, response.CodeNotFound, err.Error())
	case errors.Is(err, app.ErrAuthorNotFound):
		response.Error(c, http.StatusNotFound, response.CodeNotFound, err.Error())
	case errors.Is(err, app.ErrNoAccess):
		response.Error(c, http.StatusForbidden, response.CodeForbidden, err.Error())
	default:
		response.Error(c, http.StatusInternalServerError, response.CodeInternalServer, fallback)
	}
}

func parseFilterDate(raw string) (*time.Time, error) {
	if raw == "" {
		return nil, nil
	}
	if parsed, err := time.Parse("2006-01-02", raw); err == nil {
		return &parsed, nil
	}
	parsed, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return nil, err
	}
	return &parsed, nil
}
