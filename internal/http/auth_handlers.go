package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/davral/siteworks/internal/model"
	"github.com/davral/siteworks/internal/service"
)

type loginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

func (h *Handler) login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	token, user, err := h.auth.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"token": token, "user": user})
}

type registerUserRequest struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
	Role     string `json:"role" binding:"required"`
}

func (h *Handler) registerUser(c *gin.Context) {
	principal, ok := h.principal(c)
	if !ok {
		return
	}
	var req registerUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	user, err := h.auth.Register(c.Request.Context(), principal, service.RegisterInput{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
		Role:     model.Role(req.Role),
	})
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusCreated, user)
}

func (h *Handler) listUsers(c *gin.Context) {
	principal, ok := h.principal(c)
	if !ok {
		return
	}
	users, err := h.auth.ListUsers(c.Request.Context(), principal)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, users)
}

func (h *Handler) deleteUser(c *gin.Context) {
	principal, ok := h.principal(c)
	if !ok {
		return
	}
	if err := h.auth.DeleteUser(c.Request.Context(), principal, c.Param("id")); err != nil {
		h.handleError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

type createBackupLinkRequest struct {
	URL         string `json:"url" binding:"required"`
	Description string `json:"description"`
}

func (h *Handler) createBackupLink(c *gin.Context) {
	principal, ok := h.principal(c)
	if !ok {
		return
	}
	var req createBackupLinkRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	link, err := h.backups.CreateLink(c.Request.Context(), principal, req.URL, req.Description)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusCreated, link)
}

func (h *Handler) listBackupLinks(c *gin.Context) {
	principal, ok := h.principal(c)
	if !ok {
		return
	}
	links, err := h.backups.ListLinks(c.Request.Context(), principal)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, links)
}

func (h *Handler) deleteBackupLink(c *gin.Context) {
	principal, ok := h.principal(c)
	if !ok {
		return
	}
	if err := h.backups.DeleteLink(c.Request.Context(), principal, c.Param("id")); err != nil {
		h.handleError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
