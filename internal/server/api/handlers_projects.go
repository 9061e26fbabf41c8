package api

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/juralis/paperdrop/internal/common"
	"github.com/juralis/paperdrop/internal/server/models"
	"github.com/juralis/paperdrop/internal/server/services"
)

// ProjectHandler exposes project CRUD and per-project document listings.
type ProjectHandler struct {
	projects *services.Projects
	docs     *services.Documents
}

func NewProjectHandler(projects *services.Projects, docs *services.Documents) *ProjectHandler {
	return &ProjectHandler{projects: projects, docs: docs}
}

func (h *ProjectHandler) RegisterRoutes(r *gin.Engine) {
	r.POST("/projects", h.create)
	r.GET("/projects", h.list)
	r.GET("/projects/:id", h.get)
	r.GET("/projects/:id/documents", h.documents)
	r.PATCH("/projects/:id/status", h.setStatus)
}

type projectResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
}

func toProjectResponse(p *models.Project) projectResponse {
	return projectResponse{ID: p.ID, Name: p.Name, Status: p.Status, CreatedAt: p.CreatedAt}
}

type createProjectRequest struct {
	Name string `json:"name"`
}

func (h *ProjectHandler) create(c *gin.Context) {
	var req createProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, fmt.Errorf("invalid body: %w", common.ErrorValidation))
		return
	}
	p, err := h.projects.Create(c.Request.Context(), req.Name)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, toProjectResponse(p))
}

func (h *ProjectHandler) list(c *gin.Context) {
	ps, err := h.projects.List(c.Request.Context(), c.Query("status"))
	if err != nil {
		writeError(c, err)
		return
	}
	out := make([]projectResponse, 0, len(ps))
	for _, p := range ps {
		out = append(out, toProjectResponse(p))
	}
	c.JSON(http.StatusOK, out)
}

func (h *ProjectHandler) get(c *gin.Context) {
	p, err := h.projects.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, toProjectResponse(p))
}

func (h *ProjectHandler) documents(c *gin.Context) {
	// 404 for unknown projects, not an empty list
	if _, err := h.projects.Get(c.Request.Context(), c.Param("id")); err != nil {
		writeError(c, err)
		return
	}
	docs, err := h.docs.ByProject(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, toDocumentResponses(docs))
}

type setStatusRequest struct {
	Status string `json:"status"`
}

func (h *ProjectHandler) setStatus(c *gin.Context) {
	var req setStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, fmt.Errorf("invalid body: %w", common.ErrorValidation))
		return
	}
	p, err := h.projects.SetStatus(c.Request.Context(), c.Param("id"), req.Status)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, toProjectResponse(p))
}
