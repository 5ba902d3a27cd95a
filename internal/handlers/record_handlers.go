package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sjperalta/billing-api/internal/middleware"
	"github.com/sjperalta/billing-api/internal/services"
)

type ClientHandler struct {
	clientService *services.ClientService
}

func NewClientHandler(clientService *services.ClientService) *ClientHandler {
	return &ClientHandler{clientService: clientService}
}

// @Summary List Clients
// @Description Lists visible clients ordered by name, with projects, bills and payments
// @Tags Clients
// @Produce json
// @Security BearerAuth
// @Success 200 {array} models.Client
// @Router /clients [get]
func (h *ClientHandler) Index(c *gin.Context) {
	clients, err := h.clientService.List(c.Request.Context(), middleware.Actor(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, clients)
}

// @Summary Get Client
// @Tags Clients
// @Produce json
// @Param client_id path int true "Client ID"
// @Security BearerAuth
// @Success 200 {object} models.Client
// @Failure 404 {object} map[string]string
// @Router /clients/{client_id} [get]
func (h *ClientHandler) Show(c *gin.Context) {
	id, ok := paramID(c, "client_id")
	if !ok {
		return
	}
	client, err := h.clientService.Get(c.Request.Context(), middleware.Actor(c), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, client)
}

// @Summary Create Client
// @Tags Clients
// @Accept json
// @Produce json
// @Param request body services.CreateClientInput true "Client"
// @Security BearerAuth
// @Success 201 {object} models.Client
// @Failure 400 {object} map[string]string
// @Router /clients [post]
func (h *ClientHandler) Create(c *gin.Context) {
	var req services.CreateClientInput
	if !bindBody(c, "client", &req) {
		return
	}
	client, err := h.clientService.Create(c.Request.Context(), middleware.Actor(c), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, client)
}

type ProjectHandler struct {
	projectService *services.ProjectService
}

func NewProjectHandler(projectService *services.ProjectService) *ProjectHandler {
	return &ProjectHandler{projectService: projectService}
}

// @Summary List Projects
// @Description Lists visible projects, newest first
// @Tags Projects
// @Produce json
// @Security BearerAuth
// @Success 200 {array} models.Project
// @Router /projects [get]
func (h *ProjectHandler) Index(c *gin.Context) {
	projects, err := h.projectService.List(c.Request.Context(), middleware.Actor(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, projects)
}

// @Summary Get Project
// @Tags Projects
// @Produce json
// @Param project_id path int true "Project ID"
// @Security BearerAuth
// @Success 200 {object} models.Project
// @Failure 404 {object} map[string]string
// @Router /projects/{project_id} [get]
func (h *ProjectHandler) Show(c *gin.Context) {
	id, ok := paramID(c, "project_id")
	if !ok {
		return
	}
	project, err := h.projectService.Get(c.Request.Context(), middleware.Actor(c), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, project)
}

// @Summary Create Project
// @Description Creates a project; area and total are computed from length, width and rate
// @Tags Projects
// @Accept json
// @Produce json
// @Param request body services.CreateProjectInput true "Project"
// @Security BearerAuth
// @Success 201 {object} models.Project
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /projects [post]
func (h *ProjectHandler) Create(c *gin.Context) {
	var req services.CreateProjectInput
	if !bindBody(c, "project", &req) {
		return
	}
	project, err := h.projectService.Create(c.Request.Context(), middleware.Actor(c), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, project)
}
