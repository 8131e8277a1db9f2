package controller

import (
	"net/http"

	"epost-backend/internal/dto"
	"epost-backend/internal/service"

	"github.com/gin-gonic/gin"
)

type ContainerController struct {
	Service *service.ContainerService
}

func NewContainerController(s *service.ContainerService) *ContainerController {
	return &ContainerController{Service: s}
}

// POST /api/containers — staff
func (ctl *ContainerController) Create(c *gin.Context) {
	var req dto.CreateContainerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}

	container, err := ctl.Service.CreateContainer(c.Request.Context(), actorFrom(c), req.Parcels, req.Destination, req.Location)
	if err != nil {
		fail(c, err, "Container not found")
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message":     "Container created",
		"containerId": container.ContainerID,
		"qrCodePath":  container.QRCodePath,
	})
}

// PUT /api/containers/update/:containerId — staff/transport
func (ctl *ContainerController) Update(c *gin.Context) {
	containerID := c.Param("containerId")

	var req dto.UpdateContainerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}

	container, err := ctl.Service.UpdateContainer(c.Request.Context(), actorFrom(c), containerID, req.Location)
	if err != nil {
		fail(c, err, "Container not found")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Container and parcels updated", "container": container})
}

// GET /api/containers/track/:containerId — admin
func (ctl *ContainerController) Track(c *gin.Context) {
	containerID := c.Param("containerId")

	container, err := ctl.Service.TrackContainer(c.Request.Context(), actorFrom(c), containerID)
	if err != nil {
		fail(c, err, "Container not found")
		return
	}

	c.JSON(http.StatusOK, container)
}
