package controller

import (
	"net/http"

	"epost-backend/internal/dto"
	"epost-backend/internal/service"

	"github.com/gin-gonic/gin"
)

type ParcelController struct {
	Service *service.ParcelService
}

func NewParcelController(s *service.ParcelService) *ParcelController {
	return &ParcelController{Service: s}
}

// POST /api/parcels/create — staff
func (ctl *ParcelController) Create(c *gin.Context) {
	var req dto.CreateParcelRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}

	parcel, err := ctl.Service.CreateParcel(c.Request.Context(), actorFrom(c), req)
	if err != nil {
		fail(c, err, "Parcel not found")
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message":    "Parcel created",
		"trackingId": parcel.TrackingID,
		"qrCodePath": parcel.QRCodePath,
	})
}

// GET /api/parcels/getParcels — las parcelas creadas por el usuario autenticado
func (ctl *ParcelController) GetParcels(c *gin.Context) {
	parcels, err := ctl.Service.GetParcelsForOwner(c.Request.Context(), actorFrom(c))
	if err != nil {
		fail(c, err, "Parcel not found")
		return
	}
	c.JSON(http.StatusOK, parcels)
}

// GET /api/parcels/track/:trackingId — público, sin token
func (ctl *ParcelController) Track(c *gin.Context) {
	trackingID := c.Param("trackingId")

	parcel, logs, err := ctl.Service.TrackParcel(c.Request.Context(), trackingID)
	if err != nil {
		fail(c, err, "Parcel not found")
		return
	}

	c.JSON(http.StatusOK, gin.H{"parcel": parcel, "trackingLogs": logs})
}

// PUT /api/parcels/update/:trackingId — staff/admin/transport
func (ctl *ParcelController) Update(c *gin.Context) {
	trackingID := c.Param("trackingId")

	var req dto.UpdateParcelRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}

	parcel, err := ctl.Service.UpdateParcel(c.Request.Context(), actorFrom(c), trackingID, req.Location, req.Status)
	if err != nil {
		fail(c, err, "Parcel not found")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Parcel updated", "parcel": parcel})
}

// DELETE /api/parcels/delete/:trackingId — admin
func (ctl *ParcelController) Delete(c *gin.Context) {
	trackingID := c.Param("trackingId")

	if err := ctl.Service.DeleteParcel(c.Request.Context(), actorFrom(c), trackingID); err != nil {
		fail(c, err, "Parcel not found")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Parcel deleted successfully"})
}

// GET /api/parcels/count
func (ctl *ParcelController) Count(c *gin.Context) {
	count, err := ctl.Service.CountParcels(c.Request.Context())
	if err != nil {
		fail(c, err, "Parcel not found")
		return
	}
	c.JSON(http.StatusOK, gin.H{"count": count})
}

// GET /api/parcels/inTransitCount
func (ctl *ParcelController) InTransitCount(c *gin.Context) {
	count, err := ctl.Service.CountInTransit(c.Request.Context())
	if err != nil {
		fail(c, err, "Parcel not found")
		return
	}
	c.JSON(http.StatusOK, gin.H{"count": count})
}
