package controller

import (
	"net/http"

	"epost-backend/internal/dto"
	"epost-backend/internal/service"

	"github.com/gin-gonic/gin"
)

type AuthController struct {
	Service *service.AuthService
}

func NewAuthController(s *service.AuthService) *AuthController {
	return &AuthController{Service: s}
}

// POST /api/auth/register/customer
func (ctl *AuthController) RegisterCustomer(c *gin.Context) {
	var req dto.RegisterCustomerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}

	if _, err := ctl.Service.RegisterCustomer(c.Request.Context(), req); err != nil {
		fail(c, err, "User not found")
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": "User Registered Successfully"})
}

// POST /api/auth/signup/staff
func (ctl *AuthController) SignupStaff(c *gin.Context) {
	var req dto.SignupStaffRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}

	_, token, err := ctl.Service.SignupStaff(c.Request.Context(), req)
	if err != nil {
		fail(c, err, "User not found")
		return
	}

	c.JSON(http.StatusCreated, gin.H{"token": token, "message": "User Registered Successfully"})
}

// POST /api/auth/login
func (ctl *AuthController) Login(c *gin.Context) {
	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}

	token, user, err := ctl.Service.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		fail(c, err, "User not found")
		return
	}

	c.JSON(http.StatusOK, gin.H{"token": token, "user": user})
}

// POST /api/auth/logout — con JWT stateless el cliente descarta el token
func (ctl *AuthController) Logout(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"message": "Logged out successfully"})
}

// POST /api/auth/add-tracking — customer marca un trackingId como favorito
func (ctl *AuthController) AddTracking(c *gin.Context) {
	var req dto.AddTrackingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}

	if err := ctl.Service.AddTracking(c.Request.Context(), actorFrom(c), req.TrackingID); err != nil {
		fail(c, err, "User not found")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Tracking ID added successfully"})
}

// GET /api/auth/count
func (ctl *AuthController) Count(c *gin.Context) {
	count, err := ctl.Service.UserCount(c.Request.Context())
	if err != nil {
		fail(c, err, "User not found")
		return
	}
	c.JSON(http.StatusOK, gin.H{"count": count})
}

// GET /api/auth/latest — preview del próximo ID de staff
func (ctl *AuthController) LatestStaffID(c *gin.Context) {
	id := ctl.Service.LatestStaffID(c.Request.Context())
	c.JSON(http.StatusOK, gin.H{"latestid": id})
}
