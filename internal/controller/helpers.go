package controller

import (
	"errors"
	"log"
	"net/http"

	"epost-backend/internal/repository"
	"epost-backend/internal/service"

	"github.com/gin-gonic/gin"
)

// actorFrom arma el actor con lo que dejó el middleware en el contexto
func actorFrom(c *gin.Context) service.Actor {
	return service.Actor{
		ID:   c.GetString("userID"),
		Role: c.GetString("userRole"),
	}
}

// fail mapea los errores de negocio a códigos HTTP. El detalle interno se
// loguea pero no se filtra al cliente.
func fail(c *gin.Context, err error, notFoundMsg string) {
	switch {
	case errors.Is(err, repository.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"message": notFoundMsg})
	case errors.Is(err, service.ErrAccessDenied):
		c.JSON(http.StatusForbidden, gin.H{"message": "Access Denied"})
	case errors.Is(err, service.ErrValidation),
		errors.Is(err, service.ErrParcelsNotFound),
		errors.Is(err, service.ErrInvalidTransition),
		errors.Is(err, service.ErrUserExists),
		errors.Is(err, service.ErrInvalidCredentials):
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
	default:
		log.Println("error interno:", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Server error"})
	}
}
