package service

import "errors"

// Errores de negocio exportados (los usa el controller para mapear a HTTP)
var (
	ErrAccessDenied       = errors.New("Access Denied")
	ErrValidation         = errors.New("missing required fields")
	ErrParcelsNotFound    = errors.New("One or more parcels not found")
	ErrInvalidTransition  = errors.New("transición de estado inválida")
	ErrUserExists         = errors.New("User Already Exists")
	ErrInvalidCredentials = errors.New("Invalid Credentials")
)
