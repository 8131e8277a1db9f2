package service

import (
	"slices"

	"epost-backend/internal/model"
)

// Actor es quien ejecuta la operación (sale del token).
type Actor struct {
	ID   string
	Role string
}

// Operaciones que mutan estado y sus roles permitidos.
// Un solo gate declarativo: nada de chequeos de rol inline por ruta.
const (
	OpParcelCreate    = "parcel.create"
	OpParcelUpdate    = "parcel.update"
	OpParcelDelete    = "parcel.delete"
	OpContainerCreate = "container.create"
	OpContainerUpdate = "container.update"
	OpContainerTrack  = "container.track"
)

var allowedRoles = map[string][]string{
	OpParcelCreate:    {model.RoleStaff},
	OpParcelUpdate:    {model.RoleStaff, model.RoleAdmin, model.RoleTransport},
	OpParcelDelete:    {model.RoleAdmin},
	OpContainerCreate: {model.RoleStaff},
	OpContainerUpdate: {model.RoleStaff, model.RoleTransport},
	OpContainerTrack:  {model.RoleAdmin},
}

// authorize se aplica antes de cualquier escritura: si falla, no hay
// efectos parciales.
func authorize(op string, actor Actor) error {
	roles, ok := allowedRoles[op]
	if !ok {
		return ErrAccessDenied
	}
	if !slices.Contains(roles, actor.Role) {
		return ErrAccessDenied
	}
	return nil
}
