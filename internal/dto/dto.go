// dto.go
package dto

type RegisterCustomerRequest struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type SignupStaffRequest struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
	Role     string `json:"role" binding:"required"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type AddTrackingRequest struct {
	TrackingID string `json:"trackingId" binding:"required"`
}

// UserView es lo que devolvemos del usuario (nunca el hash)
type UserView struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  string `json:"role"`
}

type SenderDTO struct {
	Address string `json:"address"`
	Pin     string `json:"pin"`
}

type ReceiverDTO struct {
	Name    string `json:"name"`
	Address string `json:"address"`
	Phone   string `json:"phone"`
}

type CreateParcelRequest struct {
	Sender   SenderDTO   `json:"sender"`
	Receiver ReceiverDTO `json:"receiver"`
	Location string      `json:"location"`
}

type UpdateParcelRequest struct {
	Location string `json:"location" binding:"required"`
	Status   string `json:"status"`
}

type CreateContainerRequest struct {
	Parcels     []string `json:"parcels" binding:"required"`
	Destination string   `json:"destination" binding:"required"`
	Location    string   `json:"location" binding:"required"`
}

type UpdateContainerRequest struct {
	Location string `json:"location" binding:"required"`
}
