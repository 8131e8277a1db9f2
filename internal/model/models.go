// models.go
package model

import (
	"fmt"
	"time"
)

// Roles de usuario
const (
	RoleCustomer  = "customer"
	RoleStaff     = "staff"
	RoleTransport = "transport"
	RoleAdmin     = "admin"
)

// Estados de una parcela
const (
	StatusPending   = "pending"
	StatusInTransit = "in-transit"
	StatusDelivered = "delivered"
)

type User struct {
	ID           string    `bson:"_id" json:"id"`
	Name         string    `bson:"name" json:"name"`
	Email        string    `bson:"email" json:"email"`
	PasswordHash string    `bson:"password" json:"-"`
	Role         string    `bson:"role" json:"role"`
	TrackingIDs  []string  `bson:"tracking_ids" json:"trackingIds"`
	CreatedAt    time.Time `bson:"created_at" json:"createdAt"`
}

type Sender struct {
	Address string `bson:"address" json:"address"`
	Pin     string `bson:"pin" json:"pin"`
}

type Receiver struct {
	Name    string `bson:"name" json:"name"`
	Address string `bson:"address" json:"address"`
	Phone   string `bson:"phone" json:"phone"`
}

// LocationLog es una observación embebida {ubicación, momento}.
// La usan el Container y el fanout hacia las parcelas miembro.
// NO es el Tracking Ledger (ese vive en su propia colección).
type LocationLog struct {
	Location  string    `bson:"location" json:"location"`
	Timestamp time.Time `bson:"timestamp" json:"timestamp"`
}

type Parcel struct {
	TrackingID  string        `bson:"tracking_id" json:"trackingId"`
	CreatedBy   string        `bson:"created_by" json:"createdBy"`
	Sender      Sender        `bson:"sender" json:"sender"`
	Receiver    Receiver      `bson:"receiver" json:"receiver"`
	Location    string        `bson:"location" json:"location"` // ubicación actual (snapshot)
	Status      string        `bson:"status" json:"status"`     // estado actual (snapshot)
	ContainerID string        `bson:"container_id,omitempty" json:"containerId,omitempty"`
	QRCodePath  string        `bson:"qr_code" json:"qrCodePath"`
	Logs        []LocationLog `bson:"logs,omitempty" json:"logs,omitempty"` // escrituras del fanout de containers
	CreatedAt   time.Time     `bson:"created_at" json:"createdAt"`
}

// TrackingLog es una entrada inmutable del ledger. EventID es determinístico
// (trackingId + timestamp + status) para que el append sea idempotente.
type TrackingLog struct {
	EventID   string    `bson:"_id" json:"-"`
	ParcelID  string    `bson:"parcel_id" json:"parcelId"` // el trackingId legible, no la referencia interna
	Status    string    `bson:"status" json:"status"`
	Location  string    `bson:"location" json:"location"`
	Timestamp time.Time `bson:"timestamp" json:"timestamp"`
}

// TrackingEventID arma el _id determinístico de una entrada del ledger:
// el mismo evento siempre produce el mismo id, y el upsert queda idempotente.
func TrackingEventID(parcelID, status string, ts time.Time) string {
	return fmt.Sprintf("%s-%d-%s", parcelID, ts.UnixNano(), status)
}

type Container struct {
	ContainerID string        `bson:"container_id" json:"containerId"`
	Parcels     []string      `bson:"parcels" json:"parcels"` // trackingIds de los miembros, fijos desde la creación
	Destination string        `bson:"destination" json:"destination"`
	QRCodePath  string        `bson:"qr_code" json:"qrCodePath"`
	Logs        []LocationLog `bson:"logs" json:"logs"`
	Status      string        `bson:"status" json:"status"`
	UpdatedAt   time.Time     `bson:"updated_at" json:"updatedAt"`
}
