package service

import (
	"context"
	"path/filepath"
	"time"

	"epost-backend/internal/dto"
	"epost-backend/internal/model"
)

// Interfaces que debe implementar repository
type ParcelRepository interface {
	Insert(ctx context.Context, p *model.Parcel) error
	FindByTrackingID(ctx context.Context, trackingID string) (*model.Parcel, error)
	FindByCreator(ctx context.Context, userID string) ([]*model.Parcel, error)
	FindByTrackingIDs(ctx context.Context, trackingIDs []string) ([]*model.Parcel, error)
	UpdateSnapshot(ctx context.Context, trackingID, status, location string) error
	PushLogToMany(ctx context.Context, trackingIDs []string, entry model.LocationLog) error
	Delete(ctx context.Context, trackingID string) error
	Count(ctx context.Context) (int64, error)
	CountByStatus(ctx context.Context, status string) (int64, error)
}

type TrackingRepository interface {
	Append(ctx context.Context, entry *model.TrackingLog) error
	FindByParcelID(ctx context.Context, parcelID string) ([]*model.TrackingLog, error)
	DeleteByParcelID(ctx context.Context, parcelID string) error
}

// CodeGenerator produce la imagen escaneable para un identificador.
type CodeGenerator interface {
	Generate(content, path string) error
}

// Transiciones permitidas del estado de una parcela. Repetir el estado
// actual es válido (re-escaneo: actualiza ubicación y agrega entrada).
var parcelTransitions = map[string][]string{
	model.StatusPending:   {model.StatusInTransit},
	model.StatusInTransit: {model.StatusDelivered},
	model.StatusDelivered: {},
}

func isValidStatus(s string) bool {
	_, ok := parcelTransitions[s]
	return ok
}

type ParcelService struct {
	parcels ParcelRepository
	ledger  TrackingRepository
	codes   CodeGenerator
	qrDir   string
}

func NewParcelService(parcels ParcelRepository, ledger TrackingRepository, codes CodeGenerator, qrDir string) *ParcelService {
	return &ParcelService{parcels: parcels, ledger: ledger, codes: codes, qrDir: qrDir}
}

// appendEntry agrega una entrada al ledger. El _id determinístico hace al
// upsert idempotente, así que un reintento nunca duplica la entrada.
func (s *ParcelService) appendEntry(ctx context.Context, parcelID, status, location string, ts time.Time) error {
	entry := &model.TrackingLog{
		EventID:   model.TrackingEventID(parcelID, status, ts),
		ParcelID:  parcelID,
		Status:    status,
		Location:  location,
		Timestamp: ts,
	}

	err := s.ledger.Append(ctx, entry)
	if err != nil {
		// Un solo reintento: el append es idempotente
		err = s.ledger.Append(ctx, entry)
	}
	return err
}

// CreateParcel da de alta una parcela (solo staff) y siembra su ledger.
// O quedan el documento y la entrada inicial, o no queda nada.
func (s *ParcelService) CreateParcel(ctx context.Context, actor Actor, req dto.CreateParcelRequest) (*model.Parcel, error) {
	if err := authorize(OpParcelCreate, actor); err != nil {
		return nil, err
	}
	if req.Sender.Address == "" || req.Sender.Pin == "" ||
		req.Receiver.Name == "" || req.Receiver.Address == "" || req.Receiver.Phone == "" ||
		req.Location == "" {
		return nil, ErrValidation
	}

	trackingID := NewTrackingID()
	qrPath := filepath.Join(s.qrDir, trackingID+".png")

	// La imagen va primero: si falla, todavía no se persistió nada
	if err := s.codes.Generate(trackingID, qrPath); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	parcel := &model.Parcel{
		TrackingID: trackingID,
		CreatedBy:  actor.ID,
		Sender:     model.Sender{Address: req.Sender.Address, Pin: req.Sender.Pin},
		Receiver:   model.Receiver{Name: req.Receiver.Name, Address: req.Receiver.Address, Phone: req.Receiver.Phone},
		Location:   req.Location,
		Status:     model.StatusPending,
		QRCodePath: qrPath,
		CreatedAt:  now,
	}

	if err := s.parcels.Insert(ctx, parcel); err != nil {
		return nil, err
	}

	if err := s.appendEntry(ctx, trackingID, model.StatusPending, req.Location, now); err != nil {
		// Compensación: no puede quedar una parcela sin historial
		_ = s.parcels.Delete(ctx, trackingID)
		return nil, err
	}

	return parcel, nil
}

// GetParcelsForOwner devuelve las parcelas creadas por el actor, nuevas primero.
func (s *ParcelService) GetParcelsForOwner(ctx context.Context, actor Actor) ([]*model.Parcel, error) {
	return s.parcels.FindByCreator(ctx, actor.ID)
}

// TrackParcel es público: parcela + historial completo, viejo → nuevo.
func (s *ParcelService) TrackParcel(ctx context.Context, trackingID string) (*model.Parcel, []*model.TrackingLog, error) {
	parcel, err := s.parcels.FindByTrackingID(ctx, trackingID)
	if err != nil {
		return nil, nil, err
	}

	logs, err := s.ledger.FindByParcelID(ctx, trackingID)
	if err != nil {
		return nil, nil, err
	}
	return parcel, logs, nil
}

// UpdateParcel sobreescribe el snapshot y agrega la entrada al ledger.
func (s *ParcelService) UpdateParcel(ctx context.Context, actor Actor, trackingID string, location, status string) (*model.Parcel, error) {
	if err := authorize(OpParcelUpdate, actor); err != nil {
		return nil, err
	}
	if location == "" {
		return nil, ErrValidation
	}

	parcel, err := s.parcels.FindByTrackingID(ctx, trackingID)
	if err != nil {
		return nil, err
	}

	newStatus := parcel.Status
	if status != "" {
		if !isValidStatus(status) {
			return nil, ErrInvalidTransition
		}
		// Solo hacia adelante; repetir el estado actual está permitido
		if status != parcel.Status && !contains(parcelTransitions[parcel.Status], status) {
			return nil, ErrInvalidTransition
		}
		newStatus = status
	}

	if err := s.parcels.UpdateSnapshot(ctx, trackingID, newStatus, location); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	if err := s.appendEntry(ctx, trackingID, newStatus, location, now); err != nil {
		return nil, err
	}

	parcel.Status = newStatus
	parcel.Location = location
	return parcel, nil
}

// DeleteParcel borra la parcela y su historial (solo admin).
// Primero el ledger, la parcela al final (mejor para crash-consistency:
// nunca quedan entradas huérfanas).
func (s *ParcelService) DeleteParcel(ctx context.Context, actor Actor, trackingID string) error {
	if err := authorize(OpParcelDelete, actor); err != nil {
		return err
	}

	if _, err := s.parcels.FindByTrackingID(ctx, trackingID); err != nil {
		return err
	}

	if err := s.ledger.DeleteByParcelID(ctx, trackingID); err != nil {
		return err
	}
	return s.parcels.Delete(ctx, trackingID)
}

func (s *ParcelService) CountParcels(ctx context.Context) (int64, error) {
	return s.parcels.Count(ctx)
}

func (s *ParcelService) CountInTransit(ctx context.Context) (int64, error) {
	return s.parcels.CountByStatus(ctx, model.StatusInTransit)
}

func contains(arr []string, s string) bool {
	for _, v := range arr {
		if v == s {
			return true
		}
	}
	return false
}
