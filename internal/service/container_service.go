package service

import (
	"context"
	"path/filepath"
	"time"

	"epost-backend/internal/model"
)

type ContainerRepository interface {
	Insert(ctx context.Context, c *model.Container) error
	FindByContainerID(ctx context.Context, containerID string) (*model.Container, error)
	PushLog(ctx context.Context, containerID string, entry model.LocationLog) error
}

type ContainerService struct {
	containers ContainerRepository
	parcels    ParcelRepository
	codes      CodeGenerator
	qrDir      string
}

func NewContainerService(containers ContainerRepository, parcels ParcelRepository, codes CodeGenerator, qrDir string) *ContainerService {
	return &ContainerService{containers: containers, parcels: parcels, codes: codes, qrDir: qrDir}
}

// CreateContainer agrupa parcelas existentes para tránsito en lote (solo staff).
// Todos los trackingIds tienen que resolver; si falta alguno no se crea nada.
func (s *ContainerService) CreateContainer(ctx context.Context, actor Actor, parcelIDs []string, destination, location string) (*model.Container, error) {
	if err := authorize(OpContainerCreate, actor); err != nil {
		return nil, err
	}
	if len(parcelIDs) == 0 || destination == "" || location == "" {
		return nil, ErrValidation
	}

	// Deduplicamos antes de resolver: mandar el mismo id dos veces no es error
	unique := dedupe(parcelIDs)

	existing, err := s.parcels.FindByTrackingIDs(ctx, unique)
	if err != nil {
		return nil, err
	}
	if len(existing) != len(unique) {
		return nil, ErrParcelsNotFound
	}

	containerID := NewContainerID()
	qrPath := filepath.Join(s.qrDir, containerID+".png")

	if err := s.codes.Generate(containerID, qrPath); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	container := &model.Container{
		ContainerID: containerID,
		Parcels:     unique,
		Destination: destination,
		QRCodePath:  qrPath,
		Logs:        []model.LocationLog{{Location: location, Timestamp: now}},
		Status:      model.StatusInTransit,
		UpdatedAt:   now,
	}

	// La creación NO toca el snapshot de las parcelas miembro
	if err := s.containers.Insert(ctx, container); err != nil {
		return nil, err
	}
	return container, nil
}

// UpdateContainer agrega la ubicación al historial embebido del container y
// hace fanout de la misma observación a los logs embebidos de cada parcela
// miembro. Ojo: el fanout NO escribe en el Tracking Ledger, son dos caminos
// de escritura separados.
func (s *ContainerService) UpdateContainer(ctx context.Context, actor Actor, containerID, location string) (*model.Container, error) {
	if err := authorize(OpContainerUpdate, actor); err != nil {
		return nil, err
	}
	if location == "" {
		return nil, ErrValidation
	}

	container, err := s.containers.FindByContainerID(ctx, containerID)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	entry := model.LocationLog{Location: location, Timestamp: now}

	if err := s.containers.PushLog(ctx, containerID, entry); err != nil {
		return nil, err
	}

	if err := s.parcels.PushLogToMany(ctx, container.Parcels, entry); err != nil {
		return nil, err
	}

	container.Logs = append(container.Logs, entry)
	container.UpdatedAt = now
	return container, nil
}

// TrackContainer devuelve el container completo con sus logs (solo admin).
func (s *ContainerService) TrackContainer(ctx context.Context, actor Actor, containerID string) (*model.Container, error) {
	if err := authorize(OpContainerTrack, actor); err != nil {
		return nil, err
	}
	return s.containers.FindByContainerID(ctx, containerID)
}

func dedupe(ids []string) []string {
	seen := make(map[string]bool, len(ids))
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if !seen[id] {
			seen[id] = true
			out = append(out, id)
		}
	}
	return out
}
