package rabbit

import (
	"context"
	"encoding/json"
	"log"

	"epost-backend/internal/model"
	"epost-backend/internal/service"
)

// Los dispositivos de escaneo en ruta publican la ubicación de un container;
// acá lo procesamos igual que un PUT /api/containers/update/:containerId.
type ContainerScanConsumer struct {
	Service *service.ContainerService
}

func NewContainerScanConsumer(s *service.ContainerService) *ContainerScanConsumer {
	return &ContainerScanConsumer{Service: s}
}

type ContainerScanMessage struct {
	ContainerID string `json:"containerId"`
	Location    string `json:"location"`
	ScannerID   string `json:"scannerId"`
}

func (c *ContainerScanConsumer) Handle(msg []byte) error {
	log.Println("[Rabbit] Evento recibido: container_scan")

	var event ContainerScanMessage
	if err := json.Unmarshal(msg, &event); err != nil {
		log.Println("Error parseando mensaje:", err)
		return err
	}

	// El scanner actúa con rol transport (mismo gate que la ruta HTTP)
	actor := service.Actor{ID: event.ScannerID, Role: model.RoleTransport}

	_, err := c.Service.UpdateContainer(
		context.Background(),
		actor,
		event.ContainerID,
		event.Location,
	)

	if err != nil {
		log.Println("❌ Error actualizando container:", err)
		return err
	}

	log.Println("✔ Scan procesado para container:", event.ContainerID)
	return nil
}
