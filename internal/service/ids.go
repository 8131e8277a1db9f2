package service

import (
	"fmt"
	"sync/atomic"
	"time"
)

// Secuencia atómica para los sufijos de trackingId/containerId.
// Reemplaza al viejo esquema "Date.now()": dos creaciones en el mismo
// milisegundo ya no chocan. Se siembra con millis*1000 al arrancar para
// que un reinicio tampoco repita sufijos.
var idSeq atomic.Uint64

func init() {
	idSeq.Store(uint64(time.Now().UnixMilli()) * 1000)
}

func nextSuffix() uint64 {
	return idSeq.Add(1)
}

// NewTrackingID genera un identificador público de parcela (EPOST...).
// Inmutable una vez asignado, nunca se reutiliza.
func NewTrackingID() string {
	return fmt.Sprintf("EPOST%d", nextSuffix())
}

// NewContainerID genera un identificador de container (CT-...).
func NewContainerID() string {
	return fmt.Sprintf("CT-%d", nextSuffix())
}
