package service

import (
	"context"
	"testing"

	"epost-backend/internal/model"
	"epost-backend/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var transportActor = Actor{ID: "TRPMUM00001", Role: model.RoleTransport}

type containerFixture struct {
	svc        *ContainerService
	parcelSvc  *ParcelService
	containers *fakeContainerRepo
	parcels    *fakeParcelRepo
	ledger     *fakeTrackingRepo
	codes      *fakeCodeGenerator
}

func newContainerFixture() *containerFixture {
	parcels := newFakeParcelRepo()
	ledger := newFakeTrackingRepo()
	containers := newFakeContainerRepo()
	codes := &fakeCodeGenerator{}
	return &containerFixture{
		svc:        NewContainerService(containers, parcels, codes, "qrcodes/containers"),
		parcelSvc:  NewParcelService(parcels, ledger, codes, "qrcodes/parcels"),
		containers: containers,
		parcels:    parcels,
		ledger:     ledger,
		codes:      codes,
	}
}

func (fx *containerFixture) seedParcels(t *testing.T, n int) []string {
	t.Helper()
	ids := make([]string, 0, n)
	for i := 0; i < n; i++ {
		p, err := fx.parcelSvc.CreateParcel(context.Background(), staffActor, validCreateReq())
		require.NoError(t, err)
		ids = append(ids, p.TrackingID)
	}
	return ids
}

func TestCreateContainer(t *testing.T) {
	fx := newContainerFixture()
	ids := fx.seedParcels(t, 2)

	container, err := fx.svc.CreateContainer(context.Background(), staffActor, ids, "Delhi", "Mumbai")
	require.NoError(t, err)

	assert.Contains(t, container.ContainerID, "CT-")
	assert.Equal(t, model.StatusInTransit, container.Status)
	assert.Equal(t, ids, container.Parcels)
	require.Len(t, container.Logs, 1)
	assert.Equal(t, "Mumbai", container.Logs[0].Location)
	assert.Contains(t, fx.codes.calls, container.ContainerID)

	// La creación no toca el snapshot de los miembros
	for _, id := range ids {
		p, err := fx.parcels.FindByTrackingID(context.Background(), id)
		require.NoError(t, err)
		assert.Equal(t, model.StatusPending, p.Status)
		assert.Equal(t, "Mumbai", p.Location)
		assert.Empty(t, p.Logs)
	}
}

func TestCreateContainerMissingParcel(t *testing.T) {
	fx := newContainerFixture()
	ids := fx.seedParcels(t, 3)
	ids = append(ids, "EPOST0") // no existe

	_, err := fx.svc.CreateContainer(context.Background(), staffActor, ids, "Delhi", "Mumbai")
	assert.ErrorIs(t, err, ErrParcelsNotFound)

	// No se creó ningún container
	assert.Empty(t, fx.containers.containers)
}

func TestCreateContainerDedupesMembers(t *testing.T) {
	fx := newContainerFixture()
	ids := fx.seedParcels(t, 2)
	withDup := append([]string{}, ids...)
	withDup = append(withDup, ids[0])

	container, err := fx.svc.CreateContainer(context.Background(), staffActor, withDup, "Delhi", "Mumbai")
	require.NoError(t, err)
	assert.Equal(t, ids, container.Parcels)
}

func TestCreateContainerDeniedForTransport(t *testing.T) {
	fx := newContainerFixture()
	ids := fx.seedParcels(t, 1)

	_, err := fx.svc.CreateContainer(context.Background(), transportActor, ids, "Delhi", "Mumbai")
	assert.ErrorIs(t, err, ErrAccessDenied)
}

func TestCreateContainerValidation(t *testing.T) {
	fx := newContainerFixture()

	_, err := fx.svc.CreateContainer(context.Background(), staffActor, nil, "Delhi", "Mumbai")
	assert.ErrorIs(t, err, ErrValidation)

	ids := fx.seedParcels(t, 1)
	_, err = fx.svc.CreateContainer(context.Background(), staffActor, ids, "", "Mumbai")
	assert.ErrorIs(t, err, ErrValidation)
}

func TestUpdateContainerFanout(t *testing.T) {
	fx := newContainerFixture()
	ids := fx.seedParcels(t, 3)

	container, err := fx.svc.CreateContainer(context.Background(), staffActor, ids, "Delhi", "Mumbai")
	require.NoError(t, err)

	ledgerBefore := len(fx.ledger.entries)

	updated, err := fx.svc.UpdateContainer(context.Background(), transportActor, container.ContainerID, "Nagpur")
	require.NoError(t, err)

	// Una entrada más en el log del container...
	assert.Len(t, updated.Logs, 2)
	assert.Equal(t, "Nagpur", updated.Logs[1].Location)

	// ...y exactamente un append embebido por parcela miembro
	for _, id := range ids {
		p, err := fx.parcels.FindByTrackingID(context.Background(), id)
		require.NoError(t, err)
		require.Len(t, p.Logs, 1)
		assert.Equal(t, "Nagpur", p.Logs[0].Location)
		assert.Equal(t, "Nagpur", p.Location)
	}

	// El fanout NO escribe en el Tracking Ledger: el tracking público
	// no ve los movimientos del container (camino separado a propósito)
	assert.Len(t, fx.ledger.entries, ledgerBefore)
}

func TestUpdateContainerNotFound(t *testing.T) {
	fx := newContainerFixture()

	_, err := fx.svc.UpdateContainer(context.Background(), staffActor, "CT-0", "Nagpur")
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestUpdateContainerDeniedForCustomer(t *testing.T) {
	fx := newContainerFixture()
	ids := fx.seedParcels(t, 1)

	container, err := fx.svc.CreateContainer(context.Background(), staffActor, ids, "Delhi", "Mumbai")
	require.NoError(t, err)

	_, err = fx.svc.UpdateContainer(context.Background(), customerActor, container.ContainerID, "Nagpur")
	assert.ErrorIs(t, err, ErrAccessDenied)
}

func TestTrackContainerAdminOnly(t *testing.T) {
	fx := newContainerFixture()
	ids := fx.seedParcels(t, 1)

	container, err := fx.svc.CreateContainer(context.Background(), staffActor, ids, "Delhi", "Mumbai")
	require.NoError(t, err)

	_, err = fx.svc.TrackContainer(context.Background(), staffActor, container.ContainerID)
	assert.ErrorIs(t, err, ErrAccessDenied)

	got, err := fx.svc.TrackContainer(context.Background(), adminActor, container.ContainerID)
	require.NoError(t, err)
	assert.Equal(t, container.ContainerID, got.ContainerID)
	assert.Len(t, got.Logs, 1)
}

func TestTrackContainerNotFound(t *testing.T) {
	fx := newContainerFixture()

	_, err := fx.svc.TrackContainer(context.Background(), adminActor, "CT-0")
	assert.ErrorIs(t, err, repository.ErrNotFound)
}
