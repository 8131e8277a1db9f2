package service

import (
	"context"
	"errors"
	"sort"

	"epost-backend/internal/model"
	"epost-backend/internal/repository"
)

// Fakes en memoria de los repositorios, para testear los services sin Mongo.

var errFake = errors.New("fallo simulado de storage")

type fakeParcelRepo struct {
	parcels map[string]*model.Parcel
}

func newFakeParcelRepo() *fakeParcelRepo {
	return &fakeParcelRepo{parcels: make(map[string]*model.Parcel)}
}

func (f *fakeParcelRepo) Insert(_ context.Context, p *model.Parcel) error {
	cp := *p
	f.parcels[p.TrackingID] = &cp
	return nil
}

func (f *fakeParcelRepo) FindByTrackingID(_ context.Context, trackingID string) (*model.Parcel, error) {
	p, ok := f.parcels[trackingID]
	if !ok {
		return nil, repository.ErrNotFound
	}
	cp := *p
	return &cp, nil
}

func (f *fakeParcelRepo) FindByCreator(_ context.Context, userID string) ([]*model.Parcel, error) {
	var out []*model.Parcel
	for _, p := range f.parcels {
		if p.CreatedBy == userID {
			cp := *p
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (f *fakeParcelRepo) FindByTrackingIDs(_ context.Context, trackingIDs []string) ([]*model.Parcel, error) {
	var out []*model.Parcel
	for _, id := range trackingIDs {
		if p, ok := f.parcels[id]; ok {
			cp := *p
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (f *fakeParcelRepo) UpdateSnapshot(_ context.Context, trackingID, status, location string) error {
	p, ok := f.parcels[trackingID]
	if !ok {
		return repository.ErrNotFound
	}
	p.Status = status
	p.Location = location
	return nil
}

func (f *fakeParcelRepo) PushLogToMany(_ context.Context, trackingIDs []string, entry model.LocationLog) error {
	for _, id := range trackingIDs {
		if p, ok := f.parcels[id]; ok {
			p.Logs = append(p.Logs, entry)
			p.Location = entry.Location
		}
	}
	return nil
}

func (f *fakeParcelRepo) Delete(_ context.Context, trackingID string) error {
	if _, ok := f.parcels[trackingID]; !ok {
		return repository.ErrNotFound
	}
	delete(f.parcels, trackingID)
	return nil
}

func (f *fakeParcelRepo) Count(_ context.Context) (int64, error) {
	return int64(len(f.parcels)), nil
}

func (f *fakeParcelRepo) CountByStatus(_ context.Context, status string) (int64, error) {
	var n int64
	for _, p := range f.parcels {
		if p.Status == status {
			n++
		}
	}
	return n, nil
}

type fakeTrackingRepo struct {
	entries map[string]*model.TrackingLog // por eventId (simula el upsert)

	// cuántos appends seguidos deben fallar
	failAppends int
}

func newFakeTrackingRepo() *fakeTrackingRepo {
	return &fakeTrackingRepo{entries: make(map[string]*model.TrackingLog)}
}

func (f *fakeTrackingRepo) Append(_ context.Context, entry *model.TrackingLog) error {
	if f.failAppends > 0 {
		f.failAppends--
		return errFake
	}
	if _, ok := f.entries[entry.EventID]; ok {
		return nil // idempotente: el mismo evento no duplica
	}
	cp := *entry
	f.entries[entry.EventID] = &cp
	return nil
}

func (f *fakeTrackingRepo) FindByParcelID(_ context.Context, parcelID string) ([]*model.TrackingLog, error) {
	var out []*model.TrackingLog
	for _, e := range f.entries {
		if e.ParcelID == parcelID {
			cp := *e
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Timestamp.Before(out[j].Timestamp) })
	return out, nil
}

func (f *fakeTrackingRepo) DeleteByParcelID(_ context.Context, parcelID string) error {
	for id, e := range f.entries {
		if e.ParcelID == parcelID {
			delete(f.entries, id)
		}
	}
	return nil
}

type fakeContainerRepo struct {
	containers map[string]*model.Container
}

func newFakeContainerRepo() *fakeContainerRepo {
	return &fakeContainerRepo{containers: make(map[string]*model.Container)}
}

func (f *fakeContainerRepo) Insert(_ context.Context, c *model.Container) error {
	cp := *c
	f.containers[c.ContainerID] = &cp
	return nil
}

func (f *fakeContainerRepo) FindByContainerID(_ context.Context, containerID string) (*model.Container, error) {
	c, ok := f.containers[containerID]
	if !ok {
		return nil, repository.ErrNotFound
	}
	cp := *c
	return &cp, nil
}

func (f *fakeContainerRepo) PushLog(_ context.Context, containerID string, entry model.LocationLog) error {
	c, ok := f.containers[containerID]
	if !ok {
		return repository.ErrNotFound
	}
	c.Logs = append(c.Logs, entry)
	c.UpdatedAt = entry.Timestamp
	return nil
}

type fakeUserRepo struct {
	users map[string]*model.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[string]*model.User)}
}

func (f *fakeUserRepo) Insert(_ context.Context, u *model.User) error {
	cp := *u
	f.users[u.ID] = &cp
	return nil
}

func (f *fakeUserRepo) FindByEmail(_ context.Context, email string) (*model.User, error) {
	for _, u := range f.users {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (f *fakeUserRepo) FindByID(_ context.Context, id string) (*model.User, error) {
	u, ok := f.users[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	cp := *u
	return &cp, nil
}

func (f *fakeUserRepo) FindLatestByRole(_ context.Context, role string) (*model.User, error) {
	var latest *model.User
	for _, u := range f.users {
		if u.Role != role {
			continue
		}
		if latest == nil || u.CreatedAt.After(latest.CreatedAt) {
			latest = u
		}
	}
	if latest == nil {
		return nil, repository.ErrNotFound
	}
	cp := *latest
	return &cp, nil
}

func (f *fakeUserRepo) AddTrackingID(_ context.Context, userID, trackingID string) error {
	u, ok := f.users[userID]
	if !ok {
		return repository.ErrNotFound
	}
	for _, id := range u.TrackingIDs {
		if id == trackingID {
			return nil
		}
	}
	u.TrackingIDs = append(u.TrackingIDs, trackingID)
	return nil
}

func (f *fakeUserRepo) Count(_ context.Context) (int64, error) {
	return int64(len(f.users)), nil
}

type fakeCodeGenerator struct {
	calls []string // contenido generado, en orden
	fail  bool
}

func (f *fakeCodeGenerator) Generate(content, path string) error {
	if f.fail {
		return errFake
	}
	f.calls = append(f.calls, content)
	return nil
}
