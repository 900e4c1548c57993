package service_test

import (
	"context"
	"errors"
	"testing"

	"github.com/huynhdieutuong/DevCamper-API/app/entity"
	"github.com/huynhdieutuong/DevCamper-API/app/repository"
	"github.com/huynhdieutuong/DevCamper-API/app/service"
)

type fakeBootcampRepo struct {
	bootcamps map[uint64]*entity.Bootcamp
	nextID    uint64
	createErr error
}

func newFakeBootcampRepo() *fakeBootcampRepo {
	return &fakeBootcampRepo{bootcamps: map[uint64]*entity.Bootcamp{}, nextID: 1}
}

func (r *fakeBootcampRepo) Create(_ context.Context, b *entity.Bootcamp) error {
	if r.createErr != nil {
		return r.createErr
	}
	b.ID = r.nextID
	r.nextID++
	r.bootcamps[b.ID] = b
	return nil
}

func (r *fakeBootcampRepo) FindByID(_ context.Context, id uint64) (*entity.Bootcamp, error) {
	return r.bootcamps[id], nil
}

func (r *fakeBootcampRepo) List(_ context.Context, limit, offset int) ([]*entity.Bootcamp, error) {
	var out []*entity.Bootcamp
	for _, b := range r.bootcamps {
		out = append(out, b)
	}
	return out, nil
}

func (r *fakeBootcampRepo) Count(_ context.Context) (int, error) {
	return len(r.bootcamps), nil
}

func (r *fakeBootcampRepo) Update(_ context.Context, b *entity.Bootcamp) error {
	r.bootcamps[b.ID] = b
	return nil
}

func (r *fakeBootcampRepo) Delete(_ context.Context, id uint64) (int64, error) {
	if _, ok := r.bootcamps[id]; !ok {
		return 0, nil
	}
	delete(r.bootcamps, id)
	return 1, nil
}

var (
	publisherOne = &entity.User{ID: 1, Role: entity.RolePublisher}
	publisherTwo = &entity.User{ID: 2, Role: entity.RolePublisher}
	adminUser    = &entity.User{ID: 9, Role: entity.RoleAdmin}
)

func TestBootcampService_CreateAndGet(t *testing.T) {
	repo := newFakeBootcampRepo()
	svc := service.NewBootcampService(repo)

	created, err := svc.Create(context.Background(), publisherOne, &service.BootcampInput{
		Name:        "Devworks Bootcamp",
		Description: "Full stack web development",
		Email:       "Info@Devworks.com",
		Careers:     []string{"Web Development"},
	})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if created.UserID != 1 {
		t.Fatalf("expected owner 1, got %d", created.UserID)
	}
	if created.Email.String != "info@devworks.com" {
		t.Fatalf("expected normalized email, got %q", created.Email.String)
	}

	got, err := svc.Get(context.Background(), created.ID)
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}
	if got.Name != "Devworks Bootcamp" {
		t.Fatalf("unexpected name: %q", got.Name)
	}
}

func TestBootcampService_Create_DuplicateName(t *testing.T) {
	repo := newFakeBootcampRepo()
	repo.createErr = repository.ErrDuplicate
	svc := service.NewBootcampService(repo)

	_, err := svc.Create(context.Background(), publisherOne, &service.BootcampInput{Name: "Devworks Bootcamp"})
	if !errors.Is(err, service.ErrBootcampExists) {
		t.Fatalf("expected ErrBootcampExists, got %v", err)
	}
}

func TestBootcampService_Get_NotFound(t *testing.T) {
	svc := service.NewBootcampService(newFakeBootcampRepo())

	_, err := svc.Get(context.Background(), 42)
	if !errors.Is(err, service.ErrBootcampNotFound) {
		t.Fatalf("expected ErrBootcampNotFound, got %v", err)
	}
}

func TestBootcampService_Update_OwnershipEnforced(t *testing.T) {
	repo := newFakeBootcampRepo()
	svc := service.NewBootcampService(repo)

	created, err := svc.Create(context.Background(), publisherOne, &service.BootcampInput{Name: "Devworks Bootcamp"})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	_, err = svc.Update(context.Background(), publisherTwo, created.ID, &service.BootcampInput{Name: "Hijacked"})
	if !errors.Is(err, service.ErrNotOwner) {
		t.Fatalf("expected ErrNotOwner, got %v", err)
	}

	updated, err := svc.Update(context.Background(), adminUser, created.ID, &service.BootcampInput{Name: "Renamed"})
	if err != nil {
		t.Fatalf("admin update failed: %v", err)
	}
	if updated.Name != "Renamed" {
		t.Fatalf("unexpected name: %q", updated.Name)
	}
}

func TestBootcampService_Delete_OwnershipEnforced(t *testing.T) {
	repo := newFakeBootcampRepo()
	svc := service.NewBootcampService(repo)

	created, err := svc.Create(context.Background(), publisherOne, &service.BootcampInput{Name: "Devworks Bootcamp"})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	if err := svc.Delete(context.Background(), publisherTwo, created.ID); !errors.Is(err, service.ErrNotOwner) {
		t.Fatalf("expected ErrNotOwner, got %v", err)
	}
	if err := svc.Delete(context.Background(), publisherOne, created.ID); err != nil {
		t.Fatalf("owner delete failed: %v", err)
	}
	if _, err := svc.Get(context.Background(), created.ID); !errors.Is(err, service.ErrBootcampNotFound) {
		t.Fatalf("expected bootcamp gone, got %v", err)
	}
}
