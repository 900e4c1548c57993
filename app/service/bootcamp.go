package service

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/huynhdieutuong/DevCamper-API/app/entity"
	"github.com/huynhdieutuong/DevCamper-API/app/repository"
)

var (
	ErrBootcampNotFound = errors.New("bootcamp not found")
	ErrBootcampExists   = errors.New("bootcamp with this name already exists")
	ErrNotOwner         = errors.New("not authorized to modify this resource")
)

type bootcampRepository interface {
	Create(ctx context.Context, bootcamp *entity.Bootcamp) error
	FindByID(ctx context.Context, id uint64) (*entity.Bootcamp, error)
	List(ctx context.Context, limit, offset int) ([]*entity.Bootcamp, error)
	Count(ctx context.Context) (int, error)
	Update(ctx context.Context, bootcamp *entity.Bootcamp) error
	Delete(ctx context.Context, id uint64) (int64, error)
}

type BootcampInput struct {
	Name        string
	Description string
	Website     string
	Phone       string
	Email       string
	Address     string
	Careers     []string
	Housing     bool
	AverageCost int64
}

type BootcampService struct {
	repo bootcampRepository
}

func NewBootcampService(repo bootcampRepository) *BootcampService {
	return &BootcampService{repo: repo}
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

func nullInt64(n int64) sql.NullInt64 {
	return sql.NullInt64{Int64: n, Valid: n != 0}
}

func (in *BootcampInput) apply(b *entity.Bootcamp) {
	b.Name = in.Name
	b.Description = in.Description
	b.Website = nullString(in.Website)
	b.Phone = nullString(in.Phone)
	b.Email = nullString(NormalizeEmail(in.Email))
	b.Address = nullString(in.Address)
	b.Careers = in.Careers
	b.Housing = in.Housing
	b.AverageCost = nullInt64(in.AverageCost)
}

func (s *BootcampService) List(ctx context.Context, page, limit int) ([]*entity.Bootcamp, int, error) {
	bootcamps, err := s.repo.List(ctx, limit, (page-1)*limit)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.repo.Count(ctx)
	if err != nil {
		return nil, 0, err
	}
	return bootcamps, total, nil
}

func (s *BootcampService) Get(ctx context.Context, id uint64) (*entity.Bootcamp, error) {
	bootcamp, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if bootcamp == nil {
		return nil, ErrBootcampNotFound
	}
	return bootcamp, nil
}

func (s *BootcampService) Create(ctx context.Context, owner *entity.User, in *BootcampInput) (*entity.Bootcamp, error) {
	now := time.Now()
	bootcamp := &entity.Bootcamp{
		UserID:    owner.ID,
		CreatedAt: now,
		UpdatedAt: now,
	}
	in.apply(bootcamp)

	if err := s.repo.Create(ctx, bootcamp); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, ErrBootcampExists
		}
		return nil, err
	}
	return bootcamp, nil
}

func canModify(actor *entity.User, ownerID uint64) bool {
	return actor.Role == entity.RoleAdmin || actor.ID == ownerID
}

func (s *BootcampService) Update(ctx context.Context, actor *entity.User, id uint64, in *BootcampInput) (*entity.Bootcamp, error) {
	bootcamp, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if !canModify(actor, bootcamp.UserID) {
		return nil, ErrNotOwner
	}

	in.apply(bootcamp)
	if err := s.repo.Update(ctx, bootcamp); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, ErrBootcampExists
		}
		return nil, err
	}
	return bootcamp, nil
}

func (s *BootcampService) Delete(ctx context.Context, actor *entity.User, id uint64) error {
	bootcamp, err := s.Get(ctx, id)
	if err != nil {
		return err
	}
	if !canModify(actor, bootcamp.UserID) {
		return ErrNotOwner
	}

	_, err = s.repo.Delete(ctx, id)
	return err
}
