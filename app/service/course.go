package service

import (
	"context"
	"errors"
	"time"

	"github.com/huynhdieutuong/DevCamper-API/app/entity"
)

var (
	ErrCourseNotFound = errors.New("course not found")
	ErrBadSkillLevel  = errors.New("minimum skill must be beginner, intermediate or advanced")
)

type courseRepository interface {
	Create(ctx context.Context, course *entity.Course) error
	FindByID(ctx context.Context, id uint64) (*entity.Course, error)
	List(ctx context.Context, limit, offset int) ([]*entity.Course, error)
	ListByBootcamp(ctx context.Context, bootcampID uint64) ([]*entity.Course, error)
	Count(ctx context.Context) (int, error)
	Update(ctx context.Context, course *entity.Course) error
	Delete(ctx context.Context, id uint64) (int64, error)
}

type CourseInput struct {
	Title                string
	Description          string
	Weeks                int
	Tuition              int64
	MinimumSkill         string
	ScholarshipAvailable bool
}

type CourseService struct {
	repo      courseRepository
	bootcamps bootcampRepository
}

func NewCourseService(repo courseRepository, bootcamps bootcampRepository) *CourseService {
	return &CourseService{repo: repo, bootcamps: bootcamps}
}

func validSkill(skill string) bool {
	switch skill {
	case entity.SkillBeginner, entity.SkillIntermediate, entity.SkillAdvanced:
		return true
	}
	return false
}

func (in *CourseInput) apply(c *entity.Course) error {
	if in.MinimumSkill == "" {
		in.MinimumSkill = entity.SkillBeginner
	}
	if !validSkill(in.MinimumSkill) {
		return ErrBadSkillLevel
	}
	c.Title = in.Title
	c.Description = in.Description
	c.Weeks = in.Weeks
	c.Tuition = in.Tuition
	c.MinimumSkill = in.MinimumSkill
	c.ScholarshipAvailable = in.ScholarshipAvailable
	return nil
}

func (s *CourseService) List(ctx context.Context, page, limit int) ([]*entity.Course, int, error) {
	courses, err := s.repo.List(ctx, limit, (page-1)*limit)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.repo.Count(ctx)
	if err != nil {
		return nil, 0, err
	}
	return courses, total, nil
}

func (s *CourseService) ListByBootcamp(ctx context.Context, bootcampID uint64) ([]*entity.Course, error) {
	bootcamp, err := s.bootcamps.FindByID(ctx, bootcampID)
	if err != nil {
		return nil, err
	}
	if bootcamp == nil {
		return nil, ErrBootcampNotFound
	}
	return s.repo.ListByBootcamp(ctx, bootcampID)
}

func (s *CourseService) Get(ctx context.Context, id uint64) (*entity.Course, error) {
	course, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if course == nil {
		return nil, ErrCourseNotFound
	}
	return course, nil
}

// ownerOf resolves the owning bootcamp so write access follows the parent's
// ownership.
func (s *CourseService) ownerOf(ctx context.Context, bootcampID uint64) (uint64, error) {
	bootcamp, err := s.bootcamps.FindByID(ctx, bootcampID)
	if err != nil {
		return 0, err
	}
	if bootcamp == nil {
		return 0, ErrBootcampNotFound
	}
	return bootcamp.UserID, nil
}

func (s *CourseService) Create(ctx context.Context, actor *entity.User, bootcampID uint64, in *CourseInput) (*entity.Course, error) {
	ownerID, err := s.ownerOf(ctx, bootcampID)
	if err != nil {
		return nil, err
	}
	if !canModify(actor, ownerID) {
		return nil, ErrNotOwner
	}

	now := time.Now()
	course := &entity.Course{
		BootcampID: bootcampID,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if err := in.apply(course); err != nil {
		return nil, err
	}

	if err := s.repo.Create(ctx, course); err != nil {
		return nil, err
	}
	return course, nil
}

func (s *CourseService) Update(ctx context.Context, actor *entity.User, id uint64, in *CourseInput) (*entity.Course, error) {
	course, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	ownerID, err := s.ownerOf(ctx, course.BootcampID)
	if err != nil {
		return nil, err
	}
	if !canModify(actor, ownerID) {
		return nil, ErrNotOwner
	}

	if err := in.apply(course); err != nil {
		return nil, err
	}
	if err := s.repo.Update(ctx, course); err != nil {
		return nil, err
	}
	return course, nil
}

func (s *CourseService) Delete(ctx context.Context, actor *entity.User, id uint64) error {
	course, err := s.Get(ctx, id)
	if err != nil {
		return err
	}

	ownerID, err := s.ownerOf(ctx, course.BootcampID)
	if err != nil {
		return err
	}
	if !canModify(actor, ownerID) {
		return ErrNotOwner
	}

	_, err = s.repo.Delete(ctx, id)
	return err
}
