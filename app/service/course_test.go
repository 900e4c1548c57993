package service_test

import (
	"context"
	"errors"
	"testing"

	"github.com/huynhdieutuong/DevCamper-API/app/entity"
	"github.com/huynhdieutuong/DevCamper-API/app/service"
)

type fakeCourseRepo struct {
	courses map[uint64]*entity.Course
	nextID  uint64
}

func newFakeCourseRepo() *fakeCourseRepo {
	return &fakeCourseRepo{courses: map[uint64]*entity.Course{}, nextID: 1}
}

func (r *fakeCourseRepo) Create(_ context.Context, c *entity.Course) error {
	c.ID = r.nextID
	r.nextID++
	r.courses[c.ID] = c
	return nil
}

func (r *fakeCourseRepo) FindByID(_ context.Context, id uint64) (*entity.Course, error) {
	return r.courses[id], nil
}

func (r *fakeCourseRepo) List(_ context.Context, limit, offset int) ([]*entity.Course, error) {
	var out []*entity.Course
	for _, c := range r.courses {
		out = append(out, c)
	}
	return out, nil
}

func (r *fakeCourseRepo) ListByBootcamp(_ context.Context, bootcampID uint64) ([]*entity.Course, error) {
	var out []*entity.Course
	for _, c := range r.courses {
		if c.BootcampID == bootcampID {
			out = append(out, c)
		}
	}
	return out, nil
}

func (r *fakeCourseRepo) Count(_ context.Context) (int, error) {
	return len(r.courses), nil
}

func (r *fakeCourseRepo) Update(_ context.Context, c *entity.Course) error {
	r.courses[c.ID] = c
	return nil
}

func (r *fakeCourseRepo) Delete(_ context.Context, id uint64) (int64, error) {
	if _, ok := r.courses[id]; !ok {
		return 0, nil
	}
	delete(r.courses, id)
	return 1, nil
}

func newCourseFixture(t *testing.T) (*service.CourseService, uint64) {
	t.Helper()

	bootcampRepo := newFakeBootcampRepo()
	bootcampSvc := service.NewBootcampService(bootcampRepo)
	bootcamp, err := bootcampSvc.Create(context.Background(), publisherOne, &service.BootcampInput{Name: "Devworks Bootcamp"})
	if err != nil {
		t.Fatalf("bootcamp create failed: %v", err)
	}

	return service.NewCourseService(newFakeCourseRepo(), bootcampRepo), bootcamp.ID
}

func TestCourseService_Create_OwnershipFollowsBootcamp(t *testing.T) {
	svc, bootcampID := newCourseFixture(t)

	_, err := svc.Create(context.Background(), publisherTwo, bootcampID, &service.CourseInput{Title: "Front End"})
	if !errors.Is(err, service.ErrNotOwner) {
		t.Fatalf("expected ErrNotOwner, got %v", err)
	}

	course, err := svc.Create(context.Background(), publisherOne, bootcampID, &service.CourseInput{Title: "Front End"})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if course.MinimumSkill != entity.SkillBeginner {
		t.Fatalf("expected default skill, got %q", course.MinimumSkill)
	}
}

func TestCourseService_Create_UnknownBootcamp(t *testing.T) {
	svc, _ := newCourseFixture(t)

	_, err := svc.Create(context.Background(), publisherOne, 42, &service.CourseInput{Title: "Front End"})
	if !errors.Is(err, service.ErrBootcampNotFound) {
		t.Fatalf("expected ErrBootcampNotFound, got %v", err)
	}
}

func TestCourseService_Create_BadSkillLevel(t *testing.T) {
	svc, bootcampID := newCourseFixture(t)

	_, err := svc.Create(context.Background(), publisherOne, bootcampID, &service.CourseInput{
		Title:        "Front End",
		MinimumSkill: "wizard",
	})
	if !errors.Is(err, service.ErrBadSkillLevel) {
		t.Fatalf("expected ErrBadSkillLevel, got %v", err)
	}
}

func TestCourseService_ListByBootcamp(t *testing.T) {
	svc, bootcampID := newCourseFixture(t)

	for _, title := range []string{"Front End", "Back End"} {
		if _, err := svc.Create(context.Background(), publisherOne, bootcampID, &service.CourseInput{Title: title}); err != nil {
			t.Fatalf("create failed: %v", err)
		}
	}

	courses, err := svc.ListByBootcamp(context.Background(), bootcampID)
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(courses) != 2 {
		t.Fatalf("expected 2 courses, got %d", len(courses))
	}

	if _, err := svc.ListByBootcamp(context.Background(), 42); !errors.Is(err, service.ErrBootcampNotFound) {
		t.Fatalf("expected ErrBootcampNotFound, got %v", err)
	}
}

func TestCourseService_UpdateAndDelete(t *testing.T) {
	svc, bootcampID := newCourseFixture(t)

	course, err := svc.Create(context.Background(), publisherOne, bootcampID, &service.CourseInput{Title: "Front End"})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	if _, err := svc.Update(context.Background(), publisherTwo, course.ID, &service.CourseInput{Title: "Hijacked"}); !errors.Is(err, service.ErrNotOwner) {
		t.Fatalf("expected ErrNotOwner, got %v", err)
	}

	updated, err := svc.Update(context.Background(), adminUser, course.ID, &service.CourseInput{
		Title:        "Full Stack",
		MinimumSkill: entity.SkillIntermediate,
	})
	if err != nil {
		t.Fatalf("update failed: %v", err)
	}
	if updated.Title != "Full Stack" || updated.MinimumSkill != entity.SkillIntermediate {
		t.Fatalf("unexpected course: %+v", updated)
	}

	if err := svc.Delete(context.Background(), publisherOne, course.ID); err != nil {
		t.Fatalf("delete failed: %v", err)
	}
	if _, err := svc.Get(context.Background(), course.ID); !errors.Is(err, service.ErrCourseNotFound) {
		t.Fatalf("expected course gone, got %v", err)
	}
}
