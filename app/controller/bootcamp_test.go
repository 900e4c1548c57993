package controller_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/huynhdieutuong/DevCamper-API/app/controller"
	"github.com/huynhdieutuong/DevCamper-API/app/entity"
	"github.com/huynhdieutuong/DevCamper-API/app/middleware"
	"github.com/huynhdieutuong/DevCamper-API/app/service"

	"github.com/labstack/echo/v4"
)

type memBootcampRepo struct {
	bootcamps map[uint64]*entity.Bootcamp
	nextID    uint64
}

func newMemBootcampRepo() *memBootcampRepo {
	return &memBootcampRepo{bootcamps: map[uint64]*entity.Bootcamp{}, nextID: 1}
}

func (r *memBootcampRepo) Create(_ context.Context, b *entity.Bootcamp) error {
	b.ID = r.nextID
	r.nextID++
	r.bootcamps[b.ID] = b
	return nil
}

func (r *memBootcampRepo) FindByID(_ context.Context, id uint64) (*entity.Bootcamp, error) {
	return r.bootcamps[id], nil
}

func (r *memBootcampRepo) List(_ context.Context, limit, offset int) ([]*entity.Bootcamp, error) {
	var out []*entity.Bootcamp
	for _, b := range r.bootcamps {
		out = append(out, b)
	}
	return out, nil
}

func (r *memBootcampRepo) Count(_ context.Context) (int, error) {
	return len(r.bootcamps), nil
}

func (r *memBootcampRepo) Update(_ context.Context, b *entity.Bootcamp) error {
	r.bootcamps[b.ID] = b
	return nil
}

func (r *memBootcampRepo) Delete(_ context.Context, id uint64) (int64, error) {
	delete(r.bootcamps, id)
	return 1, nil
}

type memCourseRepo struct{}

func (memCourseRepo) Create(_ context.Context, _ *entity.Course) error { return nil }
func (memCourseRepo) FindByID(_ context.Context, _ uint64) (*entity.Course, error) {
	return nil, nil
}
func (memCourseRepo) List(_ context.Context, _, _ int) ([]*entity.Course, error) { return nil, nil }
func (memCourseRepo) ListByBootcamp(_ context.Context, _ uint64) ([]*entity.Course, error) {
	return nil, nil
}
func (memCourseRepo) Count(_ context.Context) (int, error)              { return 0, nil }
func (memCourseRepo) Update(_ context.Context, _ *entity.Course) error  { return nil }
func (memCourseRepo) Delete(_ context.Context, _ uint64) (int64, error) { return 1, nil }

func newBootcampController() (*controller.BootcampController, *memBootcampRepo) {
	repo := newMemBootcampRepo()
	bootcampSvc := service.NewBootcampService(repo)
	courseSvc := service.NewCourseService(memCourseRepo{}, repo)
	return controller.NewBootcampController(bootcampSvc, courseSvc), repo
}

func TestBootcampCreate_RequiresUser(t *testing.T) {
	ctrl, _ := newBootcampController()

	req, rec := newJSONRequest(t, http.MethodPost, "/bootcamps", map[string]any{
		"name":        "Devworks Bootcamp",
		"description": "Full stack web development",
	})
	ctx := echo.New().NewContext(req, rec)

	perform(ctx, ctrl.Create)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected status 401, got %d", rec.Code)
	}
}

func TestBootcampCreate_Success(t *testing.T) {
	ctrl, repo := newBootcampController()

	req, rec := newJSONRequest(t, http.MethodPost, "/bootcamps", map[string]any{
		"name":        "Devworks Bootcamp",
		"description": "Full stack web development",
		"careers":     []string{"Web Development"},
	})
	ctx := echo.New().NewContext(req, rec)
	middleware.SetContextUser(ctx, &entity.User{ID: 1, Role: entity.RolePublisher})

	perform(ctx, ctrl.Create)

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected status 201, got %d: %s", rec.Code, rec.Body.String())
	}
	if len(repo.bootcamps) != 1 {
		t.Fatalf("expected 1 stored bootcamp, got %d", len(repo.bootcamps))
	}
	if repo.bootcamps[1].UserID != 1 {
		t.Fatalf("expected owner 1, got %d", repo.bootcamps[1].UserID)
	}
}

func TestBootcampCreate_MissingDescription(t *testing.T) {
	ctrl, _ := newBootcampController()

	req, rec := newJSONRequest(t, http.MethodPost, "/bootcamps", map[string]any{
		"name": "Devworks Bootcamp",
	})
	ctx := echo.New().NewContext(req, rec)
	middleware.SetContextUser(ctx, &entity.User{ID: 1, Role: entity.RolePublisher})

	perform(ctx, ctrl.Create)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400, got %d", rec.Code)
	}
}

func TestBootcampGet_NotFound(t *testing.T) {
	ctrl, _ := newBootcampController()

	req := httptest.NewRequest(http.MethodGet, "/bootcamps/42", nil)
	rec := httptest.NewRecorder()
	ctx := echo.New().NewContext(req, rec)
	ctx.SetParamNames("id")
	ctx.SetParamValues("42")

	perform(ctx, ctrl.Get)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected status 404, got %d", rec.Code)
	}
}

func TestBootcampUpdate_NotOwner(t *testing.T) {
	ctrl, repo := newBootcampController()
	repo.bootcamps[1] = &entity.Bootcamp{ID: 1, Name: "Devworks Bootcamp", UserID: 1}
	repo.nextID = 2

	req, rec := newJSONRequest(t, http.MethodPut, "/bootcamps/1", map[string]any{
		"name":        "Hijacked",
		"description": "nope",
	})
	ctx := echo.New().NewContext(req, rec)
	ctx.SetParamNames("id")
	ctx.SetParamValues("1")
	middleware.SetContextUser(ctx, &entity.User{ID: 2, Role: entity.RolePublisher})

	perform(ctx, ctrl.Update)

	if rec.Code != http.StatusForbidden {
		t.Fatalf("expected status 403, got %d", rec.Code)
	}
}

func TestBootcampList_BodyShape(t *testing.T) {
	ctrl, repo := newBootcampController()
	repo.bootcamps[1] = &entity.Bootcamp{ID: 1, Name: "Devworks Bootcamp", UserID: 1}
	repo.nextID = 2

	req := httptest.NewRequest(http.MethodGet, "/bootcamps", nil)
	rec := httptest.NewRecorder()
	ctx := echo.New().NewContext(req, rec)

	perform(ctx, ctrl.List)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}
	body := decodeBody(t, rec)
	if body["success"] != true {
		t.Fatalf("expected success true, got %v", body["success"])
	}
	if body["count"] != float64(1) {
		t.Fatalf("expected count 1, got %v", body["count"])
	}
}

func TestBootcampGet_BadID(t *testing.T) {
	ctrl, _ := newBootcampController()

	req := httptest.NewRequest(http.MethodGet, "/bootcamps/abc", nil)
	rec := httptest.NewRecorder()
	ctx := echo.New().NewContext(req, rec)
	ctx.SetParamNames("id")
	ctx.SetParamValues("abc")

	perform(ctx, ctrl.Get)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400, got %d", rec.Code)
	}
}
