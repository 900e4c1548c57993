package controller

import (
	"errors"
	"net/http"

	"github.com/huynhdieutuong/DevCamper-API/app/apperror"
	"github.com/huynhdieutuong/DevCamper-API/app/dto"
	"github.com/huynhdieutuong/DevCamper-API/app/middleware"
	"github.com/huynhdieutuong/DevCamper-API/app/service"

	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"
)

type BootcampController struct {
	bootcamps *service.BootcampService
	courses   *service.CourseService
}

func NewBootcampController(bootcamps *service.BootcampService, courses *service.CourseService) *BootcampController {
	return &BootcampController{bootcamps: bootcamps, courses: courses}
}

func mapBootcampErr(err error) error {
	switch {
	case errors.Is(err, service.ErrBootcampNotFound):
		return apperror.NotFound("bootcamp not found")
	case errors.Is(err, service.ErrBootcampExists):
		return apperror.Conflict("bootcamp with this name already exists")
	case errors.Is(err, service.ErrNotOwner):
		return apperror.Forbidden("not authorized to modify this bootcamp")
	}
	return err
}

func (c *BootcampController) List(ctx echo.Context) error {
	page, limit := parsePagination(ctx)
	bootcamps, total, err := c.bootcamps.List(ctx.Request().Context(), page, limit)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, dto.NewListResponse(dto.NewBootcampViews(bootcamps), len(bootcamps), total, page, limit))
}

func (c *BootcampController) Get(ctx echo.Context) error {
	id, err := parseID(ctx, "id")
	if err != nil {
		return err
	}

	bootcamp, err := c.bootcamps.Get(ctx.Request().Context(), id)
	if err != nil {
		return mapBootcampErr(err)
	}
	return ctx.JSON(http.StatusOK, dto.Response{Success: true, Data: dto.NewBootcampView(bootcamp)})
}

func (c *BootcampController) Create(ctx echo.Context) error {
	user := middleware.UserFromContext(ctx)
	if user == nil {
		return apperror.Unauthorized("not authorized to access this route")
	}

	req, err := dto.NewBootcampRequest(ctx)
	if err != nil {
		return apperror.Validation("invalid request body")
	}
	if err = req.Validate(); err != nil {
		return apperror.Validation(err.Error())
	}

	bootcamp, err := c.bootcamps.Create(ctx.Request().Context(), user, bootcampInput(req))
	if err != nil {
		return mapBootcampErr(err)
	}

	logrus.WithFields(logrus.Fields{
		"bootcamp_id": bootcamp.ID,
		"user_id":     user.ID,
	}).Info("Bootcamp created")
	return ctx.JSON(http.StatusCreated, dto.Response{Success: true, Data: dto.NewBootcampView(bootcamp)})
}

func (c *BootcampController) Update(ctx echo.Context) error {
	user := middleware.UserFromContext(ctx)
	if user == nil {
		return apperror.Unauthorized("not authorized to access this route")
	}

	id, err := parseID(ctx, "id")
	if err != nil {
		return err
	}

	req, err := dto.NewBootcampRequest(ctx)
	if err != nil {
		return apperror.Validation("invalid request body")
	}
	if err = req.Validate(); err != nil {
		return apperror.Validation(err.Error())
	}

	bootcamp, err := c.bootcamps.Update(ctx.Request().Context(), user, id, bootcampInput(req))
	if err != nil {
		return mapBootcampErr(err)
	}
	return ctx.JSON(http.StatusOK, dto.Response{Success: true, Data: dto.NewBootcampView(bootcamp)})
}

func (c *BootcampController) Delete(ctx echo.Context) error {
	user := middleware.UserFromContext(ctx)
	if user == nil {
		return apperror.Unauthorized("not authorized to access this route")
	}

	id, err := parseID(ctx, "id")
	if err != nil {
		return err
	}

	if err := c.bootcamps.Delete(ctx.Request().Context(), user, id); err != nil {
		return mapBootcampErr(err)
	}

	logrus.WithFields(logrus.Fields{
		"bootcamp_id": id,
		"user_id":     user.ID,
	}).Info("Bootcamp deleted")
	return ctx.JSON(http.StatusOK, dto.Response{Success: true, Data: struct{}{}})
}

func (c *BootcampController) ListCourses(ctx echo.Context) error {
	id, err := parseID(ctx, "id")
	if err != nil {
		return err
	}

	courses, err := c.courses.ListByBootcamp(ctx.Request().Context(), id)
	if err != nil {
		return mapBootcampErr(err)
	}
	return ctx.JSON(http.StatusOK, dto.ListResponse{
		Success: true,
		Count:   len(courses),
		Data:    dto.NewCourseViews(courses),
	})
}

func bootcampInput(req *dto.BootcampRequest) *service.BootcampInput {
	return &service.BootcampInput{
		Name:        req.Name,
		Description: req.Description,
		Website:     req.Website,
		Phone:       req.Phone,
		Email:       req.Email,
		Address:     req.Address,
		Careers:     req.Careers,
		Housing:     req.Housing,
		AverageCost: req.AverageCost,
	}
}
