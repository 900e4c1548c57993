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

type CourseController struct {
	courses *service.CourseService
}

func NewCourseController(courses *service.CourseService) *CourseController {
	return &CourseController{courses: courses}
}

func mapCourseErr(err error) error {
	switch {
	case errors.Is(err, service.ErrCourseNotFound):
		return apperror.NotFound("course not found")
	case errors.Is(err, service.ErrBootcampNotFound):
		return apperror.NotFound("bootcamp not found")
	case errors.Is(err, service.ErrBadSkillLevel):
		return apperror.Validation(err.Error())
	case errors.Is(err, service.ErrNotOwner):
		return apperror.Forbidden("not authorized to modify this course")
	}
	return err
}

func (c *CourseController) List(ctx echo.Context) error {
	page, limit := parsePagination(ctx)
	courses, total, err := c.courses.List(ctx.Request().Context(), page, limit)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, dto.NewListResponse(dto.NewCourseViews(courses), len(courses), total, page, limit))
}

func (c *CourseController) Get(ctx echo.Context) error {
	id, err := parseID(ctx, "id")
	if err != nil {
		return err
	}

	course, err := c.courses.Get(ctx.Request().Context(), id)
	if err != nil {
		return mapCourseErr(err)
	}
	return ctx.JSON(http.StatusOK, dto.Response{Success: true, Data: dto.NewCourseView(course)})
}

func (c *CourseController) Create(ctx echo.Context) error {
	user := middleware.UserFromContext(ctx)
	if user == nil {
		return apperror.Unauthorized("not authorized to access this route")
	}

	bootcampID, err := parseID(ctx, "id")
	if err != nil {
		return err
	}

	req, err := dto.NewCourseRequest(ctx)
	if err != nil {
		return apperror.Validation("invalid request body")
	}
	if err = req.Validate(); err != nil {
		return apperror.Validation(err.Error())
	}

	course, err := c.courses.Create(ctx.Request().Context(), user, bootcampID, courseInput(req))
	if err != nil {
		return mapCourseErr(err)
	}

	logrus.WithFields(logrus.Fields{
		"course_id":   course.ID,
		"bootcamp_id": bootcampID,
		"user_id":     user.ID,
	}).Info("Course created")
	return ctx.JSON(http.StatusCreated, dto.Response{Success: true, Data: dto.NewCourseView(course)})
}

func (c *CourseController) Update(ctx echo.Context) error {
	user := middleware.UserFromContext(ctx)
	if user == nil {
		return apperror.Unauthorized("not authorized to access this route")
	}

	id, err := parseID(ctx, "id")
	if err != nil {
		return err
	}

	req, err := dto.NewCourseRequest(ctx)
	if err != nil {
		return apperror.Validation("invalid request body")
	}
	if err = req.Validate(); err != nil {
		return apperror.Validation(err.Error())
	}

	course, err := c.courses.Update(ctx.Request().Context(), user, id, courseInput(req))
	if err != nil {
		return mapCourseErr(err)
	}
	return ctx.JSON(http.StatusOK, dto.Response{Success: true, Data: dto.NewCourseView(course)})
}

func (c *CourseController) Delete(ctx echo.Context) error {
	user := middleware.UserFromContext(ctx)
	if user == nil {
		return apperror.Unauthorized("not authorized to access this route")
	}

	id, err := parseID(ctx, "id")
	if err != nil {
		return err
	}

	if err := c.courses.Delete(ctx.Request().Context(), user, id); err != nil {
		return mapCourseErr(err)
	}
	return ctx.JSON(http.StatusOK, dto.Response{Success: true, Data: struct{}{}})
}

func courseInput(req *dto.CourseRequest) *service.CourseInput {
	return &service.CourseInput{
		Title:                req.Title,
		Description:          req.Description,
		Weeks:                req.Weeks,
		Tuition:              req.Tuition,
		MinimumSkill:         req.MinimumSkill,
		ScholarshipAvailable: req.ScholarshipAvailable,
	}
}
