package controller

import (
	"errors"
	"net/http"

	"github.com/huynhdieutuong/DevCamper-API/app/apperror"
	"github.com/huynhdieutuong/DevCamper-API/app/dto"
	"github.com/huynhdieutuong/DevCamper-API/app/service"

	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"
)

// UserController serves the admin-only user management routes.
type UserController struct {
	users *service.UserService
}

func NewUserController(users *service.UserService) *UserController {
	return &UserController{users: users}
}

func mapUserErr(err error) error {
	switch {
	case errors.Is(err, service.ErrUserNotFound):
		return apperror.NotFound("user not found")
	case errors.Is(err, service.ErrUserExists):
		return apperror.Conflict("user already exists")
	case errors.Is(err, service.ErrWeakPassword), errors.Is(err, service.ErrInvalidRole):
		return apperror.Validation(err.Error())
	}
	return err
}

func (c *UserController) List(ctx echo.Context) error {
	page, limit := parsePagination(ctx)
	users, total, err := c.users.List(ctx.Request().Context(), page, limit)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, dto.NewListResponse(dto.NewUserViews(users), len(users), total, page, limit))
}

func (c *UserController) Get(ctx echo.Context) error {
	id, err := parseID(ctx, "id")
	if err != nil {
		return err
	}

	user, err := c.users.Get(ctx.Request().Context(), id)
	if err != nil {
		return mapUserErr(err)
	}
	return ctx.JSON(http.StatusOK, dto.Response{Success: true, Data: dto.NewUserView(user)})
}

func (c *UserController) Create(ctx echo.Context) error {
	req, err := dto.NewCreateUserRequest(ctx)
	if err != nil {
		return apperror.Validation("invalid request body")
	}
	if err = req.Validate(); err != nil {
		return apperror.Validation(err.Error())
	}

	user, err := c.users.Create(ctx.Request().Context(), req.Name, req.Email, req.Password, req.Role)
	if err != nil {
		return mapUserErr(err)
	}

	logrus.WithFields(logrus.Fields{
		"user_id": user.ID,
		"email":   user.Email,
	}).Info("User created by admin")
	return ctx.JSON(http.StatusCreated, dto.Response{Success: true, Data: dto.NewUserView(user)})
}

func (c *UserController) Update(ctx echo.Context) error {
	id, err := parseID(ctx, "id")
	if err != nil {
		return err
	}

	req, err := dto.NewUpdateUserRequest(ctx)
	if err != nil {
		return apperror.Validation("invalid request body")
	}
	if err = req.Validate(); err != nil {
		return apperror.Validation(err.Error())
	}

	user, err := c.users.Update(ctx.Request().Context(), id, req.Name, req.Email, req.Role)
	if err != nil {
		return mapUserErr(err)
	}
	return ctx.JSON(http.StatusOK, dto.Response{Success: true, Data: dto.NewUserView(user)})
}

func (c *UserController) Delete(ctx echo.Context) error {
	id, err := parseID(ctx, "id")
	if err != nil {
		return err
	}

	if err := c.users.Delete(ctx.Request().Context(), id); err != nil {
		return mapUserErr(err)
	}

	logrus.WithField("user_id", id).Info("User deleted by admin")
	return ctx.JSON(http.StatusOK, dto.Response{Success: true, Data: struct{}{}})
}
