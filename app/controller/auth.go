package controller

import (
	"errors"
	"net/http"
	"time"

	"github.com/huynhdieutuong/DevCamper-API/app/apperror"
	"github.com/huynhdieutuong/DevCamper-API/app/dto"
	"github.com/huynhdieutuong/DevCamper-API/app/entity"
	"github.com/huynhdieutuong/DevCamper-API/app/middleware"
	"github.com/huynhdieutuong/DevCamper-API/app/service"
	"github.com/huynhdieutuong/DevCamper-API/config"

	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"
)

type AuthController struct {
	authService service.AuthService
	tokens      *service.TokenService
	cfg         *config.Config
}

func NewAuthController(authService service.AuthService, tokens *service.TokenService, cfg *config.Config) *AuthController {
	return &AuthController{authService: authService, tokens: tokens, cfg: cfg}
}

// sendTokenResponse issues the session credential as an HTTP-only cookie and
// echoes it in the body. A session credential is only ever issued for a
// verified user (or by the confirmation flow that just verified one).
func (c *AuthController) sendTokenResponse(ctx echo.Context, status int, user *entity.User) error {
	token, err := c.tokens.IssueSessionToken(user)
	if err != nil {
		return err
	}

	ctx.SetCookie(&http.Cookie{
		Name:     middleware.SessionCookieName,
		Value:    token,
		Expires:  time.Now().Add(c.cfg.CookieExpire),
		HttpOnly: true,
		Path:     "/",
		Secure:   c.cfg.IsProduction(),
	})

	return ctx.JSON(status, dto.TokenResponse{Success: true, Token: token})
}

func (c *AuthController) Register(ctx echo.Context) error {
	req, err := dto.NewRegisterRequest(ctx)
	if err != nil {
		logrus.WithError(err).Debug("Failed to bind register request")
		return apperror.Validation("invalid request body")
	}
	if err = req.Validate(); err != nil {
		return apperror.Validation(err.Error())
	}

	logrus.WithField("email", req.Email).Info("Register request received")
	user, err := c.authService.Register(ctx.Request().Context(), req.Name, req.Email, req.Password, req.Role)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrUserExists):
			logrus.WithField("email", req.Email).Warn("Register failed: user already exists")
			return apperror.Conflict("user already exists")
		case errors.Is(err, service.ErrWeakPassword), errors.Is(err, service.ErrInvalidRole):
			return apperror.Validation(err.Error())
		case errors.Is(err, service.ErrEmailDelivery):
			return apperror.EmailDelivery("verification email could not be sent", err)
		}
		return err
	}

	logrus.WithFields(logrus.Fields{
		"user_id": user.ID,
		"email":   user.Email,
	}).Info("User registered")

	return ctx.JSON(http.StatusOK, dto.Response{
		Success: true,
		Data:    "A verification email has been sent to " + user.Email + ".",
	})
}

func (c *AuthController) ConfirmEmail(ctx echo.Context) error {
	rawToken := ctx.Param("token")
	if rawToken == "" {
		return apperror.InvalidToken()
	}

	logrus.Info("Confirmation request received")
	user, err := c.authService.ConfirmEmail(ctx.Request().Context(), rawToken)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidToken):
			logrus.Warn("Confirmation failed: invalid token")
			return apperror.InvalidToken()
		case errors.Is(err, service.ErrUserExists):
			return apperror.Conflict("email is already in use")
		}
		return err
	}

	logrus.WithField("user_id", user.ID).Info("Account confirmed")
	return c.sendTokenResponse(ctx, http.StatusOK, user)
}

func (c *AuthController) ResendConfirmation(ctx echo.Context) error {
	req, err := dto.NewForgotPasswordRequest(ctx)
	if err != nil {
		return apperror.Validation("invalid request body")
	}
	if err = req.Validate(); err != nil {
		return apperror.Validation(err.Error())
	}

	err = c.authService.ResendConfirmation(ctx.Request().Context(), req.Email)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrUserNotFound):
			return apperror.NotFound("there is no user with the email address " + req.Email)
		case errors.Is(err, service.ErrAlreadyVerified):
			return apperror.Validation("account is already verified")
		case errors.Is(err, service.ErrEmailDelivery):
			return apperror.EmailDelivery("verification email could not be sent", err)
		}
		return err
	}

	return ctx.JSON(http.StatusOK, dto.Response{
		Success: true,
		Data:    "A verification email has been sent to " + req.Email + ".",
	})
}

func (c *AuthController) Login(ctx echo.Context) error {
	req, err := dto.NewLoginRequest(ctx)
	if err != nil {
		logrus.WithError(err).Debug("Failed to bind login request")
		return apperror.Validation("invalid request body")
	}
	if err = req.Validate(); err != nil {
		return apperror.Validation(err.Error())
	}

	logrus.WithField("email", req.Email).Info("Login request received")
	user, err := c.authService.Login(ctx.Request().Context(), req.Email, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidCreds):
			logrus.WithField("email", req.Email).Warn("Login failed: invalid credentials")
			return apperror.InvalidCredentials()
		case errors.Is(err, service.ErrNotVerified):
			logrus.WithField("email", req.Email).Warn("Login failed: account not verified")
			return apperror.NotVerified()
		}
		return err
	}

	logrus.WithField("user_id", user.ID).Info("Login successful")
	return c.sendTokenResponse(ctx, http.StatusOK, user)
}

func (c *AuthController) Logout(ctx echo.Context) error {
	ctx.SetCookie(&http.Cookie{
		Name:     middleware.SessionCookieName,
		Value:    "",
		Expires:  time.Unix(0, 0),
		HttpOnly: true,
		Path:     "/",
	})
	return ctx.JSON(http.StatusOK, dto.Response{Success: true, Data: struct{}{}})
}

func (c *AuthController) GetMe(ctx echo.Context) error {
	user := middleware.UserFromContext(ctx)
	if user == nil {
		return apperror.Unauthorized("not authorized to access this route")
	}
	return ctx.JSON(http.StatusOK, dto.Response{Success: true, Data: dto.NewUserView(user)})
}

func (c *AuthController) UpdateDetails(ctx echo.Context) error {
	user := middleware.UserFromContext(ctx)
	if user == nil {
		return apperror.Unauthorized("not authorized to access this route")
	}

	req, err := dto.NewUpdateDetailsRequest(ctx)
	if err != nil {
		return apperror.Validation("invalid request body")
	}
	if err = req.Validate(); err != nil {
		return apperror.Validation(err.Error())
	}

	updated, err := c.authService.UpdateDetails(ctx.Request().Context(), user.ID, req.Name, req.Role)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrUserNotFound):
			return apperror.NotFound("user not found")
		case errors.Is(err, service.ErrInvalidRole):
			return apperror.Validation(err.Error())
		}
		return err
	}

	logrus.WithField("user_id", user.ID).Info("User details updated")
	return ctx.JSON(http.StatusOK, dto.Response{Success: true, Data: dto.NewUserView(updated)})
}

func (c *AuthController) UpdatePassword(ctx echo.Context) error {
	user := middleware.UserFromContext(ctx)
	if user == nil {
		return apperror.Unauthorized("not authorized to access this route")
	}

	req, err := dto.NewUpdatePasswordRequest(ctx)
	if err != nil {
		return apperror.Validation("invalid request body")
	}
	if err = req.Validate(); err != nil {
		return apperror.Validation(err.Error())
	}

	updated, err := c.authService.UpdatePassword(ctx.Request().Context(), user.ID, req.CurrentPassword, req.NewPassword)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrPasswordWrong):
			logrus.WithField("user_id", user.ID).Warn("Update password failed: current password mismatch")
			return apperror.New(apperror.KindInvalidCredentials, "current password is incorrect")
		case errors.Is(err, service.ErrWeakPassword):
			return apperror.Validation(err.Error())
		case errors.Is(err, service.ErrUserNotFound):
			return apperror.NotFound("user not found")
		}
		return err
	}

	logrus.WithField("user_id", user.ID).Info("Password updated")
	return c.sendTokenResponse(ctx, http.StatusOK, updated)
}

func (c *AuthController) UpdateEmail(ctx echo.Context) error {
	user := middleware.UserFromContext(ctx)
	if user == nil {
		return apperror.Unauthorized("not authorized to access this route")
	}

	req, err := dto.NewUpdateEmailRequest(ctx)
	if err != nil {
		return apperror.Validation("invalid request body")
	}
	if err = req.Validate(); err != nil {
		return apperror.Validation(err.Error())
	}

	err = c.authService.UpdateEmail(ctx.Request().Context(), user, req.NewEmail)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrSameEmail):
			return apperror.Validation("this is your current email")
		case errors.Is(err, service.ErrEmailDelivery):
			return apperror.EmailDelivery("verification email could not be sent", err)
		}
		return err
	}

	logrus.WithField("user_id", user.ID).Info("Email change requested")
	return ctx.JSON(http.StatusOK, dto.Response{
		Success: true,
		Data:    "A verification email has been sent to " + service.NormalizeEmail(req.NewEmail) + ".",
	})
}

func (c *AuthController) ForgotPassword(ctx echo.Context) error {
	req, err := dto.NewForgotPasswordRequest(ctx)
	if err != nil {
		return apperror.Validation("invalid request body")
	}
	if err = req.Validate(); err != nil {
		return apperror.Validation(err.Error())
	}

	logrus.WithField("email", req.Email).Info("Password reset requested")
	err = c.authService.ForgotPassword(ctx.Request().Context(), req.Email)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrUserNotFound):
			return apperror.NotFound("there is no user with the email address " + req.Email)
		case errors.Is(err, service.ErrEmailDelivery):
			return apperror.EmailDelivery("reset email could not be sent", err)
		}
		return err
	}

	return ctx.JSON(http.StatusOK, dto.Response{Success: true, Data: "Email sent"})
}

func (c *AuthController) ResetPassword(ctx echo.Context) error {
	rawToken := ctx.Param("resettoken")
	if rawToken == "" {
		return apperror.InvalidToken()
	}

	req, err := dto.NewResetPasswordRequest(ctx)
	if err != nil {
		return apperror.Validation("invalid request body")
	}
	if err = req.Validate(); err != nil {
		return apperror.Validation(err.Error())
	}

	user, err := c.authService.ResetPassword(ctx.Request().Context(), rawToken, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidToken):
			logrus.Warn("Reset password failed: invalid token")
			return apperror.InvalidToken()
		case errors.Is(err, service.ErrWeakPassword):
			return apperror.Validation(err.Error())
		}
		return err
	}

	logrus.WithField("user_id", user.ID).Info("Password reset successful")
	return c.sendTokenResponse(ctx, http.StatusOK, user)
}
