package dto

import (
	"errors"
	"strings"

	"github.com/labstack/echo/v4"
)

func bind[T any](ctx echo.Context) (*T, error) {
	var body T
	if err := ctx.Bind(&body); err != nil {
		return nil, err
	}
	return &body, nil
}

type RegisterRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

func NewRegisterRequest(ctx echo.Context) (*RegisterRequest, error) {
	return bind[RegisterRequest](ctx)
}

func (r *RegisterRequest) Validate() error {
	if strings.TrimSpace(r.Name) == "" || strings.TrimSpace(r.Email) == "" || strings.TrimSpace(r.Password) == "" {
		return errors.New("name, email and password are required")
	}
	return nil
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func NewLoginRequest(ctx echo.Context) (*LoginRequest, error) {
	return bind[LoginRequest](ctx)
}

func (r *LoginRequest) Validate() error {
	if strings.TrimSpace(r.Email) == "" || strings.TrimSpace(r.Password) == "" {
		return errors.New("please provide an email and password")
	}
	return nil
}

type UpdateDetailsRequest struct {
	Name string `json:"name"`
	Role string `json:"role"`
}

func NewUpdateDetailsRequest(ctx echo.Context) (*UpdateDetailsRequest, error) {
	return bind[UpdateDetailsRequest](ctx)
}

func (r *UpdateDetailsRequest) Validate() error {
	if strings.TrimSpace(r.Name) == "" && strings.TrimSpace(r.Role) == "" {
		return errors.New("please provide a name or role to update")
	}
	return nil
}

type UpdatePasswordRequest struct {
	CurrentPassword string `json:"currentPassword"`
	NewPassword     string `json:"newPassword"`
}

func NewUpdatePasswordRequest(ctx echo.Context) (*UpdatePasswordRequest, error) {
	return bind[UpdatePasswordRequest](ctx)
}

func (r *UpdatePasswordRequest) Validate() error {
	if strings.TrimSpace(r.CurrentPassword) == "" || strings.TrimSpace(r.NewPassword) == "" {
		return errors.New("please enter current password and new password")
	}
	return nil
}

type UpdateEmailRequest struct {
	NewEmail string `json:"newEmail"`
}

func NewUpdateEmailRequest(ctx echo.Context) (*UpdateEmailRequest, error) {
	return bind[UpdateEmailRequest](ctx)
}

func (r *UpdateEmailRequest) Validate() error {
	if strings.TrimSpace(r.NewEmail) == "" {
		return errors.New("please enter a new email")
	}
	return nil
}

type ForgotPasswordRequest struct {
	Email string `json:"email"`
}

func NewForgotPasswordRequest(ctx echo.Context) (*ForgotPasswordRequest, error) {
	return bind[ForgotPasswordRequest](ctx)
}

func (r *ForgotPasswordRequest) Validate() error {
	if strings.TrimSpace(r.Email) == "" {
		return errors.New("please provide an email")
	}
	return nil
}

type ResetPasswordRequest struct {
	Password string `json:"password"`
}

func NewResetPasswordRequest(ctx echo.Context) (*ResetPasswordRequest, error) {
	return bind[ResetPasswordRequest](ctx)
}

func (r *ResetPasswordRequest) Validate() error {
	if strings.TrimSpace(r.Password) == "" {
		return errors.New("please provide a new password")
	}
	return nil
}

type BootcampRequest struct {
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Website     string   `json:"website"`
	Phone       string   `json:"phone"`
	Email       string   `json:"email"`
	Address     string   `json:"address"`
	Careers     []string `json:"careers"`
	Housing     bool     `json:"housing"`
	AverageCost int64    `json:"averageCost"`
}

func NewBootcampRequest(ctx echo.Context) (*BootcampRequest, error) {
	return bind[BootcampRequest](ctx)
}

func (r *BootcampRequest) Validate() error {
	if strings.TrimSpace(r.Name) == "" {
		return errors.New("please add a name")
	}
	if len(r.Name) > 100 {
		return errors.New("name can not be more than 100 characters")
	}
	if strings.TrimSpace(r.Description) == "" {
		return errors.New("please add a description")
	}
	return nil
}

type CourseRequest struct {
	Title                string `json:"title"`
	Description          string `json:"description"`
	Weeks                int    `json:"weeks"`
	Tuition              int64  `json:"tuition"`
	MinimumSkill         string `json:"minimumSkill"`
	ScholarshipAvailable bool   `json:"scholarshipAvailable"`
}

func NewCourseRequest(ctx echo.Context) (*CourseRequest, error) {
	return bind[CourseRequest](ctx)
}

func (r *CourseRequest) Validate() error {
	if strings.TrimSpace(r.Title) == "" {
		return errors.New("please add a course title")
	}
	if strings.TrimSpace(r.Description) == "" {
		return errors.New("please add a description")
	}
	if r.Weeks < 0 || r.Tuition < 0 {
		return errors.New("weeks and tuition must not be negative")
	}
	return nil
}

type CreateUserRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

func NewCreateUserRequest(ctx echo.Context) (*CreateUserRequest, error) {
	return bind[CreateUserRequest](ctx)
}

func (r *CreateUserRequest) Validate() error {
	if strings.TrimSpace(r.Name) == "" || strings.TrimSpace(r.Email) == "" || strings.TrimSpace(r.Password) == "" {
		return errors.New("name, email and password are required")
	}
	return nil
}

type UpdateUserRequest struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  string `json:"role"`
}

func NewUpdateUserRequest(ctx echo.Context) (*UpdateUserRequest, error) {
	return bind[UpdateUserRequest](ctx)
}

func (r *UpdateUserRequest) Validate() error {
	if strings.TrimSpace(r.Name) == "" && strings.TrimSpace(r.Email) == "" && strings.TrimSpace(r.Role) == "" {
		return errors.New("please provide a field to update")
	}
	return nil
}
