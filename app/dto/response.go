package dto

import (
	"time"

	"github.com/huynhdieutuong/DevCamper-API/app/entity"
)

type Response struct {
	Success bool `json:"success"`
	Data    any  `json:"data"`
}

type TokenResponse struct {
	Success bool   `json:"success"`
	Token   string `json:"token"`
}

type Page struct {
	Page  int `json:"page"`
	Limit int `json:"limit"`
}

type Pagination struct {
	Next *Page `json:"next,omitempty"`
	Prev *Page `json:"prev,omitempty"`
}

type ListResponse struct {
	Success    bool       `json:"success"`
	Count      int        `json:"count"`
	Pagination Pagination `json:"pagination"`
	Data       any        `json:"data"`
}

func NewListResponse(data any, count, total, page, limit int) *ListResponse {
	resp := &ListResponse{Success: true, Count: count, Data: data}
	if page*limit < total {
		resp.Pagination.Next = &Page{Page: page + 1, Limit: limit}
	}
	if page > 1 {
		resp.Pagination.Prev = &Page{Page: page - 1, Limit: limit}
	}
	return resp
}

// UserView is the safe serialization of a user; the password hash and reset
// fields never appear in a response.
type UserView struct {
	ID         uint64    `json:"id"`
	Name       string    `json:"name"`
	Email      string    `json:"email"`
	Role       string    `json:"role"`
	IsVerified bool      `json:"isVerified"`
	CreatedAt  time.Time `json:"createdAt"`
}

func NewUserView(user *entity.User) *UserView {
	return &UserView{
		ID:         user.ID,
		Name:       user.Name,
		Email:      user.Email,
		Role:       user.Role,
		IsVerified: user.IsVerified,
		CreatedAt:  user.CreatedAt,
	}
}

func NewUserViews(users []*entity.User) []*UserView {
	views := make([]*UserView, 0, len(users))
	for _, user := range users {
		views = append(views, NewUserView(user))
	}
	return views
}

type BootcampView struct {
	ID          uint64    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Website     string    `json:"website,omitempty"`
	Phone       string    `json:"phone,omitempty"`
	Email       string    `json:"email,omitempty"`
	Address     string    `json:"address,omitempty"`
	Careers     []string  `json:"careers"`
	Housing     bool      `json:"housing"`
	AverageCost int64     `json:"averageCost,omitempty"`
	UserID      uint64    `json:"userId"`
	CreatedAt   time.Time `json:"createdAt"`
}

func NewBootcampView(b *entity.Bootcamp) *BootcampView {
	careers := b.Careers
	if careers == nil {
		careers = []string{}
	}
	return &BootcampView{
		ID:          b.ID,
		Name:        b.Name,
		Description: b.Description,
		Website:     b.Website.String,
		Phone:       b.Phone.String,
		Email:       b.Email.String,
		Address:     b.Address.String,
		Careers:     careers,
		Housing:     b.Housing,
		AverageCost: b.AverageCost.Int64,
		UserID:      b.UserID,
		CreatedAt:   b.CreatedAt,
	}
}

func NewBootcampViews(bootcamps []*entity.Bootcamp) []*BootcampView {
	views := make([]*BootcampView, 0, len(bootcamps))
	for _, b := range bootcamps {
		views = append(views, NewBootcampView(b))
	}
	return views
}

type CourseView struct {
	ID                   uint64    `json:"id"`
	BootcampID           uint64    `json:"bootcampId"`
	Title                string    `json:"title"`
	Description          string    `json:"description"`
	Weeks                int       `json:"weeks"`
	Tuition              int64     `json:"tuition"`
	MinimumSkill         string    `json:"minimumSkill"`
	ScholarshipAvailable bool      `json:"scholarshipAvailable"`
	CreatedAt            time.Time `json:"createdAt"`
}

func NewCourseView(c *entity.Course) *CourseView {
	return &CourseView{
		ID:                   c.ID,
		BootcampID:           c.BootcampID,
		Title:                c.Title,
		Description:          c.Description,
		Weeks:                c.Weeks,
		Tuition:              c.Tuition,
		MinimumSkill:         c.MinimumSkill,
		ScholarshipAvailable: c.ScholarshipAvailable,
		CreatedAt:            c.CreatedAt,
	}
}

func NewCourseViews(courses []*entity.Course) []*CourseView {
	views := make([]*CourseView, 0, len(courses))
	for _, c := range courses {
		views = append(views, NewCourseView(c))
	}
	return views
}
