package entity

import (
	"database/sql"
	"time"
)

const (
	SkillBeginner     = "beginner"
	SkillIntermediate = "intermediate"
	SkillAdvanced     = "advanced"
)

type Bootcamp struct {
	ID          uint64
	Name        string
	Description string
	Website     sql.NullString
	Phone       sql.NullString
	Email       sql.NullString
	Address     sql.NullString
	Careers     []string
	Housing     bool
	AverageCost sql.NullInt64
	UserID      uint64
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

type Course struct {
	ID                   uint64
	BootcampID           uint64
	Title                string
	Description          string
	Weeks                int
	Tuition              int64
	MinimumSkill         string
	ScholarshipAvailable bool
	CreatedAt            time.Time
	UpdatedAt            time.Time
}
