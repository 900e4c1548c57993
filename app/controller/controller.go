package controller

import (
	"strconv"

	"github.com/huynhdieutuong/DevCamper-API/app/apperror"

	"github.com/labstack/echo/v4"
)

const (
	defaultPageLimit = 25
	maxPageLimit     = 100
)

func parsePagination(ctx echo.Context) (page, limit int) {
	page, _ = strconv.Atoi(ctx.QueryParam("page"))
	if page < 1 {
		page = 1
	}
	limit, _ = strconv.Atoi(ctx.QueryParam("limit"))
	if limit < 1 {
		limit = defaultPageLimit
	}
	if limit > maxPageLimit {
		limit = maxPageLimit
	}
	return page, limit
}

func parseID(ctx echo.Context, name string) (uint64, error) {
	id, err := strconv.ParseUint(ctx.Param(name), 10, 64)
	if err != nil || id == 0 {
		return 0, apperror.Validation("invalid " + name)
	}
	return id, nil
}
