package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	mwauth "github.com/JoaoCurtarelli7/solucao-logistica-sub000/internal/middleware/auth"
)

const dateLayout = "2006-01-02"

func parseID(c echo.Context) (uint, error) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		return 0, echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	return uint(id), nil
}

func parseDate(s string) (time.Time, error) {
	return time.Parse(dateLayout, s)
}

func isDuplicate(err error) bool {
	return errors.Is(err, gorm.ErrDuplicatedKey)
}

func isNotFound(err error) bool {
	return errors.Is(err, gorm.ErrRecordNotFound)
}

func validationError(c echo.Context, errs ...string) error {
	return c.JSON(http.StatusBadRequest, echo.Map{
		"message": "dados inválidos",
		"errors":  errs,
	})
}

func actor(c echo.Context) *uint {
	if id, ok := mwauth.UserID(c); ok {
		return &id
	}
	return nil
}
