package pagination

import (
	"github.com/gin-gonic/gin"

	"promoservice/internal/pkg/validator"
)

const (
	DefaultLimit = 10
	MaxLimit     = 100
)

// Page is a skip/limit window over a sorted result.
type Page struct {
	Limit int `form:"limit" validate:"min=1,max=100"`
	Skip  int `form:"skip" validate:"min=0"`
}

// FromQuery reads ?limit=&skip= and validates them. Missing values take the defaults.
func FromQuery(c *gin.Context) (Page, map[string]string) {
	p := Page{Limit: DefaultLimit}
	if err := c.ShouldBindQuery(&p); err != nil {
		return p, map[string]string{"query": "invalid"}
	}
	if errs := validator.Validate(&p); errs != nil {
		return p, errs
	}
	return p, nil
}
