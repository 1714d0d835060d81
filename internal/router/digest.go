package router

import (
	"net/http"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/mvidali/newsbrief/internal/apperr"
	"github.com/mvidali/newsbrief/internal/digest"
	"github.com/mvidali/newsbrief/internal/domain"
)

type DigestRouter struct {
	e       *echo.Echo
	service *digest.Service
}

func NewDigestRouter(e *echo.Echo, service *digest.Service) *DigestRouter {
	return &DigestRouter{
		e:       e,
		service: service,
	}
}

func (r *DigestRouter) Bind() {
	r.e.GET("/users/:id/digest", r.previewHandler)
}

type digestResponse struct {
	Items       []domain.DigestItem `json:"items"`
	IsEmpty     bool                `json:"isEmpty"`
	GeneratedAt time.Time           `json:"generatedAt"`
}

// previewHandler computes a digest on demand without sending anything. The
// optional hours parameter widens or narrows the recency window for one call.
func (r *DigestRouter) previewHandler(c echo.Context) error {
	userID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return apperr.NewValidationWrap("invalid user id", err)
	}

	window := r.service.Options().Window
	if hours := c.QueryParam("hours"); hours != "" {
		h, err := strconv.Atoi(hours)
		if err != nil || h < 1 {
			return apperr.NewValidation("hours must be a positive number")
		}
		window = time.Duration(h) * time.Hour
	}

	d, err := r.service.BuildForUserWindow(c.Request().Context(), userID, window)
	if err != nil {
		return err
	}

	items := d.Items
	if items == nil {
		items = []domain.DigestItem{}
	}
	return c.JSON(http.StatusOK, digestResponse{
		Items:       items,
		IsEmpty:     d.IsEmpty(),
		GeneratedAt: d.GeneratedAt,
	})
}
