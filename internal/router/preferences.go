package router

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/mvidali/newsbrief/internal/apperr"
	"github.com/mvidali/newsbrief/internal/domain"
	"github.com/mvidali/newsbrief/internal/storage"
)

type PreferenceRouter struct {
	e     *echo.Echo
	prefs storage.PreferenceStore
}

func NewPreferenceRouter(e *echo.Echo, prefs storage.PreferenceStore) *PreferenceRouter {
	return &PreferenceRouter{
		e:     e,
		prefs: prefs,
	}
}

func (r *PreferenceRouter) Bind() {
	r.e.GET("/users/:id/preferences", r.listHandler)
	r.e.PUT("/users/:id/preferences", r.replaceHandler)
	r.e.DELETE("/users/:id/preferences/:topic_id", r.deleteHandler)
}

type preferenceRequest struct {
	TopicID uuid.UUID `json:"topicId"`
	Weight  float64   `json:"weight"`
}

func (r *PreferenceRouter) listHandler(c echo.Context) error {
	userID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return apperr.NewValidationWrap("invalid user id", err)
	}

	prefs, err := r.prefs.GetPreferences(c.Request().Context(), userID)
	if err != nil {
		return err
	}
	if prefs == nil {
		prefs = []domain.Preference{}
	}
	return c.JSON(http.StatusOK, prefs)
}

// replaceHandler saves the whole selection at once. The stored set is
// replaced, not merged, so deselected topics disappear.
func (r *PreferenceRouter) replaceHandler(c echo.Context) error {
	userID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return apperr.NewValidationWrap("invalid user id", err)
	}

	var body []preferenceRequest
	if err := c.Bind(&body); err != nil {
		return apperr.NewValidationWrap("invalid preference payload", err)
	}

	seen := make(map[uuid.UUID]struct{}, len(body))
	prefs := make([]domain.Preference, 0, len(body))
	for _, p := range body {
		if p.TopicID == uuid.Nil {
			return apperr.NewValidation("topicId is required")
		}
		if p.Weight < 0 {
			return apperr.NewValidation("weight must not be negative")
		}
		if _, dup := seen[p.TopicID]; dup {
			return apperr.NewValidation("duplicate topicId in payload")
		}
		seen[p.TopicID] = struct{}{}
		prefs = append(prefs, domain.Preference{
			UserID:  userID,
			TopicID: p.TopicID,
			Weight:  p.Weight,
		})
	}

	if err := r.prefs.ReplacePreferences(c.Request().Context(), userID, prefs); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

func (r *PreferenceRouter) deleteHandler(c echo.Context) error {
	userID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return apperr.NewValidationWrap("invalid user id", err)
	}
	topicID, err := uuid.Parse(c.Param("topic_id"))
	if err != nil {
		return apperr.NewValidationWrap("invalid topic id", err)
	}

	if err := r.prefs.DeletePreference(c.Request().Context(), userID, topicID); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}
