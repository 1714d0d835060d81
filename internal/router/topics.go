package router

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/mvidali/newsbrief/internal/apperr"
	"github.com/mvidali/newsbrief/internal/domain"
	"github.com/mvidali/newsbrief/internal/storage"
)

type TopicRouter struct {
	e      *echo.Echo
	topics storage.TopicReader
}

func NewTopicRouter(e *echo.Echo, topics storage.TopicReader) *TopicRouter {
	return &TopicRouter{
		e:      e,
		topics: topics,
	}
}

func (r *TopicRouter) Bind() {
	r.e.GET("/topics", r.listHandler)
	r.e.GET("/topics/:id", r.getHandler)
}

func (r *TopicRouter) listHandler(c echo.Context) error {
	topics, err := r.topics.ListTopics(c.Request().Context())
	if err != nil {
		return err
	}

	if category := c.QueryParam("category"); category != "" {
		filtered := make([]domain.Topic, 0, len(topics))
		for _, t := range topics {
			if t.Category == category {
				filtered = append(filtered, t)
			}
		}
		topics = filtered
	}

	return c.JSON(http.StatusOK, topics)
}

func (r *TopicRouter) getHandler(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return apperr.NewValidationWrap("invalid topic id", err)
	}

	topic, err := r.topics.GetTopic(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, topic)
}
