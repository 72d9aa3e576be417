package httpapi

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"github.com/i474232898/aqi-explorer/internal/airquality"
	"github.com/i474232898/aqi-explorer/internal/chart"
	"github.com/i474232898/aqi-explorer/internal/store"
	"github.com/i474232898/aqi-explorer/internal/viewport"
)

var validate = validator.New()

// ErrorHandler renders every error as {"error": true, "message": ...}.
func ErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	var fe *fiber.Error
	if errors.As(err, &fe) {
		code = fe.Code
	}
	return c.Status(code).JSON(fiber.Map{
		"error":   true,
		"message": err.Error(),
	})
}

// RegisterRoutes wires the HTTP handlers into the Fiber app.
func RegisterRoutes(app *fiber.App, service *airquality.Service, sessions *store.SessionStore, layout chart.Layout) {
	v1 := app.Group("/api/v1")

	v1.Get("/pollutants", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"pollutants": airquality.Pollutants})
	})

	v1.Get("/states", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"states": service.Dataset().UniqueStates()})
	})

	v1.Get("/states/:state/cities", func(c *fiber.Ctx) error {
		state := c.Params("state")
		return c.JSON(fiber.Map{
			"state":  state,
			"cities": service.Dataset().CitiesInState(state),
		})
	})

	v1.Get("/series", func(c *fiber.Ctx) error {
		q, err := parseSeriesQuery(c)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}

		points, err := service.Series(c.UserContext(), q.State, q.City, q.Pollutant)
		if err != nil {
			return serviceError(err)
		}

		return c.JSON(fiber.Map{
			"state":     q.State,
			"city":      q.City,
			"pollutant": q.Pollutant,
			"points":    points,
		})
	})

	v1.Get("/buckets", func(c *fiber.Ctx) error {
		q, err := parseSeriesQuery(c)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}
		boxOnly := c.QueryBool("boxplot", false)

		buckets, err := service.Buckets(c.UserContext(), q.State, q.City, q.Pollutant, boxOnly)
		if err != nil {
			return serviceError(err)
		}

		return c.JSON(fiber.Map{
			"state":     q.State,
			"city":      q.City,
			"pollutant": q.Pollutant,
			"boxplot":   boxOnly,
			"buckets":   buckets,
		})
	})

	v1.Get("/compare", func(c *fiber.Ctx) error {
		var q compareQuery
		if err := q.bind(c); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}

		aligned, err := service.Compare(c.UserContext(), q.Cities, q.Pollutant)
		if err != nil {
			return serviceError(err)
		}

		return c.JSON(fiber.Map{
			"pollutant": q.Pollutant,
			"dates":     airquality.UnionDates(aligned),
			"globalMax": airquality.GlobalMax(aligned),
			"labels":    aligned.Labels,
			"series":    aligned.Series,
		})
	})

	v1.Get("/slider", func(c *fiber.Ctx) error {
		axis := service.SliderAxis()
		labels := make([]string, len(axis))
		for i, m := range axis {
			labels[i] = m.String()
		}
		return c.JSON(fiber.Map{"months": labels})
	})

	v1.Post("/sessions", func(c *fiber.Ctx) error {
		sess, err := sessions.Create()
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "failed to create session")
		}

		var snap viewport.Snapshot
		_ = sess.With(func(ctrl *viewport.Controller) error {
			snap = ctrl.Snapshot()
			return nil
		})

		return c.Status(fiber.StatusCreated).JSON(fiber.Map{
			"id":     sess.ID,
			"layout": layout,
			"state":  snap,
		})
	})

	v1.Delete("/sessions/:id", func(c *fiber.Ctx) error {
		if err := sessions.Delete(c.Params("id")); err != nil {
			return serviceError(err)
		}
		return c.SendStatus(fiber.StatusNoContent)
	})

	v1.Post("/sessions/:id/gestures", func(c *fiber.Ctx) error {
		var req gestureRequest
		if err := c.BodyParser(&req); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "invalid gesture body")
		}
		if err := validate.Struct(req); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}

		sess, err := sessions.Get(c.Params("id"))
		if err != nil {
			return serviceError(err)
		}

		var snap viewport.Snapshot
		err = sess.With(func(ctrl *viewport.Controller) error {
			for _, g := range req.Gestures {
				if err := ctrl.Apply(g); err != nil {
					return err
				}
			}
			snap = ctrl.Snapshot()
			return nil
		})
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}

		return c.JSON(snap)
	})

	v1.Post("/sessions/:id/frame", func(c *fiber.Ctx) error {
		var sel chart.SelectionContext
		if err := c.BodyParser(&sel); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "invalid selection body")
		}
		if err := validate.Struct(sel); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}
		if err := sel.Validate(); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}

		sess, err := sessions.Get(c.Params("id"))
		if err != nil {
			return serviceError(err)
		}

		var snap viewport.Snapshot
		_ = sess.With(func(ctrl *viewport.Controller) error {
			snap = ctrl.Snapshot()
			return nil
		})

		frame, err := chart.Render(c.UserContext(), service, sel, snap, layout)
		if err != nil {
			return serviceError(err)
		}
		return c.JSON(frame)
	})
}

// serviceError maps domain errors onto HTTP errors.
func serviceError(err error) error {
	switch {
	case errors.Is(err, airquality.ErrNoSelection):
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	case errors.Is(err, airquality.ErrEmptySeries):
		return fiber.NewError(fiber.StatusNotFound, err.Error())
	case errors.Is(err, store.ErrSessionNotFound):
		return fiber.NewError(fiber.StatusNotFound, err.Error())
	default:
		return fiber.NewError(fiber.StatusInternalServerError, "failed to compute air quality data")
	}
}

// seriesQuery holds query parameters identifying one city and pollutant.
type seriesQuery struct {
	State     string `validate:"required"`
	City      string `validate:"required"`
	Pollutant airquality.Pollutant
}

func parseSeriesQuery(c *fiber.Ctx) (seriesQuery, error) {
	var q seriesQuery

	q.State = c.Query("state")
	q.City = c.Query("city")

	if err := validate.Struct(q); err != nil {
		return q, err
	}

	p, err := airquality.ParsePollutant(c.Query("pollutant"))
	if err != nil {
		return q, err
	}
	q.Pollutant = p

	return q, nil
}

// compareQuery holds query parameters for the comparison endpoint. Cities are
// given as repeated city=City,State parameters.
type compareQuery struct {
	Pollutant airquality.Pollutant
	Cities    []airquality.CitySelection `validate:"required,min=1,dive"`
}

func (q *compareQuery) bind(c *fiber.Ctx) error {
	p, err := airquality.ParsePollutant(c.Query("pollutant"))
	if err != nil {
		return err
	}
	q.Pollutant = p

	for _, raw := range c.Context().QueryArgs().PeekMulti("city") {
		sel, err := parseCitySelection(string(raw))
		if err != nil {
			return err
		}
		q.Cities = append(q.Cities, sel)
	}

	return validate.Struct(q)
}

// parseCitySelection splits "City,State" on its last comma.
func parseCitySelection(s string) (airquality.CitySelection, error) {
	i := strings.LastIndex(s, ",")
	if i < 0 {
		return airquality.CitySelection{}, fmt.Errorf("city %q must be formatted as City,State", s)
	}
	return airquality.CitySelection{
		City:  strings.TrimSpace(s[:i]),
		State: strings.TrimSpace(s[i+1:]),
	}, nil
}

type gestureRequest struct {
	Gestures []viewport.Gesture `json:"gestures" validate:"required,min=1,dive"`
}
