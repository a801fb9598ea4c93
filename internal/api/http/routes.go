package httpapi

import (
	"bytes"
	"context"
	"errors"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"github.com/i474232898/temperature-heatmap/internal/dataset"
	"github.com/i474232898/temperature-heatmap/internal/heatmap"
	"github.com/i474232898/temperature-heatmap/internal/render"
	"github.com/i474232898/temperature-heatmap/internal/store"
)

var validate = validator.New()

const refreshTimeout = time.Minute

// RegisterRoutes wires the HTTP handlers into the Fiber app.
func RegisterRoutes(app *fiber.App, service *dataset.Service) {
	v1 := app.Group("/api/v1")

	v1.Get("/dataset", func(c *fiber.Ctx) error {
		snapshot, err := service.Latest()
		if err != nil {
			return mapError(err)
		}
		return c.JSON(snapshot.Summarize())
	})

	v1.Post("/dataset/refresh", func(c *fiber.Ctx) error {
		ctx, cancel := context.WithTimeout(context.Background(), refreshTimeout)
		defer cancel()

		snapshot, err := service.FetchAndStore(ctx)
		if err != nil {
			return fiber.NewError(fiber.StatusBadGateway, "failed to refresh dataset: "+err.Error())
		}
		return c.Status(fiber.StatusCreated).JSON(snapshot.Summarize())
	})

	v1.Get("/chart", func(c *fiber.Ctx) error {
		model, err := service.Chart()
		if err != nil {
			return mapError(err)
		}
		return c.JSON(model)
	})

	v1.Get("/chart/cell", func(c *fiber.Ctx) error {
		q, err := parseCellQuery(c)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}

		cell, err := service.Cell(q.Year, q.Month)
		if err != nil {
			return mapError(err)
		}
		return c.JSON(fiber.Map{
			"cell":    cell,
			"tooltip": cell.Tooltip(),
		})
	})

	v1.Get("/chart/legend", func(c *fiber.Ctx) error {
		model, err := service.Chart()
		if err != nil {
			return mapError(err)
		}
		return c.JSON(model.Legend)
	})

	v1.Get("/chart.svg", func(c *fiber.Ctx) error {
		model, err := service.Chart()
		if err != nil {
			return mapError(err)
		}
		var buf bytes.Buffer
		if err := render.SVG(&buf, model); err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "failed to render chart")
		}
		c.Set(fiber.HeaderContentType, "image/svg+xml")
		return c.Send(buf.Bytes())
	})

	v1.Get("/chart.png", func(c *fiber.Ctx) error {
		model, err := service.Chart()
		if err != nil {
			return mapError(err)
		}
		var buf bytes.Buffer
		if err := render.PNG(&buf, model); err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "failed to render chart")
		}
		c.Set(fiber.HeaderContentType, "image/png")
		return c.Send(buf.Bytes())
	})
}

// mapError translates service errors into HTTP errors.
func mapError(err error) error {
	switch {
	case errors.Is(err, store.ErrNotFound):
		return fiber.NewError(fiber.StatusNotFound, "no dataset loaded yet")
	case errors.Is(err, dataset.ErrCellNotFound):
		return fiber.NewError(fiber.StatusNotFound, "no data for requested year and month")
	case errors.Is(err, heatmap.ErrMalformedRecord),
		errors.Is(err, heatmap.ErrOutOfRange),
		errors.Is(err, heatmap.ErrInvalidDomain):
		return fiber.NewError(fiber.StatusInternalServerError, "failed to build chart: "+err.Error())
	default:
		return fiber.NewError(fiber.StatusInternalServerError, "failed to load chart")
	}
}

// cellQuery holds query parameters identifying one cell.
type cellQuery struct {
	Year  int
	Month int `validate:"min=1,max=12"`
}

func parseCellQuery(c *fiber.Ctx) (cellQuery, error) {
	var q cellQuery

	yearStr := c.Query("year")
	monthStr := c.Query("month")
	if yearStr == "" || monthStr == "" {
		return q, errors.New("year and month query parameters are required")
	}

	year, err := strconv.Atoi(yearStr)
	if err != nil {
		return q, errors.New("year must be an integer")
	}
	month, err := strconv.Atoi(monthStr)
	if err != nil {
		return q, errors.New("month must be an integer")
	}
	q.Year, q.Month = year, month

	if err := validate.Struct(q); err != nil {
		return q, err
	}
	return q, nil
}
