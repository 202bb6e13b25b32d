package httpapi

import (
	"errors"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"github.com/i474232898/climatrack/internal/common"
	"github.com/i474232898/climatrack/internal/store"
	"github.com/i474232898/climatrack/internal/weather"
)

var validate = validator.New()

// RegisterRoutes wires the HTTP handlers into the Fiber app.
// maxUpload bounds the size of an uploaded CSV file.
func RegisterRoutes(app *fiber.App, service *weather.Service, maxUpload int64) {
	v1 := app.Group("/api/v1")

	v1.Post("/datasets", func(c *fiber.Ctx) error {
		fh, err := c.FormFile("file")
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "multipart field 'file' is required")
		}
		if !common.HasAnySuffix(fh.Filename, ".csv") {
			return fiber.NewError(fiber.StatusBadRequest, "uploaded file must have a .csv extension")
		}
		if maxUpload > 0 && fh.Size > maxUpload {
			return fiber.NewError(fiber.StatusRequestEntityTooLarge, "uploaded file is too large")
		}

		f, err := fh.Open()
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "could not read uploaded file")
		}
		defer f.Close()

		name := c.FormValue("name")
		if name == "" {
			name = fh.Filename
		}

		entry, err := service.IngestReader(name, f)
		if err != nil {
			var perr *weather.ParseError
			if errors.As(err, &perr) {
				return fiber.NewError(fiber.StatusBadRequest, perr.Error())
			}
			return fiber.NewError(fiber.StatusInternalServerError, "failed to load dataset")
		}

		return c.Status(fiber.StatusCreated).JSON(newEntryView(entry))
	})

	v1.Get("/datasets", func(c *fiber.Ctx) error {
		entries := service.List()
		views := make([]entryView, 0, len(entries))
		for _, e := range entries {
			views = append(views, newEntryView(e))
		}
		return c.JSON(fiber.Map{"datasets": views})
	})

	v1.Get("/datasets/:id", func(c *fiber.Ctx) error {
		entry, err := service.Get(c.Params("id"))
		if err != nil {
			return lookupError(err)
		}
		return c.JSON(newEntryView(entry))
	})

	v1.Get("/names/:name/latest", func(c *fiber.Ctx) error {
		entry, err := service.Latest(c.Params("name"))
		if err != nil {
			return lookupError(err)
		}
		return c.JSON(newEntryView(entry))
	})

	v1.Get("/datasets/:id/statistics", func(c *fiber.Ctx) error {
		entry, err := service.Get(c.Params("id"))
		if err != nil {
			return lookupError(err)
		}
		summary, err := entry.Dataset.Summary()
		if err != nil {
			return lookupError(err)
		}
		return c.JSON(summary)
	})

	v1.Get("/datasets/:id/records", func(c *fiber.Ctx) error {
		var q recordsQuery
		if err := c.QueryParser(&q); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "month and year must be integers")
		}
		if err := validate.Struct(q); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}

		entry, err := service.Get(c.Params("id"))
		if err != nil {
			return lookupError(err)
		}

		return c.JSON(fiber.Map{
			"id":      entry.ID,
			"month":   q.Month,
			"year":    q.Year,
			"records": q.apply(entry.Dataset),
		})
	})

	v1.Get("/datasets/:id/prediction", func(c *fiber.Ctx) error {
		prediction, err := service.Predict(c.Params("id"))
		if err != nil {
			return lookupError(err)
		}
		return c.JSON(prediction)
	})

	v1.Get("/datasets/:id/analysis", func(c *fiber.Ctx) error {
		var q analysisQuery
		if err := c.QueryParser(&q); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "bins must be an integer")
		}
		if err := validate.Struct(q); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}

		entry, err := service.Get(c.Params("id"))
		if err != nil {
			return lookupError(err)
		}
		analysis, err := weather.Analyze(entry.Dataset, q.Bins)
		if err != nil {
			return lookupError(err)
		}
		return c.JSON(analysis)
	})
}

// ErrorHandler renders every error as a JSON body with the matching status.
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

func lookupError(err error) error {
	switch {
	case errors.Is(err, store.ErrNotFound):
		return fiber.NewError(fiber.StatusNotFound, "no dataset with that identifier")
	case errors.Is(err, weather.ErrEmptyDataset):
		return fiber.NewError(fiber.StatusUnprocessableEntity, "dataset has no records")
	default:
		return fiber.NewError(fiber.StatusInternalServerError, "failed to query dataset")
	}
}

// entryView is the JSON shape of a stored dataset.
type entryView struct {
	ID       string             `json:"id"`
	Name     string             `json:"name"`
	Source   string             `json:"source"`
	LoadedAt time.Time          `json:"loadedAt"`
	Records  int                `json:"records"`
	Report   weather.LoadReport `json:"report"`
}

func newEntryView(e weather.Entry) entryView {
	return entryView{
		ID:       e.ID,
		Name:     e.Name,
		Source:   e.Source,
		LoadedAt: e.LoadedAt,
		Records:  e.Dataset.Len(),
		Report:   e.Report,
	}
}

// recordsQuery holds query parameters for the records endpoint.
// Zero means "no filter".
type recordsQuery struct {
	Month int `query:"month" validate:"omitempty,min=1,max=12"`
	Year  int `query:"year" validate:"omitempty,min=1"`
}

func (q recordsQuery) apply(ds *weather.Dataset) []weather.Record {
	switch {
	case q.Month != 0 && q.Year != 0:
		out := make([]weather.Record, 0)
		for _, r := range ds.FilterByMonth(q.Month) {
			if r.Date.Year() == q.Year {
				out = append(out, r)
			}
		}
		return out
	case q.Month != 0:
		return ds.FilterByMonth(q.Month)
	case q.Year != 0:
		return ds.FilterByYear(q.Year)
	default:
		return ds.Records()
	}
}

// analysisQuery holds query parameters for the analysis endpoint.
type analysisQuery struct {
	Bins int `query:"bins" validate:"omitempty,min=1,max=200"`
}
