package httpapi

import (
	"context"
	"errors"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"github.com/i474232898/weather-dashboard/internal/dashboard"
	"github.com/i474232898/weather-dashboard/internal/store"
	"github.com/i474232898/weather-dashboard/internal/weather"
)

var validate = validator.New()

// RegisterRoutes wires the HTTP handlers into the Fiber app.
func RegisterRoutes(app *fiber.App, dash *dashboard.Dashboard) {
	v1 := app.Group("/api/v1")

	v1.Get("/dashboard", func(c *fiber.Ctx) error {
		return c.JSON(dash.View())
	})

	v1.Get("/weather/current", func(c *fiber.Ctx) error {
		forecast, err := dash.Latest()
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				return fiber.NewError(fiber.StatusNotFound, "no forecast loaded yet")
			}
			return fiber.NewError(fiber.StatusInternalServerError, "failed to read forecast")
		}
		return c.JSON(forecast)
	})

	v1.Post("/dashboard/search", func(c *fiber.Ctx) error {
		var req searchRequest
		if err := req.bind(c); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}
		return respond(c, dash, dash.Search(c.UserContext(), req.Query))
	})

	v1.Post("/dashboard/locate", func(c *fiber.Ctx) error {
		var req locateRequest
		if err := c.BodyParser(&req); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
		}
		if err := req.check(); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}
		return respond(c, dash, dash.UseMyLocation(c.UserContext(), req.geolocator()))
	})

	v1.Post("/dashboard/refresh", func(c *fiber.Ctx) error {
		return respond(c, dash, dash.Refresh(c.UserContext()))
	})

	v1.Get("/conditions", func(c *fiber.Ctx) error {
		codes := weather.KnownCodes()
		out := make([]conditionResponse, 0, len(codes))
		for _, code := range codes {
			out = append(out, newConditionResponse(code))
		}
		return c.JSON(out)
	})

	v1.Get("/conditions/:code", func(c *fiber.Ctx) error {
		code, err := strconv.Atoi(c.Params("code"))
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "condition code must be an integer")
		}
		return c.JSON(newConditionResponse(code))
	})
}

// respond renders the dashboard after an action. Failures are already in the
// view's banners; the status only classifies them.
func respond(c *fiber.Ctx, dash *dashboard.Dashboard, err error) error {
	status := fiber.StatusOK
	switch {
	case errors.Is(err, dashboard.ErrSuperseded):
		status = fiber.StatusConflict
	case errors.Is(err, weather.ErrEmptyQuery), errors.Is(err, weather.ErrNoMatch),
		errors.Is(err, weather.ErrGeolocationUnsupported), errors.Is(err, weather.ErrGeolocationDenied),
		errors.Is(err, weather.ErrGeolocationFailed):
		status = fiber.StatusUnprocessableEntity
	case err != nil:
		status = fiber.StatusBadGateway
	}
	return c.Status(status).JSON(dash.View())
}

// searchRequest accepts the query from ?q= or a JSON body.
type searchRequest struct {
	Query string `json:"q"`
}

func (s *searchRequest) bind(c *fiber.Ctx) error {
	if q := c.Query("q"); q != "" {
		s.Query = q
		return nil
	}
	if len(c.Body()) == 0 {
		return nil
	}
	if err := c.BodyParser(s); err != nil {
		return errors.New("invalid request body")
	}
	return nil
}

// locateRequest carries the position a client reported, or the reason it could not.
type locateRequest struct {
	Latitude  *float64 `json:"latitude" validate:"omitempty,gte=-90,lte=90"`
	Longitude *float64 `json:"longitude" validate:"omitempty,gte=-180,lte=180"`
	Error     string   `json:"error" validate:"omitempty,oneof=denied failed unsupported"`
}

func (r locateRequest) check() error {
	if err := validate.Struct(r); err != nil {
		return err
	}
	if r.Error == "" && (r.Latitude == nil || r.Longitude == nil) {
		return errors.New("latitude and longitude are required unless error is set")
	}
	return nil
}

func (r locateRequest) geolocator() dashboard.Geolocator {
	if r.Error == "unsupported" {
		return nil
	}
	return devicePosition{req: r}
}

// devicePosition replays a client-reported position as a Geolocator.
type devicePosition struct {
	req locateRequest
}

func (d devicePosition) CurrentPosition(ctx context.Context) (float64, float64, error) {
	if err := ctx.Err(); err != nil {
		return 0, 0, err
	}
	switch d.req.Error {
	case "denied":
		return 0, 0, weather.ErrGeolocationDenied
	case "failed":
		return 0, 0, weather.ErrGeolocationFailed
	}
	return *d.req.Latitude, *d.req.Longitude, nil
}

type conditionResponse struct {
	Code    int             `json:"code"`
	Label   string          `json:"label"`
	Icon    string          `json:"icon"`
	Variant weather.Variant `json:"variant"`
}

func newConditionResponse(code int) conditionResponse {
	d := weather.Describe(code)
	return conditionResponse{Code: code, Label: d.Label, Icon: d.Icon, Variant: d.Variant}
}
