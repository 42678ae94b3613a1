package http

import (
	"net/http"
	"time"

	"pickup/internal/core/application/usecases/commands"
	"pickup/internal/core/application/usecases/queries"
	"pickup/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

type createJourneyRequest struct {
	DepartureCountry      string `json:"departure_country"`
	DepartureCity         string `json:"departure_city"`
	ArrivalCountry        string `json:"arrival_country"`
	ArrivalCity           string `json:"arrival_city"`
	DepartureDate         string `json:"departure_date"`
	ArrivalDate           string `json:"arrival_date"`
	LuggageWeightCapacity string `json:"luggage_weight_capacity"`
}

func parseDate(name, value string) (time.Time, error) {
	if value == "" {
		return time.Time{}, errs.NewValueIsRequiredError(name)
	}
	date, err := time.Parse(time.DateOnly, value)
	if err != nil {
		return time.Time{}, errs.NewValueIsInvalidErrorWithCause(name, err)
	}
	return date, nil
}

// CreateJourney handles POST /api/v1/travel-journeys.
func (s *Server) CreateJourney(c echo.Context) error {
	userID, err := currentUser(c)
	if err != nil {
		return err
	}
	var req createJourneyRequest
	if err = bindBody(c, &req); err != nil {
		return err
	}

	route, err := buildRoute(req.DepartureCountry, req.DepartureCity, req.ArrivalCountry, req.ArrivalCity)
	if err != nil {
		return err
	}
	departure, err := parseDate("departure_date", req.DepartureDate)
	if err != nil {
		return err
	}
	arrival, err := parseDate("arrival_date", req.ArrivalDate)
	if err != nil {
		return err
	}

	cmd, err := commands.NewCreateJourneyCommand(userID, route, departure, arrival, req.LuggageWeightCapacity)
	if err != nil {
		return err
	}
	created, err := s.handlers.CreateJourney.Handle(c.Request().Context(), cmd)
	if err != nil {
		return err
	}
	return respond(c, http.StatusCreated, "Journey created", presentJourney(created))
}

// ListActiveJourneys handles GET /api/v1/travel-journeys.
func (s *Server) ListActiveJourneys(c echo.Context) error {
	userID, err := currentUser(c)
	if err != nil {
		return err
	}
	query, err := queries.NewRecipientQuery(userID)
	if err != nil {
		return err
	}

	journeys, err := s.handlers.ListActiveJourneys.Handle(c.Request().Context(), query)
	if err != nil {
		return err
	}
	return ok(c, journeys)
}
