// Package vehicle wraps the backend's fleet endpoints used by the
// vehicle-creation form.
package vehicle

import (
	"context"
	"fmt"

	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"
)

const (
	vehicleTypesPath = "/api/vehicletypes"
	locationsPath    = "/api/locations"
	vehiclesPath     = "/api/vehicles"
)

// Status mirrors the backend's vehicle status enum.
type Status int

const (
	StatusFree Status = iota
	StatusOnRoute
	StatusInService
	StatusUnavailable
)

func (s Status) String() string {
	switch s {
	case StatusFree:
		return "Free"
	case StatusOnRoute:
		return "On route"
	case StatusInService:
		return "In service"
	case StatusUnavailable:
		return "Unavailable"
	}
	return fmt.Sprintf("Status(%d)", int(s))
}

// VehicleType is a selectable vehicle category (truck, van, ...).
type VehicleType struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// Location is a depot or hub a vehicle can be stationed at.
type Location struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
	City string `json:"city"`
}

// Vehicle is a fleet record. Inspection/insurance dates and the current
// location are optional; Categories is a free-text, comma-separated list.
type Vehicle struct {
	ID                 int64   `json:"id"`
	CompanyID          int64   `json:"companyId"`
	VehicleTypeID      int64   `json:"vehicleTypeId"`
	RegistrationNumber string  `json:"registrationNumber"`
	CapacityKg         int     `json:"capacityKg"`
	ManufactureYear    int     `json:"manufactureYear"`
	VehicleStatus      Status  `json:"vehicleStatus"`
	LastInspectionDate string  `json:"lastInspectionDate,omitempty"`
	InsuranceExpiry    string  `json:"insuranceExpiry,omitempty"`
	CurrentLocationID  *int64  `json:"currentLocationId"`
	IsAvailable        bool    `json:"isAvailable"`
	Categories         *string `json:"categories"`
}

// CreateDto is the vehicle-creation contract; the same shape as Vehicle minus
// the backend-assigned id.
type CreateDto struct {
	CompanyID          int64   `json:"companyId"`
	VehicleTypeID      int64   `json:"vehicleTypeId"`
	RegistrationNumber string  `json:"registrationNumber"`
	CapacityKg         int     `json:"capacityKg"`
	ManufactureYear    int     `json:"manufactureYear"`
	VehicleStatus      Status  `json:"vehicleStatus"`
	LastInspectionDate string  `json:"lastInspectionDate,omitempty"`
	InsuranceExpiry    string  `json:"insuranceExpiry,omitempty"`
	CurrentLocationID  *int64  `json:"currentLocationId"`
	IsAvailable        bool    `json:"isAvailable"`
	Categories         *string `json:"categories"`
}

// FormData is everything the vehicle form needs before it can render.
type FormData struct {
	Types     []VehicleType
	Locations []Location
}

// Client is the subset of the API client the vehicle service needs.
type Client interface {
	Get(ctx context.Context, path string, out any) error
	Post(ctx context.Context, path string, body, out any) error
}

// Service is a thin wrapper over the vehicle endpoints.
type Service struct {
	client Client
}

// NewService creates a vehicle Service.
func NewService(client Client) (*Service, error) {
	if client == nil {
		return nil, errors.New("[vehicle.NewService] client is required")
	}
	return &Service{client: client}, nil
}

// Types fetches the selectable vehicle types.
func (s *Service) Types(ctx context.Context) ([]VehicleType, error) {
	var types []VehicleType
	if err := s.client.Get(ctx, vehicleTypesPath, &types); err != nil {
		return nil, errors.Wrap(err, "[Service.Types] fetch vehicle types")
	}
	return types, nil
}

// Locations fetches the selectable locations.
func (s *Service) Locations(ctx context.Context) ([]Location, error) {
	var locations []Location
	if err := s.client.Get(ctx, locationsPath, &locations); err != nil {
		return nil, errors.Wrap(err, "[Service.Locations] fetch locations")
	}
	return locations, nil
}

// LoadFormData fetches vehicle types and locations concurrently and joins
// both before returning, so the form renders with a complete picture or not
// at all.
func (s *Service) LoadFormData(ctx context.Context) (*FormData, error) {
	var data FormData

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		types, err := s.Types(gctx)
		if err != nil {
			return err
		}
		data.Types = types
		return nil
	})
	g.Go(func() error {
		locations, err := s.Locations(gctx)
		if err != nil {
			return err
		}
		data.Locations = locations
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return &data, nil
}

// Create persists a new vehicle.
func (s *Service) Create(ctx context.Context, dto CreateDto) (*Vehicle, error) {
	var created Vehicle
	if err := s.client.Post(ctx, vehiclesPath, dto, &created); err != nil {
		return nil, errors.Wrap(err, "[Service.Create] create vehicle")
	}
	return &created, nil
}

// CompanyVehicles fetches the fleet of a single company.
func (s *Service) CompanyVehicles(ctx context.Context, companyID int64) ([]Vehicle, error) {
	var vehicles []Vehicle
	if err := s.client.Get(ctx, fmt.Sprintf("%s/company/%d", vehiclesPath, companyID), &vehicles); err != nil {
		return nil, errors.Wrap(err, "[Service.CompanyVehicles] fetch company vehicles")
	}
	return vehicles, nil
}

// Validate checks a CreateDto against the form rules. It returns one message
// per failing field, keyed by the field name.
func Validate(dto CreateDto, currentYear int) map[string]string {
	errs := make(map[string]string)

	if dto.RegistrationNumber == "" {
		errs["registrationNumber"] = "Registration number is required"
	}
	if dto.VehicleTypeID == 0 {
		errs["vehicleTypeId"] = "Vehicle type is required"
	}
	if dto.CapacityKg <= 0 {
		errs["capacityKg"] = "Capacity must be greater than 0"
	}
	if dto.ManufactureYear < 1950 || dto.ManufactureYear > currentYear {
		errs["manufactureYear"] = "Manufacture year is not valid"
	}

	return errs
}
