// Package company wraps the backend's company resource: PIB search, creation
// and lookups. Companies selected during registration must carry a
// backend-assigned id, so creation always round-trips through the API.
package company

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"

	"github.com/pkg/errors"

	"github.com/logitrans/navigo-go/api"
)

const companiesPath = "/api/company"

// Type categorizes a company on the platform.
type Type int

const (
	TypeClient    Type = 1
	TypeForwarder Type = 2
	TypeCarrier   Type = 3
)

// Company is a company record as returned by the backend. A zero ID means the
// record has not been persisted.
type Company struct {
	ID          int64  `json:"id"`
	PIB         string `json:"pib"`
	Name        string `json:"name"`
	Address     string `json:"address"`
	Email       string `json:"email"`
	Website     string `json:"website,omitempty"`
	Description string `json:"description,omitempty"`
	CompanyType Type   `json:"companyType,omitempty"`
}

// CreateDto is the company-creation contract.
type CreateDto struct {
	PIB         string `json:"pib"`
	Name        string `json:"name"`
	Address     string `json:"address"`
	Email       string `json:"email"`
	Website     string `json:"website,omitempty"`
	Description string `json:"description,omitempty"`
	CompanyType Type   `json:"companyType"`
}

// Client is the subset of the API client the company service needs.
type Client interface {
	Get(ctx context.Context, path string, out any) error
	Post(ctx context.Context, path string, body, out any) error
}

// SearchResult distinguishes "no companies matched" (Success with an empty
// slice) from "the search itself failed" (Success false). Callers must not
// infer one from the other.
type SearchResult struct {
	Success   bool
	Message   string
	Companies []Company
}

// CreateResult carries the persisted company with its backend-assigned id.
type CreateResult struct {
	Success bool
	Message string
	Company *Company
}

// ListResult is the outcome of a multi-company fetch.
type ListResult struct {
	Success   bool
	Message   string
	Companies []Company
}

// GetResult is the outcome of a single-company fetch.
type GetResult struct {
	Success bool
	Message string
	Company *Company
}

// Service is a thin CRUD wrapper over the company endpoints.
type Service struct {
	client Client
}

// NewService creates a company Service.
func NewService(client Client) (*Service, error) {
	if client == nil {
		return nil, errors.New("[company.NewService] client is required")
	}
	return &Service{client: client}, nil
}

// SearchByPIB looks companies up by their tax identification number.
func (s *Service) SearchByPIB(ctx context.Context, pib string) SearchResult {
	var companies []Company
	if err := s.client.Get(ctx, fmt.Sprintf("%s/search?pib=%s", companiesPath, url.QueryEscape(pib)), &companies); err != nil {
		return SearchResult{Success: false, Message: resultMessage(err, "Company search failed.")}
	}
	return SearchResult{Success: true, Companies: companies}
}

// Create persists a new company and returns it with its assigned id.
func (s *Service) Create(ctx context.Context, dto CreateDto) CreateResult {
	var resp createResponse
	if err := s.client.Post(ctx, companiesPath, dto, &resp); err != nil {
		return CreateResult{Success: false, Message: resultMessage(err, "Failed to create company.")}
	}

	message := resp.Message
	if message == "" {
		message = "Company created successfully."
	}
	return CreateResult{Success: true, Message: message, Company: &resp.Company}
}

// GetAll fetches every company visible to the caller.
func (s *Service) GetAll(ctx context.Context) ListResult {
	var companies []Company
	if err := s.client.Get(ctx, companiesPath, &companies); err != nil {
		return ListResult{Success: false, Message: resultMessage(err, "Failed to fetch companies.")}
	}
	return ListResult{Success: true, Companies: companies}
}

// GetByID fetches a single company.
func (s *Service) GetByID(ctx context.Context, id int64) GetResult {
	var c Company
	if err := s.client.Get(ctx, fmt.Sprintf("%s/%d", companiesPath, id), &c); err != nil {
		return GetResult{Success: false, Message: resultMessage(err, "Failed to fetch company.")}
	}
	return GetResult{Success: true, Company: &c}
}

// createResponse accepts either a bare company or a {company, message}
// envelope, depending on the backend version.
type createResponse struct {
	Company Company
	Message string
}

func (r *createResponse) UnmarshalJSON(data []byte) error {
	var envelope struct {
		Company *Company `json:"company"`
		Message string   `json:"message"`
	}
	if err := json.Unmarshal(data, &envelope); err == nil && envelope.Company != nil {
		r.Company = *envelope.Company
		r.Message = envelope.Message
		return nil
	}
	return json.Unmarshal(data, &r.Company)
}

func resultMessage(err error, fallback string) string {
	var statusErr *api.StatusError
	if errors.As(err, &statusErr) {
		return statusErr.Error()
	}
	return fallback
}
