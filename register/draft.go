// Package register implements the multi-step registration wizard: account
// type selection, the nested client-type and company dialogs, live field
// validation and final submission.
package register

import (
	"github.com/logitrans/navigo-go/auth"
	"github.com/logitrans/navigo-go/company"
)

// UserType is the account type selected in the wizard.
type UserType string

const (
	UserTypeNone      UserType = ""
	UserTypeClient    UserType = "client"
	UserTypeShipper   UserType = "shipper"
	UserTypeTransport UserType = "transport"
)

// ClientType refines a client account: a private individual or a company.
type ClientType string

const (
	ClientTypeNone       ClientType = ""
	ClientTypeIndividual ClientType = "individual"
	ClientTypeCompany    ClientType = "company"
)

// Backend user role codes.
const (
	roleRegularUser = 1
	roleCompanyUser = 2
)

// PersonalInfo holds the free-text form fields of the registration form.
type PersonalInfo struct {
	FirstName   string
	LastName    string
	Email       string
	Password    string
	PhoneNumber string
}

// Draft is a read-only snapshot of the in-progress registration. It only
// exists in wizard state and is discarded after a submission attempt.
type Draft struct {
	PersonalInfo PersonalInfo
	UserType     UserType
	ClientType   ClientType
	Company      *company.Company
}

// NeedsCompany reports whether this draft cannot be submitted without a
// selected company: shippers and transport companies are always
// company-affiliated, clients only when they registered as a company.
func (d Draft) NeedsCompany() bool {
	switch d.UserType {
	case UserTypeShipper, UserTypeTransport:
		return true
	case UserTypeClient:
		return d.ClientType == ClientTypeCompany
	}
	return false
}

// NeedsClientType reports whether the client-type sub-selection is required.
func (d Draft) NeedsClientType() bool {
	return d.UserType == UserTypeClient
}

// UserCreateDto maps the draft onto the backend's registration contract. The
// company id, when present, is the backend-assigned one; drafts never carry
// locally fabricated ids.
func (d Draft) UserCreateDto() auth.UserCreateDto {
	role := roleRegularUser
	switch d.UserType {
	case UserTypeShipper, UserTypeTransport:
		role = roleCompanyUser
	}

	dto := auth.UserCreateDto{
		Email:       d.PersonalInfo.Email,
		Password:    d.PersonalInfo.Password,
		FirstName:   d.PersonalInfo.FirstName,
		LastName:    d.PersonalInfo.LastName,
		PhoneNumber: d.PersonalInfo.PhoneNumber,
		UserRole:    role,
	}
	if d.Company != nil && d.Company.ID != 0 {
		dto.CompanyID = &d.Company.ID
	}
	return dto
}

// CompanyTypeFor maps the selected account type onto the backend's company
// type enum, used when a new company is created from within the wizard.
func CompanyTypeFor(t UserType) company.Type {
	switch t {
	case UserTypeShipper:
		return company.TypeForwarder
	case UserTypeTransport:
		return company.TypeCarrier
	}
	return company.TypeClient
}
