package register

import (
	"context"
	"time"

	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"

	"github.com/logitrans/navigo-go/auth"
	"github.com/logitrans/navigo-go/company"
)

// Dialog identifies which sub-dialog of the wizard is open.
type Dialog int

const (
	DialogNone Dialog = iota
	DialogClientType
	DialogCompany
)

// CompanyStep is the internal step of the company dialog.
type CompanyStep int

const (
	StepSearch CompanyStep = iota
	StepAdd
)

// SearchOutcome distinguishes the three results of a company search. Zero
// results offers the add-company path; a failed search does not.
type SearchOutcome int

const (
	SearchNotAsked SearchOutcome = iota
	SearchFound
	SearchNoResults
	SearchFailed
)

const loginRoute = "/login"

// defaultRedirectDelay gives the user time to read the confirmation message
// before the wizard navigates away.
const defaultRedirectDelay = 2 * time.Second

// Registrar is the slice of the auth service the wizard submits through.
type Registrar interface {
	Register(ctx context.Context, user auth.UserCreateDto) auth.Result
}

// CompanyDirectory is the slice of the company service the company dialog
// uses.
type CompanyDirectory interface {
	SearchByPIB(ctx context.Context, pib string) company.SearchResult
	Create(ctx context.Context, dto company.CreateDto) company.CreateResult
}

// SubmitResult is the outcome of a submission attempt. Errors lists the local
// blockers when the draft did not pass the client-side checks.
type SubmitResult struct {
	Success bool
	Message string
	Errors  []string
}

// Controller drives the registration wizard. All state transitions go through
// its methods, so combinations the UI cannot produce (a client type on a
// shipper draft, a company without a backend id) stay unreachable.
type Controller struct {
	registrar     Registrar
	companies     CompanyDirectory
	navigate      func(route string)
	redirectDelay time.Duration

	personal      PersonalInfo
	validations   FieldValidations
	userType      UserType
	clientType    ClientType
	selected      *company.Company
	dialog        Dialog
	step          CompanyStep
	searchOutcome SearchOutcome
	searchResults []company.Company
}

// ControllerOption modifies a Controller instance.
type ControllerOption func(*Controller)

// WithNavigator sets the function invoked to change routes after a successful
// submission.
func WithNavigator(navigate func(route string)) ControllerOption {
	return func(c *Controller) {
		c.navigate = navigate
	}
}

// WithRedirectDelay overrides the post-submission redirect delay (primarily
// for testing).
func WithRedirectDelay(d time.Duration) ControllerOption {
	return func(c *Controller) {
		c.redirectDelay = d
	}
}

// NewController creates a wizard controller.
func NewController(registrar Registrar, companies CompanyDirectory, options ...ControllerOption) (*Controller, error) {
	if registrar == nil {
		return nil, errors.New("[NewController] registrar is required")
	}
	if companies == nil {
		return nil, errors.New("[NewController] company directory is required")
	}

	controller := &Controller{
		registrar:     registrar,
		companies:     companies,
		navigate:      func(string) {},
		redirectDelay: defaultRedirectDelay,
		validations:   make(FieldValidations),
	}

	for _, opt := range options {
		opt(controller)
	}

	return controller, nil
}

// UpdateField stores a form field value and recomputes all field validations,
// mirroring the per-keystroke validation of the form.
func (c *Controller) UpdateField(field, value string) error {
	switch field {
	case FieldFirstName:
		c.personal.FirstName = value
	case FieldLastName:
		c.personal.LastName = value
	case FieldEmail:
		c.personal.Email = value
	case FieldPassword:
		c.personal.Password = value
	case FieldPhoneNumber:
		c.personal.PhoneNumber = value
	default:
		return errors.Errorf("[Controller.UpdateField] unknown field %q", field)
	}

	c.validations = ValidatePersonalInfo(c.personal)
	return nil
}

// Validations returns the latest per-field validation state.
func (c *Controller) Validations() FieldValidations {
	return c.validations
}

// Draft returns a snapshot of the in-progress registration.
func (c *Controller) Draft() Draft {
	return Draft{
		PersonalInfo: c.personal,
		UserType:     c.userType,
		ClientType:   c.clientType,
		Company:      c.selected,
	}
}

// Dialog returns the currently open sub-dialog.
func (c *Controller) Dialog() Dialog {
	return c.dialog
}

// Step returns the current step of the company dialog.
func (c *Controller) Step() CompanyStep {
	return c.step
}

// SearchResults returns the companies found by the last search.
func (c *Controller) SearchResults() []company.Company {
	return c.searchResults
}

// LastSearchOutcome returns the outcome of the last company search.
func (c *Controller) LastSearchOutcome() SearchOutcome {
	return c.searchOutcome
}

// SelectUserType switches the account type. Any previously chosen client type
// and company are discarded: switching roles never carries sub-selections
// over. Clients get the client-type dialog; shippers and transport companies
// go straight to the company dialog.
func (c *Controller) SelectUserType(t UserType) {
	c.clientType = ClientTypeNone
	c.selected = nil
	c.resetCompanyDialog()
	c.userType = t

	switch t {
	case UserTypeClient:
		c.dialog = DialogClientType
	case UserTypeShipper, UserTypeTransport:
		c.dialog = DialogCompany
	default:
		c.dialog = DialogNone
	}
}

// SelectClientType resolves the client-type dialog. Individuals are done;
// company clients continue into the company dialog.
func (c *Controller) SelectClientType(t ClientType) error {
	if c.dialog != DialogClientType {
		return errors.New("[Controller.SelectClientType] client type dialog is not open")
	}

	c.clientType = t
	if t == ClientTypeCompany {
		c.dialog = DialogCompany
		return nil
	}
	c.dialog = DialogNone
	return nil
}

// CancelDialog closes the open sub-dialog without resolving it.
func (c *Controller) CancelDialog() {
	c.dialog = DialogNone
	c.resetCompanyDialog()
}

// SearchCompany looks up companies by PIB. Zero results and a failed search
// are distinct outcomes: only the former offers the add-company step.
func (c *Controller) SearchCompany(ctx context.Context, pib string) SearchOutcome {
	if c.dialog != DialogCompany || c.step != StepSearch {
		return SearchNotAsked
	}

	result := c.companies.SearchByPIB(ctx, pib)
	if !result.Success {
		log.Debug().Str("pib", pib).Str("message", result.Message).Msg("company search failed")
		c.searchResults = nil
		c.searchOutcome = SearchFailed
		return SearchFailed
	}

	c.searchResults = result.Companies
	if len(result.Companies) == 0 {
		c.searchOutcome = SearchNoResults
		return SearchNoResults
	}
	c.searchOutcome = SearchFound
	return SearchFound
}

// BeginAddCompany moves the company dialog to the creation form. It is only
// offered after a search that succeeded with zero results.
func (c *Controller) BeginAddCompany() error {
	if c.dialog != DialogCompany {
		return errors.New("[Controller.BeginAddCompany] company dialog is not open")
	}
	if c.searchOutcome != SearchNoResults {
		return errors.New("[Controller.BeginAddCompany] add company is only offered after a search with no results")
	}

	c.step = StepAdd
	c.searchResults = nil
	return nil
}

// BackToSearch returns from the creation form to the search step.
func (c *Controller) BackToSearch() {
	if c.dialog == DialogCompany {
		c.step = StepSearch
	}
}

// ChooseCompany resolves the company dialog with an existing company. The
// record must carry a backend-assigned id.
func (c *Controller) ChooseCompany(selected company.Company) error {
	if c.dialog != DialogCompany {
		return errors.New("[Controller.ChooseCompany] company dialog is not open")
	}
	if selected.ID == 0 {
		return errors.New("[Controller.ChooseCompany] company has no backend-assigned id")
	}

	c.selected = &selected
	c.dialog = DialogNone
	c.resetCompanyDialog()
	return nil
}

// CreateCompany persists a new company through the backend and, on success,
// resolves the dialog with the created record. The company type is derived
// from the selected account type.
func (c *Controller) CreateCompany(ctx context.Context, dto company.CreateDto) company.CreateResult {
	if c.dialog != DialogCompany || c.step != StepAdd {
		return company.CreateResult{Success: false, Message: "Company creation form is not open"}
	}

	dto.CompanyType = CompanyTypeFor(c.userType)
	result := c.companies.Create(ctx, dto)
	if !result.Success {
		return result
	}
	if result.Company == nil || result.Company.ID == 0 {
		return company.CreateResult{Success: false, Message: "Company must be properly saved before registration"}
	}

	c.selected = result.Company
	c.dialog = DialogNone
	c.resetCompanyDialog()
	return result
}

// Blockers returns every reason the draft cannot be submitted yet. An empty
// slice means submission may proceed.
func (c *Controller) Blockers() []string {
	var blockers []string
	draft := c.Draft()

	if !c.validations.AllValid() {
		blockers = append(blockers, "Please correct all form validation errors")
	}
	if !c.allFilled() {
		blockers = append(blockers, "Please fill in all required fields")
	}
	if draft.NeedsCompany() && c.selected == nil {
		blockers = append(blockers, "Please select or add a company")
	}
	if draft.NeedsCompany() && c.selected != nil && c.selected.ID == 0 {
		blockers = append(blockers, "Company must be properly saved before registration")
	}
	if draft.NeedsClientType() && c.clientType == ClientTypeNone {
		blockers = append(blockers, "Please select client type")
	}

	return blockers
}

// Submit runs the local checks and, when they pass, maps the draft onto the
// backend contract and registers the user. On success the wizard schedules a
// redirect to the login route after a short delay; on backend failure the
// draft stays intact for correction.
func (c *Controller) Submit(ctx context.Context) SubmitResult {
	if blockers := c.Blockers(); len(blockers) > 0 {
		return SubmitResult{
			Success: false,
			Message: "Please fill in all fields correctly and complete all required selections",
			Errors:  blockers,
		}
	}

	result := c.registrar.Register(ctx, c.Draft().UserCreateDto())
	if !result.Success {
		return SubmitResult{Success: false, Message: result.Message}
	}

	c.reset()
	navigate := c.navigate
	time.AfterFunc(c.redirectDelay, func() { navigate(loginRoute) })

	return SubmitResult{Success: true, Message: result.Message}
}

func (c *Controller) allFilled() bool {
	return c.personal.FirstName != "" &&
		c.personal.LastName != "" &&
		c.personal.Email != "" &&
		c.personal.Password != "" &&
		c.personal.PhoneNumber != "" &&
		c.userType != UserTypeNone
}

func (c *Controller) resetCompanyDialog() {
	c.step = StepSearch
	c.searchOutcome = SearchNotAsked
	c.searchResults = nil
}

func (c *Controller) reset() {
	c.personal = PersonalInfo{}
	c.validations = make(FieldValidations)
	c.userType = UserTypeNone
	c.clientType = ClientTypeNone
	c.selected = nil
	c.dialog = DialogNone
	c.resetCompanyDialog()
}
