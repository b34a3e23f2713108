package main

import (
	"fmt"
	"strconv"
	"time"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/logitrans/navigo-go/auth"
	"github.com/logitrans/navigo-go/company"
	"github.com/logitrans/navigo-go/register"
	"github.com/logitrans/navigo-go/vehicle"
)

func newRootCommand(a *app) *cobra.Command {
	root := &cobra.Command{
		Use:           "navigo",
		Short:         "Command-line client for the NaviGo logistics platform",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			displayAppname(a.config.GetAppName())
		},
	}

	root.AddCommand(
		newLoginCommand(a),
		newLogoutCommand(a),
		newStatusCommand(a),
		newRefreshCommand(a),
		newRegisterCommand(a),
		newVehiclesCommand(a),
	)
	return root
}

func newLoginCommand(a *app) *cobra.Command {
	var email, password string

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Sign in and persist the session",
		RunE: func(cmd *cobra.Command, args []string) error {
			result := a.sessions.Login(cmd.Context(), auth.Credentials{Email: email, Password: password})
			if !result.Success {
				return errors.New(result.Message)
			}
			fmt.Println(result.Message)
			return nil
		},
	}

	cmd.Flags().StringVarP(&email, "email", "e", "", "account email")
	cmd.Flags().StringVarP(&password, "password", "p", "", "account password")
	cmd.MarkFlagRequired("email")
	cmd.MarkFlagRequired("password")
	return cmd
}

func newLogoutCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "End the session locally and on the backend",
		RunE: func(cmd *cobra.Command, args []string) error {
			result := a.sessions.Logout(cmd.Context())
			fmt.Println(result.Message)
			return nil
		},
	}
}

func newStatusCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show the current session state",
		RunE: func(cmd *cobra.Command, args []string) error {
			state := a.sessions.CheckAuthStatus()
			if !state.IsAuthenticated {
				fmt.Println("Not signed in")
				return nil
			}
			fmt.Printf("Signed in as %s %s <%s>\n", state.User.FirstName, state.User.LastName, state.User.Email)
			if state.User.Exp != 0 {
				fmt.Printf("Session expires at %s\n", time.Unix(state.User.Exp, 0).Format(time.RFC1123))
			}
			return nil
		},
	}
}

func newRefreshCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "refresh",
		Short: "Exchange the refresh token for a new credential",
		RunE: func(cmd *cobra.Command, args []string) error {
			result := a.auth.Refresh(cmd.Context())
			if !result.Success {
				a.sessions.CheckAuthStatus()
				return errors.New(result.Message)
			}
			a.sessions.CheckAuthStatus()
			fmt.Println(result.Message)
			return nil
		},
	}
}

func newRegisterCommand(a *app) *cobra.Command {
	var (
		firstName, lastName, email, password, phone string
		userType, clientType                        string
		companyPIB                                  string
		companyName, companyAddress, companyEmail   string
	)

	cmd := &cobra.Command{
		Use:   "register",
		Short: "Create a new account, walking the registration wizard",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			controller, err := register.NewController(a.auth, a.company,
				register.WithRedirectDelay(0),
				register.WithNavigator(func(string) {}),
			)
			if err != nil {
				return err
			}

			fields := map[string]string{
				register.FieldFirstName:   firstName,
				register.FieldLastName:    lastName,
				register.FieldEmail:       email,
				register.FieldPassword:    password,
				register.FieldPhoneNumber: phone,
			}
			for field, value := range fields {
				if err := controller.UpdateField(field, value); err != nil {
					return err
				}
			}
			for field, v := range controller.Validations() {
				if !v.Valid {
					return errors.Errorf("%s: %s", field, v.Message)
				}
			}

			controller.SelectUserType(register.UserType(userType))

			if controller.Dialog() == register.DialogClientType {
				if err := controller.SelectClientType(register.ClientType(clientType)); err != nil {
					return err
				}
			}

			if controller.Dialog() == register.DialogCompany {
				if err := resolveCompanyDialog(cmd, controller, companyPIB, companyName, companyAddress, companyEmail); err != nil {
					return err
				}
			}

			result := controller.Submit(ctx)
			if !result.Success {
				for _, blocker := range result.Errors {
					fmt.Println(" -", blocker)
				}
				return errors.New(result.Message)
			}
			fmt.Println(result.Message)
			return nil
		},
	}

	cmd.Flags().StringVar(&firstName, "first-name", "", "first name")
	cmd.Flags().StringVar(&lastName, "last-name", "", "last name")
	cmd.Flags().StringVar(&email, "email", "", "email address")
	cmd.Flags().StringVar(&password, "password", "", "password")
	cmd.Flags().StringVar(&phone, "phone", "", "phone number")
	cmd.Flags().StringVar(&userType, "user-type", "", "account type: client, shipper or transport")
	cmd.Flags().StringVar(&clientType, "client-type", "individual", "client type: individual or company")
	cmd.Flags().StringVar(&companyPIB, "company-pib", "", "PIB of the company to search for")
	cmd.Flags().StringVar(&companyName, "company-name", "", "name for a newly created company")
	cmd.Flags().StringVar(&companyAddress, "company-address", "", "address for a newly created company")
	cmd.Flags().StringVar(&companyEmail, "company-email", "", "email for a newly created company")
	cmd.MarkFlagRequired("user-type")
	return cmd
}

// resolveCompanyDialog walks the company sub-dialog: search by PIB, pick the
// first hit, or fall through to creation when the search came back empty and
// the creation flags were provided.
func resolveCompanyDialog(cmd *cobra.Command, controller *register.Controller, pib, name, address, email string) error {
	if pib == "" {
		return errors.New("this account type requires a company: pass --company-pib")
	}

	switch controller.SearchCompany(cmd.Context(), pib) {
	case register.SearchFound:
		hit := controller.SearchResults()[0]
		fmt.Printf("Found company %q (PIB %s)\n", hit.Name, hit.PIB)
		return controller.ChooseCompany(hit)
	case register.SearchNoResults:
		if name == "" {
			return errors.New("no company found for that PIB: pass --company-name, --company-address and --company-email to create one")
		}
		if err := controller.BeginAddCompany(); err != nil {
			return err
		}
		result := controller.CreateCompany(cmd.Context(), companyCreateDto(pib, name, address, email))
		if !result.Success {
			return errors.New(result.Message)
		}
		fmt.Printf("Created company %q\n", result.Company.Name)
		return nil
	default:
		return errors.New("company search failed, try again later")
	}
}

func newVehiclesCommand(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "vehicles",
		Short: "Manage a company's fleet",
	}
	cmd.AddCommand(newVehiclesListCommand(a), newVehiclesAddCommand(a), newVehiclesOptionsCommand(a))
	return cmd
}

func newVehiclesListCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "list <company-id>",
		Short: "List the vehicles of a company",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			companyID, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return errors.Wrap(err, "company id must be a number")
			}

			vehicles, err := a.vehicle.CompanyVehicles(cmd.Context(), companyID)
			if err != nil {
				return err
			}
			for _, v := range vehicles {
				fmt.Printf("%-12s %6d kg  %d  %s\n", v.RegistrationNumber, v.CapacityKg, v.ManufactureYear, v.VehicleStatus)
			}
			return nil
		},
	}
}

func newVehiclesOptionsCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "options",
		Short: "Show the selectable vehicle types and locations",
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := a.vehicle.LoadFormData(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Println("Vehicle types:")
			for _, t := range data.Types {
				fmt.Printf("  %3d  %s\n", t.ID, t.Name)
			}
			fmt.Println("Locations:")
			for _, l := range data.Locations {
				fmt.Printf("  %3d  %s - %s\n", l.ID, l.Name, l.City)
			}
			return nil
		},
	}
}

func newVehiclesAddCommand(a *app) *cobra.Command {
	var dto vehicle.CreateDto
	var locationID int64
	var categories string

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Register a new vehicle",
		RunE: func(cmd *cobra.Command, args []string) error {
			if locationID != 0 {
				dto.CurrentLocationID = &locationID
			}
			if categories != "" {
				dto.Categories = &categories
			}
			dto.IsAvailable = true

			if errs := vehicle.Validate(dto, time.Now().Year()); len(errs) > 0 {
				for field, msg := range errs {
					fmt.Printf(" - %s: %s\n", field, msg)
				}
				return errors.New("vehicle data is not valid")
			}

			created, err := a.vehicle.Create(cmd.Context(), dto)
			if err != nil {
				return err
			}
			fmt.Printf("Created vehicle %s (id %d)\n", created.RegistrationNumber, created.ID)
			return nil
		},
	}

	cmd.Flags().Int64Var(&dto.CompanyID, "company-id", 0, "owning company id")
	cmd.Flags().Int64Var(&dto.VehicleTypeID, "type-id", 0, "vehicle type id (see: vehicles options)")
	cmd.Flags().StringVar(&dto.RegistrationNumber, "registration", "", "registration number")
	cmd.Flags().IntVar(&dto.CapacityKg, "capacity", 0, "capacity in kilograms")
	cmd.Flags().IntVar(&dto.ManufactureYear, "year", time.Now().Year(), "manufacture year")
	cmd.Flags().StringVar(&dto.LastInspectionDate, "inspection", "", "last inspection date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&dto.InsuranceExpiry, "insurance", "", "insurance expiry date (YYYY-MM-DD)")
	cmd.Flags().Int64Var(&locationID, "location-id", 0, "current location id")
	cmd.Flags().StringVar(&categories, "categories", "", "comma-separated category list")
	cmd.MarkFlagRequired("company-id")
	cmd.MarkFlagRequired("registration")
	return cmd
}

func companyCreateDto(pib, name, address, email string) company.CreateDto {
	return company.CreateDto{PIB: pib, Name: name, Address: address, Email: email}
}
