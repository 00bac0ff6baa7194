package validation

import (
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/dd0wney/talentgraph/pkg/network"
)

var (
	// validate is a singleton validator instance
	validate *validator.Validate

	// Request limits
	MaxUsernameLength = 100
	MinLayoutSteps    = 1
	MaxLayoutSteps    = 2000

	usernamePattern = regexp.MustCompile(`^[A-Za-z0-9_.\-]+$`)
)

func init() {
	validate = validator.New()
	// report json names so messages match what clients sent
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return fld.Name
		}
		return name
	})
}

// SearchRequest is the body of a people search.
type SearchRequest struct {
	Query  string `json:"query" validate:"required,max=200"`
	Limit  int    `json:"limit" validate:"omitempty,min=1,max=50"`
	Offset int    `json:"offset" validate:"omitempty,min=0"`
}

// ValidateSearchRequest validates a search body. The query is trimmed in place.
func ValidateSearchRequest(req *SearchRequest) error {
	if req == nil {
		return errors.New("search request cannot be nil")
	}
	req.Query = strings.TrimSpace(req.Query)
	if err := validate.Struct(req); err != nil {
		return formatValidationError(err)
	}
	return nil
}

// ValidateFilter validates a filter configuration.
func ValidateFilter(cfg *network.FilterConfig) error {
	if cfg == nil {
		return errors.New("filter cannot be nil")
	}
	if err := validate.Struct(cfg); err != nil {
		return formatValidationError(err)
	}
	return nil
}

// ValidateUsername validates a profile identifier used in an upstream path.
func ValidateUsername(username string) error {
	if username == "" {
		return errors.New("username cannot be empty")
	}
	if len(username) > MaxUsernameLength {
		return fmt.Errorf("username exceeds maximum length of %d characters", MaxUsernameLength)
	}
	if !usernamePattern.MatchString(username) {
		return fmt.Errorf("username '%s' contains invalid characters", username)
	}
	return nil
}

// ValidateLayoutSteps validates the number of headless simulation steps.
func ValidateLayoutSteps(steps int) error {
	if steps < MinLayoutSteps {
		return fmt.Errorf("steps must be at least %d, got %d", MinLayoutSteps, steps)
	}
	if steps > MaxLayoutSteps {
		return fmt.Errorf("steps must not exceed %d, got %d", MaxLayoutSteps, steps)
	}
	return nil
}

// formatValidationError converts validator errors to a more user-friendly format
func formatValidationError(err error) error {
	var validationErrs validator.ValidationErrors
	if !errors.As(err, &validationErrs) {
		return err
	}

	// Return the first validation error in a user-friendly format
	for _, e := range validationErrs {
		field := e.Field()
		param := e.Param()

		switch e.Tag() {
		case "required":
			return fmt.Errorf("%s: field is required", field)
		case "min":
			return fmt.Errorf("%s: must be at least %s", field, param)
		case "max":
			return fmt.Errorf("%s: must not exceed %s", field, param)
		case "oneof":
			return fmt.Errorf("%s: must be one of [%s]", field, param)
		default:
			return fmt.Errorf("%s: validation failed (%s)", field, e.Tag())
		}
	}

	return err
}
