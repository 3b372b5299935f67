package validators

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"slices"
	"strings"

	"github.com/MKhiriev/go-shelf-auth/internal/logger"
	"github.com/MKhiriev/go-shelf-auth/models"
	"github.com/go-playground/validator/v10"
)

// JSON names of the validated fields.
const (
	FieldName     = "name"
	FieldEmail    = "email"
	FieldPassword = "password"
	FieldAge      = "age"
	FieldUserType = "user_type"
)

const (
	tagNoPassword = "nopassword"
	tagUserType   = "usertype"

	forbiddenPasswordWord = "password"
)

// UserValidator checks registration, profile update and moderation inputs
// against the account rules. Struct rules live in `validate` tags on the
// models; this type adds the custom tags and the email uniqueness pre-check.
type UserValidator struct {
	validate *validator.Validate
	emails   EmailChecker
}

// NewUserValidator builds a validator. emails may be nil, in which case the
// uniqueness pre-check is skipped and only the storage constraint applies.
func NewUserValidator(emails EmailChecker) Validator {
	v := validator.New(validator.WithRequiredStructEnabled())

	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	_ = v.RegisterValidation(tagNoPassword, func(fl validator.FieldLevel) bool {
		return !strings.Contains(strings.ToLower(fl.Field().String()), forbiddenPasswordWord)
	})
	_ = v.RegisterValidation(tagUserType, func(fl validator.FieldLevel) bool {
		return models.UserType(fl.Field().String()).Valid()
	})

	return &UserValidator{validate: v, emails: emails}
}

func (v *UserValidator) Validate(ctx context.Context, obj any, fields ...string) error {
	switch value := obj.(type) {
	case models.RegisterRequest:
		return v.validateRegister(ctx, value, fields...)
	case *models.RegisterRequest:
		return v.validateRegister(ctx, *value, fields...)

	case models.ProfileUpdate:
		return v.validateProfileUpdate(ctx, value, fields...)
	case *models.ProfileUpdate:
		return v.validateProfileUpdate(ctx, *value, fields...)

	case models.User:
		return v.validateStruct(ctx, value, fields...)
	case *models.User:
		return v.validateStruct(ctx, *value, fields...)

	case models.UserTypeChange:
		return v.validateStruct(ctx, value, fields...)
	case *models.UserTypeChange:
		return v.validateStruct(ctx, *value, fields...)

	default:
		return ErrUnsupportedType
	}
}

func (v *UserValidator) validateRegister(ctx context.Context, req models.RegisterRequest, fields ...string) error {
	req.Email = models.NormalizeEmail(req.Email)

	if err := v.validateStruct(ctx, req, fields...); err != nil {
		return err
	}
	if !wants(fields, FieldEmail) {
		return nil
	}

	return v.checkEmailFree(ctx, req.Email)
}

// validateProfileUpdate checks only the fields the update carries. The
// caller strips an unchanged email beforehand so that the uniqueness check
// does not trip over the account's own address.
func (v *UserValidator) validateProfileUpdate(ctx context.Context, upd models.ProfileUpdate, fields ...string) error {
	if upd.Email != nil {
		normalized := models.NormalizeEmail(*upd.Email)
		upd.Email = &normalized
	}

	if err := v.validateStruct(ctx, upd, fields...); err != nil {
		return err
	}
	if upd.Email == nil || !wants(fields, FieldEmail) {
		return nil
	}

	return v.checkEmailFree(ctx, *upd.Email)
}

func (v *UserValidator) validateStruct(ctx context.Context, obj any, fields ...string) error {
	err := v.validate.StructCtx(ctx, obj)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return fmt.Errorf("validating %T: %w", obj, err)
	}

	out := make(map[string]string, len(verrs))
	for _, fe := range verrs {
		if !wants(fields, fe.Field()) {
			continue
		}
		if _, seen := out[fe.Field()]; !seen {
			out[fe.Field()] = fieldErrorMessage(fe)
		}
	}
	if len(out) == 0 {
		return nil
	}

	return &ValidationError{Fields: out}
}

func (v *UserValidator) checkEmailFree(ctx context.Context, email string) error {
	if v.emails == nil {
		return nil
	}

	exists, err := v.emails.ExistsByEmail(ctx, email)
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "UserValidator.checkEmailFree").Msg("email lookup failed")
		return fmt.Errorf("checking email uniqueness: %w", err)
	}
	if exists {
		return newValidationError(FieldEmail, "is already taken")
	}

	return nil
}

// wants reports whether field is in scope. An empty scope means all fields.
func wants(fields []string, field string) bool {
	return len(fields) == 0 || slices.Contains(fields, field)
}

func fieldErrorMessage(fe validator.FieldError) string {
	param := fe.Param()

	switch fe.Tag() {
	case "required":
		return "is required"
	case "email":
		return "must be a valid email"
	case "min":
		if fe.Kind() == reflect.String {
			return "must be at least " + param + " characters long"
		}
		return "must be at least " + param
	case "max":
		if fe.Kind() == reflect.String {
			return "must be at most " + param + " characters long"
		}
		return "must be at most " + param
	case "gte":
		return "must be greater than or equal to " + param
	case tagNoPassword:
		return `must not contain "password"`
	case tagUserType:
		return "must be one of: " + joinUserTypes()
	default:
		if param != "" {
			return fmt.Sprintf("failed on '%s' with parameter '%s'", fe.Tag(), param)
		}
		return fmt.Sprintf("failed on '%s'", fe.Tag())
	}
}

func joinUserTypes() string {
	names := make([]string, len(models.UserTypes))
	for i, t := range models.UserTypes {
		names[i] = string(t)
	}
	return strings.Join(names, ", ")
}
