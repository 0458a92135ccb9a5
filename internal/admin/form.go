package admin

import (
	"backoffice/internal/pkg/apperrors"
	"errors"
	"fmt"
	"net/url"
	"reflect"
	"sort"
	"strconv"
	"strings"

	"github.com/go-playground/form/v4"
	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

var maxDiscount = decimal.NewFromInt(100)

// CustomerModification is the customer edit form. Pointer fields are nil when
// the field was not submitted at all. Text values are trimmed.
type CustomerModification struct {
	Title     int64  `form:"title" validate:"required,gt=0"`
	FirstName string `form:"firstname" validate:"required,max=255"`
	LastName  string `form:"lastname" validate:"required,max=255"`
	Address1  string `form:"address1" validate:"required,max=255"`
	Address2  string `form:"address2" validate:"max=255"`
	Address3  string `form:"address3" validate:"max=255"`
	Phone     string `form:"phone" validate:"max=20"`
	Cellphone string `form:"cellphone" validate:"max=20"`
	Zipcode   string `form:"zipcode" validate:"required,max=10"`
	City      string `form:"city" validate:"required,max=255"`
	Country   int64  `form:"country" validate:"required,gt=0"`

	Email    *string          `form:"email" validate:"omitnil,email,max=255"`
	Password *string          `form:"password" validate:"omitempty,min=6"`
	Reseller *bool            `form:"reseller" validate:"-"`
	Sponsor  *string          `form:"sponsor" validate:"omitempty,max=255"`
	Discount *decimal.Decimal `form:"discount" validate:"-"`
	Company  *string          `form:"company" validate:"omitempty,max=255"`

	SuccessURL string `form:"success_url"`
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("form"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

var decoder = newDecoder()

var (
	errNotANumber = errors.New("must be a number")
	errNotABool   = errors.New("must be a boolean")
)

func newDecoder() *form.Decoder {
	d := form.NewDecoder()
	d.RegisterCustomTypeFunc(func(vals []string) (interface{}, error) {
		return strings.TrimSpace(vals[0]), nil
	}, "")
	d.RegisterCustomTypeFunc(func(vals []string) (interface{}, error) {
		raw := strings.TrimSpace(vals[0])
		if raw == "" {
			return int64(0), nil
		}
		n, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return nil, errNotANumber
		}
		return n, nil
	}, int64(0))
	d.RegisterCustomTypeFunc(func(vals []string) (interface{}, error) {
		switch strings.ToLower(strings.TrimSpace(vals[0])) {
		case "1", "on", "true", "yes":
			return true, nil
		case "", "0", "off", "false", "no":
			return false, nil
		}
		return nil, errNotABool
	}, false)
	d.RegisterCustomTypeFunc(func(vals []string) (interface{}, error) {
		raw := strings.TrimSpace(vals[0])
		if raw == "" {
			return decimal.Zero, nil
		}
		v, err := decimal.NewFromString(strings.Replace(raw, ",", ".", 1))
		if err != nil {
			return nil, errNotANumber
		}
		return v, nil
	}, decimal.Decimal{})
	return d
}

// BindCustomerModification decodes the edit form from submitted values and
// validates it. Every problem is reported as a field error.
func BindCustomerModification(values url.Values) (*CustomerModification, error) {
	var errs fieldErrorSet
	m := &CustomerModification{}

	if err := decoder.Decode(m, values); err != nil {
		var derrs form.DecodeErrors
		if !errors.As(err, &derrs) {
			return nil, fmt.Errorf("%w: %w", apperrors.ErrValidation, err)
		}
		fields := make([]string, 0, len(derrs))
		for field := range derrs {
			fields = append(fields, field)
		}
		sort.Strings(fields)
		for _, field := range fields {
			errs.add(field, decodeMessage(derrs[field]))
		}
	}

	if err := validate.Struct(m); err != nil {
		var verrs validator.ValidationErrors
		if !errors.As(err, &verrs) {
			return nil, fmt.Errorf("%w: %w", apperrors.ErrValidation, err)
		}
		for _, fe := range verrs {
			errs.add(fe.Field(), describe(fe))
		}
	}
	if m.Discount != nil && (m.Discount.IsNegative() || m.Discount.GreaterThan(maxDiscount)) {
		errs.add("discount", "must be between 0 and 100")
	}

	if len(errs.list) > 0 {
		return nil, apperrors.NewFieldsValidationError(errs.list)
	}
	return m, nil
}

// fieldErrorSet keeps the first message reported for each field.
type fieldErrorSet struct {
	list []apperrors.FieldError
	seen map[string]bool
}

func (e *fieldErrorSet) add(field, message string) {
	if e.seen[field] {
		return
	}
	if e.seen == nil {
		e.seen = make(map[string]bool)
	}
	e.seen[field] = true
	e.list = append(e.list, apperrors.FieldError{Field: field, Message: message})
}

func decodeMessage(err error) string {
	switch {
	case errors.Is(err, errNotANumber):
		return errNotANumber.Error()
	case errors.Is(err, errNotABool):
		return errNotABool.Error()
	default:
		return "This value is not valid"
	}
}

func describe(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "This value should not be blank"
	case "email":
		return "This value is not a valid email address"
	case "gt":
		return "This value should be selected"
	case "max":
		return fmt.Sprintf("This value is too long, it should have %s characters or less", fe.Param())
	case "min":
		return fmt.Sprintf("This value is too short, it should have %s characters or more", fe.Param())
	default:
		return fmt.Sprintf("This value is not valid (%s)", fe.Tag())
	}
}
