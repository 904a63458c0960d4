package commons

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"net/http"
	"reflect"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"salesdesk/internal/domain"
	"salesdesk/internal/dto"
	apperrors "salesdesk/internal/errors"
)

type traceIDKey struct{}

func WithTraceID(ctx context.Context, traceID string) context.Context {
	return context.WithValue(ctx, traceIDKey{}, traceID)
}

// TraceID returns the request trace id, or "" outside a request.
func TraceID(ctx context.Context) string {
	id, _ := ctx.Value(traceIDKey{}).(string)
	return id
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()

	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	// Compare money fields numerically.
	v.RegisterCustomTypeFunc(func(field reflect.Value) any {
		if d, ok := field.Interface().(decimal.Decimal); ok {
			f, _ := d.Float64()
			return f
		}
		return nil
	}, decimal.Decimal{})

	// money sees the float64 above; amounts carry at most two decimals.
	_ = v.RegisterValidation("money", func(fl validator.FieldLevel) bool {
		if fl.Field().Kind() != reflect.Float64 {
			return true
		}
		return decimal.NewFromFloat(fl.Field().Float()).Exponent() >= -domain.MoneyPlaces
	})

	return v
}

// Validate runs struct tags on req and converts failures into a
// ValidationError whose fields use JSON paths such as items[0].quantity.
func Validate(req any) error {
	err := validate.Struct(req)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !stderrors.As(err, &fieldErrs) {
		return apperrors.NewInternalError("validating request", err)
	}

	details := make([]apperrors.ValidationDetail, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		details = append(details, apperrors.ValidationDetail{
			Field:   fieldPath(fe.Namespace()),
			Message: ruleMessage(fe),
		})
	}

	return apperrors.NewValidationError("validation failed", details...)
}

// fieldPath drops the Go type name that prefixes every namespace.
func fieldPath(namespace string) string {
	if _, rest, ok := strings.Cut(namespace, "."); ok {
		return rest
	}
	return namespace
}

func ruleMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "required_if":
		return "is required when " + fe.Param()
	case "gte":
		return "must be at least " + fe.Param()
	case "gt":
		return "must be greater than " + fe.Param()
	case "lte":
		return "must be at most " + fe.Param()
	case "money":
		return "must have at most " + strconv.Itoa(domain.MoneyPlaces) + " decimal places"
	case "min":
		return "length must be at least " + fe.Param()
	case "max":
		return "length must not exceed " + fe.Param()
	case "oneof":
		return "must be one of: " + fe.Param()
	case "email":
		return "must be a valid email address"
	default:
		return "failed " + fe.Tag() + " rule"
	}
}

// DecodeJSON reads the request body into dst.
func DecodeJSON(r *http.Request, dst any) error {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return apperrors.NewValidationError("invalid JSON body", apperrors.ValidationDetail{
			Field:   "body",
			Message: "request body must be valid JSON",
		})
	}
	return nil
}

// PathID parses a positive integer URL parameter.
func PathID(r *http.Request, param string) (uint, error) {
	id, err := strconv.ParseUint(chi.URLParam(r, param), 10, 64)
	if err != nil || id == 0 {
		return 0, apperrors.NewValidationError("invalid "+param, apperrors.ValidationDetail{
			Field:   param,
			Message: param + " must be a positive integer",
		})
	}
	return uint(id), nil
}

// QueryID parses an optional positive integer query parameter. A missing
// parameter yields nil.
func QueryID(r *http.Request, param string) (*uint, error) {
	raw := r.URL.Query().Get(param)
	if raw == "" {
		return nil, nil
	}

	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || id == 0 {
		return nil, apperrors.NewValidationError("invalid "+param, apperrors.ValidationDetail{
			Field:   param,
			Message: param + " must be a positive integer",
		})
	}

	v := uint(id)
	return &v, nil
}

func WriteJSON(w http.ResponseWriter, status int, data any, logger *zap.Logger) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		logger.Error("failed to encode response", zap.Error(err))
	}
}

// WriteError maps err onto a status code and writes the error body. Only
// unexpected errors are logged at error level, and their message is hidden
// from the client.
func WriteError(w http.ResponseWriter, r *http.Request, err error, logger *zap.Logger) {
	traceID := TraceID(r.Context())
	status, code, message := classify(err)

	resp := dto.ErrorResponse{
		TraceID:   traceID,
		Status:    status,
		Code:      code,
		Message:   message,
		Timestamp: time.Now().UTC(),
	}
	if ve, ok := apperrors.IsValidationError(err); ok {
		resp.Details = ve.Details
	}

	if status == http.StatusInternalServerError {
		logger.Error("unexpected error", zap.String("traceId", traceID), zap.Error(err))
	} else {
		logger.Warn("request rejected", zap.String("traceId", traceID), zap.String("code", code), zap.Error(err))
	}

	WriteJSON(w, status, resp, logger)
}

func classify(err error) (int, string, string) {
	code := apperrors.Code(err)
	switch code {
	case apperrors.CodeValidation:
		ve, _ := apperrors.IsValidationError(err)
		return http.StatusBadRequest, code, ve.Message
	case apperrors.CodeNotFound:
		return http.StatusNotFound, code, err.Error()
	case apperrors.CodeDanglingRef:
		de, _ := apperrors.IsDanglingReferenceError(err)
		return http.StatusUnprocessableEntity, code, de.Error()
	case apperrors.CodeConflict, apperrors.CodeDeadlock:
		return http.StatusConflict, code, err.Error()
	default:
		return http.StatusInternalServerError, apperrors.CodeInternal, "an unexpected error occurred"
	}
}

// SearchParam trims the search query parameter.
func SearchParam(r *http.Request) string {
	return strings.TrimSpace(r.URL.Query().Get("search"))
}
