package models

import (
	"errors"
	"fmt"
	"net/url"
	"reflect"
	"slices"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/rpupo63/video-portfolio-backend/errs"
	"github.com/rpupo63/video-portfolio-backend/youtube"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())

	// Report fields under their JSON names.
	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		name, _, _ := strings.Cut(field.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		if name == "" {
			return field.Name
		}
		return name
	})

	mustRegister(v, "project_category", func(fl validator.FieldLevel) bool {
		return slices.Contains(Categories, fl.Field().String())
	})
	mustRegister(v, "youtube_url", func(fl validator.FieldLevel) bool {
		return youtube.IsCanonicalURL(fl.Field().String())
	})
	mustRegister(v, "thumbnail_ref", func(fl validator.FieldLevel) bool {
		return IsThumbnailRef(fl.Field().String())
	})

	return v
}

func mustRegister(v *validator.Validate, tag string, fn validator.Func) {
	if err := v.RegisterValidation(tag, fn); err != nil {
		panic(fmt.Sprintf("register validation %q: %v", tag, err))
	}
}

// IsThumbnailRef accepts an absolute http(s) URL or a root-relative path.
func IsThumbnailRef(ref string) bool {
	if strings.HasPrefix(ref, "/") && !strings.HasPrefix(ref, "//") {
		return true
	}
	u, err := url.Parse(ref)
	if err != nil {
		return false
	}
	return (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
}

// Validate checks a model against its validate tags and returns the first
// violation as a 400 ApiErr naming the offending field.
func Validate(model any) error {
	err := validate.Struct(model)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) || len(fieldErrs) == 0 {
		return errs.NewInternalErrorWithCause("validation failed", err)
	}

	fe := fieldErrs[0]
	return errs.NewInvalidFieldError(fieldPath(fe), describe(fe))
}

// fieldPath drops the struct name prefix: "Project.tools[0]" -> "tools[0]".
func fieldPath(fe validator.FieldError) string {
	ns := fe.Namespace()
	if _, rest, ok := strings.Cut(ns, "."); ok {
		return rest
	}
	return fe.Field()
}

func describe(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "max":
		return "must be at most " + fe.Param()
	case "min":
		return "must be at least " + fe.Param()
	case "oneof":
		return "must be one of: " + fe.Param()
	case "project_category":
		return "must be one of: " + strings.Join(Categories, ", ")
	case "youtube_url":
		return "is not a recognised YouTube URL or video ID"
	case "thumbnail_ref":
		return "must be an absolute URL or a path starting with /"
	default:
		return "failed " + fe.Tag() + " check"
	}
}
