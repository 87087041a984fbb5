package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"reflect"
	"strings"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/locales/fr"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	fr_translations "github.com/go-playground/validator/v10/translations/fr"

	"edulink/internal/domain"
)

var (
	translator ut.Translator
	setupOnce  sync.Once
	setupErr   error
)

type customTag struct {
	tag  string
	fn   validator.Func
	text string
}

var customTags = []customTag{
	{"notblank", notBlank, "{0} ne peut pas être vide"},
	{"periode", periode, "{0} doit être au format AAAA-MM"},
	{"thematique", thematique, "{0} n'est pas une thématique connue"},
}

// SetupValidation registers the custom binding tags and French translations on
// gin's validator. It is safe to call more than once; every call returns the
// outcome of the first.
func SetupValidation() error {
	setupOnce.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			setupErr = fmt.Errorf("handler.SetupValidation: unexpected validator engine %T", binding.Validator.Engine())
			return
		}
		trans, err := registerValidations(v, customTags)
		if err != nil {
			setupErr = fmt.Errorf("handler.SetupValidation: %w", err)
			return
		}
		translator = trans
	})
	return setupErr
}

func registerValidations(v *validator.Validate, tags []customTag) (ut.Translator, error) {
	locale := fr.New()
	uni := ut.New(locale, locale)
	trans, _ := uni.GetTranslator("fr")
	if err := fr_translations.RegisterDefaultTranslations(v, trans); err != nil {
		return nil, fmt.Errorf("registering french translations: %w", err)
	}

	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	for _, ct := range tags {
		if err := v.RegisterValidation(ct.tag, ct.fn); err != nil {
			return nil, fmt.Errorf("registering tag %q: %w", ct.tag, err)
		}
		if err := registerTranslation(v, trans, ct.tag, ct.text); err != nil {
			return nil, fmt.Errorf("registering translation for %q: %w", ct.tag, err)
		}
	}
	return trans, nil
}

func registerTranslation(v *validator.Validate, trans ut.Translator, tag, text string) error {
	return v.RegisterTranslation(
		tag, trans,
		func(t ut.Translator) error { return t.Add(tag, text, true) },
		func(t ut.Translator, fe validator.FieldError) string {
			s, _ := t.T(tag, fe.Field())
			return s
		},
	)
}

func notBlank(fl validator.FieldLevel) bool {
	return strings.TrimSpace(fl.Field().String()) != ""
}

func periode(fl validator.FieldLevel) bool {
	return domain.ValidPeriode(fl.Field().String())
}

func thematique(fl validator.FieldLevel) bool {
	return domain.ValidThematique(domain.Thematique(fl.Field().String()))
}

// bindJSON decodes the body into dst and writes a VALIDATION_ERROR response with
// per-field French messages when it fails.
func bindJSON(c *gin.Context, dst interface{}) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		respondValidation(c, err)
		return false
	}
	return true
}

func respondValidation(c *gin.Context, err error) {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		fields := make(map[string]string, len(verrs))
		for _, fe := range verrs {
			key := fe.Field()
			if translator != nil {
				fields[key] = fe.Translate(translator)
			} else {
				fields[key] = fe.Error()
			}
		}
		c.JSON(http.StatusBadRequest, APIResponse{
			Success: false,
			Error:   &APIError{Code: "VALIDATION_ERROR", Message: "certains champs sont invalides", Fields: fields},
		})
		return
	}

	var syntaxErr *json.SyntaxError
	var typeErr *json.UnmarshalTypeError
	switch {
	case errors.As(err, &typeErr):
		RespondError(c, http.StatusBadRequest, "VALIDATION_ERROR", "type invalide pour le champ "+typeErr.Field)
	case errors.As(err, &syntaxErr):
		RespondError(c, http.StatusBadRequest, "VALIDATION_ERROR", "corps JSON invalide")
	default:
		RespondError(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
	}
}
