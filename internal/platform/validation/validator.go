// Package validation はginのリクエストバインディングにドメインの入力ルールを登録し、
// 検証エラーをフィールド単位のメッセージに変換します。
package validation

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"reflect"
	"strings"
	"sync"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	entranslations "github.com/go-playground/validator/v10/translations/en"

	"account_backend/internal/domain"
	"account_backend/internal/platform/apperr"
	"account_backend/internal/platform/response"
)

var (
	once        sync.Once
	registerErr error
	trans       ut.Translator
)

// customTag はドメインルールに対応するカスタムタグです。
type customTag struct {
	name    string
	message string
	fn      validator.Func
}

var customTags = []customTag{
	{
		name:    "username",
		message: "{0} must contain only letters and digits",
		fn: func(fl validator.FieldLevel) bool {
			_, err := domain.NormalizeName(fl.Field().String())
			return err == nil
		},
	},
	{
		name:    "fullname",
		message: "{0} must be at least 2 characters excluding surrounding spaces",
		fn: func(fl validator.FieldLevel) bool {
			s := fl.Field().String()
			_, err := domain.NormalizeFullname(&s)
			return err == nil
		},
	},
	{
		name:    "mailaddr",
		message: "{0} must be a valid email address",
		fn: func(fl validator.FieldLevel) bool {
			_, err := domain.NormalizeEmail(fl.Field().String())
			return err == nil
		},
	},
}

// Register はginのデフォルトバリデータにカスタムタグと英語の翻訳を登録します。
// 複数回呼び出しても登録は一度だけ行われます。
func Register() error {
	once.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			registerErr = errors.New("validation: gin validator engine is not *validator.Validate")
			return
		}
		registerErr = setup(v)
	})
	return registerErr
}

func setup(v *validator.Validate) error {
	// フィールド名はJSONのキー名で報告する
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	locale := en.New()
	t, _ := ut.New(locale, locale).GetTranslator("en")
	if err := entranslations.RegisterDefaultTranslations(v, t); err != nil {
		return fmt.Errorf("validation: register translations: %w", err)
	}

	for _, ct := range customTags {
		if err := v.RegisterValidation(ct.name, ct.fn); err != nil {
			return fmt.Errorf("validation: register %s: %w", ct.name, err)
		}
		tag, msg := ct.name, ct.message
		if err := v.RegisterTranslation(tag, t,
			func(u ut.Translator) error { return u.Add(tag, msg, true) },
			func(u ut.Translator, fe validator.FieldError) string {
				s, _ := u.T(tag, fe.Field())
				return s
			},
		); err != nil {
			return fmt.Errorf("validation: register translation %s: %w", ct.name, err)
		}
	}

	trans = t
	return nil
}

// Describe converts a binding or parameter error into per-field messages.
func Describe(err error) []response.FieldError {
	var (
		ves       validator.ValidationErrors
		fieldErr  *apperr.FieldError
		syntaxErr *json.SyntaxError
		typeErr   *json.UnmarshalTypeError
	)

	switch {
	case errors.As(err, &ves):
		out := make([]response.FieldError, 0, len(ves))
		for _, fe := range ves {
			out = append(out, response.FieldError{Field: fieldPath(fe), Message: translate(fe)})
		}
		return out
	case errors.As(err, &fieldErr):
		return []response.FieldError{{Field: fieldErr.Field, Message: fieldErr.Message}}
	case errors.As(err, &typeErr):
		return []response.FieldError{{Field: typeErr.Field, Message: fmt.Sprintf("must be of type %s", typeErr.Type)}}
	case errors.As(err, &syntaxErr):
		return []response.FieldError{{Field: "body", Message: "malformed JSON: " + syntaxErr.Error()}}
	case errors.Is(err, io.EOF), errors.Is(err, io.ErrUnexpectedEOF):
		return []response.FieldError{{Field: "body", Message: "request body is required"}}
	default:
		return []response.FieldError{{Field: "body", Message: err.Error()}}
	}
}

// fieldPath はトップレベルの構造体名を除いたフィールドパスを返します（例: "name"）。
func fieldPath(fe validator.FieldError) string {
	ns := fe.Namespace()
	if _, rest, ok := strings.Cut(ns, "."); ok {
		return rest
	}
	return fe.Field()
}

func translate(fe validator.FieldError) string {
	if trans == nil {
		return fe.Error()
	}
	return fe.Translate(trans)
}
