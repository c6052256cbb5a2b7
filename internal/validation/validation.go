// Package validation holds the input rules shared by every entry point.
package validation

import (
	"errors"
	"fmt"
	"path"
	"regexp"
	"strings"
	"sync"
	"unicode"
	"unicode/utf8"

	"github.com/go-playground/validator/v10"
)

var (
	once     sync.Once
	validate *validator.Validate
)

var (
	taskNameForbidden = regexp.MustCompile(`[<>@#&]`)

	suspiciousExtensions = []string{".exe", ".bat", ".cmd", ".scr", ".pif", ".com"}
)

// Engine returns the shared validator with the custom tags registered:
// taskname, displayname and safefilename.
func Engine() *validator.Validate {
	once.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())
		must(validate.RegisterValidation("taskname", func(fl validator.FieldLevel) bool {
			return ValidTaskName(fl.Field().String())
		}))
		must(validate.RegisterValidation("displayname", func(fl validator.FieldLevel) bool {
			return ValidDisplayName(fl.Field().String())
		}))
		must(validate.RegisterValidation("safefilename", func(fl validator.FieldLevel) bool {
			return safeFilename(fl.Field().String())
		}))
	})
	return validate
}

func must(err error) {
	if err != nil {
		panic(err)
	}
}

// Struct validates s and turns the first failure into a readable error.
func Struct(s interface{}) error {
	err := Engine().Struct(s)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		return &Error{Field: verrs[0].Field(), Tag: verrs[0].Tag(), Param: verrs[0].Param()}
	}
	return err
}

// Error is a failed rule on one field.
type Error struct {
	Field string
	Tag   string
	Param string
}

func (e *Error) Error() string {
	if e.Param != "" {
		return fmt.Sprintf("%s failed %s=%s", e.Field, e.Tag, e.Param)
	}
	return fmt.Sprintf("%s failed %s", e.Field, e.Tag)
}

// ValidTaskName accepts 2..100 characters without markup symbols.
func ValidTaskName(name string) bool {
	name = strings.TrimSpace(name)
	n := utf8.RuneCountInString(name)
	return n >= 2 && n <= 100 && !taskNameForbidden.MatchString(name)
}

// ValidDisplayName accepts 2..50 letters, digits and spaces.
func ValidDisplayName(name string) bool {
	name = strings.TrimSpace(name)
	n := utf8.RuneCountInString(name)
	if n < 2 || n > 50 {
		return false
	}
	for _, r := range name {
		if r != ' ' && !unicode.IsLetter(r) && !unicode.IsDigit(r) {
			return false
		}
	}
	return true
}

// ValidTimezone accepts loadable IANA zone names.
func ValidTimezone(tz string) bool {
	return tz != "" && Engine().Var(tz, "timezone") == nil
}

func safeFilename(name string) bool {
	if name == "" || len(name) > 255 {
		return false
	}
	ext := strings.ToLower(path.Ext(name))
	for _, bad := range suspiciousExtensions {
		if ext == bad {
			return false
		}
	}
	return true
}
