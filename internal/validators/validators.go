// Package validators checks request payloads field by field and reports
// every failed rule, so a single field may carry several messages.
package validators

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"
	"unicode"

	"eventgallery/internal/shared/constants"

	"github.com/go-playground/validator/v10"
)

// Result mirrors the details map of a ValidationError envelope.
type Result struct {
	Valid  bool                `json:"valid"`
	Errors map[string][]string `json:"errors"`
}

type collector map[string][]string

func (c collector) add(field string, messages []string) {
	if len(messages) > 0 {
		c[field] = append(c[field], messages...)
	}
}

func (c collector) result() Result {
	return Result{Valid: len(c) == 0, Errors: map[string][]string(c)}
}

var (
	emailRe      = regexp.MustCompile(constants.PatternEmail)
	usernameRe   = regexp.MustCompile(constants.PatternUsername)
	time24Re     = regexp.MustCompile(constants.PatternTime24H)
	uuidRe       = regexp.MustCompile(constants.PatternUUID)
	inviteCodeRe = regexp.MustCompile(constants.PatternInviteCode)
)

var validate = newValidate()

func newValidate() *validator.Validate {
	v := validator.New()
	rules := map[string]validator.Func{
		"gallery_email": matches(emailRe),
		"username":      matches(usernameRe),
		"time24h":       matches(time24Re),
		"gallery_uuid":  matches(uuidRe),
		"invitecode":    matches(inviteCodeRe),
		"notblank": func(fl validator.FieldLevel) bool {
			return strings.TrimSpace(fl.Field().String()) != ""
		},
		"category": func(fl validator.FieldLevel) bool {
			return constants.IsValidEventCategory(fl.Field().String())
		},
		"imagetype": func(fl validator.FieldLevel) bool {
			return constants.IsValidImageType(fl.Field().String())
		},
		"hasdigit":  containsRune(unicode.IsDigit),
		"hasletter": containsRune(isASCIILetter),
		"eventdate": func(fl validator.FieldLevel) bool {
			_, err := ParseEventDate(fl.Field().String())
			return err == nil
		},
	}
	for tag, fn := range rules {
		if err := v.RegisterValidation(tag, fn); err != nil {
			panic(fmt.Sprintf("register validation %q: %v", tag, err))
		}
	}
	return v
}

func matches(re *regexp.Regexp) validator.Func {
	return func(fl validator.FieldLevel) bool {
		return re.MatchString(fl.Field().String())
	}
}

func containsRune(pred func(rune) bool) validator.Func {
	return func(fl validator.FieldLevel) bool {
		return strings.IndexFunc(fl.Field().String(), pred) >= 0
	}
}

func isASCIILetter(r rune) bool {
	return (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z')
}

// passes runs a single rule against value.
func passes(value any, tag string) bool {
	return validate.Var(value, tag) == nil
}

var eventDateLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02",
}

var errInvalidDate = errors.New("invalid event date")

// ParseEventDate accepts RFC 3339 timestamps and plain calendar dates.
func ParseEventDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	for _, layout := range eventDateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("%w: %q", errInvalidDate, s)
}

// IsValidEmail reports whether email has the shape name@domain.tld.
func IsValidEmail(email string) bool { return passes(email, "gallery_email") }

func IsValidUsername(username string) bool {
	return passes(username, fmt.Sprintf("username,min=%d,max=%d", constants.MinUsernameLength, constants.MaxUsernameLength))
}

func IsValidTime(value string) bool { return passes(value, "time24h") }

func IsValidUUID(value string) bool { return passes(value, "gallery_uuid") }

func IsValidInviteCode(code string) bool { return passes(code, "invitecode") }
