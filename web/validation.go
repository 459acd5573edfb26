// Package web holds small helpers shared by the HTTP controllers.
package web

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/go-playground/validator/v10"
)

// FieldErrors is the wire shape of a validation failure: field -> messages.
type FieldErrors map[string][]string

// Add appends a message for a field.
func (fe FieldErrors) Add(field, msg string) {
	fe[field] = append(fe[field], msg)
}

// HasErrors reports whether any field failed.
func (fe FieldErrors) HasErrors() bool {
	return len(fe) > 0
}

// FromBindError converts a gin binding error into a FieldErrors map. Errors
// that are not validator.ValidationErrors (malformed JSON, wrong types) land
// under the pseudo-field "request".
func FromBindError(err error) FieldErrors {
	fe := FieldErrors{}
	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		fe.Add("request", err.Error())
		return fe
	}
	for _, v := range verrs {
		fe.Add(fieldPath(v.Namespace()), messageFor(v))
	}
	return fe
}

// fieldPath turns "PlaceOrderRequest.Items[0].ProductID" into
// "items[0].product_id".
func fieldPath(ns string) string {
	parts := strings.Split(ns, ".")
	if len(parts) > 1 {
		parts = parts[1:] // drop the root struct name
	}
	for i, p := range parts {
		idx := ""
		if b := strings.IndexByte(p, '['); b >= 0 {
			idx = p[b:]
			p = p[:b]
		}
		parts[i] = snakeCase(p) + idx
	}
	return strings.Join(parts, ".")
}

func snakeCase(s string) string {
	runes := []rune(s)
	var b strings.Builder
	for i, r := range runes {
		if unicode.IsUpper(r) {
			prevLower := i > 0 && !unicode.IsUpper(runes[i-1])
			nextLower := i+1 < len(runes) && unicode.IsLower(runes[i+1])
			if i > 0 && (prevLower || nextLower) {
				b.WriteByte('_')
			}
			r = unicode.ToLower(r)
		}
		b.WriteRune(r)
	}
	return b.String()
}

func messageFor(v validator.FieldError) string {
	switch v.Tag() {
	case "required":
		return "this field is required"
	case "min":
		return fmt.Sprintf("must be at least %s", v.Param())
	case "max":
		return fmt.Sprintf("must be at most %s", v.Param())
	case "email":
		return "must be a valid email address"
	case "url":
		return "must be a valid URL"
	default:
		return fmt.Sprintf("failed validation on %s", v.Tag())
	}
}
