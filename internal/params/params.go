// Package params implements the dual-source parameter lookup used by the
// render endpoints: query string first, then form body, then a declared
// default, with typed coercion of the winning raw value.
package params

import (
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"

	"code2img/internal/render"
)

// Source returns the raw value for a key, or "" when absent.
type Source func(key string) string

// Resolver performs ordered lookups across a fixed list of sources.
type Resolver struct {
	sources []Source
}

// New builds a resolver over the given sources, highest priority first.
func New(sources ...Source) *Resolver {
	return &Resolver{sources: sources}
}

// NewFromCtx builds the standard request resolver: query parameters take
// precedence over POST form fields, multipart fields included.
func NewFromCtx(c *fiber.Ctx) *Resolver {
	query := func(key string) string { return c.Query(key) }
	form := func(key string) string {
		if v := c.Context().PostArgs().Peek(key); len(v) > 0 {
			return string(v)
		}
		if mf, err := c.MultipartForm(); err == nil && mf != nil {
			if vals := mf.Value[key]; len(vals) > 0 {
				return vals[0]
			}
		}
		return ""
	}
	return New(query, form)
}

func (r *Resolver) raw(key string) string {
	for _, src := range r.sources {
		if v := src(key); v != "" {
			return v
		}
	}
	return ""
}

// String returns the first non-empty value for key, else def.
func (r *Resolver) String(key, def string) string {
	if v := r.raw(key); v != "" {
		return v
	}
	return def
}

// Float resolves key and coerces it to float64. A non-numeric value is a
// validation failure that aborts the request.
func (r *Resolver) Float(key string, def float64) (float64, *render.Error) {
	v := r.raw(key)
	if v == "" {
		return def, nil
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return 0, render.ErrValidation("Parameter %s must be a number", key)
	}
	return f, nil
}

// Int resolves key and coerces it to int.
func (r *Resolver) Int(key string, def int) (int, *render.Error) {
	v := r.raw(key)
	if v == "" {
		return def, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, render.ErrValidation("Parameter %s must be an integer", key)
	}
	return n, nil
}

// Bool resolves key with the lenient truthiness rule: yes/true/t/1
// (case-insensitive) are true, anything else is false.
func (r *Resolver) Bool(key string, def bool) bool {
	v := r.raw(key)
	if v == "" {
		return def
	}
	switch strings.ToLower(v) {
	case "yes", "true", "t", "1":
		return true
	}
	return false
}
