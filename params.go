package herego

import (
	"fmt"
	"net/url"
	"strings"
)

// Params is an insertion-ordered set of query parameters, assembled per call
// and handed to BuildURL. Setting an existing key replaces its value without
// changing its position.
type Params struct {
	keys   []string
	values map[string]string
}

// NewParams returns an empty parameter set.
func NewParams() *Params {
	return &Params{values: make(map[string]string)}
}

// Set stores value under key.
func (p *Params) Set(key, value string) {
	if p.values == nil {
		p.values = make(map[string]string)
	}
	if _, ok := p.values[key]; !ok {
		p.keys = append(p.keys, key)
	}
	p.values[key] = value
}

// SetBool stores the literal string "true" or "false" under key.
func (p *Params) SetBool(key string, v bool) {
	if v {
		p.Set(key, "true")
		return
	}
	p.Set(key, "false")
}

// Get returns the value stored under key and whether it is present.
func (p *Params) Get(key string) (string, bool) {
	v, ok := p.values[key]
	return v, ok
}

// Len returns the number of parameters.
func (p *Params) Len() int {
	return len(p.keys)
}

// Encode returns the parameters as a percent-encoded query string in
// insertion order. A nil or empty set encodes to "".
func (p *Params) Encode() string {
	if p == nil || len(p.keys) == 0 {
		return ""
	}

	var b strings.Builder
	for i, k := range p.keys {
		if i > 0 {
			b.WriteByte('&')
		}
		b.WriteString(url.QueryEscape(k))
		b.WriteByte('=')
		b.WriteString(url.QueryEscape(p.values[k]))
	}
	return b.String()
}

// BuildURL appends params to base as a query string and returns the full URL.
// base must parse as a URL; neither input is mutated.
func BuildURL(base string, params *Params) (string, error) {
	u, err := url.Parse(base)
	if err != nil {
		return "", fmt.Errorf("parsing base URL: %w", err)
	}

	encoded := params.Encode()
	if encoded == "" {
		return u.String(), nil
	}

	if u.RawQuery != "" {
		u.RawQuery += "&" + encoded
	} else {
		u.RawQuery = encoded
	}
	return u.String(), nil
}
