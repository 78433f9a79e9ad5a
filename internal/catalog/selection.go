package catalog

import (
	"net/url"
	"strings"
)

// LocationSelection is the state/city/area choice made on the location
// filter before the inquiry form becomes visible. It is not persisted; it
// round-trips through URL query parameters for shareable links.
type LocationSelection struct {
	State string
	City  string
	Areas []string
}

// Complete reports whether both state and city are chosen. The inquiry
// form's location step cannot pass without a complete selection.
func (s LocationSelection) Complete() bool {
	return s.State != "" && s.City != ""
}

// AreaText flattens the chosen areas into the single free-text area field
// stored on an inquiry. Empty when no areas are chosen.
func (s LocationSelection) AreaText() string {
	return strings.Join(s.Areas, ", ")
}

// Query encodes the selection as URL query parameters.
func (s LocationSelection) Query() url.Values {
	params := url.Values{}
	if s.State != "" {
		params.Set("state", s.State)
	}
	if s.City != "" {
		params.Set("city", s.City)
	}
	if len(s.Areas) > 0 {
		params.Set("areas", strings.Join(s.Areas, ","))
	}
	return params
}

// SelectionFromQuery restores a selection from URL query parameters.
func SelectionFromQuery(params url.Values) LocationSelection {
	sel := LocationSelection{
		State: params.Get("state"),
		City:  params.Get("city"),
	}
	if raw := params.Get("areas"); raw != "" {
		for _, area := range strings.Split(raw, ",") {
			if area = strings.TrimSpace(area); area != "" {
				sel.Areas = append(sel.Areas, area)
			}
		}
	}
	return sel
}
