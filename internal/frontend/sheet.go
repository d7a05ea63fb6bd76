package frontend

import (
	"encoding/json"
	"fmt"
)

// BuildMode labels which part of the web app is being worked on. It does not
// gate state transitions.
type BuildMode int

const (
	Infrastructure BuildMode = iota
	PageComponents
	Completion
)

func (m BuildMode) String() string {
	switch m {
	case Infrastructure:
		return "Frontend Infrastructure"
	case PageComponents:
		return "Frontend Page Components"
	case Completion:
		return "Frontend Completion Items"
	default:
		return "unknown"
	}
}

// SitePage is one recommended page and the content sections it should have.
type SitePage struct {
	PageName                 string          `json:"page_name"`
	SuggestedContentSections json.RawMessage `json:"suggested_content_sections"`
}

// UnmarshalJSON requires a page name.
func (p *SitePage) UnmarshalJSON(data []byte) error {
	type plain SitePage
	var v plain
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	if v.PageName == "" {
		return fmt.Errorf("site page: missing page_name")
	}
	*p = SitePage(v)
	return nil
}

// APIAssignment is a route used by a page.
type APIAssignment struct {
	APIRoute  string `json:"api_route"`
	Method    string `json:"method"`
	RouteType string `json:"route_type"` // internal or external
}

// PageRoutes maps a page name to the routes it uses.
type PageRoutes map[string][]APIAssignment

// DesignBuildSheet is the frontend developer's own blackboard.
type DesignBuildSheet struct {
	Pages             []string   `json:"pages"`
	PagesDescriptions []SitePage `json:"pages_descriptions"`
	APIAssignments    PageRoutes `json:"api_assignments"`
	BrandColours      []string   `json:"brand_colours"`
	BuildMode         BuildMode  `json:"build_mode"`
}

// MaxBrandColours caps how many colours are kept from the recommendation.
const MaxBrandColours = 3
