package factsheet

import (
	"encoding/json"
	"fmt"
	"strings"
)

// UnmarshalJSON requires all three scope flags to be present.
func (s *ProjectScope) UnmarshalJSON(data []byte) error {
	var raw struct {
		IsCRUDRequired         *bool `json:"is_crud_required"`
		IsUserLoginAndLogout   *bool `json:"is_user_login_and_logout"`
		IsExternalURLsRequired *bool `json:"is_external_urls_required"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	var missing []string
	if raw.IsCRUDRequired == nil {
		missing = append(missing, "is_crud_required")
	}
	if raw.IsUserLoginAndLogout == nil {
		missing = append(missing, "is_user_login_and_logout")
	}
	if raw.IsExternalURLsRequired == nil {
		missing = append(missing, "is_external_urls_required")
	}
	if len(missing) > 0 {
		return fmt.Errorf("project scope: missing %s", strings.Join(missing, ", "))
	}
	*s = ProjectScope{
		IsCRUDRequired:         *raw.IsCRUDRequired,
		IsUserLoginAndLogout:   *raw.IsUserLoginAndLogout,
		IsExternalURLsRequired: *raw.IsExternalURLsRequired,
	}
	return nil
}

// UnmarshalJSON requires a route and a method.
func (r *RouteObject) UnmarshalJSON(data []byte) error {
	type plain RouteObject
	var p plain
	if err := json.Unmarshal(data, &p); err != nil {
		return err
	}
	if p.Route == "" {
		return fmt.Errorf("route object: missing route")
	}
	if p.Method == "" {
		return fmt.Errorf("route object %s: missing method", p.Route)
	}
	*r = RouteObject(p)
	return nil
}
