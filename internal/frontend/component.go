package frontend

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/jorge-barreto/crew/internal/agent"
	"github.com/jorge-barreto/crew/internal/aifunc"
	"github.com/jorge-barreto/crew/internal/fileblocks"
	"github.com/jorge-barreto/crew/internal/state"
	"github.com/jorge-barreto/crew/internal/ux"
)

// BuildComponent is one of the fixed web app files the developer writes.
type BuildComponent int

const (
	Logo BuildComponent = iota
	NavHeader
	NavFooter
	ReactHook
	PageContent1
	PageContent2
)

// Components lists every component in build order.
func Components() []BuildComponent {
	return []BuildComponent{Logo, NavHeader, NavFooter, ReactHook, PageContent1, PageContent2}
}

func (c BuildComponent) Name() string {
	switch c {
	case Logo:
		return "Logo"
	case NavHeader:
		return "NavHeader"
	case NavFooter:
		return "NavFooter"
	case ReactHook:
		return "ReactHook"
	case PageContent1:
		return "PageContent1"
	case PageContent2:
		return "PageContent2"
	default:
		return "unknown"
	}
}

// Path is the component's file, relative to the web app root.
func (c BuildComponent) Path() string {
	switch c {
	case Logo:
		return "src/components/shared/Logo.tsx"
	case NavHeader:
		return "src/components/shared/Navigation.tsx"
	case NavFooter:
		return "src/components/shared/Footer.tsx"
	case ReactHook:
		return "src/hooks/useCall.tsx"
	case PageContent1:
		return "src/components/pages/PageOne.tsx"
	case PageContent2:
		return "src/components/pages/PageTwo.tsx"
	default:
		return ""
	}
}

// pageIndex returns which recommended page a page component renders.
func (c BuildComponent) pageIndex() (int, bool) {
	switch c {
	case PageContent1:
		return 0, true
	case PageContent2:
		return 1, true
	default:
		return 0, false
	}
}

const (
	componentWriter = "Component Writer"
	pageWriter      = "Component Page Writer"
)

// create runs c's recipe and saves the result. It returns false when the
// component has nothing to render.
func (d *Developer) create(ctx context.Context, c BuildComponent, description string) (bool, error) {
	sheet := &d.Sheet
	colours := jsonString(sheet.BrandColours)
	pages := jsonString(sheet.Pages)

	var (
		code string
		err  error
	)
	switch c {
	case Logo:
		svg, err := d.ask(ctx, aifunc.PrintSVGLogo, componentWriter,
			fmt.Sprintf("PROJECT_DESCRIPTION: %s, BRAND_COLOURS: %s", description, colours))
		if err != nil {
			return false, err
		}
		code, err = d.ask(ctx, aifunc.PrintCompletedLogoWithBrandName, componentWriter,
			fmt.Sprintf("WEBSITE SPECIFICATION: {\n  SVG_LOGO: %s,\n  PROJECT_DESCRIPTION: %s,\n}", svg, description))
		if err != nil {
			return false, err
		}

	case NavHeader, NavFooter:
		fn := aifunc.PrintHeaderNavigation
		if c == NavFooter {
			fn = aifunc.PrintFooterNavigation
		}
		code, err = d.ask(ctx, fn, componentWriter, fmt.Sprintf(
			"WEBSITE_SPECIFICATION: {\n  PROJECT_DESCRIPTION: %s,\n  PAGES_WHICH_NEED_LINKS: %s,\n  COLOUR_SCHEME: %s\n}",
			description, pages, colours))
		if err != nil {
			return false, err
		}

	case ReactHook:
		schema, err := os.ReadFile(d.opts.SchemaPath)
		if err != nil {
			return false, fmt.Errorf("reading endpoint schema: %w", err)
		}
		code, err = d.ask(ctx, aifunc.PrintReactHook, componentWriter,
			fmt.Sprintf("API_ENDPOINTS_JSON_SCHEMA: %s", schema))
		if err != nil {
			return false, err
		}

	case PageContent1, PageContent2:
		idx, _ := c.pageIndex()
		if idx >= len(sheet.Pages) || idx >= len(sheet.PagesDescriptions) {
			ux.Warning("%s: no recommended page %d, skipping %s", d.Position(), idx+1, c.Name())
			return false, nil
		}
		code, err = d.createPage(ctx, sheet.Pages[idx], sheet.PagesDescriptions[idx])
		if err != nil {
			return false, err
		}

	default:
		return false, fmt.Errorf("unknown component %d", c)
	}

	return true, d.save(c, code)
}

// createPage runs the four page stages; each stage's output feeds the next.
func (d *Developer) createPage(ctx context.Context, name string, page SitePage) (string, error) {
	hook, err := os.ReadFile(d.componentPath(ReactHook))
	if err != nil {
		return "", fmt.Errorf("reading %s: %w", ReactHook.Path(), err)
	}
	routes := d.Sheet.APIAssignments[name]
	if routes == nil {
		routes = []APIAssignment{}
	}

	wireframe, err := d.ask(ctx, aifunc.PrintHTMLWebpageContent, pageWriter, fmt.Sprintf(
		"WEBSITE SPECIFICATION: {\n  PAGE: %s,\n  CONTENT_SECTION_SUGGESTIONS: %s,\n}",
		name, string(page.SuggestedContentSections)))
	if err != nil {
		return "", err
	}
	api, err := d.ask(ctx, aifunc.PrintReactComponentWithAPIIntegration, pageWriter, fmt.Sprintf(
		"API_ROUTES: {\n  API_ENDPOINTS_RELATED_TO_COMPONENT: %s,\n  REACT_HOOK_API_ENDPOINTS: %s,\n}",
		jsonString(routes), hook))
	if err != nil {
		return "", err
	}
	merged, err := d.ask(ctx, aifunc.PrintFullReactComponent, pageWriter,
		fmt.Sprintf("API_COMPONENT: %s HTML_WIREFRAME: %s", api, wireframe))
	if err != nil {
		return "", err
	}
	return d.ask(ctx, aifunc.PrintComponentStyling, pageWriter, "REACT_COMPONENT: "+merged)
}

// ask requests fn on behalf of a component writer, narrating as position.
func (d *Developer) ask(ctx context.Context, fn aifunc.Function, position, input string) (string, error) {
	writer := agent.Basic{Position: position}
	text, err := writer.Request(ctx, d.caller, fn, input, d.Focus.Name())
	if err != nil {
		return "", fmt.Errorf("%s: %w", d.Focus.Name(), err)
	}
	d.Basic.Remember(writer.Memory...)
	return fileblocks.Unfence(text), nil
}

func (d *Developer) save(c BuildComponent, code string) error {
	if err := state.WriteFile(d.componentPath(c), []byte(fileblocks.Unfence(code))); err != nil {
		return fmt.Errorf("saving %s: %w", c.Path(), err)
	}
	return nil
}

func (d *Developer) componentPath(c BuildComponent) string {
	return filepath.Join(d.opts.Dir, filepath.FromSlash(c.Path()))
}

func jsonString(v any) string {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Sprint(v)
	}
	return string(data)
}
