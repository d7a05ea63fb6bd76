package aifunc

var PrintCodeBugsResolution = Function{
	Name: "print_code_bugs_resolution",
	Doc: `    INPUT: Takes in ORIGINAL_CODE of a React TypeScript component that breaks the build and
    the ERROR_MESSAGE produced by the build.
    FUNCTION: Rewrites the component with the errors fixed. Code starts with its imports.
    A //@ts-ignore is acceptable where guessing a type would be worse.
    This function only prints the full component source, nothing else.`,
}

var PrintRecommendedSitePages = Function{
	Name: "print_recommended_site_pages",
	Doc: `    INPUT: Takes in a PROJECT_DESCRIPTION and the CODE_LOGIC of the website's backend.
    FUNCTION: Recommends up to 2 pages for a single page application that best suit them.
    OUTPUT FORMAT: A JSON array of objects, each with the fixed keys "page_name" and
    "suggested_content_sections". The keys inside "suggested_content_sections" are free.
    Headers and footers are already covered and are not suggested.
    EXAMPLE: [{"page_name": "home_page", "suggested_content_sections": {"banner_section": "..."}}]
    IMPORTANT: This function only prints valid JSON, nothing else.`,
}

var PrintRecommendedSitePagesWithAPIs = Function{
	Name: "print_recommended_site_pages_with_apis",
	Doc: `    INPUT: Takes in a WEBSITE SPECIFICATION with PROJECT_DESCRIPTION, PAGES,
    INTERNAL_API_ROUTES and EXTERNAL_API_ROUTES.
    FUNCTION: Assigns every API route to the page that uses it.
    OUTPUT FORMAT: A JSON object mapping each page name to an array of
    {"api_route": string, "method": string, "route_type": "internal" | "external"}.
    Pages that need no routes map to []. ALL API ROUTES MUST BE ACCOUNTED FOR.
    IMPORTANT: This function only prints valid JSON, nothing else.`,
}

var PrintRecommendedSiteMainColours = Function{
	Name: "print_recommended_site_main_colours",
	Doc: `    INPUT: Takes in a PROJECT_DESCRIPTION and the WEBSITE_CONTENT planned for each page.
    FUNCTION: Picks up to 3 brand colours that suit the site.
    OUTPUT FORMAT: A JSON array of hex colour strings, e.g. ["#1F2937", "#F59E0B", "#F9FAFB"].
    IMPORTANT: This function only prints valid JSON, nothing else.`,
}

var PrintSVGLogo = Function{
	Name: "print_svg_logo",
	Doc: `    INPUT: Takes in a PROJECT_DESCRIPTION and BRAND_COLOURS.
    FUNCTION: Draws a simple, recognisable icon for the brand as an SVG using the colours.
    This function only prints the SVG markup, nothing else.`,
}

var PrintCompletedLogoWithBrandName = Function{
	Name: "print_completed_logo_with_brand_name_react_component",
	Doc: `    INPUT: Takes in a WEBSITE SPECIFICATION with an SVG_LOGO and the PROJECT_DESCRIPTION.
    FUNCTION: Writes a React TypeScript component "Logo" that renders the SVG next to a short
    brand name suited to the project. Styled with Tailwind classes. Default export.
    This function only prints the component source, nothing else.`,
}

var PrintHeaderNavigation = Function{
	Name: "print_header_navigation_react_component",
	Doc: `    INPUT: Takes in a WEBSITE_SPECIFICATION with PROJECT_DESCRIPTION,
    PAGES_WHICH_NEED_LINKS and COLOUR_SCHEME.
    FUNCTION: Writes a React TypeScript "Navigation" header component that renders the Logo
    component (import Logo from "./Logo") and links to every page, collapsing to a menu on
    small screens. Styled with Tailwind classes using the colour scheme. Default export.
    This function only prints the component source, nothing else.`,
}

var PrintFooterNavigation = Function{
	Name: "print_footer_navigation_react_component",
	Doc: `    INPUT: Takes in a WEBSITE_SPECIFICATION with PROJECT_DESCRIPTION,
    PAGES_WHICH_NEED_LINKS and COLOUR_SCHEME.
    FUNCTION: Writes a React TypeScript "Footer" component with links to every page and a
    copyright line. Styled with Tailwind classes using the colour scheme. Default export.
    This function only prints the component source, nothing else.`,
}

var PrintReactHook = Function{
	Name: "print_react_typescript_hook_component",
	Doc: `    INPUT: Takes in an API_ENDPOINTS_JSON_SCHEMA for the backend.
    FUNCTION: Writes one React TypeScript hook "useCall" built on axios with a typed function
    for every endpoint in the schema, request and response types derived from the schema,
    and loading and error state. The backend runs at http://127.0.0.1:8080.
    This function only prints the hook source, nothing else.`,
}

var PrintHTMLWebpageContent = Function{
	Name: "print_html_webpage_content_with_text",
	Doc: `    INPUT: Takes in a PAGE name and CONTENT_SECTION_SUGGESTIONS.
    FUNCTION: Writes the page as a JSX wireframe with real, engaging copy for every section.
    No header or footer. No data fetching.
    This function only prints the JSX, nothing else.`,
}

var PrintReactComponentWithAPIIntegration = Function{
	Name: "print_create_react_component_with_API_integration",
	Doc: `    INPUT: Takes in API_ENDPOINTS_RELATED_TO_COMPONENT and the REACT_HOOK_API_ENDPOINTS source.
    FUNCTION: Writes a React TypeScript component that calls each related endpoint through the
    useCall hook (import useCall from "../../hooks/useCall") and displays the results,
    including loading and error states. External routes are fetched with axios directly.
    This function only prints the component source, nothing else.`,
}

var PrintFullReactComponent = Function{
	Name: "print_create_full_react_component",
	Doc: `    INPUT: Takes in an API_COMPONENT and an HTML_WIREFRAME for the same page.
    FUNCTION: Merges both into one React TypeScript page component: the wireframe's content
    with the API component's data display placed where it fits. Default export.
    This function only prints the component source, nothing else.`,
}

var PrintComponentStyling = Function{
	Name: "print_give_component_fantastic_styling",
	Doc: `    INPUT: Takes in a REACT_COMPONENT.
    FUNCTION: Restyles the component with Tailwind classes so it looks polished and modern,
    responsive on all screen sizes. Logic, imports and exports are unchanged.
    This function only prints the component source, nothing else.`,
}
