package aifunc

var PrintProjectScope = Function{
	Name: "print_project_scope",
	Doc: `    INPUT: Takes in a project description for a website build.
    FUNCTION: Decides which capabilities the build requires.
    OUTPUT FORMAT: A JSON object with exactly these boolean keys:
    {
      "is_crud_required": bool,          // create, read, update, delete of stored items
      "is_user_login_and_logout": bool,  // account login and logout
      "is_external_urls_required": bool  // data fetched from third-party APIs
    }
    IMPORTANT: This function only prints valid JSON, nothing else.`,
}

var PrintSiteURLs = Function{
	Name: "print_site_urls",
	Doc: `    INPUT: Takes in a project description for a website build.
    FUNCTION: Lists public, keyless API endpoints the build could fetch data from.
    OUTPUT FORMAT: A JSON array of absolute URL strings, e.g.
    ["https://api.binance.com/api/v3/exchangeInfo", "https://api.binance.com/api/v3/klines?symbol=BTCUSDT&interval=1d"]
    IMPORTANT: This function only prints a valid JSON array, nothing else.`,
}
