package aifunc

var PrintBackendWebserverCode = Function{
	Name: "print_backend_webserver_code",
	Doc: `    INPUT: Takes in a CODE TEMPLATE for a web server and a PROJECT DESCRIPTION.
    FUNCTION: Rewrites the template so the server implements the project description,
    persisting data to a local JSON file where storage is needed. Routes the template does
    not need are removed.
    IMPORTANT: The server listens on 127.0.0.1:8080. Use the template's language and
    dependencies only.
    This function only prints the full source file, nothing else. No markdown fences.`,
}

var PrintImprovedWebserverCode = Function{
	Name: "print_improved_webserver_code",
	Doc: `    INPUT: Takes in the current web server source and the PROJECT DESCRIPTION.
    FUNCTION: Improves the code: fills missing routes, validates requests, adds error handling,
    enables CORS for local origins. Behaviour described by the project must keep working.
    This function only prints the full source file, nothing else. No markdown fences.`,
}

var PrintFixedCode = Function{
	Name: "print_fixed_code",
	Doc: `    INPUT: Takes in BROKEN CODE and the ERROR BUGS reported by the compiler.
    FUNCTION: Removes the bugs so the code builds. Changes nothing unrelated to the errors.
    This function only prints the full corrected source file, nothing else.`,
}

var PrintRESTAPIEndpoints = Function{
	Name: "print_rest_api_endpoints",
	Doc: `    INPUT: Takes in web server source code.
    FUNCTION: Lists every REST endpoint the code serves.
    OUTPUT FORMAT: A JSON array of objects:
    [
      {
        "route": "/item/{id}",
        "method": "get",              // get, post, put, delete
        "is_route_dynamic": true,     // true when the path has parameters
        "request_body": "None",       // JSON shape or "None"
        "response": {"id": "number", "name": "string"}
      }
    ]
    IMPORTANT: This function only prints valid JSON, nothing else.`,
}
