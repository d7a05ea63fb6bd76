package docs

var topics = []Topic{
	{
		Name:    "quickstart",
		Title:   "Quick Start",
		Summary: "Getting started with crew",
		Content: topicQuickstart,
	},
	{
		Name:    "config",
		Title:   "Configuration Reference",
		Summary: "Config file schema, fields, and defaults",
		Content: topicConfig,
	},
	{
		Name:    "agents",
		Title:   "Agents",
		Summary: "What each agent does and in which order",
		Content: topicAgents,
	},
	{
		Name:    "artifacts",
		Title:   "Artifacts Directory",
		Summary: "Structure of .crew/artifacts/ and what gets saved",
		Content: topicArtifacts,
	},
	{
		Name:    "errors",
		Title:   "Failures and Recovery",
		Summary: "Why a run stops and what to do about it",
		Content: topicErrors,
	},
}

const topicQuickstart = `Quick Start
===========

1. Initialize a project:

    mkdir cat-site && cd cat-site
    crew init

   This creates .crew/config.yaml, .env.example and web_server/ with a
   Go code template the backend developer rewrites.

2. Copy .env.example to .env and set OPEN_AI_KEY.

3. Preview the plan without executing:

    crew run --dry-run

4. Run for real:

    crew run "a website that shows random cat pictures from a public API"

   Omit the request to be asked for it. Before generated code is built
   or executed you are asked to confirm it is safe; --auto skips that.

5. Check progress or diagnose a failure:

    crew status
    crew doctor

CLI
---

  crew init                      Scaffold .crew/ and the code template
  crew run [request]             Run the agent pipeline
  crew run --auto                Approve generated code without asking
  crew run --with-frontend       Also build the React frontend
  crew run --dry-run             Print the agent plan
  crew status                    Show the last run
  crew doctor                    Ask the service to diagnose a failed run
  crew docs                      List documentation topics
  crew docs <topic>              Show a documentation topic
`

const topicConfig = `Configuration Reference
=======================

crew is configured by .crew/config.yaml. crew searches for it from the
current directory upwards; that directory is the project root.

Top-level fields
----------------

  name                 string   Required. Project name.
  provider             string   "openai" (default) or "command".
  model                string   Model name. Default: gpt-4.
  temperature          float    0 to 2. Default: 0.1.
  base-url             string   Chat completions endpoint.
                                Default: https://api.openai.com/v1/chat/completions
  requests-per-minute  int      Client-side rate limit. 0 (default) means none.
  command              list     Provider "command" only: argv of a CLI that
                                takes the prompt as its last argument and
                                prints the reply, e.g. ["claude", "-p"].

backend
-------

  dir                  string   Backend project dir. Default: web_server.
  template             string   Code template in dir. Default: code_template.go.tmpl.
                                Must exist.
  main                 string   File the generated server is written to.
                                Default: main.go.
  schema               string   Endpoint schema written after a good build.
                                Default: api_endpoints.json.
  build                list     Build argv, run in dir. Default: [go, build, ./...].
  run                  list     Run argv, run in dir. Default: [go, run, .].
  address              string   Where the running server answers.
                                Default: http://127.0.0.1:8080.
  max-bugs             int      Failed builds tolerated in a row. Default: 2.

frontend
--------

  enabled              bool     Run the frontend developer. Also --with-frontend.
  dir                  string   React project dir. Default: web_app.
  build                list     Build argv, run in dir. Default: [yarn, build].
  max-failures         int      Failed builds tolerated for the whole run.
                                Default: 2.

probe
-----

  timeout              int      Seconds per HTTP check. Default: 5.
  warmup               int      Seconds to wait after starting the server.
                                Default: 5.

Environment
-----------

  OPEN_AI_KEY          Required for provider openai.
  OPEN_AI_ORG          Optional organization header.
  CREW_LOG_LEVEL       Level of the structured run log (debug, info, warn,
                       error). Default: info.

Variables are read from the environment first, then from .env at the
project root.

Example Config
--------------

  name: cat-site
  model: gpt-4
  temperature: 0.1
  backend:
    build: [go, build, ./...]
    run: [go, run, .]
  frontend:
    enabled: false
`

const topicAgents = `Agents
======

A run is a fixed pipeline. Each agent reads and extends the fact sheet
the previous one left behind; only one agent runs at a time.

Project Manager
  Turns your request into a one-line project description and starts
  the pipeline.

Solutions Architect
  Decides the project scope (CRUD, login and logout, external data).
  When external data is needed it lists candidate public API URLs and
  checks each one. URLs that answer with anything but 200 are dropped.
  URLs that cannot be reached at all are kept and reported.

Backend Developer
  Rewrites the code template into a web server for the project,
  improves it, then builds it with backend.build. A failed build is
  sent back for a fix together with the compiler errors; more than
  max-bugs failures in a row stop the run. After a good build it
  extracts the REST endpoints into backend.schema, starts the server
  with backend.run and checks every static GET route.

Frontend Developer (opt-in)
  Plans up to two pages, assigns every API route to a page, picks
  brand colours, then writes the Logo, header, footer, a data hook and
  each page into frontend.dir, building after every component. A
  failed build gets one fix attempt.

Confirmation gate
  Before generated code is built or run you are asked:

    1 or ok, y, yes     proceed
    2 or no, n, abort   stop the run

  Anything else asks again. --auto answers yes.
`

const topicArtifacts = `Artifacts Directory
===================

Each run records its progress in .crew/artifacts/. A new run clears the
records of the previous one; generated code is not touched.

  state.json          Run ID, request, status, agent list and the index
                      of the current agent.
  timing.json         Start, end and duration of every agent.
  factsheet.json      The fact sheet after the last finished agent, or at
                      the point of failure.
  feedback/           Captured build errors, one file per failed build:
                        backend-developer-build-1.md
                        frontend-developer-build-1.md
  logs/run.log        Structured JSON log: every service call with its
                      latency, decode failures, probe results.

Generated code lives in the project directories:

  <backend.dir>/<backend.main>     The generated server.
  <backend.dir>/<backend.schema>   Its REST endpoints as JSON.
  <frontend.dir>/src/...           Generated React components.

Statuses
--------

  running       The run is in progress (or the process died).
  completed     Every agent finished.
  failed        An agent returned an error.
  interrupted   The run was cancelled with Ctrl-C or SIGTERM.
`

const topicErrors = `Failures and Recovery
=====================

A failed run stops at the first agent error. crew status shows the
agent that failed and the error; crew doctor sends the run state and
captured build errors to the service for a diagnosis.

Service unavailable
  Every call is retried once. A second failure stops the run. Check
  OPEN_AI_KEY, base-url and your network, then run again.

Malformed reply
  Replies that must be JSON are decoded strictly and never retried.
  A lower temperature usually helps.

Too many bugs
  The backend failed to build more than max-bugs times in a row. The
  errors are in .crew/artifacts/feedback/. Raise max-bugs or simplify
  the request.

Too many frontend failures
  The frontend build failed max-failures times over the run. Check the
  React project in frontend.dir builds on its own.

Operator abort
  You answered no at the confirmation gate, or stdin was closed.

Probe warnings
  A route that does not answer 200, or a server that will not start,
  is reported as a warning. The run continues.
`
