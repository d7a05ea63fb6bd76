package aifunc

var ConvertUserInputToGoal = Function{
	Name: "convert_user_input_to_goal",
	Doc: `    INPUT: Takes in a user request.
    FUNCTION: Converts the user request into a short, precise goal description for a website
    or web server build.
    IMPORTANT: Do not ask questions. Do not add commentary.
    OUTPUT EXAMPLE: build a website that handles users logging in and logging out and accepts
    payments.
    This function only prints the goal description, nothing else.`,
}

var DiagnoseFailedRun = Function{
	Name: "diagnose_failed_run",
	Doc: `    INPUT: Takes in the state of a failed crew run: run status, the agent that failed,
    timing, and captured build errors.
    FUNCTION: Explains what most likely went wrong and whether the problem lies in the
    generated code, the toolchain set-up, or the crew configuration. Suggests concrete fixes
    and whether re-running "crew run" is likely to succeed.
    This function prints a short plain-text diagnosis, nothing else.`,
}
