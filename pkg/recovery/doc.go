/*
Package recovery turns a fatal error into a visible, recoverable state.

Instead of exiting, the process shows the error in the bar, waits for the
operator to send domain.RestartSignal (SIGUSR2) and then replaces its own image
with the same executable. The replacement is started with RestartArgs, which
tells the new image that the protocol header has already been written.

	Render ──▶ Await ──▶ Replace
	   │         │          │
	   └─────────┴──────────┴──▶ Failed (error returned, exit status 1)
*/
package recovery
