// Package app is the composition root of carpool.
//
// Run loads the TOML config and preferences, opens the JSON log file,
// builds the registry client and hands everything to the Bubble Tea UI,
// which blocks until the user quits or the context is cancelled.
//
// Errors before the UI starts (a malformed config, an unknown --open
// location, an unwritable log directory) are returned to main. Once the UI
// is running, registry failures are shown in the views and written to the
// log; they never end the program.
package app
