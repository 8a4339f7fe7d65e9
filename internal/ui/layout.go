package ui

// Terminal width thresholds for responsive layouts.
const (
	// LayoutCompactWidth is the width below which the trip table drops the
	// id column and shortens addresses.
	LayoutCompactWidth = 90

	// LayoutWideWidth is the width from which the region column is shown.
	LayoutWideWidth = 130
)

// Rows taken by the header, command bar and footer.
const chromeRows = 4

// LogTailLines is how many log records the log view loads.
const LogTailLines = 500
