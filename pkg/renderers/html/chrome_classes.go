package html

// ChromeClass is a typed identifier for semantic chrome CSS classes.
type ChromeClass string

const (
	ClassForm    ChromeClass = "fireform-card"
	ClassHeader  ChromeClass = "fireform-header"
	ClassGrid    ChromeClass = "fireform-grid"
	ClassField   ChromeClass = "fireform-field"
	ClassSlider  ChromeClass = "fireform-slider"
	ClassActions ChromeClass = "fireform-actions"
	ClassErrors  ChromeClass = "fireform-errors"
	ClassNotice  ChromeClass = "fireform-notice"
)
