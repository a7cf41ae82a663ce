package models

// Flash levels map onto the alert styles used by the templates.
const (
	FlashSuccess = "success"
	FlashDanger  = "danger"
)

// Flash is a one-shot status message scoped to a session. It is set by a
// controller action and consumed by exactly one subsequent render.
type Flash struct {
	Message string `json:"message"`
	Level   string `json:"level"`
}
