package dto

// PreferencesUpdateRequest sets either or both preferences.
type PreferencesUpdateRequest struct {
	Language *string `json:"language"`
	Theme    *string `json:"theme"`
}
