package dto

// PreferencesPayload is both the read and write shape for user preferences.
type PreferencesPayload struct {
	Theme    string `json:"theme"`
	Language string `json:"language"`
}
