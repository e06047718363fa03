package dto

import "github.com/eventology/recruiting-service/internal/domain"

// SettingsResponse response.
type SettingsResponse struct {
	FormsEnabled bool `json:"forms_enabled"`
}

// SettingsPatchRequest is a partial update; absent fields stay unchanged.
type SettingsPatchRequest struct {
	FormsEnabled *bool `json:"forms_enabled"`
}

// Patch converts the request into a domain patch.
func (r SettingsPatchRequest) Patch() domain.SettingsPatch {
	return domain.SettingsPatch{FormsEnabled: r.FormsEnabled}
}

// NewSettingsResponse maps domain settings.
func NewSettingsResponse(settings domain.SystemSettings) SettingsResponse {
	return SettingsResponse{FormsEnabled: settings.FormsEnabled}
}
