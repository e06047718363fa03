package domain

// SystemSettings is the singleton record controlling public form availability.
type SystemSettings struct {
	FormsEnabled bool
}

// SettingsPatch is a partial update; nil fields are left unchanged.
type SettingsPatch struct {
	FormsEnabled *bool
}

// Apply merges the patch onto s and returns the result.
func (p SettingsPatch) Apply(s SystemSettings) SystemSettings {
	if p.FormsEnabled != nil {
		s.FormsEnabled = *p.FormsEnabled
	}
	return s
}

// DefaultSettings is the seed state: forms open.
func DefaultSettings() SystemSettings {
	return SystemSettings{FormsEnabled: true}
}
