package repository

// PreferenceRepository stores small UI preferences unrelated to
// authentication, kept beside the credential slot in the same local
// database.
type PreferenceRepository interface {
	InstallPromptDismissed() (bool, error)
	SetInstallPromptDismissed(dismissed bool) error
}
