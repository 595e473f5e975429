package config

type OAuthConfig interface {
	GetClientID() string
	GetClientSecret() string
	GetRedirectURL() string
}

type OAuth struct{}

var _ OAuthConfig = OAuth{}

func (OAuth) GetClientID() string {
	return GetEnv("GSC_CLIENT_ID", "")
}

func (OAuth) GetClientSecret() string {
	return GetEnv("GSC_CLIENT_SECRET", "")
}

// GetRedirectURL returns the redirect registered for the out-of-band code
// flow; the default shows the code to the user for manual copy-paste.
func (OAuth) GetRedirectURL() string {
	return GetEnv("GSC_REDIRECT_URL", "urn:ietf:wg:oauth:2.0:oob")
}
