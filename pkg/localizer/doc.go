// Package localizer keeps user-facing messages in the language of the
// authenticated user. It is the locale-loader collaborator of the session
// manager: after every token-bearing event the manager asks it to sync the
// active locale with the preference stored on the user profile.
//
// Translation bundles are flat key-to-message maps per locale, loadable from
// YAML or plain maps. Locale selection goes through golang.org/x/text
// language matching so "es-UY" resolves to an "es" bundle.
//
// # Usage
//
//	loc, err := localizer.New(
//	    localizer.WithYAML(bundleBytes),
//	    localizer.WithDefaultLocale("es"),
//	    localizer.WithAfterChange(func(locale string) { reloadDayjs(locale) }),
//	)
//
//	msg := loc.T("invalid_credentials")
package localizer
