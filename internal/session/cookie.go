package session

import (
	"net/http"
)

const (
	// CookieName carries the session token. The __Host- prefix pins the
	// cookie to Secure + Path=/ with no Domain attribute.
	CookieName = "__Host-session"

	// Registration bridge cookies carry client-held state between the
	// identify step and the collect-details step of registration.
	RegistrationEmailCookie    = "registration_email"
	RegistrationTypeCookie     = "registration_type"
	RegistrationPasswordCookie = "registration_password"
)

// secureCookie builds a browser-session cookie that is never sent over
// plaintext, never readable by page scripts, and never replayed
// cross-site. No Expires/MaxAge: the browser drops it when it closes.
func secureCookie(name, value string) *http.Cookie {
	return &http.Cookie{
		Name:     name,
		Value:    value,
		Path:     "/",
		HttpOnly: true,
		Secure:   true,
		SameSite: http.SameSiteStrictMode,
	}
}

func expiredCookie(name string) *http.Cookie {
	c := secureCookie(name, "")
	c.MaxAge = -1
	return c
}

// SetSessionCookie attaches the session token to the client.
func SetSessionCookie(w http.ResponseWriter, token string) {
	http.SetCookie(w, secureCookie(CookieName, token))
}

// ClearSessionCookie removes the session cookie from the client.
func ClearSessionCookie(w http.ResponseWriter) {
	http.SetCookie(w, expiredCookie(CookieName))
}

// SetBridgeCookie stages a registration-in-progress value on the client.
func SetBridgeCookie(w http.ResponseWriter, name, value string) {
	http.SetCookie(w, secureCookie(name, value))
}

// ClearBridgeCookies drops all registration bridge state.
func ClearBridgeCookies(w http.ResponseWriter) {
	http.SetCookie(w, expiredCookie(RegistrationEmailCookie))
	http.SetCookie(w, expiredCookie(RegistrationTypeCookie))
	http.SetCookie(w, expiredCookie(RegistrationPasswordCookie))
}
