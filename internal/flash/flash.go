package flash

import (
	"encoding/base64"
	"net/http"
)

// Flash notices travel across a redirect in short-lived cookies,
// base64 encoded so messages with special characters survive the
// cookie value rules.
const (
	CookieError   = "flash_error"
	CookieSuccess = "flash_success"

	maxAge = 300 // seconds; enough time for one redirect
)

func Set(w http.ResponseWriter, name, message string, secure bool) {
	http.SetCookie(w, &http.Cookie{
		Name:     name,
		Value:    base64.StdEncoding.EncodeToString([]byte(message)),
		Path:     "/",
		MaxAge:   maxAge,
		HttpOnly: true,
		Secure:   secure,
		SameSite: http.SameSiteLaxMode,
	})
}

// Pop reads a flash cookie and clears it, returning "" when absent or
// undecodable.
func Pop(w http.ResponseWriter, r *http.Request, name string, secure bool) string {
	cookie, err := r.Cookie(name)
	if err != nil || cookie.Value == "" {
		return ""
	}

	http.SetCookie(w, &http.Cookie{
		Name:     name,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   secure,
		SameSite: http.SameSiteLaxMode,
	})

	decoded, err := base64.StdEncoding.DecodeString(cookie.Value)
	if err != nil {
		return ""
	}
	return string(decoded)
}
