package accounts

import (
	"errors"

	"github.com/julianstephens/murojaah/internal/constants"
)

// Code identifies a sign-in or sign-up failure the user can act on.
type Code string

const (
	CodeUserNotFound      Code = "auth/user-not-found"
	CodeWrongPassword     Code = "auth/wrong-password"
	CodeInvalidEmail      Code = "auth/invalid-email"
	CodeTooManyRequests   Code = "auth/too-many-requests"
	CodeEmailAlreadyInUse Code = "auth/email-already-in-use"
	CodeWeakPassword      Code = "auth/weak-password"
)

// AuthError is returned by the directory for every user-facing failure.
type AuthError struct {
	Code Code
}

func (e *AuthError) Error() string { return string(e.Code) }

func authErr(code Code) error { return &AuthError{Code: code} }

// CodeOf extracts the auth code from err, or "" for any other error.
func CodeOf(err error) Code {
	var ae *AuthError
	if errors.As(err, &ae) {
		return ae.Code
	}
	return ""
}

// Op names the user action a message is shown for.
type Op string

const (
	OpSignIn  Op = "sign-in"
	OpSignUp  Op = "sign-up"
	OpSignOut Op = "sign-out"
)

var messages = map[constants.Language]map[Code]string{
	constants.LangIndonesian: {
		CodeUserNotFound:      "Email tidak terdaftar",
		CodeWrongPassword:     "Password salah",
		CodeInvalidEmail:      "Format email tidak valid",
		CodeTooManyRequests:   "Terlalu banyak percobaan. Coba lagi nanti",
		CodeEmailAlreadyInUse: "Email sudah terdaftar",
		CodeWeakPassword:      "Password terlalu lemah",
	},
	constants.LangEnglish: {
		CodeUserNotFound:      "Email is not registered",
		CodeWrongPassword:     "Wrong password",
		CodeInvalidEmail:      "Invalid email format",
		CodeTooManyRequests:   "Too many attempts. Try again later",
		CodeEmailAlreadyInUse: "Email is already registered",
		CodeWeakPassword:      "Password is too weak",
	},
}

var fallbacks = map[constants.Language]map[Op]string{
	constants.LangIndonesian: {
		OpSignIn:  "Terjadi kesalahan saat masuk",
		OpSignUp:  "Terjadi kesalahan saat mendaftar",
		OpSignOut: "Gagal keluar dari aplikasi",
	},
	constants.LangEnglish: {
		OpSignIn:  "Something went wrong while signing in",
		OpSignUp:  "Something went wrong while signing up",
		OpSignOut: "Failed to sign out",
	},
}

// codesByOp lists which codes each action reports; anything else gets the
// action's generic message.
var codesByOp = map[Op]map[Code]bool{
	OpSignIn: {
		CodeUserNotFound:    true,
		CodeWrongPassword:   true,
		CodeInvalidEmail:    true,
		CodeTooManyRequests: true,
	},
	OpSignUp: {
		CodeEmailAlreadyInUse: true,
		CodeInvalidEmail:      true,
		CodeWeakPassword:      true,
	},
}

// Message returns the localized text shown for err during op. Unknown
// languages fall back to Indonesian.
func Message(op Op, err error, lang constants.Language) string {
	if _, ok := messages[lang]; !ok {
		lang = constants.LangIndonesian
	}
	if code := CodeOf(err); code != "" && codesByOp[op][code] {
		return messages[lang][code]
	}
	return fallbacks[lang][op]
}
