package sanitize

import (
	"regexp"
	"strings"
)

// Mitigación básica: quitamos los caracteres que abren HTML/atributos.
var unsafeChars = strings.NewReplacer("<", "", ">", "", `"`, "", "'", "", "`", "")

// Forma local@dominio.tld, sin validar RFC completo.
var emailRe = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// Input limpia texto libre y recorta espacios.
func Input(s string) string {
	return strings.TrimSpace(unsafeChars.Replace(s))
}

func IsValidEmail(email string) bool {
	return emailRe.MatchString(email)
}
