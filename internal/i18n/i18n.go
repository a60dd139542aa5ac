// Package i18n provides internationalization support for the cargo loader.
// It handles translation of user-facing messages and error messages.
package i18n

import (
	"strings"
	"sync"

	"github.com/gin-gonic/gin"
)

const (
	// DefaultLocale is the default language locale (English).
	DefaultLocale = "en"
	// AcceptLanguageHeader is the HTTP header name for language preference.
	AcceptLanguageHeader = "Accept-Language"
)

var (
	// defaultTranslator is the singleton translator instance.
	defaultTranslator *Translator
	translatorOnce    sync.Once
)

// Translator handles message translation for different locales.
type Translator struct {
	messages map[string]map[string]string
}

// NewTranslator creates a new translator with the default messages.
func NewTranslator() *Translator {
	return &Translator{
		messages: getDefaultMessages(),
	}
}

// GetTranslator returns the default singleton translator instance.
func GetTranslator() *Translator {
	translatorOnce.Do(func() {
		defaultTranslator = NewTranslator()
	})
	return defaultTranslator
}

// Translate returns the translated message for the given key and locale.
// Falls back to DefaultLocale if the locale is not found.
func (t *Translator) Translate(key, locale string) string {
	if locale == "" {
		locale = DefaultLocale
	}

	localeMessages, ok := t.messages[locale]
	if !ok {
		localeMessages = t.messages[DefaultLocale]
	}

	msg, ok := localeMessages[key]
	if !ok {
		// Fallback to default locale
		if defaultMessages := t.messages[DefaultLocale]; defaultMessages != nil {
			if fallbackMsg, exists := defaultMessages[key]; exists {
				return fallbackMsg
			}
		}
		return key
	}

	return msg
}

// GetLocale picks the first supported language of the Accept-Language
// header, in the order the client listed them. Region subtags are ignored
// and quality values are not weighed.
func GetLocale(c *gin.Context) string {
	for _, part := range strings.Split(c.GetHeader(AcceptLanguageHeader), ",") {
		lang, _, _ := strings.Cut(part, ";")
		lang, _, _ = strings.Cut(strings.TrimSpace(lang), "-")
		lang = strings.ToLower(lang)
		if _, ok := GetTranslator().messages[lang]; ok {
			return lang
		}
	}
	return DefaultLocale
}

// getDefaultMessages returns the default message translations.
func getDefaultMessages() map[string]map[string]string {
	return map[string]map[string]string{
		"en": {
			"error.invalid_request":      "Invalid request",
			"error.invalid_request_body": "Invalid request body",
			"error.validation_failed":    "The request has invalid fields",
			"error.internal_error":       "An unexpected error occurred",
			"error.unauthorized":         "Unauthorized",
			"error.api_key_required":     "API key is required",
			"error.invalid_api_key":      "Invalid API key",
			"error.not_found":            "Not found",
			"error.plan_not_found":       "Load plan not found",
			"error.rate_limit_exceeded":  "Too many requests, please try again later",
			"error.invalid_token":        "Invalid or expired token",
			"error.token_required":       "Authentication token is required",
			"error.timeout":              "The request took too long",
			"error.storage_unavailable":  "Storage is not available",
			"error.file_required":        "A file upload is required",
			"error.file_too_large":       "The uploaded file is too large",
			"error.unsupported_file":     "Only .csv and .xlsx files are supported",
			"error.no_cargo_rows":        "The file contains no cargo rows",
		},
		"pt": {
			"error.invalid_request":      "Requisição inválida",
			"error.invalid_request_body": "Corpo da requisição inválido",
			"error.validation_failed":    "A requisição possui campos inválidos",
			"error.internal_error":       "Ocorreu um erro inesperado",
			"error.unauthorized":         "Não autorizado",
			"error.api_key_required":     "Chave de API é obrigatória",
			"error.invalid_api_key":      "Chave de API inválida",
			"error.not_found":            "Não encontrado",
			"error.plan_not_found":       "Plano de carga não encontrado",
			"error.rate_limit_exceeded":  "Muitas requisições, tente novamente mais tarde",
			"error.invalid_token":        "Token inválido ou expirado",
			"error.token_required":       "Token de autenticação é obrigatório",
			"error.timeout":              "A requisição demorou demais",
			"error.storage_unavailable":  "Armazenamento indisponível",
			"error.file_required":        "É necessário enviar um arquivo",
			"error.file_too_large":       "O arquivo enviado é grande demais",
			"error.unsupported_file":     "Apenas arquivos .csv e .xlsx são suportados",
			"error.no_cargo_rows":        "O arquivo não contém linhas de carga",
		},
		"nl": {
			"error.invalid_request":      "Ongeldig verzoek",
			"error.invalid_request_body": "Ongeldige aanvraag body",
			"error.validation_failed":    "Het verzoek bevat ongeldige velden",
			"error.internal_error":       "Er is een onverwachte fout opgetreden",
			"error.unauthorized":         "Niet geautoriseerd",
			"error.api_key_required":     "API-sleutel is vereist",
			"error.invalid_api_key":      "Ongeldige API-sleutel",
			"error.not_found":            "Niet gevonden",
			"error.plan_not_found":       "Laadplan niet gevonden",
			"error.rate_limit_exceeded":  "Te veel verzoeken, probeer het later opnieuw",
			"error.invalid_token":        "Ongeldig of verlopen token",
			"error.token_required":       "Authenticatietoken is vereist",
			"error.timeout":              "Het verzoek duurde te lang",
			"error.storage_unavailable":  "Opslag is niet beschikbaar",
			"error.file_required":        "Een bestand uploaden is vereist",
			"error.file_too_large":       "Het geüploade bestand is te groot",
			"error.unsupported_file":     "Alleen .csv- en .xlsx-bestanden worden ondersteund",
			"error.no_cargo_rows":        "Het bestand bevat geen ladingregels",
		},
	}
}
