package i18n

import (
	"sort"
	"strings"
	"sync"
)

// Translator retrieves localized messages for issue codes and outcome keys.
// data fills the {placeholders} of the message (for example "name" or "at").
type Translator interface {
	Message(code string, data map[string]string) string
}

// dictTranslator is the built-in dictionary-based Translator.
type dictTranslator struct{ lang string }

var catalog = map[string]map[string]string{
	"en": {
		"required":          "missing required property '{name}' at {at}",
		"invalid_type":      "'{name}' expected {expected}, got {got} at {at}",
		"invalid_type_root": "document expected {expected}, got {got}",
		"unknown_key":       "unknown property '{name}' at {at}",
		"duplicate_key":     "duplicate key '{name}' at {at}",
		"parse_error":       "parse error",
		"truncated":         "input exceeds the size limit",
		"more_issues":       "(+{n} more)",

		"outcome.valid":            "✅ The JSON file '{file}' is valid according to the schema.",
		"outcome.file_not_found":   "❌ File not found: {file}",
		"outcome.parse_error":      "❌ JSON Syntax Error: {detail}",
		"outcome.schema_error":     "❌ Schema Error: {detail}",
		"outcome.validation_error": "❌ Invalid JSON: {detail}",
		"outcome.unexpected_error": "❌ An unexpected error occurred: {detail}",
	},
	"fr": {
		"required":          "propriété obligatoire '{name}' absente dans {at}",
		"invalid_type":      "'{name}' : {expected} attendu, {got} reçu dans {at}",
		"invalid_type_root": "document : {expected} attendu, {got} reçu",
		"unknown_key":       "propriété inconnue '{name}' dans {at}",
		"duplicate_key":     "clé '{name}' dupliquée dans {at}",
		"parse_error":       "erreur d'analyse",
		"truncated":         "l'entrée dépasse la taille maximale",
		"more_issues":       "(+{n} autres)",

		"outcome.valid":            "✅ Le fichier JSON '{file}' est conforme au schéma.",
		"outcome.file_not_found":   "❌ Fichier introuvable : {file}",
		"outcome.parse_error":      "❌ Erreur de syntaxe JSON : {detail}",
		"outcome.schema_error":     "❌ Erreur de schéma : {detail}",
		"outcome.validation_error": "❌ JSON invalide : {detail}",
		"outcome.unexpected_error": "❌ Erreur inattendue : {detail}",
	},
}

func (t dictTranslator) Message(code string, data map[string]string) string {
	msg, ok := catalog[t.lang][code]
	if !ok {
		if msg, ok = catalog["en"][code]; !ok {
			return code
		}
	}
	return fill(msg, data)
}

func fill(msg string, data map[string]string) string {
	if len(data) == 0 {
		return msg
	}
	pairs := make([]string, 0, 2*len(data))
	for k, v := range data {
		pairs = append(pairs, "{"+k+"}", v)
	}
	return strings.NewReplacer(pairs...).Replace(msg)
}

var (
	mu                sync.RWMutex
	currentTranslator Translator = dictTranslator{lang: "en"}
)

// Languages lists the built-in catalogue languages.
func Languages() []string {
	out := make([]string, 0, len(catalog))
	for l := range catalog {
		out = append(out, l)
	}
	sort.Strings(out)
	return out
}

// SetLanguage switches the built-in Translator language. Unknown languages
// fall back to "en".
func SetLanguage(lang string) {
	if _, ok := catalog[lang]; !ok {
		lang = "en"
	}
	SetTranslator(dictTranslator{lang: lang})
}

// SetTranslator replaces the Translator implementation (not limited to the
// dictionary version). nil restores the English dictionary.
func SetTranslator(tr Translator) {
	if tr == nil {
		tr = dictTranslator{lang: "en"}
	}
	mu.Lock()
	currentTranslator = tr
	mu.Unlock()
}

// T fetches a message for the given code using the current Translator.
func T(code string, data map[string]string) string {
	mu.RLock()
	tr := currentTranslator
	mu.RUnlock()
	return tr.Message(code, data)
}
