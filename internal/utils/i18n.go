package utils

// Minimal server-side i18n for fixed keys. UI strings live in the frontend;
// the server only provides the generic failure toasts and health text.

var translations = map[string]map[string]string{
	"pt": {
		"health.ok":    "ok",
		"error.load":   "Não foi possível carregar os dados",
		"error.save":   "Não foi possível salvar os dados",
		"error.export": "Não foi possível exportar os dados",
	},
	"en": {
		"health.ok":    "ok",
		"error.load":   "Could not load data",
		"error.save":   "Could not save data",
		"error.export": "Could not export data",
	},
}

// T returns the translated string for key in locale; falls back to
// Portuguese, then to the key itself.
func T(locale, key string) string {
	if m, ok := translations[locale]; ok {
		if v, ok := m[key]; ok {
			return v
		}
	}
	if v, ok := translations["pt"][key]; ok {
		return v
	}
	return key
}
