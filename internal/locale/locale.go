// Package locale carries the Arabic and French UI copy. The original
// platform shipped one component fork per language; here a single view
// layer is parameterized by one of these bundles.
package locale

// Locale is a language bundle: label lookup plus text direction.
type Locale struct {
	Code   string
	Dir    string
	labels map[string]string
}

// Arabic is the reader site's default language.
func Arabic() *Locale {
	return &Locale{Code: "ar", Dir: "rtl", labels: arabicLabels}
}

// French is the dashboard's default language.
func French() *Locale {
	return &Locale{Code: "fr", Dir: "ltr", labels: frenchLabels}
}

// Get returns the bundle for a language code, defaulting to Arabic.
func Get(code string) *Locale {
	if code == "fr" {
		return French()
	}
	return Arabic()
}

// T looks a label up. Unknown keys come back verbatim so a missing
// translation is visible instead of blank.
func (l *Locale) T(key string) string {
	if text, ok := l.labels[key]; ok {
		return text
	}
	return key
}

// RTL reports whether the language renders right to left.
func (l *Locale) RTL() bool {
	return l.Dir == "rtl"
}
