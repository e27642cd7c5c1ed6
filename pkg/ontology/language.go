package ontology

import (
	"strings"

	"golang.org/x/text/language"
)

// FallbackLanguage is assumed for labels without a language tag and tried
// last when resolving display names.
const FallbackLanguage = "en"

// NormalizeLanguage canonicalizes a BCP 47 tag ("EN-us" → "en-US"). An empty
// tag normalizes to [FallbackLanguage]; tags that do not parse are lowercased
// and kept.
func NormalizeLanguage(tag string) string {
	tag = strings.TrimSpace(tag)
	if tag == "" {
		return FallbackLanguage
	}
	t, err := language.Parse(tag)
	if err != nil {
		return strings.ToLower(tag)
	}
	return t.String()
}

// baseLanguage returns the primary language subtag of a normalized tag, or
// "" when the tag has none beyond itself.
func baseLanguage(tag string) string {
	t, err := language.Parse(tag)
	if err != nil {
		base, _, found := strings.Cut(tag, "-")
		if !found {
			return ""
		}
		return base
	}
	b, _ := t.Base()
	if s := b.String(); s != tag {
		return s
	}
	return ""
}

// DisplayName picks the label shown for a class: the label in lang, then in
// the base of lang, then in [FallbackLanguage], then id.
func DisplayName(id string, labels []Label, lang string) string {
	lang = NormalizeLanguage(lang)
	if text, ok := lookupLabel(labels, lang); ok {
		return text
	}
	if base := baseLanguage(lang); base != "" {
		if text, ok := lookupLabel(labels, base); ok {
			return text
		}
	}
	if text, ok := lookupLabel(labels, FallbackLanguage); ok {
		return text
	}
	return id
}

func lookupLabel(labels []Label, lang string) (string, bool) {
	lang = NormalizeLanguage(lang)
	for _, l := range labels {
		if l.Lang == lang {
			return l.Text, true
		}
	}
	return "", false
}
