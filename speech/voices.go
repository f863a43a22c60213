package speech

import "strings"

// langTags maps short language codes to BCP-47 tags. Regional variants
// ("hi-IN") pass through unchanged.
var langTags = map[string]string{
	"en": "en-US",
	"hi": "hi-IN",
	"kn": "kn-IN",
	"ta": "ta-IN",
	"te": "te-IN",
	"ml": "ml-IN",
	"mr": "mr-IN",
	"bn": "bn-IN",
	"gu": "gu-IN",
	"pa": "pa-IN",
	"ur": "ur-PK",
	"or": "or-IN",
	"as": "as-IN",
}

// neuralVoices maps BCP-47 tags to a preferred neural voice per language.
var neuralVoices = map[string]string{
	"en-US": "en-US-JennyNeural",
	"hi-IN": "hi-IN-SwaraNeural",
	"kn-IN": "kn-IN-SapnaNeural",
	"ta-IN": "ta-IN-PallaviNeural",
	"te-IN": "te-IN-ShrutiNeural",
	"ml-IN": "ml-IN-SobhanaNeural",
	"mr-IN": "mr-IN-AarohiNeural",
	"bn-IN": "bn-IN-TanishaaNeural",
	"gu-IN": "gu-IN-DhwaniNeural",
	"pa-IN": "pa-IN-OjasveeNeural",
	"ur-PK": "ur-PK-UzmaNeural",
}

// Tag resolves a language code ("kn", "hi-IN") to a BCP-47 tag. Unknown
// languages fall back to en-US.
func Tag(language string) string {
	lang := strings.ToLower(strings.TrimSpace(language))
	if lang == "" {
		return "en-US"
	}
	if strings.Contains(lang, "-") {
		// already a regional tag
		parts := strings.SplitN(lang, "-", 2)
		return parts[0] + "-" + strings.ToUpper(parts[1])
	}
	if tag, ok := langTags[lang]; ok {
		return tag
	}
	return "en-US"
}

// VoiceFor returns the preferred voice name for a language, falling back
// to the English voice for unsupported languages.
func VoiceFor(language string) string {
	tag := Tag(language)
	if v, ok := neuralVoices[tag]; ok {
		return v
	}
	return neuralVoices["en-US"]
}
