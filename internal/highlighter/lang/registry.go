package lang

import (
	"path/filepath"
	"strings"

	"github.com/alecthomas/chroma/v2/lexers"

	"github.com/bethropolis/quill/internal/logger"
)

// The registry is filled during start-up and only read afterwards.
var (
	languages     []*Language
	extToLanguage = map[string]*Language{}
)

// Register adds a language to the registry.
// It must be called before any lookup, typically from RegisterLanguages.
func Register(lang *Language) {
	languages = append(languages, lang)
	for _, ext := range lang.Extensions {
		lowerExt := strings.ToLower(ext)
		if existing, ok := extToLanguage[lowerExt]; ok {
			logger.Warnf("Extension %s already registered to %s, overriding with %s",
				lowerExt, existing.Name, lang.Name)
		}
		extToLanguage[lowerExt] = lang
	}
	logger.DebugTagf("highlight", "Registered language: %s with extensions: %v", lang.Name, lang.Extensions)
}

// GetForFile returns the language for a file path, or nil.
// Registered extensions win; otherwise chroma's filename patterns are consulted.
func GetForFile(filePath string) *Language {
	ext := strings.ToLower(filepath.Ext(filePath))
	if lang, ok := extToLanguage[ext]; ok {
		return lang
	}
	if l := lexers.Match(filepath.Base(filePath)); l != nil {
		return GetByName(l.Config().Name)
	}
	return nil
}

// GetByName finds a registered language by display name, ignoring case.
func GetByName(name string) *Language {
	for _, lang := range languages {
		if strings.EqualFold(lang.Name, name) {
			return lang
		}
	}
	return nil
}

// GetAll returns all registered languages
func GetAll() []*Language {
	result := make([]*Language, len(languages))
	copy(result, languages)
	return result
}
