package theme

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"sync"

	"github.com/bethropolis/quill/internal/logger"
)

var ErrThemeNotFound = errors.New("theme not found")

// Manager holds loaded themes and manages the active theme.
type Manager struct {
	themes      map[string]*Theme // lowercase name -> theme
	activeTheme *Theme
	themesDir   string
	mutex       sync.RWMutex
}

// NewManager loads the built-in presets and any .toml palettes in themesDir.
// Light is active until SetTheme is called.
func NewManager(themesDir string) *Manager {
	mgr := &Manager{
		themes:    make(map[string]*Theme),
		themesDir: themesDir,
	}
	mgr.loadBuiltinThemes()

	if themesDir != "" {
		if err := mgr.LoadThemesFromDir(); err != nil {
			logger.Warnf("Error loading themes from '%s': %v", themesDir, err)
		}
	}

	mgr.activeTheme = mgr.themes[Light.Name]
	logger.Debugf("Initial active theme set to: %s", mgr.activeTheme.Name)
	return mgr
}

// DefaultThemesDir returns the user theme directory, or "" if the config dir is unknown.
func DefaultThemesDir() string {
	configDir, err := os.UserConfigDir()
	if err != nil {
		logger.Warnf("Could not find user config dir: %v. Themes cannot be loaded from default location.", err)
		return ""
	}
	return filepath.Join(configDir, "quill", "themes")
}

func (m *Manager) loadBuiltinThemes() {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	for _, preset := range []Theme{Light, Dark} {
		t := preset
		m.themes[strings.ToLower(t.Name)] = &t
		logger.Debugf("Loaded built-in theme: %s", t.Name)
	}
}

// LoadThemesFromDir loads every .toml file in the themes directory.
// A missing directory is not an error.
func (m *Manager) LoadThemesFromDir() error {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	files, err := os.ReadDir(m.themesDir)
	if errors.Is(err, os.ErrNotExist) {
		logger.Debugf("Theme directory '%s' does not exist. No custom themes loaded.", m.themesDir)
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to read theme directory '%s': %w", m.themesDir, err)
	}

	loadedCount := 0
	for _, file := range files {
		if file.IsDir() || !strings.HasSuffix(strings.ToLower(file.Name()), ".toml") {
			continue
		}
		filePath := filepath.Join(m.themesDir, file.Name())
		theme, err := LoadThemeFromFile(filePath)
		if err != nil {
			logger.Warnf("Failed to load theme from '%s': %v", filePath, err)
			continue
		}

		key := strings.ToLower(theme.Name)
		if existing, ok := m.themes[key]; ok {
			logger.Warnf("Theme '%s' from '%s' overrides existing theme '%s'", theme.Name, filePath, existing.Name)
		}
		m.themes[key] = theme
		loadedCount++
	}
	logger.Infof("Loaded %d custom themes.", loadedCount)
	return nil
}

// Current returns the active theme.
func (m *Manager) Current() *Theme {
	m.mutex.RLock()
	defer m.mutex.RUnlock()
	return m.activeTheme
}

// SetTheme activates a theme by name (case-insensitive). A "chroma:<style>"
// name derives a palette from that chroma style on first use.
func (m *Manager) SetTheme(name string) error {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	key := strings.ToLower(strings.TrimSpace(name))
	theme, ok := m.themes[key]
	if !ok && strings.HasPrefix(key, ChromaPrefix) {
		derived, err := FromChroma(strings.TrimPrefix(key, ChromaPrefix))
		if err != nil {
			return err
		}
		m.themes[key] = derived
		theme, ok = derived, true
	}
	if !ok {
		return fmt.Errorf("%w: '%s'", ErrThemeNotFound, name)
	}

	if m.activeTheme != theme {
		m.activeTheme = theme
		logger.Infof("Active theme set to: %s", theme.Name)
	}
	return nil
}

// Toggle switches between the light and dark presets.
func (m *Manager) Toggle() *Theme {
	next := Dark.Name
	if m.Current().IsDark {
		next = Light.Name
	}
	if err := m.SetTheme(next); err != nil {
		logger.Warnf("theme toggle: %v", err)
	}
	return m.Current()
}

// ListThemes returns the names of all loaded themes, sorted.
func (m *Manager) ListThemes() []string {
	m.mutex.RLock()
	defer m.mutex.RUnlock()

	names := make([]string, 0, len(m.themes))
	for _, theme := range m.themes {
		names = append(names, theme.Name)
	}
	slices.Sort(names)
	return names
}

// GetTheme returns a loaded theme by name (case-insensitive).
func (m *Manager) GetTheme(name string) (*Theme, bool) {
	m.mutex.RLock()
	defer m.mutex.RUnlock()
	theme, ok := m.themes[strings.ToLower(name)]
	return theme, ok
}
