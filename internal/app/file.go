package app

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/bethropolis/quill/internal/highlighter"
	"github.com/bethropolis/quill/internal/logger"
)

var ErrNoFileName = errors.New("no file name")

// loadFile reads path into the editor and picks the highlight mode from its
// extension. A path that does not exist yet gives an empty document.
func (a *App) loadFile(path string) error {
	if path == "" {
		a.filePath = ""
		a.editor.Load("", "")
		a.editor.DetectMode("")
		a.applyWrap()
		return nil
	}

	data, err := os.ReadFile(path)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		logger.Infof("App: '%s' does not exist, starting a new file", path)
		data = nil
	case err != nil:
		return fmt.Errorf("failed to read '%s': %w", path, err)
	default:
		a.rememberFile(path)
	}

	a.filePath = path
	text := strings.ReplaceAll(string(data), "\r\n", "\n")
	a.editor.Load(text, path)
	a.editor.DetectMode(path)
	a.applyWrap()
	return nil
}

// openFile replaces the document with an existing file. A path that no
// longer exists is dropped from the recent files.
func (a *App) openFile(path string) error {
	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			a.recent.Remove(path)
			a.saveRecent()
			return fmt.Errorf("'%s': %w", path, fs.ErrNotExist)
		}
		return fmt.Errorf("failed to open '%s': %w", path, err)
	}
	return a.loadFile(path)
}

// newFile replaces the document with an empty, untitled one.
func (a *App) newFile() {
	_ = a.loadFile("")
	logger.Infof("App: new file")
}

// currentPath returns the document's path, "" while it is untitled.
func (a *App) currentPath() string {
	return a.filePath
}

// applyWrap turns soft wrap on from the config unless the document is
// highlighted as code.
func (a *App) applyWrap() {
	a.editor.SetWrap(a.cfg.Editor.WordWrap && a.editor.Mode() == highlighter.PlainText)
}

// saveFile writes the document to the current path and returns that path.
// Saving may switch the highlight mode when the extension is recognized.
func (a *App) saveFile() (string, error) {
	if a.filePath == "" {
		return "", ErrNoFileName
	}

	perm := fs.FileMode(0o644)
	if info, err := os.Stat(a.filePath); err == nil {
		perm = info.Mode().Perm()
	}
	if err := os.WriteFile(a.filePath, []byte(a.editor.Text()), perm); err != nil {
		return "", fmt.Errorf("failed to write '%s': %w", a.filePath, err)
	}

	a.editor.MarkSaved(a.filePath)
	if a.editor.Language() == nil {
		a.editor.DetectMode(a.filePath)
		a.applyWrap()
	}
	logger.Infof("App: saved '%s'", a.filePath)
	return a.filePath, nil
}

// saveFileAs writes the document to path and makes it the current path.
// On failure the previous path is kept.
func (a *App) saveFileAs(path string) (string, error) {
	previous := a.filePath
	a.filePath = path
	saved, err := a.saveFile()
	if err != nil {
		a.filePath = previous
		return "", err
	}
	a.rememberFile(saved)
	return saved, nil
}

// rememberFile puts path at the front of the recent files and stores them.
func (a *App) rememberFile(path string) {
	a.recent.Add(path)
	a.saveRecent()
}

func (a *App) saveRecent() {
	if err := a.recent.Save(); err != nil {
		logger.Warnf("App: %v", err)
	}
}
