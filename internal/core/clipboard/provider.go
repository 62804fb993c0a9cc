package clipboard

import (
	"github.com/atotto/clipboard"

	"github.com/bethropolis/quill/internal/logger"
)

// Provider reads and writes clipboard text.
type Provider interface {
	Read() (string, error)
	Write(text string) error
}

// Register is an in-process clipboard.
type Register struct {
	text string
}

func (r *Register) Read() (string, error) { return r.text, nil }

func (r *Register) Write(text string) error {
	r.text = text
	return nil
}

// System uses the desktop clipboard. When the platform has no clipboard
// tool it falls back to an in-process register.
type System struct {
	fallback Register
}

func (s *System) Read() (string, error) {
	if clipboard.Unsupported {
		return s.fallback.Read()
	}
	text, err := clipboard.ReadAll()
	if err != nil {
		logger.Warnf("clipboard: system read failed, using register: %v", err)
		return s.fallback.Read()
	}
	return text, nil
}

func (s *System) Write(text string) error {
	// Keep the register current so a later failed read still pastes.
	s.fallback.text = text
	if clipboard.Unsupported {
		return nil
	}
	return clipboard.WriteAll(text)
}

// New returns the system clipboard when system is true and a register otherwise.
func New(system bool) Provider {
	if system {
		if clipboard.Unsupported {
			logger.Infof("clipboard: no system clipboard available, using internal register")
		}
		return &System{}
	}
	return &Register{}
}
