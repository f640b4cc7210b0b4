package domain

import "fmt"

// Mode is one of the fixed assistant views. The set is closed: every switch over Mode
// handles all four values and treats anything else as a programming error.
type Mode int

const (
	ModeChat Mode = iota
	ModeERDExplain
	ModeCloudExplain
	ModeTroubleshoot
)

var modes = []Mode{ModeChat, ModeERDExplain, ModeCloudExplain, ModeTroubleshoot}

// Modes returns all modes in sidebar order.
func Modes() []Mode {
	out := make([]Mode, len(modes))
	copy(out, modes)
	return out
}

func (m Mode) Slug() string {
	switch m {
	case ModeChat:
		return "chat"
	case ModeERDExplain:
		return "erd"
	case ModeCloudExplain:
		return "cloud"
	case ModeTroubleshoot:
		return "troubleshoot"
	}
	return ""
}

func (m Mode) String() string {
	switch m {
	case ModeChat:
		return "ChatBot"
	case ModeERDExplain:
		return "ERD Diagram Interpreter"
	case ModeCloudExplain:
		return "Cloud Architecture Diagram Assistant"
	case ModeTroubleshoot:
		return "Oracle Troubleshooter"
	}
	return fmt.Sprintf("Mode(%d)", int(m))
}

// NeedsImage reports whether submits in this mode carry an uploaded diagram instead of text.
func (m Mode) NeedsImage() bool {
	return m == ModeERDExplain || m == ModeCloudExplain
}

func ParseMode(slug string) (Mode, error) {
	for _, m := range modes {
		if m.Slug() == slug {
			return m, nil
		}
	}
	return 0, fmt.Errorf("unknown mode %q", slug)
}
