package handler

import (
	"html/template"
	"strings"

	"github.com/samber/lo"

	"github.com/dskvich/oracai/pkg/domain"
)

const animationPlaceholder = "❌ Failed to load animation."

type view struct {
	Mode            domain.Mode
	Slug            string
	Label           string
	Title           string
	Icon            string
	AnimationHeight int
	InputLabel      string
	Placeholder     string
	SubmitLabel     string
	NeedsImage      bool
}

func viewFor(mode domain.Mode) view {
	v := view{
		Mode:       mode,
		Slug:       mode.Slug(),
		Label:      mode.String(),
		NeedsImage: mode.NeedsImage(),
	}

	switch mode {
	case domain.ModeChat:
		v.Title = "⭕Oracle ChatBot"
		v.Icon = "💬"
		v.AnimationHeight = 400
		v.Placeholder = "Ask the Oracle Assistant..."
		v.SubmitLabel = "Send"
	case domain.ModeERDExplain:
		v.Title = "🛢️ ERD Diagram Interpreter"
		v.Icon = "🗂️"
		v.AnimationHeight = 250
		v.InputLabel = "Upload an ERD image to get a clear explanation of its entities, keys, and relationships for Oracle Database"
		v.SubmitLabel = "Explain the ERD"
	case domain.ModeCloudExplain:
		v.Title = "☁️ Cloud Architecture Diagram Assistant"
		v.Icon = "☁️"
		v.AnimationHeight = 250
		v.InputLabel = "Upload a cloud diagram to see its components, data flow, and deployment best practices on Oracle Cloud"
		v.SubmitLabel = "Explain the Diagram"
	case domain.ModeTroubleshoot:
		v.Title = "❓ Oracle Troubleshooter"
		v.Icon = "❓"
		v.AnimationHeight = 300
		v.InputLabel = "Describe your Oracle issue, and the assistant will analyze possible causes and suggest step-by-step solutions"
		v.Placeholder = "Ask me anything..."
		v.SubmitLabel = "Get Response"
	}

	return v
}

func allViews() []view {
	return lo.Map(domain.Modes(), func(m domain.Mode, _ int) view { return viewFor(m) })
}

// animationScript makes a Lottie document safe to inline in a <script> element.
func animationScript(animation *domain.Animation) template.JS {
	if animation == nil {
		return ""
	}
	return template.JS(strings.ReplaceAll(string(animation.Data), "</", `<\/`))
}
