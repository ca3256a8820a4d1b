package dispatch

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var diagnosticStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF0000"))

type formatter struct {
	brief     bool
	separator string
	color     bool
}

func (f *formatter) result(pathname string, description string) string {
	if f.brief {
		return description + "\n"
	}
	return fmt.Sprintf("%-15s%s %-15s\n", pathname, f.separator, description)
}

func (f *formatter) notFound(pathname string) string {
	message := fmt.Sprintf("cannot open '%s' (No such file, directory or flag)", pathname)
	return f.diagnostic(pathname, message)
}

func (f *formatter) metadataError(pathname string, err error) string {
	return f.diagnostic(pathname, fmt.Sprintf("cannot read metadata (%s)", err))
}

func (f *formatter) diagnostic(pathname string, message string) string {
	if f.color {
		message = diagnosticStyle.Render(message)
	}
	if f.brief {
		return message + "\n"
	}
	return fmt.Sprintf("%-15s%s %s\n", pathname, f.separator, message)
}

func scriptDescription(interpreter string, description string) string {
	return fmt.Sprintf("%s script, %s", interpreter, description)
}

func withExtendedAttributes(description string, names []string) string {
	if len(names) == 0 {
		return description
	}
	return description + ", extended attributes: " + strings.Join(names, ", ")
}
