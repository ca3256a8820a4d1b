package main

import (
	"github.com/PlakarKorp/ftype/context"
	"github.com/PlakarKorp/ftype/events"
	"github.com/charmbracelet/lipgloss"
)

var (
	crossMark = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF0000")).SetString("✘")
)

func eventsProcessorStdio(ctx *context.Context) chan struct{} {
	logger := ctx.GetLogger()
	listener := ctx.Events().Listen()
	done := make(chan struct{})
	go func() {
		for event := range listener {
			switch event := event.(type) {
			case events.Start:
				logger.Trace("main", "%s", ctx.GetCommandLine())
				logger.Trace("main", "%s/%s, pid %d, %d cpus, cwd %s, config %s",
					ctx.GetOperatingSystem(), ctx.GetArchitecture(), ctx.GetProcessID(),
					ctx.GetNumCPU(), ctx.GetCWD(), ctx.GetConfigDir())
				logger.Trace("main", "classifying %d paths", event.Paths)

			case events.Warning:
				logger.Warn("%s %s: %s", crossMark, event.Pathname, event.Message)

			case events.NotFound:
				logger.Trace("main", "%s %s: not found", crossMark, event.Pathname)

			case events.MetadataError:
				logger.Trace("main", "%s %s: %s", crossMark, event.Pathname, event.Err)

			case events.Result:
				logger.Trace("main", "%s: %s", event.Pathname, event.Description)

			case events.Done:
				logger.Trace("main", "done")

			default:
			}
		}
		done <- struct{}{}
	}()
	return done
}
