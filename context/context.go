package context

import (
	"github.com/PlakarKorp/ftype/events"
	"github.com/PlakarKorp/ftype/logging"
	"github.com/PlakarKorp/ftype/profiler"
)

type Context struct {
	events   *events.Receiver
	logger   *logging.Logger
	profiler *profiler.Profiler

	numCPU         int
	maxConcurrency int
	configDir      string
	commandLine    string

	operatingSystem string
	architecture    string
	processID       int

	cwd string
}

func NewContext() *Context {
	return &Context{
		events: events.New(),
	}
}

func (c *Context) Close() {
	c.events.Close()
}

func (c *Context) Events() *events.Receiver {
	return c.events
}

func (c *Context) SetLogger(logger *logging.Logger) {
	c.logger = logger
}

func (c *Context) GetLogger() *logging.Logger {
	return c.logger
}

// SetProfiler enables stage timing, a nil profiler disables it.
func (c *Context) SetProfiler(profiler *profiler.Profiler) {
	c.profiler = profiler
}

func (c *Context) GetProfiler() *profiler.Profiler {
	return c.profiler
}

func (c *Context) SetCWD(cwd string) {
	c.cwd = cwd
}

func (c *Context) GetCWD() string {
	return c.cwd
}

func (c *Context) SetNumCPU(numCPU int) {
	c.numCPU = numCPU
}

func (c *Context) GetNumCPU() int {
	return c.numCPU
}

func (c *Context) SetMaxConcurrency(maxConcurrency int) {
	c.maxConcurrency = maxConcurrency
}

// GetMaxConcurrency falls back to the number of CPUs, and to 1 when
// neither was set.
func (c *Context) GetMaxConcurrency() int {
	if c.maxConcurrency > 0 {
		return c.maxConcurrency
	}
	if c.numCPU > 0 {
		return c.numCPU
	}
	return 1
}

func (c *Context) SetCommandLine(commandLine string) {
	c.commandLine = commandLine
}

func (c *Context) GetCommandLine() string {
	return c.commandLine
}

func (c *Context) SetConfigDir(configDir string) {
	c.configDir = configDir
}

func (c *Context) GetConfigDir() string {
	return c.configDir
}

func (c *Context) SetOperatingSystem(operatingSystem string) {
	c.operatingSystem = operatingSystem
}

func (c *Context) GetOperatingSystem() string {
	return c.operatingSystem
}

func (c *Context) SetArchitecture(architecture string) {
	c.architecture = architecture
}

func (c *Context) GetArchitecture() string {
	return c.architecture
}

func (c *Context) SetProcessID(processID int) {
	c.processID = processID
}

func (c *Context) GetProcessID() int {
	return c.processID
}
