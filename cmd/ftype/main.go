/*
 * Copyright (c) 2021 Gilles Chehade <gilles@poolp.org>
 *
 * Permission to use, copy, modify, and distribute this software for any
 * purpose with or without fee is hereby granted, provided that the above
 * copyright notice and this permission notice appear in all copies.
 *
 * THE SOFTWARE IS PROVIDED "AS IS" AND THE AUTHOR DISCLAIMS ALL WARRANTIES
 * WITH REGARD TO THIS SOFTWARE INCLUDING ALL IMPLIED WARRANTIES OF
 * MERCHANTABILITY AND FITNESS. IN NO EVENT SHALL THE AUTHOR BE LIABLE FOR
 * ANY SPECIAL, DIRECT, INDIRECT, OR CONSEQUENTIAL DAMAGES OR ANY DAMAGES
 * WHATSOEVER RESULTING FROM LOSS OF USE, DATA OR PROFITS, WHETHER IN AN
 * ACTION OF CONTRACT, NEGLIGENCE OR OTHER TORTIOUS ACTION, ARISING OUT OF
 * OR IN CONNECTION WITH THE USE OR PERFORMANCE OF THIS SOFTWARE.
 */

package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	"github.com/PlakarKorp/ftype/classifier"
	_ "github.com/PlakarKorp/ftype/classifier/backend/extension"
	_ "github.com/PlakarKorp/ftype/classifier/backend/sniff"
	"github.com/PlakarKorp/ftype/cmd/ftype/utils"
	"github.com/PlakarKorp/ftype/config"
	"github.com/PlakarKorp/ftype/context"
	"github.com/PlakarKorp/ftype/dispatch"
	"github.com/PlakarKorp/ftype/logging"
	"github.com/PlakarKorp/ftype/pathlist"
	"github.com/PlakarKorp/ftype/profiler"
	"github.com/dustin/go-humanize"
	"github.com/spf13/pflag"
)

const appName = "ftype"

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout io.Writer, stderr io.Writer) int {
	var opt_brief bool
	var opt_extension bool
	var opt_mime bool
	var opt_jobs int
	var opt_separator string
	var opt_recursive bool
	var opt_excludes []string
	var opt_backend string
	var opt_xattrs bool
	var opt_verbose bool
	var opt_trace string
	var opt_profile bool
	var opt_config string
	var opt_version bool

	flags := pflag.NewFlagSet(appName, pflag.ContinueOnError)
	flags.SetOutput(stderr)
	flags.BoolVarP(&opt_brief, "brief", "b", false, "do not prepend filenames to output lines")
	flags.BoolVarP(&opt_extension, "extension", "e", false, "output the file name extension")
	flags.BoolVarP(&opt_mime, "mime-type", "m", false, "output the MIME type")
	flags.IntVarP(&opt_jobs, "jobs", "j", 0, "number of parallel workers (0 for one per CPU)")
	flags.StringVarP(&opt_separator, "separator", "F", ":", "separator between file name and result")
	flags.BoolVarP(&opt_recursive, "recursive", "r", false, "classify directory contents")
	flags.StringArrayVar(&opt_excludes, "exclude", nil, "glob of paths to skip when recursing (repeatable)")
	flags.StringVar(&opt_backend, "backend", classifier.DEFAULT_BACKEND, fmt.Sprintf("MIME backend (%s)", strings.Join(classifier.Backends(), ", ")))
	flags.BoolVarP(&opt_xattrs, "xattrs", "x", false, "list extended attributes of regular files")
	flags.BoolVarP(&opt_verbose, "verbose", "v", false, "log a summary of the run")
	flags.StringVar(&opt_trace, "trace", "", "comma-separated subsystems to trace, or all")
	flags.BoolVar(&opt_profile, "profile", false, "log per-stage timings")
	flags.StringVar(&opt_config, "config", "", "configuration file")
	flags.BoolVarP(&opt_version, "version", "V", false, "print version and exit")
	flags.Usage = func() {
		fmt.Fprintf(stderr, "usage: %s [options] file ...\n", appName)
		flags.PrintDefaults()
	}

	if err := flags.Parse(args); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return 0
		}
		fmt.Fprintf(stderr, "%s: %s\n", appName, err)
		return 1
	}

	if opt_version {
		fmt.Fprintln(stdout, utils.GetVersion())
		return 0
	}

	logger := logging.NewLogger(stderr)
	if opt_verbose {
		logger.EnableInfo()
	}
	if opt_trace != "" {
		logger.EnableTrace(opt_trace)
	}

	configFile := opt_config
	if configFile == "" {
		configDir, err := utils.GetConfigDir(appName)
		if err != nil {
			logger.Warn("could not locate configuration directory: %s", err)
		} else {
			configFile = filepath.Join(configDir, config.CONFIG_FILE)
		}
	}

	cfg := config.Default()
	if configFile != "" {
		loaded, err := config.Load(configFile)
		if err != nil {
			logger.Error("%s: %s", appName, err)
			return 1
		}
		cfg = loaded
	}

	if flags.Changed("brief") {
		cfg.Brief = opt_brief
	}
	if flags.Changed("jobs") {
		cfg.Jobs = opt_jobs
	}
	if flags.Changed("separator") {
		cfg.Separator = opt_separator
	}
	if flags.Changed("backend") {
		cfg.Backend = opt_backend
	}
	cfg.Excludes = append(cfg.Excludes, opt_excludes...)

	ctx := context.NewContext()
	ctx.SetLogger(logger)
	ctx.SetNumCPU(runtime.NumCPU())
	ctx.SetCommandLine(strings.Join(os.Args, " "))
	ctx.SetOperatingSystem(runtime.GOOS)
	ctx.SetArchitecture(runtime.GOARCH)
	ctx.SetProcessID(os.Getpid())
	if cwd, err := os.Getwd(); err == nil {
		ctx.SetCWD(cwd)
	}
	if configFile != "" {
		ctx.SetConfigDir(filepath.Dir(configFile))
	}

	var p *profiler.Profiler
	if opt_profile {
		p = profiler.NewProfiler()
		ctx.SetProfiler(p)
	}

	mode := dispatch.ModeType
	if opt_mime {
		mode = dispatch.ModeMime
	} else if opt_extension {
		mode = dispatch.ModeExtension
	}

	mimes, err := classifier.NewClassifier(cfg.Backend, nil)
	if err != nil {
		logger.Error("%s: %s", appName, err)
		return 1
	}

	paths := flags.Args()
	if opt_recursive {
		excluder, err := pathlist.NewExcluder(cfg.Excludes)
		if err != nil {
			logger.Error("%s: %s", appName, err)
			return 1
		}
		paths = pathlist.Expand(ctx, paths, excluder)
	}

	d, err := dispatch.New(ctx, dispatch.Options{
		Mode:               mode,
		MaxConcurrency:     cfg.Jobs,
		Brief:              cfg.Brief,
		Separator:          cfg.Separator,
		Color:              utils.IsTerminal(stderr),
		ExtendedAttributes: opt_xattrs,
	}, mimes, stdout, stderr)
	if err != nil {
		logger.Error("%s: %s", appName, err)
		return 1
	}

	done := eventsProcessorStdio(ctx)

	t0 := time.Now()
	summary, err := d.Run(paths)
	elapsed := time.Since(t0)

	ctx.Close()
	<-done

	if err != nil {
		logger.Error("%s: %s", appName, err)
		if errors.Is(err, dispatch.ErrNoInput) {
			flags.Usage()
		}
		return 1
	}

	logger.Info("classified %d paths (%d not found) - %s of regular files in %s",
		summary.Paths, summary.NotFound, humanize.Bytes(summary.Bytes), elapsed.Round(time.Millisecond))

	if p != nil {
		p.Display(logger)
	}
	return 0
}
