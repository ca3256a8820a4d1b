package dispatch

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"testing"

	"github.com/PlakarKorp/ftype/classifier"
	_ "github.com/PlakarKorp/ftype/classifier/backend/extension"
	"github.com/PlakarKorp/ftype/context"
	"github.com/PlakarKorp/ftype/events"
	"github.com/PlakarKorp/ftype/profiler"
	"github.com/pkg/xattr"
	"github.com/stretchr/testify/require"
)

func newContext() *context.Context {
	ctx := context.NewContext()
	ctx.SetNumCPU(4)
	return ctx
}

func run(t *testing.T, ctx *context.Context, options Options, paths ...string) (string, string, Summary) {
	t.Helper()

	var stdout, stderr bytes.Buffer
	var mimes *classifier.Classifier
	if options.Mode == ModeMime {
		var err error
		mimes, err = classifier.NewClassifier("extension", nil)
		require.NoError(t, err)
	}
	if options.Separator == "" {
		options.Separator = ":"
	}

	d, err := New(ctx, options, mimes, &stdout, &stderr)
	require.NoError(t, err)

	summary, err := d.Run(paths)
	require.NoError(t, err)
	return stdout.String(), stderr.String(), summary
}

func resultLine(pathname string, description string) string {
	return fmt.Sprintf("%-15s: %-15s\n", pathname, description)
}

func TestRunType(t *testing.T) {
	dir := t.TempDir()

	file := filepath.Join(dir, "Cargo.toml")
	require.NoError(t, os.WriteFile(file, []byte("[package]\n"), 0644))

	script := filepath.Join(dir, "build")
	require.NoError(t, os.WriteFile(script, []byte("#!/bin/bash\necho hi\n"), 0755))

	envScript := filepath.Join(dir, "tool")
	require.NoError(t, os.WriteFile(envScript, []byte("#!/usr/bin/env python3\n"), 0755))

	subdir := filepath.Join(dir, "src")
	require.NoError(t, os.Mkdir(subdir, 0755))

	link := filepath.Join(dir, "src-link")
	require.NoError(t, os.Symlink(subdir, link))

	stdout, stderr, summary := run(t, newContext(), Options{}, file, script, envScript, subdir, link)
	require.Empty(t, stderr)

	lines := strings.SplitAfter(stdout, "\n")
	lines = lines[:len(lines)-1]
	sort.Strings(lines)

	expected := []string{
		resultLine(file, "ASCII text"),
		resultLine(script, "Bourne-Again shell script, ASCII text"),
		resultLine(envScript, "Python script, ASCII text"),
		resultLine(subdir, "directory"),
		resultLine(link, "symbolic link to "+subdir),
	}
	sort.Strings(expected)
	require.Equal(t, expected, lines)

	require.Equal(t, 5, summary.Paths)
	require.Zero(t, summary.NotFound)
	require.Equal(t, 3, summary.ByKind["regular"])
	require.Equal(t, 1, summary.ByKind["directory"])
	require.Equal(t, 1, summary.ByKind["symlink"])
	require.Equal(t, uint64(10+20+23), summary.Bytes)
}

func TestRunDedup(t *testing.T) {
	dir := t.TempDir()
	a := filepath.Join(dir, "a")
	b := filepath.Join(dir, "b")
	require.NoError(t, os.WriteFile(a, nil, 0644))
	require.NoError(t, os.WriteFile(b, nil, 0644))

	stdout, _, summary := run(t, newContext(), Options{MaxConcurrency: 2}, a, b, a)
	require.Equal(t, 2, strings.Count(stdout, "\n"))
	require.Equal(t, 1, strings.Count(stdout, a+":"))
	require.Equal(t, 2, summary.Paths)
}

func TestRunNotFound(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "missing")

	stdout, stderr, summary := run(t, newContext(), Options{}, missing)
	require.Empty(t, stdout)
	require.Equal(t, fmt.Sprintf("%-15s: cannot open '%s' (No such file, directory or flag)\n", missing, missing), stderr)
	require.Equal(t, 1, summary.NotFound)

	stdout, stderr, _ = run(t, newContext(), Options{Brief: true}, missing)
	require.Empty(t, stdout)
	require.Equal(t, fmt.Sprintf("cannot open '%s' (No such file, directory or flag)\n", missing), stderr)
}

func TestRunShortPathPadding(t *testing.T) {
	dir := t.TempDir()
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	defer os.Chdir(wd)

	require.NoError(t, os.WriteFile("a.txt", nil, 0644))

	stdout, stderr, _ := run(t, newContext(), Options{}, "a.txt", "nope")
	require.Equal(t, "a.txt          : ASCII text     \n", stdout)
	require.Equal(t, "nope           : cannot open 'nope' (No such file, directory or flag)\n", stderr)

	stdout, _, _ = run(t, newContext(), Options{Separator: " ->"}, "a.txt")
	require.Equal(t, "a.txt           -> ASCII text     \n", stdout)
}

func TestRunSymlinkedScript(t *testing.T) {
	dir := t.TempDir()
	script := filepath.Join(dir, "build")
	require.NoError(t, os.WriteFile(script, []byte("#!/bin/bash\necho hi\n"), 0755))

	link := filepath.Join(dir, "build-link")
	require.NoError(t, os.Symlink(script, link))

	stdout, stderr, summary := run(t, newContext(), Options{Brief: true}, link)
	require.Empty(t, stderr)
	require.Equal(t, "Bourne-Again shell script, symbolic link to "+script+"\n", stdout)
	require.Equal(t, 1, summary.ByKind["symlink"])

	dirLink := filepath.Join(dir, "dir-link")
	require.NoError(t, os.Symlink(dir, dirLink))
	stdout, _, _ = run(t, newContext(), Options{Brief: true}, dirLink)
	require.Equal(t, "symbolic link to "+dir+"\n", stdout)
}

func TestRunBrief(t *testing.T) {
	dir := t.TempDir()
	stdout, _, _ := run(t, newContext(), Options{Brief: true}, dir)
	require.Equal(t, "directory\n", stdout)
}

func TestRunMime(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "Cargo.toml")
	require.NoError(t, os.WriteFile(file, []byte("[package]\n"), 0644))

	stdout, _, summary := run(t, newContext(), Options{Mode: ModeMime, Brief: true}, file)
	require.Equal(t, "text/x-toml\n", stdout)
	require.Empty(t, summary.ByKind)

	stdout, _, _ = run(t, newContext(), Options{Mode: ModeMime, Brief: true}, dir)
	require.Equal(t, "inode/directory\n", stdout)
}

func TestRunExtension(t *testing.T) {
	dir := t.TempDir()
	archive := filepath.Join(dir, "archive.tar.gz")
	readme := filepath.Join(dir, "README")
	require.NoError(t, os.WriteFile(archive, nil, 0644))
	require.NoError(t, os.WriteFile(readme, nil, 0644))

	stdout, _, _ := run(t, newContext(), Options{Mode: ModeExtension, MaxConcurrency: 1}, archive, readme)
	require.Equal(t, resultLine(archive, "gz")+resultLine(readme, "???"), stdout)
}

func TestRunOrderWithSingleWorker(t *testing.T) {
	dir := t.TempDir()
	paths := make([]string, 0)
	expected := ""
	for i := 0; i < 20; i++ {
		pathname := filepath.Join(dir, fmt.Sprintf("file%02d", i))
		require.NoError(t, os.WriteFile(pathname, nil, 0644))
		paths = append(paths, pathname)
		expected += resultLine(pathname, "ASCII text")
	}

	stdout, _, _ := run(t, newContext(), Options{MaxConcurrency: 1}, paths...)
	require.Equal(t, expected, stdout)
}

func TestRunManyWorkers(t *testing.T) {
	dir := t.TempDir()
	paths := make([]string, 0)
	for i := 0; i < 200; i++ {
		pathname := filepath.Join(dir, fmt.Sprintf("file%03d.sh", i))
		require.NoError(t, os.WriteFile(pathname, []byte("#!/bin/sh\n"), 0755))
		paths = append(paths, pathname)
	}
	paths = append(paths, filepath.Join(dir, "missing"))

	stdout, stderr, summary := run(t, newContext(), Options{MaxConcurrency: 16}, paths...)

	lines := strings.Split(strings.TrimSuffix(stdout, "\n"), "\n")
	require.Len(t, lines, 200)
	for _, l := range lines {
		require.True(t, strings.HasSuffix(l, ": POSIX shell script, ASCII text"), l)
	}
	require.Equal(t, 1, strings.Count(stderr, "\n"))
	require.Equal(t, 201, summary.Paths)
	require.Equal(t, 1, summary.NotFound)
}

func TestNewInvalidConcurrency(t *testing.T) {
	_, err := New(newContext(), Options{MaxConcurrency: -1}, nil, &bytes.Buffer{}, &bytes.Buffer{})
	require.ErrorIs(t, err, ErrInvalidConcurrency)
}

func TestNewDefaultConcurrency(t *testing.T) {
	ctx := newContext()
	ctx.SetMaxConcurrency(3)

	d, err := New(ctx, Options{}, nil, &bytes.Buffer{}, &bytes.Buffer{})
	require.NoError(t, err)
	require.Equal(t, 3, d.Options().MaxConcurrency)
}

func TestNewMimeWithoutClassifier(t *testing.T) {
	_, err := New(newContext(), Options{Mode: ModeMime}, nil, &bytes.Buffer{}, &bytes.Buffer{})
	require.ErrorIs(t, err, ErrNoMimeClassifier)
}

func TestRunNoInput(t *testing.T) {
	d, err := New(newContext(), Options{}, nil, &bytes.Buffer{}, &bytes.Buffer{})
	require.NoError(t, err)

	_, err = d.Run(nil)
	require.ErrorIs(t, err, ErrNoInput)
}

func TestRunEvents(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "file")
	require.NoError(t, os.WriteFile(file, []byte("data"), 0644))
	missing := filepath.Join(dir, "missing")

	ctx := newContext()
	listener := ctx.Events().Listen()

	received := make(chan []interface{})
	go func() {
		all := make([]interface{}, 0)
		for event := range listener {
			all = append(all, event)
		}
		received <- all
	}()

	d, err := New(ctx, Options{Separator: ":"}, nil, &bytes.Buffer{}, &bytes.Buffer{})
	require.NoError(t, err)
	_, err = d.Run([]string{file, missing})
	require.NoError(t, err)
	ctx.Close()

	all := <-received
	require.IsType(t, events.Start{}, all[0])
	require.Equal(t, 2, all[0].(events.Start).Paths)
	require.IsType(t, events.Done{}, all[len(all)-1])

	var results, notFound, paths int
	for _, event := range all {
		switch event := event.(type) {
		case events.Result:
			results++
			require.Equal(t, file, event.Pathname)
			require.Equal(t, "regular", event.Kind)
			require.Equal(t, int64(4), event.Size)
		case events.NotFound:
			notFound++
			require.Equal(t, missing, event.Pathname)
		case events.Path:
			paths++
		}
	}
	require.Equal(t, 1, results)
	require.Equal(t, 1, notFound)
	require.Equal(t, 2, paths)
}

func TestRunProfiler(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "file")
	require.NoError(t, os.WriteFile(file, nil, 0644))

	ctx := newContext()
	p := profiler.NewProfiler()
	ctx.SetProfiler(p)

	run(t, ctx, Options{}, file)

	names := make([]string, 0)
	for _, s := range p.Stats() {
		names = append(names, s.Event)
	}
	require.Equal(t, []string{"filetype.Classify", "shebang.Detect"}, names)
}

func TestDedup(t *testing.T) {
	require.Equal(t, []string{"a", "b"}, Dedup([]string{"a", "b", "a"}))
	require.Equal(t, []string{"./a", "a"}, Dedup([]string{"./a", "a", "./a"}))
	require.Empty(t, Dedup(nil))
}

func TestModeString(t *testing.T) {
	require.Equal(t, "type", ModeType.String())
	require.Equal(t, "mime", ModeMime.String())
	require.Equal(t, "extension", ModeExtension.String())
	require.Equal(t, "mode(7)", Mode(7).String())
}

func TestRunExtendedAttributes(t *testing.T) {
	file := filepath.Join(t.TempDir(), "file")
	require.NoError(t, os.WriteFile(file, nil, 0644))
	if !xattr.XATTR_SUPPORTED {
		t.Skip("extended attributes unsupported")
	}
	if err := xattr.Set(file, "user.ftype", []byte("1")); err != nil {
		t.Skipf("cannot set extended attributes here: %v", err)
	}

	stdout, _, _ := run(t, newContext(), Options{Brief: true, ExtendedAttributes: true}, file)
	require.True(t, strings.HasPrefix(stdout, "ASCII text, extended attributes: "), stdout)
	require.Contains(t, stdout, "user.ftype")

	stdout, _, _ = run(t, newContext(), Options{Brief: true}, file)
	require.Equal(t, "ASCII text\n", stdout)
}
