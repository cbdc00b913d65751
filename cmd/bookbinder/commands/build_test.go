package commands

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"git.home.luguber.info/inful/bookbinder/internal/book"
	"git.home.luguber.info/inful/bookbinder/internal/history"
)

func writeBookProject(t *testing.T) (configPath, dir string) {
	t.Helper()
	dir = t.TempDir()
	configPath = filepath.Join(dir, "book.toml")
	require.NoError(t, os.WriteFile(configPath, []byte(`
title = "Phoenix"
author = "A. Writer"
base_url = "https://example.com"

[[chapter]]
title = "Intro"
source = "src/intro.md"

[[chapter]]
title = "The End"
source = "src/end.html"
`), 0o644))
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "src"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "src", "intro.md"), []byte("# Intro\n"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "src", "end.html"), []byte("<body><h1>The End</h1></body>"), 0o644))
	return configPath, dir
}

func TestBuildCmdEndToEnd(t *testing.T) {
	configPath, dir := writeBookProject(t)
	outDir := filepath.Join(dir, "dist")
	historyDB := filepath.Join(dir, "history.db")

	cmd := &BuildCmd{Config: configPath, Output: outDir, History: historyDB}
	require.NoError(t, cmd.Run(&Global{}, &CLI{}))

	for _, name := range []string{"index.html", "toc.html", "404.html", "01-intro.html", "02-the-end.html", "sitemap.xml", "feed.xml"} {
		_, err := os.Stat(filepath.Join(outDir, name))
		assert.NoError(t, err, "missing %s", name)
	}

	store, err := history.Open(historyDB)
	require.NoError(t, err)
	defer store.Close()
	builds, err := store.Recent(10)
	require.NoError(t, err)
	require.Len(t, builds, 1)
	assert.Equal(t, "success", builds[0].Status)
	assert.Equal(t, 2, builds[0].Chapters)
}

func TestBuildCmdMissingChapterSource(t *testing.T) {
	configPath, dir := writeBookProject(t)
	require.NoError(t, os.Remove(filepath.Join(dir, "src", "end.html")))
	historyDB := filepath.Join(dir, "history.db")

	cmd := &BuildCmd{Config: configPath, Output: filepath.Join(dir, "dist"), History: historyDB}
	err := cmd.Run(&Global{}, &CLI{})
	require.ErrorIs(t, err, book.ErrMissingSource)

	store, err := history.Open(historyDB)
	require.NoError(t, err)
	defer store.Close()
	builds, err := store.Recent(10)
	require.NoError(t, err)
	require.Len(t, builds, 1)
	assert.Equal(t, "failed", builds[0].Status)
}

func TestInitCmd(t *testing.T) {
	path := filepath.Join(t.TempDir(), "book.toml")
	require.NoError(t, (&InitCmd{Path: path}).Run(&Global{}, &CLI{}))
	require.Error(t, (&InitCmd{Path: path}).Run(&Global{}, &CLI{}))
	require.NoError(t, (&InitCmd{Path: path, Force: true}).Run(&Global{}, &CLI{}))
}
