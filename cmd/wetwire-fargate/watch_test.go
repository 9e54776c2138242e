package main

import (
	"path/filepath"
	"testing"

	"github.com/fsnotify/fsnotify"
)

func TestNewWatchCmd(t *testing.T) {
	cmd := newWatchCmd()

	if cmd.Use != "watch" {
		t.Errorf("Use = %q, want 'watch'", cmd.Use)
	}

	if cmd.Short == "" {
		t.Error("Short description should not be empty")
	}

	for _, name := range []string{"config", "template", "debounce", "format", "output"} {
		if cmd.Flags().Lookup(name) == nil {
			t.Errorf("missing --%s flag", name)
		}
	}
}

func TestDebounceDefault(t *testing.T) {
	cmd := newWatchCmd()

	flag := cmd.Flags().Lookup("debounce")
	if flag == nil {
		t.Fatal("missing --debounce flag")
	}

	if flag.DefValue != "500ms" {
		t.Errorf("debounce default = %q, want '500ms'", flag.DefValue)
	}
}

func TestWatchedFiles(t *testing.T) {
	dir := t.TempDir()
	cfg := filepath.Join(dir, "serverless.yml")
	tmpl := filepath.Join(dir, "build", "template.json")

	files, err := watchedFiles(inputs{configPath: cfg, templatePath: tmpl})
	if err != nil {
		t.Fatal(err)
	}
	if len(files) != 2 || !files[cfg] || !files[tmpl] {
		t.Errorf("watchedFiles() = %v", files)
	}

	if dirs := parentDirs(files); len(dirs) != 2 {
		t.Errorf("parentDirs() = %v, want 2 directories", dirs)
	}

	files, err = watchedFiles(inputs{configPath: cfg})
	if err != nil {
		t.Fatal(err)
	}
	if len(files) != 1 {
		t.Errorf("watchedFiles() without template = %v", files)
	}
}

func TestIsRelevant(t *testing.T) {
	dir := t.TempDir()
	cfg := filepath.Join(dir, "serverless.yml")
	files := map[string]bool{cfg: true}

	tests := []struct {
		name  string
		event fsnotify.Event
		want  bool
	}{
		{"write to config", fsnotify.Event{Name: cfg, Op: fsnotify.Write}, true},
		{"create config", fsnotify.Event{Name: cfg, Op: fsnotify.Create}, true},
		{"chmod config", fsnotify.Event{Name: cfg, Op: fsnotify.Chmod}, false},
		{"other file", fsnotify.Event{Name: filepath.Join(dir, "handler.js"), Op: fsnotify.Write}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := isRelevant(tt.event, files); got != tt.want {
				t.Errorf("isRelevant() = %v, want %v", got, tt.want)
			}
		})
	}
}
