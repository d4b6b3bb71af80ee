package main

import (
	"io"
	"log"
	"os"
	"path/filepath"
	"testing"

	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/pulse-arena/core"
)

func TestSetupLoggingDisabled(t *testing.T) {
	defer log.SetOutput(os.Stderr)

	f, err := setupLogging("")
	if err != nil || f != nil {
		t.Fatalf("Expected no file for empty path, got %v %v", f, err)
	}
	if log.Writer() != io.Discard {
		t.Errorf("Expected log output to be io.Discard, got %v", log.Writer())
	}
}

func TestSetupLoggingFile(t *testing.T) {
	defer log.SetOutput(os.Stderr)

	path := filepath.Join(t.TempDir(), "logs", "arena.log")
	f, err := setupLogging(path)
	if err != nil {
		t.Fatalf("setupLogging: %v", err)
	}
	defer f.Close()

	log.Println("test message")

	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("Failed to stat log file: %v", err)
	}
	if info.Size() == 0 {
		t.Error("Expected log file to contain content")
	}
}

func TestDecodeKey(t *testing.T) {
	tests := []struct {
		name string
		ev   *tcell.EventKey
		act  action
		dir  core.Vec2
	}{
		{"move up", tcell.NewEventKey(tcell.KeyRune, 'w', tcell.ModNone), actMove, dirUp},
		{"move right", tcell.NewEventKey(tcell.KeyRune, 'd', tcell.ModNone), actMove, dirRight},
		{"fire left", tcell.NewEventKey(tcell.KeyLeft, 0, tcell.ModNone), actFire, dirLeft},
		{"slash", tcell.NewEventKey(tcell.KeyRune, ' ', tcell.ModNone), actSlash, core.Vec2{}},
		{"pause", tcell.NewEventKey(tcell.KeyRune, 'p', tcell.ModNone), actPause, core.Vec2{}},
		{"tempo up", tcell.NewEventKey(tcell.KeyRune, '+', tcell.ModNone), actTempoUp, core.Vec2{}},
		{"escape", tcell.NewEventKey(tcell.KeyEscape, 0, tcell.ModNone), actQuit, core.Vec2{}},
		{"unbound", tcell.NewEventKey(tcell.KeyRune, 'z', tcell.ModNone), actNone, core.Vec2{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			act, dir := decodeKey(tt.ev)
			if act != tt.act || dir != tt.dir {
				t.Errorf("Expected %d %v, got %d %v", tt.act, tt.dir, act, dir)
			}
		})
	}
}
