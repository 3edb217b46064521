package cmd

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"gopkg.in/yaml.v3"

	"github.com/tbinetruy/OrgModeParser/internal/config"
)

const sampleDoc = "#+TITLE: Sample\n" +
	"#+DRAWERS: PROPERTIES\n" +
	"* Inbox :todo:\n" +
	":PROPERTIES:\n" +
	":ID: 1\n" +
	":END:\n" +
	"** Call back\n" +
	"CLOCK: [2024-01-01 Mon 09:00]--[2024-01-01 Mon 10:30]\n" +
	"* Archive\n"

// parseOutput mirrors the JSON printed by the parse command.
type parseOutput struct {
	Version string `json:"version"`
	Root    struct {
		Kind     string `json:"kind"`
		FileName string `json:"fileName"`
		Children []struct {
			Kind    string `json:"kind"`
			Caption string `json:"caption"`
		} `json:"children"`
	} `json:"root"`
	Diagnostics []struct {
		Code string `json:"code"`
	} `json:"diagnostics"`
}

func TestNewParseCmd_HasFlags(t *testing.T) {
	c := NewParseCmd(nil)
	for _, name := range []string{"format", "strict"} {
		if c.Flags().Lookup(name) == nil {
			t.Errorf("expected --%s flag on parse command", name)
		}
	}
}

func TestNewParseCmd_OutputsJSON(t *testing.T) {
	useConfig(t, utcConfig(), nil)

	c := NewParseCmd(&mockDocumentReader{src: []byte(sampleDoc)})
	out := new(bytes.Buffer)
	c.SetOut(out)
	c.SetErr(new(bytes.Buffer))
	c.SetArgs([]string{"sample.org"})

	if err := c.Execute(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var got parseOutput
	if err := json.Unmarshal(out.Bytes(), &got); err != nil {
		t.Fatalf("output is not JSON: %v\n%s", err, out.String())
	}
	if got.Version != "1" {
		t.Errorf("version = %q, want %q", got.Version, "1")
	}
	if got.Root.Kind != "document" || got.Root.FileName != "sample.org" {
		t.Errorf("root = %+v", got.Root)
	}
	var captions []string
	for _, c := range got.Root.Children {
		if c.Kind == "headline" {
			captions = append(captions, c.Caption)
		}
	}
	if strings.Join(captions, ",") != "Inbox,Archive" {
		t.Errorf("top-level headlines = %q, want [Inbox Archive]", captions)
	}
	if len(got.Diagnostics) != 0 {
		t.Errorf("unexpected diagnostics: %+v", got.Diagnostics)
	}
}

func TestNewParseCmd_YAMLFlag(t *testing.T) {
	useConfig(t, utcConfig(), nil)

	c := NewParseCmd(&mockDocumentReader{src: []byte(sampleDoc)})
	out := new(bytes.Buffer)
	c.SetOut(out)
	c.SetErr(new(bytes.Buffer))
	c.SetArgs([]string{"--format", "yaml", "sample.org"})

	if err := c.Execute(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var got map[string]any
	if err := yaml.Unmarshal(out.Bytes(), &got); err != nil {
		t.Fatalf("output is not YAML: %v\n%s", err, out.String())
	}
	if got["version"] != "1" {
		t.Errorf("version = %v, want 1", got["version"])
	}
	if !strings.Contains(out.String(), "caption: Inbox") {
		t.Errorf("output missing headline caption:\n%s", out.String())
	}
}

func TestNewParseCmd_FormatFromConfig(t *testing.T) {
	cfg := utcConfig()
	cfg.Format = config.FormatYAML
	useConfig(t, cfg, nil)

	c := NewParseCmd(&mockDocumentReader{src: []byte("* A\n")})
	out := new(bytes.Buffer)
	c.SetOut(out)
	c.SetErr(new(bytes.Buffer))
	c.SetArgs([]string{"a.org"})

	if err := c.Execute(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if strings.HasPrefix(strings.TrimSpace(out.String()), "{") {
		t.Errorf("expected YAML output, got JSON:\n%s", out.String())
	}
}

func TestNewParseCmd_UnknownFormat(t *testing.T) {
	useConfig(t, utcConfig(), nil)

	c := NewParseCmd(&mockDocumentReader{src: []byte("* A\n")})
	c.SetOut(new(bytes.Buffer))
	c.SetErr(new(bytes.Buffer))
	c.SetArgs([]string{"--format", "xml", "a.org"})

	if err := c.Execute(); err == nil {
		t.Error("expected error for unknown format")
	}
}

func TestNewParseCmd_ReadError(t *testing.T) {
	useConfig(t, utcConfig(), nil)

	c := NewParseCmd(&mockDocumentReader{err: errors.New("permission denied")})
	c.SetOut(new(bytes.Buffer))
	c.SetErr(new(bytes.Buffer))
	c.SetArgs([]string{"locked.org"})

	err := c.Execute()
	if err == nil {
		t.Fatal("expected error when the document cannot be read")
	}
	if !strings.Contains(err.Error(), "permission denied") {
		t.Errorf("error %q does not wrap the read failure", err)
	}
}

func TestNewParseCmd_StrictFailsOnDiagnostics(t *testing.T) {
	useConfig(t, utcConfig(), nil)
	src := []byte("#+DRAWERS: PROPERTIES\n* A\n:PROPERTIES:\n* B\n")

	t.Run("lenient", func(t *testing.T) {
		c := NewParseCmd(&mockDocumentReader{src: src})
		c.SetOut(new(bytes.Buffer))
		c.SetErr(new(bytes.Buffer))
		c.SetArgs([]string{"a.org"})
		if err := c.Execute(); err != nil {
			t.Errorf("unexpected error without --strict: %v", err)
		}
	})

	t.Run("strict", func(t *testing.T) {
		c := NewParseCmd(&mockDocumentReader{src: src})
		errOut := new(bytes.Buffer)
		c.SetOut(new(bytes.Buffer))
		c.SetErr(errOut)
		c.SetArgs([]string{"--strict", "a.org"})
		if err := c.Execute(); err == nil {
			t.Error("expected error with --strict and diagnostics")
		}
		if !strings.Contains(errOut.String(), "ORGW001") {
			t.Errorf("stderr missing diagnostic code: %q", errOut.String())
		}
	})
}

func TestNewParseCmd_RequiresOneArg(t *testing.T) {
	c := NewParseCmd(&mockDocumentReader{})
	c.SetOut(new(bytes.Buffer))
	c.SetErr(new(bytes.Buffer))
	c.SetArgs([]string{})
	if err := c.Execute(); err == nil {
		t.Error("expected error with no arguments")
	}
}
