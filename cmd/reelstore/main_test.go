package main

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"reelstore/internal/archive"
	"reelstore/internal/testsupport"
)

type cliTestEnv struct {
	configPath string
	baseDir    string
}

func setupCLITestEnv(t *testing.T) *cliTestEnv {
	t.Helper()

	base := t.TempDir()
	configPath := filepath.Join(base, "config.toml")
	content := fmt.Sprintf(
		"[store]\nroot_dir = %q\nindex_dir = %q\n\n[logging]\nlevel = \"error\"\ndir = \"\"\n",
		filepath.Join(base, "saved"),
		filepath.Join(base, "index"),
	)
	if err := os.WriteFile(configPath, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	return &cliTestEnv{configPath: configPath, baseDir: base}
}

func runCLI(t *testing.T, configPath string, args ...string) (string, string, error) {
	t.Helper()

	cmd := newRootCommand()
	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	flags := []string{}
	if configPath != "" {
		flags = append(flags, "--config", configPath)
	}
	cmd.SetArgs(append(flags, args...))
	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func writeContainer(t *testing.T, dir, name, title string, scenes int) string {
	t.Helper()

	doc := testsupport.MovieDocument(title, 95.2, scenes)
	packed, err := archive.Pack(doc, testsupport.Thumbnail(title))
	if err != nil {
		t.Fatalf("archive.Pack: %v", err)
	}
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, packed, 0o644); err != nil {
		t.Fatalf("write container: %v", err)
	}
	return path
}

func savedID(t *testing.T, out string) string {
	t.Helper()

	fields := strings.Fields(strings.TrimSpace(out))
	if len(fields) == 0 {
		t.Fatalf("no id in output %q", out)
	}
	return fields[len(fields)-1]
}

func TestCLISaveListMetaDelete(t *testing.T) {
	env := setupCLITestEnv(t)
	container := writeContainer(t, env.baseDir, "movie.zip", "Alpha Reel", 3)

	out, _, err := runCLI(t, env.configPath, "save", container)
	if err != nil {
		t.Fatalf("save: %v", err)
	}
	if !strings.Contains(out, "Saved movie") {
		t.Fatalf("unexpected save output: %q", out)
	}
	id := savedID(t, out)

	out, _, err = runCLI(t, env.configPath, "list")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if !strings.Contains(out, "Alpha Reel") || !strings.Contains(out, id) {
		t.Fatalf("list missing movie: %q", out)
	}

	out, _, err = runCLI(t, env.configPath, "meta", id)
	if err != nil {
		t.Fatalf("meta: %v", err)
	}
	if !strings.Contains(out, "Alpha Reel") || !strings.Contains(out, "01:35") {
		t.Fatalf("unexpected meta output: %q", out)
	}

	out, _, err = runCLI(t, env.configPath, "delete", id)
	if err != nil {
		t.Fatalf("delete: %v", err)
	}
	if !strings.Contains(out, "Deleted movie") {
		t.Fatalf("unexpected delete output: %q", out)
	}

	_, _, err = runCLI(t, env.configPath, "meta", id)
	if err == nil {
		t.Fatal("meta after delete should fail")
	}
}

func TestCLILoadWritesContainer(t *testing.T) {
	env := setupCLITestEnv(t)
	container := writeContainer(t, env.baseDir, "movie.zip", "Loadable", 1)

	out, _, err := runCLI(t, env.configPath, "save", container)
	if err != nil {
		t.Fatalf("save: %v", err)
	}
	id := savedID(t, out)

	target := filepath.Join(env.baseDir, "out.zip")
	if _, _, err := runCLI(t, env.configPath, "load", id, "--raw", "--output", target); err != nil {
		t.Fatalf("load: %v", err)
	}

	payload, err := os.ReadFile(target)
	if err != nil {
		t.Fatalf("read loaded container: %v", err)
	}
	if !bytes.HasPrefix(payload, []byte("PK")) {
		t.Fatal("raw load output is not a zip container")
	}

	doc, _, err := archive.Unpack(payload)
	if err != nil {
		t.Fatalf("unpack loaded container: %v", err)
	}
	if !bytes.Contains(doc, []byte("Loadable")) {
		t.Fatal("round-tripped document lost its title")
	}
}

func TestCLIUploadAssignsFreshID(t *testing.T) {
	env := setupCLITestEnv(t)
	container := writeContainer(t, env.baseDir, "movie.zip", "Imported", 2)

	first, _, err := runCLI(t, env.configPath, "upload", container)
	if err != nil {
		t.Fatalf("first upload: %v", err)
	}
	second, _, err := runCLI(t, env.configPath, "upload", container)
	if err != nil {
		t.Fatalf("second upload: %v", err)
	}
	if savedID(t, first) == savedID(t, second) {
		t.Fatalf("uploads reused id: %q / %q", first, second)
	}
}

func TestCLIStarterGoesToAssets(t *testing.T) {
	env := setupCLITestEnv(t)
	container := writeContainer(t, env.baseDir, "starter.zip", "Template", 1)

	if _, _, err := runCLI(t, env.configPath, "save", container, "--starter"); err != nil {
		t.Fatalf("save starter: %v", err)
	}

	out, _, err := runCLI(t, env.configPath, "list")
	if err != nil {
		t.Fatalf("list movies: %v", err)
	}
	if strings.Contains(out, "Template") {
		t.Fatalf("starter leaked into movies listing: %q", out)
	}

	out, _, err = runCLI(t, env.configPath, "list", "--collection", "assets")
	if err != nil {
		t.Fatalf("list assets: %v", err)
	}
	if !strings.Contains(out, "Template") {
		t.Fatalf("starter missing from assets listing: %q", out)
	}
}

func TestCLIListSortsByTitle(t *testing.T) {
	env := setupCLITestEnv(t)

	for _, title := range []string{"Zebra Cut", "apple cut", "Midway Cut"} {
		container := writeContainer(t, env.baseDir, title+".zip", title, 1)
		if _, _, err := runCLI(t, env.configPath, "save", container); err != nil {
			t.Fatalf("save %q: %v", title, err)
		}
	}

	out, _, err := runCLI(t, env.configPath, "list", "--sort", "title")
	if err != nil {
		t.Fatalf("list --sort title: %v", err)
	}

	apple := strings.Index(out, "apple cut")
	midway := strings.Index(out, "Midway Cut")
	zebra := strings.Index(out, "Zebra Cut")
	if apple == -1 || midway == -1 || zebra == -1 {
		t.Fatalf("listing missing titles: %q", out)
	}
	if !(apple < midway && midway < zebra) {
		t.Fatalf("titles not in collated order: %q", out)
	}
}

func TestCLIThumbAndCues(t *testing.T) {
	env := setupCLITestEnv(t)
	container := writeContainer(t, env.baseDir, "movie.zip", "Cued Up", 2)

	out, _, err := runCLI(t, env.configPath, "save", container)
	if err != nil {
		t.Fatalf("save: %v", err)
	}
	id := savedID(t, out)

	thumbPath := filepath.Join(env.baseDir, "thumb.png")
	if _, _, err := runCLI(t, env.configPath, "thumb", id, "--output", thumbPath); err != nil {
		t.Fatalf("thumb: %v", err)
	}
	thumb, err := os.ReadFile(thumbPath)
	if err != nil {
		t.Fatalf("read thumbnail: %v", err)
	}
	if !bytes.Equal(thumb, testsupport.Thumbnail("Cued Up")) {
		t.Fatal("thumbnail bytes changed in transit")
	}

	out, _, err = runCLI(t, env.configPath, "cues", id)
	if err != nil {
		t.Fatalf("cues: %v", err)
	}
	if !strings.Contains(out, "audio/cue1.mp3") || !strings.Contains(out, "audio/cue2.mp3") {
		t.Fatalf("cues output missing filepaths: %q", out)
	}
}

func TestCLIStatusReportsCounts(t *testing.T) {
	env := setupCLITestEnv(t)
	container := writeContainer(t, env.baseDir, "movie.zip", "Counted", 1)
	if _, _, err := runCLI(t, env.configPath, "save", container); err != nil {
		t.Fatalf("save: %v", err)
	}

	out, _, err := runCLI(t, env.configPath, "status")
	if err != nil {
		t.Fatalf("status: %v", err)
	}
	if !strings.Contains(out, "Movies:      1") {
		t.Fatalf("status missing movie count: %q", out)
	}
}
