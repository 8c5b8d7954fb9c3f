package youtube

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func writeSubtitleFile(t *testing.T, dir, name string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, name), []byte("{}"), 0o644); err != nil {
		t.Fatal(err)
	}
}

func TestPickSubtitleFilePrefersRequestedLanguage(t *testing.T) {
	dir := t.TempDir()
	writeSubtitleFile(t, dir, "abc12345678.ru.json3")
	writeSubtitleFile(t, dir, "abc12345678.en.json3")

	path, lang, err := pickSubtitleFile(dir, []string{"en", "ru"})
	if err != nil {
		t.Fatalf("pickSubtitleFile: %v", err)
	}
	if lang != "en" {
		t.Errorf("language = %q, want en", lang)
	}
	if filepath.Base(path) != "abc12345678.en.json3" {
		t.Errorf("path = %q", path)
	}
}

func TestPickSubtitleFileMatchesRegionVariant(t *testing.T) {
	dir := t.TempDir()
	writeSubtitleFile(t, dir, "abc12345678.en-US.json3")

	_, lang, err := pickSubtitleFile(dir, []string{"en"})
	if err != nil {
		t.Fatalf("pickSubtitleFile: %v", err)
	}
	if lang != "en-US" {
		t.Errorf("language = %q, want en-US", lang)
	}
}

func TestPickSubtitleFileFallsBackToAnyTrack(t *testing.T) {
	dir := t.TempDir()
	writeSubtitleFile(t, dir, "abc12345678.de.json3")

	_, lang, err := pickSubtitleFile(dir, []string{"en"})
	if err != nil {
		t.Fatalf("pickSubtitleFile: %v", err)
	}
	if lang != "de" {
		t.Errorf("language = %q, want de", lang)
	}
}

func TestPickSubtitleFileNoTracks(t *testing.T) {
	dir := t.TempDir()
	_, _, err := pickSubtitleFile(dir, []string{"en"})
	if !errors.Is(err, ErrNoSubtitles) {
		t.Fatalf("expected ErrNoSubtitles, got %v", err)
	}
}
