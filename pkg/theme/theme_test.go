package theme

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestGetDefault(t *testing.T) {
	th := Get("default")
	if th.Name != "default" {
		t.Errorf("Get(\"default\").Name = %q, want %q", th.Name, "default")
	}
	if th.Accent != "#7C3AED" {
		t.Errorf("Get(\"default\").Accent = %q, want %q", th.Accent, "#7C3AED")
	}
}

func TestGetIsCaseInsensitive(t *testing.T) {
	if th := Get("NORD"); th.Name != "nord" {
		t.Errorf("Get(\"NORD\").Name = %q, want nord", th.Name)
	}
}

func TestGetUnknownFallsBackToDefault(t *testing.T) {
	th := Get("unknown-theme-xyz")
	if th.Name != "default" {
		t.Errorf("Get(\"unknown\") = %q, want default", th.Name)
	}
	if _, ok := Lookup("unknown-theme-xyz"); ok {
		t.Error("Lookup should report unknown themes as missing")
	}
}

func TestNames(t *testing.T) {
	names := Names()
	want := []string{"default", "dracula", "light", "nord"}
	if len(names) < len(want) {
		t.Fatalf("Names() = %v, want at least %v", names, want)
	}
	for _, name := range want {
		if _, ok := Lookup(name); !ok {
			t.Errorf("builtin %q not registered", name)
		}
	}
}

func TestBuiltinsAreValid(t *testing.T) {
	for _, name := range []string{"default", "dracula", "light", "nord"} {
		if err := thValidateTheme(Get(name)); err != nil {
			t.Errorf("builtin %q invalid: %v", name, err)
		}
	}
}

func TestBrandRampIsDistinct(t *testing.T) {
	th := Get("default")
	seen := map[string]string{}
	for field, color := range map[string]string{
		"idle":      th.Brand,
		"purr":      th.BrandPurr,
		"neko":      th.BrandNeko,
		"ultimate":  th.BrandUltimate,
		"ascension": th.BrandAscension,
	} {
		if other, dup := seen[strings.ToLower(color)]; dup {
			t.Errorf("brand layers %s and %s share color %s", field, other, color)
		}
		seen[strings.ToLower(color)] = field
	}
}

func TestTOMLRoundTrip(t *testing.T) {
	orig := Get("dracula")
	data, err := SaveToTOML(orig)
	if err != nil {
		t.Fatalf("SaveToTOML: %v", err)
	}
	got, err := LoadFromTOML(data)
	if err != nil {
		t.Fatalf("LoadFromTOML: %v", err)
	}
	if got != orig {
		t.Errorf("round trip mismatch:\n got %+v\nwant %+v", got, orig)
	}
}

func TestLoadFromTOMLRejectsBadHex(t *testing.T) {
	th := Get("default")
	th.BrandNeko = "purple"
	data, err := SaveToTOML(th)
	if err != nil {
		t.Fatalf("SaveToTOML: %v", err)
	}
	_, err = LoadFromTOML(data)
	if err == nil || !strings.Contains(err.Error(), "brand.neko") {
		t.Fatalf("expected brand.neko hex error, got %v", err)
	}
}

func TestLoadFromTOMLRejectsMissingName(t *testing.T) {
	th := Get("default")
	th.Name = ""
	data, _ := SaveToTOML(th)
	if _, err := LoadFromTOML(data); err == nil {
		t.Fatal("expected error for missing name")
	}
}

func TestLoadFromTOMLRejectsGarbage(t *testing.T) {
	if _, err := LoadFromTOML([]byte("not = [valid")); err == nil {
		t.Fatal("expected parse error")
	}
}

func TestLoadFile(t *testing.T) {
	th := Get("nord")
	th.Name = "custom"
	data, err := SaveToTOML(th)
	if err != nil {
		t.Fatalf("SaveToTOML: %v", err)
	}
	path := filepath.Join(t.TempDir(), "custom.toml")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatal(err)
	}

	got, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile: %v", err)
	}
	if got.Name != "custom" || got.Accent != th.Accent {
		t.Errorf("unexpected theme: %+v", got)
	}

	if _, err := LoadFile(filepath.Join(t.TempDir(), "missing.toml")); err == nil {
		t.Error("expected error for a missing file")
	}
}

func TestRegisterReplacesTheme(t *testing.T) {
	th := Get("default")
	th.Name = "Register-Test"
	th.Accent = "#123456"
	Register(th)

	got, ok := Lookup("register-test")
	if !ok || got.Accent != "#123456" {
		t.Errorf("registered theme not found: %+v %v", got, ok)
	}
}
