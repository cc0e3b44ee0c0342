package platform

import (
	"errors"
	"reflect"
	"strings"
	"testing"
)

func TestValidateURL(t *testing.T) {
	valid, err := ValidateURL(" https://en.wikipedia.org/wiki/Lighthouse ")
	if err != nil {
		t.Fatalf("unexpected error for valid URL: %v", err)
	}
	if valid != "https://en.wikipedia.org/wiki/Lighthouse" {
		t.Fatalf("unexpected normalized URL: %q", valid)
	}

	if _, err := ValidateURL(""); err == nil || !strings.Contains(err.Error(), "no URL") {
		t.Fatalf("expected missing URL error, got %v", err)
	}

	_, err = ValidateURL("ftp://example.com/path")
	if err == nil || !strings.Contains(err.Error(), "unsupported URL scheme") {
		t.Fatalf("expected unsupported scheme error, got %v", err)
	}

	_, err = ValidateURL("https://")
	if err == nil || !strings.Contains(err.Error(), "invalid URL host") {
		t.Fatalf("expected invalid host error, got %v", err)
	}
}

func TestBrowserCommand(t *testing.T) {
	cases := []struct {
		goos string
		url  string
		name string
		args []string
	}{
		{goos: "darwin", url: "https://example.com", name: "open", args: []string{"https://example.com"}},
		{goos: "windows", url: "https://example.com", name: "rundll32", args: []string{"url.dll,FileProtocolHandler", "https://example.com"}},
		{goos: "linux", url: "https://example.com", name: "xdg-open", args: []string{"https://example.com"}},
	}
	for _, tc := range cases {
		gotName, gotArgs := browserCommand(tc.goos, tc.url)
		if gotName != tc.name || !reflect.DeepEqual(gotArgs, tc.args) {
			t.Fatalf("browserCommand(%q) = (%q, %v), want (%q, %v)", tc.goos, gotName, gotArgs, tc.name, tc.args)
		}
	}
}

func TestCopyWith(t *testing.T) {
	var copied string
	write := func(s string) error {
		copied = s
		return nil
	}
	if err := copyWith(false, write, "https://example.com"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if copied != "https://example.com" {
		t.Fatalf("unexpected copied text: %q", copied)
	}

	if err := copyWith(true, write, "x"); err == nil {
		t.Fatal("expected error when no clipboard command is available")
	}

	failing := func(string) error { return errors.New("exit status 1") }
	if err := copyWith(false, failing, "x"); err == nil || !strings.Contains(err.Error(), "copy to clipboard") {
		t.Fatalf("expected wrapped write error, got %v", err)
	}
}
