package secrets

import (
	"errors"
	"reflect"
	"strings"
	"testing"
)

func TestLookupPrecedence(t *testing.T) {
	store := NewStore(
		Provider{Location: "user.yaml", Values: map[string]string{"api-key": "from-user"}},
		Provider{Location: "default.yaml", Values: map[string]string{"api-key": "from-default"}},
	)

	value, known := store.Lookup("api-key")
	if !known || value != "from-user" {
		t.Fatalf("expected user value to win, got (%q, %v)", value, known)
	}
}

func TestLookupEmptyValueFallsThrough(t *testing.T) {
	store := NewStore(
		Provider{Location: "user.yaml", Values: map[string]string{"api-key": ""}},
		Provider{Location: "default.yaml", Values: map[string]string{"api-key": "from-default"}},
	)

	value, known := store.Lookup("api-key")
	if !known || value != "from-default" {
		t.Fatalf("expected fallthrough to default, got (%q, %v)", value, known)
	}
}

func TestLookupEmptyEverywhereIsStillKnown(t *testing.T) {
	store := NewStore(
		Provider{Location: "user.yaml", Values: map[string]string{"optional-url": ""}},
	)

	value, known := store.Lookup("optional-url")
	if !known {
		t.Fatal("expected key with empty value to be known")
	}
	if value != "" {
		t.Fatalf("expected empty value, got %q", value)
	}
}

func TestLookupUnknownKey(t *testing.T) {
	store := NewStore(Provider{Location: "user.yaml", Values: map[string]string{}})

	if _, known := store.Lookup("absent"); known {
		t.Fatal("expected unknown key")
	}
}

func TestMerged(t *testing.T) {
	store := NewStore(
		Provider{Location: "user.yaml", Values: map[string]string{"a": "1", "b": ""}},
		Provider{Location: "default.yaml", Values: map[string]string{"b": "2", "c": "3"}},
	)

	want := map[string]string{"a": "1", "b": "2", "c": "3"}
	if got := store.Merged(); !reflect.DeepEqual(got, want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
}

func TestCanonicalKey(t *testing.T) {
	tests := []struct {
		ref  string
		want string
	}{
		{"kv://redis/urlKeyVault", "redis-urlKeyVault"},
		{"kv://redis-urlKeyVault", "redis-urlKeyVault"},
		{"kv://databases/myapp/0/passwordKeyVault", "databases-myapp-0-passwordKeyVault"},
		{"bare-key", "bare-key"},
	}

	for _, tt := range tests {
		if got := CanonicalKey(tt.ref); got != tt.want {
			t.Errorf("CanonicalKey(%q) = %q, want %q", tt.ref, got, tt.want)
		}
	}

	if CanonicalKey("kv://a/b") != CanonicalKey("kv://a-b") {
		t.Fatal("path-style and hyphen-style spellings must canonicalize identically")
	}
}

func TestRefsDeduplicatesByCanonicalKey(t *testing.T) {
	template := "A=kv://a/b\nB=kv://a-b\nC=kv://c\n"

	refs := Refs(template)
	if !reflect.DeepEqual(refs, []string{"kv://a/b", "kv://c"}) {
		t.Fatalf("unexpected refs %v", refs)
	}
}

func TestRefsNoneInPlainText(t *testing.T) {
	if refs := Refs("A=1\nB=${VAR}\n"); refs != nil {
		t.Fatalf("expected no refs, got %v", refs)
	}
}

func TestParseStoreFile(t *testing.T) {
	values, err := parseStoreFile([]byte("redis-urlKeyVault: redis://localhost:6379\nretries: 3\n"), "secrets.yaml")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if values["redis-urlKeyVault"] != "redis://localhost:6379" {
		t.Fatalf("unexpected value %q", values["redis-urlKeyVault"])
	}
	// Numeric scalars are coerced to strings.
	if values["retries"] != "3" {
		t.Fatalf("expected coerced number, got %q", values["retries"])
	}
}

func TestParseStoreFileNormalizesPathStyleKeys(t *testing.T) {
	values, err := parseStoreFile([]byte("redis/urlKeyVault: value\n"), "secrets.yaml")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if values["redis-urlKeyVault"] != "value" {
		t.Fatalf("expected path-style key to be canonicalized, got %v", values)
	}
}

func TestParseStoreFileEmptyAndCommentOnly(t *testing.T) {
	for _, content := range []string{"", "   \n", "# just a comment\n", "---\n# notes\n"} {
		values, err := parseStoreFile([]byte(content), "secrets.yaml")
		if err != nil {
			t.Fatalf("expected %q to parse as empty store, got %v", content, err)
		}
		if len(values) != 0 {
			t.Fatalf("expected empty store for %q", content)
		}
	}
}

func TestParseStoreFileRejectsNonMapping(t *testing.T) {
	for _, content := range []string{"123\n", `"just a string"` + "\n", "null\n", "- a\n- b\n"} {
		_, err := parseStoreFile([]byte(content), "secrets.yaml")
		if !errors.Is(err, ErrInvalidFormat) {
			t.Fatalf("expected ErrInvalidFormat for %q, got %v", content, err)
		}
	}
}

func TestMissingSecretsErrorMessage(t *testing.T) {
	err := &MissingSecretsError{
		Refs:      []string{"kv://a", "kv://b"},
		Locations: []string{"/home/x/.fabrix/secrets.local.yaml", "/home/x/.fabrix/secrets.yaml"},
	}

	msg := err.Error()
	for _, want := range []string{"kv://a", "kv://b", "secrets.local.yaml", "secrets.yaml"} {
		if !strings.Contains(msg, want) {
			t.Errorf("expected message to contain %q: %s", want, msg)
		}
	}
}
