package config

import "testing"

func TestPropertiesLookupOrder(t *testing.T) {
	tests := []struct {
		name   string
		values map[string]string
		want   string
		found  bool
	}{
		{"exact key", map[string]string{"example.env": "exact", "EXAMPLE_ENV": "upper"}, "exact", true},
		{"sanitized key", map[string]string{"example_env": "sanitized", "EXAMPLE_ENV": "upper"}, "sanitized", true},
		{"upper-cased key", map[string]string{"EXAMPLE_ENV": "upper"}, "upper", true},
		{"empty value is set", map[string]string{"EXAMPLE_ENV": ""}, "", true},
		{"missing", map[string]string{"OTHER": "x"}, "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := MapProperties(tt.values).Lookup("example.env")
			if ok != tt.found || got != tt.want {
				t.Fatalf("Lookup() = %q, %v; want %q, %v", got, ok, tt.want, tt.found)
			}
		})
	}
}

func TestCandidateKeys(t *testing.T) {
	tests := []struct {
		key  string
		want []string
	}{
		{"example.env", []string{"example.env", "example_env", "EXAMPLE_ENV"}},
		{"EXAMPLE_ENV", []string{"EXAMPLE_ENV"}},
		{"port", []string{"port", "PORT"}},
		{"my-app.db.url", []string{"my-app.db.url", "my_app_db_url", "MY_APP_DB_URL"}},
	}

	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			got := candidateKeys(tt.key)
			if len(got) != len(tt.want) {
				t.Fatalf("candidateKeys(%q) = %v, want %v", tt.key, got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Fatalf("candidateKeys(%q) = %v, want %v", tt.key, got, tt.want)
				}
			}
		})
	}
}

func TestZeroPropertiesResolveNothing(t *testing.T) {
	if _, ok := (Properties{}).Lookup("example.env"); ok {
		t.Fatal("expected zero Properties to resolve nothing")
	}
}

func TestEnvProperties(t *testing.T) {
	t.Setenv("EXAMPLE_ENV", "from-env")

	if v, ok := EnvProperties().Lookup("example.env"); !ok || v != "from-env" {
		t.Fatalf("expected from-env, got %q (%v)", v, ok)
	}
}
