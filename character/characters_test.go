package character

import "testing"

func TestBuiltinCatalog(t *testing.T) {
	builtins := Builtin()
	if len(builtins) != 12 {
		t.Fatalf("got %d built-in characters, want 12", len(builtins))
	}

	seen := map[string]bool{}
	for _, c := range builtins {
		if c.Name == "" {
			t.Error("built-in character with empty name")
		}
		if c.SystemPrompt == "" {
			t.Errorf("character %q has no system prompt", c.Name)
		}
		if c.ID != "" {
			t.Errorf("built-in character %q carries an id", c.Name)
		}
		if seen[c.Name] {
			t.Errorf("duplicate character name %q", c.Name)
		}
		seen[c.Name] = true
	}
}

func TestBuiltinReturnsCopy(t *testing.T) {
	first := Builtin()
	first[0].Name = "mutated"

	if Builtin()[0].Name == "mutated" {
		t.Error("mutating the returned slice leaked into the catalog")
	}
}

func TestFindBuiltin(t *testing.T) {
	tests := []struct {
		name string
		want bool
	}{
		{"Wise Mentor", true},
		{"Storyteller", true},
		{"No Such Persona", false},
		{"", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FindBuiltin(tt.name)
			if (got != nil) != tt.want {
				t.Errorf("FindBuiltin(%q) = %v, want found=%v", tt.name, got, tt.want)
			}
			if got != nil && got.Name != tt.name {
				t.Errorf("FindBuiltin(%q).Name = %q", tt.name, got.Name)
			}
		})
	}
}

func TestSearch(t *testing.T) {
	builtins := Builtin()

	results := Search("mentor", builtins)
	if len(results) == 0 {
		t.Fatal("Search(mentor) returned nothing")
	}
	if results[0].Name != "Wise Mentor" {
		t.Errorf("top result = %q, want Wise Mentor", results[0].Name)
	}

	if got := Search("", builtins); len(got) != len(builtins) {
		t.Errorf("empty query returned %d results, want all %d", len(got), len(builtins))
	}

	if got := Search("zzzzqqqq", builtins); len(got) != 0 {
		t.Errorf("nonsense query returned %d results, want 0", len(got))
	}
}
