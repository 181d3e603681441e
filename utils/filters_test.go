package utils

import "testing"

func TestMatchesSearch(t *testing.T) {
	users := []struct {
		name  string
		email string
	}{
		{"Andrea Smith", "andrea@example.com"},
		{"Bob Jones", "bob@example.com"},
		{"DANIEL BRYANT", "dan@example.com"},
		{"Cleo", ""},
		{"", ""},
	}

	var matched []string
	for _, u := range users {
		if MatchesSearch("an", u.name, u.email) {
			matched = append(matched, u.name)
		}
	}

	want := []string{"Andrea Smith", "DANIEL BRYANT"}
	if len(matched) != len(want) {
		t.Fatalf("search %q matched %v, want %v", "an", matched, want)
	}
	for i := range want {
		if matched[i] != want[i] {
			t.Errorf("search matched[%d] = %q, want %q", i, matched[i], want[i])
		}
	}
}

func TestMatchesSearchEmptyTerm(t *testing.T) {
	if !MatchesSearch("", "anything") {
		t.Error("empty term should match")
	}
	if !MatchesSearch("   ", "") {
		t.Error("blank term should match even with empty fields")
	}
	if MatchesSearch("an", "", "") {
		t.Error("non-empty term must not match empty fields")
	}
	if MatchesSearch("an") {
		t.Error("non-empty term must not match with no fields at all")
	}
}

func TestMatchesRole(t *testing.T) {
	cases := []struct {
		role   string
		filter string
		want   bool
	}{
		{"manager", "manager", true},
		{"manager", "owner", false},
		{"manager", "all", true},
		{"manager", "", true},
		{"", "guest", true}, // unset role defaults to guest
		{"", "manager", false},
	}

	for _, tc := range cases {
		if got := MatchesRole(tc.role, tc.filter); got != tc.want {
			t.Errorf("MatchesRole(%q, %q) = %v, want %v", tc.role, tc.filter, got, tc.want)
		}
	}
}

func TestMatchesStatus(t *testing.T) {
	cases := []struct {
		status string
		filter string
		want   bool
	}{
		{"pending", "open", true},
		{"in_progress", "open", true},
		{"completed", "open", false},
		{"completed", "completed", true},
		{"pending", "all", true},
		{"pending", "", true},
		{"", "open", false},
	}

	for _, tc := range cases {
		if got := MatchesStatus(tc.status, tc.filter); got != tc.want {
			t.Errorf("MatchesStatus(%q, %q) = %v, want %v", tc.status, tc.filter, got, tc.want)
		}
	}
}
