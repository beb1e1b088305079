package validators

import "testing"

func TestMailHost(t *testing.T) {
	cases := []struct {
		email string
		host  string
		ok    bool
	}{
		{"ana@example.com", "example.com", true},
		{`"a@b"@example.com`, "example.com", true},
		{"no-at-sign", "", false},
		{"trailing@", "", false},
		{"@example.com", "", false},
		{"", "", false},
	}

	for _, tc := range cases {
		host, ok := mailHost(tc.email)
		if host != tc.host || ok != tc.ok {
			t.Errorf("mailHost(%q) = %q, %v; want %q, %v", tc.email, host, ok, tc.host, tc.ok)
		}
	}
}
