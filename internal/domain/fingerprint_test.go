package domain

import "testing"

func TestFingerprintURLIdentity(t *testing.T) {
	a := &Job{
		Title:    "Software Engineer",
		Company:  "Acme",
		Location: "Remote",
		URL:      "https://jobs.acme.com/123",
	}
	b := &Job{
		Title:    "Sr. Software Engineer", // different title, same posting
		Company:  "ACME Inc",
		Location: "New York",
		URL:      "HTTPS://JOBS.ACME.COM/123",
	}

	if Fingerprint(a) != Fingerprint(b) {
		t.Errorf("Fingerprint() differs for same URL: %q vs %q", Fingerprint(a), Fingerprint(b))
	}
}

func TestFingerprintFallbackIdentity(t *testing.T) {
	a := &Job{Title: "Barista", Company: "Coffee Co", Location: "Seattle, WA"}
	b := &Job{Title: "  BARISTA ", Company: "coffee   co", Location: "seattle, wa"}

	if Fingerprint(a) != Fingerprint(b) {
		t.Errorf("Fingerprint() fallback not normalized: %q vs %q", Fingerprint(a), Fingerprint(b))
	}
}

func TestFingerprintURLBeatsFallback(t *testing.T) {
	withURL := &Job{Title: "Barista", Company: "Coffee Co", Location: "Seattle", URL: "https://apply.example.com/1"}
	without := &Job{Title: "Barista", Company: "Coffee Co", Location: "Seattle"}

	if Fingerprint(withURL) == Fingerprint(without) {
		t.Error("Fingerprint() should differ when one record has a usable URL")
	}
}

func TestFingerprintDistinctJobs(t *testing.T) {
	tests := []struct {
		name string
		a, b *Job
	}{
		{
			name: "different urls",
			a:    &Job{Title: "Engineer", Company: "Acme", URL: "https://x.com/1"},
			b:    &Job{Title: "Engineer", Company: "Acme", URL: "https://x.com/2"},
		},
		{
			name: "different companies without url",
			a:    &Job{Title: "Engineer", Company: "Acme", Location: "NYC"},
			b:    &Job{Title: "Engineer", Company: "Globex", Location: "NYC"},
		},
		{
			name: "different locations without url",
			a:    &Job{Title: "Engineer", Company: "Acme", Location: "NYC"},
			b:    &Job{Title: "Engineer", Company: "Acme", Location: "Boston"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if Fingerprint(tt.a) == Fingerprint(tt.b) {
				t.Errorf("Fingerprint() collided: %q", Fingerprint(tt.a))
			}
		})
	}
}

func TestHasUsableURL(t *testing.T) {
	tests := []struct {
		name string
		url  string
		want bool
	}{
		{"https link", "https://jobs.example.com/1", true},
		{"http link", "http://jobs.example.com/1", true},
		{"empty", "", false},
		{"whitespace only", "   ", false},
		{"missing scheme", "jobs.example.com/1", false},
		{"bare scheme", "https://", false},
		{"scheme with slash only", "https:///", false},
		{"mailto", "mailto:hr@example.com", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := HasUsableURL(&Job{URL: tt.url})
			if got != tt.want {
				t.Errorf("HasUsableURL(%q) = %v, want %v", tt.url, got, tt.want)
			}
		})
	}
}

func TestFingerprintIsPure(t *testing.T) {
	j := &Job{Title: "Nurse", Company: "City Hospital", Location: "Chicago"}
	first := Fingerprint(j)
	for i := 0; i < 5; i++ {
		if got := Fingerprint(j); got != first {
			t.Fatalf("Fingerprint() not stable: %q then %q", first, got)
		}
	}
}
