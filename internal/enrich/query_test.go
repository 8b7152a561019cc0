package enrich

import "testing"

func TestBuildSearchQuery(t *testing.T) {
	cases := []struct {
		name  string
		parts []string
		want  string
	}{
		{
			name:  "stopwords and cap",
			parts: []string{"The Fastest Emergency Plumbing Repair in Your Area"},
			want:  "fastest emergency plumbing repair",
		},
		{
			name:  "html stripped",
			parts: []string{"<p>Reliable <strong>roofing</strong> crews</p>"},
			want:  "reliable roofing crews",
		},
		{
			name:  "punctuation stripped",
			parts: []string{"Plumbing, heating & cooling!"},
			want:  "plumbing heating cooling",
		},
		{
			name:  "multiple parts joined",
			parts: []string{"Our Team", "Certified electricians"},
			want:  "team certified electricians",
		},
		{
			name:  "tag boundary keeps tokens apart",
			parts: []string{"fast<br>friendly"},
			want:  "fast friendly",
		},
		{
			name:  "nothing survives",
			parts: []string{"the", "and", "!!!"},
			want:  "",
		},
		{
			name:  "empty input",
			parts: nil,
			want:  "",
		},
	}
	for _, tc := range cases {
		if got := BuildSearchQuery(tc.parts); got != tc.want {
			t.Errorf("%s: BuildSearchQuery(%v) = %q, want %q", tc.name, tc.parts, got, tc.want)
		}
	}
}

func TestBuildSearchQuery_Deterministic(t *testing.T) {
	parts := []string{"Emergency plumbing", "24/7 dispatch"}
	first := BuildSearchQuery(parts)
	for i := 0; i < 10; i++ {
		if got := BuildSearchQuery(parts); got != first {
			t.Fatalf("run %d produced %q, first run %q", i, got, first)
		}
	}
}
