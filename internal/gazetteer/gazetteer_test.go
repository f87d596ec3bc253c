package gazetteer

import "testing"

func TestResolve(t *testing.T) {
	t.Parallel()

	cases := []struct {
		text string
		want string
		ok   bool
	}{
		{"Great flats near Hitec city for IT employees", "hitech city", true},
		{"Looking at apartments in GACHIBOWLI", "gachibowli", true},
		{"Banjara area is pricey", "banjara hills", true},
		{"KPHB colony has older stock", "kukatpally", true},
		{"Nanakramguda towers are new", "nanakramguda", true},
		{"Fin district towers are new", "financial district", true},
		{"Nothing about places here", "", false},
		{"", "", false},
	}
	for _, tc := range cases {
		got, ok := Resolve(tc.text)
		if got != tc.want || ok != tc.ok {
			t.Fatalf("Resolve(%q) = (%q, %v), want (%q, %v)", tc.text, got, ok, tc.want, tc.ok)
		}
	}
}

func TestResolvePrefersCanonicalOrder(t *testing.T) {
	t.Parallel()

	got, ok := Resolve("Comparing kondapur and gachibowli options")
	if !ok || got != "kondapur" {
		t.Fatalf("expected first canonical match kondapur, got %q", got)
	}
}

func TestKnown(t *testing.T) {
	t.Parallel()

	if !Known("Gachibowli") {
		t.Fatal("canonical name should be known regardless of case")
	}
	if Known("atlantis") {
		t.Fatal("unknown locality reported as known")
	}
	if len(Localities()) != 50 {
		t.Fatalf("expected 50 canonical localities, got %d", len(Localities()))
	}
}
