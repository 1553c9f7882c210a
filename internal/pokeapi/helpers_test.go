package pokeapi

import "testing"

func TestFormatting(t *testing.T) {
	cases := []struct {
		name string
		got  string
		want string
	}{
		{"height", FormatHeight(7), "0.7 m"},
		{"height tall", FormatHeight(200), "20.0 m"},
		{"weight", FormatWeight(69), "6.9 kg"},
		{"stat mapped", FormatStatName("special-attack"), "Sp. Atk"},
		{"stat hp", FormatStatName("hp"), "HP"},
		{"stat fallback", FormatStatName("accuracy"), "Accuracy"},
		{"capitalize", Capitalize("pIKACHU"), "Pikachu"},
		{"capitalize empty", Capitalize(""), ""},
		{"capitalize unicode", Capitalize("écho"), "Écho"},
	}
	for _, tc := range cases {
		if tc.got != tc.want {
			t.Fatalf("%s: got %q want %q", tc.name, tc.got, tc.want)
		}
	}
}

func TestEnglishFallbacks(t *testing.T) {
	entries := []FlavorText{{FlavorText: "Une graine", Language: NamedResource{Name: "fr"}}}
	if got := EnglishDescription(entries); got != "No description available." {
		t.Fatalf("description fallback %q", got)
	}
	if got := EnglishGenus([]Genus{{Genus: "Pokémon Graine", Language: NamedResource{Name: "fr"}}}); got != "" {
		t.Fatalf("genus fallback %q", got)
	}
}
