package textnorm

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFilterKey(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		label string
		want  string
	}{
		{name: "plain", label: "Booster", want: "booster"},
		{name: "accents and case", label: "Pokémon Élite", want: "pokemon-elite"},
		{name: "whitespace runs", label: "  Escarlata   y\tPúrpura ", want: "escarlata-y-purpura"},
		{name: "already a key", label: "hot-wheels", want: "hot-wheels"},
		{name: "tilde n", label: "Niño", want: "nino"},
		{name: "empty", label: "   ", want: ""},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, FilterKey(tt.label))
		})
	}
}

func TestFilterKey_Symmetry(t *testing.T) {
	t.Parallel()

	pairs := [][2]string{
		{"Colección Clásica", "coleccion clasica"},
		{"ÉLITE TRAINER BOX", "Elite Trainer Box"},
		{"Pokémon", "POKEMON"},
	}
	for _, p := range pairs {
		assert.True(t, SameKey(p[0], p[1]), "%q vs %q", p[0], p[1])
		// normalizing a key again is stable
		assert.Equal(t, FilterKey(p[0]), FilterKey(FilterKey(p[0])))
	}
}

func TestCanonicalID(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		in   interface{}
		want string
	}{
		{name: "int", in: 7, want: "7"},
		{name: "float from json", in: float64(7), want: "7"},
		{name: "string", in: "7", want: "7"},
		{name: "padded string", in: " 7 ", want: "7"},
		{name: "decimal string kept", in: "7.10", want: "7.10"},
		{name: "exponent string kept", in: "1e3", want: "1e3"},
		{name: "json number", in: json.Number("42"), want: "42"},
		{name: "json decimal number", in: json.Number("7.0"), want: "7"},
		{name: "json exponent number", in: json.Number("1e3"), want: "1000"},
		{name: "uint", in: uint(12), want: "12"},
		{name: "non numeric", in: "P7", want: "P7"},
		{name: "fraction", in: 1.5, want: "1.5"},
		{name: "nil", in: nil, want: ""},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, CanonicalID(tt.in))
		})
	}
}
