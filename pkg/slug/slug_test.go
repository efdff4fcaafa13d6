package slug

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGenerate(t *testing.T) {
	tests := []struct{ in, want string }{
		{"Navy Blue", "navy-blue"},
		{"  Running  ", "running"},
		{"Crème Brûlée", "creme-brulee"},
		{"Kadın Giyim", "kadin-giyim"},
		{"Air Max 90!!", "air-max-90"},
		{"---", ""},
		{"Size 10.5 (US)", "size-10-5-us"},
		{"Straße & Søn", "strasse-son"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Generate(tt.in), tt.in)
	}
}
