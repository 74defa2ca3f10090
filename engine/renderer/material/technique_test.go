package material

import "testing"

func TestTechniqueForQuality(t *testing.T) {
	low := NewTechnique(0, NewPass("base"))
	medium := NewTechnique(1, NewPass("base"))
	high := NewTechnique(2, NewPass("base"))

	tests := []struct {
		name       string
		techniques []Technique
		quality    int
		want       Technique
	}{
		{name: "exact match", techniques: []Technique{low, medium, high}, quality: 1, want: medium},
		{name: "best below quality", techniques: []Technique{low, high}, quality: 1, want: low},
		{name: "highest when quality above all", techniques: []Technique{low, medium}, quality: 5, want: medium},
		{name: "fallback to lowest when all above quality", techniques: []Technique{medium, high}, quality: 0, want: medium},
		{name: "no techniques", techniques: nil, quality: 2, want: nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := NewMaterial(WithTechniques(tt.techniques...))
			if got := m.TechniqueForQuality(tt.quality); got != tt.want {
				t.Errorf("TechniqueForQuality(%d) = %v, want %v", tt.quality, got, tt.want)
			}
		})
	}
}

func TestTechniquePassLookup(t *testing.T) {
	base := NewPass("base")
	lit := NewPass("light")
	tech := NewTechnique(0, base, lit)

	if got := tech.Pass("base"); got != base {
		t.Errorf("Pass(base) = %v, want the base pass", got)
	}
	if got := tech.Pass("light"); got != lit {
		t.Errorf("Pass(light) = %v, want the light pass", got)
	}
	if got := tech.Pass("missing"); got != nil {
		t.Errorf("Pass(missing) = %v, want nil", got)
	}

	names := tech.PassNames()
	if len(names) != 2 || names[0] != "base" || names[1] != "light" {
		t.Errorf("PassNames() = %v, want [base light]", names)
	}
}
