package material

// technique is the implementation of the Technique interface.
type technique struct {
	quality int
	passes  map[string]Pass
	order   []string
}

// Technique defines the interface for a set of named material passes valid at
// a given quality tier. Materials register several techniques and the batch
// collector resolves the best one for the active quality setting.
type Technique interface {
	// Quality retrieves the quality tier this technique targets. Higher tiers
	// are preferred when the active quality setting allows them.
	//
	// Returns:
	//   - int: the quality tier
	Quality() int

	// Pass retrieves the pass with the given name, or nil if the technique
	// does not define it.
	//
	// Parameters:
	//   - name: the pass name to look up
	//
	// Returns:
	//   - Pass: the named pass, or nil
	Pass(name string) Pass

	// PassNames retrieves the names of all defined passes in registration order.
	//
	// Returns:
	//   - []string: the pass names
	PassNames() []string
}

var _ Technique = &technique{}

// NewTechnique creates a new Technique for the given quality tier from the
// provided passes. Passes are indexed by their names; a later pass with a
// duplicate name replaces the earlier one.
//
// Parameters:
//   - quality: the quality tier this technique targets
//   - passes: the passes forming the technique
//
// Returns:
//   - Technique: a new Technique instance
func NewTechnique(quality int, passes ...Pass) Technique {
	t := &technique{
		quality: quality,
		passes:  make(map[string]Pass, len(passes)),
	}
	for _, p := range passes {
		if _, exists := t.passes[p.Name()]; !exists {
			t.order = append(t.order, p.Name())
		}
		t.passes[p.Name()] = p
	}
	return t
}

func (t *technique) Quality() int {
	return t.quality
}

func (t *technique) Pass(name string) Pass {
	return t.passes[name]
}

func (t *technique) PassNames() []string {
	return t.order
}
