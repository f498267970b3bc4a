package schema

import "github.com/coregx/lexigen/internal/lexnfa"

// PatternTable validates d and flattens it into the ordered pattern list
// internal/lexnfa.CompileMany expects: token rules first in declaration
// order, then skip patterns. The returned index into d.Rules is -1 for a
// pattern id that came from Skip.
func PatternTable(d *Declaration) (patterns []lexnfa.Pattern, ruleIndex []int, err error) {
	if err := d.Validate(); err != nil {
		return nil, nil, err
	}

	patterns = make([]lexnfa.Pattern, 0, len(d.Rules)+len(d.Skip))
	ruleIndex = make([]int, 0, len(d.Rules)+len(d.Skip))

	for i, r := range d.Rules {
		source, err := r.Source()
		if err != nil {
			return nil, nil, err
		}
		patterns = append(patterns, lexnfa.Pattern{ID: len(patterns), Source: source})
		ruleIndex = append(ruleIndex, i)
	}
	for _, src := range d.Skip {
		patterns = append(patterns, lexnfa.Pattern{ID: len(patterns), Source: src})
		ruleIndex = append(ruleIndex, -1)
	}

	return patterns, ruleIndex, nil
}
