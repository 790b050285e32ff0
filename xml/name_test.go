package xml

import "testing"

func TestEncodeLocalName(t *testing.T) {
	cases := map[string]struct {
		name   string
		expect string
	}{
		"valid":            {name: "Key", expect: "Key"},
		"space":            {name: "first name", expect: "first_x0020_name"},
		"leading digit":    {name: "1abc", expect: "_x0031_abc"},
		"inner digit":      {name: "a1", expect: "a1"},
		"colon":            {name: "a:b", expect: "a_x003A_b"},
		"escape sequence":  {name: "_x0041_", expect: "_x005F_x0041_"},
		"long escape":      {name: "_x00010000_", expect: "_x005F_x00010000_"},
		"plain underscore": {name: "_x12", expect: "_x12"},
		"astral":           {name: "a\U000F0000", expect: "a_x000F0000_"},
		"leading dash":     {name: "-a", expect: "_x002D_a"},
	}

	for name, c := range cases {
		t.Run(name, func(t *testing.T) {
			if e, a := c.expect, EncodeLocalName(c.name); e != a {
				t.Errorf("expect %v, got %v", e, a)
			}
		})
	}
}
