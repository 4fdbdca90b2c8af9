package cmd

import (
	"slices"
	"testing"

	"github.com/etnz/carbonplan"
)

func TestCompletion(t *testing.T) {
	c := Completion(carbonplan.DefaultCatalog())

	for _, name := range commandNames() {
		if _, ok := c.Sub[name]; !ok {
			t.Errorf("command %q has no completion", name)
		}
	}

	tests := []struct {
		name      string
		predicted []string
		want      string
	}{
		{"global alloc", c.Flags["alloc"].Predict(""), "led-lighting="},
		{"fill category", c.Sub["fill"].Flags["c"].Predict(""), "gas-heating"},
		{"catalog category", c.Sub["catalog"].Flags["c"].Predict(""), "travel"},
		{"topic", c.Sub["topic"].Args.Predict(""), "macc"},
		{"help", c.Sub["help"].Args.Predict(""), "session"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if !slices.Contains(tc.predicted, tc.want) {
				t.Errorf("predicted %v, want %q among them", tc.predicted, tc.want)
			}
		})
	}

	if _, ok := c.Sub["summary"].Flags["no-projection"]; !ok {
		t.Error("summary flags are not completed")
	}
}
