package cmd

import "testing"

func TestPersistentFlagNames(t *testing.T) {
	for _, name := range []string{"db", "buffer", "horizon", "sims", "risk", "quiet"} {
		if rootCmd.PersistentFlags().Lookup(name) == nil {
			t.Errorf("persistent flag %q not registered", name)
		}
	}
}
