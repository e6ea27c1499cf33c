// fixtures_test.go runs the end-to-end program corpus in testdata/.
package aether

import (
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"gopkg.in/yaml.v3"
)

type fixtureCase struct {
	Name   string   `yaml:"name"`
	Source string   `yaml:"source"`
	Output []string `yaml:"output"`
	Error  string   `yaml:"error"`
}

func loadFixtures(t *testing.T) []fixtureCase {
	t.Helper()
	data, err := os.ReadFile(filepath.Join("testdata", "programs.yaml"))
	if err != nil {
		t.Fatalf("reading fixtures: %v", err)
	}
	var cases []fixtureCase
	if err := yaml.Unmarshal(data, &cases); err != nil {
		t.Fatalf("decoding fixtures: %v", err)
	}
	if len(cases) == 0 {
		t.Fatal("no fixture cases found")
	}
	return cases
}

func Test_Program_Fixtures(t *testing.T) {
	for _, c := range loadFixtures(t) {
		c := c
		t.Run(c.Name, func(t *testing.T) {
			var out []string
			err := Run(c.Source, func(s string) { out = append(out, s) })

			if c.Error != "" {
				if err == nil {
					t.Fatalf("expected error containing %q, got none\noutput: %q", c.Error, out)
				}
				if !strings.Contains(err.Error(), c.Error) {
					t.Fatalf("error = %q, want it to contain %q", err.Error(), c.Error)
				}
				return
			}

			if err != nil {
				t.Fatalf("run error: %v", err)
			}
			want := c.Output
			if want == nil {
				want = []string{}
			}
			got := out
			if got == nil {
				got = []string{}
			}
			if !reflect.DeepEqual(got, want) {
				t.Fatalf("output mismatch\nwant: %q\ngot:  %q", want, got)
			}
		})
	}
}
