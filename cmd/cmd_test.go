package cmd_test

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/samuelfneumann/gridvalue/cmd"
	"github.com/samuelfneumann/gridvalue/environment/envconfig"
	"github.com/samuelfneumann/gridvalue/experiment"
)

// execute runs the command line with args and returns its standard
// output
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	root := cmd.RootCommand()

	var out, errOut bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&errOut)
	root.SetArgs(append(args, "--no-color"))

	err := root.Execute()
	return out.String(), err
}

func TestLinear(t *testing.T) {
	out, err := execute(t, "linear")
	if err != nil {
		t.Fatal(err)
	}

	lines := strings.Split(strings.TrimSpace(out), "\n")
	if len(lines) != 6 {
		t.Fatalf("linear: want title and 5 rows, have:\n%s", out)
	}
	for _, want := range []string{"3.31", "8.79", "-1.98"} {
		if !strings.Contains(out, want) {
			t.Errorf("linear: output missing %v:\n%s", want, out)
		}
	}
}

func TestCompare(t *testing.T) {
	args := []string{"compare", "--iterations", "20", "--samples", "20",
		"--progress=false"}

	out, err := execute(t, append(args, "--tolerance", "100")...)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out, "OK") {
		t.Errorf("compare: want OK, have:\n%s", out)
	}

	out, err = execute(t, append(args, "--tolerance", "0")...)
	if !errors.Is(err, cmd.ErrDisagree) {
		t.Errorf("compare: expected ErrDisagree, got %v", err)
	}
	if !strings.Contains(out, "FAIL") {
		t.Errorf("compare: want FAIL, have:\n%s", out)
	}
}

func TestMonteCarloSave(t *testing.T) {
	path := filepath.Join(t.TempDir(), "values.bin")
	_, err := execute(t, "montecarlo", "--iterations", "10", "--samples",
		"10", "--save", path)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := os.Stat(path); err != nil {
		t.Errorf("montecarlo: estimates not saved: %v", err)
	}
}

func TestRollout(t *testing.T) {
	out, err := execute(t, "rollout", "0", "1", "--iterations", "3")
	if err != nil {
		t.Fatal(err)
	}
	lines := strings.Split(strings.TrimSpace(out), "\n")
	if len(lines) != 4 {
		t.Fatalf("rollout: want 3 steps and a return, have:\n%s", out)
	}
	if !strings.Contains(lines[0], "(0, 1)") || !strings.Contains(lines[0],
		"(4, 1)") {
		t.Errorf("rollout: first step should teleport from A to A': %v",
			lines[0])
	}

	if _, err := execute(t, "rollout", "one", "1"); err == nil {
		t.Error("rollout: expected error for bad row")
	}
}

func TestConfigFlags(t *testing.T) {
	c := experiment.DefaultConfig()
	c.Env = envconfig.NewConfig(2, 3, 0.5, nil, nil)
	c.Policy.Name = experiment.Greedy

	var buf bytes.Buffer
	if err := c.Encode(&buf); err != nil {
		t.Fatal(err)
	}
	path := filepath.Join(t.TempDir(), "experiment.json")
	if err := os.WriteFile(path, buf.Bytes(), 0o600); err != nil {
		t.Fatal(err)
	}

	out, err := execute(t, "config", "--config", path, "--discount", "0.7",
		"--samples", "7")
	if err != nil {
		t.Fatal(err)
	}

	have, err := experiment.Decode(strings.NewReader(out))
	if err != nil {
		t.Fatal(err)
	}
	want := c
	want.Env.Discount = 0.7
	want.MonteCarlo.Samples = 7
	if have.Env.Rows != 2 || have.Env.Discount != 0.7 ||
		have.Policy != want.Policy || have.MonteCarlo != want.MonteCarlo {
		t.Errorf("config: want %+v, have %+v", want, have)
	}

	if _, err := execute(t, "linear", "--discount", "1"); err == nil {
		t.Error("linear: expected error for discount 1")
	}
	if _, err := execute(t, "linear", "--policy", "random"); err == nil {
		t.Error("linear: expected error for unknown policy")
	}
}

func TestRolloutSampledStart(t *testing.T) {
	first, err := execute(t, "rollout", "--iterations", "5", "--sample", "4")
	if err != nil {
		t.Fatal(err)
	}
	second, err := execute(t, "rollout", "--iterations", "5", "--sample", "4")
	if err != nil {
		t.Fatal(err)
	}
	if first != second {
		t.Errorf("rollout: sampled rollouts differ:\n%s\n%s", first, second)
	}

	if _, err := execute(t, "rollout", "1"); err == nil {
		t.Error("rollout: expected error for a single argument")
	}
}
