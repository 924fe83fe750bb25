package e2e

import (
	"context"
	"encoding/json"
	"os/exec"
	"strings"
	"testing"
	"time"

	"github.com/albertocavalcante/go-pms/version"
)

// vercmpScript prints portage.versions.vercmp for each JSON pair on stdin.
const vercmpScript = `
import json, sys
from portage.versions import vercmp
for a, b in json.load(sys.stdin):
    r = vercmp(a, b)
    print((r > 0) - (r < 0))
`

// portageVercmp runs Portage's own comparator over pairs, skipping the test
// when Portage is not importable.
func portageVercmp(t *testing.T, pairs [][2]string) []int {
	t.Helper()
	if testing.Short() {
		t.Skip("skipping e2e test in short mode")
	}
	python, err := exec.LookPath("python3")
	if err != nil {
		t.Skip("python3 not found")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := exec.CommandContext(ctx, python, "-c", "import portage.versions").Run(); err != nil {
		t.Skip("portage python module not available")
	}

	input, err := json.Marshal(pairs)
	if err != nil {
		t.Fatalf("encode pairs: %v", err)
	}
	cmd := exec.CommandContext(ctx, python, "-c", vercmpScript)
	cmd.Stdin = strings.NewReader(string(input))
	out, err := cmd.Output()
	if err != nil {
		t.Fatalf("portage vercmp: %v", err)
	}

	lines := strings.Fields(string(out))
	if len(lines) != len(pairs) {
		t.Fatalf("portage returned %d results for %d pairs", len(lines), len(pairs))
	}
	results := make([]int, len(lines))
	for i, l := range lines {
		switch l {
		case "-1":
			results[i] = -1
		case "0":
			results[i] = 0
		case "1":
			results[i] = 1
		default:
			t.Fatalf("unexpected portage output %q", l)
		}
	}
	return results
}

// Pairs with the same number of numeric components. Portage orders 1.0 before
// 1.0.0 where we treat missing components as zero, so those are excluded.
var vercmpPairs = [][2]string{
	{"1.0_rc1", "1.0"},
	{"1.0", "1.0_p1"},
	{"1.01", "1.1"},
	{"1.010", "1.01"},
	{"1.0a", "1.0b"},
	{"1.0a", "1.0_p1"},
	{"1.0-r1", "1.0_p1"},
	{"1.0-r1", "1.0-r01"},
	{"2_alpha", "2_beta"},
	{"2_beta", "2_pre"},
	{"2_pre", "2_rc"},
	{"1.2.3_p1_rc2", "1.2.3_p1"},
	{"1.2.3_p1_p2", "1.2.3_p1"},
	{"10", "9"},
	{"1.0_pre1", "1.0_rc1"},
	{"1.0_rc10", "1.0_rc9"},
	{"12345678901234567890", "12345678901234567891"},
	{"1.00001", "1.0001"},
	{"0.9.99", "0.10.0"},
}

func TestE2E_VercmpMatchesPortage(t *testing.T) {
	want := portageVercmp(t, vercmpPairs)
	for i, p := range vercmpPairs {
		got, err := version.CompareStrings(p[0], p[1])
		if err != nil {
			t.Errorf("CompareStrings(%q, %q): %v", p[0], p[1], err)
			continue
		}
		if got != want[i] {
			t.Errorf("CompareStrings(%q, %q) = %d, portage says %d", p[0], p[1], got, want[i])
		}
	}
}

func TestE2E_CompareCommandMatchesPortage(t *testing.T) {
	pairs := vercmpPairs[:5]
	want := portageVercmp(t, pairs)
	for i, p := range pairs {
		res := runPmsatom(t, "", "compare", "--format", "json", p[0], p[1])
		if res.code != 0 {
			t.Fatalf("compare %s %s: exit code %d\n%s", p[0], p[1], res.code, res.stderr)
		}
		var r struct {
			Result int `json:"result"`
		}
		if err := json.Unmarshal([]byte(res.stdout), &r); err != nil {
			t.Fatalf("decode compare output: %v\n%s", err, res.stdout)
		}
		if r.Result != want[i] {
			t.Errorf("pmsatom compare %s %s = %d, portage says %d", p[0], p[1], r.Result, want[i])
		}
	}
}
