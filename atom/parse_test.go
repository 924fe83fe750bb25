package atom

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"github.com/albertocavalcante/go-pms/diag"
)

func TestParseDepFull(t *testing.T) {
	const input = ">=dev-lang/rust-1.75.0:0/1=[llvm_targets_AMDGPU]::gentoo"

	d, err := ParseDep(input)
	require.NoError(t, err)

	assert.Equal(t, NoBlocker, d.Blocker())
	assert.Equal(t, GreaterOrEqual, d.Operator())
	assert.Equal(t, "dev-lang", d.Category())
	assert.Equal(t, "rust", d.Package())

	v, ok := d.Version()
	require.True(t, ok)
	assert.Equal(t, "1.75.0", v.String())

	slot, ok := d.Slot()
	require.True(t, ok)
	assert.Equal(t, "0", slot.Slot())
	assert.Equal(t, "1", slot.Subslot())
	assert.Equal(t, SlotEqual, slot.Operator())

	uses := d.UseDeps()
	require.Len(t, uses, 1)
	assert.Equal(t, "llvm_targets_AMDGPU", uses[0].Flag())
	assert.Equal(t, UseEnabled, uses[0].Kind())

	assert.Equal(t, "gentoo", d.Repo())
	assert.Equal(t, input, d.String())
}

func TestParseDep(t *testing.T) {
	tests := []struct {
		input   string
		blocker Blocker
		op      Operator
		cpn     string
		version string
	}{
		{"dev-lang/rust", NoBlocker, NoOperator, "dev-lang/rust", ""},
		{"dev-lang/rust-", NoBlocker, NoOperator, "dev-lang/rust-", ""},
		{"!dev-lang/rust", Weak, NoOperator, "dev-lang/rust", ""},
		{"!!dev-lang/rust", Strong, NoOperator, "dev-lang/rust", ""},
		{"<dev-lang/rust-2", NoBlocker, Less, "dev-lang/rust", "2"},
		{"<=dev-lang/rust-2", NoBlocker, LessOrEqual, "dev-lang/rust", "2"},
		{"=dev-lang/rust-2-r1", NoBlocker, Equal, "dev-lang/rust", "2-r1"},
		{"~dev-lang/rust-2", NoBlocker, Approximate, "dev-lang/rust", "2"},
		{">=dev-lang/rust-2", NoBlocker, GreaterOrEqual, "dev-lang/rust", "2"},
		{">dev-lang/rust-2", NoBlocker, Greater, "dev-lang/rust", "2"},
		{"=dev-lang/rust-1.7*", NoBlocker, Glob, "dev-lang/rust", "1.7"},
		{"!<dev-lang/rust-bin-1.70", Weak, Less, "dev-lang/rust-bin", "1.70"},
		{"!!>=sys-libs/glibc-2.38_p1-r2", Strong, GreaterOrEqual, "sys-libs/glibc", "2.38_p1-r2"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			d, err := ParseDep(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.blocker, d.Blocker())
			assert.Equal(t, tt.op, d.Operator())
			assert.Equal(t, tt.cpn, d.Cpn().String())

			v, ok := d.Version()
			assert.Equal(t, tt.version != "", ok)
			if ok {
				assert.Equal(t, tt.version, v.String())
			}
			assert.Equal(t, tt.input, d.String())
		})
	}
}

func TestParseDepClauses(t *testing.T) {
	tests := []struct {
		input  string
		slot   string
		groups int
		uses   []string
		repo   string
	}{
		{"dev-lang/rust:0", "0", 0, nil, ""},
		{"dev-lang/rust:*", "*", 0, nil, ""},
		{"dev-lang/rust:=", "=", 0, nil, ""},
		{"dev-lang/rust:stable/1.75=", "stable/1.75=", 0, nil, ""},
		{"=dev-lang/rust-1*:0", "0", 0, nil, ""},
		{"dev-lang/rust[a,-b,c?,!d?,e=,!f=]", "", 1, []string{"a", "-b", "c?", "!d?", "e=", "!f="}, ""},
		{"dev-lang/rust[g(+)=,!h(-)?]", "", 1, []string{"g(+)=", "!h(-)?"}, ""},
		{"dev-lang/rust[a][b,a]", "", 2, []string{"a", "b", "a"}, ""},
		{"dev-lang/rust::gentoo", "", 0, nil, "gentoo"},
		{"dev-lang/rust::my-overlay_2", "", 0, nil, "my-overlay_2"},
		{"dev-lang/rust:0[ssl]::gentoo", "0", 1, []string{"ssl"}, "gentoo"},
		{"!!=dev-lang/rust-1.75*:0/1=[x?]::r", "0/1=", 1, []string{"x?"}, "r"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			d, err := ParseDep(tt.input)
			require.NoError(t, err)

			slot, ok := d.Slot()
			assert.Equal(t, tt.slot != "", ok)
			if ok {
				assert.Equal(t, tt.slot, slot.String())
			}

			assert.Len(t, d.UseGroups(), tt.groups)
			var uses []string
			for _, u := range d.UseDeps() {
				uses = append(uses, u.String())
			}
			assert.Equal(t, tt.uses, uses)
			assert.Equal(t, tt.repo, d.Repo())
			assert.Equal(t, tt.input, d.String())
		})
	}
}

func TestParseDepErrors(t *testing.T) {
	tests := []struct {
		input  string
		kind   diag.Kind
		offset int
	}{
		// Operators and versions
		{">=dev-lang/rust-", diag.MalformedVersion, 16},
		{">=dev-lang/rust", diag.MalformedOperator, 0},
		{"!>dev-lang/rust", diag.MalformedOperator, 1},
		{">=dev-lang/rust-1.0_foo", diag.MalformedVersion, 20},
		{"=dev-lang/rust-1.0-r", diag.MalformedVersion, 20},
		{"~dev-lang/rust-1.0-r1", diag.MalformedOperator, 0},
		{">=dev-lang/rust-1.0*", diag.MalformedOperator, 19},
		{"dev-lang/rust*", diag.MalformedOperator, 13},
		{"=dev-lang/rust*", diag.MalformedOperator, 0},
		{"=dev-lang/rust-1.0**", diag.MalformedVersion, 18},
		{"==dev-lang/rust-1", diag.MalformedOperator, 1},
		{"<>dev-lang/rust-1", diag.MalformedOperator, 1},
		{"!>=~dev-lang/rust-1", diag.MalformedOperator, 3},

		// Category and package
		{"dev-lang/rust-1.75.0", diag.MalformedCpn, 13},
		{"!!dev-lang/rust-1.75.0:0", diag.MalformedCpn, 15},
		{"dev-lang", diag.MalformedCpn, 8},
		{"", diag.MalformedCpn, 0},
		{"!!!dev-lang/rust", diag.MalformedCpn, 2},
		{"dev-lang/ru st", diag.MalformedCpn, 11},

		// Slots
		{"dev-lang/rust:", diag.MalformedSlot, 14},
		{"dev-lang/rust:0*", diag.MalformedSlot, 15},
		{"dev-lang/rust:0/", diag.MalformedSlot, 16},
		{"dev-lang/rust:[ssl]", diag.MalformedSlot, 14},

		// USE dependencies
		{"dev-lang/rust[]", diag.MalformedUseDep, 14},
		{"dev-lang/rust[ssl", diag.MalformedUseDep, 17},
		{"dev-lang/rust[ssl,]", diag.MalformedUseDep, 18},
		{"dev-lang/rust[a,!ssl]", diag.MalformedUseDep, 16},
		{"dev-lang/rust[ssl(+)]", diag.MalformedUseDep, 17},
		{"dev-lang/rust[-ssl?]", diag.MalformedUseDep, 18},

		// Repositories
		{"dev-lang/rust::", diag.MalformedRepo, 15},
		{"dev-lang/rust::-x", diag.MalformedRepo, 15},
		{"dev-lang/rust::gen.too", diag.MalformedRepo, 18},
		{"dev-lang/rust::overlay-1", diag.MalformedRepo, 22},

		// Ordering and leftovers
		{"dev-lang/rust::gentoo[ssl]", diag.TrailingInput, 21},
		{"dev-lang/rust[ssl]:0", diag.TrailingInput, 18},
		{"dev-lang/rust:0:1", diag.TrailingInput, 15},
		{"dev-lang/rust[ssl]x", diag.TrailingInput, 18},
		{"dev-lang/rust::gentoo:0", diag.TrailingInput, 21},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			_, err := ParseDep(tt.input)
			requireDiag(t, err, tt.kind, tt.offset)
		})
	}
}

func TestParseDepErrorMessage(t *testing.T) {
	_, err := ParseDep(">=dev-lang/rust-")
	require.Error(t, err)
	assert.Equal(t, `">=dev-lang/rust-": malformed version at offset 16: missing version after '-'`, err.Error())
}

func TestParseDepNeverPanics(t *testing.T) {
	alphabet := []rune("ab01-_./:=*[]!<>~,?()+@r ")
	rapid.Check(t, func(t *rapid.T) {
		runes := rapid.SliceOfN(rapid.SampledFrom(alphabet), 0, 24).Draw(t, "runes")
		s := "cat/" + string(runes)
		d, err := ParseDep(s)
		if err != nil {
			if diag.KindOf(err) == 0 {
				t.Fatalf("ParseDep(%q) returned untyped error %v", s, err)
			}
			return
		}
		if d.String() != s {
			t.Fatalf("ParseDep(%q).String() = %q", s, d.String())
		}
	})
}

const depVersionPattern = `[0-9]{1,3}(\.[0-9]{1,2}){0,2}[a-c]?(_(alpha|beta|pre|rc|p)[0-9]{0,2}){0,2}(-r[0-9])?`

// genDepString draws a syntactically valid atom string.
func genDepString(t *rapid.T) string {
	var b strings.Builder
	b.WriteString(rapid.SampledFrom([]string{"", "!", "!!"}).Draw(t, "blocker"))

	op := rapid.SampledFrom([]string{"", "<", "<=", "=", "~", ">=", ">", "=*"}).Draw(t, "op")
	cpn := rapid.StringMatching(`[a-z]{2,5}-[a-z]{2,5}/[a-z][a-z0-9_+]{0,6}(-[a-z]{1,3})?`).Draw(t, "cpn")
	if op == "" {
		b.WriteString(cpn)
	} else {
		v := rapid.StringMatching(depVersionPattern).Draw(t, "version")
		if op == "~" {
			v, _, _ = strings.Cut(v, "-r")
		}
		b.WriteString(strings.TrimSuffix(op, "*"))
		b.WriteString(cpn + "-" + v)
		if op == "=*" {
			b.WriteByte('*')
		}
	}

	b.WriteString(rapid.SampledFrom([]string{"", ":0", ":0/1", ":0=", ":2.7/2.7.1=", ":=", ":*", ":stable"}).Draw(t, "slot"))

	groups := rapid.IntRange(0, 2).Draw(t, "groups")
	for range groups {
		items := rapid.SliceOfN(rapid.SampledFrom([]string{
			"ssl", "-ssl", "ssl?", "!ssl?", "ssl=", "!ssl=", "ssl(+)?", "!x(-)=", "python_targets_python3_12",
		}), 1, 3).Draw(t, "uses")
		b.WriteString("[" + strings.Join(items, ",") + "]")
	}

	b.WriteString(rapid.SampledFrom([]string{"", "::gentoo", "::my_overlay", "::guru_2"}).Draw(t, "repo"))
	return b.String()
}

func TestProperty_DepRoundTrip(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		s := genDepString(t)
		d, err := ParseDep(s)
		if err != nil {
			t.Fatalf("ParseDep(%q): %v", s, err)
		}
		if d.String() != s {
			t.Fatalf("ParseDep(%q).String() = %q", s, d.String())
		}
		again, err := ParseDep(d.String())
		if err != nil || !again.Equal(d) {
			t.Fatalf("re-parse of %q not Equal (err %v)", s, err)
		}
	})
}
