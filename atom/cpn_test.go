package atom

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/albertocavalcante/go-pms/diag"
	"github.com/albertocavalcante/go-pms/version"
)

// requireDiag asserts err is a *diag.Error of the given kind and offset.
func requireDiag(t *testing.T, err error, kind diag.Kind, offset int) {
	t.Helper()
	var de *diag.Error
	require.ErrorAs(t, err, &de)
	assert.Equal(t, kind, de.Kind, "kind for %q (%s)", de.Input, de.Reason)
	assert.Equal(t, offset, de.Offset, "offset for %q (%s)", de.Input, de.Reason)
	assert.ErrorIs(t, err, kind.Sentinel())
}

func TestParseCpn(t *testing.T) {
	tests := []struct {
		input    string
		category string
		pkg      string
	}{
		{"dev-lang/rust", "dev-lang", "rust"},
		{"sys-libs/glibc", "sys-libs", "glibc"},
		{"virtual/libc", "virtual", "libc"},
		{"dev-qt/qt5", "dev-qt", "qt5"},
		{"app-misc/foo_bar+baz", "app-misc", "foo_bar+baz"},
		{"x11-libs/gtk+", "x11-libs", "gtk+"},
		{"dev-lang/rust-", "dev-lang", "rust-"},
		{"dev-lang/rust-bin", "dev-lang", "rust-bin"},
		{"media-libs/libsdl2-r", "media-libs", "libsdl2-r"},
		{"cat.1/pkg", "cat.1", "pkg"},
		{"_cat/_pkg", "_cat", "_pkg"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			c, err := ParseCpn(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.category, c.Category())
			assert.Equal(t, tt.pkg, c.Package())
			assert.Equal(t, tt.input, c.String())
		})
	}
}

func TestParseCpnErrors(t *testing.T) {
	tests := []struct {
		input  string
		offset int
	}{
		{"", 0},
		{"dev-lang", 8},
		{"a/b/c", 3},
		{"/rust", 0},
		{"dev-lang/", 9},
		{"-cat/pkg", 0},
		{".cat/pkg", 0},
		{"+cat/pkg", 0},
		{"cat/+pkg", 4},
		{"cat/-pkg", 4},
		{"cat/pk.g", 6},
		{"cat/pkg!", 7},
		{"dev-lang/rust-1.75.0", 13},
		{"dev-lang/foo-2-1", 14},
		{"dev-lang/rust-1-r1", 13},
		{"dev-lang/rust-1.75.0_rc1-r2", 13},
		{"cat/pk.g-1.0", 6},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			_, err := ParseCpn(tt.input)
			requireDiag(t, err, diag.MalformedCpn, tt.offset)
		})
	}
}

func TestNewCpn(t *testing.T) {
	c, err := NewCpn("dev-lang", "rust")
	require.NoError(t, err)
	assert.Equal(t, MustCpn("dev-lang/rust"), c)

	_, err = NewCpn("dev/lang", "rust")
	assert.ErrorIs(t, err, diag.ErrMalformedCpn)

	_, err = NewCpn("dev-lang", "rust-1.0")
	assert.ErrorIs(t, err, diag.ErrMalformedCpn)

	assert.Panics(t, func() { MustCpn("nope") })
}

func TestCpnCompare(t *testing.T) {
	a := MustCpn("app-misc/foo")
	b := MustCpn("app-misc/goo")
	c := MustCpn("dev-lang/foo")
	assert.Negative(t, a.Compare(b))
	assert.Negative(t, b.Compare(c))
	assert.Positive(t, c.Compare(a))
	assert.Zero(t, a.Compare(MustCpn("app-misc/foo")))
	assert.True(t, a.Equal(MustCpn("app-misc/foo")))
	assert.False(t, a.Equal(b))
	assert.True(t, Cpn{}.IsEmpty())
}

func TestParseCpv(t *testing.T) {
	tests := []struct {
		input   string
		cpn     string
		version string
	}{
		{"dev-lang/rust-1.75.0", "dev-lang/rust", "1.75.0"},
		{"dev-lang/rust-1.75.0-r1", "dev-lang/rust", "1.75.0-r1"},
		{"dev-lang/rust-bin-1.75.0", "dev-lang/rust-bin", "1.75.0"},
		{"sys-libs/glibc-2.38_p20240101", "sys-libs/glibc", "2.38_p20240101"},
		{"net-misc/curl-8.5.0a_rc1_p2-r3", "net-misc/curl", "8.5.0a_rc1_p2-r3"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			c, err := ParseCpv(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.cpn, c.Cpn().String())
			assert.Equal(t, tt.version, c.Version().String())
			assert.Equal(t, tt.input, c.String())
		})
	}
}

func TestParseCpvErrors(t *testing.T) {
	tests := []struct {
		input  string
		kind   diag.Kind
		offset int
	}{
		{"dev-lang/rust", diag.MalformedVersion, 13},
		{"dev-lang/rust-", diag.MalformedVersion, 14},
		{"dev-lang/rust-1.0_foo", diag.MalformedVersion, 18},
		{"dev-lang/rust-1..0", diag.MalformedVersion, 16},
		{"dev-lang/rust-1.0-r", diag.MalformedVersion, 19},
		{"rust-1.0", diag.MalformedCpn, 8},
		{"-dev/rust-1.0", diag.MalformedCpn, 0},
		// "foo-2" itself ends in a version once "1.0" is split off.
		{"dev-libs/foo-2-1.0", diag.MalformedCpn, 12},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			_, err := ParseCpv(tt.input)
			requireDiag(t, err, tt.kind, tt.offset)
		})
	}
}

func TestNewCpv(t *testing.T) {
	c, err := NewCpv(MustCpn("dev-lang/rust"), version.MustParse("1.75.0"))
	require.NoError(t, err)
	assert.True(t, c.Equal(MustCpv("dev-lang/rust-1.75.0")))

	_, err = NewCpv(Cpn{}, version.MustParse("1"))
	assert.ErrorIs(t, err, diag.ErrMalformedCpn)

	_, err = NewCpv(MustCpn("dev-lang/rust"), version.Version{})
	assert.ErrorIs(t, err, diag.ErrMalformedVersion)
}

func TestCpvCompareAndDep(t *testing.T) {
	older := MustCpv("dev-lang/rust-1.74.1")
	newer := MustCpv("dev-lang/rust-1.75.0")
	other := MustCpv("dev-lang/go-1.99")

	assert.Negative(t, older.Compare(newer))
	assert.Positive(t, newer.Compare(older))
	assert.Negative(t, other.Compare(older), "category/package orders before version")

	d := newer.Dep()
	assert.Equal(t, "=dev-lang/rust-1.75.0", d.String())
	assert.True(t, d.Matches(newer))
	assert.False(t, d.Matches(older))
}

func TestCpvTextMarshaling(t *testing.T) {
	type doc struct {
		Name Cpn `json:"name"`
		Pkg  Cpv `json:"pkg"`
	}
	in := doc{Name: MustCpn("dev-lang/rust"), Pkg: MustCpv("dev-lang/rust-1.75.0-r1")}
	data, err := json.Marshal(in)
	require.NoError(t, err)
	assert.JSONEq(t, `{"name":"dev-lang/rust","pkg":"dev-lang/rust-1.75.0-r1"}`, string(data))

	var out doc
	require.NoError(t, json.Unmarshal(data, &out))
	assert.Equal(t, in.Name, out.Name)
	assert.True(t, in.Pkg.Equal(out.Pkg))

	var bad Cpv
	assert.Error(t, json.Unmarshal([]byte(`"dev-lang/rust"`), &bad))
}
