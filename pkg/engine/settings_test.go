package engine

import (
	"testing"

	"github.com/arthur-debert/rdpgen/pkg/logging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseSettingLine(t *testing.T) {
	tests := []struct {
		line string
		want Setting
		ok   bool
	}{
		{"full address:s:10.0.0.1", Setting{"full address", "s", "10.0.0.1"}, true},
		{"  screen mode id:i:2  ", Setting{"screen mode id", "i", "2"}, true},
		{"gatewayhostname:s:gw:443", Setting{"gatewayhostname", "s", "gw:443"}, true},
		{"empty value:s:", Setting{"empty value", "s", ""}, true},
		{"only:one colon", Setting{}, false},
		{":s:no key", Setting{}, false},
		{"plain text", Setting{}, false},
		{"", Setting{}, false},
	}
	for _, tt := range tests {
		got, ok := ParseSettingLine(tt.line)
		assert.Equal(t, tt.ok, ok, tt.line)
		assert.Equal(t, tt.want, got, tt.line)
	}
}

func TestSettingsStore(t *testing.T) {
	s := NewSettingsStore()
	_, ok := s.LookupLatest("username")
	assert.False(t, ok)

	s.Append(Setting{"username", "s", "alice"})
	s.Append(Setting{"domain", "s", "corp"})
	s.Append(Setting{"UserName", "s", "bob"})

	got, ok := s.LookupLatest("USERNAME")
	require.True(t, ok)
	assert.Equal(t, "bob", got.Value)
	assert.Equal(t, 3, s.Len())

	all := s.All()
	all[0].Value = "changed"
	assert.Equal(t, "alice", s.All()[0].Value)
}

func TestSignRegister(t *testing.T) {
	var r SignRegister
	assert.Nil(t, r.Resolve(nil))
	_, ok := r.Pending()
	assert.False(t, ok)

	r.Record("a.crt", "a.key")
	r.Record("b.crt", "b.key")
	pending, ok := r.Pending()
	require.True(t, ok)
	assert.Equal(t, SignRequest{"b.crt", "b.key"}, pending)
	assert.Equal(t, &SignRequest{"b.crt", "b.key"}, r.Resolve(nil))

	override := &SignRequest{"o.crt", "o.key"}
	got := r.Resolve(override)
	assert.Equal(t, override, got)
	got.Cert = "mutated"
	assert.Equal(t, "o.crt", override.Cert)
}

func TestValues(t *testing.T) {
	t.Run("truthy", func(t *testing.T) {
		assert.False(t, Truthy(nil))
		assert.False(t, Truthy(""))
		assert.False(t, Truthy(int64(0)))
		assert.False(t, Truthy([]string{}))
		assert.True(t, Truthy("x"))
		assert.True(t, Truthy(int64(-1)))
		assert.True(t, Truthy([]string{""}))
	})

	t.Run("stringify", func(t *testing.T) {
		assert.Equal(t, "True", Stringify(true))
		assert.Equal(t, "False", Stringify(false))
		assert.Equal(t, "[]", Stringify([]string{}))
		assert.Equal(t, `['a', 'it\'s']`, Stringify([]string{"a", "it's"}))
		assert.Equal(t, "-3", Stringify(int64(-3)))
	})

	t.Run("equal_never_crosses_types", func(t *testing.T) {
		assert.False(t, equal("1", int64(1)))
		assert.False(t, equal(nil, ""))
		assert.True(t, equal([]string{"a"}, []string{"a"}))
		assert.False(t, equal([]string{"a"}, []string{"a", "b"}))
	})

	t.Run("join_args", func(t *testing.T) {
		assert.Equal(t, "", JoinArgs(nil))
		assert.Equal(t, `a "b c" "say \"hi\""`, JoinArgs([]string{"a", "b c", `say "hi"`}))
	})
}

func TestLineWriter(t *testing.T) {
	store := NewSettingsStore()
	w := newLineWriter(store, logging.GetLogger("test"))

	w.WriteString("a:s:")
	assert.Equal(t, 0, store.Len())
	w.WriteString("1\r")
	assert.Equal(t, 1, store.Len())
	w.WriteString("\nnot a setting\n\n")
	assert.Equal(t, 1, store.Len())
	w.WriteString("b:i:2")
	w.Flush()

	assert.Equal(t, "a:s:1\r\nnot a setting\n\nb:i:2", w.String())
	assert.Equal(t, []Setting{{"a", "s", "1"}, {"b", "i", "2"}}, store.All())
}
