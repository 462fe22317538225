package engine

import (
	"context"
	"fmt"
	"testing"

	"github.com/arthur-debert/rdpgen/pkg/errors"
	"github.com/arthur-debert/rdpgen/pkg/template"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// mockProbe serves queued answers and counts calls.
type mockProbe struct {
	wifi      [][]string
	vpn       []string
	reachable map[string]bool
	wifiCalls int
	pingCalls []string
}

func (m *mockProbe) WifiSSIDs(context.Context) []string {
	i := m.wifiCalls
	m.wifiCalls++
	if len(m.wifi) == 0 {
		return []string{}
	}
	if i >= len(m.wifi) {
		i = len(m.wifi) - 1
	}
	return m.wifi[i]
}

func (m *mockProbe) VPNNames(context.Context) []string { return m.vpn }

func (m *mockProbe) CanPing(_ context.Context, host string) bool {
	m.pingCalls = append(m.pingCalls, host)
	return m.reachable[host]
}

// recordingSigner appends a marker naming the cert and key it was given.
type recordingSigner struct {
	calls int
	err   error
}

func (s *recordingSigner) Sign(doc []byte, cert, key string) ([]byte, error) {
	s.calls++
	if s.err != nil {
		return nil, s.err
	}
	return append(doc, []byte(fmt.Sprintf("signed:%s:%s", cert, key))...), nil
}

func render(t *testing.T, e *Engine, src string, req Request) (*Document, error) {
	t.Helper()
	return e.RenderString(context.Background(), "test.rdp.j2", src, template.Options{}, req)
}

func mustRender(t *testing.T, e *Engine, src string, req Request) *Document {
	t.Helper()
	doc, err := render(t, e, src, req)
	require.NoError(t, err)
	return doc
}

func TestRenderLiteralIdentity(t *testing.T) {
	e := New(nil, nil)
	inputs := []string{
		"",
		"full address:s:10.0.0.1\r\nscreen mode id:i:2\r\n",
		"no trailing newline",
		"colons: everywhere: here\nplain text\r",
	}
	for _, in := range inputs {
		doc := mustRender(t, e, in, Request{})
		assert.Equal(t, in, doc.Text)
		assert.Equal(t, []byte(in), doc.Bytes)
		assert.False(t, doc.Signed())
	}
}

func TestRenderSettingsTracking(t *testing.T) {
	e := New(nil, nil)

	t.Run("setting_visible_after_its_line", func(t *testing.T) {
		doc := mustRender(t, e, "full address:s:10.0.0.1\nalternate full address:s:{{ get_setting(\"full address\") }}\n", Request{})
		assert.Equal(t, "full address:s:10.0.0.1\nalternate full address:s:10.0.0.1\n", doc.Text)
		require.Len(t, doc.Settings, 2)
		assert.Equal(t, Setting{Key: "alternate full address", Type: "s", Value: "10.0.0.1"}, doc.Settings[1])
	})

	t.Run("lookup_before_emission_fails", func(t *testing.T) {
		_, err := render(t, e, "{{ get_setting(\"full address\") }}\nfull address:s:10.0.0.1\n", Request{})
		require.Error(t, err)
		assert.True(t, errors.IsErrorCode(err, errors.ErrUndefinedSetting))
	})

	t.Run("setting_not_visible_on_its_own_line", func(t *testing.T) {
		_, err := render(t, e, "username:s:{{ get_setting(\"username\") }}\n", Request{})
		assert.True(t, errors.IsErrorCode(err, errors.ErrUndefinedSetting))
	})

	t.Run("latest_declaration_wins", func(t *testing.T) {
		doc := mustRender(t, e, "domain:s:A\nDomain:s:B\n{{ get_setting(\"DOMAIN\") }}", Request{})
		assert.Equal(t, "domain:s:A\nDomain:s:B\nB", doc.Text)
	})

	t.Run("skipped_branch_emits_nothing", func(t *testing.T) {
		src := "{% if false %}domain:s:hidden\n{% endif %}{{ get_setting(\"domain\") }}"
		_, err := render(t, e, src, Request{})
		assert.True(t, errors.IsErrorCode(err, errors.ErrUndefinedSetting))

		src = "{% if false %}domain:s:hidden\n{% endif %}domain:s:real\n{{ get_setting(\"domain\") }}"
		doc := mustRender(t, e, src, Request{})
		assert.Equal(t, "domain:s:real\nreal", doc.Text)
	})

	t.Run("crlf_and_cr_terminate_lines", func(t *testing.T) {
		doc := mustRender(t, e, "a:s:1\r\nb:s:2\rc:s:{{ get_setting('a') }}{{ get_setting('b') }}", Request{})
		assert.Equal(t, "a:s:1\r\nb:s:2\rc:s:12", doc.Text)
		assert.Len(t, doc.Settings, 3)
	})

	t.Run("value_may_contain_colons", func(t *testing.T) {
		doc := mustRender(t, e, "gatewayhostname:s:gw.example.com:443\n{{ get_setting('gatewayhostname') }}", Request{})
		assert.Equal(t, "gatewayhostname:s:gw.example.com:443\ngw.example.com:443", doc.Text)
	})
}

func TestRenderBuiltins(t *testing.T) {
	probe := &mockProbe{
		wifi:      [][]string{{"HomeNet"}},
		vpn:       []string{"Corp VPN"},
		reachable: map[string]bool{"intranet": true},
	}
	e := New(probe, nil)

	tests := []struct {
		name string
		src  string
		want string
	}{
		{"contains_hit", `{{ contains(argv, "a") }}`, "True"},
		{"contains_list_arg", `{{ contains(argv, "x", "b") }}`, "True"},
		{"contains_miss", `{{ contains(argv, "c") }}`, "False"},
		{"contains_no_needles", `{{ contains(argv) }}`, "False"},
		{"contains_none", `{{ contains(none, "a") }}`, "False"},
		{"contains_scalar", `{{ contains("a", "a") }} {{ contains(1, 1) }}`, "True True"},
		{"contains_compares_types", `{{ contains(argv, 1) }} {{ contains(argv, true) }}`, "False False"},
		{"wifi_is", `{{ wifi_is("Guest", "HomeNet") }}`, "True"},
		{"wifi_is_no_names", `{{ wifi_is() }}`, "False"},
		{"vpn_is", `{{ vpn_is("Corp VPN") }}`, "True"},
		{"vpn_is_miss", `{{ vpn_is("Other") }}`, "False"},
		{"get_connected_wifi", `{{ get_connected_wifi() }}`, "['HomeNet']"},
		{"get_connected_vpn", `{{ get_connected_vpn() }}`, "['Corp VPN']"},
		{"can_ping", `{{ can_ping("intranet") }}`, "True"},
		{"can_ping_miss", `{{ can_ping("internet") }}`, "False"},
		{"argv_index", `{{ argv[0] }}-{{ argv[-1] }}`, "a-b"},
		{"args_joined", `{{ args }}`, "a b"},
		{"in_list", `{{ "a" in argv }}`, "True"},
		{"not_in_list", `{{ "z" not in argv }}`, "True"},
		{"in_list_compares_types", `{{ 1 in argv }} {{ 1 == argv[0] }}`, "False False"},
		{"in_string", `{{ "Home" in get_connected_wifi()[0] }}`, "True"},
		{"equality", `{{ argv[0] == "a" }} {{ 1 == "1" }} {{ none == none }}`, "True False True"},
		{"int_literal", `{{ 42 }}`, "42"},
		{"none_renders_empty", `[{{ none }}]`, "[]"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc := mustRender(t, e, tt.src, Request{Args: []string{"a", "b"}})
			assert.Equal(t, tt.want, doc.Text)
		})
	}

	t.Run("numeric_looking_args_stay_strings", func(t *testing.T) {
		doc := mustRender(t, e, `{{ contains(argv, 1) }} {{ 1 in argv }} {{ contains(argv, true) }} {{ "1" in argv }}`,
			Request{Args: []string{"1", "True"}})
		assert.Equal(t, "False False False True", doc.Text)
	})
}

func TestRenderArgsQuoting(t *testing.T) {
	doc := mustRender(t, New(nil, nil), "{{ args }}", Request{Args: []string{"host", "two words", ""}})
	assert.Equal(t, `host "two words" ""`, doc.Text)
}

func TestRenderConditionals(t *testing.T) {
	probe := &mockProbe{wifi: [][]string{{"Office"}}, vpn: []string{}}
	e := New(probe, nil)

	src := `{% if wifi_is("Home") %}home{% elif wifi_is("Office") and not vpn_is("Corp") %}office{% else %}away{% endif %}`
	doc := mustRender(t, e, src, Request{})
	assert.Equal(t, "office", doc.Text)

	t.Run("false_guard_skips_body_evaluation", func(t *testing.T) {
		doc := mustRender(t, e, `{% if false %}{{ get_setting("missing") }}{% endif %}ok`, Request{})
		assert.Equal(t, "ok", doc.Text)
	})

	t.Run("short_circuit_or", func(t *testing.T) {
		p := &mockProbe{reachable: map[string]bool{"a": true}}
		doc := mustRender(t, New(p, nil), `{% if can_ping("a") or can_ping("b") %}up{% endif %}`, Request{})
		assert.Equal(t, "up", doc.Text)
		assert.Equal(t, []string{"a"}, p.pingCalls)
	})

	t.Run("short_circuit_and", func(t *testing.T) {
		doc := mustRender(t, e, `{% if false and get_setting("missing") %}x{% endif %}`, Request{})
		assert.Equal(t, "", doc.Text)
	})

	t.Run("collection_truthiness", func(t *testing.T) {
		doc := mustRender(t, e, `{% if get_connected_vpn() %}vpn{% else %}no vpn{% endif %}`, Request{})
		assert.Equal(t, "no vpn", doc.Text)
	})
}

func TestRenderProbeNotMemoized(t *testing.T) {
	probe := &mockProbe{wifi: [][]string{{"X"}, {}}}
	e := New(probe, nil)

	doc := mustRender(t, e, `{{ wifi_is("X") }}`, Request{})
	assert.Equal(t, "True", doc.Text)

	doc = mustRender(t, e, `{{ wifi_is("X") }}`, Request{})
	assert.Equal(t, "False", doc.Text)
	assert.Equal(t, 2, probe.wifiCalls)
}

func TestRenderSigning(t *testing.T) {
	t.Run("last_sign_wins", func(t *testing.T) {
		signer := &recordingSigner{}
		src := `{{ sign("a.crt", "a.key") }}x:s:1
{% if true %}{{ sign("b.crt", "b.key") }}{% endif %}`
		doc := mustRender(t, New(nil, signer), src, Request{})
		require.NotNil(t, doc.Sign)
		assert.Equal(t, SignRequest{Cert: "b.crt", Key: "b.key"}, *doc.Sign)
		assert.Equal(t, 1, signer.calls)
		assert.Equal(t, doc.Text+"signed:b.crt:b.key", string(doc.Bytes))
	})

	t.Run("skipped_sign_is_ignored", func(t *testing.T) {
		signer := &recordingSigner{}
		src := `{{ sign("a.crt", "a.key") }}{% if false %}{{ sign("b.crt", "b.key") }}{% endif %}`
		doc := mustRender(t, New(nil, signer), src, Request{})
		assert.Equal(t, SignRequest{Cert: "a.crt", Key: "a.key"}, *doc.Sign)
	})

	t.Run("override_wins", func(t *testing.T) {
		signer := &recordingSigner{}
		override := &SignRequest{Cert: "o.crt", Key: "o.key"}
		doc := mustRender(t, New(nil, signer), `{{ sign("a.crt", "a.key") }}`, Request{SignOverride: override})
		assert.Equal(t, *override, *doc.Sign)
		assert.Equal(t, "signed:o.crt:o.key", string(doc.Bytes))
	})

	t.Run("override_without_sign_directive", func(t *testing.T) {
		signer := &recordingSigner{}
		doc := mustRender(t, New(nil, signer), "a:s:b\n", Request{SignOverride: &SignRequest{Cert: "c", Key: "k"}})
		assert.True(t, doc.Signed())
	})

	t.Run("no_sign_no_signer_call", func(t *testing.T) {
		signer := &recordingSigner{}
		doc := mustRender(t, New(nil, signer), "a:s:b\n", Request{})
		assert.False(t, doc.Signed())
		assert.Equal(t, 0, signer.calls)
	})

	t.Run("signer_failure_is_fatal", func(t *testing.T) {
		signer := &recordingSigner{err: fmt.Errorf("bad key")}
		doc, err := render(t, New(nil, signer), `{{ sign("a", "b") }}`, Request{})
		assert.Nil(t, doc)
		assert.True(t, errors.IsErrorCode(err, errors.ErrSigning))
	})

	t.Run("missing_signer_is_signing_error", func(t *testing.T) {
		_, err := render(t, New(nil, nil), `{{ sign("a", "b") }}`, Request{})
		assert.True(t, errors.IsErrorCode(err, errors.ErrSigning))
	})

	t.Run("render_error_skips_signing", func(t *testing.T) {
		signer := &recordingSigner{}
		_, err := render(t, New(nil, signer), `{{ sign("a", "b") }}{{ nope() }}`, Request{})
		require.Error(t, err)
		assert.Equal(t, 0, signer.calls)
	})
}

func TestRenderErrors(t *testing.T) {
	e := New(nil, nil)

	tests := []struct {
		name      string
		src       string
		code      errors.ErrorCode
		line      int
		column    int
		directive string
	}{
		{"unknown_function", "a\n  {{ nope() }}", errors.ErrUnknownDirective, 2, 3, "{{ nope() }}"},
		{"unknown_name", "{{ hostname }}", errors.ErrUnknownDirective, 1, 1, "{{ hostname }}"},
		{"wrong_arity", `{{ can_ping() }}`, errors.ErrEvaluation, 1, 1, "{{ can_ping() }}"},
		{"too_many_args", `{{ sign("a", "b", "c") }}`, errors.ErrEvaluation, 1, 1, `{{ sign("a", "b", "c") }}`},
		{"undefined_setting", `x{% if get_setting("k") %}{% endif %}`, errors.ErrUndefinedSetting, 1, 2, `{% if get_setting("k") %}`},
		{"elif_error", `{% if false %}{% elif nope() %}{% endif %}`, errors.ErrUnknownDirective, 1, 15, `{% elif nope() %}`},
		{"index_out_of_range", `{{ argv[5] }}`, errors.ErrEvaluation, 1, 1, "{{ argv[5] }}"},
		{"bad_argument_type", `{{ can_ping(1) }}`, errors.ErrEvaluation, 1, 1, "{{ can_ping(1) }}"},
		{"function_without_call", `{{ wifi_is }}`, errors.ErrEvaluation, 1, 1, "{{ wifi_is }}"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc, err := render(t, e, tt.src, Request{})
			require.Error(t, err)
			assert.Nil(t, doc)
			assert.Equal(t, tt.code, errors.GetErrorCode(err))

			details := errors.GetErrorDetails(err)
			assert.Equal(t, "test.rdp.j2", details["template"])
			assert.Equal(t, tt.line, details["line"])
			assert.Equal(t, tt.column, details["column"])
			assert.Equal(t, tt.directive, details["directive"])
			assert.Contains(t, err.Error(), fmt.Sprintf("test.rdp.j2:%d:%d:", tt.line, tt.column))
		})
	}

	t.Run("syntax_error_before_evaluation", func(t *testing.T) {
		p := &mockProbe{}
		_, err := render(t, New(p, nil), `{{ can_ping("a") }}{% if %}`, Request{})
		assert.True(t, errors.IsErrorCode(err, errors.ErrTemplateSyntax))
		assert.Empty(t, p.pingCalls)
	})
}

func TestRenderContextIsolation(t *testing.T) {
	e := New(nil, &recordingSigner{})
	args := []string{"one"}

	doc := mustRender(t, e, "k:s:v\n{{ sign('c', 'k') }}", Request{Args: args})
	assert.True(t, doc.Signed())

	doc = mustRender(t, e, "{{ argv[0] }}", Request{Args: args})
	assert.False(t, doc.Signed())
	assert.Empty(t, doc.Settings)
	assert.Equal(t, "one", doc.Text)
}
