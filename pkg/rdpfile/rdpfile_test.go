package rdpfile

import (
	"encoding/base64"
	"encoding/binary"
	"errors"
	"strings"
	"testing"

	rerrors "github.com/arthur-debert/rdpgen/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/encoding/unicode"
)

func TestParse(t *testing.T) {
	t.Run("keeps_order_and_blanks", func(t *testing.T) {
		f, err := Parse("full address:s:host\r\n\r\nscreen mode id:i:2\r\n")
		require.NoError(t, err)
		assert.Equal(t, []string{"full address:s:host", "", "screen mode id:i:2", ""}, f.Lines())
		assert.Equal(t, "full address:s:host\r\n\r\nscreen mode id:i:2\r\n", f.String())
	})

	t.Run("redeclaration_updates_in_place", func(t *testing.T) {
		f, err := Parse("Username:s:alice\ndomain:s:corp\nusername:s:bob\n")
		require.NoError(t, err)
		assert.Equal(t, []Line{
			{Name: "Username", Type: "s", Value: "bob"},
			{Name: "domain", Type: "s", Value: "corp"},
		}, f.Settings())
	})

	t.Run("drops_unparsable_lines", func(t *testing.T) {
		f, err := Parse("# comment\nfull address:s:host\n")
		require.NoError(t, err)
		assert.Equal(t, []string{"full address:s:host", ""}, f.Lines())
	})

	t.Run("strips_bom", func(t *testing.T) {
		f, err := Parse("\ufefffull address:s:host")
		require.NoError(t, err)
		assert.Equal(t, "host", f.FullAddress())
	})

	t.Run("rejects_unknown_type", func(t *testing.T) {
		_, err := Parse("x:b:AAAA\n")
		require.Error(t, err)
		assert.True(t, rerrors.IsErrorCode(err, rerrors.ErrInvalidInput))
	})

	t.Run("rejects_bad_integer", func(t *testing.T) {
		_, err := Parse("screen mode id:i:two\n")
		assert.True(t, rerrors.IsErrorCode(err, rerrors.ErrInvalidInput))
	})

	t.Run("normalizes_integers_and_types", func(t *testing.T) {
		f, err := Parse("session bpp:I: 32\n")
		require.NoError(t, err)
		l, ok := f.Lookup("SESSION BPP")
		require.True(t, ok)
		assert.Equal(t, Line{Name: "session bpp", Type: "i", Value: "32"}, l)
	})
}

func TestFile(t *testing.T) {
	f := New()
	require.NoError(t, f.Set("full address", "host", ""))
	require.NoError(t, f.Set(SignatureScope, "Full Address", TypeString))
	require.NoError(t, f.Set(Signature, "AAAA", TypeString))
	assert.True(t, f.Signed())

	t.Run("secure_change_drops_signature", func(t *testing.T) {
		require.NoError(t, f.Set("Full Address", "other", TypeString))
		assert.False(t, f.Signed())
		assert.False(t, f.Has(Signature))
		assert.Equal(t, "other", f.FullAddress())
	})

	t.Run("remove", func(t *testing.T) {
		require.NoError(t, f.Set("audiomode", "1", TypeInt))
		f.Remove("AudioMode")
		assert.False(t, f.Has("audiomode"))
		f.Remove("missing")
	})

	t.Run("remote_app", func(t *testing.T) {
		assert.False(t, f.IsRemoteApp())
		require.NoError(t, f.Set(RemoteApplicationMode, "1", TypeInt))
		assert.True(t, f.IsRemoteApp())
	})
}

func TestIsSecure(t *testing.T) {
	assert.True(t, IsSecure("Full Address"))
	assert.True(t, IsSecure("gatewayhostname"))
	assert.False(t, IsSecure("username"))
	assert.False(t, IsSecure(Signature))
}

func TestSigningBlob(t *testing.T) {
	lines := []Line{{Name: "full address", Type: "s", Value: "h"}}
	blob, err := SigningBlob(lines, "Full Address")
	require.NoError(t, err)

	dec := unicode.UTF16(unicode.LittleEndian, unicode.IgnoreBOM).NewDecoder()
	text, err := dec.Bytes(blob)
	require.NoError(t, err)
	assert.Equal(t, "full address:s:h\r\nsignscope:s:Full Address\r\n\x00", string(text))
	assert.Equal(t, []byte{'f', 0}, blob[:2])
	assert.Equal(t, []byte{0, 0}, blob[len(blob)-2:])
}

func TestEncodeSignature(t *testing.T) {
	der := make([]byte, 100)
	for i := range der {
		der[i] = byte(i)
	}
	value := EncodeSignature(der)

	chunks := strings.Split(value, "  ")
	for _, c := range chunks[:len(chunks)-1] {
		assert.Len(t, c, 64)
	}

	raw, err := base64.StdEncoding.DecodeString(strings.Join(chunks, ""))
	require.NoError(t, err)
	assert.Equal(t, uint32(0x00010001), binary.LittleEndian.Uint32(raw[0:]))
	assert.Equal(t, uint32(1), binary.LittleEndian.Uint32(raw[4:]))
	assert.Equal(t, uint32(100), binary.LittleEndian.Uint32(raw[8:]))
	assert.Equal(t, der, raw[12:])
}

func TestSign(t *testing.T) {
	t.Run("adds_alternate_address_and_signature", func(t *testing.T) {
		f, err := Parse("username:s:me\r\nfull address:s:host\r\ngatewayhostname:s:gw\r\n")
		require.NoError(t, err)

		var signed []byte
		err = f.Sign(func(blob []byte) ([]byte, error) {
			signed = blob
			return []byte("der"), nil
		})
		require.NoError(t, err)

		scope, ok := f.Get(SignatureScope)
		require.True(t, ok)
		assert.Equal(t, "Full Address,Alternate Full Address,GatewayHostname", scope)
		assert.Equal(t, "host", mustGet(t, f, AlternateFullAddress))
		assert.Equal(t, EncodeSignature([]byte("der")), mustGet(t, f, Signature))

		want, err := SigningBlob([]Line{
			{Name: "full address", Type: "s", Value: "host"},
			{Name: "alternate full address", Type: "s", Value: "host"},
			{Name: "gatewayhostname", Type: "s", Value: "gw"},
		}, scope)
		require.NoError(t, err)
		assert.Equal(t, want, signed)

		assert.Equal(t, []string{
			"username:s:me",
			"full address:s:host",
			"gatewayhostname:s:gw",
			"",
			"alternate full address:s:host",
			"",
			"signscope:s:" + scope,
			"signature:s:" + EncodeSignature([]byte("der")),
			"",
		}, f.Lines())
	})

	t.Run("resigning_replaces_signature", func(t *testing.T) {
		f, err := Parse("full address:s:host\r\nalternate full address:s:host\r\n")
		require.NoError(t, err)
		sign := func([]byte) ([]byte, error) { return []byte("x"), nil }
		require.NoError(t, f.Sign(sign))
		require.NoError(t, f.Sign(sign))
		assert.Len(t, f.Settings(), 4)
	})

	t.Run("signer_error_propagates", func(t *testing.T) {
		f, err := Parse("full address:s:host\r\n")
		require.NoError(t, err)
		err = f.Sign(func([]byte) ([]byte, error) { return nil, errors.New("boom") })
		assert.EqualError(t, err, "boom")
		assert.False(t, f.Signed())
	})

	t.Run("nothing_to_sign", func(t *testing.T) {
		f, err := Parse("username:s:me\r\n")
		require.NoError(t, err)
		err = f.Sign(func([]byte) ([]byte, error) { return nil, nil })
		assert.True(t, rerrors.IsErrorCode(err, rerrors.ErrSigning))
	})
}

func mustGet(t *testing.T, f *File, name string) string {
	t.Helper()
	v, ok := f.Get(name)
	require.True(t, ok, name)
	return v
}
