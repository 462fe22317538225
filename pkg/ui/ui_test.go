package ui_test

import (
	"bytes"
	"encoding/json"
	stderrors "errors"
	"testing"

	"github.com/arthur-debert/rdpgen/pkg/errors"
	"github.com/arthur-debert/rdpgen/pkg/ui"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPrinterText(t *testing.T) {
	var buf bytes.Buffer
	p := ui.NewPrinter(&buf, ui.FormatText)

	require.NoError(t, p.Title("Network context"))
	require.NoError(t, p.Success("written"))
	require.NoError(t, p.Warning("no certificate"))

	assert.Equal(t, "Network context\nwritten\nWarning: no certificate\n", buf.String())
}

func TestPrinterAutoFallsBackToText(t *testing.T) {
	p := ui.NewPrinter(&bytes.Buffer{}, ui.FormatAuto)
	assert.Equal(t, ui.FormatText, p.Format())
}

func TestPrinterError(t *testing.T) {
	t.Run("text_lists_details_in_order", func(t *testing.T) {
		var buf bytes.Buffer
		p := ui.NewPrinter(&buf, ui.FormatText)
		err := errors.New(errors.ErrEvaluation, "boom").
			WithDetail("line", 3).
			WithDetail("column", 7)

		require.NoError(t, p.Error(err))
		assert.Equal(t, "Error: [EVALUATION] boom\ncolumn: 7\nline: 3\n", buf.String())
	})

	t.Run("json_carries_code", func(t *testing.T) {
		var buf bytes.Buffer
		p := ui.NewPrinter(&buf, ui.FormatJSON)
		require.NoError(t, p.Error(errors.New(errors.ErrSigning, "no key").WithDetail("ref", "k.pem")))

		var got map[string]interface{}
		require.NoError(t, json.Unmarshal(buf.Bytes(), &got))
		assert.Equal(t, "SIGNING", got["code"])
		assert.Equal(t, map[string]interface{}{"ref": "k.pem"}, got["details"])
	})

	t.Run("json_plain_error", func(t *testing.T) {
		var buf bytes.Buffer
		p := ui.NewPrinter(&buf, ui.FormatJSON)
		require.NoError(t, p.Error(stderrors.New("plain")))

		var got map[string]interface{}
		require.NoError(t, json.Unmarshal(buf.Bytes(), &got))
		assert.Equal(t, map[string]interface{}{"error": "plain"}, got)
	})
}

func TestPrinterTable(t *testing.T) {
	header := []string{"Kind", "Value"}
	rows := [][]string{{"wifi", "CorpNet"}, {"vpn", "Office"}}

	t.Run("text", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, ui.NewPrinter(&buf, ui.FormatText).Table(header, rows))
		out := buf.String()
		assert.Contains(t, out, "Kind")
		assert.Contains(t, out, "CorpNet")
		assert.NotContains(t, out, "\x1b[")
	})

	t.Run("json", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, ui.NewPrinter(&buf, ui.FormatJSON).Table(header, rows))

		var got []map[string]string
		require.NoError(t, json.Unmarshal(buf.Bytes(), &got))
		assert.Equal(t, []map[string]string{
			{"kind": "wifi", "value": "CorpNet"},
			{"kind": "vpn", "value": "Office"},
		}, got)
	})
}
