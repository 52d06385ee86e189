package dump

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/beevik/etree"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/shibukawa/jian"
	"github.com/shibukawa/jian/compiler"
	"github.com/shibukawa/jian/source"
	"github.com/shibukawa/jian/testhelper"
)

func compile(t *testing.T, text string) *compiler.Unit {
	t.Helper()

	unit, err := compiler.Compile(t.Context(), source.FromString("main.jian", text))
	require.NoError(t, err)

	return unit
}

const program = "x = 1\nf(y) = ((z) => y)(x)\n"

func TestBuild(t *testing.T) {
	got := Build(compile(t, program))

	require.Len(t, got.Definitions, 2)
	assert.Equal(t, "main.jian", got.Source)
	assert.Equal(t, Definition{ID: 1, Name: "x", Kind: "value", Body: &Node{Kind: "number", Text: "1"}}, got.Definitions[0])

	f := got.Definitions[1]
	assert.Equal(t, 4, f.ID)
	assert.Equal(t, []Param{{ID: 2, Name: "y"}}, f.Params)
	assert.Equal(t, &Node{
		Kind: "application",
		Children: []*Node{
			{
				Kind:     "lambda",
				Params:   []Param{{ID: 3, Name: "z"}},
				Children: []*Node{{Kind: "resolved", Text: "y", Target: 2}},
			},
			{Kind: "resolved", Text: "x", Target: 1},
		},
	}, f.Body)
}

func TestWrite_Text(t *testing.T) {
	var buf bytes.Buffer

	require.NoError(t, Write(&buf, FormatText, compile(t, program)))

	expected := testhelper.TrimIndent(t, `
		Value x #1
		  number 1
		Function f #4
		  params: y #2
		  application
		    lambda [z #3]
		      resolved y -> #2
		    resolved x -> #1
	`)
	assert.Equal(t, expected, buf.String())
}

func TestWrite_TextLiterals(t *testing.T) {
	var buf bytes.Buffer

	require.NoError(t, Write(&buf, "", compile(t, "u = ()\nc = if (true) then false else 1_000\n")))

	expected := testhelper.TrimIndent(t, `
		Value u #1
		  unit ()
		Value c #2
		  conditional
		    true true
		    false false
		    number 1_000
	`)
	assert.Equal(t, expected, buf.String())
}

func TestWrite_JSON(t *testing.T) {
	var buf bytes.Buffer

	unit := compile(t, program)
	require.NoError(t, Write(&buf, FormatJSON, unit))

	var got Program
	require.NoError(t, json.Unmarshal(buf.Bytes(), &got))
	assert.Equal(t, Build(unit), &got)
	assert.Contains(t, buf.String(), `"target": 2`)
}

func TestWrite_YAML(t *testing.T) {
	var buf bytes.Buffer

	unit := compile(t, program)
	require.NoError(t, Write(&buf, FormatYAML, unit))

	out := buf.String()
	assert.Contains(t, out, "source: main.jian\n")
	assert.Contains(t, out, `text: "1"`)

	var got Program
	require.NoError(t, yaml.Unmarshal(buf.Bytes(), &got))
	assert.Equal(t, Build(unit), &got)
}

func TestWrite_XML(t *testing.T) {
	var buf bytes.Buffer

	require.NoError(t, Write(&buf, FormatXML, compile(t, program)))

	doc := etree.NewDocument()
	require.NoError(t, doc.ReadFromBytes(buf.Bytes()))

	root := doc.SelectElement("program")
	require.NotNil(t, root)
	assert.Equal(t, "main.jian", root.SelectAttrValue("source", ""))
	assert.Len(t, root.SelectElements("definition"), 2)

	param := doc.FindElement("//definition[@name='f']/body/application/lambda/param")
	require.NotNil(t, param)
	assert.Equal(t, "3", param.SelectAttrValue("id", ""))

	ref := doc.FindElement("//definition[@name='f']/body/application/resolved")
	require.NotNil(t, ref)
	assert.Equal(t, "x", ref.SelectAttrValue("text", ""))
	assert.Equal(t, "1", ref.SelectAttrValue("target", ""))
}

func TestParseFormat(t *testing.T) {
	tests := []struct {
		input    string
		expected Format
	}{
		{"", FormatText},
		{"text", FormatText},
		{"JSON", FormatJSON},
		{"yaml", FormatYAML},
		{"xml", FormatXML},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseFormat(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, got)
		})
	}

	_, err := ParseFormat("csv")
	assert.ErrorIs(t, err, jian.ErrUnknownFormat)

	err = Write(&bytes.Buffer{}, Format("csv"), compile(t, "x = 1\n"))
	assert.ErrorIs(t, err, jian.ErrUnknownFormat)
}
