package tabular

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	lines := []string{
		"UPC,Name,Brand",
		"111,Widget,Acme",
		`222,"Gadget, large",Acme`,
		`333,"Broken,Acme`,
		"444,Thing",
		"555,a,b,c",
	}

	doc, err := Parse(lines, Options{})
	require.NoError(t, err)

	assert.Equal(t, []string{"UPC", "Name", "Brand"}, doc.Header.Names)
	require.Len(t, doc.Rows, 3)
	assert.Equal(t, "Gadget, large", doc.Rows[1].Get("name"))
	assert.Equal(t, "", doc.Rows[2].Get("Brand"), "short rows read missing cells as empty")
	assert.Equal(t, 5, doc.Rows[2].Line)

	require.Len(t, doc.Malformed, 2)
	assert.Equal(t, 4, doc.Malformed[0].Line)
	assert.Equal(t, 6, doc.Malformed[1].Line)
}

func TestParse_HeaderRepair(t *testing.T) {
	tests := []struct {
		name   string
		header string
		want   []string
	}{
		{"BOM", "\ufeffUPC,Name", []string{"UPC", "Name"}},
		{"Quoted", `"UPC", "Name" `, []string{"UPC", "Name"}},
		{"Unbalanced quote", `UPC,"Product Name,Brand`, []string{"UPC", "Product Name", "Brand"}},
		{"Doubled trailing quote", `"UPC","Name""`, []string{"UPC", "Name"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc, err := Parse([]string{tt.header, "1,2"}, Options{})
			require.NoError(t, err)
			assert.Equal(t, tt.want, doc.Header.Names)
			assert.True(t, doc.Header.Has("upc"))
		})
	}
}

func TestParse_Delimiter(t *testing.T) {
	doc, err := Parse([]string{"SKU|QTY", "A1|10"}, Options{Delimiter: '|'})
	require.NoError(t, err)
	require.Len(t, doc.Rows, 1)
	assert.Equal(t, "10", doc.Rows[0].Get("qty"))
}

func TestParse_StructuralErrors(t *testing.T) {
	_, err := Parse(nil, Options{})
	var perr *ParseError
	require.True(t, errors.As(err, &perr))
	assert.ErrorIs(t, err, ErrEmptyDocument)

	_, err = Parse([]string{" , ", "1,2"}, Options{})
	assert.ErrorIs(t, err, ErrEmptyDocument)
}

func TestDocument_Require(t *testing.T) {
	doc, err := Parse([]string{"SKU,QTY"}, Options{})
	require.NoError(t, err)

	assert.NoError(t, doc.Require("sku", "qty"))

	err = doc.Require("sku", "upc")
	assert.ErrorIs(t, err, ErrMissingColumn)
	assert.Contains(t, err.Error(), "upc")
}

func TestDecode(t *testing.T) {
	doc, err := Parse([]string{"Vendor SKU,Qty", "A1,3", ",4"}, Options{})
	require.NoError(t, err)

	cols := ColumnMap{"sku": "sku", "quantity": "qty"}.Merge(map[string]string{"sku": "Vendor SKU", "upc": ""})
	assert.Equal(t, "Vendor SKU", cols.Column("sku"))
	assert.Equal(t, "upc", cols.Column("upc"))

	results := Decode(doc, func(r Row) (string, error) {
		return Required(r, cols, "sku")
	})

	require.Len(t, results, 2)
	assert.NoError(t, results[0].Err)
	assert.Equal(t, "A1", results[0].Record)
	assert.ErrorIs(t, results[1].Err, ErrMissingValue)
	assert.Equal(t, 3, results[1].Line)
}
