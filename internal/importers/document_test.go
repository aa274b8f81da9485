package importers

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mrlokans/bookverse/internal/fixtures"
)

func TestDecode_Fixture(t *testing.T) {
	doc, err := Decode(fixtures.BookstoreJSON)
	require.NoError(t, err)

	assert.Len(t, doc.Authors, 3)
	assert.Len(t, doc.Books, 4)
	assert.Len(t, doc.Orders, 5)
	assert.Empty(t, doc.Customers)

	assert.Equal(t, "15.00", doc.Books[1].Price.StringFixed(2), "quoted decimals are accepted")
	require.NotNil(t, doc.Orders[0].Payment)
	assert.Nil(t, doc.Orders[0].Payment.Amount)
	require.NotNil(t, doc.Orders[1].Payment.Amount)
	assert.Equal(t, "45.00", doc.Orders[1].Payment.Amount.StringFixed(2))
}

func TestOrderRecord_CustomerRef(t *testing.T) {
	tests := []struct {
		name  string
		order OrderRecord
		want  string
	}{
		{"explicit id", OrderRecord{CustomerID: "C1", Customer: &CustomerRecord{ID: "C2"}}, "C1"},
		{"embedded customer", OrderRecord{Customer: &CustomerRecord{ID: "C2"}}, "C2"},
		{"blank explicit id falls back", OrderRecord{CustomerID: "  ", Customer: &CustomerRecord{ID: "C2"}}, "C2"},
		{"no customer", OrderRecord{}, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.order.CustomerRef())
		})
	}
}

func TestBookRecord_Category(t *testing.T) {
	assert.Equal(t, "", BookRecord{}.Category())
	assert.Equal(t, "poetry", BookRecord{Categories: []string{"poetry"}}.Category())
	assert.Equal(t, "a, b, c", BookRecord{Categories: []string{"a", "b", "c"}}.Category())
}

func TestValidator_NotBlank(t *testing.T) {
	v := newValidator()

	assert.NoError(t, v.Struct(AuthorRecord{ID: "A1", Name: "Name"}))
	assert.Error(t, v.Struct(AuthorRecord{ID: "A1", Name: " \t"}))
	assert.Error(t, v.Struct(AuthorRecord{ID: "", Name: "Name"}))
	assert.Error(t, v.Struct(ItemRecord{ISBN: ""}))
	assert.NoError(t, v.Struct(OrderRecord{ID: "O1", Customer: &CustomerRecord{}}),
		"embedded customer is validated separately")
}

func TestParseOrderDate(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"2024-03-05", "2024-03-05T00:00:00Z"},
		{"2024-03-05T10:30:00Z", "2024-03-05T10:30:00Z"},
		{"2024-03-05 10:30:00", "2024-03-05T10:30:00Z"},
		{"2024/03/05", "2024-03-05T00:00:00Z"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got := parseOrderDate(tt.input)
			require.NotNil(t, got)
			assert.Equal(t, tt.want, got.UTC().Format(time.RFC3339))
		})
	}

	for _, bad := range []string{"", "   ", "not a date", "2024-13-45"} {
		assert.Nil(t, parseOrderDate(bad), "input %q", bad)
	}
}

func TestIDOrNull(t *testing.T) {
	assert.Equal(t, "null", idOrNull(""))
	assert.Equal(t, "null", idOrNull("  "))
	assert.Equal(t, "A1", idOrNull("A1"))
}

func TestDecode_FlexibleFields(t *testing.T) {
	doc, err := Decode([]byte(`{
		"authors": [{"id": 101, "name": "Frank Herbert"}],
		"books": [{"isbn": 9780441013593, "title": "Dune", "authorId": 101, "stock": "3"}],
		"orders": [{"id": 7, "customerId": "C1", "items": [{"isbn": "9780441013593", "qty": "2"}, {"isbn": "B2", "qty": 4.0}]}]
	}`))
	require.NoError(t, err)

	assert.Equal(t, FlexString("101"), doc.Authors[0].ID)
	assert.Equal(t, FlexString("9780441013593"), doc.Books[0].ISBN)
	assert.Equal(t, FlexString("101"), doc.Books[0].AuthorID)
	assert.Equal(t, 3, doc.Books[0].Stock.Int())
	assert.Equal(t, FlexString("7"), doc.Orders[0].ID)
	assert.Equal(t, 2, doc.Orders[0].Items[0].Qty.Int())
	assert.Equal(t, 4, doc.Orders[0].Items[1].Qty.Int())
}

func TestFlexInt_UnmarshalJSON(t *testing.T) {
	tests := []struct {
		input   string
		want    int
		wantErr bool
	}{
		{`3`, 3, false},
		{`"3"`, 3, false},
		{`" 12 "`, 12, false},
		{`-3`, -3, false},
		{`""`, 0, false},
		{`null`, 0, false},
		{`2.5`, 0, true},
		{`"two"`, 0, true},
		{`true`, 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			var n FlexInt
			err := n.UnmarshalJSON([]byte(tt.input))
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, n.Int())
		})
	}
}

func TestFlexString_UnmarshalJSON(t *testing.T) {
	var s FlexString
	require.NoError(t, s.UnmarshalJSON([]byte(`"A1"`)))
	assert.Equal(t, "A1", s.String())

	require.NoError(t, s.UnmarshalJSON([]byte(`101`)))
	assert.Equal(t, "101", s.String())

	require.NoError(t, s.UnmarshalJSON([]byte(`null`)))
	assert.Empty(t, s.String())

	assert.Error(t, s.UnmarshalJSON([]byte(`{"id": 1}`)))
	assert.Error(t, s.UnmarshalJSON([]byte(`[1]`)))
}
