package entity

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestOrderItem_LineTotal_Exact(t *testing.T) {
	item := &OrderItem{
		Quantity:  2,
		UnitPrice: decimal.RequireFromString("45.90"),
	}

	assert.Equal(t, "91.80", item.LineTotal().StringFixed(2))
}

func TestOrder_SumItems(t *testing.T) {
	order := &Order{
		Items: []*OrderItem{
			{Quantity: 2, UnitPrice: decimal.RequireFromString("45.90")},
			{Quantity: 1, UnitPrice: decimal.RequireFromString("35.90")},
			{Quantity: 3, UnitPrice: decimal.RequireFromString("0.10")},
		},
	}

	assert.Equal(t, "128.00", order.SumItems().StringFixed(2))
}

func TestOrderStatus_Valid(t *testing.T) {
	for _, status := range OrderStatuses {
		assert.True(t, status.Valid(), "status %s", status)
	}
	assert.False(t, OrderStatus("burnt").Valid())
	assert.False(t, OrderStatus("").Valid())
}

func TestNormalizePhone(t *testing.T) {
	tests := []struct {
		raw  string
		want string
	}{
		{"whatsapp:+5511999990000", "5511999990000"},
		{"+55 (11) 99999-0000", "5511999990000"},
		{"5511999990000", "5511999990000"},
		{"whatsapp:", ""},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, NormalizePhone(tt.raw), "raw %q", tt.raw)
	}
}

func TestValidPhone(t *testing.T) {
	assert.True(t, ValidPhone("5511999990000"))
	assert.True(t, ValidPhone("1199999000"))
	assert.False(t, ValidPhone("119999900"))
	assert.False(t, ValidPhone(""))
}

func TestSizeTag(t *testing.T) {
	assert.True(t, SizeMedium.Valid())
	assert.False(t, SizeTag("XL").Valid())
	assert.Equal(t, "Média", SizeMedium.Label())
}

func TestProduct_PriceFor(t *testing.T) {
	product := &Product{
		Prices: []PriceEntry{
			{Size: SizeSmall, Value: decimal.RequireFromString("35.90")},
			{Size: SizeMedium, Value: decimal.RequireFromString("45.90")},
		},
	}

	entry, ok := product.PriceFor(SizeMedium)
	assert.True(t, ok)
	assert.Equal(t, "45.90", entry.Value.StringFixed(2))

	_, ok = product.PriceFor(SizeLarge)
	assert.False(t, ok)
}
