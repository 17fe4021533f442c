package importer

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/victorlai/deliverydesk/internal/entity"
)

func TestNormalizePrefersLocalizedColumns(t *testing.T) {
	m := DefaultMapping()
	c := m.Normalize(RowMap{
		"客戶代碼":          "C1",
		"customer_code": "shadowed",
		"收貨人":           "王小明",
		"地址":            "台北市",
		"統編":            "12345678",
		"備註":            "週一送",
	})
	assert.Equal(t, "C1", c.CustomerCode)
	assert.Equal(t, "王小明", c.Recipient)
	assert.Equal(t, "台北市", c.Address)
	assert.Equal(t, "12345678", c.TaxID)
	assert.Equal(t, "週一送", c.Notes)
}

func TestNormalizeFallsBackToCanonicalColumns(t *testing.T) {
	m := DefaultMapping()
	c := m.Normalize(RowMap{
		"customer_code": "C2",
		"recipient":     "Chen",
		"address":       "Taichung",
	})
	assert.Equal(t, "C2", c.CustomerCode)
	assert.Equal(t, "Chen", c.Recipient)
	assert.Equal(t, "Taichung", c.Address)
	assert.Empty(t, c.TaxID)
}

func TestNormalizeBackfillsCodeFromTaxID(t *testing.T) {
	m := DefaultMapping()
	c := m.Normalize(RowMap{
		"收貨人": "陳",
		"地址":  "台中",
		"統編":  "T9",
	})
	assert.Equal(t, "T9", c.CustomerCode)
	assert.Equal(t, "T9", c.TaxID)
}

func TestNormalizeRepurposesPhoneAsNotes(t *testing.T) {
	m := DefaultMapping()
	c := m.Normalize(RowMap{
		"收貨人": "陳",
		"地址":  "台中",
		"電話":  "0912-345-678",
	})
	assert.Equal(t, "0912-345-678", c.Notes)

	// An explicit notes column still wins over the phone column.
	c = m.Normalize(RowMap{
		"收貨人": "陳",
		"地址":  "台中",
		"備註":  "易碎",
		"電話":  "0912-345-678",
	})
	assert.Equal(t, "易碎", c.Notes)
}

func TestNormalizeMissingFieldsBecomeEmpty(t *testing.T) {
	m := DefaultMapping()
	c := m.Normalize(RowMap{})
	assert.Equal(t, &entity.Customer{}, c)
}

func TestValidateDropsIncompleteCandidates(t *testing.T) {
	in := []*entity.Customer{
		{CustomerCode: "A", Recipient: "r", Address: "a"},
		{Recipient: "r", Address: "a"},                  // no code, no tax id
		{CustomerCode: "B", Address: "a"},               // no recipient
		{CustomerCode: "C", Recipient: "r"},             // no address
		{TaxID: "T1", Recipient: "r2", Address: "a2"},   // tax id alone is enough
	}
	got := Validate(in)
	assert.Len(t, got, 2)
	assert.Equal(t, "A", got[0].CustomerCode)
	assert.Equal(t, "T1", got[1].TaxID)
}

func TestNormalizeThenValidateDropsRowsWithoutAnyKey(t *testing.T) {
	m := DefaultMapping()
	rows := []RowMap{
		{"收貨人": "王", "地址": "台北"},
		{"recipient": "Lee", "address": "Kaohsiung"},
	}
	var candidates []*entity.Customer
	for _, row := range rows {
		candidates = append(candidates, m.Normalize(row))
	}
	assert.Empty(t, Validate(candidates))
}

func TestDuplicateCodesReturnsDistinctCodes(t *testing.T) {
	in := []*entity.Customer{
		{CustomerCode: "A"},
		{CustomerCode: "B"},
		{CustomerCode: "A"},
	}
	assert.Equal(t, []string{"A"}, DuplicateCodes(in))
}

func TestDuplicateCodesFirstOccurrenceOrder(t *testing.T) {
	in := []*entity.Customer{
		{CustomerCode: "Z"},
		{CustomerCode: "A"},
		{CustomerCode: "Z"},
		{CustomerCode: "A"},
		{CustomerCode: "Z"},
		{CustomerCode: "B"},
	}
	assert.Equal(t, []string{"Z", "A"}, DuplicateCodes(in))
}

func TestDuplicateCodesEmptyWhenUnique(t *testing.T) {
	in := []*entity.Customer{{CustomerCode: "A"}, {CustomerCode: "B"}}
	assert.Empty(t, DuplicateCodes(in))
}
