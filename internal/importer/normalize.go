package importer

import "github.com/victorlai/deliverydesk/internal/entity"

// Normalize maps one raw row onto a candidate customer. It never fails:
// missing fields become empty strings and are dropped later by Validate.
// When the row carries a tax ID but no customer code, the tax ID doubles as
// the code, which keeps the business key unique without forcing operators to
// invent one.
func (m FieldMapping) Normalize(row RowMap) *entity.Customer {
	code := pick(row, m.Code)
	taxID := pick(row, m.TaxID)
	if code == "" && taxID != "" {
		code = taxID
	}
	return &entity.Customer{
		CustomerCode: code,
		Recipient:    pick(row, m.Recipient),
		Address:      pick(row, m.Address),
		TaxID:        taxID,
		Notes:        pick(row, m.Notes),
	}
}

// Validate keeps candidates with a recipient, an address, and at least one of
// customer code / tax ID. Order-preserving.
func Validate(candidates []*entity.Customer) []*entity.Customer {
	out := make([]*entity.Customer, 0, len(candidates))
	for _, c := range candidates {
		if c.Recipient == "" || c.Address == "" {
			continue
		}
		if c.CustomerCode == "" && c.TaxID == "" {
			continue
		}
		out = append(out, c)
	}
	return out
}

// DuplicateCodes returns the distinct customer codes that occur more than
// once in the batch, in order of first occurrence.
func DuplicateCodes(candidates []*entity.Customer) []string {
	counts := make(map[string]int, len(candidates))
	for _, c := range candidates {
		counts[c.CustomerCode]++
	}

	var dups []string
	reported := make(map[string]struct{})
	for _, c := range candidates {
		if counts[c.CustomerCode] < 2 {
			continue
		}
		if _, done := reported[c.CustomerCode]; done {
			continue
		}
		reported[c.CustomerCode] = struct{}{}
		dups = append(dups, c.CustomerCode)
	}
	return dups
}
