// Package fixtures holds a small bookstore document shared by tests.
//
// The document exercises every rejection path of the importer:
//
//   - Author A3 has a blank name.
//   - Book B3 references a missing author; another book has no ISBN.
//   - Order O4 references a missing customer; another order has no ID.
//   - Order O3 has an item for a missing book and an item with quantity -3.
//
// After import, paid orders O1 (19.98) and O2 (45.00) total 64.98, unpaid
// order O3 totals 12.50, B1 has stock 3 and B2 stock 5.
package fixtures

import _ "embed"

//go:embed bookstore.json
var BookstoreJSON []byte
