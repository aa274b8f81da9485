// Package importers rebuilds the bookstore store from a JSON source document.
//
// # Architecture
//
//	Source (HTTP / file) → Decode → Document → Pipeline → database.Database
//	                                              ↓
//	                                          RejectLog
//
// The Pipeline is destructive: every run drops and recreates the bookstore
// tables, then inserts authors, books, customers and orders in that order.
// Each batch is committed before the next one starts, because books resolve
// authors, orders resolve customers and order items resolve books against
// rows that are already committed.
//
// # Source Schema
//
//	{
//	  "authors":   [{"id", "name", "country"}],
//	  "books":     [{"isbn", "title", "authorId", "price", "stock", "categories": []}],
//	  "customers": [{"id", "name", "email"}],
//	  "orders": [{
//	    "id", "customerId", "date", "status",
//	    "customer": {"id", "name", "email"},
//	    "items":    [{"isbn", "qty", "unitPrice", "discount"}],
//	    "payment":  {"id", "method", "amount", "captured"}
//	  }]
//	}
//
// The top-level customers list and an order's customerId are optional; an
// order without customerId uses its embedded customer's id.
//
// # Failure Handling
//
// A record that fails validation or references a missing parent is skipped
// and reported to the RejectLog as "<Type> with ID <id> is invalid". Fetch
// and decode failures (ErrFetch, ErrMalformedDocument) abort before the store
// is touched. A write failure (ErrStorage) aborts the remaining batches.
//
// # Example Usage
//
//	pipeline := importers.NewPipeline(db, importers.NewFileRejectLog("invalid_bookstore.txt"))
//	result, err := pipeline.Import(ctx, importers.NewHTTPSource(url, 0))
package importers
