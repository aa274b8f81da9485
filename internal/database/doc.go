// Package database provides the entity store for the bookstore.
//
// # Architecture
//
//	database/
//	├── database.go      # Connection setup, migrations, reset, import sessions
//	├── books/           # Book listing, search, restock, low stock, author index
//	└── orders/          # Order summaries, order items, sales aggregates
//
// The store is rebuilt from scratch on every import: Reset drops the six
// bookstore tables and migrates them again. Import sessions live in their own
// table and are not dropped.
//
// # Using Sub-packages
//
//	db, err := database.NewDatabase("./bookverse.db", database.Options{})
//
//	booksRepo := books.NewRepository(db.DB)
//	ordersRepo := orders.NewRepository(db.DB)
//
//	rows, err := booksRepo.SearchBooks("tolkien")
//	summaries, err := ordersRepo.ListOrderSummaries()
//
// Relationships are stored as foreign-key columns only. Reverse views such as
// "books of an author" or "items of an order" are built on demand as indexes
// keyed by the parent ID.
package database
