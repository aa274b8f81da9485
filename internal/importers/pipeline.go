package importers

import (
	"context"
	"log"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/mrlokans/bookverse/internal/database"
	"github.com/mrlokans/bookverse/internal/entities"
)

// Entity type names as written to the rejection log.
const (
	TypeAuthor    = "Author"
	TypeBook      = "Book"
	TypeCustomer  = "Customer"
	TypeOrder     = "Order"
	TypeOrderItem = "OrderItem"
	TypePayment   = "Payment"
)

// Snapshotter keeps a copy of every fetched document.
type Snapshotter interface {
	SaveSnapshot(raw []byte) (string, error)
}

// Result counts what one import inserted and rejected.
type Result struct {
	Authors    int            `json:"authors"`
	Books      int            `json:"books"`
	Customers  int            `json:"customers"`
	Orders     int            `json:"orders"`
	OrderItems int            `json:"order_items"`
	Payments   int            `json:"payments"`
	Rejected   map[string]int `json:"rejected"`
}

// TotalRejected sums rejections across entity types.
func (r Result) TotalRejected() int {
	total := 0
	for _, n := range r.Rejected {
		total += n
	}
	return total
}

// Pipeline rebuilds the store from a source document:
// fetch → decode → reset → authors → books → customers → orders (items, payment).
//
// Each entity batch is committed before the next one starts so later batches
// can resolve references against committed rows. An invalid record is logged
// and skipped; a storage failure aborts the run and leaves earlier batches
// in place.
type Pipeline struct {
	db       *database.Database
	rejects  RejectLog
	snapshot Snapshotter
	validate *validator.Validate
}

// NewPipeline creates a pipeline writing into db and reporting rejected
// records to rejects.
func NewPipeline(db *database.Database, rejects RejectLog) *Pipeline {
	return &Pipeline{
		db:       db,
		rejects:  rejects,
		validate: newValidator(),
	}
}

// SetSnapshotter enables saving each fetched document before it is parsed.
func (p *Pipeline) SetSnapshotter(s Snapshotter) {
	p.snapshot = s
}

// Import fetches and decodes the document, then loads it. Nothing is reset
// when the document cannot be fetched or decoded.
func (p *Pipeline) Import(ctx context.Context, src Source) (Result, error) {
	raw, err := src.Fetch(ctx)
	if err != nil {
		return Result{}, err
	}

	if p.snapshot != nil {
		if name, err := p.snapshot.SaveSnapshot(raw); err != nil {
			log.Printf("Failed to save import snapshot: %v", err)
		} else {
			log.Printf("Saved import snapshot %s", name)
		}
	}

	doc, err := Decode(raw)
	if err != nil {
		return Result{}, err
	}

	return p.Load(ctx, doc)
}

// Load resets the store and inserts the document batch by batch.
func (p *Pipeline) Load(ctx context.Context, doc *Document) (Result, error) {
	res := Result{Rejected: make(map[string]int)}

	if err := p.db.Reset(); err != nil {
		return res, storageError("reset", err)
	}

	db := p.db.DB.WithContext(ctx)

	if err := p.importAuthors(db, doc.Authors, &res); err != nil {
		return res, err
	}
	if err := p.importBooks(db, doc.Books, &res); err != nil {
		return res, err
	}
	if err := p.importCustomers(db, doc, &res); err != nil {
		return res, err
	}
	for _, order := range doc.Orders {
		if err := p.importOrder(db, order, &res); err != nil {
			return res, err
		}
	}

	log.Printf("Import finished: %d authors, %d books, %d customers, %d orders, %d items, %d payments, %d rejected",
		res.Authors, res.Books, res.Customers, res.Orders, res.OrderItems, res.Payments, res.TotalRejected())

	return res, nil
}

func (p *Pipeline) reject(res *Result, entityType, id string) {
	res.Rejected[entityType]++
	if p.rejects != nil {
		p.rejects.Reject(entityType, id)
	}
}

// rejection is held back until the batch that produced it commits, so a
// rolled-back batch leaves nothing in the rejection log.
type rejection struct {
	entityType string
	id         string
}

func (p *Pipeline) flush(res *Result, pending []rejection) {
	for _, r := range pending {
		p.reject(res, r.entityType, r.id)
	}
}

func exists(tx *gorm.DB, model any, column, value string) (bool, error) {
	var n int64
	err := tx.Model(model).Where(column+" = ?", value).Count(&n).Error
	return n > 0, err
}

func (p *Pipeline) importAuthors(db *gorm.DB, records []AuthorRecord, res *Result) error {
	inserted := 0
	var pending []rejection
	err := db.Transaction(func(tx *gorm.DB) error {
		for _, rec := range records {
			if err := p.validate.Struct(rec); err != nil {
				pending = append(pending, rejection{TypeAuthor, idOrNull(rec.ID)})
				continue
			}

			dup, err := exists(tx, &entities.Author{}, "id", rec.ID.String())
			if err != nil {
				return err
			}
			if dup {
				pending = append(pending, rejection{TypeAuthor, rec.ID.String()+" (duplicate)"})
				continue
			}

			author := entities.Author{ID: rec.ID.String(), Name: rec.Name, Country: rec.Country}
			if err := tx.Create(&author).Error; err != nil {
				return err
			}
			inserted++
		}
		return nil
	})
	if err != nil {
		return storageError("authors", err)
	}
	p.flush(res, pending)
	res.Authors += inserted
	return nil
}

func (p *Pipeline) importBooks(db *gorm.DB, records []BookRecord, res *Result) error {
	inserted := 0
	var pending []rejection
	err := db.Transaction(func(tx *gorm.DB) error {
		for _, rec := range records {
			if err := p.validate.Struct(rec); err != nil {
				pending = append(pending, rejection{TypeBook, idOrNull(rec.ISBN)})
				continue
			}

			found, err := exists(tx, &entities.Author{}, "id", rec.AuthorID.String())
			if err != nil {
				return err
			}
			if !found {
				pending = append(pending, rejection{TypeBook, rec.ISBN.String()+" (Author not found)"})
				continue
			}

			dup, err := exists(tx, &entities.Book{}, "isbn", rec.ISBN.String())
			if err != nil {
				return err
			}
			if dup {
				pending = append(pending, rejection{TypeBook, rec.ISBN.String()+" (duplicate)"})
				continue
			}

			book := entities.Book{
				ISBN:     rec.ISBN.String(),
				Title:    rec.Title,
				Category: rec.Category(),
				Price:    rec.Price,
				Stock:    rec.Stock.Int(),
				AuthorID: rec.AuthorID.String(),
			}
			if err := tx.Create(&book).Error; err != nil {
				return err
			}
			inserted++
		}
		return nil
	})
	if err != nil {
		return storageError("books", err)
	}
	p.flush(res, pending)
	res.Books += inserted
	return nil
}

// importCustomers collects the top-level customers followed by each order's
// embedded customer. Customers already in the store are skipped silently.
func (p *Pipeline) importCustomers(db *gorm.DB, doc *Document, res *Result) error {
	records := make([]CustomerRecord, 0, len(doc.Customers)+len(doc.Orders))
	records = append(records, doc.Customers...)
	for _, order := range doc.Orders {
		if order.Customer != nil {
			records = append(records, *order.Customer)
		}
	}

	inserted := 0
	var pending []rejection
	err := db.Transaction(func(tx *gorm.DB) error {
		for _, rec := range records {
			if err := p.validate.Struct(rec); err != nil {
				pending = append(pending, rejection{TypeCustomer, idOrNull(rec.ID)})
				continue
			}

			dup, err := exists(tx, &entities.Customer{}, "id", rec.ID.String())
			if err != nil {
				return err
			}
			if dup {
				continue
			}

			customer := entities.Customer{ID: rec.ID.String(), Name: rec.Name, Email: rec.Email}
			if err := tx.Create(&customer).Error; err != nil {
				return err
			}
			inserted++
		}
		return nil
	})
	if err != nil {
		return storageError("customers", err)
	}
	p.flush(res, pending)
	res.Customers += inserted
	return nil
}

// importOrder commits the order on its own, then its items and payment as a
// second batch.
func (p *Pipeline) importOrder(db *gorm.DB, rec OrderRecord, res *Result) error {
	orderID := rec.ID.String()
	customerID := rec.CustomerRef()
	if err := p.validate.Struct(rec); err != nil || strings.TrimSpace(customerID) == "" {
		p.reject(res, TypeOrder, idOrNull(rec.ID))
		return nil
	}

	dup, err := exists(db, &entities.Order{}, "id", orderID)
	if err != nil {
		return storageError("orders", err)
	}
	if dup {
		p.reject(res, TypeOrder, orderID+" (duplicate)")
		return nil
	}

	found, err := exists(db, &entities.Customer{}, "id", customerID)
	if err != nil {
		return storageError("orders", err)
	}
	if !found {
		p.reject(res, TypeOrder, orderID+" (Customer not found)")
		return nil
	}

	order := entities.Order{
		ID:         orderID,
		CustomerID: customerID,
		OrderDate:  parseOrderDate(rec.Date),
		Status:     strings.TrimSpace(rec.Status),
		IsPaid:     entities.IsPaidStatus(rec.Status),
	}
	if err := db.Create(&order).Error; err != nil {
		return storageError("order "+orderID, err)
	}
	res.Orders++

	var items []entities.OrderItem
	paymentInserted := false
	var pending []rejection
	err = db.Transaction(func(tx *gorm.DB) error {
		for pos, itemRec := range rec.Items {
			if err := p.validate.Struct(itemRec); err != nil {
				pending = append(pending, rejection{TypeOrderItem, "null"})
				continue
			}

			found, err := exists(tx, &entities.Book{}, "isbn", itemRec.ISBN.String())
			if err != nil {
				return err
			}
			if !found {
				pending = append(pending, rejection{TypeOrderItem, itemRec.ISBN.String()+" (Book not found)"})
				continue
			}

			item := entities.OrderItem{
				ID:        orderItemID(order.ID, pos),
				OrderID:   order.ID,
				BookID:    itemRec.ISBN.String(),
				Quantity:  max(itemRec.Qty.Int(), 0),
				UnitPrice: itemRec.UnitPrice,
				Discount:  itemRec.Discount,
			}
			if err := tx.Create(&item).Error; err != nil {
				return err
			}
			items = append(items, item)
		}

		if rec.Payment == nil {
			return nil
		}

		payment := entities.Payment{
			ID:       strings.TrimSpace(rec.Payment.ID.String()),
			OrderID:  order.ID,
			Method:   rec.Payment.Method,
			Amount:   paymentAmount(rec.Payment, items),
			Captured: order.IsPaid,
		}
		if payment.ID == "" {
			payment.ID = paymentID(order.ID)
		}

		dup, err := exists(tx, &entities.Payment{}, "id", payment.ID)
		if err != nil {
			return err
		}
		if dup {
			pending = append(pending, rejection{TypePayment, payment.ID+" (duplicate)"})
			return nil
		}

		if err := tx.Create(&payment).Error; err != nil {
			return err
		}
		paymentInserted = true
		return nil
	})
	if err != nil {
		return storageError("items of order "+orderID, err)
	}
	p.flush(res, pending)

	res.OrderItems += len(items)
	if paymentInserted {
		res.Payments++
	}
	return nil
}

// Generated keys are name-based UUIDs so importing the same document twice
// produces identical rows.

func orderItemID(orderID string, position int) string {
	return uuid.NewSHA1(uuid.NameSpaceOID, []byte("order-item:"+orderID+":"+strconv.Itoa(position))).String()
}

func paymentID(orderID string) string {
	return uuid.NewSHA1(uuid.NameSpaceOID, []byte("payment:"+orderID)).String()
}

// paymentAmount uses the embedded amount when present, otherwise the sum of
// the accepted items' line totals.
func paymentAmount(rec *PaymentRecord, items []entities.OrderItem) decimal.Decimal {
	if rec.Amount != nil {
		return *rec.Amount
	}
	total := decimal.Zero
	for _, item := range items {
		total = total.Add(item.LineTotal())
	}
	return total
}
