package repository

import (
	"context"
	"time"

	"renthub/internal/domain"

	"gorm.io/gorm"
)

type BookingRepository struct {
	db *gorm.DB
}

func NewBookingRepository(db *gorm.DB) *BookingRepository {
	return &BookingRepository{db: db}
}

type bookingModel struct {
	ID         int64     `gorm:"column:id;primaryKey"`
	Reference  string    `gorm:"column:reference;uniqueIndex"`
	PropertyID int64     `gorm:"column:property_id;index"`
	RenterID   int64     `gorm:"column:renter_id;index"`
	StartDate  string    `gorm:"column:start_date"`
	EndDate    string    `gorm:"column:end_date"`
	TotalPrice float64   `gorm:"column:total_price"`
	Status     string    `gorm:"column:status;index"`
	Note       *string   `gorm:"column:note"`
	CreatedAt  time.Time `gorm:"column:created_at"`
	UpdatedAt  time.Time `gorm:"column:updated_at"`
}

func (bookingModel) TableName() string { return "bookings" }

func toDomainBooking(m bookingModel) *domain.Booking {
	var note string
	if m.Note != nil {
		note = *m.Note
	}

	return &domain.Booking{
		ID:         m.ID,
		Reference:  m.Reference,
		PropertyID: m.PropertyID,
		RenterID:   m.RenterID,
		StartDate:  m.StartDate,
		EndDate:    m.EndDate,
		TotalPrice: m.TotalPrice,
		Status:     domain.BookingStatus(m.Status),
		Note:       note,
		CreatedAt:  m.CreatedAt,
		UpdatedAt:  m.UpdatedAt,
	}
}

func toBookingModel(b *domain.Booking) bookingModel {
	var note *string
	if b.Note != "" {
		v := b.Note
		note = &v
	}

	return bookingModel{
		ID:         b.ID,
		Reference:  b.Reference,
		PropertyID: b.PropertyID,
		RenterID:   b.RenterID,
		StartDate:  b.StartDate,
		EndDate:    b.EndDate,
		TotalPrice: b.TotalPrice,
		Status:     string(b.Status),
		Note:       note,
		CreatedAt:  b.CreatedAt,
		UpdatedAt:  b.UpdatedAt,
	}
}

func (r *BookingRepository) Create(ctx context.Context, b *domain.Booking) error {
	m := toBookingModel(b)
	tx := r.db.WithContext(ctx).Create(&m)
	if tx.Error != nil {
		return tx.Error
	}
	*b = *toDomainBooking(m)
	return nil
}

func (r *BookingRepository) GetByID(ctx context.Context, id int64) (*domain.Booking, error) {
	var m bookingModel
	tx := r.db.WithContext(ctx).First(&m, id)
	if tx.Error != nil {
		return nil, tx.Error
	}
	return toDomainBooking(m), nil
}

// GetOwnerForBooking resolves the owner of the booked property together
// with the booking's current status and the property title for
// notification text. Zero values mean the booking does not exist.
func (r *BookingRepository) GetOwnerForBooking(ctx context.Context, bookingID int64) (ownerID int64, status string, propertyTitle string, err error) {
	var row struct {
		OwnerID int64  `gorm:"column:owner_id"`
		Status  string `gorm:"column:status"`
		Title   string `gorm:"column:title"`
	}
	q := `
SELECT p.owner_id AS owner_id, b.status AS status, p.title AS title
FROM bookings b
JOIN properties p ON p.id = b.property_id
WHERE b.id = ?
`
	tx := r.db.WithContext(ctx).Raw(q, bookingID).Scan(&row)
	if tx.Error != nil {
		return 0, "", "", tx.Error
	}
	return row.OwnerID, row.Status, row.Title, nil
}

// UpdateStatusIf sets the status only while the current status is one
// of the allowed values, and reports how many rows changed. Zero rows
// means the booking left the allowed state between read and write (or
// never was in it); callers treat that as an invalid transition.
func (r *BookingRepository) UpdateStatusIf(ctx context.Context, bookingID int64, to domain.BookingStatus, allowed ...domain.BookingStatus) (int64, error) {
	from := make([]string, 0, len(allowed))
	for _, s := range allowed {
		from = append(from, string(s))
	}

	tx := r.db.WithContext(ctx).
		Model(&bookingModel{}).
		Where("id = ? AND status IN ?", bookingID, from).
		Updates(map[string]interface{}{
			"status":     string(to),
			"updated_at": time.Now(),
		})
	if tx.Error != nil {
		return 0, tx.Error
	}
	return tx.RowsAffected, nil
}

// CountOverlapping counts approved bookings of the property whose date
// range intersects [start, end). Date strings compare lexicographically
// in the storage layout.
func (r *BookingRepository) CountOverlapping(ctx context.Context, propertyID int64, start, end string) (int64, error) {
	var cnt int64
	tx := r.db.WithContext(ctx).
		Model(&bookingModel{}).
		Where("property_id = ? AND status = ? AND start_date < ? AND end_date > ?",
			propertyID, string(domain.BookingApproved), end, start).
		Count(&cnt)
	if tx.Error != nil {
		return 0, tx.Error
	}
	return cnt, nil
}

// BookingDetails is a booking row joined with its property for list
// views.
type BookingDetails struct {
	ID            int64     `gorm:"column:id" json:"id"`
	Reference     string    `gorm:"column:reference" json:"reference"`
	Status        string    `gorm:"column:status" json:"status"`
	StartDate     string    `gorm:"column:start_date" json:"start_date"`
	EndDate       string    `gorm:"column:end_date" json:"end_date"`
	TotalPrice    float64   `gorm:"column:total_price" json:"total_price"`
	RenterID      int64     `gorm:"column:renter_id" json:"renter_id"`
	PropertyID    int64     `gorm:"column:property_id" json:"property_id"`
	PropertyTitle string    `gorm:"column:property_title" json:"property_title"`
	City          string    `gorm:"column:city" json:"city"`
	CreatedAt     time.Time `gorm:"column:created_at" json:"created_at"`
}

func (r *BookingRepository) ListByRenter(ctx context.Context, renterID int64, limit, offset int) ([]BookingDetails, error) {
	var rows []BookingDetails
	q := `
SELECT b.id, b.reference, b.status, b.start_date, b.end_date, b.total_price,
       b.renter_id, b.property_id, p.title AS property_title, p.city, b.created_at
FROM bookings b
JOIN properties p ON p.id = b.property_id
WHERE b.renter_id = ?
ORDER BY b.created_at DESC
LIMIT ? OFFSET ?
`
	tx := r.db.WithContext(ctx).Raw(q, renterID, limit, offset).Scan(&rows)
	if tx.Error != nil {
		return nil, tx.Error
	}
	return rows, nil
}

func (r *BookingRepository) ListByOwner(ctx context.Context, ownerID int64, limit, offset int) ([]BookingDetails, error) {
	var rows []BookingDetails
	q := `
SELECT b.id, b.reference, b.status, b.start_date, b.end_date, b.total_price,
       b.renter_id, b.property_id, p.title AS property_title, p.city, b.created_at
FROM bookings b
JOIN properties p ON p.id = b.property_id
WHERE p.owner_id = ?
ORDER BY b.created_at DESC
LIMIT ? OFFSET ?
`
	tx := r.db.WithContext(ctx).Raw(q, ownerID, limit, offset).Scan(&rows)
	if tx.Error != nil {
		return nil, tx.Error
	}
	return rows, nil
}

func (r *BookingRepository) CountByStatus(ctx context.Context, status domain.BookingStatus) (int64, error) {
	var cnt int64
	tx := r.db.WithContext(ctx).
		Model(&bookingModel{}).
		Where("status = ?", string(status)).
		Count(&cnt)
	if tx.Error != nil {
		return 0, tx.Error
	}
	return cnt, nil
}
