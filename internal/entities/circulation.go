package entities

import (
	"time"
)

// UserRole is a free-form role string; the constants below are the roles the
// bundled frontend knows about, but the store accepts any value.
type UserRole string

const (
	UserRoleAdmin UserRole = "admin"
	UserRoleStaff UserRole = "staff"
)

// Book is a catalog entry with stock counts. AvailableStock is the number of
// copies not currently on loan; TotalStock the number of copies owned.
type Book struct {
	ID             uint      `gorm:"primaryKey" json:"id"`
	Title          string    `gorm:"index;size:512" json:"title"`
	Author         string    `gorm:"size:256" json:"author"`
	Category       string    `gorm:"index;size:100" json:"category"`
	TotalStock     int       `gorm:"not null" json:"total_stock"`
	AvailableStock int       `gorm:"not null" json:"available_stock"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// Member is a registered library member. Rows are immutable after creation;
// the email column carries a unique index enforced by the store.
type Member struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Name      string    `gorm:"size:256" json:"name"`
	Email     string    `gorm:"uniqueIndex;size:255" json:"email"`
	Phone     string    `gorm:"size:32" json:"phone"`
	CreatedAt time.Time `json:"created_at"`
}

// User is a staff login account. The password hash never leaves the server.
type User struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	Username     string    `gorm:"index;size:100" json:"username"`
	PasswordHash string    `gorm:"size:100" json:"-"`
	Role         UserRole  `gorm:"size:50" json:"role"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// Loan is one lending transaction. A nil ReturnDate means the loan is open
// (the book is out); Close sets ReturnDate and fixes FineAmount exactly once.
// MemberName is free text matched exactly on return, not a foreign key.
type Loan struct {
	ID         uint       `gorm:"primaryKey" json:"id"`
	BookID     uint       `gorm:"index;not null" json:"book_id"`
	Book       Book       `gorm:"foreignKey:BookID" json:"-"`
	MemberName string     `gorm:"column:user_name;index;size:256" json:"user_name"`
	DueDate    time.Time  `gorm:"not null" json:"due_date"`
	ReturnDate *time.Time `json:"return_date"`
	FineAmount *float64   `json:"fine_amount"`
	CreatedAt  time.Time  `json:"created_at"`
}

// TableName keeps the table name the frontend-era schema used.
func (Loan) TableName() string {
	return "transactions"
}

// Open reports whether the book is still out.
func (l *Loan) Open() bool {
	return l.ReturnDate == nil
}
