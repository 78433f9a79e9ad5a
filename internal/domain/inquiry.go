package domain

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Status is the triage state of an inquiry.
type Status string

const (
	StatusNew        Status = "new"
	StatusContacted  Status = "contacted"
	StatusInProgress Status = "in_progress"
	StatusCompleted  Status = "completed"
	StatusCancelled  Status = "cancelled"
)

// Valid reports whether s is one of the known statuses.
func (s Status) Valid() bool {
	switch s {
	case StatusNew, StatusContacted, StatusInProgress, StatusCompleted, StatusCancelled:
		return true
	}
	return false
}

// Priority is the admin-assigned urgency of an inquiry.
type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
	PriorityUrgent Priority = "urgent"
)

// Valid reports whether p is one of the known priorities.
func (p Priority) Valid() bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh, PriorityUrgent:
		return true
	}
	return false
}

// Category is the service category an inquiry belongs to.
type Category string

const (
	CategoryReligious   Category = "Religious"
	CategoryResidential Category = "Residential"
	CategoryCommercial  Category = "Commercial"
	CategoryEducation   Category = "Education"
	CategoryMedical     Category = "Medical"
	CategorySocial      Category = "Social"
)

// Valid reports whether c is one of the known categories.
func (c Category) Valid() bool {
	switch c {
	case CategoryReligious, CategoryResidential, CategoryCommercial,
		CategoryEducation, CategoryMedical, CategorySocial:
		return true
	}
	return false
}

// Categories lists all service categories in display order.
func Categories() []Category {
	return []Category{
		CategoryReligious, CategoryResidential, CategoryCommercial,
		CategoryEducation, CategoryMedical, CategorySocial,
	}
}

// Inquiry represents a customer-submitted service request.
// Only Status, Priority, AssignedTo and AdminNotes are mutable after
// creation; everything else is write-once from the public form.
type Inquiry struct {
	ID                  string     `gorm:"primaryKey;size:36" json:"id"`
	Name                string     `gorm:"not null" json:"name"`
	Email               string     `gorm:"not null;index" json:"email"`
	Phone               string     `gorm:"not null" json:"phone"`
	State               string     `gorm:"not null" json:"state"`
	City                string     `gorm:"not null" json:"city"`
	Area                *string    `json:"area"`
	Category            Category   `gorm:"not null;index" json:"category"`
	Subcategory         *string    `json:"subcategory"`
	BudgetRange         *string    `json:"budget_range"`
	Timeline            *string    `json:"timeline"`
	Description         string     `gorm:"type:text;not null" json:"description"`
	SpecialRequirements *string    `gorm:"type:text" json:"special_requirements"`
	Status              Status     `gorm:"default:'new';index" json:"status"`
	Priority            Priority   `gorm:"default:'medium';index" json:"priority"`
	AssignedTo          *string    `json:"assigned_to"`
	AdminNotes          *string    `gorm:"type:text" json:"admin_notes"`
	Documents           Documents  `gorm:"type:text" json:"documents"`
	CreatedAt           time.Time  `json:"created_at"`
	UpdatedAt           *time.Time `json:"updated_at"`
}

// TableName specifies the table name for Inquiry
func (Inquiry) TableName() string {
	return "inquiries"
}

// BeforeCreate hook
func (i *Inquiry) BeforeCreate(tx *gorm.DB) error {
	if i.ID == "" {
		i.ID = uuid.NewString()
	}
	i.CreatedAt = time.Now()
	if i.Status == "" {
		i.Status = StatusNew
	}
	if i.Priority == "" {
		i.Priority = PriorityMedium
	}
	if i.Documents == nil {
		i.Documents = Documents{}
	}
	return nil
}

// BeforeUpdate hook
func (i *Inquiry) BeforeUpdate(tx *gorm.DB) error {
	now := time.Now()
	i.UpdatedAt = &now
	return nil
}
