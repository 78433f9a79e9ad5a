package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	"gorm.io/gorm"

	"mokshamaa/internal/domain"
	"mokshamaa/internal/metrics"
)

const (
	defaultListLimit = 50
	maxListLimit     = 500
)

// AllowedUpdateFields is the fixed set of inquiry fields the admin update
// path may touch. Everything else is write-once at creation; adding a new
// persisted column does not make it admin-editable unless it is added here.
var AllowedUpdateFields = map[string]bool{
	"status":      true,
	"priority":    true,
	"assigned_to": true,
	"admin_notes": true,
}

// CreateInquiryInput carries a public form submission.
type CreateInquiryInput struct {
	Name                string   `json:"name"`
	Email               string   `json:"email"`
	Phone               string   `json:"phone"`
	State               string   `json:"state"`
	City                string   `json:"city"`
	Area                *string  `json:"area"`
	Category            string   `json:"category"`
	Subcategory         *string  `json:"subcategory"`
	BudgetRange         *string  `json:"budget_range"`
	Timeline            *string  `json:"timeline"`
	Description         string   `json:"description"`
	SpecialRequirements *string  `json:"special_requirements"`
	Documents           []string `json:"documents"`
}

// ListInquiriesParams are the server-side filters for the admin list view.
// A zero value or "all" on a filter means no filtering on that column.
type ListInquiriesParams struct {
	Status   string
	Category string
	Priority string
	Limit    int
	Offset   int
}

// InquiryService implements the inquiry lifecycle
type InquiryService struct {
	db           *gorm.DB
	emailService *EmailService
}

// NewInquiryService creates a new inquiry service
func NewInquiryService(db *gorm.DB, emailService *EmailService) *InquiryService {
	return &InquiryService{db: db, emailService: emailService}
}

// Create validates and persists a new inquiry from the public form.
// The row always starts with status "new" and the default priority.
func (s *InquiryService) Create(ctx context.Context, in *CreateInquiryInput) (*domain.Inquiry, error) {
	log.Printf("[INQUIRY] Create request: name=%s, email=%s, category=%s",
		strings.TrimSpace(in.Name), strings.TrimSpace(in.Email), in.Category)

	if err := validateCreateInput(in); err != nil {
		log.Printf("[INQUIRY] Create failed: validation error: %v", err)
		return nil, err
	}

	inquiry := &domain.Inquiry{
		Name:        strings.TrimSpace(in.Name),
		Email:       strings.ToLower(strings.TrimSpace(in.Email)),
		Phone:       strings.TrimSpace(in.Phone),
		State:       strings.TrimSpace(in.State),
		City:        strings.TrimSpace(in.City),
		Category:    domain.Category(strings.TrimSpace(in.Category)),
		Description: strings.TrimSpace(in.Description),
		Status:      domain.StatusNew,
		Priority:    domain.PriorityMedium,
		Documents:   domain.Documents{},
	}
	inquiry.Area = optionalText(in.Area)
	inquiry.Subcategory = optionalText(in.Subcategory)
	inquiry.BudgetRange = optionalText(in.BudgetRange)
	inquiry.Timeline = optionalText(in.Timeline)
	inquiry.SpecialRequirements = optionalText(in.SpecialRequirements)

	if err := s.db.WithContext(ctx).Create(inquiry).Error; err != nil {
		log.Printf("[INQUIRY] Create failed: database error: %v", err)
		return nil, &PersistenceError{Op: "create inquiry", Err: err}
	}

	log.Printf("[INQUIRY] Create successful: id=%s, name=%s, category=%s",
		inquiry.ID, inquiry.Name, inquiry.Category)
	metrics.RecordInquirySubmission(string(inquiry.Category))

	// Notify admin (async, submission never fails because email does)
	go func() {
		if err := s.emailService.SendInquiryNotification(inquiry); err != nil {
			log.Printf("[INQUIRY] Warning: failed to send notification email: %v", err)
		}
	}()

	return inquiry, nil
}

// List returns a page of inquiries, newest first, with the total count of
// rows matching the same filter conjunction.
func (s *InquiryService) List(ctx context.Context, p ListInquiriesParams) ([]domain.Inquiry, int64, error) {
	limit := p.Limit
	if limit <= 0 {
		limit = defaultListLimit
	}
	if limit > maxListLimit {
		limit = maxListLimit
	}
	offset := p.Offset
	if offset < 0 {
		offset = 0
	}

	log.Printf("[INQUIRY] List request: status=%q, category=%q, priority=%q, limit=%d, offset=%d",
		p.Status, p.Category, p.Priority, limit, offset)

	query := s.db.WithContext(ctx).Model(&domain.Inquiry{})
	if isConcreteFilter(p.Status) {
		query = query.Where("status = ?", p.Status)
	}
	if isConcreteFilter(p.Category) {
		query = query.Where("category = ?", p.Category)
	}
	if isConcreteFilter(p.Priority) {
		query = query.Where("priority = ?", p.Priority)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		log.Printf("[INQUIRY] List failed: count error: %v", err)
		return nil, 0, &PersistenceError{Op: "count inquiries", Err: err}
	}

	var inquiries []domain.Inquiry
	if err := query.Order("created_at DESC").Limit(limit).Offset(offset).Find(&inquiries).Error; err != nil {
		log.Printf("[INQUIRY] List failed: database error: %v", err)
		return nil, 0, &PersistenceError{Op: "list inquiries", Err: err}
	}

	log.Printf("[INQUIRY] List successful: returned %d of %d inquiries", len(inquiries), total)
	return inquiries, total, nil
}

// Get returns the inquiry with the given id.
func (s *InquiryService) Get(ctx context.Context, id string) (*domain.Inquiry, error) {
	log.Printf("[INQUIRY] Get request: id=%s", id)

	var inquiry domain.Inquiry
	if err := s.db.WithContext(ctx).Where("id = ?", id).First(&inquiry).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			log.Printf("[INQUIRY] Get failed: inquiry id=%s not found", id)
			return nil, &NotFoundError{Resource: "Inquiry"}
		}
		log.Printf("[INQUIRY] Get failed: database error: %v", err)
		return nil, &PersistenceError{Op: "get inquiry", Err: err}
	}

	log.Printf("[INQUIRY] Get successful: id=%s", inquiry.ID)
	return &inquiry, nil
}

// Update applies a merge-patch to an inquiry. Only allow-listed fields are
// applied; any other key in the input is silently ignored. Keys absent from
// the input leave the stored values untouched.
func (s *InquiryService) Update(ctx context.Context, id string, fields map[string]any) (*domain.Inquiry, error) {
	log.Printf("[INQUIRY] Update request: id=%s, fields=%d", id, len(fields))

	updates := make(map[string]any)
	for field, value := range fields {
		if AllowedUpdateFields[field] {
			updates[field] = value
		}
	}
	if len(updates) == 0 {
		log.Printf("[INQUIRY] Update rejected: no allow-listed fields for id=%s", id)
		return nil, &NoOpError{}
	}

	if err := validateUpdateValues(updates); err != nil {
		log.Printf("[INQUIRY] Update failed: validation error: %v", err)
		return nil, err
	}

	var inquiry domain.Inquiry
	if err := s.db.WithContext(ctx).Where("id = ?", id).First(&inquiry).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			log.Printf("[INQUIRY] Update failed: inquiry id=%s not found", id)
			return nil, &NotFoundError{Resource: "Inquiry"}
		}
		log.Printf("[INQUIRY] Update failed: database error: %v", err)
		return nil, &PersistenceError{Op: "get inquiry", Err: err}
	}

	applyUpdates(&inquiry, updates)

	if err := s.db.WithContext(ctx).Save(&inquiry).Error; err != nil {
		log.Printf("[INQUIRY] Update failed: save error: %v", err)
		return nil, &PersistenceError{Op: "update inquiry", Err: err}
	}

	log.Printf("[INQUIRY] Update successful: id=%s, status=%s, priority=%s",
		inquiry.ID, inquiry.Status, inquiry.Priority)
	metrics.RecordInquiryUpdate()
	return &inquiry, nil
}

// requiredCreateFields lists the create-time required fields in the order
// they are reported when missing.
var requiredCreateFields = []string{"name", "email", "phone", "state", "city", "category", "description"}

func validateCreateInput(in *CreateInquiryInput) error {
	values := map[string]string{
		"name":        in.Name,
		"email":       in.Email,
		"phone":       in.Phone,
		"state":       in.State,
		"city":        in.City,
		"category":    in.Category,
		"description": in.Description,
	}
	for _, field := range requiredCreateFields {
		if strings.TrimSpace(values[field]) == "" {
			return NewMissingFieldError(field)
		}
	}
	if !domain.Category(strings.TrimSpace(in.Category)).Valid() {
		return NewInvalidValueError("category", in.Category)
	}
	return nil
}

func validateUpdateValues(updates map[string]any) error {
	for field, value := range updates {
		str, ok := value.(string)
		if !ok {
			return NewInvalidValueError(field, fmt.Sprintf("%v", value))
		}
		switch field {
		case "status":
			if !domain.Status(str).Valid() {
				return NewInvalidValueError("status", str)
			}
		case "priority":
			if !domain.Priority(str).Valid() {
				return NewInvalidValueError("priority", str)
			}
		}
	}
	return nil
}

func applyUpdates(inquiry *domain.Inquiry, updates map[string]any) {
	if v, ok := updates["status"]; ok {
		inquiry.Status = domain.Status(v.(string))
	}
	if v, ok := updates["priority"]; ok {
		inquiry.Priority = domain.Priority(v.(string))
	}
	if v, ok := updates["assigned_to"]; ok {
		assignedTo := v.(string)
		inquiry.AssignedTo = &assignedTo
	}
	if v, ok := updates["admin_notes"]; ok {
		notes := v.(string)
		inquiry.AdminNotes = &notes
	}
}

// isConcreteFilter reports whether a filter parameter names a concrete
// value; "" and the sentinel "all" both mean "no filter".
func isConcreteFilter(v string) bool {
	return v != "" && v != "all"
}

func optionalText(v *string) *string {
	if v == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*v)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}
