// Package wizard implements the four-step public inquiry form: step
// progression gated by per-step validity, draft persistence for recovery,
// and submission to the inquiry API.
package wizard

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"strings"

	"mokshamaa/internal/catalog"
	"mokshamaa/internal/domain"
	"mokshamaa/internal/services"
)

// TotalSteps is the number of form steps before submission.
const TotalSteps = 4

var (
	// ErrStepInvalid rejects a forward transition while the current
	// step's required fields are incomplete.
	ErrStepInvalid = errors.New("current step is incomplete")
	// ErrNotOnFinalStep rejects submission from any step but the last.
	ErrNotOnFinalStep = errors.New("submission is only possible from the final step")
)

// FormData holds every field the form collects across its steps.
type FormData struct {
	// Step 1: personal information
	FullName       string `json:"fullName"`
	Email          string `json:"email"`
	Phone          string `json:"phone"`
	AlternatePhone string `json:"alternatePhone"`

	// Step 2: location details (state/city come from the external selection)
	Address string `json:"address"`
	Pincode string `json:"pincode"`

	// Step 3: service requirements
	Category     string `json:"category"`
	Subcategory  string `json:"subcategory"`
	Requirements string `json:"requirements"`
	Budget       string `json:"budget"`
	Timeline     string `json:"timeline"`
	FamilySize   string `json:"familySize"`

	// Step 4: documents & preferences (all optional)
	SpecialRequirements string   `json:"specialRequirements"`
	Documents           []string `json:"documents"`
	ContactPreference   []string `json:"contactPreference"`
	VisitPreference     string   `json:"visitPreference"`
}

// Submitter is the slice of the API client the wizard needs.
type Submitter interface {
	CreateInquiry(ctx context.Context, in *services.CreateInquiryInput) (*domain.Inquiry, error)
}

// Wizard is the form state machine. It is not safe for concurrent use; a
// form belongs to one session.
type Wizard struct {
	form      FormData
	step      int
	selection catalog.LocationSelection
	store     Store
	api       Submitter
	restored  bool
}

// New creates a wizard, restoring any saved draft from the store. A corrupt
// or missing draft starts the form clean.
func New(store Store, api Submitter, selection catalog.LocationSelection) *Wizard {
	w := &Wizard{
		step:      1,
		selection: selection,
		store:     store,
		api:       api,
	}
	if data, err := store.Load(DraftKey); err == nil {
		var form FormData
		if err := json.Unmarshal(data, &form); err != nil {
			log.Printf("[WIZARD] ignoring corrupt draft: %v", err)
		} else {
			w.form = form
			w.restored = true
		}
	}
	return w
}

// Form returns the mutable form data. Callers edit fields directly and then
// SaveDraft; debouncing of saves is the caller's concern.
func (w *Wizard) Form() *FormData {
	return &w.form
}

// Step returns the current step, 1-based.
func (w *Wizard) Step() int {
	return w.step
}

// Restored reports whether a saved draft was recovered at start.
func (w *Wizard) Restored() bool {
	return w.restored
}

// SetSelection replaces the externally-chosen location selection.
func (w *Wizard) SetSelection(sel catalog.LocationSelection) {
	w.selection = sel
}

// PrefillCategory sets the category chosen on the category selector before
// the form opened, without overwriting an explicit form choice.
func (w *Wizard) PrefillCategory(c domain.Category) {
	if w.form.Category == "" {
		w.form.Category = string(c)
	}
}

// StepValid reports whether the given step's required fields are complete.
func (w *Wizard) StepValid(step int) bool {
	switch step {
	case 1:
		return w.form.FullName != "" && w.form.Email != "" && w.form.Phone != ""
	case 2:
		return w.form.Address != "" && w.form.Pincode != "" && w.selection.Complete()
	case 3:
		return w.form.Category != "" && w.form.Requirements != ""
	case 4:
		return true
	default:
		return false
	}
}

// Next advances to the following step. The transition is gated on the
// current step's validity.
func (w *Wizard) Next() error {
	if w.step >= TotalSteps {
		return nil
	}
	if !w.StepValid(w.step) {
		return ErrStepInvalid
	}
	w.step++
	return nil
}

// Prev moves back one step; always allowed above step 1.
func (w *Wizard) Prev() {
	if w.step > 1 {
		w.step--
	}
}

// SaveDraft persists the current form data under the fixed draft key.
func (w *Wizard) SaveDraft() error {
	data, err := json.Marshal(w.form)
	if err != nil {
		return fmt.Errorf("failed to encode draft: %w", err)
	}
	return w.store.Save(DraftKey, data)
}

// CanSubmit reports whether submission is currently possible.
func (w *Wizard) CanSubmit() bool {
	return w.step == TotalSteps && w.StepValid(TotalSteps)
}

// Submit composes the inquiry payload from the form and the location
// selection and sends it. Attached documents are discarded: upload is not
// implemented. On failure the step and draft stay intact; on success the
// draft is cleared and the form resets to step 1.
func (w *Wizard) Submit(ctx context.Context) (*domain.Inquiry, error) {
	if w.step != TotalSteps {
		return nil, ErrNotOnFinalStep
	}
	if !w.StepValid(TotalSteps) {
		return nil, ErrStepInvalid
	}

	payload := w.composePayload()
	inquiry, err := w.api.CreateInquiry(ctx, payload)
	if err != nil {
		log.Printf("[WIZARD] submission failed: %v", err)
		return nil, err
	}

	if err := w.store.Clear(DraftKey); err != nil {
		log.Printf("[WIZARD] Warning: failed to clear draft: %v", err)
	}
	w.form = FormData{}
	w.step = 1
	w.restored = false

	log.Printf("[WIZARD] submission successful: id=%s", inquiry.ID)
	return inquiry, nil
}

func (w *Wizard) composePayload() *services.CreateInquiryInput {
	in := &services.CreateInquiryInput{
		Name:        w.form.FullName,
		Email:       w.form.Email,
		Phone:       w.form.Phone,
		State:       w.selection.State,
		City:        w.selection.City,
		Category:    w.form.Category,
		Description: w.form.Requirements,
		Documents:   []string{},
	}
	if area := w.selection.AreaText(); area != "" {
		in.Area = &area
	}
	if v := strings.TrimSpace(w.form.Subcategory); v != "" {
		in.Subcategory = &v
	}
	if v := strings.TrimSpace(w.form.Budget); v != "" {
		in.BudgetRange = &v
	}
	if v := strings.TrimSpace(w.form.Timeline); v != "" {
		in.Timeline = &v
	}
	if v := strings.TrimSpace(w.form.SpecialRequirements); v != "" {
		in.SpecialRequirements = &v
	}
	return in
}
