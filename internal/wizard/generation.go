package wizard

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/gtri-thrive/toolkit/internal/types"
)

var gateValidator = validator.New()

// generationGate mirrors the draft fields that must be filled before the
// generation endpoints may be called.
type generationGate struct {
	Company   string `validate:"required"`
	Position  string `validate:"required"`
	Situation string `validate:"required"`
	Task      string `validate:"required"`
	Actions   string `validate:"required"`
	Results   string `validate:"required"`
}

// ValidationError lists the draft fields still missing before generation.
type ValidationError struct {
	Missing []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("draft is not ready for generation, missing: %s", strings.Join(e.Missing, ", "))
}

// ValidateForGeneration checks that company, position and all four STAR
// sections are filled. On failure the draft and step are untouched.
func (c *Controller) ValidateForGeneration() error {
	gate := generationGate{
		Company:   strings.TrimSpace(c.draft.BasicInfo.Company),
		Position:  strings.TrimSpace(c.draft.BasicInfo.Position),
		Situation: strings.TrimSpace(c.draft.StarContent.Situation),
		Task:      strings.TrimSpace(c.draft.StarContent.Task),
		Actions:   strings.TrimSpace(c.draft.StarContent.Actions),
		Results:   strings.TrimSpace(c.draft.StarContent.Results),
	}
	err := gateValidator.Struct(gate)
	if err == nil {
		return nil
	}
	verr := &ValidationError{}
	for _, fe := range err.(validator.ValidationErrors) {
		verr.Missing = append(verr.Missing, strings.ToLower(fe.Field()))
	}
	return verr
}

// IsGenerating reports whether a generation request is in flight.
func (c *Controller) IsGenerating() bool {
	return c.draft.IsGenerating
}

// BeginGeneration validates the draft, optimistically advances to the next
// step, and returns a token the eventual response must present. A second
// call while a request is in flight is refused.
func (c *Controller) BeginGeneration() (GenerationToken, error) {
	if c.draft.IsGenerating {
		return GenerationToken{}, ErrGenerationInFlight
	}
	if err := c.ValidateForGeneration(); err != nil {
		return GenerationToken{}, err
	}

	c.genAdvanced = false
	if c.draft.CurrentStep < len(c.steps)-1 {
		c.draft.CurrentStep++
		c.genAdvanced = true
	}
	c.draft.IsGenerating = true
	c.seq++
	c.current = GenerationToken{epoch: c.epoch, seq: c.seq}
	c.mark()
	return c.current, nil
}

// ApplyRecommendations completes a generation with recommendation sections.
// Stale tokens (a restart happened, or a newer request superseded this one)
// leave the draft untouched.
func (c *Controller) ApplyRecommendations(tok GenerationToken, recs types.Recommendations) error {
	if err := c.finishGeneration(tok); err != nil {
		return err
	}
	recs.Normalize()
	c.draft.Recommendations = recs
	c.mark()
	return nil
}

// ApplyBullets completes a generation with bullet content. In an edit
// session the result is also recorded in the experience's version history
// under kind.
func (c *Controller) ApplyBullets(tok GenerationToken, bullets types.Bullets, kind types.VersionKind) error {
	if err := c.finishGeneration(tok); err != nil {
		return err
	}
	if bullets == nil {
		bullets = types.Bullets{}
	}
	c.draft.GeneratedBullets = bullets
	c.mark()

	if c.editingID != 0 && c.tracker != nil {
		if _, err := c.tracker.Record(c.editingID, bullets, kind); err != nil {
			return err
		}
	}
	return nil
}

// FailGeneration completes a generation that errored. When rollBack is set,
// the optimistic step advance is undone so the user lands where they
// submitted from; callers that retried in place pass false.
func (c *Controller) FailGeneration(tok GenerationToken, rollBack bool) error {
	if err := c.finishGeneration(tok); err != nil {
		return err
	}
	if rollBack && c.genAdvanced && c.draft.CurrentStep > 0 {
		c.draft.CurrentStep--
	}
	c.genAdvanced = false
	c.mark()
	return nil
}

func (c *Controller) finishGeneration(tok GenerationToken) error {
	if !c.draft.IsGenerating || tok != c.current {
		return ErrStaleGeneration
	}
	c.draft.IsGenerating = false
	c.current = GenerationToken{}
	return nil
}
