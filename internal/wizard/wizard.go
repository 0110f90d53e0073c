// Package wizard implements the step wizard controller behind the STAR
// bullet builder: an ordered step sequence, the in-progress draft, the
// generation lifecycle with stale-response guarding, and the two-phase
// confirmation-gated restart.
package wizard

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/gtri-thrive/toolkit/internal/store"
	"github.com/gtri-thrive/toolkit/internal/types"
	"github.com/gtri-thrive/toolkit/internal/versions"
)

// Step is one stage of the wizard.
type Step struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

// DefaultSteps is the four-step builder flow.
var DefaultSteps = []Step{
	{Title: "Start Bullets", Description: "Choose experience type"},
	{Title: "Add Experience", Description: "Enter STAR details"},
	{Title: "Review Improvements", Description: "Check AI suggestions"},
	{Title: "Review Bullets", Description: "Finalize your bullets"},
}

// LegacySteps is the five-step variant that ends on an export step.
var LegacySteps = []Step{
	{Title: "Start Bullets", Description: "Choose experience type"},
	{Title: "Add Experience", Description: "Enter STAR details"},
	{Title: "Review Improvements", Description: "Check AI suggestions"},
	{Title: "Review Bullets", Description: "Finalize your bullets"},
	{Title: "End Bullets", Description: "Export your work"},
}

// Controller errors.
var (
	ErrNotOnTypeStep      = errors.New("experience type can only be selected on the initial step")
	ErrGenerationInFlight = errors.New("a generation request is already in flight")
	ErrStaleGeneration    = errors.New("generation response arrived for a stale draft")
	ErrNoPendingRestart   = errors.New("no restart confirmation is pending")
	ErrNotEditing         = errors.New("operation requires an edit session")
)

// RestartPrompt describes a pending restart awaiting user confirmation.
type RestartPrompt struct {
	Token   string
	Message string
}

// GenerationToken identifies one generation request against the draft that
// initiated it. A token from before a restart or reset never matches again.
type GenerationToken struct {
	epoch uint64
	seq   uint64
}

// Config wires a controller to its collaborators. KV is required; the rest
// are optional.
type Config struct {
	KV          *store.Store
	Experiences *store.ExperienceStore
	Tracker     *versions.Tracker
	Steps       []Step
	// AutosaveDelay overrides the debounce window for draft mirroring.
	AutosaveDelay time.Duration
}

// Controller owns one wizard session. It is not safe for concurrent use;
// the toolkit's event model is single-threaded (UI events and network
// completions), and hosts that dispatch from multiple goroutines must
// serialize access themselves.
type Controller struct {
	steps       []Step
	draft       types.ExperienceDraft
	kv          *store.Store
	experiences *store.ExperienceStore
	tracker     *versions.Tracker
	autosave    *store.Autosaver

	// editingID is the saved experience being edited, 0 for a new draft.
	editingID int64

	epoch        uint64
	seq          uint64
	current      GenerationToken
	genAdvanced  bool
	pendingToken string
}

// New creates a controller for a fresh draft, resuming a previously
// persisted in-progress draft when one exists.
func New(cfg Config) (*Controller, error) {
	c, err := newController(cfg)
	if err != nil {
		return nil, err
	}

	var saved types.ExperienceDraft
	if c.kv.Load(store.KeyBuilderState, &saved) {
		saved.Normalize()
		saved.IsGenerating = false // never resume into a phantom in-flight state
		if saved.CurrentStep < 0 {
			saved.CurrentStep = 0
		}
		if last := len(c.steps) - 1; saved.CurrentStep > last {
			saved.CurrentStep = last
		}
		c.draft = saved
	}
	return c, nil
}

// NewEdit creates a controller editing an existing saved experience. The
// draft is seeded from the saved record, opens on the bullets review step,
// and the experience's version history session begins (persisting the
// original snapshot if the history is empty).
func NewEdit(cfg Config, experienceID int64) (*Controller, error) {
	c, err := newController(cfg)
	if err != nil {
		return nil, err
	}
	if c.experiences == nil || c.tracker == nil {
		return nil, fmt.Errorf("edit session requires an experience store and version tracker")
	}

	exp, err := c.experiences.Get(experienceID)
	if err != nil {
		return nil, err
	}
	if _, err := c.tracker.BeginSession(exp); err != nil {
		return nil, err
	}
	c.editingID = experienceID
	c.draft = exp.ToDraft()
	if last := len(c.steps) - 1; c.draft.CurrentStep > last {
		c.draft.CurrentStep = last
	}
	return c, nil
}

func newController(cfg Config) (*Controller, error) {
	if cfg.KV == nil {
		return nil, fmt.Errorf("wizard requires a store")
	}
	steps := cfg.Steps
	if len(steps) == 0 {
		steps = DefaultSteps
	}
	return &Controller{
		steps:       steps,
		draft:       types.NewDraft(),
		kv:          cfg.KV,
		experiences: cfg.Experiences,
		tracker:     cfg.Tracker,
		autosave:    store.NewAutosaver(cfg.KV, store.KeyBuilderState, cfg.AutosaveDelay),
	}, nil
}

// Draft returns a snapshot of the in-progress draft.
func (c *Controller) Draft() types.ExperienceDraft {
	return c.draft
}

// Steps returns the wizard's step sequence.
func (c *Controller) Steps() []Step {
	return c.steps
}

// CurrentStep returns the current step index.
func (c *Controller) CurrentStep() int {
	return c.draft.CurrentStep
}

// Dirty reports whether the session holds unsaved progress. Hosts use it to
// gate navigation away from the wizard.
func (c *Controller) Dirty() bool {
	return c.draft.CurrentStep > 0
}

// EditingID returns the id of the experience being edited, 0 for a new draft.
func (c *Controller) EditingID() int64 {
	return c.editingID
}

// SelectType sets the experience type and moves to the STAR entry step.
// Valid only from the initial step.
func (c *Controller) SelectType(t types.ExperienceType) error {
	if c.draft.CurrentStep != 0 {
		return ErrNotOnTypeStep
	}
	if !t.Valid() {
		return fmt.Errorf("unknown experience type %q", t)
	}
	c.draft.ExperienceType = t
	c.draft.CurrentStep = 1
	c.mark()
	return nil
}

// Next advances one step, clamped to the last step.
func (c *Controller) Next() {
	if c.draft.CurrentStep < len(c.steps)-1 {
		c.draft.CurrentStep++
		c.mark()
	}
}

// Back retreats one step, clamped to the first step.
func (c *Controller) Back() {
	if c.draft.CurrentStep > 0 {
		c.draft.CurrentStep--
		c.mark()
	}
}

// GoToStep navigates directly to a step, clamped to the valid range.
func (c *Controller) GoToStep(i int) {
	if i < 0 {
		i = 0
	}
	if last := len(c.steps) - 1; i > last {
		i = last
	}
	if i != c.draft.CurrentStep {
		c.draft.CurrentStep = i
		c.mark()
	}
}

// RequestRestart begins the two-phase restart. Nothing is mutated until the
// returned token is confirmed.
func (c *Controller) RequestRestart() RestartPrompt {
	c.pendingToken = uuid.NewString()
	return RestartPrompt{
		Token:   c.pendingToken,
		Message: "Are you sure you want to restart? All progress will be lost.",
	}
}

// ConfirmRestart performs the restart if token matches the pending prompt:
// the draft and its transient storage are cleared, an edited experience is
// removed from the persisted list, and the wizard returns to step 0. A
// stale or missing token is a no-op error.
func (c *Controller) ConfirmRestart(token string) error {
	if c.pendingToken == "" || token != c.pendingToken {
		return ErrNoPendingRestart
	}
	c.pendingToken = ""

	if c.editingID != 0 && c.experiences != nil {
		if err := c.experiences.Delete(c.editingID); err != nil {
			return err
		}
		c.editingID = 0
	}

	c.autosave.Stop()
	if err := c.kv.Clear(store.KeyBuilderState); err != nil {
		return err
	}
	c.draft = types.NewDraft()
	c.epoch++ // invalidate any in-flight generation
	c.current = GenerationToken{}
	c.genAdvanced = false
	return nil
}

// CancelRestart abandons a pending restart prompt.
func (c *Controller) CancelRestart() {
	c.pendingToken = ""
}

// mark updates the save stamp and schedules a debounced mirror of the draft
// to persistent storage.
func (c *Controller) mark() {
	c.draft.LastSaved = time.Now().Format(time.RFC3339)
	c.autosave.Mark(c.draft)
}

// FlushAutosave forces any pending draft mirror to disk.
func (c *Controller) FlushAutosave() error {
	return c.autosave.Flush()
}

// Close stops the autosave timer without flushing.
func (c *Controller) Close() {
	c.autosave.Stop()
}
