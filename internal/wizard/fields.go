package wizard

import "github.com/gtri-thrive/toolkit/internal/types"

// Field setters mutate the draft and schedule a debounced autosave. They are
// valid on any step; the wizard UI only surfaces them where appropriate.

// SetCompany sets the company name.
func (c *Controller) SetCompany(v string) {
	c.draft.BasicInfo.Company = v
	c.mark()
}

// SetPosition sets the position title.
func (c *Controller) SetPosition(v string) {
	c.draft.BasicInfo.Position = v
	c.mark()
}

// SetIndustries replaces the industries list. A nil list is stored empty.
func (c *Controller) SetIndustries(v []string) {
	if v == nil {
		v = []string{}
	}
	c.draft.BasicInfo.Industries = v
	c.mark()
}

// SetDateRange sets the experience's date range.
func (c *Controller) SetDateRange(v types.DateRange) {
	c.draft.BasicInfo.DateRange = v
	c.mark()
}

// SetSituation sets the STAR situation text.
func (c *Controller) SetSituation(v string) {
	c.draft.StarContent.Situation = v
	c.mark()
}

// SetTask sets the STAR task text.
func (c *Controller) SetTask(v string) {
	c.draft.StarContent.Task = v
	c.mark()
}

// SetActions sets the STAR actions text.
func (c *Controller) SetActions(v string) {
	c.draft.StarContent.Actions = v
	c.mark()
}

// SetResults sets the STAR results text.
func (c *Controller) SetResults(v string) {
	c.draft.StarContent.Results = v
	c.mark()
}
