// Package sample provides canned recommendation and experience data. It is
// an explicit, user-triggered affordance (the seed command and the "try it
// with sample data" path), never an automatic fallback on service failure.
package sample

import (
	"math/rand/v2"

	"github.com/gtri-thrive/toolkit/internal/types"
)

var situationPool = []types.Recommendation{
	{
		Title:           "Specificity in Context",
		Subtitle:        "Add detailed background information",
		OriginalContent: "Our company was facing challenges",
		Examples: []types.Example{{
			Content:     "Our mid-sized tech startup (50 employees, $5M revenue) faced a critical cash flow crisis due to rapid expansion",
			Explanation: "Added company size, revenue, and specific challenge",
		}},
	},
	{
		Title:           "Timeline Context",
		Subtitle:        "Include relevant timeframes",
		OriginalContent: "Last year we had issues",
		Examples: []types.Example{{
			Content:     "In Q3 2023, during a market downturn that affected 70% of tech startups",
			Explanation: "Added specific timeframe and market context",
		}},
	},
	{
		Title:           "Industry Impact",
		Subtitle:        "Highlight industry-specific challenges",
		OriginalContent: "The market was tough",
		Examples: []types.Example{{
			Content:     "Amid a 30% industry-wide increase in customer acquisition costs in the SaaS sector",
			Explanation: "Added quantified industry challenge",
		}},
	},
	{
		Title:           "Scale of Challenge",
		Subtitle:        "Quantify the situation",
		OriginalContent: "We were losing customers",
		Examples: []types.Example{{
			Content:     "Facing a 25% monthly customer churn rate, double the industry average",
			Explanation: "Added specific metrics and comparison",
		}},
	},
	{
		Title:           "Stakeholder Impact",
		Subtitle:        "Show broader impact",
		OriginalContent: "It affected many people",
		Examples: []types.Example{{
			Content:     "The situation impacted 3 key departments and 15 client accounts worth $2M annually",
			Explanation: "Added specific scope and value",
		}},
	},
	{
		Title:           "Resource Context",
		Subtitle:        "Describe available resources",
		OriginalContent: "We had limited resources",
		Examples: []types.Example{{
			Content:     "Working with a reduced team of 5 and a 40% smaller budget of $100K",
			Explanation: "Added specific resource constraints",
		}},
	},
}

var taskPool = []types.Recommendation{
	{
		Title:           "Role Clarity",
		Subtitle:        "Define your specific responsibility",
		OriginalContent: "I needed to fix the problem",
		Examples: []types.Example{{
			Content:     "As Senior Project Manager, I was tasked with reducing project delivery delays by 50% within 6 months",
			Explanation: "Added role title, specific goal, and timeline",
		}},
	},
	{
		Title:           "Scope Definition",
		Subtitle:        "Outline project parameters",
		OriginalContent: "I had to manage the project",
		Examples: []types.Example{{
			Content:     "Led a cross-functional team of 12 members to implement a new agile workflow system across 5 departments",
			Explanation: "Added team size, methodology, and scope",
		}},
	},
	{
		Title:           "Success Metrics",
		Subtitle:        "Define measurable objectives",
		OriginalContent: "We needed better results",
		Examples: []types.Example{{
			Content:     "Tasked with achieving 98% on-time delivery while reducing operational costs by 20%",
			Explanation: "Added specific performance targets",
		}},
	},
	{
		Title:           "Stakeholder Goals",
		Subtitle:        "Align with organizational objectives",
		OriginalContent: "Management wanted improvements",
		Examples: []types.Example{{
			Content:     "Assigned to align project delivery with C-suite's Q4 goal of entering 3 new market segments",
			Explanation: "Added leadership context and business goals",
		}},
	},
	{
		Title:           "Resource Allocation",
		Subtitle:        "Define available resources",
		OriginalContent: "I had a team to work with",
		Examples: []types.Example{{
			Content:     "Given a $500K budget and authority to restructure the 15-person delivery team",
			Explanation: "Added budget and team size details",
		}},
	},
}

var actionPool = []types.Recommendation{
	{
		Title:           "Strategic Planning",
		Subtitle:        "Detail your approach",
		OriginalContent: "I made a plan",
		Examples: []types.Example{{
			Content:     "Conducted a 2-week audit of existing processes, identifying 7 critical bottlenecks causing 60% of delays",
			Explanation: "Added timeframe, methodology, and findings",
		}},
	},
	{
		Title:           "Implementation Steps",
		Subtitle:        "Break down key actions",
		OriginalContent: "We changed the process",
		Examples: []types.Example{{
			Content:     "Implemented daily stand-ups, bi-weekly retrospectives, and automated 40% of status reporting",
			Explanation: "Added specific process changes and automation metrics",
		}},
	},
	{
		Title:           "Team Leadership",
		Subtitle:        "Highlight management approach",
		OriginalContent: "I led the team",
		Examples: []types.Example{{
			Content:     "Mentored 3 team leads, delegated key responsibilities, and established weekly performance metrics",
			Explanation: "Added leadership activities and measurement systems",
		}},
	},
	{
		Title:           "Innovation",
		Subtitle:        "Showcase creative solutions",
		OriginalContent: "I found new ways to work",
		Examples: []types.Example{{
			Content:     "Developed custom Slack integration that reduced communication delays by 75%",
			Explanation: "Added specific innovation and impact",
		}},
	},
	{
		Title:           "Stakeholder Management",
		Subtitle:        "Detail communication strategy",
		OriginalContent: "I kept everyone informed",
		Examples: []types.Example{{
			Content:     "Established bi-weekly executive updates and daily stakeholder dashboards, reaching 200+ team members",
			Explanation: "Added communication frequency and reach",
		}},
	},
}

var resultPool = []types.Recommendation{
	{
		Title:           "Quantifiable Impact",
		Subtitle:        "Measure primary outcomes",
		OriginalContent: "The project was successful",
		Examples: []types.Example{{
			Content:     "Achieved 95% on-time delivery rate, exceeding target by 15% and saving $300K annually",
			Explanation: "Added specific metrics and financial impact",
		}},
	},
	{
		Title:           "Secondary Benefits",
		Subtitle:        "Highlight additional wins",
		OriginalContent: "Other things improved too",
		Examples: []types.Example{{
			Content:     "Improved team satisfaction by 40% and reduced overtime hours by 60%",
			Explanation: "Added employee impact metrics",
		}},
	},
	{
		Title:           "Long-term Value",
		Subtitle:        "Show sustained impact",
		OriginalContent: "Things got better",
		Examples: []types.Example{{
			Content:     "Created framework adopted by 3 other departments, scaling efficiency gains company-wide",
			Explanation: "Added organizational impact and scaling",
		}},
	},
	{
		Title:           "Recognition",
		Subtitle:        "Highlight achievements",
		OriginalContent: "People liked the results",
		Examples: []types.Example{{
			Content:     "Received CEO Excellence Award and presented methodology at industry conference",
			Explanation: "Added external validation and recognition",
		}},
	},
	{
		Title:           "Business Growth",
		Subtitle:        "Connect to company success",
		OriginalContent: "The company did better",
		Examples: []types.Example{{
			Content:     "Contributed to 25% YoY revenue growth and successful expansion into 2 new markets",
			Explanation: "Added business impact metrics",
		}},
	},
}

// Recommendations returns a random non-empty subset of each section's pool,
// shuffled, the way the reference data set hands out suggestions.
func Recommendations() types.Recommendations {
	return types.Recommendations{
		Situation: subset(situationPool),
		Task:      subset(taskPool),
		Action:    subset(actionPool),
		Result:    subset(resultPool),
	}
}

func subset(pool []types.Recommendation) []types.Recommendation {
	shuffled := make([]types.Recommendation, len(pool))
	copy(shuffled, pool)
	rand.Shuffle(len(shuffled), func(i, j int) {
		shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
	})
	n := rand.IntN(len(shuffled)) + 1
	return shuffled[:n]
}

// Experience returns a complete sample experience, used by the seed command
// to populate an empty store.
func Experience() types.SavedExperience {
	return types.SavedExperience{
		Type:       types.TypeWork,
		Title:      "Senior Project Manager",
		Company:    "Acme Logistics",
		Industries: []string{"Technology", "Logistics"},
		DateRange: types.DateRange{
			StartMonth: "January", StartYear: "2022",
			EndMonth: "June", EndYear: "2024",
		},
		Bullets: types.Bullets{
			"• Achieved 95% on-time delivery rate, exceeding target by 15% and saving $300K annually",
			"• Led a cross-functional team of 12 members to implement a new agile workflow system across 5 departments",
			"• Developed custom Slack integration that reduced communication delays by 75%",
		},
		StarContent: types.StarContent{
			Situation: "Our mid-sized tech startup faced a critical cash flow crisis due to rapid expansion",
			Task:      "As Senior Project Manager, I was tasked with reducing project delivery delays by 50% within 6 months",
			Actions:   "Conducted a 2-week audit of existing processes, then implemented daily stand-ups and automated status reporting",
			Results:   "Achieved 95% on-time delivery rate, exceeding target by 15% and saving $300K annually",
		},
		Recommendations: types.Recommendations{
			Situation: situationPool[:1],
			Task:      taskPool[:1],
			Action:    actionPool[:1],
			Result:    resultPool[:1],
		},
	}
}
