package testutil

import "strings"

// Posting mirrors the fields every assessment entry point accepts.
type Posting struct {
	Title       string
	Description string
	Company     string
	URL         string
}

// ScamPosting is a textbook advance-fee recruitment scam.
func ScamPosting() Posting {
	return Posting{
		Title:       "Work From Home - Earn $5000/week!",
		Description: "Send us your bank details via Telegram to start.",
		Company:     "Quick Cash Inc",
	}
}

// LegitPosting is a long, keyword-clean posting from a well-known employer.
func LegitPosting() Posting {
	return Posting{
		Title:       "Senior Site Reliability Engineer",
		Description: LegitDescription,
		Company:     "Google",
		URL:         "https://careers.google.com/jobs/123",
	}
}

const legitParagraphs = `Our infrastructure group keeps search, maps and cloud products available for people all over the world.
As a senior site reliability engineer you will design resilient distributed systems, improve release tooling
and lead blameless postmortems with partner teams. You will write production code in Go and Python, review
designs from other engineers, and mentor new teammates through on-call rotations. The role requires five
years experience operating large Linux fleets, strong knowledge of networking fundamentals, and a track
record of measurable reliability improvements. We value clear written communication, thoughtful trade-offs
and curiosity about how complex systems fail. Candidates should share a portfolio or github profile that
shows relevant work. The position is hybrid with three onsite days each week in our Zurich office.
Benefits include health insurance, dental and vision coverage, a 401k match, equity grants and generous
paid time off. Final offers are subject to a background check and references required by local law.
`

// LegitDescription is comfortably above five hundred words.
var LegitDescription = strings.Repeat(legitParagraphs, 5)
