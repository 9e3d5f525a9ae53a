package http

import (
	"net/http"

	"skillsprint/pkg/response"
)

// Gig is a unit of marketplace work with a payout attached
type Gig struct {
	ID        string   `json:"id"`
	Title     string   `json:"title"`
	PayoutLKR float64  `json:"payoutLKR"`
	Skills    []string `json:"skills"`
}

// Static demo catalog; the gig listing is out of scope as a real feature.
var mockGigs = []Gig{
	{
		ID:        "g1",
		Title:     "Figma landing revamp",
		PayoutLKR: 3000,
		Skills:    []string{"Figma"},
	},
	{
		ID:        "g2",
		Title:     "React component library",
		PayoutLKR: 5000,
		Skills:    []string{"React"},
	},
}

// HTTPGigController serves the gig catalog
type HTTPGigController struct{}

// NewHTTPGigController creates a new HTTP gig controller
func NewHTTPGigController() *HTTPGigController {
	return &HTTPGigController{}
}

// ListGigs handles GET /v1/gigs
func (c *HTTPGigController) ListGigs(w http.ResponseWriter, r *http.Request) {
	response.SendOK(w, map[string]interface{}{
		"gigs": mockGigs,
	})
}
