package gridsolver

import "context"

const (
	SOFTWARE_ID  = "gridsolver"
	SOLVE_METHOD = "image_grid"

	TIER_FREE = "free"
	TIER_PRO  = "pro"

	FREE_BASE_URL = "https://free.nocaptchaai.com"
	PRO_BASE_URL  = "https://pro.nocaptchaai.com"
	SOLVE_PATH    = "/solve"
)

// Verdict statuses the service is allowed to answer with
const (
	VERDICT_SOLVED = "solved"
	VERDICT_NEW    = "new"
	VERDICT_SKIP   = "skip"
	VERDICT_ERROR  = "error"
)

// Payload of one challenge round
type Payload struct {
	SoftwareID string   `json:"softwareId"`
	Method     string   `json:"method"`
	SiteURL    string   `json:"siteUrl"`
	Language   string   `json:"language"`
	SiteKey    string   `json:"siteKey"`
	Images     []string `json:"images"`
	Target     string   `json:"target"`
}

// Verdict of the remote service for a submitted round
type Verdict struct {
	// One of VERDICT_SOLVED, VERDICT_NEW, VERDICT_SKIP, VERDICT_ERROR
	Status string `json:"status"`

	// Tile indexes to click, in order. Present when solved
	Solution []int `json:"solution"`

	// Result URL to poll. Present when the verdict is still pending
	URL string `json:"url"`

	// Service message. Present on error
	Message string `json:"message"`
}

// Interface for the remote solving service.
//
// Instance for client we must implement outside the orchestrator. We only use existing instance
type RemoteClient interface {
	Submit(ctx context.Context, payload *Payload) (*Verdict, error)

	PollResult(ctx context.Context, url string) (*Verdict, error)
}

// EndpointForTier maps a service tier to its base URL
func EndpointForTier(tier string) string {
	if tier == TIER_PRO {
		return PRO_BASE_URL
	}
	return FREE_BASE_URL
}
