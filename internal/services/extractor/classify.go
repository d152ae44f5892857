package extractor

import (
	"strings"

	"github.com/unisave/unisave/internal/utils"
)

// maxStderrDetail caps how much raw diagnostic text is carried on a
// generic extraction failure.
const maxStderrDetail = 500

type stderrRule struct {
	probes []string
	build  func() *utils.AppError
}

// Ordered substring probes over the tool's free-text stderr. The order
// matters: "Sign in to confirm your age" must win over the broader
// "Sign in" probe, and "Private video" over "login". Ambiguous output
// falls through to a generic extraction failure carrying the raw text.
var stderrRules = []stderrRule{
	{
		probes: []string{"Sign in to confirm your age", "age-restricted", "requires authentication"},
		build:  utils.NewAgeRestrictedError,
	},
	{
		probes: []string{"Private video", "Video unavailable", "not found", "Private"},
		build:  utils.NewContentNotFoundError,
	},
	{
		probes: []string{"Login required", "login", "Sign in"},
		build:  utils.NewAuthRequiredError,
	},
	{
		probes: []string{"DRM", "protected"},
		build:  utils.NewDRMProtectedError,
	},
}

// ClassifyStderr maps the tool's diagnostic output to a typed error.
// Classification is best-effort string matching, not structured.
func ClassifyStderr(stderr string) *utils.AppError {
	for _, rule := range stderrRules {
		for _, probe := range rule.probes {
			if strings.Contains(stderr, probe) {
				return rule.build()
			}
		}
	}

	detail := strings.TrimSpace(stderr)
	if len(detail) > maxStderrDetail {
		detail = detail[:maxStderrDetail]
	}
	return utils.NewExtractionError(detail)
}
