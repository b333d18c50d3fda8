// internal/server/handlers/socialmedia.go

package handlers

import (
	"encoding/json"
	"log"
	"net/http"
	"time"

	domain "pulse/internal/domain/social"
	"pulse/internal/service/social"
)

const mockDataNote = "Some platforms may be using mock data due to API limitations. Configure API keys in .env.local for real data."

// AccountDefaults are the accounts aggregated when the request names
// none.
type AccountDefaults struct {
	Twitter   string
	LinkedIn  string
	Instagram string
}

// SocialMediaHandler handles cross-platform aggregation requests
type SocialMediaHandler struct {
	aggregator *social.Aggregator
	defaults   AccountDefaults
}

// NewSocialMediaHandler creates a new social media handler
func NewSocialMediaHandler(aggregator *social.Aggregator, defaults AccountDefaults) *SocialMediaHandler {
	return &SocialMediaHandler{
		aggregator: aggregator,
		defaults:   defaults,
	}
}

type socialMediaMetadata struct {
	DataSources map[string]string `json:"data_sources"`
	Timestamp   time.Time         `json:"timestamp"`
	Note        string            `json:"note"`
}

type socialMediaResponse struct {
	domain.AggregateResult
	Metadata socialMediaMetadata `json:"metadata"`
}

// GetAggregate returns the merged cross-platform view for the
// requested accounts, falling back to the configured defaults.
func (h *SocialMediaHandler) GetAggregate(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	accounts := social.Accounts{
		domain.PlatformTwitter:   h.defaults.Twitter,
		domain.PlatformLinkedIn:  h.defaults.LinkedIn,
		domain.PlatformInstagram: h.defaults.Instagram,
	}
	for _, platform := range []string{domain.PlatformTwitter, domain.PlatformLinkedIn, domain.PlatformInstagram} {
		if account := query.Get(platform); account != "" {
			accounts[platform] = account
		}
	}

	log.Printf("Fetching social media data for accounts: %v", accounts)

	result, sources := h.aggregator.Aggregate(r.Context(), accounts, 10)

	dataSources := make(map[string]string, len(sources))
	for platform, src := range sources {
		dataSources[platform] = src.Label()
	}

	respondWithJSON(w, http.StatusOK, socialMediaResponse{
		AggregateResult: result,
		Metadata: socialMediaMetadata{
			DataSources: dataSources,
			Timestamp:   time.Now(),
			Note:        mockDataNote,
		},
	})
}

// GetRealTimeUpdates returns a fresh engagement reading per requested
// post id.
func (h *SocialMediaHandler) GetRealTimeUpdates(w http.ResponseWriter, r *http.Request) {
	var body struct {
		PostIDs []string `json:"postIds"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil || body.PostIDs == nil {
		respondWithError(w, http.StatusBadRequest, "postIds array is required", nil)
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"updates":   h.aggregator.RealTimeUpdates(body.PostIDs),
		"timestamp": time.Now(),
	})
}
