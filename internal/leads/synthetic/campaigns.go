package synthetic

import (
	_ "embed"
	"fmt"
	"os"

	"leadscout_backend/internal/leads/domain"

	"gopkg.in/yaml.v3"
)

//go:embed campaigns.yaml
var defaultCampaigns []byte

// LoadCampaigns reads campaign reference data from path, or the embedded
// defaults when path is empty.
func LoadCampaigns(path string) ([]domain.Campaign, error) {
	data := defaultCampaigns
	if path != "" {
		raw, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read campaigns file: %w", err)
		}
		data = raw
	}
	return parseCampaigns(data)
}

func parseCampaigns(data []byte) ([]domain.Campaign, error) {
	var campaigns []domain.Campaign
	if err := yaml.Unmarshal(data, &campaigns); err != nil {
		return nil, fmt.Errorf("parse campaigns: %w", err)
	}
	for i, c := range campaigns {
		if c.ID == "" {
			return nil, fmt.Errorf("campaign %d: id is required", i)
		}
		if !isKnownChannel(c.Channel) {
			return nil, fmt.Errorf("campaign %s: unknown channel %q", c.ID, c.Channel)
		}
	}
	return campaigns, nil
}

func isKnownChannel(channel domain.Channel) bool {
	for _, c := range domain.Channels {
		if c == channel {
			return true
		}
	}
	return false
}
