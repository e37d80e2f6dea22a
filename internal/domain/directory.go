package domain

import "time"

// Scheme describes a government support programme
type Scheme struct {
	Name        string `json:"name" yaml:"name"`
	Description string `json:"description" yaml:"description"`
	Eligibility string `json:"eligibility" yaml:"eligibility"`
	ApplyLink   string `json:"apply_link" yaml:"apply_link"`
}

// Resource is a mental-health support contact
type Resource struct {
	Name        string `json:"name" yaml:"name"`
	Contact     string `json:"contact" yaml:"contact"`
	Description string `json:"description" yaml:"description"`
}

// RegionOverview is a map marker for the satellite view
type RegionOverview struct {
	Region          Region  `json:"region" yaml:"region"`
	Latitude        float64 `json:"lat" yaml:"lat"`
	Longitude       float64 `json:"lon" yaml:"lon"`
	CropHealthScore float64 `json:"crop_health_score" yaml:"crop_health_score"`
}

// CommunityReport is an issue raised by a farmer.
// Submitted reports are echoed back and never stored.
type CommunityReport struct {
	ID       string    `json:"id,omitempty" yaml:"id,omitempty"`
	Issue    string    `json:"issue" yaml:"issue"`
	Location string    `json:"location" yaml:"location"`
	Severity int       `json:"severity" yaml:"severity"`
	Date     time.Time `json:"date" yaml:"date"`
}
