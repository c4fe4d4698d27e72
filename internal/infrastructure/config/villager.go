package config

// VillagerConfig is the root config for villager.yaml
type VillagerConfig struct {
	Speed            float64      `yaml:"speed" json:"speed,omitempty"`
	ArrivalThreshold float64      `yaml:"arrival_threshold" json:"arrivalThreshold,omitempty"`
	ReturnDelay      float64      `yaml:"return_delay" json:"returnDelay,omitempty"`
	Home             PointConfig  `yaml:"home" json:"home"`
	Sites            []SiteConfig `yaml:"sites" json:"sites"`
}

type PointConfig struct {
	X float64 `yaml:"x" json:"x"`
	Y float64 `yaml:"y" json:"y"`
}

// SiteConfig describes one resource site. ReturnFacing is optional; when set
// it pins the facing for the whole trip home.
type SiteConfig struct {
	ID           string        `yaml:"id" json:"id"`
	Category     string        `yaml:"category" json:"category"`
	WorkFacing   string        `yaml:"work_facing" json:"workFacing,omitempty"`
	ReturnFacing string        `yaml:"return_facing,omitempty" json:"returnFacing,omitempty"`
	Waypoints    []PointConfig `yaml:"waypoints" json:"waypoints"`
}
