package system

import (
	"fmt"

	"github.com/younwookim/villager/internal/domain/villager"
	"github.com/younwookim/villager/internal/infrastructure/config"
)

// LoadSites converts a VillagerConfig into a validated site table
func LoadSites(cfg *config.VillagerConfig) (*villager.SiteTable, error) {
	sites := make([]villager.Site, 0, len(cfg.Sites))
	for _, sc := range cfg.Sites {
		cat, ok := villager.ParseCategory(sc.Category)
		if !ok {
			return nil, fmt.Errorf("failed to load site %q: unknown category %q", sc.ID, sc.Category)
		}

		work := villager.FacingRight
		if sc.WorkFacing != "" {
			if work, ok = villager.ParseFacing(sc.WorkFacing); !ok {
				return nil, fmt.Errorf("failed to load site %q: bad work_facing %q", sc.ID, sc.WorkFacing)
			}
		}

		site := villager.Site{
			ID:         villager.SiteID(sc.ID),
			Category:   cat,
			WorkFacing: work,
		}
		if sc.ReturnFacing != "" {
			ret, ok := villager.ParseFacing(sc.ReturnFacing)
			if !ok {
				return nil, fmt.Errorf("failed to load site %q: bad return_facing %q", sc.ID, sc.ReturnFacing)
			}
			site.PinReturnFacing = true
			site.ReturnFacing = ret
		}
		for _, wp := range sc.Waypoints {
			site.Waypoints = append(site.Waypoints, villager.Point{X: wp.X, Y: wp.Y})
		}
		sites = append(sites, site)
	}

	table, err := villager.NewSiteTable(villager.Point{X: cfg.Home.X, Y: cfg.Home.Y}, sites)
	if err != nil {
		return nil, fmt.Errorf("failed to load sites: %w", err)
	}
	return table, nil
}

// ControllerConfig builds the controller configuration from a VillagerConfig
func ControllerConfig(cfg *config.VillagerConfig) (villager.Config, error) {
	table, err := LoadSites(cfg)
	if err != nil {
		return villager.Config{}, err
	}
	return villager.Config{
		Sites:            table,
		Speed:            cfg.Speed,
		ArrivalThreshold: cfg.ArrivalThreshold,
		ReturnDelay:      cfg.ReturnDelay,
	}, nil
}
