package response

import (
	"time"

	"watchdog/internal/server/state"
)

type RegionItem struct {
	Name       string `json:"name"`
	Status     string `json:"status"`
	LastUpdate string `json:"last_update"`
}

type GroupItem struct {
	Name       string `json:"name"`
	Status     string `json:"status"`
	LastUpdate string `json:"last_update"`
	Stale      bool   `json:"stale"`
}

type IncidentItem struct {
	ID        string `json:"id"`
	Kind      string `json:"kind"`
	Message   string `json:"message"`
	Timestamp string `json:"timestamp"`
}

type AnalyticsResponse struct {
	Regions   []RegionItem   `json:"regions"`
	Groups    []GroupItem    `json:"groups"`
	Incidents []IncidentItem `json:"incidents"`
}

type StatusResponse struct {
	Regions []RegionItem `json:"regions"`
	Groups  []GroupItem  `json:"groups"`
}

type IncidentsResponse struct {
	Incidents []IncidentItem `json:"incidents"`
}

func formatTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(time.RFC3339)
}

func NewRegionItems(regions []state.RegionSnapshot) []RegionItem {
	items := make([]RegionItem, 0, len(regions))
	for _, region := range regions {
		items = append(items, RegionItem{
			Name:       region.Name,
			Status:     string(region.Status),
			LastUpdate: formatTime(region.LastUpdate),
		})
	}
	return items
}

func NewGroupItems(groups []state.GroupSnapshot) []GroupItem {
	items := make([]GroupItem, 0, len(groups))
	for _, group := range groups {
		items = append(items, GroupItem{
			Name:       group.Name,
			Status:     string(group.Status),
			LastUpdate: formatTime(group.LastUpdate),
			Stale:      group.Stale,
		})
	}
	return items
}

func NewIncidentItems(incidents []state.Incident) []IncidentItem {
	items := make([]IncidentItem, 0, len(incidents))
	for _, incident := range incidents {
		items = append(items, IncidentItem{
			ID:        incident.ID,
			Kind:      incident.Kind,
			Message:   incident.Message,
			Timestamp: incident.Timestamp.Format(time.RFC3339),
		})
	}
	return items
}
